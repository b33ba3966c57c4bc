package domain

import "context"

// SourceAdapter is the contract every marketplace implements.
//
// FetchOffer returns (nil, nil) when the location or the adapter's category
// filter excludes the signature; that is "no offer", not an error.
// ScoreMatchConfidence must not consult the confidence an offer already
// carries: the engine's recomputed value is the authoritative one.
type SourceAdapter interface {
	Key() string
	DisplayName() string
	BaseURL() string
	DiscoverLocations(sig ProductSignature) []string
	FetchOffer(ctx context.Context, location string, sig ProductSignature) (*Offer, error)
	ScoreMatchConfidence(offer Offer, sig ProductSignature) float64
}

// SignatureExtractor is the optional adapter capability of parsing a
// signature out of the adapter's own native references. The registry
// detects support via type assertion.
type SignatureExtractor interface {
	ExtractSignature(reference string) (*ProductSignature, error)
}

// AdapterRegistry owns the fixed set of marketplace adapters.
// It is read-only after construction and safe for concurrent use.
type AdapterRegistry interface {
	// All returns every registered adapter in fixed order.
	All() []SourceAdapter
	// Get looks an adapter up by its source key.
	Get(key string) (SourceAdapter, bool)
	// Resolve matches a reference against each adapter's domain markers,
	// first match wins.
	Resolve(reference string) (SourceAdapter, bool)
}
