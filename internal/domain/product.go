package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyINR is the only currency this deployment supports.
const CurrencyINR = "INR"

// SourceUnknown is the signature source key when the input reference
// does not belong to any registered marketplace.
const SourceUnknown = "unknown"

// PlaceholderName is used when no product name can be derived from a
// reference. Enrichment must replace it before brand/variant inference
// treats the name as meaningful.
const PlaceholderName = "Unknown Product"

// ProductSignature is the canonical identity of the product being compared.
// It is built once per comparison and treated as read-only by adapters;
// the engine clones it before fan-out.
type ProductSignature struct {
	SourceKey      string            `json:"sourceKey"`
	InputReference string            `json:"inputReference"`
	CanonicalName  string            `json:"canonicalName"`
	Brand          string            `json:"brand,omitempty"`
	Model          string            `json:"model,omitempty"`
	PrimaryID      string            `json:"primaryId,omitempty"`
	Category       string            `json:"category,omitempty"`
	OriginalPrice  decimal.Decimal   `json:"originalPrice"`
	Currency       string            `json:"currency,omitempty"`
	Variant        map[string]string `json:"variant"`
}

// Clone returns a deep copy of the signature. The variant map is copied so
// no adapter can observe another adapter's mutations.
func (s ProductSignature) Clone() ProductSignature {
	out := s
	out.Variant = make(map[string]string, len(s.Variant))
	for k, v := range s.Variant {
		out.Variant[k] = v
	}
	return out
}

// HasAnchorPrice reports whether the signature carries an authoritative
// price from its originating source.
func (s ProductSignature) HasAnchorPrice() bool {
	return s.OriginalPrice.IsPositive()
}

// Offer is one source's priced listing claimed to match a signature.
// Adapters return a provisional offer; the engine recomputes MatchConfidence
// once on its own copy before the offer becomes visible to anything else.
type Offer struct {
	SourceKey          string          `json:"sourceKey"`
	SourceDisplayName  string          `json:"sourceDisplayName"`
	Location           string          `json:"location"`
	Title              string          `json:"title"`
	VariantDescription string          `json:"variantDescription,omitempty"`
	ListedPrice        decimal.Decimal `json:"listedPrice"`
	ShippingFee        decimal.Decimal `json:"shippingFee"`
	EffectivePrice     decimal.Decimal `json:"effectivePrice"`
	Currency           string          `json:"currency"`
	InStock            bool            `json:"inStock"`
	OfferNotes         []string        `json:"offerNotes"`
	DeliveryEstimate   string          `json:"deliveryEstimate,omitempty"`
	MatchConfidence    float64         `json:"matchConfidence"`
	CheckedAt          time.Time       `json:"checkedAt"`
	Categories         []string        `json:"categories,omitempty"`
}

// BestBuy references the lowest-effective-price accepted offer.
type BestBuy struct {
	SourceKey         string          `json:"sourceKey"`
	SourceDisplayName string          `json:"sourceDisplayName"`
	Location          string          `json:"location"`
	EffectivePrice    decimal.Decimal `json:"effectivePrice"`
	Rationale         []string        `json:"rationale"`
}

// ComparisonResult is the engine's final output. Offers are sorted
// ascending by effective price; BestBuy is present iff Offers is non-empty.
type ComparisonResult struct {
	Signature      ProductSignature `json:"signature"`
	Offers         []Offer          `json:"offers"`
	BestBuy        *BestBuy         `json:"bestBuy,omitempty"`
	SourcesChecked int              `json:"sourcesChecked"`
	DurationMs     int64            `json:"durationMs"`
	Persisted      bool             `json:"persisted"`
	AuditID        string           `json:"auditId,omitempty"`
}

// ExtractedProduct is a best-effort structured description of a product
// pulled from raw page content. Fields are merged into a signature
// backfill-only: they never overwrite fields already populated.
type ExtractedProduct struct {
	Name         string  `json:"name"`
	Brand        string  `json:"brand,omitempty"`
	Model        string  `json:"model,omitempty"`
	Category     string  `json:"category,omitempty"`
	Price        float64 `json:"price,omitempty"`
	Currency     string  `json:"currency,omitempty"`
	Color        string  `json:"color,omitempty"`
	Size         string  `json:"size,omitempty"`
	Capacity     string  `json:"capacity,omitempty"`
	RAM          string  `json:"ram,omitempty"`
	Description  string  `json:"description,omitempty"`
	Availability bool    `json:"availability,omitempty"`
	PrimaryID    string  `json:"primaryId,omitempty"`
	SKU          string  `json:"sku,omitempty"`
	GTIN         string  `json:"gtin,omitempty"`
}
