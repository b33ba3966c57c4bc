package domain

import (
	"context"
	"time"
)

// ContentFetcher retrieves raw page content for a location.
// A failed retrieval returns ErrNoContent; callers treat it like any error.
type ContentFetcher interface {
	Fetch(ctx context.Context, location string) (string, error)
}

// ProductExtractor produces a best-effort structured product description
// from raw page content, or an error when nothing could be extracted.
type ProductExtractor interface {
	Extract(ctx context.Context, rawContent, reference string) (*ExtractedProduct, error)
}

// AuditRepository durably records a comparison outcome and returns a
// correlation id. Recording is best-effort: failures never fail Compare.
type AuditRepository interface {
	Record(ctx context.Context, result *ComparisonResult) (string, error)
}

// ResultCache caches assembled comparison results by normalized reference.
type ResultCache interface {
	Get(ctx context.Context, key string) (*ComparisonResult, error)
	Set(ctx context.Context, key string, result *ComparisonResult, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
