package marketplace

import (
	"strings"

	"github.com/pricelens/backend/internal/domain"
)

// Registry owns the fixed adapter set. It is constructed once at process
// start, passed explicitly into the engine, and read-only afterwards.
type Registry struct {
	ordered []domain.SourceAdapter
	byKey   map[string]domain.SourceAdapter
}

// domainMarker maps a reference substring to a source key. Order is fixed,
// first match wins.
type domainMarker struct {
	marker string
	key    string
}

var domainMarkers = []domainMarker{
	{"amazon.", "amazon"},
	{"flipkart.com", "flipkart"},
	{"meesho.com", "meesho"},
	{"zeptonow.com", "zepto"},
	{"bigbasket.com", "bbdaily"},
	{"swiggy.com/instamart", "instamart"},
	{"myntra.com", "myntra"},
	{"nykaa.com", "nykaa"},
}

// NewRegistry builds the full adapter set in its fixed fan-out order.
func NewRegistry() *Registry {
	ordered := []domain.SourceAdapter{
		NewAmazon(),
		NewFlipkart(),
		NewMeesho(),
		NewZepto(),
		NewBBDaily(),
		NewInstamart(),
		NewMyntra(),
		NewNykaa(),
	}

	byKey := make(map[string]domain.SourceAdapter, len(ordered))
	for _, a := range ordered {
		byKey[a.Key()] = a
	}
	return &Registry{ordered: ordered, byKey: byKey}
}

// All returns every adapter in registration order. The slice is a copy so
// callers cannot mutate registry state.
func (r *Registry) All() []domain.SourceAdapter {
	out := make([]domain.SourceAdapter, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Get looks an adapter up by source key.
func (r *Registry) Get(key string) (domain.SourceAdapter, bool) {
	a, ok := r.byKey[key]
	return a, ok
}

// Resolve matches the reference against each adapter's domain markers.
func (r *Registry) Resolve(reference string) (domain.SourceAdapter, bool) {
	lower := strings.ToLower(reference)
	for _, dm := range domainMarkers {
		if strings.Contains(lower, dm.marker) {
			a, ok := r.byKey[dm.key]
			return a, ok
		}
	}
	return nil, false
}
