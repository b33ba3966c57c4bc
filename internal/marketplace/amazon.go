package marketplace

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Amazon is the unrestricted general marketplace. It is the only source with
// native signature extraction: its references carry an ASIN.
type Amazon struct{}

// NewAmazon creates the Amazon adapter.
func NewAmazon() *Amazon { return &Amazon{} }

func (a *Amazon) Key() string         { return "amazon" }
func (a *Amazon) DisplayName() string { return "Amazon" }
func (a *Amazon) BaseURL() string     { return "https://www.amazon.in" }

var amazonASINPattern = regexp.MustCompile(`/dp/([A-Z0-9]{10})`)

var amazonOfferNotes = []string{
	"10% instant discount with SBI cards",
	"No cost EMI available",
	"Exchange offer up to ₹15,000",
	"Amazon Prime delivery",
	"1 year warranty included",
	"Special bank offer: ₹2000 off",
}

var amazonETAs = []string{"1-2 days", "2-3 days", "3-4 days", "1 week", "Same day delivery"}

// DiscoverLocations probes the direct detail page when an ASIN-like primary
// identifier is known, plus a search location.
func (a *Amazon) DiscoverLocations(sig domain.ProductSignature) []string {
	var locations []string
	if sig.PrimaryID != "" {
		locations = append(locations, a.BaseURL()+"/dp/"+sig.PrimaryID)
	}
	if sig.CanonicalName != "" {
		locations = append(locations, a.BaseURL()+"/s?k="+url.QueryEscape(sig.CanonicalName))
	}
	if len(locations) > 3 {
		locations = locations[:3]
	}
	return locations
}

func (a *Amazon) FetchOffer(ctx context.Context, location string, sig domain.ProductSignature) (*domain.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	listed := derivePrice(sig, location, a.basePrice(sig), 250, 1000)
	fee := shippingFee(0.3, 99)

	confidence := 0.85
	if sig.PrimaryID != "" {
		confidence = 0.95
	}

	return &domain.Offer{
		SourceKey:          a.Key(),
		SourceDisplayName:  a.DisplayName(),
		Location:           location,
		Title:              sig.CanonicalName + " - Amazon",
		VariantDescription: formatVariant(sig.Variant, "capacity", "color", "size"),
		ListedPrice:        listed,
		ShippingFee:        fee,
		EffectivePrice:     listed.Add(fee),
		Currency:           domain.CurrencyINR,
		InStock:            inStock(0.9),
		OfferNotes:         pickNotes(amazonOfferNotes, 3),
		DeliveryEstimate:   pickETA(amazonETAs),
		MatchConfidence:    confidence,
		CheckedAt:          time.Now().UTC(),
		Categories:         []string{"Electronics", "Mobile Phones"},
	}, nil
}

func (a *Amazon) ScoreMatchConfidence(offer domain.Offer, sig domain.ProductSignature) float64 {
	var c float64
	switch {
	case containsPrimaryID(offer, sig):
		c = confidencePrimaryID
	case containsModel(offer, sig):
		c = confidenceModel
	default:
		c = capConfidence(tokenOverlap(sig.CanonicalName, offer.Title), 0.80)
	}
	if hasColorMatch(offer, sig) {
		c += colorBonus
	}
	return capConfidence(c, 0.95)
}

// ExtractSignature parses an ASIN out of a native Amazon reference. The
// canonical name stays at the placeholder for the engine to backfill.
func (a *Amazon) ExtractSignature(reference string) (*domain.ProductSignature, error) {
	m := amazonASINPattern.FindStringSubmatch(reference)
	if m == nil {
		return nil, fmt.Errorf("%w: no ASIN in reference", domain.ErrInvalidReference)
	}
	return &domain.ProductSignature{
		SourceKey:      a.Key(),
		InputReference: reference,
		CanonicalName:  domain.PlaceholderName,
		PrimaryID:      m[1],
		Currency:       domain.CurrencyINR,
		Variant:        map[string]string{},
	}, nil
}

func (a *Amazon) basePrice(sig domain.ProductSignature) decimal.Decimal {
	name := strings.ToLower(sig.CanonicalName)
	switch {
	case strings.Contains(name, "iphone") || strings.Contains(name, "samsung galaxy s"):
		return decimal.NewFromInt(45000)
	case strings.Contains(name, "laptop") || strings.Contains(name, "macbook"):
		return decimal.NewFromInt(75000)
	case strings.Contains(name, "headphone") || strings.Contains(name, "earbuds"):
		return decimal.NewFromInt(8000)
	case strings.Contains(name, "watch"):
		return decimal.NewFromInt(25000)
	case strings.Contains(name, "tablet") || strings.Contains(name, "ipad"):
		return decimal.NewFromInt(35000)
	}
	return decimal.NewFromInt(15000)
}
