package marketplace

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Meesho is an unrestricted reseller marketplace. Listings come from varied
// sellers, so its confidence ceiling is the lowest of the set.
type Meesho struct{}

// NewMeesho creates the Meesho adapter.
func NewMeesho() *Meesho { return &Meesho{} }

func (m *Meesho) Key() string         { return "meesho" }
func (m *Meesho) DisplayName() string { return "Meesho" }
func (m *Meesho) BaseURL() string     { return "https://www.meesho.com" }

var meeshoOfferNotes = []string{
	"Free delivery on orders above ₹999",
	"Cash on delivery available",
	"7-day return policy",
	"Lowest price guarantee",
	"Supplier rating: 4.2★",
	"Verified supplier",
}

var meeshoETAs = []string{"3-5 days", "5-7 days", "1-2 weeks", "4-6 days"}

func (m *Meesho) DiscoverLocations(sig domain.ProductSignature) []string {
	var locations []string
	if sig.CanonicalName != "" {
		locations = append(locations, m.BaseURL()+"/search?q="+url.QueryEscape(sig.CanonicalName))
	}
	if len(locations) > 3 {
		locations = locations[:3]
	}
	return locations
}

func (m *Meesho) FetchOffer(ctx context.Context, location string, sig domain.ProductSignature) (*domain.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	listed := derivePrice(sig, location, m.basePrice(sig), 300, 1000)
	fee := shippingFee(0.4, 50)

	return &domain.Offer{
		SourceKey:          m.Key(),
		SourceDisplayName:  m.DisplayName(),
		Location:           location,
		Title:              sig.CanonicalName + " - Meesho",
		VariantDescription: formatVariant(sig.Variant, "capacity", "color", "size"),
		ListedPrice:        listed,
		ShippingFee:        fee,
		EffectivePrice:     listed.Add(fee),
		Currency:           domain.CurrencyINR,
		InStock:            inStock(0.8),
		OfferNotes:         pickNotes(meeshoOfferNotes, 2),
		DeliveryEstimate:   pickETA(meeshoETAs),
		MatchConfidence:    0.75,
		CheckedAt:          time.Now().UTC(),
		Categories:         []string{"Fashion", "Electronics"},
	}, nil
}

func (m *Meesho) ScoreMatchConfidence(offer domain.Offer, sig domain.ProductSignature) float64 {
	c := capConfidence(tokenOverlap(sig.CanonicalName, offer.Title), 0.75)
	if hasBrandMatch(offer, sig) {
		c += 0.10
	}
	return capConfidence(c, 0.80)
}

func (m *Meesho) basePrice(sig domain.ProductSignature) decimal.Decimal {
	name := strings.ToLower(sig.CanonicalName)
	switch {
	case strings.Contains(name, "iphone") || strings.Contains(name, "samsung galaxy s"):
		return decimal.NewFromInt(42000)
	case strings.Contains(name, "laptop") || strings.Contains(name, "macbook"):
		return decimal.NewFromInt(70000)
	case strings.Contains(name, "headphone") || strings.Contains(name, "earbuds"):
		return decimal.NewFromInt(6500)
	case strings.Contains(name, "watch"):
		return decimal.NewFromInt(22000)
	case strings.Contains(name, "tablet") || strings.Contains(name, "ipad"):
		return decimal.NewFromInt(32000)
	}
	return decimal.NewFromInt(13000)
}
