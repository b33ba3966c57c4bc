package marketplace

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Zepto is a quick-commerce grocery source. Non-grocery signatures are
// filtered out before any location is probed.
type Zepto struct{}

// NewZepto creates the Zepto adapter.
func NewZepto() *Zepto { return &Zepto{} }

func (z *Zepto) Key() string         { return "zepto" }
func (z *Zepto) DisplayName() string { return "Zepto" }
func (z *Zepto) BaseURL() string     { return "https://www.zeptonow.com" }

var zeptoOfferNotes = []string{
	"10-minute delivery",
	"Fresh guarantee",
	"No delivery charges",
	"Same day delivery",
	"Express delivery available",
}

func (z *Zepto) DiscoverLocations(sig domain.ProductSignature) []string {
	if !isGroceryProduct(sig.CanonicalName) {
		return nil
	}
	locations := []string{z.BaseURL() + "/search?query=" + url.QueryEscape(sig.CanonicalName)}
	if len(locations) > 2 {
		locations = locations[:2]
	}
	return locations
}

func (z *Zepto) FetchOffer(ctx context.Context, location string, sig domain.ProductSignature) (*domain.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !isGroceryProduct(sig.CanonicalName) {
		return nil, nil
	}

	listed := derivePrice(sig, location, z.basePrice(sig), 20, 20)

	return &domain.Offer{
		SourceKey:          z.Key(),
		SourceDisplayName:  z.DisplayName(),
		Location:           location,
		Title:              sig.CanonicalName + " - Quick delivery",
		VariantDescription: formatVariant(sig.Variant, "size", "capacity"),
		ListedPrice:        listed,
		ShippingFee:        decimal.Zero,
		EffectivePrice:     listed,
		Currency:           domain.CurrencyINR,
		InStock:            inStock(0.9),
		OfferNotes:         pickNotes(zeptoOfferNotes, 2),
		DeliveryEstimate:   "10-15 minutes",
		MatchConfidence:    0.85,
		CheckedAt:          time.Now().UTC(),
		Categories:         []string{"Groceries", "Daily Essentials"},
	}, nil
}

func (z *Zepto) ScoreMatchConfidence(offer domain.Offer, sig domain.ProductSignature) float64 {
	if !isGroceryProduct(sig.CanonicalName) {
		return 0
	}
	return capConfidence(tokenOverlap(sig.CanonicalName, offer.Title), 0.90)
}

func (z *Zepto) basePrice(sig domain.ProductSignature) decimal.Decimal {
	name := strings.ToLower(sig.CanonicalName)
	switch {
	case strings.Contains(name, "milk"):
		return decimal.NewFromInt(60)
	case strings.Contains(name, "bread"):
		return decimal.NewFromInt(30)
	case strings.Contains(name, "eggs"):
		return decimal.NewFromInt(80)
	case strings.Contains(name, "oil"):
		return decimal.NewFromInt(200)
	case strings.Contains(name, "shampoo"):
		return decimal.NewFromInt(250)
	case strings.Contains(name, "soap"):
		return decimal.NewFromInt(40)
	}
	return decimal.NewFromInt(100)
}
