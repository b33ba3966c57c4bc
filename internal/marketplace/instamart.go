package marketplace

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Instamart is Swiggy's quick-commerce grocery source, grocery-restricted.
type Instamart struct{}

// NewInstamart creates the Instamart adapter.
func NewInstamart() *Instamart { return &Instamart{} }

func (i *Instamart) Key() string         { return "instamart" }
func (i *Instamart) DisplayName() string { return "Instamart" }
func (i *Instamart) BaseURL() string     { return "https://www.swiggy.com/instamart" }

var instamartOfferNotes = []string{
	"Delivery in 15-30 minutes",
	"Swiggy One free delivery",
	"Flat ₹25 off on first order",
	"Fresh stock guarantee",
}

var instamartETAs = []string{"15-30 minutes", "20-35 minutes", "30-45 minutes"}

func (i *Instamart) DiscoverLocations(sig domain.ProductSignature) []string {
	if !isGroceryProduct(sig.CanonicalName) {
		return nil
	}
	locations := []string{i.BaseURL() + "/search?query=" + url.QueryEscape(sig.CanonicalName)}
	if len(locations) > 2 {
		locations = locations[:2]
	}
	return locations
}

func (i *Instamart) FetchOffer(ctx context.Context, location string, sig domain.ProductSignature) (*domain.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !isGroceryProduct(sig.CanonicalName) {
		return nil, nil
	}

	listed := derivePrice(sig, location, i.basePrice(sig), 25, 25)
	fee := shippingFee(0.2, 15)

	return &domain.Offer{
		SourceKey:          i.Key(),
		SourceDisplayName:  i.DisplayName(),
		Location:           location,
		Title:              sig.CanonicalName + " - Instamart",
		VariantDescription: formatVariant(sig.Variant, "size", "capacity"),
		ListedPrice:        listed,
		ShippingFee:        fee,
		EffectivePrice:     listed.Add(fee),
		Currency:           domain.CurrencyINR,
		InStock:            inStock(0.9),
		OfferNotes:         pickNotes(instamartOfferNotes, 2),
		DeliveryEstimate:   pickETA(instamartETAs),
		MatchConfidence:    0.86,
		CheckedAt:          time.Now().UTC(),
		Categories:         []string{"Groceries", "Daily Essentials"},
	}, nil
}

func (i *Instamart) ScoreMatchConfidence(offer domain.Offer, sig domain.ProductSignature) float64 {
	if !isGroceryProduct(sig.CanonicalName) {
		return 0
	}
	return capConfidence(tokenOverlap(sig.CanonicalName, offer.Title), 0.88)
}

func (i *Instamart) basePrice(sig domain.ProductSignature) decimal.Decimal {
	name := strings.ToLower(sig.CanonicalName)
	switch {
	case strings.Contains(name, "milk"):
		return decimal.NewFromInt(62)
	case strings.Contains(name, "bread"):
		return decimal.NewFromInt(32)
	case strings.Contains(name, "eggs"):
		return decimal.NewFromInt(85)
	case strings.Contains(name, "chips"):
		return decimal.NewFromInt(50)
	case strings.Contains(name, "chocolate"):
		return decimal.NewFromInt(90)
	}
	return decimal.NewFromInt(110)
}
