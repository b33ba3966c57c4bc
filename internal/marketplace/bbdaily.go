package marketplace

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// BBDaily is the BigBasket daily-essentials source, grocery-restricted.
type BBDaily struct{}

// NewBBDaily creates the BB Daily adapter.
func NewBBDaily() *BBDaily { return &BBDaily{} }

func (b *BBDaily) Key() string         { return "bbdaily" }
func (b *BBDaily) DisplayName() string { return "BB Daily" }
func (b *BBDaily) BaseURL() string     { return "https://www.bigbasket.com" }

var bbdailyOfferNotes = []string{
	"Subscribe and save 5%",
	"Morning delivery before 7 AM",
	"Free delivery on subscriptions",
	"Fresh from the farm",
	"bbstar member discount",
}

var bbdailyETAs = []string{"Next morning", "Same day", "Tomorrow 7-9 AM"}

func (b *BBDaily) DiscoverLocations(sig domain.ProductSignature) []string {
	if !isGroceryProduct(sig.CanonicalName) {
		return nil
	}
	locations := []string{b.BaseURL() + "/ps/?q=" + url.QueryEscape(sig.CanonicalName)}
	if len(locations) > 2 {
		locations = locations[:2]
	}
	return locations
}

func (b *BBDaily) FetchOffer(ctx context.Context, location string, sig domain.ProductSignature) (*domain.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !isGroceryProduct(sig.CanonicalName) {
		return nil, nil
	}

	listed := derivePrice(sig, location, b.basePrice(sig), 40, 40)
	fee := shippingFee(0.3, 25)

	return &domain.Offer{
		SourceKey:          b.Key(),
		SourceDisplayName:  b.DisplayName(),
		Location:           location,
		Title:              sig.CanonicalName + " - BB Daily",
		VariantDescription: formatVariant(sig.Variant, "size", "capacity"),
		ListedPrice:        listed,
		ShippingFee:        fee,
		EffectivePrice:     listed.Add(fee),
		Currency:           domain.CurrencyINR,
		InStock:            inStock(0.9),
		OfferNotes:         pickNotes(bbdailyOfferNotes, 2),
		DeliveryEstimate:   pickETA(bbdailyETAs),
		MatchConfidence:    0.88,
		CheckedAt:          time.Now().UTC(),
		Categories:         []string{"Groceries", "Daily Essentials"},
	}, nil
}

func (b *BBDaily) ScoreMatchConfidence(offer domain.Offer, sig domain.ProductSignature) float64 {
	if !isGroceryProduct(sig.CanonicalName) {
		return 0
	}
	return capConfidence(tokenOverlap(sig.CanonicalName, offer.Title), 0.90)
}

func (b *BBDaily) basePrice(sig domain.ProductSignature) decimal.Decimal {
	name := strings.ToLower(sig.CanonicalName)
	switch {
	case strings.Contains(name, "milk"):
		return decimal.NewFromInt(55)
	case strings.Contains(name, "bread"):
		return decimal.NewFromInt(28)
	case strings.Contains(name, "eggs"):
		return decimal.NewFromInt(75)
	case strings.Contains(name, "oil"):
		return decimal.NewFromInt(190)
	case strings.Contains(name, "rice"):
		return decimal.NewFromInt(320)
	case strings.Contains(name, "atta") || strings.Contains(name, "flour"):
		return decimal.NewFromInt(260)
	}
	return decimal.NewFromInt(90)
}
