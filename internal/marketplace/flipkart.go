package marketplace

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Flipkart is an unrestricted general marketplace.
type Flipkart struct{}

// NewFlipkart creates the Flipkart adapter.
func NewFlipkart() *Flipkart { return &Flipkart{} }

func (f *Flipkart) Key() string         { return "flipkart" }
func (f *Flipkart) DisplayName() string { return "Flipkart" }
func (f *Flipkart) BaseURL() string     { return "https://www.flipkart.com" }

var flipkartOfferNotes = []string{
	"Bank offer: 10% off with Axis Bank cards",
	"Exchange offer up to ₹20,000",
	"Flipkart Plus delivery",
	"No cost EMI from ₹2,500/month",
	"F-Assured product quality",
	"Extra ₹1000 off on prepaid orders",
}

var flipkartETAs = []string{"2-3 days", "3-4 days", "4-5 days", "1 week", "Express delivery"}

func (f *Flipkart) DiscoverLocations(sig domain.ProductSignature) []string {
	var locations []string
	if sig.CanonicalName != "" {
		locations = append(locations, f.BaseURL()+"/search?q="+url.QueryEscape(sig.CanonicalName))
	}
	if len(locations) > 3 {
		locations = locations[:3]
	}
	return locations
}

func (f *Flipkart) FetchOffer(ctx context.Context, location string, sig domain.ProductSignature) (*domain.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	listed := derivePrice(sig, location, f.basePrice(sig), 250, 1500)
	fee := shippingFee(0.2, 40)

	return &domain.Offer{
		SourceKey:          f.Key(),
		SourceDisplayName:  f.DisplayName(),
		Location:           location,
		Title:              sig.CanonicalName + " - Flipkart",
		VariantDescription: formatVariant(sig.Variant, "capacity", "color", "size"),
		ListedPrice:        listed,
		ShippingFee:        fee,
		EffectivePrice:     listed.Add(fee),
		Currency:           domain.CurrencyINR,
		InStock:            inStock(0.85),
		OfferNotes:         pickNotes(flipkartOfferNotes, 3),
		DeliveryEstimate:   pickETA(flipkartETAs),
		MatchConfidence:    0.88,
		CheckedAt:          time.Now().UTC(),
		Categories:         []string{"Electronics", "Mobiles"},
	}, nil
}

func (f *Flipkart) ScoreMatchConfidence(offer domain.Offer, sig domain.ProductSignature) float64 {
	var c float64
	if containsModel(offer, sig) {
		c = 0.90
	} else {
		c = capConfidence(tokenOverlap(sig.CanonicalName, offer.Title), 0.85)
	}
	if hasBrandMatch(offer, sig) {
		c += 0.05
	}
	return capConfidence(c, 0.90)
}

func (f *Flipkart) basePrice(sig domain.ProductSignature) decimal.Decimal {
	name := strings.ToLower(sig.CanonicalName)
	switch {
	case strings.Contains(name, "iphone") || strings.Contains(name, "samsung galaxy s"):
		return decimal.NewFromInt(44000)
	case strings.Contains(name, "laptop") || strings.Contains(name, "macbook"):
		return decimal.NewFromInt(73000)
	case strings.Contains(name, "headphone") || strings.Contains(name, "earbuds"):
		return decimal.NewFromInt(7500)
	case strings.Contains(name, "watch"):
		return decimal.NewFromInt(24000)
	case strings.Contains(name, "tablet") || strings.Contains(name, "ipad"):
		return decimal.NewFromInt(34000)
	}
	return decimal.NewFromInt(14500)
}
