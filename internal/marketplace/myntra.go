package marketplace

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Myntra is a fashion-restricted source.
type Myntra struct{}

// NewMyntra creates the Myntra adapter.
func NewMyntra() *Myntra { return &Myntra{} }

func (m *Myntra) Key() string         { return "myntra" }
func (m *Myntra) DisplayName() string { return "Myntra" }
func (m *Myntra) BaseURL() string     { return "https://www.myntra.com" }

var myntraOfferNotes = []string{
	"Buy 2 Get 1 Free",
	"Flat 40% off on minimum purchase",
	"Free shipping on orders above ₹999",
	"Easy 30-day returns",
	"Try & Buy available",
	"Myntra Insider benefits",
	"Bank offer: Extra 10% off",
}

var myntraETAs = []string{"2-3 days", "3-5 days", "1 week", "Express delivery"}

func (m *Myntra) DiscoverLocations(sig domain.ProductSignature) []string {
	if !isFashionProduct(sig.CanonicalName) {
		return nil
	}
	locations := []string{m.BaseURL() + "/search?q=" + url.QueryEscape(sig.CanonicalName)}
	if len(locations) > 3 {
		locations = locations[:3]
	}
	return locations
}

func (m *Myntra) FetchOffer(ctx context.Context, location string, sig domain.ProductSignature) (*domain.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !isFashionProduct(sig.CanonicalName) {
		return nil, nil
	}

	listed := derivePrice(sig, location, m.basePrice(sig), 150, 500)
	fee := shippingFee(0.4, 99)

	return &domain.Offer{
		SourceKey:          m.Key(),
		SourceDisplayName:  m.DisplayName(),
		Location:           location,
		Title:              sig.CanonicalName + " - Fashion",
		VariantDescription: m.formatVariant(sig.Variant),
		ListedPrice:        listed,
		ShippingFee:        fee,
		EffectivePrice:     listed.Add(fee),
		Currency:           domain.CurrencyINR,
		InStock:            inStock(0.8),
		OfferNotes:         pickNotes(myntraOfferNotes, 3),
		DeliveryEstimate:   pickETA(myntraETAs),
		MatchConfidence:    0.82,
		CheckedAt:          time.Now().UTC(),
		Categories:         []string{"Fashion", "Clothing", "Accessories"},
	}, nil
}

func (m *Myntra) ScoreMatchConfidence(offer domain.Offer, sig domain.ProductSignature) float64 {
	if !isFashionProduct(sig.CanonicalName) {
		return 0
	}
	c := capConfidence(tokenOverlap(sig.CanonicalName, offer.Title), 0.85)
	// Size matters most for fashion matches.
	if size := sig.Variant["size"]; size != "" && strings.Contains(offer.VariantDescription, size) {
		c += 0.10
	}
	return capConfidence(c, 0.90)
}

// formatVariant labels the size explicitly, the way fashion listings do.
func (m *Myntra) formatVariant(variant map[string]string) string {
	var parts []string
	if size := variant["size"]; size != "" {
		parts = append(parts, "Size: "+size)
	}
	if color := variant["color"]; color != "" {
		parts = append(parts, color)
	}
	return strings.Join(parts, ", ")
}

func (m *Myntra) basePrice(sig domain.ProductSignature) decimal.Decimal {
	name := strings.ToLower(sig.CanonicalName)
	switch {
	case strings.Contains(name, "shirt"):
		return decimal.NewFromInt(800)
	case strings.Contains(name, "jeans") || strings.Contains(name, "pants"):
		return decimal.NewFromInt(1200)
	case strings.Contains(name, "dress"):
		return decimal.NewFromInt(1500)
	case strings.Contains(name, "shoes") || strings.Contains(name, "sneakers"):
		return decimal.NewFromInt(2500)
	case strings.Contains(name, "watch"):
		return decimal.NewFromInt(3500)
	case strings.Contains(name, "bag"):
		return decimal.NewFromInt(1800)
	case strings.Contains(name, "jacket") || strings.Contains(name, "hoodie"):
		return decimal.NewFromInt(2200)
	}
	return decimal.NewFromInt(1000)
}
