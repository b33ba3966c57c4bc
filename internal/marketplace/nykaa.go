package marketplace

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Nykaa is a beauty-and-personal-care-restricted source.
type Nykaa struct{}

// NewNykaa creates the Nykaa adapter.
func NewNykaa() *Nykaa { return &Nykaa{} }

func (n *Nykaa) Key() string         { return "nykaa" }
func (n *Nykaa) DisplayName() string { return "Nykaa" }
func (n *Nykaa) BaseURL() string     { return "https://www.nykaa.com" }

var nykaaOfferNotes = []string{
	"Free gift on orders above ₹799",
	"Nykaa Pink Friday preview deals",
	"Buy 1 Get 1 on select brands",
	"Extra 5% off on prepaid orders",
	"Authenticity guaranteed",
}

var nykaaETAs = []string{"2-4 days", "3-5 days", "1 week"}

func (n *Nykaa) DiscoverLocations(sig domain.ProductSignature) []string {
	if !isBeautyProduct(sig.CanonicalName) {
		return nil
	}
	locations := []string{n.BaseURL() + "/search?query=" + url.QueryEscape(sig.CanonicalName)}
	if len(locations) > 3 {
		locations = locations[:3]
	}
	return locations
}

func (n *Nykaa) FetchOffer(ctx context.Context, location string, sig domain.ProductSignature) (*domain.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !isBeautyProduct(sig.CanonicalName) {
		return nil, nil
	}

	listed := derivePrice(sig, location, n.basePrice(sig), 200, 200)
	fee := shippingFee(0.3, 50)

	return &domain.Offer{
		SourceKey:          n.Key(),
		SourceDisplayName:  n.DisplayName(),
		Location:           location,
		Title:              sig.CanonicalName + " - Beauty",
		VariantDescription: formatVariant(sig.Variant, "size", "color"),
		ListedPrice:        listed,
		ShippingFee:        fee,
		EffectivePrice:     listed.Add(fee),
		Currency:           domain.CurrencyINR,
		InStock:            inStock(0.85),
		OfferNotes:         pickNotes(nykaaOfferNotes, 2),
		DeliveryEstimate:   pickETA(nykaaETAs),
		MatchConfidence:    0.88,
		CheckedAt:          time.Now().UTC(),
		Categories:         []string{"Beauty", "Cosmetics", "Skincare", "Personal Care"},
	}, nil
}

func (n *Nykaa) ScoreMatchConfidence(offer domain.Offer, sig domain.ProductSignature) float64 {
	if !isBeautyProduct(sig.CanonicalName) {
		return 0
	}
	c := capConfidence(tokenOverlap(sig.CanonicalName, offer.Title), 0.90)
	// Brand is the strongest signal for beauty products.
	if hasBrandMatch(offer, sig) {
		c += 0.05
	}
	return capConfidence(c, 0.92)
}

func (n *Nykaa) basePrice(sig domain.ProductSignature) decimal.Decimal {
	name := strings.ToLower(sig.CanonicalName)
	switch {
	case strings.Contains(name, "lipstick"):
		return decimal.NewFromInt(450)
	case strings.Contains(name, "foundation"):
		return decimal.NewFromInt(700)
	case strings.Contains(name, "serum"):
		return decimal.NewFromInt(850)
	case strings.Contains(name, "shampoo"):
		return decimal.NewFromInt(350)
	case strings.Contains(name, "perfume"):
		return decimal.NewFromInt(1600)
	case strings.Contains(name, "sunscreen"):
		return decimal.NewFromInt(500)
	}
	return decimal.NewFromInt(600)
}
