package marketplace

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/pricelens/backend/internal/domain"
	"github.com/shopspring/decimal"
)

func phoneSignature() domain.ProductSignature {
	return domain.ProductSignature{
		SourceKey:      "amazon",
		InputReference: "https://www.amazon.in/dp/B0BDJH6GL2",
		CanonicalName:  "apple iphone 14 128gb blue",
		Brand:          "Apple",
		PrimaryID:      "B0BDJH6GL2",
		Currency:       domain.CurrencyINR,
		Variant:        map[string]string{"capacity": "128GB", "color": "Blue"},
	}
}

func TestAmazonDiscoverLocations(t *testing.T) {
	a := NewAmazon()

	t.Run("detail page plus search when id is known", func(t *testing.T) {
		locations := a.DiscoverLocations(phoneSignature())
		if len(locations) != 2 {
			t.Fatalf("len(locations) = %d, want 2", len(locations))
		}
		if locations[0] != "https://www.amazon.in/dp/B0BDJH6GL2" {
			t.Errorf("locations[0] = %q", locations[0])
		}
		if !strings.Contains(locations[1], "/s?k=") {
			t.Errorf("locations[1] = %q, want a search location", locations[1])
		}
	})

	t.Run("search only without an id", func(t *testing.T) {
		sig := phoneSignature()
		sig.PrimaryID = ""
		locations := a.DiscoverLocations(sig)
		if len(locations) != 1 {
			t.Fatalf("len(locations) = %d, want 1", len(locations))
		}
	})
}

func TestAmazonFetchOffer(t *testing.T) {
	a := NewAmazon()
	ctx := context.Background()

	t.Run("anchor price is exact on the anchor location", func(t *testing.T) {
		sig := phoneSignature()
		sig.OriginalPrice = decimal.NewFromInt(79900)

		offer, err := a.FetchOffer(ctx, "https://www.amazon.in/dp/B0BDJH6GL2", sig)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !offer.ListedPrice.Equal(decimal.NewFromInt(79900)) {
			t.Errorf("ListedPrice = %s, want exactly 79900", offer.ListedPrice)
		}
	})

	t.Run("anchor price jitters on other locations", func(t *testing.T) {
		sig := phoneSignature()
		sig.OriginalPrice = decimal.NewFromInt(79900)

		offer, err := a.FetchOffer(ctx, "https://www.amazon.in/s?k=iphone", sig)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lo := decimal.NewFromInt(79900 - 250)
		hi := decimal.NewFromInt(79900 + 250)
		if offer.ListedPrice.LessThan(lo) || offer.ListedPrice.GreaterThan(hi) {
			t.Errorf("ListedPrice = %s, want within 250 of the anchor", offer.ListedPrice)
		}
	})

	t.Run("table price applies without an anchor", func(t *testing.T) {
		sig := phoneSignature()

		offer, err := a.FetchOffer(ctx, "https://www.amazon.in/s?k=iphone", sig)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lo := decimal.NewFromInt(45000 - 1000)
		hi := decimal.NewFromInt(45000 + 1000)
		if offer.ListedPrice.LessThan(lo) || offer.ListedPrice.GreaterThan(hi) {
			t.Errorf("ListedPrice = %s, want within 1000 of the 45000 base", offer.ListedPrice)
		}
	})

	t.Run("effective price is listed plus shipping", func(t *testing.T) {
		offer, err := a.FetchOffer(ctx, "https://www.amazon.in/dp/B0BDJH6GL2", phoneSignature())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !offer.EffectivePrice.Equal(offer.ListedPrice.Add(offer.ShippingFee)) {
			t.Errorf("EffectivePrice = %s, want %s + %s",
				offer.EffectivePrice, offer.ListedPrice, offer.ShippingFee)
		}
		if offer.Currency != domain.CurrencyINR {
			t.Errorf("Currency = %q, want INR", offer.Currency)
		}
		if len(offer.OfferNotes) == 0 {
			t.Error("OfferNotes empty, want at least one")
		}
	})

	t.Run("canceled context aborts the fetch", func(t *testing.T) {
		canceled, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := a.FetchOffer(canceled, "https://www.amazon.in/dp/B0BDJH6GL2", phoneSignature())
		if err == nil {
			t.Error("expected context error")
		}
	})
}

func TestAmazonScoreMatchConfidence(t *testing.T) {
	a := NewAmazon()
	sig := phoneSignature()

	t.Run("primary id in location wins the top tier", func(t *testing.T) {
		offer := domain.Offer{Location: "https://www.amazon.in/dp/B0BDJH6GL2", Title: "unrelated"}
		if got := a.ScoreMatchConfidence(offer, sig); got != 0.95 {
			t.Errorf("score = %v, want 0.95", got)
		}
	})

	t.Run("model in title takes the second tier", func(t *testing.T) {
		withModel := sig
		withModel.PrimaryID = ""
		withModel.Model = "A2882"
		offer := domain.Offer{Title: "Apple iPhone 14 A2882 - Amazon"}
		if got := a.ScoreMatchConfidence(offer, withModel); got != 0.85 {
			t.Errorf("score = %v, want 0.85", got)
		}
	})

	t.Run("token overlap is capped", func(t *testing.T) {
		noID := sig
		noID.PrimaryID = ""
		offer := domain.Offer{Title: "apple iphone 14 128gb blue - Amazon"}
		if got := a.ScoreMatchConfidence(offer, noID); got != 0.80 {
			t.Errorf("score = %v, want the 0.80 overlap cap", got)
		}
	})

	t.Run("color match adds a bonus within the source cap", func(t *testing.T) {
		noID := sig
		noID.PrimaryID = ""
		offer := domain.Offer{
			Title:              "apple iphone 14 128gb blue - Amazon",
			VariantDescription: "128GB, Blue",
		}
		if got := a.ScoreMatchConfidence(offer, noID); math.Abs(got-0.85) > 1e-9 {
			t.Errorf("score = %v, want 0.80 + 0.05 color bonus", got)
		}
	})
}

func TestAmazonExtractSignature(t *testing.T) {
	a := NewAmazon()

	t.Run("parses the ASIN from a detail reference", func(t *testing.T) {
		sig, err := a.ExtractSignature("https://www.amazon.in/apple-iphone-14/dp/B0BDJH6GL2?ref=sr_1_1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sig.PrimaryID != "B0BDJH6GL2" {
			t.Errorf("PrimaryID = %q, want B0BDJH6GL2", sig.PrimaryID)
		}
		if sig.SourceKey != "amazon" {
			t.Errorf("SourceKey = %q, want amazon", sig.SourceKey)
		}
		if sig.CanonicalName != domain.PlaceholderName {
			t.Errorf("CanonicalName = %q, want placeholder for later backfill", sig.CanonicalName)
		}
	})

	t.Run("rejects references without an ASIN", func(t *testing.T) {
		_, err := a.ExtractSignature("https://www.amazon.in/s?k=iphone")
		if !errors.Is(err, domain.ErrInvalidReference) {
			t.Errorf("error = %v, want ErrInvalidReference", err)
		}
	})
}
