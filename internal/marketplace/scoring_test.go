package marketplace

import (
	"testing"

	"github.com/pricelens/backend/internal/domain"
)

func TestTokenOverlap(t *testing.T) {
	cases := []struct {
		name       string
		canonical  string
		offerTitle string
		want       float64
	}{
		{"identical names", "apple iphone 14", "apple iphone 14", 1.0},
		{"offer title superset", "iphone 14", "apple iphone 14 pro max - Amazon", 1.0},
		{"partial overlap", "apple iphone 14", "samsung galaxy 14", 1.0 / 3.0},
		{"no overlap", "organic milk", "running shoes", 0},
		{"empty canonical name", "", "anything", 0},
		{"empty offer title", "milk", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tokenOverlap(tc.canonical, tc.offerTitle)
			if got != tc.want {
				t.Errorf("tokenOverlap(%q, %q) = %v, want %v", tc.canonical, tc.offerTitle, got, tc.want)
			}
		})
	}
}

func TestScoringHelpers(t *testing.T) {
	t.Run("hasColorMatch needs a color attribute", func(t *testing.T) {
		offer := domain.Offer{VariantDescription: "128GB, Blue"}
		if hasColorMatch(offer, domain.ProductSignature{Variant: map[string]string{}}) {
			t.Error("matched without a signature color")
		}
		if !hasColorMatch(offer, domain.ProductSignature{Variant: map[string]string{"color": "blue"}}) {
			t.Error("case-insensitive color match failed")
		}
	})

	t.Run("containsPrimaryID checks the location", func(t *testing.T) {
		offer := domain.Offer{Location: "https://www.amazon.in/dp/B08N5WRWNW"}
		if !containsPrimaryID(offer, domain.ProductSignature{PrimaryID: "B08N5WRWNW"}) {
			t.Error("primary id not found in location")
		}
		if containsPrimaryID(offer, domain.ProductSignature{}) {
			t.Error("empty primary id must never match")
		}
	})

	t.Run("containsModel checks the title", func(t *testing.T) {
		offer := domain.Offer{Title: "Apple iPhone 14 A2882 - Amazon"}
		if !containsModel(offer, domain.ProductSignature{Model: "a2882"}) {
			t.Error("case-insensitive model match failed")
		}
		if containsModel(offer, domain.ProductSignature{}) {
			t.Error("empty model must never match")
		}
	})

	t.Run("capConfidence clamps both ends", func(t *testing.T) {
		if got := capConfidence(1.2, 0.95); got != 0.95 {
			t.Errorf("capConfidence(1.2, 0.95) = %v", got)
		}
		if got := capConfidence(-0.1, 0.95); got != 0 {
			t.Errorf("capConfidence(-0.1, 0.95) = %v", got)
		}
		if got := capConfidence(0.7, 0.95); got != 0.7 {
			t.Errorf("capConfidence(0.7, 0.95) = %v", got)
		}
	})
}

func TestCategoryVocabulary(t *testing.T) {
	t.Run("grocery detection", func(t *testing.T) {
		if !isGroceryProduct("amul taaza milk 1l") {
			t.Error("milk not detected as grocery")
		}
		if isGroceryProduct("apple iphone 14 128gb blue") {
			t.Error("phone detected as grocery")
		}
	})

	t.Run("fashion detection", func(t *testing.T) {
		if !isFashionProduct("nike running shoes") {
			t.Error("shoes not detected as fashion")
		}
		if isFashionProduct("sunflower oil 1l") {
			t.Error("oil detected as fashion")
		}
	})

	t.Run("beauty detection", func(t *testing.T) {
		if !isBeautyProduct("lakme 9to5 lipstick") {
			t.Error("lipstick not detected as beauty")
		}
		if isBeautyProduct("apple iphone 14") {
			t.Error("phone detected as beauty")
		}
	})
}
