package marketplace

import (
	"testing"

	"github.com/pricelens/backend/internal/domain"
	"github.com/shopspring/decimal"
)

func TestDerivePrice(t *testing.T) {
	base := decimal.NewFromInt(1000)

	t.Run("anchor location reproduces the anchor exactly", func(t *testing.T) {
		sig := domain.ProductSignature{
			PrimaryID:     "B0BDJH6GL2",
			OriginalPrice: decimal.NewFromInt(79900),
		}
		for i := 0; i < 20; i++ {
			got := derivePrice(sig, "https://www.amazon.in/dp/B0BDJH6GL2", base, 250, 1000)
			if !got.Equal(sig.OriginalPrice) {
				t.Fatalf("price = %s, want the exact anchor", got)
			}
		}
	})

	t.Run("anchor jitter stays within the span", func(t *testing.T) {
		sig := domain.ProductSignature{OriginalPrice: decimal.NewFromInt(500)}
		lo := decimal.NewFromInt(500 - 50)
		hi := decimal.NewFromInt(500 + 50)
		for i := 0; i < 50; i++ {
			got := derivePrice(sig, "https://elsewhere.example", base, 50, 1000)
			if got.LessThan(lo) || got.GreaterThan(hi) {
				t.Fatalf("price = %s, want within [%s, %s]", got, lo, hi)
			}
		}
	})

	t.Run("price never goes non-positive", func(t *testing.T) {
		sig := domain.ProductSignature{OriginalPrice: decimal.NewFromInt(10)}
		for i := 0; i < 50; i++ {
			got := derivePrice(sig, "https://elsewhere.example", base, 500, 1000)
			if !got.IsPositive() {
				t.Fatalf("price = %s, want positive", got)
			}
		}
	})

	t.Run("table price applies without an anchor", func(t *testing.T) {
		lo := decimal.NewFromInt(1000 - 200)
		hi := decimal.NewFromInt(1000 + 200)
		for i := 0; i < 50; i++ {
			got := derivePrice(domain.ProductSignature{}, "https://anywhere.example", base, 50, 200)
			if got.LessThan(lo) || got.GreaterThan(hi) {
				t.Fatalf("price = %s, want within [%s, %s]", got, lo, hi)
			}
		}
	})
}

func TestPickNotes(t *testing.T) {
	pool := []string{"a", "b", "c", "d"}

	t.Run("selects between one and max notes", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			notes := pickNotes(pool, 2)
			if len(notes) < 1 || len(notes) > 2 {
				t.Fatalf("len(notes) = %d, want 1..2", len(notes))
			}
		}
	})

	t.Run("max beyond pool size is clamped", func(t *testing.T) {
		notes := pickNotes(pool, 10)
		if len(notes) > len(pool) {
			t.Errorf("len(notes) = %d, want <= %d", len(notes), len(pool))
		}
	})

	t.Run("empty pool yields empty", func(t *testing.T) {
		if notes := pickNotes(nil, 3); len(notes) != 0 {
			t.Errorf("notes = %v, want empty", notes)
		}
	})
}

func TestFormatVariant(t *testing.T) {
	variant := map[string]string{"capacity": "128GB", "color": "Blue"}

	if got := formatVariant(variant, "capacity", "color", "size"); got != "128GB, Blue" {
		t.Errorf("formatVariant = %q, want %q", got, "128GB, Blue")
	}
	if got := formatVariant(map[string]string{}, "capacity"); got != "" {
		t.Errorf("formatVariant(empty) = %q, want empty", got)
	}
}
