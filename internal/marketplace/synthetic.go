package marketplace

import (
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/pricelens/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// The synthetic layer stands in for live retrieval: prices, stock, notes and
// delivery estimates are generated, not scraped. The anchor policy below is
// contractual; the jitter magnitudes are per-source flavor only.

// derivePrice applies the shared price policy. A carried-over anchor price is
// never recomputed: a location that embeds the signature's own primary
// identifier reproduces the anchor exactly, any other location gets a small
// source-specific jitter around it. Without an anchor, the adapter's private
// price table supplies the base and a wider jitter applies.
func derivePrice(sig domain.ProductSignature, location string, base decimal.Decimal, anchorSpan, tableSpan int) decimal.Decimal {
	if sig.HasAnchorPrice() {
		if sig.PrimaryID != "" && strings.Contains(location, sig.PrimaryID) {
			return sig.OriginalPrice
		}
		return clampPositive(sig.OriginalPrice.Add(jitter(anchorSpan)), sig.OriginalPrice)
	}
	return clampPositive(base.Add(jitter(tableSpan)), base)
}

func jitter(span int) decimal.Decimal {
	if span <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(gofakeit.Number(-span, span)))
}

func clampPositive(price, fallback decimal.Decimal) decimal.Decimal {
	if price.IsPositive() {
		return price
	}
	return fallback
}

// shippingFee returns the flat fee with the given probability, zero otherwise.
func shippingFee(probability float64, fee int64) decimal.Decimal {
	if gofakeit.Float64Range(0, 1) < probability {
		return decimal.NewFromInt(fee)
	}
	return decimal.Zero
}

func inStock(probability float64) bool {
	return gofakeit.Float64Range(0, 1) < probability
}

// pickNotes selects between 1 and max promotional notes from the pool.
func pickNotes(pool []string, max int) []string {
	if len(pool) == 0 || max <= 0 {
		return []string{}
	}
	if max > len(pool) {
		max = len(pool)
	}
	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	gofakeit.ShuffleStrings(shuffled)
	return shuffled[:gofakeit.Number(1, max)]
}

func pickETA(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return gofakeit.RandomString(options)
}

// formatVariant joins the named variant attributes in the given order.
func formatVariant(variant map[string]string, keys ...string) string {
	var parts []string
	for _, key := range keys {
		if v := variant[key]; v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}
