package marketplace

import (
	"strings"

	"github.com/pricelens/backend/internal/domain"
)

// Confidence tiers shared across adapters. Each adapter applies its own
// source-specific caps on top of these.
const (
	confidencePrimaryID = 0.95
	confidenceModel     = 0.85
	colorBonus          = 0.05
)

// tokenOverlap is the ratio of signature-name tokens that appear as a
// substring of, or contain, some offer-title token.
func tokenOverlap(canonicalName, offerTitle string) float64 {
	nameTokens := strings.Fields(strings.ToLower(canonicalName))
	titleTokens := strings.Fields(strings.ToLower(offerTitle))
	if len(nameTokens) == 0 || len(titleTokens) == 0 {
		return 0
	}

	matched := 0
	for _, nt := range nameTokens {
		for _, tt := range titleTokens {
			if strings.Contains(tt, nt) || strings.Contains(nt, tt) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(nameTokens))
}

// hasColorMatch reports whether the signature's color attribute is textually
// present in the offer's variant description.
func hasColorMatch(offer domain.Offer, sig domain.ProductSignature) bool {
	color := sig.Variant["color"]
	if color == "" {
		return false
	}
	return strings.Contains(strings.ToLower(offer.VariantDescription), strings.ToLower(color))
}

// hasBrandMatch reports whether the signature's brand appears in the
// offer title.
func hasBrandMatch(offer domain.Offer, sig domain.ProductSignature) bool {
	if sig.Brand == "" {
		return false
	}
	return strings.Contains(strings.ToLower(offer.Title), strings.ToLower(sig.Brand))
}

// containsPrimaryID reports whether the offer's location embeds the
// signature's primary identifier.
func containsPrimaryID(offer domain.Offer, sig domain.ProductSignature) bool {
	return sig.PrimaryID != "" && strings.Contains(offer.Location, sig.PrimaryID)
}

// containsModel reports whether the offer title mentions the signature's
// model number.
func containsModel(offer domain.Offer, sig domain.ProductSignature) bool {
	return sig.Model != "" && strings.Contains(strings.ToLower(offer.Title), strings.ToLower(sig.Model))
}

func capConfidence(c, ceiling float64) float64 {
	if c > ceiling {
		return ceiling
	}
	if c < 0 {
		return 0
	}
	return c
}
