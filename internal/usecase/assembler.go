package usecase

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/pricelens/backend/internal/domain"
)

// AssembleResult is the contract boundary toward the presentation layer:
// pure shaping of the engine's intermediate state, no logic of its own.
func AssembleResult(sig domain.ProductSignature, offers []domain.Offer, sourcesChecked int, elapsed time.Duration) *domain.ComparisonResult {
	if offers == nil {
		offers = []domain.Offer{}
	}
	return &domain.ComparisonResult{
		Signature:      sig,
		Offers:         offers,
		BestBuy:        buildBestBuy(offers),
		SourcesChecked: sourcesChecked,
		DurationMs:     elapsed.Milliseconds(),
	}
}

// sortOffers orders offers ascending by effective price. The sort is stable:
// offers at the same price keep their encounter order.
func sortOffers(offers []domain.Offer) {
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].EffectivePrice.LessThan(offers[j].EffectivePrice)
	})
}

// buildBestBuy picks the first (cheapest) offer and explains the choice.
func buildBestBuy(offers []domain.Offer) *domain.BestBuy {
	if len(offers) == 0 {
		return nil
	}
	best := offers[0]

	stockNote := "Limited stock"
	if best.InStock {
		stockNote = "In stock"
	}
	rationale := []string{
		"Lowest price",
		stockNote,
		fmt.Sprintf("%d%% match confidence", int(math.Round(best.MatchConfidence*100))),
	}

	return &domain.BestBuy{
		SourceKey:         best.SourceKey,
		SourceDisplayName: best.SourceDisplayName,
		Location:          best.Location,
		EffectivePrice:    best.EffectivePrice,
		Rationale:         rationale,
	}
}
