// Package valuation derives portfolio analytics from fetched snapshots:
// position enrichment, summary aggregation, and performance over a
// historical series. All functions are pure; the engine owns no state.
package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/simaogato/foliodash-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Enrich joins every position of the portfolio with its asset metadata
// and computes the derived value and portfolio weight.
// Logic:
//  1. Resolve each position's asset by id; a missing id is substituted
//     with the placeholder asset so every position stays represented
//  2. Value = Quantity × Price, using the price captured with the
//     position (not re-fetched)
//  3. PercentageOfPortfolio = Value / totalValue × 100; when the total
//     is zero every percentage is zero
//
// Always returns a non-nil slice, empty when the portfolio has no
// positions.
func Enrich(portfolio *domain.Portfolio, registry domain.AssetRegistry) []domain.EnrichedPosition {
	if portfolio == nil || len(portfolio.Positions) == 0 {
		return []domain.EnrichedPosition{}
	}

	enriched := make([]domain.EnrichedPosition, 0, len(portfolio.Positions))
	totalValue := decimal.Zero

	for _, pos := range portfolio.Positions {
		assetDetails, ok := registry[pos.Asset]
		if !ok {
			assetDetails = domain.PlaceholderAsset(pos.Asset)
		}

		value := pos.Quantity.Mul(pos.Price)
		totalValue = totalValue.Add(value)

		enriched = append(enriched, domain.EnrichedPosition{
			Position:     pos,
			AssetDetails: assetDetails,
			CurrentPrice: pos.Price,
			Value:        value,
		})
	}

	for i := range enriched {
		enriched[i].PercentageOfPortfolio = percentageOf(enriched[i].Value, totalValue)
	}

	return enriched
}

// Summarize aggregates enriched positions into a portfolio summary.
// Returns nil when the input is empty, meaning "not yet computable"
// rather than an error.
//
// The class grouping carries one entry per asset class present in the
// input, in first-seen order; classes with no positions are omitted.
// The asset grouping carries one entry per enriched position: duplicate
// assets across positions are not merged. TotalValue is the exact
// summation used as the percentage denominator.
func Summarize(enriched []domain.EnrichedPosition) *domain.PortfolioSummary {
	if len(enriched) == 0 {
		return nil
	}

	totalValue := decimal.Zero
	for _, pos := range enriched {
		totalValue = totalValue.Add(pos.Value)
	}

	classOrder := make([]domain.AssetType, 0, 3)
	classValues := make(map[domain.AssetType]decimal.Decimal, 3)
	for _, pos := range enriched {
		class := pos.AssetDetails.Type
		if _, seen := classValues[class]; !seen {
			classOrder = append(classOrder, class)
			classValues[class] = decimal.Zero
		}
		classValues[class] = classValues[class].Add(pos.Value)
	}

	byAssetClass := make([]domain.AssetClassSummary, 0, len(classOrder))
	for _, class := range classOrder {
		byAssetClass = append(byAssetClass, domain.AssetClassSummary{
			Type:       class,
			Value:      classValues[class],
			Percentage: percentageOf(classValues[class], totalValue),
		})
	}

	byAsset := make([]domain.AssetSummary, 0, len(enriched))
	for _, pos := range enriched {
		byAsset = append(byAsset, domain.AssetSummary{
			Asset:      pos.AssetDetails,
			Value:      pos.Value,
			Percentage: pos.PercentageOfPortfolio,
		})
	}

	return &domain.PortfolioSummary{
		TotalValue:   totalValue,
		ByAssetClass: byAssetClass,
		ByAsset:      byAsset,
	}
}

// ComputePerformance compares the first and last points of a series:
// absolute change and percentage change over whatever window the series
// covers. No smoothing, no annualization.
// The second return value is false when the series has fewer than two
// points and performance is undefined.
func ComputePerformance(series []domain.HistoricalDataPoint) (domain.Performance, bool) {
	if len(series) < 2 {
		return domain.Performance{}, false
	}

	first := series[0].Value
	last := series[len(series)-1].Value
	absolute := last.Sub(first)

	return domain.Performance{
		Absolute:   absolute,
		Percentage: percentageOf(absolute, first),
	}, true
}

// percentageOf returns part / whole × 100, or zero when whole is zero.
func percentageOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
