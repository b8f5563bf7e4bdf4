package valuation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/foliodash-backend/internal/domain"
)

func testRegistry() domain.AssetRegistry {
	return domain.BuildRegistry([]domain.Asset{
		{ID: "asset-aapl", Name: "AAPL", Type: domain.AssetTypeStock},
		{ID: "asset-googl", Name: "GOOGL", Type: domain.AssetTypeStock},
		{ID: "asset-btc", Name: "BTC", Type: domain.AssetTypeCrypto},
		{ID: "asset-usd", Name: "USD", Type: domain.AssetTypeFiat},
	})
}

func TestEnrich_ValuesAndPercentages(t *testing.T) {
	// Setup: AAPL 50 @ 178.50 and BTC 0.5 @ 43250.00
	portfolio := &domain.Portfolio{
		ID:   "portfolio-1",
		AsOf: "2024-01-15",
		Positions: []domain.Position{
			{ID: 1, Asset: "asset-aapl", Quantity: decimal.NewFromInt(50), AsOf: "2024-01-15", Price: decimal.RequireFromString("178.50")},
			{ID: 2, Asset: "asset-btc", Quantity: decimal.RequireFromString("0.5"), AsOf: "2024-01-15", Price: decimal.RequireFromString("43250.00")},
		},
	}

	enriched := Enrich(portfolio, testRegistry())
	require.Len(t, enriched, 2)

	// Values: 8925.00 and 21625.00, total 30550.00
	assert.True(t, enriched[0].Value.Equal(decimal.RequireFromString("8925.00")), "got %s", enriched[0].Value)
	assert.True(t, enriched[1].Value.Equal(decimal.RequireFromString("21625.00")), "got %s", enriched[1].Value)

	// Percentages: 29.2% and 70.8% rounded to one decimal
	assert.Equal(t, "29.2", enriched[0].PercentageOfPortfolio.StringFixed(1))
	assert.Equal(t, "70.8", enriched[1].PercentageOfPortfolio.StringFixed(1))

	// Asset metadata resolved from the registry
	assert.Equal(t, "AAPL", enriched[0].AssetDetails.Name)
	assert.Equal(t, domain.AssetTypeCrypto, enriched[1].AssetDetails.Type)
	assert.True(t, enriched[0].CurrentPrice.Equal(enriched[0].Price))
}

func TestEnrich_PercentagesSumToHundred(t *testing.T) {
	portfolio := &domain.Portfolio{
		ID:   "portfolio-1",
		AsOf: "2024-01-15",
		Positions: []domain.Position{
			{ID: 1, Asset: "asset-aapl", Quantity: decimal.NewFromInt(50), Price: decimal.RequireFromString("178.50")},
			{ID: 2, Asset: "asset-googl", Quantity: decimal.NewFromInt(30), Price: decimal.RequireFromString("141.80")},
			{ID: 3, Asset: "asset-btc", Quantity: decimal.RequireFromString("0.5"), Price: decimal.RequireFromString("43250.00")},
			{ID: 4, Asset: "asset-usd", Quantity: decimal.NewFromInt(10000), Price: decimal.NewFromInt(1)},
		},
	}

	enriched := Enrich(portfolio, testRegistry())
	require.Len(t, enriched, 4)

	sum := decimal.Zero
	for _, pos := range enriched {
		sum = sum.Add(pos.PercentageOfPortfolio)
	}

	tolerance := decimal.RequireFromString("0.1")
	assert.True(t, sum.Sub(decimal.NewFromInt(100)).Abs().LessThanOrEqual(tolerance),
		"percentages sum to %s, want 100 within 0.1", sum)
}

func TestEnrich_ZeroTotalValue(t *testing.T) {
	// All-zero portfolio: no division by zero, every percentage is 0
	portfolio := &domain.Portfolio{
		ID:   "portfolio-1",
		AsOf: "2024-01-15",
		Positions: []domain.Position{
			{ID: 1, Asset: "asset-aapl", Quantity: decimal.Zero, Price: decimal.RequireFromString("178.50")},
			{ID: 2, Asset: "asset-btc", Quantity: decimal.NewFromInt(3), Price: decimal.Zero},
		},
	}

	enriched := Enrich(portfolio, testRegistry())
	require.Len(t, enriched, 2)

	for _, pos := range enriched {
		assert.True(t, pos.PercentageOfPortfolio.IsZero(), "position %d has percentage %s", pos.ID, pos.PercentageOfPortfolio)
	}
}

func TestEnrich_ValueIsExact(t *testing.T) {
	// 0.1 × 0.3 must be exactly 0.03 (no float drift before storage)
	portfolio := &domain.Portfolio{
		ID:   "portfolio-1",
		AsOf: "2024-01-15",
		Positions: []domain.Position{
			{ID: 1, Asset: "asset-aapl", Quantity: decimal.RequireFromString("0.1"), Price: decimal.RequireFromString("0.3")},
		},
	}

	enriched := Enrich(portfolio, testRegistry())
	require.Len(t, enriched, 1)
	assert.Equal(t, "0.03", enriched[0].Value.String())
}

func TestEnrich_MissingAssetUsesPlaceholder(t *testing.T) {
	portfolio := &domain.Portfolio{
		ID:   "portfolio-1",
		AsOf: "2024-01-15",
		Positions: []domain.Position{
			{ID: 1, Asset: "asset-unlisted", Quantity: decimal.NewFromInt(10), Price: decimal.NewFromInt(5)},
		},
	}

	enriched := Enrich(portfolio, testRegistry())
	require.Len(t, enriched, 1)

	assert.Equal(t, "asset-unlisted", enriched[0].AssetDetails.ID)
	assert.Equal(t, "Unknown", enriched[0].AssetDetails.Name)
	assert.Equal(t, domain.AssetTypeStock, enriched[0].AssetDetails.Type)
}

func TestEnrich_EmptyPortfolio(t *testing.T) {
	enriched := Enrich(&domain.Portfolio{ID: "portfolio-1"}, testRegistry())
	assert.NotNil(t, enriched)
	assert.Empty(t, enriched)

	enriched = Enrich(nil, testRegistry())
	assert.NotNil(t, enriched)
	assert.Empty(t, enriched)
}

func TestEnrich_Idempotent(t *testing.T) {
	portfolio := &domain.Portfolio{
		ID:   "portfolio-1",
		AsOf: "2024-01-15",
		Positions: []domain.Position{
			{ID: 1, Asset: "asset-aapl", Quantity: decimal.NewFromInt(50), Price: decimal.RequireFromString("178.50")},
			{ID: 2, Asset: "asset-btc", Quantity: decimal.RequireFromString("0.5"), Price: decimal.RequireFromString("43250.00")},
		},
	}
	registry := testRegistry()

	first := Enrich(portfolio, registry)
	second := Enrich(portfolio, registry)

	assert.Equal(t, first, second)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Nil(t, Summarize(nil))
	assert.Nil(t, Summarize([]domain.EnrichedPosition{}))
}

func TestSummarize_GroupsAndTotals(t *testing.T) {
	portfolio := &domain.Portfolio{
		ID:   "portfolio-1",
		AsOf: "2024-01-15",
		Positions: []domain.Position{
			{ID: 1, Asset: "asset-aapl", Quantity: decimal.NewFromInt(50), Price: decimal.RequireFromString("178.50")},
			{ID: 2, Asset: "asset-googl", Quantity: decimal.NewFromInt(30), Price: decimal.RequireFromString("141.80")},
			{ID: 3, Asset: "asset-btc", Quantity: decimal.RequireFromString("0.5"), Price: decimal.RequireFromString("43250.00")},
			// Duplicate asset: must remain a separate row in ByAsset
			{ID: 4, Asset: "asset-aapl", Quantity: decimal.NewFromInt(10), Price: decimal.RequireFromString("178.50")},
		},
	}

	enriched := Enrich(portfolio, testRegistry())
	summary := Summarize(enriched)
	require.NotNil(t, summary)

	// TotalValue equals the summation over enriched values exactly
	wantTotal := decimal.Zero
	for _, pos := range enriched {
		wantTotal = wantTotal.Add(pos.Value)
	}
	assert.True(t, summary.TotalValue.Equal(wantTotal))

	// Two classes present (stock, crypto); fiat omitted, not a zero entry
	require.Len(t, summary.ByAssetClass, 2)
	assert.Equal(t, domain.AssetTypeStock, summary.ByAssetClass[0].Type)
	assert.Equal(t, domain.AssetTypeCrypto, summary.ByAssetClass[1].Type)

	wantStock := decimal.RequireFromString("8925").Add(decimal.RequireFromString("4254")).Add(decimal.RequireFromString("1785"))
	assert.True(t, summary.ByAssetClass[0].Value.Equal(wantStock), "stock class value %s", summary.ByAssetClass[0].Value)

	// Class percentages cover the whole portfolio
	classSum := decimal.Zero
	for _, class := range summary.ByAssetClass {
		classSum = classSum.Add(class.Percentage)
	}
	tolerance := decimal.RequireFromString("0.1")
	assert.True(t, classSum.Sub(decimal.NewFromInt(100)).Abs().LessThanOrEqual(tolerance))

	// One ByAsset row per position, carrying the enriched percentage
	require.Len(t, summary.ByAsset, 4)
	assert.Equal(t, "AAPL", summary.ByAsset[0].Asset.Name)
	assert.Equal(t, "AAPL", summary.ByAsset[3].Asset.Name)
	assert.True(t, summary.ByAsset[3].Percentage.Equal(enriched[3].PercentageOfPortfolio))
}

func TestComputePerformance(t *testing.T) {
	series := []domain.HistoricalDataPoint{
		{Date: "2024-01-01", Value: decimal.NewFromInt(10000)},
		{Date: "2024-01-15", Value: decimal.NewFromInt(10400)},
		{Date: "2024-01-31", Value: decimal.NewFromInt(11000)},
	}

	perf, ok := ComputePerformance(series)
	require.True(t, ok)

	assert.True(t, perf.Absolute.Equal(decimal.NewFromInt(1000)), "absolute %s", perf.Absolute)
	assert.Equal(t, "10.00", perf.Percentage.StringFixed(2))
}

func TestComputePerformance_FewerThanTwoPoints(t *testing.T) {
	_, ok := ComputePerformance(nil)
	assert.False(t, ok)

	_, ok = ComputePerformance([]domain.HistoricalDataPoint{
		{Date: "2024-01-01", Value: decimal.NewFromInt(10000)},
	})
	assert.False(t, ok)
}

func TestComputePerformance_ZeroFirstValue(t *testing.T) {
	series := []domain.HistoricalDataPoint{
		{Date: "2024-01-01", Value: decimal.Zero},
		{Date: "2024-01-31", Value: decimal.NewFromInt(11000)},
	}

	perf, ok := ComputePerformance(series)
	require.True(t, ok)

	assert.True(t, perf.Absolute.Equal(decimal.NewFromInt(11000)))
	assert.True(t, perf.Percentage.IsZero())
}
