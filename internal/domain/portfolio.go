package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Position represents a quantity of one asset held as of a specific
// date, with the price captured alongside the position. The asset
// reference is by id.
type Position struct {
	ID       int64           `json:"id"`
	Asset    string          `json:"asset"`
	Quantity decimal.Decimal `json:"quantity"`
	AsOf     string          `json:"asOf"`
	Price    decimal.Decimal `json:"price"`
}

// Validate ensures the position adheres to domain rules
func (p *Position) Validate() error {
	if p.Asset == "" {
		return errors.New("position asset reference cannot be empty")
	}
	return nil
}

// Portfolio represents a dated snapshot of positions. One portfolio per
// as-of date; snapshots are independent, not deltas.
type Portfolio struct {
	ID        string     `json:"id"`
	AsOf      string     `json:"asOf"`
	Positions []Position `json:"positions"`
}

// EnrichedPosition is a position joined with its asset metadata and the
// derived value and portfolio weight.
// Value is exactly Quantity × Price, with no rounding before storage.
type EnrichedPosition struct {
	Position
	AssetDetails          Asset           `json:"assetDetails"`
	CurrentPrice          decimal.Decimal `json:"currentPrice"`
	Value                 decimal.Decimal `json:"value"`
	PercentageOfPortfolio decimal.Decimal `json:"percentageOfPortfolio"`
}

// AssetClassSummary is the aggregated value of one asset class.
type AssetClassSummary struct {
	Type       AssetType       `json:"type"`
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"`
}

// AssetSummary is the value of one position's asset. Duplicate assets
// across positions are not merged: one entry per enriched position.
type AssetSummary struct {
	Asset      Asset           `json:"asset"`
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"`
}

// PortfolioSummary is a derived, non-owning view over enriched
// positions. It is recomputed on every change and never persisted.
type PortfolioSummary struct {
	TotalValue   decimal.Decimal     `json:"totalValue"`
	ByAssetClass []AssetClassSummary `json:"byAssetClass"`
	ByAsset      []AssetSummary      `json:"byAsset"`
}

// HistoricalDataPoint is the weighted portfolio value on one date.
type HistoricalDataPoint struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// Performance is a straight first-vs-last comparison over a series.
type Performance struct {
	Absolute   decimal.Decimal `json:"absolute"`
	Percentage decimal.Decimal `json:"percentage"`
}
