// Package history builds the daily weighted portfolio value over a
// lookback window from the price feed.
package history

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/foliodash-backend/internal/domain"
)

// PriceSource fetches price rows for a set of assets, by display name,
// over an inclusive [from, to] date range.
type PriceSource interface {
	PricesInRange(ctx context.Context, from, to string, assetNames []string) ([]domain.Price, error)
}

// Service builds historical portfolio series from a price source
type Service struct {
	prices PriceSource
	logger *zap.Logger
}

// NewService creates a new history Service instance
func NewService(prices PriceSource, logger *zap.Logger) *Service {
	return &Service{
		prices: prices,
		logger: logger.With(zap.String("caller", "history.Service")),
	}
}

// BuildSeries computes the weighted portfolio value per day over the
// period's window anchored at today.
// Logic:
//  1. An empty registry or an empty quantity set returns an empty
//     series immediately, without fetching: zero-filled output would be
//     meaningless
//  2. Prices are fetched for exactly the assets referenced by
//     quantityByAssetID, restricted to the computed window
//  3. One output point per date actually present in the fetched rows;
//     feed gaps stay gaps. A missing per-asset price on a date
//     contributes zero for that asset
//  4. Points are sorted ascending by date
//
// Fetch failures surface as an error; callers keep their previous
// series until a refetch succeeds.
func (s *Service) BuildSeries(
	ctx context.Context,
	period TimePeriod,
	registry domain.AssetRegistry,
	quantityByAssetID map[string]decimal.Decimal,
) ([]domain.HistoricalDataPoint, error) {
	if len(registry) == 0 || len(quantityByAssetID) == 0 {
		return []domain.HistoricalDataPoint{}, nil
	}

	from, to, err := period.Range(time.Now())
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(quantityByAssetID))
	for assetID := range quantityByAssetID {
		if asset, ok := registry[assetID]; ok {
			names = append(names, asset.Name)
		}
	}
	if len(names) == 0 {
		return []domain.HistoricalDataPoint{}, nil
	}
	sort.Strings(names)

	rows, err := s.prices.PricesInRange(ctx, from, to, names)
	if err != nil {
		return nil, fmt.Errorf("fetch price series: %w", err)
	}
	s.logger.Debug("fetched price series",
		zap.String("from", from),
		zap.String("to", to),
		zap.Int("rows", len(rows)))

	// date -> asset name -> price
	pricesByDate := make(map[string]map[string]decimal.Decimal)
	for _, row := range rows {
		date := row.AsOf
		if date == "" {
			date = to
		}
		if pricesByDate[date] == nil {
			pricesByDate[date] = make(map[string]decimal.Decimal)
		}
		pricesByDate[date][row.Asset] = row.Price
	}

	dates := make([]string, 0, len(pricesByDate))
	for date := range pricesByDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	series := make([]domain.HistoricalDataPoint, 0, len(dates))
	for _, date := range dates {
		datePrices := pricesByDate[date]

		total := decimal.Zero
		for assetID, quantity := range quantityByAssetID {
			asset, ok := registry[assetID]
			if !ok {
				continue
			}
			if price, ok := datePrices[asset.Name]; ok {
				total = total.Add(quantity.Mul(price))
			}
		}

		series = append(series, domain.HistoricalDataPoint{Date: date, Value: total})
	}

	return series, nil
}
