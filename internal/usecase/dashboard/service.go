// Package dashboard owns the last-known dashboard state: asset
// registry, portfolio snapshot, derived analytics, and the historical
// series. Each resource refreshes independently; derived state is
// recomputed from whichever inputs have arrived, so refreshes may
// complete in any order.
package dashboard

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/foliodash-backend/internal/domain"
	"github.com/simaogato/foliodash-backend/internal/usecase/history"
	"github.com/simaogato/foliodash-backend/internal/usecase/valuation"
)

// Resource identifies one independently refreshed data source.
type Resource string

const (
	ResourceAssets    Resource = "assets"
	ResourcePortfolio Resource = "portfolio"
	ResourceSeries    Resource = "series"
)

// DataSource fetches the asset registry and portfolio snapshots.
type DataSource interface {
	GetAssets(ctx context.Context) ([]domain.Asset, error)
	GetPortfolio(ctx context.Context, asOf string) (*domain.Portfolio, error)
}

// SeriesBuilder builds the historical value series for a set of
// (asset, quantity) pairs over a lookback period.
type SeriesBuilder interface {
	BuildSeries(ctx context.Context, period history.TimePeriod, registry domain.AssetRegistry, quantityByAssetID map[string]decimal.Decimal) ([]domain.HistoricalDataPoint, error)
}

// Service handles dashboard refresh and derived-state operations.
//
// Every refresh carries a monotonically increasing token per resource;
// a response whose token is no longer the latest issued for that
// resource is discarded, so overlapping refetches cannot apply stale
// state out of order. Cancelling the context of an in-flight refresh
// also prevents its result from being applied.
type Service struct {
	source DataSource
	series SeriesBuilder
	logger *zap.Logger

	mu        sync.RWMutex
	assets    []domain.Asset
	registry  domain.AssetRegistry
	portfolio *domain.Portfolio
	enriched  []domain.EnrichedPosition
	summary   *domain.PortfolioSummary
	points    []domain.HistoricalDataPoint
	lastErr   map[Resource]error
	tokens    map[Resource]uint64
}

// NewService creates a new dashboard Service instance
func NewService(source DataSource, series SeriesBuilder, logger *zap.Logger) *Service {
	return &Service{
		source:  source,
		series:  series,
		logger:  logger.With(zap.String("caller", "dashboard.Service")),
		lastErr: make(map[Resource]error),
		tokens:  make(map[Resource]uint64),
	}
}

// issue reserves the next request token for the resource.
func (s *Service) issue(r Resource) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[r]++
	return s.tokens[r]
}

// stale reports whether the token is no longer the latest issued for
// the resource, or the request context has been cancelled. Callers must
// hold s.mu.
func (s *Service) stale(ctx context.Context, r Resource, token uint64) bool {
	if token != s.tokens[r] {
		s.logger.Debug("discarding stale response",
			zap.String("resource", string(r)),
			zap.Uint64("token", token),
			zap.Uint64("latest", s.tokens[r]))
		return true
	}
	return ctx.Err() != nil
}

// RefreshAssets fetches the asset registry and recomputes derived state
func (s *Service) RefreshAssets(ctx context.Context) error {
	token := s.issue(ResourceAssets)

	assets, err := s.source.GetAssets(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(ctx, ResourceAssets, token) {
		return nil
	}
	if err != nil {
		s.lastErr[ResourceAssets] = err
		return err
	}

	s.assets = assets
	s.registry = domain.BuildRegistry(assets)
	s.lastErr[ResourceAssets] = nil
	s.recompute()
	return nil
}

// RefreshPortfolio fetches the portfolio snapshot for the given as-of
// date (empty for the current snapshot) and recomputes derived state
func (s *Service) RefreshPortfolio(ctx context.Context, asOf string) error {
	token := s.issue(ResourcePortfolio)

	portfolio, err := s.source.GetPortfolio(ctx, asOf)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(ctx, ResourcePortfolio, token) {
		return nil
	}
	if err != nil {
		s.lastErr[ResourcePortfolio] = err
		return err
	}

	s.portfolio = portfolio
	s.lastErr[ResourcePortfolio] = nil
	s.recompute()
	return nil
}

// RefreshSeries rebuilds the historical series for the current
// positions over the given period. On failure the previous series is
// retained and the error is recorded as the resource's last error.
func (s *Service) RefreshSeries(ctx context.Context, period history.TimePeriod) error {
	s.mu.RLock()
	registry := s.registry
	quantities := positionQuantities(s.portfolio)
	s.mu.RUnlock()

	token := s.issue(ResourceSeries)

	points, err := s.series.BuildSeries(ctx, period, registry, quantities)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(ctx, ResourceSeries, token) {
		return nil
	}
	if err != nil {
		s.lastErr[ResourceSeries] = err
		return err
	}

	s.points = points
	s.lastErr[ResourceSeries] = nil
	return nil
}

// RefreshAll refreshes the registry, the current snapshot, and the
// series concurrently. The registry and snapshot fetches are
// independent and complete in any order. Returns the registry or
// snapshot error if either failed; a series failure only records
// last-error state, matching the softer surfacing of historical
// failures.
func (s *Service) RefreshAll(ctx context.Context, period history.TimePeriod) error {
	var wg sync.WaitGroup
	var assetsErr, portfolioErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		assetsErr = s.RefreshAssets(ctx)
	}()
	go func() {
		defer wg.Done()
		portfolioErr = s.RefreshPortfolio(ctx, "")
	}()
	wg.Wait()

	// The series uses whatever registry and snapshot are now present;
	// with either still missing it yields an empty series without
	// fetching.
	if err := s.RefreshSeries(ctx, period); err != nil {
		s.logger.Warn("series refresh failed", zap.Error(err))
	}

	if assetsErr != nil {
		return assetsErr
	}
	return portfolioErr
}

// recompute rebuilds enriched positions and the summary from the
// latest registry and snapshot. Callers must hold s.mu.
func (s *Service) recompute() {
	s.enriched = valuation.Enrich(s.portfolio, s.registry)
	s.summary = valuation.Summarize(s.enriched)
}

// positionQuantities maps asset id to position quantity. When several
// positions reference the same asset, the later position wins.
func positionQuantities(portfolio *domain.Portfolio) map[string]decimal.Decimal {
	if portfolio == nil {
		return nil
	}
	quantities := make(map[string]decimal.Decimal, len(portfolio.Positions))
	for _, pos := range portfolio.Positions {
		quantities[pos.Asset] = pos.Quantity
	}
	return quantities
}

// Assets returns the last fetched asset registry list
func (s *Service) Assets() []domain.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assets
}

// Portfolio returns the last fetched snapshot, nil before the first
// successful refresh
func (s *Service) Portfolio() *domain.Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.portfolio
}

// EnrichedPositions returns the enriched positions derived from the
// latest registry and snapshot
func (s *Service) EnrichedPositions() []domain.EnrichedPosition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enriched
}

// Summary returns the derived portfolio summary, nil while there are
// no enriched positions
func (s *Service) Summary() *domain.PortfolioSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// Series returns the last successfully built historical series
func (s *Service) Series() []domain.HistoricalDataPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.points
}

// Performance derives first-vs-last performance over the current
// series; ok is false when the series has fewer than two points.
func (s *Service) Performance() (domain.Performance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return valuation.ComputePerformance(s.points)
}

// LastError returns the recorded error from the most recent refresh of
// the resource, nil when it succeeded
func (s *Service) LastError(r Resource) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr[r]
}
