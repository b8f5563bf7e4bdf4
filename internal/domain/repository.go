package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when the requested entity
// does not exist.
var ErrNotFound = errors.New("not found")

// PriceQuery selects price rows by date and optionally filters them by
// asset display name. Precedence: if From and To are both set, one row
// per asset per calendar day in [From, To] inclusive; otherwise the
// single date AsOf; an empty AsOf defaults to today. The Assets filter
// is applied after date selection.
type PriceQuery struct {
	From   string
	To     string
	AsOf   string
	Assets []string
}

// AssetRepository defines the interface for asset registry persistence operations
type AssetRepository interface {
	// List retrieves the full asset registry
	List(ctx context.Context) ([]Asset, error)

	// Create adds a new asset to the registry
	Create(ctx context.Context, asset *Asset) error
}

// PriceRepository defines the interface for price feed persistence operations
type PriceRepository interface {
	// List retrieves price rows selected by the query
	List(ctx context.Context, query PriceQuery) ([]Price, error)

	// Add stores a new price row
	Add(ctx context.Context, price *Price) error
}

// PortfolioRepository defines the interface for portfolio snapshot persistence operations
type PortfolioRepository interface {
	// Get retrieves the snapshot for the given as-of date.
	// An empty asOf returns the current snapshot.
	Get(ctx context.Context, asOf string) (*Portfolio, error)

	// Save stores a snapshot
	Save(ctx context.Context, portfolio *Portfolio) error
}
