// Package memory provides in-memory repository implementations backing
// the demo deployment and tests. The price repository reproduces the
// demo feed's behavior of synthesizing one row per asset per requested
// day from a table of base prices.
package memory

import (
	"context"
	"sync"

	"github.com/simaogato/foliodash-backend/internal/domain"
)

// assetRepository implements domain.AssetRepository
type assetRepository struct {
	mu     sync.RWMutex
	assets []domain.Asset
}

// NewAssetRepository creates a new in-memory asset repository
func NewAssetRepository() domain.AssetRepository {
	return &assetRepository{}
}

// List retrieves the full asset registry
func (r *assetRepository) List(ctx context.Context) ([]domain.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assets := make([]domain.Asset, len(r.assets))
	copy(assets, r.assets)
	return assets, nil
}

// Create adds a new asset to the registry
func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	if err := asset.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets = append(r.assets, *asset)
	return nil
}
