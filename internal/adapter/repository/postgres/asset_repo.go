package postgres

import (
	"context"
	"fmt"

	"github.com/simaogato/foliodash-backend/internal/domain"
)

// assetRepository implements domain.AssetRepository
type assetRepository struct {
	db *DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *DB) domain.AssetRepository {
	return &assetRepository{db: db}
}

// List retrieves the full asset registry
func (r *assetRepository) List(ctx context.Context) ([]domain.Asset, error) {
	query := `
		SELECT id, name, type
		FROM assets
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []domain.Asset
	for rows.Next() {
		var asset domain.Asset
		if err := rows.Scan(&asset.ID, &asset.Name, &asset.Type); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assets: %w", err)
	}

	return assets, nil
}

// Create creates a new asset
func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	if err := asset.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO assets (id, name, type)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query, asset.ID, asset.Name, asset.Type)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}

	return nil
}
