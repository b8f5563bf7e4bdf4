package domain

import "errors"

// AssetType represents the class of a tradable instrument
type AssetType string

const (
	AssetTypeStock  AssetType = "stock"
	AssetTypeCrypto AssetType = "crypto"
	AssetTypeFiat   AssetType = "fiat"
)

// Asset represents a tradable instrument in the registry
// Immutable once loaded; identified by an opaque id and a display name
// that is unique within the registry
type Asset struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Type AssetType `json:"type"`
}

// Validate ensures the asset adheres to domain rules
// Returns an error if validation fails
func (a *Asset) Validate() error {
	if a.ID == "" {
		return errors.New("asset id cannot be empty")
	}
	if a.Name == "" {
		return errors.New("asset name cannot be empty")
	}

	switch a.Type {
	case AssetTypeStock, AssetTypeCrypto, AssetTypeFiat:
		return nil
	default:
		return errors.New("asset type must be one of stock, crypto, fiat")
	}
}

// AssetRegistry is a lookup table of assets keyed by id, built from one
// registry fetch. It may be incomplete: callers must handle missing ids.
type AssetRegistry map[string]Asset

// BuildRegistry builds an AssetRegistry from a list of assets
func BuildRegistry(assets []Asset) AssetRegistry {
	registry := make(AssetRegistry, len(assets))
	for _, a := range assets {
		registry[a.ID] = a
	}
	return registry
}

// PlaceholderAsset returns the substitute asset used when a position
// references an id that is absent from the registry. Every position is
// always represented in enrichment output, trading correctness for
// availability.
func PlaceholderAsset(id string) Asset {
	return Asset{
		ID:   id,
		Name: "Unknown",
		Type: AssetTypeStock,
	}
}
