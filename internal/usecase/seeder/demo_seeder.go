package seeder

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/foliodash-backend/internal/domain"
)

// DemoAssets returns the fixed registry of tradable assets
func DemoAssets() []domain.Asset {
	return []domain.Asset{
		{ID: "asset-aapl", Name: "AAPL", Type: domain.AssetTypeStock},
		{ID: "asset-googl", Name: "GOOGL", Type: domain.AssetTypeStock},
		{ID: "asset-msft", Name: "MSFT", Type: domain.AssetTypeStock},
		{ID: "asset-tsla", Name: "TSLA", Type: domain.AssetTypeStock},
		{ID: "asset-btc", Name: "BTC", Type: domain.AssetTypeCrypto},
		{ID: "asset-eth", Name: "ETH", Type: domain.AssetTypeCrypto},
		{ID: "asset-sol", Name: "SOL", Type: domain.AssetTypeCrypto},
		{ID: "asset-usd", Name: "USD", Type: domain.AssetTypeFiat},
		{ID: "asset-gbp", Name: "GBP", Type: domain.AssetTypeFiat},
		{ID: "asset-eur", Name: "EUR", Type: domain.AssetTypeFiat},
	}
}

// demoBasePrices maps asset display name to its base price
var demoBasePrices = map[string]string{
	"AAPL":  "178.5",
	"GOOGL": "141.8",
	"MSFT":  "378.9",
	"TSLA":  "248.5",
	"BTC":   "43250.0",
	"ETH":   "2280.0",
	"SOL":   "98.5",
	"USD":   "1.0",
	"GBP":   "1.27",
	"EUR":   "1.09",
}

// demoPositions lists the demo snapshot's holdings
var demoPositions = []struct {
	id       int64
	asset    string
	name     string
	quantity string
}{
	{1, "asset-aapl", "AAPL", "50"},
	{2, "asset-googl", "GOOGL", "30"},
	{3, "asset-msft", "MSFT", "25"},
	{4, "asset-tsla", "TSLA", "15"},
	{5, "asset-btc", "BTC", "0.5"},
	{6, "asset-eth", "ETH", "5"},
	{7, "asset-sol", "SOL", "100"},
	{8, "asset-usd", "USD", "10000"},
	{9, "asset-gbp", "GBP", "2000"},
}

// DemoSeeder seeds the demo asset registry, base prices, and portfolio
// snapshot into empty repositories
type DemoSeeder struct {
	assets     domain.AssetRepository
	prices     domain.PriceRepository
	portfolios domain.PortfolioRepository
}

// NewDemoSeeder creates a new DemoSeeder instance
func NewDemoSeeder(
	assets domain.AssetRepository,
	prices domain.PriceRepository,
	portfolios domain.PortfolioRepository,
) *DemoSeeder {
	return &DemoSeeder{
		assets:     assets,
		prices:     prices,
		portfolios: portfolios,
	}
}

// Seed populates the repositories with the demo fixtures. Seeding is
// skipped when the asset registry is already populated, so restarts do
// not duplicate data.
func (s *DemoSeeder) Seed(ctx context.Context) error {
	existing, err := s.assets.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	today := time.Now().Format(domain.DateFormat)

	for _, asset := range DemoAssets() {
		a := asset
		if err := s.assets.Create(ctx, &a); err != nil {
			return err
		}

		price := domain.Price{
			ID:    "price-" + asset.Name + "-" + today,
			Asset: asset.Name,
			Price: decimal.RequireFromString(demoBasePrices[asset.Name]),
			AsOf:  today,
		}
		if err := s.prices.Add(ctx, &price); err != nil {
			return err
		}
	}

	portfolio := &domain.Portfolio{
		ID:   "portfolio-1",
		AsOf: today,
	}
	for _, pos := range demoPositions {
		portfolio.Positions = append(portfolio.Positions, domain.Position{
			ID:       pos.id,
			Asset:    pos.asset,
			Quantity: decimal.RequireFromString(pos.quantity),
			AsOf:     today,
			Price:    decimal.RequireFromString(demoBasePrices[pos.name]),
		})
	}

	return s.portfolios.Save(ctx, portfolio)
}
