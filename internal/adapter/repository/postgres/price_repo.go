package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/simaogato/foliodash-backend/internal/domain"
)

// priceRepository implements domain.PriceRepository
type priceRepository struct {
	db *DB
}

// NewPriceRepository creates a new price repository
func NewPriceRepository(db *DB) domain.PriceRepository {
	return &priceRepository{db: db}
}

// List retrieves price rows selected by the query: one row per asset
// per day in [From, To] inclusive, or the single AsOf day (today when
// empty). The asset name filter applies after date selection.
func (r *priceRepository) List(ctx context.Context, query domain.PriceQuery) ([]domain.Price, error) {
	var (
		sqlQuery string
		args     []interface{}
	)

	if query.From != "" && query.To != "" {
		sqlQuery = `
			SELECT id, asset, price, as_of
			FROM prices
			WHERE as_of BETWEEN $1 AND $2
		`
		args = append(args, query.From, query.To)
	} else {
		asOf := query.AsOf
		if asOf == "" {
			asOf = time.Now().Format(domain.DateFormat)
		}
		sqlQuery = `
			SELECT id, asset, price, as_of
			FROM prices
			WHERE as_of = $1
		`
		args = append(args, asOf)
	}

	if len(query.Assets) > 0 {
		sqlQuery += fmt.Sprintf(" AND asset = ANY($%d)", len(args)+1)
		args = append(args, pq.Array(query.Assets))
	}
	sqlQuery += " ORDER BY as_of, asset"

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}
	defer rows.Close()

	var prices []domain.Price
	for rows.Next() {
		var (
			price    domain.Price
			priceStr string
			asOf     time.Time
		)
		if err := rows.Scan(&price.ID, &price.Asset, &priceStr, &asOf); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}

		value, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse price: %w", err)
		}
		price.Price = value
		price.AsOf = asOf.Format(domain.DateFormat)

		prices = append(prices, price)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prices: %w", err)
	}

	return prices, nil
}

// Add creates a new price row
func (r *priceRepository) Add(ctx context.Context, price *domain.Price) error {
	if err := price.Validate(); err != nil {
		return err
	}

	id := price.ID
	if id == "" {
		id = fmt.Sprintf("price-%s-%s", price.Asset, price.AsOf)
	}

	query := `
		INSERT INTO prices (id, asset, price, as_of)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET price = EXCLUDED.price
	`

	_, err := r.db.ExecContext(ctx, query, id, price.Asset, price.Price.String(), price.AsOf)
	if err != nil {
		return fmt.Errorf("failed to insert price: %w", err)
	}

	return nil
}
