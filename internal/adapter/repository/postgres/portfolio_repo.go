package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/foliodash-backend/internal/domain"
)

// portfolioRepository implements domain.PortfolioRepository
type portfolioRepository struct {
	db *DB
}

// NewPortfolioRepository creates a new portfolio repository
func NewPortfolioRepository(db *DB) domain.PortfolioRepository {
	return &portfolioRepository{db: db}
}

// Get retrieves the snapshot for the given as-of date; an empty asOf
// returns the most recent snapshot
func (r *portfolioRepository) Get(ctx context.Context, asOf string) (*domain.Portfolio, error) {
	var (
		query string
		args  []interface{}
	)

	if asOf == "" {
		query = `
			SELECT id, as_of
			FROM portfolios
			ORDER BY as_of DESC
			LIMIT 1
		`
	} else {
		query = `
			SELECT id, as_of
			FROM portfolios
			WHERE as_of = $1
		`
		args = append(args, asOf)
	}

	var (
		portfolio domain.Portfolio
		snapAsOf  time.Time
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&portfolio.ID, &snapAsOf)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}
	portfolio.AsOf = snapAsOf.Format(domain.DateFormat)

	positions, err := r.listPositions(ctx, portfolio.ID)
	if err != nil {
		return nil, err
	}
	portfolio.Positions = positions

	return &portfolio, nil
}

// listPositions loads a snapshot's positions ordered by id
func (r *portfolioRepository) listPositions(ctx context.Context, portfolioID string) ([]domain.Position, error) {
	query := `
		SELECT id, asset, quantity, as_of, price
		FROM positions
		WHERE portfolio_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var positions []domain.Position
	for rows.Next() {
		var (
			pos         domain.Position
			quantityStr string
			priceStr    string
			asOf        time.Time
		)
		if err := rows.Scan(&pos.ID, &pos.Asset, &quantityStr, &asOf, &priceStr); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}

		quantity, err := decimal.NewFromString(quantityStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse quantity: %w", err)
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse price: %w", err)
		}

		pos.Quantity = quantity
		pos.Price = price
		pos.AsOf = asOf.Format(domain.DateFormat)

		positions = append(positions, pos)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate positions: %w", err)
	}

	return positions, nil
}

// Save stores a snapshot and its positions atomically, replacing any
// snapshot already stored under the same id
func (r *portfolioRepository) Save(ctx context.Context, portfolio *domain.Portfolio) error {
	for i := range portfolio.Positions {
		if err := portfolio.Positions[i].Validate(); err != nil {
			return err
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO portfolios (id, as_of)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET as_of = EXCLUDED.as_of
	`, portfolio.ID, portfolio.AsOf)
	if err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM positions WHERE portfolio_id = $1`, portfolio.ID)
	if err != nil {
		return fmt.Errorf("failed to clear positions: %w", err)
	}

	for _, pos := range portfolio.Positions {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO positions (id, portfolio_id, asset, quantity, as_of, price)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, pos.ID, portfolio.ID, pos.Asset, pos.Quantity.String(), pos.AsOf, pos.Price.String())
		if err != nil {
			return fmt.Errorf("failed to insert position: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
