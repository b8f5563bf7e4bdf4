package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/foliodash-backend/internal/domain"
)

// priceRepository implements domain.PriceRepository over a table of
// base prices by asset name. Rows are synthesized per requested day, so
// a range query yields one row per asset per calendar day.
type priceRepository struct {
	mu    sync.RWMutex
	base  map[string]decimal.Decimal
	names []string // first-seen order
}

// NewPriceRepository creates a new in-memory price repository
func NewPriceRepository() domain.PriceRepository {
	return &priceRepository{
		base: make(map[string]decimal.Decimal),
	}
}

// Add stores the price as the asset's base price. The latest added
// price per asset name wins.
func (r *priceRepository) Add(ctx context.Context, price *domain.Price) error {
	if err := price.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, seen := r.base[price.Asset]; !seen {
		r.names = append(r.names, price.Asset)
	}
	r.base[price.Asset] = price.Price
	return nil
}

// List retrieves price rows selected by the query. Range queries yield
// one row per asset per calendar day in [From, To] inclusive; otherwise
// a single day is served (AsOf, defaulting to today). The asset name
// filter applies after date selection.
func (r *priceRepository) List(ctx context.Context, query domain.PriceQuery) ([]domain.Price, error) {
	dates, err := queryDates(query)
	if err != nil {
		return nil, err
	}

	filter := make(map[string]bool, len(query.Assets))
	for _, name := range query.Assets {
		filter[name] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]domain.Price, 0, len(dates)*len(r.names))
	for _, date := range dates {
		for _, name := range r.names {
			if len(filter) > 0 && !filter[name] {
				continue
			}
			rows = append(rows, domain.Price{
				ID:    fmt.Sprintf("price-%s-%s", name, date),
				Asset: name,
				Price: r.base[name],
				AsOf:  date,
			})
		}
	}
	return rows, nil
}

// queryDates expands the query's date selection into individual days.
func queryDates(query domain.PriceQuery) ([]string, error) {
	if query.From != "" && query.To != "" {
		from, err := time.Parse(domain.DateFormat, query.From)
		if err != nil {
			return nil, fmt.Errorf("parse from date: %w", err)
		}
		to, err := time.Parse(domain.DateFormat, query.To)
		if err != nil {
			return nil, fmt.Errorf("parse to date: %w", err)
		}

		var dates []string
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d.Format(domain.DateFormat))
		}
		return dates, nil
	}

	asOf := query.AsOf
	if asOf == "" {
		asOf = time.Now().Format(domain.DateFormat)
	}
	return []string{asOf}, nil
}
