package memory

import (
	"context"
	"sync"
	"time"

	"github.com/simaogato/foliodash-backend/internal/domain"
)

// portfolioRepository implements domain.PortfolioRepository over a
// single stored snapshot. Snapshots for other as-of dates are served by
// restamping the stored positions, the way the demo feed generates
// them.
type portfolioRepository struct {
	mu       sync.RWMutex
	snapshot *domain.Portfolio
}

// NewPortfolioRepository creates a new in-memory portfolio repository
func NewPortfolioRepository() domain.PortfolioRepository {
	return &portfolioRepository{}
}

// Save stores the snapshot
func (r *portfolioRepository) Save(ctx context.Context, portfolio *domain.Portfolio) error {
	for i := range portfolio.Positions {
		if err := portfolio.Positions[i].Validate(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	clone := clonePortfolio(portfolio)
	r.snapshot = &clone
	return nil
}

// Get retrieves the snapshot for the given as-of date; an empty asOf
// returns the current snapshot stamped with the current time.
func (r *portfolioRepository) Get(ctx context.Context, asOf string) (*domain.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.snapshot == nil {
		return nil, domain.ErrNotFound
	}

	date := asOf
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	}

	clone := clonePortfolio(r.snapshot)
	clone.AsOf = date
	for i := range clone.Positions {
		clone.Positions[i].AsOf = date
	}
	return &clone, nil
}

func clonePortfolio(p *domain.Portfolio) domain.Portfolio {
	clone := *p
	clone.Positions = make([]domain.Position, len(p.Positions))
	copy(clone.Positions, p.Positions)
	return clone
}
