// Package httpapi serves the dashboard's JSON API: the asset registry,
// the price feed, portfolio snapshots, and the session endpoints. The
// data endpoints are not gated by authentication.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/simaogato/foliodash-backend/internal/domain"
	"github.com/simaogato/foliodash-backend/internal/usecase/auth"
)

// Server holds the handlers' dependencies
type Server struct {
	logger     *zap.Logger
	assets     domain.AssetRepository
	prices     domain.PriceRepository
	portfolios domain.PortfolioRepository
	sessions   *auth.Service
}

// NewServer creates a new API server instance
func NewServer(
	logger *zap.Logger,
	assets domain.AssetRepository,
	prices domain.PriceRepository,
	portfolios domain.PortfolioRepository,
	sessions *auth.Service,
) *Server {
	return &Server{
		logger:     logger.With(zap.String("caller", "httpapi.Server")),
		assets:     assets,
		prices:     prices,
		portfolios: portfolios,
		sessions:   sessions,
	}
}

// Router builds the chi router with the API routes and middleware
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/assets", s.handleListAssets)
	r.Get("/prices", s.handleListPrices)
	r.Get("/portfolios", s.handleGetPortfolio)

	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/logout", s.handleLogout)
	r.Get("/auth/session", s.handleGetSession)

	return r
}
