package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/simaogato/foliodash-backend/internal/domain"
)

// handleListAssets serves GET /assets
func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With(zap.String("method", "handleListAssets"))

	assets, err := s.assets.List(r.Context())
	if err != nil {
		logger.Error(fmt.Errorf("list assets: %w", err).Error())
		respondError(w, http.StatusInternalServerError, "failed to list assets")
		return
	}
	if assets == nil {
		assets = []domain.Asset{}
	}

	respondJSON(w, http.StatusOK, assets)
}

// handleListPrices serves GET /prices.
// Date selection precedence: from+to range, then asOf, then today. The
// asset/assets name filter (comma-separated, trimmed) applies after
// date selection; assets wins when both are present.
func (s *Server) handleListPrices(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With(zap.String("method", "handleListPrices"))

	q := r.URL.Query()
	query := domain.PriceQuery{
		AsOf:   q.Get("asOf"),
		Assets: splitAssetFilter(q),
	}
	if from, to := q.Get("from"), q.Get("to"); from != "" && to != "" {
		query.From = from
		query.To = to
	}

	prices, err := s.prices.List(r.Context(), query)
	if err != nil {
		logger.Error(fmt.Errorf("list prices: %w", err).Error())
		respondError(w, http.StatusInternalServerError, "failed to list prices")
		return
	}
	if prices == nil {
		prices = []domain.Price{}
	}

	respondJSON(w, http.StatusOK, prices)
}

// handleGetPortfolio serves GET /portfolios. Omitting asOf returns the
// current snapshot.
func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With(zap.String("method", "handleGetPortfolio"))

	portfolio, err := s.portfolios.Get(r.Context(), r.URL.Query().Get("asOf"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "portfolio not found")
			return
		}
		logger.Error(fmt.Errorf("get portfolio: %w", err).Error())
		respondError(w, http.StatusInternalServerError, "failed to get portfolio")
		return
	}

	respondJSON(w, http.StatusOK, portfolio)
}

// splitAssetFilter reads the assets (or asset) query parameter as a
// trimmed comma-separated name list
func splitAssetFilter(q map[string][]string) []string {
	raw := ""
	if v, ok := q["assets"]; ok && len(v) > 0 {
		raw = v[0]
	} else if v, ok := q["asset"]; ok && len(v) > 0 {
		raw = v[0]
	}
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
