package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simaogato/foliodash-backend/internal/adapter/httpapi"
	"github.com/simaogato/foliodash-backend/internal/adapter/repository/memory"
	"github.com/simaogato/foliodash-backend/internal/usecase/auth"
	"github.com/simaogato/foliodash-backend/internal/usecase/seeder"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	assets := memory.NewAssetRepository()
	prices := memory.NewPriceRepository()
	portfolios := memory.NewPortfolioRepository()
	require.NoError(t, seeder.NewDemoSeeder(assets, prices, portfolios).Seed(context.Background()))

	server := httpapi.NewServer(zap.NewNop(), assets, prices, portfolios,
		auth.NewService([]byte("test-secret"), time.Hour))
	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)

	return NewClient(ts.Client(), ts.URL, zap.NewNop())
}

func TestGetAssets(t *testing.T) {
	c := newTestClient(t)

	assets, err := c.GetAssets(context.Background())
	require.NoError(t, err)
	require.Len(t, assets, 10)
	assert.Equal(t, "AAPL", assets[0].Name)
}

func TestGetPrices(t *testing.T) {
	c := newTestClient(t)

	prices, err := c.GetPrices(context.Background(), PriceParams{
		From:   "2024-01-01",
		To:     "2024-01-02",
		Assets: []string{"AAPL", "BTC"},
	})
	require.NoError(t, err)
	require.Len(t, prices, 4)
	assert.Equal(t, "AAPL", prices[0].Asset)
	assert.Equal(t, "178.5", prices[0].Price.String())
}

func TestGetPrices_SingleAsset(t *testing.T) {
	c := newTestClient(t)

	prices, err := c.GetPrices(context.Background(), PriceParams{Asset: "ETH", AsOf: "2024-01-15"})
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, "ETH", prices[0].Asset)
}

func TestGetPortfolio(t *testing.T) {
	c := newTestClient(t)

	portfolio, err := c.GetPortfolio(context.Background(), "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "portfolio-1", portfolio.ID)
	assert.Equal(t, "2024-01-15", portfolio.AsOf)
	assert.Len(t, portfolio.Positions, 9)
}

func TestGet_NonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := NewClient(ts.Client(), ts.URL, zap.NewNop())

	_, err := c.GetAssets(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Contains(t, apiErr.Message, "request failed")
}

func TestGet_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // nothing listens anymore

	c := NewClient(&http.Client{Timeout: time.Second}, ts.URL, zap.NewNop())

	_, err := c.GetAssets(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.Status)
}

func TestGet_ContextCancelled(t *testing.T) {
	c := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetAssets(ctx)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.Status)
}
