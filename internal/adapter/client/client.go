// Package client is the typed wrapper over the dashboard's read API.
// Transport failures and non-2xx responses are both normalized to the
// one error shape callers inspect: APIError.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/simaogato/foliodash-backend/internal/domain"
)

// APIError is the uniform error for failed requests. Status is the
// HTTP status code, or zero when the request never produced a response.
type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// PriceParams selects price rows: an Assets (or single Asset) name
// filter plus either an AsOf date or a From/To range.
type PriceParams struct {
	Asset  string
	Assets []string
	AsOf   string
	From   string
	To     string
}

// Client issues the dashboard's three read requests
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a new API client instance
func NewClient(httpClient *http.Client, baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  httpClient,
		logger:  logger.With(zap.String("caller", "client.Client")),
	}
}

// GetAssets fetches the asset registry
func (c *Client) GetAssets(ctx context.Context) ([]domain.Asset, error) {
	var assets []domain.Asset
	if err := c.get(ctx, "/assets", nil, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// GetPrices fetches price rows selected by the params
func (c *Client) GetPrices(ctx context.Context, params PriceParams) ([]domain.Price, error) {
	query := url.Values{}
	if len(params.Assets) > 0 {
		query.Set("assets", strings.Join(params.Assets, ","))
	} else if params.Asset != "" {
		query.Set("asset", params.Asset)
	}
	if params.AsOf != "" {
		query.Set("asOf", params.AsOf)
	}
	if params.From != "" {
		query.Set("from", params.From)
	}
	if params.To != "" {
		query.Set("to", params.To)
	}

	var prices []domain.Price
	if err := c.get(ctx, "/prices", query, &prices); err != nil {
		return nil, err
	}
	return prices, nil
}

// PricesInRange fetches one row per asset per day in [from, to] for
// the named assets
func (c *Client) PricesInRange(ctx context.Context, from, to string, assetNames []string) ([]domain.Price, error) {
	return c.GetPrices(ctx, PriceParams{From: from, To: to, Assets: assetNames})
}

// GetPortfolio fetches the snapshot for the given as-of date; empty
// asOf fetches the current snapshot
func (c *Client) GetPortfolio(ctx context.Context, asOf string) (*domain.Portfolio, error) {
	query := url.Values{}
	if asOf != "" {
		query.Set("asOf", asOf)
	}

	var portfolio domain.Portfolio
	if err := c.get(ctx, "/portfolios", query, &portfolio); err != nil {
		return nil, err
	}
	return &portfolio, nil
}

// get issues one GET request and decodes the response into out
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	target, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("build request url: %v", err)}
	}
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("request rejected",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &APIError{
			Message: fmt.Sprintf("request failed: %s", resp.Status),
			Status:  resp.StatusCode,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Message: fmt.Sprintf("decode response: %v", err), Status: resp.StatusCode}
	}
	return nil
}
