// Package market talks to the external market data provider. The provider
// is an untrusted dependency: an empty series and a transport failure are
// both normal outcomes surfaced as distinct error kinds.
package market

import (
	"time"

	"stockcast/pkg/config"
	"stockcast/pkg/httputil"
	"stockcast/pkg/logger"
)

// PricePoint is one daily close supplied by the provider.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// Client fetches historical prices from the provider's chart API.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	quoteURL   string
}

// NewClient creates a new market data client.
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.Market.BaseURL,
		quoteURL:   cfg.Market.QuoteURL,
	}
}
