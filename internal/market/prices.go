package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"stockcast/internal/apperr"
)

// FetchDailyCloses fetches the daily close series for a symbol covering the
// given period up to now. An unknown symbol yields apperr.ErrEmptyMarketData;
// network and provider failures yield apperr.ErrTransport. No retry.
func (c *Client) FetchDailyCloses(ctx context.Context, symbol string, period time.Duration) ([]PricePoint, error) {
	to := time.Now()
	from := to.Add(-period)

	fullURL := fmt.Sprintf(
		"%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.baseURL, url.PathEscape(symbol), from.Unix(), to.Unix(),
	)

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrTransport, err)
	}
	defer resp.Body.Close()

	// The provider answers 404 for symbols it does not know.
	if resp.StatusCode == http.StatusNotFound {
		return nil, apperr.ErrEmptyMarketData
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", apperr.ErrTransport, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", apperr.ErrTransport, err)
	}

	prices, err := parseChartResponse(body)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(prices),
	}).Debug("Fetched daily closes")
	return prices, nil
}

// chartResponse mirrors the provider's chart API payload.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// parseChartResponse decodes the chart payload into an ordered close series.
// Null closes (holidays, halted sessions) are skipped.
func parseChartResponse(body []byte) ([]PricePoint, error) {
	var decoded chartResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", apperr.ErrTransport, err)
	}

	if decoded.Chart.Error != nil {
		return nil, apperr.ErrEmptyMarketData
	}
	if len(decoded.Chart.Result) == 0 {
		return nil, apperr.ErrEmptyMarketData
	}

	result := decoded.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, apperr.ErrEmptyMarketData
	}

	closes := result.Indicators.Quote[0].Close

	var prices []PricePoint
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		prices = append(prices, PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *closes[i],
		})
	}

	if len(prices) == 0 {
		return nil, apperr.ErrEmptyMarketData
	}

	return prices, nil
}
