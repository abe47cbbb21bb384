package market

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FetchCompanyName scrapes the company name from the provider's quote page.
// Best effort: callers fall back to the raw symbol when this fails.
func (c *Client) FetchCompanyName(ctx context.Context, symbol string) (string, error) {
	fullURL := fmt.Sprintf("%s/quote/%s/", c.quoteURL, url.PathEscape(symbol))

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return "", fmt.Errorf("quote page request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse quote page failed: %w", err)
	}

	name := strings.TrimSpace(doc.Find("h1").First().Text())
	if name == "" {
		return "", fmt.Errorf("company name not found on quote page")
	}

	return name, nil
}
