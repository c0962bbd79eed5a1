// Package search wraps the upstream shopping search provider and normalizes
// its listings into the records the scoring pipeline consumes.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/config"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/sage"
)

// Client is the HTTP client for the shopping search provider.
type Client struct {
	HTTPClient *http.Client
	baseURL    string
	apiKey     string
	engine     string
	location   string
	maxResults int
	logger     *logrus.Logger
}

// NewClient creates a new search client instance.
func NewClient(cfg *config.SearchConfig, logger *logrus.Logger) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		engine:     cfg.Engine,
		location:   cfg.Location,
		maxResults: maxResults,
		logger:     logger,
	}
}

// Search queries the provider for shopping listings and returns them
// normalized, capped at the configured result limit. Listings without a
// usable price are kept (price 0) so callers can still display them; the
// pipeline filters them out of statistics.
func (c *Client) Search(ctx context.Context, query string) ([]models.Product, error) {
	params := url.Values{}
	params.Set("engine", c.engine)
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	if c.location != "" {
		params.Set("location", c.location)
	}

	var response shoppingResponse
	if err := c.makeRequest(ctx, c.baseURL+"?"+params.Encode(), &response); err != nil {
		return nil, err
	}
	if response.Error != "" {
		return nil, fmt.Errorf("search provider error: %s", response.Error)
	}

	results := response.ShoppingResults
	if len(results) > c.maxResults {
		results = results[:c.maxResults]
	}

	products := make([]models.Product, 0, len(results))
	for _, raw := range results {
		products = append(products, normalizeResult(raw))
	}

	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{
			"query":   query,
			"results": len(products),
		}).Debug("search completed")
	}

	return products, nil
}

func (c *Client) makeRequest(ctx context.Context, requestURL string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Findly-API/1.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil && c.logger != nil {
			c.logger.WithError(err).Warn("error closing response body")
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errorResp errorResponse
		if err := json.Unmarshal(respBody, &errorResp); err == nil && errorResp.Error != "" {
			return fmt.Errorf("search provider error (%d): %s", resp.StatusCode, errorResp.Error)
		}
		return fmt.Errorf("search provider error (%d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

// normalizeResult maps one raw listing onto the pipeline's product record.
func normalizeResult(raw shoppingResult) models.Product {
	price := raw.ExtractedPrice
	if price <= 0 {
		price = sage.CleanPrice(raw.Price)
	}
	original := raw.ExtractedOriginalPrice
	if original <= 0 {
		original = sage.CleanPrice(raw.OriginalPrice)
	}

	source := raw.Seller
	if source == "" {
		source = raw.Source
	}

	link := raw.ProductLink
	if link == "" {
		link = raw.Link
	}

	id := raw.ProductID
	if id == "" {
		id = uuid.NewSHA1(uuid.NameSpaceURL, []byte(raw.Title+"|"+source)).String()
	}

	return models.Product{
		ID:            id,
		Title:         raw.Title,
		Price:         price,
		OriginalPrice: original,
		Source:        source,
		Link:          link,
		Thumbnail:     raw.Thumbnail,
	}
}

// MarketOffers projects the full result set into comparable offers for one
// subject listing, excluding the subject itself by index.
func MarketOffers(products []models.Product, subject int) []models.Offer {
	offers := make([]models.Offer, 0, len(products)-1)
	for i, p := range products {
		if i == subject {
			continue
		}
		offers = append(offers, models.Offer{Price: p.Price, Source: p.Source, Link: p.Link})
	}
	return offers
}
