package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/config"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
)

func newTestClient(serverURL string) *Client {
	return NewClient(&config.SearchConfig{
		BaseURL:    serverURL,
		APIKey:     "test-key",
		Engine:     "google_shopping",
		Location:   "United Arab Emirates",
		Timeout:    5,
		MaxResults: 3,
	}, nil)
}

func TestSearchNormalizesListings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "google_shopping", r.URL.Query().Get("engine"))
		assert.Equal(t, "rtx 4070", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"shopping_results": [
				{
					"product_id": "p1",
					"title": "RTX 4070",
					"price": "$549.00",
					"extracted_price": 549,
					"original_price": "$649.00",
					"extracted_original_price": 649,
					"seller": "Newegg",
					"product_link": "https://newegg.example/p1",
					"thumbnail": "https://img.example/p1"
				},
				{
					"title": "RTX 4070 OC",
					"price": "AED 2,199.00",
					"source": "Amazon.ae",
					"link": "https://amazon.example/p2"
				}
			]
		}`))
	}))
	defer server.Close()

	products, err := newTestClient(server.URL).Search(context.Background(), "rtx 4070")
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, 549.0, products[0].Price)
	assert.Equal(t, 649.0, products[0].OriginalPrice)
	assert.Equal(t, "Newegg", products[0].Source)
	assert.Equal(t, "https://newegg.example/p1", products[0].Link)

	// display-text price is parsed when no extracted value is present,
	// and a deterministic ID is minted
	assert.Equal(t, 2199.0, products[1].Price)
	assert.Equal(t, "Amazon.ae", products[1].Source)
	assert.NotEmpty(t, products[1].ID)
}

func TestSearchCapsResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"shopping_results": [
			{"title": "a", "extracted_price": 1},
			{"title": "b", "extracted_price": 2},
			{"title": "c", "extracted_price": 3},
			{"title": "d", "extracted_price": 4}
		]}`))
	}))
	defer server.Close()

	products, err := newTestClient(server.URL).Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestSearchProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "Invalid API key"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestSearchErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestMarketOffers(t *testing.T) {
	products := []models.Product{
		{Price: 100, Source: "A"},
		{Price: 90, Source: "B"},
		{Price: 110, Source: "C"},
	}

	offers := MarketOffers(products, 1)
	require.Len(t, offers, 2)
	assert.Equal(t, "A", offers[0].Source)
	assert.Equal(t, "C", offers[1].Source)
}
