package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/middleware"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/sage"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/services"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/utils"
)

type stubQuota struct {
	consumeStatus *models.EnergyStatus
	consumeErr    error
	status        *models.EnergyStatus
	statusErr     error
	consumed      int
}

func (s *stubQuota) Consume(_ context.Context, _ string) (*models.EnergyStatus, error) {
	s.consumed++
	return s.consumeStatus, s.consumeErr
}

func (s *stubQuota) Status(_ context.Context, _ string) (*models.EnergyStatus, error) {
	return s.status, s.statusErr
}

type memCache struct {
	pages map[string][]models.Product
	sets  int
}

func newMemCache() *memCache {
	return &memCache{pages: make(map[string][]models.Product)}
}

func (m *memCache) Get(_ context.Context, query, locale string) ([]models.Product, bool) {
	products, ok := m.pages[query+"|"+locale]
	return products, ok
}

func (m *memCache) Set(_ context.Context, query, locale string, products []models.Product) error {
	m.pages[query+"|"+locale] = products
	m.sets++
	return nil
}

type stubSearcher struct {
	products []models.Product
	err      error
	calls    int
}

func (s *stubSearcher) Search(_ context.Context, _ string) ([]models.Product, error) {
	s.calls++
	return s.products, s.err
}

type stubHistorian struct {
	recorded []models.Product
	points   map[string][]models.PricePoint
}

func (s *stubHistorian) Record(_ context.Context, product models.Product) {
	s.recorded = append(s.recorded, product)
}

func (s *stubHistorian) Points(_ context.Context, productID string) []models.PricePoint {
	return s.points[productID]
}

type stubAlertChecker struct {
	checked int
}

func (s *stubAlertChecker) CheckPrice(_ context.Context, _ models.Product) int {
	s.checked++
	return 0
}

func listingPage() []models.Product {
	return []models.Product{
		{ID: "p1", Title: "RTX 4070", Price: 80, Source: "Newegg US", Link: "https://newegg.example/p1"},
		{ID: "p2", Title: "RTX 4070", Price: 100, Source: "ShopA"},
		{ID: "p3", Title: "RTX 4070", Price: 105, Source: "ShopB"},
		{ID: "p4", Title: "RTX 4070", Price: 95, Source: "ShopC"},
	}
}

func newSearchRouter(h *SearchHandler, uid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	identity := func(c *gin.Context) { c.Set(middleware.ContextUserID, uid) }
	router.GET("/api/v1/search", identity, h.Search)
	router.GET("/api/v1/energy", identity, h.Energy)
	return router
}

func newSearchHandlerForTest(quota *stubQuota, cache *memCache, searcher *stubSearcher, history *stubHistorian, alerts *stubAlertChecker) *SearchHandler {
	return NewSearchHandler(quota, cache, searcher, history, alerts,
		sage.NewEngine(nil), services.NewAdvisor(), nil)
}

func TestSearchRequiresQuery(t *testing.T) {
	h := newSearchHandlerForTest(&stubQuota{}, newMemCache(), &stubSearcher{}, &stubHistorian{}, &stubAlertChecker{})
	router := newSearchRouter(h, "u1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/search", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchQuotaExhausted(t *testing.T) {
	quota := &stubQuota{
		consumeErr: utils.NewQuotaExceededError(3),
		status:     &models.EnergyStatus{Left: 0, Limit: 3},
	}
	h := newSearchHandlerForTest(quota, newMemCache(), &stubSearcher{}, &stubHistorian{}, &stubAlertChecker{})
	router := newSearchRouter(h, "u1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/search?q=rtx+4070", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ENERGY_EMPTY", body["code"])
	assert.Contains(t, body, "energy")
}

func TestSearchProExpired(t *testing.T) {
	quota := &stubQuota{consumeErr: services.ErrProExpired}
	h := newSearchHandlerForTest(quota, newMemCache(), &stubSearcher{}, &stubHistorian{}, &stubAlertChecker{})
	router := newSearchRouter(h, "u1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/search?q=rtx+4070", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "PRO_EXPIRED", body["code"])
}

func TestSearchFreshResults(t *testing.T) {
	quota := &stubQuota{consumeStatus: &models.EnergyStatus{Left: 2, Limit: 3}}
	cache := newMemCache()
	searcher := &stubSearcher{products: listingPage()}
	history := &stubHistorian{points: map[string][]models.PricePoint{}}
	alerts := &stubAlertChecker{}
	h := newSearchHandlerForTest(quota, cache, searcher, history, alerts)
	router := newSearchRouter(h, "u1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/search?q=rtx+4070&locale=en", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "rtx 4070", resp.Query)
	assert.False(t, resp.Cached)
	require.Len(t, resp.Results, 4)
	assert.NotEmpty(t, resp.Advice)
	require.NotNil(t, resp.Energy)
	assert.Equal(t, 2, resp.Energy.Left)

	// every listing is scored against the other three
	for _, result := range resp.Results {
		assert.True(t, result.Intelligence.HasEnoughData)
		assert.NotEmpty(t, result.Intelligence.FinalVerdict.Decision)
	}

	// fresh provider data feeds cache, history and alert checks
	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, 1, cache.sets)
	assert.Len(t, history.recorded, 4)
	assert.Equal(t, 4, alerts.checked)
}

func TestSearchCachedResults(t *testing.T) {
	quota := &stubQuota{consumeStatus: &models.EnergyStatus{Left: 1, Limit: 3}}
	cache := newMemCache()
	require.NoError(t, cache.Set(context.Background(), "rtx 4070", "en", listingPage()))
	cache.sets = 0
	searcher := &stubSearcher{}
	history := &stubHistorian{points: map[string][]models.PricePoint{}}
	alerts := &stubAlertChecker{}
	h := newSearchHandlerForTest(quota, cache, searcher, history, alerts)
	router := newSearchRouter(h, "u1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/search?q=rtx+4070&locale=en", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Cached)
	require.Len(t, resp.Results, 4)

	// cache hits touch neither the provider nor history nor alerts
	assert.Equal(t, 0, searcher.calls)
	assert.Equal(t, 0, cache.sets)
	assert.Empty(t, history.recorded)
	assert.Equal(t, 0, alerts.checked)
}

func TestSearchProviderFailure(t *testing.T) {
	quota := &stubQuota{consumeStatus: &models.EnergyStatus{Left: 2, Limit: 3}}
	searcher := &stubSearcher{err: errors.New("upstream timeout")}
	h := newSearchHandlerForTest(quota, newMemCache(), searcher, &stubHistorian{}, &stubAlertChecker{})
	router := newSearchRouter(h, "u1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/search?q=rtx+4070", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestEnergyEndpoint(t *testing.T) {
	quota := &stubQuota{status: &models.EnergyStatus{Left: 3, Limit: 3}}
	h := newSearchHandlerForTest(quota, newMemCache(), &stubSearcher{}, &stubHistorian{}, &stubAlertChecker{})
	router := newSearchRouter(h, "u1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/energy", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Energy models.EnergyStatus `json:"energy"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Energy.Left)

	// status never spends a search
	assert.Equal(t, 0, quota.consumed)
}
