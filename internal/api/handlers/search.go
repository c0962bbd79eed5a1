package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/middleware"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/sage"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/search"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/services"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/telemetry"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/utils"
)

// scoreConcurrency bounds the parallel scoring fan-out per request.
const scoreConcurrency = 8

// QuotaManager spends and reports per-user search quota.
type QuotaManager interface {
	Consume(ctx context.Context, uid string) (*models.EnergyStatus, error)
	Status(ctx context.Context, uid string) (*models.EnergyStatus, error)
}

// Searcher fetches raw product listings for a query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.Product, error)
}

// ResultCache caches raw search result pages.
type ResultCache interface {
	Get(ctx context.Context, query, locale string) ([]models.Product, bool)
	Set(ctx context.Context, query, locale string, products []models.Product) error
}

// Historian records price observations and serves them back as trend input.
type Historian interface {
	Record(ctx context.Context, product models.Product)
	Points(ctx context.Context, productID string) []models.PricePoint
}

// AlertChecker fires price alerts whose target a fresh price crossed.
type AlertChecker interface {
	CheckPrice(ctx context.Context, product models.Product) int
}

// SearchHandler serves the scored product search endpoint.
type SearchHandler struct {
	quota   QuotaManager
	cache   ResultCache
	search  Searcher
	history Historian
	alerts  AlertChecker
	engine  *sage.Engine
	advisor *services.Advisor
	logger  *logrus.Logger
}

func NewSearchHandler(quota QuotaManager, cache ResultCache, searcher Searcher, history Historian, alerts AlertChecker, engine *sage.Engine, advisor *services.Advisor, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		quota:   quota,
		cache:   cache,
		search:  searcher,
		history: history,
		alerts:  alerts,
		engine:  engine,
		advisor: advisor,
		logger:  logger,
	}
}

// ScoredResult pairs a listing with its intelligence verdict.
type ScoredResult struct {
	Product      models.Product             `json:"product"`
	Intelligence models.IntelligenceVerdict `json:"intelligence"`
}

// SearchResponse is the full payload of GET /api/v1/search.
type SearchResponse struct {
	Query   string               `json:"query"`
	Results []ScoredResult       `json:"results"`
	Advice  string               `json:"advice,omitempty"`
	Energy  *models.EnergyStatus `json:"energy,omitempty"`
	Cached  bool                 `json:"cached"`
}

// Search runs the full pipeline: quota check, cached or live provider fetch,
// concurrent scoring of every listing against the rest of the result page,
// history recording and alert checks on fresh data.
func (h *SearchHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	locale := requestLocale(c)
	uid := c.GetString(middleware.ContextUserID)
	ctx := c.Request.Context()

	energy, err := h.quota.Consume(ctx, uid)
	if err != nil {
		h.quotaError(c, uid, err)
		return
	}

	products, cached := h.cache.Get(ctx, query, locale)
	if !cached {
		products, err = h.search.Search(ctx, query)
		if err != nil {
			if h.logger != nil {
				h.logger.WithError(err).WithField("query", query).Error("search provider request failed")
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "search provider unavailable"})
			return
		}
		if err := h.cache.Set(ctx, query, locale, products); err != nil && h.logger != nil {
			h.logger.WithError(err).Warn("failed to cache search results")
		}
		// History and alerts only advance on fresh provider data so a
		// cached page replayed within the TTL is not double-counted.
		for _, p := range products {
			h.history.Record(ctx, p)
			h.alerts.CheckPrice(ctx, p)
		}
	}

	events := requestEvents(c)
	results := make([]ScoredResult, len(products))

	scoreCtx, span := telemetry.Tracer().Start(ctx, "search.score",
		trace.WithAttributes(
			attribute.Int("search.results", len(products)),
			attribute.Bool("search.cached", cached),
		))
	g, gctx := errgroup.WithContext(scoreCtx)
	g.SetLimit(scoreConcurrency)
	for i := range products {
		g.Go(func() error {
			product := products[i]
			verdict := h.engine.Compute(sage.Input{
				Product: product,
				Market:  search.MarketOffers(products, i),
				History: h.history.Points(gctx, product.ID),
				Events:  events,
				Locale:  locale,
			})
			results[i] = ScoredResult{Product: product, Intelligence: verdict}
			return nil
		})
	}
	// Scoring never errors; Wait only synchronizes the fan-out.
	_ = g.Wait()
	span.End()

	response := SearchResponse{
		Query:   query,
		Results: results,
		Energy:  energy,
		Cached:  cached,
	}
	if len(results) > 0 {
		response.Advice = h.advisor.Advise(results[0].Product, results[0].Intelligence, locale)
	}

	c.JSON(http.StatusOK, response)
}

// Energy reports the caller's remaining quota without spending a search.
func (h *SearchHandler) Energy(c *gin.Context) {
	uid := c.GetString(middleware.ContextUserID)
	status, err := h.quota.Status(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load quota"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"energy": status})
}

func (h *SearchHandler) quotaError(c *gin.Context, uid string, err error) {
	var quotaErr *utils.QuotaExceededError
	switch {
	case errors.Is(err, services.ErrProExpired):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "pro subscription expired",
			"code":  "PRO_EXPIRED",
		})
	case errors.As(err, &quotaErr):
		status, statusErr := h.quota.Status(c.Request.Context(), uid)
		body := gin.H{
			"error": "free searches exhausted",
			"code":  "ENERGY_EMPTY",
		}
		if statusErr == nil {
			body["energy"] = status
		}
		c.JSON(http.StatusTooManyRequests, body)
	default:
		if h.logger != nil {
			h.logger.WithError(err).WithField("uid", uid).Error("quota check failed")
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check quota"})
	}
}

// requestLocale resolves the response locale from the explicit query
// parameter, then the Accept-Language header, then the English default.
func requestLocale(c *gin.Context) string {
	if locale := c.Query("locale"); locale != "" {
		return locale
	}
	if header := c.GetHeader("Accept-Language"); header != "" {
		return header
	}
	return "en"
}

// requestEvents reads the client-reported behavior counters. Absent or
// malformed values stay zero; the personality engine treats that as no
// signal.
func requestEvents(c *gin.Context) models.UserEvents {
	return models.UserEvents{
		PriceChecks: intQuery(c, "price_checks"),
		WatchDays:   intQuery(c, "watch_days"),
		BuyClicks:   intQuery(c, "buy_clicks"),
	}
}

func intQuery(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value < 0 {
		return 0
	}
	return value
}
