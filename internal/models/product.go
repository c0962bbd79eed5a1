package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the normalized listing record the scoring pipeline operates on.
// Raw listings from search providers come in several shapes; the search
// client normalizes them into this struct before they enter the pipeline.
// A missing or unparseable price normalizes to 0.
type Product struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	Source        string  `json:"source,omitempty"`
	Link          string  `json:"link,omitempty"`
	Thumbnail     string  `json:"thumbnail,omitempty"`
}

// Offer is one comparable listing in the market sample.
type Offer struct {
	Price  float64 `json:"price"`
	Source string  `json:"source,omitempty"`
	Link   string  `json:"link,omitempty"`
}

// PricePoint is one observation of a product's price over time, ordered by
// timestamp ascending when used as trend input.
type PricePoint struct {
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// PriceObservation is the stored form of a price history record.
type PriceObservation struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Store     string          `json:"store,omitempty"`
	Link      string          `json:"link,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Point converts a stored observation into pipeline input.
func (o PriceObservation) Point() PricePoint {
	return PricePoint{Price: o.Price.InexactFloat64(), Timestamp: o.Timestamp}
}

// UserEvents holds the behavioral counters the personality engine scores.
// All counters default to zero; none are required.
type UserEvents struct {
	PriceChecks       int  `json:"price_checks,omitempty"`
	WatchDays         int  `json:"watch_days,omitempty"`
	BuyClicks         int  `json:"buy_clicks,omitempty"`
	WishlistAdditions int  `json:"wishlist_additions,omitempty"`
	QuickPurchases    int  `json:"quick_purchases,omitempty"`
	BrandSearches     int  `json:"brand_searches,omitempty"`
	BudgetSet         bool `json:"budget_set,omitempty"`
	ClickedAnalysis   bool `json:"clicked_analysis,omitempty"`
}
