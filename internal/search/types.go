package search

// shoppingResponse is the provider's search payload, reduced to the fields
// the pipeline consumes.
type shoppingResponse struct {
	ShoppingResults []shoppingResult `json:"shopping_results"`
	Error           string           `json:"error,omitempty"`
}

// shoppingResult is one raw listing as returned by the provider. Prices come
// both as display text and as extracted numbers; the extracted value wins
// when present.
type shoppingResult struct {
	ProductID              string  `json:"product_id"`
	Title                  string  `json:"title"`
	Price                  string  `json:"price"`
	ExtractedPrice         float64 `json:"extracted_price"`
	OriginalPrice          string  `json:"original_price"`
	ExtractedOriginalPrice float64 `json:"extracted_original_price"`
	Seller                 string  `json:"seller"`
	Source                 string  `json:"source"`
	ProductLink            string  `json:"product_link"`
	Link                   string  `json:"link"`
	Thumbnail              string  `json:"thumbnail"`
}

type errorResponse struct {
	Error string `json:"error"`
}
