package domain

// Product is a catalog entry as returned by the storefront search boundary.
// Tags, collections and the sale flag are expected to arrive precomputed.
type Product struct {
	Title         string   `json:"title"`
	Price         float64  `json:"price"`
	Currency      string   `json:"currency"`
	Image         string   `json:"image,omitempty"`
	VariantID     string   `json:"variant_id"`
	Available     bool     `json:"available"`
	Tags          []string `json:"tags"`
	Collections   []string `json:"collections"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	OnSale        bool     `json:"is_on_sale"`
}

// ScoredCandidate pairs a product with its relevance score during one
// ranking call. Never stored.
type ScoredCandidate struct {
	Product Product
	Score   int
}
