package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nutriguide/internal/domain"
)

// Client is the storefront search boundary. Implementations must return
// products with tags, collections and the sale flag already computed, and
// must surface fetch failures instead of returning an empty slice: the
// ranking layer cannot tell a swallowed error apart from "no matches".
type Client interface {
	Search(ctx context.Context, query string) ([]domain.Product, error)
	SearchByTags(ctx context.Context, tags []string) ([]domain.Product, error)
}

// HTTPClient talks to a Shopify-style storefront search endpoint.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *HTTPClient) Search(ctx context.Context, query string) ([]domain.Product, error) {
	params := url.Values{}
	params.Set("q", query)
	return c.fetch(ctx, params)
}

// SearchByTags asks the storefront for products carrying at least one of the
// tags (tag:x OR tag:y at the data source).
func (c *HTTPClient) SearchByTags(ctx context.Context, tags []string) ([]domain.Product, error) {
	terms := make([]string, 0, len(tags))
	for _, t := range tags {
		terms = append(terms, "tag:"+t)
	}
	params := url.Values{}
	params.Set("q", strings.Join(terms, " OR "))
	return c.fetch(ctx, params)
}

func (c *HTTPClient) fetch(ctx context.Context, params url.Values) ([]domain.Product, error) {
	endpoint := c.baseURL + "/search/products.json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("catalog http error: status=%d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	products := make([]domain.Product, 0, len(payload.Products))
	for _, raw := range payload.Products {
		products = append(products, raw.toDomain())
	}
	return products, nil
}

type searchResponse struct {
	Products []productPayload `json:"products"`
}

type productPayload struct {
	Title          string   `json:"title"`
	Price          float64  `json:"price"`
	Currency       string   `json:"currency"`
	Image          string   `json:"image"`
	VariantID      string   `json:"variant_id"`
	Available      bool     `json:"available"`
	Tags           []string `json:"tags"`
	Collections    []string `json:"collections"`
	CompareAtPrice *float64 `json:"compare_at_price"`
}

func (p productPayload) toDomain() domain.Product {
	product := domain.Product{
		Title:       p.Title,
		Price:       p.Price,
		Currency:    p.Currency,
		Image:       p.Image,
		VariantID:   p.VariantID,
		Available:   p.Available,
		Tags:        p.Tags,
		Collections: p.Collections,
	}
	if p.CompareAtPrice != nil {
		product.OriginalPrice = p.CompareAtPrice
		product.OnSale = *p.CompareAtPrice > p.Price
	}
	return product
}
