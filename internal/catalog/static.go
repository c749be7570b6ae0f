package catalog

import (
	"context"
	"strings"

	"nutriguide/internal/domain"
)

// StaticClient serves a fixed product list, filtered in memory. Used by the
// CLI demo and by tests.
type StaticClient struct {
	Products []domain.Product
	Err      error
}

func NewStaticClient(products []domain.Product) *StaticClient {
	if products == nil {
		products = SampleProducts()
	}
	return &StaticClient{Products: products}
}

func (c *StaticClient) Search(_ context.Context, query string) ([]domain.Product, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	words := strings.Fields(strings.ToLower(query))
	var out []domain.Product
	for _, p := range c.Products {
		if staticMatches(p, words) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *StaticClient) SearchByTags(_ context.Context, tags []string) ([]domain.Product, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	var out []domain.Product
	for _, p := range c.Products {
		for _, want := range tags {
			if hasTag(p, want) {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func staticMatches(p domain.Product, words []string) bool {
	if len(words) == 0 {
		return true
	}
	haystack := strings.ToLower(p.Title + " " + strings.Join(p.Tags, " ") + " " + strings.Join(p.Collections, " "))
	for _, w := range words {
		if strings.Contains(haystack, w) {
			return true
		}
	}
	return false
}

func hasTag(p domain.Product, want string) bool {
	want = strings.ToLower(want)
	for _, t := range p.Tags {
		if strings.ToLower(t) == want {
			return true
		}
	}
	return false
}

// SampleProducts is a small demo catalog for running without a storefront.
func SampleProducts() []domain.Product {
	price := func(v float64) *float64 { return &v }
	return []domain.Product{
		{Title: "Morning Energy Capsules", Price: 24.90, Currency: "EUR", VariantID: "var-001", Available: true, Tags: []string{"energy", "vitamins"}, Collections: []string{"Energy Collection"}},
		{Title: "Vitamin B12 Boost", Price: 19.90, Currency: "EUR", VariantID: "var-002", Available: true, Tags: []string{"energy", "b12"}, Collections: []string{"Energy Collection"}, OriginalPrice: price(24.90), OnSale: true},
		{Title: "Ginseng Extract Forte", Price: 29.90, Currency: "EUR", VariantID: "var-003", Available: true, Tags: []string{"energy", "focus"}, Collections: []string{"Herbal"}},
		{Title: "Melatonin Night Gummies", Price: 16.90, Currency: "EUR", VariantID: "var-004", Available: true, Tags: []string{"sleep"}, Collections: []string{"Sleep Collection"}},
		{Title: "Magnesium Bisglycinate", Price: 21.90, Currency: "EUR", VariantID: "var-005", Available: true, Tags: []string{"sleep", "stress", "recovery"}, Collections: []string{"Minerals"}},
		{Title: "Ashwagandha Calm", Price: 27.90, Currency: "EUR", VariantID: "var-006", Available: true, Tags: []string{"stress", "sleep"}, Collections: []string{"Herbal"}, OriginalPrice: price(32.90), OnSale: true},
		{Title: "Vitamin C 1000", Price: 14.90, Currency: "EUR", VariantID: "var-007", Available: true, Tags: []string{"immunity"}, Collections: []string{"Immunity Collection"}},
		{Title: "Zinc Picolinate", Price: 12.90, Currency: "EUR", VariantID: "var-008", Available: true, Tags: []string{"immunity", "skin"}, Collections: []string{"Minerals"}},
		{Title: "Probiotic Complex 10B", Price: 34.90, Currency: "EUR", VariantID: "var-009", Available: true, Tags: []string{"digestion", "gut"}, Collections: []string{"Digestion"}},
		{Title: "Omega-3 Fish Oil", Price: 25.90, Currency: "EUR", VariantID: "var-010", Available: true, Tags: []string{"heart", "recovery"}, Collections: []string{"Essentials"}},
		{Title: "Whey Protein Vanilla", Price: 39.90, Currency: "EUR", VariantID: "var-011", Available: true, Tags: []string{"sport", "muscle", "protein"}, Collections: []string{"Sport"}},
		{Title: "Creatine Monohydrate Pure", Price: 22.90, Currency: "EUR", VariantID: "var-012", Available: true, Tags: []string{"sport", "muscle"}, Collections: []string{"Sport"}, OriginalPrice: price(27.90), OnSale: true},
		{Title: "Collagen Peptides Beauty", Price: 31.90, Currency: "EUR", VariantID: "var-013", Available: true, Tags: []string{"skin", "recovery"}, Collections: []string{"Beauty"}},
		{Title: "Iron Bisglycinate Gentle", Price: 17.90, Currency: "EUR", VariantID: "var-014", Available: true, Tags: []string{"energy", "women"}, Collections: []string{"Essentials"}},
		{Title: "Vitamin D3 2000", Price: 13.90, Currency: "EUR", VariantID: "var-015", Available: true, Tags: []string{"immunity", "bones"}, Collections: []string{"Essentials"}},
	}
}
