package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPClientSearch(t *testing.T) {
	var gotQuery, gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotToken = r.Header.Get("X-Shopify-Storefront-Access-Token")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":[
			{"title":"Vitamin C 1000","price":14.9,"currency":"EUR","variant_id":"v1","available":true,"tags":["immunity"],"collections":["Immunity Collection"]},
			{"title":"Zinc Picolinate","price":9.9,"currency":"EUR","variant_id":"v2","available":true,"tags":["immunity"],"compare_at_price":12.9}
		]}`))
	}))
	defer server.Close()

	c := NewHTTPClient(server.URL, "tok-123")
	products, err := c.Search(context.Background(), "immunity")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if gotQuery != "immunity" {
		t.Fatalf("q=%q", gotQuery)
	}
	if gotToken != "tok-123" {
		t.Fatalf("token=%q", gotToken)
	}
	if len(products) != 2 {
		t.Fatalf("len=%d", len(products))
	}

	first := products[0]
	if first.Title != "Vitamin C 1000" || first.Price != 14.9 || first.OnSale {
		t.Fatalf("first=%+v", first)
	}
	second := products[1]
	if !second.OnSale || second.OriginalPrice == nil || *second.OriginalPrice != 12.9 {
		t.Fatalf("second=%+v", second)
	}
}

func TestHTTPClientSearchByTags(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`{"products":[]}`))
	}))
	defer server.Close()

	c := NewHTTPClient(server.URL, "")
	products, err := c.SearchByTags(context.Background(), []string{"energy", "sleep"})
	if err != nil {
		t.Fatalf("search by tags: %v", err)
	}
	if gotQuery != "tag:energy OR tag:sleep" {
		t.Fatalf("q=%q", gotQuery)
	}
	if len(products) != 0 {
		t.Fatalf("len=%d", len(products))
	}
}

func TestHTTPClientErrors(t *testing.T) {
	t.Run("http status surfaces", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		c := NewHTTPClient(server.URL, "")
		if _, err := c.Search(context.Background(), "x"); err == nil {
			t.Fatal("5xx must be an error, never an empty result")
		}
	})

	t.Run("bad json surfaces", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		c := NewHTTPClient(server.URL, "")
		if _, err := c.Search(context.Background(), "x"); err == nil {
			t.Fatal("decode failure must be an error")
		}
	})

	t.Run("connection refused surfaces", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close()

		c := NewHTTPClient(server.URL, "")
		if _, err := c.Search(context.Background(), "x"); err == nil {
			t.Fatal("transport failure must be an error")
		}
	})
}

func TestOnSaleComputation(t *testing.T) {
	price := func(v float64) *float64 { return &v }
	tests := []struct {
		name    string
		payload productPayload
		onSale  bool
	}{
		{name: "compare above price", payload: productPayload{Price: 10, CompareAtPrice: price(15)}, onSale: true},
		{name: "compare equal price", payload: productPayload{Price: 10, CompareAtPrice: price(10)}, onSale: false},
		{name: "compare below price", payload: productPayload{Price: 10, CompareAtPrice: price(8)}, onSale: false},
		{name: "no compare price", payload: productPayload{Price: 10}, onSale: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.payload.toDomain().OnSale; got != tt.onSale {
				t.Fatalf("OnSale=%t want %t", got, tt.onSale)
			}
		})
	}
}

func TestStaticClientSearch(t *testing.T) {
	c := NewStaticClient(nil)

	products, err := c.Search(context.Background(), "melatonin")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(products) != 1 || products[0].Title != "Melatonin Night Gummies" {
		t.Fatalf("products=%+v", products)
	}

	byTag, err := c.SearchByTags(context.Background(), []string{"digestion"})
	if err != nil {
		t.Fatalf("search by tags: %v", err)
	}
	if len(byTag) != 1 || byTag[0].Title != "Probiotic Complex 10B" {
		t.Fatalf("byTag=%+v", byTag)
	}
}
