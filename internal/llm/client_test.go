package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPClientGenerate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer key-1" {
				t.Errorf("auth=%q", got)
			}
			w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Voici ma suggestion."}}]}`))
		}))
		defer server.Close()

		c := NewHTTPClient(server.URL, "key-1", "gpt-4o-mini")
		out, err := c.Generate(context.Background(), "bonjour")
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if out != "Voici ma suggestion." {
			t.Fatalf("out=%q", out)
		}
	})

	t.Run("api error payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
		}))
		defer server.Close()

		c := NewHTTPClient(server.URL, "key-1", "gpt-4o-mini")
		if _, err := c.Generate(context.Background(), "bonjour"); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("empty choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		c := NewHTTPClient(server.URL, "key-1", "gpt-4o-mini")
		if _, err := c.Generate(context.Background(), "bonjour"); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestDisabled(t *testing.T) {
	if _, err := (Disabled{}).Generate(context.Background(), "x"); !errors.Is(err, ErrDisabled) {
		t.Fatalf("err=%v", err)
	}
}
