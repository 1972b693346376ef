package lookup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecoscan-rewards-go/internal/models"
	"ecoscan-rewards-go/internal/store"
)

func newTestService(serverURL string) *Service {
	return NewService(models.LookupConfig{
		BaseUrl: serverURL,
		Timeout: 5 * time.Second,
	})
}

func TestGetProduct_Found(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v0/product/3017620422003.json" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": 1,
			"code": "3017620422003",
			"product": {
				"product_name": "Hazelnut Spread",
				"brands": "Nutora",
				"categories_tags": ["en:breakfasts", "en:spreads"],
				"ingredients_text": "sugar, palm oil, hazelnuts"
			}
		}`))
	}))
	defer server.Close()

	service := newTestService(server.URL)
	product, err := service.GetProduct(context.Background(), "3017620422003")
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}

	if product.Name != "Hazelnut Spread" {
		t.Errorf("Unexpected name: %s", product.Name)
	}
	if product.Brand != "Nutora" {
		t.Errorf("Unexpected brand: %s", product.Brand)
	}
	// Language prefixes are stripped from category tags.
	if len(product.Categories) != 2 || product.Categories[0] != "breakfasts" || product.Categories[1] != "spreads" {
		t.Errorf("Unexpected categories: %v", product.Categories)
	}
}

func TestGetProduct_NotFoundStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": 0, "code": "0000000000000"}`))
	}))
	defer server.Close()

	service := newTestService(server.URL)
	_, err := service.GetProduct(context.Background(), "0000000000000")
	if !errors.Is(err, store.ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}
}

func TestGetProduct_EmptyName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": 1, "code": "123", "product": {"product_name": ""}}`))
	}))
	defer server.Close()

	service := newTestService(server.URL)
	_, err := service.GetProduct(context.Background(), "123")
	if !errors.Is(err, store.ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound for empty product name, got %v", err)
	}
}

func TestGetProduct_HTTPNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	service := newTestService(server.URL)
	_, err := service.GetProduct(context.Background(), "missing")
	if !errors.Is(err, store.ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound on 404, got %v", err)
	}
}

func TestGetProduct_DefaultsBrand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": 1, "code": "456", "product": {"product_name": "Mystery Snack"}}`))
	}))
	defer server.Close()

	service := newTestService(server.URL)
	product, err := service.GetProduct(context.Background(), "456")
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if product.Brand != "Unknown" {
		t.Errorf("Expected Unknown brand fallback, got %s", product.Brand)
	}
}
