package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"ecoscan-rewards-go/internal/models"
	"ecoscan-rewards-go/internal/store"

	"go.uber.org/zap"
)

// Service queries the Open Food Facts product database by barcode.
type Service struct {
	client  *http.Client
	baseUrl string
}

func NewService(cfg models.LookupConfig) *Service {
	tr := &http.Transport{
		ResponseHeaderTimeout: cfg.Timeout,
		Proxy:                 http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			KeepAlive: 30 * time.Second,
			Timeout:   15 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		MaxIdleConnsPerHost: 5,
	}

	return &Service{
		client: &http.Client{
			Transport: tr,
			Timeout:   cfg.Timeout,
		},
		baseUrl: strings.TrimRight(cfg.BaseUrl, "/"),
	}
}

type productResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Product struct {
		ProductName     string   `json:"product_name"`
		Brands          string   `json:"brands"`
		CategoriesTags  []string `json:"categories_tags"`
		IngredientsText string   `json:"ingredients_text"`
	} `json:"product"`
}

// GetProduct resolves a barcode to product details. A barcode unknown to the
// catalog surfaces store.ErrProductNotFound.
func (s *Service) GetProduct(ctx context.Context, barcode string) (*models.Product, error) {
	url := fmt.Sprintf("%s/api/v0/product/%s.json", s.baseUrl, barcode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to build product request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("product lookup failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			zap.L().Warn("Failed to close response body", zap.Error(err))
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", store.ErrProductNotFound, barcode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("product lookup returned status %d", resp.StatusCode)
	}

	var payload productResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("unable to decode product response: %w", err)
	}

	if payload.Status != 1 || payload.Product.ProductName == "" {
		return nil, fmt.Errorf("%w: %s", store.ErrProductNotFound, barcode)
	}

	categories := make([]string, 0, len(payload.Product.CategoriesTags))
	for _, tag := range payload.Product.CategoriesTags {
		categories = append(categories, strings.TrimPrefix(tag, "en:"))
	}

	brand := payload.Product.Brands
	if brand == "" {
		brand = "Unknown"
	}

	return &models.Product{
		Barcode:     barcode,
		Name:        payload.Product.ProductName,
		Brand:       brand,
		Categories:  categories,
		Ingredients: payload.Product.IngredientsText,
	}, nil
}
