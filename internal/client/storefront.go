package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"teakwood/storefront/internal/config"
	"teakwood/storefront/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// StorefrontClient reads the catalog from the REST API.
type StorefrontClient interface {
	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetBanners(ctx context.Context) ([]domain.Banner, error)
	GetProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	SubmitReview(ctx context.Context, productID string, review domain.ReviewSubmission) error
}

type storefrontClient struct {
	rl         ratelimit.Limiter
	baseURL    string
	httpClient *resty.Client
}

func NewStorefrontClient(cfg config.APIConfig) StorefrontClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "teakwood-storefront/1.0")

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &storefrontClient{
		rl:         rl,
		baseURL:    cfg.BaseURL,
		httpClient: client,
	}
}

type categoryEnvelope struct {
	Category []domain.Category `json:"category"`
}

type bannerEnvelope struct {
	Banner []domain.Banner `json:"banner"`
}

type productsEnvelope struct {
	Products []domain.Product `json:"products"`
}

type productEnvelope struct {
	Product *domain.Product `json:"product"`
}

func (c *storefrontClient) GetCategories(ctx context.Context) ([]domain.Category, error) {
	var envelope categoryEnvelope
	if err := c.fetchJSON(ctx, c.baseURL+"/api/category/", &envelope); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	categories := make([]domain.Category, 0, len(envelope.Category))
	for i, category := range envelope.Category {
		if err := category.Validate(); err != nil {
			log.Warnf("Skipping category %d: %v", i, err)
			continue
		}
		categories = append(categories, category)
	}

	log.Debugf("Fetched %d categories", len(categories))
	return categories, nil
}

func (c *storefrontClient) GetBanners(ctx context.Context) ([]domain.Banner, error) {
	var envelope bannerEnvelope
	if err := c.fetchJSON(ctx, c.baseURL+"/api/banner/", &envelope); err != nil {
		return nil, fmt.Errorf("failed to fetch banners: %w", err)
	}

	if envelope.Banner == nil {
		return []domain.Banner{}, nil
	}

	log.Debugf("Fetched %d banners", len(envelope.Banner))
	return envelope.Banner, nil
}

func (c *storefrontClient) GetProducts(ctx context.Context) ([]domain.Product, error) {
	var envelope productsEnvelope
	if err := c.fetchJSON(ctx, c.baseURL+"/api/product/", &envelope); err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	products := make([]domain.Product, 0, len(envelope.Products))
	for i, product := range envelope.Products {
		if err := product.Validate(); err != nil {
			log.Warnf("Skipping product %d: %v", i, err)
			continue
		}
		products = append(products, product)
	}

	log.Debugf("Fetched %d products", len(products))
	return products, nil
}

func (c *storefrontClient) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var envelope productEnvelope
	if err := c.fetchJSON(ctx, c.productURL(id), &envelope); err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", id, err)
	}

	if envelope.Product == nil {
		return nil, fmt.Errorf("product %s: %w: missing product field", id, domain.ErrMalformedResponse)
	}
	if err := envelope.Product.Validate(); err != nil {
		return nil, fmt.Errorf("product %s: %w: %v", id, domain.ErrMalformedResponse, err)
	}

	return envelope.Product, nil
}

func (c *storefrontClient) SubmitReview(ctx context.Context, productID string, review domain.ReviewSubmission) error {
	c.rl.Take()

	endpoint := c.productURL(productID) + "reviews/"
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(review).
		Post(endpoint)
	if err != nil {
		return fmt.Errorf("failed to submit review for %s: %w: %w", productID, domain.ErrTransport, err)
	}

	if resp.IsError() {
		return fmt.Errorf("failed to submit review for %s: %w", productID,
			&domain.StatusError{Code: resp.StatusCode(), Status: resp.Status()})
	}

	log.Infof("Review submitted for product %s", productID)
	return nil
}

func (c *storefrontClient) productURL(id string) string {
	return fmt.Sprintf("%s/api/product/%s/", c.baseURL, url.PathEscape(id))
}

func (c *storefrontClient) fetchJSON(ctx context.Context, endpoint string, out any) error {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	if resp.IsError() {
		return &domain.StatusError{Code: resp.StatusCode(), Status: resp.Status()}
	}

	if err := json.Unmarshal([]byte(resp.String()), out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	return nil
}
