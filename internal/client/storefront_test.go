package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"teakwood/storefront/internal/config"
	"teakwood/storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) StorefrontClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewStorefrontClient(config.APIConfig{
		BaseURL: srv.URL,
		Timeout: 5,
	})
}

func TestGetCategories(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/category/", r.URL.Path)
		_, _ = io.WriteString(w, `{"category":[
			{"id":1,"name":"Sofas","image":"/media/sofa.jpg","count":"12"},
			{"id":2,"name":""},
			{"id":"3","name":"Beds"}
		]}`)
	})

	categories, err := c.GetCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)

	assert.Equal(t, domain.Identifier("1"), categories[0].ID)
	assert.Equal(t, 12, categories[0].Count.Int())
	assert.Equal(t, "Beds", categories[1].Name)
	assert.False(t, categories[1].Count.Valid())
}

func TestListEndpointsTreatMissingFieldAsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})
	ctx := context.Background()

	categories, err := c.GetCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)

	banners, err := c.GetBanners(ctx)
	require.NoError(t, err)
	assert.NotNil(t, banners)
	assert.Empty(t, banners)

	products, err := c.GetProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestMalformedResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>gateway</html>`)
	})

	_, err := c.GetProducts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := c.GetProduct(context.Background(), "42")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStatus)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := NewStorefrontClient(config.APIConfig{BaseURL: srv.URL, Timeout: 1})
	_, err := c.GetBanners(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestGetProduct(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/product/7/", r.URL.Path)
		_, _ = io.WriteString(w, `{"product":{
			"id":7,
			"uuid":"3f1c9a52-8a43-4b9e-9a57-0d1c3e4f5a6b",
			"name":"Teak Swing",
			"price":"15999.00",
			"category":{"id":3,"name":"Outdoor"},
			"image_one":"/media/a.jpg",
			"image_three":"/media/c.jpg",
			"min_delivery_days":25,
			"max_delivery_days":"14",
			"reviews":[{"rating":"4","comment":"Solid"}]
		}}`)
	})

	product, err := c.GetProduct(context.Background(), "7")
	require.NoError(t, err)

	assert.Equal(t, "Teak Swing", product.Name)
	assert.Equal(t, "15999", product.PriceText())
	assert.Equal(t, "Outdoor", product.CategoryName())
	assert.Equal(t, []string{"/media/a.jpg", "/media/c.jpg"}, product.Images())
	assert.Equal(t, 14, product.MaxDeliveryDays.Int())
	require.Len(t, product.Reviews, 1)
	assert.Equal(t, 4, product.Reviews[0].Rating.Int())
}

func TestGetProductMissingField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"products":[]}`)
	})

	_, err := c.GetProduct(context.Background(), "1")
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestSubmitReview(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/product/7/reviews/", r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"rating": float64(4), "comment": "Great product"}, body)

		w.WriteHeader(http.StatusCreated)
	})

	err := c.SubmitReview(context.Background(), "7", domain.ReviewSubmission{Rating: 4, Comment: "Great product"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSubmitReviewRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	err := c.SubmitReview(context.Background(), "7", domain.ReviewSubmission{Rating: 4, Comment: "Great product"})
	assert.ErrorIs(t, err, domain.ErrStatus)
}
