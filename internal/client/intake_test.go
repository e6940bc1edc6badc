package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"teakwood/storefront/internal/config"
	"teakwood/storefront/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestIntakeSubmitSendsMultipartFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Asha", r.FormValue("name"))
		assert.Equal(t, "+91 90000 00000", r.FormValue("phone"))
		assert.Equal(t, "Need a dining set", r.FormValue("message"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewIntakeClient(config.IntakeConfig{URL: srv.URL, Timeout: 5})
	err := c.Submit(context.Background(), domain.Lead{
		Name:    "Asha",
		Phone:   "+91 90000 00000",
		Message: "Need a dining set",
	})
	assert.NoError(t, err)
}

func TestIntakeSubmitNonOKIsFailure(t *testing.T) {
	for _, status := range []int{http.StatusCreated, http.StatusBadRequest, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		c := NewIntakeClient(config.IntakeConfig{URL: srv.URL, Timeout: 5})
		err := c.Submit(context.Background(), domain.Lead{Name: "a", Phone: "b", Message: "c"})
		assert.ErrorIs(t, err, domain.ErrStatus, "status %d", status)

		srv.Close()
	}
}
