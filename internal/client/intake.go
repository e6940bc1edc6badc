package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"teakwood/storefront/internal/config"
	"teakwood/storefront/internal/domain"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// IntakeClient forwards contact-form leads to the third-party intake.
type IntakeClient interface {
	Submit(ctx context.Context, lead domain.Lead) error
}

type intakeClient struct {
	url        string
	httpClient *resty.Client
}

func NewIntakeClient(cfg config.IntakeConfig) IntakeClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout) * time.Second).
		SetRetryCount(0)

	return &intakeClient{
		url:        cfg.URL,
		httpClient: client,
	}
}

// Submit posts the lead as multipart form data. Only a 200 counts as
// success.
func (c *intakeClient) Submit(ctx context.Context, lead domain.Lead) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetMultipartFormData(lead.Fields()).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("failed to submit lead: %w: %w", domain.ErrTransport, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("failed to submit lead: %w",
			&domain.StatusError{Code: resp.StatusCode(), Status: resp.Status()})
	}

	log.Info("📨 Lead forwarded to intake")
	return nil
}
