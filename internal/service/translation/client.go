package translation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"dms/internal/domain"
	"dms/internal/domain/models/ordering"
	orderingSvc "dms/internal/domain/services/ordering"
)

const saveOperationsPath = "/api/translationapi/saveTranslationOperations"

// Client calls the Translation Service over HTTP
type Client struct {
	baseURL string
	http    *resty.Client
	logger  *slog.Logger
}

// NewClient creates a client for the service at baseURL. Every call is bounded by timeout.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http: resty.New().
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json"),
		logger: logger,
	}
}

// SaveTranslationOperations posts ops and returns the stored operations
func (c *Client) SaveTranslationOperations(ctx context.Context, ops []ordering.TranslationOperation) ([]ordering.TranslationOperation, error) {
	var result ordering.ServiceResult[[]ordering.TranslationOperation]

	started := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(ops).
		SetResult(&result).
		Post(c.baseURL + saveOperationsPath)
	if err != nil {
		return nil, c.upstream(fmt.Errorf("post operations: %w", err))
	}

	if resp.IsError() {
		return nil, c.upstream(fmt.Errorf("post operations: %s; body: %s", resp.Status(), resp.String()))
	}

	if result.ServiceResultType != ordering.ServiceResultSuccess {
		return nil, c.upstream(fmt.Errorf("service result %d: %s", result.ServiceResultType, result.Message))
	}

	c.logger.Debug("translation operations saved",
		"count", len(result.Data),
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return result.Data, nil
}

func (c *Client) upstream(err error) error {
	return &domain.UpstreamError{Service: "translation service", Cause: err}
}

var _ orderingSvc.TranslationClient = (*Client)(nil)
