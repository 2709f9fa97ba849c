package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/clefworks/scorevault/internal/adapter"
	"github.com/clefworks/scorevault/internal/config"
	"github.com/clefworks/scorevault/internal/domain"
)

type suggestRequest struct {
	References []domain.Reference `json:"references"`
}

type suggestResponse struct {
	Suggestions []domain.Suggestion `json:"suggestions"`
}

// Client talks to the recommendation API
type Client struct {
	http adapter.HTTPClient
	cfg  config.RecommenderConfig
}

// NewClient creates a recommendation API client
func NewClient(httpClient adapter.HTTPClient, cfg config.RecommenderConfig) *Client {
	return &Client{
		http: httpClient,
		cfg:  cfg,
	}
}

// Suggest asks the recommendation API for scores similar to refs. Each
// attempt runs under the configured per-attempt deadline; only timed-out
// attempts are retried, up to the configured budget.
func (c *Client) Suggest(ctx context.Context, refs []domain.Reference) ([]domain.Suggestion, error) {
	payload, err := json.Marshal(suggestRequest{References: refs})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal suggestion request: %w", err)
	}

	return RetryWithTimeout(ctx, c.cfg.MaxRetries, c.cfg.AttemptTimeout, c.cfg.RetryDelay,
		func(ctx context.Context) ([]domain.Suggestion, error) {
			body, err := c.http.Post(ctx, c.cfg.URL, "application/json", bytes.NewReader(payload))
			if err != nil {
				return nil, fmt.Errorf("failed to call recommendation API: %w", err)
			}

			var resp suggestResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				return nil, fmt.Errorf("failed to decode suggestion response: %w", err)
			}

			return resp.Suggestions, nil
		})
}
