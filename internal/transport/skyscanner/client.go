// Package skyscanner integrates the Skyscanner itinerary search API as
// a routable provider.
package skyscanner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zenese/flightgate/internal/domain/criteria"
)

// Name is the provider name adapters register under.
const Name = "skyscanner"

const defaultTimeout = 15 * time.Second

// Config holds the Skyscanner API settings.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client calls the Skyscanner search endpoint.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewClient creates a Skyscanner API client with a bounded per-call timeout.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
	}
}

type searchRequest struct {
	Query searchQuery `json:"query"`
}

type searchQuery struct {
	Origin      string `json:"originPlaceId"`
	Destination string `json:"destinationPlaceId"`
	OutboundOn  string `json:"outboundDate"`
	InboundOn   string `json:"inboundDate"`
	Adults      int    `json:"adults"`
}

// Search runs an itinerary search for the given criteria.
func (c *Client) Search(ctx context.Context, cr criteria.Criteria) (*SearchResponse, error) {
	payload := searchRequest{
		Query: searchQuery{
			Origin:      cr.Origin(),
			Destination: cr.Destination(),
			OutboundOn:  cr.StartDate().Format(criteria.DateFormat),
			InboundOn:   cr.EndDate().Format(criteria.DateFormat),
			Adults:      1,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	endpoint := c.baseURL + "/apiservices/v3/flights/live/search/create"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search status %d: %s", resp.StatusCode, msg)
	}

	var out SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &out, nil
}
