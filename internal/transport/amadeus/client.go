// Package amadeus integrates the Amadeus flight-offers API as a
// routable provider.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/zenese/flightgate/internal/domain/criteria"
)

// Name is the provider name adapters register under.
const Name = "amadeus"

const defaultTimeout = 15 * time.Second

// Config holds the Amadeus API settings.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client calls the Amadeus flight-offers endpoint.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewClient creates an Amadeus API client with a bounded per-call timeout.
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

// SearchOffers runs a flight-offers search for the given criteria.
func (c *Client) SearchOffers(ctx context.Context, cr criteria.Criteria) (*SearchResponse, error) {
	q := url.Values{}
	q.Set("originLocationCode", cr.Origin())
	q.Set("destinationLocationCode", cr.Destination())
	q.Set("departureDate", cr.StartDate().Format(criteria.DateFormat))
	q.Set("returnDate", cr.EndDate().Format(criteria.DateFormat))
	q.Set("adults", "1")

	endpoint := c.baseURL + "/v2/shopping/flight-offers?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flight-offers request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("flight-offers status %d: %s", resp.StatusCode, body)
	}

	var out SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode flight-offers response: %w", err)
	}
	return &out, nil
}
