// Package duffel integrates the Duffel offers API as a routable
// provider.
package duffel

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
const Name = "duffel"

const defaultTimeout = 15 * time.Second

// Config holds the Duffel API settings.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client calls the Duffel offer-requests endpoint.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewClient creates a Duffel API client with a bounded per-call timeout.
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

type offerRequest struct {
	Data offerRequestData `json:"data"`
}

type offerRequestData struct {
	Slices     []requestSlice     `json:"slices"`
	Passengers []requestPassenger `json:"passengers"`
	CabinClass string             `json:"cabin_class"`
}

type requestSlice struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
}

type requestPassenger struct {
	Type string `json:"type"`
}

// CreateOfferRequest submits a round-trip offer request and returns
// the resulting offers.
func (c *Client) CreateOfferRequest(ctx context.Context, cr criteria.Criteria) (*OfferResponse, error) {
	payload := offerRequest{
		Data: offerRequestData{
			Slices: []requestSlice{
				{
					Origin:        cr.Origin(),
					Destination:   cr.Destination(),
					DepartureDate: cr.StartDate().Format(criteria.DateFormat),
				},
				{
					Origin:        cr.Destination(),
					Destination:   cr.Origin(),
					DepartureDate: cr.EndDate().Format(criteria.DateFormat),
				},
			},
			Passengers: []requestPassenger{{Type: "adult"}},
			CabinClass: "economy",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode offer request: %w", err)
	}

	endpoint := c.baseURL + "/air/offer_requests?return_offers=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Duffel-Version", "v2")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("offer request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("offer request status %d: %s", resp.StatusCode, msg)
	}

	var out OfferResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode offer response: %w", err)
	}
	return &out, nil
}
