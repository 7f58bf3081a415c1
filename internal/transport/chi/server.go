// Package chi exposes the routing engine over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/zenese/flightgate/internal/config"
	"github.com/zenese/flightgate/internal/domain"
	"github.com/zenese/flightgate/internal/domain/criteria"
	"github.com/zenese/flightgate/internal/domain/usage"
	healthuc "github.com/zenese/flightgate/internal/usecase/health"
	routeruc "github.com/zenese/flightgate/internal/usecase/router"
)

// Error codes returned in JSON error bodies.
const (
	codeBadRequest            = "bad_request"
	codeInvalidRequest        = "invalid_request"
	codeAllProvidersExhausted = "all_providers_exhausted"
	codeInternalError         = "internal_error"
)

// SearchService runs a provider-routed flight search.
type SearchService interface {
	Search(ctx context.Context, c criteria.Criteria) (routeruc.Result, error)
}

// UsageReader reads the current per-provider usage snapshot.
type UsageReader interface {
	Snapshot(ctx context.Context) (usage.Record, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server handles the gateway HTTP API.
type Server struct {
	search        SearchService
	health        *healthuc.Service
	usageReader   UsageReader
	providers     []config.Provider
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. providers must be in routing
// order (config.OrderedProviders).
func NewServer(
	search SearchService,
	health *healthuc.Service,
	usageReader UsageReader,
	providers []config.Provider,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:      search,
		health:      health,
		usageReader: usageReader,
		providers:   providers,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidCriteria, http.StatusBadRequest, codeInvalidRequest),
		sentinelHandler(domain.ErrAllProvidersExhausted, http.StatusServiceUnavailable, codeAllProvidersExhausted),
	}
	return s
}

// Routes mounts all endpoints on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search-flights", s.SearchFlights)
		r.Get("/providers", s.ListProviders)
	})
	r.Get("/health", s.GetHealth)
	r.Handle("/metrics", promhttp.Handler())
}

type searchFlightsRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type flightResponse struct {
	Price         float64 `json:"price"`
	Airline       string  `json:"airline"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
}

type searchFlightsResponse struct {
	Provider string           `json:"provider"`
	Flights  []flightResponse `json:"flights"`
}

// SearchFlights handles POST /api/v1/search-flights.
func (s *Server) SearchFlights(w http.ResponseWriter, r *http.Request) {
	var req searchFlightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	c, err := criteria.Parse(req.Origin, req.Destination, req.StartDate, req.EndDate)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	res, err := s.search.Search(r.Context(), c)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	flights := make([]flightResponse, len(res.Offers))
	for i, o := range res.Offers {
		flights[i] = flightResponse{
			Price:         o.Price(),
			Airline:       o.Airline(),
			DepartureTime: o.DepartureTime(),
			ArrivalTime:   o.ArrivalTime(),
		}
	}

	writeJSON(w, http.StatusOK, searchFlightsResponse{
		Provider: res.Provider,
		Flights:  flights,
	})
}

type providerStatus struct {
	Name         string `json:"name"`
	Priority     int    `json:"priority"`
	MonthlyQuota int64  `json:"monthly_quota"`
	Used         int64  `json:"used"`
	Remaining    int64  `json:"remaining"`
}

type providersResponse struct {
	Period    string           `json:"period"`
	Providers []providerStatus `json:"providers"`
}

// ListProviders handles GET /api/v1/providers. Credentials are never
// serialized.
func (s *Server) ListProviders(w http.ResponseWriter, r *http.Request) {
	rec, err := s.usageReader.Snapshot(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]providerStatus, len(s.providers))
	for i, p := range s.providers {
		used := rec.Count(p.Name)
		remaining := p.MonthlyQuota - used
		if remaining < 0 {
			remaining = 0
		}
		items[i] = providerStatus{
			Name:         p.Name,
			Priority:     p.Priority,
			MonthlyQuota: p.MonthlyQuota,
			Used:         used,
			Remaining:    remaining,
		}
	}

	writeJSON(w, http.StatusOK, providersResponse{
		Period:    string(rec.Period()),
		Providers: items,
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	writeJSON(w, status, map[string]any{
		"status": string(report.Status),
		"checks": checks,
	})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidCriteria,
		domain.ErrAllProvidersExhausted,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
