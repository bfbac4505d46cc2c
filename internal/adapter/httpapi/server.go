// Package httpapi exposes the assessment API plus health, readiness, and
// metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paradeguard/risk-engine/internal/adapter/geocode"
	"github.com/paradeguard/risk-engine/internal/assess"
	"github.com/paradeguard/risk-engine/internal/domain"
)

// AssessmentService runs one assessment query.
type AssessmentService interface {
	Assess(ctx context.Context, req assess.Request) (assess.Result, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the assessment API over HTTP.
type Server struct {
	httpServer *http.Server
	service    AssessmentService
	geocoder   domain.Geocoder
	validate   *validator.Validate
	logger     *slog.Logger
}

// assessmentQuery is the validated shape of GET /v1/assessments parameters.
// Either place or the lat/lon pair identifies the location; place wins when
// both are present.
type assessmentQuery struct {
	Place  string   `validate:"required_without=Lat"`
	Lat    *float64 `validate:"omitempty,gte=-90,lte=90"`
	Lon    *float64 `validate:"required_with=Lat,omitempty,gte=-180,lte=180"`
	Date   string   `validate:"required,datetime=2006-01-02"`
	Window string
}

// NewServer creates the HTTP server and mounts all routes. geocoder may be
// nil when geocoding is disabled; place queries then return 501.
func NewServer(addr string, service AssessmentService, geocoder domain.Geocoder, ready ReadinessChecker, logger *slog.Logger) *Server {
	s := &Server{
		service:  service,
		geocoder: geocoder,
		validate: validator.New(),
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", handleReady(ready))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Route("/v1", func(r chi.Router) {
		r.Get("/assessments", s.handleAssessment)
	})

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleAssessment(w http.ResponseWriter, r *http.Request) {
	query, err := s.parseQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err))
		return
	}

	place, status, err := s.resolvePlace(r.Context(), query)
	if err != nil {
		writeJSON(w, status, errorBody(err))
		return
	}

	date, _ := time.Parse("2006-01-02", query.Date)

	result, err := s.service.Assess(r.Context(), assess.Request{
		Place:  place,
		Date:   date,
		Window: domain.ParseDayPart(query.Window),
	})
	if err != nil {
		s.logger.Error("assessment failed", "error", err, "place", place.Query, "date", query.Date)
		writeJSON(w, http.StatusBadGateway, errorBody(errors.New("upstream forecast unavailable")))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) parseQuery(r *http.Request) (assessmentQuery, error) {
	q := r.URL.Query()
	query := assessmentQuery{
		Place:  q.Get("place"),
		Date:   q.Get("date"),
		Window: q.Get("window"),
	}

	for _, p := range []struct {
		name string
		dst  **float64
	}{{"lat", &query.Lat}, {"lon", &query.Lon}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return assessmentQuery{}, errors.New(p.name + " must be a number")
		}
		*p.dst = &v
	}

	if err := s.validate.Struct(&query); err != nil {
		return assessmentQuery{}, queryError(err)
	}
	return query, nil
}

// resolvePlace turns the query into coordinates, geocoding when only a place
// name was given.
func (s *Server) resolvePlace(ctx context.Context, query assessmentQuery) (domain.Place, int, error) {
	if query.Lat != nil && query.Lon != nil {
		return domain.Place{Query: query.Place, Lat: *query.Lat, Lon: *query.Lon}, 0, nil
	}

	if s.geocoder == nil {
		return domain.Place{}, http.StatusNotImplemented, errors.New("place lookup is not configured; pass lat and lon")
	}

	place, err := s.geocoder.Geocode(ctx, query.Place)
	if err != nil {
		if errors.Is(err, geocode.ErrNoResults) {
			return domain.Place{}, http.StatusNotFound, errors.New("location not found: " + query.Place)
		}
		s.logger.Error("geocoding failed", "error", err, "place", query.Place)
		return domain.Place{}, http.StatusBadGateway, errors.New("geocoding unavailable")
	}
	return place, 0, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// queryError flattens a validator error into a client-facing message naming
// the offending parameters.
func queryError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "Place":
			msgs = append(msgs, "either place or lat/lon is required")
		case "Lat":
			msgs = append(msgs, "lat must be between -90 and 90")
		case "Lon":
			msgs = append(msgs, "lon must be between -180 and 180 and paired with lat")
		case "Date":
			msgs = append(msgs, "date is required in YYYY-MM-DD format")
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
