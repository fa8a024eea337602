// Package server exposes the ranking engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/spigell/career-fit/internal/adjustment"
	"github.com/spigell/career-fit/internal/catalog"
	"github.com/spigell/career-fit/internal/logger"
	"github.com/spigell/career-fit/internal/profile"
	"github.com/spigell/career-fit/internal/ranking"
)

const (
	headerRequestID = "X-Request-ID"
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Config holds the listen address and the default ranking options.
type Config struct {
	Listen  string
	Options ranking.Options
}

// Server serves rank, tag, health and metrics endpoints.
type Server struct {
	cfg      Config
	engine   *ranking.Engine
	catalog  *catalog.Cache
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *Metrics
	handler  http.Handler
}

// New wires the routes. The catalog is loaded lazily through cache and
// shared read-only by all requests.
func New(cfg Config, engine *ranking.Engine, cache *catalog.Cache, log *zap.Logger) (*Server, error) {
	if engine == nil {
		return nil, errors.New("ranking engine is required")
	}
	if cache == nil {
		return nil, errors.New("catalog cache is required")
	}
	opts, err := cfg.Options.Normalize()
	if err != nil {
		return nil, fmt.Errorf("default ranking options: %w", err)
	}
	cfg.Options = opts
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	if log == nil {
		log = zap.NewNop()
	}

	registry := prometheus.NewRegistry()
	s := &Server{
		cfg:      cfg,
		engine:   engine,
		catalog:  cache,
		logger:   log,
		registry: registry,
		metrics:  NewMetrics(registry),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/rank", s.handleRank)
	mux.HandleFunc("POST /v1/tag", s.handleTag)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	s.handler = s.withRequestID(mux)
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Registry returns the Prometheus registry backing /metrics.
func (s *Server) Registry() *prometheus.Registry { return s.registry }

// Run loads the catalog, then serves until ctx is cancelled and shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	cat, err := s.catalog.Get(ctx)
	if err != nil {
		return err
	}
	s.metrics.CatalogJobs.Set(float64(cat.Len()))

	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("listen", s.cfg.Listen), zap.Int("jobs", cat.Len()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

type rankRequest struct {
	Profile         map[string]any `json:"profile"`
	EducationMode   string         `json:"education_mode"`
	StrictAlignment *bool          `json:"strict_alignment"`
}

type rankResponse struct {
	*ranking.Report
	Profile              *profile.UserProfile `json:"profile"`
	Background           *profile.Background  `json:"background"`
	TimeInvestmentMonths int                  `json:"time_investment_months"`
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := s.requestLogger(r)
	status := statusOK
	defer func() {
		s.metrics.RankRequests.WithLabelValues(status).Inc()
		s.metrics.RankDuration.Observe(time.Since(start).Seconds())
	}()

	var req rankRequest
	if err := decodeBody(w, r, &req); err != nil {
		status = statusBadRequest
		writeError(w, http.StatusBadRequest, err)
		return
	}

	opts := s.cfg.Options
	if req.EducationMode != "" {
		mode, err := adjustment.ParseMode(req.EducationMode)
		if err != nil {
			status = statusBadRequest
			writeError(w, http.StatusBadRequest, err)
			return
		}
		opts.Mode = mode
	}
	if req.StrictAlignment != nil {
		opts.StrictAlignment = *req.StrictAlignment
	}

	answers, err := profile.DecodeAnswers(req.Profile)
	if err != nil {
		status = statusBadRequest
		writeError(w, http.StatusBadRequest, err)
		return
	}
	user, bg, err := profile.Build(answers, s.engine.Tagger())
	if err != nil {
		status = statusBadRequest
		writeError(w, http.StatusBadRequest, err)
		return
	}

	cat, err := s.catalog.Get(r.Context())
	if err != nil {
		status = statusError
		log.Error("catalog is unavailable", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.metrics.CatalogJobs.Set(float64(cat.Len()))

	report, err := s.engine.Rank(r.Context(), user, cat, opts)
	if err != nil {
		status = statusError
		log.Error("ranking failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	log.Info("rank request served",
		zap.Int("jobs", len(report.Results)),
		zap.Float64("confidence", report.Confidence),
		zap.String("education_mode", string(opts.Mode)),
	)

	writeJSON(w, http.StatusOK, rankResponse{
		Report:               report,
		Profile:              user,
		Background:           bg,
		TimeInvestmentMonths: answers.TimeInvestmentMonths,
	})
}

type tagRequest struct {
	Text string `json:"text"`
	Job  bool   `json:"job"`
}

type tagResponse struct {
	Domains     []string `json:"domains"`
	Credentials []string `json:"credentials,omitempty"`
	Skills      []string `json:"skills,omitempty"`
}

func (s *Server) handleTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, tags(s.engine, req.Text, req.Job))
}

// tags runs the tagger over text. For job text only domains are reported.
func tags(engine *ranking.Engine, text string, job bool) tagResponse {
	t := engine.Tagger()
	if job {
		return tagResponse{Domains: t.JobDomains("", text)}
	}

	skills := make([]string, 0)
	for _, rule := range t.MatchSkills(t.SkillNames(), text) {
		skills = append(skills, rule.Tag)
	}
	return tagResponse{
		Domains:     t.Domains(text),
		Credentials: t.Credentials(text),
		Skills:      skills,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	cat, err := s.catalog.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.metrics.CatalogJobs.Set(float64(cat.Len()))
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "jobs": cat.Len()})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

type requestIDKey struct{}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))

		s.logger.Debug("http request",
			zap.String(logger.FieldRequestID, id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return logger.WithFields(s.logger, logger.StringFields(logger.StringField{Key: logger.FieldRequestID, Value: id})...)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
