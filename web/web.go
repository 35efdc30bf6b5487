// Package web provides the JSON validation API: documents are validated
// against registered schemas and the accumulated diagnostics returned to the
// caller. Stateless design - every request carries its own document.
package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/artpar/attrgate/adapters/logdiag"
	"github.com/artpar/attrgate/adapters/metrics"
	"github.com/artpar/attrgate/adapters/yamlattr"
	"github.com/artpar/attrgate/core/attr"
	"github.com/artpar/attrgate/core/diag"
	"github.com/artpar/attrgate/registry"
)

// Handler provides the validation API endpoints.
type Handler struct {
	registry  *registry.Registry
	logger    zerolog.Logger
	metrics   *metrics.Collector // nil when metrics are disabled
	startTime time.Time
}

// Deps contains dependencies for the web handler.
type Deps struct {
	Registry *registry.Registry
	Logger   zerolog.Logger
	Metrics  *metrics.Collector
}

// NewHandler creates a new validation API handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		registry:  deps.Registry,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
		startTime: time.Now(),
	}
}

// NewRouter builds the service router. Engine panics (caller-contract
// violations) surface as 500s through the recoverer; they indicate a bug,
// not a bad document.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/schemas", h.handleSchemas)
		r.Post("/validate", h.handleValidate)
		r.Post("/merge", h.handleMerge)
	})
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	return r
}

// requestLogger logs one event per request with zerolog.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

// HealthResponse is the health check response body.
type HealthResponse struct {
	Status  string `json:"status"`
	Schemas int    `json:"schemas"`
	Uptime  string `json:"uptime"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Schemas: h.registry.Len(),
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// SchemaSummary describes one registered schema.
type SchemaSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Attributes  []string `json:"attributes"`
}

func (h *Handler) handleSchemas(w http.ResponseWriter, r *http.Request) {
	names := h.registry.Names()
	out := make([]SchemaSummary, 0, len(names))
	for _, name := range names {
		decl, ok := h.registry.Get(name)
		if !ok {
			continue // reload raced the listing
		}
		attrs := make([]string, len(decl.Schema))
		for i, node := range decl.Schema {
			attrs[i] = node.Name
		}
		out = append(out, SchemaSummary{
			Name:        decl.Name,
			Description: decl.Description,
			Attributes:  attrs,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// ValidateRequest asks for one document to be validated against a schema.
type ValidateRequest struct {
	Schema   string `json:"schema"`
	Document string `json:"document"`
	Filename string `json:"filename,omitempty"`
}

// ValidateResponse reports the outcome of a validation pass.
type ValidateResponse struct {
	PassID      string            `json:"pass_id"`
	Schema      string            `json:"schema"`
	OK          bool              `json:"ok"`
	Errors      int               `json:"errors"`
	Warnings    int               `json:"warnings"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON")
		return
	}

	decl, ok := h.registry.Get(req.Schema)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_schema", "no schema named "+req.Schema)
		return
	}

	nodes, err := yamlattr.ParseDoc(filenameOr(req.Filename), []byte(req.Document))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_document", err.Error())
		return
	}

	var c diag.Collector
	sink := h.diagSink(&c, req.Schema)
	start := time.Now()
	attr.MatchAll(sink, decl.Schema, nodes)
	h.recordPass(req.Schema, &c, time.Since(start))

	writeJSON(w, http.StatusOK, h.passResponse(req.Schema, &c))
}

// MergeRequest asks for two documents to be validated against one schema and
// merged into a single effective configuration.
type MergeRequest struct {
	Schema    string   `json:"schema"`
	Documents []string `json:"documents"`
}

func (h *Handler) handleMerge(w http.ResponseWriter, r *http.Request) {
	var req MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON")
		return
	}
	if len(req.Documents) != 2 {
		writeError(w, http.StatusBadRequest, "invalid_request", "merge requires exactly two documents")
		return
	}

	decl, ok := h.registry.Get(req.Schema)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_schema", "no schema named "+req.Schema)
		return
	}

	var c diag.Collector
	sink := h.diagSink(&c, req.Schema)
	start := time.Now()
	populated := make([]attr.Schema, len(req.Documents))
	for i, doc := range req.Documents {
		nodes, err := yamlattr.ParseDoc(filenameOr(""), []byte(doc))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_document", err.Error())
			return
		}
		populated[i] = attr.MatchAll(sink, decl.Schema, nodes)
	}
	merger := attr.NewMerger(sink, diag.WarnOnDuplicate())
	merger.MergeSchema(populated[0], populated[1])
	h.recordPass(req.Schema, &c, time.Since(start))

	writeJSON(w, http.StatusOK, h.passResponse(req.Schema, &c))
}

// diagSink tees diagnostics into the response collector and the service log,
// so operators can trace document problems without the response body.
func (h *Handler) diagSink(c *diag.Collector, schema string) diag.Sink {
	return logdiag.Tee{c, logdiag.New(h.logger.With().Str("schema", schema).Logger())}
}

func (h *Handler) passResponse(schema string, c *diag.Collector) ValidateResponse {
	diags := c.Diagnostics()
	if diags == nil {
		diags = []diag.Diagnostic{}
	}
	return ValidateResponse{
		PassID:      uuid.NewString(),
		Schema:      schema,
		OK:          !c.HasErrors(),
		Errors:      c.ErrorCount(),
		Warnings:    c.WarningCount(),
		Diagnostics: diags,
	}
}

func (h *Handler) recordPass(schema string, c *diag.Collector, dur time.Duration) {
	if h.metrics == nil {
		return
	}
	outcome := metrics.OutcomeOK
	if c.HasErrors() {
		outcome = metrics.OutcomeError
	}
	h.metrics.PassesTotal.WithLabelValues(schema, outcome).Inc()
	h.metrics.PassDuration.WithLabelValues(schema).Observe(dur.Seconds())
	if n := c.ErrorCount(); n > 0 {
		h.metrics.DiagnosticsTotal.WithLabelValues("error").Add(float64(n))
	}
	if n := c.WarningCount(); n > 0 {
		h.metrics.DiagnosticsTotal.WithLabelValues("warn").Add(float64(n))
	}
}

func filenameOr(name string) string {
	if name == "" {
		return "document.yaml"
	}
	return name
}

// ErrorResponse is the error response body.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: msg}})
}
