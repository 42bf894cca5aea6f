package calchub

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Server is the calchub HTTP server: evaluation and render API, history,
// suite runs, GraphQL and the WebSocket calculator session.
type Server struct {
	addr     string
	mux      *http.ServeMux
	logger   zerolog.Logger
	store    *Store
	metrics  *Metrics
	schema   graphql.Schema
	upgrader websocket.Upgrader
	cfg      Config
}

// NewServer creates a calchub server with all routes registered.
func NewServer(cfg Config, logger zerolog.Logger) *Server {
	s := &Server{
		addr:    cfg.Addr,
		mux:     http.NewServeMux(),
		logger:  logger,
		store:   NewStore(cfg.HistoryLimit),
		metrics: NewMetrics(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		cfg: cfg,
	}
	s.initSchema()
	s.registerRoutes()
	return s
}

// Store returns the server's history store (for tests).
func (s *Server) Store() *Store { return s.store }

func (s *Server) registerRoutes() {
	// Health check
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Evaluation API
	s.mux.HandleFunc("POST /api/v1/evaluate", s.handleEvaluate)
	s.mux.HandleFunc("POST /api/v1/render", s.handleRender)
	s.mux.HandleFunc("GET /api/v1/expressions", s.handleListExpressions)
	s.mux.HandleFunc("GET /api/v1/expressions/{id}", s.handleGetExpression)

	// Suite runs (suite.go)
	s.mux.HandleFunc("POST /api/v1/suites/run", s.handleRunSuite)

	// GraphQL (graphql.go)
	s.mux.HandleFunc("POST /api/graphql", s.handleGraphQL)

	// Interactive session (ws.go)
	s.mux.HandleFunc("GET /repl", s.handleSession)

	// Management: metrics + status
	s.mux.HandleFunc("GET /internal/metrics", s.handleInternalMetrics)
	s.mux.HandleFunc("GET /internal/status", s.handleInternalStatus)
}

// evaluate runs one expression through the pipeline and records the
// outcome in the history and metrics. Every surface that evaluates on
// behalf of a client goes through here.
func (s *Server) evaluate(ctx context.Context, expression, source string) *Evaluation {
	_, span := otel.Tracer("calchub").Start(ctx, "evaluate",
		trace.WithAttributes(
			attribute.String("expression", expression),
			attribute.String("source", source)))
	defer span.End()

	ev := &Evaluation{Expression: expression, Source: source}
	value, err := runPipeline(expression)
	if err != nil {
		ev.Error = err.Error()
	} else {
		ev.Result = formatNumber(value)
		ev.Value = &value
	}

	s.metrics.RecordEvaluation(source, errorKind(err))
	s.store.Add(ev)

	s.logger.Debug().
		Str("source", source).
		Str("expression", expression).
		Str("result", ev.Result).
		Str("error", ev.Error).
		Msg("evaluated")
	return ev
}

// errorKind maps a pipeline error to its metrics label.
func errorKind(err error) string {
	if err == nil {
		return ""
	}
	var unexpected *UnexpectedTokenError
	if errors.As(err, &unexpected) {
		return errKindLex
	}
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return errKindSyntax
	}
	var evalErr *EvaluatorError
	if errors.As(err, &evalErr) {
		return errKindMath
	}
	return ""
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "calchub"})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Expression == "" {
		http.Error(w, "expression is required", http.StatusBadRequest)
		return
	}

	ev := s.evaluate(r.Context(), req.Expression, "http")
	if ev.Error != "" {
		writeJSON(w, http.StatusUnprocessableEntity, ev)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// handleRender parses without evaluating, so malformed and well-formed
// expressions can be told apart and trees normalized to their printed
// form. Render calls are not recorded in the history.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Expression == "" {
		http.Error(w, "expression is required", http.StatusBadRequest)
		return
	}

	resp := RenderResponse{Expression: req.Expression}
	parser, err := NewParser(req.Expression)
	if err == nil {
		var ast Expression
		if ast, err = parser.Parse(); err == nil {
			resp.Rendered = Render(ast)
		}
	}
	if err != nil {
		resp.Error = err.Error()
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListExpressions(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	writeJSON(w, http.StatusOK, ExpressionList{
		Expressions: s.store.Recent(limit),
		Total:       s.store.Len(),
	})
}

func (s *Server) handleGetExpression(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ev, ok := s.store.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"message": fmt.Sprintf("No such evaluation: %s", id),
		})
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleRunSuite(w http.ResponseWriter, r *http.Request) {
	var req SuiteRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Suite == "" {
		http.Error(w, "suite YAML is required", http.StatusBadRequest)
		return
	}

	suite, err := ParseSuite([]byte(req.Suite))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	report := suite.Run(func(expression string) string {
		ev := s.evaluate(r.Context(), expression, "suite")
		if ev.Error != "" {
			return ev.Error
		}
		return ev.Result
	})
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleInternalMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

func (s *Server) handleInternalStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"history_size":   s.store.Len(),
		"by_source":      s.store.CountBySource(),
		"uptime_seconds": int(time.Since(s.metrics.StartedAt).Seconds()),
	})
}

// ListenAndServe starts the HTTP server (crash-only, no graceful shutdown).
func (s *Server) ListenAndServe() error {
	handler := otelhttp.NewHandler(s.loggingMiddleware(s.mux), "calchub")

	srv := &http.Server{
		Addr:         s.addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeout) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	host, port, _ := net.SplitHostPort(s.addr)
	if host == "" {
		host = "localhost"
	}

	certFile := os.Getenv("CALCHUB_TLS_CERT")
	keyFile := os.Getenv("CALCHUB_TLS_KEY")
	if certFile != "" && keyFile != "" {
		s.logger.Info().Msgf("calchub listening on https://%s:%s", host, port)
		return srv.ListenAndServeTLS(certFile, keyFile)
	}

	s.logger.Info().Msgf("calchub listening on http://%s:%s", host, port)
	return srv.ListenAndServe()
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(rw, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.status).
			Dur("dur", time.Since(start)).
			Msg("request")
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack exposes the underlying connection so WebSocket upgrades work
// behind the logging middleware.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return hj.Hijack()
}

// writeJSON marshals v as JSON and writes it to w.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
