package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/genogram/internal/metrics"
	"github.com/matzehuels/genogram/pkg/cache"
	"github.com/matzehuels/genogram/pkg/errors"
	"github.com/matzehuels/genogram/pkg/observability"
	"github.com/matzehuels/genogram/pkg/pipeline"
	"github.com/matzehuels/genogram/pkg/render/genogram/layout"
)

const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, icons string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve genogram rendering over HTTP",
		Long: `Serve genogram rendering over HTTP.

Endpoints:
  POST /v1/genograms   render the family JSON in the request body
  GET  /healthz        liveness probe
  GET  /metrics        Prometheus metrics

Render options are query parameters: format, style, title, focal, layout,
detailed and scale. Every response carries an X-Render-ID header; errors
are JSON objects with a machine-readable code.`,
		Example: `  genogram serve --addr :9090 --icons assets/icons
  curl -X POST --data-binary @family.json 'localhost:9090/v1/genograms?format=svg'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.Config.Server.Addr = addr
			}
			if icons != "" {
				c.Config.Render.Icons = icons
			}
			return c.runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config, $"+envAddr+" or "+defaultAddr+")")
	cmd.Flags().StringVar(&icons, "icons", "", "icon directory (default: config or $"+envIcons+")")

	return cmd
}

// runServe serves until ctx is cancelled, then shuts down gracefully.
func (c *CLI) runServe(ctx context.Context) error {
	logger := loggerFromContext(ctx)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.New(reg).Register()

	srv := &http.Server{
		Addr:              c.Config.Server.Addr,
		Handler:           newRouter(newServer(c.Config, logger, reg)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Info("listening", "addr", srv.Addr, "icons", c.Config.Render.Icons)

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeIO, err, "listen on %s", srv.Addr)
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Server
// =============================================================================

// server holds the request-independent state of the HTTP handler. Each
// render gets its own Runner and icon cache.
type server struct {
	config  Config
	logger  *log.Logger
	metrics http.Handler
}

func newServer(cfg Config, logger *log.Logger, gatherer prometheus.Gatherer) *server {
	return &server{
		config:  cfg,
		logger:  logger,
		metrics: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}
}

func newRouter(s *server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics)
	r.Post("/v1/genograms", s.handleRender)
	return r
}

// observe reports every request to the server hooks.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		observability.Server().OnRequest(r.Method, route, status, elapsed)
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status, "duration", elapsed)
	})
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

// handleRender renders the family in the request body.
func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	w.Header().Set("X-Render-ID", id)
	logger := s.logger.With("render_id", id)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.Server.MaxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(w, id, http.StatusRequestEntityTooLarge,
				errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, id, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	opts, err := s.options(r.URL.Query())
	if err != nil {
		writeError(w, id, 0, err)
		return
	}
	opts.Logger = logger

	// Rendering is deterministic: equal inputs give equal documents.
	etag := `"` + cache.Key("render", opts, cache.Hash(body)) + `"`
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	runner := pipeline.NewRunner(cache.NewIconsDir(s.config.Render.Icons), logger)
	fam, err := runner.Parse(r.Context(), body)
	if err != nil {
		writeError(w, id, 0, err)
		return
	}
	res, err := runner.Execute(r.Context(), fam, opts)
	if err != nil {
		logger.Warn("render failed", "err", err)
		writeError(w, id, 0, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", pipeline.ContentType(res.Format))
	h.Set("ETag", etag)
	h.Set("X-Genogram-Hash", res.Hash)
	h.Set("X-Genogram-Layout", string(res.Layout.Strategy))
	h.Set("X-Genogram-Generations", strconv.Itoa(res.Stats.Generations))
	if len(res.Missing) > 0 {
		h.Set("X-Genogram-Missing-Icons", strings.Join(res.Missing, ","))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res.Document)
}

// options builds pipeline options from the configured render defaults and
// the query parameters.
func (s *server) options(q url.Values) (pipeline.Options, error) {
	m := s.config.Layout
	opts := pipeline.Options{
		Metrics: &m,
		Format:  s.config.Render.Format,
		Style:   s.config.Render.Style,
		Title:   s.config.Render.Title,
		Scale:   s.config.Render.Scale,
		Focal:   q.Get("focal"),
	}
	if v := q.Get("format"); v != "" {
		opts.Format = v
	}
	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}
	if v := q.Get("layout"); v != "" && v != "auto" {
		opts.Layout = layout.Strategy(v)
	}
	if v := q.Get("detailed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "detailed must be a boolean")
		}
		opts.Detailed = b
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "scale must be a number")
		}
		opts.Scale = f
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

type errorResponse struct {
	Error    errors.Code `json:"error"`
	Message  string      `json:"message"`
	RenderID string      `json:"render_id"`
}

// writeError writes err as JSON. A zero status is derived from the error
// code.
func writeError(w http.ResponseWriter, id string, status int, err error) {
	if status == 0 {
		status = errors.HTTPStatus(err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: code, Message: errors.UserMessage(err), RenderID: id})
}
