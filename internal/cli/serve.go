package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/radar/pkg/buildinfo"
	"github.com/matzehuels/radar/pkg/errors"
	pkgio "github.com/matzehuels/radar/pkg/io"
	"github.com/matzehuels/radar/pkg/pipeline"
	"github.com/matzehuels/radar/pkg/radar"
	"github.com/matzehuels/radar/pkg/render/sink/svg"
)

const (
	defaultAddr     = "127.0.0.1:8080"
	maxRequestBytes = 1 << 20
	shutdownTimeout = 10 * time.Second
	canvasID        = "radar"
)

type serveOpts struct {
	addr    string
	origins []string
	cache   cacheFlags
}

// serveCommand creates the serve command, which serves a chart over HTTP
// with hover tooltips computed by the chart's own controller.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr}

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a chart over HTTP with live hover tooltips",
		Long: `Serve a chart over HTTP.

The page at / shows the chart and forwards pointer events to the server,
which runs hit testing and tooltip placement and answers with the tooltip
state. PUT /api/data replaces the series.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringSliceVar(&opts.origins, "cors-origin", nil, "allowed CORS origin(s) for the API")
	addCacheFlags(cmd, &opts.cache)
	return cmd
}

func (c *CLI) runServe(ctx context.Context, path string, opts serveOpts) error {
	f, err := pkgio.ReadFile(path)
	if err != nil {
		return err
	}
	popts, err := pipeline.FromFile(f)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv, err := newChartServer(popts, runner, c.Logger)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:         opts.addr,
		Handler:      srv.router(opts.origins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	printSuccess("Serving %s", path)
	printKeyValue("URL", StyleLink.Render("http://"+opts.addr+"/"))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// chartServer owns one live chart. The chart is single-threaded, so every
// handler that touches it holds mu.
type chartServer struct {
	mu      sync.Mutex
	opts    pipeline.Options
	doc     *svg.Document
	canvas  *svg.Canvas
	tooltip *svg.Tooltip
	chart   *radar.Chart
	hash    string

	runner *pipeline.Runner
	logger *log.Logger
}

func newChartServer(opts pipeline.Options, runner *pipeline.Runner, logger *log.Logger) (*chartServer, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	hash, err := opts.ChartHash()
	if err != nil {
		return nil, err
	}

	tip := svg.NewTooltip()
	s := &chartServer{
		opts:    opts,
		doc:     svg.NewDocument(),
		canvas:  svg.New(opts.Width, opts.Height, svg.WithID(canvasID), svg.WithTooltip(tip)),
		tooltip: tip,
		hash:    hash,
		runner:  runner,
		logger:  logger,
	}
	s.doc.AddCanvas(s.canvas)
	s.doc.AddTooltip(radar.Resolve(opts.Width, opts.Height, opts.Chart).TooltipSelector, s.tooltip)

	ch, err := radar.Open(s.doc, canvasID, opts.Data, opts.Chart, radar.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	s.chart = ch
	return s, nil
}

func (s *chartServer) router(origins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Server", buildinfo.Server()))

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/chart.{format}", s.handleArtifact)

	r.Route("/api", func(r chi.Router) {
		if len(origins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: origins,
				AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
				ExposedHeaders: []string{"X-Request-ID", "X-Chart-Hash"},
				MaxAge:         300,
			}))
		}
		r.Get("/chart", s.handleChart)
		r.Post("/hover", s.handleHover)
		r.Post("/leave", s.handleLeave)
		r.Put("/data", s.handleData)
	})
	return r
}

// requestLogger logs each request at debug level.
func (s *chartServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *chartServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *chartServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	width, height, hash := s.opts.Width, s.opts.Height, s.hash
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexHTML, width, height, hash)
}

// handleArtifact serves /chart.svg, /chart.png, /chart.pdf and
// /chart.json through the render pipeline and its cache.
func (s *chartServer) handleArtifact(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	s.mu.Lock()
	opts := s.opts
	s.mu.Unlock()
	opts.Formats = []string{format}
	opts.Popups = false

	res, err := s.runner.Render(r.Context(), opts)
	if err != nil {
		writeError(w, errors.HTTPStatus(err), err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Chart-Hash", res.ChartHash)
	w.Write(res.Artifacts[format])
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// chartResponse describes the live chart.
type chartResponse struct {
	Width   float64           `json:"width"`
	Height  float64           `json:"height"`
	Points  []radar.DataPoint `json:"points"`
	Tooltip svg.TooltipState  `json:"tooltip"`
	Active  *int              `json:"active"`
	Hash    string            `json:"hash"`
}

// pointerRequest is a pointer position in canvas pixels.
type pointerRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// dataRequest replaces the series of the live chart.
type dataRequest struct {
	Labels      []string      `json:"labels"`
	Values      []float64     `json:"values"`
	Colors      *pkgio.Colors `json:"colors,omitempty"`
	TooltipData []any         `json:"tooltip_data,omitempty"`
}

func (s *chartServer) handleChart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeState(w)
}

func (s *chartServer) handleHover(w http.ResponseWriter, r *http.Request) {
	var req pointerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chart.PointerMove(req.X, req.Y)
	s.writeState(w)
}

func (s *chartServer) handleLeave(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chart.PointerLeave()
	s.writeState(w)
}

func (s *chartServer) handleData(w http.ResponseWriter, r *http.Request) {
	var req dataRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	f := pkgio.File{Data: pkgio.Data{
		Labels:      req.Labels,
		Values:      req.Values,
		Colors:      req.Colors,
		TooltipData: req.TooltipData,
	}}
	d := f.Dataset()

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.opts
	next.Data = d
	hash, err := next.ChartHash()
	if err != nil {
		writeError(w, errors.HTTPStatus(err), err)
		return
	}
	if err := s.chart.UpdateData(d); err != nil {
		writeError(w, errors.HTTPStatus(err), err)
		return
	}
	s.opts.Data = d
	s.hash = hash
	s.logger.Info("data updated", "points", d.Len(), "hash", hash)
	s.writeState(w)
}

// writeState writes the chart state, with its hash also in X-Chart-Hash so
// clients can tell when /chart.svg is stale. Callers hold mu.
func (s *chartServer) writeState(w http.ResponseWriter) {
	w.Header().Set("X-Chart-Hash", s.hash)
	writeJSON(w, http.StatusOK, s.state())
}

// state snapshots the live chart. Callers hold mu.
func (s *chartServer) state() chartResponse {
	resp := chartResponse{
		Width:   s.opts.Width,
		Height:  s.opts.Height,
		Points:  s.chart.Points(),
		Tooltip: s.tooltip.State(),
		Hash:    s.hash,
	}
	if resp.Points == nil {
		resp.Points = []radar.DataPoint{}
	}
	if i, ok := s.chart.Active(); ok {
		resp.Active = &i
	}
	return resp
}

// =============================================================================
// JSON helpers
// =============================================================================

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}

// indexHTML embeds the chart and drives the tooltip from /api/hover.
// Width, height and the chart hash are substituted with fmt. The image is
// reloaded whenever a response carries a new hash.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>radar</title>
<style>
  body { font-family: sans-serif; margin: 2rem; }
  #wrap { position: relative; display: inline-block; }
  #radar-tooltip { position: absolute; display: none; pointer-events: none;
    background: rgba(0,0,0,0.8); color: #fff; padding: 6px; border-radius: 4px;
    font-size: 12px; white-space: pre; }
</style>
</head>
<body>
<div id="wrap">
  <img id="chart" src="/chart.svg?h=%[3]s" width="%[1]g" height="%[2]g" alt="radar chart">
  <div id="radar-tooltip"></div>
</div>
<script>
(function () {
  var img = document.getElementById('chart');
  var tip = document.getElementById('radar-tooltip');
  var hash = '%[3]s';
  function apply(state) {
    if (state.hash && state.hash !== hash) {
      hash = state.hash;
      img.src = '/chart.svg?h=' + hash;
    }
    var t = state.tooltip;
    if (!t.visible) { tip.style.display = 'none'; return; }
    tip.textContent = t.content.replace(/<br\s*\/?>/gi, '\n').replace(/<[^>]*>/g, '');
    tip.style.left = t.left + 'px';
    tip.style.top = t.top + 'px';
    tip.style.display = 'block';
  }
  function post(path, body) {
    return fetch(path, { method: 'POST', headers: { 'Content-Type': 'application/json' },
      body: body ? JSON.stringify(body) : '{}' }).then(function (r) { return r.json(); });
  }
  img.addEventListener('mousemove', function (e) {
    var r = img.getBoundingClientRect();
    var x = (e.clientX - r.left) * %[1]g / r.width;
    var y = (e.clientY - r.top) * %[2]g / r.height;
    post('/api/hover', { x: x, y: y }).then(apply);
  });
  img.addEventListener('mouseleave', function () { post('/api/leave').then(apply); });
  setInterval(function () {
    fetch('/api/chart').then(function (r) { return r.json(); }).then(apply);
  }, 2000);
})();
</script>
</body>
</html>
`
