// Package plot serves the chart viewport over HTTP. The browser forwards
// surface events to /gesture and redraws from the returned viewport.
package plot

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/raykavin/backview/pkg/core"
	"github.com/raykavin/backview/pkg/gesture"
	"github.com/raykavin/backview/pkg/logger"
	"github.com/raykavin/backview/pkg/logger/zerolog"
	"github.com/raykavin/backview/pkg/viewport"
)

// Static assets embedded in the binary
var (
	//go:embed assets
	staticFiles embed.FS
)

// Viewport is the read side of the chart plus the operations exposed as
// endpoints
type Viewport interface {
	State() viewport.State
	Samples() []core.SamplePoint
	Visible() []core.SamplePoint
	SetActiveSeries(key string)
	Reset()
}

// Gestures receives the surface events posted by the browser
type Gestures interface {
	Dispatch(ev gesture.Event) bool
}

// Server handles the visualization of one chart surface
type Server struct {
	sync.Mutex
	port          int
	debug         bool
	viewport      Viewport
	gestures      Gestures
	series        []string
	scriptContent string
	indexHTML     *template.Template
	lastUpdate    time.Time
	mux           *http.ServeMux
	log           logger.Logger
}

// Option defines a function type for configuring a Server instance
type Option func(*Server)

// WithPort sets the HTTP server port
func WithPort(port int) Option {
	return func(s *Server) {
		s.port = port
	}
}

// WithDebug enables debug mode (disables minification)
func WithDebug() Option {
	return func(s *Server) {
		s.debug = true
	}
}

// WithSeries restricts /series to the given keys and lists them on the page
func WithSeries(keys ...string) Option {
	return func(s *Server) {
		s.series = keys
	}
}

// NewServer creates a chart server over vp, driven by gestures
func NewServer(log logger.Logger, vp Viewport, gestures Gestures, options ...Option) (*Server, error) {
	if log == nil {
		log = zerolog.Nop()
	}

	server := &Server{
		port:       8080,
		log:        log,
		viewport:   vp,
		gestures:   gestures,
		lastUpdate: time.Now(),
	}

	for _, option := range options {
		option(server)
	}

	var err error
	server.indexHTML, err = template.ParseFS(staticFiles, "assets/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart template: %w", err)
	}

	clientJS, err := staticFiles.ReadFile("assets/client.js")
	if err != nil {
		return nil, fmt.Errorf("failed to read client.js: %w", err)
	}

	transpiled := api.Transform(string(clientJS), api.TransformOptions{
		Loader:            api.LoaderJS,
		Target:            api.ES2015,
		MinifySyntax:      !server.debug,
		MinifyIdentifiers: !server.debug,
		MinifyWhitespace:  !server.debug,
	})

	if len(transpiled.Errors) > 0 {
		return nil, fmt.Errorf("chart script failed with: %v", transpiled.Errors)
	}

	server.scriptContent = string(transpiled.Code)
	server.mux = server.routes()

	return server, nil
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/assets/client.js", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		fmt.Fprint(w, s.scriptContent)
	})

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/viewport", s.handleViewport)
	mux.HandleFunc("/gesture", s.handleGesture)
	mux.HandleFunc("/series", s.handleSeries)
	mux.HandleFunc("/reset", s.handleReset)
	mux.HandleFunc("/", s.handleIndex)

	return mux
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start runs the HTTP server until it fails
func (s *Server) Start() error {
	s.log.Infof("Chart available at http://localhost:%d", s.port)
	return http.ListenAndServe(fmt.Sprintf(":%d", s.port), s.mux)
}
