// Package server exposes the exporter over HTTP.
//
// Routes:
//
//	GET  /healthz          build info
//	POST /export           blueprint spec in, export document out
//	POST /tags             blueprint spec in, semantic summary out
//	GET  /catalog          node catalog of the server registry
//	POST /validate         check a blueprint or catalog document
//	GET  /schema/{kind}    bundled JSON schema
//
// /export accepts the query parameters tags, metadata, pretty, graph and
// kind (repeatable globs) and format (json, dot or svg). Export and catalog
// responses are cached by content hash.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bpjson/pkg/cache"
	"github.com/matzehuels/bpjson/pkg/httputil"
	"github.com/matzehuels/bpjson/pkg/registry"
)

// Options configures a Server.
type Options struct {
	// Registry resolves node references; nil means the built-in registry.
	Registry *registry.Registry
	// Cache stores rendered responses; nil disables caching.
	Cache    cache.Cache
	CacheTTL time.Duration
	// CacheBackend names the cache in health responses.
	CacheBackend string
	Logger       *log.Logger
	// Tags and Metadata are the defaults for requests that do not set
	// the corresponding query parameter.
	Tags     bool
	Metadata bool
}

// Server handles API requests. It is safe for concurrent use.
type Server struct {
	reg     *registry.Registry
	regHash string
	cache   cache.Cache
	backend string
	keyer   cache.Keyer
	ttl     time.Duration
	logger  *log.Logger
	tags    bool
	meta    bool
	router  chi.Router
}

// New builds a server and its routes.
func New(opts Options) (*Server, error) {
	s := &Server{
		reg:     opts.Registry,
		cache:   opts.Cache,
		backend: opts.CacheBackend,
		keyer:   cache.NewScopedKeyer(nil, "server:"),
		ttl:     opts.CacheTTL,
		logger:  opts.Logger,
		tags:    opts.Tags,
		meta:    opts.Metadata,
	}
	if s.reg == nil {
		s.reg = registry.Default()
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
		s.backend = "none"
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	regYAML, err := yaml.Marshal(s.reg)
	if err != nil {
		return nil, err
	}
	s.regHash = cache.Hash(regYAML)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(httputil.Instrument)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/export", s.handleExport)
	r.Post("/tags", s.handleTags)
	r.Get("/catalog", s.handleCatalog)
	r.Post("/validate", s.handleValidate)
	r.Get("/schema/{kind}", s.handleSchema)
	s.router = r
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}
