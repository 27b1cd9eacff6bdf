package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/bpjson/pkg/blueprint"
	"github.com/matzehuels/bpjson/pkg/buildinfo"
	"github.com/matzehuels/bpjson/pkg/cache"
	"github.com/matzehuels/bpjson/pkg/errors"
	"github.com/matzehuels/bpjson/pkg/export"
	"github.com/matzehuels/bpjson/pkg/httputil"
	"github.com/matzehuels/bpjson/pkg/render/nodelink"
	"github.com/matzehuels/bpjson/pkg/schema"
)

var contentTypes = map[string]string{
	"json": "application/json",
	"dot":  "text/vnd.graphviz",
	"svg":  "image/svg+xml",
}

type healthResponse struct {
	OK    bool           `json:"ok"`
	Build buildinfo.Info `json:"build"`
	Cache string         `json:"cache"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, healthResponse{OK: true, Build: buildinfo.Get(), Cache: s.backend})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	body, err := httputil.ReadBody(w, r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = "json"
	}
	contentType, ok := contentTypes[format]
	if !ok {
		httputil.WriteError(w, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format))
		return
	}
	settings := export.Settings{
		Tags:         boolParam(q.Get("tags"), s.tags),
		Metadata:     boolParam(q.Get("metadata"), s.meta),
		GraphFilters: q["graph"],
		KindFilters:  q["kind"],
	}
	if boolParam(q.Get("pretty"), false) {
		settings.Indent = "  "
	}

	key := s.keyer.ExportKey(body, s.regHash, cache.ExportKeyOpts(settings)) + ":" + format
	data, err := s.cached(r, key, func() ([]byte, error) {
		bp, err := blueprint.Parse(body)
		if err != nil {
			return nil, err
		}
		switch format {
		case "dot":
			return []byte(nodelink.BlueprintDOT(bp, nodelink.Options{})), nil
		case "svg":
			return nodelink.RenderSVG(r.Context(), nodelink.BlueprintDOT(bp, nodelink.Options{}))
		}
		opts := append(settings.Options(), export.WithLogger(s.logger))
		return export.New(s.reg, opts...).Blueprint(r.Context(), bp)
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteRaw(w, contentType, data)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	body, err := httputil.ReadBody(w, r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	bp, err := blueprint.Parse(body)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	q := r.URL.Query()
	settings := export.Settings{GraphFilters: q["graph"], KindFilters: q["kind"]}
	summary, err := export.New(s.reg, settings.Options()...).Summarize(bp)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	indent := ""
	if boolParam(r.URL.Query().Get("pretty"), false) {
		indent = "  "
	}
	data, err := s.cached(r, s.keyer.CatalogKey(s.regHash, indent), func() ([]byte, error) {
		return export.New(s.reg, export.WithIndent(indent)).Catalog(s.reg)
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteRaw(w, "application/json", data)
}

type validateResponse struct {
	Valid bool        `json:"valid"`
	Kind  schema.Kind `json:"kind"`
	Error string      `json:"error,omitempty"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := httputil.ReadBody(w, r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	kind := schema.Kind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = schema.Detect(body)
	}
	err = schema.Validate(kind, body)
	switch {
	case err == nil:
		httputil.WriteJSON(w, http.StatusOK, validateResponse{Valid: true, Kind: kind})
	case errors.Is(err, errors.ErrCodeSchemaViolation):
		httputil.WriteJSON(w, http.StatusOK, validateResponse{Kind: kind, Error: errors.UserMessage(err)})
	default:
		httputil.WriteError(w, err)
	}
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	src, ok := schema.Source(schema.Kind(kind))
	if !ok {
		httputil.WriteError(w, errors.New(errors.ErrCodeNotFound, "no schema named %q", kind))
		return
	}
	httputil.WriteRaw(w, "application/schema+json", []byte(src))
}

// cached returns the entry at key, or builds, stores and returns it. Cache
// failures are logged and never fail the request.
func (s *Server) cached(r *http.Request, key string, build func() ([]byte, error)) ([]byte, error) {
	ctx := r.Context()
	data, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed", "err", err)
	}
	if hit {
		return data, nil
	}
	data, err = build()
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("cache write failed", "err", err)
	}
	return data, nil
}

func boolParam(v string, def bool) bool {
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
