package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kinview/kinview/pkg/buildinfo"
	"github.com/kinview/kinview/pkg/errors"
	"github.com/kinview/kinview/pkg/graph"
	"github.com/kinview/kinview/pkg/kinship"
	"github.com/kinview/kinview/pkg/layout"
	"github.com/kinview/kinview/pkg/pipeline"
	"github.com/kinview/kinview/pkg/relate"
)

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
}

// =============================================================================
// Health and People
// =============================================================================

type healthResponse struct {
	Status  string `json:"status"`
	People  int    `json:"people"`
	Dataset string `json:"dataset"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		People:  s.graph.Len(),
		Dataset: s.hash[:12],
		Version: buildinfo.Get().Version,
	})
}

type personResponse struct {
	*kinship.Person
	DisplayName string `json:"display_name"`
	Lifespan    string `json:"lifespan,omitempty"`
	Living      bool   `json:"living"`
}

func newPersonResponse(p *kinship.Person) personResponse {
	return personResponse{Person: p, DisplayName: p.DisplayName(), Lifespan: p.Lifespan(), Living: p.Living()}
}

func (s *Server) handlePerson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidatePersonID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.graph.Lookup(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPersonResponse(p))
}

type searchHit struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Lifespan string `json:"lifespan,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(q) < kinship.MinQueryLength {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput,
			"search needs at least %d characters", kinship.MinQueryLength))
		return
	}
	hits := []searchHit{}
	for _, p := range s.graph.Search(q) {
		hits = append(hits, searchHit{ID: p.ID, Name: p.DisplayName(), Lifespan: p.Lifespan()})
	}
	writeJSON(w, http.StatusOK, hits)
}

// =============================================================================
// Layout
// =============================================================================

// layoutOptions merges the query over the server defaults.
func (s *Server) layoutOptions(q url.Values) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = nil
	opts.DatasetHash = s.hash
	opts.Logger = s.logger

	opts.Focus = q.Get("focus")
	if opts.Focus == "" {
		opts.Focus = s.graph.Meta().InitialPerson
	}
	if err := errors.ValidatePersonID(opts.Focus); err != nil {
		return opts, err
	}
	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	if v := q.Get("to"); v != "" {
		if err := errors.ValidatePersonID(v); err != nil {
			return opts, err
		}
		opts.Target = v
		if q.Get("style") == "" {
			opts.Style = layout.StyleConnection.String()
		}
	}

	var err error
	if opts.Generations, err = intParam(q, "generations", opts.Generations); err != nil {
		return opts, err
	}
	if opts.Zoom, err = intParam(q, "zoom", opts.Zoom); err != nil {
		return opts, err
	}
	if opts.Compact, err = boolParam(q, "compact", opts.Compact); err != nil {
		return opts, err
	}
	if opts.Caption, err = boolParam(q, "caption", opts.Caption); err != nil {
		return opts, err
	}
	if opts.Interactive, err = boolParam(q, "interactive", opts.Interactive); err != nil {
		return opts, err
	}
	if opts.Detailed, err = boolParam(q, "detailed", opts.Detailed); err != nil {
		return opts, err
	}
	if v := q.Get("renderer"); v != "" {
		opts.Renderer = v
	}
	return opts, nil
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts, err := s.layoutOptions(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), s.graph, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheStatus := "miss"
	if result.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("X-Cache", cacheStatus)
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// =============================================================================
// Relate and Navigate
// =============================================================================

type relateResponse struct {
	From     string     `json:"from"`
	To       string     `json:"to"`
	Relation string     `json:"relation"`
	Path     graph.Path `json:"path"`
}

func (s *Server) handleRelate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	for _, id := range []string{from, to} {
		if err := errors.ValidatePersonID(id); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	path, err := s.graph.ShortestPath(from, to)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rel, err := relate.Translate(s.graph, path)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := relateResponse{From: from, To: to, Relation: rel, Path: graph.Path{IDs: path.IDs, Tags: []string{}}}
	for _, t := range path.Tags {
		resp.Path.Tags = append(resp.Path.Tags, t.String())
	}
	writeJSON(w, http.StatusOK, resp)
}

type navigateResponse struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Moved bool   `json:"moved"`
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts, err := s.layoutOptions(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	dir, err := layout.ParseDirection(q.Get("dir"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	current := q.Get("current")
	if current == "" {
		current = opts.Focus
	}
	if err := opts.ValidateForLayout(); err != nil {
		s.writeError(w, r, err)
		return
	}

	l, err := pipeline.BuildLayout(s.graph, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if l.Member(current) == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "%s is not shown in this layout", current))
		return
	}

	next, ok := layout.Navigate(l, current, dir)
	if !ok {
		next = current
	}
	writeJSON(w, http.StatusOK, navigateResponse{From: current, To: next, Moved: ok})
}

// =============================================================================
// Query Helpers
// =============================================================================

func intParam(q url.Values, name string, def int) (int, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s must be an integer, got %q", name, v)
	}
	return n, nil
}

func boolParam(q url.Values, name string, def bool) (bool, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s must be true or false, got %q", name, v)
	}
	return b, nil
}
