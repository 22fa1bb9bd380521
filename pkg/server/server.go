// Package server renders the site pages and the JSON endpoints.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/elonfeng/elaulik/pkg/aggregate"
	"github.com/elonfeng/elaulik/pkg/source"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Options configures the HTTP server.
type Options struct {
	Port   int
	Logger zerolog.Logger
}

// Server serves the site.
type Server struct {
	agg   *aggregate.Aggregator
	pages map[string]*template.Template
	port  int
	log   zerolog.Logger
}

// New parses the page templates and creates a server.
func New(agg *aggregate.Aggregator, opts Options) (*Server, error) {
	if opts.Port == 0 {
		opts.Port = 5000
	}
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &Server{
		agg:   agg,
		pages: pages,
		port:  opts.Port,
		log:   opts.Logger.With().Str("component", "server").Logger(),
	}, nil
}

var pageFiles = []string{"index", "news", "events", "culture", "gallery", "info"}

func parsePages() (map[string]*template.Template, error) {
	funcs := template.FuncMap{"imageURL": imageURL}
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, name := range pageFiles {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// imageURL trusts generated data:image URIs and plain web URLs.
func imageURL(s string) template.URL {
	for _, prefix := range []string{"data:image/", "https://", "http://", "/"} {
		if strings.HasPrefix(s, prefix) {
			return template.URL(s)
		}
	}
	return "#"
}

// Handler returns the routed mux wrapped in the logging middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleStatic("index", "Avaleht"))
	mux.HandleFunc("GET /uudised", s.handleCategory(aggregate.CategoryNews, "news"))
	mux.HandleFunc("GET /syndmused", s.handleCategory(aggregate.CategoryEvents, "events"))
	mux.HandleFunc("GET /kultuur", s.handleCategory(aggregate.CategoryCulture, "culture"))
	mux.HandleFunc("GET /galerii", s.handleCategory(aggregate.CategoryGallery, "gallery"))
	mux.HandleFunc("GET /info", s.handleStatic("info", "Info"))
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/sources", s.handleSources)
	mux.HandleFunc("GET /health", handleHealth)

	static, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	h := hlog.NewHandler(s.log)(mux)
	h = hlog.MethodHandler("method")(h)
	h = hlog.URLHandler("url")(h)
	h = hlog.RemoteAddrHandler("remote_addr")(h)
	h = hlog.RequestIDHandler("req_id", "Request-Id")(h)
	h = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(h)
	return h
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type pageData struct {
	Title  string
	Items  []source.ContentItem
	Error  string
	Status string
}

func (s *Server) handleStatic(page, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, page, pageData{Title: title})
	}
}

// handleCategory always answers 200; failures show up as the page's error
// message next to whatever items could be produced.
func (s *Server) handleCategory(c aggregate.Category, page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := s.agg.Category(context.WithoutCancel(r.Context()), c)
		hlog.FromRequest(r).Debug().
			Str("category", string(c)).
			Stringer("status", res.Status).
			Int("items", len(res.Items)).
			Msg("category loaded")

		s.render(w, r, page, pageData{
			Title:  c.Label(),
			Items:  res.Items,
			Error:  res.ErrorMessage(),
			Status: res.Status.String(),
		})
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, page string, data pageData) {
	var buf bytes.Buffer
	if err := s.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("page", page).Msg("render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := aggregate.SearchAll
	if q.Has("category") {
		category = q.Get("category")
	}
	results := s.agg.Search(context.WithoutCancel(r.Context()), q.Get("q"), category)
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	type sourceInfo struct {
		Name  string `json:"name"`
		Label string `json:"label"`
		Kind  string `json:"kind"`
	}

	adapters := s.agg.Adapters()
	infos := make([]sourceInfo, 0, len(adapters))
	for _, ad := range adapters {
		infos = append(infos, sourceInfo{
			Name:  ad.Name(),
			Label: ad.Label(),
			Kind:  string(ad.Kind()),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  infos,
		"count": len(infos),
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
