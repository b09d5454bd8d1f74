// Package site serves the built document pages and their stylesheet.
package site

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/panelkit/internal/adapters/docs"
	"github.com/okian/panelkit/pkg/logger"
)

// Error constants
var (
	ErrServe = errors.New("docs site serve failed")
)

// Route prefixes.
const (
	PagesPrefix  = "/pages"
	StaticPrefix = "/static"
)

// PageSource is the read side of the built site.
type PageSource interface {
	Get(route string) (docs.Page, bool)
	Pages() []docs.Page
}

// Register attaches the page and static asset routes to mux.
func Register(_ context.Context, mux *http.ServeMux, src PageSource) {
	if mux == nil {
		panic("mux is nil")
	}
	h := NewPageHandler(src)
	mux.Handle(PagesPrefix+"/", h)
	mux.Handle(StaticPrefix+"/", http.StripPrefix(StaticPrefix, http.FileServer(FS())))
}

// PageHandler renders built pages inside the site layout.
type PageHandler struct {
	src    PageSource
	layout docs.Layout
}

// NewPageHandler creates a page handler over src.
func NewPageHandler(src PageSource) *PageHandler {
	return &PageHandler{
		src:    src,
		layout: docs.Layout{BasePath: PagesPrefix, StaticPrefix: StaticPrefix},
	}
}

// ServeHTTP handles GET /pages/<route>.
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	route := routeOf(r.URL.Path)
	p, ok := h.src.Get(route)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if p.Err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
	if err := h.layout.Write(w, p, h.src.Pages()); err != nil {
		logger.Get().Error(r.Context(), "page write failed",
			logger.String("route", route),
			logger.Error(errors.Join(ErrServe, err)))
	}
}

// routeOf maps a request path to a site route: "/pages/" and "/pages" are
// "/", trailing slashes are dropped.
func routeOf(path string) string {
	route := strings.TrimPrefix(path, PagesPrefix)
	route = strings.TrimRight(route, "/")
	if route == "" {
		return "/"
	}
	return route
}
