package docs

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/panelkit/internal/domain/buildcfg"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// NavLink is one entry of the page navigation.
type NavLink struct {
	Href    string
	Title   string
	Current bool
}

type pageData struct {
	Route        string
	Title        string
	Body         template.HTML
	Err          string
	Nav          []NavLink
	StaticPrefix string
}

// Layout wraps built pages in the site chrome.
type Layout struct {
	// BasePath prefixes every page link, e.g. "/pages".
	BasePath string
	// StaticPrefix is where panelkit.css is served from.
	StaticPrefix string
}

// Href returns the link for route under the layout's base path.
func (l Layout) Href(route string) string {
	if route == "/" {
		return l.BasePath + "/"
	}
	return l.BasePath + route
}

// Write renders p with navigation built from all.
func (l Layout) Write(w io.Writer, p Page, all []Page) error {
	data := pageData{
		Route:        p.Route,
		Title:        p.Title,
		Body:         template.HTML(p.Body), //nolint:gosec // sanitized by the renderer
		StaticPrefix: l.StaticPrefix,
	}
	if p.Err != nil {
		data.Err = ErrorKind(p.Err)
	}
	for _, o := range all {
		data.Nav = append(data.Nav, NavLink{Href: l.Href(o.Route), Title: o.Title, Current: o.Route == p.Route})
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("layout %s: %w", p.Route, err)
	}
	return nil
}

// publicKinds are the failure kinds shown to readers. Anything else is
// reported generically; the full error stays in the build log.
var publicKinds = []error{
	ErrUnknownComponent,
	ErrUndefinedReference,
	ErrUnsupportedData,
	ErrDuplicateImport,
	ErrMalformedComponent,
	buildcfg.ErrExternalImport,
	buildcfg.ErrEmptyImport,
}

// ErrorKind names the sentinel behind a page failure without exposing
// paths or wrapped details.
func ErrorKind(err error) string {
	for _, k := range publicKinds {
		if errors.Is(err, k) {
			return k.Error()
		}
	}
	return "page failed to render"
}

// WriteStatic writes every page to outDir/<route>/index.html and returns
// the number of files written.
func (l Layout) WriteStatic(outDir string, pages []Page) (int, error) {
	written := 0
	for _, p := range pages {
		dir := filepath.Join(outDir, filepath.FromSlash(strings.TrimPrefix(p.Route, "/")))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return written, fmt.Errorf("mkdir %s: %w", dir, err)
		}
		f, err := os.Create(filepath.Join(dir, "index.html"))
		if err != nil {
			return written, fmt.Errorf("create page %s: %w", p.Route, err)
		}
		werr := l.Write(f, p, pages)
		cerr := f.Close()
		if werr != nil {
			return written, werr
		}
		if cerr != nil {
			return written, fmt.Errorf("close page %s: %w", p.Route, cerr)
		}
		written++
	}
	return written, nil
}
