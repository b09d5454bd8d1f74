package docs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/okian/panelkit/internal/adapters/render/htmlout"
	"github.com/okian/panelkit/internal/domain/buildcfg"
	"github.com/okian/panelkit/internal/domain/model"
	"github.com/okian/panelkit/internal/domain/view"
	"github.com/okian/panelkit/internal/domain/widget"
	"github.com/okian/panelkit/pkg/metrics"
	"github.com/spf13/cast"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Component names understood by the pipeline.
const (
	ComponentGauge    = "ValueGauge"
	ComponentSummary  = "ProgressSummary"
	ComponentTable    = "TabularView"
	widgetClassPrefix = "panel-"
)

// Renderer turns page sources into HTML body fragments.
type Renderer struct {
	root   string
	cfg    buildcfg.Config
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer creates a Renderer for pages under root.
func NewRenderer(root string, cfg buildcfg.Config) *Renderer {
	return &Renderer{
		root: root,
		cfg:  cfg.Normalize(),
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			// Raw HTML is passed through and then sanitized below.
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render produces the HTML body for src.
func (r *Renderer) Render(ctx context.Context, src Source) (string, error) {
	start := time.Now()
	body, err := r.render(ctx, src)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordPageRender(src.Kind.String(), status)
	metrics.ObservePageRenderDuration(float64(time.Since(start).Microseconds()) / 1000)
	return body, err
}

func (r *Renderer) render(ctx context.Context, src Source) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	raw, err := os.ReadFile(src.Path)
	if err != nil {
		return "", fmt.Errorf("read page %s: %w", src.Route, err)
	}
	if src.Kind.Executable() {
		return r.renderListing(src, raw)
	}
	return r.renderDocument(src, raw)
}

// renderListing shows script pages as escaped source. They are routable
// but never executed.
func (r *Renderer) renderListing(src Source, raw []byte) (string, error) {
	lang := strings.TrimPrefix(filepath.Ext(src.Path), ".")
	pre := view.El("pre", nil,
		view.El("code", nil, view.Text(string(raw))).WithAttr("class", "language-"+lang),
	).WithAttr("data-kind", src.Kind.String())
	return htmlout.String(pre)
}

func (r *Renderer) renderDocument(src Source, raw []byte) (string, error) {
	doc, err := Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", src.Route, err)
	}
	sc, al, err := r.loadImports(src, doc.Imports)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	for _, b := range doc.Blocks {
		if b.Component == nil {
			var prose bytes.Buffer
			if err := r.md.Convert([]byte(b.Prose), &prose); err != nil {
				return "", fmt.Errorf("markdown %s: %w", src.Route, err)
			}
			out.Write(r.policy.SanitizeBytes(prose.Bytes()))
			continue
		}
		n, err := r.component(sc, al, *b.Component)
		if err != nil {
			return "", fmt.Errorf("%s line %d: %w", src.Route, b.Component.Line, err)
		}
		if err := htmlout.Render(&out, n); err != nil {
			return "", err
		}
		out.WriteByte('\n')
	}
	return out.String(), nil
}

// aliases maps a name imported as a component to the widget it renders.
type aliases map[string]string

// canonical returns the widget name a tag refers to.
func (a aliases) canonical(tag string) string {
	if name, ok := a[tag]; ok {
		return name
	}
	return tag
}

// componentExts are import targets treated as component modules.
var componentExts = map[string]bool{"": true, ".tsx": true, ".ts": true, ".jsx": true, ".js": true, ".mdx": true}

func isWidget(name string) bool {
	switch name {
	case ComponentGauge, ComponentSummary, ComponentTable:
		return true
	}
	return false
}

// componentImport reports whether imp brings in a component rather than
// data, and which widget it names. A known widget name wins; otherwise the
// module's file name (or its directory for index files) is used.
func componentImport(imp Import) (string, bool) {
	if isWidget(imp.Name) {
		return imp.Name, true
	}
	ext := strings.ToLower(path.Ext(imp.Path))
	if !componentExts[ext] {
		return "", false
	}
	base := strings.TrimSuffix(path.Base(imp.Path), path.Ext(imp.Path))
	if base == indexName {
		base = path.Base(path.Dir(imp.Path))
	}
	return base, true
}

// loadImports checks every import against the build config. Data files
// are decoded into the scope; component modules are only bound as aliases
// since widgets are built in.
func (r *Renderer) loadImports(src Source, imports []Import) (scope, aliases, error) {
	sc := make(scope, len(imports))
	al := make(aliases)
	for _, imp := range imports {
		target, err := r.cfg.Resolve(r.root, src.Path, imp.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: %w", src.Route, imp.Line, err)
		}
		if name, ok := componentImport(imp); ok {
			al[imp.Name] = name
			continue
		}
		v, err := LoadData(target)
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: %w", src.Route, imp.Line, err)
		}
		sc[imp.Name] = v
	}
	return sc, al, nil
}

// component evaluates props against sc and builds the widget tree.
func (r *Renderer) component(sc scope, al aliases, c Component) (view.Node, error) {
	v, err := resolve(sc, al, c)
	if err != nil {
		return view.Node{}, err
	}
	metrics.RecordWidgetRender(widgetName(v), "page")
	return v.Node().WithAttr("class", widgetClassPrefix+strings.ToLower(al.canonical(c.Name))), nil
}

// resolve evaluates c's props and returns the widget view it names, either
// directly or through an imported alias.
func resolve(sc scope, al aliases, c Component) (WidgetView, error) {
	props := make(map[string]any, len(c.Props))
	for k, p := range c.Props {
		v, err := sc.eval(p)
		if err != nil {
			return nil, fmt.Errorf("<%s %s>: %w", c.Name, k, err)
		}
		props[k] = v
	}

	switch al.canonical(c.Name) {
	case ComponentGauge:
		return widget.Gauge(props["value"], cast.ToString(props["label"])), nil
	case ComponentSummary:
		var p *model.ProgressRecord
		if m, err := cast.ToStringMapE(props["progress"]); err == nil {
			rec := model.ProgressFromMap(m)
			p = &rec
		}
		return widget.Summary(p), nil
	case ComponentTable:
		return widget.Table(cast.ToString(props["title"]), model.RecordsFromAny(props["rows"])), nil
	default:
		return nil, fmt.Errorf("<%s>: %w", c.Name, ErrUnknownComponent)
	}
}

func widgetName(v WidgetView) string {
	switch v.(type) {
	case widget.GaugeView:
		return "gauge"
	case widget.SummaryView:
		return "summary"
	case widget.TableView:
		return "table"
	default:
		return "unknown"
	}
}
