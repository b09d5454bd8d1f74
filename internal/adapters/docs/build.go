package docs

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/panelkit/internal/domain/buildcfg"
	"github.com/okian/panelkit/pkg/logger"
	"github.com/okian/panelkit/pkg/metrics"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// Result summarizes one build.
type Result struct {
	ID       string
	Pages    []Page
	Failed   int
	Duration time.Duration
}

// Builder discovers and renders every page under a root.
type Builder struct {
	root        string
	cfg         buildcfg.Config
	renderer    *Renderer
	concurrency int
	logger      logger.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithConcurrency bounds how many pages render at once.
func WithConcurrency(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithLogger sets the builder's logger.
func WithLogger(l logger.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder creates a Builder. The build config is validated up front.
func NewBuilder(root string, cfg buildcfg.Config, opts ...BuilderOption) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new builder: %w", err)
	}
	b := &Builder{
		root:        root,
		cfg:         cfg.Normalize(),
		concurrency: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = logger.Get().Named("docs")
	}
	b.renderer = NewRenderer(root, b.cfg)
	return b, nil
}

// Build renders all pages. A page that fails is kept with its error so the
// rest of the site still ships; only discovery failures and cancellation
// fail the build.
func (b *Builder) Build(ctx context.Context) (Result, error) {
	start := time.Now()
	id := uuid.NewString()

	sources, err := Discover(b.root, b.cfg)
	if err != nil {
		metrics.RecordBuild("error")
		return Result{}, err
	}

	pages := make([]Page, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, src := range sources {
		g.Go(func() error {
			body, err := b.renderer.Render(gctx, src)
			if cerr := gctx.Err(); cerr != nil {
				return cerr
			}
			pages[i] = Page{Source: src, Title: pageTitle(src.Route, body), Body: body, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.RecordBuild("canceled")
		return Result{}, fmt.Errorf("build %s: %w", id, err)
	}

	res := Result{ID: id, Pages: pages, Duration: time.Since(start)}
	for _, p := range pages {
		if p.Err != nil {
			res.Failed++
			b.logger.Warn(ctx, "page failed to render", logger.String("route", p.Route), logger.Error(p.Err))
		}
	}

	metrics.RecordBuild("ok")
	metrics.ObserveBuildDuration(float64(res.Duration.Microseconds()) / 1000)
	metrics.UpdatePagesTotal(len(pages))
	metrics.UpdatePagesFailed(res.Failed)
	b.logger.Info(ctx, "site built",
		logger.String("build_id", id),
		logger.Int("pages", len(pages)),
		logger.Int("failed", res.Failed),
		logger.Any("duration", res.Duration),
	)
	return res, nil
}

var headingRe = regexp.MustCompile(`(?s)<h1[^>]*>(.*?)</h1>`)

// pageTitle uses the first h1 text, falling back to the route.
func pageTitle(route, body string) string {
	if m := headingRe.FindStringSubmatch(body); m != nil {
		if t := strings.TrimSpace(html.UnescapeString(stripTags(m[1]))); t != "" {
			return t
		}
	}
	if route == "/" {
		return "Home"
	}
	return path.Base(route)
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

func stripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}
