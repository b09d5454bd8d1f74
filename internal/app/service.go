// Package service owns the document site: it builds pages, keeps the
// current build in memory and rebuilds when watched files change.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/panelkit/internal/adapters/docs"
	"github.com/okian/panelkit/internal/domain/buildcfg"
	"github.com/okian/panelkit/pkg/logger"
)

// Service builds and serves the document site.
type Service struct {
	mu sync.Mutex

	// Configuration
	pagesDir    string
	watchDirs   []string
	build       buildcfg.Config
	concurrency int
	watch       bool
	debounce    time.Duration

	// Components
	site    *docs.Site
	builder *docs.Builder

	// State
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
	last    docs.Result

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithPagesDir sets the pages root.
func WithPagesDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.pagesDir = dir
		}
	}
}

// WithWatchDirs adds directories whose changes trigger a rebuild.
func WithWatchDirs(dirs []string) Option {
	return func(s *Service) {
		s.watchDirs = append(s.watchDirs, dirs...)
	}
}

// WithBuildConfig sets the page extensions and import policy.
func WithBuildConfig(cfg buildcfg.Config) Option {
	return func(s *Service) {
		s.build = cfg
	}
}

// WithConcurrency bounds concurrent page renders.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithWatch enables rebuild-on-change.
func WithWatch(enabled bool) Option {
	return func(s *Service) {
		s.watch = enabled
	}
}

// WithDebounce sets the watcher's quiet window.
func WithDebounce(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		pagesDir:    "pages",
		build:       buildcfg.Default(),
		concurrency: runtime.NumCPU(),
		debounce:    300 * time.Millisecond,
		site:        docs.NewSite(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start performs the first build and, when enabled, starts the watcher.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	b, err := docs.NewBuilder(s.pagesDir, s.build,
		docs.WithConcurrency(s.concurrency),
		docs.WithLogger(s.logger),
	)
	if err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	s.builder = b

	if err := s.rebuildLocked(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}

	if s.watch {
		dirs := append([]string{s.pagesDir}, s.watchDirs...)
		runCtx, cancel := context.WithCancel(context.Background())
		w, err := docs.NewWatcher(dirs, s.onChange,
			docs.WithDebounce(s.debounce),
			docs.WithWatcherLogger(s.logger),
		)
		if err != nil {
			cancel()
			return fmt.Errorf("start watcher: %w", err)
		}
		s.cancel = cancel
		s.done = make(chan struct{})
		go func() {
			defer close(s.done)
			w.Run(runCtx)
		}()
	}

	s.started = true
	s.logger.Info(ctx, "document service started",
		logger.String("pages_dir", s.pagesDir),
		logger.Any("page_extensions", s.build.PageExtensions),
		logger.Bool("external_dir", s.build.ExternalDir),
		logger.Bool("watch", s.watch),
	)
	return nil
}

// Stop halts the watcher. The last build stays available.
func (s *Service) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.started = false
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Rebuild rebuilds the site now.
func (s *Service) Rebuild(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.builder == nil {
		return ErrNotStarted
	}
	return s.rebuildLocked(ctx)
}

func (s *Service) rebuildLocked(ctx context.Context) error {
	res, err := s.builder.Build(ctx)
	if err != nil {
		return err
	}
	s.site.Replace(res.ID, res.Pages)
	s.last = res
	return nil
}

func (s *Service) onChange(ctx context.Context) {
	s.logger.Debug(ctx, "change detected; rebuilding")
	if err := s.Rebuild(ctx); err != nil {
		s.logger.Error(ctx, "rebuild failed", logger.Error(err))
	}
}

// Site returns the live page set.
func (s *Service) Site() *docs.Site {
	return s.site
}

// GetStats reports the last build.
func (s *Service) GetStats() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]any{
		"buildId":     s.last.ID,
		"pages":       len(s.last.Pages),
		"failed":      s.last.Failed,
		"durationMs":  s.last.Duration.Milliseconds(),
		"watching":    s.cancel != nil,
		"externalDir": s.build.ExternalDir,
	}
}
