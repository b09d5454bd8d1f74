// Package config defines service configuration and how it is loaded.
//
// Conventions:
//   - New builds a Config holding every default.
//   - Load layers defaults, an optional YAML file and PANELKIT_* env vars.
//   - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"runtime"

	"github.com/okian/panelkit/internal/domain/buildcfg"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// PagesDir is the root scanned for document pages.
	PagesDir string `koanf:"pages_dir"`

	// WatchDirs are extra directories (shared data, components) whose
	// changes trigger a rebuild alongside PagesDir.
	WatchDirs []string `koanf:"watch_dirs"`

	// Watch enables rebuild-on-change.
	Watch bool `koanf:"watch"`

	// OutDir is where static builds are written.
	OutDir string `koanf:"out_dir"`

	// BuildConcurrency bounds concurrent page renders.
	BuildConcurrency int `koanf:"build_concurrency"`

	// PageExtensions lists the extensions routed as pages, in priority order.
	PageExtensions []string `koanf:"page_extensions"`

	// ExternalDir permits page imports from outside PagesDir. On by default;
	// PANELKIT_EXTERNAL_DIR=false confines imports to the pages root.
	ExternalDir bool `koanf:"external_dir"`

	// TermWidth is the gauge bar width for terminal output.
	TermWidth int `koanf:"term_width"`
}

// New creates a Config holding defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		PagesDir:         "pages",
		Watch:            true,
		OutDir:           "out",
		BuildConcurrency: runtime.NumCPU(),
		PageExtensions:   append([]string(nil), buildcfg.DefaultPageExtensions...),
		ExternalDir:      true,
		TermWidth:        40,
	}
}

// Build returns the document build options.
func (c *Config) Build() buildcfg.Config {
	return buildcfg.Config{PageExtensions: c.PageExtensions, ExternalDir: c.ExternalDir}.Normalize()
}
