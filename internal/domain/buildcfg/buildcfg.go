// Package buildcfg describes which files the document pipeline treats as
// pages and where page imports may resolve from.
package buildcfg

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PageKind classifies a page by extension.
type PageKind int

// Page kinds.
const (
	KindUnknown PageKind = iota
	KindDocument
	KindTypedComponent
	KindTypedScript
	KindScript
)

func (k PageKind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindTypedComponent:
		return "typed-component"
	case KindTypedScript:
		return "typed-script"
	case KindScript:
		return "script"
	default:
		return "unknown"
	}
}

// Executable reports whether the kind carries code the pipeline cannot run.
func (k PageKind) Executable() bool {
	return k == KindTypedComponent || k == KindTypedScript || k == KindScript
}

var kinds = map[string]PageKind{
	"mdx": KindDocument,
	"md":  KindDocument,
	"tsx": KindTypedComponent,
	"ts":  KindTypedScript,
	"js":  KindScript,
}

// DefaultPageExtensions is the stock page set.
var DefaultPageExtensions = []string{"mdx", "tsx", "ts", "js"}

// Config holds the two build options.
type Config struct {
	// PageExtensions lists, in priority order, the extensions routed as pages.
	PageExtensions []string `koanf:"page_extensions"`

	// ExternalDir allows imports that resolve outside the pages root, e.g.
	// shared components or data in a parent directory.
	ExternalDir bool `koanf:"external_dir"`
}

// Default returns the stock configuration: every page extension, with
// imports from outside the pages root allowed.
func Default() Config {
	return Config{
		PageExtensions: append([]string(nil), DefaultPageExtensions...),
		ExternalDir:    true,
	}
}

// Normalize lowercases extensions, strips leading dots, and drops blanks
// and repeats. Order is kept.
func (c Config) Normalize() Config {
	seen := make(map[string]struct{}, len(c.PageExtensions))
	out := make([]string, 0, len(c.PageExtensions))
	for _, e := range c.PageExtensions {
		e = strings.ToLower(strings.TrimLeft(strings.TrimSpace(e), "."))
		if e == "" {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	c.PageExtensions = out
	return c
}

// Validate checks the normalized config.
func (c Config) Validate() error {
	if len(c.Normalize().PageExtensions) == 0 {
		return ErrNoPageExtensions
	}
	return nil
}

func ext(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// IsPage reports whether path has a configured page extension.
func (c Config) IsPage(path string) bool {
	e := ext(path)
	if e == "" {
		return false
	}
	for _, p := range c.PageExtensions {
		if strings.EqualFold(p, e) {
			return true
		}
	}
	return false
}

// Priority returns the index of path's extension in PageExtensions, or -1.
// When two files map to the same route the lower priority wins.
func (c Config) Priority(path string) int {
	e := ext(path)
	for i, p := range c.PageExtensions {
		if strings.EqualFold(p, e) {
			return i
		}
	}
	return -1
}

// KindOf classifies path by extension regardless of whether it is listed.
func KindOf(path string) PageKind {
	return kinds[ext(path)]
}

// Resolve turns an import written in fromFile into an absolute path. Paths
// leaving root are rejected unless ExternalDir is set.
func (c Config) Resolve(root, fromFile, importPath string) (string, error) {
	if importPath == "" {
		return "", fmt.Errorf("resolve import in %s: %w", fromFile, ErrEmptyImport)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", root, err)
	}

	var target string
	if filepath.IsAbs(importPath) {
		target = filepath.Clean(importPath)
	} else {
		base := filepath.Dir(fromFile)
		if !filepath.IsAbs(base) {
			base = filepath.Join(absRoot, base)
		}
		target = filepath.Join(base, filepath.FromSlash(importPath))
	}

	if !c.ExternalDir && !Within(absRoot, target) {
		return "", fmt.Errorf("resolve %q from %s: %w", importPath, fromFile, ErrExternalImport)
	}
	return target, nil
}

// Within reports whether target is root or below it.
func Within(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
