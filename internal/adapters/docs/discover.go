// Package docs builds the extended-markdown document site: it discovers
// pages, parses prose and component blocks, resolves data imports and
// renders everything to HTML.
package docs

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/okian/panelkit/internal/domain/buildcfg"
)

const indexName = "index"

// Source is a discovered page file.
type Source struct {
	Route string // "/", "/guide", "/guide/setup"
	Path  string // absolute file path
	Kind  buildcfg.PageKind
}

// Discover walks root and returns every page, sorted by route. When two
// files map to one route (intro.mdx and intro.js) the extension listed
// first in PageExtensions wins.
func Discover(root string, cfg buildcfg.Config) ([]Source, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("discover %s: %w", root, ErrPagesRootNotFound)
	}
	cfg = cfg.Normalize()

	byRoute := make(map[string]Source)
	walkErr := filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if p != absRoot && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || !cfg.IsPage(p) {
			return nil
		}
		rel, err := filepath.Rel(absRoot, p)
		if err != nil {
			return err
		}
		src := Source{Route: RouteFor(rel), Path: p, Kind: buildcfg.KindOf(p)}
		if prev, ok := byRoute[src.Route]; ok && cfg.Priority(prev.Path) <= cfg.Priority(p) {
			return nil
		}
		byRoute[src.Route] = src
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("discover %s: %w", root, walkErr)
	}

	out := make([]Source, 0, len(byRoute))
	for _, s := range byRoute {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Route < out[j].Route })
	return out, nil
}

// RouteFor maps a root-relative file path to its route.
func RouteFor(rel string) string {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	if rel == indexName {
		return "/"
	}
	rel = strings.TrimSuffix(rel, "/"+indexName)
	return "/" + rel
}

// SourceFor describes a single page file under root without walking.
func SourceFor(root, file string) (Source, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Source{}, fmt.Errorf("source %s: %w", file, err)
	}
	absFile, err := filepath.Abs(file)
	if err != nil {
		return Source{}, fmt.Errorf("source %s: %w", file, err)
	}
	rel, err := filepath.Rel(absRoot, absFile)
	if err != nil {
		return Source{}, fmt.Errorf("source %s: %w", file, err)
	}
	if _, err := os.Stat(absFile); err != nil {
		return Source{}, fmt.Errorf("source %s: %w", file, ErrPageNotFound)
	}
	return Source{Route: RouteFor(rel), Path: absFile, Kind: buildcfg.KindOf(absFile)}, nil
}
