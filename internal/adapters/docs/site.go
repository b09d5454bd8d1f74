package docs

import (
	"sort"
	"sync"
	"time"
)

// Page is one built route.
type Page struct {
	Source
	Title string
	Body  string // HTML fragment; empty when Err is set
	Err   error
}

// Site is the current set of built pages. A rebuild swaps the whole set at
// once so readers never see a half-built site.
type Site struct {
	mu      sync.RWMutex
	pages   map[string]Page
	buildID string
	builtAt time.Time
}

// NewSite creates an empty Site.
func NewSite() *Site {
	return &Site{pages: make(map[string]Page)}
}

// Replace installs a freshly built page set.
func (s *Site) Replace(buildID string, pages []Page) {
	m := make(map[string]Page, len(pages))
	for _, p := range pages {
		m[p.Route] = p
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = m
	s.buildID = buildID
	s.builtAt = time.Now()
}

// Get returns the page for route.
func (s *Site) Get(route string) (Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pages[route]
	return p, ok
}

// Pages returns every page sorted by route.
func (s *Site) Pages() []Page {
	s.mu.RLock()
	out := make([]Page, 0, len(s.pages))
	for _, p := range s.pages {
		out = append(out, p)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Route < out[j].Route })
	return out
}

// Build reports the current build id and when it was installed.
func (s *Site) Build() (string, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buildID, s.builtAt
}
