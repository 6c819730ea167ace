package view

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ziadkadry99/docview/internal/markup"
	"github.com/ziadkadry99/docview/internal/toggler"
)

type session struct {
	views    map[string]*View
	lastUsed time.Time
}

// Registry hands out views per session and page. Parsed pages are cached
// and cloned for each new view. All methods are safe for concurrent use;
// the views themselves are only touched under the registry lock.
type Registry struct {
	siteDir string
	level   int

	mu       sync.Mutex
	pages    map[string]*markup.Page
	sessions map[string]*session
	now      func() time.Time
}

// NewRegistry serves pages from siteDir. level is the expansion level new
// views start at, 0 keeps the level the page was generated with.
func NewRegistry(siteDir string, level int) *Registry {
	return &Registry{
		siteDir:  siteDir,
		level:    level,
		pages:    make(map[string]*markup.Page),
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// CleanPath normalises a request path to a site-relative page path. It
// rejects anything that is not an .html page inside the site.
func CleanPath(p string) (string, error) {
	cleaned := strings.TrimPrefix(path.Clean("/"+p), "/")
	if cleaned == "" {
		cleaned = "index.html"
	}
	if !strings.HasSuffix(cleaned, ".html") {
		return "", fmt.Errorf("%s: %w", p, ErrPageNotFound)
	}
	return cleaned, nil
}

// Execute runs a command on the session's view of page.
func (r *Registry) Execute(sessionID, page string, c Command) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, err := r.view(sessionID, page)
	if err != nil {
		return Result{}, err
	}
	return v.Execute(c)
}

// Snapshot returns the session's state for page.
func (r *Registry) Snapshot(sessionID, page string) (toggler.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, err := r.view(sessionID, page)
	if err != nil {
		return toggler.Snapshot{}, err
	}
	return v.Snapshot(), nil
}

// Render writes the session's projection of page. With bodyOnly set only
// the children of <body> are written.
func (r *Registry) Render(sessionID, page string, w io.Writer, bodyOnly bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, err := r.view(sessionID, page)
	if err != nil {
		return err
	}
	if bodyOnly {
		return v.RenderBody(w)
	}
	return v.Render(w)
}

// Invalidate drops the cached parse of page and every session's view of it,
// so the next request reloads it from disk.
func (r *Registry) Invalidate(page string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.pages, page)
	for _, s := range r.sessions {
		delete(s.views, page)
	}
}

// Prune forgets sessions idle for longer than maxIdle and returns how many
// were removed.
func (r *Registry) Prune(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	removed := 0
	for id, s := range r.sessions {
		if s.lastUsed.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// view must be called with r.mu held.
func (r *Registry) view(sessionID, page string) (*View, error) {
	page, err := CleanPath(page)
	if err != nil {
		return nil, err
	}

	// Sessions are only created or touched once the page resolves.
	s, ok := r.sessions[sessionID]
	if ok {
		if v, ok := s.views[page]; ok {
			s.lastUsed = r.now()
			return v, nil
		}
	}

	parsed, err := r.load(page)
	if err != nil {
		return nil, err
	}
	if !ok {
		s = &session{views: make(map[string]*View)}
		r.sessions[sessionID] = s
	}
	s.lastUsed = r.now()
	v := New(page, parsed.Clone(), VariantFor(page), r.level)
	s.views[page] = v
	return v, nil
}

// Sessions returns how many sessions are held.
func (r *Registry) Sessions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) load(page string) (*markup.Page, error) {
	if p, ok := r.pages[page]; ok {
		return p, nil
	}
	f, err := os.Open(filepath.Join(r.siteDir, filepath.FromSlash(page)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", page, ErrPageNotFound)
		}
		return nil, fmt.Errorf("opening %s: %w", page, err)
	}
	defer f.Close()

	p, err := markup.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", page, err)
	}
	r.pages[page] = p
	return p, nil
}
