package routing

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// Route is a single method+path registration.
type Route struct {
	Method   string
	Path     string
	Tags     []string
	Handlers []gin.HandlerFunc
}

// Key identifies a route for collision checks.
func (r Route) Key() string {
	return r.Method + " " + r.Path
}

// Table is an ordered collection of routes sharing an optional prefix and tag
// list. Tables are merged with Include and finally replayed onto a gin engine
// by the server.
type Table struct {
	prefix string
	tags   []string
	origin string

	mu     sync.RWMutex
	routes []Route
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithPrefix sets the path prefix prepended to every route.
func WithPrefix(prefix string) TableOption {
	return func(t *Table) { t.prefix = normalizePrefix(prefix) }
}

// WithTags sets the tags attached to every route.
func WithTags(tags ...string) TableOption {
	return func(t *Table) { t.tags = append([]string(nil), tags...) }
}

// WithTableOrigin records the unit that declares the table's routes.
func WithTableOrigin(unit string) TableOption {
	return func(t *Table) { t.origin = cleanUnit(unit) }
}

// NewTable creates an empty table.
func NewTable(opts ...TableOption) *Table {
	t := &Table{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Prefix returns the normalized prefix ("" or "/a/b").
func (t *Table) Prefix() string { return t.prefix }

// Tags returns the table tags.
func (t *Table) Tags() []string { return append([]string(nil), t.tags...) }

// Origin returns the declaring unit, or "".
func (t *Table) Origin() string { return t.origin }

// Handle registers handlers for method and path.
func (t *Table) Handle(method, path string, handlers ...gin.HandlerFunc) {
	r := Route{
		Method:   strings.ToUpper(method),
		Path:     joinRoute(t.prefix, path),
		Tags:     t.Tags(),
		Handlers: handlers,
	}

	t.mu.Lock()
	t.routes = append(t.routes, r)
	t.mu.Unlock()
}

func (t *Table) GET(path string, handlers ...gin.HandlerFunc) {
	t.Handle(http.MethodGet, path, handlers...)
}

func (t *Table) POST(path string, handlers ...gin.HandlerFunc) {
	t.Handle(http.MethodPost, path, handlers...)
}

func (t *Table) PUT(path string, handlers ...gin.HandlerFunc) {
	t.Handle(http.MethodPut, path, handlers...)
}

func (t *Table) PATCH(path string, handlers ...gin.HandlerFunc) {
	t.Handle(http.MethodPatch, path, handlers...)
}

func (t *Table) DELETE(path string, handlers ...gin.HandlerFunc) {
	t.Handle(http.MethodDelete, path, handlers...)
}

// Include copies every route of other into t, applying t's prefix and tags.
// Routes keep their declaration order.
func (t *Table) Include(other *Table) {
	src := other.Routes()

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range src {
		t.routes = append(t.routes, Route{
			Method:   r.Method,
			Path:     joinRoute(t.prefix, r.Path),
			Tags:     mergeTags(t.tags, r.Tags),
			Handlers: r.Handlers,
		})
	}
}

// Routes returns a snapshot of the registered routes.
func (t *Table) Routes() []Route {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Route(nil), t.routes...)
}

// Len returns the number of routes.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.routes)
}

// normalizePrefix returns "" or a path with a leading and no trailing slash.
func normalizePrefix(prefix string) string {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}

func joinRoute(prefix, path string) string {
	if path == "" || path == "/" {
		if prefix == "" {
			return "/"
		}
		return prefix
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return prefix + path
}

func mergeTags(outer, inner []string) []string {
	if len(outer) == 0 && len(inner) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(outer)+len(inner))
	out := make([]string, 0, len(outer)+len(inner))
	for _, tag := range append(append([]string(nil), outer...), inner...) {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
