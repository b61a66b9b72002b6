package routing

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// Group is a routing namespace. A root group owns a Table; every descendant
// registers into that same Table with its joined prefix.
type Group struct {
	parent     *Group
	prefix     string
	fullPrefix string
	table      *Table
	units      *Units

	mu      sync.Mutex
	origin  string
	mounted bool
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithOrigin records the unit that declares the group's routes.
func WithOrigin(unit string) GroupOption {
	return func(g *Group) { g.origin = cleanUnit(unit) }
}

// WithUnits sets the unit cache used by MountControllers. Only honoured on
// root groups; children always use their root's cache.
func WithUnits(u *Units) GroupOption {
	return func(g *Group) {
		if g.parent == nil {
			g.units = u
		}
	}
}

// NewGroup creates a group under parent, or a root group when parent is nil.
func NewGroup(parent *Group, prefix string, opts ...GroupOption) *Group {
	g := &Group{
		parent: parent,
		prefix: strings.Trim(prefix, "/"),
	}

	if parent == nil {
		g.table = NewTable()
		g.units = DefaultUnits
	} else {
		g.table = parent.table
		g.units = parent.units
		g.fullPrefix = Join(parent.fullPrefix, g.prefix)
	}

	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Join joins two slash-free prefixes.
func Join(parent, child string) string {
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "/" + child
}

// Parent returns the parent group, or nil for a root.
func (g *Group) Parent() *Group { return g.parent }

// LocalPrefix returns the group's own prefix without slashes.
func (g *Group) LocalPrefix() string { return g.prefix }

// FullPrefix returns the joined prefix of the group and all its ancestors.
func (g *Group) FullPrefix() string { return g.fullPrefix }

// Path resolves p against the group's full prefix.
func (g *Group) Path(p string) string {
	p = strings.Trim(p, "/")
	if g.fullPrefix == "" {
		if p == "" {
			return "/"
		}
		return "/" + p
	}
	if p == "" {
		return "/" + g.fullPrefix
	}
	return "/" + g.fullPrefix + "/" + p
}

// Table exposes the shared table of the group tree.
func (g *Group) Table() *Table { return g.table }

// Origin returns the unit recorded for the group, or "".
func (g *Group) Origin() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.origin
}

// Mounted reports whether MountControllers has run.
func (g *Group) Mounted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mounted
}

// Handle registers handlers for method at the resolved path.
func (g *Group) Handle(method, path string, handlers ...gin.HandlerFunc) {
	g.table.Handle(method, g.Path(path), handlers...)
}

func (g *Group) GET(path string, handlers ...gin.HandlerFunc) {
	g.Handle(http.MethodGet, path, handlers...)
}

func (g *Group) POST(path string, handlers ...gin.HandlerFunc) {
	g.Handle(http.MethodPost, path, handlers...)
}

func (g *Group) PUT(path string, handlers ...gin.HandlerFunc) {
	g.Handle(http.MethodPut, path, handlers...)
}

func (g *Group) PATCH(path string, handlers ...gin.HandlerFunc) {
	g.Handle(http.MethodPatch, path, handlers...)
}

func (g *Group) DELETE(path string, handlers ...gin.HandlerFunc) {
	g.Handle(http.MethodDelete, path, handlers...)
}

func (g *Group) HEAD(path string, handlers ...gin.HandlerFunc) {
	g.Handle(http.MethodHead, path, handlers...)
}

func (g *Group) OPTIONS(path string, handlers ...gin.HandlerFunc) {
	g.Handle(http.MethodOptions, path, handlers...)
}

// anyMethods mirrors the methods gin registers for RouterGroup.Any.
var anyMethods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
	http.MethodHead, http.MethodOptions, http.MethodDelete, http.MethodConnect,
	http.MethodTrace,
}

// Any registers handlers for every method gin's Any covers.
func (g *Group) Any(path string, handlers ...gin.HandlerFunc) {
	for _, method := range anyMethods {
		g.Handle(method, path, handlers...)
	}
}

// MountControllers imports the controller units under pkg once per group.
// Units whose name starts with "_" are skipped. With recursive set, child
// packages are imported as well.
func (g *Group) MountControllers(pkg string, recursive bool) error {
	g.mu.Lock()
	if g.mounted {
		g.mu.Unlock()
		return nil
	}
	g.mounted = true
	if g.origin == "" {
		g.origin = cleanUnit(pkg)
	}
	g.mu.Unlock()

	return g.units.ImportTree(pkg, recursive)
}
