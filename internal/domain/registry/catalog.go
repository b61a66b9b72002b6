package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/GriffinCanCode/SuperKit/internal/domain/app"
	"github.com/GriffinCanCode/SuperKit/internal/shared/errdefs"
	"github.com/GriffinCanCode/SuperKit/internal/shared/paths"
)

// Loader resolves app descriptors by name.
type Loader interface {
	// EnsureSearchRoot makes apps under root resolvable. Idempotent.
	EnsureSearchRoot(root string)
	// Load returns the registered factory of the named app.
	Load(name string) (app.Factory, error)
	// Probe reports whether the named app has a resolvable descriptor. It
	// never calls the factory; factories run only when an app is mounted.
	Probe(name string) error
}

// Catalog is the compiled-in set of app factories. App packages register
// themselves from init().
type Catalog struct {
	mu        sync.RWMutex
	factories map[string]app.Factory
	search    *SearchPath
}

// Default is the catalog app packages register into.
var Default = NewCatalog()

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		factories: make(map[string]app.Factory),
		search:    &SearchPath{},
	}
}

// Register adds f to Default and panics on a nil or duplicate registration.
func Register(name string, f app.Factory) {
	if err := Default.Register(name, f); err != nil {
		panic(err)
	}
}

// Register adds the factory of the named app.
func (c *Catalog) Register(name string, f app.Factory) error {
	if name == "" {
		return fmt.Errorf("app name cannot be empty")
	}
	if f == nil {
		return fmt.Errorf("app %q: nil factory", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.factories[name]; dup {
		return fmt.Errorf("app %q registered twice", name)
	}
	c.factories[name] = f
	return nil
}

// Names returns the registered app names in ascending order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.factories))
	for n := range c.factories {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// SearchPath returns the catalog's search path.
func (c *Catalog) SearchPath() *SearchPath {
	return c.search
}

// EnsureSearchRoot implements Loader.
func (c *Catalog) EnsureSearchRoot(root string) {
	c.search.Ensure(root)
}

// Load implements Loader. When the search path is non-empty the app must also
// have a descriptor file under one of its roots.
func (c *Catalog) Load(name string) (app.Factory, error) {
	c.mu.RLock()
	f, ok := c.factories[name]
	c.mu.RUnlock()

	if !ok {
		return nil, &errdefs.LoadError{Unit: name, Err: errors.New("no descriptor registered")}
	}
	if c.search.Len() > 0 {
		if _, found := c.search.Locate(name); !found {
			return nil, &errdefs.LoadError{Unit: name, Err: fmt.Errorf("%s not found on search path %v",
				filepath.Join(paths.AppsDir, name, paths.DescriptorFile), c.search.Roots())}
		}
	}
	return f, nil
}

// Probe implements Loader. Register rejects nil factories, so a successful
// Load is enough.
func (c *Catalog) Probe(name string) error {
	_, err := c.Load(name)
	return err
}

// SearchPath is an ordered list of directories app packages are resolved
// against. Newly ensured roots take precedence.
type SearchPath struct {
	mu    sync.Mutex
	roots []string
}

// Ensure prepends root unless already present and reports whether it was added.
func (s *SearchPath) Ensure(root string) bool {
	root = filepath.Clean(root)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.roots {
		if r == root {
			return false
		}
	}
	s.roots = append([]string{root}, s.roots...)
	return true
}

// Roots returns a copy of the roots in lookup order.
func (s *SearchPath) Roots() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.roots...)
}

// Len returns the number of roots.
func (s *SearchPath) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.roots)
}

// Locate returns the directory of the named app in the first root that holds
// its descriptor file.
func (s *SearchPath) Locate(name string) (string, bool) {
	for _, root := range s.Roots() {
		dir := filepath.Join(root, paths.AppsDir, name)
		if fileExists(filepath.Join(dir, paths.DescriptorFile)) {
			return dir, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
