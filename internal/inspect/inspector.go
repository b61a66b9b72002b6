package inspect

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"

	"github.com/GriffinCanCode/SuperKit/internal/domain/app"
	"github.com/GriffinCanCode/SuperKit/internal/domain/registry"
	"github.com/GriffinCanCode/SuperKit/internal/infrastructure/logging"
	"github.com/GriffinCanCode/SuperKit/internal/routing"
	"github.com/GriffinCanCode/SuperKit/internal/shared/errdefs"
	"github.com/GriffinCanCode/SuperKit/internal/shared/paths"
)

// Inspector reports on the apps of a project.
type Inspector struct {
	loader     registry.Loader
	units      *routing.Units
	discoverer *registry.Discoverer
}

// New creates an inspector. Nil units means routing.DefaultUnits.
func New(loader registry.Loader, units *routing.Units, logger *logging.Logger) *Inspector {
	if units == nil {
		units = routing.DefaultUnits
	}
	return &Inspector{
		loader:     loader,
		units:      units,
		discoverer: registry.NewDiscoverer(loader, logger),
	}
}

// List returns the discovered apps of project in ascending order.
func (i *Inspector) List(ctx context.Context, project paths.Project) ([]string, []registry.Diagnostic) {
	names, diags := i.discoverer.DiscoverProject(ctx, project)
	return names.Sorted(), diags
}

// Route is one route of an app.
type Route struct {
	Method string
	Path   string
}

// AppInfo summarises one app.
type AppInfo struct {
	Name string
	// Path is the app directory relative to the project root.
	Path      string
	URLPrefix string
	Tags      []string
	Routes    []Route
	// Controllers lists the Go sources under controllers/, relative to it.
	Controllers []string
}

// Info loads the named app and builds its router.
func (i *Inspector) Info(ctx context.Context, project paths.Project, name string) (*AppInfo, error) {
	dir := project.AppDir(name)
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return nil, errdefs.NotFound("app %q not found", name)
	}

	i.loader.EnsureSearchRoot(project.SearchRoot)
	cfg, err := i.load(name)
	if err != nil {
		return nil, err
	}

	table, err := cfg.BuildRouter(i.units)
	if err != nil {
		return nil, fmt.Errorf("failed to build router: %w", err)
	}

	rel, err := filepath.Rel(project.Root, dir)
	if err != nil {
		rel = dir
	}

	controllers, err := ListControllers(ctx, filepath.Join(dir, paths.ControllersDir))
	if err != nil {
		return nil, err
	}

	info := &AppInfo{
		Name:        cfg.Name,
		Path:        filepath.ToSlash(rel),
		URLPrefix:   cfg.URLPrefix,
		Tags:        cfg.Tags,
		Controllers: controllers,
	}
	for _, r := range table.Routes() {
		info.Routes = append(info.Routes, Route{Method: r.Method, Path: r.Path})
	}
	return info, nil
}

func (i *Inspector) load(name string) (*app.Config, error) {
	factory, err := i.loader.Load(name)
	if err != nil {
		return nil, err
	}
	return app.Instantiate(name, factory)
}

// ListControllers returns the slash separated paths of the non-test Go
// sources under dir, sorted. A missing dir yields nil.
func ListControllers(ctx context.Context, dir string) ([]string, error) {
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return nil, nil
	}

	var (
		mu    sync.Mutex
		found []string
	)
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, dir, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(p, ".go") || strings.HasSuffix(p, "_test.go") {
			return nil
		}

		rel, relErr := filepath.Rel(dir, p)
		if relErr != nil {
			return nil
		}
		mu.Lock()
		found = append(found, filepath.ToSlash(rel))
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list controllers: %w", err)
	}

	sort.Strings(found)
	return found, nil
}

// Node is a directory tree entry.
type Node struct {
	Name     string
	Children []*Node
}

// BuildTree arranges slash separated paths into a tree with sorted children.
func BuildTree(files []string) []*Node {
	root := &Node{}
	for _, f := range files {
		current := root
		for _, part := range strings.Split(f, "/") {
			var next *Node
			for _, c := range current.Children {
				if c.Name == part {
					next = c
					break
				}
			}
			if next == nil {
				next = &Node{Name: part}
				current.Children = append(current.Children, next)
			}
			current = next
		}
	}
	sortTree(root)
	return root.Children
}

func sortTree(n *Node) {
	sort.Slice(n.Children, func(a, b int) bool { return n.Children[a].Name < n.Children[b].Name })
	for _, c := range n.Children {
		sortTree(c)
	}
}
