package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"

	"github.com/GriffinCanCode/SuperKit/internal/domain/app"
	"github.com/GriffinCanCode/SuperKit/internal/infrastructure/logging"
	"github.com/GriffinCanCode/SuperKit/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/SuperKit/internal/shared/paths"
)

// writeFiles creates files under root. Names ending in "/" become directories.
func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("package x\n"), 0o644))
	}
}

func fixtureProject(t *testing.T) string {
	root := t.TempDir()
	writeFiles(t, root,
		"apps/posts/doc.go",
		"apps/posts/app.go",
		"apps/users/app.go",
		"apps/drafts/doc.go",
		"apps/assets/",
		"apps/testonly/app_test.go",
		"apps/broken/app.go",
		"apps/unregistered/app.go",
		"apps/README.md",
	)
	return root
}

func fixtureCatalog(t *testing.T) *Catalog {
	c := NewCatalog()
	require.NoError(t, c.Register("posts", func() *app.Config {
		return &app.Config{Name: "posts", URLPrefix: "/posts"}
	}))
	require.NoError(t, c.Register("users", func() *app.Config {
		return &app.Config{Name: "users", URLPrefix: "/users"}
	}))
	require.NoError(t, c.Register("drafts", func() *app.Config {
		return &app.Config{Name: "drafts", URLPrefix: "/drafts"}
	}))
	require.NoError(t, c.Register("broken", func() *app.Config { panic("boom") }))
	return c
}

func TestDiscover(t *testing.T) {
	root := fixtureProject(t)
	catalog := fixtureCatalog(t)
	d := NewDiscoverer(catalog, nil)

	names, diags := d.Discover(context.Background(), filepath.Join(root, "apps", "posts"))

	assert.Equal(t, []string{"broken", "posts", "users"}, names.Sorted())
	assert.Equal(t, []string{filepath.Clean(root)}, catalog.SearchPath().Roots())

	codes := map[string]string{}
	for _, diag := range diags {
		codes[filepath.Base(diag.Path)] = diag.Code
	}
	assert.Equal(t, CodeMissingDescriptor, codes["drafts"])
	assert.Equal(t, CodeMissingInitializer, codes["assets"])
	assert.Equal(t, CodeMissingInitializer, codes["testonly"])
	assert.Equal(t, CodeLoadFailed, codes["app.go"])
	assert.Len(t, diags, 4)
}

func TestDiscoverDoesNotCallFactories(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "apps/posts/app.go")

	c := NewCatalog()
	calls := 0
	require.NoError(t, c.Register("posts", func() *app.Config {
		calls++
		return &app.Config{Name: "posts", URLPrefix: "/posts"}
	}))

	names, _ := NewDiscoverer(c, nil).Discover(context.Background(), root)
	assert.True(t, names.Has("posts"))
	assert.Zero(t, calls)
}

func TestDiscoverIsIdempotent(t *testing.T) {
	root := fixtureProject(t)
	catalog := fixtureCatalog(t)
	d := NewDiscoverer(catalog, nil)

	first, _ := d.Discover(context.Background(), root)
	second, _ := d.Discover(context.Background(), root)

	assert.Equal(t, first.Sorted(), second.Sorted())
	assert.Len(t, catalog.SearchPath().Roots(), 1)
}

func TestDiscoverSrcLayout(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "src/apps/users/app.go")

	catalog := fixtureCatalog(t)
	names, _ := NewDiscoverer(catalog, nil).Discover(context.Background(), root)

	assert.Equal(t, []string{"users"}, names.Sorted())
	assert.Equal(t, []string{filepath.Join(root, paths.SrcDir)}, catalog.SearchPath().Roots())
}

func TestDiscoverProjectUnreadableAppsDir(t *testing.T) {
	root := t.TempDir()
	project := paths.Project{
		Root:       root,
		ModuleRoot: filepath.Join(root, "apps"),
		SearchRoot: root,
	}

	names, diags := NewDiscoverer(fixtureCatalog(t), nil).DiscoverProject(context.Background(), project)

	assert.Zero(t, names.Len())
	require.Len(t, diags, 1)
	assert.Equal(t, CodeAppsDirUnreadable, diags[0].Code)
}

func TestDiscoverRecordsMetricsAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := &logging.Logger{Logger: zap.New(core)}
	metrics := monitoring.NewMetrics()

	root := fixtureProject(t)
	d := NewDiscoverer(fixtureCatalog(t), logger).WithMetrics(metrics)
	d.Discover(context.Background(), root)

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.AppsDiscovered))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.DiscoverySkipped.WithLabelValues(CodeMissingInitializer)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.DiscoverySkipped.WithLabelValues(CodeLoadFailed)))
	assert.Equal(t, 1, logs.FilterMessage("Discovered apps").Len())
}

func TestHasInitializer(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "pkg/a.go", "tests/a_test.go", "empty/", "nested/sub/a.go")

	for dir, want := range map[string]bool{
		"pkg":    true,
		"tests":  false,
		"empty":  false,
		"nested": false,
	} {
		got, err := HasInitializer(filepath.Join(root, dir))
		require.NoError(t, err)
		assert.Equal(t, want, got, dir)
	}
}
