package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/SuperKit/internal/infrastructure/logging"
	"github.com/GriffinCanCode/SuperKit/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/SuperKit/internal/shared/paths"
	"github.com/GriffinCanCode/SuperKit/internal/shared/types"
)

// initializerPattern matches the Go sources that make a directory a package.
const initializerPattern = "*.go"

// Discoverer scans a project's apps directory for loadable apps.
type Discoverer struct {
	loader  Loader
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewDiscoverer creates a discoverer resolving descriptors through loader.
func NewDiscoverer(loader Loader, logger *logging.Logger) *Discoverer {
	return &Discoverer{
		loader: loader,
		logger: logging.OrNop(logger).Component("discovery"),
	}
}

// WithMetrics adds metrics collection to the discoverer.
func (d *Discoverer) WithMetrics(metrics *monitoring.Metrics) *Discoverer {
	d.metrics = metrics
	return d
}

// Discover resolves the project above start and scans it. An unresolvable
// project yields an empty set.
func (d *Discoverer) Discover(ctx context.Context, start string) (types.NameSet, []Diagnostic) {
	project, err := paths.Resolve(start)
	if err != nil {
		diag := Diagnostic{
			Severity: SeverityInfo,
			Code:     CodeProjectNotFound,
			Message:  "no project found",
			Path:     start,
			Cause:    err,
		}
		d.record(diag)
		d.setDiscovered(0)
		return types.NewNameSet(), []Diagnostic{diag}
	}
	return d.DiscoverProject(ctx, project)
}

// DiscoverProject returns the names of the immediate subdirectories of the
// project's apps directory that are packages, hold a descriptor file and whose
// descriptor loads. Everything else is reported as a diagnostic.
func (d *Discoverer) DiscoverProject(ctx context.Context, project paths.Project) (types.NameSet, []Diagnostic) {
	d.loader.EnsureSearchRoot(project.SearchRoot)

	found := types.NewNameSet()
	var diags []Diagnostic

	entries, err := os.ReadDir(project.ModuleRoot)
	if err != nil {
		diag := Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeAppsDirUnreadable,
			Message:  "failed to read apps directory",
			Path:     project.ModuleRoot,
			Cause:    err,
		}
		d.record(diag)
		d.setDiscovered(0)
		return found, []Diagnostic{diag}
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()
		if diag, ok := d.inspect(project, name); !ok {
			d.record(diag)
			diags = append(diags, diag)
			continue
		}
		found.Add(name)
	}

	d.setDiscovered(found.Len())
	d.logger.Debug("Discovered apps",
		zap.String("module_root", project.ModuleRoot),
		zap.Strings("apps", found.Sorted()),
		zap.Int("skipped", len(diags)))

	return found, diags
}

func (d *Discoverer) inspect(project paths.Project, name string) (Diagnostic, bool) {
	dir := project.AppDir(name)

	ok, err := HasInitializer(dir)
	if err != nil || !ok {
		return Diagnostic{
			Severity: SeverityInfo,
			Code:     CodeMissingInitializer,
			Message:  fmt.Sprintf("%s is not a Go package", name),
			Path:     dir,
			Cause:    err,
		}, false
	}

	if !fileExists(filepath.Join(dir, paths.DescriptorFile)) {
		return Diagnostic{
			Severity: SeverityInfo,
			Code:     CodeMissingDescriptor,
			Message:  fmt.Sprintf("%s has no %s", name, paths.DescriptorFile),
			Path:     dir,
		}, false
	}

	if err := d.loader.Probe(name); err != nil {
		return Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeLoadFailed,
			Message:  fmt.Sprintf("descriptor of %s failed to load", name),
			Path:     filepath.Join(dir, paths.DescriptorFile),
			Cause:    err,
		}, false
	}

	return Diagnostic{}, true
}

// HasInitializer reports whether dir holds at least one non-test Go source.
func HasInitializer(dir string) (bool, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), initializerPattern, doublestar.WithFilesOnly())
	if err != nil {
		return false, err
	}
	for _, m := range matches {
		if !strings.HasSuffix(m, "_test.go") {
			return true, nil
		}
	}
	return false, nil
}

func (d *Discoverer) record(diag Diagnostic) {
	fields := []zap.Field{
		zap.String("code", diag.Code),
		zap.String("path", diag.Path),
	}
	if diag.Cause != nil {
		fields = append(fields, zap.Error(diag.Cause))
	}
	d.logger.Debug(diag.Message, fields...)

	if d.metrics != nil {
		d.metrics.IncDiscoverySkipped(diag.Code)
	}
}

func (d *Discoverer) setDiscovered(n int) {
	if d.metrics != nil {
		d.metrics.SetAppsDiscovered(n)
	}
}
