package inspect

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/GriffinCanCode/SuperKit/internal/domain/registry"
	"github.com/GriffinCanCode/SuperKit/internal/shared/paths"
)

// Severity grades an issue.
type Severity int

const (
	Warning Severity = iota
	Critical
)

func (s Severity) String() string {
	if s == Critical {
		return "critical"
	}
	return "warning"
}

// Issue is one problem found with an app.
type Issue struct {
	Severity Severity
	Message  string
}

// AppReport holds the issues of one app directory.
type AppReport struct {
	Name   string
	Issues []Issue
}

// Healthy reports whether the app has no issues.
func (r AppReport) Healthy() bool {
	return len(r.Issues) == 0
}

// Critical reports whether any issue is critical.
func (r AppReport) Critical() bool {
	for _, is := range r.Issues {
		if is.Severity == Critical {
			return true
		}
	}
	return false
}

// PrefixConflict is a URL prefix declared by more than one app.
type PrefixConflict struct {
	Prefix string
	Apps   []string
}

// Report is the result of a doctor run.
type Report struct {
	Project   paths.Project
	Apps      []AppReport
	Conflicts []PrefixConflict

	Healthy  int
	Critical int
	Warnings int
}

// OK reports whether no critical issue was found.
func (r *Report) OK() bool {
	return r.Critical == 0
}

// Doctor checks every directory under the project's apps directory.
func (i *Inspector) Doctor(project paths.Project) (*Report, error) {
	entries, err := os.ReadDir(project.ModuleRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read apps directory: %w", err)
	}

	i.loader.EnsureSearchRoot(project.SearchRoot)

	report := &Report{Project: project}
	prefixes := make(map[string][]string)

	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata" {
			continue
		}

		ar, prefix := i.checkApp(project, name)
		if prefix != "" {
			prefixes[prefix] = append(prefixes[prefix], name)
		}

		for _, is := range ar.Issues {
			if is.Severity == Critical {
				report.Critical++
			} else {
				report.Warnings++
			}
		}
		if ar.Healthy() {
			report.Healthy++
		}
		report.Apps = append(report.Apps, ar)
	}

	for prefix, apps := range prefixes {
		if len(apps) > 1 {
			report.Conflicts = append(report.Conflicts, PrefixConflict{Prefix: prefix, Apps: apps})
			report.Critical++
		}
	}
	sort.Slice(report.Conflicts, func(a, b int) bool {
		return report.Conflicts[a].Prefix < report.Conflicts[b].Prefix
	})

	return report, nil
}

// checkApp returns the app's report and the URL prefix it declares, if valid.
func (i *Inspector) checkApp(project paths.Project, name string) (AppReport, string) {
	ar := AppReport{Name: name}
	critical := func(format string, args ...any) {
		ar.Issues = append(ar.Issues, Issue{Severity: Critical, Message: fmt.Sprintf(format, args...)})
	}
	warn := func(format string, args ...any) {
		ar.Issues = append(ar.Issues, Issue{Severity: Warning, Message: fmt.Sprintf(format, args...)})
	}

	dir := project.AppDir(name)
	if !paths.IsIdentifier(name) {
		critical("invalid identifier (use underscores, not dashes)")
	}
	if ok, _ := registry.HasInitializer(dir); !ok {
		critical("no Go source files")
	}
	if _, err := os.Stat(filepath.Join(dir, paths.DescriptorFile)); err != nil {
		critical("missing %s", paths.DescriptorFile)
	}
	if !ar.Healthy() {
		return ar, ""
	}

	cfg, err := i.load(name)
	if err != nil {
		critical("load failed (%v)", err)
		return ar, ""
	}

	var prefix string
	if cfg.Name != name {
		warn("name mismatch (config: %q, folder: %q)", cfg.Name, name)
	}
	switch {
	case cfg.URLPrefix == "":
		critical("missing url_prefix")
	case !strings.HasPrefix(cfg.URLPrefix, "/"):
		warn("url_prefix should start with '/' (got: %q)", cfg.URLPrefix)
	default:
		prefix = cfg.NormalizedPrefix()
	}

	table, err := cfg.BuildRouter(i.units)
	switch {
	case err != nil:
		critical("router build failed (%v)", err)
	case table.Len() == 0:
		warn("no routes registered")
	}

	return ar, prefix
}
