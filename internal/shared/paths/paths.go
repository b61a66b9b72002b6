package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/GriffinCanCode/SuperKit/internal/shared/errdefs"
)

// Project layout names
const (
	// AppsDir holds one directory per app
	AppsDir = "apps"

	// SrcDir is the optional source root wrapping AppsDir
	SrcDir = "src"

	// DescriptorFile declares and registers an app's descriptor
	DescriptorFile = "app.go"

	// ControllersDir holds an app's controller packages
	ControllersDir = "controllers"
)

// Layout identifies how a project arranges its apps directory.
type Layout int

const (
	// LayoutFlat is <root>/apps
	LayoutFlat Layout = iota + 1
	// LayoutSrc is <root>/src/apps
	LayoutSrc
)

// LayoutPriority is the order layouts are tested at each directory level.
// The nearest ancestor always wins; within one level the first match here wins.
var LayoutPriority = []Layout{LayoutFlat, LayoutSrc}

// String returns the layout label shown by the CLI.
func (l Layout) String() string {
	switch l {
	case LayoutFlat:
		return "flat-layout"
	case LayoutSrc:
		return "src-layout"
	default:
		return "unknown"
	}
}

// searchRoot returns the directory apps are resolved against for this layout.
func (l Layout) searchRoot(dir string) string {
	if l == LayoutSrc {
		return filepath.Join(dir, SrcDir)
	}
	return dir
}

// Project describes a resolved project tree.
type Project struct {
	// Root is the directory the layout was found in
	Root string
	// ModuleRoot is the apps directory
	ModuleRoot string
	// SearchRoot is the directory containing ModuleRoot
	SearchRoot string
	Layout     Layout
}

// AppDir returns the directory of the named app.
func (p Project) AppDir(name string) string {
	return filepath.Join(p.ModuleRoot, name)
}

// Resolve walks from start up to the filesystem root and returns the first
// directory containing an apps directory in one of the known layouts.
func Resolve(start string) (Project, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return Project{}, fmt.Errorf("failed to resolve %q: %w", start, err)
	}

	for {
		for _, layout := range LayoutPriority {
			search := layout.searchRoot(dir)
			apps := filepath.Join(search, AppsDir)
			if isDir(apps) {
				return Project{
					Root:       dir,
					ModuleRoot: apps,
					SearchRoot: search,
					Layout:     layout,
				}, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Project{}, errdefs.NotFound("not inside a SuperKit project (apps/ folder not found above %s)", start)
		}
		dir = parent
	}
}

// ResolveWorkingDir resolves the project containing the process working directory.
func ResolveWorkingDir() (Project, error) {
	wd, err := os.Getwd()
	if err != nil {
		return Project{}, fmt.Errorf("failed to get working directory: %w", err)
	}
	return Resolve(wd)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	scaffoldPattern   = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
)

// IsIdentifier reports whether name is a bare identifier usable as an app name.
func IsIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// ValidateAppName checks that an app name is a bare identifier.
func ValidateAppName(name string) error {
	if name == "" {
		return fmt.Errorf("app name cannot be empty")
	}
	if !IsIdentifier(name) {
		return fmt.Errorf("invalid app name %q (use letters, digits and underscores, not dashes)", name)
	}
	return nil
}

// ValidateScaffoldName is the stricter rule for generated apps: lowercase only.
func ValidateScaffoldName(name string) error {
	if !scaffoldPattern.MatchString(name) {
		return fmt.Errorf("invalid app name %q: use lowercase letters, numbers, and underscores only", name)
	}
	return nil
}
