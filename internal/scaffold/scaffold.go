package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/mod/modfile"

	"github.com/GriffinCanCode/SuperKit/internal/shared/errdefs"
	"github.com/GriffinCanCode/SuperKit/internal/shared/paths"
)

//go:embed templates
var templates embed.FS

const (
	appTemplates = "templates/app"
	nameToken    = "__name__"
	// RegistryFile links the project's apps into the binary.
	RegistryFile = "apps.go"
)

// Scaffolder creates and removes apps in a project.
type Scaffolder struct {
	project    paths.Project
	modulePath string
	moduleDir  string
}

// New locates the Go module containing project.
func New(project paths.Project) (*Scaffolder, error) {
	dir := project.ModuleRoot
	for {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil {
			mod := modfile.ModulePath(data)
			if mod == "" {
				return nil, errdefs.Configuration("%s has no module directive", filepath.Join(dir, "go.mod"))
			}
			return &Scaffolder{project: project, modulePath: mod, moduleDir: dir}, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read go.mod: %w", err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, errdefs.NotFound("no go.mod found above %s", project.ModuleRoot)
		}
		dir = parent
	}
}

// ModulePath returns the module path of the project.
func (s *Scaffolder) ModulePath() string {
	return s.modulePath
}

// ImportPath returns the import path of the named app.
func (s *Scaffolder) ImportPath(name string) string {
	rel, err := filepath.Rel(s.moduleDir, s.project.AppDir(name))
	if err != nil {
		return path.Join(s.modulePath, paths.AppsDir, name)
	}
	return path.Join(s.modulePath, filepath.ToSlash(rel))
}

type appData struct {
	Name       string
	Title      string
	ImportPath string
}

// CreateApp renders the app templates into a new app directory and updates
// the registry file. It returns the created directory.
func (s *Scaffolder) CreateApp(name string) (string, error) {
	if err := paths.ValidateScaffoldName(name); err != nil {
		return "", err
	}
	if token.IsKeyword(name) {
		return "", errdefs.Configuration("app name %q is a Go keyword", name)
	}

	dir := s.project.AppDir(name)
	if _, err := os.Stat(dir); err == nil {
		return "", errdefs.Configuration("app %q already exists", name)
	}

	data := appData{
		Name:       name,
		Title:      title(name),
		ImportPath: s.ImportPath(name),
	}

	err := fs.WalkDir(templates, appTemplates, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, appTemplates), "/")
		rel = strings.ReplaceAll(rel, nameToken, name)
		dest := filepath.Join(dir, filepath.FromSlash(rel))

		if d.IsDir() {
			return os.MkdirAll(dest, 0o755)
		}
		return renderFile(p, strings.TrimSuffix(dest, ".tmpl"), data)
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("failed to scaffold app %q: %w", name, err)
	}

	if err := s.SyncRegistry(); err != nil {
		return dir, err
	}
	return dir, nil
}

// RemoveApp deletes the app directory and updates the registry file.
func (s *Scaffolder) RemoveApp(name string) error {
	dir := s.project.AppDir(name)
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return errdefs.NotFound("app %q does not exist", name)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove app %q: %w", name, err)
	}
	return s.SyncRegistry()
}

// SyncRegistry rewrites the registry file so that it imports every app
// directory holding a descriptor file.
func (s *Scaffolder) SyncRegistry() error {
	entries, err := os.ReadDir(s.project.ModuleRoot)
	if err != nil {
		return fmt.Errorf("failed to read apps directory: %w", err)
	}

	var imports []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.project.AppDir(e.Name()), paths.DescriptorFile)); err != nil {
			continue
		}
		imports = append(imports, s.ImportPath(e.Name()))
	}

	dest := filepath.Join(s.project.ModuleRoot, RegistryFile)
	return renderFile("templates/apps.go.tmpl", dest, struct{ Imports []string }{imports})
}

func renderFile(name, dest string, data any) error {
	raw, err := templates.ReadFile(name)
	if err != nil {
		return err
	}
	tmpl, err := template.New(path.Base(name)).Parse(string(raw))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}

	out := buf.Bytes()
	if strings.HasSuffix(dest, ".go") {
		if out, err = format.Source(out); err != nil {
			return fmt.Errorf("generated %s is not valid Go: %w", filepath.Base(dest), err)
		}
	}
	return os.WriteFile(dest, out, 0o644)
}

// title turns snake_case into CamelCase.
func title(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		r := []rune(part)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}
