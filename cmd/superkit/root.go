package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/SuperKit/internal/infrastructure/logging"
	"github.com/GriffinCanCode/SuperKit/internal/shared/errdefs"
	"github.com/GriffinCanCode/SuperKit/internal/shared/paths"
)

// Version is set via -ldflags.
var Version = "dev"

type globalOptions struct {
	dir     string
	verbose bool
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:     "superkit",
		Short:   "Run a SuperKit project and manage its apps",
		Version: Version,
		Long: TitleStyle.Render("superkit") + SubtitleStyle.Render(" - modular HTTP apps on gin") + `

A SuperKit project keeps its apps under apps/ or src/apps/. Each app is a Go
package with an app.go descriptor that registers itself on import.

` + SubtitleStyle.Render("Examples:") + `
  superkit run --port 8080     Serve the apps selected in superkit.toml
  superkit apps list           List the discovered apps
  superkit apps doctor         Check every app for problems
  superkit apps init blog      Scaffold a new app`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.dir, "dir", "C", ".", "project directory")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newRunCommand(opts))
	root.AddCommand(newAppsCommand(opts))

	return root
}

// logger returns a development logger in verbose mode and a no-op otherwise.
func (o *globalOptions) logger() *logging.Logger {
	if o.verbose {
		return logging.NewDevelopment()
	}
	return logging.Nop()
}

func (o *globalOptions) project() (paths.Project, error) {
	project, err := paths.Resolve(o.dir)
	if err != nil {
		if errors.Is(err, errdefs.ErrNotFound) {
			return paths.Project{}, fmt.Errorf("%w (run from a directory containing apps/ or src/apps/)", err)
		}
		return paths.Project{}, err
	}
	return project, nil
}

// projectOrNew resolves the project, falling back to a flat layout rooted at
// the working directory when none exists yet.
func (o *globalOptions) projectOrNew() (paths.Project, error) {
	project, err := paths.Resolve(o.dir)
	if err == nil {
		return project, nil
	}
	if !errors.Is(err, errdefs.ErrNotFound) {
		return paths.Project{}, err
	}

	root, err := filepath.Abs(o.dir)
	if err != nil {
		return paths.Project{}, err
	}
	return paths.Project{
		Root:       root,
		ModuleRoot: filepath.Join(root, paths.AppsDir),
		SearchRoot: root,
		Layout:     paths.LayoutFlat,
	}, nil
}
