package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/SuperKit/internal/domain/registry"
	"github.com/GriffinCanCode/SuperKit/internal/inspect"
	"github.com/GriffinCanCode/SuperKit/internal/scaffold"
)

func newAppsCommand(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "Inspect and manage the project's apps",
	}

	cmd.AddCommand(newAppsListCommand(global))
	cmd.AddCommand(newAppsInfoCommand(global))
	cmd.AddCommand(newAppsDoctorCommand(global))
	cmd.AddCommand(newAppsInitCommand(global))
	cmd.AddCommand(newAppsRemoveCommand(global))

	return cmd
}

func (o *globalOptions) inspector() *inspect.Inspector {
	return inspect.New(registry.Default, nil, o.logger())
}

func newAppsListCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the apps discovered in the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			project, err := global.project()
			if err != nil {
				return err
			}

			names, diags := global.inspector().List(cmd.Context(), project)
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, TitleStyle.Render("Apps"), SubtitleStyle.Render(project.ModuleRoot))
			if len(names) == 0 {
				fmt.Fprintln(out, WarningStyle.Render(warningIcon), "No apps found")
			}
			for _, name := range names {
				fmt.Fprintf(out, "  %s %s\n", bulletIcon, CmdStyle.Render(name))
			}

			for _, d := range diags {
				if d.Severity != registry.SeverityWarning && !global.verbose {
					continue
				}
				fmt.Fprintf(out, "%s %s %s\n",
					WarningStyle.Render(warningIcon),
					d.Message,
					SubtitleStyle.Render("["+d.Code+"]"))
			}
			return nil
		},
	}
}

func newAppsInfoCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <name>",
		Short: "Show the configuration, routes and controllers of an app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := global.project()
			if err != nil {
				return err
			}

			info, err := global.inspector().Info(cmd.Context(), project, args[0])
			if err != nil {
				return err
			}
			renderInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}
}

func renderInfo(out io.Writer, info *inspect.AppInfo) {
	fmt.Fprintln(out, TitleStyle.Render(info.Name))
	fmt.Fprintln(out, labelStyle.Render("Path")+info.Path)
	fmt.Fprintln(out, labelStyle.Render("Prefix")+CmdStyle.Render(info.URLPrefix))
	tags := "none"
	if len(info.Tags) > 0 {
		tags = strings.Join(info.Tags, ", ")
	}
	fmt.Fprintln(out, labelStyle.Render("Tags")+tags)

	fmt.Fprintln(out)
	fmt.Fprintln(out, TitleStyle.Render(fmt.Sprintf("Routes (%d)", len(info.Routes))))
	for _, r := range info.Routes {
		fmt.Fprintf(out, "  %-7s %s\n", r.Method, CmdStyle.Render(r.Path))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, TitleStyle.Render("Controllers"))
	if len(info.Controllers) == 0 {
		fmt.Fprintln(out, SubtitleStyle.Render("  none"))
		return
	}
	renderTree(out, inspect.BuildTree(info.Controllers), "  ")
}

func renderTree(out io.Writer, nodes []*inspect.Node, indent string) {
	for i, n := range nodes {
		branch, next := "├── ", "│   "
		if i == len(nodes)-1 {
			branch, next = "└── ", "    "
		}
		fmt.Fprintln(out, indent+branch+n.Name)
		renderTree(out, n.Children, indent+next)
	}
}

func newAppsDoctorCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check every app of the project for problems",
		Long: `Check every app directory of the project.

Critical issues: invalid identifier, no Go sources, missing app.go, descriptor
that fails to load, missing url_prefix, router build failure and a url_prefix
shared by several apps. Warnings: descriptor name mismatch, url_prefix without
a leading '/' and apps without routes.

Exits with status 1 when a critical issue is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			project, err := global.project()
			if err != nil {
				return err
			}

			report, err := global.inspector().Doctor(project)
			if err != nil {
				return err
			}
			renderReport(cmd.OutOrStdout(), report)

			if !report.OK() {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}
}

func renderReport(out io.Writer, report *inspect.Report) {
	fmt.Fprintln(out, TitleStyle.Render("Project"), report.Project.Root)
	fmt.Fprintln(out, labelStyle.Render("Layout")+report.Project.Layout.String())
	fmt.Fprintln(out, labelStyle.Render("Apps dir")+report.Project.ModuleRoot)
	fmt.Fprintln(out)

	for _, app := range report.Apps {
		switch {
		case app.Healthy():
			fmt.Fprintf(out, "%s %s\n", SuccessStyle.Render(successIcon), CmdStyle.Render(app.Name))
		case app.Critical():
			fmt.Fprintf(out, "%s %s\n", ErrorStyle.Render(errorIcon), CmdStyle.Render(app.Name))
		default:
			fmt.Fprintf(out, "%s %s\n", WarningStyle.Render(warningIcon), CmdStyle.Render(app.Name))
		}
		for _, is := range app.Issues {
			style := WarningStyle
			if is.Severity == inspect.Critical {
				style = ErrorStyle
			}
			fmt.Fprintf(out, "    %s %s\n", style.Render(is.Severity.String()+":"), is.Message)
		}
	}

	for _, c := range report.Conflicts {
		fmt.Fprintf(out, "%s url_prefix %s is declared by %s\n",
			ErrorStyle.Render(errorIcon), CmdStyle.Render(c.Prefix), strings.Join(c.Apps, ", "))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s healthy, %s critical, %s warnings\n",
		SuccessStyle.Render(fmt.Sprint(report.Healthy)),
		ErrorStyle.Render(fmt.Sprint(report.Critical)),
		WarningStyle.Render(fmt.Sprint(report.Warnings)))
}

func newAppsInitCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init <name>",
		Short: "Scaffold a new app",
		Long: `Create apps/<name> with an app.go descriptor and a controllers package,
then regenerate apps/apps.go so the new app is linked into the binary.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := global.projectOrNew()
			if err != nil {
				return err
			}
			s, err := scaffold.New(project)
			if err != nil {
				return err
			}

			dir, err := s.CreateApp(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Created app %s in %s\n",
				SuccessStyle.Render(successIcon), CmdStyle.Render(args[0]), dir)
			fmt.Fprintln(out, SubtitleStyle.Render("Rebuild superkit to serve it at /"+args[0]+"."))
			return nil
		},
	}
}

func newAppsRemoveCommand(global *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete an app and unlink it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			project, err := global.project()
			if err != nil {
				return err
			}
			s, err := scaffold.New(project)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !yes && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete %s?", project.AppDir(name))) {
				fmt.Fprintln(out, SubtitleStyle.Render("Aborted."))
				return nil
			}

			if err := s.RemoveApp(name); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s Removed app %s\n", SuccessStyle.Render(successIcon), CmdStyle.Render(name))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
