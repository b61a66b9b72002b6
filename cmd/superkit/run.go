package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/SuperKit/internal/infrastructure/config"
	"github.com/GriffinCanCode/SuperKit/internal/server"
)

type runOptions struct {
	host     string
	port     int
	reload   bool
	noReload bool
}

func newRunCommand(global *globalOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Serve the project's apps",
		Long: `Load superkit.toml (or superkit.yaml) from the project root, mount the
selected apps and serve them until interrupted.

Flags override the settings file and the environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, srv, err := bootstrap(cmd, global, opts)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderBanner(cfg, srv.InstalledApps()))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "", "bind host (overrides settings)")
	cmd.Flags().IntVar(&opts.port, "port", 0, "bind port (overrides settings)")
	cmd.Flags().BoolVar(&opts.reload, "reload", false, "mark the server as reloadable")
	cmd.Flags().BoolVar(&opts.noReload, "no-reload", false, "mark the server as not reloadable")
	cmd.MarkFlagsMutuallyExclusive("reload", "no-reload")

	return cmd
}

// bootstrap loads the configuration, applies flag overrides, builds the
// server and mounts the configured apps.
func bootstrap(cmd *cobra.Command, global *globalOptions, opts *runOptions) (*config.Config, *server.Server, error) {
	dir := global.dir
	if project, err := global.project(); err == nil {
		dir = project.Root
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, nil, err
	}

	if global.verbose {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Server.Host = opts.host
	}
	if flags.Changed("port") {
		if opts.port < 1 || opts.port > 65535 {
			return nil, nil, fmt.Errorf("invalid port %d", opts.port)
		}
		cfg.Server.Port = opts.port
	}
	if flags.Changed("reload") {
		cfg.Server.Reload = opts.reload
	}
	if flags.Changed("no-reload") {
		cfg.Server.Reload = !opts.noReload
	}

	srv, err := server.New(cfg, server.Options{ProjectDir: dir})
	if err != nil {
		return nil, nil, err
	}
	if err := srv.MountApps(cmd.Context(), server.SelectionFromConfig(cfg)); err != nil {
		_ = srv.Close()
		return nil, nil, fmt.Errorf("failed to mount apps: %w", err)
	}
	return cfg, srv, nil
}

func renderBanner(cfg *config.Config, apps []string) string {
	base := "http://" + cfg.Server.Addr()
	installed := "none"
	if len(apps) > 0 {
		installed = strings.Join(apps, ", ")
	}

	rows := []string{
		TitleStyle.Render(cfg.App.Title) + " " + SubtitleStyle.Render("v"+cfg.App.Version),
		"",
		labelStyle.Render("Server") + CmdStyle.Render(base),
	}
	if cfg.App.DocsURL != "" {
		rows = append(rows, labelStyle.Render("Docs")+CmdStyle.Render(base+cfg.App.DocsURL))
	}
	rows = append(rows,
		labelStyle.Render("Apps")+installed,
		labelStyle.Render("Environment")+cfg.Environment,
		labelStyle.Render("Reload")+fmt.Sprintf("%t", cfg.Server.Reload),
	)
	if cfg.Source != "" {
		rows = append(rows, labelStyle.Render("Settings")+SubtitleStyle.Render(cfg.Source))
	}

	return bannerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
