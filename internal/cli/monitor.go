package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/dhth/ecscope/internal/app"
	"github.com/dhth/ecscope/internal/commands"
	"github.com/dhth/ecscope/internal/config"
	"github.com/dhth/ecscope/internal/ecs"
	"github.com/dhth/ecscope/internal/logging"
	"github.com/dhth/ecscope/internal/types"
)

var errNotATerminal = errors.New("ecscope monitor needs an interactive terminal")

// isTerminal is replaced in tests
var isTerminal = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func newMonitorCmd(v *viper.Viper) *cobra.Command {
	var filters filterFlags
	var dummy bool

	cmd := &cobra.Command{
		Use:   "monitor PROFILE",
		Short: "Open monitoring TUI",
		Long: `Open a dashboard showing the services of a profile, their tasks
and the tasks' containers.

Set ECSCOPE_DEBUG=1 to show a debug line, and ECSCOPE_REDACT=1 to hide
ARNs and image names.

Examples:
  ecscope monitor qa
  ecscope monitor prod -s 'api|web' -k eu`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := args[0]

			compiled, err := filters.compile()
			if err != nil {
				return err
			}

			configDir, err := config.Dir()
			if err != nil {
				return err
			}

			if debugRequested(cmd) {
				writeDebugInfo(cmd.OutOrStdout(), []argRow{
					{"command", "Monitor resources"},
					{"profile", profile},
					{"service name filter", orNotProvided(filters.service)},
					{"key filter", orNotProvided(filters.key)},
					{"dummy data", fmt.Sprint(dummy)},
				}, configDir)
				return nil
			}

			clusters, err := loadClusters(configDir, profile, compiled)
			if err != nil {
				return err
			}
			if len(clusters) == 0 {
				logging.Info("no clusters left after filtering", "profile", profile)
				return nil
			}

			return runMonitor(cmd.Context(), profile, clusters, dummy, app.Options{
				Debug:  v.GetBool(keyDebug),
				Redact: v.GetBool(keyRedact),
			})
		},
	}

	filters.register(cmd)
	cmd.Flags().BoolVar(&dummy, "dummy", false, "use made-up data instead of calling AWS")
	return cmd
}

func runMonitor(ctx context.Context, profile string, clusters []types.ClusterConfig, dummy bool, opts app.Options) error {
	fd := os.Stdout.Fd()
	if !isTerminal(fd) {
		return errNotATerminal
	}

	width, height, err := term.GetSize(int(fd))
	if err != nil {
		return withCode(codeMonitor, fmt.Errorf("couldn't get terminal size: %w", err))
	}

	registry, err := buildRegistry(ctx, clusters, dummy)
	if err != nil {
		return withCode(codeMonitor, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts.ProfileName = profile
	opts.Clusters = clusters
	opts.Width = width
	opts.Height = height

	executor := commands.NewExecutor(ctx, registry)
	dashboard := app.NewDashboard(app.NewModel(opts), executor)

	logging.Info("starting dashboard", "profile", profile, "clusters", len(clusters), "clients", registry.Len(), "dummy", dummy)
	p := tea.NewProgram(dashboard, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return withCode(codeMonitor, err)
	}
	return nil
}

func buildRegistry(ctx context.Context, clusters []types.ClusterConfig, dummy bool) (ecs.Registry, error) {
	if dummy {
		return ecs.NewDummyRegistry(clusters), nil
	}
	return ecs.BuildRegistry(ctx, clusters)
}
