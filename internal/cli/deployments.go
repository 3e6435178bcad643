package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhth/ecscope/internal/config"
	"github.com/dhth/ecscope/internal/ecs"
	"github.com/dhth/ecscope/internal/logging"
	"github.com/dhth/ecscope/internal/report"
	"github.com/dhth/ecscope/internal/types"
)

func newDeploymentsCmd() *cobra.Command {
	var filters filterFlags
	var state, format string
	var dummy bool

	cmd := &cobra.Command{
		Use:   "deployments PROFILE",
		Short: "List deployments of a profile's services",
		Long: `Fetch the deployments of every service in a profile and print them.

Services that could not be fetched are listed on stderr.

Examples:
  ecscope deployments qa
  ecscope deployments prod --state failing --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := args[0]

			compiled, err := filters.compile()
			if err != nil {
				return err
			}

			var statePtr *types.DeploymentState
			if state != "" {
				s, err := types.ParseDeploymentState(state)
				if err != nil {
					return err
				}
				statePtr = &s
			}

			outFormat, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			configDir, err := config.Dir()
			if err != nil {
				return err
			}

			if debugRequested(cmd) {
				writeDebugInfo(cmd.OutOrStdout(), []argRow{
					{"command", "List deployments"},
					{"profile", profile},
					{"service name filter", orNotProvided(filters.service)},
					{"key filter", orNotProvided(filters.key)},
					{"state", orNotProvided(state)},
					{"format", string(outFormat)},
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

			registry, err := buildRegistry(cmd.Context(), clusters, dummy)
			if err != nil {
				return withCode(codeDeploymentsFailed, err)
			}

			result, err := ecs.GetDeployments(cmd.Context(), clusters, registry, statePtr)
			if err != nil {
				return withCode(codeDeploymentsFailed, err)
			}

			if err := report.WriteDeployments(cmd.OutOrStdout(), result.Deployments, outFormat); err != nil {
				return err
			}
			return report.WriteErrors(cmd.ErrOrStderr(), result.Errors)
		},
	}

	filters.register(cmd)

	states := make([]string, len(types.DeploymentStates))
	for i, s := range types.DeploymentStates {
		states[i] = string(s)
	}
	formats := make([]string, len(report.Formats))
	for i, f := range report.Formats {
		formats[i] = string(f)
	}

	cmd.Flags().StringVar(&state, "state", "", "only show deployments in this state: "+strings.Join(states, ", "))
	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatDelimited), "output format: "+strings.Join(formats, ", "))
	cmd.Flags().BoolVar(&dummy, "dummy", false, "use made-up data instead of calling AWS")
	return cmd
}
