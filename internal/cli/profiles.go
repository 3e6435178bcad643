package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhth/ecscope/internal/config"
)

func newProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage ecscope's profiles",
	}
	cmd.AddCommand(newProfilesAddCmd(), newProfilesListCmd())
	return cmd
}

func newProfilesAddCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "add PROFILE_NAME",
		Short: "Add a new profile",
		Long: `Add a new profile with sample contents.

Profile names may contain lowercase letters, digits, "-" and "_", and be
at most 20 characters long.

Examples:
  ecscope profiles add qa
  ecscope profiles add qa --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			configDir, err := config.Dir()
			if err != nil {
				return err
			}

			if debugRequested(cmd) {
				writeDebugInfo(cmd.OutOrStdout(), []argRow{
					{"command", "Add Profile"},
					{"name", name},
					{"overwrite", fmt.Sprint(force)},
				}, configDir)
				return nil
			}

			path, err := config.AddProfile(configDir, name, force)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), `Profile config file added at:
%q

You can edit the file in your text editor, and use it via "ecscope monitor %s"
`, path, name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite the profile if it exists")
	return cmd
}

func newProfilesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := config.Dir()
			if err != nil {
				return err
			}

			if debugRequested(cmd) {
				writeDebugInfo(cmd.OutOrStdout(), []argRow{{"command", "List Profiles"}}, configDir)
				return nil
			}

			profiles, err := config.ListProfiles(configDir)
			if err != nil {
				return err
			}

			for _, p := range profiles {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t(located at %s)\n", p.Name, p.Path)
			}
			return nil
		},
	}
}
