// Package cli wires ecscope's commands: profile management, the monitoring
// dashboard and the deployments report.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dhth/ecscope/internal/logging"
)

const envPrefix = "ECSCOPE"

// Viper keys
const (
	keyLogFile   = "log-file"
	keyLogLevel  = "log-level"
	keyLogFormat = "log-format"
	keyDebug     = "debug"
	keyRedact    = "redact"
)

// NewRootCmd builds the command tree. Every call gets its own viper
// instance, so commands can be built and run repeatedly in tests.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// ECSCOPE_DEBUG turns on the dashboard's debug line; it is unrelated to
	// the --debug flag, which is never bound to viper
	_ = v.BindEnv(keyDebug)
	_ = v.BindEnv(keyRedact)

	root := &cobra.Command{
		Use:   "ecscope",
		Short: "ecscope lets you monitor AWS ECS resources from the terminal",
		Long: `ecscope lets you monitor AWS ECS resources from the terminal.

Clusters and services to watch are read from profiles kept in
$XDG_CONFIG_HOME/ecscope/profiles (or your OS's config directory).

Quick Start:
  ecscope profiles add qa        # write a sample profile, then edit it
  ecscope monitor qa             # open the dashboard
  ecscope deployments qa         # list deployments as CSV`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogging(v)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.Shutdown()
		},
	}

	flags := root.PersistentFlags()
	flags.Bool("debug", false, "output debug information without doing anything")
	flags.String(keyLogFile, "", "write logs to this file (env: ECSCOPE_LOG_FILE)")
	flags.String(keyLogLevel, "info", "log level: debug, info, warn, error (env: ECSCOPE_LOG_LEVEL)")
	flags.String(keyLogFormat, "text", "log format: text, json (env: ECSCOPE_LOG_FORMAT)")
	for _, k := range []string{keyLogFile, keyLogLevel, keyLogFormat} {
		_ = v.BindPFlag(k, flags.Lookup(k))
	}

	root.AddCommand(
		newProfilesCmd(),
		newMonitorCmd(v),
		newDeploymentsCmd(),
	)

	return root
}

func initLogging(v *viper.Viper) error {
	level, err := logging.ParseLevel(v.GetString(keyLogLevel))
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(v.GetString(keyLogFormat))
	if err != nil {
		return err
	}
	return logging.Init(logging.Config{
		FilePath: v.GetString(keyLogFile),
		Level:    level,
		Format:   format,
	})
}

// Execute runs ecscope with os.Args and returns the process exit code
func Execute() int {
	return run(NewRootCmd(), os.Stderr)
}

func run(root *cobra.Command, stderr io.Writer) int {
	err := root.Execute()
	if err == nil {
		return 0
	}

	fmt.Fprintf(stderr, "Error: %s\n", err)
	if code, ok := ErrorCode(err); ok {
		fmt.Fprintf(stderr, unexpectedErrorFmt, code)
	}
	return 1
}
