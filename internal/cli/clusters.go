package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhth/ecscope/internal/config"
	"github.com/dhth/ecscope/internal/logging"
	"github.com/dhth/ecscope/internal/types"
)

const notProvided = "<not provided>"

// filterFlags are the profile filters shared by monitor and deployments
type filterFlags struct {
	service string
	key     string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.service, "service-filter", "s", "", "regex to filter service names")
	cmd.Flags().StringVarP(&f.key, "key-filter", "k", "", "regex to filter cluster keys")
}

func (f *filterFlags) compile() (config.Filters, error) {
	var filters config.Filters
	var err error
	if filters.Service, err = compileQuery(f.service); err != nil {
		return config.Filters{}, err
	}
	if filters.Key, err = compileQuery(f.key); err != nil {
		return config.Filters{}, err
	}
	return filters, nil
}

func compileQuery(query string) (*regexp.Regexp, error) {
	if query == "" {
		return nil, nil
	}
	re, err := regexp.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("query %q is not valid regex: %w", query, err)
	}
	return re, nil
}

func orNotProvided(value string) string {
	if value == "" {
		return notProvided
	}
	return value
}

// loadClusters reads a profile's clusters. Unknown profiles get a
// suggestion when a similar name exists.
func loadClusters(configDir, profile string, filters config.Filters) ([]types.ClusterConfig, error) {
	clusters, err := config.LoadClusters(configDir, profile, filters)
	if errors.Is(err, config.ErrProfileDoesntExist) {
		if suggestions := config.SuggestProfiles(configDir, profile); len(suggestions) > 0 {
			return nil, fmt.Errorf("%w; did you mean %q?", err, suggestions[0])
		}
		return nil, fmt.Errorf("%w; run \"ecscope profiles list\" to see existing profiles", err)
	}
	if err != nil {
		return nil, err
	}

	logging.Debug("clusters loaded", "profile", profile, "count", len(clusters))
	return clusters, nil
}

// debugRequested reports whether the global --debug flag is set
func debugRequested(cmd *cobra.Command) bool {
	debug, _ := cmd.Flags().GetBool("debug")
	return debug
}

type argRow struct {
	label string
	value string
}

// writeDebugInfo prints the parsed arguments and ecscope's directory
// inside configDir
func writeDebugInfo(w io.Writer, rows []argRow, configDir string) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r.label))
	}

	var b strings.Builder
	b.WriteString("DEBUG INFO:\n\n<your arguments>\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-*s : %s\n", width, r.label, r.value)
	}
	fmt.Fprintf(&b, "\n<computed config>\nconfig directory: %s\n", filepath.Join(configDir, config.AppDir))

	_, _ = io.WriteString(w, b.String())
}
