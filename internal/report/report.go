// Package report renders the results of a deployments batch for the
// terminal or for other programs.
package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/dhth/ecscope/internal/types"
)

// Format selects how deployments are written
type Format string

const (
	FormatDelimited Format = "delimited"
	FormatJSON      Format = "json"
	FormatPlain     Format = "plain"
	FormatYAML      Format = "yaml"
)

// Formats lists the accepted --format values
var Formats = []Format{FormatDelimited, FormatJSON, FormatPlain, FormatYAML}

var (
	ErrSerialize = errors.New("couldn't serialize results")
	ErrCSV       = errors.New("couldn't serialize results to CSV")
	ErrFlushCSV  = errors.New("couldn't flush contents to csv writer")
)

var csvHeader = []string{
	"service_name",
	"keys",
	"cluster_arn",
	"deployment_id",
	"status",
	"running_count",
	"desired_count",
	"pending_count",
	"num_failed_tasks",
}

const errorsBanner = "\n===\nerrors\n==="

// ParseFormat validates a format name
func ParseFormat(value string) (Format, error) {
	for _, f := range Formats {
		if string(f) == value {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("invalid format %q; possible values: %s", value, strings.Join(names, ", "))
}

// WriteDeployments writes deployments in format. Nothing is written when
// there are no deployments.
func WriteDeployments(w io.Writer, deployments []types.DeploymentDetails, format Format) error {
	if len(deployments) == 0 {
		return nil
	}

	switch format {
	case FormatDelimited:
		return writeCSV(w, deployments)
	case FormatJSON:
		out, err := json.MarshalIndent(deployments, "", "  ")
		if err != nil {
			return fmt.Errorf("%w to JSON: %w", ErrSerialize, err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case FormatYAML:
		out, err := yaml.Marshal(deployments)
		if err != nil {
			return fmt.Errorf("%w to YAML: %w", ErrSerialize, err)
		}
		_, err = w.Write(out)
		return err
	case FormatPlain:
		for _, d := range deployments {
			if _, err := io.WriteString(w, plainBlock(d)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func writeCSV(w io.Writer, deployments []types.DeploymentDetails) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("%w: %w", ErrCSV, err)
	}

	for _, d := range deployments {
		record := []string{
			d.ServiceName,
			types.KeysLabel(d.Keys),
			d.ClusterARN,
			d.DeploymentID,
			d.Status,
			strconv.Itoa(int(d.RunningCount)),
			strconv.Itoa(int(d.DesiredCount)),
			strconv.Itoa(int(d.PendingCount)),
			strconv.Itoa(int(d.FailedCount)),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%w: %w", ErrCSV, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrFlushCSV, err)
	}
	return nil
}

func plainBlock(d types.DeploymentDetails) string {
	return fmt.Sprintf(`
service        : %s
keys           : %s
deployment id  : %s
status         : %s
running count  : %d
desired count  : %d
pending count  : %d
failed tasks   : %d
`,
		d.ServiceName,
		types.KeysLabel(d.Keys),
		d.DeploymentID,
		d.Status,
		d.RunningCount,
		d.DesiredCount,
		d.PendingCount,
		d.FailedCount,
	)
}

// WriteErrors writes failed services under an errors banner, one block
// each. Nothing is written when errs is empty.
func WriteErrors(w io.Writer, errs []types.DeploymentError) error {
	if len(errs) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w, errorsBanner); err != nil {
		return err
	}
	for _, e := range errs {
		if _, err := fmt.Fprintf(w, `
Service     : %s
Cluster ARN : %s
Cluster Keys: %s
Error       : %s
---
`, e.ServiceName, e.ClusterARN, types.KeysLabel(e.Keys), e.Err); err != nil {
			return err
		}
	}
	return nil
}
