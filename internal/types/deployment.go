package types

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// DeploymentStatusPrimary marks the deployment ECS currently treats as the
// service's most recent one
const DeploymentStatusPrimary = "PRIMARY"

// DeploymentResult is either DeploymentDetails or DeploymentError
type DeploymentResult interface {
	isDeploymentResult()
}

// DeploymentDetails is one rollout record of a service
type DeploymentDetails struct {
	ServiceName  string   `json:"service_name"`
	Keys         []string `json:"keys"`
	ClusterARN   string   `json:"cluster_arn"`
	DeploymentID string   `json:"deployment_id"`
	Status       string   `json:"status"`
	RunningCount int32    `json:"running_count"`
	DesiredCount int32    `json:"desired_count"`
	PendingCount int32    `json:"pending_count"`
	FailedCount  int32    `json:"num_failed_tasks"`
}

// DeploymentError records a service whose deployments could not be fetched
type DeploymentError struct {
	ServiceName string   `json:"service_name"`
	Err         string   `json:"error"`
	ClusterARN  string   `json:"cluster_arn"`
	Keys        []string `json:"keys"`
}

func (DeploymentDetails) isDeploymentResult() {}
func (DeploymentError) isDeploymentResult()   {}

// DeploymentState filters deployments by rollout progress
type DeploymentState string

const (
	DeploymentFinished   DeploymentState = "finished"
	DeploymentInProgress DeploymentState = "in-progress"
	DeploymentFailing    DeploymentState = "failing"
)

// DeploymentStates lists the accepted --state values
var DeploymentStates = []DeploymentState{DeploymentFinished, DeploymentInProgress, DeploymentFailing}

// ParseDeploymentState validates a state name
func ParseDeploymentState(value string) (DeploymentState, error) {
	for _, s := range DeploymentStates {
		if string(s) == value {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid deployment state %q; possible values: finished, in-progress, failing", value)
}

// Includes reports whether d is in state s
func (s DeploymentState) Includes(d DeploymentDetails) bool {
	switch s {
	case DeploymentFinished:
		return d.Status == DeploymentStatusPrimary && d.RunningCount == d.DesiredCount
	case DeploymentInProgress:
		return d.Status != DeploymentStatusPrimary || d.RunningCount != d.DesiredCount
	case DeploymentFailing:
		return d.RunningCount != d.DesiredCount && d.FailedCount != 0
	default:
		return true
	}
}

// CompareDeployments orders by service name, then keys. Cluster and
// deployment id break the remaining ties so output is deterministic.
func CompareDeployments(a, b DeploymentDetails) int {
	return cmp.Or(
		strings.Compare(a.ServiceName, b.ServiceName),
		slices.Compare(a.Keys, b.Keys),
		strings.Compare(a.ClusterARN, b.ClusterARN),
		strings.Compare(a.DeploymentID, b.DeploymentID),
	)
}

// CompareDeploymentErrors orders by service name, then keys
func CompareDeploymentErrors(a, b DeploymentError) int {
	return cmp.Or(
		strings.Compare(a.ServiceName, b.ServiceName),
		slices.Compare(a.Keys, b.Keys),
		strings.Compare(a.ClusterARN, b.ClusterARN),
	)
}

// CompareServices orders service snapshots by name, then keys
func CompareServices(a, b ServiceDetails) int {
	return cmp.Or(
		strings.Compare(a.Name, b.Name),
		slices.Compare(a.Keys, b.Keys),
		strings.Compare(a.ClusterARN, b.ClusterARN),
	)
}

// CompareServiceErrors orders service failures by name, then keys
func CompareServiceErrors(a, b ServiceError) int {
	return cmp.Or(
		strings.Compare(a.Name, b.Name),
		slices.Compare(a.Keys, b.Keys),
	)
}
