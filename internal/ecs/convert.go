package ecs

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"

	"github.com/dhth/ecscope/internal/types"
)

func orUnknown(s *string) string {
	if s == nil || *s == "" {
		return types.UnknownValue
	}
	return *s
}

func healthOrUnknown(h ecstypes.HealthStatus) string {
	if h == "" {
		return types.UnknownValue
	}
	return string(h)
}

func toServiceResult(s ecstypes.Service, keys []string, clusterARN string, source types.ConfigSource) types.ServiceResult {
	name := aws.ToString(s.ServiceName)
	if name == "" {
		return types.ServiceError{Name: types.UnknownValue, Err: errEmptyServiceName.Error(), Keys: keys}
	}

	return types.ServiceDetails{
		Name:         name,
		Status:       orUnknown(s.Status),
		DesiredCount: s.DesiredCount,
		RunningCount: s.RunningCount,
		PendingCount: s.PendingCount,
		Keys:         keys,
		ClusterARN:   clusterARN,
		ConfigSource: source,
	}
}

func toDeploymentDetails(s ecstypes.Service, d ecstypes.Deployment, cluster types.ClusterConfig) types.DeploymentDetails {
	return types.DeploymentDetails{
		ServiceName:  orUnknown(s.ServiceName),
		Keys:         cluster.Keys,
		ClusterARN:   cluster.ARN,
		DeploymentID: orUnknown(d.Id),
		Status:       orUnknown(d.Status),
		RunningCount: d.RunningCount,
		DesiredCount: d.DesiredCount,
		PendingCount: d.PendingCount,
		FailedCount:  d.FailedTasks,
	}
}

func toTaskDetails(t ecstypes.Task) types.TaskDetails {
	containers := make([]types.ContainerDetails, 0, len(t.Containers))
	for _, c := range t.Containers {
		containers = append(containers, types.ContainerDetails{
			Name:         orUnknown(c.Name),
			Image:        orUnknown(c.Image),
			LastStatus:   orUnknown(c.LastStatus),
			CPU:          orUnknown(c.Cpu),
			Memory:       orUnknown(c.Memory),
			HealthStatus: healthOrUnknown(c.HealthStatus),
		})
	}

	return types.TaskDetails{
		ARN:          aws.ToString(t.TaskArn),
		HealthStatus: healthOrUnknown(t.HealthStatus),
		CPU:          orUnknown(t.Cpu),
		Memory:       orUnknown(t.Memory),
		LastStatus:   orUnknown(t.LastStatus),
		Containers:   containers,
	}
}

// serviceNameFromARN returns the trailing name of a service ARN, or the
// input when it is already a bare name
func serviceNameFromARN(arn string) string {
	if arn == "" {
		return types.UnknownValue
	}
	i := strings.LastIndex(arn, "/")
	return arn[i+1:]
}

func failureText(f ecstypes.Failure) string {
	reason := orUnknown(f.Reason)
	if f.Detail != nil && *f.Detail != "" {
		return reason + ": " + *f.Detail
	}
	return reason
}
