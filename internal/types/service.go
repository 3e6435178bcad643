package types

import "strings"

// ServiceResult is the outcome of fetching one service: either
// ServiceDetails or ServiceError, never both.
type ServiceResult interface {
	ServiceName() string
	ClusterKeys() []string
	isServiceResult()
}

// ServiceDetails is a successfully fetched service snapshot
type ServiceDetails struct {
	Name         string       `json:"name"`
	Status       string       `json:"status"`
	DesiredCount int32        `json:"desired_count"`
	RunningCount int32        `json:"running_count"`
	PendingCount int32        `json:"pending_count"`
	Keys         []string     `json:"cluster_keys"`
	ClusterARN   string       `json:"cluster_arn"`
	ConfigSource ConfigSource `json:"config_source"`
}

// ServiceError records a service that could not be fetched
type ServiceError struct {
	Name string   `json:"name"`
	Err  string   `json:"error"`
	Keys []string `json:"cluster_keys"`
}

func (s ServiceDetails) ServiceName() string   { return s.Name }
func (s ServiceDetails) ClusterKeys() []string { return s.Keys }
func (ServiceDetails) isServiceResult()        {}

func (s ServiceError) ServiceName() string   { return s.Name }
func (s ServiceError) ClusterKeys() []string { return s.Keys }
func (ServiceError) isServiceResult()        {}

// ServiceKey is the comparable identity of a full service snapshot. Two
// snapshots of the same service with different counts have different keys.
type ServiceKey struct {
	Name         string
	Status       string
	DesiredCount int32
	RunningCount int32
	PendingCount int32
	Keys         string
	ClusterARN   string
	ConfigSource ConfigSource
}

// Key returns the snapshot's cache key
func (s ServiceDetails) Key() ServiceKey {
	return ServiceKey{
		Name:         s.Name,
		Status:       s.Status,
		DesiredCount: s.DesiredCount,
		RunningCount: s.RunningCount,
		PendingCount: s.PendingCount,
		Keys:         strings.Join(s.Keys, "\x00"),
		ClusterARN:   s.ClusterARN,
		ConfigSource: s.ConfigSource,
	}
}

// SameService reports whether both snapshots describe the same ECS service,
// ignoring status and counts.
func (s ServiceDetails) SameService(other ServiceDetails) bool {
	return s.Name == other.Name &&
		s.ClusterARN == other.ClusterARN &&
		s.ConfigSource == other.ConfigSource
}

// IsSettling reports whether the service has tasks starting or missing
func (s ServiceDetails) IsSettling() bool {
	return s.DesiredCount != s.RunningCount || s.PendingCount != 0
}

// TaskDetails is one ECS task belonging to a service
type TaskDetails struct {
	ARN          string
	HealthStatus string
	CPU          string
	Memory       string
	LastStatus   string
	Containers   []ContainerDetails
}

// ID returns the last segment of the task ARN
func (t TaskDetails) ID() string {
	if t.ARN == "" {
		return UnknownValue
	}
	parts := strings.Split(t.ARN, "/")
	return parts[len(parts)-1]
}

// ContainerDetails is one container of a task
type ContainerDetails struct {
	Name         string
	Image        string
	LastStatus   string
	CPU          string
	Memory       string
	HealthStatus string
}

// StatusRunning is the ECS last status of a healthy task or container
const StatusRunning = "RUNNING"
