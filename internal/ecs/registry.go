// Package ecs talks to the Amazon ECS API. It owns the client registry, the
// bounded fetcher used by the batch path, and the single-cluster helpers the
// dashboard's command executor calls.
package ecs

import (
	"context"
	"errors"

	awsecs "github.com/aws/aws-sdk-go-v2/service/ecs"

	"github.com/dhth/ecscope/internal/types"
)

// ErrMissingClient means a cluster references a credential source with no
// client in the registry. It is a contract violation, not a remote failure.
var ErrMissingClient = errors.New("client registry did not have an entry for cluster's config source")

// API is the subset of the ECS client ecscope calls
type API interface {
	DescribeServices(ctx context.Context, params *awsecs.DescribeServicesInput, optFns ...func(*awsecs.Options)) (*awsecs.DescribeServicesOutput, error)
	ListTasks(ctx context.Context, params *awsecs.ListTasksInput, optFns ...func(*awsecs.Options)) (*awsecs.ListTasksOutput, error)
	DescribeTasks(ctx context.Context, params *awsecs.DescribeTasksInput, optFns ...func(*awsecs.Options)) (*awsecs.DescribeTasksOutput, error)
}

// Registry maps credential sources to ready clients. It is built once and
// only ever read afterwards, so it is safe to share between goroutines.
type Registry struct {
	clients map[types.ConfigSource]API
}

// NewRegistry copies clients into a new registry
func NewRegistry(clients map[types.ConfigSource]API) Registry {
	m := make(map[types.ConfigSource]API, len(clients))
	for k, v := range clients {
		m[k] = v
	}
	return Registry{clients: m}
}

// Lookup returns the client for source
func (r Registry) Lookup(source types.ConfigSource) (API, bool) {
	c, ok := r.clients[source]
	return c, ok
}

// Len returns the number of clients
func (r Registry) Len() int {
	return len(r.clients)
}
