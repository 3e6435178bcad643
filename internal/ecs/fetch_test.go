package ecs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsecs "github.com/aws/aws-sdk-go-v2/service/ecs"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhth/ecscope/internal/types"
)

// fakeAPI serves canned responses keyed by cluster ARN and tracks how many
// DescribeServices calls are in flight
type fakeAPI struct {
	services map[string][]ecstypes.Service
	errs     map[string]error
	tasks    map[string][]string
	delay    time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	mu          sync.Mutex
	described   []string
	describeCnt int
}

func (f *fakeAPI) DescribeServices(ctx context.Context, params *awsecs.DescribeServicesInput, _ ...func(*awsecs.Options)) (*awsecs.DescribeServicesOutput, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		cur := f.maxInFlight.Load()
		if n <= cur || f.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}

	cluster := aws.ToString(params.Cluster)
	f.mu.Lock()
	f.described = append(f.described, cluster)
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	if err := f.errs[cluster]; err != nil {
		return nil, err
	}

	out := &awsecs.DescribeServicesOutput{}
	wanted := make(map[string]bool, len(params.Services))
	for _, s := range params.Services {
		wanted[s] = true
	}
	for _, s := range f.services[cluster] {
		if wanted[aws.ToString(s.ServiceName)] {
			out.Services = append(out.Services, s)
		}
	}
	return out, nil
}

func (f *fakeAPI) ListTasks(_ context.Context, params *awsecs.ListTasksInput, _ ...func(*awsecs.Options)) (*awsecs.ListTasksOutput, error) {
	if err := f.errs[aws.ToString(params.Cluster)]; err != nil {
		return nil, err
	}
	return &awsecs.ListTasksOutput{TaskArns: f.tasks[aws.ToString(params.ServiceName)]}, nil
}

func (f *fakeAPI) DescribeTasks(_ context.Context, params *awsecs.DescribeTasksInput, _ ...func(*awsecs.Options)) (*awsecs.DescribeTasksOutput, error) {
	f.mu.Lock()
	f.describeCnt++
	f.mu.Unlock()

	out := &awsecs.DescribeTasksOutput{}
	for _, arn := range params.Tasks {
		out.Tasks = append(out.Tasks, ecstypes.Task{
			TaskArn:    aws.String(arn),
			LastStatus: aws.String("RUNNING"),
			Containers: []ecstypes.Container{{Name: aws.String("app")}},
		})
	}
	return out, nil
}

func service(name string, deployments ...ecstypes.Deployment) ecstypes.Service {
	return ecstypes.Service{
		ServiceName:  aws.String(name),
		Status:       aws.String("ACTIVE"),
		DesiredCount: 2,
		RunningCount: 2,
		Deployments:  deployments,
	}
}

func deployment(id, status string, running, desired, failed int32) ecstypes.Deployment {
	return ecstypes.Deployment{
		Id:           aws.String(id),
		Status:       aws.String(status),
		RunningCount: running,
		DesiredCount: desired,
		FailedTasks:  failed,
	}
}

func cluster(arn string, source types.ConfigSource, keys []string, services ...string) types.ClusterConfig {
	return types.ClusterConfig{Keys: keys, ARN: arn, Services: services, ConfigSource: source}
}

func TestGetDeployments_StateFilter(t *testing.T) {
	api := &fakeAPI{
		services: map[string][]ecstypes.Service{
			"cluster-a": {
				service("svc-a",
					deployment("d-1", "PRIMARY", 2, 2, 0),
					deployment("d-2", "ACTIVE", 1, 2, 0),
				),
				service("svc-b"),
			},
		},
	}
	clusters := []types.ClusterConfig{cluster("cluster-a", types.EnvSource(), []string{"qa"}, "svc-a", "svc-b")}
	registry := NewRegistry(map[types.ConfigSource]API{types.EnvSource(): api})

	finished := types.DeploymentFinished
	inProgress := types.DeploymentInProgress

	tests := []struct {
		name    string
		state   *types.DeploymentState
		wantIDs []string
	}{
		{name: "finished", state: &finished, wantIDs: []string{"d-1"}},
		{name: "in-progress", state: &inProgress, wantIDs: []string{"d-2"}},
		{name: "no filter", state: nil, wantIDs: []string{"d-1", "d-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := GetDeployments(context.Background(), clusters, registry, tt.state)
			require.NoError(t, err)
			assert.Empty(t, result.Errors)

			var ids []string
			for _, d := range result.Deployments {
				ids = append(ids, d.DeploymentID)
			}
			assert.ElementsMatch(t, tt.wantIDs, ids)
		})
	}
}

func TestGetDeployments_QueryErrorBecomesPerServiceFailures(t *testing.T) {
	api := &fakeAPI{
		services: map[string][]ecstypes.Service{
			"cluster-ok": {service("svc-ok", deployment("d-1", "PRIMARY", 1, 1, 0))},
		},
		errs: map[string]error{"cluster-bad": errors.New("AccessDeniedException")},
	}
	clusters := []types.ClusterConfig{
		cluster("cluster-bad", types.EnvSource(), []string{"qa"}, "svc-x", "svc-y", "svc-z"),
		cluster("cluster-ok", types.EnvSource(), []string{"qa"}, "svc-ok"),
	}
	registry := NewRegistry(map[types.ConfigSource]API{types.EnvSource(): api})

	result, err := GetDeployments(context.Background(), clusters, registry, nil)
	require.NoError(t, err)

	require.Len(t, result.Errors, 3)
	for _, e := range result.Errors {
		assert.Contains(t, e.Err, "AccessDeniedException")
		assert.Equal(t, "cluster-bad", e.ClusterARN)
	}
	assert.Equal(t, "svc-x", result.Errors[0].ServiceName)
	assert.Equal(t, "svc-z", result.Errors[2].ServiceName)
	require.Len(t, result.Deployments, 1)
}

func TestGetDeployments_MissingClientFailsWholeBatch(t *testing.T) {
	api := &fakeAPI{}
	clusters := []types.ClusterConfig{
		cluster("cluster-a", types.EnvSource(), []string{"qa"}, "svc-a"),
		cluster("cluster-b", types.ProfileSource("unknown"), []string{"qa"}, "svc-b"),
		cluster("cluster-c", types.EnvSource(), []string{"qa"}, "svc-c"),
	}
	registry := NewRegistry(map[types.ConfigSource]API{types.EnvSource(): api})

	_, err := GetDeployments(context.Background(), clusters, registry, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingClient)
	assert.Empty(t, api.described, "no cluster should have been queried")
}

func TestGetDeployments_BoundedConcurrency(t *testing.T) {
	api := &fakeAPI{delay: 20 * time.Millisecond}
	var clusters []types.ClusterConfig
	for i := 0; i < 60; i++ {
		clusters = append(clusters, cluster(fmt.Sprintf("cluster-%02d", i), types.EnvSource(), []string{"qa"}, "svc"))
	}
	registry := NewRegistry(map[types.ConfigSource]API{types.EnvSource(): api})

	_, err := GetDeployments(context.Background(), clusters, registry, nil)
	require.NoError(t, err)

	assert.LessOrEqual(t, api.maxInFlight.Load(), int32(MaxConcurrentFetches))
	assert.Greater(t, api.maxInFlight.Load(), int32(1), "clusters should be fetched in parallel")
	assert.Len(t, api.described, 60)
}

func TestGetDeployments_SortedByServiceAndKeys(t *testing.T) {
	api := &fakeAPI{
		services: map[string][]ecstypes.Service{
			"cluster-qa":   {service("zeta", deployment("z", "PRIMARY", 1, 1, 0)), service("alpha", deployment("a-qa", "PRIMARY", 1, 1, 0))},
			"cluster-dev":  {service("alpha", deployment("a-dev", "PRIMARY", 1, 1, 0))},
			"cluster-prod": {service("mid", deployment("m", "PRIMARY", 1, 1, 0))},
		},
	}
	clusters := []types.ClusterConfig{
		cluster("cluster-qa", types.EnvSource(), []string{"qa"}, "zeta", "alpha"),
		cluster("cluster-prod", types.EnvSource(), []string{"prod"}, "mid"),
		cluster("cluster-dev", types.EnvSource(), []string{"dev"}, "alpha"),
	}
	registry := NewRegistry(map[types.ConfigSource]API{types.EnvSource(): api})

	for run := 0; run < 3; run++ {
		result, err := GetDeployments(context.Background(), clusters, registry, nil)
		require.NoError(t, err)

		var ids []string
		for _, d := range result.Deployments {
			ids = append(ids, d.DeploymentID)
		}
		assert.Equal(t, []string{"a-dev", "a-qa", "m", "z"}, ids)
	}
}

func TestGetDeployments_CancelledContext(t *testing.T) {
	api := &fakeAPI{}
	clusters := []types.ClusterConfig{cluster("cluster-a", types.EnvSource(), []string{"qa"}, "svc")}
	registry := NewRegistry(map[types.ConfigSource]API{types.EnvSource(): api})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := GetDeployments(ctx, clusters, registry, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetServices(t *testing.T) {
	api := &fakeAPI{
		services: map[string][]ecstypes.Service{
			"cluster-a": {service("web"), service("api")},
		},
		errs: map[string]error{"cluster-b": errors.New("throttled")},
	}
	clusters := []types.ClusterConfig{
		cluster("cluster-a", types.EnvSource(), []string{"qa"}, "web", "api"),
		cluster("cluster-b", types.EnvSource(), []string{"prod"}, "billing"),
	}
	registry := NewRegistry(map[types.ConfigSource]API{types.EnvSource(): api})

	result, err := GetServices(context.Background(), clusters, registry)
	require.NoError(t, err)

	require.Len(t, result.Services, 2)
	assert.Equal(t, "api", result.Services[0].Name)
	assert.Equal(t, "web", result.Services[1].Name)
	assert.Equal(t, "cluster-a", result.Services[0].ClusterARN)
	assert.Equal(t, types.EnvSource(), result.Services[0].ConfigSource)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "billing", result.Errors[0].Name)
	assert.Contains(t, result.Errors[0].Err, "throttled")
}

func TestRegistry_IsACopy(t *testing.T) {
	clients := map[types.ConfigSource]API{types.EnvSource(): &fakeAPI{}}
	registry := NewRegistry(clients)
	delete(clients, types.EnvSource())

	_, ok := registry.Lookup(types.EnvSource())
	assert.True(t, ok)
	assert.Equal(t, 1, registry.Len())
}
