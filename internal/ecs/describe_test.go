package ecs

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsecs "github.com/aws/aws-sdk-go-v2/service/ecs"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhth/ecscope/internal/types"
)

func TestServicesForCluster_ChunksRequests(t *testing.T) {
	var names []string
	var svcs []ecstypes.Service
	for i := 0; i < 23; i++ {
		name := fmt.Sprintf("svc-%02d", i)
		names = append(names, name)
		svcs = append(svcs, service(name))
	}
	api := &fakeAPI{services: map[string][]ecstypes.Service{"cluster-a": svcs}}

	results := ServicesForCluster(context.Background(), api, cluster("cluster-a", types.EnvSource(), []string{"qa"}, names...))

	assert.Len(t, results, 23)
	assert.Len(t, api.described, 3, "23 services need three describe calls")
}

type failingDescribeAPI struct {
	fakeAPI
	failures []ecstypes.Failure
}

func (f *failingDescribeAPI) DescribeServices(_ context.Context, _ *awsecs.DescribeServicesInput, _ ...func(*awsecs.Options)) (*awsecs.DescribeServicesOutput, error) {
	return &awsecs.DescribeServicesOutput{Failures: f.failures}, nil
}

func TestServicesForCluster_APIFailuresBecomeErrors(t *testing.T) {
	api := &failingDescribeAPI{failures: []ecstypes.Failure{{
		Arn:    aws.String("arn:aws:ecs:eu-central-1:111111111111:service/cluster-a/svc-gone"),
		Reason: aws.String("MISSING"),
	}}}

	results := ServicesForCluster(context.Background(), api, cluster("cluster-a", types.EnvSource(), []string{"qa"}, "svc-gone"))

	require.Len(t, results, 1)
	svcErr, ok := results[0].(types.ServiceError)
	require.True(t, ok)
	assert.Equal(t, "svc-gone", svcErr.Name)
	assert.Equal(t, "MISSING", svcErr.Err)
	assert.Equal(t, []string{"qa"}, svcErr.Keys)
}

func TestRefreshService(t *testing.T) {
	api := &fakeAPI{
		services: map[string][]ecstypes.Service{"cluster-a": {service("web")}},
		errs:     map[string]error{"cluster-b": errors.New("boom")},
	}
	prev := types.ServiceDetails{Name: "web", ClusterARN: "cluster-a", Keys: []string{"qa"}, ConfigSource: types.EnvSource()}

	t.Run("success keeps identity", func(t *testing.T) {
		got := RefreshService(context.Background(), api, prev)
		details, ok := got.(types.ServiceDetails)
		require.True(t, ok)
		assert.True(t, details.SameService(prev))
		assert.Equal(t, int32(2), details.RunningCount)
	})

	t.Run("remote error", func(t *testing.T) {
		broken := prev
		broken.ClusterARN = "cluster-b"
		got := RefreshService(context.Background(), api, broken)
		svcErr, ok := got.(types.ServiceError)
		require.True(t, ok)
		assert.Equal(t, "web", svcErr.Name)
		assert.Contains(t, svcErr.Err, "boom")
	})

	t.Run("service gone", func(t *testing.T) {
		gone := prev
		gone.Name = "other"
		got := RefreshService(context.Background(), api, gone)
		_, ok := got.(types.ServiceError)
		assert.True(t, ok)
	})
}

func TestServiceTasks(t *testing.T) {
	svc := types.ServiceDetails{Name: "web", ClusterARN: "cluster-a"}

	t.Run("describes listed tasks", func(t *testing.T) {
		api := &fakeAPI{tasks: map[string][]string{"web": {"arn:task/cluster-a/t1", "arn:task/cluster-a/t2"}}}
		tasks, err := ServiceTasks(context.Background(), api, svc)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "t1", tasks[0].ID())
		assert.Equal(t, "RUNNING", tasks[0].LastStatus)
		assert.Equal(t, types.UnknownValue, tasks[0].CPU)
		require.Len(t, tasks[0].Containers, 1)
		assert.Equal(t, "app", tasks[0].Containers[0].Name)
		assert.Equal(t, types.UnknownValue, tasks[0].Containers[0].Image)
	})

	t.Run("no tasks skips describe", func(t *testing.T) {
		api := &fakeAPI{}
		tasks, err := ServiceTasks(context.Background(), api, svc)
		require.NoError(t, err)
		assert.Empty(t, tasks)
		assert.NotNil(t, tasks)
		assert.Zero(t, api.describeCnt)
	})

	t.Run("list error", func(t *testing.T) {
		api := &fakeAPI{errs: map[string]error{"cluster-a": errors.New("denied")}}
		_, err := ServiceTasks(context.Background(), api, svc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "couldn't list tasks for service web")
	})
}

func TestDummyAPI(t *testing.T) {
	clusters := []types.ClusterConfig{
		cluster("arn:aws:ecs:eu-central-1:111111111111:cluster/demo", types.EnvSource(), []string{"demo"}, "web", "missing-svc"),
	}
	registry := NewDummyRegistry(clusters)
	api, ok := registry.Lookup(types.EnvSource())
	require.True(t, ok)

	results := ServicesForCluster(context.Background(), api, clusters[0])
	require.Len(t, results, 2)
	web, ok := results[0].(types.ServiceDetails)
	require.True(t, ok)
	_, ok = results[1].(types.ServiceError)
	assert.True(t, ok)

	tasks, err := ServiceTasks(context.Background(), api, web)
	require.NoError(t, err)
	assert.NotEmpty(t, tasks)

	again, err := ServiceTasks(context.Background(), api, web)
	require.NoError(t, err)
	assert.Equal(t, tasks, again, "dummy data must be stable")
}
