package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhth/ecscope/internal/ecs"
	"github.com/dhth/ecscope/internal/messages"
	"github.com/dhth/ecscope/internal/types"
)

func testCluster() types.ClusterConfig {
	return types.ClusterConfig{
		Keys:         []string{"qa"},
		ARN:          "arn:aws:ecs:eu-central-1:111111111111:cluster/qa",
		Services:     []string{"web", "worker", "missing-svc"},
		ConfigSource: types.EnvSource(),
	}
}

func testService() types.ServiceDetails {
	c := testCluster()
	return types.ServiceDetails{
		Name:         "web",
		Status:       "ACTIVE",
		Keys:         c.Keys,
		ClusterARN:   c.ARN,
		ConfigSource: c.ConfigSource,
	}
}

func TestNewExecutor(t *testing.T) {
	e := NewExecutor(context.Background(), ecs.NewRegistry(nil))
	require.NotNil(t, e)
	assert.Equal(t, DefaultQueueSize, cap(e.out))
	assert.Equal(t, DefaultTimeout, e.timeout)

	e = NewExecutor(context.Background(), ecs.NewRegistry(nil), WithQueueSize(2), WithTimeout(time.Second))
	assert.Equal(t, 2, cap(e.out))
	assert.Equal(t, time.Second, e.timeout)
}

func TestExecutor_Run(t *testing.T) {
	cluster := testCluster()
	registry := ecs.NewDummyRegistry([]types.ClusterConfig{cluster})

	tests := []struct {
		name  string
		cmd   Command
		check func(t *testing.T, msg messages.Message)
	}{
		{
			name: "fetch services",
			cmd:  FetchServices{Cluster: cluster},
			check: func(t *testing.T, msg messages.Message) {
				fetched, ok := msg.(messages.ServicesFetched)
				require.True(t, ok)
				require.Len(t, fetched.Results, 3)

				var failures int
				for _, r := range fetched.Results {
					if _, ok := r.(types.ServiceError); ok {
						failures++
					}
				}
				assert.Equal(t, 1, failures)
			},
		},
		{
			name: "refresh service",
			cmd:  RefreshService{Service: testService(), Index: 4},
			check: func(t *testing.T, msg messages.Message) {
				refreshed, ok := msg.(messages.ServiceRefreshed)
				require.True(t, ok)
				assert.Equal(t, 4, refreshed.Index)
				assert.Equal(t, testService(), refreshed.Previous)
				details, ok := refreshed.Result.(types.ServiceDetails)
				require.True(t, ok)
				assert.True(t, details.SameService(testService()))
			},
		},
		{
			name: "fetch tasks",
			cmd:  FetchTasks{Service: testService(), Refresh: true},
			check: func(t *testing.T, msg messages.Message) {
				fetched, ok := msg.(messages.TasksFetched)
				require.True(t, ok)
				assert.NoError(t, fetched.Err)
				assert.True(t, fetched.Refresh)
				assert.NotEmpty(t, fetched.Tasks)
				for _, task := range fetched.Tasks {
					assert.Len(t, task.Containers, 2)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExecutor(context.Background(), registry)
			tt.check(t, e.Run(tt.cmd))
		})
	}
}

func TestExecutor_Run_MissingClient(t *testing.T) {
	e := NewExecutor(context.Background(), ecs.NewRegistry(nil))

	t.Run("fetch services", func(t *testing.T) {
		msg := e.Run(FetchServices{Cluster: testCluster()})
		fetched, ok := msg.(messages.ServicesFetched)
		require.True(t, ok)
		require.Len(t, fetched.Results, 3)
		for _, r := range fetched.Results {
			serr, ok := r.(types.ServiceError)
			require.True(t, ok)
			assert.Contains(t, serr.Err, "unexpected error")
			assert.Equal(t, []string{"qa"}, serr.Keys)
		}
	})

	t.Run("refresh service", func(t *testing.T) {
		msg := e.Run(RefreshService{Service: testService(), Index: 1})
		refreshed, ok := msg.(messages.ServiceRefreshed)
		require.True(t, ok)
		assert.IsType(t, types.ServiceError{}, refreshed.Result)
		assert.Equal(t, 1, refreshed.Index)
	})

	t.Run("fetch tasks", func(t *testing.T) {
		msg := e.Run(FetchTasks{Service: testService()})
		fetched, ok := msg.(messages.TasksFetched)
		require.True(t, ok)
		assert.ErrorIs(t, fetched.Err, errNoClient)
		assert.Nil(t, fetched.Tasks)
	})
}

func TestExecutor_Run_CopyToClipboard(t *testing.T) {
	tests := []struct {
		name    string
		copyErr error
	}{
		{name: "success"},
		{name: "failure", copyErr: errors.New("no clipboard utility")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var copied string
			e := NewExecutor(context.Background(), ecs.NewRegistry(nil), WithClipboard(func(s string) error {
				copied = s
				return tt.copyErr
			}))

			msg := e.Run(CopyToClipboard{Text: "arn:aws:ecs:task/abc"})
			result, ok := msg.(messages.ClipboardCopied)
			require.True(t, ok)
			assert.Equal(t, "arn:aws:ecs:task/abc", copied)
			assert.Equal(t, "arn:aws:ecs:task/abc", result.Text)
			assert.Equal(t, tt.copyErr, result.Err)
		})
	}
}

func TestExecutor_EmitDropsWhenFull(t *testing.T) {
	e := NewExecutor(context.Background(), ecs.NewRegistry(nil), WithQueueSize(2))

	assert.True(t, e.emit(messages.ClearUserMsg{}))
	assert.True(t, e.emit(messages.ClearUserMsg{}))
	assert.False(t, e.emit(messages.ToggleAutoRefresh{}))
	assert.False(t, e.emit(nil))

	assert.Len(t, e.Messages(), 2)
	assert.Equal(t, messages.ClearUserMsg{}, <-e.Messages())
}

func TestExecutor_Dispatch(t *testing.T) {
	cluster := testCluster()
	e := NewExecutor(context.Background(), ecs.NewDummyRegistry([]types.ClusterConfig{cluster}))

	e.Dispatch(FetchServices{Cluster: cluster}, FetchTasks{Service: testService()})

	got := map[string]bool{}
	for range 2 {
		select {
		case msg := <-e.Messages():
			got[messages.Name(msg)] = true
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for executor messages")
		}
	}
	assert.True(t, got["ServicesFetched"])
	assert.True(t, got["TasksFetched"])
}
