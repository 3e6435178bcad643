package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhth/ecscope/internal/commands"
	"github.com/dhth/ecscope/internal/messages"
	"github.com/dhth/ecscope/internal/types"
)

type fakeDispatcher struct {
	dispatched []commands.Command
	out        chan messages.Message
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{out: make(chan messages.Message, 10)}
}

func (f *fakeDispatcher) Dispatch(cmds ...commands.Command) {
	f.dispatched = append(f.dispatched, cmds...)
}

func (f *fakeDispatcher) Messages() <-chan messages.Message {
	return f.out
}

func testClusters() []types.ClusterConfig {
	return []types.ClusterConfig{
		{Keys: []string{"qa"}, ARN: testClusterARN, Services: []string{"web"}, ConfigSource: types.EnvSource()},
		{Keys: []string{"prod"}, ARN: "arn:aws:ecs:eu-central-1:222222222222:cluster/prod", Services: []string{"web"}, ConfigSource: types.ProfileSource("prod")},
	}
}

func TestDashboard_Init(t *testing.T) {
	d := newFakeDispatcher()
	dash := NewDashboard(NewModel(Options{Clusters: testClusters(), Width: 120, Height: 40}), d)

	cmd := dash.Init()

	assert.NotNil(t, cmd)
	require.Len(t, d.dispatched, 2)
	assert.Equal(t, commands.FetchServices{Cluster: testClusters()[0]}, d.dispatched[0])
	assert.Equal(t, commands.FetchServices{Cluster: testClusters()[1]}, d.dispatched[1])
}

func TestDashboard_ListenDeliversExecutorResults(t *testing.T) {
	d := newFakeDispatcher()
	dash := NewDashboard(newTestModel(), d)

	d.out <- messages.ServicesFetched{Results: []types.ServiceResult{svc("web", 2)}}
	msg := dash.listen()()

	_, cmd := dash.Update(msg)

	assert.NotNil(t, cmd, "listener is re-armed")
	assert.Len(t, dash.Model().services, 1)
	assert.Equal(t, []string{"web"}, fetchTasksFor(d.dispatched))
}

func TestDashboard_KeysAndResize(t *testing.T) {
	d := newFakeDispatcher()
	dash := NewDashboard(newTestModel(), d)

	dash.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	dash.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})

	assert.Equal(t, 100, dash.Model().width)
	assert.Equal(t, types.PaneTasksList, dash.Model().ActivePane())
	assert.Equal(t, uint64(2), dash.stats.Events)
}

func TestDashboard_Quit(t *testing.T) {
	dash := NewDashboard(newTestModel(), newFakeDispatcher())

	_, cmd := dash.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestDashboard_Ticks(t *testing.T) {
	t.Run("auto refresh off", func(t *testing.T) {
		d := newFakeDispatcher()
		dash := NewDashboard(withServices(t, svc("web", 2)), d)

		_, cmd := dash.Update(refreshTickMsg{})

		assert.NotNil(t, cmd, "timer is re-armed")
		assert.Empty(t, d.dispatched)
	})

	t.Run("auto refresh on", func(t *testing.T) {
		d := newFakeDispatcher()
		m := withServices(t, svc("web", 2))
		Update(m, messages.ToggleAutoRefresh{})
		dash := NewDashboard(m, d)

		dash.Update(refreshTickMsg{})

		require.Len(t, d.dispatched, 1)
		assert.IsType(t, commands.RefreshService{}, d.dispatched[0])
	})

	t.Run("clear tick", func(t *testing.T) {
		dash := NewDashboard(newTestModel(), newFakeDispatcher())
		_, cmd := dash.Update(clearTickMsg{})
		assert.NotNil(t, cmd)
	})

	t.Run("clear tick fetches tasks whose reply was lost", func(t *testing.T) {
		now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		m := NewModel(Options{Width: 120, Height: 40, Clock: func() time.Time { return now }})
		Update(m, messages.ServicesFetched{Results: []types.ServiceResult{svc("web", 2)}})
		d := newFakeDispatcher()
		dash := NewDashboard(m, d)

		now = now.Add(TaskReplyTimeout)
		dash.Update(clearTickMsg{})

		assert.Equal(t, []string{"web"}, fetchTasksFor(d.dispatched))
	})
}

func TestDashboard_ViewCountsRenders(t *testing.T) {
	dash := NewDashboard(newTestModel(), newFakeDispatcher())

	dash.View()
	dash.View()

	assert.Equal(t, uint64(2), dash.stats.Renders)
}
