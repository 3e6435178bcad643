package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dhth/ecscope/internal/commands"
	"github.com/dhth/ecscope/internal/logging"
	"github.com/dhth/ecscope/internal/messages"
)

// Dispatcher runs commands in the background and delivers their results
type Dispatcher interface {
	Dispatch(cmds ...commands.Command)
	Messages() <-chan messages.Message
}

// Dashboard adapts the reducer to a Bubble Tea program. Terminal events,
// executor results and timers all end in one Update call on the program's
// loop.
type Dashboard struct {
	model    *Model
	executor Dispatcher
	stats    LoopStats
}

type executorMsg struct{ msg messages.Message }
type clearTickMsg struct{}
type refreshTickMsg struct{}

// NewDashboard wires model to executor
func NewDashboard(model *Model, executor Dispatcher) *Dashboard {
	return &Dashboard{model: model, executor: executor}
}

// Model returns the dashboard state
func (d *Dashboard) Model() *Model {
	return d.model
}

func (d *Dashboard) Init() tea.Cmd {
	initial := make([]commands.Command, 0, len(d.model.clusters))
	for _, c := range d.model.clusters {
		initial = append(initial, commands.FetchServices{Cluster: c})
	}
	d.executor.Dispatch(initial...)

	return tea.Batch(d.listen(), clearTick(), refreshTick())
}

// listen waits for the next executor result. It is re-armed after every
// result so exactly one listener is pending at a time.
func (d *Dashboard) listen() tea.Cmd {
	ch := d.executor.Messages()
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return executorMsg{msg: msg}
	}
}

func clearTick() tea.Cmd {
	return tea.Tick(ClearUserMessageInterval, func(time.Time) tea.Msg { return clearTickMsg{} })
}

func refreshTick() tea.Cmd {
	return tea.Tick(AutoRefreshInterval, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var next tea.Cmd
	var in messages.Message

	switch msg := msg.(type) {
	case executorMsg:
		in = msg.msg
		next = d.listen()
	case clearTickMsg:
		// also lets the reducer give up on task fetches whose reply was lost
		in = messages.ClearUserMsg{}
		next = clearTick()
	case refreshTickMsg:
		if d.model.autoRefresh {
			in = messages.RefreshResultsForMarkedServices{}
		}
		next = refreshTick()
	case tea.KeyMsg, tea.WindowSizeMsg:
		d.stats.Events++
		in = TranslateEvent(d.model, msg)
	}

	if in == nil {
		return d, next
	}

	logging.Debug("update", "message", messages.Name(in), "pane", d.model.activePane.String())
	cmds := Update(d.model, in)
	if d.model.done {
		return d, tea.Quit
	}
	d.executor.Dispatch(cmds...)

	return d, next
}

func (d *Dashboard) View() string {
	d.stats.Renders++
	return View(d.model, d.stats)
}
