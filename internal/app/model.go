package app

import (
	"time"

	"github.com/dhth/ecscope/internal/commands"
	"github.com/dhth/ecscope/internal/components"
	"github.com/dhth/ecscope/internal/keyboard"
	"github.com/dhth/ecscope/internal/types"
	"github.com/dhth/ecscope/internal/ui"
)

const (
	// ClearUserMessageInterval is how often stale user messages are cleared,
	// and how old a message must be to go
	ClearUserMessageInterval = 10 * time.Second
	// AutoRefreshInterval is how often marked services are refreshed while
	// auto refresh is on
	AutoRefreshInterval = 10 * time.Second
	// TaskReplyTimeout is how long a task fetch may go unanswered before it
	// is issued again; the executor drops replies when its queue is full
	TaskReplyTimeout = commands.DefaultTimeout
)

// noSelection marks an empty cursor
const noSelection = -1

// Options are the values the dashboard needs from its caller
type Options struct {
	ProfileName string
	Clusters    []types.ClusterConfig
	Width       int
	Height      int
	Debug       bool
	Redact      bool
	// Clock defaults to time.Now
	Clock func() time.Time
}

type serviceItem struct {
	result types.ServiceResult
	marked bool
}

func (s serviceItem) details() (types.ServiceDetails, bool) {
	d, ok := s.result.(types.ServiceDetails)
	return d, ok
}

// serviceIdentity tells list entries apart independently of their counts
type serviceIdentity struct {
	name   string
	keys   string
	arn    string
	source types.ConfigSource
	failed bool
}

func (s serviceItem) identity() serviceIdentity {
	switch r := s.result.(type) {
	case types.ServiceDetails:
		return serviceIdentity{name: r.Name, keys: types.KeysLabel(r.Keys), arn: r.ClusterARN, source: r.ConfigSource}
	default:
		return serviceIdentity{name: r.ServiceName(), keys: types.KeysLabel(r.ClusterKeys()), failed: true}
	}
}

// Model is the whole dashboard state. Only Update mutates it.
type Model struct {
	profileName string
	clusters    []types.ClusterConfig

	activePane     types.Pane
	lastActivePane *types.Pane
	done           bool

	services        []serviceItem
	serviceCursor   int
	tasks           []types.TaskDetails // nil until the selected service's tasks are known
	taskCursor      int
	containers      []types.ContainerDetails
	containerCursor int

	taskCache    map[types.ServiceKey][]types.TaskDetails
	taskErrors   map[types.ServiceKey]string
	pendingTasks map[types.ServiceKey]time.Time // when each in-flight fetch was issued

	numMarked   int
	autoRefresh bool
	userMessage *types.UserMessage

	width    int
	height   int
	tooSmall bool

	debug     bool
	redact    bool
	numErrors int

	now   func() time.Time
	keys  *keyboard.Keys
	theme *ui.Theme
}

// NewModel creates a dashboard focused on the services list
func NewModel(opts Options) *Model {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	m := &Model{
		profileName:     opts.ProfileName,
		clusters:        opts.Clusters,
		activePane:      types.PaneServicesList,
		serviceCursor:   noSelection,
		taskCursor:      noSelection,
		containerCursor: noSelection,
		taskCache:       make(map[types.ServiceKey][]types.TaskDetails),
		taskErrors:      make(map[types.ServiceKey]string),
		pendingTasks:    make(map[types.ServiceKey]time.Time),
		debug:           opts.Debug,
		redact:          opts.Redact,
		now:             clock,
		keys:            keyboard.GetKeys(),
		theme:           ui.ThemeGruvbox(),
	}
	m.resize(opts.Width, opts.Height)
	return m
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.tooSmall = components.NewLayout(width, height).TooSmall()
}

// ActivePane returns the focused pane
func (m *Model) ActivePane() types.Pane { return m.activePane }

// Done reports whether the dashboard should exit
func (m *Model) Done() bool { return m.done }

// TooSmall reports whether the terminal is below the minimum size
func (m *Model) TooSmall() bool { return m.tooSmall }

// NumMarked returns the number of services marked for refresh
func (m *Model) NumMarked() int { return m.numMarked }

// AutoRefresh reports whether auto refresh is on
func (m *Model) AutoRefresh() bool { return m.autoRefresh }

// UserMessage returns the message shown in the status line, if any
func (m *Model) UserMessage() *types.UserMessage { return m.userMessage }

func (m *Model) selectedService() (serviceItem, int, bool) {
	if m.serviceCursor < 0 || m.serviceCursor >= len(m.services) {
		return serviceItem{}, noSelection, false
	}
	return m.services[m.serviceCursor], m.serviceCursor, true
}

func (m *Model) selectedServiceDetails() (types.ServiceDetails, int, bool) {
	item, i, ok := m.selectedService()
	if !ok {
		return types.ServiceDetails{}, noSelection, false
	}
	d, ok := item.details()
	return d, i, ok
}

func (m *Model) selectedTask() (types.TaskDetails, bool) {
	if m.taskCursor < 0 || m.taskCursor >= len(m.tasks) {
		return types.TaskDetails{}, false
	}
	return m.tasks[m.taskCursor], true
}

func (m *Model) selectedContainer() (types.ContainerDetails, bool) {
	if m.containerCursor < 0 || m.containerCursor >= len(m.containers) {
		return types.ContainerDetails{}, false
	}
	return m.containers[m.containerCursor], true
}

func (m *Model) setInfo(text string) {
	m.userMessage = types.InfoMsg(text, m.now())
}

func (m *Model) setError(text string) {
	m.userMessage = types.ErrorMsg(text, m.now())
}

func firstOrNone(n int) int {
	if n == 0 {
		return noSelection
	}
	return 0
}
