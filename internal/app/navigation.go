package app

import "github.com/dhth/ecscope/internal/types"

// parentPane is where "go back" leads from each pane. The services list has
// no parent: going back from it quits.
var parentPane = map[types.Pane]types.Pane{
	types.PaneServiceDetails:   types.PaneServicesList,
	types.PaneTasksList:        types.PaneServicesList,
	types.PaneTaskDetails:      types.PaneTasksList,
	types.PaneContainersList:   types.PaneTasksList,
	types.PaneContainerDetails: types.PaneContainersList,
}

func (m *Model) goToPane(p types.Pane) {
	prev := m.activePane
	m.lastActivePane = &prev
	m.activePane = p
}

func (m *Model) goBackOrQuit() {
	prev := m.activePane
	switch m.activePane {
	case types.PaneServicesList:
		m.done = true
	case types.PaneHelp:
		m.activePane = types.PaneServicesList
		if m.lastActivePane != nil && *m.lastActivePane != types.PaneHelp {
			m.activePane = *m.lastActivePane
		}
	default:
		m.activePane = parentPane[m.activePane]
	}
	m.lastActivePane = &prev
}

// cursor returns the cursor and length of the active list pane
func (m *Model) cursor() (*int, int) {
	switch m.activePane {
	case types.PaneServicesList:
		return &m.serviceCursor, len(m.services)
	case types.PaneTasksList:
		return &m.taskCursor, len(m.tasks)
	case types.PaneContainersList:
		return &m.containerCursor, len(m.containers)
	default:
		return nil, 0
	}
}

func (m *Model) moveCursor(move func(cur, n int) int) {
	cur, n := m.cursor()
	if cur == nil || n == 0 {
		return
	}
	*cur = move(*cur, n)
}

func next(cur, n int) int {
	if cur < 0 {
		return 0
	}
	return min(cur+1, n-1)
}

func previous(cur, n int) int {
	if cur < 0 {
		return n - 1
	}
	return max(cur-1, 0)
}

func first(int, int) int { return 0 }

func last(_, n int) int { return n - 1 }
