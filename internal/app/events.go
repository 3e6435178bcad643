package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dhth/ecscope/internal/messages"
	"github.com/dhth/ecscope/internal/types"
)

// paneMoves are the panes reachable from a pane with the movement keys
type paneMoves struct {
	detail    types.Pane // right arrow from a list, left arrow from a detail pane
	stackDown types.Pane
	stackUp   types.Pane
	nextList  types.Pane
	prevList  types.Pane
}

var moves = map[types.Pane]paneMoves{
	types.PaneServicesList: {
		detail: types.PaneServiceDetails, stackDown: types.PaneTasksList, stackUp: types.PaneContainersList,
		nextList: types.PaneTasksList, prevList: types.PaneContainersList,
	},
	types.PaneServiceDetails: {
		detail: types.PaneServicesList, stackDown: types.PaneTaskDetails, stackUp: types.PaneContainerDetails,
		nextList: types.PaneTasksList, prevList: types.PaneContainersList,
	},
	types.PaneTasksList: {
		detail: types.PaneTaskDetails, stackDown: types.PaneContainersList, stackUp: types.PaneServicesList,
		nextList: types.PaneContainersList, prevList: types.PaneServicesList,
	},
	types.PaneTaskDetails: {
		detail: types.PaneTasksList, stackDown: types.PaneContainerDetails, stackUp: types.PaneServiceDetails,
		nextList: types.PaneContainersList, prevList: types.PaneServicesList,
	},
	types.PaneContainersList: {
		detail: types.PaneContainerDetails, stackDown: types.PaneServicesList, stackUp: types.PaneTasksList,
		nextList: types.PaneServicesList, prevList: types.PaneTasksList,
	},
	types.PaneContainerDetails: {
		detail: types.PaneContainersList, stackDown: types.PaneServiceDetails, stackUp: types.PaneTaskDetails,
		nextList: types.PaneServicesList, prevList: types.PaneTasksList,
	},
}

// TranslateEvent maps a terminal event to a dashboard message. It returns
// nil for events the dashboard ignores in its current state.
func TranslateEvent(m *Model, msg tea.Msg) messages.Message {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return messages.TerminalResize{Width: msg.Width, Height: msg.Height}
	case tea.KeyMsg:
		return m.translateKey(msg)
	default:
		return nil
	}
}

func (m *Model) translateKey(msg tea.KeyMsg) messages.Message {
	k := m.keys

	if key.Matches(msg, k.Quit) {
		return messages.QuitImmediately{}
	}

	if m.tooSmall {
		if key.Matches(msg, k.Back) {
			return messages.GoBackOrQuit{}
		}
		return nil
	}

	if m.activePane == types.PaneHelp {
		if key.Matches(msg, k.Back, k.Help) {
			return messages.GoBackOrQuit{}
		}
		return nil
	}

	mv := moves[m.activePane]
	isList := m.activePane.IsList()

	goTo := func(p types.Pane) messages.Message {
		if p == m.activePane {
			return nil
		}
		return messages.GoToPane{Pane: p}
	}

	switch {
	case key.Matches(msg, k.Back):
		return messages.GoBackOrQuit{}
	case key.Matches(msg, k.Help):
		return messages.GoToPane{Pane: types.PaneHelp}

	case key.Matches(msg, k.ServicesList):
		return goTo(types.PaneServicesList)
	case key.Matches(msg, k.TasksList):
		return goTo(types.PaneTasksList)
	case key.Matches(msg, k.ContainersList):
		return goTo(types.PaneContainersList)
	case key.Matches(msg, k.ContainerDetails):
		return goTo(types.PaneContainerDetails)

	case key.Matches(msg, k.NextList):
		return goTo(mv.nextList)
	case key.Matches(msg, k.PrevList):
		return goTo(mv.prevList)
	case key.Matches(msg, k.ToggleDetails):
		return goTo(mv.detail)
	case key.Matches(msg, k.Enter) && isList:
		return goTo(mv.detail)
	case key.Matches(msg, k.Leave) && !isList:
		return goTo(mv.detail)
	case key.Matches(msg, k.StackDown):
		return goTo(mv.stackDown)
	case key.Matches(msg, k.StackUp):
		return goTo(mv.stackUp)

	case key.Matches(msg, k.RefreshMarked):
		return messages.RefreshResultsForMarkedServices{}
	case key.Matches(msg, k.Refresh):
		return messages.RefreshResultsForCurrentItem{}
	}

	if isList {
		switch {
		case key.Matches(msg, k.Down):
			return messages.GoToNextListItem{}
		case key.Matches(msg, k.Up):
			return messages.GoToPreviousListItem{}
		case key.Matches(msg, k.JumpTop):
			return messages.GoToFirstListItem{}
		case key.Matches(msg, k.JumpBottom):
			return messages.GoToLastListItem{}
		}
	} else if key.Matches(msg, k.CopyIdentifier) {
		return messages.CopyVisibleIdentifier{}
	}

	if m.activePane == types.PaneServicesList {
		switch {
		case key.Matches(msg, k.Mark):
			return messages.ToggleServiceRefresh{}
		case key.Matches(msg, k.AutoRefresh):
			return messages.ToggleAutoRefresh{}
		}
	}

	return nil
}
