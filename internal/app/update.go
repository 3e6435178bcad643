package app

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dhth/ecscope/internal/commands"
	"github.com/dhth/ecscope/internal/logging"
	"github.com/dhth/ecscope/internal/messages"
	"github.com/dhth/ecscope/internal/types"
)

// Update applies msg to m and returns the commands it asks for. It is the
// only function that mutates a Model.
func Update(m *Model, msg messages.Message) []commands.Command {
	selectedBefore, hadSelection := m.selectedIdentity()
	taskCursorBefore := m.taskCursor
	dataRefresh := false

	var cmds []commands.Command

	switch msg := msg.(type) {
	case messages.GoToNextListItem:
		m.moveCursor(next)
	case messages.GoToPreviousListItem:
		m.moveCursor(previous)
	case messages.GoToFirstListItem:
		m.moveCursor(first)
	case messages.GoToLastListItem:
		m.moveCursor(last)

	case messages.TerminalResize:
		m.resize(msg.Width, msg.Height)

	case messages.ClearUserMsg:
		if m.userMessage != nil && m.userMessage.OlderThan(ClearUserMessageInterval, m.now()) {
			m.userMessage = nil
		}

	case messages.GoToPane:
		m.goToPane(msg.Pane)

	case messages.ServicesFetched:
		cmds = append(cmds, m.appendServices(msg.Results)...)

	case messages.ServiceRefreshed:
		dataRefresh = m.applyRefresh(msg)

	case messages.TasksFetched:
		key := msg.Service.Key()
		delete(m.pendingTasks, key)
		if msg.Err != nil {
			m.numErrors++
			m.taskErrors[key] = messages.ErrorText(msg.Err)
			m.setError(fmt.Sprintf("couldn't fetch tasks for %s", msg.Service.Name))
			break
		}
		delete(m.taskErrors, key)
		m.taskCache[key] = msg.Tasks
		dataRefresh = msg.Refresh

	case messages.RefreshResultsForCurrentItem:
		cmds = append(cmds, m.refreshCurrentItem()...)

	case messages.RefreshResultsForMarkedServices:
		if m.activePane != types.PaneHelp {
			cmds = append(cmds, m.refreshMarked()...)
		}

	case messages.ToggleServiceRefresh:
		m.toggleMark()

	case messages.ToggleAutoRefresh:
		m.autoRefresh = !m.autoRefresh

	case messages.CopyVisibleIdentifier:
		if text, ok := m.visibleIdentifier(); ok {
			cmds = append(cmds, commands.CopyToClipboard{Text: text})
		}

	case messages.ClipboardCopied:
		if msg.Err != nil {
			m.setError(messages.ErrorText(msg.Err))
		} else {
			m.setInfo("copied to clipboard")
		}

	case messages.GoBackOrQuit:
		m.goBackOrQuit()

	case messages.QuitImmediately:
		m.done = true
	}

	selectedAfter, hasSelection := m.selectedIdentity()
	serviceChanged := hadSelection != hasSelection || selectedBefore != selectedAfter

	if dataRefresh || m.tasks == nil || serviceChanged {
		cmds = append(cmds, m.recomputeTasks(serviceChanged, cmds)...)
	} else if m.taskCursor != taskCursorBefore {
		m.recomputeContainers()
	}

	return cmds
}

func (m *Model) selectedIdentity() (serviceIdentity, bool) {
	item, _, ok := m.selectedService()
	if !ok {
		return serviceIdentity{}, false
	}
	return item.identity(), true
}

// appendServices merges results into the list: successes ordered by name,
// failures after them in arrival order. The cursor stays on the entry it
// was on.
func (m *Model) appendServices(results []types.ServiceResult) []commands.Command {
	var cmds []commands.Command

	var selected *serviceItem
	if item, _, ok := m.selectedService(); ok {
		selected = &item
	}

	for _, r := range results {
		m.services = append(m.services, serviceItem{result: r})
		d, ok := r.(types.ServiceDetails)
		if !ok {
			m.numErrors++
			continue
		}
		m.pendingTasks[d.Key()] = m.now()
		cmds = append(cmds, commands.FetchTasks{Service: d})
	}

	slices.SortStableFunc(m.services, func(a, b serviceItem) int {
		ad, aok := a.details()
		bd, bok := b.details()
		switch {
		case aok && bok:
			return types.CompareServices(ad, bd)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return 0
		}
	})

	m.serviceCursor = firstOrNone(len(m.services))
	if selected != nil {
		id := selected.identity()
		if i := slices.IndexFunc(m.services, func(s serviceItem) bool { return s.identity() == id }); i >= 0 {
			m.serviceCursor = i
		}
	}

	logging.Debug("services fetched", "count", len(results), "total", len(m.services))
	return cmds
}

// refreshTarget finds the list entry a refresh applies to: the entry at the
// index it was issued for if that is still the same service, otherwise the
// same service anywhere in the list.
func (m *Model) refreshTarget(msg messages.ServiceRefreshed) (int, bool) {
	matches := func(s serviceItem) bool {
		d, ok := s.details()
		return ok && d.SameService(msg.Previous)
	}
	if msg.Index >= 0 && msg.Index < len(m.services) && matches(m.services[msg.Index]) {
		return msg.Index, true
	}
	i := slices.IndexFunc(m.services, matches)
	return i, i >= 0
}

// applyRefresh reports whether the selected service's data changed
func (m *Model) applyRefresh(msg messages.ServiceRefreshed) bool {
	i, ok := m.refreshTarget(msg)
	if !ok {
		logging.Debug("refreshed service no longer listed", "service", msg.Previous.Name)
		return false
	}

	wasMarked := m.services[i].marked
	m.services[i] = serviceItem{result: msg.Result}

	if _, ok := msg.Result.(types.ServiceDetails); ok {
		m.services[i].marked = wasMarked
		m.evictTasks(msg.Previous)
		return i == m.serviceCursor
	}

	m.numErrors++
	if wasMarked {
		m.numMarked--
	}
	return false
}

// evictTasks forgets svc's tasks, including a fetch still in flight
func (m *Model) evictTasks(svc types.ServiceDetails) {
	m.dropCachedTasks(svc)
	delete(m.pendingTasks, svc.Key())
}

// dropCachedTasks purges svc's cached tasks and fetch error
func (m *Model) dropCachedTasks(svc types.ServiceDetails) {
	delete(m.taskCache, svc.Key())
	delete(m.taskErrors, svc.Key())
}

func (m *Model) refreshCurrentItem() []commands.Command {
	svc, i, ok := m.selectedServiceDetails()
	if !ok {
		return nil
	}

	switch m.activePane {
	case types.PaneServicesList, types.PaneServiceDetails:
		return []commands.Command{commands.RefreshService{Service: svc, Index: i}}
	case types.PaneTasksList, types.PaneTaskDetails, types.PaneContainersList, types.PaneContainerDetails:
		m.evictTasks(svc)
		m.pendingTasks[svc.Key()] = m.now()
		m.tasks = nil
		return []commands.Command{commands.FetchTasks{Service: svc, Refresh: true}}
	default:
		return nil
	}
}

func (m *Model) refreshMarked() []commands.Command {
	var cmds []commands.Command
	for i, item := range m.services {
		svc, ok := item.details()
		if !ok || (m.numMarked > 0 && !item.marked) {
			continue
		}
		m.dropCachedTasks(svc)
		cmds = append(cmds, commands.RefreshService{Service: svc, Index: i})
	}
	return cmds
}

func (m *Model) toggleMark() {
	if m.serviceCursor < 0 || m.serviceCursor >= len(m.services) {
		return
	}
	item := &m.services[m.serviceCursor]
	if _, ok := item.details(); !ok {
		m.setError("error results cannot be marked for refresh")
		return
	}
	item.marked = !item.marked
	if item.marked {
		m.numMarked++
	} else {
		m.numMarked--
	}
}

// visibleIdentifier is what the focused detail pane copies
func (m *Model) visibleIdentifier() (string, bool) {
	switch m.activePane {
	case types.PaneServiceDetails:
		if svc, _, ok := m.selectedServiceDetails(); ok {
			return svc.Name, true
		}
	case types.PaneTaskDetails:
		if task, ok := m.selectedTask(); ok {
			return task.ARN, true
		}
	case types.PaneContainerDetails:
		if c, ok := m.selectedContainer(); ok {
			return c.Image, true
		}
	}
	return "", false
}

// recomputeTasks shows the selected service's tasks from the cache, or
// fetches them when they are neither cached, awaited nor failed. issued
// holds the commands this update already asks for.
func (m *Model) recomputeTasks(selectionMoved bool, issued []commands.Command) []commands.Command {
	item, _, ok := m.selectedService()
	if !ok {
		return nil
	}

	svc, ok := item.details()
	if !ok {
		m.tasks = nil
		m.taskCursor = noSelection
		m.containers = nil
		m.containerCursor = noSelection
		return nil
	}

	var cmds []commands.Command
	key := svc.Key()
	if tasks, cached := m.taskCache[key]; cached {
		m.tasks = tasks
		m.taskCursor = firstOrNone(len(tasks))
	} else {
		if !m.awaitingTasks(key, selectionMoved, issued) && m.taskErrors[key] == "" {
			m.pendingTasks[key] = m.now()
			cmds = append(cmds, commands.FetchTasks{Service: svc})
		}
		m.tasks = nil
		m.taskCursor = noSelection
	}

	m.recomputeContainers()
	return cmds
}

// awaitingTasks reports whether a fetch for key is still worth waiting for.
// A reply can be lost, so selecting the service again or waiting longer than
// TaskReplyTimeout gives up on it.
func (m *Model) awaitingTasks(key types.ServiceKey, selectionMoved bool, issued []commands.Command) bool {
	requested := slices.ContainsFunc(issued, func(c commands.Command) bool {
		ft, ok := c.(commands.FetchTasks)
		return ok && ft.Service.Key() == key
	})
	if requested {
		return true
	}

	since, ok := m.pendingTasks[key]
	if !ok || selectionMoved {
		return false
	}
	return m.now().Sub(since) < TaskReplyTimeout
}

func (m *Model) recomputeContainers() {
	task, ok := m.selectedTask()
	if !ok {
		m.containers = nil
		m.containerCursor = noSelection
		return
	}
	m.containers = slices.SortedStableFunc(slices.Values(task.Containers), func(a, b types.ContainerDetails) int {
		return strings.Compare(a.Name, b.Name)
	})
	m.containerCursor = firstOrNone(len(m.containers))
}
