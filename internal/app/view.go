package app

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/dhth/ecscope/internal/components"
	"github.com/dhth/ecscope/internal/types"
)

// LoopStats are the program loop counters shown on the debug line
type LoopStats struct {
	Renders uint64
	Events  uint64
}

// View renders the whole dashboard. It never mutates m.
func View(m *Model, stats LoopStats) string {
	if m.tooSmall {
		return components.Panel{
			BorderColor: m.theme.Primary,
			Lines:       components.TooSmallLines(m.width, m.height),
			Center:      true,
		}.Render(components.Rect{Width: m.width, Height: m.height})
	}

	layout := components.NewLayout(m.width, m.height)
	status := m.statusBar(stats).View(m.theme, m.width)

	if m.activePane == types.PaneHelp {
		help := components.Panel{
			Title:       " help ",
			TitleStyle:  lipgloss.NewStyle().Bold(true).Foreground(m.theme.TitleFg).Background(m.theme.Message),
			BorderColor: m.theme.Message,
			Lines:       components.HelpLines(m.keys.HelpSections()),
			PadLeft:     2,
			PadTop:      1,
		}
		return lipgloss.JoinVertical(lipgloss.Left, help.Render(layout.Body()), status)
	}

	rows := []struct {
		list   func(components.Rect) string
		detail func(components.Rect) string
	}{
		{m.viewServicesList, m.viewServiceDetails},
		{m.viewTasksList, m.viewTaskDetails},
		{m.viewContainersList, m.viewContainerDetails},
	}

	out := make([]string, 0, len(rows)+1)
	for i, r := range rows {
		listRect, detailRect := layout.Row(i)
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, r.list(listRect), r.detail(detailRect)))
	}
	out = append(out, status)

	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func (m *Model) statusBar(stats LoopStats) components.StatusBar {
	sb := components.StatusBar{
		Profile:     m.profileName,
		AutoRefresh: m.autoRefresh,
		Marked:      m.numMarked,
		Message:     m.userMessage,
	}
	if m.debug {
		sb.Debug = &components.DebugInfo{
			Errors:     m.numErrors,
			LastPane:   m.lastActivePane,
			ActivePane: m.activePane,
			Renders:    stats.Renders,
			Events:     stats.Events,
			Width:      m.width,
			Height:     m.height,
		}
	}
	return sb
}

func (m *Model) redacted(value string) string {
	if m.redact {
		return components.Redacted
	}
	return value
}

func (m *Model) listPanel(pane types.Pane, title string, items []string, cursor int, placeholder string, r components.Rect) string {
	active := m.activePane == pane
	p := components.Panel{
		Title:       title,
		TitleStyle:  m.theme.PaneTitle(active),
		BorderColor: m.theme.BorderColor(active),
		PadTop:      1,
	}
	if items == nil {
		p.Lines = []string{placeholder}
		p.PadLeft = 1
		return p.Render(r)
	}
	p.Lines = components.List{
		Items:         items,
		Selected:      cursor,
		SelectedStyle: m.theme.SelectedItem(active),
	}.Lines(max(r.Height-3, 0))
	return p.Render(r)
}

func (m *Model) detailPanel(pane types.Pane, title string, fields []components.Field, r components.Rect) string {
	active := m.activePane == pane
	return components.Panel{
		Title:       title,
		TitleStyle:  m.theme.PaneTitle(active),
		BorderColor: m.theme.BorderColor(active),
		Lines:       components.DetailLines(fields, r.Width-3),
		PadLeft:     1,
		PadTop:      1,
	}.Render(r)
}

func serviceLabel(item serviceItem) string {
	keys := item.result.ClusterKeys()
	id := ""
	if len(keys) > 0 {
		id = truncate.String(keys[0], 5)
	}

	d, ok := item.details()
	if !ok {
		return fmt.Sprintf("%-6s  x %s", id, item.result.ServiceName())
	}

	mark := "  "
	if item.marked {
		mark = "* "
	}
	settling := "  "
	if d.IsSettling() {
		settling = "~ "
	}
	return fmt.Sprintf("%-6s%s%s%s", id, mark, settling, d.Name)
}

func statusSuffix(lastStatus string) string {
	if lastStatus != "" && lastStatus != types.StatusRunning && lastStatus != types.UnknownValue {
		return " ~"
	}
	return ""
}

func (m *Model) viewServicesList(r components.Rect) string {
	var items []string
	if len(m.services) > 0 {
		items = make([]string, len(m.services))
		for i, s := range m.services {
			items[i] = serviceLabel(s)
		}
	}
	return m.listPanel(types.PaneServicesList, " services ", items, m.serviceCursor, "services will appear here", r)
}

func (m *Model) viewServiceDetails(r components.Rect) string {
	item, _, ok := m.selectedService()
	if !ok {
		return m.detailPanel(types.PaneServiceDetails, " details ", nil, r)
	}

	switch res := item.result.(type) {
	case types.ServiceDetails:
		return m.detailPanel(types.PaneServiceDetails, " details ", []components.Field{
			{Label: "Name", Value: res.Name},
			{Label: "Cluster Keys", Value: types.KeysLabel(res.Keys)},
			{Label: "Cluster ARN", Value: m.redacted(res.ClusterARN)},
			{Label: "Status", Value: res.Status},
			{Label: "Desired count", Value: fmt.Sprint(res.DesiredCount)},
			{Label: "Running count", Value: fmt.Sprint(res.RunningCount)},
			{Label: "Pending count", Value: fmt.Sprint(res.PendingCount)},
		}, r)
	case types.ServiceError:
		return components.Panel{
			Title:       " error ",
			TitleStyle:  lipgloss.NewStyle().Bold(true).Foreground(m.theme.TitleFg).Background(m.theme.MessageError),
			BorderColor: m.theme.MessageError,
			Lines:       components.DetailLines([]components.Field{{Label: "Error", Value: res.Err}}, r.Width-3),
			PadLeft:     1,
			PadTop:      1,
		}.Render(r)
	default:
		return m.detailPanel(types.PaneServiceDetails, " details ", nil, r)
	}
}

func (m *Model) viewTasksList(r components.Rect) string {
	placeholder := "tasks will appear here"
	if svc, _, ok := m.selectedServiceDetails(); ok {
		if errText := m.taskErrors[svc.Key()]; errText != "" {
			placeholder = "couldn't fetch tasks: " + errText
		} else if m.tasks != nil && len(m.tasks) == 0 {
			placeholder = "no tasks running"
		}
	}

	var items []string
	if len(m.tasks) > 0 {
		items = make([]string, len(m.tasks))
		for i, t := range m.tasks {
			items[i] = t.ID() + statusSuffix(t.LastStatus)
		}
	}
	return m.listPanel(types.PaneTasksList, " tasks ", items, m.taskCursor, placeholder, r)
}

func (m *Model) viewTaskDetails(r components.Rect) string {
	task, ok := m.selectedTask()
	if !ok {
		return m.detailPanel(types.PaneTaskDetails, " details ", nil, r)
	}
	return m.detailPanel(types.PaneTaskDetails, " details ", []components.Field{
		{Label: "ARN", Value: m.redacted(task.ARN)},
		{Label: "Health status", Value: task.HealthStatus},
		{Label: "CPU", Value: task.CPU},
		{Label: "Memory", Value: task.Memory},
		{Label: "Last Status", Value: task.LastStatus},
	}, r)
}

func (m *Model) viewContainersList(r components.Rect) string {
	var items []string
	if len(m.containers) > 0 {
		items = make([]string, len(m.containers))
		for i, c := range m.containers {
			items[i] = c.Name + statusSuffix(c.LastStatus)
		}
	}
	return m.listPanel(types.PaneContainersList, " containers ", items, m.containerCursor, "containers will appear here", r)
}

func (m *Model) viewContainerDetails(r components.Rect) string {
	c, ok := m.selectedContainer()
	if !ok {
		return m.detailPanel(types.PaneContainerDetails, " details ", nil, r)
	}
	return m.detailPanel(types.PaneContainerDetails, " details ", []components.Field{
		{Label: "Image", Value: m.redacted(c.Image)},
		{Label: "Last Status", Value: c.LastStatus},
		{Label: "CPU", Value: c.CPU},
		{Label: "Memory", Value: c.Memory},
		{Label: "Health Status", Value: c.HealthStatus},
	}, r)
}
