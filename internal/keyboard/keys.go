package keyboard

import "github.com/charmbracelet/bubbles/key"

// Keys holds every key binding of the dashboard
type Keys struct {
	// Panes
	ServicesList     key.Binding
	TasksList        key.Binding
	ContainersList   key.Binding
	ContainerDetails key.Binding
	NextList         key.Binding
	PrevList         key.Binding
	ToggleDetails    key.Binding // list <-> detail
	Enter            key.Binding // list -> detail
	Leave            key.Binding // detail -> list
	StackDown        key.Binding
	StackUp          key.Binding

	// Lists
	Down       key.Binding
	Up         key.Binding
	JumpTop    key.Binding
	JumpBottom key.Binding

	// Data
	Mark           key.Binding
	AutoRefresh    key.Binding
	Refresh        key.Binding
	RefreshMarked  key.Binding
	CopyIdentifier key.Binding

	// Global
	Help key.Binding
	Back key.Binding
	Quit key.Binding
}

// Default returns the default key bindings
func Default() *Keys {
	return &Keys{
		ServicesList:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "go to services list")),
		TasksList:        key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "go to tasks list")),
		ContainersList:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "go to containers list")),
		ContainerDetails: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "go to container details")),
		NextList:         key.NewBinding(key.WithKeys("tab"), key.WithHelp("<tab>", "go to next list")),
		PrevList:         key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("<s-tab>", "go to previous list")),
		ToggleDetails:    key.NewBinding(key.WithKeys("L", "H"), key.WithHelp("L/H", "switch between list and details")),
		Enter:            key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "show details")),
		Leave:            key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "back to list")),
		StackDown:        key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "go to pane below")),
		StackUp:          key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "go to pane above")),

		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "select next item")),
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "select previous item")),
		JumpTop:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "select first item")),
		JumpBottom: key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "select last item")),

		Mark:           key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mark service for refresh")),
		AutoRefresh:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "toggle auto refresh")),
		Refresh:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh current item")),
		RefreshMarked:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("<c-r>", "refresh marked services (all if none marked)")),
		CopyIdentifier: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy identifier in details pane")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "show/hide help")),
		Back: key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("<esc>/q", "go back/quit")),
		Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("<c-c>", "quit immediately")),
	}
}

// GetKeys returns the current keyboard configuration
func GetKeys() *Keys {
	return Default()
}

// Section is a titled group of bindings shown in the help pane
type Section struct {
	Title    string
	Bindings []key.Binding
}

// HelpSections groups the bindings for the help pane
func (k *Keys) HelpSections() []Section {
	return []Section{
		{
			Title: "General",
			Bindings: []key.Binding{
				k.Help, k.Back, k.Quit,
			},
		},
		{
			Title: "Panes",
			Bindings: []key.Binding{
				k.ServicesList, k.TasksList, k.ContainersList, k.ContainerDetails,
				k.NextList, k.PrevList, k.Enter, k.Leave, k.ToggleDetails, k.StackDown, k.StackUp,
			},
		},
		{
			Title: "Lists",
			Bindings: []key.Binding{
				k.Down, k.Up, k.JumpTop, k.JumpBottom,
			},
		},
		{
			Title: "Data",
			Bindings: []key.Binding{
				k.Refresh, k.RefreshMarked, k.Mark, k.AutoRefresh, k.CopyIdentifier,
			},
		},
	}
}
