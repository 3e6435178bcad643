package messages

import "github.com/dhth/ecscope/internal/types"

// Message is an input to the dashboard reducer. The set is closed: only
// types in this package implement it.
type Message interface {
	isMessage()
}

// TerminalResize carries the new terminal dimensions
type TerminalResize struct {
	Width  int
	Height int
}

type GoToNextListItem struct{}
type GoToPreviousListItem struct{}
type GoToFirstListItem struct{}
type GoToLastListItem struct{}

// GoToPane focuses a pane
type GoToPane struct {
	Pane types.Pane
}

// ServicesFetched carries the results of fetching one cluster's services
type ServicesFetched struct {
	Results []types.ServiceResult
}

// ServiceRefreshed carries a fresh snapshot of the service that was at Index
// when Previous was taken
type ServiceRefreshed struct {
	Result   types.ServiceResult
	Previous types.ServiceDetails
	Index    int
}

// TasksFetched carries the tasks of Service. Err is set when the fetch
// failed, in which case Tasks is nil.
type TasksFetched struct {
	Service types.ServiceDetails
	Tasks   []types.TaskDetails
	Refresh bool
	Err     error
}

// ClipboardCopied reports the outcome of a copy to the clipboard
type ClipboardCopied struct {
	Text string
	Err  error
}

type ClearUserMsg struct{}
type RefreshResultsForMarkedServices struct{}
type RefreshResultsForCurrentItem struct{}
type ToggleServiceRefresh struct{}
type ToggleAutoRefresh struct{}

// CopyVisibleIdentifier copies the identifier shown in the focused detail
// pane
type CopyVisibleIdentifier struct{}

type GoBackOrQuit struct{}
type QuitImmediately struct{}

func (TerminalResize) isMessage()                  {}
func (GoToNextListItem) isMessage()                {}
func (GoToPreviousListItem) isMessage()            {}
func (GoToFirstListItem) isMessage()               {}
func (GoToLastListItem) isMessage()                {}
func (GoToPane) isMessage()                        {}
func (ServicesFetched) isMessage()                 {}
func (ServiceRefreshed) isMessage()                {}
func (TasksFetched) isMessage()                    {}
func (ClipboardCopied) isMessage()                 {}
func (ClearUserMsg) isMessage()                    {}
func (RefreshResultsForMarkedServices) isMessage() {}
func (RefreshResultsForCurrentItem) isMessage()    {}
func (ToggleServiceRefresh) isMessage()            {}
func (ToggleAutoRefresh) isMessage()               {}
func (CopyVisibleIdentifier) isMessage()           {}
func (GoBackOrQuit) isMessage()                    {}
func (QuitImmediately) isMessage()                 {}
