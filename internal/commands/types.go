package commands

import "github.com/dhth/ecscope/internal/types"

// Command is a side effect requested by the reducer. Each one is run by the
// Executor and answered with exactly one message.
type Command interface {
	isCommand()
}

// FetchServices fetches every configured service of a cluster
type FetchServices struct {
	Cluster types.ClusterConfig
}

// RefreshService re-fetches the service found at Index in the services list
type RefreshService struct {
	Service types.ServiceDetails
	Index   int
}

// FetchTasks fetches the tasks of a service. Refresh marks a user-requested
// re-fetch.
type FetchTasks struct {
	Service types.ServiceDetails
	Refresh bool
}

// CopyToClipboard writes Text to the system clipboard
type CopyToClipboard struct {
	Text string
}

func (FetchServices) isCommand()   {}
func (RefreshService) isCommand()  {}
func (FetchTasks) isCommand()      {}
func (CopyToClipboard) isCommand() {}
