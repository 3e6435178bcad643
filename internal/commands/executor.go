package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dhth/ecscope/internal/ecs"
	"github.com/dhth/ecscope/internal/logging"
	"github.com/dhth/ecscope/internal/messages"
	"github.com/dhth/ecscope/internal/types"
)

const (
	// DefaultQueueSize is the capacity of the executor's message channel
	DefaultQueueSize = 10
	// DefaultTimeout bounds each command's round trips
	DefaultTimeout = 30 * time.Second
)

// errNoClient is reported when a command's credential source has no client
var errNoClient = errors.New("unexpected error: no client for config source")

// Executor runs commands in the background and reports their results on a
// bounded channel. Sends never block: when the channel is full the message
// is dropped.
type Executor struct {
	ctx      context.Context
	registry ecs.Registry
	out      chan messages.Message
	timeout  time.Duration
	copy     func(string) error
}

// ExecutorOption configures an Executor
type ExecutorOption func(*Executor)

// WithQueueSize sets the message channel capacity
func WithQueueSize(n int) ExecutorOption {
	return func(e *Executor) {
		e.out = make(chan messages.Message, n)
	}
}

// WithTimeout sets the per-command timeout
func WithTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.timeout = d
	}
}

// WithClipboard replaces the clipboard writer
func WithClipboard(fn func(string) error) ExecutorOption {
	return func(e *Executor) {
		e.copy = fn
	}
}

// NewExecutor creates an executor reading clients from registry. Commands
// stop early when ctx is cancelled.
func NewExecutor(ctx context.Context, registry ecs.Registry, opts ...ExecutorOption) *Executor {
	e := &Executor{
		ctx:      ctx,
		registry: registry,
		out:      make(chan messages.Message, DefaultQueueSize),
		timeout:  DefaultTimeout,
		copy:     copyToClipboard,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Messages returns the channel results are delivered on
func (e *Executor) Messages() <-chan messages.Message {
	return e.out
}

// Dispatch runs each command in its own goroutine
func (e *Executor) Dispatch(cmds ...Command) {
	for _, cmd := range cmds {
		go func() {
			e.emit(e.Run(cmd))
		}()
	}
}

// emit delivers msg without blocking. It reports whether msg was queued.
func (e *Executor) emit(msg messages.Message) bool {
	if msg == nil {
		return false
	}
	select {
	case e.out <- msg:
		return true
	default:
		logging.Debug("message channel full, dropping message", "message", messages.Name(msg))
		return false
	}
}

// Run executes cmd synchronously and returns the message that reports it
func (e *Executor) Run(cmd Command) messages.Message {
	ctx, cancel := context.WithTimeout(e.ctx, e.timeout)
	defer cancel()

	switch cmd := cmd.(type) {
	case FetchServices:
		return e.fetchServices(ctx, cmd)
	case RefreshService:
		return e.refreshService(ctx, cmd)
	case FetchTasks:
		return e.fetchTasks(ctx, cmd)
	case CopyToClipboard:
		return messages.ClipboardCopied{Text: cmd.Text, Err: e.copy(cmd.Text)}
	default:
		logging.Warn("unknown command", "command", fmt.Sprintf("%T", cmd))
		return nil
	}
}

func (e *Executor) fetchServices(ctx context.Context, cmd FetchServices) messages.Message {
	timing := logging.Start("fetch services " + cmd.Cluster.ARN)

	api, ok := e.registry.Lookup(cmd.Cluster.ConfigSource)
	if !ok {
		results := make([]types.ServiceResult, 0, len(cmd.Cluster.Services))
		for _, name := range cmd.Cluster.Services {
			results = append(results, types.ServiceError{Name: name, Err: errNoClient.Error(), Keys: cmd.Cluster.Keys})
		}
		return messages.ServicesFetched{Results: results}
	}

	results := ecs.ServicesForCluster(ctx, api, cmd.Cluster)
	logging.EndWithCount(timing, len(results))
	return messages.ServicesFetched{Results: results}
}

func (e *Executor) refreshService(ctx context.Context, cmd RefreshService) messages.Message {
	api, ok := e.registry.Lookup(cmd.Service.ConfigSource)
	if !ok {
		return messages.ServiceRefreshed{
			Result:   types.ServiceError{Name: cmd.Service.Name, Err: errNoClient.Error(), Keys: cmd.Service.Keys},
			Previous: cmd.Service,
			Index:    cmd.Index,
		}
	}

	return messages.ServiceRefreshed{
		Result:   ecs.RefreshService(ctx, api, cmd.Service),
		Previous: cmd.Service,
		Index:    cmd.Index,
	}
}

func (e *Executor) fetchTasks(ctx context.Context, cmd FetchTasks) messages.Message {
	api, ok := e.registry.Lookup(cmd.Service.ConfigSource)
	if !ok {
		return messages.TasksFetched{Service: cmd.Service, Refresh: cmd.Refresh, Err: errNoClient}
	}

	timing := logging.Start("fetch tasks " + cmd.Service.Name)
	tasks, err := ecs.ServiceTasks(ctx, api, cmd.Service)
	if err != nil {
		logging.Warn("couldn't fetch tasks", "service", cmd.Service.Name, "error", err)
		return messages.TasksFetched{Service: cmd.Service, Refresh: cmd.Refresh, Err: err}
	}
	logging.EndWithCount(timing, len(tasks))

	return messages.TasksFetched{Service: cmd.Service, Tasks: tasks, Refresh: cmd.Refresh}
}
