// Package messages defines the inputs of ecscope's dashboard reducer and the
// error-handling conventions shared by every layer.
//
// # Message Flow
//
// Every change to dashboard state is a Message. Messages come from three
// places:
//
//   - the event translator, which maps key presses and resizes
//   - the command executor, which reports fetch results
//   - timers, which clear stale user messages and trigger auto refresh
//
// All of them end in one call to app.Update, which runs on the Bubble Tea
// program loop. Nothing else mutates the model.
//
// # Message Handling Patterns by Layer
//
// ## ECS Layer (internal/ecs)
//
// Return standard Go errors wrapped with context. Per-service failures are
// data, not errors: a failed query becomes one types.ServiceError or
// types.DeploymentError per configured service.
//
// Pattern:
//
//	resp, err := api.DescribeServices(ctx, input)
//	if err != nil {
//	    return messages.WrapError(err, "couldn't describe services in cluster %s", arn)
//	}
//
// Only contract violations (ecs.ErrMissingClient) or a cancelled batch fail
// a whole fetch.
//
// ## Command Layer (internal/commands)
//
// Commands never return errors. Each one ends in exactly one Message, with
// failures carried inside it (a ServiceError result, TasksFetched.Err). The
// message is delivered with a non-blocking send and dropped when the channel
// is full.
//
// Pattern:
//
//	tasks, err := ecs.ServiceTasks(ctx, api, svc)
//	return messages.TasksFetched{Service: svc, Tasks: tasks, Err: err}
//
// ## UI Layer (internal/app)
//
// The reducer turns failures into a transient types.UserMessage shown in the
// status line. User messages are cleared by the ClearUserMsg timer once they
// are older than ten seconds.
//
// # Error Message Guidelines
//
// 1. Be specific: "couldn't list tasks for service web" not "request failed"
// 2. Include context: which service, which cluster
// 3. Keep it on one line: use ErrorText before showing an error in the UI
//
// Good examples:
//   - "error results cannot be marked for refresh"
//   - "couldn't describe services in cluster arn:...: AccessDeniedException"
//
// Bad examples:
//   - "Error" (too vague)
//   - a multi-line SDK dump in the status line
package messages
