package messages

import (
	"fmt"
	"strings"
)

// WrapError wraps an error with additional context using fmt.Errorf.
// Preserves the error chain for debugging with %w.
//
// Example:
//
//	out, err := api.DescribeServices(ctx, input)
//	if err != nil {
//	    return messages.WrapError(err, "couldn't describe services in cluster %s", arn)
//	}
func WrapError(err error, format string, args ...any) error {
	context := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", context, err)
}

// ErrorText flattens an error into a single line suitable for a status line
// or a failure record
func ErrorText(err error) string {
	if err == nil {
		return ""
	}
	return strings.Join(strings.Fields(err.Error()), " ")
}

// Name returns a short name for a message, used in debug logs
func Name(msg Message) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", msg), "messages.")
}
