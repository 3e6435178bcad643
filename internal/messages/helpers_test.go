package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	base := errors.New("AccessDeniedException")
	err := WrapError(base, "couldn't describe services in cluster %s", "cluster-a")

	assert.ErrorIs(t, err, base)
	assert.Equal(t, "couldn't describe services in cluster cluster-a: AccessDeniedException", err.Error())
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "", ErrorText(nil))
	assert.Equal(t, "operation error ECS: ListTasks, https response error",
		ErrorText(errors.New("operation error ECS: ListTasks,\n  https response error")))
}

func TestName(t *testing.T) {
	assert.Equal(t, "GoToPane", Name(GoToPane{}))
	assert.Equal(t, "TasksFetched", Name(TasksFetched{}))
}
