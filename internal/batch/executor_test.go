package batch

import (
	"strings"
	"testing"

	"taskdeck/pkg/decktypes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingDispatch returns a DispatchFunc that records dispatched
// commands and fails on any type present in failOn.
func recordingDispatch(dispatched *[]decktypes.ParsedCommand, failOn ...decktypes.CommandType) DispatchFunc {
	return func(cmd decktypes.ParsedCommand) decktypes.Outcome {
		*dispatched = append(*dispatched, cmd)
		for _, ct := range failOn {
			if cmd.Type == ct {
				return decktypes.ErrorOutcomef("handler failure for %s", ct)
			}
		}
		return decktypes.SuccessOutcome("ok")
	}
}

func TestRun_AllSucceed(t *testing.T) {
	var dispatched []decktypes.ParsedCommand

	result := Run("/add todo one\n/add note two\n/view todos", recordingDispatch(&dispatched))

	assert.True(t, result.Completed())
	assert.Equal(t, -1, result.StoppedAt)
	assert.Equal(t, 3, result.Attempted)
	assert.Equal(t, 3, result.Total)
	assert.Len(t, dispatched, 3)
}

func TestRun_StopsOnFirstError(t *testing.T) {
	var dispatched []decktypes.ParsedCommand

	result := Run(
		"/add todo one\n/delete todo missing\n/add todo three",
		recordingDispatch(&dispatched, decktypes.CommandDeleteTodo),
	)

	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 1, result.StoppedAt)
	require.Len(t, result.Outcomes, 2)
	assert.Equal(t, decktypes.StatusSuccess, result.Outcomes[0].Status)
	assert.Equal(t, decktypes.StatusError, result.Outcomes[1].Status)

	// The third command is never dispatched.
	require.Len(t, dispatched, 2)
	assert.Equal(t, decktypes.CommandDeleteTodo, dispatched[1].Type)
}

func TestRun_ParseFailureStopsBatch(t *testing.T) {
	var dispatched []decktypes.ParsedCommand

	result := Run("/add todo one\n/frobnicate\n/add todo three", recordingDispatch(&dispatched))

	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 1, result.StoppedAt)
	assert.Equal(t, decktypes.StatusError, result.Outcomes[1].Status)
	assert.Len(t, dispatched, 1)
}

func TestRun_TooManyCommandsNothingRuns(t *testing.T) {
	var dispatched []decktypes.ParsedCommand

	lines := make([]string, 11)
	for i := range lines {
		lines[i] = "/view todos"
	}
	result := Run(strings.Join(lines, "\n"), recordingDispatch(&dispatched))

	assert.Equal(t, 0, result.Attempted)
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.StoppedAt)
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, decktypes.StatusError, result.Outcomes[0].Status)
	assert.Empty(t, dispatched)
}

func TestRun_AndSeparatedBatch(t *testing.T) {
	var dispatched []decktypes.ParsedCommand

	result := Run("/add todo one && /view todos", recordingDispatch(&dispatched))

	assert.True(t, result.Completed())
	require.Len(t, dispatched, 2)
	assert.Equal(t, decktypes.CommandAddTodo, dispatched[0].Type)
	assert.Equal(t, decktypes.CommandViewTodos, dispatched[1].Type)
}

func TestRun_PromptOutcomeDoesNotStopBatch(t *testing.T) {
	calls := 0
	dispatch := func(decktypes.ParsedCommand) decktypes.Outcome {
		calls++
		if calls == 1 {
			return decktypes.PromptOutcome("which project?")
		}
		return decktypes.SuccessOutcome("ok")
	}

	result := Run("/view todos\n/view notes", dispatch)

	assert.True(t, result.Completed())
	assert.Equal(t, 2, result.Attempted)
}
