package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/commands"
	"taskdeck/pkg/decktypes"
)

func TestRegistry_EveryCommandTypeHasAHandler(t *testing.T) {
	registry := commands.GetGlobalRegistry()
	for _, ct := range decktypes.AllCommandTypes {
		_, ok := registry.Get(ct)
		assert.True(t, ok, "no handler registered for %q", ct)
	}
}

func TestHelp_ListsAllCommands(t *testing.T) {
	req := newRequest(t, nil)

	outcome := (&HelpCommand{}).Execute(parsed(decktypes.CommandHelp, nil, nil), req)

	require.Equal(t, decktypes.StatusData, outcome.Status)
	assert.Contains(t, outcome.Message, "add todo")
	assert.Contains(t, outcome.Message, "switch project")
}

func TestHelp_SingleCommand(t *testing.T) {
	req := newRequest(t, nil)

	outcome := (&HelpCommand{}).Execute(parsed(decktypes.CommandHelp, []string{"add", "todo"}, nil), req)

	require.Equal(t, decktypes.StatusData, outcome.Status)
	info, ok := outcome.Payload.(decktypes.HelpInfo)
	require.True(t, ok)
	assert.Equal(t, "add todo", info.Command)
	assert.NotEmpty(t, info.Usage)
}

func TestHelp_UnknownCommandSuggests(t *testing.T) {
	req := newRequest(t, nil)

	outcome := (&HelpCommand{}).Execute(parsed(decktypes.CommandHelp, []string{"todo"}, nil), req)

	require.True(t, outcome.IsError())
	assert.NotEmpty(t, outcome.Suggestions)
}

func TestVersionCommand(t *testing.T) {
	req := newRequest(t, nil)

	outcome := (&VersionCommand{}).Execute(parsed(decktypes.CommandVersion, nil, nil), req)

	require.Equal(t, decktypes.StatusSuccess, outcome.Status)
	assert.Contains(t, outcome.Message, "taskdeck v")
}

func TestVersionCommand_Detailed(t *testing.T) {
	req := newRequest(t, nil)

	outcome := (&VersionCommand{}).Execute(
		parsed(decktypes.CommandVersion, nil, map[string]string{"detailed": "true"}), req)

	require.Equal(t, decktypes.StatusData, outcome.Status)
	assert.Contains(t, outcome.Message, "Go Version")
}
