package resolver

import (
	"testing"

	"taskdeck/pkg/decktypes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTodos() []decktypes.Todo {
	return []decktypes.Todo{
		{ID: "a1", Title: "Fix login bug"},
		{ID: "b2", Title: "Write docs"},
		{ID: "c3", Title: "Deploy to staging"},
	}
}

func TestResolve_ExactID(t *testing.T) {
	todos := sampleTodos()

	got, ok := Resolve(todos, "b2")
	require.True(t, ok)
	assert.Equal(t, "Write docs", got.Title)
}

func TestResolve_ExactIDIsCaseSensitive(t *testing.T) {
	todos := sampleTodos()

	_, ok := Resolve(todos, "B2")
	assert.False(t, ok)
}

func TestResolve_PositionalIndex(t *testing.T) {
	todos := sampleTodos()

	got, ok := Resolve(todos, "2")
	require.True(t, ok)
	assert.Equal(t, todos[1], got)

	_, ok = Resolve(todos, "4")
	assert.False(t, ok)

	_, ok = Resolve(todos, "0")
	assert.False(t, ok)

	_, ok = Resolve(todos, "-1")
	assert.False(t, ok)
}

func TestResolve_NonPositiveNumericFallsToSubstring(t *testing.T) {
	todos := []decktypes.Todo{
		{ID: "a", Title: "triage issue -1 from the tracker"},
		{ID: "b", Title: "ship v2.0"},
	}

	// Only positive integers act as positional indices; "-1" and "0"
	// are ordinary text and match labels like any other string.
	got, ok := Resolve(todos, "-1")
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)

	got, ok = Resolve(todos, "0")
	require.True(t, ok)
	assert.Equal(t, "b", got.ID)
}

func TestResolve_SubstringMatch(t *testing.T) {
	todos := sampleTodos()

	got, ok := Resolve(todos, "LOGIN")
	require.True(t, ok)
	assert.Equal(t, "a1", got.ID)
}

func TestResolve_SubstringFirstWins(t *testing.T) {
	todos := []decktypes.Todo{
		{ID: "a", Title: "deploy frontend"},
		{ID: "b", Title: "deploy backend"},
	}

	got, ok := Resolve(todos, "deploy")
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)
}

func TestResolve_TierOrdering(t *testing.T) {
	// The identifier "2" is simultaneously a valid id, a valid 1-based
	// index, and a substring of a label. The exact id must win.
	todos := []decktypes.Todo{
		{ID: "x", Title: "task 2 of 3"},
		{ID: "y", Title: "other"},
		{ID: "2", Title: "numeric id"},
	}

	got, ok := Resolve(todos, "2")
	require.True(t, ok)
	assert.Equal(t, "numeric id", got.Title)
}

func TestResolve_NumericIdentifierDoesNotFallToSubstring(t *testing.T) {
	todos := []decktypes.Todo{
		{ID: "a", Title: "task 9"},
	}

	// "9" parses as an index, is out of range, and must not be retried
	// as a substring.
	_, ok := Resolve(todos, "9")
	assert.False(t, ok)
}

func TestResolve_NoMatch(t *testing.T) {
	_, ok := Resolve(sampleTodos(), "nothing here")
	assert.False(t, ok)
}

func TestResolve_EmptyCollection(t *testing.T) {
	_, ok := Resolve([]decktypes.Todo{}, "1")
	assert.False(t, ok)
}

func TestResolve_WorksAcrossEntityTypes(t *testing.T) {
	notes := []decktypes.Note{
		{ID: "n1", Title: "Architecture sketch"},
	}
	got, ok := Resolve(notes, "arch")
	require.True(t, ok)
	assert.Equal(t, "n1", got.ID)

	components := []decktypes.Component{
		{ID: "c1", Name: "auth service"},
		{ID: "c2", Name: "billing service"},
	}
	comp, ok := Resolve(components, "billing")
	require.True(t, ok)
	assert.Equal(t, "c2", comp.ID)

	rels := []decktypes.Relationship{
		{RelationshipID: "r1", TargetID: "c2", Type: decktypes.RelationUses},
		{RelationshipID: "r2", TargetID: "c1", Type: decktypes.RelationCalls},
	}
	rel, ok := Resolve(rels, "calls")
	require.True(t, ok)
	assert.Equal(t, "r2", rel.RelationshipID)
}

func TestResolveIndex_ReturnsPosition(t *testing.T) {
	todos := sampleTodos()

	assert.Equal(t, 2, ResolveIndex(todos, "staging"))
	assert.Equal(t, -1, ResolveIndex(todos, "missing"))
}
