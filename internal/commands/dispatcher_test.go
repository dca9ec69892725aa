package commands

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/projects"
	"taskdeck/internal/testutils"
	"taskdeck/pkg/decktypes"
)

// fakeCommand is a minimal handler whose behavior each test injects.
type fakeCommand struct {
	needsProject bool
	mutates      bool
	execute      func(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome
}

func (f *fakeCommand) Type() decktypes.CommandType    { return decktypes.CommandAddTodo }
func (f *fakeCommand) Description() string            { return "fake" }
func (f *fakeCommand) Usage() string                  { return "/add todo" }
func (f *fakeCommand) HelpInfo() decktypes.HelpInfo   { return decktypes.HelpInfo{} }
func (f *fakeCommand) NeedsProject() bool             { return f.needsProject }
func (f *fakeCommand) Mutates() bool                  { return f.mutates }
func (f *fakeCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	return f.execute(cmd, req)
}

func newTestDispatcher(t *testing.T, store *testutils.MemoryStore, fake *fakeCommand) *Dispatcher {
	t.Helper()
	registry := NewRegistry()
	require.NoError(t, registry.Register(fake))

	clock := testutils.NewStubClock(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC))
	cache := projects.NewSummaryCache(projects.DefaultCacheTTL, clock.Now)
	d := NewDispatcher(registry, projects.NewResolver(store, cache), store)
	d.now = clock.Now
	return d
}

func TestDispatch_CommitPerformsSingleSave(t *testing.T) {
	store := testutils.NewMemoryStore()
	require.NoError(t, store.Create(context.Background(), testutils.SeedProject("p1", "Alpha", "u1")))

	fake := &fakeCommand{
		needsProject: true,
		mutates:      true,
		execute: func(_ decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
			req.Project.Todos = append(req.Project.Todos, decktypes.Todo{ID: "new", Title: "staged"})
			req.Commit()
			return decktypes.SuccessOutcome("ok")
		},
	}
	d := newTestDispatcher(t, store, fake)

	session := &decktypes.Session{UserID: "u1", CurrentProjectID: "p1"}
	outcome := d.Dispatch(context.Background(), session, decktypes.ParsedCommand{Type: decktypes.CommandAddTodo})

	require.False(t, outcome.IsError(), outcome.Message)
	assert.Equal(t, 1, store.SaveCalls)

	saved := store.Current("p1")
	assert.Len(t, saved.Todos, 3)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), saved.UpdatedAt)
}

func TestDispatch_NoCommitNoSave(t *testing.T) {
	store := testutils.NewMemoryStore()
	require.NoError(t, store.Create(context.Background(), testutils.SeedProject("p1", "Alpha", "u1")))

	fake := &fakeCommand{
		needsProject: true,
		execute: func(_ decktypes.ParsedCommand, _ *decktypes.Request) decktypes.Outcome {
			return decktypes.SuccessOutcome("read only")
		},
	}
	d := newTestDispatcher(t, store, fake)

	session := &decktypes.Session{UserID: "u1", CurrentProjectID: "p1"}
	outcome := d.Dispatch(context.Background(), session, decktypes.ParsedCommand{Type: decktypes.CommandAddTodo})

	require.False(t, outcome.IsError())
	assert.Zero(t, store.SaveCalls)
}

func TestDispatch_ErrorOutcomeDiscardsStagedMutations(t *testing.T) {
	store := testutils.NewMemoryStore()
	require.NoError(t, store.Create(context.Background(), testutils.SeedProject("p1", "Alpha", "u1")))

	fake := &fakeCommand{
		needsProject: true,
		mutates:      true,
		execute: func(_ decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
			req.Project.Todos = nil
			req.Commit()
			return decktypes.ErrorOutcomef("validation failed late")
		},
	}
	d := newTestDispatcher(t, store, fake)

	session := &decktypes.Session{UserID: "u1", CurrentProjectID: "p1"}
	outcome := d.Dispatch(context.Background(), session, decktypes.ParsedCommand{Type: decktypes.CommandAddTodo})

	require.True(t, outcome.IsError())
	assert.Zero(t, store.SaveCalls)
	assert.Len(t, store.Current("p1").Todos, 2)
}

func TestDispatch_ViewerBlockedBeforeExecute(t *testing.T) {
	store := testutils.NewMemoryStore()
	p := testutils.SeedProject("p1", "Alpha", "owner")
	p.Members = []decktypes.Member{{UserID: "viewer", Role: decktypes.RoleViewer}}
	require.NoError(t, store.Create(context.Background(), p))

	executed := false
	fake := &fakeCommand{
		needsProject: true,
		mutates:      true,
		execute: func(_ decktypes.ParsedCommand, _ *decktypes.Request) decktypes.Outcome {
			executed = true
			return decktypes.SuccessOutcome("should not run")
		},
	}
	d := newTestDispatcher(t, store, fake)

	session := &decktypes.Session{UserID: "viewer", CurrentProjectID: "p1"}
	outcome := d.Dispatch(context.Background(), session, decktypes.ParsedCommand{Type: decktypes.CommandAddTodo})

	require.True(t, outcome.IsError())
	var permErr *decktypes.PermissionError
	require.ErrorAs(t, outcome.Err, &permErr)
	assert.False(t, executed)
	assert.Zero(t, store.SaveCalls)
}

func TestDispatch_NeedsSelectionBecomesPrompt(t *testing.T) {
	store := testutils.NewMemoryStore()
	require.NoError(t, store.Create(context.Background(), testutils.SeedProject("p1", "Alpha", "u1")))
	require.NoError(t, store.Create(context.Background(), testutils.SeedProject("p2", "Beta", "u1")))

	fake := &fakeCommand{
		needsProject: true,
		execute: func(_ decktypes.ParsedCommand, _ *decktypes.Request) decktypes.Outcome {
			t.Fatal("handler must not run without a resolved project")
			return decktypes.Outcome{}
		},
	}
	d := newTestDispatcher(t, store, fake)

	session := &decktypes.Session{UserID: "u1"}
	outcome := d.Dispatch(context.Background(), session, decktypes.ParsedCommand{Type: decktypes.CommandAddTodo})

	assert.Equal(t, decktypes.StatusPrompt, outcome.Status)
	candidates, ok := outcome.Payload.([]projects.Candidate)
	require.True(t, ok)
	assert.Len(t, candidates, 2)
}

func TestDispatch_MentionOverridesCurrentProject(t *testing.T) {
	store := testutils.NewMemoryStore()
	require.NoError(t, store.Create(context.Background(), testutils.SeedProject("p1", "Alpha", "u1")))
	require.NoError(t, store.Create(context.Background(), testutils.SeedProject("p2", "Beta", "u1")))

	var got string
	fake := &fakeCommand{
		needsProject: true,
		execute: func(_ decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
			got = req.Project.ID
			return decktypes.SuccessOutcome("ok")
		},
	}
	d := newTestDispatcher(t, store, fake)

	session := &decktypes.Session{UserID: "u1", CurrentProjectID: "p1"}
	outcome := d.Dispatch(context.Background(), session, decktypes.ParsedCommand{
		Type:           decktypes.CommandAddTodo,
		ProjectMention: "Beta",
	})

	require.False(t, outcome.IsError())
	assert.Equal(t, "p2", got)
}

func TestDispatch_UnregisteredTypeIsError(t *testing.T) {
	store := testutils.NewMemoryStore()
	d := newTestDispatcher(t, store, &fakeCommand{})

	session := &decktypes.Session{UserID: "u1"}
	outcome := d.Dispatch(context.Background(), session, decktypes.ParsedCommand{Type: decktypes.CommandHelp})

	assert.True(t, outcome.IsError())
}
