package builtin

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/testutils"
	"taskdeck/pkg/decktypes"
)

func TestCreateProject(t *testing.T) {
	req := newRequest(t, nil)
	cmd := parsed(decktypes.CommandCreateProject, []string{"Side", "Project"}, map[string]string{"description": "weekend experiments"})

	outcome := (&CreateProjectCommand{}).Execute(cmd, req)

	require.Equal(t, decktypes.StatusSuccess, outcome.Status, outcome.Message)
	store := req.Store.(*testutils.MemoryStore)
	owned, err := store.ListOwned(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "Side Project", owned[0].Name)
	assert.Equal(t, "weekend experiments", owned[0].Description)
	assert.Equal(t, owned[0].ID, req.Session.CurrentProjectID)
}

func TestViewProjects_MarksRoleAndCurrent(t *testing.T) {
	req := newRequest(t, testutils.SeedProject("p1", "Alpha", "u1"))
	store := req.Store.(*testutils.MemoryStore)
	team := testutils.SeedProject("p2", "Beta", "other")
	team.Members = []decktypes.Member{{UserID: "u1", Role: decktypes.RoleEditor}}
	require.NoError(t, store.Create(context.Background(), team))

	outcome := (&ViewProjectsCommand{}).Execute(parsed(decktypes.CommandViewProjects, nil, nil), req)

	require.Equal(t, decktypes.StatusData, outcome.Status)
	assert.Contains(t, outcome.Message, "Alpha  <- current")
	assert.Contains(t, outcome.Message, "Beta [editor]")
}

func TestViewProjects_EmptySet(t *testing.T) {
	req := newRequest(t, nil)

	outcome := (&ViewProjectsCommand{}).Execute(parsed(decktypes.CommandViewProjects, nil, nil), req)

	require.True(t, outcome.IsError())
	var noProjects *decktypes.NoProjectsError
	require.ErrorAs(t, outcome.Err, &noProjects)
}

func TestViewProject_Counts(t *testing.T) {
	req := newRequest(t, testutils.SeedProject("p1", "Alpha", "u1"))

	outcome := (&ViewProjectCommand{}).Execute(parsed(decktypes.CommandViewProject, nil, nil), req)

	require.Equal(t, decktypes.StatusData, outcome.Status)
	assert.Contains(t, outcome.Message, "todos: 2 (2 open)")
	assert.Contains(t, outcome.Message, "components: 2")
}

func TestSwitchProject_ByNameFragment(t *testing.T) {
	req := newRequest(t, testutils.SeedProject("p1", "Alpha", "u1"))
	store := req.Store.(*testutils.MemoryStore)
	require.NoError(t, store.Create(context.Background(), testutils.SeedProject("p2", "Beta", "u1")))

	outcome := (&SwitchProjectCommand{}).Execute(parsed(decktypes.CommandSwitchProject, []string{"bet"}, nil), req)

	require.Equal(t, decktypes.StatusSuccess, outcome.Status, outcome.Message)
	assert.Equal(t, "p2", req.Session.CurrentProjectID)
}

func TestSwitchProject_ByIndex(t *testing.T) {
	req := newRequest(t, testutils.SeedProject("p1", "Alpha", "u1"))
	store := req.Store.(*testutils.MemoryStore)
	require.NoError(t, store.Create(context.Background(), testutils.SeedProject("p2", "Beta", "u1")))

	outcome := (&SwitchProjectCommand{}).Execute(parsed(decktypes.CommandSwitchProject, []string{"2"}, nil), req)

	require.Equal(t, decktypes.StatusSuccess, outcome.Status, outcome.Message)
	assert.Equal(t, "p2", req.Session.CurrentProjectID)
}

func TestRenameProject(t *testing.T) {
	req := newRequest(t, testutils.SeedProject("p1", "Alpha", "u1"))

	outcome := (&RenameProjectCommand{}).Execute(parsed(decktypes.CommandRenameProject, []string{"Alpha", "Two"}, nil), req)

	require.Equal(t, decktypes.StatusSuccess, outcome.Status, outcome.Message)
	assert.Equal(t, "Alpha Two", req.Project.Name)
	assert.True(t, req.CommitRequested())
}

func TestArchiveProject_AndRestore(t *testing.T) {
	req := newRequest(t, testutils.SeedProject("p1", "Alpha", "u1"))

	outcome := (&ArchiveProjectCommand{}).Execute(parsed(decktypes.CommandArchiveProject, nil, nil), req)
	require.Equal(t, decktypes.StatusSuccess, outcome.Status, outcome.Message)
	assert.True(t, req.Project.Archived)

	outcome = (&ArchiveProjectCommand{}).Execute(
		parsed(decktypes.CommandArchiveProject, nil, map[string]string{"restore": "true"}), req)
	require.Equal(t, decktypes.StatusSuccess, outcome.Status, outcome.Message)
	assert.False(t, req.Project.Archived)
}

func TestDeleteProject_RequiresConfirm(t *testing.T) {
	req := newRequest(t, testutils.SeedProject("p1", "Alpha", "u1"))

	outcome := (&DeleteProjectCommand{}).Execute(parsed(decktypes.CommandDeleteProject, nil, nil), req)

	assert.Equal(t, decktypes.StatusPrompt, outcome.Status)
	_, err := req.Store.Load(context.Background(), "p1")
	assert.NoError(t, err)
}

func TestDeleteProject_OwnerOnly(t *testing.T) {
	p := testutils.SeedProject("p1", "Alpha", "owner")
	p.Members = []decktypes.Member{{UserID: "u1", Role: decktypes.RoleEditor}}
	req := newRequest(t, p)

	outcome := (&DeleteProjectCommand{}).Execute(
		parsed(decktypes.CommandDeleteProject, nil, map[string]string{"confirm": "true"}), req)

	require.True(t, outcome.IsError())
	var permErr *decktypes.PermissionError
	require.ErrorAs(t, outcome.Err, &permErr)
}

func TestDeleteProject_Confirmed(t *testing.T) {
	req := newRequest(t, testutils.SeedProject("p1", "Alpha", "u1"))

	outcome := (&DeleteProjectCommand{}).Execute(
		parsed(decktypes.CommandDeleteProject, nil, map[string]string{"confirm": "true"}), req)

	require.Equal(t, decktypes.StatusSuccess, outcome.Status, outcome.Message)
	_, err := req.Store.Load(context.Background(), "p1")
	assert.Error(t, err)
	assert.Empty(t, req.Session.CurrentProjectID)
}

func TestExportImportRoundTrip(t *testing.T) {
	req := newRequest(t, testutils.SeedProject("p1", "Alpha", "u1"))
	path := filepath.Join(t.TempDir(), "alpha.yaml")

	outcome := (&ExportProjectCommand{}).Execute(
		parsed(decktypes.CommandExportProject, nil, map[string]string{"file": path}), req)
	require.Equal(t, decktypes.StatusSuccess, outcome.Status, outcome.Message)
	_, err := os.Stat(path)
	require.NoError(t, err)

	importer := newRequest(t, nil)
	importer.Session.UserID = "u2"
	outcome = (&ImportProjectCommand{}).Execute(
		parsed(decktypes.CommandImportProject, []string{path}, nil), importer)
	require.Equal(t, decktypes.StatusSuccess, outcome.Status, outcome.Message)

	owned, err := importer.Store.ListOwned(context.Background(), "u2")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	imported := owned[0]
	assert.Equal(t, "Alpha", imported.Name)
	assert.NotEqual(t, "p1", imported.ID)
	assert.Equal(t, "u2", imported.OwnerID)
	assert.Empty(t, imported.Members)
	assert.Len(t, imported.Todos, 2)
	assert.Len(t, imported.Components, 2)
}

func TestImportProject_RejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("42\n"), 0o644))
	req := newRequest(t, nil)

	outcome := (&ImportProjectCommand{}).Execute(parsed(decktypes.CommandImportProject, []string{path}, nil), req)

	assert.True(t, outcome.IsError())
}
