package store

import (
	"context"
	"path/filepath"
	"testing"

	"taskdeck/internal/testutils"
	"taskdeck/pkg/decktypes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *ProjectStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "taskdeck.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := testutils.SeedProject("p1", "Backend", "u1")
	require.NoError(t, s.Create(ctx, p))

	loaded, err := s.Load(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Backend", loaded.Name)
	assert.Len(t, loaded.Todos, 2)
	assert.Len(t, loaded.Components, 2)
}

func TestLoad_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Load(context.Background(), "missing")
	assert.Error(t, err)
}

func TestSave_PersistsWholeAggregate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := testutils.SeedProject("p1", "Backend", "u1")
	require.NoError(t, s.Create(ctx, p))

	// Stage several mutations, then commit once.
	p.Todos = append(p.Todos, decktypes.Todo{ID: "t9", Title: "new"})
	p.Components[0].Relationships = []decktypes.Relationship{
		{RelationshipID: "r1", TargetID: p.Components[1].ID, Type: decktypes.RelationUses},
	}
	p.Components[1].Relationships = []decktypes.Relationship{
		{RelationshipID: "r1", TargetID: p.Components[0].ID, Type: decktypes.RelationUsedBy},
	}
	require.NoError(t, s.Save(ctx, p))

	loaded, err := s.Load(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, loaded.Todos, 3)

	// Both sides of the relationship pair were written by the one save.
	require.Len(t, loaded.Components[0].Relationships, 1)
	require.Len(t, loaded.Components[1].Relationships, 1)
	assert.Equal(t, "r1", loaded.Components[0].Relationships[0].RelationshipID)
	assert.Equal(t, "r1", loaded.Components[1].Relationships[0].RelationshipID)
}

func TestSave_UnknownProject(t *testing.T) {
	s := openTestStore(t)

	err := s.Save(context.Background(), testutils.SeedProject("ghost", "Ghost", "u1"))
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testutils.SeedProject("p1", "Backend", "u1")))
	require.NoError(t, s.Delete(ctx, "p1"))

	_, err := s.Load(ctx, "p1")
	assert.Error(t, err)
	assert.Error(t, s.Delete(ctx, "p1"))
}

func TestListOwned_CreationOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := testutils.SeedProject("pa", "Alpha", "u1")
	b := testutils.SeedProject("pb", "Beta", "u1")
	other := testutils.SeedProject("pc", "Gamma", "u2")
	require.NoError(t, s.Create(ctx, a))
	require.NoError(t, s.Create(ctx, b))
	require.NoError(t, s.Create(ctx, other))

	owned, err := s.ListOwned(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "pa", owned[0].ID)
	assert.Equal(t, "pb", owned[1].ID)
}

func TestListMember_ExcludesOwned(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	mine := testutils.SeedProject("p1", "Mine", "u1")
	mine.Members = []decktypes.Member{{UserID: "u1", Role: decktypes.RoleEditor}}
	shared := testutils.SeedProject("p2", "Shared", "u2")
	shared.Members = []decktypes.Member{{UserID: "u1", Role: decktypes.RoleViewer}}
	require.NoError(t, s.Create(ctx, mine))
	require.NoError(t, s.Create(ctx, shared))

	member, err := s.ListMember(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, member, 1)
	assert.Equal(t, "p2", member[0].ID)
}

func TestSave_RewritesMembers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := testutils.SeedProject("p1", "Shared", "u2")
	p.Members = []decktypes.Member{{UserID: "u1", Role: decktypes.RoleViewer}}
	require.NoError(t, s.Create(ctx, p))

	p.Members = nil
	require.NoError(t, s.Save(ctx, p))

	member, err := s.ListMember(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, member)
}
