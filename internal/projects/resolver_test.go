package projects

import (
	"context"
	"testing"
	"time"

	"taskdeck/internal/testutils"
	"taskdeck/pkg/decktypes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T) (*testutils.MemoryStore, *SummaryCache, *Resolver) {
	t.Helper()
	store := testutils.NewMemoryStore()
	clock := testutils.NewStubClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	cache := NewSummaryCache(5*time.Minute, clock.Now)
	return store, cache, NewResolver(store, cache)
}

func seed(t *testing.T, store *testutils.MemoryStore, p *decktypes.Project) {
	t.Helper()
	require.NoError(t, store.Create(context.Background(), p))
}

func TestResolve_MentionOwnedProject(t *testing.T) {
	store, _, r := newFixture(t)
	seed(t, store, testutils.SeedProject("p1", "Backend", "u1"))

	res, err := r.Resolve(context.Background(), "u1", "backend", "")
	require.NoError(t, err)
	require.NotNil(t, res.Project)
	assert.Equal(t, "p1", res.Project.ID)
	assert.False(t, res.NeedsSelection)
}

func TestResolve_MentionTeamProject(t *testing.T) {
	store, _, r := newFixture(t)
	p := testutils.SeedProject("p1", "Shared", "owner")
	p.Members = []decktypes.Member{{UserID: "u1", Role: decktypes.RoleEditor}}
	seed(t, store, p)

	res, err := r.Resolve(context.Background(), "u1", "Shared", "")
	require.NoError(t, err)
	require.NotNil(t, res.Project)
	assert.Equal(t, "p1", res.Project.ID)
}

func TestResolve_MentionBeatsCurrentProject(t *testing.T) {
	store, _, r := newFixture(t)
	seed(t, store, testutils.SeedProject("p1", "Backend", "u1"))
	seed(t, store, testutils.SeedProject("p2", "Frontend", "u1"))

	res, err := r.Resolve(context.Background(), "u1", "Frontend", "p1")
	require.NoError(t, err)
	require.NotNil(t, res.Project)
	assert.Equal(t, "p2", res.Project.ID)
}

func TestResolve_MentionNotFoundCarriesSuggestions(t *testing.T) {
	store, _, r := newFixture(t)
	seed(t, store, testutils.SeedProject("p1", "Backend API", "u1"))
	seed(t, store, testutils.SeedProject("p2", "Backend Worker", "u1"))
	seed(t, store, testutils.SeedProject("p3", "Frontend", "u1"))

	_, err := r.Resolve(context.Background(), "u1", "backend", "")
	var resErr *decktypes.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "backend", resErr.Identifier)
	assert.ElementsMatch(t, []string{"Backend API", "Backend Worker"}, resErr.Suggestions)
}

func TestResolve_MentionNotFoundNoSuggestions(t *testing.T) {
	store, _, r := newFixture(t)
	seed(t, store, testutils.SeedProject("p1", "Backend", "u1"))

	_, err := r.Resolve(context.Background(), "u1", "zzz", "")
	var resErr *decktypes.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Empty(t, resErr.Suggestions)
}

func TestResolve_CurrentProject(t *testing.T) {
	store, _, r := newFixture(t)
	seed(t, store, testutils.SeedProject("p1", "Backend", "u1"))

	res, err := r.Resolve(context.Background(), "u1", "", "p1")
	require.NoError(t, err)
	require.NotNil(t, res.Project)
	assert.Equal(t, "p1", res.Project.ID)
}

func TestResolve_CurrentProjectWithoutAccessFallsThrough(t *testing.T) {
	store, _, r := newFixture(t)
	seed(t, store, testutils.SeedProject("p1", "Private", "someone-else"))
	seed(t, store, testutils.SeedProject("p2", "Mine", "u1"))

	// u1 lost access to p1; the resolver must not expose it and instead
	// offers the accessible set.
	res, err := r.Resolve(context.Background(), "u1", "", "p1")
	require.NoError(t, err)
	assert.Nil(t, res.Project)
	require.True(t, res.NeedsSelection)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "p2", res.Candidates[0].ID)
}

func TestResolve_NeedsSelection(t *testing.T) {
	store, _, r := newFixture(t)
	seed(t, store, testutils.SeedProject("p1", "Backend", "u1"))
	shared := testutils.SeedProject("p2", "Shared", "owner")
	shared.Members = []decktypes.Member{{UserID: "u1", Role: decktypes.RoleViewer}}
	seed(t, store, shared)

	res, err := r.Resolve(context.Background(), "u1", "", "")
	require.NoError(t, err)
	require.True(t, res.NeedsSelection)
	assert.Len(t, res.Candidates, 2)
}

func TestResolve_NoProjects(t *testing.T) {
	_, _, r := newFixture(t)

	_, err := r.Resolve(context.Background(), "u1", "", "")
	var noProjects *decktypes.NoProjectsError
	require.ErrorAs(t, err, &noProjects)
}

func TestResolve_CacheHitStillReturnsAuthoritativeRecord(t *testing.T) {
	store, cache, r := newFixture(t)
	seed(t, store, testutils.SeedProject("p1", "Backend", "u1"))

	// Warm the cache via a first mention lookup.
	_, err := r.Resolve(context.Background(), "u1", "Backend", "")
	require.NoError(t, err)
	_, hit := cache.Get("u1")
	require.True(t, hit)

	// Mutate the authoritative record behind the cache's back.
	p := store.Current("p1")
	p.Description = "updated"
	require.NoError(t, store.Save(context.Background(), p))

	res, err := r.Resolve(context.Background(), "u1", "Backend", "")
	require.NoError(t, err)
	assert.Equal(t, "updated", res.Project.Description)
}

func TestResolve_StaleCacheSameResultAsWarm(t *testing.T) {
	store, cache, r := newFixture(t)
	seed(t, store, testutils.SeedProject("p1", "Backend", "u1"))

	// Cold cache.
	cold, err := r.Resolve(context.Background(), "u1", "Backend", "")
	require.NoError(t, err)

	// Warm cache.
	warm, err := r.Resolve(context.Background(), "u1", "Backend", "")
	require.NoError(t, err)

	// Deliberately poisoned cache: entry names a project that no longer
	// matches. The fallback query must still win.
	cache.Set("u1", []decktypes.ProjectSummary{{ID: "ghost", Name: "Backend"}})
	poisoned, err := r.Resolve(context.Background(), "u1", "Backend", "")
	require.NoError(t, err)

	assert.Equal(t, cold.Project.ID, warm.Project.ID)
	assert.Equal(t, cold.Project.ID, poisoned.Project.ID)
}

func TestResolve_MentionMissPopulatesCache(t *testing.T) {
	store, cache, r := newFixture(t)
	seed(t, store, testutils.SeedProject("p1", "Backend", "u1"))

	_, hit := cache.Get("u1")
	require.False(t, hit)

	_, err := r.Resolve(context.Background(), "u1", "Backend", "")
	require.NoError(t, err)

	summaries, hit := cache.Get("u1")
	require.True(t, hit)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Backend", summaries[0].Name)
	assert.Equal(t, decktypes.RoleOwner, summaries[0].Role)
}

func TestResolveWithEditCheck_ViewerRejected(t *testing.T) {
	store, _, r := newFixture(t)
	shared := testutils.SeedProject("p1", "Shared", "owner")
	shared.Members = []decktypes.Member{{UserID: "u1", Role: decktypes.RoleViewer}}
	seed(t, store, shared)

	_, err := r.ResolveWithEditCheck(context.Background(), "u1", "Shared", "")
	var permErr *decktypes.PermissionError
	require.ErrorAs(t, err, &permErr)
	assert.Equal(t, decktypes.RoleViewer, permErr.Role)
	assert.Equal(t, "Shared", permErr.ProjectName)
}

func TestResolveWithEditCheck_EditorAllowed(t *testing.T) {
	store, _, r := newFixture(t)
	shared := testutils.SeedProject("p1", "Shared", "owner")
	shared.Members = []decktypes.Member{{UserID: "u1", Role: decktypes.RoleEditor}}
	seed(t, store, shared)

	res, err := r.ResolveWithEditCheck(context.Background(), "u1", "Shared", "")
	require.NoError(t, err)
	require.NotNil(t, res.Project)
}
