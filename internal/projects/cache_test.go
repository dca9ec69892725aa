package projects

import (
	"testing"
	"time"

	"taskdeck/internal/testutils"
	"taskdeck/pkg/decktypes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryCache_GetSet(t *testing.T) {
	clock := testutils.NewStubClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	cache := NewSummaryCache(5*time.Minute, clock.Now)

	_, hit := cache.Get("u1")
	assert.False(t, hit)

	cache.Set("u1", []decktypes.ProjectSummary{{ID: "p1", Name: "Backend"}})

	summaries, hit := cache.Get("u1")
	require.True(t, hit)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Backend", summaries[0].Name)
}

func TestSummaryCache_FixedTTLExpiry(t *testing.T) {
	clock := testutils.NewStubClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	cache := NewSummaryCache(5*time.Minute, clock.Now)

	cache.Set("u1", []decktypes.ProjectSummary{{ID: "p1"}})

	clock.Advance(4 * time.Minute)
	_, hit := cache.Get("u1")
	assert.True(t, hit)

	// No sliding expiry: the read above must not extend the window.
	clock.Advance(time.Minute)
	_, hit = cache.Get("u1")
	assert.False(t, hit)
}

func TestSummaryCache_SetRestartsWindow(t *testing.T) {
	clock := testutils.NewStubClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	cache := NewSummaryCache(5*time.Minute, clock.Now)

	cache.Set("u1", []decktypes.ProjectSummary{{ID: "p1"}})
	clock.Advance(4 * time.Minute)
	cache.Set("u1", []decktypes.ProjectSummary{{ID: "p1"}})
	clock.Advance(4 * time.Minute)

	_, hit := cache.Get("u1")
	assert.True(t, hit)
}

func TestSummaryCache_Invalidate(t *testing.T) {
	cache := NewSummaryCache(5*time.Minute, nil)

	cache.Set("u1", []decktypes.ProjectSummary{{ID: "p1"}})
	cache.Set("u2", []decktypes.ProjectSummary{{ID: "p2"}})
	cache.Invalidate("u1")

	_, hit := cache.Get("u1")
	assert.False(t, hit)
	_, hit = cache.Get("u2")
	assert.True(t, hit)
}

func TestSummaryCache_PerUserEntries(t *testing.T) {
	cache := NewSummaryCache(5*time.Minute, nil)

	cache.Set("u1", []decktypes.ProjectSummary{{ID: "p1"}})

	_, hit := cache.Get("u2")
	assert.False(t, hit)
}
