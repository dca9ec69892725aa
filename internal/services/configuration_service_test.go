package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/projects"
)

type stubService struct {
	name        string
	initialized bool
	initErr     error
}

func (s *stubService) Name() string { return s.name }
func (s *stubService) Initialize() error {
	s.initialized = true
	return s.initErr
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterService(&stubService{name: "a"}))

	svc, err := r.GetService("a")
	require.NoError(t, err)
	assert.Equal(t, "a", svc.Name())

	_, err = r.GetService("missing")
	assert.Error(t, err)
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterService(&stubService{name: "a"}))
	assert.Error(t, r.RegisterService(&stubService{name: "a"}))
}

func TestRegistry_InitializeAllStopsOnFailure(t *testing.T) {
	r := NewRegistry()
	first := &stubService{name: "first"}
	failing := &stubService{name: "failing", initErr: assert.AnError}
	last := &stubService{name: "last"}
	require.NoError(t, r.RegisterService(first))
	require.NoError(t, r.RegisterService(failing))
	require.NoError(t, r.RegisterService(last))

	err := r.InitializeAll()
	require.Error(t, err)
	assert.True(t, first.initialized)
	assert.False(t, last.initialized)
}

func TestConfiguration_Defaults(t *testing.T) {
	c := NewConfigurationService()
	require.NoError(t, c.Initialize())

	assert.NotEmpty(t, c.DBPath())
	assert.Equal(t, "warn", c.LogLevel())
	assert.Equal(t, projects.DefaultCacheTTL, c.CacheTTL())
	assert.NotEmpty(t, c.User())
}

func TestConfiguration_EnvOverrides(t *testing.T) {
	t.Setenv("TASKDECK_LOG_LEVEL", "debug")
	t.Setenv("TASKDECK_CACHE_TTL", "30s")
	t.Setenv("TASKDECK_USER", "alice")

	c := NewConfigurationService()
	require.NoError(t, c.Initialize())

	assert.Equal(t, "debug", c.LogLevel())
	assert.Equal(t, 30*time.Second, c.CacheTTL())
	assert.Equal(t, "alice", c.User())
}
