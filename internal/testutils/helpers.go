// Package testutils provides deterministic helpers shared by taskdeck
// tests: a stub clock for TTL assertions without sleeps, an in-memory
// project store, and seeded project aggregates.
package testutils

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"taskdeck/pkg/decktypes"
)

// StubClock is a manually advanced clock.
type StubClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewStubClock creates a clock frozen at the given instant.
func NewStubClock(now time.Time) *StubClock {
	return &StubClock{now: now}
}

// Now returns the clock's current instant.
func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MemoryStore is an in-memory decktypes.ProjectStore. Load and the list
// methods return deep copies so staged mutations only become visible
// through Save, matching the real store's document semantics. Call
// counters let tests assert which resolution path ran.
type MemoryStore struct {
	mu       sync.Mutex
	projects map[string]*decktypes.Project
	order    []string

	LoadCalls      int
	ListOwnedCalls int
	SaveCalls      int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string]*decktypes.Project)}
}

// Create implements decktypes.ProjectStore.
func (s *MemoryStore) Create(_ context.Context, p *decktypes.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.projects[p.ID]; exists {
		return fmt.Errorf("project %s already exists", p.ID)
	}
	s.projects[p.ID] = clone(p)
	s.order = append(s.order, p.ID)
	return nil
}

// Load implements decktypes.ProjectStore.
func (s *MemoryStore) Load(_ context.Context, id string) (*decktypes.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LoadCalls++
	p, ok := s.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s not found", id)
	}
	return clone(p), nil
}

// Save implements decktypes.ProjectStore.
func (s *MemoryStore) Save(_ context.Context, p *decktypes.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SaveCalls++
	if _, ok := s.projects[p.ID]; !ok {
		return fmt.Errorf("project %s not found", p.ID)
	}
	s.projects[p.ID] = clone(p)
	return nil
}

// Delete implements decktypes.ProjectStore.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return fmt.Errorf("project %s not found", id)
	}
	delete(s.projects, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListOwned implements decktypes.ProjectStore.
func (s *MemoryStore) ListOwned(_ context.Context, userID string) ([]*decktypes.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ListOwnedCalls++
	var out []*decktypes.Project
	for _, id := range s.order {
		if p := s.projects[id]; p.OwnerID == userID {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

// ListMember implements decktypes.ProjectStore.
func (s *MemoryStore) ListMember(_ context.Context, userID string) ([]*decktypes.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*decktypes.Project
	for _, id := range s.order {
		p := s.projects[id]
		if p.OwnerID == userID {
			continue
		}
		for _, m := range p.Members {
			if m.UserID == userID {
				out = append(out, clone(p))
				break
			}
		}
	}
	return out, nil
}

// Current returns the stored (committed) state of a project for
// assertions, bypassing the copy-on-load discipline.
func (s *MemoryStore) Current(id string) *decktypes.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.projects[id])
}

func clone(p *decktypes.Project) *decktypes.Project {
	if p == nil {
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		panic(err)
	}
	var out decktypes.Project
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return &out
}

// SeedProject builds a project aggregate with a few of each sub-entity,
// owned by the given user.
func SeedProject(id, name, ownerID string) *decktypes.Project {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &decktypes.Project{
		ID:        id,
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
		Todos: []decktypes.Todo{
			{ID: id + "-t1", Title: "Fix login bug", Priority: decktypes.PriorityHigh, CreatedAt: now},
			{ID: id + "-t2", Title: "Write docs", Priority: decktypes.PriorityLow, CreatedAt: now},
		},
		Notes: []decktypes.Note{
			{ID: id + "-n1", Title: "Architecture sketch", Content: "boxes and arrows", CreatedAt: now, UpdatedAt: now},
		},
		DevLog: []decktypes.DevLogEntry{
			{ID: id + "-d1", Entry: "Project kicked off", CreatedAt: now},
		},
		Components: []decktypes.Component{
			{ID: id + "-c1", Name: "api"},
			{ID: id + "-c2", Name: "worker"},
		},
		Stack: []decktypes.StackItem{
			{ID: id + "-s1", Name: "Go", Category: "language"},
		},
	}
}
