package projects

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"taskdeck/internal/logger"
	"taskdeck/pkg/decktypes"
)

// suggestionLimit caps the similar-name list on a failed mention lookup.
const suggestionLimit = 5

// Candidate is one entry in a needs-selection result.
type Candidate struct {
	ID          string
	Name        string
	Description string
}

// Resolution is the outcome of a project lookup: exactly one of Project
// set or NeedsSelection true.
type Resolution struct {
	Project        *decktypes.Project
	NeedsSelection bool
	Candidates     []Candidate
}

// Resolver maps (user, optional mention, optional current project) to
// one authoritative project. The summary cache is consulted only on the
// mention fast path; every returned project is re-read from the store.
type Resolver struct {
	store decktypes.ProjectStore
	cache *SummaryCache
	log   *log.Logger
}

// NewResolver creates a project resolver backed by the given store and
// cache.
func NewResolver(store decktypes.ProjectStore, cache *SummaryCache) *Resolver {
	return &Resolver{
		store: store,
		cache: cache,
		log:   logger.NewStyledLogger("projects"),
	}
}

// Cache exposes the resolver's cache for invalidation hooks.
func (r *Resolver) Cache() *SummaryCache { return r.cache }

// Resolve applies the priority order: mention, then current project,
// then needs-selection over the user's full accessible set.
func (r *Resolver) Resolve(ctx context.Context, userID, mention, currentProjectID string) (Resolution, error) {
	if mention != "" {
		return r.resolveMention(ctx, userID, mention)
	}

	if currentProjectID != "" {
		p, err := r.store.Load(ctx, currentProjectID)
		if err == nil && p != nil && p.RoleOf(userID) != "" {
			return Resolution{Project: p}, nil
		}
		// An unloadable or inaccessible current project falls through to
		// selection rather than exposing it.
		if err != nil {
			r.log.Debug("current project unavailable", "project", currentProjectID, "error", err)
		}
	}

	accessible, err := r.accessibleProjects(ctx, userID)
	if err != nil {
		return Resolution{}, err
	}
	if len(accessible) == 0 {
		return Resolution{}, &decktypes.NoProjectsError{UserID: userID}
	}

	candidates := make([]Candidate, 0, len(accessible))
	for _, p := range accessible {
		candidates = append(candidates, Candidate{ID: p.ID, Name: p.Name, Description: p.Description})
	}
	return Resolution{NeedsSelection: true, Candidates: candidates}, nil
}

// ResolveWithEditCheck wraps Resolve and rejects with a PermissionError
// when the resolved project's effective role is viewer-only. The project
// is not exposed through the error.
func (r *Resolver) ResolveWithEditCheck(ctx context.Context, userID, mention, currentProjectID string) (Resolution, error) {
	res, err := r.Resolve(ctx, userID, mention, currentProjectID)
	if err != nil || res.Project == nil {
		return res, err
	}
	role := res.Project.RoleOf(userID)
	if !role.CanEdit() {
		return Resolution{}, &decktypes.PermissionError{
			UserID:      userID,
			ProjectName: res.Project.Name,
			Role:        role,
		}
	}
	return res, nil
}

// resolveMention is the @mention path: cached summary match first, then
// a direct exact-name query over owned and team projects, then a
// suggestion-carrying not-found error.
func (r *Resolver) resolveMention(ctx context.Context, userID, mention string) (Resolution, error) {
	if summaries, hit := r.cache.Get(userID); hit {
		for _, s := range summaries {
			if strings.EqualFold(s.Name, mention) {
				// The cache locates, the store decides: re-fetch the
				// authoritative record before returning it.
				p, err := r.store.Load(ctx, s.ID)
				if err == nil && p != nil && p.RoleOf(userID) != "" {
					return Resolution{Project: p}, nil
				}
				break
			}
		}
	}

	owned, err := r.store.ListOwned(ctx, userID)
	if err != nil {
		return Resolution{}, err
	}
	for _, p := range owned {
		if strings.EqualFold(p.Name, mention) {
			r.populateCache(ctx, userID, owned, nil)
			return Resolution{Project: p}, nil
		}
	}

	member, err := r.store.ListMember(ctx, userID)
	if err != nil {
		return Resolution{}, err
	}
	for _, p := range member {
		if strings.EqualFold(p.Name, mention) {
			r.populateCache(ctx, userID, owned, member)
			return Resolution{Project: p}, nil
		}
	}

	return Resolution{}, &decktypes.ResolutionError{
		Kind:        decktypes.ResolutionProject,
		EntityKind:  "project",
		Identifier:  mention,
		Suggestions: suggestNames(mention, append(owned, member...)),
	}
}

// populateCache recomputes the user's full summary list after a
// successful mention lookup that missed the cache.
func (r *Resolver) populateCache(ctx context.Context, userID string, owned, member []*decktypes.Project) {
	if member == nil {
		var err error
		member, err = r.store.ListMember(ctx, userID)
		if err != nil {
			r.log.Debug("cache population skipped", "user", userID, "error", err)
			return
		}
	}
	all := append(append([]*decktypes.Project{}, owned...), member...)
	summaries := make([]decktypes.ProjectSummary, 0, len(all))
	for _, p := range all {
		summaries = append(summaries, decktypes.Summarize(p, userID))
	}
	r.cache.Set(userID, summaries)
}

// accessibleProjects returns owned ∪ team-member projects, deduplicated
// with ownership winning.
func (r *Resolver) accessibleProjects(ctx context.Context, userID string) ([]*decktypes.Project, error) {
	owned, err := r.store.ListOwned(ctx, userID)
	if err != nil {
		return nil, err
	}
	member, err := r.store.ListMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(owned))
	all := make([]*decktypes.Project, 0, len(owned)+len(member))
	for _, p := range owned {
		seen[p.ID] = true
		all = append(all, p)
	}
	for _, p := range member {
		if !seen[p.ID] {
			all = append(all, p)
		}
	}
	return all, nil
}

// suggestNames returns up to suggestionLimit project names containing
// the mention, case-insensitively.
func suggestNames(mention string, projects []*decktypes.Project) []string {
	lowered := strings.ToLower(mention)
	var out []string
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Name), lowered) {
			out = append(out, p.Name)
			if len(out) == suggestionLimit {
				break
			}
		}
	}
	return out
}
