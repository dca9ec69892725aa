// This file contains the core interfaces that tie taskdeck's layers
// together:
//
//   - Resolvable: the {id, label} capability the generic entity resolver
//     works over.
//   - ProjectStore: the persistence collaborator (document-per-project).
//   - ProjectCacheInvalidator: the hook commands use after membership or
//     name mutations.
//   - Service: registrable infrastructure components.
//   - Command: one entry in the dispatch table.
//   - Request: everything a command handler receives besides the parsed
//     line itself.
package decktypes

import "context"

// Resolvable is the shared shape the entity resolver needs: an opaque
// stable id and a human label. Every list-shaped entity implements it.
type Resolvable interface {
	ResolveID() string
	ResolveLabel() string
}

// ProjectStore is the storage collaborator. Save persists the entire
// aggregate document atomically; there is no partial-entity write.
type ProjectStore interface {
	Create(ctx context.Context, p *Project) error
	Load(ctx context.Context, id string) (*Project, error)
	Save(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id string) error
	// ListOwned returns projects the user owns, in creation order.
	ListOwned(ctx context.Context, userID string) ([]*Project, error)
	// ListMember returns projects the user is a team member of,
	// excluding those the user owns.
	ListMember(ctx context.Context, userID string) ([]*Project, error)
}

// ProjectCacheInvalidator is the slice of the project cache that command
// handlers see: enough to drop a user's entry after a mutation that
// could change their accessible-project set.
type ProjectCacheInvalidator interface {
	Invalidate(userID string)
}

// Service is an infrastructure component registered at startup.
type Service interface {
	Name() string
	Initialize() error
}

// Session is the per-user ambient state the shell carries between
// commands: who is typing and which project is current.
type Session struct {
	UserID           string
	CurrentProjectID string
}

// Request carries the resolved context a command executes against.
// Project is nil for commands that do not operate on one (project
// management, help, version).
type Request struct {
	Ctx     context.Context
	Session *Session
	Project *Project
	Store   ProjectStore
	Cache   ProjectCacheInvalidator

	commitRequested bool
}

// Commit marks the staged aggregate for persistence. Handlers stage
// mutations on req.Project and call Commit once; the dispatcher performs
// the single save afterwards, so a multi-part mutation (both sides of a
// relationship pair, a todo plus its subtasks) is never half-persisted.
func (r *Request) Commit() { r.commitRequested = true }

// CommitRequested reports whether the handler staged mutations to save.
func (r *Request) CommitRequested() bool { return r.commitRequested }

// Command is one operation in the dispatch table. Implementations
// self-register with the command registry in init().
type Command interface {
	// Type returns the command's entry in the closed enumeration.
	Type() CommandType
	// Description is a one-line summary for listings.
	Description() string
	// Usage is the syntax line shown in help and prompt outcomes.
	Usage() string
	// HelpInfo returns the full structured help.
	HelpInfo() HelpInfo
	// NeedsProject reports whether dispatch must resolve a project
	// before executing.
	NeedsProject() bool
	// Mutates reports whether the command writes; mutating commands on
	// a resolved project require edit permission.
	Mutates() bool
	// Execute runs the command. It returns an outcome rather than
	// printing; the caller renders and persists.
	Execute(cmd ParsedCommand, req *Request) Outcome
}
