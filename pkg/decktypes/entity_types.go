// This file contains the project aggregate and its sub-entity records:
// todos and subtasks, notes, dev-log entries, components with their
// bidirectional relationships, and the tech stack. The aggregate is
// persisted as one document; every list-shaped entity implements
// Resolvable so the generic resolver works over all of them.
package decktypes

import (
	"strings"
	"time"
)

// Role is a member's access level on a project.
type Role string

// Access roles, in decreasing order of capability.
const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// CanEdit reports whether the role permits mutating commands.
func (r Role) CanEdit() bool {
	return r == RoleOwner || r == RoleEditor
}

// Member is one user's membership record on a project.
type Member struct {
	UserID string `json:"userId" yaml:"userId"`
	Role   Role   `json:"role" yaml:"role"`
}

// Priority is a todo's urgency level.
type Priority string

// Todo priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether s names a known priority.
func ValidPriority(s string) bool {
	switch Priority(strings.ToLower(s)) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Todo is a task on a project. A todo with a non-empty ParentID is a
// subtask of that parent.
type Todo struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	Done        bool       `json:"done" yaml:"done"`
	ParentID    string     `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
}

// ResolveID implements Resolvable.
func (t Todo) ResolveID() string { return t.ID }

// ResolveLabel implements Resolvable.
func (t Todo) ResolveLabel() string { return t.Title }

// Note is a free-form note on a project.
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content,omitempty" yaml:"content,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// ResolveID implements Resolvable.
func (n Note) ResolveID() string { return n.ID }

// ResolveLabel implements Resolvable.
func (n Note) ResolveLabel() string { return n.Title }

// DevLogEntry is one dated entry in a project's development log.
type DevLogEntry struct {
	ID        string    `json:"id" yaml:"id"`
	Entry     string    `json:"entry" yaml:"entry"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// ResolveID implements Resolvable.
func (d DevLogEntry) ResolveID() string { return d.ID }

// ResolveLabel implements Resolvable.
func (d DevLogEntry) ResolveLabel() string { return d.Entry }

// RelationType is the closed set of relationship kinds between
// components. Both edges of a pair carry the same type; the direction
// is read off which side holds the edge.
type RelationType string

// Relationship types.
const (
	RelationUses          RelationType = "uses"
	RelationUsedBy        RelationType = "used_by"
	RelationDependsOn     RelationType = "depends_on"
	RelationDependencyOf  RelationType = "dependency_of"
	RelationCalls         RelationType = "calls"
	RelationCalledBy      RelationType = "called_by"
	RelationExtends       RelationType = "extends"
	RelationExtendedBy    RelationType = "extended_by"
	RelationImplements    RelationType = "implements"
	RelationImplementedBy RelationType = "implemented_by"
	RelationContains      RelationType = "contains"
	RelationPartOf        RelationType = "part_of"
)

var relationTypes = []RelationType{
	RelationUses, RelationUsedBy, RelationDependsOn, RelationDependencyOf,
	RelationCalls, RelationCalledBy, RelationExtends, RelationExtendedBy,
	RelationImplements, RelationImplementedBy, RelationContains, RelationPartOf,
}

// ValidRelationType reports whether s names a known relation type.
func ValidRelationType(s string) bool {
	rt := RelationType(strings.ToLower(s))
	for _, known := range relationTypes {
		if rt == known {
			return true
		}
	}
	return false
}

// RelationTypeNames returns all relation type names for error messages.
func RelationTypeNames() []string {
	names := make([]string, 0, len(relationTypes))
	for _, rt := range relationTypes {
		names = append(names, string(rt))
	}
	return names
}

// Relationship is one directed edge in a component's relationship list.
// Every edge exists as a pair: a forward edge on the source component
// and a mirrored edge on the target whose TargetID points back at the
// source, sharing one RelationshipID, type, and description.
type Relationship struct {
	RelationshipID string       `json:"relationshipId" yaml:"relationshipId"`
	TargetID       string       `json:"targetId" yaml:"targetId"`
	Type           RelationType `json:"type" yaml:"type"`
	Description    string       `json:"description,omitempty" yaml:"description,omitempty"`
}

// ResolveID implements Resolvable using the shared relationship id.
func (r Relationship) ResolveID() string { return r.RelationshipID }

// ResolveLabel implements Resolvable; relationships are matched by type.
func (r Relationship) ResolveLabel() string { return string(r.Type) }

// Component is an architectural piece of a project (service, module,
// database, …) carrying its half of every relationship it takes part in.
type Component struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	Description   string         `json:"description,omitempty" yaml:"description,omitempty"`
	Category      string         `json:"category,omitempty" yaml:"category,omitempty"`
	Relationships []Relationship `json:"relationships" yaml:"relationships"`
}

// ResolveID implements Resolvable.
func (c Component) ResolveID() string { return c.ID }

// ResolveLabel implements Resolvable.
func (c Component) ResolveLabel() string { return c.Name }

// StackItem is one entry in a project's selected technology list.
type StackItem struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// ResolveID implements Resolvable.
func (s StackItem) ResolveID() string { return s.ID }

// ResolveLabel implements Resolvable.
func (s StackItem) ResolveLabel() string { return s.Name }

// Project is the aggregate root. The store persists it as one document;
// all sub-entity mutation is staged in memory and committed by a single
// save.
type Project struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	OwnerID     string        `json:"ownerId" yaml:"ownerId"`
	Members     []Member      `json:"members,omitempty" yaml:"members,omitempty"`
	Archived    bool          `json:"archived" yaml:"archived"`
	CreatedAt   time.Time     `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt" yaml:"updatedAt"`
	Todos       []Todo        `json:"todos" yaml:"todos"`
	Notes       []Note        `json:"notes" yaml:"notes"`
	DevLog      []DevLogEntry `json:"devLog" yaml:"devLog"`
	Components  []Component   `json:"components" yaml:"components"`
	Stack       []StackItem   `json:"stack" yaml:"stack"`
}

// ResolveID implements Resolvable so accessible-project lists work with
// the generic resolver (switching projects by id, index, or name).
func (p *Project) ResolveID() string { return p.ID }

// ResolveLabel implements Resolvable.
func (p *Project) ResolveLabel() string { return p.Name }

// RoleOf returns the user's effective role on the project, or empty when
// the user has no access. Ownership wins over a duplicate member record.
func (p *Project) RoleOf(userID string) Role {
	if p.OwnerID == userID {
		return RoleOwner
	}
	for _, m := range p.Members {
		if m.UserID == userID {
			return m.Role
		}
	}
	return ""
}

// ComponentByID returns a pointer into the Components slice, or nil.
func (p *Project) ComponentByID(id string) *Component {
	for i := range p.Components {
		if p.Components[i].ID == id {
			return &p.Components[i]
		}
	}
	return nil
}

// ProjectSummary is the lightweight cached shadow of a project used to
// accelerate mention resolution. It is never authoritative: permission
// decisions always re-read the source of truth.
type ProjectSummary struct {
	ID        string
	Name      string
	OwnerID   string
	Role      Role
	Archived  bool
	UpdatedAt time.Time
}

// Summarize builds the cache entry for one project as seen by a user.
func Summarize(p *Project, userID string) ProjectSummary {
	return ProjectSummary{
		ID:        p.ID,
		Name:      p.Name,
		OwnerID:   p.OwnerID,
		Role:      p.RoleOf(userID),
		Archived:  p.Archived,
		UpdatedAt: p.UpdatedAt,
	}
}
