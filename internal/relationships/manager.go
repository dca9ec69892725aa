// Package relationships enforces the bidirectional-edge invariant over a
// project's component graph. Every relationship exists as a pair: a
// forward edge on the source component and a mirrored edge on the
// target pointing back at the source, sharing one relationship id and
// carrying the same type and description. All operations here are pure
// staged mutations over the in-memory aggregate; the caller commits the
// whole project in a single save afterwards, so both sides of a pair are
// always persisted together.
package relationships

import (
	"fmt"

	"github.com/google/uuid"

	"taskdeck/internal/logger"
	"taskdeck/internal/resolver"
	"taskdeck/pkg/decktypes"
)

// Manager mutates component relationship lists while keeping mirrors in
// sync.
type Manager struct {
	log interface {
		Warn(msg interface{}, keyvals ...interface{})
	}
}

// NewManager creates a relationship manager with a styled component
// logger for consistency warnings.
func NewManager() *Manager {
	return &Manager{log: logger.NewStyledLogger("relationships")}
}

// Add creates a relationship pair between two components: the forward
// edge on the source and a mirrored edge on the target pointing back at
// the source, both with the same type and description under one freshly
// minted relationship id. It rejects self-relationships and a second
// edge between the same pair of components.
func (m *Manager) Add(p *decktypes.Project, sourceID, targetID string, relType decktypes.RelationType, description string) (decktypes.Relationship, error) {
	if sourceID == targetID {
		return decktypes.Relationship{}, fmt.Errorf("a component cannot have a relationship with itself")
	}

	source := p.ComponentByID(sourceID)
	if source == nil {
		return decktypes.Relationship{}, fmt.Errorf("source component %s not found", sourceID)
	}
	target := p.ComponentByID(targetID)
	if target == nil {
		return decktypes.Relationship{}, fmt.Errorf("target component %s not found", targetID)
	}

	for _, edge := range source.Relationships {
		if edge.TargetID == targetID {
			return decktypes.Relationship{}, &decktypes.ConsistencyError{
				Kind:           decktypes.ConsistencyDuplicateEdge,
				RelationshipID: edge.RelationshipID,
				SourceID:       sourceID,
				TargetID:       targetID,
			}
		}
	}

	forward := decktypes.Relationship{
		RelationshipID: uuid.New().String(),
		TargetID:       targetID,
		Type:           relType,
		Description:    description,
	}
	mirror := decktypes.Relationship{
		RelationshipID: forward.RelationshipID,
		TargetID:       sourceID,
		Type:           relType,
		Description:    description,
	}

	source.Relationships = append(source.Relationships, forward)
	target.Relationships = append(target.Relationships, mirror)
	return forward, nil
}

// Update locates an edge on the source component (by relationship id,
// 1-based position in the component's edge list, or type substring),
// applies the requested changes, and propagates them to the mirrored
// edge. An empty newType keeps the current type; a nil newDescription
// keeps the current description. A missing mirror does not fail the
// source-side edit: it is logged and returned as a repair note.
func (m *Manager) Update(p *decktypes.Project, sourceID, identifier string, newType decktypes.RelationType, newDescription *string) (decktypes.Relationship, string, error) {
	source := p.ComponentByID(sourceID)
	if source == nil {
		return decktypes.Relationship{}, "", fmt.Errorf("component %s not found", sourceID)
	}

	i := resolver.ResolveIndex(source.Relationships, identifier)
	if i < 0 {
		return decktypes.Relationship{}, "", &decktypes.ResolutionError{
			Kind:       decktypes.ResolutionEntity,
			EntityKind: "relationship",
			Identifier: identifier,
		}
	}

	edge := &source.Relationships[i]
	if newType != "" {
		edge.Type = newType
	}
	if newDescription != nil {
		edge.Description = *newDescription
	}

	repair := ""
	mirror := findEdge(p.ComponentByID(edge.TargetID), edge.RelationshipID)
	if mirror == nil {
		repair = m.reportMissingMirror(edge.RelationshipID, sourceID, edge.TargetID)
	} else {
		mirror.Type = edge.Type
		mirror.Description = edge.Description
	}

	return *edge, repair, nil
}

// Remove deletes an edge from the source component and the matching
// edge from the other side. Removing only one side is never a valid
// terminal state; a missing mirror is surfaced as a repair note.
func (m *Manager) Remove(p *decktypes.Project, sourceID, identifier string) (decktypes.Relationship, string, error) {
	source := p.ComponentByID(sourceID)
	if source == nil {
		return decktypes.Relationship{}, "", fmt.Errorf("component %s not found", sourceID)
	}

	i := resolver.ResolveIndex(source.Relationships, identifier)
	if i < 0 {
		return decktypes.Relationship{}, "", &decktypes.ResolutionError{
			Kind:       decktypes.ResolutionEntity,
			EntityKind: "relationship",
			Identifier: identifier,
		}
	}

	removed := source.Relationships[i]
	source.Relationships = append(source.Relationships[:i], source.Relationships[i+1:]...)

	repair := ""
	if !deleteEdge(p.ComponentByID(removed.TargetID), removed.RelationshipID) {
		repair = m.reportMissingMirror(removed.RelationshipID, sourceID, removed.TargetID)
	}

	return removed, repair, nil
}

// RemoveAllTargeting is the orphan sweep run when a component is
// deleted: it removes every edge on every remaining component whose
// target is the deleted id, returning the count removed.
func (m *Manager) RemoveAllTargeting(p *decktypes.Project, deletedComponentID string) int {
	removed := 0
	for i := range p.Components {
		comp := &p.Components[i]
		kept := comp.Relationships[:0]
		for _, edge := range comp.Relationships {
			if edge.TargetID == deletedComponentID {
				removed++
				continue
			}
			kept = append(kept, edge)
		}
		comp.Relationships = kept
	}
	return removed
}

func (m *Manager) reportMissingMirror(relationshipID, sourceID, targetID string) string {
	err := &decktypes.ConsistencyError{
		Kind:           decktypes.ConsistencyMirrorMissing,
		RelationshipID: relationshipID,
		SourceID:       sourceID,
		TargetID:       targetID,
	}
	m.log.Warn("relationship mirror missing", "relationship", relationshipID, "source", sourceID, "target", targetID)
	return err.Error()
}

// findEdge returns a pointer to the component's edge with the given
// relationship id, or nil. A nil component yields nil.
func findEdge(c *decktypes.Component, relationshipID string) *decktypes.Relationship {
	if c == nil {
		return nil
	}
	for i := range c.Relationships {
		if c.Relationships[i].RelationshipID == relationshipID {
			return &c.Relationships[i]
		}
	}
	return nil
}

// deleteEdge removes the component's edge with the given relationship
// id, reporting whether anything was removed.
func deleteEdge(c *decktypes.Component, relationshipID string) bool {
	if c == nil {
		return false
	}
	for i := range c.Relationships {
		if c.Relationships[i].RelationshipID == relationshipID {
			c.Relationships = append(c.Relationships[:i], c.Relationships[i+1:]...)
			return true
		}
	}
	return false
}
