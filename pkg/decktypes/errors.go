// This file contains the error taxonomy: parse, batch, resolution,
// permission, and consistency errors. All are plain error values with
// enough structure for callers to build actionable messages.
package decktypes

import (
	"fmt"
	"strings"
)

// ParseErrorKind classifies a ParseError.
type ParseErrorKind string

// Parse error kinds.
const (
	ParseUnknownCommand   ParseErrorKind = "unknown_command"
	ParseMalformedQuoting ParseErrorKind = "malformed_quoting"
	ParseDuplicateMention ParseErrorKind = "duplicate_mention"
	ParseEmptyCommand     ParseErrorKind = "empty_command"
)

// ParseError reports a malformed command line. Detected eagerly, before
// any side effect for the command occurs.
type ParseError struct {
	Kind        ParseErrorKind
	Command     string
	Suggestions []string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ParseUnknownCommand:
		msg := fmt.Sprintf("unknown command %q", e.Command)
		if len(e.Suggestions) > 0 {
			msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
		}
		return msg
	case ParseMalformedQuoting:
		return "unterminated quote in command"
	case ParseDuplicateMention:
		return "only one @project mention is allowed per command"
	case ParseEmptyCommand:
		return "empty command"
	}
	return "parse error"
}

// SuggestionList exposes suggestions for outcome building.
func (e *ParseError) SuggestionList() []string { return e.Suggestions }

// BatchError reports a submission rejected before any command runs.
type BatchError struct {
	Count int
	Limit int
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("too many commands in batch: %d (limit %d)", e.Count, e.Limit)
}

// ResolutionErrorKind distinguishes what failed to resolve.
type ResolutionErrorKind string

// Resolution error kinds.
const (
	ResolutionProject ResolutionErrorKind = "project"
	ResolutionEntity  ResolutionErrorKind = "entity"
)

// ResolutionError reports an identifier that matched nothing. For
// project lookups it may carry up to five similar project names.
type ResolutionError struct {
	Kind        ResolutionErrorKind
	EntityKind  string
	Identifier  string
	Suggestions []string
}

func (e *ResolutionError) Error() string {
	kind := e.EntityKind
	if kind == "" {
		kind = string(e.Kind)
	}
	msg := fmt.Sprintf("%s %q not found", kind, e.Identifier)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (similar: %s)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// SuggestionList exposes suggestions for outcome building.
func (e *ResolutionError) SuggestionList() []string { return e.Suggestions }

// NoProjectsError reports a user with an empty accessible-project set.
type NoProjectsError struct {
	UserID string
}

func (e *NoProjectsError) Error() string {
	return "you have no projects yet; create one with /create project"
}

// PermissionError reports a viewer attempting a write. The project is
// resolved but never exposed through this error.
type PermissionError struct {
	UserID      string
	ProjectName string
	Role        Role
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("you have %s access to %q and cannot make changes", e.Role, e.ProjectName)
}

// ConsistencyErrorKind classifies a relationship-graph anomaly.
type ConsistencyErrorKind string

// Consistency error kinds.
const (
	ConsistencyDuplicateEdge ConsistencyErrorKind = "duplicate_edge"
	ConsistencyMirrorMissing ConsistencyErrorKind = "mirror_missing"
)

// ConsistencyError reports a violated relationship invariant. Duplicate
// edges reject the operation; a missing mirror is surfaced for repair
// without failing the source-side write.
type ConsistencyError struct {
	Kind           ConsistencyErrorKind
	RelationshipID string
	SourceID       string
	TargetID       string
}

func (e *ConsistencyError) Error() string {
	switch e.Kind {
	case ConsistencyDuplicateEdge:
		return "a relationship between these components already exists"
	case ConsistencyMirrorMissing:
		return fmt.Sprintf("relationship %s has no mirror edge on its target component", e.RelationshipID)
	}
	return "relationship consistency error"
}
