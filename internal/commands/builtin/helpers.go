// Package builtin implements the taskdeck command set: todos and
// subtasks, notes, dev-log entries, components and their relationships,
// the tech stack, project management, help, and version. Each command
// self-registers with the global registry in init().
package builtin

import (
	"fmt"
	"strings"

	"taskdeck/internal/commands"
	"taskdeck/pkg/decktypes"
)

func register(cmd decktypes.Command) {
	if err := commands.GetGlobalRegistry().Register(cmd); err != nil {
		panic(fmt.Sprintf("failed to register %q command: %v", cmd.Type(), err))
	}
}

// notFound builds the standard entity-not-found outcome carrying the
// identifier the user typed.
func notFound(entityKind, identifier string) decktypes.Outcome {
	return decktypes.ErrorOutcome(&decktypes.ResolutionError{
		Kind:       decktypes.ResolutionEntity,
		EntityKind: entityKind,
		Identifier: identifier,
	})
}

// joinArgs joins positional args back into one free-text value.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// topLevelTodos returns the non-subtask view of a project's todos, the
// ordering users see and index against.
func topLevelTodos(p *decktypes.Project) []decktypes.Todo {
	var out []decktypes.Todo
	for _, t := range p.Todos {
		if t.ParentID == "" {
			out = append(out, t)
		}
	}
	return out
}

// subtasksOf returns the subtask view under one parent, in stored order.
func subtasksOf(p *decktypes.Project, parentID string) []decktypes.Todo {
	var out []decktypes.Todo
	for _, t := range p.Todos {
		if t.ParentID == parentID {
			out = append(out, t)
		}
	}
	return out
}

// todoIndexByID finds a todo's position in the full stored slice.
func todoIndexByID(p *decktypes.Project, id string) int {
	for i := range p.Todos {
		if p.Todos[i].ID == id {
			return i
		}
	}
	return -1
}

// checkbox renders a done marker for listings.
func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// listing builds a numbered listing; the numbers are the 1-based
// indices the resolver accepts back.
func listing(header string, lines []string) string {
	if len(lines) == 0 {
		return header + "\n  (none)"
	}
	var b strings.Builder
	b.WriteString(header)
	for i, line := range lines {
		b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, line))
	}
	return b.String()
}
