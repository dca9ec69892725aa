package builtin

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskdeck/internal/resolver"
	"taskdeck/pkg/decktypes"
)

func init() {
	register(&AddSubtaskCommand{})
	register(&ViewSubtasksCommand{})
	register(&CompleteSubtaskCommand{})
	register(&DeleteSubtaskCommand{})
}

// resolveParentTodo resolves a subtask command's first argument against
// the top-level todo view.
func resolveParentTodo(p *decktypes.Project, identifier string) (decktypes.Todo, bool) {
	return resolver.Resolve(topLevelTodos(p), identifier)
}

// AddSubtaskCommand implements /add subtask.
type AddSubtaskCommand struct{}

// Type returns the command's enumeration entry.
func (c *AddSubtaskCommand) Type() decktypes.CommandType { return decktypes.CommandAddSubtask }

// Description returns a one-line summary.
func (c *AddSubtaskCommand) Description() string { return "Add a subtask under a todo" }

// Usage returns the syntax line.
func (c *AddSubtaskCommand) Usage() string {
	return "/add subtask <todo> <title> [--priority=level] [@Project]"
}

// HelpInfo returns structured help.
func (c *AddSubtaskCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []decktypes.HelpExample{
			{Command: `/add subtask "fix login bug" write regression test`, Description: "Subtask under the todo matching \"fix login bug\""},
			{Command: "/add subtask 1 update changelog", Description: "Subtask under the first listed todo"},
		},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *AddSubtaskCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *AddSubtaskCommand) Mutates() bool { return true }

// Execute stages a new subtask under the resolved parent.
func (c *AddSubtaskCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if cmd.IsWizardTrigger() {
		return decktypes.PromptOutcome("which todo, and what subtask? usage: %s", c.Usage())
	}
	if len(cmd.Args) < 2 {
		return decktypes.ErrorOutcomef("need a todo and a subtask title; usage: %s", c.Usage())
	}

	parent, ok := resolveParentTodo(req.Project, cmd.Args[0])
	if !ok {
		return notFound("todo", cmd.Args[0])
	}

	title := joinArgs(cmd.Args[1:])
	subtask := decktypes.Todo{
		ID:        uuid.New().String(),
		Title:     title,
		Priority:  parent.Priority,
		ParentID:  parent.ID,
		CreatedAt: time.Now(),
	}
	if v, ok := cmd.Flag("priority"); ok {
		if !decktypes.ValidPriority(v) {
			return decktypes.ErrorOutcomef("unknown priority %q (low, medium, high)", v)
		}
		subtask.Priority = decktypes.Priority(strings.ToLower(v))
	}

	req.Project.Todos = append(req.Project.Todos, subtask)
	req.Commit()

	return decktypes.SuccessOutcome("added subtask %q under %q", title, parent.Title)
}

// ViewSubtasksCommand implements /view subtasks.
type ViewSubtasksCommand struct{}

// Type returns the command's enumeration entry.
func (c *ViewSubtasksCommand) Type() decktypes.CommandType { return decktypes.CommandViewSubtasks }

// Description returns a one-line summary.
func (c *ViewSubtasksCommand) Description() string { return "List a todo's subtasks" }

// Usage returns the syntax line.
func (c *ViewSubtasksCommand) Usage() string { return "/view subtasks <todo> [@Project]" }

// HelpInfo returns structured help.
func (c *ViewSubtasksCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
}

// NeedsProject reports that this command operates on a project.
func (c *ViewSubtasksCommand) NeedsProject() bool { return true }

// Mutates reports that this command is read-only.
func (c *ViewSubtasksCommand) Mutates() bool { return false }

// Execute lists subtasks of the resolved parent.
func (c *ViewSubtasksCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if len(cmd.Args) == 0 {
		return decktypes.PromptOutcome("which todo? usage: %s", c.Usage())
	}

	parent, ok := resolveParentTodo(req.Project, joinArgs(cmd.Args))
	if !ok {
		return notFound("todo", joinArgs(cmd.Args))
	}

	subtasks := subtasksOf(req.Project, parent.ID)
	var lines []string
	for _, s := range subtasks {
		lines = append(lines, fmt.Sprintf("%s %s", checkbox(s.Done), s.Title))
	}

	header := fmt.Sprintf("subtasks of %q:", parent.Title)
	return decktypes.DataOutcome(subtasks, "%s", listing(header, lines))
}

// CompleteSubtaskCommand implements /complete subtask.
type CompleteSubtaskCommand struct{}

// Type returns the command's enumeration entry.
func (c *CompleteSubtaskCommand) Type() decktypes.CommandType {
	return decktypes.CommandCompleteSubtask
}

// Description returns a one-line summary.
func (c *CompleteSubtaskCommand) Description() string { return "Mark a subtask as done" }

// Usage returns the syntax line.
func (c *CompleteSubtaskCommand) Usage() string {
	return "/complete subtask <todo> <subtask> [@Project]"
}

// HelpInfo returns structured help.
func (c *CompleteSubtaskCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Notes:       []string{"The subtask identifier resolves within the todo's own subtask list."},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *CompleteSubtaskCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *CompleteSubtaskCommand) Mutates() bool { return true }

// Execute marks the resolved subtask done.
func (c *CompleteSubtaskCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if len(cmd.Args) < 2 {
		return decktypes.PromptOutcome("which todo and subtask? usage: %s", c.Usage())
	}

	parent, ok := resolveParentTodo(req.Project, cmd.Args[0])
	if !ok {
		return notFound("todo", cmd.Args[0])
	}

	identifier := joinArgs(cmd.Args[1:])
	match, ok := resolver.Resolve(subtasksOf(req.Project, parent.ID), identifier)
	if !ok {
		return notFound("subtask", identifier)
	}

	subtask := &req.Project.Todos[todoIndexByID(req.Project, match.ID)]
	if subtask.Done {
		return decktypes.SuccessOutcome("subtask %q is already done", subtask.Title)
	}
	now := time.Now()
	subtask.Done = true
	subtask.CompletedAt = &now
	req.Commit()

	return decktypes.SuccessOutcome("completed subtask %q", subtask.Title)
}

// DeleteSubtaskCommand implements /delete subtask.
type DeleteSubtaskCommand struct{}

// Type returns the command's enumeration entry.
func (c *DeleteSubtaskCommand) Type() decktypes.CommandType { return decktypes.CommandDeleteSubtask }

// Description returns a one-line summary.
func (c *DeleteSubtaskCommand) Description() string { return "Delete a subtask" }

// Usage returns the syntax line.
func (c *DeleteSubtaskCommand) Usage() string { return "/delete subtask <todo> <subtask> [@Project]" }

// HelpInfo returns structured help.
func (c *DeleteSubtaskCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
}

// NeedsProject reports that this command operates on a project.
func (c *DeleteSubtaskCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *DeleteSubtaskCommand) Mutates() bool { return true }

// Execute deletes the resolved subtask.
func (c *DeleteSubtaskCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if len(cmd.Args) < 2 {
		return decktypes.PromptOutcome("which todo and subtask? usage: %s", c.Usage())
	}

	parent, ok := resolveParentTodo(req.Project, cmd.Args[0])
	if !ok {
		return notFound("todo", cmd.Args[0])
	}

	identifier := joinArgs(cmd.Args[1:])
	match, ok := resolver.Resolve(subtasksOf(req.Project, parent.ID), identifier)
	if !ok {
		return notFound("subtask", identifier)
	}

	i := todoIndexByID(req.Project, match.ID)
	req.Project.Todos = append(req.Project.Todos[:i], req.Project.Todos[i+1:]...)
	req.Commit()

	return decktypes.SuccessOutcome("deleted subtask %q", match.Title)
}
