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
	register(&AddTodoCommand{})
	register(&ViewTodosCommand{})
	register(&EditTodoCommand{})
	register(&CompleteTodoCommand{})
	register(&DeleteTodoCommand{})
}

// AddTodoCommand implements /add todo.
type AddTodoCommand struct{}

// Type returns the command's enumeration entry.
func (c *AddTodoCommand) Type() decktypes.CommandType { return decktypes.CommandAddTodo }

// Description returns a one-line summary.
func (c *AddTodoCommand) Description() string { return "Add a todo to a project" }

// Usage returns the syntax line.
func (c *AddTodoCommand) Usage() string {
	return "/add todo <title> [--priority=low|medium|high] [--description=text] [@Project]"
}

// HelpInfo returns structured help.
func (c *AddTodoCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []decktypes.HelpOption{
			{Name: "priority", Description: "Urgency level", Type: "string", Default: "medium"},
			{Name: "description", Description: "Longer free-text detail", Type: "string"},
		},
		Examples: []decktypes.HelpExample{
			{Command: "/add todo fix login bug --priority=high", Description: "High-priority todo in the current project"},
			{Command: "/add todo write docs @Side Project", Description: "Todo in a mentioned project"},
		},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *AddTodoCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *AddTodoCommand) Mutates() bool { return true }

// Execute stages a new todo and commits it.
func (c *AddTodoCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if cmd.IsWizardTrigger() {
		return decktypes.PromptOutcome("what should the todo say? usage: %s", c.Usage())
	}
	title := joinArgs(cmd.Args)
	if title == "" {
		return decktypes.ErrorOutcomef("a todo needs a title; usage: %s", c.Usage())
	}

	priority := decktypes.PriorityMedium
	if v, ok := cmd.Flag("priority"); ok {
		if !decktypes.ValidPriority(v) {
			return decktypes.ErrorOutcomef("unknown priority %q (low, medium, high)", v)
		}
		priority = decktypes.Priority(strings.ToLower(v))
	}
	description, _ := cmd.Flag("description")

	todo := decktypes.Todo{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Priority:    priority,
		CreatedAt:   time.Now(),
	}
	req.Project.Todos = append(req.Project.Todos, todo)
	req.Commit()

	return decktypes.SuccessOutcome("added todo %q to %s", title, req.Project.Name)
}

// ViewTodosCommand implements /view todos.
type ViewTodosCommand struct{}

// Type returns the command's enumeration entry.
func (c *ViewTodosCommand) Type() decktypes.CommandType { return decktypes.CommandViewTodos }

// Description returns a one-line summary.
func (c *ViewTodosCommand) Description() string { return "List a project's todos" }

// Usage returns the syntax line.
func (c *ViewTodosCommand) Usage() string { return "/view todos [--open] [@Project]" }

// HelpInfo returns structured help.
func (c *ViewTodosCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []decktypes.HelpOption{
			{Name: "open", Description: "Show only unfinished todos", Type: "bool", Default: "false"},
		},
		Notes: []string{
			"The listed numbers are the positional indices other todo commands accept.",
		},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *ViewTodosCommand) NeedsProject() bool { return true }

// Mutates reports that this command is read-only.
func (c *ViewTodosCommand) Mutates() bool { return false }

// Execute lists top-level todos.
func (c *ViewTodosCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	todos := topLevelTodos(req.Project)
	openOnly := cmd.BoolFlag("open")

	var lines []string
	for _, t := range todos {
		if openOnly && t.Done {
			continue
		}
		line := fmt.Sprintf("%s %s (%s)", checkbox(t.Done), t.Title, t.Priority)
		if n := len(subtasksOf(req.Project, t.ID)); n > 0 {
			line += fmt.Sprintf(" (%d subtask(s))", n)
		}
		lines = append(lines, line)
	}

	header := fmt.Sprintf("todos in %s:", req.Project.Name)
	return decktypes.DataOutcome(todos, "%s", listing(header, lines))
}

// EditTodoCommand implements /edit todo.
type EditTodoCommand struct{}

// Type returns the command's enumeration entry.
func (c *EditTodoCommand) Type() decktypes.CommandType { return decktypes.CommandEditTodo }

// Description returns a one-line summary.
func (c *EditTodoCommand) Description() string { return "Edit a todo's title, description, or priority" }

// Usage returns the syntax line.
func (c *EditTodoCommand) Usage() string {
	return "/edit todo <id|number|text> [--title=text] [--description=text] [--priority=level] [@Project]"
}

// HelpInfo returns structured help.
func (c *EditTodoCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []decktypes.HelpOption{
			{Name: "title", Description: "New title", Type: "string"},
			{Name: "description", Description: "New description", Type: "string"},
			{Name: "priority", Description: "New priority", Type: "string"},
		},
		Examples: []decktypes.HelpExample{
			{Command: "/edit todo 2 --priority=high", Description: "Edit the second listed todo"},
			{Command: `/edit todo login --title="fix login redirect"`, Description: "Edit the first todo whose title contains \"login\""},
		},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *EditTodoCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *EditTodoCommand) Mutates() bool { return true }

// Execute edits the resolved todo in place.
func (c *EditTodoCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if cmd.IsWizardTrigger() {
		return decktypes.PromptOutcome("which todo, and what should change? usage: %s", c.Usage())
	}
	if len(cmd.Args) == 0 {
		return decktypes.ErrorOutcomef("which todo? usage: %s", c.Usage())
	}

	identifier := joinArgs(cmd.Args)
	match, ok := resolver.Resolve(topLevelTodos(req.Project), identifier)
	if !ok {
		return notFound("todo", identifier)
	}
	todo := &req.Project.Todos[todoIndexByID(req.Project, match.ID)]

	changed := false
	if v, ok := cmd.Flag("title"); ok {
		todo.Title = v
		changed = true
	}
	if v, ok := cmd.Flag("description"); ok {
		todo.Description = v
		changed = true
	}
	if v, ok := cmd.Flag("priority"); ok {
		if !decktypes.ValidPriority(v) {
			return decktypes.ErrorOutcomef("unknown priority %q (low, medium, high)", v)
		}
		todo.Priority = decktypes.Priority(strings.ToLower(v))
		changed = true
	}
	if !changed {
		return decktypes.PromptOutcome("nothing to change; pass --title, --description, or --priority")
	}

	req.Commit()
	return decktypes.SuccessOutcome("updated todo %q", todo.Title)
}

// CompleteTodoCommand implements /complete todo.
type CompleteTodoCommand struct{}

// Type returns the command's enumeration entry.
func (c *CompleteTodoCommand) Type() decktypes.CommandType { return decktypes.CommandCompleteTodo }

// Description returns a one-line summary.
func (c *CompleteTodoCommand) Description() string { return "Mark a todo as done" }

// Usage returns the syntax line.
func (c *CompleteTodoCommand) Usage() string { return "/complete todo <id|number|text> [@Project]" }

// HelpInfo returns structured help.
func (c *CompleteTodoCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
}

// NeedsProject reports that this command operates on a project.
func (c *CompleteTodoCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *CompleteTodoCommand) Mutates() bool { return true }

// Execute marks the resolved todo done.
func (c *CompleteTodoCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if len(cmd.Args) == 0 {
		return decktypes.PromptOutcome("which todo? usage: %s", c.Usage())
	}

	identifier := joinArgs(cmd.Args)
	match, ok := resolver.Resolve(topLevelTodos(req.Project), identifier)
	if !ok {
		return notFound("todo", identifier)
	}

	todo := &req.Project.Todos[todoIndexByID(req.Project, match.ID)]
	if todo.Done {
		return decktypes.SuccessOutcome("todo %q is already done", todo.Title)
	}
	now := time.Now()
	todo.Done = true
	todo.CompletedAt = &now
	req.Commit()

	return decktypes.SuccessOutcome("completed todo %q", todo.Title)
}

// DeleteTodoCommand implements /delete todo.
type DeleteTodoCommand struct{}

// Type returns the command's enumeration entry.
func (c *DeleteTodoCommand) Type() decktypes.CommandType { return decktypes.CommandDeleteTodo }

// Description returns a one-line summary.
func (c *DeleteTodoCommand) Description() string { return "Delete a todo and its subtasks" }

// Usage returns the syntax line.
func (c *DeleteTodoCommand) Usage() string { return "/delete todo <id|number|text> [@Project]" }

// HelpInfo returns structured help.
func (c *DeleteTodoCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Notes:       []string{"Subtasks of the deleted todo are removed with it."},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *DeleteTodoCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *DeleteTodoCommand) Mutates() bool { return true }

// Execute deletes the resolved todo and cascades to its subtasks.
func (c *DeleteTodoCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if len(cmd.Args) == 0 {
		return decktypes.PromptOutcome("which todo? usage: %s", c.Usage())
	}

	identifier := joinArgs(cmd.Args)
	match, ok := resolver.Resolve(topLevelTodos(req.Project), identifier)
	if !ok {
		return notFound("todo", identifier)
	}

	removedSubtasks := 0
	kept := req.Project.Todos[:0]
	for _, t := range req.Project.Todos {
		if t.ID == match.ID {
			continue
		}
		if t.ParentID == match.ID {
			removedSubtasks++
			continue
		}
		kept = append(kept, t)
	}
	req.Project.Todos = kept
	req.Commit()

	if removedSubtasks > 0 {
		return decktypes.SuccessOutcome("deleted todo %q and %d subtask(s)", match.Title, removedSubtasks)
	}
	return decktypes.SuccessOutcome("deleted todo %q", match.Title)
}
