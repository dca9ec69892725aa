package builtin

import (
	"fmt"

	"github.com/google/uuid"

	"taskdeck/internal/resolver"
	"taskdeck/pkg/decktypes"
)

func init() {
	register(&AddStackCommand{})
	register(&ViewStackCommand{})
	register(&DeleteStackCommand{})
}

// AddStackCommand implements /add stack.
type AddStackCommand struct{}

// Type returns the command's enumeration entry.
func (c *AddStackCommand) Type() decktypes.CommandType { return decktypes.CommandAddStack }

// Description returns a one-line summary.
func (c *AddStackCommand) Description() string { return "Add a technology to the project stack" }

// Usage returns the syntax line.
func (c *AddStackCommand) Usage() string {
	return "/add stack <name> [--category=kind] [@Project]"
}

// HelpInfo returns structured help.
func (c *AddStackCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []decktypes.HelpOption{
			{Name: "category", Description: "Where the technology sits (language, database, ...)", Type: "string"},
		},
		Examples: []decktypes.HelpExample{
			{Command: "/add stack postgres --category=database", Description: "Stack entry in the current project"},
		},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *AddStackCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *AddStackCommand) Mutates() bool { return true }

// Execute stages a new stack entry.
func (c *AddStackCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if cmd.IsWizardTrigger() {
		return decktypes.PromptOutcome("what technology? usage: %s", c.Usage())
	}
	name := joinArgs(cmd.Args)
	if name == "" {
		return decktypes.ErrorOutcomef("a stack entry needs a name; usage: %s", c.Usage())
	}
	category, _ := cmd.Flag("category")

	item := decktypes.StackItem{
		ID:       uuid.New().String(),
		Name:     name,
		Category: category,
	}
	req.Project.Stack = append(req.Project.Stack, item)
	req.Commit()

	return decktypes.SuccessOutcome("added %q to the %s stack", name, req.Project.Name)
}

// ViewStackCommand implements /view stack.
type ViewStackCommand struct{}

// Type returns the command's enumeration entry.
func (c *ViewStackCommand) Type() decktypes.CommandType { return decktypes.CommandViewStack }

// Description returns a one-line summary.
func (c *ViewStackCommand) Description() string { return "List the project's tech stack" }

// Usage returns the syntax line.
func (c *ViewStackCommand) Usage() string { return "/view stack [@Project]" }

// HelpInfo returns structured help.
func (c *ViewStackCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
}

// NeedsProject reports that this command operates on a project.
func (c *ViewStackCommand) NeedsProject() bool { return true }

// Mutates reports that this command is read-only.
func (c *ViewStackCommand) Mutates() bool { return false }

// Execute lists stack entries with their categories.
func (c *ViewStackCommand) Execute(_ decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	var lines []string
	for _, item := range req.Project.Stack {
		line := item.Name
		if item.Category != "" {
			line += fmt.Sprintf(" (%s)", item.Category)
		}
		lines = append(lines, line)
	}
	header := fmt.Sprintf("stack for %s:", req.Project.Name)
	return decktypes.DataOutcome(req.Project.Stack, "%s", listing(header, lines))
}

// DeleteStackCommand implements /delete stack.
type DeleteStackCommand struct{}

// Type returns the command's enumeration entry.
func (c *DeleteStackCommand) Type() decktypes.CommandType { return decktypes.CommandDeleteStack }

// Description returns a one-line summary.
func (c *DeleteStackCommand) Description() string { return "Remove a technology from the stack" }

// Usage returns the syntax line.
func (c *DeleteStackCommand) Usage() string { return "/delete stack <entry> [@Project]" }

// HelpInfo returns structured help.
func (c *DeleteStackCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
}

// NeedsProject reports that this command operates on a project.
func (c *DeleteStackCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *DeleteStackCommand) Mutates() bool { return true }

// Execute removes the resolved stack entry.
func (c *DeleteStackCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if len(cmd.Args) == 0 {
		return decktypes.PromptOutcome("which entry? usage: %s", c.Usage())
	}
	identifier := joinArgs(cmd.Args)
	i := resolver.ResolveIndex(req.Project.Stack, identifier)
	if i < 0 {
		return notFound("stack entry", identifier)
	}

	deleted := req.Project.Stack[i]
	req.Project.Stack = append(req.Project.Stack[:i], req.Project.Stack[i+1:]...)
	req.Commit()

	return decktypes.SuccessOutcome("removed %q from the stack", deleted.Name)
}
