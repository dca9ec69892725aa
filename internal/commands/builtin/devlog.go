package builtin

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"taskdeck/internal/resolver"
	"taskdeck/pkg/decktypes"
)

func init() {
	register(&AddDevlogCommand{})
	register(&ViewDevlogCommand{})
	register(&DeleteDevlogCommand{})
}

// AddDevlogCommand implements /add devlog.
type AddDevlogCommand struct{}

// Type returns the command's enumeration entry.
func (c *AddDevlogCommand) Type() decktypes.CommandType { return decktypes.CommandAddDevlog }

// Description returns a one-line summary.
func (c *AddDevlogCommand) Description() string { return "Append an entry to the dev log" }

// Usage returns the syntax line.
func (c *AddDevlogCommand) Usage() string { return "/add devlog <entry text> [@Project]" }

// HelpInfo returns structured help.
func (c *AddDevlogCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []decktypes.HelpExample{
			{Command: "/add devlog migrated auth to the new token format", Description: "Dated entry in the current project's log"},
		},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *AddDevlogCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *AddDevlogCommand) Mutates() bool { return true }

// Execute appends a dated entry.
func (c *AddDevlogCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if cmd.IsWizardTrigger() {
		return decktypes.PromptOutcome("what happened? usage: %s", c.Usage())
	}
	text := joinArgs(cmd.Args)
	if text == "" {
		return decktypes.ErrorOutcomef("a dev log entry needs text; usage: %s", c.Usage())
	}

	entry := decktypes.DevLogEntry{
		ID:        uuid.New().String(),
		Entry:     text,
		CreatedAt: time.Now(),
	}
	req.Project.DevLog = append(req.Project.DevLog, entry)
	req.Commit()

	return decktypes.SuccessOutcome("logged entry in %s", req.Project.Name)
}

// ViewDevlogCommand implements /view devlog.
type ViewDevlogCommand struct{}

// Type returns the command's enumeration entry.
func (c *ViewDevlogCommand) Type() decktypes.CommandType { return decktypes.CommandViewDevlog }

// Description returns a one-line summary.
func (c *ViewDevlogCommand) Description() string { return "Show the dev log, newest first" }

// Usage returns the syntax line.
func (c *ViewDevlogCommand) Usage() string { return "/view devlog [--limit=n] [@Project]" }

// HelpInfo returns structured help.
func (c *ViewDevlogCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []decktypes.HelpOption{
			{Name: "limit", Description: "Show at most n entries", Type: "int"},
		},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *ViewDevlogCommand) NeedsProject() bool { return true }

// Mutates reports that this command is read-only.
func (c *ViewDevlogCommand) Mutates() bool { return false }

// Execute lists dev log entries newest first. List positions still
// count from the stored (oldest-first) order so delete identifiers
// stay stable.
func (c *ViewDevlogCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	entries := req.Project.DevLog
	limit := len(entries)
	if v, ok := cmd.Flag("limit"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return decktypes.ErrorOutcomef("--limit wants a non-negative number, got %q", v)
		}
		limit = n
	}

	var lines []string
	for i := len(entries) - 1; i >= 0 && len(lines) < limit; i-- {
		e := entries[i]
		lines = append(lines, fmt.Sprintf("[%s] %s", e.CreatedAt.Format("2006-01-02"), e.Entry))
	}

	header := fmt.Sprintf("dev log for %s:", req.Project.Name)
	if len(lines) == 0 {
		return decktypes.DataOutcome(entries, "%s (empty)", header)
	}
	out := header
	for _, line := range lines {
		out += "\n  " + line
	}
	return decktypes.DataOutcome(entries, "%s", out)
}

// DeleteDevlogCommand implements /delete devlog.
type DeleteDevlogCommand struct{}

// Type returns the command's enumeration entry.
func (c *DeleteDevlogCommand) Type() decktypes.CommandType { return decktypes.CommandDeleteDevlog }

// Description returns a one-line summary.
func (c *DeleteDevlogCommand) Description() string { return "Delete a dev log entry" }

// Usage returns the syntax line.
func (c *DeleteDevlogCommand) Usage() string { return "/delete devlog <entry> [@Project]" }

// HelpInfo returns structured help.
func (c *DeleteDevlogCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Notes:       []string{"The entry may be named by id, stored position, or a text fragment."},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *DeleteDevlogCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *DeleteDevlogCommand) Mutates() bool { return true }

// Execute removes the resolved entry.
func (c *DeleteDevlogCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if len(cmd.Args) == 0 {
		return decktypes.PromptOutcome("which entry? usage: %s", c.Usage())
	}
	identifier := joinArgs(cmd.Args)
	i := resolver.ResolveIndex(req.Project.DevLog, identifier)
	if i < 0 {
		return notFound("dev log entry", identifier)
	}

	deleted := req.Project.DevLog[i]
	req.Project.DevLog = append(req.Project.DevLog[:i], req.Project.DevLog[i+1:]...)
	req.Commit()

	return decktypes.SuccessOutcome("deleted dev log entry from %s", deleted.CreatedAt.Format("2006-01-02"))
}
