package builtin

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskdeck/internal/resolver"
	"taskdeck/pkg/decktypes"
)

func init() {
	register(&AddNoteCommand{})
	register(&ViewNotesCommand{})
	register(&ViewNoteCommand{})
	register(&EditNoteCommand{})
	register(&DeleteNoteCommand{})
}

func noteIndexByID(p *decktypes.Project, id string) int {
	for i := range p.Notes {
		if p.Notes[i].ID == id {
			return i
		}
	}
	return -1
}

// AddNoteCommand implements /add note.
type AddNoteCommand struct{}

// Type returns the command's enumeration entry.
func (c *AddNoteCommand) Type() decktypes.CommandType { return decktypes.CommandAddNote }

// Description returns a one-line summary.
func (c *AddNoteCommand) Description() string { return "Add a note to a project" }

// Usage returns the syntax line.
func (c *AddNoteCommand) Usage() string {
	return "/add note <title> [--content=text] [@Project]"
}

// HelpInfo returns structured help.
func (c *AddNoteCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []decktypes.HelpOption{
			{Name: "content", Description: "Note body", Type: "string"},
		},
		Examples: []decktypes.HelpExample{
			{Command: `/add note "deploy checklist" --content="run migrations first"`, Description: "Titled note with a body"},
		},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *AddNoteCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *AddNoteCommand) Mutates() bool { return true }

// Execute stages a new note.
func (c *AddNoteCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if cmd.IsWizardTrigger() {
		return decktypes.PromptOutcome("what should the note say? usage: %s", c.Usage())
	}
	title := joinArgs(cmd.Args)
	if title == "" {
		return decktypes.ErrorOutcomef("a note needs a title; usage: %s", c.Usage())
	}
	content, _ := cmd.Flag("content")

	now := time.Now()
	note := decktypes.Note{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.Project.Notes = append(req.Project.Notes, note)
	req.Commit()

	return decktypes.SuccessOutcome("added note %q to %s", title, req.Project.Name)
}

// ViewNotesCommand implements /view notes.
type ViewNotesCommand struct{}

// Type returns the command's enumeration entry.
func (c *ViewNotesCommand) Type() decktypes.CommandType { return decktypes.CommandViewNotes }

// Description returns a one-line summary.
func (c *ViewNotesCommand) Description() string { return "List a project's notes" }

// Usage returns the syntax line.
func (c *ViewNotesCommand) Usage() string { return "/view notes [@Project]" }

// HelpInfo returns structured help.
func (c *ViewNotesCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
}

// NeedsProject reports that this command operates on a project.
func (c *ViewNotesCommand) NeedsProject() bool { return true }

// Mutates reports that this command is read-only.
func (c *ViewNotesCommand) Mutates() bool { return false }

// Execute lists note titles.
func (c *ViewNotesCommand) Execute(_ decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	var lines []string
	for _, n := range req.Project.Notes {
		lines = append(lines, n.Title)
	}
	header := fmt.Sprintf("notes in %s:", req.Project.Name)
	return decktypes.DataOutcome(req.Project.Notes, "%s", listing(header, lines))
}

// ViewNoteCommand implements /view note.
type ViewNoteCommand struct{}

// Type returns the command's enumeration entry.
func (c *ViewNoteCommand) Type() decktypes.CommandType { return decktypes.CommandViewNote }

// Description returns a one-line summary.
func (c *ViewNoteCommand) Description() string { return "Show one note in full" }

// Usage returns the syntax line.
func (c *ViewNoteCommand) Usage() string { return "/view note <note> [@Project]" }

// HelpInfo returns structured help.
func (c *ViewNoteCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Notes:       []string{"The note may be named by id, list position, or a title fragment."},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *ViewNoteCommand) NeedsProject() bool { return true }

// Mutates reports that this command is read-only.
func (c *ViewNoteCommand) Mutates() bool { return false }

// Execute shows the resolved note's title and body.
func (c *ViewNoteCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if len(cmd.Args) == 0 {
		return decktypes.PromptOutcome("which note? usage: %s", c.Usage())
	}
	identifier := joinArgs(cmd.Args)
	note, ok := resolver.Resolve(req.Project.Notes, identifier)
	if !ok {
		return notFound("note", identifier)
	}

	body := note.Content
	if body == "" {
		body = "(no content)"
	}
	return decktypes.DataOutcome(note, "%s\n\n%s", note.Title, body)
}

// EditNoteCommand implements /edit note.
type EditNoteCommand struct{}

// Type returns the command's enumeration entry.
func (c *EditNoteCommand) Type() decktypes.CommandType { return decktypes.CommandEditNote }

// Description returns a one-line summary.
func (c *EditNoteCommand) Description() string { return "Edit a note's title or content" }

// Usage returns the syntax line.
func (c *EditNoteCommand) Usage() string {
	return "/edit note <note> [--title=text] [--content=text] [@Project]"
}

// HelpInfo returns structured help.
func (c *EditNoteCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []decktypes.HelpOption{
			{Name: "title", Description: "New title", Type: "string"},
			{Name: "content", Description: "Replacement body", Type: "string"},
		},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *EditNoteCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *EditNoteCommand) Mutates() bool { return true }

// Execute applies the given flags to the resolved note.
func (c *EditNoteCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if len(cmd.Args) == 0 {
		return decktypes.PromptOutcome("which note? usage: %s", c.Usage())
	}
	identifier := joinArgs(cmd.Args)
	match, ok := resolver.Resolve(req.Project.Notes, identifier)
	if !ok {
		return notFound("note", identifier)
	}

	title, hasTitle := cmd.Flag("title")
	content, hasContent := cmd.Flag("content")
	if !hasTitle && !hasContent {
		return decktypes.PromptOutcome("what should change? pass --title or --content")
	}

	note := &req.Project.Notes[noteIndexByID(req.Project, match.ID)]
	if hasTitle {
		note.Title = title
	}
	if hasContent {
		note.Content = content
	}
	note.UpdatedAt = time.Now()
	req.Commit()

	return decktypes.SuccessOutcome("updated note %q", note.Title)
}

// DeleteNoteCommand implements /delete note.
type DeleteNoteCommand struct{}

// Type returns the command's enumeration entry.
func (c *DeleteNoteCommand) Type() decktypes.CommandType { return decktypes.CommandDeleteNote }

// Description returns a one-line summary.
func (c *DeleteNoteCommand) Description() string { return "Delete a note" }

// Usage returns the syntax line.
func (c *DeleteNoteCommand) Usage() string { return "/delete note <note> [@Project]" }

// HelpInfo returns structured help.
func (c *DeleteNoteCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
}

// NeedsProject reports that this command operates on a project.
func (c *DeleteNoteCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *DeleteNoteCommand) Mutates() bool { return true }

// Execute removes the resolved note.
func (c *DeleteNoteCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if len(cmd.Args) == 0 {
		return decktypes.PromptOutcome("which note? usage: %s", c.Usage())
	}
	identifier := joinArgs(cmd.Args)
	match, ok := resolver.Resolve(req.Project.Notes, identifier)
	if !ok {
		return notFound("note", identifier)
	}

	i := noteIndexByID(req.Project, match.ID)
	req.Project.Notes = append(req.Project.Notes[:i], req.Project.Notes[i+1:]...)
	req.Commit()

	return decktypes.SuccessOutcome("deleted note %q", match.Title)
}
