package builtin

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"taskdeck/internal/resolver"
	"taskdeck/pkg/decktypes"
)

func init() {
	register(&CreateProjectCommand{})
	register(&ViewProjectsCommand{})
	register(&ViewProjectCommand{})
	register(&SwitchProjectCommand{})
	register(&RenameProjectCommand{})
	register(&ArchiveProjectCommand{})
	register(&DeleteProjectCommand{})
	register(&ExportProjectCommand{})
	register(&ImportProjectCommand{})
}

// accessibleProjects returns the user's owned projects followed by team
// memberships, the order project listings and switch indices use.
func accessibleProjects(req *decktypes.Request) ([]*decktypes.Project, error) {
	owned, err := req.Store.ListOwned(req.Ctx, req.Session.UserID)
	if err != nil {
		return nil, err
	}
	member, err := req.Store.ListMember(req.Ctx, req.Session.UserID)
	if err != nil {
		return nil, err
	}
	return append(owned, member...), nil
}

// CreateProjectCommand implements /create project.
type CreateProjectCommand struct{}

// Type returns the command's enumeration entry.
func (c *CreateProjectCommand) Type() decktypes.CommandType { return decktypes.CommandCreateProject }

// Description returns a one-line summary.
func (c *CreateProjectCommand) Description() string { return "Create a project and switch to it" }

// Usage returns the syntax line.
func (c *CreateProjectCommand) Usage() string {
	return "/create project <name> [--description=text]"
}

// HelpInfo returns structured help.
func (c *CreateProjectCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []decktypes.HelpOption{
			{Name: "description", Description: "What the project is about", Type: "string"},
		},
		Examples: []decktypes.HelpExample{
			{Command: `/create project "Side Project" --description="weekend experiments"`, Description: "New project, made current"},
		},
	}
}

// NeedsProject reports that this command resolves no project first.
func (c *CreateProjectCommand) NeedsProject() bool { return false }

// Mutates reports that this command writes.
func (c *CreateProjectCommand) Mutates() bool { return true }

// Execute creates the project, makes it current, and drops the user's
// cached summaries.
func (c *CreateProjectCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if cmd.IsWizardTrigger() {
		return decktypes.PromptOutcome("what is the project called? usage: %s", c.Usage())
	}
	name := joinArgs(cmd.Args)
	if name == "" {
		return decktypes.ErrorOutcomef("a project needs a name; usage: %s", c.Usage())
	}
	description, _ := cmd.Flag("description")

	now := time.Now()
	project := &decktypes.Project{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		OwnerID:     req.Session.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := req.Store.Create(req.Ctx, project); err != nil {
		return decktypes.ErrorOutcome(err)
	}
	req.Session.CurrentProjectID = project.ID
	req.Cache.Invalidate(req.Session.UserID)

	return decktypes.SuccessOutcome("created project %q and switched to it", name)
}

// ViewProjectsCommand implements /view projects.
type ViewProjectsCommand struct{}

// Type returns the command's enumeration entry.
func (c *ViewProjectsCommand) Type() decktypes.CommandType { return decktypes.CommandViewProjects }

// Description returns a one-line summary.
func (c *ViewProjectsCommand) Description() string { return "List every project you can access" }

// Usage returns the syntax line.
func (c *ViewProjectsCommand) Usage() string { return "/view projects" }

// HelpInfo returns structured help.
func (c *ViewProjectsCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Notes: []string{
			"The listed numbers are the positional indices /switch project accepts.",
		},
	}
}

// NeedsProject reports that this command resolves no project first.
func (c *ViewProjectsCommand) NeedsProject() bool { return false }

// Mutates reports that this command is read-only.
func (c *ViewProjectsCommand) Mutates() bool { return false }

// Execute lists owned then member projects, marking role and state.
func (c *ViewProjectsCommand) Execute(_ decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	projects, err := accessibleProjects(req)
	if err != nil {
		return decktypes.ErrorOutcome(err)
	}
	if len(projects) == 0 {
		return decktypes.ErrorOutcome(&decktypes.NoProjectsError{UserID: req.Session.UserID})
	}

	var lines []string
	for _, p := range projects {
		line := p.Name
		if role := p.RoleOf(req.Session.UserID); role != decktypes.RoleOwner {
			line += fmt.Sprintf(" [%s]", role)
		}
		if p.Archived {
			line += " (archived)"
		}
		if p.ID == req.Session.CurrentProjectID {
			line += "  <- current"
		}
		lines = append(lines, line)
	}
	return decktypes.DataOutcome(projects, "%s", listing("your projects:", lines))
}

// ViewProjectCommand implements /view project.
type ViewProjectCommand struct{}

// Type returns the command's enumeration entry.
func (c *ViewProjectCommand) Type() decktypes.CommandType { return decktypes.CommandViewProject }

// Description returns a one-line summary.
func (c *ViewProjectCommand) Description() string { return "Show a project overview" }

// Usage returns the syntax line.
func (c *ViewProjectCommand) Usage() string { return "/view project [@Project]" }

// HelpInfo returns structured help.
func (c *ViewProjectCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
}

// NeedsProject reports that this command operates on a project.
func (c *ViewProjectCommand) NeedsProject() bool { return true }

// Mutates reports that this command is read-only.
func (c *ViewProjectCommand) Mutates() bool { return false }

// Execute summarizes the resolved project's contents.
func (c *ViewProjectCommand) Execute(_ decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	p := req.Project
	open := 0
	for _, t := range p.Todos {
		if !t.Done {
			open++
		}
	}

	out := p.Name
	if p.Description != "" {
		out += " - " + p.Description
	}
	if p.Archived {
		out += " (archived)"
	}
	out += fmt.Sprintf(
		"\n  todos: %d (%d open)\n  notes: %d\n  dev log entries: %d\n  components: %d\n  stack: %d\n  members: %d",
		len(p.Todos), open, len(p.Notes), len(p.DevLog), len(p.Components), len(p.Stack), len(p.Members)+1,
	)
	return decktypes.DataOutcome(p, "%s", out)
}

// SwitchProjectCommand implements /switch project.
type SwitchProjectCommand struct{}

// Type returns the command's enumeration entry.
func (c *SwitchProjectCommand) Type() decktypes.CommandType { return decktypes.CommandSwitchProject }

// Description returns a one-line summary.
func (c *SwitchProjectCommand) Description() string { return "Change the current project" }

// Usage returns the syntax line.
func (c *SwitchProjectCommand) Usage() string { return "/switch project <project>" }

// HelpInfo returns structured help.
func (c *SwitchProjectCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Notes: []string{
			"The project may be named by id, its position in /view projects, or a name fragment.",
		},
	}
}

// NeedsProject reports that this command resolves no project first; it
// does its own lookup over the accessible set.
func (c *SwitchProjectCommand) NeedsProject() bool { return false }

// Mutates reports that this command only changes session state.
func (c *SwitchProjectCommand) Mutates() bool { return false }

// Execute resolves the identifier over the accessible set and updates
// the session.
func (c *SwitchProjectCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if len(cmd.Args) == 0 {
		return decktypes.PromptOutcome("switch to which project? usage: %s", c.Usage())
	}

	projects, err := accessibleProjects(req)
	if err != nil {
		return decktypes.ErrorOutcome(err)
	}
	if len(projects) == 0 {
		return decktypes.ErrorOutcome(&decktypes.NoProjectsError{UserID: req.Session.UserID})
	}

	identifier := joinArgs(cmd.Args)
	match, ok := resolver.Resolve(projects, identifier)
	if !ok {
		return notFound("project", identifier)
	}
	req.Session.CurrentProjectID = match.ID

	return decktypes.SuccessOutcome("switched to %q", match.Name)
}

// RenameProjectCommand implements /rename project.
type RenameProjectCommand struct{}

// Type returns the command's enumeration entry.
func (c *RenameProjectCommand) Type() decktypes.CommandType { return decktypes.CommandRenameProject }

// Description returns a one-line summary.
func (c *RenameProjectCommand) Description() string { return "Rename a project" }

// Usage returns the syntax line.
func (c *RenameProjectCommand) Usage() string { return "/rename project <new name> [@Project]" }

// HelpInfo returns structured help.
func (c *RenameProjectCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
}

// NeedsProject reports that this command operates on a project.
func (c *RenameProjectCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *RenameProjectCommand) Mutates() bool { return true }

// Execute renames the resolved project. Cached summaries carry the old
// name, so the user's cache entry is dropped.
func (c *RenameProjectCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	name := joinArgs(cmd.Args)
	if name == "" {
		return decktypes.PromptOutcome("rename to what? usage: %s", c.Usage())
	}

	old := req.Project.Name
	req.Project.Name = name
	req.Commit()
	req.Cache.Invalidate(req.Session.UserID)

	return decktypes.SuccessOutcome("renamed %q to %q", old, name)
}

// ArchiveProjectCommand implements /archive project.
type ArchiveProjectCommand struct{}

// Type returns the command's enumeration entry.
func (c *ArchiveProjectCommand) Type() decktypes.CommandType {
	return decktypes.CommandArchiveProject
}

// Description returns a one-line summary.
func (c *ArchiveProjectCommand) Description() string { return "Archive or restore a project" }

// Usage returns the syntax line.
func (c *ArchiveProjectCommand) Usage() string { return "/archive project [--restore] [@Project]" }

// HelpInfo returns structured help.
func (c *ArchiveProjectCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []decktypes.HelpOption{
			{Name: "restore", Description: "Bring an archived project back", Type: "bool", Default: "false"},
		},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *ArchiveProjectCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *ArchiveProjectCommand) Mutates() bool { return true }

// Execute flips the archived flag.
func (c *ArchiveProjectCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	restore := cmd.BoolFlag("restore")
	if req.Project.Archived == !restore {
		if restore {
			return decktypes.SuccessOutcome("%q is not archived", req.Project.Name)
		}
		return decktypes.SuccessOutcome("%q is already archived", req.Project.Name)
	}

	req.Project.Archived = !restore
	req.Commit()

	if restore {
		return decktypes.SuccessOutcome("restored %q", req.Project.Name)
	}
	return decktypes.SuccessOutcome("archived %q", req.Project.Name)
}

// DeleteProjectCommand implements /delete project.
type DeleteProjectCommand struct{}

// Type returns the command's enumeration entry.
func (c *DeleteProjectCommand) Type() decktypes.CommandType { return decktypes.CommandDeleteProject }

// Description returns a one-line summary.
func (c *DeleteProjectCommand) Description() string { return "Permanently delete a project" }

// Usage returns the syntax line.
func (c *DeleteProjectCommand) Usage() string { return "/delete project --confirm [@Project]" }

// HelpInfo returns structured help.
func (c *DeleteProjectCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []decktypes.HelpOption{
			{Name: "confirm", Description: "Required; deletion is irreversible", Type: "bool", Default: "false"},
		},
		Notes: []string{"Only the project owner may delete it."},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *DeleteProjectCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *DeleteProjectCommand) Mutates() bool { return true }

// Execute deletes the project after an owner and confirmation check.
// The store delete happens here, not through the commit path: there is
// no aggregate left to save.
func (c *DeleteProjectCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if req.Project.RoleOf(req.Session.UserID) != decktypes.RoleOwner {
		return decktypes.ErrorOutcome(&decktypes.PermissionError{
			UserID:      req.Session.UserID,
			ProjectName: req.Project.Name,
			Role:        req.Project.RoleOf(req.Session.UserID),
		})
	}
	if !cmd.BoolFlag("confirm") {
		return decktypes.PromptOutcome("deleting %q is irreversible; re-run with --confirm", req.Project.Name)
	}

	if err := req.Store.Delete(req.Ctx, req.Project.ID); err != nil {
		return decktypes.ErrorOutcome(err)
	}
	if req.Session.CurrentProjectID == req.Project.ID {
		req.Session.CurrentProjectID = ""
	}
	req.Cache.Invalidate(req.Session.UserID)

	return decktypes.SuccessOutcome("deleted project %q", req.Project.Name)
}

// ExportProjectCommand implements /export project.
type ExportProjectCommand struct{}

// Type returns the command's enumeration entry.
func (c *ExportProjectCommand) Type() decktypes.CommandType { return decktypes.CommandExportProject }

// Description returns a one-line summary.
func (c *ExportProjectCommand) Description() string { return "Export a project as YAML" }

// Usage returns the syntax line.
func (c *ExportProjectCommand) Usage() string { return "/export project [--file=path] [@Project]" }

// HelpInfo returns structured help.
func (c *ExportProjectCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []decktypes.HelpOption{
			{Name: "file", Description: "Write to a file instead of the screen", Type: "string"},
		},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *ExportProjectCommand) NeedsProject() bool { return true }

// Mutates reports that this command is read-only.
func (c *ExportProjectCommand) Mutates() bool { return false }

// Execute marshals the whole aggregate.
func (c *ExportProjectCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	data, err := yaml.Marshal(req.Project)
	if err != nil {
		return decktypes.ErrorOutcomef("exporting %q: %v", req.Project.Name, err)
	}

	if path, ok := cmd.Flag("file"); ok {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return decktypes.ErrorOutcomef("writing %s: %v", path, err)
		}
		return decktypes.SuccessOutcome("exported %q to %s", req.Project.Name, path)
	}
	return decktypes.DataOutcome(req.Project, "%s", string(data))
}

// ImportProjectCommand implements /import project.
type ImportProjectCommand struct{}

// Type returns the command's enumeration entry.
func (c *ImportProjectCommand) Type() decktypes.CommandType { return decktypes.CommandImportProject }

// Description returns a one-line summary.
func (c *ImportProjectCommand) Description() string { return "Import a project from a YAML export" }

// Usage returns the syntax line.
func (c *ImportProjectCommand) Usage() string { return "/import project <file>" }

// HelpInfo returns structured help.
func (c *ImportProjectCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Notes: []string{
			"The imported copy gets a fresh id and you as owner; the exporting project's members are not carried over.",
		},
	}
}

// NeedsProject reports that this command resolves no project first.
func (c *ImportProjectCommand) NeedsProject() bool { return false }

// Mutates reports that this command writes.
func (c *ImportProjectCommand) Mutates() bool { return true }

// Execute reads the export, re-keys it, and creates it for this user.
func (c *ImportProjectCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if len(cmd.Args) == 0 {
		return decktypes.PromptOutcome("import from which file? usage: %s", c.Usage())
	}
	path := joinArgs(cmd.Args)

	data, err := os.ReadFile(path)
	if err != nil {
		return decktypes.ErrorOutcomef("reading %s: %v", path, err)
	}
	var project decktypes.Project
	if err := yaml.Unmarshal(data, &project); err != nil {
		return decktypes.ErrorOutcomef("parsing %s: %v", path, err)
	}
	if project.Name == "" {
		return decktypes.ErrorOutcomef("%s does not look like a project export", path)
	}

	now := time.Now()
	project.ID = uuid.New().String()
	project.OwnerID = req.Session.UserID
	project.Members = nil
	project.CreatedAt = now
	project.UpdatedAt = now

	if err := req.Store.Create(req.Ctx, &project); err != nil {
		return decktypes.ErrorOutcome(err)
	}
	req.Session.CurrentProjectID = project.ID
	req.Cache.Invalidate(req.Session.UserID)

	return decktypes.SuccessOutcome("imported %q and switched to it", project.Name)
}
