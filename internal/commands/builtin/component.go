package builtin

import (
	"fmt"

	"github.com/google/uuid"

	"taskdeck/internal/relationships"
	"taskdeck/internal/resolver"
	"taskdeck/pkg/decktypes"
)

func init() {
	register(&AddComponentCommand{})
	register(&ViewComponentsCommand{})
	register(&EditComponentCommand{})
	register(&DeleteComponentCommand{})
}

func componentIndexByID(p *decktypes.Project, id string) int {
	for i := range p.Components {
		if p.Components[i].ID == id {
			return i
		}
	}
	return -1
}

// AddComponentCommand implements /add component.
type AddComponentCommand struct{}

// Type returns the command's enumeration entry.
func (c *AddComponentCommand) Type() decktypes.CommandType { return decktypes.CommandAddComponent }

// Description returns a one-line summary.
func (c *AddComponentCommand) Description() string { return "Add an architecture component" }

// Usage returns the syntax line.
func (c *AddComponentCommand) Usage() string {
	return "/add component <name> [--category=kind] [--description=text] [@Project]"
}

// HelpInfo returns structured help.
func (c *AddComponentCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []decktypes.HelpOption{
			{Name: "category", Description: "Kind of component (service, database, ...)", Type: "string"},
			{Name: "description", Description: "What the component does", Type: "string"},
		},
		Examples: []decktypes.HelpExample{
			{Command: "/add component billing-api --category=service", Description: "Service component in the current project"},
		},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *AddComponentCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *AddComponentCommand) Mutates() bool { return true }

// Execute stages a new component.
func (c *AddComponentCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if cmd.IsWizardTrigger() {
		return decktypes.PromptOutcome("what is the component called? usage: %s", c.Usage())
	}
	name := joinArgs(cmd.Args)
	if name == "" {
		return decktypes.ErrorOutcomef("a component needs a name; usage: %s", c.Usage())
	}
	category, _ := cmd.Flag("category")
	description, _ := cmd.Flag("description")

	component := decktypes.Component{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Category:    category,
	}
	req.Project.Components = append(req.Project.Components, component)
	req.Commit()

	return decktypes.SuccessOutcome("added component %q to %s", name, req.Project.Name)
}

// ViewComponentsCommand implements /view components.
type ViewComponentsCommand struct{}

// Type returns the command's enumeration entry.
func (c *ViewComponentsCommand) Type() decktypes.CommandType {
	return decktypes.CommandViewComponents
}

// Description returns a one-line summary.
func (c *ViewComponentsCommand) Description() string { return "List a project's components" }

// Usage returns the syntax line.
func (c *ViewComponentsCommand) Usage() string { return "/view components [@Project]" }

// HelpInfo returns structured help.
func (c *ViewComponentsCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
}

// NeedsProject reports that this command operates on a project.
func (c *ViewComponentsCommand) NeedsProject() bool { return true }

// Mutates reports that this command is read-only.
func (c *ViewComponentsCommand) Mutates() bool { return false }

// Execute lists components with category and relationship counts.
func (c *ViewComponentsCommand) Execute(_ decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	var lines []string
	for _, comp := range req.Project.Components {
		line := comp.Name
		if comp.Category != "" {
			line += fmt.Sprintf(" (%s)", comp.Category)
		}
		if n := len(comp.Relationships); n > 0 {
			line += fmt.Sprintf(" (%d relationship(s))", n)
		}
		lines = append(lines, line)
	}
	header := fmt.Sprintf("components in %s:", req.Project.Name)
	return decktypes.DataOutcome(req.Project.Components, "%s", listing(header, lines))
}

// EditComponentCommand implements /edit component.
type EditComponentCommand struct{}

// Type returns the command's enumeration entry.
func (c *EditComponentCommand) Type() decktypes.CommandType { return decktypes.CommandEditComponent }

// Description returns a one-line summary.
func (c *EditComponentCommand) Description() string { return "Edit a component's fields" }

// Usage returns the syntax line.
func (c *EditComponentCommand) Usage() string {
	return "/edit component <component> [--name=text] [--category=kind] [--description=text] [@Project]"
}

// HelpInfo returns structured help.
func (c *EditComponentCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []decktypes.HelpOption{
			{Name: "name", Description: "New name", Type: "string"},
			{Name: "category", Description: "New category", Type: "string"},
			{Name: "description", Description: "New description", Type: "string"},
		},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *EditComponentCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *EditComponentCommand) Mutates() bool { return true }

// Execute applies the given flags to the resolved component.
func (c *EditComponentCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if len(cmd.Args) == 0 {
		return decktypes.PromptOutcome("which component? usage: %s", c.Usage())
	}
	identifier := joinArgs(cmd.Args)
	match, ok := resolver.Resolve(req.Project.Components, identifier)
	if !ok {
		return notFound("component", identifier)
	}

	name, hasName := cmd.Flag("name")
	category, hasCategory := cmd.Flag("category")
	description, hasDescription := cmd.Flag("description")
	if !hasName && !hasCategory && !hasDescription {
		return decktypes.PromptOutcome("what should change? pass --name, --category, or --description")
	}

	component := &req.Project.Components[componentIndexByID(req.Project, match.ID)]
	if hasName {
		component.Name = name
	}
	if hasCategory {
		component.Category = category
	}
	if hasDescription {
		component.Description = description
	}
	req.Commit()

	return decktypes.SuccessOutcome("updated component %q", component.Name)
}

// DeleteComponentCommand implements /delete component.
type DeleteComponentCommand struct{}

// Type returns the command's enumeration entry.
func (c *DeleteComponentCommand) Type() decktypes.CommandType {
	return decktypes.CommandDeleteComponent
}

// Description returns a one-line summary.
func (c *DeleteComponentCommand) Description() string {
	return "Delete a component and its relationships"
}

// Usage returns the syntax line.
func (c *DeleteComponentCommand) Usage() string { return "/delete component <component> [@Project]" }

// HelpInfo returns structured help.
func (c *DeleteComponentCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Notes: []string{
			"Edges on other components that pointed at the deleted one are swept in the same commit.",
		},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *DeleteComponentCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *DeleteComponentCommand) Mutates() bool { return true }

// Execute removes the component and sweeps orphaned edges.
func (c *DeleteComponentCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if len(cmd.Args) == 0 {
		return decktypes.PromptOutcome("which component? usage: %s", c.Usage())
	}
	identifier := joinArgs(cmd.Args)
	match, ok := resolver.Resolve(req.Project.Components, identifier)
	if !ok {
		return notFound("component", identifier)
	}

	i := componentIndexByID(req.Project, match.ID)
	req.Project.Components = append(req.Project.Components[:i], req.Project.Components[i+1:]...)
	swept := relationships.NewManager().RemoveAllTargeting(req.Project, match.ID)
	req.Commit()

	if swept > 0 {
		return decktypes.SuccessOutcome("deleted component %q and removed %d orphaned relationship(s)", match.Name, swept)
	}
	return decktypes.SuccessOutcome("deleted component %q", match.Name)
}
