package builtin

import (
	"fmt"
	"strings"

	"taskdeck/internal/relationships"
	"taskdeck/internal/resolver"
	"taskdeck/pkg/decktypes"
)

func init() {
	register(&AddRelationshipCommand{})
	register(&ViewRelationshipsCommand{})
	register(&EditRelationshipCommand{})
	register(&DeleteRelationshipCommand{})
}

func componentName(p *decktypes.Project, id string) string {
	if c := p.ComponentByID(id); c != nil {
		return c.Name
	}
	return id
}

// AddRelationshipCommand implements /add relationship.
type AddRelationshipCommand struct{}

// Type returns the command's enumeration entry.
func (c *AddRelationshipCommand) Type() decktypes.CommandType {
	return decktypes.CommandAddRelationship
}

// Description returns a one-line summary.
func (c *AddRelationshipCommand) Description() string {
	return "Link two components with a typed relationship"
}

// Usage returns the syntax line.
func (c *AddRelationshipCommand) Usage() string {
	return "/add relationship <source> <target> <type> [--description=text] [@Project]"
}

// HelpInfo returns structured help.
func (c *AddRelationshipCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []decktypes.HelpOption{
			{Name: "description", Description: "What the link means", Type: "string"},
		},
		Examples: []decktypes.HelpExample{
			{Command: "/add relationship api db uses", Description: "api uses db; db gets a mirrored edge pointing back at api"},
			{Command: `/add relationship "auth service" gateway called_by`, Description: "Quoted names may contain spaces"},
		},
		Notes: []string{
			"Known types: " + strings.Join(decktypes.RelationTypeNames(), ", "),
			"Both components gain an edge; the pair shares one relationship id.",
		},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *AddRelationshipCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *AddRelationshipCommand) Mutates() bool { return true }

// Execute resolves both endpoints and stages the mirrored pair.
func (c *AddRelationshipCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if cmd.IsWizardTrigger() {
		return decktypes.PromptOutcome("which components, and how are they related? usage: %s", c.Usage())
	}
	if len(cmd.Args) < 3 {
		return decktypes.ErrorOutcomef("need a source, a target, and a type; usage: %s", c.Usage())
	}

	source, ok := resolver.Resolve(req.Project.Components, cmd.Args[0])
	if !ok {
		return notFound("component", cmd.Args[0])
	}
	target, ok := resolver.Resolve(req.Project.Components, cmd.Args[1])
	if !ok {
		return notFound("component", cmd.Args[1])
	}
	typeName := cmd.Args[2]
	if !decktypes.ValidRelationType(typeName) {
		return decktypes.ErrorOutcomef("unknown relationship type %q (known: %s)",
			typeName, strings.Join(decktypes.RelationTypeNames(), ", "))
	}
	description, _ := cmd.Flag("description")

	relType := decktypes.RelationType(strings.ToLower(typeName))
	edge, err := relationships.NewManager().Add(req.Project, source.ID, target.ID, relType, description)
	if err != nil {
		return decktypes.ErrorOutcome(err)
	}
	req.Commit()

	return decktypes.SuccessOutcome("linked %s %s %s", source.Name, edge.Type, target.Name)
}

// ViewRelationshipsCommand implements /view relationships.
type ViewRelationshipsCommand struct{}

// Type returns the command's enumeration entry.
func (c *ViewRelationshipsCommand) Type() decktypes.CommandType {
	return decktypes.CommandViewRelationships
}

// Description returns a one-line summary.
func (c *ViewRelationshipsCommand) Description() string {
	return "Show a component's relationships, or all of them"
}

// Usage returns the syntax line.
func (c *ViewRelationshipsCommand) Usage() string {
	return "/view relationships [component] [@Project]"
}

// HelpInfo returns structured help.
func (c *ViewRelationshipsCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
}

// NeedsProject reports that this command operates on a project.
func (c *ViewRelationshipsCommand) NeedsProject() bool { return true }

// Mutates reports that this command is read-only.
func (c *ViewRelationshipsCommand) Mutates() bool { return false }

// Execute lists edges. With no argument every component's edges are
// shown, which surfaces both halves of each mirrored pair.
func (c *ViewRelationshipsCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	components := req.Project.Components
	if len(cmd.Args) > 0 {
		identifier := joinArgs(cmd.Args)
		match, ok := resolver.Resolve(components, identifier)
		if !ok {
			return notFound("component", identifier)
		}
		components = []decktypes.Component{match}
	}

	var lines []string
	for _, comp := range components {
		for _, rel := range comp.Relationships {
			line := fmt.Sprintf("%s %s %s", comp.Name, rel.Type, componentName(req.Project, rel.TargetID))
			if rel.Description != "" {
				line += fmt.Sprintf(" (%s)", rel.Description)
			}
			lines = append(lines, line)
		}
	}

	header := fmt.Sprintf("relationships in %s:", req.Project.Name)
	return decktypes.DataOutcome(components, "%s", listing(header, lines))
}

// EditRelationshipCommand implements /edit relationship.
type EditRelationshipCommand struct{}

// Type returns the command's enumeration entry.
func (c *EditRelationshipCommand) Type() decktypes.CommandType {
	return decktypes.CommandEditRelationship
}

// Description returns a one-line summary.
func (c *EditRelationshipCommand) Description() string {
	return "Change a relationship's type or description"
}

// Usage returns the syntax line.
func (c *EditRelationshipCommand) Usage() string {
	return "/edit relationship <component> <relationship> [--type=type] [--description=text] [@Project]"
}

// HelpInfo returns structured help.
func (c *EditRelationshipCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []decktypes.HelpOption{
			{Name: "type", Description: "New relationship type, applied to both sides of the pair", Type: "string"},
			{Name: "description", Description: "New description for both sides", Type: "string"},
		},
		Notes: []string{
			"The relationship may be named by its id, list position on the component, or a type fragment.",
		},
	}
}

// NeedsProject reports that this command operates on a project.
func (c *EditRelationshipCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *EditRelationshipCommand) Mutates() bool { return true }

// Execute updates both halves of the resolved edge.
func (c *EditRelationshipCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if len(cmd.Args) < 2 {
		return decktypes.PromptOutcome("which component and relationship? usage: %s", c.Usage())
	}

	source, ok := resolver.Resolve(req.Project.Components, cmd.Args[0])
	if !ok {
		return notFound("component", cmd.Args[0])
	}

	var newType decktypes.RelationType
	if v, hasType := cmd.Flag("type"); hasType {
		if !decktypes.ValidRelationType(v) {
			return decktypes.ErrorOutcomef("unknown relationship type %q (known: %s)",
				v, strings.Join(decktypes.RelationTypeNames(), ", "))
		}
		newType = decktypes.RelationType(strings.ToLower(v))
	}
	var newDescription *string
	if v, hasDescription := cmd.Flag("description"); hasDescription {
		newDescription = &v
	}
	if newType == "" && newDescription == nil {
		return decktypes.PromptOutcome("what should change? pass --type or --description")
	}

	identifier := joinArgs(cmd.Args[1:])
	edge, repair, err := relationships.NewManager().Update(req.Project, source.ID, identifier, newType, newDescription)
	if err != nil {
		return decktypes.ErrorOutcome(err)
	}
	req.Commit()

	out := decktypes.SuccessOutcome("updated relationship %s %s %s",
		source.Name, edge.Type, componentName(req.Project, edge.TargetID))
	out.Repair = repair
	return out
}

// DeleteRelationshipCommand implements /delete relationship.
type DeleteRelationshipCommand struct{}

// Type returns the command's enumeration entry.
func (c *DeleteRelationshipCommand) Type() decktypes.CommandType {
	return decktypes.CommandDeleteRelationship
}

// Description returns a one-line summary.
func (c *DeleteRelationshipCommand) Description() string {
	return "Remove a relationship from both components"
}

// Usage returns the syntax line.
func (c *DeleteRelationshipCommand) Usage() string {
	return "/delete relationship <component> <relationship> [@Project]"
}

// HelpInfo returns structured help.
func (c *DeleteRelationshipCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
}

// NeedsProject reports that this command operates on a project.
func (c *DeleteRelationshipCommand) NeedsProject() bool { return true }

// Mutates reports that this command writes.
func (c *DeleteRelationshipCommand) Mutates() bool { return true }

// Execute removes both halves of the resolved edge.
func (c *DeleteRelationshipCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if len(cmd.Args) < 2 {
		return decktypes.PromptOutcome("which component and relationship? usage: %s", c.Usage())
	}

	source, ok := resolver.Resolve(req.Project.Components, cmd.Args[0])
	if !ok {
		return notFound("component", cmd.Args[0])
	}

	identifier := joinArgs(cmd.Args[1:])
	edge, repair, err := relationships.NewManager().Remove(req.Project, source.ID, identifier)
	if err != nil {
		return decktypes.ErrorOutcome(err)
	}
	req.Commit()

	out := decktypes.SuccessOutcome("removed relationship %s %s %s",
		source.Name, edge.Type, componentName(req.Project, edge.TargetID))
	out.Repair = repair
	return out
}
