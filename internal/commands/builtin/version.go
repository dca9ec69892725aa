package builtin

import (
	"taskdeck/internal/version"
	"taskdeck/pkg/decktypes"
)

func init() {
	register(&VersionCommand{})
}

// VersionCommand implements /version.
type VersionCommand struct{}

// Type returns the command's enumeration entry.
func (c *VersionCommand) Type() decktypes.CommandType { return decktypes.CommandVersion }

// Description returns a one-line summary.
func (c *VersionCommand) Description() string { return "Show the taskdeck version" }

// Usage returns the syntax line.
func (c *VersionCommand) Usage() string { return "/version [--detailed]" }

// HelpInfo returns structured help.
func (c *VersionCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []decktypes.HelpOption{
			{Name: "detailed", Description: "Include build and platform information", Type: "bool", Default: "false"},
		},
	}
}

// NeedsProject reports that version needs no project.
func (c *VersionCommand) NeedsProject() bool { return false }

// Mutates reports that version is read-only.
func (c *VersionCommand) Mutates() bool { return false }

// Execute reports the build's version information.
func (c *VersionCommand) Execute(cmd decktypes.ParsedCommand, _ *decktypes.Request) decktypes.Outcome {
	if cmd.BoolFlag("detailed") {
		info, err := version.GetInfo()
		if err != nil {
			return decktypes.ErrorOutcome(err)
		}
		return decktypes.DataOutcome(info, "%s", version.GetDetailedVersion())
	}
	return decktypes.SuccessOutcome("%s", version.GetFormattedVersion())
}
