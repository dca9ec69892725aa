// Package decktypes defines the shared types used throughout taskdeck.
// This file contains the command system types: the closed command
// enumeration, the parsed-command structure produced by the parser, and
// the structured help data rendered by the help command.
package decktypes

import "strings"

// CommandType identifies one operation in the closed command set.
// The zero value is CommandUnknown.
type CommandType string

// The full command enumeration. Command names are matched
// case-insensitively and may be one or two words long.
const (
	CommandUnknown CommandType = ""

	CommandAddTodo      CommandType = "add todo"
	CommandViewTodos    CommandType = "view todos"
	CommandEditTodo     CommandType = "edit todo"
	CommandCompleteTodo CommandType = "complete todo"
	CommandDeleteTodo   CommandType = "delete todo"

	CommandAddSubtask      CommandType = "add subtask"
	CommandViewSubtasks    CommandType = "view subtasks"
	CommandCompleteSubtask CommandType = "complete subtask"
	CommandDeleteSubtask   CommandType = "delete subtask"

	CommandAddNote    CommandType = "add note"
	CommandViewNotes  CommandType = "view notes"
	CommandViewNote   CommandType = "view note"
	CommandEditNote   CommandType = "edit note"
	CommandDeleteNote CommandType = "delete note"

	CommandAddDevlog    CommandType = "add devlog"
	CommandViewDevlog   CommandType = "view devlog"
	CommandDeleteDevlog CommandType = "delete devlog"

	CommandAddComponent    CommandType = "add component"
	CommandViewComponents  CommandType = "view components"
	CommandEditComponent   CommandType = "edit component"
	CommandDeleteComponent CommandType = "delete component"

	CommandAddRelationship    CommandType = "add relationship"
	CommandViewRelationships  CommandType = "view relationships"
	CommandEditRelationship   CommandType = "edit relationship"
	CommandDeleteRelationship CommandType = "delete relationship"

	CommandAddStack    CommandType = "add stack"
	CommandViewStack   CommandType = "view stack"
	CommandDeleteStack CommandType = "delete stack"

	CommandCreateProject  CommandType = "create project"
	CommandViewProjects   CommandType = "view projects"
	CommandViewProject    CommandType = "view project"
	CommandSwitchProject  CommandType = "switch project"
	CommandRenameProject  CommandType = "rename project"
	CommandArchiveProject CommandType = "archive project"
	CommandDeleteProject  CommandType = "delete project"
	CommandExportProject  CommandType = "export project"
	CommandImportProject  CommandType = "import project"

	CommandHelp    CommandType = "help"
	CommandVersion CommandType = "version"
)

// AllCommandTypes lists every recognized command type, in display order.
var AllCommandTypes = []CommandType{
	CommandAddTodo, CommandViewTodos, CommandEditTodo, CommandCompleteTodo, CommandDeleteTodo,
	CommandAddSubtask, CommandViewSubtasks, CommandCompleteSubtask, CommandDeleteSubtask,
	CommandAddNote, CommandViewNotes, CommandViewNote, CommandEditNote, CommandDeleteNote,
	CommandAddDevlog, CommandViewDevlog, CommandDeleteDevlog,
	CommandAddComponent, CommandViewComponents, CommandEditComponent, CommandDeleteComponent,
	CommandAddRelationship, CommandViewRelationships, CommandEditRelationship, CommandDeleteRelationship,
	CommandAddStack, CommandViewStack, CommandDeleteStack,
	CommandCreateProject, CommandViewProjects, CommandViewProject, CommandSwitchProject,
	CommandRenameProject, CommandArchiveProject, CommandDeleteProject,
	CommandExportProject, CommandImportProject,
	CommandHelp, CommandVersion,
}

// commandNames maps lower-cased command names to their type.
var commandNames = func() map[string]CommandType {
	m := make(map[string]CommandType, len(AllCommandTypes))
	for _, ct := range AllCommandTypes {
		m[string(ct)] = ct
	}
	return m
}()

// LookupCommandType matches one or two leading words against the command
// set, case-insensitively. It returns the matched type and how many words
// it consumed; CommandUnknown and 0 when nothing matches. Two-word names
// are tried first so "view todos" never half-matches a one-word command.
func LookupCommandType(words []string) (CommandType, int) {
	if len(words) == 0 {
		return CommandUnknown, 0
	}
	if len(words) >= 2 {
		key := strings.ToLower(words[0]) + " " + strings.ToLower(words[1])
		if ct, ok := commandNames[key]; ok {
			return ct, 2
		}
	}
	if ct, ok := commandNames[strings.ToLower(words[0])]; ok {
		return ct, 1
	}
	return CommandUnknown, 0
}

// SuggestCommandTypes returns up to limit command names containing the
// given text, case-insensitively, for unknown-command error messages.
func SuggestCommandTypes(text string, limit int) []string {
	lowered := strings.ToLower(text)
	var out []string
	for _, ct := range AllCommandTypes {
		if strings.Contains(string(ct), lowered) {
			out = append(out, string(ct))
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// ParsedCommand is the result of parsing one command line. It is
// ephemeral: produced per line and owned by the caller of Parse.
type ParsedCommand struct {
	// Type identifies the requested operation.
	Type CommandType
	// RawCommandText is the original command keyword(s) as typed,
	// kept for error messages.
	RawCommandText string
	// Args are the positional tokens in their original left-to-right
	// order, after flags and the project mention are extracted.
	Args []string
	// Flags maps flag names (case as typed) to values. A bare --flag
	// records the value "true".
	Flags map[string]string
	// ProjectMention is the text after a single @ token, or empty when
	// the line targets the ambient project context.
	ProjectMention string
}

// Flag returns the named flag's value and whether it was present.
func (p *ParsedCommand) Flag(name string) (string, bool) {
	v, ok := p.Flags[name]
	return v, ok
}

// BoolFlag reports whether the named flag is present with a truthy value.
func (p *ParsedCommand) BoolFlag(name string) bool {
	v, ok := p.Flags[name]
	if !ok {
		return false
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// IsWizardTrigger reports whether the command was given with no args and
// no flags, the condition that callers treat as a prompt-for-input
// request rather than a malformed command.
func (p *ParsedCommand) IsWizardTrigger() bool {
	return len(p.Args) == 0 && len(p.Flags) == 0
}

// HelpInfo is the structured help for one command, rendered by the help
// command in plain or markdown form.
type HelpInfo struct {
	Command     string        `json:"command" yaml:"command"`
	Description string        `json:"description" yaml:"description"`
	Usage       string        `json:"usage" yaml:"usage"`
	Options     []HelpOption  `json:"options,omitempty" yaml:"options,omitempty"`
	Examples    []HelpExample `json:"examples,omitempty" yaml:"examples,omitempty"`
	Notes       []string      `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// HelpOption documents one command flag.
type HelpOption struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required" yaml:"required"`
	Type        string `json:"type" yaml:"type"`
	Default     string `json:"default,omitempty" yaml:"default,omitempty"`
}

// HelpExample is one usage example with an explanation.
type HelpExample struct {
	Command     string `json:"command" yaml:"command"`
	Description string `json:"description" yaml:"description"`
}
