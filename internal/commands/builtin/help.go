package builtin

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"taskdeck/internal/commands"
	"taskdeck/pkg/decktypes"
)

func init() {
	register(&HelpCommand{})
}

// HelpCommand implements /help. With no argument it lists every
// command; with one it renders that command's full help as markdown.
type HelpCommand struct{}

// Type returns the command's enumeration entry.
func (c *HelpCommand) Type() decktypes.CommandType { return decktypes.CommandHelp }

// Description returns a one-line summary.
func (c *HelpCommand) Description() string { return "Show help for a command, or list them all" }

// Usage returns the syntax line.
func (c *HelpCommand) Usage() string { return "/help [command]" }

// HelpInfo returns structured help.
func (c *HelpCommand) HelpInfo() decktypes.HelpInfo {
	return decktypes.HelpInfo{
		Command:     string(c.Type()),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []decktypes.HelpExample{
			{Command: "/help", Description: "List every command"},
			{Command: "/help add todo", Description: "Full help for one command"},
		},
	}
}

// NeedsProject reports that help needs no project.
func (c *HelpCommand) NeedsProject() bool { return false }

// Mutates reports that help is read-only.
func (c *HelpCommand) Mutates() bool { return false }

// Execute renders the requested help.
func (c *HelpCommand) Execute(cmd decktypes.ParsedCommand, req *decktypes.Request) decktypes.Outcome {
	if len(cmd.Args) == 0 {
		return c.listAll()
	}

	name := strings.ToLower(joinArgs(cmd.Args))
	ct, _ := decktypes.LookupCommandType(strings.Fields(name))
	handler, ok := commands.GetGlobalRegistry().Get(ct)
	if !ok {
		out := decktypes.ErrorOutcomef("no command named %q", name)
		out.Suggestions = decktypes.SuggestCommandTypes(name, 5)
		return out
	}

	info := handler.HelpInfo()
	return decktypes.DataOutcome(info, "%s", renderMarkdown(helpMarkdown(info)))
}

func (c *HelpCommand) listAll() decktypes.Outcome {
	var b strings.Builder
	b.WriteString("# taskdeck commands\n\n")
	for _, handler := range commands.GetGlobalRegistry().GetAll() {
		fmt.Fprintf(&b, "- `/%s`: %s\n", handler.Type(), handler.Description())
	}
	b.WriteString("\nRun `/help <command>` for details.\n")
	return decktypes.DataOutcome(nil, "%s", renderMarkdown(b.String()))
}

// helpMarkdown lays out one command's structured help as markdown.
func helpMarkdown(info decktypes.HelpInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# /%s\n\n%s\n\n", info.Command, info.Description)
	fmt.Fprintf(&b, "**Usage:** `%s`\n", info.Usage)

	if len(info.Options) > 0 {
		b.WriteString("\n## Options\n\n")
		for _, opt := range info.Options {
			fmt.Fprintf(&b, "- `--%s` (%s", opt.Name, opt.Type)
			if opt.Default != "" {
				fmt.Fprintf(&b, ", default %s", opt.Default)
			}
			fmt.Fprintf(&b, "): %s\n", opt.Description)
		}
	}
	if len(info.Examples) > 0 {
		b.WriteString("\n## Examples\n\n")
		for _, ex := range info.Examples {
			fmt.Fprintf(&b, "- `%s`: %s\n", ex.Command, ex.Description)
		}
	}
	for _, note := range info.Notes {
		fmt.Fprintf(&b, "\n> %s\n", note)
	}
	return b.String()
}

// renderMarkdown styles markdown for the terminal, falling back to the
// raw text when the renderer cannot start (no TTY, unknown TERM).
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
