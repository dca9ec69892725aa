// Package parser turns raw command lines into parsed commands and splits
// multi-command submissions into batches. Parsing is pure: it never
// touches storage and never performs I/O.
package parser

import (
	"strings"

	"taskdeck/pkg/decktypes"
)

// suggestionLimit caps the "did you mean" list on unknown commands.
const suggestionLimit = 5

// token is one scanned unit of a command line. quoted marks tokens that
// began with a double quote; those are never interpreted as flags or
// mentions.
type token struct {
	text   string
	quoted bool
}

// Parse turns one raw command line into a ParsedCommand.
//
// The line shape is:
//
//	/commandName [args...] [--flag[=value]]* [@Project Mention]
//
// The leading slash is optional. Command names are one or two words and
// matched case-insensitively. Quoted substrings are single tokens.
// Flags may appear anywhere. Exactly one @mention is allowed; its text
// runs up to the next flag or the end of the line.
func Parse(rawLine string) (*decktypes.ParsedCommand, error) {
	line := strings.TrimSpace(rawLine)
	line = strings.TrimPrefix(line, "/")
	if line == "" {
		return nil, &decktypes.ParseError{Kind: decktypes.ParseEmptyCommand}
	}

	tokens, err := scan(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, &decktypes.ParseError{Kind: decktypes.ParseEmptyCommand}
	}

	words := make([]string, 0, 2)
	for _, t := range tokens[:min(2, len(tokens))] {
		words = append(words, t.text)
	}
	cmdType, consumed := decktypes.LookupCommandType(words)
	if cmdType == decktypes.CommandUnknown {
		return nil, &decktypes.ParseError{
			Kind:        decktypes.ParseUnknownCommand,
			Command:     words[0],
			Suggestions: decktypes.SuggestCommandTypes(words[0], suggestionLimit),
		}
	}

	cmd := &decktypes.ParsedCommand{
		Type:           cmdType,
		RawCommandText: strings.Join(words[:consumed], " "),
		Flags:          make(map[string]string),
	}

	// inMention is set while plain tokens are still being absorbed into
	// the mention text; a flag token ends the mention.
	inMention := false
	for _, t := range tokens[consumed:] {
		switch {
		case !t.quoted && strings.HasPrefix(t.text, "--"):
			name, value := splitFlag(t.text)
			cmd.Flags[name] = value
			inMention = false
		case !t.quoted && strings.HasPrefix(t.text, "@"):
			if cmd.ProjectMention != "" || inMention {
				return nil, &decktypes.ParseError{Kind: decktypes.ParseDuplicateMention}
			}
			cmd.ProjectMention = strings.TrimPrefix(t.text, "@")
			inMention = true
		case inMention:
			cmd.ProjectMention += " " + t.text
		default:
			cmd.Args = append(cmd.Args, t.text)
		}
	}
	cmd.ProjectMention = strings.TrimSpace(cmd.ProjectMention)

	return cmd, nil
}

// splitFlag splits a --name[=value] token into name and value. A bare
// flag records "true"; a flag with an empty value keeps the empty string.
func splitFlag(text string) (string, string) {
	body := strings.TrimPrefix(text, "--")
	if name, value, found := strings.Cut(body, "="); found {
		return name, value
	}
	return body, "true"
}

// scan tokenizes a line on whitespace, treating "…" regions as part of
// the current token. Quote characters are consumed, not kept. An
// unterminated quote is a parse error.
func scan(line string) ([]token, error) {
	var tokens []token
	var current strings.Builder
	inQuotes := false
	started := false
	quotedToken := false

	flush := func() {
		if started {
			tokens = append(tokens, token{text: current.String(), quoted: quotedToken})
			current.Reset()
			started = false
			quotedToken = false
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if !started {
				quotedToken = true
			}
			started = true
			inQuotes = !inQuotes
		case !inQuotes && (c == ' ' || c == '\t'):
			flush()
		default:
			started = true
			current.WriteByte(c)
		}
	}
	if inQuotes {
		return nil, &decktypes.ParseError{Kind: decktypes.ParseMalformedQuoting}
	}
	flush()

	return tokens, nil
}
