package parser

import (
	"strings"

	"taskdeck/pkg/decktypes"
)

// MaxBatchSize is the hard cap on commands per submission.
const MaxBatchSize = 10

// SplitBatch splits a raw submission into its ordered command strings.
// Newlines split first; a segment that contained no newline is further
// split on && outside quoted regions. Blank segments are dropped. A
// result larger than MaxBatchSize is rejected before anything is parsed
// or executed.
func SplitBatch(rawSubmission string) ([]string, error) {
	var commands []string
	for _, line := range strings.Split(rawSubmission, "\n") {
		for _, segment := range splitOnAnd(line) {
			segment = strings.TrimSpace(segment)
			if segment == "" {
				continue
			}
			commands = append(commands, segment)
		}
	}
	if len(commands) > MaxBatchSize {
		return nil, &decktypes.BatchError{Count: len(commands), Limit: MaxBatchSize}
	}
	return commands, nil
}

// splitOnAnd splits a single line on the literal sequence && outside
// quoted regions. && inside "…" is not a separator.
func splitOnAnd(line string) []string {
	var segments []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			current.WriteByte(c)
		case !inQuotes && c == '&' && i+1 < len(line) && line[i+1] == '&':
			segments = append(segments, current.String())
			current.Reset()
			i++
		default:
			current.WriteByte(c)
		}
	}
	segments = append(segments, current.String())
	return segments
}
