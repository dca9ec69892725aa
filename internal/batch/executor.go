// Package batch drives multi-command submissions: split, then parse and
// dispatch each command strictly in order, stopping at the first error.
// Later commands may depend on state mutated by earlier ones (a created
// todo referenced by index in the next command), so there is no
// intra-batch parallelism.
package batch

import (
	"taskdeck/internal/logger"
	"taskdeck/internal/parser"
	"taskdeck/pkg/decktypes"
)

// DispatchFunc executes one parsed command and returns its outcome. The
// caller supplies it; it embeds routing to whichever entity-specific
// handler applies.
type DispatchFunc func(cmd decktypes.ParsedCommand) decktypes.Outcome

// Run splits the raw submission and executes its commands sequentially.
// An oversized batch is rejected before anything is parsed or executed.
// A parse failure counts as that command's outcome and stops the batch,
// as does any error outcome from dispatch; earlier commands are never
// rolled back.
func Run(rawSubmission string, dispatch DispatchFunc) decktypes.BatchResult {
	commands, err := parser.SplitBatch(rawSubmission)
	if err != nil {
		return decktypes.BatchResult{
			Outcomes:  []decktypes.Outcome{decktypes.ErrorOutcome(err)},
			StoppedAt: 0,
			Attempted: 0,
			Total:     0,
		}
	}

	result := decktypes.BatchResult{
		StoppedAt: -1,
		Total:     len(commands),
	}

	for i, raw := range commands {
		logger.BatchStep(i, raw)

		cmd, err := parser.Parse(raw)
		if err != nil {
			result.Outcomes = append(result.Outcomes, decktypes.ErrorOutcome(err))
			result.Attempted++
			result.StoppedAt = i
			break
		}

		outcome := dispatch(*cmd)
		result.Outcomes = append(result.Outcomes, outcome)
		result.Attempted++
		if outcome.IsError() {
			result.StoppedAt = i
			break
		}
	}

	return result
}
