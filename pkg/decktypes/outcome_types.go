// This file contains the outcome and batch-result types: the structured
// values commands return instead of printing directly, and the aggregate
// the batch executor produces.
package decktypes

import "fmt"

// OutcomeStatus classifies a command outcome.
type OutcomeStatus string

// Outcome statuses.
const (
	StatusSuccess OutcomeStatus = "success"
	StatusError   OutcomeStatus = "error"
	StatusPrompt  OutcomeStatus = "prompt"
	StatusData    OutcomeStatus = "data"
)

// Outcome is the structured result of dispatching one command. Every
// outcome carries a human message; data outcomes may carry a payload,
// error outcomes may carry actionable suggestions.
type Outcome struct {
	Status      OutcomeStatus
	Message     string
	Payload     any
	Suggestions []string
	// Repair notes a detected consistency anomaly that did not fail the
	// command (e.g. a missing relationship mirror).
	Repair string
	// Err holds the underlying error for error outcomes.
	Err error
}

// IsError reports whether the outcome stops a batch.
func (o Outcome) IsError() bool { return o.Status == StatusError }

// SuccessOutcome builds a success outcome with a formatted message.
func SuccessOutcome(format string, args ...any) Outcome {
	return Outcome{Status: StatusSuccess, Message: fmt.Sprintf(format, args...)}
}

// DataOutcome builds a data outcome carrying a payload.
func DataOutcome(payload any, format string, args ...any) Outcome {
	return Outcome{Status: StatusData, Payload: payload, Message: fmt.Sprintf(format, args...)}
}

// PromptOutcome builds a prompt outcome asking the caller for input.
func PromptOutcome(format string, args ...any) Outcome {
	return Outcome{Status: StatusPrompt, Message: fmt.Sprintf(format, args...)}
}

// ErrorOutcome builds an error outcome from an error value. The error's
// message becomes the human message; suggestion-carrying errors keep
// their suggestions visible.
func ErrorOutcome(err error) Outcome {
	out := Outcome{Status: StatusError, Message: err.Error(), Err: err}
	if s, ok := err.(interface{ SuggestionList() []string }); ok {
		out.Suggestions = s.SuggestionList()
	}
	return out
}

// ErrorOutcomef builds an error outcome with a formatted message only.
func ErrorOutcomef(format string, args ...any) Outcome {
	return Outcome{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

// BatchResult is the ordered aggregate of a batch run. Outcomes holds
// one entry per attempted command, up to and including the one that
// stopped the batch.
type BatchResult struct {
	// Outcomes are the per-command results in submission order.
	Outcomes []Outcome
	// StoppedAt is the 0-based index of the failing command, or -1 when
	// the whole batch ran.
	StoppedAt int
	// Attempted is the number of commands actually executed.
	Attempted int
	// Total is the number of commands the submission split into.
	Total int
}

// Completed reports whether every command in the batch ran successfully.
func (b BatchResult) Completed() bool { return b.StoppedAt < 0 }
