// Package output renders command outcomes and batch results for the
// terminal. Styling degrades to plain text when the terminal cannot
// display color.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"taskdeck/pkg/decktypes"
)

// Printer writes styled outcome text. It is safe for concurrent use.
type Printer struct {
	mu     sync.Mutex
	writer io.Writer
	plain  bool

	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	promptStyle  lipgloss.Style
	repairStyle  lipgloss.Style
	mutedStyle   lipgloss.Style
}

// Option configures a Printer.
type Option func(*Printer)

// WithWriter directs output somewhere other than stdout.
func WithWriter(w io.Writer) Option {
	return func(p *Printer) { p.writer = w }
}

// WithPlain disables all styling.
func WithPlain() Option {
	return func(p *Printer) { p.plain = true }
}

// NewPrinter creates a printer writing to stdout, with styling enabled
// when the terminal supports color.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer:       os.Stdout,
		successStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		promptStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		repairStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Italic(true),
		mutedStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
	if termenv.DefaultOutput().Profile == termenv.Ascii {
		p.plain = true
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Outcome renders one command outcome.
func (p *Printer) Outcome(o decktypes.Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch o.Status {
	case decktypes.StatusError:
		p.line(p.errorStyle, "error: "+o.Message)
		for _, s := range o.Suggestions {
			p.line(p.mutedStyle, "  did you mean: "+s)
		}
	case decktypes.StatusPrompt:
		p.line(p.promptStyle, o.Message)
	case decktypes.StatusData:
		p.line(lipgloss.NewStyle(), o.Message)
	default:
		p.line(p.successStyle, o.Message)
	}
	if o.Repair != "" {
		p.line(p.repairStyle, "note: "+o.Repair)
	}
}

// Batch renders every outcome of a batch, then a stop notice when the
// batch did not run to completion.
func (p *Printer) Batch(result decktypes.BatchResult) {
	for _, o := range result.Outcomes {
		p.Outcome(o)
	}
	if result.Completed() || result.Total == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	remaining := result.Total - result.Attempted
	p.line(p.mutedStyle, fmt.Sprintf("stopped at command %d; %d command(s) not run", result.StoppedAt+1, remaining))
}

func (p *Printer) line(style lipgloss.Style, text string) {
	if text == "" {
		return
	}
	if p.plain {
		fmt.Fprintln(p.writer, text)
		return
	}
	fmt.Fprintln(p.writer, style.Render(text))
}
