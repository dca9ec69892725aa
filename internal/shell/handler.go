// Package shell provides the interactive shell and script runner. It
// routes raw input lines through the batch executor into the command
// dispatcher and renders the results.
package shell

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/abiosoft/ishell/v2"

	"taskdeck/internal/batch"
	"taskdeck/internal/commands"
	_ "taskdeck/internal/commands/builtin" // command registration side effects
	"taskdeck/internal/logger"
	"taskdeck/internal/output"
	"taskdeck/internal/services"
	"taskdeck/pkg/decktypes"
)

// Shell is the interactive front end: an ishell loop feeding the batch
// executor and dispatcher, with one session for the process lifetime.
type Shell struct {
	ishell     *ishell.Shell
	dispatcher *commands.Dispatcher
	printer    *output.Printer
	session    *decktypes.Session
}

// New creates an interactive shell around the given dispatcher and
// session. All input is free-form command text, so everything routes
// through the not-found handler rather than ishell's own command table.
func New(dispatcher *commands.Dispatcher, printer *output.Printer, session *decktypes.Session) *Shell {
	s := &Shell{
		ishell:     ishell.New(),
		dispatcher: dispatcher,
		printer:    printer,
		session:    session,
	}
	s.ishell.SetPrompt("taskdeck> ")
	s.ishell.NotFound(s.processInput)
	return s
}

// Run starts the interactive loop and blocks until the user exits.
func (s *Shell) Run() {
	s.ishell.Println("taskdeck - type /help for commands, ctrl-d to exit")
	s.ishell.Run()
}

// processInput handles one submitted line or multi-line paste.
func (s *Shell) processInput(c *ishell.Context) {
	raw := strings.TrimSpace(strings.Join(c.RawArgs, " "))
	if raw == "" {
		return
	}
	// Comment lines are silently skipped, matching script behavior.
	if strings.HasPrefix(raw, "#") {
		return
	}

	s.printer.Batch(s.execute(raw))
}

// execute runs a raw submission as a batch against the session.
func (s *Shell) execute(raw string) decktypes.BatchResult {
	return batch.Run(raw, func(cmd decktypes.ParsedCommand) decktypes.Outcome {
		return s.dispatcher.Dispatch(context.Background(), s.session, cmd)
	})
}

// RunScript executes a command file: comment and blank lines are
// dropped, everything else runs as one batch with the usual
// stop-on-first-error rule.
func (s *Shell) RunScript(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script %s: %w", path, err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines = append(lines, trimmed)
	}
	if len(lines) == 0 {
		return nil
	}

	result := s.execute(strings.Join(lines, "\n"))
	s.printer.Batch(result)
	if !result.Completed() {
		return fmt.Errorf("script stopped at command %d of %d", result.StoppedAt+1, result.Total)
	}
	return nil
}

// InitializeServices registers and initializes the service set every
// entry point needs. It returns the configuration service for wiring.
func InitializeServices() (*services.ConfigurationService, error) {
	config := services.NewConfigurationService()
	if err := services.GetGlobalRegistry().RegisterService(config); err != nil {
		return nil, err
	}
	if err := services.GetGlobalRegistry().InitializeAll(); err != nil {
		return nil, err
	}
	logger.Debug("services initialized")
	return config, nil
}
