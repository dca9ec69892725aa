// Package commands provides command registration and dispatch for
// taskdeck. It manages a global registry keyed by command type and the
// dispatcher that resolves a project, runs the handler, and commits
// staged mutations in one save.
package commands

import (
	"fmt"
	"sync"

	"taskdeck/pkg/decktypes"
)

// Registry manages command registration and lookup. It provides
// thread-safe registration and retrieval by command type.
type Registry struct {
	mu       sync.RWMutex
	commands map[decktypes.CommandType]decktypes.Command
}

// NewRegistry creates a new command registry with an empty command map.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[decktypes.CommandType]decktypes.Command),
	}
}

// Register adds a command to the registry. Returns an error if the
// command type is empty or already registered.
func (r *Registry) Register(cmd decktypes.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cmd.Type() == decktypes.CommandUnknown {
		return fmt.Errorf("command type cannot be empty")
	}
	if _, exists := r.commands[cmd.Type()]; exists {
		return fmt.Errorf("command %q already registered", cmd.Type())
	}

	r.commands[cmd.Type()] = cmd
	return nil
}

// Get retrieves a command by type. Returns the command and true if
// found, or nil and false otherwise.
func (r *Registry) Get(ct decktypes.CommandType) (decktypes.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, exists := r.commands[ct]
	return cmd, exists
}

// GetAll returns all registered commands in enumeration order.
func (r *Registry) GetAll() []decktypes.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]decktypes.Command, 0, len(r.commands))
	for _, ct := range decktypes.AllCommandTypes {
		if cmd, ok := r.commands[ct]; ok {
			out = append(out, cmd)
		}
	}
	return out
}

// GlobalRegistry is the global command registry instance. Commands
// register themselves with it during initialization.
var GlobalRegistry = NewRegistry()

// GetGlobalRegistry returns the global command registry.
func GetGlobalRegistry() *Registry {
	return GlobalRegistry
}
