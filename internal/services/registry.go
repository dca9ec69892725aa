// Package services provides taskdeck's infrastructure services: a
// registry with lifecycle management and the configuration service that
// feeds every other component its settings.
package services

import (
	"fmt"
	"sync"

	"taskdeck/pkg/decktypes"
)

// Registry manages service registration and lifecycle.
type Registry struct {
	mu       sync.RWMutex
	services map[string]decktypes.Service
	order    []string
}

// NewRegistry creates a new service registry with an empty service map.
func NewRegistry() *Registry {
	return &Registry{
		services: make(map[string]decktypes.Service),
	}
}

// RegisterService adds a service to the registry. Returns an error if a
// service with the same name is already registered.
func (r *Registry) RegisterService(service decktypes.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := service.Name()
	if name == "" {
		return fmt.Errorf("service name cannot be empty")
	}
	if _, exists := r.services[name]; exists {
		return fmt.Errorf("service %q already registered", name)
	}

	r.services[name] = service
	r.order = append(r.order, name)
	return nil
}

// GetService retrieves a service by name.
func (r *Registry) GetService(name string) (decktypes.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	service, exists := r.services[name]
	if !exists {
		return nil, fmt.Errorf("service %q not found", name)
	}
	return service, nil
}

// InitializeAll initializes every registered service in registration
// order, stopping at the first failure.
func (r *Registry) InitializeAll() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		if err := r.services[name].Initialize(); err != nil {
			return fmt.Errorf("initializing service %q: %w", name, err)
		}
	}
	return nil
}

// GlobalRegistry is the global service registry instance.
var GlobalRegistry = NewRegistry()

// globalRegistryMu protects access to the GlobalRegistry variable itself.
var globalRegistryMu sync.RWMutex

// GetGlobalRegistry returns the global service registry instance.
func GetGlobalRegistry() *Registry {
	globalRegistryMu.RLock()
	defer globalRegistryMu.RUnlock()
	return GlobalRegistry
}

// SetGlobalRegistry swaps the global registry, used by tests that need
// an isolated service set.
func SetGlobalRegistry(registry *Registry) {
	globalRegistryMu.Lock()
	defer globalRegistryMu.Unlock()
	GlobalRegistry = registry
}
