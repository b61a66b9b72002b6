// Package runtime holds the settings a server was started with.
package runtime

import (
	"maps"
	"sync"

	"github.com/GriffinCanCode/SuperKit/internal/shared/errdefs"
)

// ServerConfig is the resolved listener configuration.
type ServerConfig struct {
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Reload      bool   `json:"reload"`
	Environment string `json:"environment"`
}

// Registry is an initialize-once record of the resolved settings. It is
// created at startup and passed to whatever needs it.
type Registry struct {
	mu          sync.RWMutex
	initialized bool
	settings    map[string]any
	server      ServerConfig
}

// NewRegistry creates an uninitialized registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Initialize stores settings and server. Only the first call succeeds.
func (r *Registry) Initialize(settings map[string]any, server ServerConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return errdefs.State("runtime already initialized")
	}
	r.settings = maps.Clone(settings)
	if r.settings == nil {
		r.settings = make(map[string]any)
	}
	r.server = server
	r.initialized = true
	return nil
}

// IsInitialized reports whether Initialize has succeeded.
func (r *Registry) IsInitialized() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.initialized
}

// Settings returns a copy of the stored settings.
func (r *Registry) Settings() (map[string]any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.initialized {
		return nil, errdefs.State("runtime not initialized")
	}
	return maps.Clone(r.settings), nil
}

// Server returns the stored server configuration.
func (r *Registry) Server() (ServerConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.initialized {
		return ServerConfig{}, errdefs.State("runtime not initialized")
	}
	return r.server, nil
}
