package memory

import (
	"slices"
	"sync"

	"github.com/custodia-labs/graphscope/internal/core/domain"
	"github.com/custodia-labs/graphscope/internal/core/ports/driven"
)

// Ensure ConfigSource implements the interface.
var _ driven.ConfigSource = (*ConfigSource)(nil)

// ConfigSource is a fixed, in-memory configuration for tests and for
// callers that build the configuration themselves.
type ConfigSource struct {
	mu  sync.RWMutex
	cfg domain.AppConfig
}

// NewConfigSource creates a config source holding cfg.
func NewConfigSource(cfg domain.AppConfig) *ConfigSource {
	return &ConfigSource{cfg: cfg}
}

// Config returns a copy of the configuration.
func (s *ConfigSource) Config() domain.AppConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg := s.cfg
	cfg.Scopes = slices.Clone(s.cfg.Scopes)
	return cfg
}

// Update applies fn to the configuration under the lock.
func (s *ConfigSource) Update(fn func(*domain.AppConfig)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.cfg)
}
