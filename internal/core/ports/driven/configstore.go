package driven

import "github.com/custodia-labs/graphscope/internal/core/domain"

// ConfigSource provides the current application configuration.
// Services read it on every operation so reloaded values take effect.
type ConfigSource interface {
	// Config returns a copy of the current configuration.
	Config() domain.AppConfig
}
