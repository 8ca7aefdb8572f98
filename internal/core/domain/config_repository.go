package domain

import "context"

// ConfigRepository is the abstraction for any kind of database intended to
// persist the singleton Config.
type ConfigRepository interface {
	// GetConfig returns the stored config, or ErrConfigNotInitialized.
	GetConfig(ctx context.Context) (*Config, error)
	// InitConfig stores the config at system initialization. It fails with
	// ErrConfigAlreadyInitialized if called twice.
	InitConfig(ctx context.Context, config Config) error
	// UpdateConfig allows to commit multiple changes to the config in a
	// transactional way.
	UpdateConfig(
		ctx context.Context,
		updateFn func(config *Config) (*Config, error),
	) error
}
