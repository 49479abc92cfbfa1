package storage

import "fmt"

// Supported backend drivers.
const (
	DriverSQLite = "sqlite"
	DriverJSON   = "json"
	DriverMemory = "memory"
)

// Config selects and locates a storage backend.
type Config struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"` // empty = driver default
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Driver: DriverSQLite}
}

// Open opens the backend described by cfg.
func Open(cfg Config) (Backend, error) {
	defaults := DefaultConfig()
	if cfg.Driver == "" {
		cfg.Driver = defaults.Driver
	}

	switch cfg.Driver {
	case DriverSQLite:
		path := cfg.Path
		if path == "" {
			var err error
			if path, err = DefaultSQLitePath(); err != nil {
				return nil, err
			}
		}
		return NewSQLiteStorage(path)

	case DriverJSON:
		path := cfg.Path
		if path == "" {
			var err error
			if path, err = DefaultJSONPath(); err != nil {
				return nil, err
			}
		}
		return NewJSONStorage(path), nil

	case DriverMemory:
		return NewMemoryStorage(nil), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
