package config

import "sync"

var (
	// globalConfig holds the process-wide configuration.
	globalConfig *Config

	// configMutex protects access to globalConfig.
	configMutex sync.RWMutex
)

// Initialize loads configuration from path (or defaults when the file is
// missing) and stores it as the global configuration.
func Initialize(path string) error {
	cfg, err := LoadOrDefault(path)
	if err != nil {
		return err
	}
	SetConfig(cfg)
	return nil
}

// GetConfig returns the global configuration, or nil before Initialize.
//
// Prefer passing an explicit *Config; the global exists for CLI commands
// that share flags across subcommands.
func GetConfig() *Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig
}

// SetConfig replaces the global configuration. Intended for tests.
func SetConfig(cfg *Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = cfg
}
