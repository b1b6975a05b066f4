package config

// current is the process-wide configuration. It follows a single-writer
// discipline: Configure and Reset run before concurrent readers start. There is
// no locking.
var current *Config

// Current returns the process-wide configuration, creating a default one on
// first access.
func Current() *Config {
	if current == nil {
		current = New()
	}
	return current
}

// Configure applies mutator to the current configuration and then validates
// it. Without a mutator no validation happens and the current configuration is
// returned as is.
func Configure(mutator func(*Config) error) (*Config, error) {
	cfg := Current()
	if mutator == nil {
		return cfg, nil
	}
	if err := mutator(cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Reset discards the current configuration; the next Current call builds a
// fresh default instance.
func Reset() {
	current = nil
}

// Enabled reports whether the named feature is enabled in the current
// configuration. Unknown names are false.
func Enabled(name string) bool {
	return Current().Enabled(name)
}

// Status reports the state of the named feature in the current configuration.
func Status(name string) FeatureState {
	return Current().FeatureStatus(name)
}
