package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses the process environment into the struct pointed to by cfg.
// Fields are mapped with `env` tags; `envDefault` supplies fallbacks and
// time.Duration fields accept Go duration strings ("30m", "720h").
func Load(cfg any) error {
	return LoadFrom(cfg, nil)
}

// LoadFrom is Load over an explicit variable set instead of os.Environ.
// A nil map means the process environment.
func LoadFrom(cfg any, environ map[string]string) error {
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
