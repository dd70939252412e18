package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	BackendValkey = "valkey"
	BackendMemory = "memory"
)

type Config struct {
	Domain         string        `env:"EMS_DOMAIN" envDefault:"http://localhost:8080"`
	Host           string        `env:"EMS_HOST" envDefault:"localhost:8080"`
	Backend        string        `env:"EMS_BACKEND" envDefault:"valkey"`
	DB             string        `env:"EMS_DB" envDefault:"localhost:6379"`
	BackendTimeout time.Duration `env:"EMS_BACKEND_TIMEOUT" envDefault:"5s"`
	SweepInterval  time.Duration `env:"EMS_SWEEP_INTERVAL" envDefault:"1m"`
	UI             bool          `env:"EMS_UI" envDefault:"true"`
	IsProd         bool          `env:"EMS_PROD" envDefault:"false"`

	Auth struct {
		IsEnabled bool   `env:"ENABLED" envDefault:"false"`
		Username  string `env:"USERNAME" envDefault:"admin"`
		Password  string `env:"PASSWORD" envDefault:"admin"`
	} `envPrefix:"EMS_BASIC_AUTH_"`
}

func (c *Config) Load() error {
	if err := env.Parse(c); err != nil {
		return err
	}
	return c.validate()
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendValkey, BackendMemory:
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.BackendTimeout <= 0 {
		return fmt.Errorf("config: non-positive backend timeout %s", c.BackendTimeout)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("config: non-positive sweep interval %s", c.SweepInterval)
	}
	return nil
}
