package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/creasty/defaults"
)

type GlobalConfig struct {
	Database Database `mapstructure:",squash"`
	Redis    Redis    `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Session  Session  `mapstructure:",squash"`
	Auth     Auth     `mapstructure:",squash"`
	Log      Log      `mapstructure:",squash"`
	Trace    Trace    `mapstructure:",squash"`
}

var config = &GlobalConfig{}

func init() {
	if err := defaults.Set(config); err != nil {
		fmt.Printf("set default err: %+v", err)
		os.Exit(1)
	}
}

func Global() *GlobalConfig {
	return config
}

// DevJWTSecret is the shipped AUTH_JWT_SECRET default; only dev may run with it.
const DevJWTSecret = "labportal-dev-secret"

// Validate rejects settings that are only safe on a developer machine.
func (c *GlobalConfig) Validate() error {
	if c.Server.Env == "dev" {
		return nil
	}
	if c.Auth.JWTSecret == "" || c.Auth.JWTSecret == DevJWTSecret {
		return errors.New("AUTH_JWT_SECRET must be set when ENV is not dev")
	}
	return nil
}
