package main

import (
	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
)

type Config struct {
	// SchemaDir is the default directory schemas are exported to and checked in.
	SchemaDir string `env:"VITRUVIAN_SCHEMA_DIR" envDefault:"schema"`
}

func loadConfig() (Config, error) {
	cfg := Config{}

	if err := env.Parse(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse config")
	}

	if cfg.SchemaDir == "" {
		return cfg, eris.New("schema directory cannot be empty")
	}

	return cfg, nil
}
