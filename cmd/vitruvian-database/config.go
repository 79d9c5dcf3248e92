package main

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
)

const (
	profileCPU = "cpu"
	profileMem = "mem"
)

type Config struct {
	// Profile enables profiling of the run ("cpu", "mem"). Empty disables it.
	Profile string `env:"VITRUVIAN_PROFILE"`

	// ProfileDir is where the profile is written.
	ProfileDir string `env:"VITRUVIAN_PROFILE_DIR" envDefault:"."`
}

func loadConfig() (Config, error) {
	cfg := Config{}

	if err := env.Parse(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse config")
	}

	if err := cfg.validate(); err != nil {
		return cfg, eris.Wrap(err, "failed to validate config")
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	switch cfg.Profile {
	case "", profileCPU, profileMem:
	default:
		return eris.Errorf("invalid profile: %s (must be '%s' or '%s')", cfg.Profile, profileCPU, profileMem)
	}
	if cfg.ProfileDir == "" {
		return eris.New("profile directory cannot be empty")
	}
	return nil
}

// startProfile starts the configured profile and returns the function that stops it.
func startProfile(cfg Config) func() {
	var mode func(*profile.Profile)
	switch cfg.Profile {
	case profileCPU:
		mode = profile.CPUProfile
	case profileMem:
		mode = profile.MemProfile
	default:
		return func() {}
	}

	p := profile.Start(mode, profile.ProfilePath(cfg.ProfileDir), profile.Quiet, profile.NoShutdownHook)
	return p.Stop
}
