// Command vitruvian-schema exports the JSON Schemas of the core components and checks stored
// schemas against the current types.
package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/vitruvian-labs/vitruvian/pkg/telemetry"
)

const serviceName = "vitruvian-schema"

func main() {
	tel, err := telemetry.New(telemetry.Options{ServiceName: serviceName})
	if err != nil {
		fallback := zerolog.New(os.Stderr).With().Timestamp().Logger()
		fallback.Error().Err(err).Msg("failed to set up logging")
		os.Exit(1)
	}
	logger := tel.GetLogger("cli")

	cfg, err := loadConfig()
	if err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
