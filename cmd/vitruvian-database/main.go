// Command vitruvian-database creates a world holding a single entity with a name and a damage die.
// It writes nothing unless VITRUVIAN_LOG_LEVEL is debug, and exits non-zero on failure.
package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/vitruvian-labs/vitruvian/pkg/ecs"
	"github.com/vitruvian-labs/vitruvian/pkg/telemetry"
	"github.com/vitruvian-labs/vitruvian/pkg/types"
)

const serviceName = "vitruvian-database"

func main() {
	tel, err := telemetry.New(telemetry.Options{ServiceName: serviceName})
	if err != nil {
		fallback := zerolog.New(os.Stderr).With().Timestamp().Logger()
		fallback.Error().Err(err).Msg("failed to set up logging")
		os.Exit(1)
	}
	logger := tel.GetLogger("main")

	cfg, err := loadConfig()
	if err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	stopProfile := startProfile(cfg)
	err = run(tel.GetLogger("ecs"), logger)
	stopProfile()

	if err != nil {
		logger.Error().Err(err).Msg("failed to assemble entity")
		os.Exit(1)
	}
}

// run creates the world and assembles the entity.
func run(worldLogger, logger zerolog.Logger) error {
	w := ecs.NewWorld(ecs.WithLogger(worldLogger))
	if err := types.RegisterComponents(w); err != nil {
		return err
	}

	eid, err := assemble(w)
	if err != nil {
		return err
	}

	logger.Debug().Uint32("entity_id", uint32(eid)).Int("total_entities", w.Len()).Msg("entity assembled")
	return nil
}

// assemble creates an empty entity and attaches a Name and a Damage to it.
func assemble(w *ecs.World) (ecs.EntityID, error) {
	eid, err := ecs.Create(w)
	if err != nil {
		return 0, err
	}
	if err := ecs.Add(w, eid, types.NewName("Test")); err != nil {
		return 0, eris.Wrapf(err, "failed to attach name to entity %d", eid)
	}
	if err := ecs.Add(w, eid, types.NewDamage(types.D6)); err != nil {
		return 0, eris.Wrapf(err, "failed to attach damage to entity %d", eid)
	}
	return eid, nil
}
