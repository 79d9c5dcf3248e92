package ecs

import "github.com/rs/zerolog"

// logEntity logs an entity together with the components of its archetype.
func logEntity(logger *zerolog.Logger, level zerolog.Level, msg string, eid EntityID, arch *archetype) {
	event := logger.WithLevel(level)
	if event == nil {
		return
	}

	components := zerolog.Arr()
	for _, col := range arch.columns {
		components = components.Str(col.name())
	}
	event.
		Uint32("entity_id", uint32(eid)).
		Int("archetype_id", arch.id).
		Array("components", components).
		Msg(msg)
}
