package ecs

import (
	"github.com/rotisserie/eris"

	"github.com/vitruvian-labs/vitruvian/pkg/codec"
)

// worldSnapshot is the serialized form of a world's entities. Component types aren't part of it;
// they are recreated by registering the same types before Deserialize.
type worldSnapshot struct {
	NextID     uint32              `msgpack:"next_id"`
	FreeIDs    []uint32            `msgpack:"free_ids"`
	Archetypes []archetypeSnapshot `msgpack:"archetypes"`
}

type archetypeSnapshot struct {
	Entities []uint32         `msgpack:"entities"`
	Columns  []columnSnapshot `msgpack:"columns"`
}

type columnSnapshot struct {
	Component string   `msgpack:"component"`
	Rows      [][]byte `msgpack:"rows"` // JSON form of each row's component
}

// Serialize converts the world's entities and components to bytes.
func (w *World) Serialize() ([]byte, error) {
	w.entities.mu.Lock()
	snapshot := worldSnapshot{
		NextID:     uint32(w.entities.nextID),
		FreeIDs:    make([]uint32, len(w.entities.free)),
		Archetypes: make([]archetypeSnapshot, 0, len(w.archetypes)),
	}
	for i, eid := range w.entities.free {
		snapshot.FreeIDs[i] = uint32(eid)
	}
	w.entities.mu.Unlock()

	for _, arch := range w.archetypes {
		archSnapshot := archetypeSnapshot{
			Entities: make([]uint32, len(arch.entities)),
			Columns:  make([]columnSnapshot, len(arch.columns)),
		}
		for i, eid := range arch.entities {
			archSnapshot.Entities[i] = uint32(eid)
		}
		for i, col := range arch.columns {
			rows, err := col.encode()
			if err != nil {
				return nil, eris.Wrapf(err, "failed to serialize archetype %d", arch.id)
			}
			archSnapshot.Columns[i] = columnSnapshot{Component: col.name(), Rows: rows}
		}
		snapshot.Archetypes = append(snapshot.Archetypes, archSnapshot)
	}

	bz, err := codec.Marshal(snapshot)
	if err != nil {
		return nil, eris.Wrap(err, "failed to serialize world")
	}
	return bz, nil
}

// Deserialize replaces the world's entities and components with the serialized ones. Every
// component type in the snapshot must already be registered. The world is left unchanged when an
// error is returned.
func (w *World) Deserialize(data []byte) error {
	var snapshot worldSnapshot
	if err := codec.Unmarshal(data, &snapshot); err != nil {
		return eris.Wrap(err, "failed to deserialize world")
	}

	// Every ID below NextID is either alive or free, so the counts must match exactly. Checking this
	// first bounds NextID, and with it every ID that may index a sparse row set, by the snapshot size.
	total := uint64(len(snapshot.FreeIDs))
	for _, archSnapshot := range snapshot.Archetypes {
		total += uint64(len(archSnapshot.Entities))
	}
	if total != uint64(snapshot.NextID) {
		return eris.Errorf("snapshot holds %d entity IDs but its next ID is %d", total, snapshot.NextID)
	}
	nextID := EntityID(snapshot.NextID)

	restored := &World{
		components: w.components,
		entities:   newEntityManager(),
		archetypes: make([]*archetype, 0, len(snapshot.Archetypes)+1),
		logger:     w.logger,
	}
	restored.findOrCreateArchetype(nil)

	for i, archSnapshot := range snapshot.Archetypes {
		if err := restored.restoreArchetype(archSnapshot, nextID); err != nil {
			return eris.Wrapf(err, "failed to restore archetype %d", i)
		}
	}

	seen := make(map[EntityID]struct{}, len(snapshot.FreeIDs))
	for _, id := range snapshot.FreeIDs {
		eid := EntityID(id)
		_, dup := seen[eid]
		if dup || restored.entities.isAlive(eid) || eid >= nextID {
			return eris.Errorf("invalid free entity ID %d", id)
		}
		seen[eid] = struct{}{}
		restored.entities.free = append(restored.entities.free, eid)
	}
	restored.entities.nextID = nextID

	w.entities.mu.Lock()
	w.entities.nextID = restored.entities.nextID
	w.entities.free = restored.entities.free
	w.entities.entityArch = restored.entities.entityArch
	w.entities.mu.Unlock()
	w.archetypes = restored.archetypes

	w.logger.Debug().Int("total_entities", w.Len()).Msg("world deserialized")
	return nil
}

// restoreArchetype recreates one archetype from its snapshot. Entity IDs must be below nextID.
func (w *World) restoreArchetype(snapshot archetypeSnapshot, nextID EntityID) error {
	names := make([]string, len(snapshot.Columns))
	for i, col := range snapshot.Columns {
		names[i] = col.Component
	}
	bm, err := w.components.toBitmap(names)
	if err != nil {
		return err
	}
	if bm.Count() != len(names) {
		return eris.New("duplicate column in archetype")
	}

	arch := w.findOrCreateArchetype(bm)
	if len(arch.entities) > 0 {
		return eris.New("archetype appears more than once")
	}

	for _, col := range snapshot.Columns {
		if len(col.Rows) != len(snapshot.Entities) {
			return eris.Errorf("column %s has %d rows for %d entities",
				col.Component, len(col.Rows), len(snapshot.Entities))
		}
		if err := arch.column(col.Component).decode(col.Rows); err != nil {
			return err
		}
	}

	arch.entities = make([]EntityID, len(snapshot.Entities))
	for row, id := range snapshot.Entities {
		eid := EntityID(id)
		if eid >= nextID {
			return eris.Errorf("entity ID %d is beyond the next ID %d", id, nextID)
		}
		if w.entities.isAlive(eid) {
			return eris.Errorf("entity %d appears more than once", id)
		}
		arch.entities[row] = eid
		arch.rows.set(eid, row)
		w.entities.entityArch[eid] = arch.id
	}
	return nil
}
