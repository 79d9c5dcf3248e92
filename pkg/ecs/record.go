package ecs

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"

	"github.com/vitruvian-labs/vitruvian/pkg/codec"
)

// Record is the exchange form of an entity: its ID and the JSON form of each of its components
// keyed by component name.
type Record struct {
	ID         EntityID                   `json:"id"`
	Components map[string]json.RawMessage `json:"components"`
}

// ToRecord returns the record of an entity.
func ToRecord(w *World, eid EntityID) (Record, error) {
	components, err := Components(w, eid)
	if err != nil {
		return Record{}, err
	}

	rec := Record{ID: eid, Components: make(map[string]json.RawMessage, len(components))}
	for _, c := range components {
		bz, err := codec.Encode(c)
		if err != nil {
			return Record{}, eris.Wrapf(err, "failed to encode component %s of entity %d", c.Name(), eid)
		}
		rec.Components[c.Name()] = bz
	}
	return rec, nil
}

// Records returns the records of every entity, ordered as Search orders its results.
func Records(w *World) ([]Record, error) {
	records := make([]Record, 0, w.Len())
	for _, arch := range w.archetypes {
		for _, eid := range arch.entities {
			rec, err := ToRecord(w, eid)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// FromRecord creates a new entity from a record. The record's ID is ignored and the new ID is
// returned. Every component name must be registered; nothing is created if any component fails to
// decode.
func FromRecord(w *World, rec Record) (EntityID, error) {
	components := make([]Component, 0, len(rec.Components))
	for name, raw := range rec.Components {
		c, err := w.components.decode(name, raw)
		if err != nil {
			return 0, eris.Wrapf(err, "failed to decode component %s", name)
		}
		components = append(components, c)
	}
	return Create(w, components...)
}
