package schema

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"

	"github.com/vitruvian-labs/vitruvian/pkg/ecs"
)

// EntityName is the name of the aggregate entity record schema. Components can't use it.
const EntityName = "entity"

// FileExt is appended to a schema name to form its file name.
const FileExt = ".schema.json"

// Entry is one named schema.
type Entry struct {
	Name   string
	Schema json.RawMessage
}

// Registry holds component schemas in registration order.
type Registry struct {
	entries []Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make([]Entry, 0)}
}

// Register adds the schema of the component type T. Registering the same type again is a no-op;
// registering a different schema under a taken name is an error.
func Register[T ecs.Component](r *Registry) error {
	if _, err := ecs.ComponentType[T](); err != nil {
		return err
	}
	var zero T
	name := zero.Name()
	if name == "" {
		return eris.Errorf("component name of %T cannot be empty", zero)
	}
	if name == EntityName {
		return eris.Errorf("component name %q is reserved", name)
	}

	bz, err := Component[T]()
	if err != nil {
		return err
	}
	if existing, ok := r.Get(name); ok {
		if err := Compare(existing, bz); err != nil {
			return eris.Wrapf(err, "component %q is already registered with another schema", name)
		}
		return nil
	}

	r.entries = append(r.entries, Entry{Name: name, Schema: bz})
	return nil
}

// Names returns the registered component names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Schemas returns every registered schema in registration order.
func (r *Registry) Schemas() []Entry {
	return slices.Clone(r.entries)
}

// Get returns the schema registered under name.
func (r *Registry) Get(name string) ([]byte, bool) {
	for _, e := range r.entries {
		if e.Name == name {
			return e.Schema, true
		}
	}
	return nil, false
}

// Entity returns the schema of an entity record: its ID and an object holding at most one of each
// registered component keyed by name.
func (r *Registry) Entity() ([]byte, error) {
	properties := make(map[string]json.RawMessage, len(r.entries))
	for _, e := range r.entries {
		properties[e.Name] = e.Schema
	}

	s := map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"title":   EntityName,
		"type":    "object",
		"properties": map[string]any{
			"id": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": uint32(ecs.MaxEntityID),
			},
			"components": map[string]any{
				"type":                 "object",
				"properties":           properties,
				"additionalProperties": false,
			},
		},
		"required":             []string{"id", "components"},
		"additionalProperties": false,
	}

	bz, err := json.Marshal(s)
	if err != nil {
		return nil, eris.Wrap(err, "failed to marshal entity schema")
	}
	return bz, nil
}

// Export writes every component schema and the entity schema to dir, creating it if needed.
func (r *Registry) Export(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // schemas are meant to be shared
		return eris.Wrapf(err, "failed to create schema directory %s", dir)
	}

	entity, err := r.Entity()
	if err != nil {
		return err
	}
	for _, e := range append(r.Schemas(), Entry{Name: EntityName, Schema: entity}) {
		if err := writeSchema(dir, e); err != nil {
			return err
		}
	}
	return nil
}

func writeSchema(dir string, e Entry) error {
	var indented any
	if err := json.Unmarshal(e.Schema, &indented); err != nil {
		return eris.Wrapf(err, "invalid schema %s", e.Name)
	}
	bz, err := json.MarshalIndent(indented, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "failed to format schema %s", e.Name)
	}

	path := Path(dir, e.Name)
	if err := os.WriteFile(path, append(bz, '\n'), 0o644); err != nil { //nolint:gosec // see above
		return eris.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// Validate compares a stored schema against the registered schema of the same name.
func (r *Registry) Validate(name string, stored []byte) error {
	var current []byte
	if name == EntityName {
		entity, err := r.Entity()
		if err != nil {
			return err
		}
		current = entity
	} else {
		schema, ok := r.Get(name)
		if !ok {
			return eris.Errorf("no schema registered for %q", name)
		}
		current = schema
	}

	if err := Compare(current, stored); err != nil {
		return eris.Wrapf(err, "schema %s", name)
	}
	return nil
}

// Check validates the schema files in dir written by Export. Every registered component and the
// entity schema must have a file matching the current types.
func (r *Registry) Check(dir string) error {
	for _, name := range append(r.Names(), EntityName) {
		path := Path(dir, name)
		stored, err := os.ReadFile(path)
		if err != nil {
			return eris.Wrapf(err, "failed to read schema %s", name)
		}
		if err := r.Validate(name, stored); err != nil {
			return eris.Wrapf(err, "stale schema file %s", path)
		}
	}
	return nil
}

// Path returns the file path of the named schema in dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name+FileExt)
}
