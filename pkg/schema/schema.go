// Package schema describes components with JSON Schema so external tools can read entity records,
// and checks that stored schemas still match the Go types.
package schema

import (
	"reflect"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
	"github.com/wI2L/jsondiff"

	"github.com/vitruvian-labs/vitruvian/pkg/ecs"
)

// ErrSchemaMismatch is returned when a stored schema differs from the one generated from the
// current Go type.
var ErrSchemaMismatch = eris.New("component schema mismatch")

// Reflect generates the JSON Schema of v's type. Nested types are expanded in place so each schema
// is self-contained and can be embedded in the entity schema.
func Reflect(v any) *jsonschema.Schema {
	return reflectType(reflect.TypeOf(v))
}

func reflectType(t reflect.Type) *jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:      true, // Don't add $id based on package path
		DoNotReference: true, // Inline nested types instead of using $ref
	}
	s := r.ReflectFromType(t)
	s.Definitions = nil
	return s
}

// Component returns the JSON Schema of the component type T, titled with the component name.
func Component[T ecs.Component]() ([]byte, error) {
	typ, err := ecs.ComponentType[T]()
	if err != nil {
		return nil, err
	}
	var zero T
	s := reflectType(typ)
	s.Title = zero.Name()

	bz, err := json.Marshal(s)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to marshal schema of %s", zero.Name())
	}
	return bz, nil
}

// Compare returns nil if two schemas are equivalent and an ErrSchemaMismatch describing the
// difference otherwise.
func Compare(current, stored []byte) error {
	diff, err := jsondiff.CompareJSON(current, stored)
	if err != nil {
		return eris.Wrap(err, "failed to compare schemas")
	}
	if len(diff) > 0 {
		return eris.Wrap(ErrSchemaMismatch, diff.String())
	}
	return nil
}
