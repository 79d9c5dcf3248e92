// Package codec encodes and decodes component values. JSON is the exchange format shared with
// schema consumers; MessagePack is used for compact world snapshots.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"github.com/shamaton/msgpack/v3"
)

// DeserializationError is returned by every decode in this package. Type is the name of the value
// being decoded and Field the offending field, empty when the input is malformed as a whole.
type DeserializationError struct {
	Type  string
	Field string
	Err   error
}

func (e *DeserializationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("failed to deserialize %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("failed to deserialize %s: field %q: %v", e.Type, e.Field, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// ErrNull is wrapped by the *DeserializationError returned for a null input.
var ErrNull = eris.New("unexpected null")

// named matches types that carry their own stable name, such as components.
type named interface {
	Name() string
}

// Encode converts v to JSON.
func Encode(v any) ([]byte, error) {
	bz, err := json.Marshal(v)
	if err != nil {
		return nil, eris.Wrap(err, "failed to encode")
	}
	return bz, nil
}

// Decode converts JSON to a T. On failure the zero T is returned along with a
// *DeserializationError, so callers never observe a partially decoded value. A null literal is
// rejected since no value in this package encodes to null.
func Decode[T any](bz []byte) (T, error) {
	var zero T
	v := new(T)
	if err := DecodeValue(typeName[T](), bz, v); err != nil {
		return zero, err
	}
	return *v, nil
}

// DecodeValue decodes the JSON value bz into v, which must be a pointer. typ names the value being
// decoded in the returned error. Unlike json.Unmarshal, a null literal is an error rather than a
// no-op that leaves v untouched.
func DecodeValue(typ string, bz []byte, v any) error {
	if isNull(bz) {
		return &DeserializationError{Type: typ, Err: ErrNull}
	}
	if err := json.Unmarshal(bz, v); err != nil {
		return toDeserializationError(typ, err)
	}
	return nil
}

// Marshal converts v to MessagePack.
func Marshal(v any) ([]byte, error) {
	bz, err := msgpack.Marshal(v)
	if err != nil {
		return nil, eris.Wrap(err, "failed to marshal")
	}
	return bz, nil
}

// Unmarshal converts MessagePack into v, which must be a pointer.
func Unmarshal(bz []byte, v any) (err error) {
	// msgpack can panic on corrupted input instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			err = &DeserializationError{Type: reflect.TypeOf(v).String(), Err: eris.Errorf("panic: %v", r)}
		}
	}()

	if err := msgpack.Unmarshal(bz, v); err != nil {
		return &DeserializationError{Type: reflect.TypeOf(v).String(), Err: eris.Wrap(err, "")}
	}
	return nil
}

func isNull(bz []byte) bool {
	return bytes.Equal(bytes.TrimSpace(bz), []byte("null"))
}

func toDeserializationError(typ string, err error) *DeserializationError {
	var de *DeserializationError
	if errors.As(err, &de) {
		return de
	}

	field := ""
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field = typeErr.Field
	}
	return &DeserializationError{Type: typ, Field: field, Err: eris.Wrap(err, "")}
}

func typeName[T any]() string {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() == reflect.Pointer || typ.Kind() == reflect.Interface {
		return typ.String()
	}
	var zero T
	if n, ok := any(zero).(named); ok {
		return n.Name()
	}
	return typ.String()
}
