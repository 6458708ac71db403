package entity

import (
	"bytes"
	"encoding/json"
)

// Field is a tri-state value for sparse updates:
//
//	absent key  -> Present=false            (do not touch)
//	null        -> Present=true, Null=true  (clear the field)
//	value       -> Present=true, Null=false (set to Value)
//
// A bare pointer cannot tell "not provided" apart from "provided as null",
// which is exactly the distinction partial updates need.
type Field[T any] struct {
	Present bool
	Null    bool
	Value   T
}

// Set returns a Field carrying v.
func Set[T any](v T) Field[T] {
	return Field[T]{Present: true, Value: v}
}

// SetNull returns a Field that clears its target.
func SetNull[T any]() Field[T] {
	return Field[T]{Present: true, Null: true}
}

// Unset returns an absent Field.
func Unset[T any]() Field[T] {
	return Field[T]{}
}

// Ptr returns the value as a nullable pointer: nil when the field is null,
// the value otherwise. Only meaningful when Present.
func (f Field[T]) Ptr() *T {
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}

var jsonNull = []byte("null")

// UnmarshalJSON is only invoked for keys present in the payload, so Present
// is always true here; absent keys leave the zero Field untouched.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Present = true
	if bytes.Equal(data, jsonNull) {
		f.Null = true
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Present || f.Null {
		return jsonNull, nil
	}
	return json.Marshal(f.Value)
}
