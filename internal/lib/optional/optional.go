// Package optional implements a JSON field that remembers whether it was
// present in the document and whether it was explicitly null.
package optional

import (
	"bytes"
	"encoding/json"
)

type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked for keys present in the document, which is
// what lets an omitted key stay unset.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Ptr returns nil for null or unset fields.
func (f Field[T]) Ptr() *T {
	if !f.Set || f.Null {
		return nil
	}
	v := f.Value
	return &v
}
