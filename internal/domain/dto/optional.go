package dto

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes an absent JSON field from an explicit null.
// Set is true whenever the key was present in the document; Value is nil
// for an explicit null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON records presence and decodes the value. encoding/json calls
// it for null literals too, which is what makes explicit nulls visible.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// IsNull reports whether the field was present with a null value.
func (o Optional[T]) IsNull() bool {
	return o.Set && o.Value == nil
}

// Some builds a present, non-null Optional. Used mostly by tests and form
// handlers that construct updates without JSON.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}
