package domain

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state JSON field used by partial-update requests. It
// distinguishes a field that was omitted from the payload (Set=false) from a
// field explicitly set to null (Set=true, Valid=false) and from a field set
// to a value (Set=true, Valid=true). Nullable columns such as a time entry's
// end_time depend on this distinction: an omitted field is left untouched,
// an explicit null clears it.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Some returns an Optional holding a value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON is only invoked for keys present in the payload, so Set is
// always true afterwards.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON renders explicit nulls as null and unset fields as null too;
// request types tag Optional fields with omitempty semantics handled by the
// caller, so marshalling is only used in tests.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns a pointer to the value, or nil when the field is unset or null.
func (o Optional[T]) Ptr() *T {
	if !o.Set || !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
