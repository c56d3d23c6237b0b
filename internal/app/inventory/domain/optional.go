package domain

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Optional holds a patch value that is either absent or explicitly set.
// A JSON null decodes to a set zero value, which clears the field.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and whether it was set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// UnmarshalJSON marks the field as set; encoding/json only calls it for present keys.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.value = zero
		return nil
	}
	return json.Unmarshal(data, &o.value)
}

// MarshalJSON encodes an absent value as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func mergeField[T comparable](ct *ChangeTracker, field string, dst *T, opt Optional[T]) {
	mergeFunc(ct, field, dst, opt, func(a, b T) bool { return a == b })
}

func mergeFunc[T any](ct *ChangeTracker, field string, dst *T, opt Optional[T], equal func(a, b T) bool) {
	v, ok := opt.Get()
	if !ok {
		return
	}
	if !equal(*dst, v) {
		ct.MarkDirty(field)
	}
	*dst = v
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalDecimal(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
