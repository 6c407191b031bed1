package monad

import "fmt"

// Maybe represents an optional value: either Some(value) or None.
// It models "absent" distinctly from "error" and is the return channel for
// store lookups that may legitimately find nothing.
type Maybe[T any] struct {
	value   T
	present bool
}

// Some wraps a present value.
func Some[T any](value T) Maybe[T] {
	return Maybe[T]{value: value, present: true}
}

// None returns the absent value.
func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// FromPtr lifts a possibly-nil pointer into a Maybe.
func FromPtr[T any](ptr *T) Maybe[T] {
	if ptr == nil {
		return None[T]()
	}
	return Some(*ptr)
}

// IsSome reports whether a value is present.
func (m Maybe[T]) IsSome() bool {
	return m.present
}

// IsNone reports whether the value is absent.
func (m Maybe[T]) IsNone() bool {
	return !m.present
}

// MustGet returns the wrapped value and panics on None. Calling it without
// checking IsSome first is a programming error, not an expected failure.
func (m Maybe[T]) MustGet() T {
	if !m.present {
		panic("monad: MustGet called on None")
	}
	return m.value
}

// GetOr returns the wrapped value or the provided fallback.
func (m Maybe[T]) GetOr(fallback T) T {
	if !m.present {
		return fallback
	}
	return m.value
}

// Ptr returns a pointer to a copy of the value, or nil for None.
func (m Maybe[T]) Ptr() *T {
	if !m.present {
		return nil
	}
	v := m.value
	return &v
}

// String renders Some(v) or None for diagnostics.
func (m Maybe[T]) String() string {
	if !m.present {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", m.value)
}

// MapMaybe transforms the value when present.
func MapMaybe[T, U any](m Maybe[T], fn func(T) U) Maybe[U] {
	if m.IsNone() {
		return None[U]()
	}
	return Some(fn(m.MustGet()))
}
