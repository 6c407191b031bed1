package monad

import (
	"fmt"

	"github.com/CoreDX1/File-Explorer-2/internal/core/fault"
)

// Unit is the empty value for results that carry no payload.
type Unit struct{}

// Result is the uniform success-or-failure return channel for account
// operations. A Result is either Ok(value) or Fail(*fault.Error); there is
// no ambient default. Reading the wrong branch panics: expected failures
// are values, misuse of the container is a bug.
type Result[T any] struct {
	value T
	err   *fault.Error
	ok    bool
}

// Ok wraps a successful value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// OkUnit is the successful empty result.
func OkUnit() Result[Unit] {
	return Ok(Unit{})
}

// Fail wraps a categorized failure. A nil error is a programming error.
func Fail[T any](err *fault.Error) Result[T] {
	if err == nil {
		panic("monad: Fail called with nil error")
	}
	return Result[T]{err: err}
}

// IsSuccess reports whether the result holds a value.
func (r Result[T]) IsSuccess() bool {
	return r.ok
}

// IsFailure reports whether the result holds an error.
func (r Result[T]) IsFailure() bool {
	return !r.ok
}

// Value returns the success value and panics on a failure result.
func (r Result[T]) Value() T {
	if !r.ok {
		panic(fmt.Sprintf("monad: Value called on failure result: %v", r.err))
	}
	return r.value
}

// Err returns the failure and panics on a success result.
func (r Result[T]) Err() *fault.Error {
	if r.ok {
		panic("monad: Err called on success result")
	}
	return r.err
}

// Match dispatches on the branch, returning whichever function ran.
func Match[T, U any](r Result[T], onOk func(T) U, onErr func(*fault.Error) U) U {
	if r.ok {
		return onOk(r.value)
	}
	return onErr(r.err)
}

// MapResult transforms the success value, propagating failures unchanged.
func MapResult[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.ok {
		return Fail[U](r.err)
	}
	return Ok(fn(r.value))
}

// BindResult chains a result-producing function, propagating failures.
func BindResult[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if !r.ok {
		return Fail[U](r.err)
	}
	return fn(r.value)
}
