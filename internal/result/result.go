package result

import (
	"errors"
	"fmt"
)

// Result holds exactly one of a success value or an error, never both.
// The zero value is a success holding the zero value of T. Results are
// immutable; every operation returns a new Result.
type Result[T any] struct {
	value T
	err   error
}

// Ok returns a successful Result holding value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err returns a failed Result holding err. A nil err is a contract
// violation by the caller and panics.
func Err[T any](err error) Result[T] {
	if err == nil {
		panic("result: Err called with nil error")
	}
	return Result[T]{err: err}
}

// IsOk reports whether r holds a success value.
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// IsErr reports whether r holds an error.
func (r Result[T]) IsErr() bool {
	return r.err != nil
}

// Get returns the success value and error in the conventional Go form.
// Exactly one of the two is meaningful.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// MustGet returns the success value. Calling it on a failed Result is a
// programmer error and panics.
func (r Result[T]) MustGet() T {
	if r.err != nil {
		panic(fmt.Sprintf("result: MustGet called on failed Result: %v", r.err))
	}
	return r.value
}

// OrElse returns the success value, or fallback if r failed.
func (r Result[T]) OrElse(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.value
}

// Recover turns a failure into a success by applying f to the error.
// A successful Result passes through unchanged.
func (r Result[T]) Recover(f func(error) T) Result[T] {
	if r.err == nil {
		return r
	}
	return Ok(f(r.err))
}

// RecoverWith turns a failure into the Result produced by f, which may
// itself fail. A successful Result passes through unchanged.
func (r Result[T]) RecoverWith(f func(error) Result[T]) Result[T] {
	if r.err == nil {
		return r
	}
	return f(r.err)
}

// Map applies f to the success value, passing a failure through unchanged.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.err != nil {
		return Err[U](r.err)
	}
	return Ok(f(r.value))
}

// Chain sequences a dependent operation that itself returns a Result,
// short-circuiting on failure.
func Chain[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Err[U](r.err)
	}
	return f(r.value)
}

// Combine merges two Results with f. A failure on either side propagates;
// if both fail the errors are joined.
func Combine[A, B, C any](a Result[A], b Result[B], f func(A, B) C) Result[C] {
	if a.err != nil || b.err != nil {
		return Err[C](errors.Join(a.err, b.err))
	}
	return Ok(f(a.value, b.value))
}

// Sequence turns a slice of Results into a single Result holding either
// every success value in order, or every error in order joined into one.
func Sequence[T any](rs []Result[T]) Result[[]T] {
	var errs []error
	values := make([]T, 0, len(rs))
	for _, r := range rs {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		values = append(values, r.value)
	}
	if len(errs) > 0 {
		return Err[[]T](errors.Join(errs...))
	}
	return Ok(values)
}
