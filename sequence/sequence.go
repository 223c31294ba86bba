package sequence

import (
	"fmt"
	"iter"
)

const defaultExpecting = "a nonempty sequence"

// Iterator yields the elements of a top-level JSON array in input order.
// It is single-pass: once Next returns false it never returns true again.
type Iterator[T any] struct {
	parser    Parser
	expecting string

	opened bool
	done   bool
	count  int
	value  T
	err    error
}

type iteratorOption struct {
	expecting string
}

// Option configures an Iterator
type Option func(*iteratorOption)

// WithExpecting sets the description of the expected input used in TypeMismatchError.
// Empty descriptions are ignored.
func WithExpecting(expecting string) Option {
	return func(o *iteratorOption) {
		if expecting != "" {
			o.expecting = expecting
		}
	}
}

// New creates an Iterator pulling elements of type T from p.
// Nothing is read from p until the first call to Next.
func New[T any](p Parser, options ...Option) *Iterator[T] {
	o := &iteratorOption{
		expecting: defaultExpecting,
	}
	for _, option := range options {
		option(o)
	}

	return &Iterator[T]{
		parser:    p,
		expecting: o.expecting,
	}
}

// Next advances the iterator by exactly one element.
// It returns false at the end of the array or on the first error; Err tells the two apart.
func (it *Iterator[T]) Next() bool {
	if it.done {
		return false
	}

	if !it.opened {
		it.opened = true
		kind, err := it.parser.Open()
		if err != nil {
			return it.fail(fmt.Errorf("read top-level value: %w", err))
		}
		if kind != KindArray {
			return it.fail(&TypeMismatchError{Found: kind, Expected: it.expecting})
		}
	}

	more, err := it.parser.More()
	if err != nil {
		return it.fail(&DecodeError{Index: it.count, Err: err})
	}
	if !more {
		it.done = true
		var zero T
		it.value = zero
		if err := it.parser.Close(); err != nil {
			it.err = fmt.Errorf("close top-level array: %w", err)
		}
		return false
	}

	// a fresh value per element so fields absent from this element stay unset
	var v T
	if err := it.parser.Decode(&v); err != nil {
		return it.fail(&DecodeError{Index: it.count, Err: err})
	}
	it.value = v
	it.count++

	return true
}

func (it *Iterator[T]) fail(err error) bool {
	it.done = true
	it.err = err
	var zero T
	it.value = zero
	return false
}

// Value returns the element decoded by the last successful call to Next
func (it *Iterator[T]) Value() T {
	return it.value
}

// Err returns the error that stopped the iteration, or nil when the array was fully consumed
func (it *Iterator[T]) Err() error {
	return it.err
}

// Count returns the number of elements decoded so far
func (it *Iterator[T]) Count() int {
	return it.count
}

// All returns the remaining elements with their zero-based index.
// Iteration stops at the end of the array, on the first error, or when the loop breaks.
func (it *Iterator[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for it.Next() {
			if !yield(it.count-1, it.value) {
				return
			}
		}
	}
}

// ForEach calls f once for each element of the top-level array in p, in order.
// The next element is not decoded until f returns. It returns the number of elements
// handled successfully and the first decode, structural or handler error.
func ForEach[T any](p Parser, f func(T) error, options ...Option) (int, error) {
	it := New[T](p, options...)
	handled := 0
	for i, v := range it.All() {
		if err := f(v); err != nil {
			return handled, &HandlerError{Index: i, Err: err}
		}
		handled++
	}
	if err := it.Err(); err != nil {
		return handled, err
	}

	return handled, nil
}
