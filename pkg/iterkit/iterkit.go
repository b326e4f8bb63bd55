// Package iterkit provides the lazy sequence plumbing used by the encoders.
//
// An iterator decouples the origin of the data from the consumer who uses that data.
// Its length is not known until it is fully iterated, thus can range from zero to infinity.
// As a rule of thumb, if the consumer is not the final destination of the data stream,
// it should use the pipeline pattern to avoid bottlenecks with local resources such as memory.
package iterkit

import (
	"iter"
	"slices"

	"go.llib.dev/jsonstream/pkg/errorkit"
)

// ErrSeq is an iterator that can tell if a currently returned value has an issue or not.
type ErrSeq[T any] = iter.Seq2[T, error]

func Slice[T any](slice []T) iter.Seq[T] {
	return slices.Values(slice)
}

// ToErrSeq will turn a iter.Seq[T] into an iter.Seq2[T, error] iterator,
// and use the error functions to yield potential issues at the end of the iteration.
func ToErrSeq[T any](i iter.Seq[T], errFuncs ...errorkit.ErrFunc) ErrSeq[T] {
	return func(yield func(T, error) bool) {
		for v := range i {
			if !yield(v, nil) {
				return
			}
		}
		var errs []error
		for _, fn := range errFuncs {
			errs = append(errs, fn())
		}
		if err := errorkit.Merge(errs...); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// Error returns an ErrSeq that only yields the given error.
func Error[T any](err error) ErrSeq[T] {
	return func(yield func(T, error) bool) {
		var zero T
		yield(zero, err)
	}
}

// Empty returns an ErrSeq that yields nothing.
func Empty[T any]() ErrSeq[T] {
	return func(yield func(T, error) bool) {}
}

// AsAny converts a typed ErrSeq into an ErrSeq[any] without buffering.
func AsAny[T any](i ErrSeq[T]) ErrSeq[any] {
	if i == nil {
		return nil
	}
	return func(yield func(any, error) bool) {
		for v, err := range i {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

func Collect[T any](i iter.Seq[T]) []T {
	if i == nil {
		return nil
	}
	var vs = make([]T, 0)
	for v := range i {
		vs = append(vs, v)
	}
	return vs
}

// CollectErr collects the values of an ErrSeq, and merges every yielded error.
func CollectErr[T any](i ErrSeq[T]) ([]T, error) {
	if i == nil {
		return nil, nil
	}
	var (
		vs   []T
		errs []error
	)
	for v, err := range i {
		if err == nil {
			vs = append(vs, v)
		} else {
			errs = append(errs, err)
		}
	}
	return vs, errorkit.Merge(errs...)
}
