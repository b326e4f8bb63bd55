// Package errorkit holds the error handling helpers used across jsonstream.
package errorkit

import "fmt"

// ErrFunc is a function that reports the error state of a related resource.
type ErrFunc = func() error

// Finish is a helper function that can be used from a deferred context.
//
// Usage:
//
//	defer errorkit.Finish(&returnError, chunk.Close)
func Finish(returnErr *error, blk func() error) {
	*returnErr = Merge(*returnErr, blk())
}

// Recover converts a panic into an error value.
// It must be called directly from a deferred statement.
//
//	defer errorkit.Recover(&returnErr)
func Recover(returnErr *error) {
	r := recover()
	if r == nil {
		return
	}
	switch r := r.(type) {
	case error:
		*returnErr = Merge(*returnErr, r)
	default:
		*returnErr = Merge(*returnErr, fmt.Errorf("%v", r))
	}
}
