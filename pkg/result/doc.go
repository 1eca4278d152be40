// Package result implements the operation-result envelope returned by
// internal operations in place of a Go error.
//
// An envelope records whether the operation succeeded, an HTTP-style
// [StatusCode], a human-readable message, an ordered list of
// [ResultError] entries, the error that was caught upstream (if any), a
// free-form [Metadata] map and the Found / CanContinue flags. Consumers
// inspect the envelope instead of branching on a returned error.
//
// Three envelope shapes are provided:
//
//   - [Result]: the base envelope without payload.
//   - [Of]: a Result carrying a typed payload in Data.
//   - [Grid]: an Of over a slice of rows with row-count, total and
//     paging counters kept in sync with Metadata.
//
// Envelopes are built with [New], [NewOf] and [NewGrid] (or the helpers in
// package factory) and mutated through chaining methods:
//
//	r := result.NewOf[User]().SuccessfulData(u).WithMessage("loaded")
//
//	g := result.NewGrid[Order]().
//	    WithItems(rows).
//	    WithTotal(result.Ptr(250)).
//	    WithPaging(result.Ptr(2), result.Ptr(50))
//
// At an API boundary an envelope is projected to [Public] / [PublicOf],
// which drops the status code, the caught error and metadata.
//
// Metadata is written with AddMetadata and read back through the generic
// [GetMetadata], which converts the stored value to the requested type:
//
//	if err := r.AddMetadata("source", "cache"); err != nil {
//		return err
//	}
//	src, err := result.GetMetadata[string](r, "source")
//
// # Misuse
//
// Chaining methods called on a nil envelope panic with an
// errors.CodeNilArgument error. Of and Grid redeclare the mutators they
// inherit so the guard applies to a nil *Of or *Grid as well. AddMetadata and GetMetadata return
// errors for blank keys, missing keys and failed conversions.
//
// # Concurrency
//
// Envelopes are not safe for concurrent mutation. Treat an envelope as
// read-only once it has been returned to another goroutine.
package result
