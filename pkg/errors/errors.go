// Package errors provides the structured error type used across the
// results SDK for programmer misuse and infrastructure failures.
//
// Domain failures (a query that found nothing, a rejected request) are
// never reported through this package: they are carried inside a
// result envelope. This package covers the other two kinds of failure:
//
//   - Misuse: invalid arguments to envelope operations, such as a blank
//     metadata key, a nil envelope or a metadata type mismatch.
//   - Infrastructure: database, configuration and timeout failures raised
//     by the producers that build envelopes (pkg/query, pkg/config).
//
// # Error Codes
//
// Each error carries a machine-readable code of the form CATEGORY_XXX
// (e.g. "ARG_001"). The category prefix drives [Error.HTTPStatus] and the
// Is* check functions.
//
// # Usage
//
//	if err := r.AddMetadata("", 1); errors.IsInvalidArgument(err) {
//	    // programmer error: blank key
//	}
//
//	v, err := result.GetMetadata[int](r, "rowCount")
//	if errors.IsNotFound(err) {
//	    // key was never written
//	}
package errors
