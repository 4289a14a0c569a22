// Package errors provides error handling conventions for the loadcfg CLI.
//
// This package re-exports the wrapping helpers from cockroachdb/errors,
// defines sentinel errors for common failure conditions, and provides an
// ExitError type mapping errors to Unix exit codes.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [errors.Is]:
//
//	if errors.Is(err, cfgerrors.ErrNotFound) {
//	    // handle not found case
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, validation failure)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion for CLI applications:
//
//	err := cfgerrors.NewUserError(parseErr, "Check the file syntax")
//	var exitErr *cfgerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
