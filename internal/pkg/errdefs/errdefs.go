package errdefs

import "errors"

var (
	// ErrNotFound covers both true absence and owner mismatch; the two are
	// intentionally indistinguishable to callers.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is reported before any external call is made.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrGenerationFailed means the model backend could not produce a result
	// (transport error, timeout, backend-side error).
	ErrGenerationFailed = errors.New("generation failed")
	// ErrMalformedOutput means the model responded but its text did not satisfy
	// the required structural contract.
	ErrMalformedOutput = errors.New("malformed model output")
	// ErrStoreFailed means the document store could not complete a create/append.
	ErrStoreFailed = errors.New("store operation failed")
)
