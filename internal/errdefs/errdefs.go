// Package errdefs defines the error classes shared by the motionclip packages.
//
// Callers wrap one of the sentinels with fmt.Errorf("%w: ...") and test for
// the class with errors.Is.
package errdefs

import "errors"

var (
	// ErrAuthoring reports a malformed timeline or animation description.
	ErrAuthoring = errors.New("authoring error")

	// ErrInternalConsistency reports a broken dispatch invariant, e.g. an
	// instance pushed to the backend of another effect kind. The job must be
	// aborted.
	ErrInternalConsistency = errors.New("internal consistency error")

	// ErrResource reports a failure of a renderer, exporter or other external
	// collaborator. It is fatal for the current job and never retried.
	ErrResource = errors.New("resource error")
)
