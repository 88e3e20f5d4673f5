// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to touch a document owned by someone else, while
// ErrConflict signals that an operation cannot proceed due to the
// current state of a row (e.g. revoking an already revoked share).
package repository

import "errors"

// ErrDocumentNotFound indicates that a document was not located in the DB.
var ErrDocumentNotFound = errors.New("document not found")

// ErrShareNotFound indicates that no active share grant exists for a code.
var ErrShareNotFound = errors.New("share not found")

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because
// of conflicting state. Handlers should translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrNoChange indicates an UPDATE attempted to set fields equal to current values.
var ErrNoChange = errors.New("no change")
