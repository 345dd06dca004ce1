// Package ugcerrors defines how store failures are classified and surfaced.
//
// Every failure happens at a store round trip and falls into exactly one
// kind. Callers test the kind with errors.Is against the sentinels below;
// the wrapping *Error keeps the operation and collection for logging.
package ugcerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound: the target is absent on a read, or on an update that
	// does not upsert.
	ErrNotFound = errors.New("not found")

	// ErrConstraintViolation: an insert broke a uniqueness constraint
	// (one review per author and film).
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrPermissionDenied: an author-scoped delete matched no document.
	// An absent review and someone else's review look the same here.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidArgument: the command was rejected before reaching the
	// store (bad score, empty text, page out of range).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTransport: the store was unreachable, timed out or failed the
	// command for any other reason.
	ErrTransport = errors.New("store unavailable")
)

// Error carries the kind of failure plus where it happened.
type Error struct {
	Kind       error  // one of the sentinels above
	Op         string // insert, find, update, delete, aggregate, validate
	Collection string
	Err        error // underlying driver error, may be nil
}

func (e *Error) Error() string {
	where := e.Op
	if e.Collection != "" {
		where += " " + e.Collection
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", where, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", where, e.Kind)
}

// Is matches the error's kind, so errors.Is(err, ErrNotFound) works on a
// wrapped *Error.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Invalid wraps a validation failure so it surfaces as ErrInvalidArgument.
func Invalid(err error, op string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: ErrInvalidArgument, Op: op, Err: err}
}

// New builds a classified error without an underlying cause.
func New(kind error, op, collection string) error {
	return &Error{Kind: kind, Op: op, Collection: collection}
}

// Classify maps a driver error to one of the kinds. A nil error stays nil.
//
//   - mongo.ErrNoDocuments    -> ErrNotFound
//   - duplicate key (E11000)  -> ErrConstraintViolation
//   - anything else           -> ErrTransport
func Classify(err error, op, collection string) error {
	if err == nil {
		return nil
	}
	var already *Error
	if errors.As(err, &already) {
		return err
	}

	kind := ErrTransport
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		kind = ErrNotFound
	case wafflemongo.IsDup(err):
		kind = ErrConstraintViolation
	}
	return &Error{Kind: kind, Op: op, Collection: collection, Err: err}
}

// IsTimeout reports whether a transport failure came from a deadline or a
// driver timeout rather than a refused connection or command error.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err)
}

// HTTPStatus returns the status an HTTP layer should answer with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConstraintViolation), errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// Message returns a short user-facing message for err.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not found"
	case errors.Is(err, ErrConstraintViolation):
		return "only one review per film is allowed"
	case errors.Is(err, ErrPermissionDenied):
		return "changing another user's content is not allowed"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid request"
	default:
		return "request could not be completed"
	}
}
