package domain

import "errors"

// Sentinel errors for transport-level classification. The API client wraps
// these so services can classify failures without inspecting status codes.
//
//	return fmt.Errorf("%w: %s", domain.ErrNotFound, detail)
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates the API rejected the request's credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the API throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrConflict indicates a state or uniqueness conflict, such as a
	// duplicate name.
	ErrConflict = errors.New("conflict")

	// ErrInvalid indicates input that was rejected before or by the API,
	// including enum values outside their closed set.
	ErrInvalid = errors.New("invalid input")
)

// Operation kinds. Every failed service call is reported as an *OpError
// carrying exactly one of these.
var (
	// ErrLoad indicates listing or fetching failed.
	ErrLoad = errors.New("load failed")

	// ErrSave indicates a create or update was rejected.
	ErrSave = errors.New("save failed")

	// ErrDelete indicates a delete was rejected, including deletes of
	// records that no longer exist.
	ErrDelete = errors.New("delete failed")
)

// OpError is the single user-facing failure of one service call.
//
// Error returns only the display message. The kind and the underlying cause
// remain reachable through errors.Is and errors.As.
type OpError struct {
	// Kind is one of ErrLoad, ErrNotFound, ErrSave or ErrDelete.
	Kind error

	// Message is the human-readable text shown to the user.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *OpError) Error() string { return e.Message }

func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewOpError builds an *OpError of the given kind.
func NewOpError(kind error, message string, cause error) *OpError {
	return &OpError{Kind: kind, Message: message, Err: cause}
}

// Message returns the text to display for err. For an *OpError this is the
// user-facing message; for anything else it is err.Error(). A nil error
// yields the empty string.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Message
	}
	return err.Error()
}
