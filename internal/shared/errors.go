package shared

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated indicates the request carries no authenticated actor.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden indicates the actor may not act on the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrStructural indicates a request missing its structural parts, reported
	// as a single message rather than per-field errors.
	ErrStructural = errors.New("structural error")
	// ErrAlreadyExists indicates a uniqueness conflict.
	ErrAlreadyExists = errors.New("already exists")
)

// Structural wraps a request-level failure that is reported as a single
// message instead of a field-error mapping.
func Structural(msg string) error {
	return &structuralError{msg: msg}
}

type structuralError struct {
	msg string
}

func (e *structuralError) Error() string { return e.msg }

func (e *structuralError) Is(target error) bool { return target == ErrStructural }

// ValidationError carries one message per offending field. Nested group
// fields use dotted keys.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// UserSafeMessage converts internal errors into messages safe to show to
// end users. Unknown errors collapse to a generic message.
func UserSafeMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "The requested resource was not found."
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, ErrAlreadyExists):
		return "A record with these details already exists."
	case errors.Is(err, ErrForbidden):
		return "You do not have permission to perform this action."
	default:
		return "Something went wrong. Please try again."
	}
}
