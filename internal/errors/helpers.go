package errors

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

func IsServer(err error) bool {
	return errors.Is(err, ErrServer)
}

// IsRetryable reports whether a failure is transient enough that re-issuing
// the same request may succeed. Validation, auth and not-found failures are
// terminal.
func IsRetryable(err error) bool {
	return IsNetwork(err) || IsServer(err)
}

// HTTPStatusFromErr maps a classified error to the status the console
// surface responds with.
func HTTPStatusFromErr(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsPermissionDenied(err):
		return http.StatusUnauthorized
	case IsNotFound(err):
		return http.StatusNotFound
	case IsAlreadyExists(err), IsInvalidOperation(err):
		return http.StatusConflict
	case IsNetwork(err), IsServer(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
