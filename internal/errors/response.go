package errors

import (
	"github.com/cockroachdb/errors"
)

// ErrorDetail is the wire shape of a single error inside ErrorResponse.
type ErrorDetail struct {
	Message      string                 `json:"message"`
	InternalCode string                 `json:"internal_code,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse is the JSON body every failed console request renders.
// The message prefers the hint (user-facing) over the raw cause.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// NewErrorResponse converts any error into the response shape. Unclassified
// errors collapse to a generic message so internals never leak.
func NewErrorResponse(err error) *ErrorResponse {
	resp := &ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Message:      "An unexpected error occurred",
			InternalCode: codeFromErr(err),
		},
	}

	var ie *InternalError
	if errors.As(err, &ie) {
		if ie.Hint() != "" {
			resp.Error.Message = ie.Hint()
		} else {
			resp.Error.Message = ie.Error()
		}
		resp.Error.Details = ie.ReportableDetails()
	} else if IsValidation(err) || IsNotFound(err) {
		resp.Error.Message = err.Error()
	}

	return resp
}

func codeFromErr(err error) string {
	switch {
	case IsValidation(err):
		return "validation_error"
	case IsNotFound(err):
		return "not_found"
	case IsAlreadyExists(err):
		return "already_exists"
	case IsPermissionDenied(err):
		return "permission_denied"
	case IsInvalidOperation(err):
		return "invalid_operation"
	case IsNetwork(err):
		return "network_error"
	case IsServer(err):
		return "server_error"
	default:
		return "internal_error"
	}
}
