// internal/api/response/response.go
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/newthinker/quanthub/internal/core"
)

// Meta contains response metadata.
type Meta struct {
	Timestamp time.Time `json:"timestamp"`
	Count     *int      `json:"count,omitempty"`
}

// SuccessResponse is the standard success response format.
type SuccessResponse struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// JSON writes a success response with data.
func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, SuccessResponse{
		Data: data,
		Meta: Meta{Timestamp: time.Now().UTC()},
	})
}

// List writes a success response for a collection and records its size.
func List[T any](w http.ResponseWriter, items []T) {
	n := len(items)
	if items == nil {
		items = []T{}
	}
	write(w, http.StatusOK, SuccessResponse{
		Data: items,
		Meta: Meta{Timestamp: time.Now().UTC(), Count: &n},
	})
}

// Error writes an error response.
func Error(w http.ResponseWriter, status int, err error) {
	write(w, status, ErrorResponse{Error: Detail(err)})
}

// FromError writes an error response with the status matching its code.
func FromError(w http.ResponseWriter, err error) {
	Error(w, StatusFor(err), err)
}

// Detail extracts the code, message and cause of err.
func Detail(err error) ErrorDetail {
	detail := ErrorDetail{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
	}

	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		detail.Code = coreErr.Code
		detail.Message = coreErr.Message
		if coreErr.Cause != nil {
			detail.Cause = coreErr.Cause.Error()
		}
	}
	return detail
}

// StatusFor maps a structured error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrNotFound),
		errors.Is(err, core.ErrStrategyNotFound),
		errors.Is(err, core.ErrInvalidIdentifier):
		return http.StatusNotFound
	case errors.Is(err, core.ErrNotImplemented):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
