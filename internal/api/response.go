package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/naologic/reflow/internal/validation"
)

// APIResponse is the standard response format for all endpoints.
type APIResponse struct {
	Data       interface{}    `json:"data,omitempty"`
	Validation *validation.Result `json:"validation,omitempty"`
	Error      *ErrorResponse `json:"error,omitempty"`
	Meta       ResponseMeta   `json:"meta"`
}

// ErrorResponse contains error details.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ResponseMeta contains response metadata.
type ResponseMeta struct {
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
}

func newMeta() ResponseMeta {
	return ResponseMeta{Timestamp: time.Now().UTC(), Version: "1.0"}
}

// SuccessResponse writes a successful APIResponse with the given status.
func SuccessResponse(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, &APIResponse{Data: data, Meta: newMeta()})
}

// ErrorResponse writes an error APIResponse with the given status and a
// generic code derived from it.
func ErrorResponse(c echo.Context, status int, message string) error {
	return c.JSON(status, &APIResponse{
		Error: &ErrorResponse{Code: http.StatusText(status), Message: message},
		Meta:  newMeta(),
	})
}

// ValidationErrorResponse writes the constraint checker's diagnostics (§4.2
// of the reflow core) as an HTTP 422 response, using the same
// severity/code/text/context message shape the rest of the service renders
// validation results with.
func ValidationErrorResponse(c echo.Context, messages []string) error {
	result := validation.NewResult()
	for _, m := range messages {
		result.AddError(CodeInfeasible, m)
	}
	return c.JSON(http.StatusUnprocessableEntity, &APIResponse{Validation: result, Meta: newMeta()})
}

// CodeInfeasible is the validation code attached to reflow diagnostics
// surfaced through the API.
const CodeInfeasible = "REFLOW_INFEASIBLE"
