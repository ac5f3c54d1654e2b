package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse returns a v2 error JSON response
func ErrorResponse(c *gin.Context, status int, message string, err error) {
	V2ErrorResponse(c, status, message, err)
}

// WorkflowErrorResponse maps a workflow failure onto an HTTP response.
// Unauthorized is 401 when no actor was resolved and 403 otherwise.
func WorkflowErrorResponse(c *gin.Context, err error) {
	we := AsWorkflowError(err)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(we, ErrUnauthorized):
		status = http.StatusForbidden
		if _, ok := c.Get("actor"); !ok {
			status = http.StatusUnauthorized
		}
	case errors.Is(we, ErrValidationFailed):
		status = http.StatusUnprocessableEntity
	case errors.Is(we, ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(we, ErrNotFound):
		status = http.StatusNotFound
	}

	v2Err := &V2Error{Code: we.Code(), Message: we.Message}
	switch {
	case len(we.Violations) > 0:
		v2Err.Details = we.Violations
	case we.CurrentStatus != "":
		v2Err.Details = gin.H{
			"current_status":    we.CurrentStatus,
			"required_statuses": we.RequiredStatuses,
		}
	}
	c.JSON(status, V2Response{Success: false, Error: v2Err})
}

// getErrorCode generates error code from HTTP status
func getErrorCode(status int) string {
	switch status {
	case 400:
		return "BAD_REQUEST"
	case 401:
		return "UNAUTHORIZED"
	case 403:
		return "FORBIDDEN"
	case 404:
		return "NOT_FOUND"
	case 409:
		return "CONFLICT"
	case 422:
		return "VALIDATION_FAILED"
	case 429:
		return "RATE_LIMITED"
	case 503:
		return "SERVICE_UNAVAILABLE"
	case 500:
		return "INTERNAL_SERVER_ERROR"
	default:
		return "ERROR"
	}
}
