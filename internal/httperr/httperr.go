package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError maps a booking-core error to its HTTP response. Unknown errors
// become a generic 500 so internals never reach the client.
func FromError(c *gin.Context, err error) {
	code, ok := BusinessCode(err)
	if !ok {
		Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch code {
	case CodeValidation:
		BadRequest(c, code, "Invalid request data.")
	case CodeNotFound:
		NotFound(c, code, "Resource not found.")
	case CodeForbidden:
		Forbidden(c, code, "Not allowed.")
	case CodeDuplicateCredential:
		BadRequest(c, code, "Email, username or phone number already in use.")
	case CodeInvalidCredentials:
		Unauthorized(c, code, "Invalid credentials.")
	case CodeServiceMismatch:
		BadRequest(c, code, "Service does not belong to this business.")
	case CodeInvalidTransition:
		BadRequest(c, code, "Appointment cannot change to that status.")
	case CodeTimeConflict:
		Conflict(c, code, "The requested slot is already booked.")
	default:
		Internal(c, "internal_error", "Something went wrong.")
	}
}
