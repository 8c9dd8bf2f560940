package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shelfio-backend/internal/shared/apperror"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, string(apperror.KindInvalidInput), message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, string(apperror.KindInternal), message)
}

// FromError maps a classified service error onto the wire. The status
// mapping is the transport layer's responsibility, kept in one place.
func FromError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case apperror.KindInvalidInput:
		status = http.StatusBadRequest
	case apperror.KindNotFound:
		status = http.StatusNotFound
	case apperror.KindAlreadyExists:
		status = http.StatusConflict
	case apperror.KindExternalService:
		status = http.StatusBadGateway
	}

	message := err.Error()
	if kind == apperror.KindInternal {
		message = "internal server error"
	}

	ErrorResponse(c, status, string(kind), message)
}
