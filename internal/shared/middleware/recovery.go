package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"shelfio-backend/internal/shared/apperror"
	"shelfio-backend/internal/shared/response"
	"shelfio-backend/pkg/logger"
)

// Recovery converts a handler panic into the standard error envelope
// so a crash looks like any other internal error on the wire.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", fmt.Errorf("%v", r))

				response.ErrorResponse(c, http.StatusInternalServerError,
					string(apperror.KindInternal), "internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
