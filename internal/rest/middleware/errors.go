package middleware

import (
	"github.com/gin-gonic/gin"

	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/logger"
)

// ErrorHandler converts errors collected on the gin context into a JSON
// error response. Handlers call c.Error and return; this writes the body.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := ierr.HTTPStatusFromErr(err)
		if status >= 500 {
			log.WithContext(c.Request.Context()).Errorw("request failed", "error", err)
		}

		c.JSON(status, ierr.NewErrorResponse(err))
	}
}
