package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/vivahlink/console/internal/types"
)

// RequestIDMiddleware attaches a request id to the context, honoring one
// supplied by the caller so ids correlate across the console and backend.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(types.HeaderRequestID)
		if requestID == "" {
			requestID = ulid.Make().String()
		}

		ctx := types.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(types.HeaderRequestID, requestID)

		c.Next()
	}
}
