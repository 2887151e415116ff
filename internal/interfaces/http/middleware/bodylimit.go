package middleware

import (
	"net/http"

	"github.com/craftshop/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// BodyLimit caps request body size. Scan requests carry base64 label
// images and are the largest payloads this API accepts; anything past
// maxBytes is rejected with 413 before a handler reads it.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse("REQUEST_TOO_LARGE", "Request body exceeds maximum allowed size"))
			return
		}

		// ContentLength can lie (or be -1 for chunked uploads), so the
		// body itself is capped too.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
