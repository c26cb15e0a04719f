package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shipbatch/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects requests whose body exceeds maxBytes. Declared
// lengths are checked up front; chunked uploads are capped by a
// MaxBytesReader so handlers see a read error instead of an oversized
// payload.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			requestID, _ := c.Get("request_id")
			requestIDStr, _ := requestID.(string)
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithDetails(
				dto.ErrCodeRequestTooLarge,
				"Request body exceeds maximum allowed size",
				nil,
				requestIDStr,
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
