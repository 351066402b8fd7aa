package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodySize returns middleware that limits the request body size.
// Once the limit is exceeded the reader returns an error and the
// request is rejected with 413 Payload Too Large.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return MaxBodySizeFor(maxBytes, nil)
}

// MaxBodySizeFor applies a larger limit to routes that carry camera frames
// and the default limit everywhere else.
func MaxBodySizeFor(defaultBytes int64, large map[string]int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultBytes
		if n, ok := large[c.FullPath()]; ok {
			limit = n
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
