package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fixpoint/fixpoint/internal/server/http/dto"
)

// DecompressRequest unwraps gzip-encoded request bodies so handlers always
// bind plain JSON.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			c.Next()
			return
		}

		body := c.Request.Body
		zr, err := gzip.NewReader(body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed gzip body"})
			return
		}
		defer zr.Close()
		defer body.Close()

		c.Request.Body = io.NopCloser(zr)
		c.Request.Header.Del("Content-Encoding")
		// Length of the decompressed stream is unknown.
		c.Request.ContentLength = -1
		c.Next()
	}
}
