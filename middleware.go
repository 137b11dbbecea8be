package main

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept-Encoding")

		// Handle preflight
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// brotliWriter sends everything the handler writes through a brotli encoder.
type brotliWriter struct {
	gin.ResponseWriter
	encoder *brotli.Writer
}

func (w *brotliWriter) Write(data []byte) (int, error) {
	return w.encoder.Write(data)
}

func (w *brotliWriter) WriteString(s string) (int, error) {
	return w.encoder.Write([]byte(s))
}

// brotliMiddleware compresses responses for clients that accept "br".
func brotliMiddleware(level int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !acceptsBrotli(c.GetHeader("Accept-Encoding")) {
			c.Next()
			return
		}

		encoder := brotli.NewWriterLevel(c.Writer, level)
		c.Header("Content-Encoding", "br")
		c.Header("Vary", "Accept-Encoding")
		c.Writer = &brotliWriter{ResponseWriter: c.Writer, encoder: encoder}
		defer encoder.Close()

		c.Next()
	}
}

func acceptsBrotli(header string) bool {
	for _, part := range strings.Split(header, ",") {
		name, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		if strings.EqualFold(name, "br") {
			return true
		}
	}
	return false
}
