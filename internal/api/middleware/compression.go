package middleware

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"kumpisahko/internal/models"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// Skip compression for these content types
var excludedContentTypes = []string{
	"image/",
	"video/",
	"audio/",
}

// CompressionConfig holds configuration for the compression middleware
type CompressionConfig struct {
	// MinLength is the smallest response body that gets compressed
	MinLength int
	// Level is the gzip compression level
	Level int
}

// DefaultCompressionConfig returns the default compression configuration
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinLength: 1024,
		Level:     gzip.DefaultCompression,
	}
}

// shouldCompress checks if the response should be compressed based on content type
func shouldCompress(contentType string) bool {
	for _, excluded := range excludedContentTypes {
		if strings.HasPrefix(contentType, excluded) {
			return false
		}
	}
	return true
}

// Compression inflates gzip request bodies and gzips responses for clients that accept it.
// Responses that already carry a Content-Encoding are passed through untouched.
func Compression(cfg CompressionConfig) gin.HandlerFunc {
	writers := sync.Pool{
		New: func() interface{} {
			gz, err := gzip.NewWriterLevel(io.Discard, cfg.Level)
			if err != nil {
				gz = gzip.NewWriter(io.Discard)
			}
			return gz
		},
	}

	return func(c *gin.Context) {
		if c.Request.Header.Get("Content-Encoding") == "gzip" {
			reader, err := gzip.NewReader(c.Request.Body)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid gzip request body"})
				return
			}
			c.Request.Body = &gzipRequestBody{Reader: reader, source: c.Request.Body}
			c.Request.Header.Del("Content-Encoding")
			c.Request.ContentLength = -1
		}

		if !strings.Contains(c.Request.Header.Get("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		gzipWriter := &gzipResponseWriter{
			ResponseWriter: c.Writer,
			minLength:      cfg.MinLength,
			pool:           &writers,
		}
		c.Writer = gzipWriter
		c.Header("Vary", "Accept-Encoding")

		c.Next()

		if err := gzipWriter.finish(); err != nil {
			_ = c.Error(err)
		}
	}
}

type gzipRequestBody struct {
	*gzip.Reader
	source io.ReadCloser
}

func (b *gzipRequestBody) Close() error {
	b.Reader.Close()
	return b.source.Close()
}

// gzipResponseWriter buffers the response so the compression decision can see its size
type gzipResponseWriter struct {
	gin.ResponseWriter
	buf       bytes.Buffer
	minLength int
	pool      *sync.Pool
}

func (g *gzipResponseWriter) Write(data []byte) (int, error) {
	return g.buf.Write(data)
}

func (g *gzipResponseWriter) WriteString(s string) (int, error) {
	return g.buf.WriteString(s)
}

func (g *gzipResponseWriter) finish() error {
	header := g.Header()
	content := g.buf.Bytes()

	if header.Get("Content-Encoding") != "" ||
		!shouldCompress(header.Get("Content-Type")) ||
		len(content) < g.minLength {
		if len(content) == 0 {
			g.ResponseWriter.WriteHeaderNow()
			return nil
		}
		_, err := g.ResponseWriter.Write(content)
		return err
	}

	header.Set("Content-Encoding", "gzip")
	header.Del("Content-Length")

	gz := g.pool.Get().(*gzip.Writer)
	defer g.pool.Put(gz)
	gz.Reset(g.ResponseWriter)

	if _, err := gz.Write(content); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}

// Flush is a no-op until the handler returns; the body is written by finish
func (g *gzipResponseWriter) Flush() {}

func (g *gzipResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return g.ResponseWriter.Hijack()
}

// Size reports the buffered body size until finish writes it
func (g *gzipResponseWriter) Size() int {
	if g.ResponseWriter.Written() {
		return g.ResponseWriter.Size()
	}
	return g.buf.Len()
}
