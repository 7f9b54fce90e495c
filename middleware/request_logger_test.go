package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))

	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/ok", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	router.GET("/broken", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	tests := []struct {
		name  string
		path  string
		level string
	}{
		{"success logged at info", "/ok", "level=INFO"},
		{"client error logged at warn", "/missing", "level=WARN"},
		{"server error logged at error", "/broken", "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()

			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			output := buf.String()
			if !strings.Contains(output, tt.level) {
				t.Errorf("Expected %s in log output, got: %s", tt.level, output)
			}
			if !strings.Contains(output, "path="+tt.path) {
				t.Errorf("Expected path in log output, got: %s", output)
			}
		})
	}
}
