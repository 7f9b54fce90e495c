package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:        "test-secret",
		TokenExpireHours: 1,
	}
}

func TestGenerateToken(t *testing.T) {
	cfg := testAuthConfig()

	token, expiresAt, err := GenerateToken("u-1", "alice", cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if token == "" {
		t.Error("Expected non-empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Error("Expected expiry in the future")
	}
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testAuthConfig()

	token, _, err := GenerateToken("u-1", "alice", cfg)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	router := gin.New()
	router.Use(AuthMiddleware(cfg))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  GetUserID(c),
			"username": GetUsername(c),
		})
	})

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"malformed header", "Bearer", http.StatusUnauthorized},
		{"invalid token", "Bearer not-a-token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	cfg := &config.AuthConfig{
		JWTSecret:        "test-secret",
		TokenExpireHours: -1, // already expired
	}

	token, _, err := GenerateToken("u-1", "alice", cfg)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	router := gin.New()
	router.Use(AuthMiddleware(testAuthConfig()))
	router.GET("/protected", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for expired token, got %d", w.Code)
	}
}

func TestGetUserIDMissing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if GetUserID(c) != "" {
		t.Error("Expected empty user ID when not set")
	}
	if GetUsername(c) != "" {
		t.Error("Expected empty username when not set")
	}
}
