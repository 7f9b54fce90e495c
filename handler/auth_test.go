package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/config"
)

func newAuthRouter() *gin.Engine {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:        "test-secret",
			TokenExpireHours: 1,
		},
		Users: []config.User{
			{ID: "user-1", Username: "admin", Password: "admin123"},
		},
	}
	handler := NewAuthHandler(cfg)

	router := gin.New()
	router.POST("/auth/login", handler.Login)
	router.GET("/auth/me", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Set("username", "admin")
		handler.GetCurrentUser(c)
	})
	return router
}

func TestLogin(t *testing.T) {
	router := newAuthRouter()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"valid credentials", `{"username":"admin","password":"admin123"}`, http.StatusOK},
		{"wrong password", `{"username":"admin","password":"wrong"}`, http.StatusUnauthorized},
		{"unknown user", `{"username":"nobody","password":"admin123"}`, http.StatusUnauthorized},
		{"missing password", `{"username":"admin"}`, http.StatusBadRequest},
		{"malformed body", `not json`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/auth/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			if tt.expectedStatus == http.StatusOK {
				var response LoginResponse
				if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
					t.Fatalf("Failed to parse response: %v", err)
				}
				if response.Token == "" {
					t.Error("Expected non-empty token")
				}
				if response.UserID != "user-1" {
					t.Errorf("Expected user_id user-1, got %s", response.UserID)
				}
				if response.Username != "admin" {
					t.Errorf("Expected username admin, got %s", response.Username)
				}
			}
		})
	}
}

func TestGetCurrentUser(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest("GET", "/auth/me", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["user_id"] != "user-1" {
		t.Errorf("Expected user_id user-1, got %s", response["user_id"])
	}
	if response["username"] != "admin" {
		t.Errorf("Expected username admin, got %s", response["username"])
	}
}
