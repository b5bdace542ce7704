package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flowtask/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const sessionSecret = "session-test-secret"

func signSessionToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "dev@example.com",
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func setupSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/feed", middleware.SessionRequired(sessionSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString("user_identifier")})
	})
	return router
}

func TestSessionRequiredHeaderToken(t *testing.T) {
	router := setupSessionRouter()

	req, _ := http.NewRequest("GET", "/feed", nil)
	req.Header.Set("Authorization", "Bearer "+signSessionToken(t, sessionSecret, time.Hour))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if body := w.Body.String(); body != `{"user":"dev@example.com"}` {
		t.Errorf("Expected user identifier in context, got %s", body)
	}
}

func TestSessionRequiredQueryToken(t *testing.T) {
	router := setupSessionRouter()

	req, _ := http.NewRequest("GET", "/feed?token="+signSessionToken(t, sessionSecret, time.Hour), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestSessionRequiredMissingToken(t *testing.T) {
	router := setupSessionRouter()

	req, _ := http.NewRequest("GET", "/feed", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestSessionRequiredWrongSecret(t *testing.T) {
	router := setupSessionRouter()

	req, _ := http.NewRequest("GET", "/feed", nil)
	req.Header.Set("Authorization", "Bearer "+signSessionToken(t, "other-secret", time.Hour))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestSessionRequiredExpiredToken(t *testing.T) {
	router := setupSessionRouter()

	req, _ := http.NewRequest("GET", "/feed", nil)
	req.Header.Set("Authorization", "Bearer "+signSessionToken(t, sessionSecret, -time.Hour))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d for expired token, got %d", http.StatusUnauthorized, w.Code)
	}
}
