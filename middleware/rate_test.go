package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRateLimitRejectsBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/join", RateLimit(1, 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/join", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", first.Code)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/join", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("burst request status = %d, want 429", second.Code)
	}
}
