package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{"forwarded single hop", "203.0.113.7", "", "10.0.0.9:4312", "203.0.113.7"},
		{"forwarded chain takes first hop", "203.0.113.7, 70.41.3.18, 150.172.238.178", "", "10.0.0.9:4312", "203.0.113.7"},
		{"real ip fallback", "", "198.51.100.2", "10.0.0.9:4312", "198.51.100.2"},
		{"socket address fallback strips port", "", "", "192.0.2.4:56001", "192.0.2.4"},
		{"socket address without port", "", "", "192.0.2.4", "192.0.2.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/", nil)
			c.Request.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				c.Request.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				c.Request.Header.Set("X-Real-IP", tt.realIP)
			}

			if got := clientIP(c); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
