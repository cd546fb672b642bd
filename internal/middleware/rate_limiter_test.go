package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	e := echo.New()
	e.POST("/sign-in", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, RateLimiter(0.001, 3))

	post := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/sign-in", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	tests := []struct {
		name string
		ip   string
		want int
	}{
		{"first attempt", "198.51.100.1", http.StatusNoContent},
		{"second attempt", "198.51.100.1", http.StatusNoContent},
		{"third attempt uses the last of the burst", "198.51.100.1", http.StatusNoContent},
		{"fourth attempt is refused", "198.51.100.1", http.StatusTooManyRequests},
		{"other clients have their own budget", "198.51.100.2", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, post(tt.ip))
		})
	}
}
