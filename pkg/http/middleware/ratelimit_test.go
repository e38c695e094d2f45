package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type countingAllower struct {
	budget int
	seen   []string
}

func (a *countingAllower) Allow(key string) bool {
	a.seen = append(a.seen, key)
	if a.budget == 0 {
		return false
	}
	a.budget--
	return true
}

func TestRateLimit(t *testing.T) {
	e := echo.New()
	limiter := &countingAllower{budget: 1}
	deny := func(c echo.Context) error { return c.NoContent(http.StatusTooManyRequests) }
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RateLimit(limiter, deny))

	want := []int{http.StatusOK, http.StatusTooManyRequests}
	for i, code := range want {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != code {
			t.Fatalf("request %d: status = %d, want %d", i, rec.Code, code)
		}
	}
	if limiter.seen[0] != "10.0.0.1" {
		t.Fatalf("key = %q, want client ip", limiter.seen[0])
	}
}
