package middleware

import "github.com/labstack/echo/v4"

// Allower decides whether the caller identified by key may proceed.
type Allower interface {
	Allow(key string) bool
}

// RateLimit rejects requests whose client IP has exhausted its budget.
// deny writes the rejection so the envelope stays owned by the caller.
func RateLimit(limiter Allower, deny echo.HandlerFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.RealIP()) {
				return deny(c)
			}
			return next(c)
		}
	}
}
