package service

import (
	"context"
	"errors"
	"net"
)

// ErrNoDataAvailable means the yield source produced no records at all.
var ErrNoDataAvailable = errors.New("no yield data available")

// Upstream failure modes. Clients wrap one of these so callers can
// classify with errors.Is without knowing the transport.
var (
	ErrOracleTimeout     = errors.New("oracle: timeout")
	ErrOracleMalformed   = errors.New("oracle: malformed response")
	ErrOracleUnavailable = errors.New("oracle: unavailable")

	ErrLLMTimeout     = errors.New("llm: timeout")
	ErrLLMAuth        = errors.New("llm: authentication failed")
	ErrLLMRateLimited = errors.New("llm: rate limited")
	ErrLLMMalformed   = errors.New("llm: malformed response")
	ErrLLMUnavailable = errors.New("llm: unavailable")
)

// OracleFailureKind maps an oracle error to a short metrics label.
func OracleFailureKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrOracleTimeout), IsTimeout(err):
		return "timeout"
	case errors.Is(err, ErrOracleMalformed):
		return "malformed"
	default:
		return "unavailable"
	}
}

// LLMFailureKind maps a text-generation error to a short metrics label.
func LLMFailureKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrLLMTimeout), IsTimeout(err):
		return "timeout"
	case errors.Is(err, ErrLLMAuth):
		return "auth"
	case errors.Is(err, ErrLLMRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrLLMMalformed):
		return "malformed"
	default:
		return "unavailable"
	}
}

// IsTimeout reports whether err stems from a deadline or a network timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
