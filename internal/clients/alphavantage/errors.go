package alphavantage

import (
	"fmt"
	"time"
)

// ErrRateLimitExceeded is returned when the daily request budget is spent
// or Alpha Vantage itself reports throttling.
type ErrRateLimitExceeded struct {
	ResetAt time.Time
}

func (e ErrRateLimitExceeded) Error() string {
	if e.ResetAt.IsZero() {
		return "alpha vantage rate limit exceeded"
	}
	return fmt.Sprintf("alpha vantage rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// ErrInvalidAPIKey is returned when Alpha Vantage rejects the API key
type ErrInvalidAPIKey struct{}

func (e ErrInvalidAPIKey) Error() string {
	return "alpha vantage: invalid or missing API key"
}

// ErrSymbolNotFound is returned when Alpha Vantage has no data for a symbol
type ErrSymbolNotFound struct {
	Symbol string
}

func (e ErrSymbolNotFound) Error() string {
	return fmt.Sprintf("alpha vantage: no data for symbol %s", e.Symbol)
}

// ErrAPI wraps any other error message returned in a response body
type ErrAPI struct {
	Message string
}

func (e ErrAPI) Error() string {
	return "alpha vantage error: " + e.Message
}
