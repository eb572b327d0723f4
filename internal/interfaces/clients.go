// Package interfaces defines service contracts for the tracking engine
package interfaces

import (
	"context"
	"errors"
	"fmt"
)

// QuoteClient provides access to an external price-quote provider.
type QuoteClient interface {
	// FetchPrice retrieves the current price for a symbol. Failures are
	// returned as *QuoteError so callers can branch on the failure kind
	// without parsing error text.
	FetchPrice(ctx context.Context, symbol string) (float64, error)
}

// QuoteErrorKind classifies quote fetch failures. The classification is
// decided at the adapter boundary — callers never inspect provider payloads.
type QuoteErrorKind string

const (
	// QuoteErrThrottled signals provider-side rate limiting (HTTP 429 or an
	// explicit "too many requests" payload). The caller should abort the
	// remainder of the live-fetch pass and start a cooldown.
	QuoteErrThrottled QuoteErrorKind = "throttled"

	// QuoteErrNotFound signals the provider has no quote for the symbol.
	QuoteErrNotFound QuoteErrorKind = "not_found"

	// QuoteErrTransient signals a retryable per-symbol failure (network,
	// malformed payload, 5xx).
	QuoteErrTransient QuoteErrorKind = "transient"
)

// QuoteError is a classified quote fetch failure.
type QuoteError struct {
	Kind   QuoteErrorKind
	Symbol string
	Err    error
}

func (e *QuoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("quote fetch %s for %s: %v", e.Kind, e.Symbol, e.Err)
	}
	return fmt.Sprintf("quote fetch %s for %s", e.Kind, e.Symbol)
}

func (e *QuoteError) Unwrap() error { return e.Err }

// IsThrottled reports whether err is a throttling failure.
func IsThrottled(err error) bool {
	var qe *QuoteError
	return errors.As(err, &qe) && qe.Kind == QuoteErrThrottled
}
