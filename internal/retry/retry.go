package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"strings"
	"time"
)

// Class buckets an error for the retry decision.
type Class int

const (
	ClassTransient Class = iota
	ClassRateLimited
	ClassPermanentRequest
	ClassInvalidInput
	ClassUnexpected
)

func (c Class) String() string {
	switch c {
	case ClassTransient:
		return "transient"
	case ClassRateLimited:
		return "rate_limited"
	case ClassPermanentRequest:
		return "permanent_request"
	case ClassInvalidInput:
		return "invalid_input"
	default:
		return "unexpected"
	}
}

// blockKeywords are message fragments that indicate the target is
// throttling or blocking the requester.
var blockKeywords = []string{
	"blocked",
	"rate limit",
	"too many requests",
	"429",
	"captcha",
	"access denied",
}

// StatusError carries a non-2xx HTTP status through the retry loop.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// Policy decides whether and when a failed attempt is repeated.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// Classify maps an error onto a retry class. Anything that cannot be
// categorized during a page load is treated as transient; only client
// errors other than 429 mark a permanent request defect.
func Classify(err error) Class {
	if err == nil {
		return ClassUnexpected
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusTooManyRequests:
			return ClassRateLimited
		case statusErr.StatusCode >= 500:
			return ClassTransient
		case statusErr.StatusCode >= 400:
			return ClassPermanentRequest
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ClassTransient
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ClassTransient
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ClassTransient
	}

	msg := strings.ToLower(err.Error())
	for _, keyword := range blockKeywords {
		if strings.Contains(msg, keyword) {
			return ClassRateLimited
		}
	}
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "connection reset") {
		return ClassTransient
	}

	return ClassTransient
}

// ShouldRetry reports whether another attempt is allowed after the given
// 0-based attempt failed with the given class.
func (p *Policy) ShouldRetry(attempt int, class Class) bool {
	if attempt+1 >= p.MaxAttempts {
		return false
	}
	switch class {
	case ClassInvalidInput, ClassPermanentRequest:
		return false
	}
	return true
}

// DelayFor returns the unjittered backoff delay for a 0-based attempt.
func (p *Policy) DelayFor(attempt int) time.Duration {
	return p.BaseDelay * (1 << attempt)
}

// Jitter perturbs a delay by a uniform factor in [0.5, 1.5) to avoid
// predictable request timing.
func Jitter(d time.Duration) time.Duration {
	factor := 0.5 + rand.Float64()
	return time.Duration(float64(d) * factor)
}

// Sleep waits for the given duration or until the context is cancelled.
func Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
