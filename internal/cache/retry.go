package cache

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/marquee-cli/marquee/catalog"
	"github.com/marquee-cli/marquee/log"
	"github.com/sirupsen/logrus"
)

// RetryPolicy decides how failed fetches are repeated.
type RetryPolicy struct {
	// Retries is the number of attempts after the first one.
	Retries int
	Delay   time.Duration
	// RetryIf filters errors worth retrying. Nil retries every error.
	RetryIf func(error) bool
}

// DefaultRetryPolicy retries every failure once.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Retries: 1, Delay: 500 * time.Millisecond}
}

// RetryClasses builds a RetryIf from per-class switches. Canceled and invalid
// requests are never retried.
func RetryClasses(notFound, clientErrors bool) func(error) bool {
	return func(err error) bool {
		switch catalog.Classify(err) {
		case catalog.ClassNotFound:
			return notFound
		case catalog.ClassClient:
			return clientErrors
		default:
			return true
		}
	}
}

func (p RetryPolicy) shouldRetry(err error) bool {
	switch catalog.Classify(err) {
	case catalog.ClassCanceled, catalog.ClassInvalid:
		return false
	}
	if p.RetryIf == nil {
		return true
	}
	return p.RetryIf(err)
}

func withRetry[T any](ctx context.Context, p RetryPolicy, k Key, fn func(context.Context) (T, error)) (T, error) {
	retries := p.Retries
	if retries < 0 {
		retries = 0
	}

	return retry.DoWithData(
		func() (T, error) { return fn(ctx) },
		retry.Context(ctx),
		retry.Attempts(uint(retries+1)),
		retry.Delay(p.Delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(p.shouldRetry),
		retry.OnRetry(func(n uint, err error) {
			log.WithFields(logrus.Fields{"key": k.String(), "attempt": n + 1}).Warnf("retrying after: %v", err)
		}),
	)
}
