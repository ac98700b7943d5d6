package vision

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gofiber/fiber/v2/log"
)

type BackOffFactory func() backoff.BackOff

type RetryConfig struct {
	MaxTries   int
	MaxElapsed time.Duration
	NewBackOff BackOffFactory
}

// RetryingIdentifier repeats transient failures of the wrapped identifier
// with exponential backoff. Permanent failures are returned on first sight.
type RetryingIdentifier struct {
	next       Identifier
	maxTries   uint
	maxElapsed time.Duration
	newBackOff BackOffFactory
}

func NewRetryingIdentifier(next Identifier, cfg RetryConfig) *RetryingIdentifier {
	if cfg.MaxTries < 1 {
		cfg.MaxTries = 1
	}
	if cfg.MaxElapsed <= 0 {
		cfg.MaxElapsed = 30 * time.Second
	}
	if cfg.NewBackOff == nil {
		cfg.NewBackOff = func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 5 * time.Second
			return b
		}
	}
	return &RetryingIdentifier{
		next:       next,
		maxTries:   uint(cfg.MaxTries),
		maxElapsed: cfg.MaxElapsed,
		newBackOff: cfg.NewBackOff,
	}
}

func (r *RetryingIdentifier) IdentifyPlant(ctx context.Context, image string) (string, error) {
	operation := func() (string, error) {
		text, err := r.next.IdentifyPlant(ctx, image)
		if err != nil && !IsTransient(err) {
			return "", backoff.Permanent(err)
		}
		return text, err
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(r.newBackOff()),
		backoff.WithMaxTries(r.maxTries),
		backoff.WithMaxElapsedTime(r.maxElapsed),
		backoff.WithNotify(func(err error, wait time.Duration) {
			log.Warnf("vision: identify plant failed, retrying in %s: %v", wait, err)
		}),
	)
}
