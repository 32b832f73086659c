package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mtlprog/complytrack/internal/domain"
)

// DefaultStoreTimeout bounds a single store call when Config leaves it unset.
const DefaultStoreTimeout = 5 * time.Second

// Config holds engine settings shared by the workflow and risk services.
type Config struct {
	StoreTimeout time.Duration
	Now          func() time.Time
}

func (c Config) withDefaults() Config {
	if c.StoreTimeout <= 0 {
		c.StoreTimeout = DefaultStoreTimeout
	}
	if c.Now == nil {
		c.Now = func() time.Time { return time.Now().UTC() }
	}
	return c
}

// bounded runs fn with a context limited by the store timeout and translates
// deadline expiry into domain.ErrTimeout and caller cancellation into
// domain.ErrCanceled.
func bounded[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	v, err := fn(cctx)
	return v, classifyStoreError(err)
}

func classifyStoreError(err error) error {
	if err == nil || errors.Is(err, domain.ErrTimeout) || errors.Is(err, domain.ErrCanceled) {
		return err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", domain.ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", domain.ErrCanceled, err)
	}
	return err
}
