package testutil

import (
	"context"
	"testing"

	"github.com/alessiobussolari/better-seo/pkg/config"
	"github.com/alessiobussolari/better-seo/pkg/logger"
)

// NewTestContext returns a context derived from t.Context() with a test logger
// and a fresh default configuration attached.
func NewTestContext(t *testing.T) context.Context {
	t.Helper()
	ctx := t.Context()
	ctx = WithTestLogger(t, ctx)
	ctx = WithTestConfig(t, ctx)
	return ctx
}

// WithTestLogger returns a copy of ctx containing a logger configured for tests.
func WithTestLogger(t *testing.T, ctx context.Context) context.Context {
	t.Helper()
	return logger.ContextWithLogger(ctx, logger.NewForTests())
}

// WithTestConfig returns a copy of ctx carrying a fresh default configuration.
// The process-wide configuration is never touched, so parallel tests can share
// it.
func WithTestConfig(t *testing.T, ctx context.Context) context.Context {
	t.Helper()
	return config.ContextWithConfig(ctx, config.New())
}
