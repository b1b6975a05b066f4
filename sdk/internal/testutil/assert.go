package testutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/alessiobussolari/better-seo/engine/core"
)

var reportFailure = func(t *testing.T, format string, args ...any) {
	t.Helper()
	t.Fatalf(format, args...)
}

// RequireNoError stops the test when err is not nil.
func RequireNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		reportFailure(t, "unexpected error: %v", err)
	}
}

// RequireValidationError stops the test unless err is a *core.ValidationError
// or a plain error whose message contains every substring in want.
func RequireValidationError(t *testing.T, err error, want ...string) {
	t.Helper()
	if err == nil {
		reportFailure(t, "expected validation error, got nil")
		return
	}
	for _, fragment := range want {
		if !strings.Contains(err.Error(), fragment) {
			reportFailure(t, "expected validation error to mention %q, got %q", fragment, err.Error())
			return
		}
	}
}

// ValidationMessages returns the individual messages carried by err. A plain
// error yields its own message.
func ValidationMessages(err error) []string {
	if err == nil {
		return nil
	}
	var ve *core.ValidationError
	if errors.As(err, &ve) {
		return ve.Messages()
	}
	return []string{err.Error()}
}
