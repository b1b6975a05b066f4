package testutil

import (
	"context"
	"strings"
	"testing"
)

// TableTest describes one builder scenario: BuildFunc produces a value, then
// either the error expectations or Validate are checked.
type TableTest struct {
	Name        string
	BuildFunc   func(ctx context.Context) (any, error)
	WantErr     bool
	ErrContains string
	Validate    func(t *testing.T, v any)
}

// RunTableTests runs each case as a subtest with a fresh test context.
func RunTableTests(t *testing.T, tests []TableTest) {
	t.Helper()
	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			ctx := NewTestContext(t)
			got, err := tc.BuildFunc(ctx)
			if tc.WantErr {
				if err == nil {
					reportFailure(t, "expected error, got nil")
					return
				}
				if tc.ErrContains != "" && !strings.Contains(err.Error(), tc.ErrContains) {
					reportFailure(t, "expected error to contain %q, got %q", tc.ErrContains, err.Error())
				}
				return
			}
			if err != nil {
				reportFailure(t, "unexpected error: %v", err)
				return
			}
			if tc.Validate != nil {
				tc.Validate(t, got)
			}
		})
	}
}
