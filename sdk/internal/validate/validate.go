// Package validate provides helper functions for validating SDK builder inputs.
package validate

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/alessiobussolari/better-seo/engine/core"
)

func ensureContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context is required")
	}
	return nil
}

func ensureFieldName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("field name is required")
	}
	return nil
}

// Required checks that a field carries a value. Nil and false count as
// missing; empty strings are accepted.
func Required(ctx context.Context, name string, value any) error {
	if err := ensureContext(ctx); err != nil {
		return err
	}
	if err := ensureFieldName(name); err != nil {
		return err
	}
	if !core.Truthy(value) {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}

// MaxLength reports values longer than maxLen characters. Unset values pass.
func MaxLength(ctx context.Context, label string, value any, maxLen int) error {
	if err := ensureContext(ctx); err != nil {
		return err
	}
	if err := ensureFieldName(label); err != nil {
		return err
	}
	if !core.Truthy(value) {
		return nil
	}
	n, ok := core.RuneLength(value)
	if !ok || n <= maxLen {
		return nil
	}
	return fmt.Errorf("%s too long (%d chars, max %d recommended)", label, n, maxLen)
}

// OneOf ensures a set value is one of allowed. Unset values pass.
func OneOf(ctx context.Context, label string, value any, allowed []string) error {
	if err := ensureContext(ctx); err != nil {
		return err
	}
	if err := ensureFieldName(label); err != nil {
		return err
	}
	if !core.Truthy(value) {
		return nil
	}
	if s, ok := value.(string); ok && slices.Contains(allowed, s) {
		return nil
	}
	return fmt.Errorf("Invalid %s: %v. Valid types: %s", label, value, strings.Join(allowed, ", "))
}

// Collect runs checks in order and returns every failure as one error.
func Collect(ctx context.Context, checks ...func(context.Context) error) error {
	if err := ensureContext(ctx); err != nil {
		return err
	}
	errs := make([]error, 0, len(checks))
	for _, check := range checks {
		if check == nil {
			continue
		}
		if err := check(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return core.NewValidationError(errs...)
}
