package validate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alessiobussolari/better-seo/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cardTypes = []string{"summary", "summary_large_image", "app", "player"}

func TestRequired(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	t.Run("Should accept set values", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, Required(ctx, "og:title", "Hello"))
		assert.NoError(t, Required(ctx, "og:title", ""))
		assert.NoError(t, Required(ctx, "og:image", map[string]any{"url": "a.jpg"}))
		assert.NoError(t, Required(ctx, "flag", true))
	})
	t.Run("Should reject nil and false", func(t *testing.T) {
		t.Parallel()
		err := Required(ctx, "og:title", nil)
		require.Error(t, err)
		assert.Equal(t, "og:title is required", err.Error())
		assert.EqualError(t, Required(ctx, "og:url", false), "og:url is required")
	})
	t.Run("Should reject missing context and field name", func(t *testing.T) {
		t.Parallel()
		var nilCtx context.Context
		assert.EqualError(t, Required(nilCtx, "x", "y"), "context is required")
		assert.EqualError(t, Required(ctx, " ", "y"), "field name is required")
	})
}

func TestMaxLength(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	t.Run("Should accept values at the limit", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, MaxLength(ctx, "Title", strings.Repeat("a", 60), 60))
		assert.NoError(t, MaxLength(ctx, "Title", nil, 60))
	})
	t.Run("Should report the measured length", func(t *testing.T) {
		t.Parallel()
		err := MaxLength(ctx, "Title", strings.Repeat("a", 61), 60)
		require.Error(t, err)
		assert.Equal(t, "Title too long (61 chars, max 60 recommended)", err.Error())
	})
	t.Run("Should count characters rather than bytes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, MaxLength(ctx, "Title", "città", 5))
		assert.Error(t, MaxLength(ctx, "Title", "cittàà", 5))
	})
}

func TestOneOf(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	t.Run("Should accept allowed and unset values", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, OneOf(ctx, "card type", "summary", cardTypes))
		assert.NoError(t, OneOf(ctx, "card type", nil, cardTypes))
	})
	t.Run("Should list the valid choices", func(t *testing.T) {
		t.Parallel()
		err := OneOf(ctx, "card type", "banner", cardTypes)
		require.Error(t, err)
		assert.Equal(t,
			"Invalid card type: banner. Valid types: summary, summary_large_image, app, player",
			err.Error(),
		)
	})
}

func TestCollect(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	t.Run("Should return nil when every check passes", func(t *testing.T) {
		t.Parallel()
		err := Collect(ctx, func(context.Context) error { return nil }, nil)
		assert.NoError(t, err)
	})
	t.Run("Should aggregate failures in order", func(t *testing.T) {
		t.Parallel()
		err := Collect(ctx,
			func(ctx context.Context) error { return Required(ctx, "og:title", nil) },
			func(context.Context) error { return nil },
			func(ctx context.Context) error { return Required(ctx, "og:url", nil) },
		)
		var ve *core.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, []string{"og:title is required", "og:url is required"}, ve.Messages())
		assert.Equal(t, "og:title is required, og:url is required", err.Error())
	})
}
