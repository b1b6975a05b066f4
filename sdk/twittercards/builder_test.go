package twittercards

import (
	"context"
	"strings"
	"testing"

	"github.com/alessiobussolari/better-seo/sdk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderBuild(t *testing.T) {
	t.Parallel()
	t.Run("Should build a summary card", func(t *testing.T) {
		t.Parallel()
		ctx := testutil.NewTestContext(t)
		out, err := New().
			Card(CardSummary).
			Site("acme").
			Creator("@jane").
			Title("Hello").
			Description("World").
			Image("https://example.com/card.jpg").
			ImageAlt("A card").
			Build(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"card":        "summary",
			"site":        "@acme",
			"creator":     "@jane",
			"title":       "Hello",
			"description": "World",
			"image":       "https://example.com/card.jpg",
			"image_alt":   "A card",
		}, out)
	})

	t.Run("Should build a player card", func(t *testing.T) {
		t.Parallel()
		ctx := testutil.NewTestContext(t)
		out, err := New().
			Card(CardPlayer).
			Title("Clip").
			Description("A clip").
			Player("https://example.com/player").
			PlayerWidth(640).
			PlayerHeight(360).
			PlayerStream("https://example.com/stream.mp4").
			Build(ctx)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/player", out["player"])
		assert.Equal(t, 640, out["player_width"])
		assert.Equal(t, 360, out["player_height"])
		assert.Equal(t, "https://example.com/stream.mp4", out["player_stream"])
	})

	t.Run("Should read values back through getters", func(t *testing.T) {
		t.Parallel()
		b := New().Card(CardApp).Site("acme").Creator("jane").Title("T").Description("D").ImageAlt("alt").Image(nil)
		assert.Equal(t, "app", b.GetCard())
		assert.Equal(t, "@acme", b.GetSite())
		assert.Equal(t, "@jane", b.GetCreator())
		assert.Equal(t, "T", b.GetTitle())
		assert.Equal(t, "D", b.GetDescription())
		assert.Equal(t, "alt", b.GetImageAlt())
		assert.Nil(t, b.GetImage())
	})
}

func TestAppFields(t *testing.T) {
	t.Parallel()
	t.Run("Should fill every platform without a platform", func(t *testing.T) {
		t.Parallel()
		b := New().AppName("Acme", "").AppID("123", "").AppURL("acme://open", "")
		all := map[string]any{"iphone": "Acme", "ipad": "Acme", "googleplay": "Acme"}
		assert.Equal(t, all, b.GetAppName())
		assert.Equal(t, map[string]any{"iphone": "123", "ipad": "123", "googleplay": "123"}, b.GetAppID())
		assert.Len(t, b.GetAppURL(), 3)
	})

	t.Run("Should merge per platform values", func(t *testing.T) {
		t.Parallel()
		b := New().
			AppID("111", PlatformIPhone).
			AppID("com.acme", PlatformGooglePlay).
			AppName("Acme", "").
			AppName("Acme HD", PlatformIPad)
		assert.Equal(t, map[string]any{"iphone": "111", "googleplay": "com.acme"}, b.GetAppID())
		assert.Equal(t, map[string]any{"iphone": "Acme", "ipad": "Acme HD", "googleplay": "Acme"}, b.GetAppName())
		assert.Nil(t, b.GetAppURL())
	})

	t.Run("Should not alias the stored map", func(t *testing.T) {
		t.Parallel()
		b := New().AppID("1", PlatformIPhone)
		got := b.GetAppID()
		got["ipad"] = "2"
		assert.Equal(t, map[string]any{"iphone": "1"}, b.GetAppID())
	})
}

func TestBuilderValidation(t *testing.T) {
	t.Parallel()
	testutil.RunTableTests(t, []testutil.TableTest{
		{
			Name:        "Should reject unknown card types",
			WantErr:     true,
			ErrContains: "Invalid card type: banner. Valid types: summary, summary_large_image, app, player",
			BuildFunc: func(ctx context.Context) (any, error) {
				return New().Card("banner").Title("T").Description("D").Build(ctx)
			},
		},
		{
			Name:        "Should require an image for large image cards",
			WantErr:     true,
			ErrContains: "twitter:image is required for summary_large_image card",
			BuildFunc: func(ctx context.Context) (any, error) {
				return New().Card(CardSummaryLargeImage).Title("T").Description("D").Build(ctx)
			},
		},
		{
			Name: "Should accept a large image card with an image",
			BuildFunc: func(ctx context.Context) (any, error) {
				return New().Card(CardSummaryLargeImage).Title("T").Description("D").Image("a.jpg").Build(ctx)
			},
		},
		{
			Name: "Should accept a summary card without an image",
			BuildFunc: func(ctx context.Context) (any, error) {
				return New().Card(CardSummary).Title("T").Description("D").Build(ctx)
			},
		},
		{
			Name: "Should accept a card without a card type",
			BuildFunc: func(ctx context.Context) (any, error) {
				return New().Title("T").Description("D").Build(ctx)
			},
		},
		{
			Name:        "Should reject a long title",
			WantErr:     true,
			ErrContains: "Title too long (71 chars, max 70 recommended)",
			BuildFunc: func(ctx context.Context) (any, error) {
				return New().Title(strings.Repeat("t", 71)).Description("D").Build(ctx)
			},
		},
		{
			Name:        "Should reject a long description",
			WantErr:     true,
			ErrContains: "Description too long (201 chars, max 200 recommended)",
			BuildFunc: func(ctx context.Context) (any, error) {
				return New().Title("T").Description(strings.Repeat("d", 201)).Build(ctx)
			},
		},
	})

	t.Run("Should report every violation in order", func(t *testing.T) {
		t.Parallel()
		ctx := testutil.NewTestContext(t)
		err := New().Card(CardSummaryLargeImage).Validate(ctx)
		assert.Equal(t, []string{
			"twitter:title is required",
			"twitter:description is required",
			"twitter:image is required for summary_large_image card",
		}, testutil.ValidationMessages(err))
	})
}

func TestBuilderComposition(t *testing.T) {
	t.Parallel()
	t.Run("Should merge builders and validate the result", func(t *testing.T) {
		t.Parallel()
		ctx := testutil.NewTestContext(t)
		defaults := New().Site("acme").Card(CardSummary)
		b := New().Title("T").Description("D")
		require.NoError(t, b.Merge(defaults))
		out, err := b.Build(ctx)
		require.NoError(t, err)
		assert.Equal(t, "@acme", out["site"])
		assert.Equal(t, "summary", out["card"])
	})

	t.Run("Should evaluate blocks and snapshot without validation", func(t *testing.T) {
		t.Parallel()
		b := New().Evaluate(func(b *Builder) { b.Card("bogus") })
		assert.Equal(t, map[string]any{"card": "bogus"}, b.Snapshot())
	})
}
