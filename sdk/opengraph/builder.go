// Package opengraph builds Open Graph protocol data (og:* properties),
// including the article block.
package opengraph

import (
	"context"
	"fmt"

	"github.com/alessiobussolari/better-seo/engine/core"
	"github.com/alessiobussolari/better-seo/sdk/dsl"
	"github.com/alessiobussolari/better-seo/sdk/internal/validate"
	"github.com/spf13/cast"
)

// Builder accumulates og:* values. Title, type, image and URL are required
// when Build executes.
type Builder struct {
	base *dsl.Builder
}

// New creates an empty Open Graph builder.
func New() *Builder {
	b := &Builder{}
	b.base = dsl.New(dsl.WithValidator(b.validateFields))
	return b
}

// Base exposes the underlying generic builder.
func (b *Builder) Base() *dsl.Builder {
	if b == nil {
		return nil
	}
	return b.base
}

func (b *Builder) Title(value string) *Builder       { return b.Set("title", value) }
func (b *Builder) Description(value string) *Builder { return b.Set("description", value) }
func (b *Builder) Type(value string) *Builder        { return b.Set("type", value) }
func (b *Builder) URL(value string) *Builder         { return b.Set("url", value) }
func (b *Builder) SiteName(value string) *Builder    { return b.Set("site_name", value) }
func (b *Builder) Locale(value string) *Builder      { return b.Set("locale", value) }

func (b *Builder) GetTitle() string       { return b.getString("title") }
func (b *Builder) GetDescription() string { return b.getString("description") }
func (b *Builder) GetType() string        { return b.getString("type") }
func (b *Builder) GetURL() string         { return b.getString("url") }
func (b *Builder) GetSiteName() string    { return b.getString("site_name") }
func (b *Builder) GetLocale() string      { return b.getString("locale") }

// Image stores either an image URL or a map such as
// {"url": ..., "width": ..., "height": ..., "alt": ...}. Nil is ignored.
func (b *Builder) Image(value any) *Builder {
	return b.setPresent("image", value)
}

// GetImage returns the stored image value.
func (b *Builder) GetImage() any {
	return b.Get("image")
}

// Video stores a video URL or property map. Nil is ignored.
func (b *Builder) Video(value any) *Builder {
	return b.setPresent("video", value)
}

// GetVideo returns the stored video value.
func (b *Builder) GetVideo() any {
	return b.Get("video")
}

// Audio stores an audio URL or property map. Nil is ignored.
func (b *Builder) Audio(value any) *Builder {
	return b.setPresent("audio", value)
}

// GetAudio returns the stored audio value.
func (b *Builder) GetAudio() any {
	return b.Get("audio")
}

// LocaleAlternate stores alternate locales flattened into a []string.
// Calling it without values keeps the current list.
func (b *Builder) LocaleAlternate(values ...any) *Builder {
	if len(values) == 0 {
		return b
	}
	return b.Set("locale_alternate", core.ToStringSlice(values...))
}

// GetLocaleAlternate returns the alternate locales or nil when unset.
func (b *Builder) GetLocaleAlternate() []string {
	v := b.Get("locale_alternate")
	if v == nil {
		return nil
	}
	return core.ToStringSlice(v)
}

// Article builds the og:article block with an ArticleBuilder.
func (b *Builder) Article(block func(*ArticleBuilder)) *Builder {
	if b == nil {
		return nil
	}
	dsl.Nest(b, "article", NewArticle, block)
	return b
}

// GetArticle returns the article block or nil when unset.
func (b *Builder) GetArticle() map[string]any {
	article, _ := b.Get("article").(map[string]any)
	return article
}

// Set stores an arbitrary og property.
func (b *Builder) Set(key string, value any) *Builder {
	if b == nil {
		return nil
	}
	b.base.Set(key, value)
	return b
}

// Get returns the value stored under key.
func (b *Builder) Get(key string) any {
	if b == nil {
		return nil
	}
	return b.base.Get(key)
}

// Evaluate runs block against b.
func (b *Builder) Evaluate(block func(*Builder)) *Builder {
	if b == nil {
		return nil
	}
	if block != nil {
		block(b)
	}
	return b
}

// Nested builds another Open Graph builder with block and stores its result
// under key. A failing nested builder is reported by the next Build on b.
func (b *Builder) Nested(key string, block func(*Builder)) *Builder {
	if b == nil {
		return nil
	}
	dsl.Nest(b, key, New, block)
	return b
}

// Merge copies the top-level keys of other into b.
func (b *Builder) Merge(other any) error {
	if b == nil {
		return fmt.Errorf("open graph builder is required")
	}
	return b.base.Merge(other)
}

// Snapshot returns the current values without validating them.
func (b *Builder) Snapshot() map[string]any {
	if b == nil {
		return nil
	}
	return b.base.Snapshot()
}

// Validate reports every missing required property at once.
func (b *Builder) Validate(ctx context.Context) error {
	if b == nil {
		return fmt.Errorf("open graph builder is required")
	}
	return b.base.Validate(ctx)
}

// Build validates the properties and returns a detached copy of them.
func (b *Builder) Build(ctx context.Context) (map[string]any, error) {
	if b == nil {
		return nil, fmt.Errorf("open graph builder is required")
	}
	return b.base.Build(ctx)
}

func (b *Builder) validateFields(ctx context.Context) error {
	required := []struct {
		label string
		key   string
	}{
		{"og:title", "title"},
		{"og:type", "type"},
		{"og:image", "image"},
		{"og:url", "url"},
	}
	checks := make([]func(context.Context) error, 0, len(required))
	for _, field := range required {
		checks = append(checks, func(ctx context.Context) error {
			return validate.Required(ctx, field.label, b.Get(field.key))
		})
	}
	return validate.Collect(ctx, checks...)
}

func (b *Builder) setPresent(key string, value any) *Builder {
	if value == nil {
		return b
	}
	return b.Set(key, value)
}

func (b *Builder) getString(key string) string {
	v := b.Get(key)
	if v == nil {
		return ""
	}
	return cast.ToString(v)
}
