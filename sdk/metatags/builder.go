// Package metatags builds the basic HTML meta tag tree (title, description,
// keywords, robots and friends) consumed by meta tag renderers.
package metatags

import (
	"context"
	"fmt"
	"maps"

	"github.com/alessiobussolari/better-seo/engine/core"
	"github.com/alessiobussolari/better-seo/sdk/dsl"
	"github.com/alessiobussolari/better-seo/sdk/internal/validate"
	"github.com/spf13/cast"
)

const (
	// DefaultViewport is stored by Viewport when no value is given.
	DefaultViewport = "width=device-width, initial-scale=1.0"
	// DefaultCharset is stored by Charset when no value is given.
	DefaultCharset = "UTF-8"

	MaxTitleLength       = 60
	MaxDescriptionLength = 160
)

// Builder accumulates meta tag values and checks recommended lengths when
// Build executes.
type Builder struct {
	base *dsl.Builder
}

// New creates an empty meta tags builder.
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

// Title sets the page title.
func (b *Builder) Title(value string) *Builder {
	return b.Set("title", value)
}

// GetTitle returns the page title or "" when unset.
func (b *Builder) GetTitle() string {
	return b.getString("title")
}

// Description sets the meta description.
func (b *Builder) Description(value string) *Builder {
	return b.Set("description", value)
}

// GetDescription returns the meta description or "" when unset.
func (b *Builder) GetDescription() string {
	return b.getString("description")
}

// Keywords stores values flattened into a []string. Calling it without values
// leaves the current keywords untouched.
func (b *Builder) Keywords(values ...any) *Builder {
	if len(values) == 0 {
		return b
	}
	return b.Set("keywords", core.ToStringSlice(values...))
}

// GetKeywords returns the keyword list or nil when unset.
func (b *Builder) GetKeywords() []string {
	v := b.Get("keywords")
	if v == nil {
		return nil
	}
	return core.ToStringSlice(v)
}

// Author sets the author meta tag.
func (b *Builder) Author(value string) *Builder {
	return b.Set("author", value)
}

// GetAuthor returns the author or "" when unset.
func (b *Builder) GetAuthor() string {
	return b.getString("author")
}

// Canonical sets the canonical URL.
func (b *Builder) Canonical(value string) *Builder {
	return b.Set("canonical", value)
}

// GetCanonical returns the canonical URL or "" when unset.
func (b *Builder) GetCanonical() string {
	return b.getString("canonical")
}

// Robots stores the robots directives. Entries in extra are added next to index
// and follow and win over them.
func (b *Builder) Robots(index, follow bool, extra map[string]any) *Builder {
	robots := map[string]any{"index": index, "follow": follow}
	maps.Copy(robots, extra)
	return b.Set("robots", robots)
}

// Viewport sets the viewport meta tag, falling back to DefaultViewport.
func (b *Builder) Viewport(value string) *Builder {
	if value == "" {
		value = DefaultViewport
	}
	return b.Set("viewport", value)
}

// Charset sets the document charset, falling back to DefaultCharset.
func (b *Builder) Charset(value string) *Builder {
	if value == "" {
		value = DefaultCharset
	}
	return b.Set("charset", value)
}

// Set stores an arbitrary key.
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

// Nested builds another meta tags builder with block and stores its result
// under key.
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
		return fmt.Errorf("meta tags builder is required")
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

// Validate reports every length violation at once.
func (b *Builder) Validate(ctx context.Context) error {
	if b == nil {
		return fmt.Errorf("meta tags builder is required")
	}
	return b.base.Validate(ctx)
}

// Build validates the tags and returns a detached copy of them.
func (b *Builder) Build(ctx context.Context) (map[string]any, error) {
	if b == nil {
		return nil, fmt.Errorf("meta tags builder is required")
	}
	return b.base.Build(ctx)
}

func (b *Builder) validateFields(ctx context.Context) error {
	return validate.Collect(ctx,
		func(ctx context.Context) error {
			return validate.MaxLength(ctx, "Title", b.Get("title"), MaxTitleLength)
		},
		func(ctx context.Context) error {
			return validate.MaxLength(ctx, "Description", b.Get("description"), MaxDescriptionLength)
		},
	)
}

func (b *Builder) getString(key string) string {
	v := b.Get(key)
	if v == nil {
		return ""
	}
	return cast.ToString(v)
}
