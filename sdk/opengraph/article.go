package opengraph

import (
	"context"
	"fmt"

	"github.com/alessiobussolari/better-seo/engine/core"
	"github.com/alessiobussolari/better-seo/sdk/dsl"
)

// ArticleBuilder accumulates article:* properties. It has no required fields.
type ArticleBuilder struct {
	base *dsl.Builder
}

// NewArticle creates an empty article builder.
func NewArticle() *ArticleBuilder {
	return &ArticleBuilder{base: dsl.New()}
}

func (a *ArticleBuilder) Base() *dsl.Builder {
	if a == nil {
		return nil
	}
	return a.base
}

func (a *ArticleBuilder) Author(value string) *ArticleBuilder  { return a.Set("author", value) }
func (a *ArticleBuilder) Section(value string) *ArticleBuilder { return a.Set("section", value) }

// PublishedTime stores the publication time. time.Time values are rendered in
// RFC 3339; strings are kept as given.
func (a *ArticleBuilder) PublishedTime(value any) *ArticleBuilder {
	return a.setTime("published_time", value)
}

func (a *ArticleBuilder) ModifiedTime(value any) *ArticleBuilder {
	return a.setTime("modified_time", value)
}

func (a *ArticleBuilder) ExpirationTime(value any) *ArticleBuilder {
	return a.setTime("expiration_time", value)
}

// Tag stores article tags flattened into a []string.
func (a *ArticleBuilder) Tag(values ...any) *ArticleBuilder {
	if len(values) == 0 {
		return a
	}
	return a.Set("tag", core.ToStringSlice(values...))
}

func (a *ArticleBuilder) Set(key string, value any) *ArticleBuilder {
	if a == nil {
		return nil
	}
	a.base.Set(key, value)
	return a
}

func (a *ArticleBuilder) Get(key string) any {
	if a == nil {
		return nil
	}
	return a.base.Get(key)
}

func (a *ArticleBuilder) Evaluate(block func(*ArticleBuilder)) *ArticleBuilder {
	if a == nil {
		return nil
	}
	if block != nil {
		block(a)
	}
	return a
}

func (a *ArticleBuilder) Build(ctx context.Context) (map[string]any, error) {
	if a == nil {
		return nil, fmt.Errorf("article builder is required")
	}
	return a.base.Build(ctx)
}

func (a *ArticleBuilder) setTime(key string, value any) *ArticleBuilder {
	if value == nil {
		return a
	}
	return a.Set(key, core.FormatTime(value))
}
