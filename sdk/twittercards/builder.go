// Package twittercards builds Twitter Card data (twitter:* properties) for the
// summary, summary_large_image, app and player card types.
package twittercards

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/alessiobussolari/better-seo/engine/attrmap"
	"github.com/alessiobussolari/better-seo/sdk/dsl"
	"github.com/alessiobussolari/better-seo/sdk/internal/validate"
	"github.com/spf13/cast"
)

const (
	CardSummary           = "summary"
	CardSummaryLargeImage = "summary_large_image"
	CardApp               = "app"
	CardPlayer            = "player"
)

// App store platforms used by the app_name, app_id and app_url maps.
const (
	PlatformIPhone     = "iphone"
	PlatformIPad       = "ipad"
	PlatformGooglePlay = "googleplay"
)

const (
	MaxTitleLength       = 70
	MaxDescriptionLength = 200
)

// CardTypes lists the accepted card values in report order.
func CardTypes() []string {
	return []string{CardSummary, CardSummaryLargeImage, CardApp, CardPlayer}
}

// Platforms lists the platforms filled when an app value has no platform.
func Platforms() []string {
	return []string{PlatformIPhone, PlatformIPad, PlatformGooglePlay}
}

// Builder accumulates twitter:* values and validates the card when Build
// executes.
type Builder struct {
	base *dsl.Builder
}

// New creates an empty Twitter Cards builder.
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

func (b *Builder) Card(value string) *Builder         { return b.Set("card", value) }
func (b *Builder) Title(value string) *Builder        { return b.Set("title", value) }
func (b *Builder) Description(value string) *Builder  { return b.Set("description", value) }
func (b *Builder) ImageAlt(value string) *Builder     { return b.Set("image_alt", value) }
func (b *Builder) Player(value string) *Builder       { return b.Set("player", value) }
func (b *Builder) PlayerWidth(value int) *Builder     { return b.Set("player_width", value) }
func (b *Builder) PlayerHeight(value int) *Builder    { return b.Set("player_height", value) }
func (b *Builder) PlayerStream(value string) *Builder { return b.Set("player_stream", value) }

func (b *Builder) GetCard() string        { return b.getString("card") }
func (b *Builder) GetSite() string        { return b.getString("site") }
func (b *Builder) GetCreator() string     { return b.getString("creator") }
func (b *Builder) GetTitle() string       { return b.getString("title") }
func (b *Builder) GetDescription() string { return b.getString("description") }
func (b *Builder) GetImageAlt() string    { return b.getString("image_alt") }

// Site sets the site handle, adding the leading "@" when missing.
func (b *Builder) Site(handle string) *Builder {
	return b.Set("site", withAt(handle))
}

// Creator sets the author handle, adding the leading "@" when missing.
func (b *Builder) Creator(handle string) *Builder {
	return b.Set("creator", withAt(handle))
}

// Image stores an image URL or property map. Nil is ignored.
func (b *Builder) Image(value any) *Builder {
	if value == nil {
		return b
	}
	return b.Set("image", value)
}

// GetImage returns the stored image value.
func (b *Builder) GetImage() any {
	return b.Get("image")
}

// AppName sets the app name for platform, or for every platform in Platforms
// when platform is empty.
func (b *Builder) AppName(value, platform string) *Builder {
	return b.setApp("app_name", value, platform)
}

// AppID sets the store id for platform, or for every platform when platform is
// empty.
func (b *Builder) AppID(value, platform string) *Builder {
	return b.setApp("app_id", value, platform)
}

// AppURL sets the deep link for platform, or for every platform when platform
// is empty.
func (b *Builder) AppURL(value, platform string) *Builder {
	return b.setApp("app_url", value, platform)
}

func (b *Builder) GetAppName() map[string]any { return b.appMap("app_name") }
func (b *Builder) GetAppID() map[string]any   { return b.appMap("app_id") }
func (b *Builder) GetAppURL() map[string]any  { return b.appMap("app_url") }

// Set stores an arbitrary twitter property.
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

// Nested builds another Twitter Cards builder with block and stores its result
// under key.
func (b *Builder) Nested(key string, block func(*Builder)) *Builder {
	if b == nil {
		return nil
	}
	dsl.Nest(b, key, New, block)
	return b
}

func (b *Builder) Merge(other any) error {
	if b == nil {
		return fmt.Errorf("twitter cards builder is required")
	}
	return b.base.Merge(other)
}

func (b *Builder) Snapshot() map[string]any {
	if b == nil {
		return nil
	}
	return b.base.Snapshot()
}

// Validate reports every card violation at once.
func (b *Builder) Validate(ctx context.Context) error {
	if b == nil {
		return fmt.Errorf("twitter cards builder is required")
	}
	return b.base.Validate(ctx)
}

// Build validates the card and returns a detached copy of it.
func (b *Builder) Build(ctx context.Context) (map[string]any, error) {
	if b == nil {
		return nil, fmt.Errorf("twitter cards builder is required")
	}
	return b.base.Build(ctx)
}

func (b *Builder) validateFields(ctx context.Context) error {
	card := b.Get("card")
	return validate.Collect(ctx,
		func(ctx context.Context) error {
			return validate.OneOf(ctx, "card type", card, CardTypes())
		},
		func(ctx context.Context) error {
			return validate.Required(ctx, "twitter:title", b.Get("title"))
		},
		func(ctx context.Context) error {
			return validate.Required(ctx, "twitter:description", b.Get("description"))
		},
		func(ctx context.Context) error {
			if card != CardSummaryLargeImage {
				return nil
			}
			if err := validate.Required(ctx, "twitter:image", b.Get("image")); err != nil {
				return fmt.Errorf("%w for %s card", err, CardSummaryLargeImage)
			}
			return nil
		},
		func(ctx context.Context) error {
			return validate.MaxLength(ctx, "Title", b.Get("title"), MaxTitleLength)
		},
		func(ctx context.Context) error {
			return validate.MaxLength(ctx, "Description", b.Get("description"), MaxDescriptionLength)
		},
	)
}

func (b *Builder) setApp(key, value, platform string) *Builder {
	if b == nil {
		return nil
	}
	if platform == "" {
		all := make(map[string]any, len(Platforms()))
		for _, p := range Platforms() {
			all[p] = value
		}
		return b.Set(key, all)
	}
	current := b.appMap(key)
	if current == nil {
		current = make(map[string]any, 1)
	}
	current[platform] = value
	return b.Set(key, current)
}

// appMap returns a copy of the platform map stored under key.
func (b *Builder) appMap(key string) map[string]any {
	v := b.Get(key)
	if v == nil {
		return nil
	}
	m, ok := attrmap.ToStringMap(v)
	if !ok {
		return nil
	}
	return maps.Clone(m)
}

func (b *Builder) getString(key string) string {
	v := b.Get(key)
	if v == nil {
		return ""
	}
	return cast.ToString(v)
}

func withAt(handle string) string {
	if strings.HasPrefix(handle, "@") {
		return handle
	}
	return "@" + handle
}
