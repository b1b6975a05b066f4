package config

import (
	"strings"
	"testing"

	"github.com/alessiobussolari/better-seo/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Default(t *testing.T) {
	t.Run("Should include the default locale in available locales", func(t *testing.T) {
		cfg := New()
		assert.Equal(t, "en", cfg.DefaultLocale)
		assert.Equal(t, []string{"en"}, cfg.AvailableLocales)
		assert.Contains(t, cfg.AvailableLocales, cfg.DefaultLocale)
		assert.Empty(t, cfg.SiteName)
	})

	t.Run("Should seed documented section defaults", func(t *testing.T) {
		cfg := New()
		assert.Equal(t, " | ", cfg.MetaTags.Get("title_separator"))
		assert.Equal(t, true, cfg.OpenGraph.Get("enabled"))
		assert.Equal(t, false, cfg.Sitemap.Get("enabled"))
		assert.Equal(t, "public/sitemap.xml", cfg.Sitemap.Get("output_path"))
		assert.Equal(t, "summary_large_image", cfg.Twitter.Get("card_type"))
		assert.Equal(t, 0.5, cfg.Sitemap.Section("defaults").Get("priority"))
		assert.Equal(t, []string{"/"}, cfg.Robots.Section("user_agents").Section("*").Get("allow"))
		assert.Equal(t, 80, cfg.Images.Section("webp").Get("quality"))
		assert.Equal(t, "config/locales/seo/**/*.yml", cfg.I18n.Get("load_path"))
		v, err := cfg.OpenGraph.Section("default_image").Field("url")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("Should never share defaults between instances", func(t *testing.T) {
		a := New()
		b := New()
		a.OpenGraph.Section("default_image").Set("width", 1)
		a.AvailableLocales[0] = "it"
		assert.Equal(t, 1200, b.OpenGraph.Section("default_image").Get("width"))
		assert.Equal(t, []string{"en"}, b.AvailableLocales)
		assert.Equal(t, 1200, New().OpenGraph.Section("default_image").Get("width"))
	})

	t.Run("Should validate cleanly", func(t *testing.T) {
		assert.NoError(t, New().Validate())
	})
}

func TestConfig_LoadFromMap(t *testing.T) {
	t.Run("Should preserve siblings when merging nested sections", func(t *testing.T) {
		cfg := New()
		err := cfg.LoadFromMap(map[string]any{
			"open_graph": map[string]any{
				"default_image": map[string]any{"url": "https://x/og.jpg"},
			},
		})
		require.NoError(t, err)
		img := cfg.OpenGraph.Section("default_image")
		assert.Equal(t, "https://x/og.jpg", img.Get("url"))
		assert.Equal(t, 1200, img.Get("width"))
		assert.Equal(t, 630, img.Get("height"))
		assert.Equal(t, "website", cfg.OpenGraph.Get("default_type"))
	})

	t.Run("Should merge incrementally", func(t *testing.T) {
		cfg := New()
		require.NoError(t, cfg.LoadFromMap(map[string]any{"structured_data": map[string]any{"organization": map[string]any{"a": 1}}}))
		require.NoError(t, cfg.LoadFromMap(map[string]any{"structured_data": map[string]any{"organization": map[string]any{"b": 2}}}))
		assert.Equal(t, map[string]any{"a": 1, "b": 2}, cfg.StructuredData.Section("organization").ToMap())
	})

	t.Run("Should overwrite present scalars only", func(t *testing.T) {
		cfg := New()
		require.NoError(t, cfg.LoadFromMap(map[string]any{
			"site_name":         "Acme",
			"available_locales": []any{"en", "it"},
		}))
		assert.Equal(t, "Acme", cfg.SiteName)
		assert.Equal(t, "en", cfg.DefaultLocale)
		assert.Equal(t, []string{"en", "it"}, cfg.AvailableLocales)
	})

	t.Run("Should split comma separated locale lists", func(t *testing.T) {
		cfg := New()
		require.NoError(t, cfg.LoadFromMap(map[string]any{"available_locales": "it,en", "default_locale": "it"}))
		assert.Equal(t, []string{"it", "en"}, cfg.AvailableLocales)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Should accept YAML style maps", func(t *testing.T) {
		cfg := New()
		require.NoError(t, cfg.LoadFromMap(map[string]any{
			"twitter": map[any]any{"site": "@acme"},
		}))
		assert.Equal(t, "@acme", cfg.Twitter.Get("site"))
		assert.Equal(t, true, cfg.Twitter.Get("enabled"))
	})

	t.Run("Should ignore nil sections and unknown keys", func(t *testing.T) {
		cfg := New()
		require.NoError(t, cfg.LoadFromMap(map[string]any{"sitemap": nil, "analytics": map[string]any{"id": "x"}}))
		assert.Equal(t, New().ToMap(), cfg.ToMap())
	})

	t.Run("Should reject non-map sections", func(t *testing.T) {
		cfg := New()
		err := cfg.LoadFromMap(map[string]any{"robots": "disallow all"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "section robots must be a map")
	})

	t.Run("Should round-trip through ToMap", func(t *testing.T) {
		cfg := New()
		require.NoError(t, cfg.LoadFromMap(map[string]any{
			"site_name": "Acme",
			"sitemap":   map[string]any{"enabled": true, "host": "https://acme.test"},
		}))
		flat := cfg.ToMap()
		fresh := New()
		require.NoError(t, fresh.LoadFromMap(flat))
		assert.Equal(t, flat, fresh.ToMap())
	})

	t.Run("Should round-trip a default configuration", func(t *testing.T) {
		flat := New().ToMap()
		fresh := New()
		require.NoError(t, fresh.LoadFromMap(flat))
		assert.Equal(t, flat, fresh.ToMap())
		assert.Nil(t, flat["site_name"])
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("Should require sitemap host when sitemap is enabled", func(t *testing.T) {
		cfg := New()
		cfg.Sitemap.Set("enabled", true)
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sitemap.host")
		cfg.Sitemap.Set("host", "https://acme.test")
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Should report every failure in order", func(t *testing.T) {
		cfg := New()
		cfg.AvailableLocales = nil
		cfg.Sitemap.Set("enabled", true)
		cfg.MetaTags.Set("default_title", strings.Repeat("t", 61))
		cfg.MetaTags.Set("default_description", strings.Repeat("d", 161))
		err := cfg.Validate()
		require.Error(t, err)
		var ve *core.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{
			"available_locales must be a non-empty array",
			"default_locale must be included in available_locales",
			"sitemap.host is required when sitemap is enabled",
			"meta_tags.default_title should be max 60 characters",
			"meta_tags.default_description should be max 160 characters",
		}, ve.Messages())
		assert.Equal(t, strings.Join(ve.Messages(), ", "), err.Error())
	})

	t.Run("Should reject a default locale outside the available ones", func(t *testing.T) {
		cfg := New()
		cfg.DefaultLocale = "fr"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, "default_locale must be included in available_locales", err.Error())
	})

	t.Run("Should count characters not bytes", func(t *testing.T) {
		cfg := New()
		cfg.MetaTags.Set("default_title", strings.Repeat("è", 60))
		assert.NoError(t, cfg.Validate())
	})
}

func TestConfig_Features(t *testing.T) {
	t.Run("Should report defaults", func(t *testing.T) {
		cfg := New()
		assert.True(t, cfg.OpenGraphEnabled())
		assert.True(t, cfg.TwitterEnabled())
		assert.True(t, cfg.StructuredDataEnabled())
		assert.False(t, cfg.SitemapEnabled())
		assert.False(t, cfg.RobotsEnabled())
		assert.False(t, cfg.ImagesEnabled())
	})

	t.Run("Should only accept the literal true", func(t *testing.T) {
		cfg := New()
		cfg.Sitemap.Set("enabled", "true")
		cfg.Robots.Set("enabled", 1)
		assert.False(t, cfg.SitemapEnabled())
		assert.False(t, cfg.RobotsEnabled())
		cfg.Sitemap.Set("enabled", true)
		assert.True(t, cfg.SitemapEnabled())
	})

	t.Run("Should distinguish unknown features from disabled ones", func(t *testing.T) {
		cfg := New()
		assert.Equal(t, FeatureEnabled, cfg.FeatureStatus(FeatureOpenGraph))
		assert.Equal(t, FeatureDisabled, cfg.FeatureStatus(FeatureSitemap))
		assert.Equal(t, FeatureUnknown, cfg.FeatureStatus("analytics"))
		assert.False(t, cfg.Enabled("analytics"))
		assert.True(t, cfg.Enabled(FeatureTwitter))
	})
}

func TestConfig_Section(t *testing.T) {
	cfg := New()
	for _, name := range SectionNames() {
		section, ok := cfg.Section(name)
		assert.True(t, ok, name)
		assert.NotNil(t, section, name)
	}
	_, ok := cfg.Section("analytics")
	assert.False(t, ok)
}
