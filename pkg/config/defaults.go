package config

import (
	"github.com/alessiobussolari/better-seo/engine/core"
)

var defaultSchema = map[string]any{
	"site_name":         nil,
	"default_locale":    "en",
	"available_locales": []string{"en"},
	SectionMetaTags: map[string]any{
		"default_title":       nil,
		"title_separator":     " | ",
		"append_site_name":    true,
		"default_description": nil,
		"default_keywords":    []string{},
		"default_author":      nil,
	},
	SectionOpenGraph: map[string]any{
		"enabled":        true,
		"site_name":      nil,
		"default_type":   "website",
		"default_locale": "en_US",
		"default_image": map[string]any{
			"url":    nil,
			"width":  1200,
			"height": 630,
		},
	},
	SectionTwitter: map[string]any{
		"enabled":   true,
		"site":      nil,
		"creator":   nil,
		"card_type": "summary_large_image",
	},
	SectionStructuredData: map[string]any{
		"enabled":      true,
		"organization": map[string]any{},
		"website":      map[string]any{},
	},
	SectionSitemap: map[string]any{
		"enabled":             false,
		"output_path":         "public/sitemap.xml",
		"host":                nil,
		"compress":            false,
		"ping_search_engines": false,
		"defaults": map[string]any{
			"changefreq": "weekly",
			"priority":   0.5,
		},
	},
	SectionRobots: map[string]any{
		"enabled":     false,
		"output_path": "public/robots.txt",
		"user_agents": map[string]any{
			"*": map[string]any{
				"allow":       []string{"/"},
				"disallow":    []string{},
				"crawl_delay": nil,
			},
		},
	},
	SectionImages: map[string]any{
		"enabled": false,
		"webp": map[string]any{
			"enabled": true,
			"quality": 80,
		},
		"sizes": map[string]any{
			"thumbnail": map[string]any{"width": 150, "height": 150},
			"small":     map[string]any{"width": 300},
			"medium":    map[string]any{"width": 600},
			"large":     map[string]any{"width": 1200},
			"og_image":  map[string]any{"width": 1200, "height": 630, "crop": true},
		},
	},
	SectionI18n: map[string]any{
		"load_path":   "config/locales/seo/**/*.yml",
		"auto_reload": false,
	},
}

// Defaults returns a fresh deep copy of the default configuration tree.
func Defaults() map[string]any {
	out, err := core.DeepCopy(defaultSchema)
	if err != nil {
		panic("config: failed to copy default schema: " + err.Error())
	}
	return out
}
