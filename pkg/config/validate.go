package config

import (
	"errors"
	"slices"

	"github.com/alessiobussolari/better-seo/engine/core"
)

const (
	maxDefaultTitleLength       = 60
	maxDefaultDescriptionLength = 160
)

// Validate runs every configuration check and reports all failures at once as
// a *core.ValidationError. It returns nil when the configuration is valid.
func (c *Config) Validate() error {
	var errs []error
	if len(c.AvailableLocales) == 0 {
		errs = append(errs, errors.New("available_locales must be a non-empty array"))
	}
	if !slices.Contains(c.AvailableLocales, c.DefaultLocale) {
		errs = append(errs, errors.New("default_locale must be included in available_locales"))
	}
	if core.Truthy(c.Sitemap.Get("enabled")) && !core.Truthy(c.Sitemap.Get("host")) {
		errs = append(errs, errors.New("sitemap.host is required when sitemap is enabled"))
	}
	if n, ok := core.RuneLength(c.MetaTags.Get("default_title")); ok && n > maxDefaultTitleLength {
		errs = append(errs, errors.New("meta_tags.default_title should be max 60 characters"))
	}
	if n, ok := core.RuneLength(c.MetaTags.Get("default_description")); ok && n > maxDefaultDescriptionLength {
		errs = append(errs, errors.New("meta_tags.default_description should be max 160 characters"))
	}
	return core.NewValidationError(errs...)
}
