package config

import (
	"fmt"
	"slices"

	"github.com/alessiobussolari/better-seo/engine/attrmap"
	"github.com/go-viper/mapstructure/v2"
)

// Config is the root SEO configuration: three scalar settings plus eight
// schema-less sections, each pre-seeded with defaults.
//
// A Config is not safe for concurrent mutation. The process-wide instance is
// expected to be configured once at startup, before readers start.
type Config struct {
	SiteName         string   `koanf:"site_name"         mapstructure:"site_name"         json:"site_name"`
	DefaultLocale    string   `koanf:"default_locale"    mapstructure:"default_locale"    json:"default_locale"`
	AvailableLocales []string `koanf:"available_locales" mapstructure:"available_locales" json:"available_locales"`

	MetaTags       *attrmap.Map `koanf:"-" mapstructure:"-" json:"-"`
	OpenGraph      *attrmap.Map `koanf:"-" mapstructure:"-" json:"-"`
	Twitter        *attrmap.Map `koanf:"-" mapstructure:"-" json:"-"`
	StructuredData *attrmap.Map `koanf:"-" mapstructure:"-" json:"-"`
	Sitemap        *attrmap.Map `koanf:"-" mapstructure:"-" json:"-"`
	Robots         *attrmap.Map `koanf:"-" mapstructure:"-" json:"-"`
	Images         *attrmap.Map `koanf:"-" mapstructure:"-" json:"-"`
	I18n           *attrmap.Map `koanf:"-" mapstructure:"-" json:"-"`
}

// Section names in the order they appear in the configuration tree.
const (
	SectionMetaTags       = "meta_tags"
	SectionOpenGraph      = "open_graph"
	SectionTwitter        = "twitter"
	SectionStructuredData = "structured_data"
	SectionSitemap        = "sitemap"
	SectionRobots         = "robots"
	SectionImages         = "images"
	SectionI18n           = "i18n"
)

var sectionNames = []string{
	SectionMetaTags,
	SectionOpenGraph,
	SectionTwitter,
	SectionStructuredData,
	SectionSitemap,
	SectionRobots,
	SectionImages,
	SectionI18n,
}

var scalarNames = []string{"site_name", "default_locale", "available_locales"}

// SectionNames returns the eight section keys in tree order.
func SectionNames() []string {
	return slices.Clone(sectionNames)
}

// New returns a Config holding a private deep copy of the default schema.
func New() *Config {
	defaults := Defaults()
	cfg := &Config{}
	if err := cfg.applyScalars(defaults); err != nil {
		panic(fmt.Sprintf("config: invalid default schema: %v", err))
	}
	for _, name := range sectionNames {
		section, _ := attrmap.ToStringMap(defaults[name])
		*cfg.sectionPtr(name) = attrmap.New(section)
	}
	return cfg
}

// LoadFromMap overwrites every scalar present in data and deep-merges every
// present section into the matching map. nil section values are ignored and
// unknown keys are skipped. A section value that is not a map is an error;
// changes applied before the error are kept.
func (c *Config) LoadFromMap(data map[string]any) error {
	if err := c.applyScalars(data); err != nil {
		return err
	}
	for _, name := range sectionNames {
		raw, ok := data[name]
		if !ok || raw == nil {
			continue
		}
		target := c.sectionPtr(name)
		if *target == nil {
			*target = attrmap.New(nil)
		}
		if m, ok := raw.(*attrmap.Map); ok {
			(*target).MergeMap(m)
			continue
		}
		plain, ok := attrmap.ToStringMap(raw)
		if !ok {
			return fmt.Errorf("section %s must be a map, got %T", name, raw)
		}
		(*target).Merge(plain)
	}
	return nil
}

type scalarFields struct {
	SiteName         string   `mapstructure:"site_name"`
	DefaultLocale    string   `mapstructure:"default_locale"`
	AvailableLocales []string `mapstructure:"available_locales"`
}

func (c *Config) applyScalars(data map[string]any) error {
	present := make(map[string]any, len(scalarNames))
	for _, name := range scalarNames {
		if v, ok := data[name]; ok {
			present[name] = v
		}
	}
	if len(present) == 0 {
		return nil
	}
	var decoded scalarFields
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &decoded,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(present); err != nil {
		return fmt.Errorf("failed to decode scalar settings: %w", err)
	}
	if _, ok := present["site_name"]; ok {
		c.SiteName = decoded.SiteName
	}
	if _, ok := present["default_locale"]; ok {
		c.DefaultLocale = decoded.DefaultLocale
	}
	if _, ok := present["available_locales"]; ok {
		c.AvailableLocales = decoded.AvailableLocales
	}
	return nil
}

// Section returns the named section map.
func (c *Config) Section(name string) (*attrmap.Map, bool) {
	ptr := c.sectionPtr(name)
	if ptr == nil || *ptr == nil {
		return nil, false
	}
	return *ptr, true
}

func (c *Config) sectionPtr(name string) **attrmap.Map {
	switch name {
	case SectionMetaTags:
		return &c.MetaTags
	case SectionOpenGraph:
		return &c.OpenGraph
	case SectionTwitter:
		return &c.Twitter
	case SectionStructuredData:
		return &c.StructuredData
	case SectionSitemap:
		return &c.Sitemap
	case SectionRobots:
		return &c.Robots
	case SectionImages:
		return &c.Images
	case SectionI18n:
		return &c.I18n
	default:
		return nil
	}
}

// ToMap flattens the whole configuration into plain maps, lists and scalars.
// An empty site name is reported as nil.
func (c *Config) ToMap() map[string]any {
	out := make(map[string]any, len(scalarNames)+len(sectionNames))
	if c.SiteName == "" {
		out["site_name"] = nil
	} else {
		out["site_name"] = c.SiteName
	}
	out["default_locale"] = c.DefaultLocale
	out["available_locales"] = slices.Clone(c.AvailableLocales)
	for _, name := range sectionNames {
		section, ok := c.Section(name)
		if !ok {
			out[name] = map[string]any{}
			continue
		}
		out[name] = section.ToMap()
	}
	return out
}
