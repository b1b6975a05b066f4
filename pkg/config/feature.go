package config

// FeatureState is the answer to a feature query by name.
type FeatureState string

const (
	FeatureEnabled  FeatureState = "enabled"
	FeatureDisabled FeatureState = "disabled"
	// FeatureUnknown means the name does not match any feature section.
	FeatureUnknown FeatureState = "unknown"
)

// Feature names accepted by FeatureStatus and Enabled.
const (
	FeatureSitemap        = "sitemap"
	FeatureRobots         = "robots"
	FeatureOpenGraph      = "open_graph"
	FeatureTwitter        = "twitter"
	FeatureImages         = "images"
	FeatureStructuredData = "structured_data"
)

var featureNames = []string{
	FeatureSitemap,
	FeatureRobots,
	FeatureOpenGraph,
	FeatureTwitter,
	FeatureImages,
	FeatureStructuredData,
}

// FeatureNames returns every feature name FeatureStatus recognizes.
func FeatureNames() []string {
	out := make([]string, len(featureNames))
	copy(out, featureNames)
	return out
}

func (c *Config) SitemapEnabled() bool        { return c.sectionEnabled(SectionSitemap) }
func (c *Config) RobotsEnabled() bool         { return c.sectionEnabled(SectionRobots) }
func (c *Config) OpenGraphEnabled() bool      { return c.sectionEnabled(SectionOpenGraph) }
func (c *Config) TwitterEnabled() bool        { return c.sectionEnabled(SectionTwitter) }
func (c *Config) ImagesEnabled() bool         { return c.sectionEnabled(SectionImages) }
func (c *Config) StructuredDataEnabled() bool { return c.sectionEnabled(SectionStructuredData) }

// sectionEnabled is true only for the literal boolean true; "true", 1 and other
// truthy values do not count.
func (c *Config) sectionEnabled(name string) bool {
	section, ok := c.Section(name)
	if !ok {
		return false
	}
	enabled, ok := section.Get("enabled").(bool)
	return ok && enabled
}

// FeatureStatus resolves a feature by name. Unknown names report FeatureUnknown
// instead of silently reading as disabled.
func (c *Config) FeatureStatus(name string) FeatureState {
	var enabled bool
	switch name {
	case FeatureSitemap:
		enabled = c.SitemapEnabled()
	case FeatureRobots:
		enabled = c.RobotsEnabled()
	case FeatureOpenGraph:
		enabled = c.OpenGraphEnabled()
	case FeatureTwitter:
		enabled = c.TwitterEnabled()
	case FeatureImages:
		enabled = c.ImagesEnabled()
	case FeatureStructuredData:
		enabled = c.StructuredDataEnabled()
	default:
		return FeatureUnknown
	}
	if enabled {
		return FeatureEnabled
	}
	return FeatureDisabled
}

// Enabled reports whether the named feature is enabled. Unknown names are false;
// use FeatureStatus to tell them apart from disabled features.
func (c *Config) Enabled(name string) bool {
	return c.FeatureStatus(name) == FeatureEnabled
}
