package config

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"time"

	"github.com/alessiobussolari/better-seo/pkg/logger"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Metadata records where each flattened key of the last Read came from.
type Metadata struct {
	Sources  map[string]SourceType `json:"sources"`
	LoadedAt time.Time             `json:"loaded_at"`
}

// Loader layers configuration sources on top of the defaults. Later sources
// win; nested maps are merged key by key.
type Loader struct {
	koanf    *koanf.Koanf
	metadata Metadata
}

// NewLoader returns a Loader with no data loaded.
func NewLoader() *Loader {
	return &Loader{
		koanf:    koanf.New("."),
		metadata: Metadata{Sources: make(map[string]SourceType)},
	}
}

// Read loads the defaults followed by every source in order and returns the
// merged tree. nil sources are skipped.
func (l *Loader) Read(ctx context.Context, sources ...Source) (map[string]any, error) {
	log := logger.FromContext(ctx)
	l.reset()
	if err := l.loadDefaults(); err != nil {
		return nil, err
	}
	for _, source := range sources {
		if source == nil {
			continue
		}
		if err := l.loadSource(source); err != nil {
			return nil, err
		}
	}
	log.Debug("configuration sources loaded", "sources", len(sources), "keys", len(l.koanf.Keys()))
	return l.koanf.Raw(), nil
}

// Load reads the sources, applies the merged tree to a fresh Config and
// validates it. The Config is returned even when validation fails.
func (l *Loader) Load(ctx context.Context, sources ...Source) (*Config, error) {
	tree, err := l.Read(ctx, sources...)
	if err != nil {
		return nil, err
	}
	cfg := New()
	if err := cfg.LoadFromMap(tree); err != nil {
		return nil, fmt.Errorf("failed to apply configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.FromContext(ctx).Debug("configuration is invalid", "error", err)
		return cfg, err
	}
	return cfg, nil
}

// Metadata returns a copy of the source tracking of the last Read.
func (l *Loader) Metadata() Metadata {
	return Metadata{
		Sources:  maps.Clone(l.metadata.Sources),
		LoadedAt: l.metadata.LoadedAt,
	}
}

// SourceOf returns which source last set the flattened key, such as
// "sitemap.host".
func (l *Loader) SourceOf(key string) (SourceType, bool) {
	source, ok := l.metadata.Sources[key]
	return source, ok
}

func (l *Loader) reset() {
	l.koanf = koanf.New(".")
	l.metadata = Metadata{
		Sources:  make(map[string]SourceType),
		LoadedAt: time.Now(),
	}
}

// loadDefaults loads the scalar defaults from a default Config and the section
// defaults from the default tree.
func (l *Loader) loadDefaults() error {
	if err := l.koanf.Load(structs.Provider(New(), "koanf"), nil); err != nil {
		return fmt.Errorf("failed to load scalar defaults: %w", err)
	}
	sections := Defaults()
	for _, name := range scalarNames {
		delete(sections, name)
	}
	if err := l.koanf.Load(rawMap(sections), nil); err != nil {
		return fmt.Errorf("failed to load section defaults: %w", err)
	}
	for _, key := range l.koanf.Keys() {
		l.metadata.Sources[key] = SourceDefault
	}
	return nil
}

func (l *Loader) loadSource(source Source) error {
	data, err := source.Load()
	if err != nil {
		return fmt.Errorf("failed to load from source %s: %w", source.Type(), err)
	}
	if len(data) == 0 {
		return nil
	}
	before := l.koanf.All()
	if err := l.koanf.Load(rawMap(data), nil); err != nil {
		return fmt.Errorf("failed to apply source %s: %w", source.Type(), err)
	}
	for key, after := range l.koanf.All() {
		prev, existed := before[key]
		if !existed || !reflect.DeepEqual(prev, after) {
			l.metadata.Sources[key] = source.Type()
		}
	}
	return nil
}

// Read layers sources over the defaults with a throwaway Loader.
func Read(ctx context.Context, sources ...Source) (map[string]any, error) {
	return NewLoader().Read(ctx, sources...)
}

// Load layers sources over the defaults and returns the validated Config.
func Load(ctx context.Context, sources ...Source) (*Config, error) {
	return NewLoader().Load(ctx, sources...)
}

// rawMap is a koanf.Provider adapter for map[string]any data.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("ReadBytes not implemented")
}
