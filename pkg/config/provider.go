package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"strconv"
	"strings"
	"sync"

	"github.com/alessiobussolari/better-seo/engine/attrmap"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Source is one layer of configuration data.
type Source interface {
	// Load reads configuration from the source.
	Load() (map[string]any, error)
	// Watch monitors the source for changes.
	Watch(ctx context.Context, callback func()) error
	// Type returns the source type identifier.
	Type() SourceType
	// Close releases any resources held by the source.
	Close() error
}

// SourceType identifies the type of configuration source.
type SourceType string

const (
	SourceDefault SourceType = "default"
	SourceYAML    SourceType = "yaml"
	SourceEnv     SourceType = "env"
	SourceMap     SourceType = "map"
	SourceDotEnv  SourceType = "dotenv"
)

// EnvPrefix is the prefix NewEnvProvider uses when given an empty prefix.
const EnvPrefix = "BETTERSEO_"

// defaultProvider serves the built-in default tree.
type defaultProvider struct{}

// NewDefaultProvider returns a source holding the default configuration tree.
func NewDefaultProvider() Source {
	return defaultProvider{}
}

func (defaultProvider) Load() (map[string]any, error) {
	return Defaults(), nil
}

func (defaultProvider) Watch(_ context.Context, _ func()) error { return nil }

func (defaultProvider) Type() SourceType { return SourceDefault }

func (defaultProvider) Close() error { return nil }

// mapProvider serves programmatic data, such as CLI overrides.
type mapProvider struct {
	data map[string]any
}

// NewMapProvider returns a source serving a copy of data.
func NewMapProvider(data map[string]any) Source {
	return &mapProvider{data: maps.Clone(data)}
}

func (p *mapProvider) Load() (map[string]any, error) {
	if p.data == nil {
		return make(map[string]any), nil
	}
	return attrmap.New(p.data).ToMap(), nil
}

func (p *mapProvider) Watch(_ context.Context, _ func()) error { return nil }

func (p *mapProvider) Type() SourceType { return SourceMap }

func (p *mapProvider) Close() error { return nil }

// envProvider reads PREFIX_* environment variables through koanf's env provider.
type envProvider struct {
	prefix string
}

// NewEnvProvider returns a source reading environment variables that start with
// prefix. PREFIX_SITE_NAME maps to site_name and PREFIX_SITEMAP_HOST maps to
// sitemap.host; a double underscore separates deeper levels, so
// PREFIX_OPEN_GRAPH_DEFAULT_IMAGE__URL maps to open_graph.default_image.url.
func NewEnvProvider(prefix string) Source {
	return &envProvider{prefix: normalizePrefix(prefix)}
}

func normalizePrefix(prefix string) string {
	if prefix == "" {
		prefix = EnvPrefix
	}
	if !strings.HasSuffix(prefix, "_") {
		prefix += "_"
	}
	return prefix
}

func (e *envProvider) Load() (map[string]any, error) {
	k := koanf.New(".")
	provider := env.Provider(".", env.Opt{
		Prefix: e.prefix,
		TransformFunc: func(key, value string) (string, any) {
			path := transformEnvKey(strings.TrimPrefix(key, e.prefix))
			if path == "" {
				return "", nil
			}
			return path, coerceEnvValue(value)
		},
	})
	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	return k.Raw(), nil
}

func (e *envProvider) Watch(_ context.Context, _ func()) error { return nil }

func (e *envProvider) Type() SourceType { return SourceEnv }

func (e *envProvider) Close() error { return nil }

// transformEnvKey converts an environment variable name without its prefix to a
// configuration path. It returns "" for names that match no setting.
func transformEnvKey(name string) string {
	name = strings.ToLower(name)
	for _, scalar := range scalarNames {
		if name == scalar {
			return name
		}
	}
	section := ""
	for _, candidate := range sectionNames {
		if strings.HasPrefix(name, candidate+"_") && len(candidate) > len(section) {
			section = candidate
		}
	}
	if section == "" {
		return ""
	}
	segments := make([]string, 0, 4)
	for _, seg := range strings.Split(strings.TrimPrefix(name, section+"_"), "__") {
		seg = strings.Trim(seg, "_")
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return ""
	}
	return section + "." + strings.Join(segments, ".")
}

// coerceEnvValue turns "true"/"false" into booleans and numeric strings into
// numbers. Everything else stays a string.
func coerceEnvValue(value string) any {
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}
	if strings.Contains(value, ".") {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return value
}

// fileSource holds what the file-backed sources share: the filesystem, the
// path and the lazily created watcher.
type fileSource struct {
	fs        afero.Fs
	path      string
	kind      string
	watcher   *Watcher
	watcherMu sync.Mutex
	closeOnce sync.Once
}

// read returns the file content. A missing file reads as nil without error.
func (f *fileSource) read() ([]byte, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s file: %w", f.kind, err)
	}
	return data, nil
}

// Watch calls callback whenever the file is written or recreated. Watching
// needs the file to live on the OS filesystem.
func (f *fileSource) Watch(ctx context.Context, callback func()) error {
	f.watcherMu.Lock()
	defer f.watcherMu.Unlock()
	if f.watcher == nil {
		watcher, err := NewWatcher(ctx)
		if err != nil {
			return err
		}
		if err := watcher.Watch(ctx, f.path); err != nil {
			_ = watcher.Close()
			return fmt.Errorf("failed to watch %s file: %w", f.kind, err)
		}
		f.watcher = watcher
	}
	f.watcher.OnChange(callback)
	return nil
}

// Close stops any active watch.
func (f *fileSource) Close() error {
	var closeErr error
	f.closeOnce.Do(func() {
		f.watcherMu.Lock()
		defer f.watcherMu.Unlock()
		if f.watcher != nil {
			closeErr = f.watcher.Close()
			f.watcher = nil
		}
	})
	return closeErr
}

// yamlProvider implements Source interface for YAML files.
type yamlProvider struct {
	fileSource
}

// NewYAMLProvider creates a new YAML file configuration source. A missing file
// loads as an empty tree.
func NewYAMLProvider(path string) Source {
	return NewYAMLProviderFs(afero.NewOsFs(), path)
}

// NewYAMLProviderFs is NewYAMLProvider reading from fsys.
func NewYAMLProviderFs(fsys afero.Fs, path string) Source {
	return &yamlProvider{fileSource{fs: fsys, path: path, kind: "YAML"}}
}

// Load reads configuration from a YAML file.
func (y *yamlProvider) Load() (map[string]any, error) {
	data, err := y.read()
	if err != nil {
		return nil, err
	}
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML file: %w", err)
	}
	return filterNilValues(config), nil
}

// filterNilValues recursively removes nil values from a map so that an empty
// YAML key never overrides a lower layer.
func filterNilValues(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		if nested, ok := attrmap.ToStringMap(v); ok {
			filtered := filterNilValues(nested)
			if len(filtered) > 0 || len(nested) == 0 {
				result[k] = filtered
			}
			continue
		}
		result[k] = v
	}
	return result
}

func (y *yamlProvider) Type() SourceType {
	return SourceYAML
}

// dotenvProvider reads PREFIX_* assignments from a .env file with the same
// naming rules as the environment provider.
type dotenvProvider struct {
	fileSource
	prefix string
}

// NewDotEnvProvider creates a source for a .env file. A missing file loads as
// an empty tree. Layer it below NewEnvProvider so the real environment wins.
func NewDotEnvProvider(path, prefix string) Source {
	return NewDotEnvProviderFs(afero.NewOsFs(), path, prefix)
}

// NewDotEnvProviderFs is NewDotEnvProvider reading from fsys.
func NewDotEnvProviderFs(fsys afero.Fs, path, prefix string) Source {
	return &dotenvProvider{
		fileSource: fileSource{fs: fsys, path: path, kind: "env"},
		prefix:     normalizePrefix(prefix),
	}
}

func (d *dotenvProvider) Load() (map[string]any, error) {
	data, err := d.read()
	if err != nil || data == nil {
		return make(map[string]any), err
	}
	vars, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env file: %w", err)
	}
	tree := attrmap.New(nil)
	for name, value := range vars {
		if !strings.HasPrefix(name, d.prefix) {
			continue
		}
		path := transformEnvKey(strings.TrimPrefix(name, d.prefix))
		if path == "" {
			continue
		}
		if err := tree.SetPath(path, coerceEnvValue(value)); err != nil {
			return nil, fmt.Errorf("failed to apply %s from env file: %w", name, err)
		}
	}
	return tree.ToMap(), nil
}

func (d *dotenvProvider) Type() SourceType {
	return SourceDotEnv
}
