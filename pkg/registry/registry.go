package registry

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Option configures a Registry.
type Option func(*viper.Viper)

// WithEnvPrefix binds environment variables with the given prefix.
// The key "session.cookie" maps to PREFIX_SESSION_COOKIE.
func WithEnvPrefix(prefix string) Option {
	return func(v *viper.Viper) {
		v.SetEnvPrefix(prefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}
}

// WithDefaults registers fallback values used when a key is set nowhere else.
func WithDefaults(defaults map[string]any) Option {
	return func(v *viper.Viper) {
		for k, val := range defaults {
			v.SetDefault(k, val)
		}
	}
}

// Registry is a dotted-key configuration store safe for concurrent use.
type Registry struct {
	mu sync.RWMutex
	v  *viper.Viper
}

// New creates a registry seeded with data.
func New(data map[string]any, opts ...Option) *Registry {
	v := viper.New()
	for _, opt := range opts {
		opt(v)
	}
	if len(data) > 0 {
		// MergeConfigMap only fails on invalid input types, which a map cannot be.
		_ = v.MergeConfigMap(data)
	}
	return &Registry{v: v}
}

// Load reads a configuration file. The format is taken from the file
// extension (yaml, yml, json, toml).
func Load(path string, opts ...Option) (*Registry, error) {
	v := viper.New()
	for _, opt := range opts {
		opt(v)
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, errors.Join(ErrConfigInvalid, err)
	}

	return &Registry{v: v}, nil
}

// Get returns the value at key, or def when the key is not set.
func (r *Registry) Get(key string, def any) any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.v.IsSet(key) {
		return def
	}
	return r.v.Get(key)
}

// Set stores value at key and returns the previous value, or nil.
func (r *Registry) Set(key string, value any) any {
	r.mu.Lock()
	defer r.mu.Unlock()

	var prev any
	if r.v.IsSet(key) {
		prev = r.v.Get(key)
	}
	r.v.Set(key, value)
	return prev
}

// Has reports whether key is set.
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.v.IsSet(key)
}

func (r *Registry) String(key, def string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.v.IsSet(key) {
		return def
	}
	return r.v.GetString(key)
}

func (r *Registry) Bool(key string, def bool) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.v.IsSet(key) {
		return def
	}
	return r.v.GetBool(key)
}

func (r *Registry) Int(key string, def int) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.v.IsSet(key) {
		return def
	}
	return r.v.GetInt(key)
}

func (r *Registry) Duration(key string, def time.Duration) time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.v.IsSet(key) {
		return def
	}
	return r.v.GetDuration(key)
}

// Merge deep-merges data into the registry.
func (r *Registry) Merge(data map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.v.MergeConfigMap(data)
}

// Unmarshal decodes the subtree at key into out. An empty key decodes
// the whole registry.
func (r *Registry) Unmarshal(key string, out any) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if key == "" {
		return r.v.Unmarshal(out)
	}
	return r.v.UnmarshalKey(key, out)
}

// All returns every setting as a nested map.
func (r *Registry) All() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.v.AllSettings()
}

// Dump writes every setting to w as YAML.
func (r *Registry) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.All()); err != nil {
		return err
	}
	return enc.Close()
}

// Clone returns an independent registry holding a snapshot of the current
// settings.
func (r *Registry) Clone() *Registry {
	return New(r.All())
}
