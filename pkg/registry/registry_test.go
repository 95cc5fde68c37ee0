package registry_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/appshell/pkg/registry"
)

func TestRegistry_GetSet(t *testing.T) {
	t.Parallel()

	reg := registry.New(map[string]any{
		"foo": "bar",
		"uri": map[string]any{
			"base": map[string]any{"full": "http://example.com/"},
		},
	})

	t.Run("nested key", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "http://example.com/", reg.Get("uri.base.full", nil))
	})

	t.Run("default for missing key", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "fallback", reg.Get("missing", "fallback"))
		assert.False(t, reg.Has("missing"))
	})
}

func TestRegistry_SetReturnsPrevious(t *testing.T) {
	t.Parallel()

	reg := registry.New(map[string]any{"foo": "bar"})

	assert.Equal(t, "bar", reg.Set("foo", "car"))
	assert.Equal(t, "car", reg.Get("foo", nil))
	assert.Nil(t, reg.Set("new.key", 42))
	assert.Equal(t, 42, reg.Int("new.key", 0))
}

func TestRegistry_TypedGetters(t *testing.T) {
	t.Parallel()

	reg := registry.New(map[string]any{
		"gzip":    true,
		"timeout": "5s",
		"port":    "8080",
	})

	assert.True(t, reg.Bool("gzip", false))
	assert.True(t, reg.Bool("missing", true))
	assert.Equal(t, 5*time.Second, reg.Duration("timeout", 0))
	assert.Equal(t, 8080, reg.Int("port", 0))
	assert.Equal(t, "def", reg.String("missing", "def"))
}

func TestRegistry_Merge(t *testing.T) {
	t.Parallel()

	reg := registry.New(map[string]any{
		"session": map[string]any{"cookie": "sid", "ttl": "1h"},
	})
	require.NoError(t, reg.Merge(map[string]any{
		"session": map[string]any{"cookie": "appsid"},
	}))

	assert.Equal(t, "appsid", reg.String("session.cookie", ""))
	assert.Equal(t, "1h", reg.String("session.ttl", ""))
}

func TestRegistry_Unmarshal(t *testing.T) {
	t.Parallel()

	reg := registry.New(map[string]any{
		"server": map[string]any{"address": ":9000", "shutdown_timeout": "3s"},
	})

	var cfg struct {
		Address         string        `mapstructure:"address"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	}
	require.NoError(t, reg.Unmarshal("server", &cfg))
	assert.Equal(t, ":9000", cfg.Address)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("yaml file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("gzip: true\nsite_uri: https://example.com/\n"), 0o600))

		reg, err := registry.Load(path)
		require.NoError(t, err)
		assert.True(t, reg.Bool("gzip", false))
		assert.Equal(t, "https://example.com/", reg.String("site_uri", ""))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := registry.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, registry.ErrConfigNotFound)
	})

	t.Run("invalid file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		_, err := registry.Load(path)
		require.ErrorIs(t, err, registry.ErrConfigInvalid)
	})
}

func TestRegistry_EnvPrefix(t *testing.T) {
	t.Setenv("APPSHELL_SESSION_COOKIE", "from-env")

	reg := registry.New(nil, registry.WithEnvPrefix("APPSHELL"))

	assert.Equal(t, "from-env", reg.String("session.cookie", ""))
}

func TestRegistry_Dump(t *testing.T) {
	t.Parallel()

	reg := registry.New(map[string]any{"product": "AppShell"})

	var buf bytes.Buffer
	require.NoError(t, reg.Dump(&buf))
	assert.Equal(t, "product: AppShell\n", buf.String())
}

func TestRegistry_Clone(t *testing.T) {
	t.Parallel()

	reg := registry.New(map[string]any{"site": map[string]any{"name": "demo"}})
	clone := reg.Clone()

	clone.Set("site.name", "changed")
	clone.Set("uri.request", "http://example.com/")

	assert.Equal(t, "demo", reg.String("site.name", ""))
	assert.False(t, reg.Has("uri.request"))
	assert.Equal(t, "changed", clone.String("site.name", ""))
}
