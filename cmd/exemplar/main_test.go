package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/conceptforge/exemplar/config"
)

// newTestContext builds a cli.Context with the given string flags set.
func newTestContext(t *testing.T, values map[string]string) *cli.Context {
	t.Helper()

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, name := range []string{"config", "corpus", "cache", "cache-backend", "embedding-host", "embedding-model"} {
		set.String(name, "", "")
	}
	for name, value := range values {
		require.NoError(t, set.Set(name, value))
	}
	return cli.NewContext(nil, set, nil)
}

func TestLoadConfig(t *testing.T) {
	t.Run("flags alone configure the engine", func(t *testing.T) {
		cfg, err := loadConfig(newTestContext(t, map[string]string{
			"corpus":          "corpus.json",
			"embedding-model": "custom-model",
		}))
		require.NoError(t, err)
		assert.Equal(t, "corpus.json", cfg.Corpus.Path)
		assert.Equal(t, "custom-model", cfg.Embedder.Model)
		assert.Equal(t, config.BackendFile, cfg.Cache.Backend)
	})

	t.Run("flags override the config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[corpus]
path = "from-file.json"

[embedder]
model = "file-model"
`), 0644))

		cfg, err := loadConfig(newTestContext(t, map[string]string{
			"config":          path,
			"embedding-model": "flag-model",
		}))
		require.NoError(t, err)
		assert.Equal(t, "from-file.json", cfg.Corpus.Path)
		assert.Equal(t, "flag-model", cfg.Embedder.Model)
	})

	t.Run("missing corpus fails validation", func(t *testing.T) {
		_, err := loadConfig(newTestContext(t, nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "corpus")
	})

	t.Run("unknown cache backend rejected", func(t *testing.T) {
		_, err := loadConfig(newTestContext(t, map[string]string{
			"corpus":        "corpus.json",
			"cache-backend": "redis",
		}))
		assert.Error(t, err)
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("rejects unknown level", func(t *testing.T) {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", "loud", "")
		err := setupLogger(cli.NewContext(nil, set, nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log level")
	})

	t.Run("accepts standard levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			set := flag.NewFlagSet("test", flag.ContinueOnError)
			set.String("log-level", level, "")
			assert.NoError(t, setupLogger(cli.NewContext(nil, set, nil)))
		}
	})
}
