package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_parseFile_SourcesAndFormats(t *testing.T) {
	t.Run("loads JSON from -config", func(t *testing.T) {
		path := writeTemp(t, "cfg.json", `{
			"server_url": "https://www.example",
			"request_timeout": "20s",
			"encrypt_storage": false,
			"static_address": "1 Main st"
		}`)

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseFile(cfg, []string{"-config", path}))

		assert.Equal(t, "https://www.example", cfg.ServerURL)
		assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
		assert.False(t, cfg.EncryptStorage)
		assert.Equal(t, "1 Main st", cfg.StaticAddress)
		assert.Equal(t, "./data", cfg.DataDir, "missing keys keep defaults")
	})

	t.Run("loads YAML from -c", func(t *testing.T) {
		path := writeTemp(t, "cfg.yml", "data_dir: /srv/gd\nrequest_timeout: 2000000000\n")

		cfg := &Config{}
		require.NoError(t, parseFile(cfg, []string{"-c", path}))
		assert.Equal(t, "/srv/gd", cfg.DataDir)
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	})

	t.Run("no flags → no changes", func(t *testing.T) {
		cfg := &Config{ServerURL: "http://defaults:1234", RequestTimeout: 42 * time.Second}
		require.NoError(t, parseFile(cfg, nil))

		assert.Equal(t, "http://defaults:1234", cfg.ServerURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := writeTemp(t, "bad.json", `{ this is not valid json`)
		require.Error(t, parseFile(&Config{}, []string{"-config", bad}))
	})

	t.Run("missing file → error", func(t *testing.T) {
		require.Error(t, parseFile(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
	})
}
