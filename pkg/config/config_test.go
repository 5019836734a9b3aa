package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bifrostdb/bifrost/pkg/codec"
	"github.com/bifrostdb/bifrost/pkg/registry"
)

func TestConfig_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bifrost.yaml")

	cfg := DefaultConfig()
	cfg.FixedStrings.Method = "decode"
	cfg.FixedStrings.OnInvalid = "placeholder"
	cfg.UInt64.Mode = "signed"

	require.NoError(t, SaveConfig(cfg, configPath))

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("fixed_strings: ["), 0600))

	_, err := LoadConfig(configPath)
	assert.Error(t, err)
}

func TestConfig_Apply(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FixedStrings.Method = "hex"
	cfg.UInt64.Mode = "signed"

	pol := codec.NewPolicy()
	require.NoError(t, cfg.Apply(pol))

	// The applied policy governs decoding through a registry.
	reg := registry.New(pol)
	c, err := reg.Get("UInt64")
	require.NoError(t, err)
	v, _, err := c.Decode([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), v)

	fs, err := reg.Get("FixedString(2)")
	require.NoError(t, err)
	hexed, _, err := fs.Decode([]byte{0xAB, 0xCD}, 0)
	require.NoError(t, err)
	assert.Equal(t, "abcd", hexed)
}

func TestConfig_ApplyErrors(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad method", func(c *Config) { c.FixedStrings.Method = "zip" }},
		{"bad fallback", func(c *Config) { c.FixedStrings.OnInvalid = "explode" }},
		{"bad mode", func(c *Config) { c.UInt64.Mode = "sometimes" }},
		{"bad encoding", func(c *Config) { c.FixedStrings.Encoding = "no-such-charset" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Apply(codec.NewPolicy()))
		})
	}
}
