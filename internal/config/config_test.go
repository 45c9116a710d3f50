package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.BoolP("debug", "D", false, "")
	fs.String("device", "", "")
	fs.String("build", "", "")
	fs.String("profile", "", "")
	fs.StringArray("marker", nil, "")
	fs.Int("min-offsets", 2, "")
	fs.String("matcher", "substring", "")
	fs.String("log-format", "text", "")
	return fs
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(nil, "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, 2, cfg.Resolver.MinOffsets)
	assert.Equal(t, "substring", cfg.Resolver.Matcher)
	assert.Empty(t, cfg.Resolver.Markers)
	assert.Empty(t, cfg.Platform.Device)
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	path := writeFile(t, "kparams.yaml", `
logging:
  level: debug
  format: json
platform:
  device: "iPhone10,4"
  build: "16B92"
resolver:
  markers: ["iPhone10,4", "iPhone10,5"]
`)

	cfg, err := LoadConfig(nil, path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "iPhone10,4", cfg.Platform.Device)
	assert.Equal(t, "16B92", cfg.Platform.Build)
	assert.Equal(t, []string{"iPhone10,4", "iPhone10,5"}, cfg.Resolver.Markers)
	assert.Equal(t, 2, cfg.Resolver.MinOffsets)
}

func TestLoadConfig_JSONAndTOML(t *testing.T) {
	jsonPath := writeFile(t, "kparams.json", `{"resolver": {"min_offsets": 3}}`)
	cfg, err := LoadConfig(nil, jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Resolver.MinOffsets)

	tomlPath := writeFile(t, "kparams.toml", "[platform]\ndevice = \"iPhone11,8\"\n")
	cfg, err = LoadConfig(nil, tomlPath)
	require.NoError(t, err)
	assert.Equal(t, "iPhone11,8", cfg.Platform.Device)
}

func TestLoadConfig_UnknownExtension(t *testing.T) {
	path := writeFile(t, "kparams.ini", "x=1")
	_, err := LoadConfig(nil, path)
	assert.Error(t, err)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("KPARAMS_PLATFORM_DEVICE", "iPhone11,6")
	t.Setenv("KPARAMS_RESOLVER_MIN_OFFSETS", "4")
	t.Setenv("KPARAMS_RESOLVER_MARKERS", "iPhone10,4 iPhone10,5;iPad8,")

	cfg, err := LoadConfig(nil, "")
	require.NoError(t, err)

	assert.Equal(t, "iPhone11,6", cfg.Platform.Device)
	assert.Equal(t, 4, cfg.Resolver.MinOffsets)
	assert.Equal(t, []string{"iPhone10,4", "iPhone10,5", "iPad8,"}, cfg.Resolver.Markers)
}

func TestLoadConfig_FlagsOverrideEnvAndFile(t *testing.T) {
	path := writeFile(t, "kparams.yaml", "platform:\n  device: from-file\n  build: 16B92\n")
	t.Setenv("KPARAMS_PLATFORM_DEVICE", "from-env")

	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--config", path, "--device", "iPhone11,8", "-D", "--marker", "iPad8,", "--marker", "iPhone10,4"}))

	cfg, err := LoadFromFlags(fs)
	require.NoError(t, err)

	assert.Equal(t, "iPhone11,8", cfg.Platform.Device)
	assert.Equal(t, "16B92", cfg.Platform.Build)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"iPad8,", "iPhone10,4"}, cfg.Resolver.Markers)
}

func TestLoadConfig_UnchangedFlagsKeepFileValues(t *testing.T) {
	path := writeFile(t, "kparams.yaml", "resolver:\n  min_offsets: 5\n")

	fs := newFlagSet()
	require.NoError(t, fs.Parse(nil))

	cfg, err := LoadConfig(fs, path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Resolver.MinOffsets)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
		{"zero min offsets", func(c *Config) { c.Resolver.MinOffsets = 0 }},
		{"bad matcher", func(c *Config) { c.Resolver.Matcher = "regex" }},
		{"empty marker", func(c *Config) { c.Resolver.Markers = []string{" "} }},
	}

	require.NoError(t, Default().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestEnvKeyValue(t *testing.T) {
	key, val := envKeyValue("KPARAMS_LOGGING_LEVEL", "debug")
	assert.Equal(t, "logging.level", key)
	assert.Equal(t, "debug", val)

	key, _ = envKeyValue("KPARAMS_RESOLVER_MIN_OFFSETS", "3")
	assert.Equal(t, "resolver.min_offsets", key)
}
