package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/redjax/kparams/internal/utils/path"
)

// EnvPrefix is the prefix of environment overrides, e.g. KPARAMS_PLATFORM_DEVICE.
const EnvPrefix = "KPARAMS_"

// Config is the root configuration.
type Config struct {
	Logging  LoggingConfig  `koanf:"logging"`
	Platform PlatformConfig `koanf:"platform"`
	Resolver ResolverConfig `koanf:"resolver"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Output string `koanf:"output"`
}

// PlatformConfig overrides the detected platform identity.
type PlatformConfig struct {
	Device string `koanf:"device"`
	Build  string `koanf:"build"`
}

// ResolverConfig tunes parameter resolution.
type ResolverConfig struct {
	// MinOffsets is the number of offset records that must run.
	MinOffsets int `koanf:"min_offsets"`
	// Markers are extra device-family markers selecting the iPhone11,8 offsets.
	Markers []string `koanf:"markers"`
	// Profile forces an offsets profile by name, skipping family selection.
	Profile string `koanf:"profile"`
	// Matcher is "substring" or "exact".
	Matcher string `koanf:"matcher"`
}

var defaults = map[string]interface{}{
	"logging.level":        "info",
	"logging.format":       "text",
	"logging.output":       "stderr",
	"platform.device":      "",
	"platform.build":       "",
	"resolver.min_offsets": 2,
	"resolver.markers":     []string{},
	"resolver.profile":     "",
	"resolver.matcher":     "substring",
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"device":      "platform.device",
	"build":       "platform.build",
	"profile":     "resolver.profile",
	"marker":      "resolver.markers",
	"min-offsets": "resolver.min_offsets",
	"matcher":     "resolver.matcher",
	"log-format":  "logging.format",
}

// LoadConfig builds the configuration from defaults, then the config file
// (if given), then KPARAMS_* environment variables, then flags.
func LoadConfig(flagSet *pflag.FlagSet, configFile string) (*Config, error) {
	k := koanf.New(".")

	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	// Load from config file if provided
	if configFile != "" {
		parser, err := parserForFile(configFile)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", configFile, err)
		}
	}

	// KPARAMS_RESOLVER_MIN_OFFSETS -> resolver.min_offsets
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	// Load from command-line flags (highest precedence)
	if flagSet != nil {
		if err := k.Load(posflag.ProviderWithFlag(flagSet, ".", k, flagKeyValue(flagSet)), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromFlags loads the configuration using the file named by the
// "config" flag of flagSet, if the flag exists.
func LoadFromFlags(flagSet *pflag.FlagSet) (*Config, error) {
	var configFile string
	if f := flagSet.Lookup("config"); f != nil && f.Value.String() != "" {
		expanded, err := path.ExpandPath(f.Value.String())
		if err != nil {
			return nil, err
		}
		configFile = expanded
	}
	return LoadConfig(flagSet, configFile)
}

// Default returns the configuration with only defaults applied.
func Default() *Config {
	return &Config{
		Logging:  LoggingConfig{Level: "info", Format: "text", Output: "stderr"},
		Resolver: ResolverConfig{MinOffsets: 2, Matcher: "substring"},
	}
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging.format %q: want text or json", c.Logging.Format)
	}

	if c.Resolver.MinOffsets < 1 {
		return fmt.Errorf("invalid resolver.min_offsets %d: must be at least 1", c.Resolver.MinOffsets)
	}

	switch strings.ToLower(c.Resolver.Matcher) {
	case "", "substring", "exact":
	default:
		return fmt.Errorf("invalid resolver.matcher %q: want substring or exact", c.Resolver.Matcher)
	}

	for _, m := range c.Resolver.Markers {
		if strings.TrimSpace(m) == "" {
			return errors.New("invalid resolver.markers: empty marker")
		}
	}

	return nil
}

func envKeyValue(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	// Only the first underscore separates the section; the rest belong to the key.
	key = strings.Replace(key, "_", ".", 1)

	// Device markers contain commas ("iPhone11,"), so the list is split on
	// whitespace and semicolons instead.
	if key == "resolver.markers" {
		return key, strings.FieldsFunc(value, func(r rune) bool {
			return r == ';' || unicode.IsSpace(r)
		})
	}

	return key, value
}

func flagKeyValue(fs *pflag.FlagSet) func(f *pflag.Flag) (string, interface{}) {
	return func(f *pflag.Flag) (string, interface{}) {
		if f.Name == "debug" {
			if !f.Changed || f.Value.String() != "true" {
				return "", nil
			}
			return "logging.level", "debug"
		}

		key, ok := flagKeys[f.Name]
		if !ok {
			return "", nil
		}
		if f.Value.Type() == "stringArray" {
			vals, _ := fs.GetStringArray(f.Name)
			return key, vals
		}
		return key, posflag.FlagVal(fs, f)
	}
}

func parserForFile(filename string) (koanf.Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".env":
		return dotenv.Parser(), nil
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", ext)
	}
}
