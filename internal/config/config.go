// Package config loads the generator's settings from .prefsgen.yaml, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"prefs-generator/internal/analyze"
	"prefs-generator/internal/directive"
	"prefs-generator/internal/gen"
)

// EnvPrefix prefixes every environment variable, e.g. PREFSGEN_LOG_LEVEL.
const EnvPrefix = "PREFSGEN"

// FileName is the configuration file looked up in the working directory.
const FileName = ".prefsgen"

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the generator configuration.
type Config struct {
	// Suffix names the generated type: Example + Suffix.
	Suffix string `mapstructure:"suffix"`
	// FileSuffix names the generated file: example + FileSuffix.
	FileSuffix string `mapstructure:"file_suffix"`
	// Overrides is the path of a YAML overrides file.
	Overrides string `mapstructure:"overrides"`
	// BuildTags are added to the prefsgen tag while loading packages.
	BuildTags []string `mapstructure:"build_tags"`
	// Comments enables doc comments in generated files.
	Comments bool `mapstructure:"comments"`
	// Out writes every file into one directory instead of next to its package.
	Out string `mapstructure:"out"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File receives a copy of every record when set.
	File string `mapstructure:"file"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	gc := gen.DefaultGeneratorConfig()

	return &Config{
		Suffix:     gc.Suffix,
		FileSuffix: gc.FileSuffix,
		Comments:   gc.GenerateComments,
		Log: LogConfig{
			Level:  "info",
			Format: FormatText,
		},
	}
}

// Load reads configuration from file, environment variables and whatever
// flags were bound to v. Environment variables use the prefix "PREFSGEN" and
// the dot in keys is replaced by an underscore: "log.level" becomes
// "PREFSGEN_LOG_LEVEL". An empty file looks for .prefsgen.yaml in the
// working directory and tolerates its absence.
func Load(v *viper.Viper, file string) (*Config, error) {
	cfg := Default()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if os.Getenv(EnvPrefix+"_DEBUG") != "" {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// bindEnvs registers all keys within cfg so that viper will look up
// corresponding environment variables when unmarshalling.
func bindEnvs(v *viper.Viper, cfg any, parts ...string) {
	val := reflect.ValueOf(cfg)
	typ := reflect.TypeOf(cfg)

	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}

	for i := range typ.NumField() {
		f := typ.Field(i)

		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}

		key := append(slices.Clone(parts), tag)
		if f.Type.Kind() == reflect.Struct {
			bindEnvs(v, val.Field(i).Interface(), key...)

			continue
		}

		_ = v.BindEnv(strings.Join(key, "."))
	}
}

// Validate checks the values that cannot be checked by decoding.
func (c *Config) Validate() error {
	if c.Suffix == "" {
		return errors.New("suffix must not be empty")
	}

	if !strings.HasSuffix(c.FileSuffix, ".go") {
		return fmt.Errorf("file_suffix %q must end in .go", c.FileSuffix)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	switch c.Log.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}

	return level, nil
}

// Analyzer returns the package loading configuration.
func (c *Config) Analyzer() analyze.Config {
	ac := analyze.DefaultConfig()
	for _, tag := range c.BuildTags {
		if tag != "" && !slices.Contains(ac.BuildTags, tag) {
			ac.BuildTags = append(ac.BuildTags, tag)
		}
	}

	return ac
}

// Generator returns the generator configuration, loading the overrides file
// if one is configured.
func (c *Config) Generator() (gen.GeneratorConfig, error) {
	gc := gen.DefaultGeneratorConfig()
	gc.Suffix = c.Suffix
	gc.FileSuffix = c.FileSuffix
	gc.GenerateComments = c.Comments

	if c.Overrides == "" {
		return gc, nil
	}

	overrides, err := directive.LoadFile(c.Overrides)
	if err != nil {
		return gc, err
	}

	gc.Overrides = overrides

	return gc, nil
}
