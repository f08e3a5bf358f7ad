// Package config loads hanzideck settings from an optional YAML file and
// HANZIDECK_* environment variables. CLI flags override whatever is loaded
// here.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"hanzideck/pkg/deck"
	"hanzideck/pkg/pinyin"
)

// Config holds everything the pipeline and writer need to run.
type Config struct {
	// Dictionary is the CC-CEDICT file path; downloaded there when absent.
	Dictionary string `mapstructure:"dictionary"`
	// HSKList is the tab-separated word/level list path. Optional.
	HSKList string `mapstructure:"hsk_list"`
	// DeckName names the generated Anki deck.
	DeckName string `mapstructure:"deck_name"`
	// ToneColours is "off" or five semicolon-separated RGB codes.
	// Empty selects the default five-colour scheme.
	ToneColours string `mapstructure:"tone_colours"`
	// Side is ce-to-en, en-to-ce or both.
	Side string `mapstructure:"side"`
	// HSKFilter drops words at or below this HSK level. 0 disables.
	HSKFilter int `mapstructure:"hsk_filter"`
	// Workers sets the chunk-resolution parallelism. 1 is sequential.
	Workers int `mapstructure:"workers"`
	// LogLevel is a logrus level name.
	LogLevel string `mapstructure:"log_level"`
}

// Load reads the config file at path (optional when path is empty, in which
// case hanzideck.yaml in the working directory is used if present) and
// applies environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("dictionary", "cedict_ts.u8")
	v.SetDefault("hsk_list", "")
	v.SetDefault("deck_name", "hanzideck")
	v.SetDefault("tone_colours", "")
	v.SetDefault("side", "both")
	v.SetDefault("hsk_filter", 0)
	v.SetDefault("workers", 1)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("hanzideck")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("hanzideck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			// A missing default config is fine; anything else is not.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Validate surfaces configuration errors before the pipeline runs.
func (c *Config) Validate() error {
	if _, err := pinyin.ParseToneColours(c.ToneColours); err != nil {
		return fmt.Errorf("tone_colours: %w", err)
	}
	if _, err := deck.ParseDirection(c.Side); err != nil {
		return fmt.Errorf("side: %w", err)
	}
	if c.HSKFilter < 0 {
		return fmt.Errorf("hsk_filter must be >= 0, got %d", c.HSKFilter)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if c.Dictionary == "" {
		return fmt.Errorf("dictionary path must not be empty")
	}
	return nil
}
