// Package config resolves palette settings from defaults, an optional YAML
// file, PALETTE_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/dhamidi/palette/search"
	"github.com/dhamidi/palette/search/grammar"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	// Environment is the path of a YAML environment; empty selects the
	// built-in one.
	Environment string        `mapstructure:"environment"`
	MaxResults  int           `mapstructure:"max_results"`
	Grammar     GrammarConfig `mapstructure:"grammar"`
	Logging     LoggingConfig `mapstructure:"logging"`
	UI          UIConfig      `mapstructure:"ui"`
}

type GrammarConfig struct {
	Specials  bool `mapstructure:"specials"`
	BareWords bool `mapstructure:"bare_words"`
}

type LoggingConfig struct {
	Verbosity int    `mapstructure:"verbosity"`
	File      string `mapstructure:"file"`
}

type UIConfig struct {
	Addr string `mapstructure:"addr"`
	// Assets is a directory whose static/ and templates/ shadow the
	// embedded UI files.
	Assets string `mapstructure:"assets"`
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"env":         "environment",
	"max-results": "max_results",
	"verbose":     "logging.verbosity",
	"log-file":    "logging.file",
	"addr":        "ui.addr",
	"assets":      "ui.assets",
	"specials":    "grammar.specials",
	"bare-words":  "grammar.bare_words",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "")
	v.SetDefault("max_results", search.DefaultMaxResults)
	v.SetDefault("grammar.specials", true)
	v.SetDefault("grammar.bare_words", true)
	v.SetDefault("logging.verbosity", 0)
	v.SetDefault("logging.file", "")
	v.SetDefault("ui.addr", ":8080")
	v.SetDefault("ui.assets", "")
}

// Load reads the file at path, if any, and overlays the environment and the
// flags in flags that were set on the command line.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PALETTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.MaxResults < 0 {
		return nil, fmt.Errorf("max_results must not be negative, got %d", cfg.MaxResults)
	}
	return &cfg, nil
}

func (c *Config) GrammarOptions() grammar.Options {
	return grammar.Options{
		Specials:  c.Grammar.Specials,
		BareWords: c.Grammar.BareWords,
	}
}

func (c *Config) SessionOptions() []search.Option {
	return []search.Option{search.WithMaxResults(c.MaxResults)}
}
