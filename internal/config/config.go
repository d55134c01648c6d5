// Package config loads the extractor's settings the way the corpus's own
// device and disk layers do: sane defaults, optionally overridden by a
// config file, finally overridden by whatever flags the CLI bound.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds everything the extractor needs once flags and any config
// file have been merged.
type Config struct {
	Dest    string `mapstructure:"dest"`
	Force   bool   `mapstructure:"force"`
	Verbose int    `mapstructure:"verbose"`
}

const (
	defaultDest = "jffs2-root"
)

// Load builds a viper instance seeded with defaults, merges in
// `.jffs2extract.yaml` from the working directory or the user's home
// directory if present, binds flags so CLI input always wins, and
// decodes the result into a Config.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("dest", defaultDest)
	v.SetDefault("force", false)
	v.SetDefault("verbose", 0)

	v.SetConfigName(".jffs2extract")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlag("dest", flags.Lookup("dest")); err != nil {
			return nil, fmt.Errorf("config: binding dest flag: %w", err)
		}
		if err := v.BindPFlag("force", flags.Lookup("force")); err != nil {
			return nil, fmt.Errorf("config: binding force flag: %w", err)
		}
		if err := v.BindPFlag("verbose", flags.Lookup("verbose")); err != nil {
			return nil, fmt.Errorf("config: binding verbose flag: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}

	if cfg.Dest == "" {
		cfg.Dest = defaultDest
	}
	cfg.Dest = filepath.Clean(cfg.Dest)

	return &cfg, nil
}
