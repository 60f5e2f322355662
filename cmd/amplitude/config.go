package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/goliatone/go-amplitude"
)

const (
	configName = "amplitude"
	envPrefix  = "AMPLITUDE"
)

// flagKeys maps CLI flags onto config keys.
var flagKeys = map[string]string{
	"content-dir":    "content_dir",
	"output-dir":     "output_dir",
	"skip-invalid":   "skip_invalid_items",
	"hard-wraps":     "markdown.hard_wraps",
	"unsafe-html":    "markdown.unsafe",
	"debounce":       "watch.debounce",
	"log-provider":   "logging.provider",
	"log-level":      "logging.level",
	"log-format":     "logging.format",
	"log-add-source": "logging.add_source",
}

// loadConfig layers defaults, amplitude.toml (or cfgFile), AMPLITUDE_* env
// vars and explicitly set flags, in increasing priority.
func loadConfig(cfgFile string, flags *pflag.FlagSet) (amplitude.Config, string, error) {
	v := viper.New()
	setDefaults(v, amplitude.DefaultConfig())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(configName)
		v.SetConfigType("toml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return amplitude.Config{}, "", fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return amplitude.Config{}, "", fmt.Errorf("read config: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg amplitude.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return amplitude.Config{}, "", fmt.Errorf("decode config: %w", err)
	}
	return cfg, used, nil
}

func setDefaults(v *viper.Viper, cfg amplitude.Config) {
	v.SetDefault("content_dir", cfg.ContentDir)
	v.SetDefault("output_dir", cfg.OutputDir)
	v.SetDefault("skip_invalid_items", cfg.SkipInvalidItems)
	v.SetDefault("markdown.extensions", cfg.Markdown.Extensions)
	v.SetDefault("markdown.hard_wraps", cfg.Markdown.HardWraps)
	v.SetDefault("markdown.unsafe", cfg.Markdown.Unsafe)
	v.SetDefault("watch.debounce", cfg.Watch.Debounce)
	v.SetDefault("watch.ignore", cfg.Watch.Ignore)
	v.SetDefault("logging.provider", cfg.Logging.Provider)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.add_source", cfg.Logging.AddSource)
	v.SetDefault("logging.focus", cfg.Logging.Focus)
}
