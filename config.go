package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olivier-w/quotebox/internal/cycle"
	"github.com/olivier-w/quotebox/internal/quotesource"
	"github.com/olivier-w/quotebox/internal/share"
	"github.com/olivier-w/quotebox/internal/theme"
	"github.com/olivier-w/quotebox/internal/ui"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// appConfig holds everything the TUI needs to start.
type appConfig struct {
	Endpoint      string        `mapstructure:"endpoint"`
	FetchTimeout  time.Duration `mapstructure:"fetch-timeout"`
	FadeOut       time.Duration `mapstructure:"fade-out"`
	FadeIn        time.Duration `mapstructure:"fade-in"`
	ShareTemplate string        `mapstructure:"share-template"`
	Palette       []string      `mapstructure:"palette"`
	LogFile       string        `mapstructure:"log-file"`
	Verbose       bool          `mapstructure:"verbose"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func defaultConfigPath(home string) string {
	return filepath.Join(home, ".config", "quotebox", "config.yml")
}

// loadConfig layers defaults, the config file, QUOTEBOX_* env vars and any
// flags that were set explicitly.
func loadConfig(configPath string, flags *pflag.FlagSet) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("QUOTEBOX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("endpoint", quotesource.DefaultEndpoint)
	v.SetDefault("fetch-timeout", quotesource.DefaultTimeout)
	v.SetDefault("fade-out", cycle.DefaultFadeOut)
	v.SetDefault("fade-in", cycle.DefaultFadeIn)
	v.SetDefault("share-template", share.DefaultTemplate)
	v.SetDefault("palette", theme.DefaultHex())
	v.SetDefault("log-file", "")
	v.SetDefault("verbose", false)
	v.SetDefault("retry-interval", ui.DefaultRetryInterval)

	if flags != nil {
		for _, name := range []string{"endpoint", "verbose", "log-file"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return cfg, fmt.Errorf("binding --%s: %w", name, err)
				}
			}
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(defaultConfigPath(home))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		// An explicit --config must exist.
		if configPath != "" || (!errors.As(err, &configFileNotFound) && !os.IsNotExist(err)) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *appConfig) validate() error {
	endpoint, err := quotesource.ValidateEndpoint(c.Endpoint)
	if err != nil {
		return fmt.Errorf("endpoint: %w", err)
	}
	c.Endpoint = endpoint

	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch-timeout must be positive, got %s", c.FetchTimeout)
	}
	if c.FadeOut < 0 || c.FadeIn < 0 {
		return fmt.Errorf("fade delays must not be negative (fade-out %s, fade-in %s)", c.FadeOut, c.FadeIn)
	}
	if c.RetryInterval <= 0 {
		return fmt.Errorf("retry-interval must be positive, got %s", c.RetryInterval)
	}
	if err := share.ValidateTemplate(c.ShareTemplate); err != nil {
		return fmt.Errorf("share-template: %w", err)
	}
	if _, err := theme.ParsePalette(c.Palette); err != nil {
		return fmt.Errorf("palette: %w", err)
	}
	return nil
}
