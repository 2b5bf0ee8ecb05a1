package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"

	"mandalart-cli/internal/model"
	"mandalart-cli/internal/palette"
	"mandalart-cli/internal/store"
)

const EnvPrefix = "MANDALART"

// TUIConfig holds presentation preferences for the interactive grid.
type TUIConfig struct {
	Glyphs string `mapstructure:"glyphs"`
	Theme  string `mapstructure:"theme"`
}

// Config holds runtime configuration. Values are populated from
// .mandalart.yaml, MANDALART_* env vars, and CLI flags.
type Config struct {
	Dir      string    `mapstructure:"dir"`
	Backend  string    `mapstructure:"backend"`
	Language string    `mapstructure:"language"`
	Theme    string    `mapstructure:"theme"`
	LogLevel string    `mapstructure:"log_level"`
	LogFile  string    `mapstructure:"log_file"`
	TUI      TUIConfig `mapstructure:"tui"`
}

// New returns a viper instance wired to the config file search path and the
// MANDALART_ environment. cfgFile overrides the search when non-empty.
func New(cfgFile string) *viper.Viper {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".mandalart")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads the config file if one is found. A missing file is fine.
func ReadFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var nf viper.ConfigFileNotFoundError
	if errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Load applies built-in defaults for anything the file, environment, or
// flags left unset, then validates the enumerated values.
func Load(v *viper.Viper) (Config, error) {
	v.SetDefault("dir", "")
	v.SetDefault("backend", string(store.BackendSQLite))
	v.SetDefault("language", string(model.DefaultLanguage))
	v.SetDefault("theme", palette.DefaultKey)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_file", "")
	v.SetDefault("tui.glyphs", "unicode")
	v.SetDefault("tui.theme", "auto")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if _, err := store.ParseBackend(cfg.Backend); err != nil {
		return Config{}, err
	}
	if !model.Language(cfg.Language).Valid() {
		return Config{}, fmt.Errorf("invalid language: %q (expected ko|en|jp)", cfg.Language)
	}
	if !palette.Valid(cfg.Theme) {
		return Config{}, fmt.Errorf("invalid theme: %q", cfg.Theme)
	}
	switch cfg.TUI.Glyphs {
	case "unicode", "ascii":
	default:
		return Config{}, fmt.Errorf("invalid tui.glyphs: %q (expected unicode|ascii)", cfg.TUI.Glyphs)
	}
	switch cfg.TUI.Theme {
	case "auto", "light", "dark":
	default:
		return Config{}, fmt.Errorf("invalid tui.theme: %q (expected auto|light|dark)", cfg.TUI.Theme)
	}
	return cfg, nil
}
