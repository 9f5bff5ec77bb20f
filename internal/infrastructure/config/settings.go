package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TD_SAVE_BACKEND=sqlite
const EnvPrefix = "TD"

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.startingGold", 200)
	v.SetDefault("game.startingLives", 20)
	v.SetDefault("game.startLevel", 0)

	v.SetDefault("tuning.rangeGrowth", 0.12)
	v.SetDefault("tuning.rateDecay", 0.08)
	v.SetDefault("tuning.rateFloor", 0.12)
	v.SetDefault("tuning.projectileSpeed", 300.0)
	v.SetDefault("tuning.waveGap", 4.0)

	v.SetDefault("display.scale", 1)
	v.SetDefault("display.framerate", 60)
	v.SetDefault("display.maxDeltaTime", 0.06)

	v.SetDefault("save.backend", "json")
	v.SetDefault("save.path", "td_save.json")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// DefaultSettings returns the built-in settings without reading any file
func DefaultSettings() (*Settings, error) {
	v := viper.New()
	setDefaults(v)
	return decode(v)
}

// LoadSettings reads a JSON settings file over the defaults.
// A missing file is not an error; a malformed one is.
func LoadSettings(path string) (*Settings, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read settings %s: %w", filepath.Base(path), err)
			}
		}
	}
	return decode(v)
}

// LoadSettingsFS reads settings.json from fsys over the defaults
func LoadSettingsFS(fsys fs.FS, name string) (*Settings, error) {
	v := newViper()
	f, err := fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return decode(v)
		}
		return nil, fmt.Errorf("failed to open settings %s: %w", name, err)
	}
	defer f.Close()

	v.SetConfigType("json")
	if err := v.ReadConfig(f); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", name, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if s.Display.MaxDeltaTime <= 0 {
		s.Display.MaxDeltaTime = 0.06
	}
	// range never shrinks and rate never grows with level
	if s.Tuning.RangeGrowth < 0 {
		return nil, fmt.Errorf("invalid settings: tuning.rangeGrowth %g is negative", s.Tuning.RangeGrowth)
	}
	if s.Tuning.RateDecay < 0 {
		return nil, fmt.Errorf("invalid settings: tuning.rateDecay %g is negative", s.Tuning.RateDecay)
	}
	return &s, nil
}
