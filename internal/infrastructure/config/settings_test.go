package config

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/td/configs"
)

func TestDefaultSettings(t *testing.T) {
	s, err := DefaultSettings()
	require.NoError(t, err)

	assert.Equal(t, 200, s.Game.StartingGold)
	assert.Equal(t, 20, s.Game.StartingLives)
	assert.Equal(t, 0, s.Game.StartLevel)
	assert.Equal(t, 0.12, s.Tuning.RangeGrowth)
	assert.Equal(t, 0.08, s.Tuning.RateDecay)
	assert.Equal(t, 0.12, s.Tuning.RateFloor)
	assert.Equal(t, 300.0, s.Tuning.ProjectileSpeed)
	assert.Equal(t, 4.0, s.Tuning.WaveGap)
	assert.Equal(t, 60, s.Display.Framerate)
	assert.Equal(t, 0.06, s.Display.MaxDeltaTime)
	assert.Equal(t, "json", s.Save.Backend)
	assert.Equal(t, "td_save.json", s.Save.Path)
	assert.Equal(t, "info", s.Log.Level)
}

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, 200, s.Game.StartingGold)
}

func TestLoadSettings_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	data := `{"game": {"startingGold": 500}, "save": {"backend": "sqlite", "path": "td.db"}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, 500, s.Game.StartingGold)
	assert.Equal(t, 20, s.Game.StartingLives, "unset keys keep their defaults")
	assert.Equal(t, "sqlite", s.Save.Backend)
	assert.Equal(t, "td.db", s.Save.Path)
}

func TestLoadSettings_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"game": `), 0o644))

	_, err := LoadSettings(path)
	assert.Error(t, err)
}

func TestLoadSettings_EnvOverride(t *testing.T) {
	t.Setenv("TD_GAME_STARTINGLIVES", "3")

	s, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, 3, s.Game.StartingLives)
}

func TestLoadSettings_NegativeGrowthRejected(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"range growth", "TD_TUNING_RANGEGROWTH", "-0.5"},
		{"rate decay", "TD_TUNING_RATEDECAY", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := LoadSettings("")
			assert.Error(t, err)
		})
	}

	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tuning": {"rangeGrowth": -0.1}}`), 0o644))
	_, err := LoadSettings(path)
	assert.ErrorContains(t, err, "rangeGrowth")

	t.Setenv("TD_TUNING_RATEDECAY", "0")
	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Tuning.RateDecay, "zero keeps stats flat")
}

func TestLoadSettingsFS(t *testing.T) {
	s, err := LoadSettingsFS(configs.FS, "settings.json")
	require.NoError(t, err)
	assert.Equal(t, 200, s.Game.StartingGold)
	assert.Equal(t, "json", s.Save.Backend)

	s, err = LoadSettingsFS(fstest.MapFS{}, "settings.json")
	require.NoError(t, err)
	assert.Equal(t, 20, s.Game.StartingLives)

	_, err = LoadSettingsFS(fstest.MapFS{"settings.json": {Data: []byte("{")}}, "settings.json")
	assert.Error(t, err)
}
