package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestOpen_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, `{"save": {"path": "`+filepath.ToSlash(filepath.Join(dir, "save.json"))+`"}}`)

	rt, err := Open(Options{SettingsPath: path, LogFile: filepath.Join(dir, "td.log")})
	require.NoError(t, err)
	defer func() { assert.NoError(t, rt.Close()) }()

	assert.Equal(t, 3, rt.Catalog.LevelCount())
	assert.Equal(t, 200, rt.Engine.Gold())
	assert.Equal(t, 20, rt.Engine.Lives())
	require.NoError(t, rt.Session.Save(context.Background()))
	assert.FileExists(t, filepath.Join(dir, "save.json"))
	assert.FileExists(t, filepath.Join(dir, "td.log"))
}

func TestOpen_SQLiteAndStartLevel(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, `{
		"game": {"startingGold": 500, "startLevel": 2},
		"save": {"backend": "sqlite", "path": "`+filepath.ToSlash(filepath.Join(dir, "td.db"))+`"}
	}`)

	rt, err := Open(Options{SettingsPath: path, LogFile: filepath.Join(dir, "td.log")})
	require.NoError(t, err)
	defer func() { _ = rt.Close() }()

	assert.Equal(t, 2, rt.Engine.Level().Index)
	assert.Equal(t, 500, rt.Engine.Gold())
	require.NoError(t, rt.Session.Save(context.Background()))
	require.NoError(t, rt.Session.Load(context.Background()))
}

func TestOpen_StartLevelOutOfRange(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, `{"game": {"startLevel": 9}, "save": {"path": "`+filepath.ToSlash(filepath.Join(dir, "s.json"))+`"}}`)

	rt, err := Open(Options{SettingsPath: path, LogFile: filepath.Join(dir, "td.log")})
	require.NoError(t, err)
	defer func() { _ = rt.Close() }()

	assert.Equal(t, 0, rt.Engine.Level().Index)
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "td.log")

	t.Run("malformed settings", func(t *testing.T) {
		_, err := Open(Options{SettingsPath: writeSettings(t, t.TempDir(), "{"), LogFile: logFile})
		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		path := writeSettings(t, t.TempDir(), `{"save": {"backend": "floppy"}}`)
		_, err := Open(Options{SettingsPath: path, LogFile: logFile})
		assert.ErrorContains(t, err, "unknown save backend")
	})

	t.Run("missing content", func(t *testing.T) {
		_, err := Open(Options{ContentDir: t.TempDir(), LogFile: logFile})
		assert.ErrorContains(t, err, "failed to load content")
	})

	t.Run("invalid content", func(t *testing.T) {
		content := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(content, "entities.json"),
			[]byte(`{"towers": {"arrow": {"name": "Arrow", "cost": 0, "range": 1, "damage": 1, "rate": 1, "upgradeCost": 1}}, "enemies": {}}`), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(content, "levels.json"),
			[]byte(`{"tileSize": 64, "levels": []}`), 0o644))
		_, err := Open(Options{ContentDir: content, LogFile: logFile})
		assert.ErrorContains(t, err, "invalid content")
	})
}
