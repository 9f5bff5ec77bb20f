package system

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/td/internal/infrastructure/config"
)

// greenwayPath is (0,3) .. (11,3)
func greenwayPath() [][2]int {
	path := make([][2]int, 0, 12)
	for x := 0; x < 12; x++ {
		path = append(path, [2]int{x, 3})
	}
	return path
}

func testContent(waves ...config.WaveConfig) *config.GameConfig {
	return &config.GameConfig{
		Entities: &config.EntitiesConfig{
			Towers: map[string]config.TowerConfig{
				"arrow":  {Name: "Arrow", Cost: 75, Range: 192, Damage: 10, Rate: 0.6, UpgradeCost: 60},
				"cannon": {Name: "Cannon", Cost: 125, Range: 160, Damage: 40, Rate: 1.2, UpgradeCost: 100},
			},
			Enemies: map[string]config.EnemyConfig{
				"grunt": {HP: 30, Speed: 40, Reward: 8},
				"tough": {HP: 100, Speed: 24, Reward: 25},
			},
		},
		Levels: &config.LevelsConfig{
			TileSize: 64,
			Levels: []config.LevelConfig{{
				ID:     "test",
				Name:   "Greenway I",
				Width:  12,
				Height: 8,
				Path:   greenwayPath(),
				Waves:  waves,
			}},
		},
	}
}

func newTestEngine(t testing.TB, rules Rules, waves ...config.WaveConfig) *Engine {
	t.Helper()
	catalog, err := NewCatalog(testContent(waves...))
	require.NoError(t, err)
	engine, err := New(catalog, rules, zerolog.Nop(), 0)
	require.NoError(t, err)
	return engine
}

// runUntil ticks the engine with dt until done returns true, failing after limit ticks
func runUntil(t *testing.T, e *Engine, dt float64, limit int, done func() bool) {
	t.Helper()
	for i := 0; i < limit; i++ {
		if done() {
			return
		}
		e.Update(dt)
	}
	require.True(t, done(), "condition not reached after %d ticks", limit)
}

func grunts(count int, interval float64) config.WaveConfig {
	return config.WaveConfig{Enemy: "grunt", Count: count, Interval: interval}
}
