package config

// LevelsConfig is the root config for levels.json
type LevelsConfig struct {
	TileSize int           `json:"tileSize"`
	Levels   []LevelConfig `json:"levels"`
}

// LevelConfig describes one playable map
type LevelConfig struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Width  int          `json:"width"`  // in tiles
	Height int          `json:"height"` // in tiles
	Path   [][2]int     `json:"path"`   // ordered tile coordinates, start to goal
	Waves  []WaveConfig `json:"waves"`
}

// WaveConfig is one (enemy, count, interval) group
type WaveConfig struct {
	Enemy    string  `json:"enemy"`
	Count    int     `json:"count"`
	Interval float64 `json:"interval"` // seconds between spawns inside the wave
}
