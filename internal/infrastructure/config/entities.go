package config

// EntitiesConfig is the root config for entities.json
type EntitiesConfig struct {
	Towers  map[string]TowerConfig `json:"towers"`
	Enemies map[string]EnemyConfig `json:"enemies"`
}

// TowerConfig holds the level-1 stats of a tower type
type TowerConfig struct {
	Name        string  `json:"name"`
	Cost        int     `json:"cost"`
	Range       float64 `json:"range"`
	Damage      float64 `json:"damage"`
	Rate        float64 `json:"rate"` // shots per second
	UpgradeCost int     `json:"upgradeCost"`
}

// EnemyConfig holds the spawn stats of an enemy type
type EnemyConfig struct {
	HP     float64 `json:"hp"`
	Speed  float64 `json:"speed"`
	Reward int     `json:"reward"`
}
