package config

// Settings is the runtime configuration resolved by LoadSettings
type Settings struct {
	Game    GameSettings    `mapstructure:"game"`
	Tuning  TuningSettings  `mapstructure:"tuning"`
	Display DisplaySettings `mapstructure:"display"`
	Save    SaveSettings    `mapstructure:"save"`
	Log     LogSettings     `mapstructure:"log"`
}

type GameSettings struct {
	StartingGold  int `mapstructure:"startingGold"`
	StartingLives int `mapstructure:"startingLives"`
	StartLevel    int `mapstructure:"startLevel"`
}

// TuningSettings are the balance constants shared by every tower type
type TuningSettings struct {
	RangeGrowth     float64 `mapstructure:"rangeGrowth"`
	RateDecay       float64 `mapstructure:"rateDecay"`
	RateFloor       float64 `mapstructure:"rateFloor"`
	ProjectileSpeed float64 `mapstructure:"projectileSpeed"`
	WaveGap         float64 `mapstructure:"waveGap"` // seconds between the last spawn of a wave and the next wave
}

type DisplaySettings struct {
	Scale        int     `mapstructure:"scale"`
	Framerate    int     `mapstructure:"framerate"`
	MaxDeltaTime float64 `mapstructure:"maxDeltaTime"` // frame dt clamp, seconds
}

type SaveSettings struct {
	Backend string `mapstructure:"backend"` // "json" or "sqlite"
	Path    string `mapstructure:"path"`
}

type LogSettings struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty means stderr
}
