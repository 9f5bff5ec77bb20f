package entity

import "math"

// TowerStats holds the static base values of a tower type (level 1)
type TowerStats struct {
	Cost        int
	Range       float64
	Damage      float64
	Rate        float64 // shots per second
	UpgradeCost int
}

// Leveling holds the tunable per-level growth constants
type Leveling struct {
	RangeGrowth float64 // k_r
	RateDecay   float64 // k_d
	RateFloor   float64 // lower clamp on rate, must be > 0
}

// DefaultLeveling matches the shipped content balance
var DefaultLeveling = Leveling{
	RangeGrowth: 0.12,
	RateDecay:   0.08,
	RateFloor:   0.12,
}

// LevelStats are the derived stats of a tower at a given level
type LevelStats struct {
	Damage      float64
	Range       float64
	Rate        float64
	UpgradeCost int
}

// At derives the stats of base at level (level < 1 is treated as 1)
func (l Leveling) At(base TowerStats, level int) LevelStats {
	if level < 1 {
		level = 1
	}
	n := float64(level - 1)

	rate := base.Rate * (1 - l.RateDecay*n)
	if rate < l.RateFloor {
		rate = l.RateFloor
	}

	return LevelStats{
		Damage:      base.Damage * (1 + 0.5*n),
		Range:       base.Range * (1 + l.RangeGrowth*n),
		Rate:        rate,
		UpgradeCost: base.UpgradeCost * level,
	}
}

// Tower represents a placed tower
type Tower struct {
	ID     EntityID
	Tile   Tile
	Center Vec2
	Type   string
	Level  int

	// LastShot is the engine time of the most recent shot
	LastShot float64

	base     TowerStats
	leveling Leveling
}

// NewTower creates a level-1 tower ready to fire
func NewTower(id EntityID, tile Tile, towerType string, base TowerStats, leveling Leveling, tileSize float64) *Tower {
	return &Tower{
		ID:       id,
		Tile:     tile,
		Center:   TileCenter(tile, tileSize),
		Type:     towerType,
		Level:    1,
		LastShot: math.Inf(-1),
		base:     base,
		leveling: leveling,
	}
}

// Stats returns the tower's stats at its current level
func (t *Tower) Stats() LevelStats {
	return t.leveling.At(t.base, t.Level)
}

// Base returns the tower type's base stats
func (t *Tower) Base() TowerStats {
	return t.base
}

// Ready reports whether at least one fire period has elapsed since the last shot
func (t *Tower) Ready(now float64) bool {
	return now-t.LastShot >= 1/t.Stats().Rate
}

// Fire records a shot at time now
func (t *Tower) Fire(now float64) {
	t.LastShot = now
}

// UpgradeCost is the price of going from the current level to the next one
func (t *Tower) UpgradeCost() int {
	return t.Stats().UpgradeCost
}

// Upgrade raises the level by exactly one
func (t *Tower) Upgrade() {
	t.Level++
}

// Refund is the gold returned when selling:
// floor(0.6 * cost * (1 + 0.4*(level-1))), computed in integers.
func (t *Tower) Refund() int {
	return t.base.Cost * (60 + 24*(t.Level-1)) / 100
}

// Invested is the total gold spent on this tower: build cost plus every upgrade
func (t *Tower) Invested() int {
	total := t.base.Cost
	for l := 1; l < t.Level; l++ {
		total += t.base.UpgradeCost * l
	}
	return total
}

// InRange reports whether p lies within the current range (inclusive)
func (t *Tower) InRange(p Vec2) bool {
	return Dist(t.Center, p) <= t.Stats().Range
}
