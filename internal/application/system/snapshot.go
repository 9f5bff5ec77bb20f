package system

import (
	"github.com/younwookim/td/internal/application/state"
	"github.com/younwookim/td/internal/domain/entity"
)

// TowerView is the read-only view of a tower
type TowerView struct {
	ID     entity.EntityID
	Tile   entity.Tile
	Type   string
	Name   string
	Level  int
	Range  float64
	Damage float64
}

// EnemyView is the read-only view of an enemy
type EnemyView struct {
	ID    entity.EntityID
	Type  string
	Pos   entity.Vec2
	HP    float64
	MaxHP float64
	Alive bool
}

// ProjectileView is the read-only view of a projectile
type ProjectileView struct {
	ID  entity.EntityID
	Pos entity.Vec2
}

// Selection describes the selected tile and the tower on it, if any
type Selection struct {
	Tile        entity.Tile
	Tower       *TowerView
	UpgradeCost int
	Refund      int
}

// Snapshot is everything a renderer needs for one frame
type Snapshot struct {
	Tick       uint64
	Gold       int
	Lives      int
	Elapsed    float64
	LevelIndex int
	LevelName  string
	Width      int
	Height     int
	TileSize   float64
	Path       []entity.Tile
	Phase      state.Phase
	GameOver   bool

	// Wave is the 1-based wave currently spawning, capped at WaveCount
	Wave          int
	WaveCount     int
	PendingSpawns int

	Towers      []TowerView
	Enemies     []EnemyView
	Projectiles []ProjectileView
	Selection   *Selection
	LastTick    TickReport
}

// Snapshot copies the observable state
func (e *Engine) Snapshot() Snapshot {
	wave := WaveAt(e.level.Waves, e.plan) + 1
	if wave > len(e.level.Waves) {
		wave = len(e.level.Waves)
	}

	snap := Snapshot{
		Tick:          e.tick,
		Gold:          e.wallet.Gold(),
		Lives:         e.wallet.Lives(),
		Elapsed:       e.elapsed,
		LevelIndex:    e.level.Index,
		LevelName:     e.level.Name,
		Width:         e.level.Width,
		Height:        e.level.Height,
		TileSize:      e.catalog.TileSize,
		Path:          e.level.Path.Tiles(),
		Phase:         e.Phase(),
		GameOver:      e.GameOver(),
		Wave:          wave,
		WaveCount:     len(e.level.Waves),
		PendingSpawns: e.plan.Remaining(),
		Towers:        make([]TowerView, len(e.towers)),
		Enemies:       make([]EnemyView, len(e.enemies)),
		Projectiles:   make([]ProjectileView, len(e.projectiles)),
		LastTick:      e.report,
	}

	for i, t := range e.towers {
		snap.Towers[i] = e.towerView(t)
	}
	for i, en := range e.enemies {
		snap.Enemies[i] = EnemyView{
			ID:    en.ID,
			Type:  en.Type,
			Pos:   en.Pos,
			HP:    en.HP,
			MaxHP: en.MaxHP,
			Alive: en.IsAlive(),
		}
	}
	for i, p := range e.projectiles {
		snap.Projectiles[i] = ProjectileView{ID: p.ID, Pos: p.Pos}
	}

	if e.selected != nil {
		sel := &Selection{Tile: *e.selected}
		if t, found := e.towerAt[*e.selected]; found {
			view := e.towerView(t)
			sel.Tower = &view
			sel.UpgradeCost = t.UpgradeCost()
			sel.Refund = t.Refund()
		}
		snap.Selection = sel
	}

	return snap
}

func (e *Engine) towerView(t *entity.Tower) TowerView {
	stats := t.Stats()
	return TowerView{
		ID:     t.ID,
		Tile:   t.Tile,
		Type:   t.Type,
		Name:   e.catalog.TowerName(t.Type),
		Level:  t.Level,
		Range:  stats.Range,
		Damage: stats.Damage,
	}
}
