package system

import (
	"errors"
	"fmt"
	"sort"

	"github.com/younwookim/td/internal/domain/entity"
	"github.com/younwookim/td/internal/infrastructure/config"
)

// Configuration errors. NewCatalog wraps one of these with the offending id.
var (
	ErrNoLevels         = errors.New("no levels defined")
	ErrUnknownLevel     = errors.New("unknown level")
	ErrUnknownEnemyType = errors.New("unknown enemy type")
	ErrInvalidPath      = errors.New("invalid path")
	ErrInvalidWave      = errors.New("invalid wave")
	ErrInvalidTowerType = errors.New("invalid tower type")
	ErrInvalidEnemyType = errors.New("invalid enemy type")
)

// Wave is a validated (enemy, count, interval) group
type Wave struct {
	Enemy    string
	Count    int
	Interval float64
}

// Level is a validated, immutable level definition
type Level struct {
	Index  int
	ID     string
	Name   string
	Width  int
	Height int
	Path   *entity.Path
	Waves  []Wave
}

// InBounds reports whether tile lies on the level grid
func (l *Level) InBounds(tile entity.Tile) bool {
	return tile.X >= 0 && tile.Y >= 0 && tile.X < l.Width && tile.Y < l.Height
}

// Catalog is the immutable lookup of tower types, enemy types and levels
type Catalog struct {
	TileSize   float64
	towers     map[string]entity.TowerStats
	towerNames map[string]string
	enemies    map[string]entity.EnemyStats
	levels     []*Level
}

// NewCatalog validates content and builds the lookup tables
func NewCatalog(cfg *config.GameConfig) (*Catalog, error) {
	if cfg == nil || cfg.Entities == nil || cfg.Levels == nil || len(cfg.Levels.Levels) == 0 {
		return nil, ErrNoLevels
	}
	if cfg.Levels.TileSize <= 0 {
		return nil, fmt.Errorf("%w: tile size %d", ErrInvalidPath, cfg.Levels.TileSize)
	}

	c := &Catalog{
		TileSize:   float64(cfg.Levels.TileSize),
		towers:     make(map[string]entity.TowerStats, len(cfg.Entities.Towers)),
		towerNames: make(map[string]string, len(cfg.Entities.Towers)),
		enemies:    make(map[string]entity.EnemyStats, len(cfg.Entities.Enemies)),
	}

	for id, t := range cfg.Entities.Towers {
		if t.Cost <= 0 || t.Range <= 0 || t.Damage <= 0 || t.Rate <= 0 {
			return nil, fmt.Errorf("%w %q: cost, range, damage and rate must be positive", ErrInvalidTowerType, id)
		}
		stats := entity.TowerStats{
			Cost:        t.Cost,
			Range:       t.Range,
			Damage:      t.Damage,
			Rate:        t.Rate,
			UpgradeCost: t.UpgradeCost,
		}
		if level, ok := refundBelowSpend(id, stats); !ok {
			return nil, fmt.Errorf("%w %q: upgradeCost %d lets the level %d refund reach the total spend", ErrInvalidTowerType, id, t.UpgradeCost, level)
		}
		c.towers[id] = stats
		name := t.Name
		if name == "" {
			name = id
		}
		c.towerNames[id] = name
	}

	for id, e := range cfg.Entities.Enemies {
		if e.HP <= 0 || e.Speed <= 0 || e.Reward < 0 {
			return nil, fmt.Errorf("%w %q", ErrInvalidEnemyType, id)
		}
		c.enemies[id] = entity.EnemyStats{HP: e.HP, Speed: e.Speed, Reward: e.Reward}
	}

	for i, lc := range cfg.Levels.Levels {
		level, err := c.buildLevel(i, lc)
		if err != nil {
			return nil, fmt.Errorf("level %d (%s): %w", i, lc.Name, err)
		}
		c.levels = append(c.levels, level)
	}

	return c, nil
}

func (c *Catalog) buildLevel(index int, lc config.LevelConfig) (*Level, error) {
	if lc.Width <= 0 || lc.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidPath, lc.Width, lc.Height)
	}

	tiles := make([]entity.Tile, 0, len(lc.Path))
	seen := make(map[entity.Tile]bool, len(lc.Path))
	for _, p := range lc.Path {
		tile := entity.Tile{X: p[0], Y: p[1]}
		if tile.X < 0 || tile.Y < 0 || tile.X >= lc.Width || tile.Y >= lc.Height {
			return nil, fmt.Errorf("%w: tile (%d,%d) out of bounds", ErrInvalidPath, tile.X, tile.Y)
		}
		if seen[tile] {
			return nil, fmt.Errorf("%w: tile (%d,%d) repeated", ErrInvalidPath, tile.X, tile.Y)
		}
		seen[tile] = true
		tiles = append(tiles, tile)
	}

	path, err := entity.NewPath(tiles, c.TileSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}

	waves := make([]Wave, 0, len(lc.Waves))
	for j, w := range lc.Waves {
		if _, ok := c.enemies[w.Enemy]; !ok {
			return nil, fmt.Errorf("wave %d: %w %q", j, ErrUnknownEnemyType, w.Enemy)
		}
		if w.Count < 1 || w.Interval < 0 {
			return nil, fmt.Errorf("wave %d: %w: count %d interval %g", j, ErrInvalidWave, w.Count, w.Interval)
		}
		waves = append(waves, Wave{Enemy: w.Enemy, Count: w.Count, Interval: w.Interval})
	}

	return &Level{
		Index:  index,
		ID:     lc.ID,
		Name:   lc.Name,
		Width:  lc.Width,
		Height: lc.Height,
		Path:   path,
		Waves:  waves,
	}, nil
}

// Tower looks up a tower type
func (c *Catalog) Tower(id string) (entity.TowerStats, bool) {
	s, ok := c.towers[id]
	return s, ok
}

// TowerName returns the display name of a tower type
func (c *Catalog) TowerName(id string) string {
	return c.towerNames[id]
}

// TowerTypes returns tower ids ordered by cost, then id
func (c *Catalog) TowerTypes() []string {
	ids := make([]string, 0, len(c.towers))
	for id := range c.towers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ci, cj := c.towers[ids[i]].Cost, c.towers[ids[j]].Cost
		if ci != cj {
			return ci < cj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Enemy looks up an enemy type
func (c *Catalog) Enemy(id string) (entity.EnemyStats, bool) {
	s, ok := c.enemies[id]
	return s, ok
}

// Level returns the level at index
func (c *Catalog) Level(index int) (*Level, bool) {
	if index < 0 || index >= len(c.levels) {
		return nil, false
	}
	return c.levels[index], true
}

// LevelCount returns the number of levels
func (c *Catalog) LevelCount() int {
	return len(c.levels)
}

// refundCheckLevels bounds the refund check; the spend margin is tightest at
// level 5 and only widens after it
const refundCheckLevels = 10

// refundBelowSpend reports whether selling never returns the total spent.
// On failure it returns the first level where it does.
func refundBelowSpend(id string, stats entity.TowerStats) (int, bool) {
	tower := entity.NewTower(0, entity.Tile{}, id, stats, entity.DefaultLeveling, 1)
	for tower.Level <= refundCheckLevels {
		if tower.Refund() >= tower.Invested() {
			return tower.Level, false
		}
		tower.Upgrade()
	}
	return 0, true
}
