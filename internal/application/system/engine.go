package system

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/younwookim/td/internal/application/save"
	"github.com/younwookim/td/internal/application/state"
	"github.com/younwookim/td/internal/domain/economy"
	"github.com/younwookim/td/internal/domain/entity"
	"github.com/younwookim/td/internal/infrastructure/config"
)

// Rules are the run-wide constants not tied to a tower or enemy type
type Rules struct {
	StartingGold    int
	StartingLives   int
	Leveling        entity.Leveling
	ProjectileSpeed float64
	WaveGap         float64
}

// DefaultRules returns the shipped balance
func DefaultRules() Rules {
	return Rules{
		StartingGold:    200,
		StartingLives:   20,
		Leveling:        entity.DefaultLeveling,
		ProjectileSpeed: 300,
		WaveGap:         4,
	}
}

// RulesFromSettings maps runtime settings onto Rules
func RulesFromSettings(s *config.Settings) Rules {
	r := Rules{
		StartingGold:  s.Game.StartingGold,
		StartingLives: s.Game.StartingLives,
		Leveling: entity.Leveling{
			RangeGrowth: s.Tuning.RangeGrowth,
			RateDecay:   s.Tuning.RateDecay,
			RateFloor:   s.Tuning.RateFloor,
		},
		ProjectileSpeed: s.Tuning.ProjectileSpeed,
		WaveGap:         s.Tuning.WaveGap,
	}
	if r.Leveling.RateFloor <= 0 {
		r.Leveling.RateFloor = entity.DefaultLeveling.RateFloor
	}
	if r.ProjectileSpeed <= 0 {
		r.ProjectileSpeed = 300
	}
	return r
}

// TickReport counts what happened during the last accepted tick
type TickReport struct {
	Spawned int
	Fired   int
	Killed  int
	Leaked  int
}

// Engine owns the whole live state of a run.
// It is not safe for concurrent use; commands and Update must be serialized by the caller.
type Engine struct {
	catalog *Catalog
	rules   Rules
	log     zerolog.Logger

	level   *Level
	plan    *WavePlan
	wallet  *economy.Wallet
	elapsed float64
	tick    uint64

	enemies     []*entity.Enemy
	enemyByID   map[entity.EntityID]*entity.Enemy
	towers      []*entity.Tower
	towerAt     map[entity.Tile]*entity.Tower
	projectiles []*entity.Projectile
	nextID      entity.EntityID

	phase    state.Phase // Playing, LevelClear or GameOver
	paused   bool
	selected *entity.Tile
	report   TickReport
}

// New creates an engine with levelIndex loaded
func New(catalog *Catalog, rules Rules, log zerolog.Logger, levelIndex int) (*Engine, error) {
	if catalog == nil || catalog.LevelCount() == 0 {
		return nil, ErrNoLevels
	}
	e := &Engine{
		catalog: catalog,
		rules:   rules,
		log:     log,
		wallet:  economy.NewWallet(rules.StartingGold, rules.StartingLives),
	}
	if err := e.LoadLevel(levelIndex); err != nil {
		return nil, err
	}
	return e, nil
}

// LoadLevel replaces the battlefield with a fresh copy of level index and
// resets gold and lives to their starting values.
func (e *Engine) LoadLevel(index int) error {
	level, ok := e.catalog.Level(index)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownLevel, index)
	}

	e.level = level
	e.plan = BuildWavePlan(level.Waves, e.rules.WaveGap)
	e.wallet.Reset(e.rules.StartingGold, e.rules.StartingLives)
	e.elapsed = 0
	e.tick = 0
	e.enemies = nil
	e.enemyByID = make(map[entity.EntityID]*entity.Enemy)
	e.towers = nil
	e.towerAt = make(map[entity.Tile]*entity.Tower)
	e.projectiles = nil
	e.phase = state.Playing
	e.paused = false
	e.selected = nil
	e.report = TickReport{}

	e.log.Info().
		Int("level", index).
		Str("name", level.Name).
		Int("spawns", e.plan.Len()).
		Msg("level loaded")
	return nil
}

// NextLevel loads the following level, wrapping to the first after the last
func (e *Engine) NextLevel() error {
	return e.LoadLevel((e.level.Index + 1) % e.catalog.LevelCount())
}

// Restart reloads the current level
func (e *Engine) Restart() error {
	return e.LoadLevel(e.level.Index)
}

// Update advances the simulation by dt seconds.
// Order: spawn, enemy motion and settlement, tower fire, projectiles, game-over check.
func (e *Engine) Update(dt float64) Result {
	if e.phase == state.GameOver {
		return reject(ReasonGameOver)
	}
	if e.paused {
		return reject(ReasonPaused)
	}
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return reject(ReasonInvalidDelta)
	}

	e.tick++
	e.report = TickReport{}
	e.elapsed += dt

	// 1. spawns
	for _, entry := range e.plan.Due(e.elapsed) {
		e.spawn(entry.Enemy)
	}

	// 2. motion, leaks
	for _, en := range e.enemies {
		en.Update(dt)
		if en.IsAlive() && en.ReachedGoal() {
			en.Alive = false
			en.Escaped = true
			e.wallet.LoseLife()
			e.report.Leaked++
			e.log.Debug().Uint64("id", uint64(en.ID)).Int("lives", e.wallet.Lives()).Msg("enemy leaked")
		}
	}
	e.settleEnemies()

	// 3. towers, at most one shot each
	for _, t := range e.towers {
		if !t.Ready(e.elapsed) {
			continue
		}
		target := SelectTarget(t, e.enemies)
		if target == nil {
			continue
		}
		e.projectiles = append(e.projectiles, entity.NewProjectile(
			e.newID(), t.Center, target.ID, e.rules.ProjectileSpeed, t.Stats().Damage,
		))
		t.Fire(e.elapsed)
		e.report.Fired++
	}

	// 4. projectiles
	live := e.projectiles[:0]
	for _, p := range e.projectiles {
		p.Update(dt, e.enemyByID[p.TargetID])
		if p.Alive {
			live = append(live, p)
		}
	}
	clear(e.projectiles[len(live):])
	e.projectiles = live
	e.settleEnemies()

	// 5. terminal checks
	if e.wallet.Depleted() {
		e.phase = state.GameOver
		e.log.Info().Str("level", e.level.Name).Float64("elapsed", e.elapsed).Msg("game over")
	} else if e.phase == state.Playing && e.plan.Exhausted() && len(e.enemies) == 0 {
		e.phase = state.LevelClear
		e.log.Info().Str("level", e.level.Name).Int("gold", e.wallet.Gold()).Msg("level clear")
	}

	return accept()
}

// settleEnemies removes dead enemies, crediting the reward of those killed by damage.
// Each enemy passes through here exactly once on its way out.
func (e *Engine) settleEnemies() {
	live := e.enemies[:0]
	for _, en := range e.enemies {
		if en.IsAlive() {
			live = append(live, en)
			continue
		}
		delete(e.enemyByID, en.ID)
		if en.Escaped {
			continue
		}
		e.wallet.Credit(en.Reward)
		e.report.Killed++
		e.log.Debug().Uint64("id", uint64(en.ID)).Int("reward", en.Reward).Msg("enemy killed")
	}
	clear(e.enemies[len(live):])
	e.enemies = live
}

func (e *Engine) spawn(enemyType string) {
	stats, ok := e.catalog.Enemy(enemyType)
	if !ok {
		// unreachable for a validated catalog
		e.log.Error().Str("type", enemyType).Msg("spawn of unknown enemy skipped")
		return
	}
	en := entity.NewEnemy(e.newID(), enemyType, stats, e.level.Path)
	e.enemies = append(e.enemies, en)
	e.enemyByID[en.ID] = en
	e.report.Spawned++
	e.log.Debug().Uint64("id", uint64(en.ID)).Str("type", enemyType).Float64("at", e.elapsed).Msg("enemy spawned")
}

func (e *Engine) newID() entity.EntityID {
	e.nextID++
	return e.nextID
}

// PlaceTower builds a level-1 tower on tile, debiting its base cost
func (e *Engine) PlaceTower(tile entity.Tile, towerType string) Result {
	if e.phase == state.GameOver {
		return reject(ReasonGameOver)
	}
	base, ok := e.catalog.Tower(towerType)
	if !ok {
		return reject(ReasonUnknownTowerType)
	}
	if !e.level.InBounds(tile) {
		return reject(ReasonOutOfBounds)
	}
	if e.level.Path.Contains(tile) {
		return reject(ReasonPathTile)
	}
	if _, taken := e.towerAt[tile]; taken {
		return reject(ReasonOccupied)
	}
	if !e.wallet.Spend(base.Cost) {
		return reject(ReasonInsufficientGold)
	}

	t := e.addTower(tile, towerType, base, 1)
	return Result{OK: true, TowerID: t.ID, Gold: base.Cost}
}

func (e *Engine) addTower(tile entity.Tile, towerType string, base entity.TowerStats, level int) *entity.Tower {
	t := entity.NewTower(e.newID(), tile, towerType, base, e.rules.Leveling, e.catalog.TileSize)
	t.Level = level
	e.towers = append(e.towers, t)
	e.towerAt[tile] = t
	return t
}

// UpgradeTower raises a tower one level if its current upgrade cost is affordable
func (e *Engine) UpgradeTower(id entity.EntityID) Result {
	if e.phase == state.GameOver {
		return reject(ReasonGameOver)
	}
	t := e.tower(id)
	if t == nil {
		return reject(ReasonNoSuchTower)
	}
	cost := t.UpgradeCost()
	if !e.wallet.Spend(cost) {
		return reject(ReasonInsufficientGold)
	}
	t.Upgrade()
	return Result{OK: true, TowerID: id, Gold: cost}
}

// SellTower removes a tower and credits its refund
func (e *Engine) SellTower(id entity.EntityID) Result {
	if e.phase == state.GameOver {
		return reject(ReasonGameOver)
	}
	idx := -1
	for i, t := range e.towers {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return reject(ReasonNoSuchTower)
	}

	t := e.towers[idx]
	refund := t.Refund()
	e.towers = append(e.towers[:idx], e.towers[idx+1:]...)
	delete(e.towerAt, t.Tile)
	e.wallet.Credit(refund)
	return Result{OK: true, TowerID: id, Gold: refund}
}

// SelectTile moves the selection; the result carries the tower on that tile, if any
func (e *Engine) SelectTile(tile entity.Tile) Result {
	if !e.level.InBounds(tile) {
		return reject(ReasonOutOfBounds)
	}
	sel := tile
	e.selected = &sel
	res := accept()
	if t, found := e.towerAt[tile]; found {
		res.TowerID = t.ID
	}
	return res
}

// ClearSelection drops the current selection
func (e *Engine) ClearSelection() {
	e.selected = nil
}

// SetPaused suspends or resumes Update
func (e *Engine) SetPaused(paused bool) Result {
	e.paused = paused
	return accept()
}

// Execute dispatches a command value
func (e *Engine) Execute(cmd Command) Result {
	switch c := cmd.(type) {
	case PlaceTower:
		return e.PlaceTower(c.Tile, c.Type)
	case UpgradeTower:
		return e.UpgradeTower(c.TowerID)
	case SellTower:
		return e.SellTower(c.TowerID)
	case SelectTile:
		return e.SelectTile(c.Tile)
	case SetPaused:
		return e.SetPaused(c.Paused)
	case Advance:
		return e.Update(c.DT)
	case LoadLevel:
		if err := e.LoadLevel(c.Index); err != nil {
			return reject(ReasonNoSuchLevel)
		}
		return accept()
	case RestoreState:
		if _, err := e.Restore(c.State); err != nil {
			return reject(ReasonNoSuchLevel)
		}
		return accept()
	default:
		return reject(ReasonUnknownCommand)
	}
}

func (e *Engine) tower(id entity.EntityID) *entity.Tower {
	for _, t := range e.towers {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// TowerAt returns the tower on tile, if any
func (e *Engine) TowerAt(tile entity.Tile) (*entity.Tower, bool) {
	t, found := e.towerAt[tile]
	return t, found
}

// SelectedTower returns the tower on the selected tile, if any
func (e *Engine) SelectedTower() (*entity.Tower, bool) {
	if e.selected == nil {
		return nil, false
	}
	return e.TowerAt(*e.selected)
}

// Selected returns the selected tile, if any
func (e *Engine) Selected() (entity.Tile, bool) {
	if e.selected == nil {
		return entity.Tile{}, false
	}
	return *e.selected, true
}

func (e *Engine) Gold() int { return e.wallet.Gold() }
func (e *Engine) Lives() int { return e.wallet.Lives() }
func (e *Engine) Elapsed() float64 { return e.elapsed }
func (e *Engine) Tick() uint64 { return e.tick }
func (e *Engine) Level() *Level { return e.level }
func (e *Engine) Catalog() *Catalog { return e.catalog }
func (e *Engine) Rules() Rules { return e.rules }
func (e *Engine) Paused() bool { return e.paused }
func (e *Engine) GameOver() bool { return e.phase == state.GameOver }
func (e *Engine) LastTick() TickReport { return e.report }

// Phase returns the run phase; Paused overrides Playing and LevelClear
func (e *Engine) Phase() state.Phase {
	if e.paused && e.phase != state.GameOver {
		return state.Paused
	}
	return e.phase
}

// Enemies returns the live enemies. The slice must not be modified.
func (e *Engine) Enemies() []*entity.Enemy { return e.enemies }

// Towers returns the placed towers. The slice must not be modified.
func (e *Engine) Towers() []*entity.Tower { return e.towers }

// Projectiles returns the live projectiles. The slice must not be modified.
func (e *Engine) Projectiles() []*entity.Projectile { return e.projectiles }

// Export captures the persisted subset of the run
func (e *Engine) Export() save.State {
	towers := make([]save.Tower, len(e.towers))
	for i, t := range e.towers {
		towers[i] = save.Tower{X: t.Tile.X, Y: t.Tile.Y, TypeID: t.Type, Level: t.Level}
	}
	return save.State{
		LevelIndex:     e.level.Index,
		Gold:           e.wallet.Gold(),
		Lives:          e.wallet.Lives(),
		Towers:         towers,
		LevelTime:      e.elapsed,
		SpawnedIndices: e.plan.Spawned(),
	}
}

// Restore loads s onto an empty battlefield. Towers that cannot stand on the
// level and spawn indices outside the plan are dropped and reported.
func (e *Engine) Restore(s save.State) ([]string, error) {
	if err := e.LoadLevel(s.LevelIndex); err != nil {
		return nil, err
	}

	var repairs []string
	e.wallet.Reset(s.Gold, s.Lives)
	e.elapsed = s.LevelTime
	if dropped := e.plan.Restore(s.SpawnedIndices); dropped > 0 {
		repairs = append(repairs, fmt.Sprintf("%d spawned indices outside the wave plan", dropped))
	}

	for _, st := range s.Towers {
		tile := entity.Tile{X: st.X, Y: st.Y}
		base, found := e.catalog.Tower(st.TypeID)
		switch {
		case !found:
			repairs = append(repairs, fmt.Sprintf("tower at (%d,%d): unknown type %q", st.X, st.Y, st.TypeID))
			continue
		case !e.level.InBounds(tile) || e.level.Path.Contains(tile):
			repairs = append(repairs, fmt.Sprintf("tower at (%d,%d): tile not buildable", st.X, st.Y))
			continue
		case e.towerAt[tile] != nil:
			repairs = append(repairs, fmt.Sprintf("tower at (%d,%d): tile occupied", st.X, st.Y))
			continue
		}
		level := st.Level
		if level < 1 {
			level = 1
		}
		e.addTower(tile, st.TypeID, base, level)
	}

	if e.wallet.Depleted() {
		e.phase = state.GameOver
	}

	e.log.Info().
		Int("level", s.LevelIndex).
		Int("gold", e.wallet.Gold()).
		Int("lives", e.wallet.Lives()).
		Int("towers", len(e.towers)).
		Float64("elapsed", e.elapsed).
		Msg("state restored")
	return repairs, nil
}
