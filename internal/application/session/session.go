// Package session binds an engine to a save store and turns command results
// into the one-line message shown to the player.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/younwookim/td/internal/application/save"
	"github.com/younwookim/td/internal/application/system"
)

// Observer is told about every command the session executes
type Observer func(tick uint64, cmd system.Command, res system.Result)

// Session is one player's run
type Session struct {
	engine   *system.Engine
	store    save.Store
	log      zerolog.Logger
	message  string
	observer Observer
	maxDT    float64
}

// DefaultMaxDelta caps a single frame step when no limit is configured
const DefaultMaxDelta = 0.06

// New creates a session. store may be nil, in which case save and load fail.
func New(engine *system.Engine, store save.Store, log zerolog.Logger) *Session {
	return &Session{engine: engine, store: store, log: log, maxDT: DefaultMaxDelta}
}

// SetMaxDelta sets the longest step Advance will pass to the engine
func (s *Session) SetMaxDelta(maxDT float64) {
	if maxDT > 0 {
		s.maxDT = maxDT
	}
}

// Advance steps the simulation by the frame time dt, clamped to the max delta.
func (s *Session) Advance(dt float64) system.Result {
	if dt > s.maxDT {
		dt = s.maxDT
	}
	return s.Do(system.Advance{DT: dt})
}

// Observe registers fn to see every executed command
func (s *Session) Observe(fn Observer) {
	s.observer = fn
}

// Do executes cmd and records the outcome for the HUD
func (s *Session) Do(cmd system.Command) system.Result {
	tick := s.engine.Tick()
	res := s.engine.Execute(cmd)
	if s.observer != nil {
		s.observer(tick, cmd, res)
	}

	switch cmd.(type) {
	case system.Advance, system.SelectTile:
		// frame steps and cursor moves are too frequent to report
		return res
	}
	if !res.OK {
		s.message = res.Reason.String()
		return res
	}
	s.message = describe(cmd, res)
	return res
}

func describe(cmd system.Command, res system.Result) string {
	switch c := cmd.(type) {
	case system.PlaceTower:
		return fmt.Sprintf("built %s (-%d)", c.Type, res.Gold)
	case system.UpgradeTower:
		return fmt.Sprintf("upgraded (-%d)", res.Gold)
	case system.SellTower:
		return fmt.Sprintf("sold (+%d)", res.Gold)
	case system.SetPaused:
		if c.Paused {
			return "paused"
		}
		return "resumed"
	case system.LoadLevel:
		return fmt.Sprintf("level %d", c.Index+1)
	case system.RestoreState:
		return "game loaded"
	}
	return ""
}

// PlaceSelected builds towerType on the selected tile
func (s *Session) PlaceSelected(towerType string) system.Result {
	tile, ok := s.engine.Selected()
	if !ok {
		s.message = system.ReasonNoSelection.String()
		return system.Result{Reason: system.ReasonNoSelection}
	}
	return s.Do(system.PlaceTower{Tile: tile, Type: towerType})
}

// UpgradeSelected upgrades the tower on the selected tile
func (s *Session) UpgradeSelected() system.Result {
	tower, ok := s.engine.SelectedTower()
	if !ok {
		s.message = system.ReasonNoSuchTower.String()
		return system.Result{Reason: system.ReasonNoSuchTower}
	}
	return s.Do(system.UpgradeTower{TowerID: tower.ID})
}

// SellSelected sells the tower on the selected tile
func (s *Session) SellSelected() system.Result {
	tower, ok := s.engine.SelectedTower()
	if !ok {
		s.message = system.ReasonNoSuchTower.String()
		return system.Result{Reason: system.ReasonNoSuchTower}
	}
	return s.Do(system.SellTower{TowerID: tower.ID})
}

// TogglePause flips the pause flag
func (s *Session) TogglePause() system.Result {
	return s.Do(system.SetPaused{Paused: !s.engine.Paused()})
}

// NextLevel loads the following level, wrapping after the last
func (s *Session) NextLevel() system.Result {
	next := (s.engine.Level().Index + 1) % s.engine.Catalog().LevelCount()
	return s.Do(system.LoadLevel{Index: next})
}

// Restart reloads the current level from scratch
func (s *Session) Restart() system.Result {
	return s.Do(system.LoadLevel{Index: s.engine.Level().Index})
}

// Save writes the current progress to the store
func (s *Session) Save(ctx context.Context) error {
	if s.store == nil {
		s.message = "saving disabled"
		return errors.New("no save store configured")
	}
	if err := s.store.Save(ctx, save.FromState(s.engine.Export())); err != nil {
		s.message = "save failed"
		return fmt.Errorf("failed to save game: %w", err)
	}
	s.message = "game saved"
	s.log.Info().Int("level", s.engine.Level().Index).Int("gold", s.engine.Gold()).Msg("game saved")
	return nil
}

// Load replaces the current progress with the stored save, repairing damaged fields.
// A store with nothing in it returns save.ErrNoSave and leaves the engine untouched.
func (s *Session) Load(ctx context.Context) error {
	if s.store == nil {
		s.message = "saving disabled"
		return errors.New("no save store configured")
	}
	rec, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, save.ErrNoSave) {
			s.message = "no saved game"
			return err
		}
		s.message = "load failed"
		return fmt.Errorf("failed to load game: %w", err)
	}

	rules := s.engine.Rules()
	st, repairs := save.Normalize(rec, save.Defaults{
		LevelCount: s.engine.Catalog().LevelCount(),
		Gold:       rules.StartingGold,
		Lives:      rules.StartingLives,
	})
	for _, r := range repairs {
		s.log.Warn().Str("repair", r).Msg("save repaired")
	}

	if res := s.Do(system.RestoreState{State: st}); !res.OK {
		return fmt.Errorf("failed to restore game: %s", res.Reason)
	}
	return nil
}

// Message returns the latest player-facing message
func (s *Session) Message() string { return s.message }

// Snapshot returns the engine's render snapshot
func (s *Session) Snapshot() system.Snapshot { return s.engine.Snapshot() }

// Engine returns the underlying engine
func (s *Session) Engine() *system.Engine { return s.engine }
