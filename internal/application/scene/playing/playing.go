// Package playing provides the battlefield scene.
package playing

import (
	"context"
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/younwookim/td/internal/application/replay"
	"github.com/younwookim/td/internal/application/save"
	"github.com/younwookim/td/internal/application/scene"
	"github.com/younwookim/td/internal/application/session"
	"github.com/younwookim/td/internal/application/system"
	"github.com/younwookim/td/internal/domain/entity"
)

// HUDHeight is the strip below the map reserved for status text
const HUDHeight = 56

// storeTimeout bounds a save or load triggered from the keyboard
const storeTimeout = 2 * time.Second

// Options configures a Playing scene
type Options struct {
	// RecordPath, when set, records every command and writes the log on exit
	RecordPath string
	// Replay, when set, drives the scene from a recorded log instead of input
	Replay *replay.ReplayData
	Log    zerolog.Logger
}

// Playing is the main gameplay scene
type Playing struct {
	session *session.Session
	log     zerolog.Logger
	screenW int
	screenH int

	recorder   *replay.Recorder
	recordPath string
	replayer   *replay.Replayer

	quit bool
}

// New creates a new Playing scene over sess
func New(sess *session.Session, opts Options) *Playing {
	w, h := ScreenSize(sess.Engine().Catalog())
	p := &Playing{
		session:    sess,
		log:        opts.Log,
		screenW:    w,
		screenH:    h,
		recordPath: opts.RecordPath,
	}

	if opts.Replay != nil {
		p.replayer = replay.NewReplayer(*opts.Replay)
	} else if opts.RecordPath != "" {
		e := sess.Engine()
		p.recorder = replay.NewRecorder(e.Level().Index, e.Rules())
		sess.Observe(func(tick uint64, cmd system.Command, _ system.Result) {
			p.recorder.Record(tick, cmd)
		})
		p.log.Info().Str("file", opts.RecordPath).Str("session", p.recorder.Data().SessionID).Msg("recording enabled")
	}

	return p
}

// ScreenSize returns the logical screen size that fits every level plus the HUD
func ScreenSize(c *system.Catalog) (int, int) {
	w, h := 0, 0
	for i := 0; i < c.LevelCount(); i++ {
		lvl, _ := c.Level(i)
		w = max(w, lvl.Width)
		h = max(h, lvl.Height)
	}
	return int(float64(w) * c.TileSize), int(float64(h)*c.TileSize) + HUDHeight
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	if p.replayer != nil {
		if err := p.stepReplay(); err != nil {
			return nil, err
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return nil, scene.ErrQuit
		}
		return nil, nil
	}

	p.readMouse()
	for _, a := range ActionsFor(inpututil.IsKeyJustPressed) {
		p.Apply(a)
	}
	if p.quit {
		return nil, scene.ErrQuit
	}

	p.session.Advance(dt)
	return nil, nil // nil = stay on this scene
}

func (p *Playing) readMouse() {
	tileSize := p.session.Engine().Catalog().TileSize
	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		p.Click(TileAt(x, y, tileSize))
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		p.Click(TileAt(x, y, tileSize))
		p.Apply(ActionSell)
	}
}

// stepReplay runs recorded commands up to and including the next frame step
func (p *Playing) stepReplay() error {
	for {
		cmd, ok, err := p.replayer.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		p.session.Do(cmd)
		if _, frame := cmd.(system.Advance); frame {
			return nil
		}
	}
}

// Click selects the tile under the cursor; clicks outside the map are ignored
func (p *Playing) Click(tile entity.Tile) {
	if !p.session.Engine().Level().InBounds(tile) {
		return
	}
	p.session.Do(system.SelectTile{Tile: tile})
}

// Apply performs a decoded action
func (p *Playing) Apply(a Action) {
	switch a {
	case ActionPlaceFirst, ActionPlaceSecond:
		if towerType, ok := towerSlot(a, p.session.Engine().Catalog().TowerTypes()); ok {
			p.session.PlaceSelected(towerType)
		}
	case ActionUpgrade:
		p.session.UpgradeSelected()
	case ActionSell:
		p.session.SellSelected()
	case ActionPause:
		p.session.TogglePause()
	case ActionSave:
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := p.session.Save(ctx); err != nil {
			p.log.Error().Err(err).Msg("save failed")
		}
	case ActionLoad:
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := p.session.Load(ctx); err != nil && !errors.Is(err, save.ErrNoSave) {
			p.log.Error().Err(err).Msg("load failed")
		}
	case ActionNextLevel:
		p.session.NextLevel()
	case ActionRestart:
		p.session.Restart()
	case ActionQuit:
		p.quit = true
	}
}

// saveRecording writes the command log to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || !p.recorder.IsRecording() {
		return
	}
	p.recorder.Stop()

	if err := p.recorder.Save(p.recordPath); err != nil {
		p.log.Error().Err(err).Msg("failed to save recording")
		return
	}
	p.log.Info().Str("file", p.recordPath).Int("entries", p.recorder.Len()).Msg("recording saved")
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	lvl := p.session.Engine().Level()
	p.log.Info().Int("level", lvl.Index).Str("name", lvl.Name).Bool("replay", p.replayer != nil).Msg("battlefield ready")
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// Layout returns the game's screen dimensions
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
