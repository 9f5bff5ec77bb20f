// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/td/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64

	now  func() time.Time
	last time.Time
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0, // Default to 60 FPS
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.frameTime())
	if errors.Is(err, scene.ErrQuit) {
		g.current.OnExit()
		return ebiten.Termination
	}
	if err != nil {
		return err
	}

	// Handle scene transition
	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// frameTime is the measured time since the last frame when a clock is set,
// otherwise the fixed step. The first measured frame uses the fixed step.
func (g *Game) frameTime() float64 {
	if g.now == nil {
		return g.dt
	}
	t := g.now()
	if g.last.IsZero() {
		g.last = t
		return g.dt
	}
	dt := t.Sub(g.last).Seconds()
	g.last = t
	return dt
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the fixed delta time used when no clock is set.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// UseClock makes Update pass measured wall time to the scene.
func (g *Game) UseClock(now func() time.Time) {
	g.now = now
	g.last = time.Time{}
}
