package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/younwookim/td/internal/application/save"
	"github.com/younwookim/td/internal/application/session"
	"github.com/younwookim/td/internal/application/state"
	"github.com/younwookim/td/internal/application/system"
	"github.com/younwookim/td/internal/domain/entity"
	"github.com/younwookim/td/internal/infrastructure/audio"
)

const storeTimeout = 2 * time.Second

var (
	styleGrass  = tcell.StyleDefault.Background(tcell.NewRGBColor(30, 60, 36))
	stylePath   = tcell.StyleDefault.Background(tcell.NewRGBColor(120, 95, 60)).Foreground(tcell.ColorBlack)
	styleTower  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleEnemy  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleShot   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleGold   = tcell.StyleDefault.Foreground(tcell.ColorGold)
	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite).Bold(true)
)

// sounder plays a cue; *audio.Player satisfies it
type sounder interface {
	Play(audio.Cue)
}

// view is the terminal driver: a cursor over the map plus key bindings
type view struct {
	sess   *session.Session
	sound  sounder
	log    zerolog.Logger
	cursor entity.Tile
}

func newView(sess *session.Session, sound sounder, log zerolog.Logger) *view {
	v := &view{sess: sess, sound: sound, log: log}
	if path := sess.Engine().Level().Path.Tiles(); len(path) > 0 {
		v.cursor = entity.Tile{X: path[0].X, Y: max(path[0].Y-1, 0)}
	}
	v.sess.Do(system.SelectTile{Tile: v.cursor})
	return v
}

// handleKey applies one key press and reports whether the driver should keep running
func (v *view) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		v.move(0, -1)
	case tcell.KeyDown:
		v.move(0, 1)
	case tcell.KeyLeft:
		v.move(-1, 0)
	case tcell.KeyRight:
		v.move(1, 0)
	case tcell.KeyRune:
		return v.handleRune(unicode.ToLower(ev.Rune()))
	}
	return true
}

func (v *view) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case '1', '2':
		types := v.sess.Engine().Catalog().TowerTypes()
		if i := int(r - '1'); i < len(types) {
			v.sess.PlaceSelected(types[i])
		}
	case 'u':
		v.sess.UpgradeSelected()
	case 'x':
		v.sess.SellSelected()
	case 'p':
		v.sess.TogglePause()
	case 's':
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := v.sess.Save(ctx); err != nil {
			v.log.Error().Err(err).Msg("save failed")
		}
	case 'l':
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := v.sess.Load(ctx); err != nil && !errors.Is(err, save.ErrNoSave) {
			v.log.Error().Err(err).Msg("load failed")
		}
		v.reselect()
	case 'n':
		v.sess.NextLevel()
		v.reselect()
	case 'r':
		v.sess.Restart()
		v.reselect()
	}
	return true
}

// move shifts the cursor, staying on the map
func (v *view) move(dx, dy int) {
	next := entity.Tile{X: v.cursor.X + dx, Y: v.cursor.Y + dy}
	if !v.sess.Engine().Level().InBounds(next) {
		return
	}
	v.cursor = next
	v.sess.Do(system.SelectTile{Tile: next})
}

// reselect keeps the cursor valid after the level changes
func (v *view) reselect() {
	lvl := v.sess.Engine().Level()
	v.cursor.X = min(v.cursor.X, lvl.Width-1)
	v.cursor.Y = min(v.cursor.Y, lvl.Height-1)
	v.sess.Do(system.SelectTile{Tile: v.cursor})
}

// tick advances the simulation and sounds the cues for what happened
func (v *view) tick(dt float64) {
	if res := v.sess.Advance(dt); !res.OK {
		return
	}
	report := v.sess.Engine().LastTick()
	if report.Leaked > 0 {
		v.sound.Play(audio.CueLeak)
	} else if report.Killed > 0 {
		v.sound.Play(audio.CueKill)
	}
}

func (v *view) draw(screen tcell.Screen) {
	snap := v.sess.Snapshot()
	screen.Clear()

	path := make(map[entity.Tile]bool, len(snap.Path))
	for _, t := range snap.Path {
		path[t] = true
	}
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			style, r := styleGrass, ' '
			if path[entity.Tile{X: x, Y: y}] {
				style, r = stylePath, '.'
			}
			screen.SetContent(x, y, r, nil, style)
		}
	}

	for _, t := range snap.Towers {
		screen.SetContent(t.Tile.X, t.Tile.Y, glyph(t.Name), nil, styleTower)
	}
	for _, p := range snap.Projectiles {
		tile := cellOf(p.Pos, snap.TileSize)
		screen.SetContent(tile.X, tile.Y, '*', nil, styleShot)
	}
	for _, e := range snap.Enemies {
		if !e.Alive {
			continue
		}
		tile := cellOf(e.Pos, snap.TileSize)
		screen.SetContent(tile.X, tile.Y, unicode.ToLower(glyph(e.Type)), nil, styleEnemy)
	}

	mainc, _, style, _ := screen.GetContent(v.cursor.X, v.cursor.Y)
	screen.SetContent(v.cursor.X, v.cursor.Y, mainc, nil, style.Reverse(true))

	row := snap.Height + 1
	putString(screen, 0, row, fmt.Sprintf("Gold %d  Lives %d  Wave %d/%d  %s",
		snap.Gold, snap.Lives, snap.Wave, snap.WaveCount, snap.LevelName), styleGold)
	putString(screen, 0, row+1, selectionText(snap.Selection), styleText)
	putString(screen, 0, row+2, v.sess.Message(), styleText)
	putString(screen, 0, row+3, "arrows move  1/2 build  u upgrade  x sell  p pause  s/l save/load  n next  r restart  q quit", styleText)

	if banner := bannerFor(snap.Phase); banner != "" {
		x := max((snap.Width-len(banner))/2, 0)
		putString(screen, x, snap.Height/2, banner, styleBanner)
	}

	screen.Show()
}

func bannerFor(p state.Phase) string {
	switch p {
	case state.Paused:
		return " PAUSED "
	case state.GameOver:
		return " GAME OVER - r "
	case state.LevelClear:
		return " CLEAR - n "
	}
	return ""
}

func selectionText(sel *system.Selection) string {
	switch {
	case sel == nil:
		return ""
	case sel.Tower == nil:
		return fmt.Sprintf("(%d,%d) empty", sel.Tile.X, sel.Tile.Y)
	default:
		return fmt.Sprintf("(%d,%d) %s L%d  upgrade %d  sell %d",
			sel.Tile.X, sel.Tile.Y, sel.Tower.Name, sel.Tower.Level, sel.UpgradeCost, sel.Refund)
	}
}

// glyph is the upper-cased first letter of a name
func glyph(name string) rune {
	for _, r := range strings.TrimSpace(name) {
		return unicode.ToUpper(r)
	}
	return '?'
}

func cellOf(pos entity.Vec2, tileSize float64) entity.Tile {
	return entity.Tile{X: int(pos.X / tileSize), Y: int(pos.Y / tileSize)}
}

func putString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
