package playing

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/younwookim/td/internal/application/state"
	"github.com/younwookim/td/internal/application/system"
	"github.com/younwookim/td/internal/domain/entity"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorGrass      = color.RGBA{46, 74, 52, 255}
	colorPath       = color.RGBA{150, 120, 80, 255}
	colorGrid       = color.RGBA{20, 30, 24, 255}
	colorSelect     = color.RGBA{255, 230, 90, 255}
	colorRange      = color.RGBA{255, 255, 255, 90}
	colorEnemy      = color.RGBA{200, 70, 70, 255}
	colorEnemyTough = color.RGBA{140, 40, 90, 255}
	colorProjectile = color.RGBA{255, 240, 200, 255}
	colorHealthBG   = color.RGBA{60, 60, 60, 255}
	colorHealthFG   = color.RGBA{100, 200, 100, 255}
	colorText       = color.RGBA{230, 230, 230, 255}
	colorGold       = color.RGBA{255, 215, 0, 255}
)

// towerColors are assigned by position in the catalog's tower order
var towerColors = []color.RGBA{
	{90, 160, 230, 255},
	{230, 140, 60, 255},
	{170, 110, 220, 255},
}

const (
	enemyRadius      = 12
	projectileRadius = 3
	healthBarW       = 24
	healthBarH       = 4
)

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	snap := p.session.Snapshot()
	ts := float32(snap.TileSize)

	screen.Fill(colorBG)
	drawTiles(screen, snap, ts)
	p.drawTowers(screen, snap, ts)
	drawEnemies(screen, snap)
	drawProjectiles(screen, snap)
	drawSelection(screen, snap, ts)
	p.drawHUD(screen, snap)

	switch snap.Phase {
	case state.Paused:
		p.drawOverlay(screen, color.RGBA{0, 0, 0, 128}, "PAUSED", "Press P to resume")
	case state.GameOver:
		p.drawOverlay(screen, color.RGBA{100, 0, 0, 180}, "GAME OVER", "Press R to restart")
	case state.LevelClear:
		p.drawOverlay(screen, color.RGBA{0, 60, 0, 120}, "LEVEL CLEAR", "Press N for the next level")
	}
}

func drawTiles(screen *ebiten.Image, snap system.Snapshot, ts float32) {
	path := make(map[entity.Tile]bool, len(snap.Path))
	for _, t := range snap.Path {
		path[t] = true
	}

	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			c := colorGrass
			if path[entity.Tile{X: x, Y: y}] {
				c = colorPath
			}
			px, py := float32(x)*ts, float32(y)*ts
			vector.DrawFilledRect(screen, px, py, ts, ts, c, false)
			vector.StrokeRect(screen, px, py, ts, ts, 1, colorGrid, false)
		}
	}
}

func (p *Playing) drawTowers(screen *ebiten.Image, snap system.Snapshot, ts float32) {
	types := p.session.Engine().Catalog().TowerTypes()
	for _, t := range snap.Towers {
		c := towerColors[0]
		for i, id := range types {
			if id == t.Type && i < len(towerColors) {
				c = towerColors[i]
			}
		}
		cx := (float32(t.Tile.X) + 0.5) * ts
		cy := (float32(t.Tile.Y) + 0.5) * ts
		vector.DrawFilledCircle(screen, cx, cy, ts*0.35, c, true)
		text.Draw(screen, fmt.Sprint(t.Level), basicfont.Face7x13, int(cx)-3, int(cy)+4, colorBG)
	}
}

func drawEnemies(screen *ebiten.Image, snap system.Snapshot) {
	for _, e := range snap.Enemies {
		if !e.Alive {
			continue
		}
		c := colorEnemy
		if e.MaxHP >= 100 {
			c = colorEnemyTough
		}
		x, y := float32(e.Pos.X), float32(e.Pos.Y)
		vector.DrawFilledCircle(screen, x, y, enemyRadius, c, true)

		ratio := float32(e.HP / e.MaxHP)
		if ratio < 0 {
			ratio = 0
		}
		bx, by := x-healthBarW/2, y-enemyRadius-healthBarH-3
		vector.DrawFilledRect(screen, bx, by, healthBarW, healthBarH, colorHealthBG, false)
		vector.DrawFilledRect(screen, bx, by, healthBarW*ratio, healthBarH, colorHealthFG, false)
	}
}

func drawProjectiles(screen *ebiten.Image, snap system.Snapshot) {
	for _, pr := range snap.Projectiles {
		vector.DrawFilledCircle(screen, float32(pr.Pos.X), float32(pr.Pos.Y), projectileRadius, colorProjectile, true)
	}
}

func drawSelection(screen *ebiten.Image, snap system.Snapshot, ts float32) {
	sel := snap.Selection
	if sel == nil {
		return
	}
	px, py := float32(sel.Tile.X)*ts, float32(sel.Tile.Y)*ts
	vector.StrokeRect(screen, px+1, py+1, ts-2, ts-2, 2, colorSelect, false)
	if sel.Tower != nil {
		vector.StrokeCircle(screen, px+ts/2, py+ts/2, float32(sel.Tower.Range), 1, colorRange, true)
	}
}

func (p *Playing) drawHUD(screen *ebiten.Image, snap system.Snapshot) {
	top := int(float64(snap.Height) * snap.TileSize)
	face := basicfont.Face7x13

	status := fmt.Sprintf("Gold %d   Lives %d   Wave %d/%d   Level %d: %s",
		snap.Gold, snap.Lives, snap.Wave, snap.WaveCount, snap.LevelIndex+1, snap.LevelName)
	text.Draw(screen, status, face, 8, top+16, colorGold)

	if line := selectionLine(snap.Selection); line != "" {
		text.Draw(screen, line, face, 8, top+32, colorText)
	}
	if msg := p.session.Message(); msg != "" {
		text.Draw(screen, msg, face, p.screenW-8-len(msg)*7, top+32, colorText)
	}

	help := "LMB select | 1/2 build | U upgrade | RMB/X sell | P pause | S/L save/load | N next | R restart | Esc quit"
	if p.replayer != nil {
		help = fmt.Sprintf("REPLAY %d/%d | Esc quit", p.replayer.Position(), p.replayer.Total())
	}
	text.Draw(screen, help, face, 8, top+50, colorText)
}

// selectionLine describes the selected tile for the HUD
func selectionLine(sel *system.Selection) string {
	switch {
	case sel == nil:
		return ""
	case sel.Tower == nil:
		return fmt.Sprintf("Tile (%d,%d)", sel.Tile.X, sel.Tile.Y)
	default:
		t := sel.Tower
		return fmt.Sprintf("%s L%d  dmg %.0f  range %.0f  upgrade %d  sell %d",
			t.Name, t.Level, t.Damage, t.Range, sel.UpgradeCost, sel.Refund)
	}
}

func (p *Playing) drawOverlay(screen *ebiten.Image, c color.RGBA, title, hint string) {
	vector.DrawFilledRect(screen, 0, 0, float32(p.screenW), float32(p.screenH-HUDHeight), c, false)
	cx, cy := p.screenW/2, (p.screenH-HUDHeight)/2
	text.Draw(screen, title, basicfont.Face7x13, cx-len(title)*7/2, cy-8, colorText)
	text.Draw(screen, hint, basicfont.Face7x13, cx-len(hint)*7/2, cy+12, colorText)
}
