package playing

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/td/internal/domain/entity"
)

// Action is a player intent decoded from a key press
type Action int

const (
	ActionNone Action = iota
	ActionPlaceFirst
	ActionPlaceSecond
	ActionUpgrade
	ActionSell
	ActionPause
	ActionSave
	ActionLoad
	ActionNextLevel
	ActionRestart
	ActionQuit
)

// keyBinding maps a key to an action; kept as a slice so actions fire in a fixed order
type keyBinding struct {
	key    ebiten.Key
	action Action
}

var keyBindings = []keyBinding{
	{ebiten.KeyDigit1, ActionPlaceFirst},
	{ebiten.KeyNumpad1, ActionPlaceFirst},
	{ebiten.KeyDigit2, ActionPlaceSecond},
	{ebiten.KeyNumpad2, ActionPlaceSecond},
	{ebiten.KeyU, ActionUpgrade},
	{ebiten.KeyX, ActionSell},
	{ebiten.KeyP, ActionPause},
	{ebiten.KeyS, ActionSave},
	{ebiten.KeyL, ActionLoad},
	{ebiten.KeyN, ActionNextLevel},
	{ebiten.KeyR, ActionRestart},
	{ebiten.KeyEscape, ActionQuit},
}

// ActionsFor returns the actions bound to the pressed keys, in binding order
func ActionsFor(pressed func(ebiten.Key) bool) []Action {
	var actions []Action
	for _, b := range keyBindings {
		if pressed(b.key) {
			actions = append(actions, b.action)
		}
	}
	return actions
}

// TileAt converts a screen pixel to a tile coordinate.
// Pixels left of or above the map land on negative tiles.
func TileAt(x, y int, tileSize float64) entity.Tile {
	return entity.Tile{
		X: int(math.Floor(float64(x) / tileSize)),
		Y: int(math.Floor(float64(y) / tileSize)),
	}
}

// towerSlot returns the tower type bound to a place action
func towerSlot(a Action, types []string) (string, bool) {
	i := -1
	switch a {
	case ActionPlaceFirst:
		i = 0
	case ActionPlaceSecond:
		i = 1
	}
	if i < 0 || i >= len(types) {
		return "", false
	}
	return types[i], true
}
