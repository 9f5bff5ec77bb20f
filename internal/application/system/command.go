package system

import (
	"github.com/younwookim/td/internal/application/save"
	"github.com/younwookim/td/internal/domain/entity"
)

// Command is a player action the engine executes synchronously
type Command interface {
	isCommand()
}

// PlaceTower builds a level-1 tower of Type on Tile
type PlaceTower struct {
	Tile entity.Tile
	Type string
}

func (PlaceTower) isCommand() {}

// UpgradeTower raises a tower by one level
type UpgradeTower struct {
	TowerID entity.EntityID
}

func (UpgradeTower) isCommand() {}

// SellTower removes a tower for a partial refund
type SellTower struct {
	TowerID entity.EntityID
}

func (SellTower) isCommand() {}

// SelectTile moves the selection cursor
type SelectTile struct {
	Tile entity.Tile
}

func (SelectTile) isCommand() {}

// SetPaused suspends or resumes time
type SetPaused struct {
	Paused bool
}

func (SetPaused) isCommand() {}

// Advance runs one simulation tick of DT seconds
type Advance struct {
	DT float64
}

func (Advance) isCommand() {}

// LoadLevel replaces the battlefield with a fresh level
type LoadLevel struct {
	Index int
}

func (LoadLevel) isCommand() {}

// RestoreState resumes a saved run on an empty battlefield
type RestoreState struct {
	State save.State
}

func (RestoreState) isCommand() {}

// Reason explains why a command was rejected
type Reason int

const (
	ReasonNone Reason = iota
	ReasonOutOfBounds
	ReasonPathTile
	ReasonOccupied
	ReasonInsufficientGold
	ReasonUnknownTowerType
	ReasonNoSuchTower
	ReasonPaused
	ReasonGameOver
	ReasonInvalidDelta
	ReasonUnknownCommand
	ReasonNoSuchLevel
	ReasonNoSelection
)

// String returns a human-readable message
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "ok"
	case ReasonOutOfBounds:
		return "tile is outside the map"
	case ReasonPathTile:
		return "can't place on path"
	case ReasonOccupied:
		return "tile occupied"
	case ReasonInsufficientGold:
		return "not enough gold"
	case ReasonUnknownTowerType:
		return "unknown tower type"
	case ReasonNoSuchTower:
		return "no such tower"
	case ReasonPaused:
		return "game is paused"
	case ReasonGameOver:
		return "game over"
	case ReasonInvalidDelta:
		return "invalid time step"
	case ReasonUnknownCommand:
		return "unknown command"
	case ReasonNoSuchLevel:
		return "no such level"
	case ReasonNoSelection:
		return "select a tile first"
	default:
		return "unknown"
	}
}

// Result is the outcome of a command.
// Gold is the amount debited (place, upgrade) or credited (sell) on success.
type Result struct {
	OK      bool
	Reason  Reason
	TowerID entity.EntityID
	Gold    int
}

func accept() Result {
	return Result{OK: true}
}

func reject(r Reason) Result {
	return Result{Reason: r}
}
