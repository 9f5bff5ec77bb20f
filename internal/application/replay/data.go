package replay

import (
	"fmt"

	"github.com/younwookim/td/internal/application/save"
	"github.com/younwookim/td/internal/application/system"
	"github.com/younwookim/td/internal/domain/entity"
)

// Version is written into every replay file
const Version = "1.0"

// Entry records one command issued to the engine
type Entry struct {
	T      uint64      `json:"t"`  // engine tick when issued
	Op     string      `json:"op"` // command kind
	X      int         `json:"x,omitempty"`
	Y      int         `json:"y,omitempty"`
	Type   string      `json:"type,omitempty"`
	ID     uint64      `json:"id,omitempty"`
	Paused bool        `json:"paused,omitempty"`
	DT     float64     `json:"dt,omitempty"`
	Level  int         `json:"level,omitempty"`
	State  *save.State `json:"state,omitempty"`
}

// Op names
const (
	OpPlace   = "place"
	OpUpgrade = "upgrade"
	OpSell    = "sell"
	OpSelect  = "select"
	OpPause   = "pause"
	OpAdvance = "advance"
	OpLevel   = "level"
	OpRestore = "restore"
)

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	SessionID string       `json:"sessionId"`
	Level     int          `json:"level"`
	Rules     system.Rules `json:"rules"`
	StartTime string       `json:"startTime"`
	Entries   []Entry      `json:"entries"`
}

// Encode converts a command into a log entry
func Encode(tick uint64, cmd system.Command) (Entry, error) {
	e := Entry{T: tick}
	switch c := cmd.(type) {
	case system.PlaceTower:
		e.Op, e.X, e.Y, e.Type = OpPlace, c.Tile.X, c.Tile.Y, c.Type
	case system.UpgradeTower:
		e.Op, e.ID = OpUpgrade, uint64(c.TowerID)
	case system.SellTower:
		e.Op, e.ID = OpSell, uint64(c.TowerID)
	case system.SelectTile:
		e.Op, e.X, e.Y = OpSelect, c.Tile.X, c.Tile.Y
	case system.SetPaused:
		e.Op, e.Paused = OpPause, c.Paused
	case system.Advance:
		e.Op, e.DT = OpAdvance, c.DT
	case system.LoadLevel:
		e.Op, e.Level = OpLevel, c.Index
	case system.RestoreState:
		s := c.State
		e.Op, e.State = OpRestore, &s
	default:
		return Entry{}, fmt.Errorf("unsupported command %T", cmd)
	}
	return e, nil
}

// Decode converts a log entry back into a command
func Decode(e Entry) (system.Command, error) {
	switch e.Op {
	case OpPlace:
		return system.PlaceTower{Tile: entity.Tile{X: e.X, Y: e.Y}, Type: e.Type}, nil
	case OpUpgrade:
		return system.UpgradeTower{TowerID: entity.EntityID(e.ID)}, nil
	case OpSell:
		return system.SellTower{TowerID: entity.EntityID(e.ID)}, nil
	case OpSelect:
		return system.SelectTile{Tile: entity.Tile{X: e.X, Y: e.Y}}, nil
	case OpPause:
		return system.SetPaused{Paused: e.Paused}, nil
	case OpAdvance:
		return system.Advance{DT: e.DT}, nil
	case OpLevel:
		return system.LoadLevel{Index: e.Level}, nil
	case OpRestore:
		if e.State == nil {
			return nil, fmt.Errorf("restore entry at tick %d has no state", e.T)
		}
		return system.RestoreState{State: *e.State}, nil
	default:
		return nil, fmt.Errorf("unknown op %q at tick %d", e.Op, e.T)
	}
}
