// Package save defines the persisted game payload and how a damaged payload
// is repaired on load.
package save

import (
	"context"
	"errors"
	"fmt"
	"math"
)

//go:generate go tool mockgen -destination=./mocks/store_mock.go -package=mocks . Store

// ErrNoSave is returned by a Store that holds no saved game
var ErrNoSave = errors.New("no saved game")

// Store persists a single save slot
type Store interface {
	Save(ctx context.Context, r Record) error
	Load(ctx context.Context) (Record, error)
}

// TowerRecord is a persisted tower. Fields are pointers so a missing key can
// be told apart from a zero value.
type TowerRecord struct {
	TX     *int    `json:"tx"`
	TY     *int    `json:"ty"`
	TypeID *string `json:"type_id"`
	Level  *int    `json:"level,omitempty"`
}

// Record is the persisted payload as read from or written to a Store
type Record struct {
	LevelIndex     *int          `json:"level_index"`
	Gold           *int          `json:"gold"`
	Lives          *int          `json:"lives"`
	Towers         []TowerRecord `json:"towers"`
	LevelTime      *float64      `json:"level_time"`
	SpawnedIndices []int         `json:"spawned_indices"`
}

// Tower is a persisted tower after repair
type Tower struct {
	X, Y   int
	TypeID string
	Level  int
}

// State is a fully populated, repaired save
type State struct {
	LevelIndex     int
	Gold           int
	Lives          int
	Towers         []Tower
	LevelTime      float64
	SpawnedIndices []int
}

// Defaults are the values a damaged field falls back to
type Defaults struct {
	LevelCount int
	Gold       int
	Lives      int
}

// FromState converts a State into a writable Record
func FromState(s State) Record {
	towers := make([]TowerRecord, len(s.Towers))
	for i, t := range s.Towers {
		towers[i] = TowerRecord{
			TX:     ptr(t.X),
			TY:     ptr(t.Y),
			TypeID: ptr(t.TypeID),
			Level:  ptr(t.Level),
		}
	}
	spawned := append([]int{}, s.SpawnedIndices...)
	return Record{
		LevelIndex:     ptr(s.LevelIndex),
		Gold:           ptr(s.Gold),
		Lives:          ptr(s.Lives),
		Towers:         towers,
		LevelTime:      ptr(s.LevelTime),
		SpawnedIndices: spawned,
	}
}

// Normalize repairs every field of r independently and returns the result
// together with a description of each repair made.
func Normalize(r Record, d Defaults) (State, []string) {
	var repairs []string
	fix := func(format string, args ...any) {
		repairs = append(repairs, fmt.Sprintf(format, args...))
	}

	s := State{LevelIndex: 0, Gold: d.Gold, Lives: d.Lives}

	switch {
	case r.LevelIndex == nil:
		fix("level_index missing")
	case *r.LevelIndex < 0 || *r.LevelIndex >= d.LevelCount:
		fix("level_index %d out of range", *r.LevelIndex)
	default:
		s.LevelIndex = *r.LevelIndex
	}

	switch {
	case r.Gold == nil:
		fix("gold missing")
	case *r.Gold < 0:
		fix("gold %d negative", *r.Gold)
	default:
		s.Gold = *r.Gold
	}

	switch {
	case r.Lives == nil:
		fix("lives missing")
	case *r.Lives <= 0:
		fix("lives %d not positive", *r.Lives)
	default:
		s.Lives = *r.Lives
	}

	switch {
	case r.LevelTime == nil:
		fix("level_time missing")
	case *r.LevelTime < 0 || math.IsNaN(*r.LevelTime) || math.IsInf(*r.LevelTime, 0):
		fix("level_time %g invalid", *r.LevelTime)
	default:
		s.LevelTime = *r.LevelTime
	}

	seen := make(map[int]bool, len(r.SpawnedIndices))
	for _, i := range r.SpawnedIndices {
		if i < 0 {
			fix("spawned index %d negative", i)
			continue
		}
		if seen[i] {
			continue
		}
		seen[i] = true
		s.SpawnedIndices = append(s.SpawnedIndices, i)
	}

	for i, t := range r.Towers {
		if t.TX == nil || t.TY == nil || t.TypeID == nil {
			fix("tower %d incomplete", i)
			continue
		}
		level := 1
		if t.Level != nil {
			if *t.Level >= 1 {
				level = *t.Level
			} else {
				fix("tower %d level %d below 1", i, *t.Level)
			}
		}
		s.Towers = append(s.Towers, Tower{X: *t.TX, Y: *t.TY, TypeID: *t.TypeID, Level: level})
	}

	return s, repairs
}

func ptr[T any](v T) *T {
	return &v
}
