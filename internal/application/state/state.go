package state

// Phase represents the engine's run phase
type Phase int

const (
	Playing Phase = iota
	Paused
	LevelClear
	GameOver
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case LevelClear:
		return "LevelClear"
	case GameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further ticks are processed in this phase
func (p Phase) Terminal() bool {
	return p == GameOver
}

// Advances reports whether the simulation clock runs in this phase
func (p Phase) Advances() bool {
	return p == Playing || p == LevelClear
}
