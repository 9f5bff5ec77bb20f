package entity

// EnemyStats holds the static per-type values an enemy is spawned with
type EnemyStats struct {
	HP     float64
	Speed  float64 // distance per second
	Reward int     // gold credited on death by damage only
}

// Enemy represents an enemy walking the path.
//
// Segment is the index of the waypoint the enemy last reached; while moving it
// travels toward waypoint Segment+1. Segment == path.Len()-1 means the enemy is
// standing on (or moving onto) the goal.
type Enemy struct {
	ID      EntityID
	Type    string
	HP      float64
	MaxHP   float64
	Speed   float64
	Reward  int
	Pos     Vec2
	Segment int
	Alive   bool

	// Escaped is set when the enemy left the field through the goal
	Escaped bool

	path *Path
}

// NewEnemy creates a live enemy standing on the first waypoint of the path
func NewEnemy(id EntityID, enemyType string, stats EnemyStats, path *Path) *Enemy {
	return &Enemy{
		ID:     id,
		Type:   enemyType,
		HP:     stats.HP,
		MaxHP:  stats.HP,
		Speed:  stats.Speed,
		Reward: stats.Reward,
		Pos:    path.Start(),
		Alive:  true,
		path:   path,
	}
}

// Update integrates motion along the path for dt seconds.
// Arrival at a waypoint snaps exactly onto it and advances Segment by one.
func (e *Enemy) Update(dt float64) {
	if !e.Alive || e.Segment >= e.path.Len()-1 {
		return
	}

	target := e.path.Waypoint(e.Segment + 1)
	pos, arrived := stepToward(e.Pos, target, e.Speed*dt)
	e.Pos = pos
	if arrived {
		e.Segment++
	}
}

// ReachedGoal is true only when the final waypoint has been reached exactly
func (e *Enemy) ReachedGoal() bool {
	return e.Segment >= e.path.Len()-1 && e.Pos == e.path.Goal()
}

// TakeDamage applies damage and returns true if the hit was lethal
func (e *Enemy) TakeDamage(damage float64) bool {
	if !e.Alive {
		return false
	}
	e.HP -= damage
	if e.HP <= 0 {
		e.Alive = false
		return true
	}
	return false
}

// IsAlive returns true if the enemy is still on the field
func (e *Enemy) IsAlive() bool {
	return e.Alive
}

// Progress is the targeting priority: higher means closer to the goal
func (e *Enemy) Progress() int {
	return e.Segment
}

// Path returns the shared path this enemy follows
func (e *Enemy) Path() *Path {
	return e.path
}
