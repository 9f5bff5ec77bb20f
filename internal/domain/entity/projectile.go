package entity

// Impact describes what happened to a projectile during one update
type Impact int

const (
	// ImpactNone means the projectile is still in flight
	ImpactNone Impact = iota
	// ImpactHit means damage was applied and the target survived
	ImpactHit
	// ImpactKill means damage was applied and the target died
	ImpactKill
	// ImpactLost means the target was gone; no damage was applied
	ImpactLost
)

// Projectile homes on a single enemy.
// It holds the target's ID only; the owner resolves it each tick so a
// projectile never touches an enemy that was already removed.
type Projectile struct {
	ID       EntityID
	Pos      Vec2
	TargetID EntityID
	Speed    float64
	Damage   float64
	Alive    bool
}

// NewProjectile creates a live projectile at pos aimed at targetID
func NewProjectile(id EntityID, pos Vec2, targetID EntityID, speed, damage float64) *Projectile {
	return &Projectile{
		ID:       id,
		Pos:      pos,
		TargetID: targetID,
		Speed:    speed,
		Damage:   damage,
		Alive:    true,
	}
}

// Update moves the projectile toward target for dt seconds.
// target is the resolved TargetID, or nil if it no longer exists.
func (p *Projectile) Update(dt float64, target *Enemy) Impact {
	if !p.Alive {
		return ImpactNone
	}
	if target == nil || !target.IsAlive() {
		p.Alive = false
		return ImpactLost
	}

	pos, arrived := stepToward(p.Pos, target.Pos, p.Speed*dt)
	p.Pos = pos
	if !arrived {
		return ImpactNone
	}

	p.Alive = false
	if target.TakeDamage(p.Damage) {
		return ImpactKill
	}
	return ImpactHit
}
