package system

import "github.com/younwookim/td/internal/domain/entity"

// SelectTarget picks the live enemy in range of tower that is furthest along
// the path, breaking ties by the smaller distance to the tower center.
// Returns nil when nothing qualifies.
func SelectTarget(tower *entity.Tower, enemies []*entity.Enemy) *entity.Enemy {
	rng := tower.Stats().Range

	var best *entity.Enemy
	bestDist := 0.0
	for _, e := range enemies {
		if !e.IsAlive() {
			continue
		}
		d := entity.Dist(tower.Center, e.Pos)
		if d > rng {
			continue
		}
		if best == nil ||
			e.Progress() > best.Progress() ||
			(e.Progress() == best.Progress() && d < bestDist) {
			best = e
			bestDist = d
		}
	}
	return best
}
