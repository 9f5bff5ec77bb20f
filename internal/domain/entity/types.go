package entity

import "math"

// EntityID is a unique identifier for an entity (never recycled within a run)
type EntityID uint64

// Tile is an integer grid coordinate
type Tile struct {
	X, Y int
}

// Vec2 is a point or vector in continuous battlefield space (pixels)
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * k
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between two points
func Dist(a, b Vec2) float64 {
	return b.Sub(a).Len()
}

// TileCenter converts a tile coordinate to the continuous center of that tile
func TileCenter(t Tile, tileSize float64) Vec2 {
	return Vec2{
		X: (float64(t.X) + 0.5) * tileSize,
		Y: (float64(t.Y) + 0.5) * tileSize,
	}
}

// stepToward moves from `from` toward `to` by at most `step`.
// If the remaining distance is within the step it snaps exactly to `to`
// and reports arrived. A zero-length gap counts as arrived.
func stepToward(from, to Vec2, step float64) (Vec2, bool) {
	d := to.Sub(from)
	dist := d.Len()
	if dist == 0 || dist <= step {
		return to, true
	}
	return from.Add(d.Scale(step / dist)), false
}
