package entity

import (
	"errors"
	"fmt"
)

// ErrPathTooShort is returned when a path has fewer than two waypoints
var ErrPathTooShort = errors.New("path needs at least 2 tiles")

// Path is the immutable ordered waypoint list enemies follow.
// Waypoints are the centers of the level's path tiles.
type Path struct {
	tiles     []Tile
	waypoints []Vec2
	onPath    map[Tile]struct{}
}

// NewPath builds a Path from tile coordinates
func NewPath(tiles []Tile, tileSize float64) (*Path, error) {
	if len(tiles) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrPathTooShort, len(tiles))
	}
	if tileSize <= 0 {
		return nil, fmt.Errorf("tile size must be positive, got %v", tileSize)
	}

	p := &Path{
		tiles:     make([]Tile, len(tiles)),
		waypoints: make([]Vec2, len(tiles)),
		onPath:    make(map[Tile]struct{}, len(tiles)),
	}
	copy(p.tiles, tiles)
	for i, t := range tiles {
		p.waypoints[i] = TileCenter(t, tileSize)
		p.onPath[t] = struct{}{}
	}
	return p, nil
}

// Len returns the number of waypoints
func (p *Path) Len() int {
	return len(p.waypoints)
}

// Waypoint returns the i-th waypoint
func (p *Path) Waypoint(i int) Vec2 {
	return p.waypoints[i]
}

// Start returns the first waypoint (spawn point)
func (p *Path) Start() Vec2 {
	return p.waypoints[0]
}

// Goal returns the last waypoint
func (p *Path) Goal() Vec2 {
	return p.waypoints[len(p.waypoints)-1]
}

// Contains reports whether a tile is part of the path
func (p *Path) Contains(t Tile) bool {
	_, ok := p.onPath[t]
	return ok
}

// Tiles returns a copy of the path tiles
func (p *Path) Tiles() []Tile {
	out := make([]Tile, len(p.tiles))
	copy(out, p.tiles)
	return out
}
