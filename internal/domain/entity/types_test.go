package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTileCenter(t *testing.T) {
	tests := []struct {
		name string
		tile Tile
		want Vec2
	}{
		{"origin", Tile{0, 0}, Vec2{32, 32}},
		{"row 3", Tile{0, 3}, Vec2{32, 224}},
		{"far corner", Tile{11, 7}, Vec2{736, 480}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TileCenter(tt.tile, 64))
		})
	}
}

func TestDist(t *testing.T) {
	assert.Equal(t, 5.0, Dist(Vec2{0, 0}, Vec2{3, 4}))
	assert.Equal(t, 0.0, Dist(Vec2{7, 7}, Vec2{7, 7}))
}

func TestStepToward(t *testing.T) {
	t.Run("partial step moves along direction", func(t *testing.T) {
		pos, arrived := stepToward(Vec2{0, 0}, Vec2{10, 0}, 4)
		assert.False(t, arrived)
		assert.Equal(t, Vec2{4, 0}, pos)
	})

	t.Run("step covering the gap snaps exactly", func(t *testing.T) {
		pos, arrived := stepToward(Vec2{0.1, 0.2}, Vec2{10, 0}, 100)
		assert.True(t, arrived)
		assert.Equal(t, Vec2{10, 0}, pos)
	})

	t.Run("exact distance counts as arrival", func(t *testing.T) {
		pos, arrived := stepToward(Vec2{0, 0}, Vec2{3, 4}, 5)
		assert.True(t, arrived)
		assert.Equal(t, Vec2{3, 4}, pos)
	})

	t.Run("zero gap arrives without dividing by zero", func(t *testing.T) {
		pos, arrived := stepToward(Vec2{2, 2}, Vec2{2, 2}, 0)
		assert.True(t, arrived)
		assert.Equal(t, Vec2{2, 2}, pos)
	})
}
