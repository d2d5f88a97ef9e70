package pathfinding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isoflow/diagram"
	"isoflow/geometry"
)

func TestPlaceArrows_Endpoints(t *testing.T) {
	path := tiles([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0})

	arrows := PlaceArrows(path, diagram.ArrowsBoth, 0)
	require.Len(t, arrows, 2)

	from, to := arrows[0], arrows[1]
	assert.Equal(t, ArrowFrom, from.ID)
	assert.Equal(t, geometry.Point{X: 1, Y: 0}, from.Position)
	assert.Equal(t, -90.0, from.Rotation)

	assert.Equal(t, ArrowTo, to.ID)
	assert.Equal(t, geometry.Point{X: 2, Y: 0}, to.Position)
	assert.Equal(t, 90.0, to.Rotation)
}

func TestPlaceArrows_Styles(t *testing.T) {
	path := tiles([2]int{0, 0}, [2]int{0, 1})
	assert.Nil(t, PlaceArrows(path, diagram.ArrowsNone, 0))
	assert.Len(t, PlaceArrows(path, diagram.ArrowsTo, 0), 1)
	assert.Len(t, PlaceArrows(path, diagram.ArrowsFrom, 0), 1)
	assert.Nil(t, PlaceArrows(tiles([2]int{0, 0}), diagram.ArrowsBoth, 0))
}

func TestPlaceArrows_Offset(t *testing.T) {
	path := tiles([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3}, [2]int{0, 4})

	arrows := PlaceArrows(path, diagram.ArrowsBoth, 1.5)
	require.Len(t, arrows, 2)
	assert.Equal(t, geometry.Point{X: 0, Y: 1.5}, arrows[0].Position)
	assert.Equal(t, 0.0, arrows[0].Rotation, "from arrow is flipped to face the start")
	assert.Equal(t, geometry.Point{X: 0, Y: 2.5}, arrows[1].Position)
	assert.Equal(t, 180.0, arrows[1].Rotation)
}

func TestPlaceArrows_OffsetBeyondPathCollapses(t *testing.T) {
	path := tiles([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0})
	beyond := PlaceArrows(path, diagram.ArrowsTo, 10)
	atEnd := PlaceArrows(path, diagram.ArrowsTo, 0)
	assert.Equal(t, atEnd, beyond)
}

func TestRotationTable(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   float64
	}{
		{1, 1, 135}, {1, -1, 45}, {1, 0, 90},
		{-1, 1, -135}, {-1, -1, -45}, {-1, 0, -90},
		{0, 1, 180}, {0, -1, 0}, {0, 0, -90},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rotation(tt.dx, tt.dy), "dx=%d dy=%d", tt.dx, tt.dy)
	}
}
