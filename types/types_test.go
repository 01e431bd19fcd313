package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes(t *testing.T) {
	{ // BC flags from patch type tags
		tokens := []string{"wall", "patch", "empty", "symmetryPlane", "cyclicAMI", " Wall ", "calculated"}
		flags := []BCFLAG{BC_Wall, BC_Patch, BC_Empty, BC_Symmetry, BC_Cyclic, BC_Wall, BC_None}
		for i, token := range tokens {
			assert.Equal(t, flags[i], NewBCFLAG(token), token)
		}
		assert.Equal(t, "Wall", BC_Wall.String())
		assert.Equal(t, "None", BCFLAG(200).String())
	}
	{ // CellRef round trips through the raw sentinel encoding
		for _, v := range []int{0, 1, 3199, -10, -11, -42} {
			cr := CellRefFromSentinel(v)
			assert.Equal(t, v, cr.Sentinel())
			assert.Equal(t, v < 0, cr.IsBoundary())
		}
		c, ok := InternalCell(7).Cell()
		assert.True(t, ok)
		assert.Equal(t, 7, c)
		_, ok = InternalCell(7).BoundaryID()
		assert.False(t, ok)
		id, ok := BoundaryCell(-12).BoundaryID()
		assert.True(t, ok)
		assert.Equal(t, -12, id)
		c, ok = BoundaryCell(-12).Cell()
		assert.False(t, ok)
		assert.Equal(t, -1, c)
		assert.Equal(t, "cell(7)", InternalCell(7).String())
		assert.Equal(t, "boundary(-12)", BoundaryCell(-12).String())
		// The zero value is cell 0, not an unset marker
		assert.Equal(t, InternalCell(0), CellRef{})
		assert.False(t, CellRef{}.IsBoundary())
	}
}

func TestBoundary(t *testing.T) {
	b := NewBoundary()
	names := []string{"movingWall", "fixedWalls", "frontAndBack"}
	starts := []int{7840, 7920, 8160}
	sizes := []int{80, 240, 3200}
	typesIn := []string{"wall", "wall", "empty"}
	for i, name := range names {
		bp, err := b.Add(name, typesIn[i], sizes[i], starts[i])
		require.NoError(t, err)
		assert.Equal(t, FirstBoundaryID-i, bp.BoundaryID)
	}
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, names, b.Names())

	bp, ok := b.Patch("fixedWalls")
	require.True(t, ok)
	assert.Equal(t, "wall", bp.Type)
	assert.Equal(t, 240, bp.NumFaces)
	assert.Equal(t, 7920, bp.StartFace)
	assert.Equal(t, 8160, bp.EndFace())
	assert.True(t, bp.Contains(7920))
	assert.True(t, bp.Contains(8159))
	assert.False(t, bp.Contains(8160))
	assert.False(t, bp.Contains(7919))
	assert.Equal(t, BC_Wall, bp.BCFlag())

	byID, ok := b.ByID(-12)
	require.True(t, ok)
	assert.Equal(t, "frontAndBack", byID.Name)
	_, ok = b.ByID(-13)
	assert.False(t, ok)
	_, ok = b.ByID(0)
	assert.False(t, ok)
	_, ok = b.Patch("inlet")
	assert.False(t, ok)

	_, err := b.Add("movingWall", "wall", 1, 0)
	assert.Error(t, err)
	_, err = b.Add("negative", "wall", -1, 0)
	assert.Error(t, err)
	assert.Equal(t, 3, b.Len())

	// Patches returns a copy
	ps := b.Patches()
	ps[0].Name = "changed"
	bp, _ = b.Patch("movingWall")
	assert.Equal(t, "movingWall", bp.Name)

	var nilBoundary *Boundary
	assert.Equal(t, 0, nilBoundary.Len())
	_, ok = nilBoundary.Patch("movingWall")
	assert.False(t, ok)
}
