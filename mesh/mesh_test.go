package mesh

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gofoam/readfiles"
	"github.com/notargets/gofoam/testcases"
	"github.com/notargets/gofoam/types"
)

func readCavity(t *testing.T) (fm *FoamMesh, cav testcases.Cavity, caseDir string) {
	t.Helper()
	caseDir = t.TempDir()
	cav = testcases.StandardCavity()
	require.NoError(t, cav.Write(caseDir))
	fm, err := ReadFoamMesh(caseDir, readfiles.DefaultHeaderLines, false)
	require.NoError(t, err)
	return
}

func TestNewMesh(t *testing.T) {
	fm, cav, caseDir := readCavity(t)
	assert.Equal(t, caseDir, fm.Path)
	assert.Equal(t, 3200, fm.NumCells())
	assert.Equal(t, 7840, fm.NumInnerFaces())
	assert.Equal(t, 11360, fm.NumFaces())
	assert.Equal(t, 5043, fm.NumPoints())
	assert.Equal(t, []int{1, 42, 1723, 1682}, fm.Faces[0])
	assert.Equal(t, cav.NumCells(), len(fm.CellFaces))

	require.NoError(t, fm.ReadCellCenters(filepath.Join(caseDir, "0.5", "C")))
	require.Len(t, fm.CellCenters, fm.NumCells())
	c := fm.CellCenters[3199]
	assert.InDelta(t, 0.09875, c.X, 1.e-12)
	assert.InDelta(t, 0.09875, c.Y, 1.e-12)
	assert.InDelta(t, 0.0075, c.Z, 1.e-12)

	box := fm.BoundingBox()
	assert.Equal(t, r3.Vec{}, box.Min)
	assert.InDelta(t, 0.1, box.Max.X, 1.e-12)
	assert.InDelta(t, 0.01, box.Max.Z, 1.e-12)

	cbox := fm.CellCenterBox()
	assert.InDelta(t, 0.00125, cbox.Min.X, 1.e-12)
	assert.InDelta(t, 0.0025, cbox.Min.Z, 1.e-12)
	assert.InDelta(t, 0.09875, cbox.Max.Y, 1.e-12)
	assert.True(t, box.Contains(cbox.Min) && box.Contains(cbox.Max))
}

func TestTopologyInvariants(t *testing.T) {
	fm, _, _ := readCavity(t)
	for c := range fm.CellFaces {
		require.Equal(t, len(fm.CellFaces[c]), len(fm.CellNeighbors[c]), "cell %d", c)
		// Hex cells of the cavity have six faces
		assert.Len(t, fm.CellFaces[c], 6)
		for n, f := range fm.CellFaces[c] {
			ref := fm.CellNeighbors[c][n]
			if other, ok := ref.Cell(); ok {
				// the face joins c and other
				pair := []int{fm.Owners[f], fm.Neighbors[f].Sentinel()}
				assert.ElementsMatch(t, []int{c, other}, pair)
			} else {
				assert.Equal(t, c, fm.Owners[f])
				assert.Equal(t, fm.Neighbors[f], ref)
			}
		}
	}
	// Adjacency is symmetric
	for f := 0; f < fm.NumInnerFaces(); f++ {
		owner := fm.Owners[f]
		nb, ok := fm.Neighbors[f].Cell()
		require.True(t, ok)
		ownerRefs, _ := fm.CellNeighborCells(owner)
		nbRefs, _ := fm.CellNeighborCells(nb)
		assert.Contains(t, ownerRefs, types.InternalCell(nb))
		assert.Contains(t, nbRefs, types.InternalCell(owner))
	}
}

func TestBoundaryQueries(t *testing.T) {
	fm, cav, _ := readCavity(t)
	patches := fm.Boundary.Patches()
	ids := make([]int, len(patches))
	for i, bp := range patches {
		ids[i] = bp.BoundaryID
	}
	assert.Equal(t, []int{-10, -11, -12}, ids)

	for f := 0; f < fm.NumFaces(); f++ {
		inPatch := false
		for _, bp := range patches {
			if bp.Contains(f) {
				inPatch = true
				assert.True(t, fm.IsFaceOnPatch(f, bp.Name))
				got, ok := fm.FacePatch(f)
				assert.True(t, ok)
				assert.Equal(t, bp.Name, got.Name)
			}
		}
		assert.Equal(t, inPatch, fm.IsFaceOnBoundary(f), "face %d", f)
	}
	assert.False(t, fm.IsFaceOnBoundary(-1))
	assert.False(t, fm.IsFaceOnBoundary(fm.NumFaces()))
	assert.False(t, fm.IsFaceOnPatch(7840, "fixedWalls"))
	assert.True(t, fm.IsFaceOnPatch(7840, "movingWall"))
	assert.False(t, fm.IsFaceOnPatch(7840, "nonexistent"))
	_, ok := fm.FacePatch(0)
	assert.False(t, ok)

	for _, bp := range patches {
		cells := fm.BoundaryCells(bp.Name)
		assert.Len(t, cells, bp.NumFaces)
		for n, c := range cells {
			assert.Equal(t, fm.Owners[bp.StartFace+n], c)
			assert.True(t, fm.IsCellOnPatch(c, bp.Name))
			assert.True(t, fm.IsCellOnBoundary(c))
		}
	}
	assert.Equal(t, []int{}, fm.BoundaryCells("nonexistent"))

	// Every cavity cell touches frontAndBack since NZ = 2
	corner := cav.CellID(0, 0, 0)
	lid := cav.CellID(20, cav.NY-1, 1)
	assert.True(t, fm.IsCellOnPatch(corner, "fixedWalls"))
	assert.False(t, fm.IsCellOnPatch(corner, "movingWall"))
	assert.True(t, fm.IsCellOnPatch(lid, "movingWall"))
	assert.False(t, fm.IsCellOnPatch(lid, "fixedWalls"))
	assert.False(t, fm.IsCellOnPatch(lid, "nonexistent"))
	assert.False(t, fm.IsCellOnBoundary(-1))
	assert.False(t, fm.IsCellOnBoundary(fm.NumCells()))
	assert.False(t, fm.IsCellOnPatch(fm.NumCells(), "movingWall"))

	raw := fm.RawNeighbors()
	require.Len(t, raw, fm.NumFaces())
	assert.GreaterOrEqual(t, raw[0], 0)
	assert.Equal(t, -10, raw[7840])
	assert.Equal(t, -11, raw[7920])
	assert.Equal(t, -12, raw[fm.NumFaces()-1])
	for f, v := range raw {
		assert.Equal(t, fm.Neighbors[f], types.CellRefFromSentinel(v))
	}

	_, ok = fm.CellNeighborCells(fm.NumCells())
	assert.False(t, ok)
	refs, ok := fm.CellNeighborCells(corner)
	assert.True(t, ok)
	assert.Len(t, refs, 6)
}

func TestInteriorCellOffBoundary(t *testing.T) {
	// 3x3x3 block, the middle cell has no boundary face
	cav := testcases.Cavity{NX: 3, NY: 3, NZ: 3, Lx: 1, Ly: 1, Lz: 1}
	faces, owners, neighbours, patches := cav.Topology()
	bd := types.NewBoundary()
	for _, p := range patches {
		_, err := bd.Add(p.Name, p.Type, p.NumFaces, p.StartFace)
		require.NoError(t, err)
	}
	fm, err := NewFoamMesh(nil, faces, owners, neighbours, bd)
	require.NoError(t, err)
	middle := cav.CellID(1, 1, 1)
	assert.False(t, fm.IsCellOnBoundary(middle))
	refs, _ := fm.CellNeighborCells(middle)
	assert.Len(t, refs, 6)
	for _, ref := range refs {
		assert.False(t, ref.IsBoundary())
	}
	assert.True(t, fm.IsCellOnBoundary(cav.CellID(0, 1, 1)))

	degrees := fm.CellDegrees()
	assert.Equal(t, 6, degrees[middle])
	assert.Equal(t, 3, degrees[cav.CellID(0, 0, 0)])
	adj := fm.CellAdjacency()
	assert.Equal(t, 2*fm.NumInnerFaces(), adj.NNZ())
	assert.Equal(t, 1., adj.At(middle, middle+1))
	assert.Equal(t, 1., adj.At(middle+1, middle))
	assert.Equal(t, 0., adj.At(0, middle))
}

func TestBuildConnectivity(t *testing.T) {
	// Two cells sharing face 0, faces 1..3 on two patches
	owners := []int{0, 0, 1, 1}
	neighbors := []int{1}
	bd := types.NewBoundary()
	_, err := bd.Add("left", "wall", 1, 1)
	require.NoError(t, err)
	_, err = bd.Add("right", "patch", 2, 2)
	require.NoError(t, err)

	conn, err := BuildConnectivity(owners, neighbors, bd)
	require.NoError(t, err)
	assert.Equal(t, 2, conn.NumCells)
	assert.Equal(t, 1, conn.NumInnerFaces)
	assert.Equal(t, []types.CellRef{
		types.InternalCell(1), types.BoundaryCell(-10), types.BoundaryCell(-11), types.BoundaryCell(-11),
	}, conn.Neighbors)
	assert.Equal(t, [][]int{{0, 1}, {0, 2, 3}}, conn.CellFaces)
	assert.Equal(t, [][]types.CellRef{
		{types.InternalCell(1), types.BoundaryCell(-10)},
		{types.InternalCell(0), types.BoundaryCell(-11), types.BoundaryCell(-11)},
	}, conn.CellNeighbors)

	{ // Boundary faces outside every patch keep the placeholder
		conn, err = BuildConnectivity(owners, neighbors, types.NewBoundary())
		require.NoError(t, err)
		assert.Equal(t, types.BoundaryCell(types.FirstBoundaryID), conn.Neighbors[3])
	}
	{ // Overlapping patch ranges are accepted, the later patch wins
		overlap := types.NewBoundary()
		_, err = overlap.Add("a", "wall", 2, 1)
		require.NoError(t, err)
		_, err = overlap.Add("b", "patch", 2, 2)
		require.NoError(t, err)
		conn, err = BuildConnectivity(owners, neighbors, overlap)
		require.NoError(t, err)
		assert.Equal(t, []types.CellRef{
			types.InternalCell(1), types.BoundaryCell(-10), types.BoundaryCell(-11), types.BoundaryCell(-11),
		}, conn.Neighbors)
	}
	{ // Malformed inputs
		big := types.NewBoundary()
		_, err = big.Add("big", "wall", 10, 1)
		require.NoError(t, err)
		testCases := []struct {
			name      string
			owners    []int
			neighbors []int
			boundary  *types.Boundary
		}{
			{"more neighbours than owners", []int{0}, []int{1, 2}, bd},
			{"negative owner", []int{0, -1}, nil, nil},
			{"negative neighbour", []int{0, 1}, []int{-3}, nil},
			{"patch past last face", owners, neighbors, big},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				conn, err := BuildConnectivity(tc.owners, tc.neighbors, tc.boundary)
				require.Error(t, err)
				assert.ErrorIs(t, err, readfiles.ErrMalformed)
				assert.Nil(t, conn)
			})
		}
	}
	{ // No faces at all
		conn, err = BuildConnectivity(nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, conn.NumCells)
		assert.Empty(t, conn.CellFaces)
	}
}

func TestAttachFields(t *testing.T) {
	fm, cav, caseDir := readCavity(t)
	require.NoError(t, fm.AttachVectorField("U", filepath.Join(caseDir, "0", "U")))
	u, ok := fm.VectorField("U")
	require.True(t, ok)
	assert.Equal(t, []r3.Vec{{}}, u)

	// Re-reading under the same name replaces the field
	require.NoError(t, fm.AttachVectorField("U", filepath.Join(caseDir, "0.5", "C")))
	u, _ = fm.VectorField("U")
	assert.Len(t, u, cav.NumCells())

	require.NoError(t, fm.AttachScalarField("p", filepath.Join(caseDir, "0.5", "p")))
	p, ok := fm.ScalarField("p")
	require.True(t, ok)
	assert.Len(t, p, cav.NumCells())
	assert.InDelta(t, 0.00125*2, p[0], 1.e-12)

	_, ok = fm.ScalarField("T")
	assert.False(t, ok)

	// A failed read keeps what was attached before
	require.NoError(t, fm.ReadCellCenters(filepath.Join(caseDir, "0.5", "C")))
	err := fm.ReadCellCenters(filepath.Join(caseDir, "0.5", "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Len(t, fm.CellCenters, cav.NumCells())
}

func TestReadFoamMeshErrors(t *testing.T) {
	_, err := ReadFoamMesh(t.TempDir(), readfiles.DefaultHeaderLines, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	caseDir := t.TempDir()
	cav := testcases.Cavity{NX: 2, NY: 2, NZ: 1, Lx: 1, Ly: 1, Lz: 1}
	require.NoError(t, cav.Write(caseDir))
	fm, err := ReadFoamMesh(caseDir, readfiles.DefaultHeaderLines, false)
	require.NoError(t, err)
	assert.Equal(t, 4, fm.NumCells())

	// Corrupt a face line so its vertex count no longer matches
	faces := filepath.Join(caseDir, "constant", "polyMesh", "faces")
	content := cav.FacesFile()
	faceList, _, _, _ := cav.Topology()
	first := "4(" + joinInts(faceList[0]) + ")"
	require.Contains(t, content, first)
	corrupt := []byte(strings.Replace(content, first, "5("+joinInts(faceList[0])+")", 1))
	require.NoError(t, os.WriteFile(faces, corrupt, 0644))
	fm, err = ReadFoamMesh(caseDir, readfiles.DefaultHeaderLines, false)
	require.Error(t, err)
	assert.Nil(t, fm)
	assert.ErrorIs(t, err, readfiles.ErrMalformed)

	// A patch reaching past the last face is rejected after all files decode
	require.NoError(t, cav.Write(caseDir))
	boundary := filepath.Join(caseDir, "constant", "polyMesh", "boundary")
	_, _, _, patches := cav.Topology()
	last := patches[len(patches)-1]
	bcontent := cav.BoundaryFile()
	startLine := "startFace       " + strconv.Itoa(last.StartFace) + ";"
	require.Contains(t, bcontent, startLine)
	bcontent = strings.Replace(bcontent, startLine, "startFace       "+strconv.Itoa(cav.NumFaces())+";", 1)
	require.NoError(t, os.WriteFile(boundary, []byte(bcontent), 0644))
	fm, err = ReadFoamMesh(caseDir, readfiles.DefaultHeaderLines, false)
	require.Error(t, err)
	assert.Nil(t, fm)
	assert.ErrorIs(t, err, readfiles.ErrMalformed)

	// Faces and owners must pair up
	fm, err = NewFoamMesh(nil, [][]int{{0, 1, 2}}, []int{0, 0}, nil, nil)
	require.Error(t, err)
	assert.Nil(t, fm)
	assert.ErrorIs(t, err, readfiles.ErrCountMismatch)
}

func TestDegenerateCellQueries(t *testing.T) {
	// Neighbour 2 lies beyond the highest owner, so the adjacency buffers
	// reach past NumCells
	fm, err := NewFoamMesh(nil, [][]int{{0, 1, 2}, {0, 1, 3}}, []int{0, 0}, []int{2}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, fm.NumCells())

	refs, ok := fm.CellNeighborCells(2)
	require.True(t, ok)
	assert.Equal(t, []types.CellRef{types.InternalCell(0)}, refs)
	assert.False(t, fm.IsCellOnBoundary(2))

	refs, ok = fm.CellNeighborCells(0)
	require.True(t, ok)
	assert.Equal(t, []types.CellRef{types.InternalCell(2), types.BoundaryCell(types.FirstBoundaryID)}, refs)
	assert.True(t, fm.IsCellOnBoundary(0))

	// All per-cell queries share one bound
	for _, c := range []int{-1, 3} {
		_, ok = fm.CellNeighborCells(c)
		assert.False(t, ok)
		assert.False(t, fm.IsCellOnBoundary(c))
	}
}

func joinInts(vals []int) string {
	strs := make([]string, len(vals))
	for i, v := range vals {
		strs[i] = strconv.Itoa(v)
	}
	return strings.Join(strs, " ")
}
