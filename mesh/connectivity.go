package mesh

import (
	"fmt"

	"github.com/notargets/gofoam/readfiles"
	"github.com/notargets/gofoam/types"
)

// Connectivity is the cell centric view of a face based mesh
type Connectivity struct {
	// Neighbors has one entry per face: the cell across an internal face, or
	// the patch of a boundary face
	Neighbors []types.CellRef
	// CellFaces[c] lists every face with c as owner or neighbour
	CellFaces [][]int
	// CellNeighbors[c][n] is the other side of face CellFaces[c][n]
	CellNeighbors [][]types.CellRef

	NumCells      int // max owner + 1
	NumInnerFaces int
}

/*
BuildConnectivity turns the position correlated owner/neighbour lists into
per cell adjacency.

owners has one entry per face, neighbors only covers the internal faces, which
come first. Boundary face slots are filled with a placeholder reference to
types.FirstBoundaryID and then overwritten patch by patch. Overlapping patch
ranges are not detected; the last patch applied wins.
*/
func BuildConnectivity(owners, neighbors []int, boundary *types.Boundary) (conn *Connectivity, err error) {
	var (
		numFaces      = len(owners)
		numInnerFaces = len(neighbors)
		numCells      int
		cellCount     int
	)
	if numInnerFaces > numFaces {
		return nil, fmt.Errorf("%d neighbour entries for %d faces: %w", numInnerFaces, numFaces, readfiles.ErrMalformed)
	}
	for f, owner := range owners {
		if owner < 0 {
			return nil, fmt.Errorf("face %d has negative owner %d: %w", f, owner, readfiles.ErrMalformed)
		}
		numCells = max(numCells, owner+1)
	}
	for f, neighbor := range neighbors {
		if neighbor < 0 {
			return nil, fmt.Errorf("internal face %d has negative neighbour %d: %w", f, neighbor, readfiles.ErrMalformed)
		}
	}

	refs := make([]types.CellRef, numFaces)
	for f := 0; f < numInnerFaces; f++ {
		refs[f] = types.InternalCell(neighbors[f])
	}
	for f := numInnerFaces; f < numFaces; f++ {
		refs[f] = types.BoundaryCell(types.FirstBoundaryID)
	}
	for _, bp := range boundary.Patches() {
		if bp.EndFace() > numFaces {
			return nil, fmt.Errorf("boundary patch %q covers faces %d..%d, mesh has %d faces: %w",
				bp.Name, bp.StartFace, bp.EndFace(), numFaces, readfiles.ErrMalformed)
		}
		for f := bp.StartFace; f < bp.EndFace(); f++ {
			refs[f] = types.BoundaryCell(bp.BoundaryID)
		}
	}

	// A patch may have claimed an internal face, size from what is left
	cellCount = numCells
	for _, ref := range refs {
		if c, ok := ref.Cell(); ok {
			cellCount = max(cellCount, c+1)
		}
	}

	conn = &Connectivity{
		Neighbors:     refs,
		CellFaces:     make([][]int, cellCount),
		CellNeighbors: make([][]types.CellRef, cellCount),
		NumCells:      numCells,
		NumInnerFaces: numInnerFaces,
	}
	for f, owner := range owners {
		conn.CellFaces[owner] = append(conn.CellFaces[owner], f)
		if c, ok := refs[f].Cell(); ok {
			conn.CellFaces[c] = append(conn.CellFaces[c], f)
			conn.CellNeighbors[c] = append(conn.CellNeighbors[c], types.InternalCell(owner))
		}
		conn.CellNeighbors[owner] = append(conn.CellNeighbors[owner], refs[f])
	}
	return
}
