package mesh

import (
	"github.com/james-bowman/sparse"
)

// CellAdjacency returns the symmetric NumCells x NumCells matrix with a 1 at
// (a,b) and (b,a) for each internal face between cells a and b. Boundary
// faces contribute nothing.
func (fm *FoamMesh) CellAdjacency() *sparse.CSR {
	var (
		n   = max(fm.numCells, len(fm.CellFaces))
		dok = sparse.NewDOK(n, n)
	)
	for f, owner := range fm.Owners {
		if c, ok := fm.Neighbors[f].Cell(); ok {
			dok.Set(owner, c, 1)
			dok.Set(c, owner, 1)
		}
	}
	return dok.ToCSR()
}

// CellDegrees counts the internal neighbours of each cell from the
// adjacency matrix
func (fm *FoamMesh) CellDegrees() (degrees []int) {
	adj := fm.CellAdjacency()
	nr, _ := adj.Dims()
	degrees = make([]int, nr)
	for i := 0; i < nr; i++ {
		adj.DoRowNonZero(i, func(i, j int, v float64) {
			degrees[i]++
		})
	}
	return
}
