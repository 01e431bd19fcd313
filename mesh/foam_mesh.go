package mesh

import (
	"fmt"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gofoam/readfiles"
	"github.com/notargets/gofoam/types"
)

// PolyMeshDir is where a case keeps its mesh, relative to the case directory
const PolyMeshDir = "constant/polyMesh"

// FoamMesh is a polyMesh with cell adjacency and optionally attached fields.
// The topology is fixed after construction; fields may be attached or
// replaced at any time. A FoamMesh may be read concurrently once no field is
// being attached.
type FoamMesh struct {
	Path     string
	Boundary *types.Boundary
	Points   []r3.Vec
	// Faces[f] lists point indices in winding order
	Faces  [][]int
	Owners []int
	// Neighbors has one entry per face, boundary faces refer to their patch
	Neighbors     []types.CellRef
	CellFaces     [][]int
	CellNeighbors [][]types.CellRef

	CellCenters  []r3.Vec
	VectorFields map[string][]r3.Vec
	ScalarFields map[string][]float64

	numInnerFaces int
	numCells      int
}

// NewFoamMesh assembles a mesh from already decoded polyMesh lists
func NewFoamMesh(points []r3.Vec, faces [][]int, owners, neighbors []int,
	boundary *types.Boundary) (fm *FoamMesh, err error) {
	var (
		conn *Connectivity
	)
	if len(faces) != len(owners) {
		return nil, fmt.Errorf("%d faces but %d owners: %w", len(faces), len(owners), readfiles.ErrCountMismatch)
	}
	if boundary == nil {
		boundary = types.NewBoundary()
	}
	if conn, err = BuildConnectivity(owners, neighbors, boundary); err != nil {
		return nil, err
	}
	fm = &FoamMesh{
		Boundary:      boundary,
		Points:        points,
		Faces:         faces,
		Owners:        owners,
		Neighbors:     conn.Neighbors,
		CellFaces:     conn.CellFaces,
		CellNeighbors: conn.CellNeighbors,
		VectorFields:  make(map[string][]r3.Vec),
		ScalarFields:  make(map[string][]float64),
		numInnerFaces: conn.NumInnerFaces,
		numCells:      conn.NumCells,
	}
	return
}

// ReadFoamMesh reads <caseDir>/constant/polyMesh/{boundary,faces,owner,neighbour,points}.
// headerLines is the number of leading lines skipped in each file.
func ReadFoamMesh(caseDir string, headerLines int, verbose bool) (fm *FoamMesh, err error) {
	var (
		pm        = filepath.Join(caseDir, filepath.FromSlash(PolyMeshDir))
		boundary  *types.Boundary
		faces     [][]int
		owners    []int
		neighbors []int
		points    []r3.Vec
	)
	if verbose {
		fmt.Printf("Reading polyMesh in directory named: %s\n", pm)
	}
	if boundary, err = readfiles.ReadBoundary(filepath.Join(pm, "boundary"), headerLines); err != nil {
		return
	}
	if faces, err = readfiles.ReadFaces(filepath.Join(pm, "faces"), headerLines); err != nil {
		return
	}
	if owners, err = readfiles.ReadLabels(filepath.Join(pm, "owner"), headerLines); err != nil {
		return
	}
	// British spelling on disk
	if neighbors, err = readfiles.ReadLabels(filepath.Join(pm, "neighbour"), headerLines); err != nil {
		return
	}
	if points, err = readfiles.ReadPoints(filepath.Join(pm, "points"), headerLines); err != nil {
		return
	}
	if verbose {
		fmt.Printf("Read %d points, %d faces, %d internal faces, %d boundary patches\n",
			len(points), len(faces), len(neighbors), boundary.Len())
	}
	if fm, err = NewFoamMesh(points, faces, owners, neighbors, boundary); err != nil {
		return nil, fmt.Errorf("%s: %w", pm, err)
	}
	fm.Path = caseDir
	return
}

func (fm *FoamMesh) NumCells() int      { return fm.numCells }
func (fm *FoamMesh) NumInnerFaces() int { return fm.numInnerFaces }
func (fm *FoamMesh) NumFaces() int      { return len(fm.Faces) }
func (fm *FoamMesh) NumPoints() int     { return len(fm.Points) }

// validCell bounds every per-cell query by the adjacency buffers. On a
// degenerate mesh whose neighbour indices exceed the highest owner these
// reach past NumCells.
func (fm *FoamMesh) validCell(cellID int) bool {
	return cellID >= 0 && cellID < len(fm.CellNeighbors)
}

// CellNeighborCells returns the other side of every face of cellID, in the
// order of CellFaces[cellID]
func (fm *FoamMesh) CellNeighborCells(cellID int) (refs []types.CellRef, ok bool) {
	if !fm.validCell(cellID) {
		return nil, false
	}
	return fm.CellNeighbors[cellID], true
}

// IsCellOnBoundary scans the neighbours of cellID, O(faces per cell)
func (fm *FoamMesh) IsCellOnBoundary(cellID int) bool {
	if !fm.validCell(cellID) {
		return false
	}
	for _, ref := range fm.CellNeighbors[cellID] {
		if ref.IsBoundary() {
			return true
		}
	}
	return false
}

// IsCellOnPatch reports whether cellID has a face on the named patch
func (fm *FoamMesh) IsCellOnPatch(cellID int, patchName string) bool {
	bp, ok := fm.Boundary.Patch(patchName)
	if !ok || !fm.validCell(cellID) {
		return false
	}
	for _, ref := range fm.CellNeighbors[cellID] {
		if id, isBoundary := ref.BoundaryID(); isBoundary && id == bp.BoundaryID {
			return true
		}
	}
	return false
}

func (fm *FoamMesh) IsFaceOnBoundary(faceID int) bool {
	if faceID < 0 || faceID >= len(fm.Neighbors) {
		return false
	}
	return fm.Neighbors[faceID].IsBoundary()
}

func (fm *FoamMesh) IsFaceOnPatch(faceID int, patchName string) bool {
	bp, ok := fm.Boundary.Patch(patchName)
	if !ok || faceID < 0 || faceID >= len(fm.Neighbors) {
		return false
	}
	id, isBoundary := fm.Neighbors[faceID].BoundaryID()
	return isBoundary && id == bp.BoundaryID
}

// FacePatch returns the patch a boundary face belongs to
func (fm *FoamMesh) FacePatch(faceID int) (bp types.BoundaryPatch, ok bool) {
	if faceID < 0 || faceID >= len(fm.Neighbors) {
		return
	}
	id, isBoundary := fm.Neighbors[faceID].BoundaryID()
	if !isBoundary {
		return
	}
	return fm.Boundary.ByID(id)
}

// RawNeighbors returns the neighbour list in the on-disk integer encoding:
// the cell index for internal faces, the patch id for boundary faces
func (fm *FoamMesh) RawNeighbors() (raw []int) {
	raw = make([]int, len(fm.Neighbors))
	for f, ref := range fm.Neighbors {
		raw[f] = ref.Sentinel()
	}
	return
}

// BoundaryCells returns the owner cell of each face of the patch, in face
// order. An unknown patch yields an empty list.
func (fm *FoamMesh) BoundaryCells(patchName string) (cells []int) {
	bp, ok := fm.Boundary.Patch(patchName)
	if !ok {
		return []int{}
	}
	cells = make([]int, 0, bp.NumFaces)
	for f := bp.StartFace; f < bp.EndFace() && f < len(fm.Owners); f++ {
		cells = append(cells, fm.Owners[f])
	}
	return
}

// BoundingBox of the mesh points
func (fm *FoamMesh) BoundingBox() (box r3.Box) {
	return boundingBox(fm.Points)
}

func boundingBox(pts []r3.Vec) (box r3.Box) {
	if len(pts) == 0 {
		return
	}
	box.Min, box.Max = pts[0], pts[0]
	for _, p := range pts[1:] {
		box.Min = r3.Vec{X: min(box.Min.X, p.X), Y: min(box.Min.Y, p.Y), Z: min(box.Min.Z, p.Z)}
		box.Max = r3.Vec{X: max(box.Max.X, p.X), Y: max(box.Max.Y, p.Y), Z: max(box.Max.Z, p.Z)}
	}
	return
}

// PrintStatistics prints mesh statistics
func (fm *FoamMesh) PrintStatistics() {
	fmt.Printf("Mesh Statistics:\n")
	fmt.Printf("  Points: %d\n", fm.NumPoints())
	fmt.Printf("  Faces: %d (%d internal)\n", fm.NumFaces(), fm.NumInnerFaces())
	fmt.Printf("  Cells: %d\n", fm.NumCells())
	box := fm.BoundingBox()
	fmt.Printf("  Bounding box: %v - %v\n", box.Min, box.Max)

	// Count faces per cell
	faceCounts := make(map[int]int)
	for _, cf := range fm.CellFaces {
		faceCounts[len(cf)]++
	}
	keys := make([]int, 0, len(faceCounts))
	for k := range faceCounts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	fmt.Printf("  Faces per cell:\n")
	for _, k := range keys {
		fmt.Printf("    %d: %d cells\n", k, faceCounts[k])
	}

	fmt.Printf("  Boundary patches:\n")
	for _, bp := range fm.Boundary.Patches() {
		fmt.Printf("    %-16s %-10s %-9s %8d faces from %d (id %d)\n",
			bp.Name, bp.Type, bp.BCFlag(), bp.NumFaces, bp.StartFace, bp.BoundaryID)
	}
}
