package types

import (
	"fmt"
)

// FirstBoundaryID is the id of the first patch in a boundary file. Each
// following patch gets the next lower id, so ids never collide with cell
// indices.
const FirstBoundaryID = -10

// BoundaryPatch is one named, contiguous range of boundary faces
type BoundaryPatch struct {
	Name       string
	Type       string // free form tag, e.g. "wall", "patch", "empty"
	NumFaces   int
	StartFace  int
	BoundaryID int
}

// Contains reports whether faceID is in [StartFace, StartFace+NumFaces)
func (bp BoundaryPatch) Contains(faceID int) bool {
	return faceID >= bp.StartFace && faceID < bp.StartFace+bp.NumFaces
}

// EndFace is one past the last face of the patch
func (bp BoundaryPatch) EndFace() int {
	return bp.StartFace + bp.NumFaces
}

func (bp BoundaryPatch) BCFlag() BCFLAG {
	return NewBCFLAG(bp.Type)
}

func (bp BoundaryPatch) String() string {
	return fmt.Sprintf("%s[%s] faces %d..%d id %d",
		bp.Name, bp.Type, bp.StartFace, bp.EndFace(), bp.BoundaryID)
}

// Boundary holds the patches of a mesh in file order, indexed by name.
// Patch face ranges are not checked for overlap.
type Boundary struct {
	patches []BoundaryPatch
	byName  map[string]int
}

func NewBoundary() *Boundary {
	return &Boundary{
		byName: make(map[string]int),
	}
}

// Add appends a patch and assigns it the next boundary id
func (b *Boundary) Add(name, typeTag string, numFaces, startFace int) (bp BoundaryPatch, err error) {
	if _, present := b.byName[name]; present {
		err = fmt.Errorf("duplicate boundary patch %q", name)
		return
	}
	if numFaces < 0 || startFace < 0 {
		err = fmt.Errorf("boundary patch %q has negative range: nFaces %d, startFace %d",
			name, numFaces, startFace)
		return
	}
	bp = BoundaryPatch{
		Name:       name,
		Type:       typeTag,
		NumFaces:   numFaces,
		StartFace:  startFace,
		BoundaryID: FirstBoundaryID - len(b.patches),
	}
	b.byName[name] = len(b.patches)
	b.patches = append(b.patches, bp)
	return
}

func (b *Boundary) Patch(name string) (bp BoundaryPatch, ok bool) {
	var ind int
	if b == nil {
		return
	}
	if ind, ok = b.byName[name]; ok {
		bp = b.patches[ind]
	}
	return
}

// ByID finds the patch owning a boundary id
func (b *Boundary) ByID(id int) (bp BoundaryPatch, ok bool) {
	if b == nil {
		return
	}
	ind := FirstBoundaryID - id
	if ind < 0 || ind >= len(b.patches) {
		return
	}
	return b.patches[ind], true
}

// Patches returns a copy of the patch list in file order
func (b *Boundary) Patches() []BoundaryPatch {
	if b == nil {
		return nil
	}
	out := make([]BoundaryPatch, len(b.patches))
	copy(out, b.patches)
	return out
}

func (b *Boundary) Names() (names []string) {
	if b == nil {
		return
	}
	names = make([]string, len(b.patches))
	for i, bp := range b.patches {
		names[i] = bp.Name
	}
	return
}

func (b *Boundary) Len() int {
	if b == nil {
		return 0
	}
	return len(b.patches)
}
