package types

import "fmt"

/*
CellRef names what lies on the other side of a face: either an internal cell
or a boundary patch. The raw polyMesh convention packs both into one signed
integer (cell index >= 0, boundary id < 0); Sentinel and CellRefFromSentinel
convert to and from that encoding.

The zero value is InternalCell(0). Every slot built by mesh.BuildConnectivity
is assigned explicitly, so a zero CellRef only appears in slices the caller
allocates itself.
*/
type CellRef struct {
	id       int
	boundary bool
}

func InternalCell(cellID int) CellRef {
	return CellRef{id: cellID}
}

func BoundaryCell(boundaryID int) CellRef {
	return CellRef{id: boundaryID, boundary: true}
}

// CellRefFromSentinel decodes a raw neighbour value, negative values are boundary ids
func CellRefFromSentinel(v int) CellRef {
	if v < 0 {
		return BoundaryCell(v)
	}
	return InternalCell(v)
}

func (cr CellRef) IsBoundary() bool { return cr.boundary }

// Cell returns the neighbour cell index, ok is false for boundary references
func (cr CellRef) Cell() (cellID int, ok bool) {
	if cr.boundary {
		return -1, false
	}
	return cr.id, true
}

// BoundaryID returns the patch id, ok is false for internal references
func (cr CellRef) BoundaryID() (id int, ok bool) {
	if !cr.boundary {
		return 0, false
	}
	return cr.id, true
}

// Sentinel is the raw polyMesh encoding of the reference
func (cr CellRef) Sentinel() int { return cr.id }

func (cr CellRef) String() string {
	if cr.boundary {
		return fmt.Sprintf("boundary(%d)", cr.id)
	}
	return fmt.Sprintf("cell(%d)", cr.id)
}
