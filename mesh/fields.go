package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gofoam/readfiles"
)

// ReadCellCenters reads cell centre coordinates, e.g. from 0/C as written by
// "postProcess -func writeCellCentres". A failed read leaves the previous
// centres in place.
func (fm *FoamMesh) ReadCellCenters(filename string) (err error) {
	var centers []r3.Vec
	if centers, err = readfiles.ReadInternalField[r3.Vec](filename, readfiles.DecodePoint); err != nil {
		return
	}
	fm.CellCenters = centers
	return
}

// AttachVectorField reads the internal field of a vector field file such as
// 0.5/U and stores it under name, replacing any field of that name
func (fm *FoamMesh) AttachVectorField(name, filename string) (err error) {
	var vals []r3.Vec
	if vals, err = readfiles.ReadInternalField[r3.Vec](filename, readfiles.DecodeVector); err != nil {
		return
	}
	if fm.VectorFields == nil {
		fm.VectorFields = make(map[string][]r3.Vec)
	}
	fm.VectorFields[name] = vals
	return
}

// AttachScalarField is AttachVectorField for scalar fields such as p
func (fm *FoamMesh) AttachScalarField(name, filename string) (err error) {
	var vals []float64
	if vals, err = readfiles.ReadInternalField[float64](filename, readfiles.DecodeScalar); err != nil {
		return
	}
	if fm.ScalarFields == nil {
		fm.ScalarFields = make(map[string][]float64)
	}
	fm.ScalarFields[name] = vals
	return
}

func (fm *FoamMesh) VectorField(name string) (vals []r3.Vec, ok bool) {
	vals, ok = fm.VectorFields[name]
	return
}

func (fm *FoamMesh) ScalarField(name string) (vals []float64, ok bool) {
	vals, ok = fm.ScalarFields[name]
	return
}

// CellCenterBox is the bounding box of the cell centres, zero if none are
// attached
func (fm *FoamMesh) CellCenterBox() r3.Box {
	return boundingBox(fm.CellCenters)
}
