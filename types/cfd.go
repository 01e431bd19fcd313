package types

import "strings"

type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_Patch
	BC_Wall
	BC_Empty
	BC_Symmetry
	BC_Wedge
	BC_Cyclic
	BC_Processor
)

// BCNameMap maps an OpenFOAM patch type tag (lower case) to a BCFLAG
var BCNameMap = map[string]BCFLAG{
	"patch":         BC_Patch,
	"wall":          BC_Wall,
	"empty":         BC_Empty,
	"symmetry":      BC_Symmetry,
	"symmetryplane": BC_Symmetry,
	"wedge":         BC_Wedge,
	"cyclic":        BC_Cyclic,
	"cyclicami":     BC_Cyclic,
	"processor":     BC_Processor,
}

func (bcf BCFLAG) String() string {
	switch bcf {
	case BC_Patch:
		return "Patch"
	case BC_Wall:
		return "Wall"
	case BC_Empty:
		return "Empty"
	case BC_Symmetry:
		return "Symmetry"
	case BC_Wedge:
		return "Wedge"
	case BC_Cyclic:
		return "Cyclic"
	case BC_Processor:
		return "Processor"
	}
	return "None"
}

// NewBCFLAG returns BC_None for type tags it does not know
func NewBCFLAG(typeTag string) (bcf BCFLAG) {
	var ok bool
	if bcf, ok = BCNameMap[strings.ToLower(strings.TrimSpace(typeTag))]; !ok {
		bcf = BC_None
	}
	return
}
