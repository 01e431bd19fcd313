package readfiles

import (
	"io"
	"strconv"
	"strings"

	"github.com/notargets/gofoam/types"
)

/*
The boundary file is a counted list of patch dictionaries:

	3
	(
	    movingWall
	    {
	        type            wall;
	        inGroups        List<word> 1(wall);
	        nFaces          80;
	        startFace       7840;
	    }
	    ...
	)

It is read by a line driven state machine. Patch ids are assigned in file
order starting at types.FirstBoundaryID.
*/

type boundaryState uint8

const (
	stateSeeking boundaryState = iota
	stateExpectOpenParen
	stateInBlock
	stateExpectOpenBrace
	stateInPatch
	stateDone
)

// maxJunctionBlankLines is how many blank lines may separate the patch count
// from "(" and a patch name from "{"
const maxJunctionBlankLines = 1

type boundaryParser struct {
	state    boundaryState
	blanks   int
	boundary *types.Boundary

	// patch being assembled
	name         string
	nameLine     int
	typeTag      string
	nFaces       int
	startFace    int
	hasNFaces    bool
	hasStartFace bool
}

func newBoundaryParser() *boundaryParser {
	return &boundaryParser{
		state:    stateSeeking,
		boundary: types.NewBoundary(),
	}
}

func (bp *boundaryParser) step(nl numbered) (err error) {
	line := strings.TrimSpace(nl.text)
	switch bp.state {
	case stateSeeking:
		if _, perr := strconv.Atoi(line); perr == nil {
			bp.state, bp.blanks = stateExpectOpenParen, 0
		}
	case stateExpectOpenParen:
		switch {
		case strings.HasPrefix(line, "("):
			bp.state = stateInBlock
		case line == "" && bp.blanks < maxJunctionBlankLines:
			bp.blanks++
		default:
			return malformed(nl.num, nl.text, "missing '(' after number of boundary patches")
		}
	case stateInBlock:
		switch {
		case strings.HasPrefix(line, ")"):
			bp.state = stateDone
		case line == "":
		default:
			bp.startPatch(line, nl.num)
		}
	case stateExpectOpenBrace:
		switch {
		case line == "{":
			bp.state = stateInPatch
		case line == "" && bp.blanks < maxJunctionBlankLines:
			bp.blanks++
		default:
			return malformed(nl.num, nl.text, "missing '{' after boundary patch %q", bp.name)
		}
	case stateInPatch:
		if line == "}" {
			return bp.finishPatch(nl)
		}
		return bp.readEntry(nl, line)
	}
	return
}

func (bp *boundaryParser) startPatch(name string, lineNum int) {
	bp.name, bp.nameLine = name, lineNum
	bp.typeTag = ""
	bp.nFaces, bp.startFace = 0, 0
	bp.hasNFaces, bp.hasStartFace = false, false
	bp.state, bp.blanks = stateExpectOpenBrace, 0
}

// readEntry handles one "key  value;" line inside a patch dictionary. Keys
// other than type, nFaces and startFace are ignored.
func (bp *boundaryParser) readEntry(nl numbered, line string) (err error) {
	var (
		fields = strings.Fields(line)
		val    string
	)
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "type", "nFaces", "startFace":
	default:
		return
	}
	if len(fields) < 2 || !strings.HasSuffix(fields[1], ";") {
		return malformed(nl.num, nl.text, "malformed key-value pair in boundary definition")
	}
	val = strings.TrimSuffix(fields[1], ";")
	switch fields[0] {
	case "type":
		bp.typeTag = val
	case "nFaces":
		if bp.nFaces, err = strconv.Atoi(val); err != nil {
			return malformed(nl.num, nl.text, "malformed boundary data")
		}
		bp.hasNFaces = true
	case "startFace":
		if bp.startFace, err = strconv.Atoi(val); err != nil {
			return malformed(nl.num, nl.text, "malformed boundary data")
		}
		bp.hasStartFace = true
	}
	return
}

func (bp *boundaryParser) finishPatch(nl numbered) (err error) {
	if !bp.hasNFaces || !bp.hasStartFace {
		return malformed(bp.nameLine, bp.name, "boundary patch %q is missing nFaces or startFace", bp.name)
	}
	if _, err = bp.boundary.Add(bp.name, bp.typeTag, bp.nFaces, bp.startFace); err != nil {
		return malformed(nl.num, nl.text, "%s", err.Error())
	}
	bp.state = stateInBlock
	return
}

// ParseBoundary reads the boundary file into patches keyed by name
func ParseBoundary(r io.Reader, skip int) (boundary *types.Boundary, err error) {
	var (
		lines []string
		bp    = newBoundaryParser()
	)
	if lines, err = readLines(r); err != nil {
		return
	}
	for _, nl := range skipHeader(lines, skip) {
		if err = bp.step(nl); err != nil {
			return nil, err
		}
		if bp.state == stateDone {
			return bp.boundary, nil
		}
	}
	return nil, &ParseError{
		Msg: "reached end of file unexpectedly, missing closing bracket?",
		Err: ErrMalformed,
	}
}

func ReadBoundary(filename string, skip int) (*types.Boundary, error) {
	return readFile(filename, func(r io.Reader) (*types.Boundary, error) {
		return ParseBoundary(r, skip)
	})
}
