package readfiles

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

/*
The list readers share one shape:

	// banner and FoamFile header, skipped
	11360
	(
	<one element per line>
	)

The first line after the header that is a non-negative integer is the element
count. Lines that do not decode as an element are skipped, which lets the
bracket lines and comments through.
*/

var reInteger = regexp.MustCompile(`\d+`)

// ParseScalars reads a list of scalars such as the owner or neighbour file
func ParseScalars[T Scalar](r io.Reader, skip int) (data []T, err error) {
	var (
		lines       []string
		numExpected int
		haveCount   bool
	)
	if lines, err = readLines(r); err != nil {
		return
	}
	for _, nl := range skipHeader(lines, skip) {
		line := strings.TrimSpace(nl.text)
		if haveCount {
			if val, ok := parseScalar[T](line); ok {
				data = append(data, val)
			}
		} else if n, ok := parseCount(line); ok {
			numExpected, haveCount = n, true
			data = make([]T, 0, min(n, len(lines)))
		}
	}
	if !haveCount {
		return nil, &ParseError{Msg: "no element count found", Err: ErrMalformed}
	}
	if len(data) != numExpected {
		return nil, countMismatch("values", numExpected, len(data))
	}
	return
}

func ReadScalars[T Scalar](filename string, skip int) ([]T, error) {
	return readFile(filename, func(r io.Reader) ([]T, error) {
		return ParseScalars[T](r, skip)
	})
}

// ParseLabels reads a list of cell indices
func ParseLabels(r io.Reader, skip int) ([]int, error) {
	return ParseScalars[int](r, skip)
}

func ReadLabels(filename string, skip int) ([]int, error) {
	return ReadScalars[int](filename, skip)
}

// ParsePoints reads the points file. Lines shaped "(x y z)" must hold exactly
// three numbers, anything else after the count is skipped.
func ParsePoints(r io.Reader, skip int) (points []r3.Vec, err error) {
	var (
		lines       []string
		numExpected int
		haveCount   bool
	)
	if lines, err = readLines(r); err != nil {
		return
	}
	for _, nl := range skipHeader(lines, skip) {
		line := strings.TrimSpace(nl.text)
		if !haveCount {
			if n, ok := parseCount(line); ok {
				numExpected, haveCount = n, true
				points = make([]r3.Vec, 0, min(n, len(lines)))
			}
			continue
		}
		if !strings.HasPrefix(line, "(") || !strings.HasSuffix(line, ")") {
			continue
		}
		p, ok := DecodePoint(line)
		if !ok {
			return nil, malformed(nl.num, nl.text, "could not parse three floats")
		}
		points = append(points, p)
	}
	if !haveCount {
		return nil, &ParseError{Msg: "no point count found", Err: ErrMalformed}
	}
	if len(points) != numExpected {
		return nil, countMismatch("points", numExpected, len(points))
	}
	return
}

func ReadPoints(filename string, skip int) ([]r3.Vec, error) {
	return readFile(filename, func(r io.Reader) ([]r3.Vec, error) {
		return ParsePoints(r, skip)
	})
}

// ParseFaces reads the faces file, one "k(i0 i1 ... ik-1)" per line. The
// point order of each face is kept as written, it defines the face normal.
func ParseFaces(r io.Reader, skip int) (faces [][]int, err error) {
	var (
		lines       []string
		numExpected int
		haveCount   bool
	)
	if lines, err = readLines(r); err != nil {
		return
	}
	for _, nl := range skipHeader(lines, skip) {
		line := strings.TrimSpace(nl.text)
		if !haveCount {
			if n, ok := parseCount(line); ok {
				numExpected, haveCount = n, true
				faces = make([][]int, 0, min(n, len(lines)))
			}
			continue
		}
		tokens := reInteger.FindAllString(line, -1)
		if len(tokens) == 0 {
			continue
		}
		vals := make([]int, len(tokens))
		for i, tok := range tokens {
			if vals[i], err = strconv.Atoi(tok); err != nil {
				return nil, malformed(nl.num, nl.text, "index %s out of range", tok)
			}
		}
		if vals[0] != len(vals)-1 {
			return nil, malformed(nl.num, nl.text,
				"mismatch between number of vertices announced (%d) and found (%d)",
				vals[0], len(vals)-1)
		}
		faces = append(faces, vals[1:])
	}
	if !haveCount {
		return nil, &ParseError{Msg: "no face count found", Err: ErrMalformed}
	}
	if len(faces) != numExpected {
		return nil, countMismatch("faces", numExpected, len(faces))
	}
	return
}

func ReadFaces(filename string, skip int) ([][]int, error) {
	return readFile(filename, func(r io.Reader) ([][]int, error) {
		return ParseFaces(r, skip)
	})
}
