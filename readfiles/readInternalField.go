package readfiles

import (
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

/*
ParseInternalField decodes the internalField entry of a field file. Only the
first declaration is read, either

	internalField   uniform (0 0 0);

which yields a single element, or

	internalField   nonuniform List<vector>
	3200
	(
	(0.00125 0.00125 0.0025)
	...
	)
	;

which yields the counted list. decode turns one textual value, such as
"(0.1 0 3.3)", into an element and reports false for text that is not a value
of the element type; such values are skipped and then caught by the count
check.
*/
func ParseInternalField[T any](r io.Reader, decode func(string) (T, bool)) (data []T, err error) {
	var (
		lines []string
	)
	if lines, err = readLines(r); err != nil {
		return
	}
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if !strings.HasPrefix(line, "internalField") {
			continue
		}
		switch {
		case strings.Contains(line, "nonuniform"):
			return parseNonuniform(lines, i, decode)
		case strings.Contains(line, "uniform"):
			return parseUniform(line, i+1, decode)
		}
		return nil, malformed(i+1, raw, "internal field is declared neither uniform nor nonuniform")
	}
	return nil, &ParseError{Msg: "did not find an internalField declaration", Err: ErrMalformed}
}

func ReadInternalField[T any](filename string, decode func(string) (T, bool)) ([]T, error) {
	return readFile(filename, func(r io.Reader) ([]T, error) {
		return ParseInternalField(r, decode)
	})
}

func parseUniform[T any](line string, lineNum int, decode func(string) (T, bool)) (data []T, err error) {
	var (
		token string
	)
	start, end := strings.Index(line, "("), strings.LastIndex(line, ")")
	if start >= 0 && end > start {
		token = line[start : end+1]
	} else {
		// bare scalar, e.g. "internalField   uniform 0;"
		ind := strings.Index(line, "uniform") + len("uniform")
		token = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line[ind:]), ";"))
	}
	val, ok := decode(token)
	if !ok {
		return nil, malformed(lineNum, line, "malformed uniform internal field value")
	}
	return []T{val}, nil
}

// parseNonuniform expects the count on the line after the declaration and
// the "(" marker on the line after that
func parseNonuniform[T any](lines []string, decl int, decode func(string) (T, bool)) (data []T, err error) {
	var (
		countLine = decl + 1
		first     = decl + 3
		numVals   int
		ok        bool
	)
	if countLine >= len(lines) {
		return nil, malformed(decl+1, lines[decl], "internal field file ends after the declaration")
	}
	if numVals, ok = parseCount(strings.TrimSpace(lines[countLine])); !ok {
		return nil, malformed(countLine+1, lines[countLine], "number of expected values not given")
	}
	if first+numVals > len(lines) {
		return nil, malformed(countLine+1, lines[countLine],
			"internal field file is shorter than the declared %d values", numVals)
	}
	data = make([]T, 0, numVals)
	for _, line := range lines[first : first+numVals] {
		if val, ok := decode(strings.TrimSpace(line)); ok {
			data = append(data, val)
		}
	}
	if len(data) != numVals {
		return nil, countMismatch("values", numVals, len(data))
	}
	return
}

// DecodeVector reads "(x y z)". Tokens that are not numbers are dropped, the
// remaining count must be three.
func DecodeVector(s string) (v r3.Vec, ok bool) {
	var (
		vals []float64
	)
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") || len(s) < 2 {
		return
	}
	for _, tok := range strings.Fields(s[1 : len(s)-1]) {
		if f, err := strconv.ParseFloat(tok, 64); err == nil {
			vals = append(vals, f)
		}
	}
	if len(vals) != 3 {
		return
	}
	return r3.Vec{X: vals[0], Y: vals[1], Z: vals[2]}, true
}

// DecodePoint reads a point coordinate, same shape as a vector
func DecodePoint(s string) (r3.Vec, bool) {
	return DecodeVector(s)
}

func DecodeScalar(s string) (f float64, ok bool) {
	var err error
	if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return 0, false
	}
	return f, true
}
