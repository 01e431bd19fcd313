package readfiles

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultHeaderLines is the number of banner lines written ahead of the
// FoamFile dictionary by the solver's ASCII writer
const DefaultHeaderLines = 10

// maxLineLength bounds a single line of input, long face lines on polyhedral
// meshes can exceed bufio's default
const maxLineLength = 16 * 1024 * 1024

var (
	// ErrCountMismatch means the declared element count differs from the
	// number of elements decoded
	ErrCountMismatch = errors.New("count mismatch")
	// ErrMalformed means a required delimiter, bracket or key/value shape is
	// missing or corrupt
	ErrMalformed = errors.New("malformed input")
)

// ParseError locates a failed read. Err is ErrCountMismatch or ErrMalformed.
type ParseError struct {
	File string // empty when parsing from a reader
	Line int    // 1 based, 0 when the failure has no single line
	Text string // raw line text when Line > 0
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	if e.File != "" {
		sb.WriteString(e.File)
		sb.WriteString(": ")
	}
	if e.Line > 0 {
		fmt.Fprintf(&sb, "l. %d (%q): ", e.Line, e.Text)
	}
	sb.WriteString(e.Msg)
	return sb.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

func malformed(lineNum int, text, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Line: lineNum,
		Text: text,
		Msg:  fmt.Sprintf(format, args...),
		Err:  ErrMalformed,
	}
}

func countMismatch(what string, expected, parsed int) *ParseError {
	return &ParseError{
		Msg: fmt.Sprintf("%d %s expected, but parsed %d", expected, what, parsed),
		Err: ErrCountMismatch,
	}
}

// Scalar is the set of element types a scalar list can decode into
type Scalar interface {
	int | int64 | float64
}

func parseScalar[T Scalar](s string) (val T, ok bool) {
	switch any(val).(type) {
	case float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return
		}
		return T(f), true
	default:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return
		}
		return T(i), true
	}
}

// parseCount accepts a non-negative integer element count
func parseCount(s string) (n int, ok bool) {
	var err error
	if n, err = strconv.Atoi(s); err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func readLines(r io.Reader) (lines []string, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineLength)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	return
}

// numbered is a line together with its 1 based position in the file
type numbered struct {
	num  int
	text string
}

// skipHeader drops the first skip lines, keeping file line numbers
func skipHeader(lines []string, skip int) (out []numbered) {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(lines) {
		return nil
	}
	out = make([]numbered, 0, len(lines)-skip)
	for i := skip; i < len(lines); i++ {
		out = append(out, numbered{num: i + 1, text: lines[i]})
	}
	return
}

// readFile opens filename, runs parse over it and attaches the file name to
// any failure. The file is closed before returning.
func readFile[T any](filename string, parse func(io.Reader) (T, error)) (result T, err error) {
	var (
		file *os.File
		zero T
		pe   *ParseError
	)
	if file, err = os.Open(filename); err != nil {
		return zero, fmt.Errorf("could not read %q: %w", filename, err)
	}
	defer file.Close()
	if result, err = parse(file); err != nil {
		if errors.As(err, &pe) {
			pe.File = filename
			return zero, pe
		}
		return zero, fmt.Errorf("could not read %q: %w", filename, err)
	}
	return
}
