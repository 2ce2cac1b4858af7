// Package substitution provides residue substitution scoring: symmetric
// matrices in the NCBI text format and a uniform match/mismatch scorer.
package substitution

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ParseError reports malformed matrix text.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("substitution matrix line %d: %s", e.Line, e.Reason)
}

// AsymmetricError is returned when score(a, b) differs from score(b, a).
type AsymmetricError struct {
	A, B   byte
	AB, BA float64
}

func (e *AsymmetricError) Error() string {
	return fmt.Sprintf("substitution matrix is not symmetric: %c%c=%g, %c%c=%g", e.A, e.B, e.AB, e.B, e.A, e.BA)
}

// Matrix is a symmetric substitution matrix over a residue alphabet.
type Matrix struct {
	name     string
	alphabet string
	index    [256]int
	scores   *mat.SymDense
}

// New creates a matrix over alphabet. scores must be len(alphabet) square.
func New(name, alphabet string, scores *mat.SymDense) (*Matrix, error) {
	if n := scores.SymmetricDim(); n != len(alphabet) {
		return nil, fmt.Errorf("alphabet has %d letters for a %d×%d matrix", len(alphabet), n, n)
	}

	m := &Matrix{name: name, alphabet: alphabet, scores: scores}
	for i := range m.index {
		m.index[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		if m.index[alphabet[i]] >= 0 {
			return nil, fmt.Errorf("letter %q appears twice in alphabet", alphabet[i])
		}
		m.index[alphabet[i]] = i
	}
	// Lower case letters share the upper case row unless listed themselves.
	for c := 'a'; c <= 'z'; c++ {
		if m.index[c] < 0 {
			m.index[c] = m.index[c-'a'+'A']
		}
	}
	return m, nil
}

// Parse reads a matrix in the NCBI text format: '#' comment lines, a header
// line of column letters, then one line per letter starting with that letter.
func Parse(name string, r io.Reader) (*Matrix, error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0

	var alphabet string
	var rows [][]float64
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		if alphabet == "" {
			var sb strings.Builder
			for _, f := range fields {
				if len(f) != 1 {
					return nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("header entry %q is not a single letter", f)}
				}
				sb.WriteString(f)
			}
			alphabet = sb.String()
			continue
		}

		if len(rows) == len(alphabet) {
			return nil, &ParseError{Line: lineNo, Reason: "more rows than header letters"}
		}
		want := alphabet[len(rows)]
		if len(fields[0]) != 1 || fields[0][0] != want {
			return nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("expected row %q, got %q", want, fields[0])}
		}
		if len(fields)-1 != len(alphabet) {
			return nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("row %q has %d scores, expected %d", want, len(fields)-1, len(alphabet))}
		}
		row := make([]float64, len(alphabet))
		for k, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("bad score %q", f)}
			}
			row[k] = v
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if alphabet == "" {
		return nil, &ParseError{Line: lineNo, Reason: "no header line"}
	}
	if len(rows) != len(alphabet) {
		return nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("%d rows for %d header letters", len(rows), len(alphabet))}
	}

	n := len(alphabet)
	scores := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if rows[i][j] != rows[j][i] {
				return nil, &AsymmetricError{A: alphabet[i], B: alphabet[j], AB: rows[i][j], BA: rows[j][i]}
			}
			scores.SetSym(i, j, rows[i][j])
		}
	}
	return New(name, alphabet, scores)
}

// Name returns the matrix name.
func (m *Matrix) Name() string {
	return m.name
}

// Alphabet returns the letters of the matrix in header order.
func (m *Matrix) Alphabet() string {
	return m.alphabet
}

// Lookup returns the score of a against b and whether both letters are in the
// alphabet.
func (m *Matrix) Lookup(a, b byte) (float64, bool) {
	i, j := m.index[a], m.index[b]
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.scores.At(i, j), true
}

// Score returns the score of a against b, or 0 when either letter is unknown.
func (m *Matrix) Score(a, b byte) float64 {
	s, _ := m.Lookup(a, b)
	return s
}

// Symmetric exposes the underlying score matrix.
func (m *Matrix) Symmetric() mat.Symmetric {
	return m.scores
}

// String renders the matrix in the NCBI text format accepted by Parse.
func (m *Matrix) String() string {
	var sb strings.Builder
	sb.WriteString(" ")
	for i := 0; i < len(m.alphabet); i++ {
		fmt.Fprintf(&sb, " %3c", m.alphabet[i])
	}
	sb.WriteByte('\n')
	for i := 0; i < len(m.alphabet); i++ {
		sb.WriteByte(m.alphabet[i])
		for j := 0; j < len(m.alphabet); j++ {
			fmt.Fprintf(&sb, " %3g", m.scores.At(i, j))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
