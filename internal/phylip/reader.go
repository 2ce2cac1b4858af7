// Package phylip reads and writes multiple sequence alignments in the PHYLIP
// format.
//
// A record starts with a header line "R C" giving the number of rows and
// columns. Each row starts with a 10 byte name field followed by residues.
// In the sequential layout a row's residues may continue on the following
// lines; in the interlaced layout the rows are given in blocks, and only the
// first block carries names. Whitespace inside residue data is ignored, and
// blank lines are allowed anywhere between rows and blocks.
package phylip

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/aria-lang/msaflow-go/internal/alignment"
	"github.com/aria-lang/msaflow-go/internal/sequence"
)

// NameWidth is the width of the name field.
const NameWidth = 10

// Layout is the arrangement of row data in a record.
type Layout int

const (
	// Sequential records give each row in full before the next one.
	Sequential Layout = iota
	// Interlaced records give the rows in blocks.
	Interlaced
)

func (l Layout) String() string {
	if l == Interlaced {
		return "interlaced"
	}
	return "sequential"
}

type line struct {
	no   int
	text string
}

// Reader is a cursor over the alignment records of a stream.
type Reader struct {
	src    *bufio.Reader
	closer io.Closer
	closed bool

	lineNo int
	// buf holds the lines of the current record read so far; pos is the
	// next line to hand out and last the number of the last one handed out.
	buf  []line
	pos  int
	last int

	layout    Layout
	hasRecord bool
}

// NewReader returns a Reader over r. The Reader never closes r.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: bufio.NewReader(r)}
}

// Open returns a Reader over the file at path. "-" reads stdin, and gzip
// input is decompressed. The file is closed by Close or once the stream is
// exhausted.
func Open(path string) (*Reader, error) {
	rc, err := openFile(path)
	if err != nil {
		return nil, err
	}
	r := NewReader(rc)
	r.closer = rc
	return r, nil
}

// Layout returns the layout of the record returned by the last call to Next.
// It returns ErrNoRecord if Next has not returned a record, io.EOF once the
// stream is exhausted and a *StateError after Close.
func (r *Reader) Layout() (Layout, error) {
	switch {
	case r.closed:
		return 0, &StateError{Op: "layout"}
	case r.src == nil:
		return 0, io.EOF
	case !r.hasRecord:
		return 0, ErrNoRecord
	}
	return r.layout, nil
}

// Next returns the next alignment in the stream. It returns io.EOF when the
// stream is exhausted, and keeps doing so on every later call. A
// *FormatError aborts the current record only; the Reader can be advanced
// past it. After Close, Next returns a *StateError.
func (r *Reader) Next() (*alignment.Alignment, error) {
	if r.closed {
		return nil, &StateError{Op: "next"}
	}
	if r.src == nil {
		return nil, io.EOF
	}

	a, err := r.record()
	r.consume()
	r.hasRecord = err == nil
	if err == io.EOF {
		if cerr := r.release(); cerr != nil {
			return nil, cerr
		}
		return nil, io.EOF
	}
	return a, err
}

// Close releases the underlying stream if the Reader opened it. Later calls
// to Next fail with a *StateError.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.buf = nil
	return r.release()
}

func (r *Reader) release() error {
	r.src = nil
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}

// ReadAll reads every alignment in r.
func ReadAll(r io.Reader) ([]*alignment.Alignment, error) {
	pr := NewReader(r)
	var out []*alignment.Alignment
	for {
		a, err := pr.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, a)
	}
}

// fetch reads one line from the source.
func (r *Reader) fetch() (line, bool, error) {
	text, err := r.src.ReadString('\n')
	if err != nil && err != io.EOF {
		return line{}, false, err
	}
	if err == io.EOF && text == "" {
		return line{}, false, nil
	}
	r.lineNo++
	return line{no: r.lineNo, text: strings.TrimRight(text, "\r\n")}, true, nil
}

// next returns the next non-blank line of the current record.
func (r *Reader) next() (line, bool, error) {
	for {
		if r.pos == len(r.buf) {
			l, ok, err := r.fetch()
			if err != nil || !ok {
				return line{}, false, err
			}
			r.buf = append(r.buf, l)
		}
		l := r.buf[r.pos]
		r.pos++
		if strings.TrimSpace(l.text) != "" {
			r.last = l.no
			return l, true, nil
		}
	}
}

// consume drops the lines handed out so far.
func (r *Reader) consume() {
	n := copy(r.buf, r.buf[r.pos:])
	r.buf = r.buf[:n]
	r.pos = 0
}

func (r *Reader) record() (*alignment.Alignment, error) {
	header, ok, err := r.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, io.EOF
	}
	rows, cols, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	names, residues, layout, err := r.rows(rows, cols)
	if err != nil {
		return nil, err
	}
	a, err := alignment.FromGapped(names, residues)
	if err != nil {
		return nil, formatErrorf(header.no, "%v", err)
	}

	r.layout = layout
	log.WithFields(log.Fields{
		"line":    header.no,
		"rows":    rows,
		"columns": cols,
		"layout":  layout,
	}).Debug("Read PHYLIP record")
	return a, nil
}

func parseHeader(l line) (int, int, error) {
	fields := strings.Fields(l.text)
	if len(fields) != 2 {
		return 0, 0, formatErrorf(l.no, "header %q is not \"rows columns\"", l.text)
	}
	rows, err := strconv.Atoi(fields[0])
	if err != nil || rows <= 0 {
		return 0, 0, formatErrorf(l.no, "invalid row count %q", fields[0])
	}
	cols, err := strconv.Atoi(fields[1])
	if err != nil || cols <= 0 {
		return 0, 0, formatErrorf(l.no, "invalid column count %q", fields[1])
	}
	return rows, cols, nil
}

// rows reads the row data of a record. If the first block already completes
// every row the record is sequential with one line per row. Otherwise the
// record is read as interlaced, and if that fails the same lines are read
// again as sequential. When both fail and the first block had rows of equal
// length, the interlaced error is the one reported.
//
// Rows are appended as their lines arrive; the header counts never size an
// allocation.
func (r *Reader) rows(rows, cols int) ([]string, []string, Layout, error) {
	start := r.pos

	names, residues, complete, err := r.firstBlock(rows, cols)
	uniform := false
	if err == nil {
		if complete {
			return names, residues, Sequential, nil
		}
		uniform = sameLength(residues)
		err = r.interlaced(residues, cols)
		if err == nil {
			return names, residues, Interlaced, nil
		}
	}
	var fe *FormatError
	if !errors.As(err, &fe) {
		return nil, nil, 0, err
	}

	r.pos = start
	names, residues, serr := r.sequential(rows, cols)
	if serr != nil {
		if uniform && errors.As(serr, new(*FormatError)) {
			return nil, nil, 0, err
		}
		return nil, nil, 0, serr
	}
	return names, residues, Sequential, nil
}

func sameLength(rows []string) bool {
	for _, row := range rows {
		if len(row) != len(rows[0]) {
			return false
		}
	}
	return true
}

// firstBlock reads one named line per row and reports whether every row is
// already complete.
func (r *Reader) firstBlock(rows, cols int) ([]string, []string, bool, error) {
	var names, residues []string
	complete := true
	for i := 0; i < rows; i++ {
		l, err := r.expect("row %d of %d", i+1, rows)
		if err != nil {
			return nil, nil, false, err
		}
		name, res, err := parseNamed(l)
		if err != nil {
			return nil, nil, false, err
		}
		names = append(names, name)
		residues = append(residues, res)
		complete = complete && len(res) == cols
	}
	return names, residues, complete, nil
}

// interlaced appends blocks of unnamed lines to residues until every row
// holds cols residues. All rows must grow together.
func (r *Reader) interlaced(residues []string, cols int) error {
	for {
		n := len(residues[0])
		for i, res := range residues {
			if len(res) != n {
				return formatErrorf(r.last, "interlaced row %d has %d residues, row 1 has %d", i+1, len(res), n)
			}
		}
		switch {
		case n == cols:
			return nil
		case n > cols:
			return formatErrorf(r.last, "rows have %d residues, expected %d", n, cols)
		}

		for i := range residues {
			l, err := r.expect("block line %d for rows with %d of %d residues", i+1, n, cols)
			if err != nil {
				return err
			}
			more, err := parseResidues(l, l.text)
			if err != nil {
				return err
			}
			residues[i] += more
		}
	}
}

// sequential reads every row from its name line through as many
// continuation lines as it takes to reach cols residues.
func (r *Reader) sequential(rows, cols int) ([]string, []string, error) {
	var names, residues []string
	for i := 0; i < rows; i++ {
		l, err := r.expect("row %d of %d", i+1, rows)
		if err != nil {
			return nil, nil, err
		}
		name, res, err := parseNamed(l)
		if err != nil {
			return nil, nil, err
		}
		for len(res) < cols {
			l, err := r.expect("residues of %q (%d of %d)", name, len(res), cols)
			if err != nil {
				return nil, nil, err
			}
			more, err := parseResidues(l, l.text)
			if err != nil {
				return nil, nil, err
			}
			res += more
		}
		if len(res) > cols {
			return nil, nil, formatErrorf(r.last, "row %q has %d residues, expected %d", name, len(res), cols)
		}
		names = append(names, name)
		residues = append(residues, res)
	}
	return names, residues, nil
}

// expect returns the next line, turning the end of the stream into a
// *FormatError describing what was expected.
func (r *Reader) expect(format string, args ...interface{}) (line, error) {
	l, ok, err := r.next()
	if err != nil {
		return line{}, err
	}
	if !ok {
		return line{}, formatErrorf(r.lineNo, "unexpected end of data, expected "+format, args...)
	}
	return l, nil
}

// parseNamed splits a line into its name field and residues.
func parseNamed(l line) (string, string, error) {
	n := min(len(l.text), NameWidth)
	name := strings.TrimSpace(l.text[:n])
	if name == "" {
		return "", "", formatErrorf(l.no, "missing name")
	}
	res, err := parseResidues(l, l.text[n:])
	return name, res, err
}

// parseResidues strips whitespace from text and validates what remains.
func parseResidues(l line, text string) (string, error) {
	res := strings.Join(strings.Fields(text), "")
	if err := sequence.ValidateAligned(res); err != nil {
		var ie *sequence.InvalidResidueError
		if errors.As(err, &ie) {
			return "", formatErrorf(l.no, "invalid residue %q", ie.Found)
		}
		return "", formatErrorf(l.no, "%v", err)
	}
	return res, nil
}
