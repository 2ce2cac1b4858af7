// Package alignment provides the coordinate-based multiple sequence alignment.
//
// An Alignment never stores gapped text. It keeps the ungapped sequences and
// a Coordinates matrix, and materializes gapped rows on demand.
package alignment

import (
	"fmt"
	"strings"

	"github.com/aria-lang/msaflow-go/internal/sequence"
)

// Alignment is an ordered list of sequences placed by one coordinate matrix.
type Alignment struct {
	sequences   []*sequence.Sequence
	coordinates Coordinates
	widths      []int
	columns     int
}

// New creates an alignment from sequences and their coordinates.
//
// The alignment keeps the canonical form of coordinates (see
// Coordinates.Canonical), so two matrices that materialize the same rows
// yield equal alignments.
func New(sequences []*sequence.Sequence, coordinates Coordinates) (*Alignment, error) {
	if len(sequences) != coordinates.Rows() {
		return nil, &DimensionError{Sequences: len(sequences), Rows: coordinates.Rows()}
	}
	if err := coordinates.Validate(); err != nil {
		return nil, err
	}

	last := coordinates.Breakpoints() - 1
	for r, seq := range sequences {
		if seq == nil {
			return nil, fmt.Errorf("sequence %d is nil", r)
		}
		if end := coordinates[r][last]; end > seq.Len() {
			return nil, invariant(r, last, "offset %d exceeds sequence length %d", end, seq.Len())
		}
	}

	coords := coordinates.Canonical()
	widths := coords.Widths()
	columns := 0
	for _, w := range widths {
		columns += w
	}

	return &Alignment{
		sequences:   append([]*sequence.Sequence(nil), sequences...),
		coordinates: coords,
		widths:      widths,
		columns:     columns,
	}, nil
}

// FromGapped builds an alignment from literal gapped rows, inferring the
// coordinates and stripping gaps to obtain each sequence.
func FromGapped(ids, gapped []string) (*Alignment, error) {
	if len(ids) != len(gapped) {
		return nil, fmt.Errorf("%d identifiers for %d rows", len(ids), len(gapped))
	}

	sequences := make([]*sequence.Sequence, len(gapped))
	for r, row := range gapped {
		if err := sequence.ValidateAligned(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", r, err)
		}
		seq, err := sequence.New(ids[r], sequence.Ungap(row))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", r, err)
		}
		sequences[r] = seq
	}

	coords, err := InferCoordinates(gapped)
	if err != nil {
		return nil, err
	}
	return New(sequences, coords)
}

// Len returns the number of rows.
func (a *Alignment) Len() int {
	return len(a.sequences)
}

// Columns returns the number of alignment columns.
func (a *Alignment) Columns() int {
	return a.columns
}

// Sequence returns the sequence of row i.
func (a *Alignment) Sequence(i int) *sequence.Sequence {
	return a.sequences[i]
}

// Sequences returns the row sequences in order.
func (a *Alignment) Sequences() []*sequence.Sequence {
	return append([]*sequence.Sequence(nil), a.sequences...)
}

// Coordinates returns a copy of the coordinate matrix.
func (a *Alignment) Coordinates() Coordinates {
	return a.coordinates.Clone()
}

// Span returns the range [start, end) of row i's residues placed in the
// alignment. Residues outside it are not materialized by Row.
func (a *Alignment) Span(i int) (start, end int) {
	row := a.coordinates[i]
	return row[0], row[len(row)-1]
}

// Row materializes the gapped string of row i.
//
// Each interval emits the row's segment followed by enough gaps to reach the
// interval width. Row panics with an *InvariantError if the result is not
// exactly Columns() wide.
func (a *Alignment) Row(i int) string {
	residues := a.sequences[i].Residues()
	coords := a.coordinates[i]

	var sb strings.Builder
	sb.Grow(a.columns)
	for k, width := range a.widths {
		start, end := coords[k], coords[k+1]
		sb.WriteString(residues[start:end])
		for pad := end - start; pad < width; pad++ {
			sb.WriteByte(sequence.Gap)
		}
	}

	if sb.Len() != a.columns {
		panic(invariant(i, -1, "materialized %d columns, expected %d", sb.Len(), a.columns))
	}
	return sb.String()
}

// Rows materializes every row.
func (a *Alignment) Rows() []string {
	rows := make([]string, len(a.sequences))
	for i := range rows {
		rows[i] = a.Row(i)
	}
	return rows
}

// Equal reports whether both alignments hold equal sequences and identical
// coordinates.
func (a *Alignment) Equal(other *Alignment) bool {
	if other == nil || len(a.sequences) != len(other.sequences) {
		return false
	}
	for i, seq := range a.sequences {
		if !seq.Equal(other.sequences[i]) {
			return false
		}
	}
	return a.coordinates.Equal(other.coordinates)
}
