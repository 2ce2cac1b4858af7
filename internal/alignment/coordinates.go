package alignment

import (
	"github.com/aria-lang/msaflow-go/internal/sequence"
)

// Coordinates is an R×C matrix of residue offsets. Row r holds, at each of
// the C breakpoints, the index into row r's ungapped residue string.
//
// The interval between breakpoints k and k+1 contributes as many alignment
// columns as the longest row segment in it. Shorter segments are left-justified
// and padded with gaps.
type Coordinates [][]int

// Rows returns R.
func (c Coordinates) Rows() int {
	return len(c)
}

// Breakpoints returns C, or 0 for an empty matrix.
func (c Coordinates) Breakpoints() int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0])
}

// Segment returns the number of residues row r contributes to interval k.
func (c Coordinates) Segment(r, k int) int {
	return c[r][k+1] - c[r][k]
}

// Widths returns the number of alignment columns contributed by every
// interval, i.e. the maximum segment length across rows.
func (c Coordinates) Widths() []int {
	n := c.Breakpoints()
	if n < 2 {
		return nil
	}
	widths := make([]int, n-1)
	for _, row := range c {
		for k := 0; k < n-1; k++ {
			widths[k] = max(widths[k], row[k+1]-row[k])
		}
	}
	return widths
}

// Columns returns the total number of alignment columns.
func (c Coordinates) Columns() int {
	total := 0
	for _, w := range c.Widths() {
		total += w
	}
	return total
}

// Validate checks the matrix shape and the monotonicity invariants.
func (c Coordinates) Validate() error {
	if len(c) == 0 {
		return invariant(-1, -1, "coordinate matrix has no rows")
	}
	n := len(c[0])
	if n < 2 {
		return invariant(-1, -1, "coordinate matrix needs at least 2 breakpoints, got %d", n)
	}

	for r, row := range c {
		if len(row) != n {
			return invariant(r, -1, "row has %d breakpoints, expected %d", len(row), n)
		}
		if row[0] < 0 {
			return invariant(r, 0, "negative offset %d", row[0])
		}
		for k := 1; k < n; k++ {
			if row[k] < row[k-1] {
				return invariant(r, k, "offset %d decreases from %d", row[k], row[k-1])
			}
		}
	}

	if n == 2 {
		return nil
	}
	for k := 1; k < n; k++ {
		moved := false
		for _, row := range c {
			if row[k] != row[k-1] {
				moved = true
				break
			}
		}
		if !moved {
			return invariant(-1, k, "no row advances")
		}
	}
	return nil
}

// Clone returns a deep copy.
func (c Coordinates) Clone() Coordinates {
	if c == nil {
		return nil
	}
	out := make(Coordinates, len(c))
	for r, row := range c {
		out[r] = append([]int(nil), row...)
	}
	return out
}

// Equal reports exact numeric equality.
func (c Coordinates) Equal(o Coordinates) bool {
	if len(c) != len(o) {
		return false
	}
	for r := range c {
		if len(c[r]) != len(o[r]) {
			return false
		}
		for k := range c[r] {
			if c[r][k] != o[r][k] {
				return false
			}
		}
	}
	return true
}

// InferCoordinates derives the coordinate matrix of literal gapped rows.
//
// A breakpoint is placed at every column where the set of gapped rows
// changes. Columns are synchronized by column index, not residue index.
// Columns that are gapped in every row carry nothing and are skipped.
func InferCoordinates(gapped []string) (Coordinates, error) {
	if len(gapped) == 0 {
		return nil, invariant(-1, -1, "no rows to infer coordinates from")
	}
	width := len(gapped[0])
	for r, row := range gapped {
		if len(row) != width {
			return nil, &WidthError{Row: r, Width: len(row), Want: width}
		}
	}

	b := newBuilder(make([]int, len(gapped)))
	for col := 0; col < width; col++ {
		for r, row := range gapped {
			b.current[r] = row[col] != sequence.Gap
		}
		b.column()
	}
	return b.finish(), nil
}

// Canonical returns the coordinates that InferCoordinates would derive from
// the rows c materializes, keeping each row's start offset. Breakpoints that
// leave every row's gap state unchanged are merged, and intervals whose
// segments differ in length are split where a row runs out of residues.
// The materialized rows are the same for c and Canonical(c).
func (c Coordinates) Canonical() Coordinates {
	starts := make([]int, len(c))
	for r, row := range c {
		starts[r] = row[0]
	}

	b := newBuilder(starts)
	for k, width := range c.Widths() {
		for t := 0; t < width; t++ {
			for r, row := range c {
				b.current[r] = t < row[k+1]-row[k]
			}
			b.column()
		}
	}
	if !b.started {
		return c.Clone()
	}
	return b.finish()
}

// builder places a breakpoint wherever the occupancy of a column differs
// from the previous occupied column.
type builder struct {
	coords  Coordinates
	offsets []int
	state   []bool
	current []bool
	started bool
}

func newBuilder(starts []int) *builder {
	rows := len(starts)
	b := &builder{
		coords:  make(Coordinates, rows),
		offsets: append([]int(nil), starts...),
		state:   make([]bool, rows),
		current: make([]bool, rows),
	}
	for r, start := range starts {
		b.coords[r] = []int{start}
	}
	return b
}

// column consumes the occupancy held in current. All-gap columns are skipped.
func (b *builder) column() {
	occupied := false
	for _, on := range b.current {
		occupied = occupied || on
	}
	if !occupied {
		return
	}
	if b.started && !sameState(b.state, b.current) {
		for r := range b.coords {
			b.coords[r] = append(b.coords[r], b.offsets[r])
		}
	}
	b.started = true
	copy(b.state, b.current)
	for r, on := range b.current {
		if on {
			b.offsets[r]++
		}
	}
}

func (b *builder) finish() Coordinates {
	for r := range b.coords {
		b.coords[r] = append(b.coords[r], b.offsets[r])
	}
	return b.coords
}

func sameState(a, b []bool) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
