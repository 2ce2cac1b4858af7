package alignment

import "fmt"

// InvariantError reports a coordinate matrix or materialized row that breaks
// the alignment invariants. It indicates a construction bug, not bad input
// text, and is never recovered from inside this package.
type InvariantError struct {
	Row        int // -1 when the violation is not tied to one row
	Breakpoint int // -1 when the violation is not tied to one breakpoint
	Reason     string
}

func (e *InvariantError) Error() string {
	switch {
	case e.Row >= 0 && e.Breakpoint >= 0:
		return fmt.Sprintf("alignment invariant violated at row %d, breakpoint %d: %s", e.Row, e.Breakpoint, e.Reason)
	case e.Row >= 0:
		return fmt.Sprintf("alignment invariant violated at row %d: %s", e.Row, e.Reason)
	case e.Breakpoint >= 0:
		return fmt.Sprintf("alignment invariant violated at breakpoint %d: %s", e.Breakpoint, e.Reason)
	default:
		return "alignment invariant violated: " + e.Reason
	}
}

// DimensionError is returned when the number of sequences does not match the
// number of coordinate rows.
type DimensionError struct {
	Sequences int
	Rows      int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%d sequences for %d coordinate rows", e.Sequences, e.Rows)
}

// WidthError is returned when gapped rows do not all have the same width.
type WidthError struct {
	Row   int
	Width int
	Want  int
}

func (e *WidthError) Error() string {
	return fmt.Sprintf("gapped row %d has %d columns, expected %d", e.Row, e.Width, e.Want)
}

func invariant(row, breakpoint int, format string, args ...interface{}) *InvariantError {
	return &InvariantError{Row: row, Breakpoint: breakpoint, Reason: fmt.Sprintf(format, args...)}
}
