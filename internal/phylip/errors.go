package phylip

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is wrapped by every StateError.
	ErrClosed = errors.New("phylip: reader closed")
	// ErrNoRecord is returned by Layout when Next has not returned a record.
	ErrNoRecord = errors.New("phylip: no current record")
)

// FormatError reports malformed PHYLIP text. Line is 1-based; 0 means the
// error is not tied to a line.
type FormatError struct {
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line == 0 {
		return "phylip: " + e.Reason
	}
	return fmt.Sprintf("phylip: line %d: %s", e.Line, e.Reason)
}

func formatErrorf(line int, format string, args ...interface{}) *FormatError {
	return &FormatError{Line: line, Reason: fmt.Sprintf(format, args...)}
}

// StateError is returned by operations on a closed Reader.
type StateError struct {
	Op string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("phylip: %s on closed reader", e.Op)
}

func (e *StateError) Unwrap() error {
	return ErrClosed
}

// FlankError reports a row whose coordinates leave residues outside the
// alignment. PHYLIP has no way to carry them.
type FlankError struct {
	Row        int
	Start, End int
	Len        int
}

func (e *FlankError) Error() string {
	return fmt.Sprintf("phylip: row %d aligns residues %d to %d of %d; unaligned flanks cannot be written",
		e.Row, e.Start, e.End, e.Len)
}
