package sequence

import "fmt"

// SequenceError is the base error type for sequence operations.
type SequenceError interface {
	error
	IsSequenceError()
}

// EmptyIDError is returned when an identifier is required but blank.
type EmptyIDError struct{}

func (e *EmptyIDError) Error() string {
	return "sequence identifier cannot be empty"
}

func (e *EmptyIDError) IsSequenceError() {}

// InvalidResidueError is returned when an invalid residue is encountered.
type InvalidResidueError struct {
	Position int
	Found    byte
}

func (e *InvalidResidueError) Error() string {
	return fmt.Sprintf("invalid residue %q at position %d", e.Found, e.Position)
}

func (e *InvalidResidueError) IsSequenceError() {}

// IsResidue reports whether c may appear in an ungapped residue string:
// an ASCII letter, the stop symbol '*', or the unknown markers '?' and '.'.
func IsResidue(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		return true
	case c == '*', c == '?', c == '.':
		return true
	default:
		return false
	}
}

// IsAligned reports whether c may appear in a gapped alignment row.
func IsAligned(c byte) bool {
	return c == Gap || IsResidue(c)
}

// ValidateResidues checks an ungapped residue string.
func ValidateResidues(residues string) error {
	for i := 0; i < len(residues); i++ {
		if !IsResidue(residues[i]) {
			return &InvalidResidueError{Position: i, Found: residues[i]}
		}
	}
	return nil
}

// ValidateAligned checks a gapped alignment row.
func ValidateAligned(row string) error {
	for i := 0; i < len(row); i++ {
		if !IsAligned(row[i]) {
			return &InvalidResidueError{Position: i, Found: row[i]}
		}
	}
	return nil
}

// Ungap returns row with every gap character removed.
func Ungap(row string) string {
	out := make([]byte, 0, len(row))
	for i := 0; i < len(row); i++ {
		if row[i] != Gap {
			out = append(out, row[i])
		}
	}
	return string(out)
}
