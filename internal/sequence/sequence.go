// Package sequence provides the identifier/residue records held by an alignment.
//
// A Sequence is immutable once constructed. Residues are stored ungapped; the
// placement of gaps belongs to the alignment that references the sequence.
package sequence

import (
	"fmt"
	"strings"
)

// Gap is the character used for gap columns in materialized alignment rows.
const Gap = '-'

// Record is anything that exposes an identifier and a residue string.
// Callers with their own sequence storage can hand such values to FromRecord.
type Record interface {
	ID() string
	Residues() string
}

// Sequence is an identifier plus an ungapped residue string.
type Sequence struct {
	id       string
	residues string
}

// New creates a sequence after validating its residues.
//
// The residue string may be empty: a row that is entirely gaps in an
// alignment owns an empty sequence.
func New(id, residues string) (*Sequence, error) {
	if err := ValidateResidues(residues); err != nil {
		return nil, err
	}
	return &Sequence{id: id, residues: residues}, nil
}

// WithID creates a sequence and requires a non-empty identifier.
func WithID(id, residues string) (*Sequence, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &EmptyIDError{}
	}
	return New(id, residues)
}

// FromRecord copies an external record into a Sequence.
func FromRecord(r Record) (*Sequence, error) {
	if r == nil {
		return nil, fmt.Errorf("record cannot be nil")
	}
	return New(r.ID(), r.Residues())
}

// ID returns the sequence identifier.
func (s *Sequence) ID() string {
	return s.id
}

// Residues returns the ungapped residue string.
func (s *Sequence) Residues() string {
	return s.residues
}

// Len returns the number of residues.
func (s *Sequence) Len() int {
	return len(s.residues)
}

// ResidueAt returns the residue at index, or false if out of bounds.
func (s *Sequence) ResidueAt(index int) (byte, bool) {
	if index < 0 || index >= len(s.residues) {
		return 0, false
	}
	return s.residues[index], true
}

// Subsequence returns residues [start, end) as a new sequence with the same ID.
func (s *Sequence) Subsequence(start, end int) (*Sequence, error) {
	if start < 0 {
		return nil, fmt.Errorf("start index must be non-negative")
	}
	if end < start {
		return nil, fmt.Errorf("end must not be less than start")
	}
	if end > len(s.residues) {
		return nil, fmt.Errorf("end must not exceed sequence length")
	}

	return &Sequence{id: s.id, residues: s.residues[start:end]}, nil
}

// ToFASTA returns the sequence in FASTA format.
func (s *Sequence) ToFASTA() string {
	header := ">sequence"
	if s.id != "" {
		header = ">" + s.id
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteByte('\n')

	// Split sequence into 80-character lines
	for i := 0; i < len(s.residues); i += 80 {
		end := min(i+80, len(s.residues))
		sb.WriteString(s.residues[i:end])
		sb.WriteByte('\n')
	}

	return sb.String()
}

// String returns a string representation of the sequence.
func (s *Sequence) String() string {
	if s.id != "" {
		return fmt.Sprintf(">%s\n%s", s.id, s.residues)
	}
	return s.residues
}

// Equal reports whether both sequences carry the same identifier and residues.
func (s *Sequence) Equal(other *Sequence) bool {
	if other == nil {
		return false
	}
	return s.id == other.id && s.residues == other.residues
}
