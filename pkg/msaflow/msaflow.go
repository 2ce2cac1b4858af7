// Package msaflow provides a high-level API for multiple sequence alignments.
//
// Example usage:
//
//	alignments, err := msaflow.ReadPHYLIP("example.phy")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	counts, err := msaflow.Counts(alignments[0], msaflow.BLOSUM62())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(counts.Summary())
package msaflow

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aria-lang/msaflow-go/internal/alignment"
	"github.com/aria-lang/msaflow-go/internal/phylip"
	"github.com/aria-lang/msaflow-go/internal/sequence"
	"github.com/aria-lang/msaflow-go/internal/stats"
	"github.com/aria-lang/msaflow-go/internal/substitution"
)

// Re-export types for convenience
type (
	Sequence        = sequence.Sequence
	Alignment       = alignment.Alignment
	Coordinates     = alignment.Coordinates
	AlignmentCounts = stats.AlignmentCounts
	RowStats        = stats.RowStats
	Scorer          = stats.Scorer
	Matrix          = substitution.Matrix
	PHYLIPReader    = phylip.Reader
	FormatError     = phylip.FormatError
)

// NewSequence creates a sequence with an identifier.
func NewSequence(id, residues string) (*Sequence, error) {
	return sequence.New(id, residues)
}

// NewAlignment creates an alignment from sequences and coordinates.
func NewAlignment(sequences []*Sequence, coordinates Coordinates) (*Alignment, error) {
	return alignment.New(sequences, coordinates)
}

// FromGapped creates an alignment from gapped rows.
func FromGapped(ids, rows []string) (*Alignment, error) {
	return alignment.FromGapped(ids, rows)
}

// OpenPHYLIP opens a PHYLIP file for record-by-record reading.
func OpenPHYLIP(path string) (*PHYLIPReader, error) {
	return phylip.Open(path)
}

// ReadPHYLIP reads every alignment in a PHYLIP file.
func ReadPHYLIP(path string) ([]*Alignment, error) {
	r, err := phylip.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer r.Close()

	var out []*Alignment
	for {
		a, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		out = append(out, a)
	}
}

// ParsePHYLIP parses every alignment in PHYLIP text.
func ParsePHYLIP(text string) ([]*Alignment, error) {
	return phylip.ReadAll(strings.NewReader(text))
}

// FormatPHYLIP renders one alignment as PHYLIP text.
func FormatPHYLIP(a *Alignment) (string, error) {
	return phylip.Format(a)
}

// WritePHYLIP writes alignments to a PHYLIP file.
func WritePHYLIP(path string, alignments []*Alignment) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if _, err := phylip.WriteAll(file, alignments); err != nil {
		file.Close()
		return fmt.Errorf("writing alignment: %w", err)
	}
	return file.Close()
}

// WriteFASTA writes the ungapped sequences of an alignment in FASTA format.
func WriteFASTA(w io.Writer, a *Alignment) error {
	for _, seq := range a.Sequences() {
		if _, err := io.WriteString(w, seq.ToFASTA()); err != nil {
			return fmt.Errorf("writing sequence: %w", err)
		}
	}
	return nil
}

// Counts computes pairwise statistics. scorer may be nil.
func Counts(a *Alignment, scorer Scorer) (*AlignmentCounts, error) {
	return stats.Count(a, scorer)
}

// SummarizeRows computes row length statistics.
func SummarizeRows(a *Alignment) (*RowStats, error) {
	return stats.SummarizeRows(a)
}

// BLOSUM62 returns the shared BLOSUM62 matrix.
func BLOSUM62() *Matrix {
	return substitution.BLOSUM62()
}

// LoadMatrix resolves "blosum62" or reads an NCBI format matrix file.
func LoadMatrix(nameOrPath string) (*Matrix, error) {
	return substitution.Load(nameOrPath)
}

// Version returns the msaflow version.
func Version() string {
	return "1.0.0"
}

// Info returns information about msaflow.
func Info() string {
	return fmt.Sprintf(`msaflow v%s - Multiple Sequence Alignment Toolkit

Features:
  - Coordinate based alignments with gapped row materialization
  - PHYLIP reading (sequential and interlaced) and writing
  - Pairwise alignment counts with gap classification
  - Row length and gap summaries
  - BLOSUM62 and NCBI format substitution matrices
  - FASTA export of aligned sequences

For more information, see: https://github.com/aria-lang/msaflow-go
`, Version())
}
