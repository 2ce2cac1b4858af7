package stats

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/aria-lang/msaflow-go/internal/alignment"
)

// RowStats summarizes the row lengths of an alignment. A row's length is the
// number of its residues placed in the alignment.
type RowStats struct {
	Rows         int     `json:"rows"`
	Columns      int     `json:"columns"`
	Residues     int     `json:"residues"`
	Gaps         int     `json:"gaps"`
	MinLength    int     `json:"min_length"`
	MaxLength    int     `json:"max_length"`
	MeanLength   float64 `json:"mean_length"`
	MedianLength int     `json:"median_length"`
}

// SummarizeRows computes row length statistics for a.
func SummarizeRows(a *alignment.Alignment) (*RowStats, error) {
	if a == nil {
		return nil, errors.New("stats: nil alignment")
	}
	n := a.Len()
	lengths := make([]int, n)
	residues := 0
	for i := range lengths {
		start, end := a.Span(i)
		lengths[i] = end - start
		residues += lengths[i]
	}
	sort.Ints(lengths)

	sample := make([]float64, n)
	for i, l := range lengths {
		sample[i] = float64(l)
	}

	// Even counts take the truncated mean of the two middle lengths.
	median := lengths[n/2]
	if n%2 == 0 {
		median = (lengths[n/2-1] + lengths[n/2]) / 2
	}

	return &RowStats{
		Rows:         n,
		Columns:      a.Columns(),
		Residues:     residues,
		Gaps:         n*a.Columns() - residues,
		MinLength:    lengths[0],
		MaxLength:    lengths[n-1],
		MeanLength:   stat.Mean(sample, nil),
		MedianLength: median,
	}, nil
}

// GapFraction returns the share of cells holding a gap.
func (s *RowStats) GapFraction() float64 {
	if s.Rows == 0 || s.Columns == 0 {
		return 0
	}
	return float64(s.Gaps) / float64(s.Rows*s.Columns)
}

func (s *RowStats) String() string {
	return fmt.Sprintf(`RowStats {
  rows: %d
  columns: %d
  residues: %d
  gaps: %d (%.2f%%)
  length range: %d - %d
  mean length: %.1f
  median length: %d
}`, s.Rows, s.Columns, s.Residues, s.Gaps, 100*s.GapFraction(),
		s.MinLength, s.MaxLength, s.MeanLength, s.MedianLength)
}
