// Package stats computes aggregate pairwise statistics for multiple sequence
// alignments.
//
// Every unordered pair of rows (i, j), i < j, is compared through the
// alignment's coordinates. Row i is the reference: a column where only row j
// carries a residue is an insertion, a column where only row i does is a
// deletion. All counts are summed over every pair.
package stats

import (
	"fmt"
	"strconv"
	"strings"
)

// Scorer is a symmetric residue substitution score.
type Scorer interface {
	Score(a, b byte) float64
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(a, b byte) float64

// Score calls f(a, b).
func (f ScorerFunc) Score(a, b byte) float64 {
	return f(a, b)
}

// Position locates a gap run relative to the aligned columns of a pair.
type Position int

const (
	// Left runs precede the first aligned column.
	Left Position = iota
	// Internal runs lie between aligned columns.
	Internal
	// Right runs follow the last aligned column.
	Right
)

func (p Position) String() string {
	switch p {
	case Left:
		return "left"
	case Internal:
		return "internal"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Direction is the kind of a gap run relative to the reference row.
type Direction int

const (
	// Insertion marks residues present only in the higher-indexed row.
	Insertion Direction = iota
	// Deletion marks residues present only in the lower-indexed row.
	Deletion
)

func (d Direction) String() string {
	if d == Insertion {
		return "insertion"
	}
	return "deletion"
}

// AlignmentCounts holds pairwise alignment statistics.
//
// For every position and direction, Open counts gap runs and Extend counts
// gap columns, so Extend >= Open always holds.
type AlignmentCounts struct {
	Aligned    int `json:"aligned"`
	Identities int `json:"identities"`
	Mismatches int `json:"mismatches"`

	// Scored is set when a Scorer was supplied. Positives and
	// SubstitutionScore are meaningless otherwise.
	Scored            bool    `json:"scored"`
	Positives         int     `json:"positives,omitempty"`
	SubstitutionScore float64 `json:"substitution_score,omitempty"`

	OpenLeftInsertions       int `json:"open_left_insertions"`
	ExtendLeftInsertions     int `json:"extend_left_insertions"`
	OpenLeftDeletions        int `json:"open_left_deletions"`
	ExtendLeftDeletions      int `json:"extend_left_deletions"`
	OpenInternalInsertions   int `json:"open_internal_insertions"`
	ExtendInternalInsertions int `json:"extend_internal_insertions"`
	OpenInternalDeletions    int `json:"open_internal_deletions"`
	ExtendInternalDeletions  int `json:"extend_internal_deletions"`
	OpenRightInsertions      int `json:"open_right_insertions"`
	ExtendRightInsertions    int `json:"extend_right_insertions"`
	OpenRightDeletions       int `json:"open_right_deletions"`
	ExtendRightDeletions     int `json:"extend_right_deletions"`
}

// cell returns the open and extend counters for pos and dir.
func (c *AlignmentCounts) cell(pos Position, dir Direction) (open, extend *int) {
	cells := [6][2]*int{
		{&c.OpenLeftInsertions, &c.ExtendLeftInsertions},
		{&c.OpenLeftDeletions, &c.ExtendLeftDeletions},
		{&c.OpenInternalInsertions, &c.ExtendInternalInsertions},
		{&c.OpenInternalDeletions, &c.ExtendInternalDeletions},
		{&c.OpenRightInsertions, &c.ExtendRightInsertions},
		{&c.OpenRightDeletions, &c.ExtendRightDeletions},
	}
	pair := cells[2*int(pos)+int(dir)]
	return pair[0], pair[1]
}

// addRun records one gap run of n columns.
func (c *AlignmentCounts) addRun(pos Position, dir Direction, n int) {
	open, extend := c.cell(pos, dir)
	*open++
	*extend += n
}

// Open returns the number of gap runs at pos in direction dir.
func (c *AlignmentCounts) Open(pos Position, dir Direction) int {
	open, _ := c.cell(pos, dir)
	return *open
}

// Extend returns the number of gap columns at pos in direction dir.
func (c *AlignmentCounts) Extend(pos Position, dir Direction) int {
	_, extend := c.cell(pos, dir)
	return *extend
}

func (c *AlignmentCounts) LeftInsertions() int     { return c.ExtendLeftInsertions }
func (c *AlignmentCounts) LeftDeletions() int      { return c.ExtendLeftDeletions }
func (c *AlignmentCounts) InternalInsertions() int { return c.ExtendInternalInsertions }
func (c *AlignmentCounts) InternalDeletions() int  { return c.ExtendInternalDeletions }
func (c *AlignmentCounts) RightInsertions() int    { return c.ExtendRightInsertions }
func (c *AlignmentCounts) RightDeletions() int     { return c.ExtendRightDeletions }

func (c *AlignmentCounts) LeftGaps() int     { return c.LeftInsertions() + c.LeftDeletions() }
func (c *AlignmentCounts) InternalGaps() int { return c.InternalInsertions() + c.InternalDeletions() }
func (c *AlignmentCounts) RightGaps() int    { return c.RightInsertions() + c.RightDeletions() }

// Insertions returns the number of insertion columns at every position.
func (c *AlignmentCounts) Insertions() int {
	return c.LeftInsertions() + c.InternalInsertions() + c.RightInsertions()
}

// Deletions returns the number of deletion columns at every position.
func (c *AlignmentCounts) Deletions() int {
	return c.LeftDeletions() + c.InternalDeletions() + c.RightDeletions()
}

// Gaps returns the total number of gap columns.
func (c *AlignmentCounts) Gaps() int {
	return c.Insertions() + c.Deletions()
}

// Identity returns identities per aligned column, or 0 if nothing is aligned.
func (c *AlignmentCounts) Identity() float64 {
	if c.Aligned == 0 {
		return 0
	}
	return float64(c.Identities) / float64(c.Aligned)
}

// Similarity returns positives per aligned column, or 0 if nothing is aligned
// or no Scorer was used.
func (c *AlignmentCounts) Similarity() float64 {
	if c.Aligned == 0 || !c.Scored {
		return 0
	}
	return float64(c.Positives) / float64(c.Aligned)
}

// Add accumulates other into c.
func (c *AlignmentCounts) Add(other *AlignmentCounts) {
	c.Aligned += other.Aligned
	c.Identities += other.Identities
	c.Mismatches += other.Mismatches
	c.Scored = c.Scored || other.Scored
	c.Positives += other.Positives
	c.SubstitutionScore += other.SubstitutionScore

	c.OpenLeftInsertions += other.OpenLeftInsertions
	c.ExtendLeftInsertions += other.ExtendLeftInsertions
	c.OpenLeftDeletions += other.OpenLeftDeletions
	c.ExtendLeftDeletions += other.ExtendLeftDeletions
	c.OpenInternalInsertions += other.OpenInternalInsertions
	c.ExtendInternalInsertions += other.ExtendInternalInsertions
	c.OpenInternalDeletions += other.OpenInternalDeletions
	c.ExtendInternalDeletions += other.ExtendInternalDeletions
	c.OpenRightInsertions += other.OpenRightInsertions
	c.ExtendRightInsertions += other.ExtendRightInsertions
	c.OpenRightDeletions += other.OpenRightDeletions
	c.ExtendRightDeletions += other.ExtendRightDeletions
}

func formatScore(s float64) string {
	out := strconv.FormatFloat(s, 'f', -1, 64)
	if !strings.ContainsAny(out, ".eEnN") {
		out += ".0"
	}
	return out
}

// Summary renders the counts on one line.
func (c *AlignmentCounts) Summary() string {
	var parts []string
	if c.Scored {
		parts = append(parts, "substitution score = "+formatScore(c.SubstitutionScore))
	}
	parts = append(parts,
		fmt.Sprintf("%d aligned letters", c.Aligned),
		fmt.Sprintf("%d identities", c.Identities),
		fmt.Sprintf("%d mismatches", c.Mismatches))
	if c.Scored {
		parts = append(parts, fmt.Sprintf("%d positives", c.Positives))
	}
	parts = append(parts, fmt.Sprintf("%d gaps", c.Gaps()))
	return strings.Join(parts, "; ")
}

// String renders the full nested report.
func (c *AlignmentCounts) String() string {
	var sb strings.Builder
	sb.WriteString("AlignmentCounts object with\n")
	if c.Scored {
		fmt.Fprintf(&sb, "    substitution_score = %s,\n", formatScore(c.SubstitutionScore))
	}
	fmt.Fprintf(&sb, "    aligned = %d:\n", c.Aligned)
	fmt.Fprintf(&sb, "        identities = %d,\n", c.Identities)
	if c.Scored {
		fmt.Fprintf(&sb, "        positives = %d,\n", c.Positives)
	}
	fmt.Fprintf(&sb, "        mismatches = %d.\n", c.Mismatches)
	fmt.Fprintf(&sb, "    gaps = %d:\n", c.Gaps())

	totals := [3]int{c.LeftGaps(), c.InternalGaps(), c.RightGaps()}
	for _, pos := range []Position{Left, Internal, Right} {
		fmt.Fprintf(&sb, "        %s_gaps = %d:\n", pos, totals[pos])
		for _, dir := range []Direction{Insertion, Deletion} {
			name := fmt.Sprintf("%s_%ss", pos, dir)
			open, extend := c.cell(pos, dir)
			end := ";"
			if pos == Right && dir == Deletion {
				end = "."
			}
			fmt.Fprintf(&sb, "            %s = %d:\n", name, *extend)
			fmt.Fprintf(&sb, "                open_%s = %d,\n", name, *open)
			fmt.Fprintf(&sb, "                extend_%s = %d%s\n", name, *extend, end)
		}
	}
	return sb.String()
}
