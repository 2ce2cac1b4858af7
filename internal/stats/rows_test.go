package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/msaflow-go/internal/alignment"
	"github.com/aria-lang/msaflow-go/internal/sequence"
)

func TestSummarizeRows(t *testing.T) {
	a := readPhylip(t, "sequential2.phy")

	s, err := SummarizeRows(a)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Rows)
	assert.Equal(t, 131, s.Columns)
	assert.Equal(t, 494, s.Residues)
	assert.Equal(t, 30, s.Gaps)
	assert.Equal(t, 112, s.MinLength)
	assert.Equal(t, 131, s.MaxLength)
	assert.InDelta(t, 123.5, s.MeanLength, 1e-9)
	assert.Equal(t, 125, s.MedianLength)
	assert.InDelta(t, 30.0/524, s.GapFraction(), 1e-12)
	assert.Contains(t, s.String(), "gaps: 30 (5.73%)")
	assert.Contains(t, s.String(), "length range: 112 - 131")
}

func TestSummarizeRowsOdd(t *testing.T) {
	a, err := alignment.FromGapped([]string{"a", "b", "c"}, []string{"ACGT", "A-GT", "--GT"})
	require.NoError(t, err)

	s, err := SummarizeRows(a)
	require.NoError(t, err)
	assert.Equal(t, 3, s.MedianLength)
	assert.Equal(t, 2, s.MinLength)
	assert.Equal(t, 3, s.Gaps)
}

func TestSummarizeRowsCountsPlacedResidues(t *testing.T) {
	s1, err := sequence.New("a", "XXABCYY")
	require.NoError(t, err)
	s2, err := sequence.New("b", "DE")
	require.NoError(t, err)
	a, err := alignment.New([]*sequence.Sequence{s1, s2}, alignment.Coordinates{{2, 5}, {0, 2}})
	require.NoError(t, err)
	require.Equal(t, []string{"ABC", "DE-"}, a.Rows())

	s, err := SummarizeRows(a)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Residues)
	assert.Equal(t, 1, s.Gaps)
	assert.Equal(t, 2, s.MinLength)
	assert.Equal(t, 3, s.MaxLength)
	assert.InDelta(t, 2.5, s.MeanLength, 1e-9)
}

func TestSummarizeRowsNil(t *testing.T) {
	_, err := SummarizeRows(nil)
	assert.Error(t, err)
}
