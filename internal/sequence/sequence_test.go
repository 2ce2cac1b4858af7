package sequence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		residues string
		wantErr  bool
		errType  interface{}
	}{
		{
			name:     "valid DNA sequence",
			id:       "Tax1",
			residues: "ATGCATGC",
		},
		{
			name:     "valid protein with lowercase",
			id:       "CYS1_DICDI",
			residues: "mkvillfvla",
		},
		{
			name:     "stop and unknown markers",
			id:       "x",
			residues: "MK*?.",
		},
		{
			name:     "empty residues are allowed",
			id:       "all-gap",
			residues: "",
		},
		{
			name:     "gap is not a residue",
			id:       "x",
			residues: "AC-GT",
			wantErr:  true,
			errType:  &InvalidResidueError{},
		},
		{
			name:     "digit",
			id:       "x",
			residues: "ACG1",
			wantErr:  true,
			errType:  &InvalidResidueError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := New(tt.id, tt.residues)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errType != nil {
					assert.IsType(t, tt.errType, err)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, seq.ID())
			assert.Equal(t, tt.residues, seq.Residues())
			assert.Equal(t, len(tt.residues), seq.Len())
		})
	}
}

func TestInvalidResidueErrorPosition(t *testing.T) {
	_, err := New("x", "ACGT_A")
	require.Error(t, err)

	var re *InvalidResidueError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 4, re.Position)
	assert.Equal(t, byte('_'), re.Found)
}

func TestWithID(t *testing.T) {
	_, err := WithID("   ", "ACGT")
	assert.IsType(t, &EmptyIDError{}, err)

	seq, err := WithID("Turkey", "ACGT")
	require.NoError(t, err)
	assert.Equal(t, "Turkey", seq.ID())
}

type record struct{ id, residues string }

func (r record) ID() string       { return r.id }
func (r record) Residues() string { return r.residues }

func TestFromRecord(t *testing.T) {
	seq, err := FromRecord(record{"Chimp", "AAACCC"})
	require.NoError(t, err)
	assert.Equal(t, "Chimp", seq.ID())
	assert.Equal(t, "AAACCC", seq.Residues())

	_, err = FromRecord(nil)
	require.Error(t, err)
}

func TestResidueAt(t *testing.T) {
	seq, _ := New("x", "ACGT")

	r, ok := seq.ResidueAt(2)
	assert.True(t, ok)
	assert.Equal(t, byte('G'), r)

	_, ok = seq.ResidueAt(4)
	assert.False(t, ok)
	_, ok = seq.ResidueAt(-1)
	assert.False(t, ok)
}

func TestSubsequence(t *testing.T) {
	seq, _ := New("x", "ACGTACGT")

	sub, err := seq.Subsequence(2, 6)
	require.NoError(t, err)
	assert.Equal(t, "GTAC", sub.Residues())
	assert.Equal(t, "x", sub.ID())

	empty, err := seq.Subsequence(3, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	_, err = seq.Subsequence(-1, 2)
	require.Error(t, err)
	_, err = seq.Subsequence(4, 2)
	require.Error(t, err)
	_, err = seq.Subsequence(0, 9)
	require.Error(t, err)
}

func TestToFASTA(t *testing.T) {
	seq, _ := New("long", strings.Repeat("A", 100))
	fasta := seq.ToFASTA()

	lines := strings.Split(strings.TrimSuffix(fasta, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, ">long", lines[0])
	assert.Len(t, lines[1], 80)
	assert.Len(t, lines[2], 20)

	anon, _ := New("", "ACGT")
	assert.Equal(t, ">sequence\nACGT\n", anon.ToFASTA())
}

func TestEqual(t *testing.T) {
	a, _ := New("x", "ACGT")
	b, _ := New("x", "ACGT")
	c, _ := New("y", "ACGT")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestUngap(t *testing.T) {
	assert.Equal(t, "MKNW", Ungap("--MK--NW-"))
	assert.Equal(t, "", Ungap("----"))
	assert.Equal(t, "ACGT", Ungap("ACGT"))
}

func TestValidateAligned(t *testing.T) {
	require.NoError(t, ValidateAligned("--MKV*?"))

	err := ValidateAligned("MK 1")
	var re *InvalidResidueError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 2, re.Position)
}
