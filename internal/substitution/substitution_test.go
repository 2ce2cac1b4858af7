package substitution

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBLOSUM62(t *testing.T) {
	m := BLOSUM62()
	require.NotNil(t, m)
	assert.Same(t, m, BLOSUM62())
	assert.Equal(t, "ARNDCQEGHILKMFPSTWYVBZX*", m.Alphabet())

	tests := []struct {
		a, b byte
		want float64
	}{
		{'A', 'A', 4},
		{'W', 'W', 11},
		{'C', 'C', 9},
		{'A', 'R', -1},
		{'R', 'A', -1},
		{'S', 'A', 1},
		{'W', 'C', -2},
		{'*', 'A', -4},
		{'a', 'a', 4},
		{'a', 'R', -1},
	}
	for _, tt := range tests {
		t.Run(string([]byte{tt.a, tt.b}), func(t *testing.T) {
			assert.Equal(t, tt.want, m.Score(tt.a, tt.b))
		})
	}
}

func TestLookupUnknownLetter(t *testing.T) {
	m := BLOSUM62()

	_, ok := m.Lookup('J', 'A')
	assert.False(t, ok)
	assert.Equal(t, 0.0, m.Score('-', 'A'))

	s, ok := m.Lookup('L', 'I')
	assert.True(t, ok)
	assert.Equal(t, 2.0, s)
}

func TestParse(t *testing.T) {
	text := `# toy matrix
   A  C  G  T
A  1 -1 -1 -1
C -1  1 -1 -1

G -1 -1  1 -1
T -1 -1 -1  1
`
	m, err := Parse("toy", strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, "toy", m.Name())
	assert.Equal(t, "ACGT", m.Alphabet())
	assert.Equal(t, 1.0, m.Score('G', 'G'))
	assert.Equal(t, -1.0, m.Score('G', 'T'))

	again, err := Parse("toy", strings.NewReader(m.String()))
	require.NoError(t, err)
	assert.Equal(t, m.Alphabet(), again.Alphabet())
	assert.True(t, equalScores(m, again))
}

func equalScores(a, b *Matrix) bool {
	for i := 0; i < len(a.alphabet); i++ {
		for j := 0; j < len(a.alphabet); j++ {
			if a.Score(a.alphabet[i], a.alphabet[j]) != b.Score(a.alphabet[i], a.alphabet[j]) {
				return false
			}
		}
	}
	return true
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
	}{
		{"empty", "# nothing\n", 1},
		{"multi letter header", "AB C\n", 1},
		{"wrong row letter", " A C\nC 1 0\nA 0 1\n", 2},
		{"short row", " A C\nA 1\nC 0 1\n", 2},
		{"bad score", " A C\nA 1 x\nC 0 1\n", 2},
		{"missing row", " A C\nA 1 0\n", 2},
		{"extra row", " A\nA 1\nA 1\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.name, strings.NewReader(tt.text))
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestParseAsymmetric(t *testing.T) {
	_, err := Parse("bad", strings.NewReader(" A C\nA 1 2\nC 3 1\n"))
	var ae *AsymmetricError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, byte('A'), ae.A)
	assert.Equal(t, byte('C'), ae.B)
	assert.Equal(t, 2.0, ae.AB)
	assert.Equal(t, 3.0, ae.BA)
}

func TestLoad(t *testing.T) {
	m, err := Load("BLOSUM62")
	require.NoError(t, err)
	assert.Same(t, BLOSUM62(), m)

	path := filepath.Join(t.TempDir(), "toy")
	require.NoError(t, os.WriteFile(path, []byte(" A C\nA 5 -4\nC -4 5\n"), 0o644))
	m, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5.0, m.Score('c', 'C'))

	_, err = Load(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestUniform(t *testing.T) {
	tests := []struct {
		name     string
		match    int
		mismatch int
		wantErr  bool
	}{
		{"valid", 2, -1, false},
		{"zero mismatch", 1, 0, false},
		{"non-positive match", 0, -1, true},
		{"positive mismatch", 1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUniform(tt.match, tt.mismatch)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, float64(tt.match), u.Score('A', 'A'))
			assert.Equal(t, float64(tt.mismatch), u.Score('A', 'C'))
		})
	}

	dna := DefaultDNA()
	assert.Equal(t, 2.0, dna.Score('G', 'G'))
	assert.Equal(t, -1.0, dna.Score('G', 'g'))
	assert.Equal(t, "Uniform { match: 2, mismatch: -1 }", dna.String())
}
