package substitution

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"
)

//go:embed data/BLOSUM62
var blosum62Text []byte

var (
	blosum62     *Matrix
	blosum62Once sync.Once
)

// BLOSUM62 returns the BLOSUM62 matrix. The returned matrix is shared and
// must be treated as read-only.
func BLOSUM62() *Matrix {
	blosum62Once.Do(func() {
		m, err := Parse("blosum62", bytes.NewReader(blosum62Text))
		if err != nil {
			panic(fmt.Sprintf("embedded BLOSUM62: %v", err))
		}
		blosum62 = m
	})
	return blosum62
}

// Load resolves a matrix by name ("blosum62", any case) or reads it from a
// file path.
func Load(nameOrPath string) (*Matrix, error) {
	if strings.EqualFold(nameOrPath, "blosum62") {
		return BLOSUM62(), nil
	}
	f, err := os.Open(nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("unknown matrix %q: %w", nameOrPath, err)
	}
	defer f.Close()
	return Parse(nameOrPath, f)
}
