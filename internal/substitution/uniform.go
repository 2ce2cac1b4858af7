package substitution

import "fmt"

// Uniform scores every identical pair with Match and every other pair with
// Mismatch.
type Uniform struct {
	Match    int
	Mismatch int
}

// NewUniform creates a uniform scorer with validation.
func NewUniform(match, mismatch int) (*Uniform, error) {
	if match <= 0 {
		return nil, fmt.Errorf("match score must be positive")
	}
	if mismatch > 0 {
		return nil, fmt.Errorf("mismatch score should be <= 0")
	}
	return &Uniform{Match: match, Mismatch: mismatch}, nil
}

// DefaultDNA creates the usual nucleotide scorer (+2/-1).
func DefaultDNA() *Uniform {
	return &Uniform{Match: 2, Mismatch: -1}
}

// Score returns the score for comparing two residues.
func (u *Uniform) Score(a, b byte) float64 {
	if a == b {
		return float64(u.Match)
	}
	return float64(u.Mismatch)
}

func (u *Uniform) String() string {
	return fmt.Sprintf("Uniform { match: %d, mismatch: %d }", u.Match, u.Mismatch)
}
