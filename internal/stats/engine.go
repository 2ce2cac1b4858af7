package stats

import (
	"errors"
	"runtime"

	"github.com/exascience/pargo/parallel"

	"github.com/aria-lang/msaflow-go/internal/alignment"
)

// segment is one stretch of an induced pairwise alignment.
type segment struct {
	aligned bool
	dir     Direction
	length  int
	// residue offsets of the pair at the start of an aligned segment
	i, j int
}

// Count computes the pairwise statistics of a. scorer may be nil, in which
// case positives and the substitution score are not computed.
//
// Row pairs are split into batches that are counted concurrently and summed.
func Count(a *alignment.Alignment, scorer Scorer) (*AlignmentCounts, error) {
	if a == nil {
		return nil, errors.New("nil alignment")
	}
	coords := a.Coordinates()
	if err := coords.Validate(); err != nil {
		return nil, err
	}
	if coords.Rows() != a.Len() {
		return nil, &alignment.DimensionError{Sequences: a.Len(), Rows: coords.Rows()}
	}

	rows := a.Len()
	residues := make([]string, rows)
	for r := range residues {
		residues[r] = a.Sequence(r).Residues()
	}

	pairs := rows * (rows - 1) / 2
	if pairs == 0 {
		return &AlignmentCounts{Scored: scorer != nil}, nil
	}

	batches := min(pairs, runtime.GOMAXPROCS(0))
	result := parallel.RangeReduce(0, pairs, batches,
		func(low, high int) interface{} {
			counts := &AlignmentCounts{Scored: scorer != nil}
			var buf []segment
			i, j := pairAt(low, rows)
			for p := low; p < high; p++ {
				buf = countPair(counts, coords, residues, i, j, scorer, buf[:0])
				if j++; j == rows {
					i++
					j = i + 1
				}
			}
			return counts
		},
		func(x, y interface{}) interface{} {
			counts := x.(*AlignmentCounts)
			counts.Add(y.(*AlignmentCounts))
			return counts
		})
	return result.(*AlignmentCounts), nil
}

// pairAt returns the p-th pair (i, j), i < j, in row-major order.
func pairAt(p, rows int) (int, int) {
	i := 0
	for n := rows - 1; p >= n; n-- {
		p -= n
		i++
	}
	return i, i + 1 + p
}

// countPair adds the statistics of rows i and j to counts. segs is scratch
// space and is returned for reuse.
func countPair(counts *AlignmentCounts, coords alignment.Coordinates, residues []string, i, j int, scorer Scorer, segs []segment) []segment {
	ci, cj := coords[i], coords[j]

	for k := 0; k+1 < len(ci); k++ {
		li, lj := ci[k+1]-ci[k], cj[k+1]-cj[k]
		if n := min(li, lj); n > 0 {
			segs = append(segs, segment{aligned: true, length: n, i: ci[k], j: cj[k]})
		}

		var dir Direction
		var n int
		switch {
		case lj > li:
			dir, n = Insertion, lj-li
		case li > lj:
			dir, n = Deletion, li-lj
		default:
			continue
		}
		if last := len(segs) - 1; last >= 0 && !segs[last].aligned && segs[last].dir == dir {
			segs[last].length += n
		} else {
			segs = append(segs, segment{dir: dir, length: n})
		}
	}

	first, last := -1, -1
	for x, s := range segs {
		if s.aligned {
			if first < 0 {
				first = x
			}
			last = x
		}
	}

	ri, rj := residues[i], residues[j]
	for x, s := range segs {
		if !s.aligned {
			pos := Internal
			switch {
			case first < 0 || x < first:
				pos = Left
			case x > last:
				pos = Right
			}
			counts.addRun(pos, s.dir, s.length)
			continue
		}

		counts.Aligned += s.length
		for t := 0; t < s.length; t++ {
			a, b := ri[s.i+t], rj[s.j+t]
			if a == b {
				counts.Identities++
			} else {
				counts.Mismatches++
			}
			if scorer != nil {
				score := scorer.Score(a, b)
				counts.SubstitutionScore += score
				if score > 0 {
					counts.Positives++
				}
			}
		}
	}
	return segs
}
