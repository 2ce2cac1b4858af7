package alignment

import (
	"fmt"
	"strings"

	"github.com/aria-lang/msaflow-go/internal/sequence"
)

// blockWidth is the number of columns per block in String.
const blockWidth = 60

// String renders the alignment in blocks of 60 columns. Each line carries the
// first 9 characters of the identifier and the row's residue offset at the
// start of the block; the last partial block also carries the end offset.
func (a *Alignment) String() string {
	rows := a.Rows()
	names := make([]string, len(rows))
	offsets := make([]int, len(rows))
	for i, seq := range a.sequences {
		name := seq.ID()
		if len(name) > 9 {
			name = name[:9]
		}
		names[i] = name
		offsets[i] = a.coordinates[i][0]
	}

	var sb strings.Builder
	for start := 0; start <= a.columns; start += blockWidth {
		if start > 0 {
			sb.WriteByte('\n')
		}
		end := min(start+blockWidth, a.columns)
		for i, row := range rows {
			block := row[start:end]
			fmt.Fprintf(&sb, "%-10s%9d %s", names[i], offsets[i], block)
			offsets[i] += len(block) - strings.Count(block, string(sequence.Gap))
			if n := len(block); n > 0 && n < blockWidth {
				fmt.Fprintf(&sb, " %d", offsets[i])
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
