package phylip

import (
	"fmt"
	"io"
	"strings"

	"github.com/aria-lang/msaflow-go/internal/alignment"
)

// Writer writes alignments in the sequential single-line PHYLIP layout.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes one alignment record.
func (w *Writer) Write(a *alignment.Alignment) error {
	text, err := Format(a)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w.w, text)
	return err
}

// WriteAll writes every alignment and returns how many were written.
func WriteAll(w io.Writer, alignments []*alignment.Alignment) (int, error) {
	pw := NewWriter(w)
	for n, a := range alignments {
		if err := pw.Write(a); err != nil {
			return n, err
		}
	}
	return len(alignments), nil
}

// Format renders a as one PHYLIP record: the header line, then one line per
// row with the name truncated or space padded to NameWidth bytes. Rows must
// align their whole sequence; otherwise a *FlankError is returned.
func Format(a *alignment.Alignment) (string, error) {
	if a.Columns() == 0 {
		return "", &FormatError{Reason: "alignment has no columns"}
	}
	for i := 0; i < a.Len(); i++ {
		start, end := a.Span(i)
		if n := a.Sequence(i).Len(); start != 0 || end != n {
			return "", &FlankError{Row: i, Start: start, End: end, Len: n}
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %d\n", a.Len(), a.Columns())
	for i := 0; i < a.Len(); i++ {
		name := a.Sequence(i).ID()
		if len(name) > NameWidth {
			name = name[:NameWidth]
		}
		fmt.Fprintf(&sb, "%-*s%s\n", NameWidth, name, a.Row(i))
	}
	return sb.String(), nil
}
