// Command msaflow inspects and converts multiple sequence alignments.
//
// Usage:
//
//	msaflow [command] [options]
//
// Commands:
//
//	info        Show alignment dimensions and layout
//	counts      Compute pairwise alignment counts
//	convert     Rewrite alignments as canonical PHYLIP
//	view        Pretty print alignments in blocks
//	fasta       Export the ungapped sequences as FASTA
//	version     Show version information
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/aria-lang/msaflow-go/internal/phylip"
	"github.com/aria-lang/msaflow-go/internal/stats"
	"github.com/aria-lang/msaflow-go/internal/substitution"
	"github.com/aria-lang/msaflow-go/pkg/msaflow"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(1)
		}
		log.WithError(err).Fatal("msaflow failed")
	}
}

var errUsage = errors.New("usage")

func run(command string, args []string, out io.Writer) error {
	switch command {
	case "info":
		return infoCmd(args, out)
	case "counts":
		return countsCmd(args, out)
	case "convert":
		return convertCmd(args, out)
	case "view":
		return viewCmd(args, out)
	case "fasta":
		return fastaCmd(args, out)
	case "version":
		fmt.Fprintln(out, msaflow.Info())
		return nil
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		log.WithField("command", command).Error("Unknown command")
		return errUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `msaflow - Multiple Sequence Alignment Tool

Usage:
  msaflow <command> [options]

Commands:
  info      Show alignment dimensions and layout
  counts    Compute pairwise alignment counts
  convert   Rewrite alignments as canonical PHYLIP
  view      Pretty print alignments in blocks
  fasta     Export the ungapped sequences as FASTA
  version   Show version information
  help      Show this help message

Use "msaflow <command> -h" for more information about a command.`)
}

// options are the flags shared by every command.
type options struct {
	fs         *flag.FlagSet
	file       *string
	verbose    *bool
	cpuprofile *string
}

func newOptions(name string) *options {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return &options{
		fs:         fs,
		file:       fs.String("file", "-", "PHYLIP file to read (- for stdin, .gz accepted)"),
		verbose:    fs.Bool("v", false, "Enable debug logging"),
		cpuprofile: fs.String("cpuprofile", "", "Write a CPU profile to this directory"),
	}
}

// parse parses args and applies the shared flags. The returned function
// stops profiling and must be called when the command is done.
func (o *options) parse(args []string) (func(), error) {
	if err := o.fs.Parse(args); err != nil {
		return nil, err
	}
	if *o.verbose {
		log.SetLevel(log.DebugLevel)
	}
	if *o.cpuprofile != "" {
		p := profile.Start(profile.CPUProfile, profile.ProfilePath(*o.cpuprofile), profile.NoShutdownHook, profile.Quiet)
		return p.Stop, nil
	}
	return func() {}, nil
}

// eachAlignment calls fn for every alignment in the input file.
func (o *options) eachAlignment(fn func(n int, a *msaflow.Alignment, layout phylip.Layout) error) error {
	r, err := phylip.Open(*o.file)
	if err != nil {
		return fmt.Errorf("opening %s: %w", *o.file, err)
	}
	defer r.Close()

	for n := 1; ; n++ {
		a, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", *o.file, err)
		}
		layout, err := r.Layout()
		if err != nil {
			return err
		}
		if err := fn(n, a, layout); err != nil {
			return err
		}
	}
}

func infoCmd(args []string, out io.Writer) error {
	o := newOptions("info")
	stop, err := o.parse(args)
	if err != nil {
		return err
	}
	defer stop()

	return o.eachAlignment(func(n int, a *msaflow.Alignment, layout phylip.Layout) error {
		fmt.Fprintf(out, "Alignment %d:\n", n)
		fmt.Fprintf(out, "  Rows: %d\n", a.Len())
		fmt.Fprintf(out, "  Columns: %d\n", a.Columns())
		fmt.Fprintf(out, "  Layout: %s\n", layout)
		for i, seq := range a.Sequences() {
			start, end := a.Span(i)
			fmt.Fprintf(out, "  %-10s %d residues, %d gaps\n", seq.ID(), end-start, a.Columns()-(end-start))
		}
		rs, err := stats.SummarizeRows(a)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  Lengths: %d - %d (mean %.1f, median %d)\n", rs.MinLength, rs.MaxLength, rs.MeanLength, rs.MedianLength)
		fmt.Fprintf(out, "  Gaps: %d (%.2f%%)\n", rs.Gaps, 100*rs.GapFraction())
		fmt.Fprintln(out)
		return nil
	})
}

// scorer builds the Scorer selected by -matrix or -match/-mismatch. It
// returns nil when neither is given.
func scorer(matrix string, match, mismatch int) (stats.Scorer, error) {
	switch {
	case matrix != "" && match != 0:
		return nil, errors.New("-matrix and -match are mutually exclusive")
	case matrix != "":
		return substitution.Load(matrix)
	case match != 0:
		return substitution.NewUniform(match, mismatch)
	default:
		return nil, nil
	}
}

func countsCmd(args []string, out io.Writer) error {
	o := newOptions("counts")
	matrix := o.fs.String("matrix", "", "Substitution matrix: blosum62 or an NCBI format file")
	match := o.fs.Int("match", 0, "Uniform match score (instead of -matrix)")
	mismatch := o.fs.Int("mismatch", -1, "Uniform mismatch score")
	full := o.fs.Bool("full", false, "Print the full gap breakdown")
	stop, err := o.parse(args)
	if err != nil {
		return err
	}
	defer stop()

	s, err := scorer(*matrix, *match, *mismatch)
	if err != nil {
		return err
	}

	return o.eachAlignment(func(n int, a *msaflow.Alignment, _ phylip.Layout) error {
		counts, err := msaflow.Counts(a, s)
		if err != nil {
			return fmt.Errorf("alignment %d: %w", n, err)
		}
		log.WithFields(log.Fields{
			"alignment": n,
			"rows":      a.Len(),
			"columns":   a.Columns(),
		}).Debug("Counted alignment")

		if *full {
			fmt.Fprint(out, counts.String())
			return nil
		}
		fmt.Fprintf(out, "Alignment %d: %s\n", n, counts.Summary())
		fmt.Fprintf(out, "  Identity: %.2f%%\n", counts.Identity()*100)
		if counts.Scored {
			fmt.Fprintf(out, "  Similarity: %.2f%%\n", counts.Similarity()*100)
		}
		return nil
	})
}

func convertCmd(args []string, out io.Writer) error {
	o := newOptions("convert")
	output := o.fs.String("out", "", "Output file (default stdout)")
	stop, err := o.parse(args)
	if err != nil {
		return err
	}
	defer stop()

	w := out
	var f io.WriteCloser
	if *output != "" {
		if f, err = createOutput(*output); err != nil {
			return fmt.Errorf("creating %s: %w", *output, err)
		}
		w = f
	}

	pw := phylip.NewWriter(w)
	written := 0
	err = o.eachAlignment(func(_ int, a *msaflow.Alignment, _ phylip.Layout) error {
		if err := pw.Write(a); err != nil {
			return err
		}
		written++
		return nil
	})
	if f != nil {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", *output, cerr)
		}
	}
	log.WithField("alignments", written).Debug("Converted")
	return err
}

// createOutput opens the -out file of convert.
var createOutput = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

func viewCmd(args []string, out io.Writer) error {
	o := newOptions("view")
	stop, err := o.parse(args)
	if err != nil {
		return err
	}
	defer stop()

	return o.eachAlignment(func(n int, a *msaflow.Alignment, _ phylip.Layout) error {
		if n > 1 {
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, a.String())
		return nil
	})
}

func fastaCmd(args []string, out io.Writer) error {
	o := newOptions("fasta")
	stop, err := o.parse(args)
	if err != nil {
		return err
	}
	defer stop()

	return o.eachAlignment(func(_ int, a *msaflow.Alignment, _ phylip.Layout) error {
		return msaflow.WriteFASTA(out, a)
	})
}
