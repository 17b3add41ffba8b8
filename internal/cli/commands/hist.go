package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Piiit/pwScripts/pkg/hist"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// HistOptions holds the flags of the hist command.
type HistOptions struct {
	Mode    string
	Buckets int
	Summary bool
	Prefix  string
}

// NewHistCommand creates the hist command.
func NewHistCommand() *cobra.Command {
	opts := &HistOptions{}
	cmd := &cobra.Command{
		Use:   "hist [file]",
		Short: "Histograms over temporal interval data",
		Long: `Compute bucketed statistics over tab-separated interval data
(start and end point per line, further columns ignored).

Modes:
  overlap   maximum number of concurrently open intervals per bucket
  start     distribution of start points, scaled to percent of the domain
  duration  distribution of interval durations

The result is two-column TSV (x, y), ready for pgfplots. With --prefix
all three histograms are written to <prefix>-{overlap,start,duration}.csv
instead of printing a single mode to stdout.`,
		Example: `  pwscripts hist intervals.tsv --mode overlap
  pwscripts hist intervals.tsv --mode duration --buckets 50 --summary
  pwscripts hist intervals.tsv --prefix results/run1`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runHist(cmd, path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "overlap", "histogram mode (overlap|start|duration)")
	cmd.Flags().IntVarP(&opts.Buckets, "buckets", "b", 0, "bucket count (default from config)")
	cmd.Flags().BoolVarP(&opts.Summary, "summary", "s", false, "print min/max/avg of the durations to stderr")
	cmd.Flags().StringVarP(&opts.Prefix, "prefix", "p", "", "write all histograms to <prefix>-<mode>.csv files")

	_ = cmd.RegisterFlagCompletionFunc("mode", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"overlap", "start", "duration"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runHist(cmd *cobra.Command, path string, opts *HistOptions) error {
	buckets := opts.Buckets
	if buckets == 0 {
		buckets = GetConfig(cmd.Context()).HistBuckets
	}
	if buckets < 1 {
		return fmt.Errorf("bucket count must be positive, got %d", buckets)
	}

	var r io.Reader
	if path == "" || path == "-" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("no input file given and stdin is a terminal; pipe interval data in or pass a file")
		}
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	s, err := hist.Read(r)
	if err != nil {
		return err
	}

	if opts.Summary {
		fmt.Fprintln(cmd.ErrOrStderr(), hist.Summarize(s.Durations()))
	}

	if opts.Prefix != "" {
		return writeHistFiles(s, buckets, opts.Prefix)
	}

	var h hist.Histogram
	switch strings.ToLower(opts.Mode) {
	case "overlap":
		h = s.Overlap(buckets)
	case "start":
		h = s.StartPoints(buckets)
	case "duration":
		h = s.DurationDist(buckets)
	default:
		return fmt.Errorf("unknown histogram mode %q (expected overlap, start or duration)", opts.Mode)
	}
	return h.WriteTSV(cmd.OutOrStdout())
}

func writeHistFiles(s *hist.Series, buckets int, prefix string) error {
	for name, h := range map[string]hist.Histogram{
		"overlap":  s.Overlap(buckets),
		"start":    s.StartPoints(buckets),
		"duration": s.DurationDist(buckets),
	} {
		f, err := os.Create(prefix + "-" + name + ".csv")
		if err != nil {
			return fmt.Errorf("failed to create histogram file: %w", err)
		}
		err = h.WriteTSV(f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("failed to write %s histogram: %w", name, err)
		}
	}
	return nil
}
