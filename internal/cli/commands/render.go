package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Piiit/pwScripts/internal/cli/config"
	"github.com/Piiit/pwScripts/pkg/latex"
	"github.com/Piiit/pwScripts/pkg/layout"
	"github.com/Piiit/pwScripts/pkg/parser"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// RenderOptions holds the flags of the render command.
type RenderOptions struct {
	Type    string
	OutFile string
	Force   bool
	Watch   bool
	Label   string
	Caption string
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a psql dump as TikZ figure and LaTeX table",
		Long: `Render an annotated psql transcript or TSV dump as LaTeX source.

The input must carry TIKZ directive comments describing the timeline
and one relation per table output. Reads from stdin when no file is
given or the file is "-".

Output types:
  all         table and figure side by side (default)
  top         table above the figure, each with its own caption
  table       LaTeX table only
  figure      tikzpicture only
  standalone  compilable standalone document with the figure`,
		Example: `  # Side-by-side figure and table from a transcript
  psql -a -d mydb -f query.sql | pwscripts render

  # Standalone document written next to the input
  pwscripts render dump.sql -t standalone -o figure.tex

  # Re-render whenever the input changes
  pwscripts render dump.sql -o figure.tex --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runRender(cmd, path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "t", "", "output type (all|top|table|figure|standalone)")
	cmd.Flags().StringVarP(&opts.OutFile, "out", "o", "", "write output to file instead of stdout")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "overwrite the output file if it exists")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "watch the input file and re-render on change")
	cmd.Flags().StringVarP(&opts.Label, "label", "l", "", "figure label (document config overrides)")
	cmd.Flags().StringVarP(&opts.Caption, "caption", "c", "", "figure caption (document config overrides)")

	_ = cmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputTypes, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runRender(cmd *cobra.Command, path string, opts *RenderOptions) error {
	cfg := GetConfig(cmd.Context())

	if opts.Watch {
		if path == "" || path == "-" {
			return fmt.Errorf("--watch needs an input file, not stdin")
		}
		if opts.OutFile == "" {
			return fmt.Errorf("--watch needs an output file, use -o")
		}
	}

	raw, err := readInput(path)
	if err != nil {
		return err
	}

	out, err := render(raw, cfg, opts)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), opts, out); err != nil {
		return err
	}

	if opts.Watch {
		return watchAndRender(cmd, path, cfg, opts)
	}
	return nil
}

// readInput slurps the input file, or stdin for "" and "-". Reading
// from an interactive terminal is almost certainly a mistake and is
// refused with a usage hint.
func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return "", fmt.Errorf("no input file given and stdin is a terminal; pipe a psql transcript in or pass a file")
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

// render runs the full pipeline on one input: parse, layout, then both
// output projections, assembled according to the output type.
func render(raw string, cfg *config.Config, opts *RenderOptions) (string, error) {
	doc, err := parser.Parse(strings.NewReader(raw))
	if err != nil {
		return "", err
	}
	l, err := layout.Compute(doc)
	if err != nil {
		return "", err
	}

	outputType := opts.Type
	if outputType == "" {
		outputType = cfg.OutputType
	}

	figOpts := latex.FigureOptions{
		XScale: doc.ConfigOr("xscale", cfg.XScale),
		YScale: doc.ConfigOr("yscale", cfg.YScale),
	}
	label := doc.ConfigOr("label", opts.Label)
	caption := doc.ConfigOr("caption", opts.Caption)

	// The two projections are independent reads of the same layout.
	var figure, tableInline, tableTop, tableCaptioned string
	g := new(errgroup.Group)
	g.Go(func() error {
		figure = latex.Figure(l, figOpts)
		return nil
	})
	g.Go(func() error {
		switch outputType {
		case "all":
			tableInline = latex.Tables(l, latex.TableInline, label)
		case "top":
			tableTop = latex.Tables(l, latex.TableTop, label)
		case "table":
			tableCaptioned = latex.Tables(l, latex.TableCaptioned, label)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	header := latex.Header("pwscripts", Version, raw)

	switch outputType {
	case "all":
		if label == "" || caption == "" {
			return "", fmt.Errorf("output type %q needs a label and a caption, set them with a config directive or with -l and -c", outputType)
		}
		return header + latex.Combined(tableInline, figure, caption, label,
			doc.ConfigOr("subfigure-left", cfg.SubfigureLeft),
			doc.ConfigOr("subfigure-right", cfg.SubfigureRight)), nil

	case "top":
		if label == "" || caption == "" {
			return "", fmt.Errorf("output type %q needs a label and a caption, set them with a config directive or with -l and -c", outputType)
		}
		return header + latex.CombinedTop(tableTop, figure, latex.CombinedTopOptions{
			Caption:      caption,
			Label:        label,
			TableCaption: doc.ConfigOr("tablecaption", caption),
			TableLabel:   doc.ConfigOr("tablelabel", label+"-table"),
			GraphCaption: doc.ConfigOr("graphcaption", caption),
			GraphLabel:   doc.ConfigOr("graphlabel", label+"-graph"),
		}), nil

	case "table":
		return header + tableCaptioned, nil

	case "figure":
		return header + figure, nil

	case "standalone":
		return header + latex.Standalone(figure), nil
	}
	return "", fmt.Errorf("unknown output type %q (expected one of: all, top, table, figure, standalone)", outputType)
}

// writeOutput sends the result to stdout, or to the output file.
// Existing files are only replaced with --force.
func writeOutput(stdout io.Writer, opts *RenderOptions, out string) error {
	if opts.OutFile == "" {
		_, err := fmt.Fprintln(stdout, out)
		return err
	}
	if !opts.Force {
		if _, err := os.Stat(opts.OutFile); err == nil {
			return fmt.Errorf("output file %s exists, use --force to overwrite", opts.OutFile)
		}
	}
	return os.WriteFile(opts.OutFile, []byte(out+"\n"), 0o644)
}

// watchAndRender re-renders the input on every change until the context
// is cancelled. The parent directory is watched because most editors
// replace files instead of writing them in place.
func watchAndRender(cmd *cobra.Command, path string, cfg *config.Config, opts *RenderOptions) error {
	log := GetLogger(cmd.Context())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	log.Info("watching for changes", "file", path)

	target := filepath.Clean(path)
	var lastContent []byte
	for {
		select {
		case <-cmd.Context().Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				log.Warn("failed to re-read input", "error", err)
				continue
			}
			if bytes.Equal(raw, lastContent) {
				continue
			}
			lastContent = raw

			out, err := render(string(raw), cfg, opts)
			if err != nil {
				log.Warn("render failed", "error", err)
				continue
			}
			if err := os.WriteFile(opts.OutFile, []byte(out+"\n"), 0o644); err != nil {
				return err
			}
			log.Info("re-rendered", "out", opts.OutFile)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
