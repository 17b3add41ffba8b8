package commands

import (
	"fmt"
	"strings"

	"github.com/Piiit/pwScripts/pkg/parser"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the parsed relations of an annotated dump",
		Long: `Parse an annotated psql transcript and show what pwscripts sees:
the timeline, the config directives and every relation with its column
bindings, resolved intervals and rows.

Useful to debug directives before rendering.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runInspect(cmd, path)
		},
	}
}

func runInspect(cmd *cobra.Command, path string) error {
	raw, err := readInput(path)
	if err != nil {
		return err
	}
	doc, err := parser.Parse(strings.NewReader(raw))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	if doc.Timeline != nil {
		fmt.Fprintln(w, headingStyle.Render("Timeline"))
		fmt.Fprintf(w, "  %d..%d step %d, %q\n\n",
			doc.Timeline.From, doc.Timeline.To, doc.Timeline.Step, doc.Timeline.Description)
	}

	if len(doc.Config) > 0 {
		fmt.Fprintln(w, headingStyle.Render("Config"))
		for _, rec := range doc.Records {
			if c, ok := rec.(parser.ConfigRecord); ok {
				fmt.Fprintf(w, "  %s = %s\n", c.Key, c.Value)
			}
		}
		fmt.Fprintln(w)
	}

	ranges := doc.RangeLiterals()
	for _, rel := range doc.Relations {
		name := rel.Name
		if name == "" {
			name = "(anonymous)"
		}
		fmt.Fprintln(w, headingStyle.Render("Relation "+name))
		fmt.Fprintf(w, "  %s\n", dimStyle.Render(rel.Description))

		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)

		header := make(table.Row, 0, len(rel.Schema)+2)
		header = append(header, "#")
		for _, col := range rel.Schema {
			header = append(header, col)
		}
		header = append(header, "extent")
		t.AppendHeader(header)

		for i := 0; i < rel.Len(); i++ {
			row := make(table.Row, 0, len(rel.Schema)+2)
			row = append(row, i+1)
			for _, cell := range rel.Rows[i] {
				row = append(row, cell)
			}
			iv, err := rel.Interval(i, ranges)
			if err != nil {
				return err
			}
			if iv.Point {
				row = append(row, fmt.Sprintf("point at %d", iv.Start))
			} else {
				row = append(row, fmt.Sprintf("[%d, %d)", iv.Start, iv.End))
			}
			t.AppendRow(row)
		}
		t.Render()
		fmt.Fprintln(w)
	}
	return nil
}
