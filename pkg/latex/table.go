package latex

import (
	"fmt"
	"strings"

	"github.com/Piiit/pwScripts/pkg/layout"
	"github.com/Piiit/pwScripts/pkg/parser"
)

// TableStyle selects one of the three tabular variants.
type TableStyle int

const (
	// TableCaptioned is a full table environment with caption and label.
	TableCaptioned TableStyle = iota
	// TableInline is a bare tabular for side-by-side subfigures.
	TableInline
	// TableTop is a top-aligned tabular for the table-above-figure form.
	TableTop
)

const templateTableCaptioned = `
    \begin{table}
        \renewcommand{\arraystretch}{1.3}
        \caption{%[1]s}
        \label{tab:%[2]s}
        \centering
        \begin{tabular}{c|%[3]s|}
            \cline{2-%[4]d}
            ~ & %[5]s \\
            \cline{2-%[4]d}
%[6]s
            \cline{2-%[4]d}
        \end{tabular}
    \end{table}
`

const templateTableInline = `
    \begin{tabular}{|c|%[1]s|}
        \hline
        \bfseries %[2]s & %[3]s \\
        \hline
%[4]s
        \hline
    \end{tabular}
`

const templateTableTop = `
    \begin{tabular}[t]{|c|%[1]s|}
        \hline
        \bfseries %[2]s & %[3]s \\
        \hline
%[4]s
        \hline
    \end{tabular}
`

// Table renders one relation as LaTeX tabular source. The schema and
// rows are emitted without the position column; each row is prefixed
// with the ordinal tag $name_{i}$.
func Table(rel *parser.Relation, style TableStyle, label string) string {
	header := rel.TableHeader()
	headerCfg := strings.Repeat("c", len(header))
	headerRow := strings.Join(header, " & ")

	var rows strings.Builder
	for i := 0; i < rel.Len(); i++ {
		rows.WriteString(fmt.Sprintf(`            $%s_{%d}$ & %s \\`,
			rel.Name, i+1, strings.Join(rel.TableRow(i), " & ")))
		rows.WriteString("\n")
	}
	body := strings.TrimRight(rows.String(), "\n")

	switch style {
	case TableCaptioned:
		return fmt.Sprintf(templateTableCaptioned,
			rel.Description, label, headerCfg, len(header)+1, headerRow, body)
	case TableTop:
		return fmt.Sprintf(templateTableTop, headerCfg, rel.Name, headerRow, body)
	default:
		return fmt.Sprintf(templateTableInline, headerCfg, rel.Name, headerRow, body)
	}
}

// Tables renders every relation-table block of the layout, separated by
// a fixed horizontal space, preserving document order.
func Tables(l *layout.Layout, style TableStyle, label string) string {
	var parts []string
	for _, blk := range l.Blocks {
		if blk.Timeline != nil || !blk.WithTable {
			continue
		}
		parts = append(parts, Table(blk.Relation, style, label))
	}
	return strings.Join(parts, `    \hspace{2cm}`)
}
