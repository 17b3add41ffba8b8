// Package latex serializes a computed layout into LaTeX and TikZ
// source. Both projections (figure and table) are pure functions over
// the immutable layout and never fail: every fatal condition has been
// reported by the parser or the layout engine before rendering starts.
package latex

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Piiit/pwScripts/pkg/layout"
	"github.com/Piiit/pwScripts/pkg/parser"
)

// FigureOptions tunes the tikzpicture scaling. Values are emitted
// verbatim into the picture options.
type FigureOptions struct {
	XScale string
	YScale string
}

// DefaultFigureOptions are the scales used when neither the document
// nor the configuration provides any.
func DefaultFigureOptions() FigureOptions {
	return FigureOptions{XScale: "0.65", YScale: "0.4"}
}

const templatePicture = `
    \begin{tikzpicture}[xscale=%s,yscale=%s]
    %s
    \end{tikzpicture}
`

const templateDesc = `
        %% Description
        \node[align=left, font=\scriptsize] at (0,%s) {%s};
`

// Regular timeline with a number below every tick.
const templateTimeline = `
        %% Time line
        \draw[->, line width = 0.9] (%[1]d,0)--(%[2]d+1,0);
        \foreach \t in {%[1]d,...,%[2]d}
        {
            \draw ($(\t cm,-1mm)+(0cm,0)$)--($(\t cm,1mm)+(0cm,0)$);
            \draw ($(\t 5mm,0.5mm)$) node[below,font=\scriptsize \bfseries]{\t};
        }
        \draw ($(%[2]d+1,0)+(3mm,-1mm)$) node[below,font=\bfseries]{$\mathrm{%[3]s}$};
`

// Timeline with a number only at every step-th tick.
const templateTimelineStep = `
        %% Time line
        \draw[->, line width = 0.9] (%[1]d,0)--(%[2]d+1,0);
        \foreach \t in {%[1]d,...,%[2]d}
        {
            \draw ($(\t cm,-1mm)+(0cm,0)$)--($(\t cm,1mm)+(0cm,0)$);
            \pgfmathparse{Mod(\t, %[4]d) == 0 ? 1 : 0}
            \ifnum\pgfmathresult>0
                \draw ($(\t 5mm,0.5mm)$) node[below,font=\scriptsize \bfseries]{\t};
            \fi
        }
        \draw ($(%[2]d+1,0)+(3mm,-1mm)$) node[below,font=\bfseries]{$\mathrm{%[3]s}$};
`

const templateTuple = `
        %% Tuple %[1]s
        \draw[-] (%[2]d,%[4]s)--(%[3]d,%[4]s);
        \draw[-] (%[5]s,%[6]s) node[above,font=\tiny]{%[7]s};
`

const templatePoint = `
        %% Point %[1]s
        \draw (%[2]d+0.5,%[4]s) node[cross] {};
        \draw[-] (%[5]s,%[6]s) node[above,font=\tiny]{%[7]s};
`

// Figure renders the TikZ picture: the optional axis, per-relation
// descriptions and one bar or marker per tuple, in document order.
func Figure(l *layout.Layout, opts FigureOptions) string {
	var b strings.Builder
	for _, blk := range l.Blocks {
		if blk.Timeline != nil {
			b.WriteString(figureTimeline(blk.Timeline))
			continue
		}
		if strings.TrimSpace(blk.Relation.Description) != "" {
			b.WriteString(fmt.Sprintf(templateDesc, ftoa(blk.DescY), blk.Relation.Description))
		}
		for _, t := range blk.Tuples {
			b.WriteString(figureTuple(blk.Relation.Name, t))
		}
	}
	return fmt.Sprintf(templatePicture, opts.XScale, opts.YScale, b.String())
}

func figureTimeline(tl *parser.Timeline) string {
	if tl.Step > 0 {
		return fmt.Sprintf(templateTimelineStep, tl.From, tl.To, tl.Description, tl.Step)
	}
	return fmt.Sprintf(templateTimeline, tl.From, tl.To, tl.Description)
}

// figureTuple renders one positioned tuple: an interval bar, or a cross
// marker for point-mode tuples, plus the math-mode label above it.
func figureTuple(name string, t layout.Tuple) string {
	template := templateTuple
	if t.Interval.Point {
		template = templatePoint
	}

	id := fmt.Sprintf("%s_%d", name, t.Ordinal)
	posx := ftoa(float64(t.Interval.Start+t.Interval.End) / 2)
	posy := ftoa(t.Y - 0.2)

	return fmt.Sprintf(template,
		id, t.Interval.Start, t.Interval.End, ftoa(t.Y), posx, posy,
		tupleLabel(name, t.Ordinal, t.Attrs))
}

// tupleLabel composes the label group. Tuples without attributes carry
// only their ordinal; anonymous relations drop the ordinal prefix.
func tupleLabel(name string, ordinal int, attrs []string) string {
	if len(attrs) == 0 {
		return fmt.Sprintf("$%s_{%d}$", name, ordinal)
	}
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = fmt.Sprintf(`\mathrm{%s}`, a)
	}
	attribs := strings.Join(parts, ",")
	if name == "" {
		return fmt.Sprintf("$(%s)$", attribs)
	}
	return fmt.Sprintf("$%s_{%d}=(%s)$", name, ordinal, attribs)
}

// ftoa formats a coordinate without trailing zeros.
func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
