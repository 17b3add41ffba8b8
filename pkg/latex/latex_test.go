package latex_test

import (
	"strings"
	"testing"

	"github.com/Piiit/pwScripts/pkg/latex"
	"github.com/Piiit/pwScripts/pkg/layout"
	"github.com/Piiit/pwScripts/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInput = `-- TIKZ: timeline, 0, 10, , time
-- TIKZ: relation-table, r, ts, te, , Employees
 name | ts | te
------+----+----
 Ann  |  1 |  5
 Bob  |  3 |  9
(2 rows)
`

func sampleLayout(t *testing.T, input string) *layout.Layout {
	t.Helper()
	doc, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	l, err := layout.Compute(doc)
	require.NoError(t, err)
	return l
}

func TestFigure(t *testing.T) {
	fig := latex.Figure(sampleLayout(t, sampleInput), latex.DefaultFigureOptions())

	assert.Contains(t, fig, `\begin{tikzpicture}[xscale=0.65,yscale=0.4]`)
	assert.Contains(t, fig, `\draw[->, line width = 0.9] (0,0)--(10+1,0);`)
	assert.Contains(t, fig, `\foreach \t in {0,...,10}`)
	// Stacking continues below the axis at -2.
	assert.Contains(t, fig, `\draw[-] (1,-2)--(5,-2);`)
	assert.Contains(t, fig, `\draw[-] (3,-3)--(9,-3);`)
	assert.Contains(t, fig, `$r_{1}=(\mathrm{Ann})$`)
	assert.Contains(t, fig, `\node[align=left, font=\scriptsize] at (0,-2.5) {Employees};`)
}

func TestFigureTimelineStep(t *testing.T) {
	fig := latex.Figure(sampleLayout(t, `-- TIKZ: timeline, 0, 100, 10, t
-- TIKZ: relation, r, ts, te, , R
 a | ts | te
---+----+----
 x |  1 |  2
(1 row)
`), latex.DefaultFigureOptions())

	assert.Contains(t, fig, `\pgfmathparse{Mod(\t, 10) == 0 ? 1 : 0}`)
}

func TestFigurePointMarker(t *testing.T) {
	fig := latex.Figure(sampleLayout(t, `-- TIKZ: relation, r, t, , , R
-- TIKZ: timeline, 0, 10, , time
 a | t
---+---
 x | 4
(1 row)
`), latex.DefaultFigureOptions())

	assert.Contains(t, fig, `\draw (4+0.5,1) node[cross] {};`)
	assert.NotContains(t, fig, `\draw[-] (4,1)--(5,1);`)
}

func TestFigureAnonymousLabel(t *testing.T) {
	fig := latex.Figure(sampleLayout(t, `-- TIKZ: relation, , ts, te, , R
-- TIKZ: timeline, 0, 10, , time
 a | ts | te
---+----+----
 x |  1 |  2
(1 row)
`), latex.DefaultFigureOptions())

	// Without a relation name the ordinal prefix is dropped.
	assert.Contains(t, fig, `{$(\mathrm{x})$}`)
}

func TestTable(t *testing.T) {
	l := sampleLayout(t, sampleInput)
	tab := latex.Tables(l, latex.TableCaptioned, "mylabel")

	assert.Contains(t, tab, `\caption{Employees}`)
	assert.Contains(t, tab, `\label{tab:mylabel}`)
	assert.Contains(t, tab, `~ & name & ts & te \\`)
	assert.Contains(t, tab, `$r_{1}$ & Ann & 1 & 5 \\`)
	assert.Contains(t, tab, `$r_{2}$ & Bob & 3 & 9 \\`)
}

func TestTableInlineAndTop(t *testing.T) {
	l := sampleLayout(t, sampleInput)

	inline := latex.Tables(l, latex.TableInline, "")
	assert.Contains(t, inline, `\begin{tabular}{|c|ccc|}`)
	assert.Contains(t, inline, `\bfseries r & name & ts & te \\`)

	top := latex.Tables(l, latex.TableTop, "")
	assert.Contains(t, top, `\begin{tabular}[t]{|c|ccc|}`)
}

func TestTableSkipsFigureOnlyRelations(t *testing.T) {
	l := sampleLayout(t, `-- TIKZ: relation, r, ts, te, , R
-- TIKZ: timeline, 0, 10, , time
 a | ts | te
---+----+----
 x |  1 |  2
(1 row)
`)
	assert.Empty(t, latex.Tables(l, latex.TableInline, ""))
}

func TestTableDropsPositionColumn(t *testing.T) {
	l := sampleLayout(t, `-- TIKZ: relation-table, r, ts, te, pos, R
-- TIKZ: timeline, 0, 10, , time
 a | ts | te | pos
---+----+----+-----
 x |  1 |  2 | 1
(1 row)
`)
	tab := latex.Tables(l, latex.TableInline, "")
	assert.Contains(t, tab, `\bfseries r & a & ts & te \\`)
	assert.NotContains(t, tab, "pos")
}

func TestHeaderEchoesInput(t *testing.T) {
	h := latex.Header("pwscripts", "1.0.0", "SELECT 1;\nSELECT 2;")

	assert.True(t, strings.HasPrefix(h, "% This file has been automatically generated by..."))
	assert.Contains(t, h, "% pwscripts v1.0.0")
	assert.Contains(t, h, "% SELECT 1;\n% SELECT 2;\n")
	assert.Contains(t, h, "INPUT-START")
	assert.Contains(t, h, "INPUT-END")
}

func TestStandalone(t *testing.T) {
	doc := latex.Standalone("FIGURE")

	assert.Contains(t, doc, `\documentclass{standalone}`)
	assert.Contains(t, doc, `\usetikzlibrary{`)
	assert.Contains(t, doc, "FIGURE")
	assert.Contains(t, doc, `\end{document}`)
}

func TestCombined(t *testing.T) {
	doc := latex.Combined("TABLE", "FIGURE", "caption text", "lbl", "0.45", "0.45")

	assert.Contains(t, doc, `\begin{subfigure}[c]{0.45\textwidth}`)
	assert.Contains(t, doc, "TABLE")
	assert.Contains(t, doc, "FIGURE")
	assert.Contains(t, doc, `\caption{caption text}`)
	assert.Contains(t, doc, `\label{fig:lbl}`)
	assert.Less(t, strings.Index(doc, "TABLE"), strings.Index(doc, "FIGURE"))
}

func TestCombinedTop(t *testing.T) {
	doc := latex.CombinedTop("TABLE", "FIGURE", latex.CombinedTopOptions{
		Caption:      "outer",
		Label:        "out",
		TableCaption: "tcap",
		TableLabel:   "tlbl",
		GraphCaption: "gcap",
		GraphLabel:   "glbl",
	})

	assert.Contains(t, doc, `\caption{tcap}`)
	assert.Contains(t, doc, `\label{sfig:tlbl}`)
	assert.Contains(t, doc, `\caption{gcap}`)
	assert.Contains(t, doc, `\label{sfig:glbl}`)
	assert.Contains(t, doc, `\caption{outer}`)
	assert.Contains(t, doc, `\label{fig:out}`)
}
