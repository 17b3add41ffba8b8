package latex

import (
	"fmt"
	"strings"
)

const templateHeader = `%% This file has been automatically generated by...
%%
%% %s v%s
%% Source code can be found under: https://github.com/Piiit/pwScripts
%%
%% From input:
%% _______________________________________________________________INPUT-START__
%s%% _______________________________________________________________INPUT-END____
`

const templateStandalone = `
\documentclass{standalone}
\usepackage{tikz}
\usetikzlibrary{
	arrows,
	decorations,
	positioning,
	shapes,
	fit,
	calc,
	matrix
}
\begin{document}
    %s
\end{document}
`

const templateCombined = `
\begin{figure}[!ht]
    \centering
    \hfill
    \begin{subfigure}[c]{%[1]s\textwidth}
%[3]s
    \end{subfigure}
    \hspace{10pt}
    \begin{subfigure}[c]{%[2]s\textwidth}
%[4]s
    \end{subfigure}
    \caption{%[5]s}
    \label{fig:%[6]s}
\end{figure}`

const templateCombinedTop = `
\begin{figure}[!ht]
    \centering
    \begin{subfigure}{\textwidth}
    \centering
%[1]s
    \caption{%[3]s}
    \label{sfig:%[4]s}
    \end{subfigure}

    \begin{subfigure}{\textwidth}
    \centering
%[2]s
    \caption{%[5]s}
    \label{sfig:%[6]s}
    \end{subfigure}
    \caption{%[7]s}
    \label{fig:%[8]s}
\end{figure}
`

// Header returns the generated-file comment block echoing the raw input,
// so every artifact documents the dump it came from.
func Header(appName, version, rawInput string) string {
	var echo strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(rawInput), "\n") {
		echo.WriteString("% ")
		echo.WriteString(line)
		echo.WriteString("\n")
	}
	return fmt.Sprintf(templateHeader, appName, version, echo.String())
}

// Standalone wraps the figure in a compilable standalone document.
func Standalone(figure string) string {
	return fmt.Sprintf(templateStandalone, figure)
}

// Combined places table and figure side by side as subfigures. The
// widths are emitted verbatim as fractions of \textwidth.
func Combined(table, figure, caption, label, leftWidth, rightWidth string) string {
	return fmt.Sprintf(templateCombined, leftWidth, rightWidth, table, figure, caption, label)
}

// CombinedTopOptions carries the captions and labels of the
// table-above-figure form. All fields come from config directives.
type CombinedTopOptions struct {
	Caption      string
	Label        string
	TableCaption string
	TableLabel   string
	GraphCaption string
	GraphLabel   string
}

// CombinedTop places the table above the figure, each as a captioned
// subfigure of full width.
func CombinedTop(table, figure string, opts CombinedTopOptions) string {
	return fmt.Sprintf(templateCombinedTop,
		table, figure,
		opts.TableCaption, opts.TableLabel,
		opts.GraphCaption, opts.GraphLabel,
		opts.Caption, opts.Label)
}
