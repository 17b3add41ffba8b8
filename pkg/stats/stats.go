// Package stats pivots per-experiment measurement files into a single
// table. Each input file covers one value of a varying parameter that
// is encoded in its filename; each row inside a file is one measured
// run of an algorithm. The pivot has the parameter as first column and
// one column per algorithm holding the mean measurement.
package stats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	filenameRe = regexp.MustCompile(`^([a-zA-Z]+)([0-9.]+).*$`)
	naturalRe  = regexp.MustCompile(`([0-9]+)`)
)

// Pivot aggregates measurements keyed by parameter value and algorithm.
type Pivot struct {
	ParamName  string
	algorithms []string
	values     []string
	cells      map[string]map[string]*acc
}

type acc struct {
	sum   int64
	count int64
}

// NewPivot returns an empty pivot.
func NewPivot() *Pivot {
	return &Pivot{cells: map[string]map[string]*acc{}}
}

// splitFilename strips the prefix and extension from path and extracts
// the parameter name and value.
func splitFilename(prefix, path string) (name, value string, err error) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if !strings.HasPrefix(base, prefix) {
		return "", "", fmt.Errorf("filename %q does not start with prefix %q", base, prefix)
	}
	m := filenameRe.FindStringSubmatch(base[len(prefix):])
	if m == nil {
		return "", "", fmt.Errorf("filename %q does not match <prefix><parameter-name><parameter-value>", base)
	}
	return m[1], m[2], nil
}

// AddFile reads one experiment file. The parameter name and value come
// from the filename; all files added to a pivot must agree on the
// parameter name.
func (p *Pivot) AddFile(prefix, path string) error {
	name, value, err := splitFilename(prefix, path)
	if err != nil {
		return err
	}
	if p.ParamName == "" {
		p.ParamName = name
	} else if name != p.ParamName {
		return fmt.Errorf("parameter name mismatch: first it was %q, then %q", p.ParamName, name)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return p.add(value, f)
}

func (p *Pivot) add(value string, r io.Reader) error {
	if _, ok := p.cells[value]; !ok {
		p.cells[value] = map[string]*acc{}
		p.values = append(p.values, value)
	}
	row := p.cells[value]

	scanner := bufio.NewScanner(r)
	header := true
	for scanner.Scan() {
		if header {
			header = false
			continue
		}
		cells := strings.Split(scanner.Text(), "\t")
		if len(cells) < 2 {
			continue
		}
		measurement, err := strconv.ParseInt(strings.TrimSpace(cells[1]), 10, 64)
		if err != nil {
			continue
		}
		algo := filepath.Base(cells[0])
		if _, ok := row[algo]; !ok {
			row[algo] = &acc{}
			if !contains(p.algorithms, algo) {
				p.algorithms = append(p.algorithms, algo)
			}
		}
		row[algo].sum += measurement
		row[algo].count++
	}
	return scanner.Err()
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// Algorithms returns the column names in first-seen order.
func (p *Pivot) Algorithms() []string {
	return p.algorithms
}

// Values returns the parameter values in natural sort order.
func (p *Pivot) Values() []string {
	out := make([]string, len(p.values))
	copy(out, p.values)
	sort.Slice(out, func(i, j int) bool {
		return naturalLess(out[i], out[j])
	})
	return out
}

// Cell returns the integer mean for a parameter value and algorithm,
// or "nan" when the algorithm has no measurements for that value.
func (p *Pivot) Cell(value, algo string) string {
	row, ok := p.cells[value]
	if !ok {
		return "nan"
	}
	a, ok := row[algo]
	if !ok || a.count == 0 {
		return "nan"
	}
	return strconv.FormatInt(a.sum/a.count, 10)
}

// WriteTSV serializes the pivot with a header row.
func (p *Pivot) WriteTSV(w io.Writer) error {
	cols := append([]string{p.ParamName}, p.algorithms...)
	if _, err := fmt.Fprintln(w, strings.Join(cols, "\t")); err != nil {
		return err
	}
	for _, value := range p.Values() {
		cells := make([]string, 0, len(cols))
		cells = append(cells, value)
		for _, algo := range p.algorithms {
			cells = append(cells, p.Cell(value, algo))
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// naturalTokens splits a string into alternating text and digit runs.
func naturalTokens(s string) []string {
	var out []string
	last := 0
	for _, loc := range naturalRe.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			out = append(out, s[last:loc[0]])
		}
		out = append(out, s[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(s) {
		out = append(out, s[last:])
	}
	return out
}

// naturalLess compares strings so that embedded numbers order by value
// and text fragments order case-insensitively.
func naturalLess(a, b string) bool {
	at := naturalTokens(a)
	bt := naturalTokens(b)
	for i := 0; i < len(at) && i < len(bt); i++ {
		x, xerr := strconv.Atoi(at[i])
		y, yerr := strconv.Atoi(bt[i])
		if xerr == nil && yerr == nil {
			if x != y {
				return x < y
			}
			continue
		}
		u, v := strings.ToLower(at[i]), strings.ToLower(bt[i])
		if u != v {
			return u < v
		}
	}
	return len(at) < len(bt)
}
