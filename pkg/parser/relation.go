package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// rangeLiteralRe matches two integers embedded in a PostgreSQL range
// literal such as "[3,9)". Boundary types are ignored; intervals are
// always treated as closed. Note that this also matches comma-formatted
// scalars like "1,200"; disable range parsing to avoid that.
var rangeLiteralRe = regexp.MustCompile(`.?(\d+),(\d+).?`)

// Interval is the temporal extent of one tuple. Point marks tuples that
// carried a single scalar instead of a period; they render as a marker
// instead of a bar, with End fixed at Start+1.
type Interval struct {
	Start int
	End   int
	Point bool
}

// Relation is the model of one parsed table: its schema, rows, and the
// temporal/position column bindings from the matching directive. A
// Relation is mutated while its table block is consumed and is read-only
// from the moment layout starts.
type Relation struct {
	Name        string // abbreviation used for tuple ordinals, may be empty
	Description string

	// Column names from the directive. TEName empty selects range or
	// point inference; YPosName empty selects default stacking.
	TSName   string
	TEName   string
	YPosName string

	Schema []string
	Rows   [][]string

	// Column indices resolved against Schema; -1 means absent.
	tsIndex   int
	teIndex   int
	yposIndex int
}

// NewRelation returns an empty relation placeholder with all column
// bindings unresolved.
func NewRelation() *Relation {
	return &Relation{tsIndex: -1, teIndex: -1, yposIndex: -1}
}

// setMetaData binds the 5 relation directive fields
// (name, ts, te, ypos, description).
func (r *Relation) setMetaData(fields []string) {
	r.Name = fields[0]
	r.TSName = fields[1]
	r.TEName = fields[2]
	r.YPosName = fields[3]
	r.Description = fields[4]
}

// setSchema records the column names from the table header.
func (r *Relation) setSchema(columns []string) {
	r.Schema = columns
}

// appendRow adds one tuple, enforcing the schema width invariant.
func (r *Relation) appendRow(cells []string) error {
	if len(cells) != len(r.Schema) {
		return errf("", "relation %s: row (%s) has %d columns, schema (%s) has %d",
			r.displayName(), strings.Join(cells, ", "), len(cells),
			strings.Join(r.Schema, ", "), len(r.Schema))
	}
	r.Rows = append(r.Rows, cells)
	return nil
}

// resolve looks up the directive's column names in the schema. A missing
// start column is fatal, as is a named end column that does not resolve.
// A named position column that does not resolve falls back to default
// stacking.
func (r *Relation) resolve() error {
	for i, col := range r.Schema {
		if col == "" {
			continue
		}
		switch col {
		case r.TSName:
			r.tsIndex = i
		case r.TEName:
			r.teIndex = i
		case r.YPosName:
			r.yposIndex = i
		}
	}
	if r.tsIndex == -1 {
		return errf(hintRelation, "temporal column %q not found in header (%s) of relation %s",
			r.TSName, strings.Join(r.Schema, ", "), r.displayName())
	}
	if r.TEName != "" && r.teIndex == -1 {
		return errf(hintRelation, "temporal column %q not found in header (%s) of relation %s",
			r.TEName, strings.Join(r.Schema, ", "), r.displayName())
	}
	return nil
}

// HasYPos reports whether the relation places tuples by an explicit
// position column instead of sequential stacking.
func (r *Relation) HasYPos() bool {
	return r.yposIndex != -1
}

// Len returns the number of rows.
func (r *Relation) Len() int {
	return len(r.Rows)
}

// YPos returns row i's vertical coordinate from the position column.
func (r *Relation) YPos(i int) (float64, error) {
	cell := r.Rows[i][r.yposIndex]
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, errf("", "relation %s: position value %q is not a number", r.displayName(), cell)
	}
	return v, nil
}

// Interval resolves row i's temporal extent. With an end column bound,
// both cells are parsed as integers. Without one, the start cell is
// first matched as a two-valued range literal (unless ranges is false),
// then falls back to a single scalar rendered in point mode.
func (r *Relation) Interval(i int, ranges bool) (Interval, error) {
	row := r.Rows[i]
	if r.teIndex != -1 {
		ts, err := strconv.Atoi(row[r.tsIndex])
		if err != nil {
			return Interval{}, errf("", "relation %s: start value %q is not an integer", r.displayName(), row[r.tsIndex])
		}
		te, err := strconv.Atoi(row[r.teIndex])
		if err != nil {
			return Interval{}, errf("", "relation %s: end value %q is not an integer", r.displayName(), row[r.teIndex])
		}
		return Interval{Start: ts, End: te}, nil
	}

	cell := row[r.tsIndex]
	if ranges {
		if m := rangeLiteralRe.FindStringSubmatch(cell); m != nil {
			ts, _ := strconv.Atoi(m[1])
			te, _ := strconv.Atoi(m[2])
			return Interval{Start: ts, End: te}, nil
		}
	}

	ts, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		return Interval{}, errf("", "relation %s: time value %q is neither a range nor an integer", r.displayName(), cell)
	}
	return Interval{Start: ts, End: ts + 1, Point: true}, nil
}

// Attrs returns row i's non-temporal, non-position cells in schema order.
// They form the tuple's label; an empty result suppresses the label.
func (r *Relation) Attrs(i int) []string {
	var out []string
	for j, cell := range r.Rows[i] {
		if j == r.tsIndex || j == r.teIndex || j == r.yposIndex {
			continue
		}
		out = append(out, cell)
	}
	return out
}

// TableHeader returns the schema without the position column, for the
// table projection.
func (r *Relation) TableHeader() []string {
	return r.withoutYPos(r.Schema)
}

// TableRow returns row i without the position column.
func (r *Relation) TableRow(i int) []string {
	return r.withoutYPos(r.Rows[i])
}

func (r *Relation) withoutYPos(cells []string) []string {
	if r.yposIndex == -1 {
		return cells
	}
	out := make([]string, 0, len(cells)-1)
	for j, cell := range cells {
		if j == r.yposIndex {
			continue
		}
		out = append(out, cell)
	}
	return out
}

// displayName is the relation name for error messages, falling back to
// the start column name for anonymous relations.
func (r *Relation) displayName() string {
	if r.Name != "" {
		return r.Name
	}
	if r.TSName != "" {
		return "(ts=" + r.TSName + ")"
	}
	return "(unnamed)"
}
