package parser_test

import (
	"strings"
	"testing"

	"github.com/Piiit/pwScripts/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) *parser.Document {
	t.Helper()
	doc, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	return doc
}

func TestParseFullDocument(t *testing.T) {
	doc := parse(t, `-- TIKZ: config, xscale, 0.5
-- TIKZ: timeline, 0, 10, 2, time
-- TIKZ: relation, r, ts, te, , Employees, with commas
SELECT * FROM r;
 name | ts | te
------+----+----
 Ann  |  1 |  5
 Bob  |  3 |  9
(2 rows)
`)

	assert.Equal(t, "0.5", doc.Config["xscale"])
	assert.Equal(t, "0.5", doc.ConfigOr("xscale", "1"))
	assert.Equal(t, "1", doc.ConfigOr("yscale", "1"))

	require.NotNil(t, doc.Timeline)
	assert.Equal(t, 0, doc.Timeline.From)
	assert.Equal(t, 10, doc.Timeline.To)
	assert.Equal(t, 2, doc.Timeline.Step)
	assert.Equal(t, "time", doc.Timeline.Description)

	require.Len(t, doc.Relations, 1)
	rel := doc.Relations[0]
	assert.Equal(t, "r", rel.Name)
	// The description is the remainder of the directive, commas included.
	assert.Equal(t, "Employees, with commas", rel.Description)
	assert.Equal(t, []string{"name", "ts", "te"}, rel.Schema)
	require.Equal(t, 2, rel.Len())

	iv, err := rel.Interval(0, doc.RangeLiterals())
	require.NoError(t, err)
	assert.Equal(t, parser.Interval{Start: 1, End: 5}, iv)

	// Record order is source order.
	require.Len(t, doc.Records, 3)
	_, ok := doc.Records[0].(parser.ConfigRecord)
	assert.True(t, ok)
	_, ok = doc.Records[1].(parser.TimelineRecord)
	assert.True(t, ok)
	rr, ok := doc.Records[2].(parser.RelationRecord)
	require.True(t, ok)
	assert.False(t, rr.WithTable)
}

func TestParseDirectiveAfterData(t *testing.T) {
	// The table block precedes its relation directive; the positional
	// slot must bind them regardless.
	doc := parse(t, ` name | ts | te
------+----+----
 Ann  |  1 |  5
(1 row)

-- TIKZ: relation-table, r, ts, te, , Employees
`)
	require.Len(t, doc.Relations, 1)
	assert.Equal(t, "r", doc.Relations[0].Name)
	assert.Equal(t, 1, doc.Relations[0].Len())

	rr, ok := doc.Records[0].(parser.RelationRecord)
	require.True(t, ok)
	assert.True(t, rr.WithTable)
}

func TestParseCardinalityErrors(t *testing.T) {
	table := ` a | ts
---+----
 x |  1
(1 row)
`
	directive := "-- TIKZ: relation, r, ts, , , desc\n"

	t.Run("no tables", func(t *testing.T) {
		_, err := parser.Parse(strings.NewReader(directive))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no tables found")
	})

	t.Run("missing directive", func(t *testing.T) {
		_, err := parser.Parse(strings.NewReader(directive + table + "\n" + table))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not enough TIKZ relation config strings")
	})

	t.Run("missing table", func(t *testing.T) {
		_, err := parser.Parse(strings.NewReader(directive + directive + table))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not enough table outputs")

		var perr *parser.Error
		require.ErrorAs(t, err, &perr)
		assert.NotEmpty(t, perr.Hint)
	})
}

func TestParseDuplicateTimeline(t *testing.T) {
	_, err := parser.Parse(strings.NewReader(`-- TIKZ: timeline, 0, 5, , a
-- TIKZ: timeline, 0, 9, , b
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than one TIKZ timeline")
}

func TestParseMalformedDirectives(t *testing.T) {
	t.Run("short relation", func(t *testing.T) {
		_, err := parser.Parse(strings.NewReader("-- TIKZ: relation, r, ts\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not enough parameters")
	})

	t.Run("non-integer timeline", func(t *testing.T) {
		_, err := parser.Parse(strings.NewReader("-- TIKZ: timeline, zero, 5, , a\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not an integer")
	})

	t.Run("short config", func(t *testing.T) {
		_, err := parser.Parse(strings.NewReader("-- TIKZ: config, lonely\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "wrong TIKZ config string")
	})
}

func TestParseRowWidthMismatch(t *testing.T) {
	_, err := parser.Parse(strings.NewReader(`-- TIKZ: relation, r, ts, te, , desc
 a | ts | te
---+----+----
 x |  1
(1 row)
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns")
}

func TestParseUnresolvedColumns(t *testing.T) {
	t.Run("missing start column", func(t *testing.T) {
		_, err := parser.Parse(strings.NewReader(`-- TIKZ: relation, r, nope, , , desc
 a | ts
---+----
 x |  1
(1 row)
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"nope" not found`)
	})

	t.Run("missing position column falls back", func(t *testing.T) {
		doc := parse(t, `-- TIKZ: relation, r, ts, te, gone, desc
 a | ts | te
---+----+----
 x |  1 |  2
(1 row)
`)
		assert.False(t, doc.Relations[0].HasYPos())
	})
}

func TestIntervalResolution(t *testing.T) {
	doc := parse(t, `-- TIKZ: relation, r, period, , , desc
 a | period
---+--------
 x | [3,9)
 y | 5
(2 rows)
`)
	rel := doc.Relations[0]

	iv, err := rel.Interval(0, true)
	require.NoError(t, err)
	assert.Equal(t, parser.Interval{Start: 3, End: 9}, iv)

	iv, err = rel.Interval(1, true)
	require.NoError(t, err)
	assert.Equal(t, parser.Interval{Start: 5, End: 6, Point: true}, iv)

	// With range parsing disabled the literal no longer resolves.
	_, err = rel.Interval(0, false)
	require.Error(t, err)
}

func TestRangeLiteralsConfigSwitch(t *testing.T) {
	doc := parse(t, `-- TIKZ: config, range-literals, off
-- TIKZ: relation, r, ts, , , desc
 a | ts
---+----
 x |  7
(1 row)
`)
	assert.False(t, doc.RangeLiterals())

	iv, err := doc.Relations[0].Interval(0, doc.RangeLiterals())
	require.NoError(t, err)
	assert.Equal(t, parser.Interval{Start: 7, End: 8, Point: true}, iv)
}

func TestAttrsExcludeBoundColumns(t *testing.T) {
	doc := parse(t, `-- TIKZ: relation, r, ts, te, pos, desc
 name | dept | ts | te | pos
------+------+----+----+-----
 Ann  | HR   |  1 |  5 | 1.5
(1 row)
`)
	rel := doc.Relations[0]
	assert.Equal(t, []string{"Ann", "HR"}, rel.Attrs(0))
	assert.Equal(t, []string{"name", "dept", "ts", "te"}, rel.TableHeader())
	assert.Equal(t, []string{"Ann", "HR", "1", "5"}, rel.TableRow(0))

	y, err := rel.YPos(0)
	require.NoError(t, err)
	assert.Equal(t, 1.5, y)
}
