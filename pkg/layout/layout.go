// Package layout positions the parsed document on a shared vertical
// axis. It assigns every tuple a y coordinate and a temporal extent in
// two passes: the first computes the stacking offset above the
// timeline, the second assigns final coordinates in document order.
// A computed Layout is immutable; both render projections read it
// without coordination.
package layout

import (
	"github.com/Piiit/pwScripts/pkg/parser"
)

// Tuple is one positioned visual element: an interval bar or a point
// marker at Y, labelled with the tuple's non-temporal attributes.
type Tuple struct {
	Ordinal  int // 1-based index within the relation
	Y        float64
	Interval parser.Interval
	Attrs    []string // empty suppresses the label
}

// Block is one renderable unit in document order: either the time axis
// (Timeline non-nil) or a relation with its positioned tuples.
type Block struct {
	Timeline *parser.Timeline

	Relation  *parser.Relation
	WithTable bool
	DescY     float64 // anchor for the left-hand description
	Tuples    []Tuple
}

// Layout is the finished model consumed by the renderers.
type Layout struct {
	Blocks []Block
}

// yBelowTimeline is where stacking continues under the axis, keeping one
// row of clearance.
const yBelowTimeline = -2

// Compute resolves extents and vertical positions for the whole
// document. Relations listed before the timeline stack downwards from
// the precomputed offset; relations after it continue below the axis.
// Relations with a position column take their y values verbatim and do
// not consume the stacking counter.
func Compute(doc *parser.Document) (*Layout, error) {
	offset, err := offsetAbove(doc)
	if err != nil {
		return nil, err
	}

	ranges := doc.RangeLiterals()
	l := &Layout{}
	y := offset

	for _, rec := range doc.Records {
		switch rec := rec.(type) {
		case parser.TimelineRecord:
			tl := rec.Timeline
			l.Blocks = append(l.Blocks, Block{Timeline: &tl})
			y = yBelowTimeline

		case parser.RelationRecord:
			block, next, err := layoutRelation(rec, y, ranges)
			if err != nil {
				return nil, err
			}
			l.Blocks = append(l.Blocks, block)
			y = next
		}
	}
	return l, nil
}

// layoutRelation positions one relation starting at y and returns the
// block plus the y where the next relation continues.
func layoutRelation(rec parser.RelationRecord, y float64, ranges bool) (Block, float64, error) {
	rel := rec.Relation
	block := Block{Relation: rel, WithTable: rec.WithTable}

	for i := 0; i < rel.Len(); i++ {
		iv, err := rel.Interval(i, ranges)
		if err != nil {
			return Block{}, 0, err
		}
		tup := Tuple{Ordinal: i + 1, Interval: iv, Attrs: rel.Attrs(i)}
		if rel.HasYPos() {
			tup.Y, err = rel.YPos(i)
			if err != nil {
				return Block{}, 0, err
			}
		} else {
			tup.Y = y - float64(i)
		}
		block.Tuples = append(block.Tuples, tup)
	}

	if rel.HasYPos() {
		block.DescY = yposMidpoint(block.Tuples)
		return block, y - yposHeight(block.Tuples), nil
	}

	n := float64(rel.Len())
	if rel.Len() > 0 {
		// Midpoint of the first and last stacked rows.
		block.DescY = y - (n-1)/2
	} else {
		block.DescY = y
	}
	return block, y - n, nil
}

// offsetAbove computes the initial stacking offset: the summed height of
// every relation that precedes the timeline. Position-column relations
// contribute one plus their maximum declared y value, so later relations
// do not overlap them.
func offsetAbove(doc *parser.Document) (float64, error) {
	var offset float64
	for _, rec := range doc.Records {
		switch rec := rec.(type) {
		case parser.TimelineRecord:
			return offset, nil
		case parser.RelationRecord:
			rel := rec.Relation
			if !rel.HasYPos() {
				offset += float64(rel.Len())
				continue
			}
			max := 1.0
			for i := 0; i < rel.Len(); i++ {
				v, err := rel.YPos(i)
				if err != nil {
					return 0, err
				}
				if v > max {
					max = v
				}
			}
			offset += max + 1
		}
	}
	return offset, nil
}

// yposHeight is the vertical span reserved by a position-column
// relation: one plus its maximum y value, at least 2.
func yposHeight(tuples []Tuple) float64 {
	max := 1.0
	for _, t := range tuples {
		if t.Y > max {
			max = t.Y
		}
	}
	return max + 1
}

// yposMidpoint anchors the description between the lowest and highest
// placed tuples.
func yposMidpoint(tuples []Tuple) float64 {
	if len(tuples) == 0 {
		return 0
	}
	min, max := tuples[0].Y, tuples[0].Y
	for _, t := range tuples[1:] {
		if t.Y < min {
			min = t.Y
		}
		if t.Y > max {
			max = t.Y
		}
	}
	return (min + max) / 2
}
