// Package parser reads a psql transcript (or tab-separated dump)
// interleaved with TIKZ directive comments and builds the document
// model consumed by layout and rendering: an ordered sequence of
// config, timeline and relation records.
package parser

import (
	"io"
)

// Document is the parsed input: directive records in source order plus
// convenience views of the config keys and the optional timeline. The
// record order is the rendering order.
type Document struct {
	Records []Record

	// Config holds the key/value directives, last occurrence wins.
	Config map[string]string

	// Timeline is non-nil when the document declares a time axis.
	Timeline *Timeline

	// Relations lists the parsed tables in slot order.
	Relations []*Relation
}

// ConfigOr returns the config value for key, or def when absent.
func (d *Document) ConfigOr(key, def string) string {
	if v, ok := d.Config[key]; ok {
		return v
	}
	return def
}

// RangeLiterals reports whether the range-literal fallback for single
// temporal columns is active. It is on unless the document opts out
// with "config, range-literals, off".
func (d *Document) RangeLiterals() bool {
	return d.ConfigOr("range-literals", "on") != "off"
}

// Parse tokenizes the input and builds the document model in one pass.
// Directives and table data may appear in either order: table slots form
// a positional arena, lazily created by whichever side arrives first.
// All structural errors are reported here, before any rendering starts.
func Parse(r io.Reader) (*Document, error) {
	doc := &Document{Config: map[string]string{}}

	var arena []*Relation
	relSeen := 0 // relation directives consumed
	hdrSeen := 0 // header blocks consumed

	slot := func(i int) *Relation {
		if i == len(arena) {
			arena = append(arena, NewRelation())
		}
		return arena[i]
	}

	lex := NewLexer(r)
	for {
		tok, ok := lex.Next()
		if !ok {
			break
		}
		switch tok.Kind {
		case TokenComment:
			dir, ok := matchDirective(tok.Text)
			if !ok {
				continue // plain SQL comment
			}
			if err := applyDirective(doc, dir, slot, &relSeen); err != nil {
				return nil, err
			}

		case TokenHeader:
			slot(hdrSeen).setSchema(tok.Cells)
			hdrSeen++

		case TokenTuple:
			if err := arena[hdrSeen-1].appendRow(tok.Cells); err != nil {
				return nil, err
			}

		case TokenTupleCount, TokenCommand:
			// Row counts and echoed SQL commands carry no model data.
		}
	}
	if err := lex.Err(); err != nil {
		return nil, err
	}

	if hdrSeen == 0 {
		return nil, errf(hintRelation, "no tables found, is this a valid input file?")
	}
	if relSeen < hdrSeen {
		return nil, errf(hintRelation,
			"not enough TIKZ relation config strings: %d directives for %d tables", relSeen, hdrSeen)
	}
	if relSeen > hdrSeen {
		return nil, errf(hintTableOutput,
			"not enough table outputs: %d TIKZ relation config strings for %d tables", relSeen, hdrSeen)
	}

	doc.Relations = arena
	for _, rel := range arena {
		if err := rel.resolve(); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// applyDirective folds one classified directive into the document.
// Unrecognized keywords are ignored.
func applyDirective(doc *Document, dir directive, slot func(int) *Relation, relSeen *int) error {
	switch dir.keyword {
	case "config":
		fields := splitFields(dir.body, 2)
		if len(fields) != 2 {
			return errf("Define a configuration string of type 'config'.\n"+
				"For example:\n-- TIKZ: config, key, value",
				"wrong TIKZ config string: %q", dir.raw)
		}
		doc.Records = append(doc.Records, ConfigRecord{Key: fields[0], Value: fields[1]})
		doc.Config[fields[0]] = fields[1]

	case "relation", "relation-table":
		fields := splitFields(dir.body, 5)
		if len(fields) != 5 {
			return errf(hintRelation,
				"not enough parameters for TIKZ %s: %q", dir.keyword, dir.raw)
		}
		rel := slot(*relSeen)
		*relSeen++
		rel.setMetaData(fields)
		doc.Records = append(doc.Records, RelationRecord{
			Relation:  rel,
			WithTable: dir.keyword == "relation-table",
		})

	case "timeline":
		if doc.Timeline != nil {
			return errf(hintTimeline, "more than one TIKZ timeline string found")
		}
		fields := splitFields(dir.body, 4)
		if len(fields) != 4 {
			return errf(hintTimeline, "wrong TIKZ timeline string: %q", dir.raw)
		}
		tl, err := parseTimeline(fields, dir.raw)
		if err != nil {
			return err
		}
		doc.Timeline = &tl
		doc.Records = append(doc.Records, TimelineRecord{Timeline: tl})
	}
	return nil
}
