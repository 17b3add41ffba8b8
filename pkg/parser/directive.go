package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// DirectivePrefix marks a SQL comment that carries layout instructions.
const DirectivePrefix = "TIKZ:"

// directiveRe captures the directive keyword and its comma-separated body.
var directiveRe = regexp.MustCompile(`TIKZ:\s*([a-z\-]+)\s*,\s*(.*)`)

// Timeline describes the shared time axis. At most one per document.
type Timeline struct {
	From        int
	To          int
	Step        int // tick label interval; 0 means label every step
	Description string
}

// Record is one entry of the document model, in source order. The three
// implementations form a closed set: ConfigRecord, TimelineRecord and
// RelationRecord.
type Record interface {
	record()
}

// ConfigRecord is a free-form key/value used for output tuning.
// Unknown keys are retained but unused.
type ConfigRecord struct {
	Key   string
	Value string
}

// TimelineRecord holds the single time axis declaration.
type TimelineRecord struct {
	Timeline Timeline
}

// RelationRecord binds a parsed table to its directive. WithTable marks
// relations declared as "relation-table", which additionally appear in
// the table projection.
type RelationRecord struct {
	Relation  *Relation
	WithTable bool
}

func (ConfigRecord) record()   {}
func (TimelineRecord) record() {}
func (RelationRecord) record() {}

// directive is the classified form of one matching comment before it is
// folded into the document.
type directive struct {
	keyword string
	body    string // everything after the keyword's comma
	raw     string // original comment text, for error reporting
}

// matchDirective classifies a comment. Comments without the directive
// prefix return ok=false and are silently dropped (plain SQL comments).
func matchDirective(comment string) (directive, bool) {
	m := directiveRe.FindStringSubmatch(comment)
	if m == nil {
		return directive{}, false
	}
	return directive{keyword: m[1], body: m[2], raw: comment}, true
}

// splitFields splits the directive body into exactly n fields. The final
// field keeps any embedded commas (descriptions and captions may contain
// them). Fewer fields than n is an error signalled by a short result.
func splitFields(body string, n int) []string {
	parts := strings.SplitN(body, ",", n)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parseTimeline builds a Timeline from the 4 directive fields
// (from, to, step, description). Step may be empty.
func parseTimeline(fields []string, raw string) (Timeline, error) {
	from, err := strconv.Atoi(fields[0])
	if err != nil {
		return Timeline{}, errf(hintTimeline, "timeline start %q is not an integer in %q", fields[0], raw)
	}
	to, err := strconv.Atoi(fields[1])
	if err != nil {
		return Timeline{}, errf(hintTimeline, "timeline end %q is not an integer in %q", fields[1], raw)
	}
	tl := Timeline{From: from, To: to, Description: fields[3]}
	if fields[2] != "" {
		step, err := strconv.Atoi(fields[2])
		if err != nil {
			return Timeline{}, errf(hintTimeline, "timeline step %q is not an integer in %q", fields[2], raw)
		}
		tl.Step = step
	}
	return tl, nil
}
