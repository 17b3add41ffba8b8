// Package hist computes bucketed frequency statistics over temporal
// interval data: start-point and duration distributions, and the
// maximum number of concurrently open intervals per bucket (a single
// sweep over the sorted interval endpoints).
package hist

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// DefaultBuckets is the bucket count used when none is configured.
const DefaultBuckets = 100

// Series holds the interval endpoints read from a temporal data file.
type Series struct {
	Starts []int
	Ends   []int
}

// Read parses tab-separated interval rows (start, end, further columns
// ignored). Blank lines are skipped.
func Read(r io.Reader) (*Series, error) {
	s := &Series{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		cells := strings.Split(text, "\t")
		if len(cells) < 2 {
			return nil, fmt.Errorf("line %d: need at least start and end, got %q", line, text)
		}
		start, err := strconv.Atoi(strings.TrimSpace(cells[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: start %q is not an integer", line, cells[0])
		}
		end, err := strconv.Atoi(strings.TrimSpace(cells[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: end %q is not an integer", line, cells[1])
		}
		s.Starts = append(s.Starts, start)
		s.Ends = append(s.Ends, end)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(s.Starts) == 0 {
		return nil, fmt.Errorf("no intervals found")
	}
	return s, nil
}

// Len returns the number of intervals.
func (s *Series) Len() int {
	return len(s.Starts)
}

// Durations returns end-start per interval.
func (s *Series) Durations() []int {
	out := make([]int, len(s.Starts))
	for i := range s.Starts {
		out[i] = s.Ends[i] - s.Starts[i]
	}
	return out
}

// DomainStart returns the smallest start point.
func (s *Series) DomainStart() int {
	min := s.Starts[0]
	for _, v := range s.Starts[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// DomainEnd returns the largest end point.
func (s *Series) DomainEnd() int {
	max := s.Ends[0]
	for _, v := range s.Ends[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Histogram is a serialized distribution: per bucket one x (left edge)
// and one y value.
type Histogram struct {
	X []float64
	Y []float64
}

// WriteTSV serializes the histogram as two-column TSV with a header row.
func (h Histogram) WriteTSV(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "x\ty"); err != nil {
		return err
	}
	for i := range h.X {
		if _, err := fmt.Fprintf(w, "%.3f\t%.3f\n", h.X[i], h.Y[i]); err != nil {
			return err
		}
	}
	return nil
}

// endpoint kinds, ordered so that at equal times a start is processed
// before an end (touching intervals count as overlapping).
const (
	epStart = 0
	epEnd   = 1
)

type endpoint struct {
	time int
	kind int
}

// Overlap computes, per bucket over the series domain, the maximum
// number of concurrently open intervals. One sweep over the endpoints
// sorted by (time, kind).
func (s *Series) Overlap(buckets int) Histogram {
	domainStart := s.DomainStart()
	domainLength := s.DomainEnd() - domainStart
	bucketLength := int(math.Ceil(float64(domainLength) / float64(buckets)))
	if bucketLength < 1 {
		bucketLength = 1
	}

	eps := make([]endpoint, 0, 2*len(s.Starts))
	for i := range s.Starts {
		eps = append(eps, endpoint{s.Starts[i], epStart}, endpoint{s.Ends[i], epEnd})
	}
	sort.Slice(eps, func(i, j int) bool {
		if eps[i].time != eps[j].time {
			return eps[i].time < eps[j].time
		}
		return eps[i].kind < eps[j].kind
	})

	open := make([]float64, buckets)
	bucket := 1
	overlaps := 0
	maxOverlaps := 0
	for _, ep := range eps {
		for ep.time > domainStart+bucket*bucketLength && bucket < buckets {
			open[bucket-1] = float64(maxOverlaps)
			maxOverlaps = overlaps
			bucket++
		}
		if ep.kind == epStart {
			overlaps++
			if overlaps > maxOverlaps {
				maxOverlaps = overlaps
			}
		} else {
			overlaps--
		}
	}
	open[buckets-1] = float64(maxOverlaps)

	x := make([]float64, buckets)
	for i := range x {
		x[i] = float64(i + 1)
	}
	return Histogram{X: x, Y: open}
}

// StartPoints returns the distribution of start points, scaled to
// percent of the domain end, as relative frequencies.
func (s *Series) StartPoints(buckets int) Histogram {
	scale := float64(s.DomainEnd()) / 100
	values := make([]float64, len(s.Starts))
	for i, v := range s.Starts {
		values[i] = float64(v) / scale
	}
	return bucketize(values, buckets)
}

// DurationDist returns the distribution of interval durations as a
// fraction of the domain length, as relative frequencies.
func (s *Series) DurationDist(buckets int) Histogram {
	length := float64(s.DomainEnd() - s.DomainStart())
	durations := s.Durations()
	values := make([]float64, len(durations))
	for i, v := range durations {
		values[i] = float64(v) / length
	}
	return bucketize(values, buckets)
}

// bucketize counts values into equal-width buckets over [min, max] and
// normalizes counts to relative frequencies.
func bucketize(values []float64, buckets int) Histogram {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	width := (max - min) / float64(buckets)

	counts := make([]float64, buckets)
	for _, v := range values {
		i := buckets - 1
		if width > 0 {
			i = int((v - min) / width)
			if i >= buckets {
				i = buckets - 1
			}
		}
		counts[i]++
	}

	total := float64(len(values))
	x := make([]float64, buckets)
	y := make([]float64, buckets)
	for i := range counts {
		x[i] = min + float64(i)*width
		y[i] = counts[i] / total
	}
	return Histogram{X: x, Y: y}
}

// Summary are the descriptive statistics printed alongside a histogram.
type Summary struct {
	Min int
	Max int
	Avg float64
	Len int
}

// Summarize computes min/max/mean over the values.
func Summarize(values []int) Summary {
	s := Summary{Min: values[0], Max: values[0], Len: len(values)}
	sum := 0
	for _, v := range values {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		sum += v
	}
	s.Avg = float64(sum) / float64(len(values))
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("MIN=%d, MAX=%d, AVG=%.3f, LEN=%d", s.Min, s.Max, s.Avg, s.Len)
}
