package hist_test

import (
	"strings"
	"testing"

	"github.com/Piiit/pwScripts/pkg/hist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	s, err := hist.Read(strings.NewReader("1\t5\textra\n\n3\t9\n"))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, s.Starts)
	assert.Equal(t, []int{5, 9}, s.Ends)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []int{4, 6}, s.Durations())
	assert.Equal(t, 1, s.DomainStart())
	assert.Equal(t, 9, s.DomainEnd())
}

func TestReadErrors(t *testing.T) {
	_, err := hist.Read(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no intervals")

	_, err = hist.Read(strings.NewReader("1\n"))
	require.Error(t, err)

	_, err = hist.Read(strings.NewReader("a\t5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an integer")
}

func TestOverlap(t *testing.T) {
	// [0,2) and [1,3) overlap during [1,2); only the latter is still
	// open in the second half of the domain.
	s := &hist.Series{
		Starts: []int{0, 1},
		Ends:   []int{2, 3},
	}
	h := s.Overlap(2)
	require.Len(t, h.Y, 2)
	assert.Equal(t, 2.0, h.Y[0])
	assert.Equal(t, 1.0, h.Y[1])
	assert.Equal(t, []float64{1, 2}, h.X)
}

func TestStartPoints(t *testing.T) {
	s := &hist.Series{
		Starts: []int{0, 0, 49, 100},
		Ends:   []int{100, 100, 100, 100},
	}
	h := s.StartPoints(2)
	require.Len(t, h.Y, 2)
	// Starts scale to percent of the domain end. Three of four fall
	// into the first half.
	assert.Equal(t, 0.75, h.Y[0])
	assert.Equal(t, 0.25, h.Y[1])
}

func TestDurationDist(t *testing.T) {
	s := &hist.Series{
		Starts: []int{0, 0, 0, 0},
		Ends:   []int{1, 1, 1, 10},
	}
	h := s.DurationDist(2)
	require.Len(t, h.Y, 2)
	assert.Equal(t, 0.75, h.Y[0])
	assert.Equal(t, 0.25, h.Y[1])
}

func TestHistogramWriteTSV(t *testing.T) {
	h := hist.Histogram{X: []float64{1, 2}, Y: []float64{0.5, 1}}
	var b strings.Builder
	require.NoError(t, h.WriteTSV(&b))
	assert.Equal(t, "x\ty\n1.000\t0.500\n2.000\t1.000\n", b.String())
}

func TestSummarize(t *testing.T) {
	s := hist.Summarize([]int{4, 1, 7, 4})
	assert.Equal(t, 1, s.Min)
	assert.Equal(t, 7, s.Max)
	assert.Equal(t, 4, s.Len)
	assert.Equal(t, "MIN=1, MAX=7, AVG=4.000, LEN=4", s.String())
}
