// internal/sim/stats.go
package sim

import (
	"maps"
	"slices"
	"sync"
)

// Stats aggregates outcomes. It is safe for concurrent use.
type Stats struct {
	mu       sync.Mutex
	maxScore int
	points   []int
	reasons  map[string]int
	errored  int
}

// NewStats returns empty stats for games scored out of maxScore.
func NewStats(maxScore int) *Stats {
	return &Stats{maxScore: maxScore, reasons: make(map[string]int)}
}

// Add records one outcome. Errored games count toward Errored and their end
// reason, but not toward the score figures.
func (s *Stats) Add(o Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reasons[o.Reason]++
	if o.Errored() {
		s.errored++
		return
	}
	s.points = append(s.points, o.Points)
}

// Summary is a point-in-time copy of the aggregates.
type Summary struct {
	Games    int
	Errored  int
	MaxScore int
	Mean     float64
	Median   float64
	Min      int
	Max      int
	// Histogram[p] is the number of finished games that scored p points.
	Histogram []int
	Reasons   map[string]int
}

// ReasonNames returns the recorded end reasons in a stable order.
func (s Summary) ReasonNames() []string {
	return slices.Sorted(maps.Keys(s.Reasons))
}

// Summary computes the current aggregates.
func (s *Stats) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{
		Games:     len(s.points) + s.errored,
		Errored:   s.errored,
		MaxScore:  s.maxScore,
		Histogram: make([]int, s.maxScore+1),
		Reasons:   maps.Clone(s.reasons),
	}
	if len(s.points) == 0 {
		return sum
	}

	sorted := slices.Clone(s.points)
	slices.Sort(sorted)
	total := 0
	for _, p := range sorted {
		total += p
		if p >= 0 && p < len(sum.Histogram) {
			sum.Histogram[p]++
		}
	}
	n := len(sorted)
	sum.Mean = float64(total) / float64(n)
	if n%2 == 1 {
		sum.Median = float64(sorted[n/2])
	} else {
		sum.Median = float64(sorted[n/2-1]+sorted[n/2]) / 2
	}
	sum.Min = sorted[0]
	sum.Max = sorted[n-1]
	return sum
}
