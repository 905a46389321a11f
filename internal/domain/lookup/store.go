// Package lookup holds the immutable score tables and transform curves that
// convert raw exam scores into university-specific values.
package lookup

import (
	"fmt"
	"math"
	"sort"
)

// Cell is one score table entry. Placeholder carries non-numeric markers
// found in source tables; such cells have no Value.
type Cell struct {
	Value       float64
	Placeholder string
}

// Numeric reports whether the cell holds a number.
func (c Cell) Numeric() bool { return c.Placeholder == "" }

// Table maps raw score key -> university id -> cell.
type Table map[string]map[string]Cell

// Curve is a fixed transform from an integer key (grade, percentile or
// standard score) to a value.
type Curve map[int]float64

// At returns the curve value for key, or NaN when the key is absent.
func (c Curve) At(key int) float64 {
	v, ok := c[key]
	if !ok {
		return math.NaN()
	}
	return v
}

// Max returns the largest value of the curve, or NaN for an empty curve.
func (c Curve) Max() float64 {
	if len(c) == 0 {
		return math.NaN()
	}
	best := math.Inf(-1)
	for _, v := range c {
		if v > best {
			best = v
		}
	}
	return best
}

// AdvantageRow holds the average composite per university for peers sharing
// one standard score sum.
type AdvantageRow struct {
	StandardScoreSum float64            `json:"standard_score_sum" yaml:"standard_score_sum"`
	Averages         map[string]float64 `json:"averages" yaml:"averages"`
}

// PercentilePoint maps a standard score sum to a top cumulative percentile.
type PercentilePoint struct {
	StandardScoreSum float64 `json:"standard_score_sum" yaml:"standard_score_sum"`
	Percentile       float64 `json:"percentile" yaml:"percentile"`
}

// Store is the read-only lookup table set shared by one scoring session.
type Store struct {
	tables     map[string]Table
	curves     map[string]Curve
	advantage  []AdvantageRow
	percentile []PercentilePoint // sorted by StandardScoreSum descending
}

// NewStore builds a Store from options. Inputs are copied.
func NewStore(opts ...Option) *Store {
	s := &Store{
		tables: make(map[string]Table),
		curves: make(map[string]Curve),
	}
	for _, opt := range opts {
		opt(s)
	}
	sort.Slice(s.percentile, func(i, j int) bool {
		return s.percentile[i].StandardScoreSum > s.percentile[j].StandardScoreSum
	})
	return s
}

// Lookup returns the cell for subject, raw key and university id.
func (s *Store) Lookup(subject, key, universityID string) (Cell, error) {
	t, ok := s.tables[subject]
	if !ok {
		return Cell{}, fmt.Errorf("%w: %s", ErrSubjectNotFound, subject)
	}
	row, ok := t[key]
	if !ok {
		return Cell{}, fmt.Errorf("%w: %s/%s", ErrKeyNotFound, subject, key)
	}
	cell, ok := row[universityID]
	if !ok {
		return Cell{}, fmt.Errorf("%w: %s", ErrUniversityNotFound, universityID)
	}
	return cell, nil
}

// Curve returns a named transform curve.
func (s *Store) Curve(name string) (Curve, bool) {
	c, ok := s.curves[name]
	return c, ok
}

// Subjects returns the subject names that have tables.
func (s *Store) Subjects() []string {
	out := make([]string, 0, len(s.tables))
	for k := range s.tables {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Advantage returns the peer average for the row nearest to sum.
// ok is false when no row exists or the university has no column.
func (s *Store) Advantage(sum float64, universityID string) (float64, bool) {
	var nearest *AdvantageRow
	best := math.Inf(1)
	for i := range s.advantage {
		d := math.Abs(s.advantage[i].StandardScoreSum - sum)
		if d < best {
			best = d
			nearest = &s.advantage[i]
		}
	}
	if nearest == nil {
		return 0, false
	}
	v, ok := nearest.Averages[universityID]
	return v, ok
}

const (
	extrapolationFloor = 200.0
	percentileCeiling  = 99.0
)

// CumulativePercentile returns the top percentile for a standard score sum.
// Sums below the table are extrapolated linearly towards 99% at 200 points.
func (s *Store) CumulativePercentile(sum float64) (float64, error) {
	if len(s.percentile) == 0 {
		return 0, ErrEmptyTable
	}
	rounded := math.Round(sum*100) / 100
	for _, p := range s.percentile {
		if rounded >= p.StandardScoreSum {
			return p.Percentile, nil
		}
	}
	low := s.percentile[len(s.percentile)-1]
	if low.StandardScoreSum <= extrapolationFloor {
		return math.Min(percentileCeiling, low.Percentile), nil
	}
	ext := low.Percentile + (low.StandardScoreSum-rounded)/(low.StandardScoreSum-extrapolationFloor)*(percentileCeiling-low.Percentile)
	return math.Min(percentileCeiling, math.Max(low.Percentile, ext)), nil
}
