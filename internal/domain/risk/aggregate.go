package risk

import "math"

// NoData is the aggregate reported when no sub-risk is available.
const NoData = 10.0

// Sub is one optional sub-risk.
type Sub struct {
	Value     float64 `json:"value"`
	Available bool    `json:"available"`
}

// Some wraps an available sub-risk.
func Some(v float64) Sub { return Sub{Value: v, Available: true} }

// None is an unavailable sub-risk.
var None = Sub{}

// Aggregate averages the available sub-risks; unavailable ones are excluded
// rather than counted as zero.
func Aggregate(subs ...Sub) float64 {
	var sum float64
	var n int
	for _, s := range subs {
		if !s.Available {
			continue
		}
		sum += s.Value
		n++
	}
	if n == 0 {
		return NoData
	}
	return sum / float64(n)
}

// Grade-cut risk bounds.
const (
	gradeCutFactor = 5
	gradeCutMin    = -15
	gradeCutMax    = 10
)

// GradeCutRisk compares an average grade with the 50% cut, falling back to the
// 70% cut. A zero cut counts as unknown. Each grade above the cut costs five
// points; halves round toward the safer code. ok is false when neither cut is known.
func GradeCutRisk(average float64, cut50, cut70 *float64) (risk int, ok bool) {
	var cut float64
	switch {
	case known(cut50):
		cut = *cut50
	case known(cut70):
		cut = *cut70
	default:
		return 0, false
	}
	r := int(math.Floor(-(average-cut)*gradeCutFactor + 0.5))
	return min(max(r, gradeCutMin), gradeCutMax), true
}

func known(cut *float64) bool { return cut != nil && *cut != 0 }
