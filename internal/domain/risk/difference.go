package risk

import (
	"fmt"
	"math"
)

// Band pairs the minimum grade difference with its risk score.
type Band struct {
	MinDifference float64
	Risk          int
}

// TierTable is the ordered band list of one university tier, most favorable
// first, plus the fixed penalty for a subject the student never took.
type TierTable struct {
	Bands    []Band
	NotTaken int
}

var floor = math.Inf(-1)

// Tiers 1..5, 1 being the most selective. A zero difference always lands in
// a positive band.
var tierTables = map[int]TierTable{
	1: {NotTaken: -10, Bands: []Band{
		{0.5, 5}, {0.3, 4}, {0.1, 3}, {0, 2}, {-0.2, 1},
		{-0.4, -1}, {-0.7, -2}, {-1.0, -3}, {-1.5, -4}, {floor, -5},
	}},
	2: {NotTaken: -9, Bands: []Band{
		{0.4, 5}, {0.2, 4}, {0, 3}, {-0.2, 2}, {-0.4, 1},
		{-0.7, -1}, {-1.0, -2}, {-1.4, -3}, {-2.0, -4}, {floor, -5},
	}},
	3: {NotTaken: -8, Bands: []Band{
		{0.3, 5}, {0, 4}, {-0.2, 3}, {-0.4, 2}, {-0.7, 1},
		{-1.0, -1}, {-1.4, -2}, {-1.8, -3}, {-2.5, -4}, {floor, -5},
	}},
	4: {NotTaken: -7, Bands: []Band{
		{0, 5}, {-0.3, 4}, {-0.6, 3}, {-0.9, 2}, {-1.2, 1},
		{-1.6, -1}, {-2.0, -2}, {-2.5, -3}, {-3.0, -4}, {floor, -5},
	}},
	5: {NotTaken: -6, Bands: []Band{
		{-0.3, 5}, {-0.6, 4}, {-1.0, 3}, {-1.4, 2}, {-1.8, 1},
		{-2.2, -1}, {-2.7, -2}, {-3.2, -3}, {-3.8, -4}, {floor, -5},
	}},
}

// Tier returns the band table of a tier.
func Tier(tier int) (TierTable, error) {
	t, ok := tierTables[tier]
	if !ok {
		return TierTable{}, fmt.Errorf("%w: %d", ErrUnknownTier, tier)
	}
	return t, nil
}

// GradeDifference bands recommended minus student grade. A nil student grade
// is a subject not taken.
func GradeDifference(tier int, recommended float64, student *float64) (int, error) {
	t, err := Tier(tier)
	if err != nil {
		return 0, err
	}
	if student == nil {
		return t.NotTaken, nil
	}
	diff := recommended - *student
	for _, b := range t.Bands {
		if diff >= b.MinDifference {
			return b.Risk, nil
		}
	}
	return t.Bands[len(t.Bands)-1].Risk, nil
}
