package model

// Category is one slot of a weight pattern.
type Category string

// Pattern categories, in canonical order.
const (
	CategoryKorean  Category = "korean"
	CategoryMath    Category = "math"
	CategoryEnglish Category = "english"
	CategoryInquiry Category = "inquiry"
	CategoryHistory Category = "history"
	CategoryForeign Category = "foreign"
)

// Categories lists pattern slots in canonical order.
var Categories = []Category{
	CategoryKorean, CategoryMath, CategoryEnglish, CategoryInquiry, CategoryHistory, CategoryForeign,
}

// Tier assigns a category to a scoring pool.
//   - 0: unused
//   - 1: always summed
//   - 2: best-N of pool 2
//   - 3: best-N of pool 3
type Tier int

// Tier values.
const (
	TierUnused Tier = iota
	TierMandatory
	TierPoolA
	TierPoolB
)

// MathRequirement restricts the math elective.
type MathRequirement string

// Math requirements.
const (
	MathAny                MathRequirement = ""
	MathCalculusOrGeometry MathRequirement = "calculus-or-geometry"
	MathStatistics         MathRequirement = "statistics"
)

// InquiryRequirement demands a minimum number of inquiry subjects from one category.
// A zero MinCount means no requirement.
type InquiryRequirement struct {
	Kind     SubjectKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	MinCount int         `json:"min_count,omitempty" yaml:"min_count,omitempty"`
}

// CalculatorKind selects the composite strategy of a university.
type CalculatorKind string

// Calculator kinds.
const (
	CalcGeneric        CalculatorKind = ""
	CalcRatio          CalculatorKind = "ratio"
	CalcBestPercentile CalculatorKind = "best-percentile"
	CalcBestStandard   CalculatorKind = "best-standard"
)

// RatioSet is one weighting variant used by the non-generic calculators.
// RequiresScience marks a variant unavailable for candidates without science inquiry.
type RatioSet struct {
	Korean          float64 `json:"korean" yaml:"korean"`
	Math            float64 `json:"math" yaml:"math"`
	English         float64 `json:"english" yaml:"english"`
	Inquiry         float64 `json:"inquiry" yaml:"inquiry"`
	ScienceBoost    float64 `json:"science_boost,omitempty" yaml:"science_boost,omitempty"`
	RequiresScience bool    `json:"requires_science,omitempty" yaml:"requires_science,omitempty"`
	HistoryCurve    string  `json:"history_curve,omitempty" yaml:"history_curve,omitempty"`
}

// UniversityCondition holds the scoring rules of one university/track.
type UniversityCondition struct {
	ID         string            `json:"id" yaml:"id"`
	University string            `json:"university,omitempty" yaml:"university,omitempty"`
	Year       int               `json:"year,omitempty" yaml:"year,omitempty"`
	Pattern    map[Category]Tier `json:"pattern" yaml:"pattern"`

	// PoolAPick and PoolBPick bound the best-N selection; 0 selects all.
	PoolAPick    int     `json:"pool_a_pick,omitempty" yaml:"pool_a_pick,omitempty"`
	PoolBPick    int     `json:"pool_b_pick,omitempty" yaml:"pool_b_pick,omitempty"`
	InquiryCount int     `json:"inquiry_count" yaml:"inquiry_count"`
	BaseScore    float64 `json:"base_score,omitempty" yaml:"base_score,omitempty"`
	// MaxScore is the highest attainable composite; 0 leaves it unchecked.
	MaxScore float64 `json:"max_score,omitempty" yaml:"max_score,omitempty"`

	Math    MathRequirement    `json:"math,omitempty" yaml:"math,omitempty"`
	Inquiry InquiryRequirement `json:"inquiry,omitempty" yaml:"inquiry,omitempty"`

	Calculator CalculatorKind `json:"calculator,omitempty" yaml:"calculator,omitempty"`
	Ratios     []RatioSet     `json:"ratios,omitempty" yaml:"ratios,omitempty"`
	// Scale multiplies the normalized composite of ratio-based calculators.
	Scale float64 `json:"scale,omitempty" yaml:"scale,omitempty"`
	// Curves names the transform curves used by non-generic calculators.
	Curves CurveNames `json:"curves,omitempty" yaml:"curves,omitempty"`
	// MaxStandardScore is the highest attainable korean/math standard score.
	MaxStandardScore float64 `json:"max_standard_score,omitempty" yaml:"max_standard_score,omitempty"`
}

// CurveNames references fixed transform curves in the lookup store.
type CurveNames struct {
	English string `json:"english,omitempty" yaml:"english,omitempty"`
	History string `json:"history,omitempty" yaml:"history,omitempty"`
	Society string `json:"society,omitempty" yaml:"society,omitempty"`
	Science string `json:"science,omitempty" yaml:"science,omitempty"`
}

// TierOf returns the tier of a category; absent categories are unused.
func (u UniversityCondition) TierOf(c Category) Tier {
	if u.Pattern == nil {
		return TierUnused
	}
	return u.Pattern[c]
}
