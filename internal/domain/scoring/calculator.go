package scoring

import (
	"fmt"
	"math"

	"github.com/okian/admitscore/internal/domain/lookup"
	"github.com/okian/admitscore/internal/domain/model"
)

// Calculator computes a composite from a converted sheet.
type Calculator interface {
	Compute(sh Sheet, cond model.UniversityCondition) (float64, error)
}

// CalculatorFunc adapts a function to Calculator.
type CalculatorFunc func(sh Sheet, cond model.UniversityCondition) (float64, error)

// Compute calls f.
func (f CalculatorFunc) Compute(sh Sheet, cond model.UniversityCondition) (float64, error) {
	return f(sh, cond)
}

// Pattern is the generic tiered evaluator used by most universities.
type Pattern struct{}

// Compute sums tier 1, the best of each pool, and the base score.
func (Pattern) Compute(sh Sheet, cond model.UniversityCondition) (float64, error) {
	values := map[model.Category]float64{
		model.CategoryKorean:  sh.Korean.Converted,
		model.CategoryMath:    sh.Math.Converted,
		model.CategoryEnglish: sh.English.Converted,
		model.CategoryHistory: sh.History.Converted,
		model.CategoryInquiry: inquiryValue(sh, cond.InquiryCount),
	}
	if sh.Foreign != nil {
		values[model.CategoryForeign] = sh.Foreign.Converted
	}

	var mandatory float64
	var poolA, poolB []float64
	for _, cat := range model.Categories {
		v, ok := values[cat]
		if !ok {
			continue
		}
		switch cond.TierOf(cat) {
		case model.TierMandatory:
			mandatory += v
		case model.TierPoolA:
			poolA = append(poolA, v)
		case model.TierPoolB:
			poolB = append(poolB, v)
		}
	}
	return mandatory + topSum(poolA, cond.PoolAPick) + topSum(poolB, cond.PoolBPick) + cond.BaseScore, nil
}

// inquiryValue reduces the inquiry subjects to their best-k sum. A zero k
// contributes nothing.
func inquiryValue(sh Sheet, k int) float64 {
	if k <= 0 {
		return 0
	}
	inq := sh.Inquiry()
	values := make([]float64, len(inq))
	for i, s := range inq {
		values[i] = s.Converted
	}
	return topSum(values, k)
}

// variant computes one weighting; ok is false when the candidate cannot be
// scored under it.
type variant func(r model.RatioSet) (score float64, ok bool)

// bestOf returns the largest available variant score.
func bestOf(ratios []model.RatioSet, sh Sheet, v variant) (float64, error) {
	if len(ratios) == 0 {
		return 0, computationFailure("no ratio sets configured")
	}
	best := math.Inf(-1)
	for _, r := range ratios {
		if r.RequiresScience && len(sh.Science) == 0 {
			continue
		}
		s, ok := v(r)
		if !ok || math.IsNaN(s) || math.IsInf(s, 0) {
			continue
		}
		best = math.Max(best, s)
	}
	if math.IsInf(best, -1) {
		return 0, computationFailure("no computable variant")
	}
	return best, nil
}

const (
	defaultMaxStandard = 139.0
	defaultScale       = 1000.0
)

func maxStandard(cond model.UniversityCondition) float64 {
	if cond.MaxStandardScore > 0 {
		return cond.MaxStandardScore
	}
	return defaultMaxStandard
}

func scale(cond model.UniversityCondition, def float64) float64 {
	if cond.Scale > 0 {
		return cond.Scale
	}
	return def
}

// curves resolves the named curves of a condition; absent names resolve to an
// empty curve whose lookups yield NaN.
type curves struct {
	english, history, society, science lookup.Curve
	store                              *lookup.Store
}

func resolveCurves(store *lookup.Store, names model.CurveNames) curves {
	get := func(name string) lookup.Curve {
		if store == nil || name == "" {
			return lookup.Curve{}
		}
		c, _ := store.Curve(name)
		return c
	}
	return curves{
		english: get(names.English),
		history: get(names.History),
		society: get(names.Society),
		science: get(names.Science),
		store:   store,
	}
}

func (c curves) historyFor(r model.RatioSet) lookup.Curve {
	if r.HistoryCurve == "" || c.store == nil {
		return c.history
	}
	h, _ := c.store.Curve(r.HistoryCurve)
	return h
}

func (c curves) inquiry(kind model.SubjectKind) lookup.Curve {
	if kind == model.KindScience {
		return c.science
	}
	return c.society
}

func inquiryCount(cond model.UniversityCondition, fallback int) int {
	if cond.InquiryCount > 0 {
		return cond.InquiryCount
	}
	return fallback
}

// Ratio normalizes a weighted standard-score numerator against the maximum
// attainable under the same weights. Inquiry is read through percentile curves.
type Ratio struct {
	store *lookup.Store
}

// Compute returns the best ratio set's normalized score times the scale.
func (c Ratio) Compute(sh Sheet, cond model.UniversityCondition) (float64, error) {
	cv := resolveCurves(c.store, cond.Curves)
	k := inquiryCount(cond, 2)
	inq := make([]float64, 0, len(sh.Inquiry()))
	for _, s := range sh.Inquiry() {
		inq = append(inq, cv.inquiry(s.Raw.Kind).At(s.Raw.Percentile))
	}
	inqSum := topSum(inq, k)
	eng := cv.english.At(sh.English.Raw.Grade)
	maxStd := maxStandard(cond)
	maxInq := math.Max(cv.society.Max(), cv.science.Max())

	return bestOf(cond.Ratios, sh, func(r model.RatioSet) (float64, bool) {
		top := float64(sh.Korean.Raw.StandardScore)*r.Korean +
			float64(sh.Math.Raw.StandardScore)*r.Math +
			eng*r.English + inqSum*r.Inquiry
		bottom := maxStd*r.Korean + maxStd*r.Math + cv.english.Max()*r.English + maxInq*r.Inquiry*float64(k)
		if bottom == 0 {
			return 0, false
		}
		return top / bottom * scale(cond, defaultScale), true
	})
}

// BestPercentile weights raw percentiles and the best inquiry percentile,
// then subtracts a history penalty read by grade.
type BestPercentile struct {
	store *lookup.Store
}

// Compute returns the best variant.
func (c BestPercentile) Compute(sh Sheet, cond model.UniversityCondition) (float64, error) {
	cv := resolveCurves(c.store, cond.Curves)
	bestInq := math.NaN()
	for _, s := range sh.Inquiry() {
		p := float64(s.Raw.Percentile)
		if math.IsNaN(bestInq) || p > bestInq {
			bestInq = p
		}
	}
	eng := cv.english.At(sh.English.Raw.Grade)

	return bestOf(cond.Ratios, sh, func(r model.RatioSet) (float64, bool) {
		penalty := cv.historyFor(r).At(sh.History.Raw.Grade)
		s := float64(sh.Korean.Raw.Percentile)*r.Korean +
			float64(sh.Math.Raw.Percentile)*r.Math +
			eng*r.English + bestInq*r.Inquiry - penalty
		return s * scale(cond, 1), true
	})
}

// BestStandard normalizes standard-score-based korean, math and inquiry,
// adds an english share after normalization, scales, and adds a history bonus.
type BestStandard struct {
	store *lookup.Store
}

// Compute returns the best variant.
func (c BestStandard) Compute(sh Sheet, cond model.UniversityCondition) (float64, error) {
	cv := resolveCurves(c.store, cond.Curves)
	k := inquiryCount(cond, 2)
	maxStd := maxStandard(cond)
	eng := cv.english.At(sh.English.Raw.Grade) / cv.english.Max()

	return bestOf(cond.Ratios, sh, func(r model.RatioSet) (float64, bool) {
		boost := 1.0
		if r.ScienceBoost > 0 {
			boost = r.ScienceBoost
		}
		inq := make([]float64, 0, len(sh.Inquiry()))
		for _, s := range sh.Inquiry() {
			v := cv.inquiry(s.Raw.Kind).At(s.Raw.StandardScore)
			if s.Raw.Kind == model.KindScience {
				v *= boost
			}
			inq = append(inq, v)
		}
		maxInq := math.Max(cv.society.Max(), cv.science.Max()*boost)
		top := float64(sh.Korean.Raw.StandardScore)*r.Korean + float64(sh.Math.Raw.StandardScore)*r.Math + topSum(inq, k)*r.Inquiry
		bottom := maxStd*r.Korean + maxStd*r.Math + maxInq*r.Inquiry*float64(k)
		if bottom == 0 {
			return 0, false
		}
		bonus := cv.historyFor(r).At(sh.History.Raw.Grade)
		return (top/bottom+eng*r.English)*scale(cond, defaultScale) + bonus, true
	})
}

// Registry maps calculator kinds to strategies.
type Registry struct {
	byKind map[model.CalculatorKind]Calculator
}

// NewRegistry builds the default registry over store, then applies overrides.
func NewRegistry(store *lookup.Store, overrides map[model.CalculatorKind]Calculator) *Registry {
	r := &Registry{byKind: map[model.CalculatorKind]Calculator{
		model.CalcGeneric:        Pattern{},
		model.CalcRatio:          Ratio{store: store},
		model.CalcBestPercentile: BestPercentile{store: store},
		model.CalcBestStandard:   BestStandard{store: store},
	}}
	for k, c := range overrides {
		r.byKind[k] = c
	}
	return r
}

// Resolve returns the calculator for a kind.
func (r *Registry) Resolve(kind model.CalculatorKind) (Calculator, error) {
	c, ok := r.byKind[kind]
	if !ok {
		return nil, fail(model.FailureComputation, fmt.Sprintf("calculator %q not registered", kind), ErrUnknownCalculator)
	}
	return c, nil
}
