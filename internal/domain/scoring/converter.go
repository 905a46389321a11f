package scoring

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/okian/admitscore/internal/domain/lookup"
	"github.com/okian/admitscore/internal/domain/model"
)

// Tables is the lookup surface the converter reads.
type Tables interface {
	Lookup(subject, key, universityID string) (lookup.Cell, error)
}

// Converter turns raw subject scores into university-specific values.
type Converter struct {
	tables Tables
}

// NewConverter returns a Converter over tables.
func NewConverter(t Tables) *Converter { return &Converter{tables: t} }

// Convert looks up one subject. English and history are keyed by grade, every
// other subject by standard score.
func (c *Converter) Convert(s model.RawSubjectScore, universityID string) (float64, error) {
	if !s.Reported() {
		return 0, fail(model.FailureMissingData, fmt.Sprintf("%s score missing", s.Kind), ErrMissingSubject)
	}
	key := strconv.Itoa(s.StandardScore)
	if s.Kind.GradeKeyed() {
		key = strconv.Itoa(s.Grade)
	}
	cell, err := c.tables.Lookup(s.Subject, key, universityID)
	if err != nil {
		return 0, fail(model.FailureMissingData, err.Error(), fmt.Errorf("%w: %w", ErrMissingTableEntry, err))
	}
	return coerce(cell), nil
}

// coerce applies the placeholder policy: non-numeric cells count as zero.
func coerce(c lookup.Cell) float64 {
	if !c.Numeric() {
		return 0
	}
	return c.Value
}

// Subject pairs a raw score with its converted value.
type Subject struct {
	Raw       model.RawSubjectScore
	Converted float64
}

// Sheet is a candidate's converted scores for one university.
type Sheet struct {
	Korean  Subject
	Math    Subject
	English Subject
	History Subject
	Foreign *Subject
	Society []Subject
	Science []Subject
}

// Inquiry returns society then science subjects.
func (s Sheet) Inquiry() []Subject {
	out := make([]Subject, 0, len(s.Society)+len(s.Science))
	out = append(out, s.Society...)
	return append(out, s.Science...)
}

// Sheet converts every subject a composite may read. Korean, math, english
// and history are always required; at least one inquiry subject is required
// when the condition counts inquiry.
func (c *Converter) Sheet(cand model.Candidate, cond model.UniversityCondition) (Sheet, error) {
	var sh Sheet
	required := []struct {
		kind model.SubjectKind
		dst  *Subject
	}{
		{model.KindKorean, &sh.Korean},
		{model.KindMath, &sh.Math},
		{model.KindEnglish, &sh.English},
		{model.KindHistory, &sh.History},
	}
	for _, r := range required {
		raw, _ := cand.First(r.kind)
		raw.Kind = r.kind
		v, err := c.Convert(raw, cond.ID)
		if err != nil {
			return Sheet{}, err
		}
		*r.dst = Subject{Raw: raw, Converted: v}
	}

	var err error
	if sh.Society, err = c.convertAll(cand.Inquiry(model.KindSociety), cond.ID); err != nil {
		return Sheet{}, err
	}
	if sh.Science, err = c.convertAll(cand.Inquiry(model.KindScience), cond.ID); err != nil {
		return Sheet{}, err
	}
	if len(sh.Society)+len(sh.Science) == 0 && usesInquiry(cond) {
		return Sheet{}, fail(model.FailureMissingData, "inquiry score missing", ErrMissingSubject)
	}

	if raw, ok := cand.First(model.KindForeign); ok && raw.Reported() {
		v, err := c.Convert(raw, cond.ID)
		if err != nil {
			return Sheet{}, err
		}
		sh.Foreign = &Subject{Raw: raw, Converted: v}
	}
	return sh, nil
}

func (c *Converter) convertAll(raws []model.RawSubjectScore, universityID string) ([]Subject, error) {
	out := make([]Subject, 0, len(raws))
	for _, raw := range raws {
		v, err := c.Convert(raw, universityID)
		if err != nil {
			return nil, err
		}
		out = append(out, Subject{Raw: raw, Converted: v})
	}
	return out, nil
}

func usesInquiry(cond model.UniversityCondition) bool {
	return cond.Calculator != model.CalcGeneric || cond.TierOf(model.CategoryInquiry) != model.TierUnused
}

// topSum sorts values descending, stable for ties, and sums the first n.
// n <= 0 sums everything.
func topSum(values []float64, n int) float64 {
	sorted := append([]float64(nil), values...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })
	if n > 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	var t float64
	for _, v := range sorted {
		t += v
	}
	return t
}

// StandardScoreSum is korean plus math plus the best two inquiry standard scores.
func StandardScoreSum(cand model.Candidate) float64 {
	var sum float64
	if k, ok := cand.First(model.KindKorean); ok {
		sum += float64(k.StandardScore)
	}
	if m, ok := cand.First(model.KindMath); ok {
		sum += float64(m.StandardScore)
	}
	var inq []float64
	for _, kind := range []model.SubjectKind{model.KindSociety, model.KindScience} {
		for _, s := range cand.Inquiry(kind) {
			inq = append(inq, float64(s.StandardScore))
		}
	}
	return sum + topSum(inq, 2)
}
