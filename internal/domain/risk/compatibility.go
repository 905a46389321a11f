package risk

import "strings"

// Record is one school-record entry: a numeric ranking or an achievement band.
type Record struct {
	Subject     string
	Ranking     float64
	Achievement string
}

var achievementGrade = map[string]float64{"A": 1, "B": 3, "C": 5, "D": 7, "E": 9}

// SubjectGradeAverage averages the records of one subject. Rankings are used
// as-is; achievement bands map A..E onto 1..9. ok is false with no usable record.
func SubjectGradeAverage(records []Record, subject string) (avg float64, ok bool) {
	var sum float64
	var n int
	for _, r := range records {
		if r.Subject != subject {
			continue
		}
		switch {
		case r.Ranking > 0:
			sum += r.Ranking
		default:
			g, known := achievementGrade[strings.ToUpper(strings.TrimSpace(r.Achievement))]
			if !known {
				continue
			}
			sum += g
		}
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Recommended grades per tier for individual and main subjects.
var (
	recommendedSubject = map[int]float64{1: 1.5, 2: 2.0, 3: 2.5, 4: 3.0, 5: 3.5}
	recommendedMain    = map[int]float64{1: 1.8, 2: 2.3, 3: 2.8, 4: 3.3, 5: 3.8}
)

// SubjectGrade is a subject with the student's average, nil when not taken.
type SubjectGrade struct {
	Subject string   `json:"subject"`
	Average *float64 `json:"average,omitempty"`
}

// CompatibilityInput lists a series' subjects at one university tier.
type CompatibilityInput struct {
	Tier       int            `json:"tier"`
	Required   []SubjectGrade `json:"required"`
	Encouraged []SubjectGrade `json:"encouraged"`
	Main       []SubjectGrade `json:"main"`
	Reference  []SubjectGrade `json:"reference"`
}

// SubjectRisk is the shifted risk of one subject on the 1..10 scale.
type SubjectRisk struct {
	Subject string  `json:"subject"`
	Risk    float64 `json:"risk"`
}

// Compatibility is the combined curriculum fit of a student for a series.
type Compatibility struct {
	Required     []SubjectRisk `json:"required"`
	Encouraged   []SubjectRisk `json:"encouraged"`
	Main         []SubjectRisk `json:"main"`
	Reference    []SubjectRisk `json:"reference"`
	SubjectTotal Sub           `json:"subject_total"`
	MainTotal    Sub           `json:"main_total"`
	Total        float64       `json:"total"`
	Empty        bool          `json:"empty"`
}

// EvaluateCompatibility scores required subjects twice as heavily as
// encouraged ones, averages main and reference subjects, then aggregates both.
func EvaluateCompatibility(in CompatibilityInput) (Compatibility, error) {
	var out Compatibility
	var err error
	if out.Required, err = shifted(in.Tier, in.Required, recommendedSubject); err != nil {
		return Compatibility{}, err
	}
	if out.Encouraged, err = shifted(in.Tier, in.Encouraged, recommendedSubject); err != nil {
		return Compatibility{}, err
	}
	if out.Main, err = shifted(in.Tier, in.Main, recommendedMain); err != nil {
		return Compatibility{}, err
	}
	if out.Reference, err = shifted(in.Tier, in.Reference, recommendedMain); err != nil {
		return Compatibility{}, err
	}

	if w := 2*len(out.Required) + len(out.Encouraged); w > 0 {
		out.SubjectTotal = Some((2*sum(out.Required) + sum(out.Encouraged)) / float64(w))
	}
	if n := len(out.Main) + len(out.Reference); n > 0 {
		out.MainTotal = Some((sum(out.Main) + sum(out.Reference)) / float64(n))
	}
	out.Total = Aggregate(out.SubjectTotal, out.MainTotal)
	out.Empty = !out.SubjectTotal.Available && !out.MainTotal.Available
	return out, nil
}

// shift moves band codes onto 1..10: +5..+1 become 10..6, -1..-5 become 5..1.
func shift(r int) float64 {
	if r > 0 {
		return float64(r + 5)
	}
	return float64(r + 6)
}

func shifted(tier int, subjects []SubjectGrade, recommended map[int]float64) ([]SubjectRisk, error) {
	out := make([]SubjectRisk, 0, len(subjects))
	for _, s := range subjects {
		r, err := GradeDifference(tier, recommended[tier], s.Average)
		if err != nil {
			return nil, err
		}
		out = append(out, SubjectRisk{Subject: s.Subject, Risk: shift(r)})
	}
	return out, nil
}

func sum(rs []SubjectRisk) float64 {
	var t float64
	for _, r := range rs {
		t += r.Risk
	}
	return t
}
