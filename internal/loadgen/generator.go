package loadgen

import (
	"fmt"
	"math/rand/v2"

	"github.com/okian/admitscore/internal/domain/model"
)

// Score pools matching the sample data tables.
var (
	koreanScores     = []int{125, 131, 137}
	calculusScores   = []int{128, 135, 140}
	statisticsScores = []int{124, 130, 136}
	physicsScores    = []int{62, 67, 70}
	ethicsScores     = []int{60, 65, 68}
	percentiles      = []int{90, 92, 93, 96, 97}
)

// Generator produces reproducible random candidates.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator seeds a Generator.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (g *Generator) pick(xs []int) int { return xs[g.rng.IntN(len(xs))] }

func (g *Generator) grade() int { return 1 + g.rng.IntN(4) }

// Candidate builds candidate i. Roughly a third take statistics instead of
// calculus; inquiry is one or two of physics and ethics.
func (g *Generator) Candidate(i int) model.Candidate {
	math := model.RawSubjectScore{Kind: model.KindMath, Subject: "미적분", StandardScore: g.pick(calculusScores)}
	if g.rng.IntN(3) == 0 {
		math = model.RawSubjectScore{Kind: model.KindMath, Subject: "확률과통계", StandardScore: g.pick(statisticsScores)}
	}
	math.Percentile, math.Grade = g.pick(percentiles), g.grade()

	scores := []model.RawSubjectScore{
		{Kind: model.KindKorean, Subject: "국어", StandardScore: g.pick(koreanScores), Percentile: g.pick(percentiles), Grade: g.grade()},
		math,
		{Kind: model.KindEnglish, Subject: "영어", Grade: g.grade()},
		{Kind: model.KindHistory, Subject: "한국사", Grade: 1 + g.rng.IntN(5)},
	}
	switch g.rng.IntN(3) {
	case 0:
		scores = append(scores, g.physics())
	case 1:
		scores = append(scores, g.ethics())
	default:
		scores = append(scores, g.physics(), g.ethics())
	}
	return model.Candidate{ID: fmt.Sprintf("load-%06d", i), Scores: scores}
}

func (g *Generator) physics() model.RawSubjectScore {
	return model.RawSubjectScore{Kind: model.KindScience, Subject: "물리학Ⅰ", StandardScore: g.pick(physicsScores), Percentile: g.pick(percentiles), Grade: g.grade()}
}

func (g *Generator) ethics() model.RawSubjectScore {
	return model.RawSubjectScore{Kind: model.KindSociety, Subject: "생활과윤리", StandardScore: g.pick(ethicsScores), Percentile: g.pick(percentiles), Grade: g.grade()}
}

// Candidates builds n candidates.
func (g *Generator) Candidates(n int) []model.Candidate {
	out := make([]model.Candidate, n)
	for i := range out {
		out[i] = g.Candidate(i)
	}
	return out
}
