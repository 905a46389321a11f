package api

import (
	"errors"
	"net/http"

	"github.com/okian/admitscore/internal/domain/risk"
)

type aggregateRequest struct {
	// Risks lists sub-risks; null entries are unavailable.
	Risks []*float64 `json:"risks"`
}

type aggregateResponse struct {
	Risk float64 `json:"risk"`
}

// handleAggregate handles POST /v1/risk/aggregate.
func handleAggregate(w http.ResponseWriter, r *http.Request) {
	const op = "api.risk_aggregate"
	var req aggregateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	subs := make([]risk.Sub, len(req.Risks))
	for i, v := range req.Risks {
		if v != nil {
			subs[i] = risk.Some(*v)
		}
	}
	writeJSON(w, http.StatusOK, aggregateResponse{Risk: round2(risk.Aggregate(subs...))})
}

type gradeDifferenceRequest struct {
	Tier        int      `json:"tier"`
	Recommended float64  `json:"recommended"`
	Student     *float64 `json:"student"`
}

type gradeRiskResponse struct {
	Risk      int  `json:"risk"`
	Available bool `json:"available"`
}

// handleGradeDifference handles POST /v1/risk/grade-difference.
func handleGradeDifference(w http.ResponseWriter, r *http.Request) {
	const op = "api.risk_grade_difference"
	var req gradeDifferenceRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	v, err := risk.GradeDifference(req.Tier, req.Recommended, req.Student)
	if err != nil {
		writeRiskError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, gradeRiskResponse{Risk: v, Available: true})
}

type gradeCutRequest struct {
	Average float64  `json:"average"`
	Cut50   *float64 `json:"cut50"`
	Cut70   *float64 `json:"cut70"`
}

// handleGradeCut handles POST /v1/risk/grade-cut.
func handleGradeCut(w http.ResponseWriter, r *http.Request) {
	const op = "api.risk_grade_cut"
	var req gradeCutRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	v, ok := risk.GradeCutRisk(req.Average, req.Cut50, req.Cut70)
	writeJSON(w, http.StatusOK, gradeRiskResponse{Risk: v, Available: ok})
}

// handleCompatibility handles POST /v1/risk/compatibility.
func handleCompatibility(w http.ResponseWriter, r *http.Request) {
	const op = "api.risk_compatibility"
	var req risk.CompatibilityInput
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	out, err := risk.EvaluateCompatibility(req)
	if err != nil {
		writeRiskError(w, op, err)
		return
	}
	out.Total = round2(out.Total)
	writeJSON(w, http.StatusOK, out)
}

type seriesRequest struct {
	Subjects []risk.GradePair `json:"subjects"`
}

// handleSeries handles POST /v1/risk/series.
func handleSeries(w http.ResponseWriter, r *http.Request) {
	const op = "api.risk_series"
	var req seriesRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(req.Subjects) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing subjects")))
		return
	}
	writeJSON(w, http.StatusOK, risk.EvaluateSeries(req.Subjects))
}

func writeRiskError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, risk.ErrUnknownTier) {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", err)
}
