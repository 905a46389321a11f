package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	service "github.com/okian/admitscore/internal/app"
	"github.com/okian/admitscore/internal/domain/model"
)

// scoreRequest is the body of POST /v1/score and POST /v1/submissions.
type scoreRequest struct {
	SubmissionID  string          `json:"submission_id,omitempty"`
	Candidate     model.Candidate `json:"candidate"`
	UniversityIDs []string        `json:"university_ids,omitempty"`
}

func (r scoreRequest) validate() error {
	if len(r.Candidate.Scores) == 0 {
		return errors.New("missing candidate scores")
	}
	for _, s := range r.Candidate.Scores {
		if strings.TrimSpace(string(s.Kind)) == "" {
			return errors.New("score without kind")
		}
	}
	for _, id := range r.UniversityIDs {
		if strings.TrimSpace(id) == "" {
			return errors.New("empty university id")
		}
	}
	return nil
}

type receiptResponse struct {
	Status       string `json:"status"`
	SubmissionID string `json:"submission_id"`
	Duplicate    bool   `json:"duplicate"`
	Universities int    `json:"universities"`
}

// handleScore handles POST /v1/score.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.score"
	var req scoreRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	evs, err := s.deps.Score(r.Context(), req.Candidate, req.UniversityIDs)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, resultsResponse{CandidateID: req.Candidate.ID, Results: toViews(evs)})
}

// handleSubmit handles POST /v1/submissions.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit"
	var req scoreRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	rc, err := s.deps.Submit(r.Context(), service.Submission{
		SubmissionID:  req.SubmissionID,
		Candidate:     req.Candidate,
		UniversityIDs: req.UniversityIDs,
	})
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	resp := receiptResponse{
		Status:       "accepted",
		SubmissionID: rc.SubmissionID,
		Duplicate:    rc.Duplicate,
		Universities: rc.Universities,
	}
	if rc.Duplicate {
		resp.Status = "duplicate"
		writeJSON(w, http.StatusOK, resp)
		return
	}
	writeJSON(w, http.StatusAccepted, resp)
}

// handleGetSubmission handles GET /v1/submissions/{id}.
func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	evs, err := s.deps.Submission(r.Context(), id)
	if err != nil {
		writeServiceError(w, "api.get_submission", err)
		return
	}
	resp := resultsResponse{SubmissionID: id, Results: toViews(evs)}
	if len(evs) > 0 {
		resp.CandidateID = evs[0].CandidateID
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCandidateResults handles GET /v1/candidates/{id}/results.
func (s *Server) handleCandidateResults(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	evs, err := s.deps.Results(r.Context(), id)
	if err != nil {
		writeServiceError(w, "api.candidate_results", err)
		return
	}
	writeJSON(w, http.StatusOK, resultsResponse{CandidateID: id, Results: toViews(evs)})
}
