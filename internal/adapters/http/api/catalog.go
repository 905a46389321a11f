package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/admitscore/internal/domain/model"
	"github.com/okian/admitscore/internal/domain/pattern"
)

type patternGroup struct {
	Key          string   `json:"key"`
	Count        int      `json:"count"`
	Universities []string `json:"universities"`
}

type patternsResponse struct {
	Total    int            `json:"total"`
	Patterns []patternGroup `json:"patterns"`
}

func patternsView(reg pattern.Registry) patternsResponse {
	stats := reg.Stats()
	out := patternsResponse{Total: reg.Len(), Patterns: make([]patternGroup, len(stats))}
	for i, st := range stats {
		out.Patterns[i] = patternGroup{Key: st.Key, Count: st.Count, Universities: reg.IDs(st.Key)}
	}
	return out
}

// handlePatterns handles GET /v1/patterns.
func (s *Server) handlePatterns(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, patternsView(s.deps.Patterns()))
}

type universitiesResponse struct {
	Universities []model.UniversityCondition `json:"universities"`
}

// handleUniversities handles GET /v1/universities.
func (s *Server) handleUniversities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, universitiesResponse{Universities: s.deps.Universities()})
}

// handleUniversity handles GET /v1/universities/{id}.
func (s *Server) handleUniversity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cond, ok := s.deps.University(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", NewKind("api.university", ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, cond)
}
