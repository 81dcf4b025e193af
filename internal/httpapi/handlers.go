package httpapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/disha-labs/disha/internal/catalog"
	"github.com/disha-labs/disha/internal/engine"
	"github.com/disha-labs/disha/internal/explain"
	"github.com/disha-labs/disha/internal/report"
)

// primaryCriteria are the criteria the client surfaces as sliders by
// default; the rest are offered as optional extras.
var primaryCriteria = []string{"stability", "analytical", "income_priority", "years_willing"}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.cache != nil {
		if err := s.cache.HealthCheck(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "cache unavailable")
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

type streamSummary struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	CombinationCount int    `json:"combination_count"`
}

// GET /api/streams
func (s *Server) handleStreams(w http.ResponseWriter, _ *http.Request) {
	domains := []streamSummary{}
	for _, name := range s.catalog.Domains() {
		stream, _ := s.catalog.Stream(name)
		domains = append(domains, streamSummary{
			Name:             name,
			Description:      stream.Description,
			CombinationCount: len(stream.Combinations),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"domains": domains})
}

// GET /api/combinations/{domain}
func (s *Server) handleCombinations(w http.ResponseWriter, r *http.Request) {
	domain := r.PathValue("domain")
	stream, ok := s.catalog.Stream(domain)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown domain")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"domain":       domain,
		"combinations": stream.Combinations,
	})
}

// GET /api/questions/{domain}
//
// Unknown domains still return the core questions; the engine treats them
// the same way.
func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	domain := r.PathValue("domain")
	questions := s.catalog.QuestionsForDomain(domain)
	if questions == nil {
		questions = []catalog.Question{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"domain":    domain,
		"questions": questions,
	})
}

type calculateWeightsRequest struct {
	Domain  string             `json:"domain"`
	Answers map[string]float64 `json:"answers"`
}

// POST /api/calculate-weights
func (s *Server) handleCalculateWeights(w http.ResponseWriter, r *http.Request) {
	var req calculateWeightsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Domain == "" {
		writeError(w, http.StatusBadRequest, "domain is required")
		return
	}
	if req.Answers == nil {
		writeError(w, http.StatusBadRequest, "answers is required")
		return
	}

	result := engine.NormalizeWeights(s.catalog, req.Domain, req.Answers)
	writeJSON(w, http.StatusOK, map[string]any{
		"raw_scores":         result.RawScores,
		"normalized_weights": result.NormalizedWeights,
		"sorted_criteria":    result.SortedCriteria,
		"primary_criteria":   primaryCriteria,
	})
}

type rankCoursesRequest struct {
	CombinationID string             `json:"combination_id"`
	UserWeights   map[string]float64 `json:"user_weights"`
}

func (req rankCoursesRequest) validate() error {
	if req.CombinationID == "" {
		return fmt.Errorf("combination_id is required")
	}
	if req.UserWeights == nil {
		return fmt.Errorf("user_weights is required")
	}
	return nil
}

// POST /api/rank-courses
func (s *Server) handleRankCourses(w http.ResponseWriter, r *http.Request) {
	var req rankCoursesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := engine.RankCourses(s.catalog, req.CombinationID, req.UserWeights)
	writeJSON(w, http.StatusOK, result)
}

type generateExplanationRequest struct {
	TopCourse          string             `json:"top_course"`
	TopCriteria        []string           `json:"top_criteria"`
	UserWeights        map[string]float64 `json:"user_weights"`
	SubjectCombination string             `json:"subject_combination"`
}

// POST /api/generate-explanation
func (s *Server) handleGenerateExplanation(w http.ResponseWriter, r *http.Request) {
	var req generateExplanationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.TopCourse == "" {
		writeError(w, http.StatusBadRequest, "top_course is required")
		return
	}
	if req.UserWeights == nil {
		writeError(w, http.StatusBadRequest, "user_weights is required")
		return
	}

	resp := s.explainer.Explain(r.Context(), explain.Request{
		TopCourse:          req.TopCourse,
		TopCriteria:        req.TopCriteria,
		UserWeights:        req.UserWeights,
		SubjectCombination: req.SubjectCombination,
	})
	writeJSON(w, http.StatusOK, resp)
}

// POST /api/export-report
func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	var req rankCoursesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := engine.RankCourses(s.catalog, req.CombinationID, req.UserWeights)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "course-ranking.xlsx"))
	if err := report.WriteRanking(w, req.CombinationID, req.UserWeights, result); err != nil {
		// Headers are already out; all we can do is log.
		slog.Error("failed to write report", "combination_id", req.CombinationID, "error", err)
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
