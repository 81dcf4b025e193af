// Package httpapi is the request/response layer over the guidance engine.
// It owns JSON decoding and validation; all computation lives in the engine
// and explain packages.
package httpapi

import (
	"net/http"

	"github.com/disha-labs/disha/internal/catalog"
	"github.com/disha-labs/disha/internal/explain"
	"github.com/disha-labs/disha/internal/platform/cache"
)

// Server bundles the handlers' dependencies.
type Server struct {
	catalog   *catalog.Catalog
	explainer *explain.Explainer
	cache     *cache.Cache // optional, only used by readiness
}

// New creates a Server. cache may be nil.
func New(cat *catalog.Catalog, explainer *explain.Explainer, c *cache.Cache) *Server {
	return &Server{catalog: cat, explainer: explainer, cache: c}
}

// Routes returns the HTTP mux for the API.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.HandleFunc("GET /api/streams", s.handleStreams)
	mux.HandleFunc("GET /api/combinations/{domain}", s.handleCombinations)
	mux.HandleFunc("GET /api/questions/{domain}", s.handleQuestions)
	mux.HandleFunc("POST /api/calculate-weights", s.handleCalculateWeights)
	mux.HandleFunc("POST /api/rank-courses", s.handleRankCourses)
	mux.HandleFunc("POST /api/generate-explanation", s.handleGenerateExplanation)
	mux.HandleFunc("POST /api/export-report", s.handleExportReport)
	return mux
}
