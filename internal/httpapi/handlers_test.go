package httpapi_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/disha-labs/disha/internal/ai"
	"github.com/disha-labs/disha/internal/catalog"
	"github.com/disha-labs/disha/internal/explain"
	"github.com/disha-labs/disha/internal/httpapi"
)

func testServer(t *testing.T, provider ai.Provider) *httptest.Server {
	t.Helper()

	streams := map[string]catalog.Stream{
		"science": {
			Description: "science stream",
			Combinations: []catalog.Combination{
				{
					ID:         "pcm",
					Courses:    []string{"B.Tech Computer Science", "B.Sc Physics"},
					NewCourses: []string{"B.Sc Data Science"},
				},
			},
		},
	}
	questions := catalog.QuestionSet{
		CoreQuestions: []catalog.Question{
			{ID: "q_stability", Criterion: "stability", Text: "stability?",
				Options: []catalog.Option{{Text: "low", Value: 1}, {Text: "high", Value: 4}}},
		},
		StreamSpecificQuestions: map[string][]catalog.Question{
			"science": {
				{ID: "q1", Criterion: "analytical", Text: "analytical?",
					Options: []catalog.Option{{Text: "low", Value: 1}, {Text: "high", Value: 4}}},
			},
		},
	}
	matrix := map[string]catalog.MatrixRow{
		"B.Tech Computer Science": {"stability": 0.8, "analytical": 0.5},
		"B.Sc Physics":            {"stability": 0.4, "analytical": 0.9},
		"B.Sc Data Science":       {"stability": 0.7, "analytical": 0.6},
	}
	cat := catalog.New(streams, questions, matrix)

	router := ai.NewRouter()
	if provider != nil {
		router.Register("test", provider)
	}
	explainer := explain.New(explain.Config{Router: router})

	server := httptest.NewServer(httpapi.New(cat, explainer, nil).Routes())
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func TestHealthEndpoints(t *testing.T) {
	server := testServer(t, nil)

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestStreams(t *testing.T) {
	server := testServer(t, nil)

	resp, err := http.Get(server.URL + "/api/streams")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body struct {
		Domains []struct {
			Name             string `json:"name"`
			Description      string `json:"description"`
			CombinationCount int    `json:"combination_count"`
		} `json:"domains"`
	}
	decodeBody(t, resp, &body)

	if len(body.Domains) != 1 {
		t.Fatalf("domains = %d, want 1", len(body.Domains))
	}
	if body.Domains[0].Name != "science" || body.Domains[0].CombinationCount != 1 {
		t.Errorf("unexpected domain summary: %+v", body.Domains[0])
	}
}

func TestCombinations_UnknownDomain(t *testing.T) {
	server := testServer(t, nil)

	resp, err := http.Get(server.URL + "/api/combinations/astrology")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestQuestions_UnknownDomainReturnsCore(t *testing.T) {
	server := testServer(t, nil)

	resp, err := http.Get(server.URL + "/api/questions/astrology")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Questions []catalog.Question `json:"questions"`
	}
	decodeBody(t, resp, &body)

	if len(body.Questions) != 1 || body.Questions[0].ID != "q_stability" {
		t.Errorf("questions = %+v, want core questions only", body.Questions)
	}
}

func TestCalculateWeights(t *testing.T) {
	server := testServer(t, nil)

	resp := postJSON(t, server.URL+"/api/calculate-weights", map[string]any{
		"domain":  "science",
		"answers": map[string]float64{"q_stability": 3, "q1": 1},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		RawScores         map[string]float64 `json:"raw_scores"`
		NormalizedWeights map[string]float64 `json:"normalized_weights"`
		SortedCriteria    []string           `json:"sorted_criteria"`
		PrimaryCriteria   []string           `json:"primary_criteria"`
	}
	decodeBody(t, resp, &body)

	if math.Abs(body.NormalizedWeights["stability"]-0.75) > 1e-9 {
		t.Errorf("stability weight = %v, want 0.75", body.NormalizedWeights["stability"])
	}
	if len(body.SortedCriteria) != 2 || body.SortedCriteria[0] != "stability" {
		t.Errorf("sorted_criteria = %v", body.SortedCriteria)
	}
	if len(body.PrimaryCriteria) == 0 {
		t.Error("primary_criteria missing")
	}
}

func TestCalculateWeights_Validation(t *testing.T) {
	server := testServer(t, nil)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing domain", map[string]any{"answers": map[string]float64{}}},
		{"missing answers", map[string]any{"domain": "science"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, server.URL+"/api/calculate-weights", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestRankCourses(t *testing.T) {
	server := testServer(t, nil)

	resp := postJSON(t, server.URL+"/api/rank-courses", map[string]any{
		"combination_id": "pcm",
		"user_weights":   map[string]float64{"stability": 0.6, "analytical": 0.4},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		RankedCourses []struct {
			Course     string  `json:"course"`
			FinalScore float64 `json:"final_score"`
		} `json:"ranked_courses"`
		Top3 []struct {
			Course string `json:"course"`
		} `json:"top_3"`
	}
	decodeBody(t, resp, &body)

	if len(body.RankedCourses) != 3 {
		t.Fatalf("ranked_courses = %d, want 3", len(body.RankedCourses))
	}
	if body.RankedCourses[0].Course != "B.Tech Computer Science" {
		t.Errorf("top course = %q", body.RankedCourses[0].Course)
	}
	if len(body.Top3) != 3 {
		t.Errorf("top_3 = %d entries, want 3", len(body.Top3))
	}
}

func TestRankCourses_UnknownCombination(t *testing.T) {
	server := testServer(t, nil)

	resp := postJSON(t, server.URL+"/api/rank-courses", map[string]any{
		"combination_id": "nope",
		"user_weights":   map[string]float64{"stability": 1.0},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (unknown combination is not an error)", resp.StatusCode)
	}

	var body struct {
		RankedCourses []any `json:"ranked_courses"`
		Top3          []any `json:"top_3"`
	}
	decodeBody(t, resp, &body)

	if len(body.RankedCourses) != 0 || len(body.Top3) != 0 {
		t.Errorf("expected empty ranking, got %+v", body)
	}
}

func TestGenerateExplanation(t *testing.T) {
	server := testServer(t, ai.NewMockProvider("A good fit for you."))

	resp := postJSON(t, server.URL+"/api/generate-explanation", map[string]any{
		"top_course":          "B.Tech Computer Science",
		"top_criteria":        []string{"stability"},
		"user_weights":        map[string]float64{"stability": 1.0},
		"subject_combination": "pcm",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body explain.Response
	decodeBody(t, resp, &body)

	if body.Explanation != "A good fit for you." {
		t.Errorf("explanation = %q", body.Explanation)
	}
	if !strings.Contains(body.Prompt, "B.Tech Computer Science") {
		t.Error("prompt missing course name")
	}
}

func TestGenerateExplanation_ProviderFailureStill200(t *testing.T) {
	server := testServer(t, &ai.MockProvider{Err: errors.New("unreachable")})

	resp := postJSON(t, server.URL+"/api/generate-explanation", map[string]any{
		"top_course":          "B.Tech Computer Science",
		"top_criteria":        []string{"stability"},
		"user_weights":        map[string]float64{"stability": 1.0},
		"subject_combination": "pcm",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when the generator fails", resp.StatusCode)
	}

	var body explain.Response
	decodeBody(t, resp, &body)

	if body.Explanation == "" {
		t.Error("explanation must not be empty on generator failure")
	}
}

func TestExportReport(t *testing.T) {
	server := testServer(t, nil)

	resp := postJSON(t, server.URL+"/api/export-report", map[string]any{
		"combination_id": "pcm",
		"user_weights":   map[string]float64{"stability": 0.6, "analytical": 0.4},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q", ct)
	}

	f, err := excelize.OpenReader(resp.Body)
	if err != nil {
		t.Fatalf("response is not a readable workbook: %v", err)
	}
	defer f.Close()

	course, err := f.GetCellValue("Ranking", "B2")
	if err != nil {
		t.Fatal(err)
	}
	if course != "B.Tech Computer Science" {
		t.Errorf("Ranking!B2 = %q, want top course", course)
	}
}

func TestInvalidJSONBody(t *testing.T) {
	server := testServer(t, nil)

	resp, err := http.Post(server.URL+"/api/rank-courses", "application/json",
		strings.NewReader("{not json"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
