// Package explain turns a ranking outcome into a natural-language
// explanation. The generator call is best-effort: any failure degrades to a
// fixed explanation instead of an error.
package explain

import (
	"fmt"
	"strings"

	"github.com/disha-labs/disha/internal/engine"
)

// Request identifies the recommendation to explain.
type Request struct {
	TopCourse          string             `json:"top_course"`
	TopCriteria        []string           `json:"top_criteria"`
	UserWeights        map[string]float64 `json:"user_weights"`
	SubjectCombination string             `json:"subject_combination"`
}

// BuildPrompt renders the deterministic prompt handed to the text generator.
// Weights are listed in descending order so the model sees the student's
// priorities first.
func BuildPrompt(req Request) string {
	var weighted []string
	for _, criterion := range engine.SortByWeight(req.UserWeights) {
		weighted = append(weighted, fmt.Sprintf("- %s: %.2f", criterion, req.UserWeights[criterion]))
	}

	criteriaText := strings.Join(weighted, "\n")
	topCriteriaText := strings.Join(req.TopCriteria, ", ")

	return "You are a career guidance expert explaining recommendations to a +2 student.\n\n" +
		fmt.Sprintf("Top recommended course: %s\n", req.TopCourse) +
		fmt.Sprintf("Subject combination: %s\n", req.SubjectCombination) +
		fmt.Sprintf("Most influential criteria: %s\n\n", topCriteriaText) +
		"User preference weights (higher means more important):\n" +
		criteriaText + "\n\n" +
		"Explain in clear, encouraging language:\n" +
		"1. Why this course fits the student based on their preferences.\n" +
		"2. How the course aligns with their strengths and study commitment.\n" +
		"3. Career stability and growth outlook.\n" +
		"4. Financial and income potential in simple terms.\n" +
		"Keep it concise (3-5 short paragraphs) and avoid jargon."
}
