package engine

import (
	"sort"

	"github.com/disha-labs/disha/internal/catalog"
)

// RankedCourse is one entry of a ranking. CriterionScores carries the
// course's full matrix row, not just the criteria the user weighted, so
// clients can show the complete profile. Contributions holds weight×score
// for each weighted criterion, and FinalScore is their sum.
type RankedCourse struct {
	Course          string             `json:"course"`
	FinalScore      float64            `json:"final_score"`
	CriterionScores map[string]float64 `json:"criterion_scores"`
	Contributions   map[string]float64 `json:"contributions"`
}

// RankResult is the full ranking plus its top-3 prefix.
type RankResult struct {
	RankedCourses []RankedCourse `json:"ranked_courses"`
	Top3          []RankedCourse `json:"top_3"`
}

// RankCourses scores every course reachable from a subject combination
// against the user's criterion weights and returns them ordered by final
// score descending.
//
// An unknown combination id yields an empty ranking, and courses without a
// matrix row are skipped; neither is an error. The sort is stable, so tied
// courses keep the catalog's base-then-new course order.
func RankCourses(cat *catalog.Catalog, combinationID string, weights map[string]float64) RankResult {
	courses := cat.CoursesForCombination(combinationID)
	criteria := sortedCriteria(weights)

	ranked := make([]RankedCourse, 0, len(courses))
	for _, course := range courses {
		row, ok := cat.CourseScores(course)
		if !ok {
			continue
		}

		contributions := make(map[string]float64, len(criteria))
		final := 0.0
		for _, criterion := range criteria {
			contribution := weights[criterion] * row[criterion]
			contributions[criterion] = contribution
			final += contribution
		}

		scores := make(map[string]float64, len(row))
		for criterion, score := range row {
			scores[criterion] = score
		}

		ranked = append(ranked, RankedCourse{
			Course:          course,
			FinalScore:      final,
			CriterionScores: scores,
			Contributions:   contributions,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})

	return RankResult{
		RankedCourses: ranked,
		Top3:          ranked[:min(3, len(ranked))],
	}
}
