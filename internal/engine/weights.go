// Package engine holds the weighting and ranking computations. Both are pure
// functions of an immutable catalog and per-request input, so concurrent
// requests need no coordination.
package engine

import (
	"log/slog"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/disha-labs/disha/internal/catalog"
)

// WeightResult is the output of NormalizeWeights. RawScores and
// NormalizedWeights always share the same key set: criteria that received no
// answer are absent, not zero.
type WeightResult struct {
	RawScores         map[string]float64 `json:"raw_scores"`
	NormalizedWeights map[string]float64 `json:"normalized_weights"`
	SortedCriteria    []string           `json:"sorted_criteria"`
}

// NormalizeWeights converts questionnaire answers into normalized criterion
// weights. Answers are keyed by question id; each answered question adds its
// value to the accumulator for that question's criterion. Unknown domains
// reduce the question set to the core questions, and answers for unknown
// question ids are ignored.
//
// When the accumulated total is positive, each weight is the criterion's
// share of the total, so the weights sum to 1. A zero or negative total
// degrades to all-zero weights instead of dividing by zero.
func NormalizeWeights(cat *catalog.Catalog, domain string, answers map[string]float64) WeightResult {
	questions := cat.QuestionsForDomain(domain)

	known := make(map[string]bool, len(questions))
	raw := make(map[string]float64)
	for _, q := range questions {
		known[q.ID] = true
		value, answered := answers[q.ID]
		if !answered {
			continue
		}
		raw[q.Criterion] += value
	}
	for id := range answers {
		if !known[id] {
			slog.Debug("ignoring answer for unknown question", "question_id", id, "domain", domain)
		}
	}

	total := 0.0
	for _, v := range raw {
		total += v
	}

	normalized := make(map[string]float64, len(raw))
	for criterion, v := range raw {
		if total <= 0 {
			normalized[criterion] = 0.0
		} else {
			normalized[criterion] = v / total
		}
	}

	return WeightResult{
		RawScores:         raw,
		NormalizedWeights: normalized,
		SortedCriteria:    SortByWeight(normalized),
	}
}

// SortByWeight returns the keys of a weight map ordered by weight
// descending. Ties collate by criterion tag so repeated calls with equal
// input produce identical output.
func SortByWeight(weights map[string]float64) []string {
	criteria := sortedCriteria(weights)
	sort.SliceStable(criteria, func(i, j int) bool {
		return weights[criteria[i]] > weights[criteria[j]]
	})
	return criteria
}

// sortedCriteria returns the keys of a criterion map in collation order,
// giving map iteration a stable replacement wherever order matters.
func sortedCriteria(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	collate.New(language.Und).SortStrings(keys)
	return keys
}
