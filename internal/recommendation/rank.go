// internal/recommendation/rank.go
package recommendation

import "sort"

const DefaultTopN = 10

// Rank scores every career and returns the best topN entries, highest first.
// Ties keep catalog order. topN outside [1, DefaultTopN] means DefaultTopN.
func Rank(careers []CareerDefinition, input AssessmentInput, jitter Jitter, topN int) []RecommendationEntry {
	if topN <= 0 || topN > DefaultTopN {
		topN = DefaultTopN
	}

	entries := make([]RecommendationEntry, 0, len(careers))
	for _, c := range careers {
		entries = append(entries, RecommendationEntry{
			CareerID:        c.ID,
			Title:           c.Title,
			Category:        c.Category,
			Stream:          c.Stream,
			MatchPercentage: round1(ComputeMatchScore(c, input, jitter)),
			SalaryRange:     c.SalaryRange,
			Growth:          c.Growth,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].MatchPercentage > entries[j].MatchPercentage
	})

	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}
