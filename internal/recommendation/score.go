// internal/recommendation/score.go
package recommendation

import (
	"math"
	"sort"
	"strings"
)

const (
	BaseScore = 50.0
	MinScore  = 40.0
	MaxScore  = 99.0

	aptitudeWeight    = 20.0
	interestWeight    = 10.0
	personalityWeight = 10.0
)

// ComputeMatchScore scores how well a student profile fits one career.
//
// Every matching interest adds independently, so a profile with several
// relevant interests can contribute more than the nominal 20 points.
// The result is clamped to [MinScore, MaxScore].
func ComputeMatchScore(career CareerDefinition, input AssessmentInput, jitter Jitter) float64 {
	score := BaseScore
	category := strings.ToLower(career.Category)

	if input.AptitudeScore != nil {
		score += (*input.AptitudeScore / 100) * aptitudeWeight
	}

	if input.InterestProfile != nil {
		relevant := RelevantInterests(category)
		for _, name := range sortedKeys(input.InterestProfile) {
			if contains(relevant, strings.ToLower(name)) {
				score += (input.InterestProfile[name] / 100) * interestWeight
			}
		}
	}

	if input.PersonalityProfile != nil {
		weights := TraitWeights(category)
		for _, trait := range sortedKeys(input.PersonalityProfile) {
			if w, ok := weights[strings.ToLower(trait)]; ok {
				score += (input.PersonalityProfile[trait] / 100) * w * personalityWeight
			}
		}
	}

	if jitter != nil {
		score += jitter.Next()
	}

	return clamp(score, MinScore, MaxScore)
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// sortedKeys fixes the summation order so identical inputs give identical floats.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
