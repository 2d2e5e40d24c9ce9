// internal/recommendation/tables.go
package recommendation

import "strings"

// interestRelevance maps a career category to the Holland interest types that count toward it.
var interestRelevance = map[string][]string{
	"technology":  {"investigative", "realistic"},
	"healthcare":  {"social", "investigative"},
	"business":    {"enterprising", "conventional"},
	"creative":    {"artistic", "social"},
	"education":   {"social", "conventional"},
	"science":     {"investigative", "realistic"},
	"law":         {"enterprising", "investigative"},
	"government":  {"conventional", "social"},
	"engineering": {"realistic", "investigative"},
	"design":      {"artistic", "realistic"},
}

var defaultInterests = []string{"investigative", "realistic"}

// personalityWeights maps a career category to trait weights in [0,1].
var personalityWeights = map[string]map[string]float64{
	"technology":  {"openness": 0.8, "conscientiousness": 0.7},
	"healthcare":  {"agreeableness": 0.9, "conscientiousness": 0.8},
	"business":    {"extraversion": 0.8, "conscientiousness": 0.7},
	"creative":    {"openness": 0.9, "extraversion": 0.5},
	"education":   {"agreeableness": 0.8, "extraversion": 0.7},
	"science":     {"openness": 0.9, "conscientiousness": 0.8},
	"law":         {"conscientiousness": 0.9, "extraversion": 0.6},
	"government":  {"conscientiousness": 0.8, "agreeableness": 0.6},
	"engineering": {"conscientiousness": 0.8, "openness": 0.7},
	"design":      {"openness": 0.9, "agreeableness": 0.5},
}

var defaultWeights = map[string]float64{"openness": 0.5, "conscientiousness": 0.5}

// RelevantInterests returns the interest types scored for a category.
// Unmapped categories fall back to investigative/realistic.
func RelevantInterests(category string) []string {
	if set, ok := interestRelevance[strings.ToLower(category)]; ok {
		return set
	}
	return defaultInterests
}

// TraitWeights returns the personality weights scored for a category.
func TraitWeights(category string) map[string]float64 {
	if w, ok := personalityWeights[strings.ToLower(category)]; ok {
		return w
	}
	return defaultWeights
}

// Categories lists the mapped categories of the taxonomy.
func Categories() []string {
	return []string{
		"technology", "healthcare", "business", "creative", "education",
		"science", "law", "government", "engineering", "design",
	}
}
