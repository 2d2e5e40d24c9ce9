// internal/recommendation/analysis.go
package recommendation

// RuleID names one entry of the strength/improvement message catalog.
type RuleID string

const (
	StrengthExcellentAptitude RuleID = "strength.excellent_aptitude"
	StrengthGoodAptitude      RuleID = "strength.good_aptitude"
	StrengthOpenness          RuleID = "strength.openness"
	StrengthOrganization      RuleID = "strength.organization"
	StrengthLeadership        RuleID = "strength.leadership"
	StrengthTeamwork          RuleID = "strength.teamwork"
	StrengthDiverseInterests  RuleID = "strength.diverse_interests"
	StrengthBalanced          RuleID = "strength.balanced"

	AreaAnalytical   RuleID = "area.analytical"
	AreaOrganization RuleID = "area.organization"
	AreaNetworking   RuleID = "area.networking"
	AreaContinue     RuleID = "area.continue"
)

var messages = map[RuleID]string{
	StrengthExcellentAptitude: "Excellent analytical and problem-solving abilities",
	StrengthGoodAptitude:      "Good logical reasoning skills",
	StrengthOpenness:          "High creativity and openness to new experiences",
	StrengthOrganization:      "Strong organizational and planning skills",
	StrengthLeadership:        "Excellent communication and leadership potential",
	StrengthTeamwork:          "Great teamwork and interpersonal skills",
	StrengthDiverseInterests:  "Diverse range of interests showing adaptability",
	StrengthBalanced:          "Balanced personality profile suitable for multiple career paths",

	AreaAnalytical:   "Consider strengthening analytical and problem-solving skills through practice",
	AreaOrganization: "Developing better organizational habits could support career growth",
	AreaNetworking:   "Building confidence in networking and public speaking may open more opportunities",
	AreaContinue:     "Continue developing skills in your area of interest for a competitive edge",
}

// Message returns the catalog text for a rule.
func Message(id RuleID) string {
	return messages[id]
}

const (
	excellentAptitude = 80.0
	goodAptitude      = 60.0
	highTrait         = 70.0
	weakAptitude      = 50.0
	lowConscientious  = 40.0
	lowExtraversion   = 30.0
	diverseInterests  = 3
)

// StrengthRules evaluates the strength rules in order and returns the IDs that fired.
func StrengthRules(input AssessmentInput) []RuleID {
	var ids []RuleID

	if input.AptitudeScore != nil {
		switch apt := *input.AptitudeScore; {
		case apt >= excellentAptitude:
			ids = append(ids, StrengthExcellentAptitude)
		case apt >= goodAptitude:
			ids = append(ids, StrengthGoodAptitude)
		}
	}

	if p := input.PersonalityProfile; p != nil {
		if traitOr(p, "openness", 0) >= highTrait {
			ids = append(ids, StrengthOpenness)
		}
		if traitOr(p, "conscientiousness", 0) >= highTrait {
			ids = append(ids, StrengthOrganization)
		}
		if traitOr(p, "extraversion", 0) >= highTrait {
			ids = append(ids, StrengthLeadership)
		}
		if traitOr(p, "agreeableness", 0) >= highTrait {
			ids = append(ids, StrengthTeamwork)
		}
	}

	if input.InterestProfile != nil {
		positive := 0
		for _, v := range input.InterestProfile {
			if v > 0 {
				positive++
			}
		}
		if positive >= diverseInterests {
			ids = append(ids, StrengthDiverseInterests)
		}
	}

	if len(ids) == 0 {
		ids = append(ids, StrengthBalanced)
	}
	return ids
}

// WeaknessRules evaluates the improvement rules in order and returns the IDs that fired.
func WeaknessRules(input AssessmentInput) []RuleID {
	var ids []RuleID

	if input.AptitudeScore != nil && *input.AptitudeScore < weakAptitude {
		ids = append(ids, AreaAnalytical)
	}

	if p := input.PersonalityProfile; p != nil {
		if traitOr(p, "conscientiousness", 50) < lowConscientious {
			ids = append(ids, AreaOrganization)
		}
		if traitOr(p, "extraversion", 50) < lowExtraversion {
			ids = append(ids, AreaNetworking)
		}
	}

	if len(ids) == 0 {
		ids = append(ids, AreaContinue)
	}
	return ids
}

// AnalyzeStrengths returns at least one strength message.
func AnalyzeStrengths(input AssessmentInput) []string {
	return render(StrengthRules(input))
}

// AnalyzeWeaknesses returns at least one area-to-improve message.
func AnalyzeWeaknesses(input AssessmentInput) []string {
	return render(WeaknessRules(input))
}

func render(ids []RuleID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = messages[id]
	}
	return out
}

func traitOr(profile map[string]float64, trait string, def float64) float64 {
	if v, ok := profile[trait]; ok {
		return v
	}
	return def
}
