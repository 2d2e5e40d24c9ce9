// internal/recommendation/summary.go
package recommendation

import (
	"strconv"
	"strings"
)

const (
	summaryLead      = "Based on your comprehensive assessment results, "
	clauseStrong     = "you demonstrate strong analytical abilities. "
	clauseSolid      = "you show solid aptitude across multiple areas. "
	clauseGrowth     = "your overall profile suggests good potential with room for growth. "
	summaryClosing   = "We recommend exploring your top 3-5 career options in detail, including their educational requirements and growth potential."
	fallbackCareer   = "various fields"
	fallbackCategory = "multiple areas"
)

// GenerateSummary builds the narrative paragraph shown at the top of a report.
func GenerateSummary(input AssessmentInput, top []RecommendationEntry) string {
	career, category, match := fallbackCareer, fallbackCategory, 0.0
	if len(top) > 0 {
		career, category, match = top[0].Title, top[0].Category, top[0].MatchPercentage
	}

	var b strings.Builder
	b.WriteString(summaryLead)

	if input.AptitudeScore != nil {
		switch apt := *input.AptitudeScore; {
		case apt >= excellentAptitude:
			b.WriteString(clauseStrong)
		case apt >= goodAptitude:
			b.WriteString(clauseSolid)
		default:
			b.WriteString(clauseGrowth)
		}
	}

	b.WriteString("Your top recommended career is ")
	b.WriteString(career)
	b.WriteString(" with a ")
	b.WriteString(formatPercent(match))
	b.WriteString("% match score in the ")
	b.WriteString(category)
	b.WriteString(" field. ")
	b.WriteString(summaryClosing)

	return b.String()
}

// formatPercent prints the shortest form of a one-decimal percentage: 67, 71.5.
func formatPercent(v float64) string {
	return strconv.FormatFloat(round1(v), 'f', -1, 64)
}
