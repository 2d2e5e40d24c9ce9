// internal/recommendation/score_test.go
package recommendation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func career(id int64, title, category string) CareerDefinition {
	return CareerDefinition{
		ID:          id,
		Title:       title,
		Category:    category,
		Stream:      "science",
		SalaryRange: "6-12 LPA",
		Growth:      "High",
	}
}

func TestComputeMatchScore(t *testing.T) {
	tests := []struct {
		name     string
		career   CareerDefinition
		input    AssessmentInput
		jitter   Jitter
		expected float64
	}{
		{
			name:     "no assessment data scores the base",
			career:   career(1, "Software Engineer", "technology"),
			input:    AssessmentInput{},
			expected: 50,
		},
		{
			name:     "aptitude 85 on technology",
			career:   career(1, "Software Engineer", "technology"),
			input:    AssessmentInput{AptitudeScore: Float64(85)},
			expected: 67,
		},
		{
			name:   "relevant interests only",
			career: career(2, "Nurse", "healthcare"),
			input: AssessmentInput{
				InterestProfile: map[string]float64{"social": 50, "artistic": 100},
			},
			expected: 55,
		},
		{
			name:   "category and interest names are case insensitive",
			career: career(3, "Accountant", "Business"),
			input: AssessmentInput{
				InterestProfile: map[string]float64{"Enterprising": 40, "CONVENTIONAL": 60},
			},
			expected: 60,
		},
		{
			name:   "matching interests compound past twenty points",
			career: career(1, "Software Engineer", "technology"),
			input: AssessmentInput{
				InterestProfile: map[string]float64{
					"investigative": 100,
					"Investigative": 100,
					"realistic":     100,
				},
			},
			expected: 80,
		},
		{
			name:   "personality weights for law",
			career: career(4, "Lawyer", "law"),
			input: AssessmentInput{
				PersonalityProfile: map[string]float64{"conscientiousness": 100, "extraversion": 50, "openness": 100},
			},
			expected: 50 + 9 + 3,
		},
		{
			name:   "unmapped category uses default tables",
			career: career(5, "Farmer", "agriculture"),
			input: AssessmentInput{
				InterestProfile:    map[string]float64{"realistic": 40, "social": 100},
				PersonalityProfile: map[string]float64{"openness": 80, "conscientiousness": 60, "extraversion": 100},
			},
			expected: 50 + 4 + 4 + 3,
		},
		{
			name:     "jitter is added before clamping",
			career:   career(1, "Software Engineer", "technology"),
			input:    AssessmentInput{AptitudeScore: Float64(50)},
			jitter:   NewSequenceJitter(-2.5),
			expected: 57.5,
		},
		{
			name:   "clamped to the maximum",
			career: career(1, "Software Engineer", "technology"),
			input: AssessmentInput{
				AptitudeScore:      Float64(100),
				InterestProfile:    map[string]float64{"investigative": 100, "realistic": 100},
				PersonalityProfile: map[string]float64{"openness": 100, "conscientiousness": 100},
			},
			jitter:   NewSequenceJitter(3),
			expected: MaxScore,
		},
		{
			name:     "clamped to the minimum",
			career:   career(1, "Software Engineer", "technology"),
			input:    AssessmentInput{AptitudeScore: Float64(-100)},
			jitter:   NewSequenceJitter(-3),
			expected: MinScore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jitter := tt.jitter
			if jitter == nil {
				jitter = ZeroJitter{}
			}
			got := ComputeMatchScore(tt.career, tt.input, jitter)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestComputeMatchScore_AptitudeOnlyStaysInBand(t *testing.T) {
	c := career(1, "Data Analyst", "science")
	for apt := 0.0; apt <= 100; apt += 0.5 {
		got := ComputeMatchScore(c, AssessmentInput{AptitudeScore: Float64(apt)}, ZeroJitter{})
		assert.GreaterOrEqual(t, got, 50.0, "aptitude %v", apt)
		assert.LessOrEqual(t, got, 70.0, "aptitude %v", apt)
	}
}

func TestComputeMatchScore_AlwaysWithinBounds(t *testing.T) {
	values := []float64{-1000, -50, 0, 35, 70, 100, 250, 10000}
	jitter := NewRandomJitter(42)

	for _, category := range append(Categories(), "unknown", "") {
		for _, v := range values {
			input := AssessmentInput{
				AptitudeScore: Float64(v),
				InterestProfile: map[string]float64{
					"investigative": v, "realistic": v, "social": v,
					"artistic": v, "enterprising": v, "conventional": v,
				},
				PersonalityProfile: map[string]float64{
					"openness": v, "conscientiousness": v, "extraversion": v, "agreeableness": v,
				},
			}
			t.Run(fmt.Sprintf("%s/%v", category, v), func(t *testing.T) {
				got := ComputeMatchScore(career(1, "X", category), input, jitter)
				assert.GreaterOrEqual(t, got, MinScore)
				assert.LessOrEqual(t, got, MaxScore)
			})
		}
	}
}

func TestComputeMatchScore_NilJitter(t *testing.T) {
	got := ComputeMatchScore(career(1, "X", "design"), AssessmentInput{AptitudeScore: Float64(50)}, nil)
	assert.InDelta(t, 60.0, got, 1e-9)
}

func TestTables(t *testing.T) {
	assert.Equal(t, []string{"artistic", "realistic"}, RelevantInterests("DESIGN"))
	assert.Equal(t, []string{"investigative", "realistic"}, RelevantInterests("agriculture"))
	assert.Equal(t, map[string]float64{"agreeableness": 0.9, "conscientiousness": 0.8}, TraitWeights("Healthcare"))
	assert.Equal(t, map[string]float64{"openness": 0.5, "conscientiousness": 0.5}, TraitWeights("other"))

	for _, c := range Categories() {
		assert.Len(t, RelevantInterests(c), 2, c)
		assert.Len(t, TraitWeights(c), 2, c)
	}
}
