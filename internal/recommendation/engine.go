// internal/recommendation/engine.go
package recommendation

// Engine turns assessment results and a career catalog into a Report.
// It holds no mutable state besides its jitter source and may be shared
// by concurrent callers when the jitter is safe for concurrent use.
type Engine struct {
	jitter Jitter
	topN   int
}

type Option func(*Engine)

// WithTopN lowers how many recommendations a report keeps. Values outside
// [1, DefaultTopN] are ignored.
func WithTopN(n int) Option {
	return func(e *Engine) {
		if n > 0 && n <= DefaultTopN {
			e.topN = n
		}
	}
}

// New builds an engine. A nil jitter disables score perturbation.
func New(jitter Jitter, opts ...Option) *Engine {
	if jitter == nil {
		jitter = ZeroJitter{}
	}
	e := &Engine{jitter: jitter, topN: DefaultTopN}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) TopN() int { return e.topN }

// Rank scores and orders the catalog for one student.
func (e *Engine) Rank(catalog []CareerDefinition, input AssessmentInput) []RecommendationEntry {
	return Rank(catalog, input, e.jitter, e.topN)
}

// GenerateReport runs ranking, strength analysis and summary generation over the same input.
func (e *Engine) GenerateReport(input AssessmentInput, catalog []CareerDefinition) Report {
	top := e.Rank(catalog, input)
	return Report{
		TopRecommendations: top,
		Strengths:          AnalyzeStrengths(input),
		AreasToImprove:     AnalyzeWeaknesses(input),
		Summary:            GenerateSummary(input, top),
	}
}
