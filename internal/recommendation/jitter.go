// internal/recommendation/jitter.go
package recommendation

import (
	"math/rand"
	"sync"
)

const (
	MinJitter = -3.0
	MaxJitter = 3.0
)

// Jitter supplies the random adjustment added to each match score.
// Next must return a value in [MinJitter, MaxJitter].
type Jitter interface {
	Next() float64
}

// RandomJitter draws an integer in [-30,30] and divides it by ten,
// giving a uniform ±3 point spread at 0.1 granularity.
type RandomJitter struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomJitter(seed int64) *RandomJitter {
	return &RandomJitter{rnd: rand.New(rand.NewSource(seed))}
}

func (j *RandomJitter) Next() float64 {
	j.mu.Lock()
	n := j.rnd.Intn(61) - 30
	j.mu.Unlock()
	return float64(n) / 10
}

// ZeroJitter never perturbs a score.
type ZeroJitter struct{}

func (ZeroJitter) Next() float64 { return 0 }

// SequenceJitter replays a fixed list of draws, cycling when exhausted.
type SequenceJitter struct {
	mu     sync.Mutex
	values []float64
	pos    int
}

func NewSequenceJitter(values ...float64) *SequenceJitter {
	return &SequenceJitter{values: values}
}

func (j *SequenceJitter) Next() float64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.values) == 0 {
		return 0
	}
	v := j.values[j.pos%len(j.values)]
	j.pos++
	return clamp(v, MinJitter, MaxJitter)
}

// Reset rewinds the sequence to its first value.
func (j *SequenceJitter) Reset() {
	j.mu.Lock()
	j.pos = 0
	j.mu.Unlock()
}
