package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
)

const (
	distractorCount = 3
	optionCount     = distractorCount + 1
)

var ErrInsufficientDistractors = errors.New("not enough distinct answers to build distractors")

// OptionGenerator generates multiple choice options for quiz questions.
// It is safe for concurrent use.
type OptionGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewOptionGenerator creates a new option generator seeded with seed.
func NewOptionGenerator(seed int64) *OptionGenerator {
	return &OptionGenerator{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

// GenerateOptions returns 4 shuffled options: the correct answer and 3 wrong ones
// sampled without replacement from pool. Pool values equal to correct are skipped,
// other duplicates are kept.
func (g *OptionGenerator) GenerateOptions(correct string, pool []string) ([]string, error) {
	candidates := make([]string, 0, len(pool))
	for _, v := range pool {
		if v != correct {
			candidates = append(candidates, v)
		}
	}

	if len(candidates) < distractorCount {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientDistractors, distractorCount, len(candidates))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.shuffle(candidates)

	options := make([]string, 0, optionCount)
	options = append(options, candidates[:distractorCount]...)
	options = append(options, correct)

	g.shuffle(options)

	return options, nil
}

func (g *OptionGenerator) shuffle(s []string) {
	g.rnd.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}
