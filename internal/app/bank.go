package app

import (
	"math/rand"
	"time"

	"trivia-engine/internal/domain"
)

// QuestionBank holds the loaded question set and produces shuffled draws
// without replacement. It is the single source of randomness for question
// order and per-question option order.
type QuestionBank struct {
	questions []domain.Question
	rnd       *rand.Rand
}

func NewQuestionBank(questions []domain.Question) *QuestionBank {
	return NewQuestionBankWithRand(questions, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewQuestionBankWithRand allows deterministic shuffles in tests.
func NewQuestionBankWithRand(questions []domain.Question, rnd *rand.Rand) *QuestionBank {
	return &QuestionBank{questions: questions, rnd: rnd}
}

// Categories returns the distinct non-empty category labels in first-seen
// order, prefixed with the "All" wildcard.
func (b *QuestionBank) Categories() []string {
	seen := make(map[string]struct{}, len(b.questions))
	out := []string{domain.CategoryAll}
	for _, q := range b.questions {
		if q.Category == "" {
			continue
		}
		if _, ok := seen[q.Category]; ok {
			continue
		}
		seen[q.Category] = struct{}{}
		out = append(out, q.Category)
	}
	return out
}

// Draw filters by category, shuffles, and returns the first count questions.
// A pool shorter than count yields the full shuffled pool; the host decides
// how to handle a short round. An empty pool fails, as does a count below
// one — a round always holds at least one question.
func (b *QuestionBank) Draw(category string, count int) ([]domain.Question, error) {
	return b.DrawExcluding(category, count, nil)
}

// DrawExcluding is Draw with an exclusion set applied first; it guarantees
// the second team in sequential mode never repeats the first team's
// questions.
func (b *QuestionBank) DrawExcluding(category string, count int, excludeIDs map[string]struct{}) ([]domain.Question, error) {
	if count < 1 {
		return nil, domain.ErrInsufficientQuestions
	}
	pool := b.filter(category, excludeIDs)
	if len(pool) == 0 {
		return nil, domain.ErrInsufficientQuestions
	}
	b.shuffle(pool)
	if count < len(pool) {
		pool = pool[:count]
	}
	return pool, nil
}

func (b *QuestionBank) filter(category string, excludeIDs map[string]struct{}) []domain.Question {
	out := make([]domain.Question, 0, len(b.questions))
	for _, q := range b.questions {
		if category != domain.CategoryAll && q.Category != category {
			continue
		}
		if _, excluded := excludeIDs[q.ID]; excluded {
			continue
		}
		out = append(out, q)
	}
	return out
}

// shuffle is an in-place Fisher-Yates permutation.
func (b *QuestionBank) shuffle(qs []domain.Question) {
	for i := len(qs) - 1; i >= 1; i-- {
		j := b.rnd.Intn(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}

// ShuffleOptions returns a shuffled copy of a question's options, leaving
// the question itself untouched.
func (b *QuestionBank) ShuffleOptions(q domain.Question) []string {
	opts := make([]string, len(q.Options))
	copy(opts, q.Options)
	for i := len(opts) - 1; i >= 1; i-- {
		j := b.rnd.Intn(i + 1)
		opts[i], opts[j] = opts[j], opts[i]
	}
	return opts
}
