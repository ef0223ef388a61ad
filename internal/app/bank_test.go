package app_test

import (
	"math/rand"
	"testing"

	"trivia-engine/internal/app"
	"trivia-engine/internal/domain"
)

func TestCategoriesFirstSeenOrder(t *testing.T) {
	bank := newTestBank()

	got := bank.Categories()
	want := []string{"All", "Science", "History", "Geography"}
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected category %q at %d, got %q", want[i], i, got[i])
		}
	}
}

func TestDrawNoDuplicatesAndCategoryRespected(t *testing.T) {
	bank := newTestBank()

	for trial := 0; trial < 20; trial++ {
		draw, err := bank.Draw("Science", 3)
		if err != nil {
			t.Fatalf("draw: %v", err)
		}
		seen := make(map[string]struct{})
		for _, q := range draw {
			if q.Category != "Science" {
				t.Fatalf("question %s outside category: %s", q.ID, q.Category)
			}
			if _, dup := seen[q.ID]; dup {
				t.Fatalf("duplicate question %s in draw", q.ID)
			}
			seen[q.ID] = struct{}{}
		}
	}
}

func TestDrawShortPoolReturnsFullPool(t *testing.T) {
	bank := newTestBank()

	draw, err := bank.Draw("Geography", 10)
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if len(draw) != 2 {
		t.Fatalf("expected the 2 geography questions, got %d", len(draw))
	}
}

func TestDrawRejectsNonPositiveCount(t *testing.T) {
	bank := newTestBank()

	for _, count := range []int{0, -1} {
		if _, err := bank.Draw(domain.CategoryAll, count); err != domain.ErrInsufficientQuestions {
			t.Fatalf("count %d: expected ErrInsufficientQuestions, got %v", count, err)
		}
	}
}

func TestDrawEmptyPoolFails(t *testing.T) {
	bank := newTestBank()

	if _, err := bank.Draw("Sports", 3); err != domain.ErrInsufficientQuestions {
		t.Fatalf("expected ErrInsufficientQuestions, got %v", err)
	}
}

func TestDrawExcludingDisjoint(t *testing.T) {
	bank := newTestBank()

	first, err := bank.Draw(domain.CategoryAll, 3)
	if err != nil {
		t.Fatalf("first draw: %v", err)
	}
	exclude := make(map[string]struct{})
	for _, q := range first {
		exclude[q.ID] = struct{}{}
	}

	second, err := bank.DrawExcluding(domain.CategoryAll, 3, exclude)
	if err != nil {
		t.Fatalf("second draw: %v", err)
	}
	for _, q := range second {
		if _, overlap := exclude[q.ID]; overlap {
			t.Fatalf("question %s repeated across draws", q.ID)
		}
	}
}

func TestDrawExcludingExhaustedPoolFails(t *testing.T) {
	bank := newTestBank()

	exclude := make(map[string]struct{})
	for _, id := range []string{"q1", "q2", "q3", "q4", "q5", "q6"} {
		exclude[id] = struct{}{}
	}
	if _, err := bank.DrawExcluding(domain.CategoryAll, 3, exclude); err != domain.ErrInsufficientQuestions {
		t.Fatalf("expected ErrInsufficientQuestions, got %v", err)
	}
}

func TestShuffleOptionsKeepsAll(t *testing.T) {
	bank := newTestBank()
	q := domain.Question{Options: []string{"a", "b", "c", "d"}}

	opts := bank.ShuffleOptions(q)
	if len(opts) != 4 {
		t.Fatalf("expected 4 options, got %d", len(opts))
	}
	seen := make(map[string]struct{})
	for _, o := range opts {
		seen[o] = struct{}{}
	}
	for _, o := range q.Options {
		if _, ok := seen[o]; !ok {
			t.Fatalf("option %q lost in shuffle", o)
		}
	}
}

func newTestBank() *app.QuestionBank {
	return app.NewQuestionBankWithRand(testQuestions(), rand.New(rand.NewSource(42)))
}

func testQuestions() []domain.Question {
	return []domain.Question{
		{ID: "q1", Category: "Science", Prompt: "S1", Options: []string{"a", "b"}, Answer: "a"},
		{ID: "q2", Category: "Science", Prompt: "S2", Options: []string{"a", "b"}, Answer: "b"},
		{ID: "q3", Category: "Science", Prompt: "S3", Options: []string{"a", "b"}, Answer: "a"},
		{ID: "q4", Category: "History", Prompt: "H1", Options: []string{"a", "b"}, Answer: "a"},
		{ID: "q5", Category: "Geography", Prompt: "G1", Options: []string{"a", "b"}, Answer: "b"},
		{ID: "q6", Category: "Geography", Prompt: "G2", Options: []string{"a", "b"}, Answer: "a"},
	}
}
