package curriculum

import (
	"testing"

	"github.com/google/uuid"
)

func TestNew(t *testing.T) {
	c := New("Go Basics", "Syntax through goroutines")

	if c.ID == uuid.Nil {
		t.Error("expected a fresh id")
	}
	if c.Title != "Go Basics" || c.Description != "Syntax through goroutines" {
		t.Errorf("unexpected metadata: %+v", c)
	}
	if !c.UpdatedAt.Equal(c.CreatedAt) {
		t.Error("expected UpdatedAt == CreatedAt on creation")
	}
	if len(c.QuizIDs) != 0 {
		t.Errorf("expected no quizzes, got %v", c.QuizIDs)
	}
}

func TestAddQuiz_DedupAndOrder(t *testing.T) {
	c := New("Go Basics", "")
	first, second := uuid.New(), uuid.New()

	if !c.AddQuiz(first) {
		t.Error("expected first add to report true")
	}
	if !c.AddQuiz(second) {
		t.Error("expected second add to report true")
	}
	if c.AddQuiz(first) {
		t.Error("expected duplicate add to report false")
	}

	if len(c.QuizIDs) != 2 {
		t.Fatalf("expected 2 quiz ids, got %d", len(c.QuizIDs))
	}
	if c.QuizIDs[0] != first || c.QuizIDs[1] != second {
		t.Error("insertion order not preserved")
	}
	if c.UpdatedAt.Before(c.CreatedAt) {
		t.Error("UpdatedAt moved backwards")
	}
}
