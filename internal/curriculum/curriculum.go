// Package curriculum groups quizzes into titled collections.
package curriculum

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Curriculum is an ordered collection of quizzes with shared metadata.
type Curriculum struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	QuizIDs     []uuid.UUID `json:"quiz_ids,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// New creates a curriculum with a fresh id.
func New(title, description string) *Curriculum {
	now := time.Now()
	return &Curriculum{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AddQuiz appends a quiz id and bumps UpdatedAt. Duplicate ids are ignored;
// the return value reports whether the id was added.
func (c *Curriculum) AddQuiz(id uuid.UUID) bool {
	if slices.Contains(c.QuizIDs, id) {
		return false
	}
	c.QuizIDs = append(c.QuizIDs, id)
	c.UpdatedAt = time.Now()
	return true
}
