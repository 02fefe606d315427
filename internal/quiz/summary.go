package quiz

import (
	"time"

	"github.com/google/uuid"
)

// SessionSummary is the derived report over a session's responses and skips.
type SessionSummary struct {
	SessionID uuid.UUID `json:"session_id"`
	QuizID    uuid.UUID `json:"quiz_id"`

	// Score is correct answers over total questions seen (answered + skipped).
	Score float64 `json:"score"`

	CorrectAnswers   int `json:"correct_answers"`
	TotalQuestions   int `json:"total_questions"`
	SkippedQuestions int `json:"skipped_questions"`
	TotalTimeSeconds int `json:"total_time_seconds"`

	// Duration is wall time from start to end (or to now for an open
	// session), with pauses excluded.
	Duration time.Duration `json:"duration"`

	// AverageTimePerQuestion is integer seconds per answered question.
	AverageTimePerQuestion int `json:"average_time_per_question"`

	// CompletionRate is answered over total questions seen.
	CompletionRate float64 `json:"completion_rate"`
}

// Summary derives the session report. It can be computed at any point; all
// zero-denominator cases degrade to 0 rather than erroring.
func (s *Session) Summary() SessionSummary {
	answered := len(s.Responses)
	skipped := len(s.SkippedQuestions)
	total := answered + skipped

	correct := 0
	totalTime := 0
	for _, r := range s.Responses {
		if r.IsCorrect {
			correct++
		}
		totalTime += r.TimeTakenSeconds
	}

	var score float64
	if total > 0 {
		score = float64(correct) / float64(total)
	}

	var duration time.Duration
	if s.StartTime != nil {
		end := s.now()
		if s.EndTime != nil {
			end = *s.EndTime
		}
		duration = end.Sub(*s.StartTime) - s.PauseDuration
	}

	average := 0
	if answered > 0 {
		average = totalTime / answered
	}

	var completion float64
	if total > 0 {
		completion = float64(answered) / float64(total)
	}

	return SessionSummary{
		SessionID:              s.ID,
		QuizID:                 s.QuizID,
		Score:                  score,
		CorrectAnswers:         correct,
		TotalQuestions:         total,
		SkippedQuestions:       skipped,
		TotalTimeSeconds:       totalTime,
		Duration:               duration,
		AverageTimePerQuestion: average,
		CompletionRate:         completion,
	}
}

// Passed reports whether the score meets a quiz's pass threshold.
func (s SessionSummary) Passed(threshold float64) bool {
	return s.Score >= threshold
}

// Grade maps the score to a letter grade.
func (s SessionSummary) Grade() string {
	switch {
	case s.Score >= 0.9:
		return "A"
	case s.Score >= 0.8:
		return "B"
	case s.Score >= 0.7:
		return "C"
	case s.Score >= 0.6:
		return "D"
	default:
		return "F"
	}
}
