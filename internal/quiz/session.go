package quiz

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// SessionState is a session's position in its lifecycle.
type SessionState string

const (
	StateNotStarted SessionState = "not_started"
	StateInProgress SessionState = "in_progress"
	StatePaused     SessionState = "paused"
	StateCompleted  SessionState = "completed"
	StateAbandoned  SessionState = "abandoned"
)

// QuestionResponse is the recorded outcome of one question within a session.
// Resubmissions merge into the same response: the answer and correctness are
// overwritten, the time accumulates, and the attempt count grows.
type QuestionResponse struct {
	QuestionID       uuid.UUID `json:"question_id"`
	Answer           Answer    `json:"-"`
	IsCorrect        bool      `json:"is_correct"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	Attempts         int       `json:"attempts"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

// Session is one learner's attempt at a quiz. It is mutated exclusively by
// its own state-machine operations; a guarded operation called from the wrong
// state returns a StateError and changes nothing. Sessions are not safe for
// concurrent use; hosts must serialize mutations per session.
type Session struct {
	ID     uuid.UUID  `json:"id"`
	QuizID uuid.UUID  `json:"quiz_id"`
	UserID *uuid.UUID `json:"user_id,omitempty"`

	State                SessionState       `json:"state"`
	CurrentQuestionIndex int                `json:"current_question_index"`
	Responses            []QuestionResponse `json:"responses"`

	// SkippedQuestions holds question indices, in skip order.
	SkippedQuestions []int `json:"skipped_questions"`

	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	// PauseDuration accumulates time spent paused; it is excluded from the
	// summary's duration.
	PauseDuration time.Duration `json:"pause_duration"`

	LastActivity time.Time      `json:"last_activity"`
	Metadata     map[string]any `json:"metadata,omitempty"`

	clock Clock
}

// NewSession creates a NotStarted session for a quiz. A nil userID records an
// anonymous attempt.
func NewSession(quizID uuid.UUID, userID *uuid.UUID, opts ...Option) *Session {
	o := newOptions(opts)
	return &Session{
		ID:               uuid.New(),
		QuizID:           quizID,
		UserID:           userID,
		State:            StateNotStarted,
		Responses:        []QuestionResponse{},
		SkippedQuestions: []int{},
		LastActivity:     o.now(),
		clock:            o.clock,
	}
}

// Start moves the session to InProgress. Valid only once, from NotStarted.
func (s *Session) Start() error {
	if s.State != StateNotStarted {
		return &StateError{Op: "start", State: s.State}
	}
	now := s.now()
	s.State = StateInProgress
	s.StartTime = &now
	s.LastActivity = now
	return nil
}

// Pause suspends an in-progress session.
func (s *Session) Pause() error {
	if s.State != StateInProgress {
		return &StateError{Op: "pause", State: s.State}
	}
	s.State = StatePaused
	s.LastActivity = s.now()
	return nil
}

// Resume reactivates a paused session, adding the time since the pause to the
// accumulated pause duration.
func (s *Session) Resume() error {
	if s.State != StatePaused {
		return &StateError{Op: "resume", State: s.State}
	}
	now := s.now()
	s.PauseDuration += now.Sub(s.LastActivity)
	s.State = StateInProgress
	s.LastActivity = now
	return nil
}

// SubmitAnswer validates the answer against the question and records the
// outcome, returning the correctness flag. A ValidationError aborts with the
// session unchanged. Resubmitting a question updates its existing response:
// +1 attempt, time added, answer and correctness overwritten.
func (s *Session) SubmitAnswer(question *Question, answer Answer, timeTakenSeconds int) (bool, error) {
	if s.State != StateInProgress {
		return false, &StateError{Op: "submit answer", State: s.State}
	}

	isCorrect, err := question.ValidateAnswer(answer)
	if err != nil {
		return false, err
	}

	now := s.now()
	idx := slices.IndexFunc(s.Responses, func(r QuestionResponse) bool {
		return r.QuestionID == question.ID
	})
	if idx >= 0 {
		r := &s.Responses[idx]
		r.Attempts++
		r.Answer = answer
		r.IsCorrect = isCorrect
		r.TimeTakenSeconds += timeTakenSeconds
		r.SubmittedAt = now
	} else {
		s.Responses = append(s.Responses, QuestionResponse{
			QuestionID:       question.ID,
			Answer:           answer,
			IsCorrect:        isCorrect,
			TimeTakenSeconds: timeTakenSeconds,
			Attempts:         1,
			SubmittedAt:      now,
		})
	}

	s.LastActivity = now
	return isCorrect, nil
}

// SkipQuestion marks the question at the given index as skipped. Valid from
// any state; repeat skips of the same index are no-ops.
func (s *Session) SkipQuestion(questionIndex int) {
	if !slices.Contains(s.SkippedQuestions, questionIndex) {
		s.SkippedQuestions = append(s.SkippedQuestions, questionIndex)
	}
	s.LastActivity = s.now()
}

// NextQuestion advances the question cursor. The index is not bounded by the
// quiz length; callers navigating past the end see it in their own lookup.
func (s *Session) NextQuestion() error {
	if s.State != StateInProgress {
		return &StateError{Op: "advance question", State: s.State}
	}
	s.CurrentQuestionIndex++
	s.LastActivity = s.now()
	return nil
}

// PreviousQuestion moves the question cursor back one position.
func (s *Session) PreviousQuestion() error {
	if s.State != StateInProgress {
		return &StateError{Op: "go back a question", State: s.State}
	}
	if s.CurrentQuestionIndex == 0 {
		return ErrAtFirstQuestion
	}
	s.CurrentQuestionIndex--
	s.LastActivity = s.now()
	return nil
}

// Complete finishes an in-progress session and returns its summary.
func (s *Session) Complete() (*SessionSummary, error) {
	if s.State != StateInProgress {
		return nil, &StateError{Op: "complete", State: s.State}
	}
	now := s.now()
	s.State = StateCompleted
	s.EndTime = &now
	summary := s.Summary()
	return &summary, nil
}

// Abandon ends the session unconditionally, from any state.
func (s *Session) Abandon() {
	now := s.now()
	s.State = StateAbandoned
	s.EndTime = &now
}

// Progress reports the fraction of the quiz answered so far. Skipped
// questions do not count toward progress.
func (s *Session) Progress(totalQuestions int) float64 {
	if totalQuestions == 0 {
		return 0
	}
	return float64(len(s.Responses)) / float64(totalQuestions)
}

func (s *Session) now() time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return time.Now()
}
