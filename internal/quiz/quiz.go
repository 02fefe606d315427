package quiz

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Quiz-level defaults applied by NewQuiz.
const (
	DefaultPassThreshold            = 0.7
	DefaultEstimatedDurationMinutes = 30
)

// DifficultyRange is the min/max difficulty across a quiz's questions.
type DifficultyRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Quiz is an ordered collection of questions plus derived metadata. It is
// mutated only through AddQuestion and RemoveQuestion, which keep the derived
// fields (topic set, difficulty range, duration estimate) consistent.
type Quiz struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Questions   []Question `json:"questions"`

	// TopicIDs is the set of topics referenced by the current questions,
	// in first-seen order.
	TopicIDs []uuid.UUID `json:"topic_ids"`

	DifficultyRange          DifficultyRange `json:"difficulty_range"`
	EstimatedDurationMinutes int             `json:"estimated_duration_minutes"`

	// PassThreshold is the score fraction required to pass, in [0, 1].
	PassThreshold float64 `json:"pass_threshold"`

	AllowSkip          bool `json:"allow_skip"`
	ShowExplanations   bool `json:"show_explanations"`
	RandomizeQuestions bool `json:"randomize_questions"`

	// RandomizeOptions is carried as configuration; per-option shuffling is
	// not applied by QuestionsForSession.
	RandomizeOptions bool `json:"randomize_options"`

	Tags     []string       `json:"tags,omitempty"`
	Metadata map[string]any `json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	clock Clock
	rng   *rand.Rand
}

// NewQuiz creates an empty quiz with the default configuration.
func NewQuiz(title string, opts ...Option) *Quiz {
	o := newOptions(opts)
	now := o.now()
	return &Quiz{
		ID:                       uuid.New(),
		Title:                    title,
		Questions:                []Question{},
		TopicIDs:                 []uuid.UUID{},
		DifficultyRange:          DifficultyRange{Min: 0, Max: 1},
		EstimatedDurationMinutes: DefaultEstimatedDurationMinutes,
		PassThreshold:            DefaultPassThreshold,
		AllowSkip:                true,
		ShowExplanations:         true,
		Metadata:                 map[string]any{},
		CreatedAt:                now,
		UpdatedAt:                now,
		clock:                    o.clock,
		rng:                      o.rng,
	}
}

// AddQuestion appends a question and refreshes the derived fields.
func (q *Quiz) AddQuestion(question Question) {
	if !slices.Contains(q.TopicIDs, question.TopicID) {
		q.TopicIDs = append(q.TopicIDs, question.TopicID)
	}
	q.Questions = append(q.Questions, question)
	q.refreshDerived()
	q.UpdatedAt = q.now()
}

// RemoveQuestion removes the first question with the given id and returns it.
// The topic set is rebuilt from the remaining questions, so a topic with no
// remaining question drops out. Returns a NotFoundError, with the quiz
// unchanged, when the id is unknown.
func (q *Quiz) RemoveQuestion(id uuid.UUID) (Question, error) {
	idx := slices.IndexFunc(q.Questions, func(question Question) bool {
		return question.ID == id
	})
	if idx < 0 {
		return Question{}, &NotFoundError{Kind: "question", ID: id}
	}
	removed := q.Questions[idx]
	q.Questions = slices.Delete(q.Questions, idx, idx+1)
	q.rebuildTopics()
	q.refreshDerived()
	q.UpdatedAt = q.now()
	return removed, nil
}

// QuestionsForSession returns a copy of the question list, shuffled when
// RandomizeQuestions is set. Shuffling draws from the injected random source
// so session ordering is reproducible under test.
func (q *Quiz) QuestionsForSession() []Question {
	questions := slices.Clone(q.Questions)
	if q.RandomizeQuestions {
		r := q.rng
		if r == nil {
			r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		r.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}
	return questions
}

func (q *Quiz) refreshDerived() {
	if len(q.Questions) == 0 {
		q.DifficultyRange = DifficultyRange{Min: 0, Max: 1}
	} else {
		r := DifficultyRange{Min: 1, Max: 0}
		for _, question := range q.Questions {
			r.Min = min(r.Min, question.Difficulty)
			r.Max = max(r.Max, question.Difficulty)
		}
		q.DifficultyRange = r
	}

	total := 0
	for _, question := range q.Questions {
		total += question.EstimatedTimeSeconds
	}
	q.EstimatedDurationMinutes = max(1, total/60)
}

func (q *Quiz) rebuildTopics() {
	topics := make([]uuid.UUID, 0, len(q.TopicIDs))
	for _, question := range q.Questions {
		if !slices.Contains(topics, question.TopicID) {
			topics = append(topics, question.TopicID)
		}
	}
	q.TopicIDs = topics
}

func (q *Quiz) now() time.Time {
	if q.clock != nil {
		return q.clock()
	}
	return time.Now()
}
