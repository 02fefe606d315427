package quiz

import "slices"

// Builder assembles a quiz through a chained, value-style API. Derived fields
// stay consistent because question mutations go through the Quiz methods.
type Builder struct {
	quiz Quiz
}

// NewBuilder starts a builder for a quiz with the given title.
func NewBuilder(title string, opts ...Option) Builder {
	return Builder{quiz: *NewQuiz(title, opts...)}
}

// Description sets the quiz description.
func (b Builder) Description(desc string) Builder {
	b.quiz.Description = &desc
	return b
}

// PassThreshold sets the pass threshold, clamped to [0, 1].
func (b Builder) PassThreshold(threshold float64) Builder {
	b.quiz.PassThreshold = clamp(threshold, 0, 1)
	return b
}

// AllowSkip sets whether learners may skip questions.
func (b Builder) AllowSkip(allow bool) Builder {
	b.quiz.AllowSkip = allow
	return b
}

// ShowExplanations sets whether explanations are revealed after answering.
func (b Builder) ShowExplanations(show bool) Builder {
	b.quiz.ShowExplanations = show
	return b
}

// RandomizeQuestions sets whether QuestionsForSession shuffles.
func (b Builder) RandomizeQuestions(randomize bool) Builder {
	b.quiz.RandomizeQuestions = randomize
	return b
}

// RandomizeOptions sets the option-shuffling flag carried by the quiz.
func (b Builder) RandomizeOptions(randomize bool) Builder {
	b.quiz.RandomizeOptions = randomize
	return b
}

// AddQuestion appends one question.
func (b Builder) AddQuestion(question Question) Builder {
	b.quiz.AddQuestion(question)
	return b
}

// AddQuestions appends questions in order.
func (b Builder) AddQuestions(questions ...Question) Builder {
	for _, question := range questions {
		b.quiz.AddQuestion(question)
	}
	return b
}

// Tag adds a tag unless already present.
func (b Builder) Tag(tag string) Builder {
	if !slices.Contains(b.quiz.Tags, tag) {
		b.quiz.Tags = append(b.quiz.Tags, tag)
	}
	return b
}

// Meta sets one metadata entry.
func (b Builder) Meta(key string, value any) Builder {
	b.quiz.Metadata[key] = value
	return b
}

// Build returns the assembled quiz.
func (b Builder) Build() *Quiz {
	quiz := b.quiz
	return &quiz
}
