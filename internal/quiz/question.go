package quiz

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind names one of the closed set of question variants.
type Kind string

const (
	KindTrueFalse            Kind = "true_false"
	KindMultipleChoice       Kind = "multiple_choice"
	KindMultiSelect          Kind = "multi_select"
	KindFillInTheBlank       Kind = "fill_in_the_blank"
	KindMatchPairs           Kind = "match_pairs"
	KindInteractiveInterview Kind = "interactive_interview"
	KindTopicExplanation     Kind = "topic_explanation"
)

// Variant is the closed set of question shapes. Only types in this package
// implement it; validation matches exhaustively on the concrete type.
type Variant interface {
	Kind() Kind
	isVariant()
}

// TrueFalse asks whether a statement holds.
type TrueFalse struct {
	Statement     string  `json:"statement"`
	CorrectAnswer bool    `json:"correct_answer"`
	Explanation   *string `json:"explanation,omitempty"`
}

// MultipleChoice asks for exactly one option index.
type MultipleChoice struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  *string  `json:"explanation,omitempty"`
}

// MultiSelect asks for a set of option indices; order does not matter.
type MultiSelect struct {
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	CorrectIndices []int    `json:"correct_indices"`
	Explanation    *string  `json:"explanation,omitempty"`
}

// FillInTheBlank asks for one answer per {} placeholder in the template.
type FillInTheBlank struct {
	Template       string   `json:"template"`
	CorrectAnswers []string `json:"correct_answers"`
	CaseSensitive  bool     `json:"case_sensitive"`
	Explanation    *string  `json:"explanation,omitempty"`
}

// MatchPairs asks the learner to pair left items with right items.
type MatchPairs struct {
	Instruction  string   `json:"instruction"`
	LeftItems    []string `json:"left_items"`
	RightItems   []string `json:"right_items"`
	CorrectPairs []Pair   `json:"correct_pairs"`
	Explanation  *string  `json:"explanation,omitempty"`
}

// InteractiveInterview carries a conversational prompt whose grading happens
// outside this engine.
type InteractiveInterview struct {
	Topic                  string         `json:"topic"`
	InitialQuestion        string         `json:"initial_question"`
	FollowUpRules          []FollowUpRule `json:"follow_up_rules"`
	ComprehensionThreshold float64        `json:"comprehension_threshold"`
}

// TopicExplanation asks the learner to explain a topic in their own words;
// grading happens outside this engine.
type TopicExplanation struct {
	Topic        string   `json:"topic"`
	Prompt       string   `json:"prompt"`
	KeyConcepts  []string `json:"key_concepts"`
	MinWordCount int      `json:"min_word_count"`
}

func (TrueFalse) Kind() Kind            { return KindTrueFalse }
func (MultipleChoice) Kind() Kind       { return KindMultipleChoice }
func (MultiSelect) Kind() Kind          { return KindMultiSelect }
func (FillInTheBlank) Kind() Kind       { return KindFillInTheBlank }
func (MatchPairs) Kind() Kind           { return KindMatchPairs }
func (InteractiveInterview) Kind() Kind { return KindInteractiveInterview }
func (TopicExplanation) Kind() Kind     { return KindTopicExplanation }

func (TrueFalse) isVariant()            {}
func (MultipleChoice) isVariant()       {}
func (MultiSelect) isVariant()          {}
func (FillInTheBlank) isVariant()       {}
func (MatchPairs) isVariant()           {}
func (InteractiveInterview) isVariant() {}
func (TopicExplanation) isVariant()     {}

// Pair links a left item index to a right item index in a MatchPairs question.
type Pair struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

// FollowUpRule selects the next interview question when its condition matches
// the learner's response.
type FollowUpRule struct {
	Condition        string  `json:"condition"`
	FollowUpQuestion string  `json:"follow_up_question"`
	Weight           float64 `json:"weight"`
}

// Citation records where a question's content came from.
type Citation struct {
	ID         uuid.UUID `json:"id"`
	Source     string    `json:"source"`
	URL        *string   `json:"url,omitempty"`
	Excerpt    *string   `json:"excerpt,omitempty"`
	Confidence float64   `json:"confidence"`
}

// Question is a single assessment item.
type Question struct {
	ID uuid.UUID `json:"id"`

	// Variant carries the question's shape and correct answer.
	Variant Variant `json:"-"`

	TopicID uuid.UUID `json:"topic_id"`

	// Difficulty ranges from 0.0 (easiest) to 1.0 (hardest).
	Difficulty float64 `json:"difficulty"`

	EstimatedTimeSeconds int `json:"estimated_time_seconds"`

	Tags      []string       `json:"tags,omitempty"`
	Citations []Citation     `json:"citations,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultEstimatedTimeSeconds is the per-question time estimate applied by
// NewQuestion.
const DefaultEstimatedTimeSeconds = 60

// NewQuestion builds a question with a fresh id and default estimated time.
func NewQuestion(v Variant, topicID uuid.UUID, difficulty float64, opts ...Option) *Question {
	o := newOptions(opts)
	now := o.now()
	return &Question{
		ID:                   uuid.New(),
		Variant:              v,
		TopicID:              topicID,
		Difficulty:           difficulty,
		EstimatedTimeSeconds: DefaultEstimatedTimeSeconds,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// ValidateAnswer checks an answer against the question. It returns the
// correctness flag, or a ValidationError when the answer cannot be checked:
// a variant mismatch, an out-of-range option index, a wrong answer count, or
// a variant that only an external grader can score. It never mutates the
// question.
func (q *Question) ValidateAnswer(ans Answer) (bool, error) {
	switch v := q.Variant.(type) {
	case TrueFalse:
		a, ok := ans.(TrueFalseAnswer)
		if !ok {
			return false, ErrAnswerTypeMismatch
		}
		return bool(a) == v.CorrectAnswer, nil

	case MultipleChoice:
		a, ok := ans.(MultipleChoiceAnswer)
		if !ok {
			return false, ErrAnswerTypeMismatch
		}
		if int(a) < 0 || int(a) >= len(v.Options) {
			return false, ErrInvalidOptionIndex
		}
		return int(a) == v.CorrectIndex, nil

	case MultiSelect:
		a, ok := ans.(MultiSelectAnswer)
		if !ok {
			return false, ErrAnswerTypeMismatch
		}
		for _, idx := range a {
			if idx < 0 || idx >= len(v.Options) {
				return false, ErrInvalidOptionIndex
			}
		}
		return equalIndexSets(a, v.CorrectIndices), nil

	case FillInTheBlank:
		a, ok := ans.(FillInTheBlankAnswer)
		if !ok {
			return false, ErrAnswerTypeMismatch
		}
		if len(a) != len(v.CorrectAnswers) {
			return false, ErrWrongAnswerCount
		}
		for i, want := range v.CorrectAnswers {
			if v.CaseSensitive {
				if a[i] != want {
					return false, nil
				}
			} else if !strings.EqualFold(a[i], want) {
				return false, nil
			}
		}
		return true, nil

	case MatchPairs:
		a, ok := ans.(MatchPairsAnswer)
		if !ok {
			return false, ErrAnswerTypeMismatch
		}
		return equalPairSets(a, v.CorrectPairs), nil

	case InteractiveInterview:
		if _, ok := ans.(InteractiveAnswer); !ok {
			return false, ErrAnswerTypeMismatch
		}
		return false, ErrExternalGradingRequired

	case TopicExplanation:
		if _, ok := ans.(TopicExplanationAnswer); !ok {
			return false, ErrAnswerTypeMismatch
		}
		return false, ErrExternalGradingRequired

	default:
		return false, ErrAnswerTypeMismatch
	}
}

// ExplanationText returns the variant's explanation when it carries one.
// Interview and explanation variants have none.
func (q *Question) ExplanationText() *string {
	switch v := q.Variant.(type) {
	case TrueFalse:
		return v.Explanation
	case MultipleChoice:
		return v.Explanation
	case MultiSelect:
		return v.Explanation
	case FillInTheBlank:
		return v.Explanation
	case MatchPairs:
		return v.Explanation
	default:
		return nil
	}
}

// equalIndexSets compares two index lists ignoring order.
func equalIndexSets(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	as := slices.Clone(a)
	bs := slices.Clone(b)
	slices.Sort(as)
	slices.Sort(bs)
	return slices.Equal(as, bs)
}

// equalPairSets compares two pair lists ignoring order.
func equalPairSets(a, b []Pair) bool {
	if len(a) != len(b) {
		return false
	}
	cmp := func(x, y Pair) int {
		if x.Left != y.Left {
			return x.Left - y.Left
		}
		return x.Right - y.Right
	}
	as := slices.Clone(a)
	bs := slices.Clone(b)
	slices.SortFunc(as, cmp)
	slices.SortFunc(bs, cmp)
	return slices.Equal(as, bs)
}
