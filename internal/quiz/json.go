package quiz

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Variants cross the wire as adjacently tagged unions:
//
//	{"type": "multiple_choice", "data": {"question": ..., "options": [...]}}
//
// The tag closes the set: decoding an unknown tag fails instead of guessing.

type envelope struct {
	Type Kind            `json:"type"`
	Data json.RawMessage `json:"data"`
}

func marshalVariant(v Variant) (envelope, error) {
	if v == nil {
		return envelope{}, fmt.Errorf("question has no variant")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return envelope{}, err
	}
	return envelope{Type: v.Kind(), Data: data}, nil
}

func unmarshalVariant(env envelope) (Variant, error) {
	switch env.Type {
	case KindTrueFalse:
		var v TrueFalse
		return v, json.Unmarshal(env.Data, &v)
	case KindMultipleChoice:
		var v MultipleChoice
		return v, json.Unmarshal(env.Data, &v)
	case KindMultiSelect:
		var v MultiSelect
		return v, json.Unmarshal(env.Data, &v)
	case KindFillInTheBlank:
		var v FillInTheBlank
		return v, json.Unmarshal(env.Data, &v)
	case KindMatchPairs:
		var v MatchPairs
		return v, json.Unmarshal(env.Data, &v)
	case KindInteractiveInterview:
		var v InteractiveInterview
		return v, json.Unmarshal(env.Data, &v)
	case KindTopicExplanation:
		var v TopicExplanation
		return v, json.Unmarshal(env.Data, &v)
	default:
		return nil, fmt.Errorf("unknown question kind %q", env.Type)
	}
}

func marshalAnswer(a Answer) (envelope, error) {
	if a == nil {
		return envelope{}, fmt.Errorf("response has no answer")
	}
	data, err := json.Marshal(a)
	if err != nil {
		return envelope{}, err
	}
	return envelope{Type: a.AnswerKind(), Data: data}, nil
}

func unmarshalAnswer(env envelope) (Answer, error) {
	switch env.Type {
	case KindTrueFalse:
		var a TrueFalseAnswer
		return a, json.Unmarshal(env.Data, &a)
	case KindMultipleChoice:
		var a MultipleChoiceAnswer
		return a, json.Unmarshal(env.Data, &a)
	case KindMultiSelect:
		var a MultiSelectAnswer
		return a, json.Unmarshal(env.Data, &a)
	case KindFillInTheBlank:
		var a FillInTheBlankAnswer
		return a, json.Unmarshal(env.Data, &a)
	case KindMatchPairs:
		var a MatchPairsAnswer
		return a, json.Unmarshal(env.Data, &a)
	case KindInteractiveInterview:
		var a InteractiveAnswer
		return a, json.Unmarshal(env.Data, &a)
	case KindTopicExplanation:
		var a TopicExplanationAnswer
		return a, json.Unmarshal(env.Data, &a)
	default:
		return nil, fmt.Errorf("unknown answer kind %q", env.Type)
	}
}

// questionJSON is the wire form of Question.
type questionJSON struct {
	ID                   uuid.UUID      `json:"id"`
	QuestionType         envelope       `json:"question_type"`
	TopicID              uuid.UUID      `json:"topic_id"`
	Difficulty           float64        `json:"difficulty"`
	EstimatedTimeSeconds int            `json:"estimated_time_seconds"`
	Tags                 []string       `json:"tags,omitempty"`
	Citations            []Citation     `json:"citations,omitempty"`
	Metadata             map[string]any `json:"metadata,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	env, err := marshalVariant(q.Variant)
	if err != nil {
		return nil, err
	}
	return json.Marshal(questionJSON{
		ID:                   q.ID,
		QuestionType:         env,
		TopicID:              q.TopicID,
		Difficulty:           q.Difficulty,
		EstimatedTimeSeconds: q.EstimatedTimeSeconds,
		Tags:                 q.Tags,
		Citations:            q.Citations,
		Metadata:             q.Metadata,
		CreatedAt:            q.CreatedAt,
		UpdatedAt:            q.UpdatedAt,
	})
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var w questionJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	v, err := unmarshalVariant(w.QuestionType)
	if err != nil {
		return err
	}
	*q = Question{
		ID:                   w.ID,
		Variant:              v,
		TopicID:              w.TopicID,
		Difficulty:           w.Difficulty,
		EstimatedTimeSeconds: w.EstimatedTimeSeconds,
		Tags:                 w.Tags,
		Citations:            w.Citations,
		Metadata:             w.Metadata,
		CreatedAt:            w.CreatedAt,
		UpdatedAt:            w.UpdatedAt,
	}
	return nil
}

// questionResponseJSON is the wire form of QuestionResponse.
type questionResponseJSON struct {
	QuestionID       uuid.UUID `json:"question_id"`
	Answer           envelope  `json:"answer"`
	IsCorrect        bool      `json:"is_correct"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	Attempts         int       `json:"attempts"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

func (r QuestionResponse) MarshalJSON() ([]byte, error) {
	env, err := marshalAnswer(r.Answer)
	if err != nil {
		return nil, err
	}
	return json.Marshal(questionResponseJSON{
		QuestionID:       r.QuestionID,
		Answer:           env,
		IsCorrect:        r.IsCorrect,
		TimeTakenSeconds: r.TimeTakenSeconds,
		Attempts:         r.Attempts,
		SubmittedAt:      r.SubmittedAt,
	})
}

func (r *QuestionResponse) UnmarshalJSON(data []byte) error {
	var w questionResponseJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	a, err := unmarshalAnswer(w.Answer)
	if err != nil {
		return err
	}
	*r = QuestionResponse{
		QuestionID:       w.QuestionID,
		Answer:           a,
		IsCorrect:        w.IsCorrect,
		TimeTakenSeconds: w.TimeTakenSeconds,
		Attempts:         w.Attempts,
		SubmittedAt:      w.SubmittedAt,
	}
	return nil
}
