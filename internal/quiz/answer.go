package quiz

// Answer is the closed set of submitted-answer shapes, one per question
// variant. Only types in this package implement it.
type Answer interface {
	AnswerKind() Kind
	isAnswer()
}

// TrueFalseAnswer is the learner's true/false choice.
type TrueFalseAnswer bool

// MultipleChoiceAnswer is the chosen option index.
type MultipleChoiceAnswer int

// MultiSelectAnswer is the set of chosen option indices.
type MultiSelectAnswer []int

// FillInTheBlankAnswer holds one entry per blank, in template order.
type FillInTheBlankAnswer []string

// MatchPairsAnswer is the submitted left/right pairing.
type MatchPairsAnswer []Pair

// InteractiveAnswer is the transcript of an interview exchange.
type InteractiveAnswer struct {
	Responses        []string `json:"responses"`
	TimeTakenSeconds int      `json:"time_taken_seconds"`
}

// TopicExplanationAnswer is the learner's free-form explanation.
type TopicExplanationAnswer struct {
	Explanation      string `json:"explanation"`
	TimeTakenSeconds int    `json:"time_taken_seconds"`
}

func (TrueFalseAnswer) AnswerKind() Kind        { return KindTrueFalse }
func (MultipleChoiceAnswer) AnswerKind() Kind   { return KindMultipleChoice }
func (MultiSelectAnswer) AnswerKind() Kind      { return KindMultiSelect }
func (FillInTheBlankAnswer) AnswerKind() Kind   { return KindFillInTheBlank }
func (MatchPairsAnswer) AnswerKind() Kind       { return KindMatchPairs }
func (InteractiveAnswer) AnswerKind() Kind      { return KindInteractiveInterview }
func (TopicExplanationAnswer) AnswerKind() Kind { return KindTopicExplanation }

func (TrueFalseAnswer) isAnswer()        {}
func (MultipleChoiceAnswer) isAnswer()   {}
func (MultiSelectAnswer) isAnswer()      {}
func (FillInTheBlankAnswer) isAnswer()   {}
func (MatchPairsAnswer) isAnswer()       {}
func (InteractiveAnswer) isAnswer()      {}
func (TopicExplanationAnswer) isAnswer() {}
