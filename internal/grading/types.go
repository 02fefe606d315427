// Package grading scores the two question variants the quiz engine refuses
// to grade itself: topic explanations and interactive interviews. It combines
// deterministic checks (word counts, key-concept scans, follow-up rules) with
// a model's judgment obtained through the llm package.
package grading

// ExplanationGrade is the outcome of grading a written topic explanation.
type ExplanationGrade struct {
	// ComprehensionScore ranges from 0.0 (no understanding) to 1.0. It
	// merges the model's score with the share of key concepts the
	// explanation covers.
	ComprehensionScore float64 `json:"comprehension_score"`

	// ConceptsCovered lists the question's key concepts the explanation
	// demonstrates, in the question's order.
	ConceptsCovered []string `json:"concepts_covered"`

	// MissedConcepts lists the key concepts the explanation does not cover.
	MissedConcepts []string `json:"missed_concepts"`

	// Feedback is 1-3 sentences addressed to the learner.
	Feedback string `json:"feedback"`

	// WordCount is the length of the explanation in words.
	WordCount int `json:"word_count"`

	// Passed reports whether ComprehensionScore met the pass threshold.
	Passed bool `json:"passed"`
}

// InterviewGrade is the outcome of grading an interview transcript.
type InterviewGrade struct {
	// ComprehensionScore ranges from 0.0 (no understanding) to 1.0.
	ComprehensionScore float64 `json:"comprehension_score"`

	// Feedback is 1-3 sentences addressed to the learner.
	Feedback string `json:"feedback"`

	// FollowUp is the next question the follow-up rules select from the
	// learner's last response. Nil when no rule matches.
	FollowUp *string `json:"follow_up,omitempty"`

	// Passed reports whether ComprehensionScore met the question's
	// comprehension threshold.
	Passed bool `json:"passed"`
}
