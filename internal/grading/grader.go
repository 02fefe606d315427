package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quizlr/quizlr/internal/llm"
	"github.com/quizlr/quizlr/internal/quiz"
)

// VariantError indicates a question routed to the wrong grading method.
type VariantError struct {
	Want quiz.Kind
	Got  quiz.Kind
}

func (e *VariantError) Error() string {
	return fmt.Sprintf("grader wants a %s question, got %s", e.Want, e.Got)
}

// Grader scores explanation and interview answers using an LLM provider.
type Grader struct {
	provider llm.Provider
	config   Config
}

// New creates a Grader with the given provider and config.
func New(provider llm.Provider, cfg Config) *Grader {
	return &Grader{provider: provider, config: cfg}
}

// explanationOutput is the raw LLM response before merging.
type explanationOutput struct {
	ComprehensionScore float64  `json:"comprehension_score"`
	ConceptsCovered    []string `json:"concepts_covered"`
	MissedConcepts     []string `json:"missed_concepts"`
	Feedback           string   `json:"feedback"`
}

// interviewOutput is the raw LLM response for interview grading.
type interviewOutput struct {
	ComprehensionScore float64 `json:"comprehension_score"`
	Feedback           string  `json:"feedback"`
}

// GradeExplanation grades a written topic explanation. Deterministic checks
// run first: an explanation below the question's minimum word count fails
// without a model call, and the key concepts are scanned for literal
// mentions. Otherwise the model scores the text, and the final grade merges
// both signals: a concept counts as covered if either side found it, and the
// final score averages the model's score with the concept coverage ratio.
func (g *Grader) GradeExplanation(ctx context.Context, q *quiz.Question, ans quiz.TopicExplanationAnswer) (*ExplanationGrade, error) {
	v, ok := q.Variant.(quiz.TopicExplanation)
	if !ok {
		return nil, &VariantError{Want: quiz.KindTopicExplanation, Got: q.Variant.Kind()}
	}

	words := wordCount(ans.Explanation)
	if words < v.MinWordCount {
		covered, missed := splitConcepts(v.KeyConcepts, ans.Explanation, nil)
		return &ExplanationGrade{
			ConceptsCovered: covered,
			MissedConcepts:  missed,
			Feedback:        fmt.Sprintf("Your explanation is %d words; at least %d are required. Expand on the topic in your own words.", words, v.MinWordCount),
			WordCount:       words,
		}, nil
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeGradeExplanation)
	req := llm.Request{
		System:      explanationSystemPrompt,
		Messages:    []llm.Message{llm.UserMessage(buildExplanationMessage(v, ans))},
		Schema:      ExplanationGradeSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("grading explanation: %w", err)
	}

	var raw explanationOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parsing explanation grade: %w", err)
	}

	llmCovered := make(map[string]bool, len(raw.ConceptsCovered))
	for _, c := range raw.ConceptsCovered {
		llmCovered[strings.ToLower(c)] = true
	}
	covered, missed := splitConcepts(v.KeyConcepts, ans.Explanation, llmCovered)

	score := clamp01(raw.ComprehensionScore)
	if len(v.KeyConcepts) > 0 {
		coverage := float64(len(covered)) / float64(len(v.KeyConcepts))
		score = (score + coverage) / 2
	}

	return &ExplanationGrade{
		ComprehensionScore: score,
		ConceptsCovered:    covered,
		MissedConcepts:     missed,
		Feedback:           raw.Feedback,
		WordCount:          words,
		Passed:             score >= g.config.PassThreshold,
	}, nil
}

// GradeInterview grades an interview transcript. An empty transcript fails
// without a model call. Otherwise the model scores the learner's responses;
// Passed compares the score against the question's comprehension threshold,
// and FollowUp is selected from the follow-up rules by the last response.
func (g *Grader) GradeInterview(ctx context.Context, q *quiz.Question, ans quiz.InteractiveAnswer) (*InterviewGrade, error) {
	v, ok := q.Variant.(quiz.InteractiveInterview)
	if !ok {
		return nil, &VariantError{Want: quiz.KindInteractiveInterview, Got: q.Variant.Kind()}
	}

	if len(ans.Responses) == 0 {
		return &InterviewGrade{
			Feedback: "No responses to grade. Answer the interviewer's question to be scored.",
		}, nil
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeGradeInterview)
	req := llm.Request{
		System:      interviewSystemPrompt,
		Messages:    []llm.Message{llm.UserMessage(buildInterviewMessage(v, ans))},
		Schema:      InterviewGradeSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("grading interview: %w", err)
	}

	var raw interviewOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parsing interview grade: %w", err)
	}

	score := clamp01(raw.ComprehensionScore)
	return &InterviewGrade{
		ComprehensionScore: score,
		Feedback:           raw.Feedback,
		FollowUp:           NextFollowUp(v.FollowUpRules, ans.Responses[len(ans.Responses)-1]),
		Passed:             score >= v.ComprehensionThreshold,
	}, nil
}

// wordCount counts whitespace-separated words.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

// splitConcepts sorts key concepts into covered and missed, preserving the
// question's order. A concept is covered when the explanation mentions it
// (case-insensitive) or when alsoCovered marks its lowercase form.
func splitConcepts(concepts []string, explanation string, alsoCovered map[string]bool) (covered, missed []string) {
	text := strings.ToLower(explanation)
	for _, c := range concepts {
		if strings.Contains(text, strings.ToLower(c)) || alsoCovered[strings.ToLower(c)] {
			covered = append(covered, c)
		} else {
			missed = append(missed, c)
		}
	}
	return covered, missed
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
