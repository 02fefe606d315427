package grading

import "github.com/quizlr/quizlr/internal/llm"

// ExplanationGradeSchema defines the JSON schema for explanation grading
// responses.
var ExplanationGradeSchema = &llm.Schema{
	Name:        "explanation-grade",
	Description: "Grade for a learner's written explanation of a topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"comprehension_score": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     1,
				"description": "How well the explanation demonstrates understanding, from 0.0 (none) to 1.0 (complete and accurate)",
			},
			"concepts_covered": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "The given key concepts the explanation demonstrably covers, verbatim from the provided list",
			},
			"missed_concepts": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "The given key concepts the explanation does not cover, verbatim from the provided list",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "1-3 sentences addressed to the learner, naming the most important gap first",
			},
		},
		"required":             []any{"comprehension_score", "concepts_covered", "missed_concepts", "feedback"},
		"additionalProperties": false,
	},
}

// InterviewGradeSchema defines the JSON schema for interview grading
// responses.
var InterviewGradeSchema = &llm.Schema{
	Name:        "interview-grade",
	Description: "Grade for the learner's side of a topic interview transcript",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"comprehension_score": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     1,
				"description": "How well the learner's responses demonstrate understanding, from 0.0 (none) to 1.0 (complete and accurate)",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "1-3 sentences addressed to the learner",
			},
		},
		"required":             []any{"comprehension_score", "feedback"},
		"additionalProperties": false,
	},
}
