package grading

import (
	"strings"
	"testing"

	"github.com/quizlr/quizlr/internal/quiz"
)

func TestBuildExplanationMessage(t *testing.T) {
	v := quiz.TopicExplanation{
		Topic:       "Recursion",
		Prompt:      "Explain recursion in your own words.",
		KeyConcepts: []string{"base case", "call stack"},
	}
	ans := quiz.TopicExplanationAnswer{Explanation: "A function calls itself."}

	msg := buildExplanationMessage(v, ans)

	for _, want := range []string{
		"Topic: Recursion",
		"Prompt: Explain recursion in your own words.",
		"Key concepts: base case, call stack",
		"Learner's explanation:",
		"A function calls itself.",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildExplanationMessage_NoConcepts(t *testing.T) {
	v := quiz.TopicExplanation{Topic: "Recursion", Prompt: "Explain."}
	msg := buildExplanationMessage(v, quiz.TopicExplanationAnswer{Explanation: "x"})

	if !strings.Contains(msg, "Key concepts: none listed") {
		t.Errorf("expected 'none listed' marker:\n%s", msg)
	}
}

func TestBuildInterviewMessage_ReconstructsFollowUps(t *testing.T) {
	v := quiz.InteractiveInterview{
		Topic:           "Recursion",
		InitialQuestion: "What happens when a function calls itself?",
		FollowUpRules: []quiz.FollowUpRule{
			{Condition: "stack", FollowUpQuestion: "How deep can the stack go?", Weight: 0.9},
		},
	}
	ans := quiz.InteractiveAnswer{Responses: []string{
		"It pushes a frame on the stack.",
		"Until the stack overflows or the base case returns.",
	}}

	msg := buildInterviewMessage(v, ans)

	want := "Topic: Recursion\n" +
		"\nTranscript:\n" +
		"Interviewer: What happens when a function calls itself?\n" +
		"Learner: It pushes a frame on the stack.\n" +
		"Interviewer: How deep can the stack go?\n" +
		"Learner: Until the stack overflows or the base case returns."
	if msg != want {
		t.Errorf("unexpected transcript:\n%s\n\nwant:\n%s", msg, want)
	}
}

func TestBuildInterviewMessage_NoRuleMatch(t *testing.T) {
	v := quiz.InteractiveInterview{
		Topic:           "Recursion",
		InitialQuestion: "What happens when a function calls itself?",
		FollowUpRules: []quiz.FollowUpRule{
			{Condition: "stack", FollowUpQuestion: "How deep can the stack go?", Weight: 0.9},
		},
	}
	ans := quiz.InteractiveAnswer{Responses: []string{
		"It repeats the work.",
		"Eventually it stops.",
	}}

	msg := buildInterviewMessage(v, ans)

	// No condition matched, so no interviewer turn between the responses.
	if strings.Contains(msg, "How deep can the stack go?") {
		t.Errorf("unexpected follow-up in transcript:\n%s", msg)
	}
	if !strings.HasSuffix(msg, "Learner: Eventually it stops.") {
		t.Errorf("transcript should end on the learner's last response:\n%s", msg)
	}
}
