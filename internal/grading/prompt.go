package grading

import (
	"fmt"
	"strings"

	"github.com/quizlr/quizlr/internal/quiz"
)

const explanationSystemPrompt = `You grade a learner's written explanation of a topic.

Rules:
- Score comprehension from 0.0 (no understanding) to 1.0 (complete, accurate understanding).
- Judge substance over style; the wording does not need to match the key concepts verbatim.
- Sort every given key concept into concepts_covered or missed_concepts, copying each verbatim.
- Do not reward length; reward accuracy and completeness.
- Feedback is 1-3 sentences, addressed to the learner, naming the most important gap first.`

const interviewSystemPrompt = `You grade the learner's side of a topic interview transcript.

Rules:
- Score comprehension from 0.0 (no understanding) to 1.0 (complete, accurate understanding) across the whole transcript.
- Judge only the learner's responses; the interviewer's questions are context.
- A learner who corrects an earlier mistake in a later response is judged on the correction.
- Feedback is 1-3 sentences, addressed to the learner.`

// buildExplanationMessage constructs the user message for explanation grading.
func buildExplanationMessage(v quiz.TopicExplanation, ans quiz.TopicExplanationAnswer) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", v.Topic)
	fmt.Fprintf(&b, "Prompt: %s\n", v.Prompt)

	b.WriteString("Key concepts: ")
	if len(v.KeyConcepts) == 0 {
		b.WriteString("none listed")
	} else {
		b.WriteString(strings.Join(v.KeyConcepts, ", "))
	}
	b.WriteString("\n")

	b.WriteString("\nLearner's explanation:\n")
	b.WriteString(ans.Explanation)

	return b.String()
}

// buildInterviewMessage renders the transcript into a single user message.
// Interviewer turns after the first are reconstructed from the follow-up
// rules, so the model sees the same questions the interview flow asked.
func buildInterviewMessage(v quiz.InteractiveInterview, ans quiz.InteractiveAnswer) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", v.Topic)
	b.WriteString("\nTranscript:\n")
	fmt.Fprintf(&b, "Interviewer: %s\n", v.InitialQuestion)

	for i, r := range ans.Responses {
		fmt.Fprintf(&b, "Learner: %s\n", r)
		if i < len(ans.Responses)-1 {
			if next := NextFollowUp(v.FollowUpRules, r); next != nil {
				fmt.Fprintf(&b, "Interviewer: %s\n", *next)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
