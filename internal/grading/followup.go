package grading

import (
	"strings"

	"github.com/quizlr/quizlr/internal/quiz"
)

// NextFollowUp selects the follow-up question the rules choose for a
// response. The highest-weight rule whose condition appears in the response
// (case-insensitive) wins; on equal weights the earlier rule wins. Returns
// nil when no rule matches.
func NextFollowUp(rules []quiz.FollowUpRule, lastResponse string) *string {
	response := strings.ToLower(lastResponse)

	var best *quiz.FollowUpRule
	for i := range rules {
		r := &rules[i]
		if !strings.Contains(response, strings.ToLower(r.Condition)) {
			continue
		}
		if best == nil || r.Weight > best.Weight {
			best = r
		}
	}

	if best == nil {
		return nil
	}
	q := best.FollowUpQuestion
	return &q
}
