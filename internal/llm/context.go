package llm

import "context"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// Purpose labels for the grading flows, attached via WithPurpose.
const (
	PurposeGradeExplanation = "grading_explanation"
	PurposeGradeInterview   = "grading_interview"
)

// WithPurpose attaches a purpose label to the context for request logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom reads the purpose label back, "unknown" when none was set.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}
