package grading

// Config controls the behavior of the Grader.
type Config struct {
	// MaxTokens is the token budget for the grading response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0). Grading
	// defaults to 0.
	Temperature float64

	// PassThreshold is the minimum merged comprehension score for an
	// explanation to pass. Interviews carry their own threshold on the
	// question.
	PassThreshold float64
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     512,
		Temperature:   0,
		PassThreshold: 0.7,
	}
}
