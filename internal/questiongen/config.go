package questiongen

import "github.com/abhisek/quizcraft/internal/quiz"

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the LLM response. When zero it is
	// derived from the requested count with TokensPerQuestion.
	MaxTokens int

	// TokensPerQuestion sizes the budget for a request of n questions.
	TokensPerQuestion int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// Rand picks the correct answer of each parsed question.
	// Nil uses the package default source.
	Rand quiz.Rand
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		TokensPerQuestion: 120,
		Temperature:       0.7,
	}
}

func (c Config) maxTokens(count int) int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	per := c.TokensPerQuestion
	if per <= 0 {
		per = 120
	}
	// Room for a preamble the model may add anyway.
	return 200 + per*count
}
