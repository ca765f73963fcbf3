package questiongen

import (
	"errors"
	"fmt"
)

var (
	// ErrNoResponse is returned when the provider answers with no text.
	ErrNoResponse = errors.New("no response from API")

	// ErrNoQuestions is returned when the text parses to zero questions.
	ErrNoQuestions = errors.New("no questions generated")
)

// GenerationError wraps a failed generation with the request that caused it.
type GenerationError struct {
	Category string
	Count    int
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %d questions for %q: %v", e.Count, e.Category, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
