package quiz

// Answer is one selectable option attached to a question.
type Answer struct {
	// Text is the option as shown to the user.
	Text string `json:"text"`

	// Correct marks the single correct option of its question.
	Correct bool `json:"correct"`
}

// Question is a parsed multiple-choice question. Questions are created only
// by the parser and are read-only afterward.
type Question struct {
	// Prompt is the question text shown to the user.
	Prompt string `json:"prompt"`

	// Answers holds at least one option, exactly one of which is correct.
	Answers []Answer `json:"answers"`
}

// CorrectAnswer returns the answer marked correct.
func (q Question) CorrectAnswer() (Answer, bool) {
	for _, a := range q.Answers {
		if a.Correct {
			return a, true
		}
	}
	return Answer{}, false
}

// IsCorrect reports whether text is the text of the correct answer.
func (q Question) IsCorrect(text string) bool {
	a, ok := q.CorrectAnswer()
	return ok && a.Text == text
}

// Has reports whether text is one of the question's options.
func (q Question) Has(text string) bool {
	for _, a := range q.Answers {
		if a.Text == text {
			return true
		}
	}
	return false
}

// Result is the final score of a completed quiz.
type Result struct {
	Score int `json:"score"`
	Total int `json:"total"`
}
