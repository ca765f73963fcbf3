package quiz

import (
	"math/rand/v2"
	"strings"
)

// Rand is the random source used to pick correct answers.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// globalRand adapts the math/rand/v2 top-level functions to Rand.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Parser turns loosely-structured generated text into questions.
type Parser struct {
	rng Rand
}

// NewParser returns a Parser drawing correct-answer positions from rng.
// A nil rng uses the math/rand/v2 global source.
func NewParser(rng Rand) *Parser {
	if rng == nil {
		rng = globalRand{}
	}
	return &Parser{rng: rng}
}

// Parse parses raw with the global random source.
func Parse(raw string) []Question {
	return NewParser(nil).Parse(raw)
}

// Parse converts raw text into an ordered list of questions. It never fails:
// unrecognized lines are skipped and prompts without any answer lines are
// dropped. An empty result means nothing usable was found.
func (p *Parser) Parse(raw string) []Question {
	var (
		questions []Question
		prompt    string
		answers   []string
	)

	// A prompt with no text never becomes a question.
	finalize := func() {
		if prompt != "" && len(answers) > 0 {
			questions = append(questions, p.build(prompt, answers))
		}
		answers = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kind, text := classifyLine(cleanLine(line))
		switch kind {
		case linePrompt:
			finalize()
			prompt = text
		case lineAnswer:
			if prompt != "" {
				answers = append(answers, text)
			}
		}
	}
	finalize()

	return questions
}

// build assigns correctness by position so duplicate texts stay distinct.
func (p *Parser) build(prompt string, texts []string) Question {
	correct := p.rng.IntN(len(texts))
	answers := make([]Answer, len(texts))
	for i, t := range texts {
		answers[i] = Answer{Text: t, Correct: i == correct}
	}
	return Question{Prompt: prompt, Answers: answers}
}
