package questiongen

import (
	"context"
	"errors"

	"github.com/abhisek/quizcraft/internal/llm"
	"github.com/abhisek/quizcraft/internal/quiz"
)

// LLMGenerator turns a category and count into parsed quiz questions by
// prompting an LLM provider for numbered text.
type LLMGenerator struct {
	provider llm.Provider
	parser   *quiz.Parser
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{
		provider: provider,
		parser:   quiz.NewParser(cfg.Rand),
		config:   cfg,
	}
}

// Generate asks for count questions about category and parses the reply.
// A reply cut off by the token limit is still parsed; the incomplete tail
// is dropped by the parser's rules. Extra questions beyond count are
// discarded. Every failure is a *GenerationError.
func (g *LLMGenerator) Generate(ctx context.Context, category string, count int) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(category, count)},
		},
		MaxTokens:   g.config.maxTokens(count),
		Temperature: g.config.Temperature,
	}

	text, err := g.text(ctx, req)
	if err != nil {
		return nil, &GenerationError{Category: category, Count: count, Err: err}
	}

	questions := g.parser.Parse(text)
	if len(questions) == 0 {
		return nil, &GenerationError{Category: category, Count: count, Err: ErrNoQuestions}
	}
	if count > 0 && len(questions) > count {
		questions = questions[:count]
	}
	return questions, nil
}

func (g *LLMGenerator) text(ctx context.Context, req llm.Request) (string, error) {
	resp, err := g.provider.Generate(ctx, req)

	var maxTok *llm.ErrMaxTokensExceeded
	var invalid *llm.ErrInvalidResponse
	switch {
	case errors.As(err, &maxTok):
		return maxTok.Text, nil
	case errors.As(err, &invalid):
		return "", ErrNoResponse
	case err != nil:
		return "", err
	case resp == nil || resp.Text == "":
		return "", ErrNoResponse
	}
	return resp.Text, nil
}
