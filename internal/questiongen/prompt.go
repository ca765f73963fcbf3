package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write multiple-choice quiz questions.

Rules:
- Number each question on its own line: "1. <question>".
- Put each option on its own line directly below it, lettered a) to d): "a) <option>".
- Give between 2 and 4 options per question. All options must be distinct.
- Do not mark or reveal the correct option. Do not add explanations or an answer key.
- Use plain text. No tables, no code blocks.`

// buildUserMessage asks for count questions about category.
func buildUserMessage(category string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Category: %s\n", strings.TrimSpace(category))
	fmt.Fprintf(&b, "Number of questions: %d\n", count)
	b.WriteString("\nWrite exactly that many questions about the category, in the format above.")
	return b.String()
}
