package quiz

import (
	"regexp"
	"strings"
)

// lineKind is the classification of a single cleaned input line.
type lineKind int

const (
	lineOther  lineKind = iota // ignored
	linePrompt                 // "12. text"
	lineAnswer                 // "b) text"
)

var (
	promptPattern = regexp.MustCompile(`^\d+\.\s*(.*)`)

	// Only a-d are recognized; options beyond "d" are dropped.
	answerPattern = regexp.MustCompile(`^[a-d]\)\s*(.*)`)

	emphasisReplacer = strings.NewReplacer("*", "", "#", "")
)

// cleanLine strips markdown emphasis markers and surrounding whitespace.
func cleanLine(line string) string {
	return strings.TrimSpace(emphasisReplacer.Replace(line))
}

// classifyLine reports what a cleaned line is and its captured text.
// Prompt lines take precedence over answer lines.
func classifyLine(line string) (lineKind, string) {
	if m := promptPattern.FindStringSubmatch(line); m != nil {
		return linePrompt, strings.TrimSpace(m[1])
	}
	if m := answerPattern.FindStringSubmatch(line); m != nil {
		return lineAnswer, strings.TrimSpace(m[1])
	}
	return lineOther, ""
}
