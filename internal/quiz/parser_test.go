package quiz

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always picks the same position, clamped to the answer count.
type fixedRand int

func (f fixedRand) IntN(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

const sampleText = `1. What color is the sky?
a) Red
b) Blue
2. 2+2=?
a) 3
b) 4`

func assertWellFormed(t *testing.T, questions []Question) {
	t.Helper()
	for i, q := range questions {
		require.NotEmpty(t, q.Answers, "question %d has no answers", i)
		correct := 0
		for _, a := range q.Answers {
			if a.Correct {
				correct++
			}
		}
		require.Equal(t, 1, correct, "question %d must have exactly one correct answer", i)
	}
}

func TestParse_SampleText(t *testing.T) {
	qs := NewParser(fixedRand(1)).Parse(sampleText)

	require.Len(t, qs, 2)
	assert.Equal(t, "What color is the sky?", qs[0].Prompt)
	assert.Equal(t, []Answer{{Text: "Red"}, {Text: "Blue", Correct: true}}, qs[0].Answers)
	assert.Equal(t, "2+2=?", qs[1].Prompt)
	assert.Equal(t, []Answer{{Text: "3"}, {Text: "4", Correct: true}}, qs[1].Answers)
	assertWellFormed(t, qs)
}

func TestParse_DefaultSource(t *testing.T) {
	qs := Parse(sampleText)
	require.Len(t, qs, 2)
	for _, q := range qs {
		assert.Len(t, q.Answers, 2)
	}
	assertWellFormed(t, qs)
}

func TestParse_MarkdownAndNoise(t *testing.T) {
	raw := "Sure! Here are 2 questions about space:\n\n" +
		"**1. Which planet is known as the Red Planet?**\n" +
		"   a) Venus\n" +
		"   b) **Mars**\n" +
		"\n" +
		"   c) Jupiter\n" +
		"   d) Saturn\n" +
		"   e) Pluto\n" +
		"Correct answer: b\n" +
		"### 2. How many moons does Earth have?\n" +
		"a) One\r\n" +
		"b) Two\n"

	qs := NewParser(fixedRand(0)).Parse(raw)

	require.Len(t, qs, 2)
	assert.Equal(t, "Which planet is known as the Red Planet?", qs[0].Prompt)
	texts := make([]string, 0, len(qs[0].Answers))
	for _, a := range qs[0].Answers {
		texts = append(texts, a.Text)
	}
	assert.Equal(t, []string{"Venus", "Mars", "Jupiter", "Saturn"}, texts)
	assert.Equal(t, "How many moons does Earth have?", qs[1].Prompt)
	assert.Equal(t, "One", qs[1].Answers[0].Text)
}

func TestParse_DropsPromptWithoutAnswers(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		prompts []string
	}{
		{
			name:    "followed by next prompt",
			raw:     "1. Orphan?\n2. Kept?\na) yes",
			prompts: []string{"Kept?"},
		},
		{
			name:    "at end of input",
			raw:     "1. Kept?\na) yes\n2. Orphan?",
			prompts: []string{"Kept?"},
		},
		{
			name:    "only noise after prompt",
			raw:     "1. Orphan?\nno options here\nA) upper\n2. Kept?\nb) yes",
			prompts: []string{"Kept?"},
		},
		{
			name:    "empty prompt text",
			raw:     "1.\na) one\n2. Kept?\na) yes",
			prompts: []string{"Kept?"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs := NewParser(fixedRand(0)).Parse(tt.raw)
			got := make([]string, 0, len(qs))
			for _, q := range qs {
				got = append(got, q.Prompt)
			}
			assert.Equal(t, tt.prompts, got)
		})
	}
}

func TestParse_AnswersBeforeFirstPromptIgnored(t *testing.T) {
	qs := NewParser(fixedRand(0)).Parse("a) stray\nb) stray\n1. Real?\na) yes\nb) no")
	require.Len(t, qs, 1)
	assert.Len(t, qs[0].Answers, 2)
	assert.Equal(t, "yes", qs[0].Answers[0].Text)
}

func TestParse_DuplicateAnswersByPosition(t *testing.T) {
	qs := NewParser(fixedRand(1)).Parse("1. Pick one\na) same\nb) same\nc) other")
	require.Len(t, qs, 1)
	assert.False(t, qs[0].Answers[0].Correct)
	assert.True(t, qs[0].Answers[1].Correct)
	assert.False(t, qs[0].Answers[2].Correct)
}

func TestParse_EmptyAndGarbage(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t\n",
		"no questions here at all",
		"a) b) c)",
		"1.\n2.\n3.",
		strings.Repeat("*#", 100),
		"\x00\xff\xfe garbage ☃",
	}
	for _, raw := range inputs {
		qs := Parse(raw)
		assert.Empty(t, qs, "input %q", raw)
	}
}

func TestParse_RandomInputNeverMalformed(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	fragments := []string{
		"1. Q?", "2.", "a) x", "b) y", "c)", "d) z", "e) no", "", "   ",
		"**", "# 3. heading", "text", "10.   spaced", "b)b", "\r",
	}
	for range 500 {
		var b strings.Builder
		n := rng.IntN(30)
		for range n {
			b.WriteString(fragments[rng.IntN(len(fragments))])
			b.WriteString("\n")
		}
		assertWellFormed(t, NewParser(rng).Parse(b.String()))
	}
}

func TestParse_RandomizesCorrectPosition(t *testing.T) {
	raw := "1. Pick\na) one\nb) two\nc) three\nd) four"
	p := NewParser(rand.New(rand.NewPCG(42, 7)))

	seen := make(map[int]bool)
	for range 200 {
		qs := p.Parse(raw)
		require.Len(t, qs, 1)
		for i, a := range qs[0].Answers {
			if a.Correct {
				seen[i] = true
			}
		}
	}
	if len(seen) < 2 {
		t.Fatalf("expected correct position to vary across parses, saw %v", seen)
	}
}

func TestQuestion_Helpers(t *testing.T) {
	q := Question{
		Prompt: "2+2=?",
		Answers: []Answer{
			{Text: "3"},
			{Text: "4", Correct: true},
		},
	}

	a, ok := q.CorrectAnswer()
	require.True(t, ok)
	assert.Equal(t, "4", a.Text)
	assert.True(t, q.IsCorrect("4"))
	assert.False(t, q.IsCorrect("3"))
	assert.True(t, q.Has("3"))
	assert.False(t, q.Has("5"))

	_, ok = Question{}.CorrectAnswer()
	assert.False(t, ok)
}
