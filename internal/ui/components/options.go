package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcraft/internal/session"
	"github.com/abhisek/quizcraft/internal/ui/theme"
)

// OptionList is a cursor over a question's answer options. It only tracks
// the cursor; the engine decides what is selected.
type OptionList struct {
	Options   []session.OptionView
	Cursor    int
	Reviewing bool
}

// NewOptionList returns a list with the cursor on the selected option, or
// the first one.
func NewOptionList(opts []session.OptionView, reviewing bool) OptionList {
	l := OptionList{Options: opts, Reviewing: reviewing}
	for i, o := range opts {
		if o.Selected {
			l.Cursor = i
			break
		}
	}
	return l
}

// Sync swaps in fresh option views, keeping the cursor in range.
func (l OptionList) Sync(opts []session.OptionView, reviewing bool) OptionList {
	l.Options = opts
	l.Reviewing = reviewing
	if l.Cursor >= len(opts) {
		l.Cursor = max(len(opts)-1, 0)
	}
	return l
}

// Update moves the cursor. Letter keys a-d jump to that option.
func (l OptionList) Update(msg tea.Msg) OptionList {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || l.Reviewing {
		return l
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if l.Cursor > 0 {
			l.Cursor--
		}
	case "down", "j":
		if l.Cursor < len(l.Options)-1 {
			l.Cursor++
		}
	case "a", "b", "c", "d":
		if i := int(key[0] - 'a'); i < len(l.Options) {
			l.Cursor = i
		}
	}
	return l
}

// Current returns the option text under the cursor.
func (l OptionList) Current() (string, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Options) {
		return "", false
	}
	return l.Options[l.Cursor].Text, true
}

// View renders the options with selection and, while reviewing,
// correctness marks.
func (l OptionList) View() string {
	var b strings.Builder
	for i, o := range l.Options {
		prefix := "  "
		if i == l.Cursor && !l.Reviewing {
			prefix = "▸ "
		}
		mark := "( )"
		if o.Selected {
			mark = "(•)"
		}
		line := fmt.Sprintf("%s%s %c) %s", prefix, mark, 'a'+rune(i), o.Text)

		switch {
		case l.Reviewing && o.Correct:
			line += "  ✓"
			b.WriteString(theme.Correct.Render(line))
		case l.Reviewing && o.Selected:
			line += "  ✗"
			b.WriteString(theme.Incorrect.Render(line))
		case o.Disabled:
			b.WriteString(theme.Disabled.Render(line))
		case i == l.Cursor:
			b.WriteString(theme.Cursor.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
