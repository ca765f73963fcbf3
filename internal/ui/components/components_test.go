package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcraft/internal/session"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func char(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestOptionListCursor(t *testing.T) {
	l := NewOptionList([]session.OptionView{
		{Text: "Red"}, {Text: "Blue", Selected: true}, {Text: "Green"},
	}, false)
	if l.Cursor != 1 {
		t.Fatalf("cursor = %d, want 1 (selected option)", l.Cursor)
	}

	l = l.Update(key(tea.KeyDown))
	l = l.Update(key(tea.KeyDown))
	if l.Cursor != 2 {
		t.Fatalf("cursor = %d, want 2 (clamped)", l.Cursor)
	}

	l = l.Update(char('a'))
	if text, _ := l.Current(); text != "Red" {
		t.Fatalf("current = %q, want Red", text)
	}

	l = l.Update(char('d'))
	if l.Cursor != 0 {
		t.Fatalf("letter past the last option moved the cursor to %d", l.Cursor)
	}
}

func TestOptionListReviewIgnoresKeys(t *testing.T) {
	l := NewOptionList([]session.OptionView{{Text: "Red"}, {Text: "Blue", Correct: true}}, true)
	l = l.Update(key(tea.KeyDown))
	if l.Cursor != 0 {
		t.Fatalf("cursor moved during review")
	}
	view := l.View()
	if !strings.Contains(view, "Blue  ✓") {
		t.Fatalf("review view missing correct mark:\n%s", view)
	}
}

func TestOptionListSyncClampsCursor(t *testing.T) {
	l := OptionList{Cursor: 3}
	l = l.Sync([]session.OptionView{{Text: "x"}}, false)
	if l.Cursor != 0 {
		t.Fatalf("cursor = %d, want 0", l.Cursor)
	}
}

func TestStepper(t *testing.T) {
	s := NewStepper("Questions", 50, 1, 20)
	if s.Value != 20 {
		t.Fatalf("value = %d, want clamp to 20", s.Value)
	}
	s = s.Update(key(tea.KeyRight))
	if s.Value != 20 {
		t.Fatalf("value = %d, stepped past max", s.Value)
	}
	s = s.Update(key(tea.KeyLeft))
	if s.Value != 19 {
		t.Fatalf("value = %d, want 19", s.Value)
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "one", Disabled: true},
		{Label: "two"},
		{Label: "three", Disabled: true},
		{Label: "four"},
	})
	if m.Selected != 1 {
		t.Fatalf("selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(key(tea.KeyDown))
	if m.Selected != 3 {
		t.Fatalf("selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(key(tea.KeyDown))
	if m.Selected != 3 {
		t.Fatalf("selected = %d, want to stay at 3", m.Selected)
	}
}

func TestProgressBarWidth(t *testing.T) {
	p := ProgressBar{Current: 2, Total: 4, Width: 30}
	if !strings.Contains(p.View(), "Q2/4") {
		t.Fatalf("unexpected view %q", p.View())
	}
}
