package session

// OptionView is one answer option as the front-end should draw it.
type OptionView struct {
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
	// Correct is only reported while reviewing.
	Correct  bool `json:"correct,omitempty"`
	Disabled bool `json:"disabled"`
}

// Snapshot is everything a front-end needs to render the engine's state.
type Snapshot struct {
	Mode    Mode   `json:"mode"`
	Loading bool   `json:"loading"`
	Message string `json:"message,omitempty"`

	Category string `json:"category,omitempty"`
	Count    int    `json:"count,omitempty"`

	// Number is the 1-based position of the displayed question, 0 if none.
	Number   int          `json:"number"`
	Total    int          `json:"total"`
	Prompt   string       `json:"prompt,omitempty"`
	Options  []OptionView `json:"options,omitempty"`
	Selected string       `json:"selected,omitempty"`

	CanAdvance bool `json:"canAdvance"`
	IsLast     bool `json:"isLast"`
	Score      int  `json:"score"`
}

// AdvanceLabel is the caption for the advance control.
func (s Snapshot) AdvanceLabel() string {
	switch {
	case s.Mode == ModeReviewingAnswers && s.IsLast:
		return "Finish Review"
	case s.IsLast:
		return "Finish Quiz"
	}
	return "Next Question"
}

func (e *Engine) snapshot() Snapshot {
	s := e.session
	snap := Snapshot{
		Mode:     s.Mode,
		Loading:  e.loading,
		Message:  e.message,
		Category: e.category,
		Count:    e.count,
		Total:    len(s.Questions),
		Score:    s.Score,
	}

	q, ok := s.Current()
	if !ok {
		return snap
	}

	reviewing := s.Mode == ModeReviewingAnswers
	selected, answered := s.Recorded[s.Index]

	snap.Number = s.Index + 1
	snap.Prompt = q.Prompt
	snap.Selected = selected
	snap.IsLast = s.IsLast()
	snap.CanAdvance = !e.loading && s.CanAdvance()

	snap.Options = make([]OptionView, len(q.Answers))
	for i, a := range q.Answers {
		opt := OptionView{
			Text:     a.Text,
			Selected: answered && a.Text == selected,
			Disabled: e.loading,
		}
		if reviewing {
			opt.Correct = a.Correct
			opt.Disabled = !opt.Selected
		}
		snap.Options[i] = opt
	}
	return snap
}
