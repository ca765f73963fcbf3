package session

import "fmt"

// Mode is the phase of a quiz session.
type Mode int

const (
	ModeSetup            Mode = iota // Collecting category and count
	ModePlaying                      // Answering questions
	ModeReviewingAnswers             // Read-only replay with correctness shown
	ModeShowingResults               // Final score
)

var modeNames = map[Mode]string{
	ModeSetup:            "setup",
	ModePlaying:          "playing",
	ModeReviewingAnswers: "reviewing",
	ModeShowingResults:   "results",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// MarshalText encodes the mode by name so snapshots read well as JSON.
func (m Mode) MarshalText() ([]byte, error) {
	s, ok := modeNames[m]
	if !ok {
		return nil, fmt.Errorf("unknown mode %d", int(m))
	}
	return []byte(s), nil
}

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(b []byte) error {
	for mode, name := range modeNames {
		if name == string(b) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown mode %q", b)
}
