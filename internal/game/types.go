// internal/game/types.go
//
// Core type definitions for the board.
// Defines:
//   - Status: per-cell state (empty/filled before submit, correct/wrong_spot/incorrect after).
//   - State:  session lifecycle (setup → in_progress → won/lost).
//   - Outcome: result of a SubmitRow call.
//   - Cell, Row and Snapshot: what the presentation layer renders.

package game

// Status describes a single cell on the board.
//   - "empty":      no letter typed.
//   - "filled":     letter typed, row not submitted yet.
//   - "correct":    letter is in the target at this position.
//   - "wrong_spot": letter is in the target at another position.
//   - "incorrect":  letter is not in the target (or all its occurrences are used up).
type Status string

const (
	StatusEmpty     Status = "empty"
	StatusFilled    Status = "filled"
	StatusCorrect   Status = "correct"
	StatusWrongSpot Status = "wrong_spot"
	StatusIncorrect Status = "incorrect"
)

// rank orders evaluated statuses for keyboard hints.
func (s Status) rank() int {
	switch s {
	case StatusCorrect:
		return 3
	case StatusWrongSpot:
		return 2
	case StatusIncorrect:
		return 1
	default:
		return 0
	}
}

// State is the coarse lifecycle of a session.
type State string

const (
	StateSetup      State = "setup"
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateLost       State = "lost"
)

// Outcome reports what SubmitRow did.
type Outcome string

const (
	OutcomeIgnored     Outcome = "ignored"      // precondition not met, nothing changed
	OutcomeInvalidWord Outcome = "invalid_word" // not in the valid-guess set, nothing changed
	OutcomeContinue    Outcome = "continue"     // scored, cursor moved to the next row
	OutcomeWon         Outcome = "won"
	OutcomeLost        Outcome = "lost"
)

// Cell is one letter slot. Letter is empty when nothing is typed.
type Cell struct {
	Letter string `json:"letter"`
	Status Status `json:"status"`
}

// Row is one guess attempt.
type Row []Cell

// Word joins the typed letters of the row.
func (r Row) Word() string {
	b := make([]byte, 0, len(r))
	for _, c := range r {
		b = append(b, c.Letter...)
	}
	return string(b)
}

// Snapshot is a copy of the session state for rendering.
type Snapshot struct {
	ID          string            `json:"id"`
	State       State             `json:"state"`
	Title       string            `json:"title"`
	Score       int               `json:"score"`
	Row         int               `json:"row"`
	Col         int               `json:"col"`
	InvalidWord bool              `json:"invalidWord"`
	Board       []Row             `json:"board"`
	Keyboard    map[string]Status `json:"keyboard"`
	Attempts    int               `json:"attempts"`
	Answer      string            `json:"answer,omitempty"` // only once the round is over
}
