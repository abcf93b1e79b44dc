// internal/game/session.go
//
// Turn sequencing for a single board.
// Responsibilities:
//   - Hold the target word, the rows, the (row, col) cursor and the score.
//   - Apply discrete key events: letter, backspace, submit.
//   - Track state transitions: setup → in_progress → won/lost, plus NewGame
//     (score kept) and TryAgain (score zeroed).
//
// Notes:
//   - Calls made outside their valid state are no-ops, never errors; the UI
//     may race with its own rendering and must not crash the session.
//   - An unknown word on submit raises the invalid-word flag and leaves the
//     board untouched.
//   - A Session is not safe for concurrent use.

package game

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const (
	defaultAttempts = 6
	defaultLength   = 5

	titleNeutral = "Wordle"
	titleWin     = "WIN"
)

// WordSource supplies targets and validates guesses.
type WordSource interface {
	IsValidGuess(word string) bool
	PickSolution() (string, error)
	WordLength() int
}

// Session is one player's board.
type Session struct {
	id       string
	words    WordSource
	attempts int
	length   int

	target   string
	rows     []Row
	row, col int
	score    int
	state    State
	invalid  bool
	title    string
	keyboard map[rune]Status
}

// Option customizes NewSession.
type Option func(*Session)

// WithMaxAttempts sets the number of rows on the board.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.attempts = n
		}
	}
}

// WithID sets the session identifier instead of a random one.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// NewSession builds a session in the setup state. Call Start before input.
func NewSession(src WordSource, opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		words:    src,
		attempts: defaultAttempts,
		length:   defaultLength,
		state:    StateSetup,
		title:    titleNeutral,
	}
	if n := src.WordLength(); n > 0 {
		s.length = n
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rows = make([]Row, s.attempts)
	for i := range s.rows {
		s.rows[i] = make(Row, s.length)
	}
	s.clearBoard()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Score returns the number of rounds won since the last TryAgain.
func (s *Session) Score() int { return s.score }

// Finished reports whether the round is won or lost.
func (s *Session) Finished() bool { return s.state == StateWon || s.state == StateLost }

// InvalidWord reports whether the last submit was rejected.
func (s *Session) InvalidWord() bool { return s.invalid }

// Attempts returns the number of rows submitted in this round.
func (s *Session) Attempts() int {
	switch s.state {
	case StateWon, StateLost:
		return s.row + 1
	case StateInProgress:
		return s.row
	default:
		return 0
	}
}

// Guesses returns the words submitted in this round, oldest first.
func (s *Session) Guesses() []string {
	n := s.Attempts()
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, s.rows[i].Word())
	}
	return out
}

// Start moves a fresh session into play with a new target.
func (s *Session) Start() error {
	return s.reset(s.score)
}

// NewGame clears the board and picks a new target, keeping the score.
func (s *Session) NewGame() error {
	return s.reset(s.score)
}

// TryAgain zeroes the score and starts over. It only applies once the
// round is won or lost.
func (s *Session) TryAgain() error {
	if !s.Finished() {
		return nil
	}
	return s.reset(0)
}

// reset picks the target first so a failed pick leaves the session as it was.
func (s *Session) reset(score int) error {
	target, err := s.words.PickSolution()
	if err != nil {
		return err
	}
	s.target = normalizeTarget(target)
	s.score = score
	s.clearBoard()
	s.state = StateInProgress
	return nil
}

func (s *Session) clearBoard() {
	for r := range s.rows {
		for c := range s.rows[r] {
			s.rows[r][c] = Cell{Status: StatusEmpty}
		}
	}
	s.row, s.col = 0, 0
	s.invalid = false
	s.title = titleNeutral
	s.keyboard = make(map[rune]Status)
}

// InputLetter writes r into the current cell and advances the cursor.
// Only a–z (case-folded) is accepted. Returns false when nothing changed.
func (s *Session) InputLetter(r rune) bool {
	if s.state != StateInProgress || s.col >= s.length {
		return false
	}
	r = unicode.ToLower(r)
	if r < 'a' || r > 'z' {
		return false
	}
	s.rows[s.row][s.col] = Cell{Letter: string(r), Status: StatusFilled}
	s.col++
	s.invalid = false
	return true
}

// InputBackspace clears the previous cell. Returns false at column 0.
func (s *Session) InputBackspace() bool {
	if s.state != StateInProgress || s.col == 0 {
		return false
	}
	s.col--
	s.rows[s.row][s.col] = Cell{Status: StatusEmpty}
	s.invalid = false
	return true
}

// SubmitRow scores the current row once it is full.
func (s *Session) SubmitRow() Outcome {
	if s.state != StateInProgress || s.col < s.length {
		return OutcomeIgnored
	}
	row := s.rows[s.row]
	guess := row.Word()
	if !s.words.IsValidGuess(guess) {
		s.invalid = true
		return OutcomeInvalidWord
	}
	s.invalid = false

	marks := Evaluate(s.target, guess)
	for i, m := range marks {
		row[i].Status = m
		s.hint([]rune(row[i].Letter)[0], m)
	}

	switch {
	case allCorrect(marks):
		s.state = StateWon
		s.score++
		s.title = titleWin
		return OutcomeWon
	case s.row >= len(s.rows)-1:
		s.state = StateLost
		return OutcomeLost
	default:
		s.row++
		s.col = 0
		return OutcomeContinue
	}
}

// hint keeps the best status seen for a letter this round.
func (s *Session) hint(r rune, st Status) {
	if st.rank() > s.keyboard[r].rank() {
		s.keyboard[r] = st
	}
}

// Snapshot copies the state for rendering.
func (s *Session) Snapshot() Snapshot {
	board := make([]Row, len(s.rows))
	for i, r := range s.rows {
		board[i] = append(Row(nil), r...)
	}
	kb := make(map[string]Status, len(s.keyboard))
	for r, st := range s.keyboard {
		kb[string(r)] = st
	}
	snap := Snapshot{
		ID:          s.id,
		State:       s.state,
		Title:       s.title,
		Score:       s.score,
		Row:         s.row,
		Col:         s.col,
		InvalidWord: s.invalid,
		Board:       board,
		Keyboard:    kb,
		Attempts:    s.Attempts(),
	}
	if s.Finished() {
		snap.Answer = s.target
	}
	return snap
}

func normalizeTarget(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}
