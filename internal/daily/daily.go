// Package daily picks one deterministic target per calendar day and keeps
// the results players post for it.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordle/apps/board/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Puzzle identifies the target for one day.
type Puzzle struct {
	Date      string
	WordIndex int
	Answer    string
}

// PuzzleFor resolves the day's puzzle from the bank's solution list.
func PuzzleFor(t time.Time, salt string, bank *words.Bank) (Puzzle, error) {
	idx := WordIndex(t, salt, bank.Solutions())
	answer, err := bank.SolutionAt(idx)
	if err != nil {
		return Puzzle{}, err
	}
	return Puzzle{Date: DateKey(t), WordIndex: idx, Answer: answer}, nil
}

// Source serves the day's answer as the only target while validating guesses
// against the full bank.
type Source struct {
	bank   *words.Bank
	answer string
}

// NewSource binds a bank to a puzzle.
func NewSource(bank *words.Bank, p Puzzle) *Source {
	return &Source{bank: bank, answer: p.Answer}
}

func (s *Source) IsValidGuess(w string) bool     { return s.bank.IsValidGuess(w) }
func (s *Source) PickSolution() (string, error) { return s.answer, nil }
func (s *Source) WordLength() int               { return s.bank.WordLength() }
