// internal/words/words.go
//
// Word list management for the board.
//
// Responsibilities:
//   - Parse the valid-guess list and the solution list from newline-delimited text.
//   - Keep both as sets for O(1) lookups (solutions ⊆ valid guesses).
//   - Pick random or indexed solutions.
//
// Word Lists:
//   - "allowed":  every word accepted as a submission.
//   - "answers":  words eligible to be the target.
//
// Constraints:
//   • Words are trimmed and lowercased; blank lines and "#" comments are skipped.
//   • Words of the wrong length or with letters outside a–z are dropped.
//   • A Bank is read-only after Load and safe to share between sessions.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"sort"
	"strings"

	"github.com/robalobadob/wordle/apps/board/assets"
)

// DefaultLength is the number of letters per word on a standard board.
const DefaultLength = 5

var (
	// ErrDataLoad reports a word list that is missing, unreadable or empty.
	ErrDataLoad = errors.New("words: cannot load word list")
	// ErrEmptyBank reports a pick from a bank without solutions.
	ErrEmptyBank = errors.New("words: no solutions available")
)

// Bank holds the valid-guess set and the solution list.
type Bank struct {
	length    int
	solutions []string            // sorted, for indexed picks
	answerSet map[string]struct{} // solutions only
	validSet  map[string]struct{} // solutions ∪ allowed
}

// Option customizes Load.
type Option func(*Bank)

// WithLength sets the word length the bank accepts.
func WithLength(n int) Option {
	return func(b *Bank) {
		if n > 0 {
			b.length = n
		}
	}
}

// Load parses both sources into a Bank.
// Every solution is also accepted as a guess.
func Load(valid, solutions io.Reader, opts ...Option) (*Bank, error) {
	b := &Bank{length: DefaultLength}
	for _, opt := range opts {
		opt(b)
	}

	allowList, err := b.readWords("valid guesses", valid)
	if err != nil {
		return nil, err
	}
	ansList, err := b.readWords("solutions", solutions)
	if err != nil {
		return nil, err
	}

	b.answerSet = toSet(ansList)
	b.validSet = toSet(allowList)
	for w := range b.answerSet {
		b.validSet[w] = struct{}{}
	}

	b.solutions = make([]string, 0, len(b.answerSet))
	for w := range b.answerSet {
		b.solutions = append(b.solutions, w)
	}
	sort.Strings(b.solutions)
	return b, nil
}

// LoadFiles reads the two lists from disk.
func LoadFiles(validPath, solutionsPath string, opts ...Option) (*Bank, error) {
	vf, err := os.Open(validPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	defer vf.Close()

	sf, err := os.Open(solutionsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	defer sf.Close()

	return Load(vf, sf, opts...)
}

// LoadDefault reads the lists embedded in the binary.
func LoadDefault(opts ...Option) (*Bank, error) {
	vf, err := assets.Allowed()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	defer vf.Close()

	sf, err := assets.Answers()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	defer sf.Close()

	return Load(vf, sf, opts...)
}

// LoadConfigured picks the data sources the same way the server always has:
//  1. both paths set → load each file;
//  2. only the valid-guess path set → that file serves as both lists;
//  3. neither set → embedded defaults.
//
// A solutions path without a valid-guess path is rejected.
func LoadConfigured(validPath, solutionsPath string, opts ...Option) (*Bank, error) {
	switch {
	case validPath != "" && solutionsPath != "":
		return LoadFiles(validPath, solutionsPath, opts...)
	case validPath != "":
		return LoadFiles(validPath, validPath, opts...)
	case solutionsPath != "":
		return nil, fmt.Errorf("%w: solutions file set without a valid-guess file", ErrDataLoad)
	default:
		return LoadDefault(opts...)
	}
}

// readWords scans one source and keeps only well-formed words.
func (b *Bank) readWords(name string, r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %s source missing", ErrDataLoad, name)
	}
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		w := Normalize(line)
		if len(w) == b.length && isAlpha(w) {
			out = append(out, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataLoad, name, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s list is empty", ErrDataLoad, name)
	}
	return out, nil
}

// Normalize lowercases and trims a word.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// WordLength reports the number of letters per word.
func (b *Bank) WordLength() int { return b.length }

// IsValidGuess reports whether w is an accepted submission.
func (b *Bank) IsValidGuess(w string) bool {
	_, ok := b.validSet[Normalize(w)]
	return ok
}

// IsSolution reports whether w can be a target.
func (b *Bank) IsSolution(w string) bool {
	_, ok := b.answerSet[Normalize(w)]
	return ok
}

// PickSolution returns a uniformly random solution.
func (b *Bank) PickSolution() (string, error) {
	if len(b.solutions) == 0 {
		return "", ErrEmptyBank
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(b.solutions))))
	if err != nil {
		return "", fmt.Errorf("words: random pick: %w", err)
	}
	return b.solutions[n.Int64()], nil
}

// SolutionAt returns the i-th solution in sorted order.
func (b *Bank) SolutionAt(i int) (string, error) {
	if len(b.solutions) == 0 {
		return "", ErrEmptyBank
	}
	if i < 0 || i >= len(b.solutions) {
		return "", fmt.Errorf("words: solution index %d out of range [0,%d)", i, len(b.solutions))
	}
	return b.solutions[i], nil
}

// Solutions reports how many solutions are loaded.
func (b *Bank) Solutions() int { return len(b.solutions) }

// Stats returns counts of loaded words: (solutions, valid guesses).
func (b *Bank) Stats() (solutions int, valid int) {
	return len(b.solutions), len(b.validSet)
}
