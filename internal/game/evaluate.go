// internal/game/evaluate.go
//
// Guess scoring.
//   - Evaluate marks each guess letter Correct, WrongSpot or Incorrect.
//   - Duplicate letters are credited at most as often as the target has them.

package game

import "strings"

// Evaluate scores guess against target with the two-pass Wordle rules.
//
// Pass 1:
//   - Exact matches are Correct and consume their target position.
//   - Letters that appear nowhere in the target are Incorrect.
//   - Unmatched target letters are counted.
//
// Pass 2:
//   - Remaining positions become WrongSpot while the count for their letter
//     is positive (decrementing it), Incorrect otherwise.
//
// A repeated guess letter is therefore never credited more often than it
// occurs in the target. Guesses of the wrong length score all Incorrect.
func Evaluate(target, guess string) []Status {
	t := []rune(target)
	g := []rune(guess)
	res := make([]Status, len(t))
	if len(g) != len(t) {
		for i := range res {
			res[i] = StatusIncorrect
		}
		return res
	}

	remaining := make(map[rune]int, len(t))
	for i := range g {
		switch {
		case g[i] == t[i]:
			res[i] = StatusCorrect
		case !strings.ContainsRune(target, g[i]):
			res[i] = StatusIncorrect
			remaining[t[i]]++
		default:
			remaining[t[i]]++
		}
	}

	for i := range g {
		if res[i] != "" {
			continue
		}
		if remaining[g[i]] > 0 {
			res[i] = StatusWrongSpot
			remaining[g[i]]--
		} else {
			res[i] = StatusIncorrect
		}
	}
	return res
}

// allCorrect reports whether every status is Correct.
func allCorrect(s []Status) bool {
	for _, x := range s {
		if x != StatusCorrect {
			return false
		}
	}
	return len(s) > 0
}
