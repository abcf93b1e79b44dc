package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	C = StatusCorrect
	W = StatusWrongSpot
	I = StatusIncorrect
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		target string
		guess  string
		want   []Status
	}{
		{name: "exact match", target: "crane", guess: "crane", want: []Status{C, C, C, C, C}},
		{name: "single wrong spot", target: "crane", guess: "month", want: []Status{I, I, W, I, I}},
		{name: "full miss", target: "crane", guess: "fluid", want: []Status{I, I, I, I, I}},
		{name: "wrong spots", target: "crane", guess: "nacre", want: []Status{W, W, W, W, C}},
		{name: "duplicate guess letter, one in target", target: "crane", guess: "array", want: []Status{W, C, I, I, I}},
		{name: "speed vs erase", target: "erase", guess: "speed", want: []Status{W, I, W, W, I}},
		{name: "exact match consumes before wrong spot", target: "abbey", guess: "babes", want: []Status{W, W, C, C, I}},
		{name: "correct wins over earlier wrong spot", target: "eerie", guess: "geese", want: []Status{I, C, W, I, C}},
		{name: "triple letter guess", target: "sense", guess: "esses", want: []Status{W, W, W, W, I}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.target, tt.guess))
		})
	}
}

func TestEvaluate_LengthMismatch(t *testing.T) {
	assert.Equal(t, []Status{I, I, I, I, I}, Evaluate("crane", "cran"))
}

// Every position gets exactly one evaluated status, and no letter is
// credited more often than it occurs in the target.
func TestEvaluate_LetterCreditNeverExceedsTarget(t *testing.T) {
	pool := []string{"speed", "erase", "eerie", "geese", "crane", "array", "abbey", "babes", "sense", "esses", "llama", "hello", "level", "lever"}
	for _, target := range pool {
		for _, guess := range pool {
			got := Evaluate(target, guess)
			if !assert.Len(t, got, len(target)) {
				continue
			}

			inTarget := map[byte]int{}
			for i := 0; i < len(target); i++ {
				inTarget[target[i]]++
			}
			credited := map[byte]int{}
			for i, st := range got {
				switch st {
				case StatusCorrect:
					assert.Equal(t, target[i], guess[i], "%s/%s pos %d", target, guess, i)
					credited[guess[i]]++
				case StatusWrongSpot:
					credited[guess[i]]++
				case StatusIncorrect:
				default:
					t.Errorf("%s/%s pos %d: unexpected status %q", target, guess, i, st)
				}
			}
			for letter, n := range credited {
				assert.LessOrEqual(t, n, inTarget[letter], "%s/%s letter %c", target, guess, letter)
			}
		}
	}
}

func TestEvaluate_SpeedEraseConsumesTwoEs(t *testing.T) {
	got := Evaluate("erase", "speed")
	es := 0
	for i, st := range got {
		if "speed"[i] == 'e' && st != StatusIncorrect {
			es++
		}
	}
	assert.Equal(t, 2, es)
}
