package words

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, valid, solutions string, opts ...Option) *Bank {
	t.Helper()
	b, err := Load(strings.NewReader(valid), strings.NewReader(solutions), opts...)
	require.NoError(t, err)
	return b
}

func TestLoad_NormalizesAndFilters(t *testing.T) {
	b := mustLoad(t,
		"# header\n  Speed \nerase\r\nab\nhello!\n\nWORLD\n",
		"crane\n Slate\n",
	)

	solutions, valid := b.Stats()
	assert.Equal(t, 2, solutions)
	assert.Equal(t, 5, valid) // speed, erase, world, crane, slate

	assert.True(t, b.IsValidGuess("SPEED"))
	assert.True(t, b.IsValidGuess(" world "))
	assert.False(t, b.IsValidGuess("ab"))
	assert.False(t, b.IsValidGuess("hello"))
}

func TestLoad_SolutionsAreValidGuesses(t *testing.T) {
	b := mustLoad(t, "speed\n", "crane\n")

	assert.True(t, b.IsValidGuess("crane"))
	assert.True(t, b.IsSolution("crane"))
	assert.False(t, b.IsSolution("speed"))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name      string
		valid     string
		solutions string
	}{
		{name: "empty valid list", valid: "", solutions: "crane\n"},
		{name: "empty solutions", valid: "crane\n", solutions: "\n\n"},
		{name: "only malformed words", valid: "crane\n", solutions: "abc\nabcdef\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.valid), strings.NewReader(tt.solutions))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDataLoad))
		})
	}

	_, err := Load(nil, strings.NewReader("crane"))
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestLoad_WithLength(t *testing.T) {
	b := mustLoad(t, "cat\ncrane\n", "dog\n", WithLength(3))

	assert.Equal(t, 3, b.WordLength())
	assert.True(t, b.IsValidGuess("cat"))
	assert.False(t, b.IsValidGuess("crane"))
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "allowed.txt")
	sols := filepath.Join(dir, "answers.txt")
	require.NoError(t, os.WriteFile(valid, []byte("speed\nerase\n"), 0o644))
	require.NoError(t, os.WriteFile(sols, []byte("crane\n"), 0o644))

	b, err := LoadFiles(valid, sols)
	require.NoError(t, err)
	assert.True(t, b.IsValidGuess("erase"))

	_, err = LoadFiles(filepath.Join(dir, "missing.txt"), sols)
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestLoadConfigured(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "allowed.txt")
	require.NoError(t, os.WriteFile(valid, []byte("speed\nerase\n"), 0o644))

	b, err := LoadConfigured(valid, "")
	require.NoError(t, err)
	assert.Equal(t, 2, b.Solutions())

	_, err = LoadConfigured("", valid)
	assert.ErrorIs(t, err, ErrDataLoad)

	b, err = LoadConfigured("", "")
	require.NoError(t, err)
	assert.True(t, b.IsSolution("crane"))
}

func TestLoadDefault(t *testing.T) {
	b, err := LoadDefault()
	require.NoError(t, err)

	solutions, valid := b.Stats()
	assert.Greater(t, solutions, 100)
	assert.Greater(t, valid, solutions)
	assert.True(t, b.IsValidGuess("speed"))
	assert.True(t, b.IsValidGuess("erase"))
}

func TestPickSolution_Uniform(t *testing.T) {
	b := mustLoad(t, "crane\n", "alpha\nbravo\ncharm\ndelta\n")

	counts := map[string]int{}
	const draws = 4000
	for i := 0; i < draws; i++ {
		w, err := b.PickSolution()
		require.NoError(t, err)
		require.True(t, b.IsSolution(w))
		counts[w]++
	}

	require.Len(t, counts, 4)
	for w, c := range counts {
		// expected 1000 each; 750 leaves a very wide margin
		assert.Greater(t, c, 750, "word %s drawn %d times", w, c)
	}
}

func TestPickSolution_EmptyBank(t *testing.T) {
	var b Bank
	_, err := b.PickSolution()
	assert.ErrorIs(t, err, ErrEmptyBank)

	_, err = b.SolutionAt(0)
	assert.ErrorIs(t, err, ErrEmptyBank)
}

func TestSolutionAt(t *testing.T) {
	b := mustLoad(t, "crane\n", "delta\nalpha\ncharm\n")

	w, err := b.SolutionAt(0)
	require.NoError(t, err)
	assert.Equal(t, "alpha", w)

	_, err = b.SolutionAt(3)
	assert.Error(t, err)
}
