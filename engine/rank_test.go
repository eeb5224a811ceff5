package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuessFullStrings_RanksByAggregatedScore(t *testing.T) {
	eng := newTrainedEngine(t, []string{
		"hey there world",
		"hello Commrades",
		"today is a tremendous day",
	})

	guesses, err := eng.GuessFullStrings([]string{"hello", "world"})
	require.NoError(t, err)
	assert.Equal(t, []string{"hey there world", "hello commrades"}, guesses)
}

func TestGuessFullStrings_NoPrefixMatches(t *testing.T) {
	eng := newTrainedEngine(t, []string{
		"hey there world",
		"hello Commrades",
		"today is a tremendous day",
	})

	guesses, err := eng.GuessFullStrings([]string{"nothing", "in", "list"})
	require.NoError(t, err)
	assert.Empty(t, guesses)
}

func TestGuessFullStrings_ExactMatchDropsSubPhrases(t *testing.T) {
	eng := newTrainedEngine(t, []string{
		"this will be repeated",
		"this will be repeated hardcore",
		"this will be repeated really hardcore",
	})

	guesses, err := eng.GuessFullStrings([]string{"this", "will", "be", "repeated", "hardcore"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"this will be repeated hardcore",
		"this will be repeated really hardcore",
		"this will be repeated",
	}, guesses)
}

func TestGuessFullStrings_EmptyInput(t *testing.T) {
	eng := newTrainedEngine(t, trainingCorpus)

	guesses, err := eng.GuessFullStrings(nil)
	require.NoError(t, err)
	assert.Empty(t, guesses)
}

func TestCorrectThenGuess(t *testing.T) {
	eng := newTrainedEngine(t, trainingCorpus)

	corrected, err := eng.CorrectPhrase("hye wrld")
	require.NoError(t, err)
	require.Equal(t, []string{"hey", "world"}, corrected)

	guesses, err := eng.GuessFullStrings(corrected)
	require.NoError(t, err)
	assert.Equal(t, []string{"hey there world", "hello world"}, guesses)
}

func TestGuessFullStrings_MaxResultsCap(t *testing.T) {
	corpus := []string{
		"alpha one", "alpha two", "alpha three", "alpha four",
		"alpha five", "alpha six", "alpha seven", "alpha eight",
		"alpha nine", "alpha ten", "alpha eleven", "alpha twelve",
	}
	eng := newTrainedEngine(t, corpus)

	guesses, err := eng.GuessFullStrings([]string{"alpha"})
	require.NoError(t, err)
	assert.Len(t, guesses, 10)
}
