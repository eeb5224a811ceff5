package memory

import (
	"testing"

	"github.com/slobdell/finisher/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStore_RequiresTraining(t *testing.T) {
	store := NewStore()

	_, err := store.PrefixTokens().All()
	assert.ErrorIs(t, err, ports.ErrTrainingRequired)

	_, _, err = store.PrefixTokens().Get("he")
	assert.ErrorIs(t, err, ports.ErrTrainingRequired)
}

func TestSetStore_MergeUnions(t *testing.T) {
	store := NewStore()
	tokens := store.PrefixTokens()

	require.NoError(t, tokens.Merge(map[string][]string{"he": {"hey"}}))
	require.NoError(t, tokens.Merge(map[string][]string{"he": {"hello", "hey"}}))

	values, ok, err := tokens.Get("he")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"hello", "hey"}, values)

	all, err := tokens.All()
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"he": {"hello", "hey"}}, all)
}

func TestSetStore_MissingKeyIsNotAnError(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.PrefixTokens().Merge(map[string][]string{"he": {"hey"}}))

	values, ok, err := store.PrefixTokens().Get("zz")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, values)
}

func TestSetStore_EmptyMergeMarksPopulated(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.TokenStrings().Merge(nil))

	// Trained-but-empty is distinct from never-trained.
	all, err := store.TokenStrings().All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSetStore_Clear(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.PrefixTokens().Merge(map[string][]string{"he": {"hey"}}))
	require.NoError(t, store.PrefixTokens().Clear())

	_, _, err := store.PrefixTokens().Get("he")
	assert.ErrorIs(t, err, ports.ErrTrainingRequired)

	// Clearing an unpopulated collection is fine.
	require.NoError(t, store.PrefixTokens().Clear())
}

func TestCountStore_MergeAdds(t *testing.T) {
	store := NewStore()
	counts := store.TokenCounts()

	require.NoError(t, counts.Merge(map[string]int{"hello": 1, "world": 2}))
	require.NoError(t, counts.Merge(map[string]int{"hello": 3}))

	n, err := counts.Get("hello", 0)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	all, err := counts.All()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"hello": 4, "world": 2}, all)
}

func TestCountStore_GetDefault(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.TokenCounts().Merge(map[string]int{"hello": 1}))

	n, err := store.TokenCounts().Get("missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestCountStore_GetMany(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.TokenCounts().Merge(map[string]int{"hello": 2}))

	counts, err := store.TokenCounts().GetMany([]string{"hello", "nope"}, 0)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"hello": 2, "nope": 0}, counts)
}

func TestCountStore_RequiresTrainingAndClear(t *testing.T) {
	store := NewStore()

	_, err := store.TokenCounts().Get("hello", 0)
	assert.ErrorIs(t, err, ports.ErrTrainingRequired)

	require.NoError(t, store.TokenCounts().Merge(map[string]int{"hello": 1}))
	require.NoError(t, store.TokenCounts().Clear())

	_, err = store.TokenCounts().GetMany([]string{"hello"}, 0)
	assert.ErrorIs(t, err, ports.ErrTrainingRequired)
}

func TestCollectionsAreIndependent(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.PrefixTokens().Merge(map[string][]string{"he": {"hey"}}))

	// Populating one collection does not populate the others.
	_, err := store.TokenCounts().Get("hey", 0)
	assert.ErrorIs(t, err, ports.ErrTrainingRequired)
	_, err = store.TokenStrings().All()
	assert.ErrorIs(t, err, ports.ErrTrainingRequired)
}
