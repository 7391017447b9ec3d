package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-roundtable/internal/domain"
)

func TestRankingStore_ResolveSubstringCaseInsensitive(t *testing.T) {
	store := NewRankingStore(domain.LostAtSeaCatalog(), &domain.Ranking{})

	changes, err := store.ApplyEdits([]domain.RankingEdit{
		{Item: "sextant", TargetRank: 1},
		{Item: "SHAVING MIRROR", TargetRank: 2},
		{Item: "nylon", TargetRank: 3},
	})
	require.NoError(t, err)
	require.Len(t, changes, 3)

	assert.Equal(t, "A sextant", changes[0].Item.Name)
	assert.Equal(t, "🧭", changes[0].Item.Emoji)
	assert.Equal(t, "A shaving mirror", changes[1].Item.Name)
	assert.Equal(t, "15 feet of nylon rope", changes[2].Item.Name)
	for _, c := range changes {
		assert.Empty(t, c.Suggestion)
	}
}

func TestRankingStore_UnresolvedNameFallsBackWithSuggestion(t *testing.T) {
	ranking := &domain.Ranking{}
	store := NewRankingStore(domain.LostAtSeaCatalog(), ranking)

	changes, err := store.ApplyEdits([]domain.RankingEdit{
		{Item: "a golden compass", TargetRank: 4},
	})
	require.NoError(t, err)
	require.Len(t, changes, 1)

	// The raw name becomes the item with no emoji; resolution behavior
	// never depends on the suggestion.
	assert.Equal(t, "a golden compass", changes[0].Item.Name)
	assert.Empty(t, changes[0].Item.Emoji)
	assert.NotEmpty(t, changes[0].Suggestion)
	assert.Equal(t, 4, ranking.RankOf("a golden compass"))
}

func TestRankingStore_ChangesUsePreBatchRanks(t *testing.T) {
	ranking := &domain.Ranking{}
	catalog := domain.LostAtSeaCatalog()
	ranking.Place(catalog[14], 1) // A sextant
	ranking.Place(catalog[0], 2)  // A shaving mirror

	store := NewRankingStore(catalog, ranking)
	changes, err := store.ApplyEdits([]domain.RankingEdit{
		{Item: "shaving mirror", TargetRank: 1},
		{Item: "sextant", TargetRank: 2},
	})
	require.NoError(t, err)
	require.Len(t, changes, 2)

	// Both FromRanks reflect the state before any edit of the batch
	// applied, even though the mirror's move happens first.
	assert.Equal(t, 2, changes[0].FromRank)
	assert.Equal(t, 1, changes[0].ToRank)
	assert.Equal(t, 1, changes[1].FromRank)
	assert.Equal(t, 2, changes[1].ToRank)

	assert.Equal(t, 1, ranking.RankOf("A shaving mirror"))
	assert.Equal(t, 2, ranking.RankOf("A sextant"))
}

func TestRankingStore_SequentialApplicationWithinBatch(t *testing.T) {
	// Later edits see earlier edits' effects: the mirror moves to slot
	// 1, then the sextant overwrites it there.
	ranking := &domain.Ranking{}
	catalog := domain.LostAtSeaCatalog()

	store := NewRankingStore(catalog, ranking)
	_, err := store.ApplyEdits([]domain.RankingEdit{
		{Item: "shaving mirror", TargetRank: 1},
		{Item: "sextant", TargetRank: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, ranking.RankOf("A sextant"))
	assert.Equal(t, 0, ranking.RankOf("A shaving mirror"), "overwritten occupant vanishes")
}

func TestRankingStore_InvalidRankRejectedRestApplies(t *testing.T) {
	ranking := &domain.Ranking{}
	store := NewRankingStore(domain.LostAtSeaCatalog(), ranking)

	changes, err := store.ApplyEdits([]domain.RankingEdit{
		{Item: "sextant", TargetRank: 0},
		{Item: "shaving mirror", TargetRank: 16},
		{Item: "nylon", TargetRank: 3},
	})

	require.Error(t, err)
	var invalid *domain.InvalidRankError
	assert.True(t, errors.As(err, &invalid))

	require.Len(t, changes, 1, "only the valid edit produces a change")
	assert.Equal(t, 3, ranking.RankOf("15 feet of nylon rope"))
	assert.Equal(t, 0, ranking.RankOf("A sextant"))
}

func TestRankingStore_EmptyBatch(t *testing.T) {
	store := NewRankingStore(domain.LostAtSeaCatalog(), &domain.Ranking{})
	changes, err := store.ApplyEdits(nil)
	assert.NoError(t, err)
	assert.Empty(t, changes)
}
