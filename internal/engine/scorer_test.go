package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ahrav/go-roundtable/internal/domain"
)

func TestTaskScore_PerfectRanking(t *testing.T) {
	catalog := domain.LostAtSeaCatalog()
	ranking := &domain.Ranking{}
	for _, item := range catalog {
		ranking.Place(item, item.GroundTruthRank)
	}

	assert.Equal(t, 0, TaskScore(ranking, catalog))
}

func TestTaskScore_EmptyRankingSumsGroundTruthRanks(t *testing.T) {
	catalog := domain.LostAtSeaCatalog()
	ranking := &domain.Ranking{}

	// 1+2+...+15: every unplaced item contributes its own rank.
	assert.Equal(t, 120, TaskScore(ranking, catalog))
}

func TestTaskScore_MixedPlacement(t *testing.T) {
	catalog := domain.Catalog{
		{Name: "A", GroundTruthRank: 1},
		{Name: "B", GroundTruthRank: 2},
		{Name: "C", GroundTruthRank: 3},
	}
	ranking := &domain.Ranking{}
	ranking.Place(catalog[0], 3) // |3-1| = 2
	ranking.Place(catalog[1], 2) // |2-2| = 0
	// C unplaced, contributes 3.

	assert.Equal(t, 5, TaskScore(ranking, catalog))
}

func TestTaskScore_Idempotent(t *testing.T) {
	catalog := domain.LostAtSeaCatalog()
	ranking := &domain.Ranking{}
	ranking.Place(catalog[4], 1)
	ranking.Place(catalog[9], 2)

	first := TaskScore(ranking, catalog)
	second := TaskScore(ranking, catalog)
	assert.Equal(t, first, second)
}
