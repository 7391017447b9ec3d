// Package engine implements the turn-scheduling and session-state core
// of the discussion simulation: ranking mutation, interest aggregation,
// turn selection, end conditions, and outcome scoring.
package engine

import (
	"errors"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/ahrav/go-roundtable/internal/domain"
)

// foldCaser is a package-level Unicode case folder for performance.
// This avoids creating a new caser for each name comparison.
var foldCaser = cases.Fold()

// RankingStore applies oracle-requested edit batches to a ranking,
// resolving loose item names against the catalog.
type RankingStore struct {
	catalog domain.Catalog
	ranking *domain.Ranking
}

// NewRankingStore creates a store over the given catalog and ranking.
// The ranking is mutated in place by ApplyEdits.
func NewRankingStore(catalog domain.Catalog, ranking *domain.Ranking) *RankingStore {
	return &RankingStore{catalog: catalog, ranking: ranking}
}

// Ranking returns the underlying ranking.
func (rs *RankingStore) Ranking() *domain.Ranking { return rs.ranking }

// ApplyEdits applies a batch of edits. Change records are computed from
// the pre-batch state for the whole batch; the edits themselves are then
// applied sequentially against the same slots. Removing an item from its
// old slot leaves that slot empty, and writing into a slot overwrites
// whatever occupied it. A displaced item vanishes from the visible
// ranking until re-placed.
//
// Edits targeting a rank outside 1..15 are rejected individually; the
// rest of the batch still applies. The returned error joins the
// per-edit rejections and is non-nil only for invalid ranks.
func (rs *RankingStore) ApplyEdits(edits []domain.RankingEdit) ([]domain.Change, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	var rejected []error
	changes := make([]domain.Change, 0, len(edits))
	resolved := make([]domain.SalvageItem, 0, len(edits))

	for _, edit := range edits {
		if edit.TargetRank < 1 || edit.TargetRank > domain.NumSlots {
			rejected = append(rejected, &domain.InvalidRankError{Item: edit.Item, Rank: edit.TargetRank})
			continue
		}

		item, suggestion := rs.resolve(edit.Item)
		resolved = append(resolved, item)
		changes = append(changes, domain.Change{
			Item:       item,
			FromRank:   rs.ranking.RankOf(item.Name),
			ToRank:     edit.TargetRank,
			Suggestion: suggestion,
		})
	}

	for i, item := range resolved {
		rs.ranking.Place(item, changes[i].ToRank)
	}

	return changes, errors.Join(rejected...)
}

// resolve matches a raw edit name against the catalog using
// case-insensitive substring containment: the catalog item matches when
// its name contains the given string. When nothing matches, the raw
// string becomes the item's display name with no emoji, and the closest
// catalog name by Levenshtein distance is returned as a suggestion.
func (rs *RankingStore) resolve(raw string) (domain.SalvageItem, string) {
	needle := foldCaser.String(strings.TrimSpace(raw))
	for _, item := range rs.catalog {
		if strings.Contains(foldCaser.String(item.Name), needle) {
			return item, ""
		}
	}
	return domain.SalvageItem{Name: raw}, rs.closestCatalogName(raw)
}

// closestCatalogName returns the catalog name with the smallest edit
// distance to the given string. Diagnostic only; resolution behavior
// never depends on it.
func (rs *RankingStore) closestCatalogName(raw string) string {
	best := ""
	bestDist := -1
	folded := foldCaser.String(raw)
	for _, item := range rs.catalog {
		d := levenshtein.ComputeDistance(folded, foldCaser.String(item.Name))
		if bestDist == -1 || d < bestDist {
			best = item.Name
			bestDist = d
		}
	}
	return best
}
