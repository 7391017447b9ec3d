package engine

import "github.com/ahrav/go-roundtable/internal/domain"

// TaskScore computes the quality of a final ranking against the
// catalog's ground truth: the sum over all catalog items of the
// absolute distance between current rank and ground-truth rank. An
// item never placed in any slot contributes its own ground-truth rank,
// as if it were ranked last. Lower is better. Pure and idempotent.
func TaskScore(ranking *domain.Ranking, catalog domain.Catalog) int {
	total := 0
	for _, item := range catalog {
		cur := ranking.RankOf(item.Name)
		if cur == 0 {
			total += item.GroundTruthRank
			continue
		}
		d := cur - item.GroundTruthRank
		if d < 0 {
			d = -d
		}
		total += d
	}
	return total
}
