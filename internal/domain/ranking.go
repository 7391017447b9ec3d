package domain

// NumSlots is the fixed number of positions in the ranking.
// Slot index + 1 is the rank an item currently occupies.
const NumSlots = 15

// RankingEdit is one requested move in a batch: place the item whose
// name fuzzy-matches Item at TargetRank. Produced by the oracle.
type RankingEdit struct {
	// Item is the item name or a fragment of it. Resolution is
	// case-insensitive substring containment against the catalog.
	Item string `json:"item" yaml:"item"`

	// TargetRank is the 1-based rank the item should occupy.
	TargetRank int `json:"target_rank" yaml:"target_rank"`
}

// Change records one applied edit, computed against the pre-batch
// state even though the batch itself is applied sequentially.
type Change struct {
	// Item is the resolved catalog item, or a synthesized item when
	// the edit's name matched nothing in the catalog.
	Item SalvageItem `json:"item"`

	// FromRank is the item's rank before the batch, 0 when unplaced.
	FromRank int `json:"from_rank"`

	// ToRank is the rank the edit targets.
	ToRank int `json:"to_rank"`

	// Suggestion names the closest catalog entry when resolution fell
	// back to the raw string. Diagnostic only.
	Suggestion string `json:"suggestion,omitempty"`
}

// Ranking holds the fifteen ordered slots. The zero value is an empty
// ranking. An item appears in at most one slot at any time.
type Ranking struct {
	slots [NumSlots]*SalvageItem
}

// ItemAt returns the item occupying the given rank (1..15), or nil
// when the slot is empty or the rank is out of range.
func (r *Ranking) ItemAt(rank int) *SalvageItem {
	if rank < 1 || rank > NumSlots {
		return nil
	}
	return r.slots[rank-1]
}

// RankOf returns the current rank of the item with the given name via
// linear scan, or 0 when the item is not placed. Names are compared
// exactly; fuzzy resolution happens before an item reaches the ranking.
func (r *Ranking) RankOf(name string) int {
	for i, it := range r.slots {
		if it != nil && it.Name == name {
			return i + 1
		}
	}
	return 0
}

// Place writes item into the slot for rank, overwriting any occupant.
// If the item already holds another slot, that slot is cleared first
// and left empty; subsequent items are never shifted to fill gaps.
// The overwrite-not-shift policy means placing onto an occupied slot
// silently evicts the previous occupant from the visible ranking.
func (r *Ranking) Place(item SalvageItem, rank int) {
	if rank < 1 || rank > NumSlots {
		return
	}
	if cur := r.RankOf(item.Name); cur != 0 {
		r.slots[cur-1] = nil
	}
	it := item
	r.slots[rank-1] = &it
}

// Slots returns a copy of the fifteen slots in rank order. Empty slots
// are nil.
func (r *Ranking) Slots() [NumSlots]*SalvageItem {
	var out [NumSlots]*SalvageItem
	for i, it := range r.slots {
		if it != nil {
			cp := *it
			out[i] = &cp
		}
	}
	return out
}

// Items returns the placed items keyed by rank.
func (r *Ranking) Items() map[int]SalvageItem {
	out := make(map[int]SalvageItem)
	for i, it := range r.slots {
		if it != nil {
			out[i+1] = *it
		}
	}
	return out
}

// Clone returns an independent copy of the ranking.
func (r *Ranking) Clone() *Ranking {
	out := &Ranking{}
	for i, it := range r.slots {
		if it != nil {
			cp := *it
			out.slots[i] = &cp
		}
	}
	return out
}
