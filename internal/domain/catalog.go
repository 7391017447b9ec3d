package domain

// SalvageItem is an immutable catalog entry for the ranking exercise.
// Name is the globally unique, case-insensitive match key.
type SalvageItem struct {
	// ID uniquely identifies the item within the catalog.
	ID int `json:"id"`

	// Name is the item's display name and resolution key.
	Name string `json:"name"`

	// Emoji is the item's display emoji. Items synthesized from
	// unresolved edit names carry no emoji.
	Emoji string `json:"emoji"`

	// GroundTruthRank is the item's position in the correct-answer
	// ordering (1..15). Used only by the task scorer, never shown to
	// the ranking logic.
	GroundTruthRank int `json:"ground_truth_rank"`
}

// Catalog is the read-only set of items the group is ranking.
type Catalog []SalvageItem

// LostAtSeaCatalog returns the fifteen-item "Lost at Sea" catalog in
// ground-truth order.
func LostAtSeaCatalog() Catalog {
	return Catalog{
		{ID: 1, Name: "A shaving mirror", Emoji: "🪞", GroundTruthRank: 1},
		{ID: 2, Name: "A 10-liter can of oil/petrol mixture", Emoji: "⛽", GroundTruthRank: 2},
		{ID: 3, Name: "A 25-liter container of water", Emoji: "💧", GroundTruthRank: 3},
		{ID: 4, Name: "A case of army rations", Emoji: "🥫", GroundTruthRank: 4},
		{ID: 5, Name: "20 square feet of opaque plastic sheeting", Emoji: "📦", GroundTruthRank: 5},
		{ID: 6, Name: "2 boxes of chocolate bars", Emoji: "🍫", GroundTruthRank: 6},
		{ID: 7, Name: "An ocean fishing kit & pole", Emoji: "🎣", GroundTruthRank: 7},
		{ID: 8, Name: "15 feet of nylon rope", Emoji: "🪢", GroundTruthRank: 8},
		{ID: 9, Name: "A floating seat cushion", Emoji: "💺", GroundTruthRank: 9},
		{ID: 10, Name: "A can of shark repellent", Emoji: "🦈", GroundTruthRank: 10},
		{ID: 11, Name: "One bottle of 160 proof rum", Emoji: "🥃", GroundTruthRank: 11},
		{ID: 12, Name: "A small transistor radio", Emoji: "📻", GroundTruthRank: 12},
		{ID: 13, Name: "Maps of the Atlantic Ocean", Emoji: "🗺️", GroundTruthRank: 13},
		{ID: 14, Name: "A quantity of mosquito netting", Emoji: "🦟", GroundTruthRank: 14},
		{ID: 15, Name: "A sextant", Emoji: "🧭", GroundTruthRank: 15},
	}
}

// DefaultRoster returns the four stock personas used by the simulation.
func DefaultRoster() Roster {
	return Roster{
		{
			ID:            1,
			Name:          "Alice",
			CameraOn:      true,
			SpeakingStyle: "Friendly and collaborative, often asking questions to engage others",
			Description:   "A thoughtful team player who actively seeks to include everyone in the discussion",
		},
		{
			ID:            2,
			Name:          "Bob",
			CameraOn:      true,
			SpeakingStyle: "Direct and analytical, focuses on practical solutions",
			Description:   "A pragmatic problem-solver who helps keep discussions on track",
		},
		{
			ID:            3,
			Name:          "Charlie",
			CameraOn:      true,
			SpeakingStyle: "Creative and enthusiastic, brings new perspectives",
			Description:   "An innovative thinker who excels at generating unique ideas",
		},
		{
			ID:            4,
			Name:          "Diana",
			CameraOn:      true,
			SpeakingStyle: "Diplomatic and detail-oriented, helps build consensus",
			Description:   "A mediator who excels at finding common ground and synthesizing ideas",
		},
	}
}
