package catalog

// TechID identifies a researchable technology.
type TechID string

const (
	TechAgriculture   TechID = "agriculture"
	TechMasonry       TechID = "masonry"
	TechMathematics   TechID = "mathematics"
	TechEngineering   TechID = "engineering"
	TechIronworking   TechID = "ironworking"
	TechConscription  TechID = "conscription"
	TechCurrency      TechID = "currency"
	TechBanking       TechID = "banking"
	TechEducation     TechID = "education"
	TechRailroads     TechID = "railroads"
	TechTranscendence TechID = "transcendence"
)

// Technology is an immutable catalog entry, not per-game state.
// Numeric effects merge multiplicatively into a player's effect table on
// completion; non-numeric effects are assigned directly. An effect under the
// "victory" key ends the game for the researching player.
type Technology struct {
	ID       TechID
	Name     string
	Cost     float64  // research points to complete
	Requires []TechID // all must be researched first
	Effects  map[string]any
	Military bool // biases aggressive AI research choices
}

// Technologies is the research catalog, keyed by id.
var Technologies = map[TechID]Technology{
	TechAgriculture: {
		ID:   TechAgriculture,
		Name: "Agriculture",
		Cost: 50,
		Effects: map[string]any{
			"farmYield": 1.25,
		},
	},
	TechMasonry: {
		ID:   TechMasonry,
		Name: "Masonry",
		Cost: 80,
		Effects: map[string]any{
			"unlockBuilding": string(BuildingWalls),
		},
	},
	TechMathematics: {
		ID:   TechMathematics,
		Name: "Mathematics",
		Cost: 100,
		Effects: map[string]any{
			"researchOutput": 1.2,
		},
	},
	TechEngineering: {
		ID:       TechEngineering,
		Name:     "Engineering",
		Cost:     160,
		Requires: []TechID{TechMathematics},
		Effects: map[string]any{
			"buildSpeed": 1.5,
			"unlockUnit": string(UnitCatapult),
		},
	},
	TechIronworking: {
		ID:       TechIronworking,
		Name:     "Ironworking",
		Cost:     120,
		Requires: []TechID{TechMasonry},
		Effects: map[string]any{
			"unitStrength": 1.2,
		},
		Military: true,
	},
	TechConscription: {
		ID:       TechConscription,
		Name:     "Conscription",
		Cost:     140,
		Requires: []TechID{TechIronworking},
		Effects: map[string]any{
			"trainSpeed": 1.5,
		},
		Military: true,
	},
	TechCurrency: {
		ID:   TechCurrency,
		Name: "Currency",
		Cost: 90,
		Effects: map[string]any{
			"taxIncome": 1.25,
		},
	},
	TechBanking: {
		ID:       TechBanking,
		Name:     "Banking",
		Cost:     180,
		Requires: []TechID{TechCurrency},
		Effects: map[string]any{
			"taxIncome": 1.25,
		},
	},
	TechEducation: {
		ID:       TechEducation,
		Name:     "Education",
		Cost:     150,
		Requires: []TechID{TechMathematics},
		Effects: map[string]any{
			"researchOutput": 1.5,
		},
	},
	TechRailroads: {
		ID:       TechRailroads,
		Name:     "Railroads",
		Cost:     260,
		Requires: []TechID{TechEngineering, TechIronworking},
		Effects: map[string]any{
			"unlockRoad": string(RoadRail),
		},
	},
	TechTranscendence: {
		ID:       TechTranscendence,
		Name:     "Transcendence",
		Cost:     500,
		Requires: []TechID{TechEducation, TechEngineering, TechBanking},
		Effects: map[string]any{
			"victory": "scientific",
		},
	},
}

// PrereqsMet reports whether every prerequisite of the technology is present
// in the researched set. Unknown tech ids report false.
func PrereqsMet(id TechID, researched map[TechID]bool) bool {
	tech, ok := Technologies[id]
	if !ok {
		return false
	}
	for _, req := range tech.Requires {
		if !researched[req] {
			return false
		}
	}
	return true
}
