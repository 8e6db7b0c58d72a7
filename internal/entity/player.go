package entity

import "github.com/veldtworks/marchlands/internal/catalog"

// Player is a participant in the game, human or AI driven. Players are
// created at game start and never destroyed, even after elimination.
type Player struct {
	ID    PlayerID `json:"id"`
	Name  string   `json:"name"`
	Color string   `json:"color"`
	AI    bool     `json:"ai"`

	// AI trait in [0,1]; higher favors military research and attacks.
	Aggressiveness float64 `json:"aggressiveness"`

	Researched       map[catalog.TechID]bool `json:"researched"`
	CurrentResearch  catalog.TechID          `json:"current_research,omitempty"`
	ResearchProgress float64                 `json:"research_progress"`

	// Effect table built up by completed technologies. Numeric effects
	// compose multiplicatively; non-numeric effects overwrite.
	Effects map[string]any `json:"effects"`

	// Aggregates recomputed at the end of every tick.
	ResourceTotals map[catalog.Resource]float64 `json:"resource_totals"`
	TreasuryTotal  float64                      `json:"treasury_total"`
}

// NewPlayer creates a player with empty research state.
func NewPlayer(id PlayerID, name, color string, ai bool) *Player {
	return &Player{
		ID:             id,
		Name:           name,
		Color:          color,
		AI:             ai,
		Researched:     make(map[catalog.TechID]bool),
		Effects:        make(map[string]any),
		ResourceTotals: make(map[catalog.Resource]float64),
	}
}

// EffectScale returns the numeric effect multiplier under key, defaulting
// to 1 when absent or non-numeric.
func (p *Player) EffectScale(key string) float64 {
	if v, ok := p.Effects[key].(float64); ok {
		return v
	}
	return 1
}

// MergeEffects folds a technology's effects into the player's effect table:
// numeric effects multiply against any existing numeric value, everything
// else is assigned directly.
func (p *Player) MergeEffects(effects map[string]any) {
	for key, val := range effects {
		num, isNum := val.(float64)
		if !isNum {
			p.Effects[key] = val
			continue
		}
		if existing, ok := p.Effects[key].(float64); ok {
			p.Effects[key] = existing * num
		} else {
			p.Effects[key] = num
		}
	}
}
