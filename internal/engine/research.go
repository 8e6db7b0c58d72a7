// Research accrual and technology completion.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/entity"
)

// tickResearch accrues research points for every player with a current
// target and completes technologies whose cost is reached.
func (s *Simulation) tickResearch(tick uint64) {
	for _, p := range s.Players {
		if p.CurrentResearch == "" {
			continue
		}
		tech, ok := catalog.Technologies[p.CurrentResearch]
		if !ok {
			p.CurrentResearch = ""
			continue
		}

		p.ResearchProgress += s.researchOutput(p)
		if p.ResearchProgress < tech.Cost {
			continue
		}
		s.completeResearch(p, tech, tick)
	}
}

// researchOutput sums per-settlement output for the player: a population-
// scaled base plus a flat bonus per library, scaled by researched effects.
func (s *Simulation) researchOutput(p *entity.Player) float64 {
	points := 0.0
	for _, sett := range s.Settlements {
		if sett.Owner != p.ID {
			continue
		}
		out := float64(sett.Population) * ResearchPerPop
		out += float64(sett.Buildings[catalog.BuildingLibrary]) * catalog.Buildings[catalog.BuildingLibrary].ResearchBonus
		points += out
	}
	return points * p.EffectScale("researchOutput")
}

// completeResearch marks the technology researched, merges its effects, and
// fires the completion event. A victory effect ends the game on the spot.
func (s *Simulation) completeResearch(p *entity.Player, tech catalog.Technology, tick uint64) {
	p.Researched[tech.ID] = true
	p.CurrentResearch = ""
	p.ResearchProgress = 0
	p.MergeEffects(tech.Effects)

	slog.Info("research complete", "player", p.Name, "tech", tech.ID, "tick", tick)
	s.Emit(Event{
		Tick:        tick,
		Kind:        EventResearchComplete,
		Description: fmt.Sprintf("%s has discovered %s", p.Name, tech.Name),
		Meta:        map[string]any{"player": p.ID, "tech": string(tech.ID)},
	})

	if vt, ok := tech.Effects["victory"].(string); ok {
		s.declareWinner(tick, p.ID, vt)
	}
}
