// Victory evaluation, run after all other subsystems each tick.
package engine

import "github.com/veldtworks/marchlands/internal/entity"

// checkVictory tests the end conditions in fixed priority: domination,
// elimination, then economic. Scientific victory fires from research
// completion directly. The first satisfied condition ends the game.
func (s *Simulation) checkVictory(tick uint64) {
	if s.Winner != nil || len(s.Settlements) == 0 {
		return
	}

	counts := make(map[entity.PlayerID]int)
	for _, sett := range s.Settlements {
		if sett.Owner != entity.Neutral {
			counts[sett.Owner]++
		}
	}

	// Domination: at least 75% of all settlements under one owner.
	total := float64(len(s.Settlements))
	for owner, n := range counts {
		if float64(n)/total >= DominationShare {
			s.declareWinner(tick, owner, "domination")
			return
		}
	}

	// Elimination: exactly one owner holds any settlements.
	if len(counts) == 1 {
		for owner := range counts {
			s.declareWinner(tick, owner, "elimination")
			return
		}
	}

	// Economic: total treasury across owned settlements.
	for _, p := range s.Players {
		treasury := 0.0
		for _, sett := range s.Settlements {
			if sett.Owner == p.ID {
				treasury += sett.Treasury
			}
		}
		if treasury >= EconomicThreshold {
			s.declareWinner(tick, p.ID, "economic")
			return
		}
	}
}
