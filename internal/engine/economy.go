// Settlement economy and resource extraction, advanced one tick at a time.
package engine

import (
	"fmt"
	"math"

	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/entity"
	"github.com/veldtworks/marchlands/internal/world"
)

// tickEconomy runs resource extraction and regeneration, then the per-
// settlement economic update, in that order.
func (s *Simulation) tickEconomy(tick uint64) {
	for _, sett := range s.Settlements {
		for res := range sett.Production {
			delete(sett.Production, res)
		}
	}

	s.extractResources()
	s.regenerateResources()

	for _, sett := range s.Settlements {
		s.settlementTick(sett, tick)
	}
}

// extractResources lets every complete extraction building draw from its
// deposit and credit the yield to the nearest connected settlement.
func (s *Simulation) extractResources() {
	for _, b := range s.Buildings {
		if !b.Complete() || b.TargetResource == "" {
			continue
		}
		res, ok := s.ResourceIndex[b.TargetResource]
		if !ok || res.Remaining <= 0 {
			continue
		}

		rate := res.ExtractRate
		if owner, ok := s.PlayerIndex[b.Owner]; ok && b.Type == catalog.BuildingFarm {
			rate *= owner.EffectScale("farmYield")
		}
		amount := math.Min(rate, res.Remaining)
		if amount <= 0 {
			continue
		}

		target := s.deliveryTarget(b)
		if target == nil {
			continue // yield is lost without a settlement to receive it
		}

		res.Remaining -= amount
		produced := res.Produces()
		target.Stock[produced] += amount
		target.Production[produced] += amount
	}
}

// deliveryTarget finds the nearest settlement owned by the building's player
// that is reachable over a completed same-owner road, falling back to simple
// proximity when no road connects.
func (s *Simulation) deliveryTarget(b *entity.Building) *entity.Settlement {
	var best *entity.Settlement
	bestDist := 0.0
	for _, sett := range s.Settlements {
		if sett.Owner != b.Owner {
			continue
		}
		connected := s.roadConnects(b.Owner, b.Pos, sett)
		if !connected && world.Dist(b.Pos, sett.Pos) > ExtractionFallback {
			continue
		}
		d := world.Dist(b.Pos, sett.Pos)
		if best == nil || d < bestDist {
			best = sett
			bestDist = d
		}
	}
	return best
}

// roadConnects reports whether a completed road owned by the player passes
// near both the given point and the settlement.
func (s *Simulation) roadConnects(owner entity.PlayerID, pos world.Vec2, sett *entity.Settlement) bool {
	for _, r := range s.Roads {
		if r.Owner != owner || !r.Complete() {
			continue
		}
		if world.DistToPolyline(pos, r.Waypoints) > RoadProximity {
			continue
		}
		if world.DistToPolyline(sett.Pos, r.Waypoints) <= sett.Radius+RoadProximity {
			return true
		}
	}
	return false
}

// regenerateResources moves renewable deposits back toward their total,
// independent of extraction.
func (s *Simulation) regenerateResources() {
	for _, res := range s.Resources {
		if !res.Renewable() || res.RegenRate <= 0 {
			continue
		}
		res.Remaining = math.Min(res.Total, res.Remaining+res.RegenRate)
	}
}

// settlementTick advances one settlement's economy. The step order is fixed:
// food, population, overcrowding, income, contentment, unrest, revolt.
func (s *Simulation) settlementTick(sett *entity.Settlement, tick uint64) {
	// Income is taxed on the population entering the tick, not on this
	// tick's growth.
	startPop := sett.Population

	// 1. Food consumption.
	need := float64(sett.Population) * FoodPerPersonPerTick
	shortage := sett.Stock[catalog.Food] < need
	sett.Stock[catalog.Food] -= need
	if sett.Stock[catalog.Food] < 0 {
		sett.Stock[catalog.Food] = 0
	}

	// 2. Growth or starvation.
	if !shortage {
		if sett.Population < sett.HousingCap {
			growth := int(math.Floor(float64(sett.Population) * GrowthRate))
			if growth < 1 {
				growth = 1
			}
			sett.Population += growth
		}
	} else {
		loss := int(math.Floor(float64(sett.Population) * StarvationRate))
		if loss < 1 {
			loss = 1
		}
		sett.Population -= loss
		if sett.Population < PopulationFloor {
			sett.Population = PopulationFloor
		}
	}

	// 3. Overcrowding penalty.
	if sett.Population > sett.HousingCap {
		sett.Contentment -= OvercrowdingPenalty
	}

	// 4. Tax income.
	income := float64(startPop) * IncomePerPerson * sett.TaxRate
	if owner, ok := s.PlayerIndex[sett.Owner]; ok {
		income *= owner.EffectScale("taxIncome")
	}
	if sett.HasBuilding(catalog.BuildingMarket) {
		income *= catalog.Buildings[catalog.BuildingMarket].IncomeBonus
	}
	sett.Treasury += income

	// 5. Contentment adjustments.
	delta := ContentmentDrift
	if sett.TaxRate > HighTaxBand {
		delta -= (sett.TaxRate - HighTaxBand) * HighTaxPenaltyScale
	} else if sett.TaxRate < LowTaxBand {
		delta += LowTaxBonus
	}
	delta += sett.PublicInvestment * InvestmentBonusScale
	if len(sett.Garrison) > 0 {
		delta += GarrisonBonus
	}
	if sett.HasBuilding(catalog.BuildingGranary) {
		delta += catalog.Buildings[catalog.BuildingGranary].ContentmentBonus
	}
	if shortage {
		delta -= 3 // hunger erodes contentment fast
	}
	sett.Contentment = clampf(sett.Contentment+delta, 0, 100)

	// 6. Unrest accrual or decay.
	if sett.Contentment < UnrestThreshold {
		sett.Unrest += (UnrestThreshold - sett.Contentment) * UnrestAccrualScale
	} else {
		sett.Unrest = math.Max(0, sett.Unrest-UnrestDecay)
	}

	// 7. Revolt. A neutral settlement has nobody to throw off; its unrest
	// still resets at the threshold.
	if sett.Unrest >= sett.RevoltThreshold {
		if sett.Owner == entity.Neutral {
			sett.Unrest = 0
			return
		}
		former := sett.Owner
		sett.Unrest = 0
		sett.Owner = entity.Neutral
		s.Emit(Event{
			Tick:        tick,
			Kind:        EventSettlementRevolted,
			Description: fmt.Sprintf("%s has revolted and thrown off its ruler", sett.Name),
			Meta:        map[string]any{"settlement_id": sett.ID, "former_owner": former},
		})
	}
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
