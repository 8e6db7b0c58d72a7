// Battle lifecycle: creation from encounters, per-tick resolution, and
// cleanup of resolved battles.
package engine

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/entity"
)

// startFieldBattle opens a battle between two opposing armies where they met.
func (s *Simulation) startFieldBattle(attacker, defender *entity.Army, tick uint64) {
	kind := entity.BattleField
	if s.terrainFactor(attacker.Pos) > OffRoadMultiplier {
		kind = entity.BattleRoad
	}
	b := &entity.Battle{
		ID:                    uuid.NewString(),
		Kind:                  kind,
		Location:              attacker.Pos,
		Status:                entity.BattleOngoing,
		AttackerID:            attacker.ID,
		DefenderID:            defender.ID,
		AttackerStartStrength: attacker.TotalStrength(),
		DefenderStartStrength: defender.TotalStrength(),
		TerrainMod:            1,
		FortMod:               1,
		StartTick:             tick,
	}
	attacker.InBattle = true
	defender.InBattle = true
	s.addBattle(b)
	s.Emit(Event{
		Tick:        tick,
		Kind:        EventBattleStarted,
		Description: fmt.Sprintf("battle joined between %s and %s", attacker.Owner, defender.Owner),
		Meta:        map[string]any{"battle_id": b.ID, "kind": string(b.Kind)},
	})
}

// startSiege opens a siege against a settlement; the defender is a garrison
// pseudo-army snapshotted once and cached for the siege's duration.
func (s *Simulation) startSiege(attacker *entity.Army, sett *entity.Settlement, tick uint64) {
	garrison := entity.NewGarrison(sett)
	b := &entity.Battle{
		ID:                    uuid.NewString(),
		Kind:                  entity.BattleSiege,
		Location:              sett.Pos,
		Status:                entity.BattleOngoing,
		AttackerID:            attacker.ID,
		SettlementID:          sett.ID,
		Garrison:              garrison,
		AttackerStartStrength: attacker.TotalStrength(),
		DefenderStartStrength: garrison.TotalStrength(),
		TerrainMod:            1,
		FortMod:               fortificationMod(sett.Fortification),
		StartTick:             tick,
	}
	attacker.InBattle = true
	s.addBattle(b)
	s.Emit(Event{
		Tick:        tick,
		Kind:        EventBattleStarted,
		Description: fmt.Sprintf("%s is under siege", sett.Name),
		Meta:        map[string]any{"battle_id": b.ID, "kind": string(b.Kind), "settlement_id": sett.ID},
	})
}

// tickBattles resolves every ongoing battle by one round and cleans up any
// that finished.
func (s *Simulation) tickBattles(tick uint64) {
	// Collect first: resolution mutates the battle slice.
	ongoing := make([]*entity.Battle, 0, len(s.Battles))
	ongoing = append(ongoing, s.Battles...)
	for _, b := range ongoing {
		if b.Status != entity.BattleOngoing {
			continue
		}
		s.resolveBattleTick(b, tick)
		if b.Status != entity.BattleOngoing {
			s.finishBattle(b, tick)
		}
	}
}

// resolveBattleTick runs one round of combat. A missing participant is an
// automatic win for the remaining side.
func (s *Simulation) resolveBattleTick(b *entity.Battle, tick uint64) {
	attacker, defender := s.participants(b)
	if attacker == nil {
		b.Status = entity.BattleDefenderWins
		return
	}
	if defender == nil {
		b.Status = entity.BattleAttackerWins
		return
	}

	attackerPower := attacker.TotalStrength() * (attacker.Morale() / 100)
	defenderPower := defender.TotalStrength() * (defender.Morale() / 100) * b.TerrainMod * b.FortMod

	// Zero power is an immediate loss, never a division fault.
	if attackerPower <= 0 {
		b.Status = entity.BattleDefenderWins
		return
	}
	if defenderPower <= 0 {
		b.Status = entity.BattleAttackerWins
		return
	}

	// Casualties dealt to a side scale with the opposing side's power, with
	// a floor of one to guarantee the battle makes progress. This yields
	// large casualty counts against very strong opponents; that is the
	// intended (balance-sensitive) behavior.
	attackerLoss := int(math.Max(1, math.Floor(defenderPower*CasualtyRate)))
	defenderLoss := int(math.Max(1, math.Floor(attackerPower*CasualtyRate)))

	attackerApplied := attacker.ApplyCasualties(attackerLoss)
	defenderApplied := defender.ApplyCasualties(defenderLoss)
	b.AttackerCasualties += attackerApplied
	b.DefenderCasualties += defenderApplied

	if b.AttackerStartStrength > 0 {
		attacker.ReduceMorale(float64(attackerApplied) / b.AttackerStartStrength * MoraleLossFactor)
	}
	if b.DefenderStartStrength > 0 {
		defender.ReduceMorale(float64(defenderApplied) / b.DefenderStartStrength * MoraleLossFactor)
	}

	// Rout checks, attacker first.
	if routed(attacker) {
		b.Status = entity.BattleDefenderWins
		return
	}
	if routed(defender) {
		b.Status = entity.BattleAttackerWins
		return
	}
}

// routed reports whether a side has lost the will or the numbers to fight.
func routed(p entity.BattleParticipant) bool {
	return p.Morale() < RoutMoraleFloor ||
		p.TotalStrength() < RoutStrengthFloor ||
		p.TotalUnits() < RoutStrengthFloor
}

// participants resolves the battle's sides. Either may be nil if the
// underlying army no longer exists.
func (s *Simulation) participants(b *entity.Battle) (attacker, defender entity.BattleParticipant) {
	if a, ok := s.ArmyIndex[b.AttackerID]; ok {
		attacker = a
	}
	if b.Kind == entity.BattleSiege {
		defender = b.Garrison
	} else if d, ok := s.ArmyIndex[b.DefenderID]; ok {
		defender = d
	}
	return attacker, defender
}

// finishBattle applies the outcome: flags cleared, sieges transfer ownership
// on an attacker win, emptied armies removed, the battle record deleted.
func (s *Simulation) finishBattle(b *entity.Battle, tick uint64) {
	attacker := s.ArmyIndex[b.AttackerID]
	if attacker != nil {
		attacker.InBattle = false
	}
	if defender, ok := s.ArmyIndex[b.DefenderID]; ok {
		defender.InBattle = false
	}

	if b.Kind == entity.BattleSiege {
		s.finishSiege(b, attacker, tick)
	}

	// Armies reduced to nothing leave the world.
	for _, id := range []string{b.AttackerID, b.DefenderID} {
		if a, ok := s.ArmyIndex[id]; ok && a.TotalUnits() <= 0 {
			s.removeArmy(id)
		}
	}

	s.removeBattle(b.ID)
	s.Emit(Event{
		Tick:        tick,
		Kind:        EventBattleEnded,
		Description: fmt.Sprintf("battle resolved: %s", b.Status),
		Meta: map[string]any{
			"battle_id":           b.ID,
			"status":              string(b.Status),
			"attacker_casualties": b.AttackerCasualties,
			"defender_casualties": b.DefenderCasualties,
		},
	})
}

// finishSiege writes surviving garrison units back to the settlement and,
// on an attacker win, hands the settlement to the attacker's owner.
func (s *Simulation) finishSiege(b *entity.Battle, attacker *entity.Army, tick uint64) {
	sett, ok := s.SettlementIndex[b.SettlementID]
	if !ok {
		return
	}

	if b.Garrison != nil {
		garrison := make(map[catalog.UnitType]int, len(b.Garrison.Units))
		for ut, n := range b.Garrison.Units {
			garrison[ut] = n
		}
		sett.Garrison = garrison
	}

	if b.Status != entity.BattleAttackerWins || attacker == nil {
		return
	}

	former := sett.Owner
	sett.Owner = attacker.Owner
	sett.Contentment = CaptureContentment
	sett.Unrest = 0
	s.Emit(Event{
		Tick:        tick,
		Kind:        EventSettlementCaptured,
		Description: fmt.Sprintf("%s has fallen to %s", sett.Name, attacker.Owner),
		Meta: map[string]any{
			"settlement_id": sett.ID,
			"former_owner":  former,
			"new_owner":     attacker.Owner,
		},
	})
}
