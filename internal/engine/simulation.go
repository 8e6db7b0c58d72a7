// Package engine owns the authoritative world state and advances it one tick
// at a time: economy, construction, research, movement, battles, victory,
// then AI, in that fixed order. Everything outside this package interacts
// with the state through the action API and read snapshots only.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/veldtworks/marchlands/internal/catalog"
	"github.com/veldtworks/marchlands/internal/entity"
	"github.com/veldtworks/marchlands/internal/world"
)

// Controller is a per-player decision loop run once per tick, after victory
// evaluation. The AI package implements it against the same action API the
// presentation layer uses.
type Controller interface {
	Step(tick uint64)
}

// GameResult records a finished game.
type GameResult struct {
	Winner      entity.PlayerID `json:"winner"`
	VictoryType string          `json:"victory_type"`
	Tick        uint64          `json:"tick"`
}

// Simulation holds the complete world state and runs all subsystems.
type Simulation struct {
	Seed int64

	Players     []*entity.Player
	PlayerIndex map[entity.PlayerID]*entity.Player

	Settlements     []*entity.Settlement
	SettlementIndex map[string]*entity.Settlement

	Resources     []*entity.NaturalResource
	ResourceIndex map[string]*entity.NaturalResource

	Roads     []*entity.Road
	RoadIndex map[string]*entity.Road

	Buildings     []*entity.Building
	BuildingIndex map[string]*entity.Building

	Armies    []*entity.Army
	ArmyIndex map[string]*entity.Army

	Battles     []*entity.Battle
	BattleIndex map[string]*entity.Battle

	LastTick uint64
	Winner   *GameResult

	Controllers []Controller

	events []Event
}

// NewSimulation builds a simulation from generated map placements and the
// configured players. Settlements and deposits get seed-stable ids.
func NewSimulation(seed int64, gen world.GenResult, players []*entity.Player) *Simulation {
	s := &Simulation{
		Seed:            seed,
		PlayerIndex:     make(map[entity.PlayerID]*entity.Player),
		SettlementIndex: make(map[string]*entity.Settlement),
		ResourceIndex:   make(map[string]*entity.NaturalResource),
		RoadIndex:       make(map[string]*entity.Road),
		BuildingIndex:   make(map[string]*entity.Building),
		ArmyIndex:       make(map[string]*entity.Army),
		BattleIndex:     make(map[string]*entity.Battle),
	}

	for _, p := range players {
		s.Players = append(s.Players, p)
		s.PlayerIndex[p.ID] = p
	}

	for i, site := range gen.Settlements {
		owner := entity.Neutral
		if site.PlayerSlot >= 0 && site.PlayerSlot < len(players) {
			owner = players[site.PlayerSlot].ID
		}
		sett := entity.NewSettlement(fmt.Sprintf("settlement-%d", i+1), site.Name, site.Pos, owner, site.Population)
		sett.Capital = site.Capital
		if site.Capital {
			// Capitals start with a standing garrison.
			sett.Garrison[catalog.UnitMilitia] = 10
			sett.Treasury = 500
		}
		s.addSettlement(sett)
	}

	for i, site := range gen.Deposits {
		res := entity.NewNaturalResource(fmt.Sprintf("deposit-%d", i+1), site.Kind, site.Pos, site.Amount)
		s.Resources = append(s.Resources, res)
		s.ResourceIndex[res.ID] = res
	}

	s.aggregateTotals()
	return s
}

// CurrentTick returns the most recently processed tick number.
func (s *Simulation) CurrentTick() uint64 { return s.LastTick }

// Tick advances the whole simulation by one step. Subsystem order is fixed;
// later subsystems read state mutated earlier in the same tick. Once a
// winner is declared the simulation stops advancing.
func (s *Simulation) Tick() {
	if s.Winner != nil {
		return
	}
	s.LastTick++
	tick := s.LastTick

	s.tickEconomy(tick)
	s.tickConstruction(tick)
	s.tickResearch(tick)
	if s.Winner == nil { // scientific victory can end the game mid-tick
		s.tickMovement(tick)
		s.tickBattles(tick)
		s.checkVictory(tick)
	}
	if s.Winner == nil {
		for _, c := range s.Controllers {
			c.Step(tick)
		}
	}
	s.aggregateTotals()

	s.Emit(Event{Tick: tick, Kind: EventTick, Description: fmt.Sprintf("tick %d", tick)})
}

// declareWinner records the game result and fires the game-over event.
// The first declared winner sticks.
func (s *Simulation) declareWinner(tick uint64, winner entity.PlayerID, victoryType string) {
	if s.Winner != nil {
		return
	}
	s.Winner = &GameResult{Winner: winner, VictoryType: victoryType, Tick: tick}
	name := string(winner)
	if p, ok := s.PlayerIndex[winner]; ok {
		name = p.Name
	}
	slog.Info("game over", "winner", name, "victory", victoryType, "tick", tick)
	s.Emit(Event{
		Tick:        tick,
		Kind:        EventGameOver,
		Description: fmt.Sprintf("%s wins by %s", name, victoryType),
		Meta:        map[string]any{"winner": winner, "victory_type": victoryType},
	})
}

// aggregateTotals recomputes per-player resource and treasury aggregates
// from owned settlements. Runs last in every tick.
func (s *Simulation) aggregateTotals() {
	for _, p := range s.Players {
		for _, res := range catalog.Resources {
			p.ResourceTotals[res] = 0
		}
		p.TreasuryTotal = 0
	}
	for _, sett := range s.Settlements {
		p, ok := s.PlayerIndex[sett.Owner]
		if !ok {
			continue
		}
		for res, amt := range sett.Stock {
			p.ResourceTotals[res] += amt
		}
		p.TreasuryTotal += sett.Treasury
	}
}

func (s *Simulation) addSettlement(sett *entity.Settlement) {
	s.Settlements = append(s.Settlements, sett)
	s.SettlementIndex[sett.ID] = sett
}

func (s *Simulation) addRoad(r *entity.Road) {
	s.Roads = append(s.Roads, r)
	s.RoadIndex[r.ID] = r
}

func (s *Simulation) addBuilding(b *entity.Building) {
	s.Buildings = append(s.Buildings, b)
	s.BuildingIndex[b.ID] = b
}

func (s *Simulation) addArmy(a *entity.Army) {
	s.Armies = append(s.Armies, a)
	s.ArmyIndex[a.ID] = a
}

func (s *Simulation) addBattle(b *entity.Battle) {
	s.Battles = append(s.Battles, b)
	s.BattleIndex[b.ID] = b
}

func (s *Simulation) removeRoad(id string) {
	if _, ok := s.RoadIndex[id]; !ok {
		return
	}
	delete(s.RoadIndex, id)
	s.Roads = deleteByID(s.Roads, func(r *entity.Road) string { return r.ID }, id)
}

func (s *Simulation) removeBuilding(id string) {
	b, ok := s.BuildingIndex[id]
	if !ok {
		return
	}
	// Clear the deposit's back-reference so no dangling association remains.
	if b.TargetResource != "" {
		if res, ok := s.ResourceIndex[b.TargetResource]; ok && res.AssignedBuilding == id {
			res.AssignedBuilding = ""
		}
	}
	delete(s.BuildingIndex, id)
	s.Buildings = deleteByID(s.Buildings, func(b *entity.Building) string { return b.ID }, id)
}

func (s *Simulation) removeArmy(id string) {
	if _, ok := s.ArmyIndex[id]; !ok {
		return
	}
	delete(s.ArmyIndex, id)
	s.Armies = deleteByID(s.Armies, func(a *entity.Army) string { return a.ID }, id)
}

func (s *Simulation) removeBattle(id string) {
	if _, ok := s.BattleIndex[id]; !ok {
		return
	}
	delete(s.BattleIndex, id)
	s.Battles = deleteByID(s.Battles, func(b *entity.Battle) string { return b.ID }, id)
}

// deleteByID filters one element out of a slice, preserving order.
func deleteByID[T any](items []T, id func(T) string, target string) []T {
	out := items[:0]
	for _, it := range items {
		if id(it) != target {
			out = append(out, it)
		}
	}
	return out
}

// nearestOwnedSettlement returns the closest settlement owned by the player,
// or nil if the player holds none.
func (s *Simulation) nearestOwnedSettlement(owner entity.PlayerID, pos world.Vec2) *entity.Settlement {
	var best *entity.Settlement
	bestDist := 0.0
	for _, sett := range s.Settlements {
		if sett.Owner != owner {
			continue
		}
		d := world.Dist(sett.Pos, pos)
		if best == nil || d < bestDist {
			best = sett
			bestDist = d
		}
	}
	return best
}
