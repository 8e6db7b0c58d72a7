// Construction and training progress.
package engine

import (
	"fmt"
	"math"

	"github.com/veldtworks/marchlands/internal/entity"
)

// tickConstruction advances every incomplete road and building by a fixed
// rate, capped at completion, then works settlement training queues.
func (s *Simulation) tickConstruction(tick uint64) {
	for _, r := range s.Roads {
		if r.Complete() {
			continue
		}
		rate := RoadBuildRate
		if owner, ok := s.PlayerIndex[r.Owner]; ok {
			rate *= owner.EffectScale("buildSpeed")
		}
		r.BuiltLength = math.Min(r.TotalLength(), r.BuiltLength+rate)
	}

	for _, b := range s.Buildings {
		if b.Complete() {
			continue
		}
		rate := BuildingBuildRate
		if owner, ok := s.PlayerIndex[b.Owner]; ok {
			rate *= owner.EffectScale("buildSpeed")
		}
		b.Progress = math.Min(1, b.Progress+rate)
	}

	s.tickTraining(tick)
}

// tickTraining works the head of each settlement's training queue. One order
// trains at a time; finished units join the garrison.
func (s *Simulation) tickTraining(tick uint64) {
	for _, sett := range s.Settlements {
		if len(sett.Queue) == 0 || sett.Owner == entity.Neutral {
			continue
		}
		head := &sett.Queue[0]
		head.TicksLeft--
		if head.TicksLeft > 0 {
			continue
		}
		sett.Garrison[head.Unit]++
		sett.Queue = sett.Queue[1:]
		s.Emit(Event{
			Tick:        tick,
			Kind:        EventTick,
			Description: fmt.Sprintf("%s trained a %s", sett.Name, head.Unit),
			Meta:        map[string]any{"settlement_id": sett.ID, "unit": string(head.Unit)},
		})
	}
}

// trainDuration returns the tick count for one training order, shortened by
// the owner's trainSpeed effect.
func (s *Simulation) trainDuration(owner *entity.Player) int {
	ticks := float64(TrainTicks)
	if owner != nil {
		ticks /= owner.EffectScale("trainSpeed")
	}
	if ticks < 1 {
		ticks = 1
	}
	return int(ticks)
}
