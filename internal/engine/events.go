package engine

// EventKind classifies a domain event.
type EventKind string

const (
	EventTick               EventKind = "tick_advanced"
	EventSettlementRevolted EventKind = "settlement_revolted"
	EventSettlementCaptured EventKind = "settlement_captured"
	EventBattleStarted      EventKind = "battle_started"
	EventBattleEnded        EventKind = "battle_ended"
	EventResearchComplete   EventKind = "research_complete"
	EventActionFailed       EventKind = "action_failed"
	EventGameOver           EventKind = "game_over"
)

// Event is a notable occurrence in the world. Events are queued in order on
// the simulation and drained by the presentation collaborator after each
// tick; the simulation itself never consumes them.
type Event struct {
	Tick        uint64         `json:"tick"`
	Kind        EventKind      `json:"kind"`
	Description string         `json:"description"`
	Meta        map[string]any `json:"meta,omitempty"`
}

// Emit appends an event to the pending queue.
func (s *Simulation) Emit(e Event) {
	s.events = append(s.events, e)
}

// DrainEvents returns all pending events in emission order and clears the
// queue.
func (s *Simulation) DrainEvents() []Event {
	out := s.events
	s.events = nil
	return out
}
