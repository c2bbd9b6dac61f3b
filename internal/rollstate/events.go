package rollstate

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"
)

// Lifecycle events published on the configured event bus
const (
	EventRollStarted  = "dice.roll.started"
	EventDieSettled   = "dice.die.settled"
	EventRollRerolled = "dice.roll.rerolled"
	EventRollCleared  = "dice.roll.cleared"
	EventRollFinished = "dice.roll.finished"
)

// Event context keys
const (
	KeyDieID   = "die_id"
	KeyValue   = "value"
	KeyDieIDs  = "die_ids"
	KeyRenamed = "renamed"
	KeyTotal   = "total"
)

// tray is the event source for roll level events
type tray struct {
	id string
}

func (t tray) GetID() string   { return t.id }
func (t tray) GetType() string { return "dice_tray" }

var _ core.Entity = tray{}

type pendingEvent struct {
	eventType string
	source    core.Entity
	data      map[string]any
}

// publish runs outside the store lock so handlers may read the store
func (s *Store) publish(pending ...pendingEvent) {
	if s.bus == nil {
		return
	}

	for _, p := range pending {
		event := events.NewGameEvent(p.eventType, p.source, nil)
		for key, value := range p.data {
			event.Context().Set(key, value)
		}
		if err := s.bus.Publish(context.Background(), event); err != nil {
			slog.Warn("Failed to publish dice tray event",
				"event_type", p.eventType,
				"owner", s.owner.id,
				"error", err,
			)
		}
	}
}
