package rollstate

import (
	"github.com/KirkDiggler/rpg-dice-tray/internal/engine"
	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
)

// Phase is the lifecycle phase of a tray
type Phase string

// Lifecycle phases
const (
	PhaseIdle              Phase = "IDLE"
	PhasePending           Phase = "PENDING"
	PhasePartiallyResolved Phase = "PARTIALLY_RESOLVED"
	PhaseFullyResolved     Phase = "FULLY_RESOLVED"
)

// Snapshot is a consistent copy of a store's state.
// Roll is nil when the tray is idle. The roll tree is shared and must be
// treated as read only; the maps belong to the caller.
type Snapshot struct {
	Roll       *dice.Roll                 `json:"roll"`
	Values     map[string]*int            `json:"values"`
	Transforms map[string]*dice.Transform `json:"transforms"`
	Throws     map[string]dice.Throw      `json:"throws"`
}

// Dice returns the leaves of the roll in display order
func (s *Snapshot) Dice() []dice.Die {
	return s.Roll.Flatten()
}

// Finished reports whether the roll has dice and every one has settled
func (s *Snapshot) Finished() bool {
	return s.Roll != nil && engine.Finished(s.Values)
}

// Total combines the settled values, honouring partial resolution
func (s *Snapshot) Total() (int, bool) {
	return engine.Total(s.Roll, engine.ResolvedValues(s.Values))
}

// Phase derives the lifecycle phase from the resolution maps
func (s *Snapshot) Phase() Phase {
	if s.Roll == nil {
		return PhaseIdle
	}

	settled := 0
	for id, v := range s.Values {
		if v != nil && s.Transforms[id] != nil {
			settled++
		}
	}

	switch {
	case settled == 0:
		return PhasePending
	case settled == len(s.Values):
		return PhaseFullyResolved
	default:
		return PhasePartiallyResolved
	}
}
