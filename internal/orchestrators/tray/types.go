package tray

import (
	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
	rollhistory "github.com/KirkDiggler/rpg-dice-tray/internal/repositories/roll_history"
	"github.com/KirkDiggler/rpg-dice-tray/internal/rollstate"
)

// State is a player's tray as returned to callers
type State struct {
	PlayerID   string                     `json:"player_id"`
	Roll       *dice.Roll                 `json:"roll"`
	Values     map[string]*int            `json:"values"`
	Transforms map[string]*dice.Transform `json:"transforms"`
	Throws     map[string]dice.Throw      `json:"throws"`
	// Total is set as soon as any die contributes a value
	Total    *int            `json:"total,omitempty"`
	Finished bool            `json:"finished"`
	Phase    rollstate.Phase `json:"phase"`
	// Remote is true when the state was read from the published snapshot
	// instead of a tray held by this process
	Remote bool `json:"remote,omitempty"`
}

// RollDiceInput defines the request for rolling a selection
type RollDiceInput struct {
	PlayerID  string
	SetID     string
	Counts    map[string]int
	Bonus     *int
	Advantage dice.Advantage
	Hidden    bool
	// SpeedMultiplier scales the launch speed; clamped to [1,10]
	SpeedMultiplier float64
}

// RollDiceOutput defines the response for rolling a selection
type RollDiceOutput struct {
	State *State
}

// FinishDieInput reports where a die came to rest
type FinishDieInput struct {
	PlayerID  string
	DieID     string
	Value     int
	Transform dice.Transform
}

// FinishDieOutput defines the response for a settled die
type FinishDieOutput struct {
	// Accepted is false when the die is not part of the current roll
	Accepted bool
	State    *State
}

// RerollInput defines the request for rerolling dice of the current roll
type RerollInput struct {
	PlayerID string
	// DieIDs selects the dice to reroll; nil rerolls every die
	DieIDs []string
	// ManualThrows overrides the random throw, keyed by the old die id
	ManualThrows map[string]dice.Throw
}

// RerollOutput defines the response for a reroll
type RerollOutput struct {
	// Renamed maps each rerolled die's old id to its new id
	Renamed map[string]string
	State   *State
}

// ClearRollInput defines the request for clearing a tray
type ClearRollInput struct {
	PlayerID string
}

// ClearRollOutput defines the response for clearing a tray
type ClearRollOutput struct {
	State *State
}

// GetRollInput defines the request for reading a tray
type GetRollInput struct {
	PlayerID string
}

// GetRollOutput defines the response for reading a tray
type GetRollOutput struct {
	State *State
}

// CloseTrayInput defines the request for releasing a player's tray
type CloseTrayInput struct {
	PlayerID string
}

// CloseTrayOutput defines the response for releasing a tray
type CloseTrayOutput struct {
	// Closed is true when this process held a tray for the player
	Closed bool
}

// ListHistoryInput defines the request for listing recent selections
type ListHistoryInput struct {
	PlayerID string
}

// ListHistoryOutput contains recent selections, oldest first
type ListHistoryOutput struct {
	Entries []*rollhistory.Entry
}

// RemoveHistoryInput defines the request for forgetting a selection
type RemoveHistoryInput struct {
	PlayerID string
	Index    int
}

// RemoveHistoryOutput contains the remaining selections
type RemoveHistoryOutput struct {
	Entries []*rollhistory.Entry
}

// RerollHistoryInput defines the request for rolling a recent selection again
type RerollHistoryInput struct {
	PlayerID        string
	Index           int
	Hidden          bool
	SpeedMultiplier float64
}

// RerollHistoryOutput defines the response for rolling a recent selection
type RerollHistoryOutput struct {
	State *State
}

// PreviewRollInput defines the request for previewing throws of a selection
type PreviewRollInput struct {
	PlayerID        string
	SetID           string
	Counts          map[string]int
	Advantage       dice.Advantage
	SpeedMultiplier float64
}

// PreviewRollOutput contains one throw per die the selection composes into
type PreviewRollOutput struct {
	Throws []dice.Throw
}
