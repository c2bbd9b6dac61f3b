package v1alpha1

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
	"github.com/KirkDiggler/rpg-dice-tray/internal/errors"
	"github.com/KirkDiggler/rpg-dice-tray/internal/orchestrators/tray"
	rollhistory "github.com/KirkDiggler/rpg-dice-tray/internal/repositories/roll_history"
)

// EncodeStruct converts any JSON marshalable value into a Struct message
func EncodeStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode message")
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrapf(err, "failed to convert message")
	}
	return out, nil
}

// DecodeStruct fills v from a Struct message. Malformed fields are
// reported as InvalidArgument.
func DecodeStruct(in *structpb.Struct, v any) error {
	if in == nil {
		in = &structpb.Struct{}
	}

	data, err := protojson.Marshal(in)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read message")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request")
	}
	return nil
}

// ListSetsResponse lists the selectable dice sets
type ListSetsResponse struct {
	Sets []dice.Set `json:"sets"`
}

// RollDiceRequest rolls a selection of dice
type RollDiceRequest struct {
	PlayerID        string         `json:"player_id"`
	SetID           string         `json:"set_id"`
	Counts          map[string]int `json:"counts"`
	Bonus           *int           `json:"bonus,omitempty"`
	Advantage       dice.Advantage `json:"advantage,omitempty"`
	Hidden          bool           `json:"hidden,omitempty"`
	SpeedMultiplier float64        `json:"speed_multiplier,omitempty"`
}

// FinishDieRequest reports where a die came to rest
type FinishDieRequest struct {
	PlayerID  string          `json:"player_id"`
	DieID     string          `json:"die_id"`
	Value     *int            `json:"value"`
	Transform *dice.Transform `json:"transform"`
}

// FinishDieResponse is the tray after a die settled
type FinishDieResponse struct {
	*tray.State
	Accepted bool `json:"accepted"`
}

// RerollRequest rerolls dice of the current roll. Omitting die_ids rerolls
// every die.
type RerollRequest struct {
	PlayerID     string                `json:"player_id"`
	DieIDs       []string              `json:"die_ids,omitempty"`
	ManualThrows map[string]dice.Throw `json:"manual_throws,omitempty"`
}

// RerollResponse is the tray after a reroll
type RerollResponse struct {
	*tray.State
	Renamed map[string]string `json:"renamed"`
}

// PlayerRequest addresses a player's tray
type PlayerRequest struct {
	PlayerID string `json:"player_id"`
}

// CloseTrayResponse reports whether a tray was held
type CloseTrayResponse struct {
	Closed bool `json:"closed"`
}

// HistoryResponse lists recent selections, oldest first
type HistoryResponse struct {
	Entries []*rollhistory.Entry `json:"entries"`
}

// HistoryRequest addresses one recent selection
type HistoryRequest struct {
	PlayerID        string  `json:"player_id"`
	Index           int     `json:"index"`
	Hidden          bool    `json:"hidden,omitempty"`
	SpeedMultiplier float64 `json:"speed_multiplier,omitempty"`
}

// PreviewRollRequest previews throws for a selection
type PreviewRollRequest struct {
	PlayerID        string         `json:"player_id"`
	SetID           string         `json:"set_id"`
	Counts          map[string]int `json:"counts"`
	Advantage       dice.Advantage `json:"advantage,omitempty"`
	SpeedMultiplier float64        `json:"speed_multiplier,omitempty"`
}

// PreviewRollResponse holds one throw per die of the selection
type PreviewRollResponse struct {
	Throws []dice.Throw `json:"throws"`
}
