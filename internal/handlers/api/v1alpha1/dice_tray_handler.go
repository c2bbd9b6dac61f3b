// Package v1alpha1 handles the dice tray grpc service interface
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
	"github.com/KirkDiggler/rpg-dice-tray/internal/errors"
	"github.com/KirkDiggler/rpg-dice-tray/internal/orchestrators/tray"
)

// DiceTrayHandlerConfig holds dependencies for the dice tray handler
type DiceTrayHandlerConfig struct {
	TrayService tray.Service
}

// Validate ensures all required dependencies are present
func (c *DiceTrayHandlerConfig) Validate() error {
	if c.TrayService == nil {
		return errors.InvalidArgument("tray service is required")
	}
	return nil
}

// DiceTrayHandler implements the dice tray gRPC service
type DiceTrayHandler struct {
	trayService tray.Service
}

var _ DiceTrayServiceServer = (*DiceTrayHandler)(nil)

// NewDiceTrayHandler creates a new dice tray handler with the given configuration
func NewDiceTrayHandler(cfg *DiceTrayHandlerConfig) (*DiceTrayHandler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &DiceTrayHandler{
		trayService: cfg.TrayService,
	}, nil
}

// ListSets returns the selectable dice sets
func (h *DiceTrayHandler) ListSets(
	_ context.Context,
	_ *structpb.Struct,
) (*structpb.Struct, error) {
	return respond(&ListSetsResponse{Sets: dice.StandardSets()})
}

// RollDice rolls a selection of dice from one set
func (h *DiceTrayHandler) RollDice(
	ctx context.Context,
	req *structpb.Struct,
) (*structpb.Struct, error) {
	var in RollDiceRequest
	if err := DecodeStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.PlayerID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("player_id is required"))
	}
	if in.SetID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("set_id is required"))
	}

	out, err := h.trayService.RollDice(ctx, &tray.RollDiceInput{
		PlayerID:        in.PlayerID,
		SetID:           in.SetID,
		Counts:          in.Counts,
		Bonus:           in.Bonus,
		Advantage:       in.Advantage,
		Hidden:          in.Hidden,
		SpeedMultiplier: in.SpeedMultiplier,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(out.State)
}

// FinishDie records the settled face and pose of a die
func (h *DiceTrayHandler) FinishDie(
	ctx context.Context,
	req *structpb.Struct,
) (*structpb.Struct, error) {
	var in FinishDieRequest
	if err := DecodeStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.PlayerID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("player_id is required"))
	}
	if in.DieID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("die_id is required"))
	}
	if in.Value == nil {
		return nil, errors.ToGRPCError(errors.InvalidArgument("value is required"))
	}
	if in.Transform == nil {
		return nil, errors.ToGRPCError(errors.InvalidArgument("transform is required"))
	}

	out, err := h.trayService.FinishDie(ctx, &tray.FinishDieInput{
		PlayerID:  in.PlayerID,
		DieID:     in.DieID,
		Value:     *in.Value,
		Transform: *in.Transform,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&FinishDieResponse{State: out.State, Accepted: out.Accepted})
}

// Reroll rerolls dice of the current roll
func (h *DiceTrayHandler) Reroll(
	ctx context.Context,
	req *structpb.Struct,
) (*structpb.Struct, error) {
	var in RerollRequest
	if err := DecodeStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.PlayerID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("player_id is required"))
	}

	out, err := h.trayService.Reroll(ctx, &tray.RerollInput{
		PlayerID:     in.PlayerID,
		DieIDs:       in.DieIDs,
		ManualThrows: in.ManualThrows,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&RerollResponse{State: out.State, Renamed: out.Renamed})
}

// ClearRoll returns a tray to idle
func (h *DiceTrayHandler) ClearRoll(
	ctx context.Context,
	req *structpb.Struct,
) (*structpb.Struct, error) {
	playerID, err := decodePlayer(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.trayService.ClearRoll(ctx, &tray.ClearRollInput{PlayerID: playerID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(out.State)
}

// GetRoll returns a player's tray
func (h *DiceTrayHandler) GetRoll(
	ctx context.Context,
	req *structpb.Struct,
) (*structpb.Struct, error) {
	playerID, err := decodePlayer(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.trayService.GetRoll(ctx, &tray.GetRollInput{PlayerID: playerID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(out.State)
}

// CloseTray releases a player's tray
func (h *DiceTrayHandler) CloseTray(
	ctx context.Context,
	req *structpb.Struct,
) (*structpb.Struct, error) {
	playerID, err := decodePlayer(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.trayService.CloseTray(ctx, &tray.CloseTrayInput{PlayerID: playerID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&CloseTrayResponse{Closed: out.Closed})
}

// ListHistory returns a player's recent selections
func (h *DiceTrayHandler) ListHistory(
	ctx context.Context,
	req *structpb.Struct,
) (*structpb.Struct, error) {
	playerID, err := decodePlayer(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.trayService.ListHistory(ctx, &tray.ListHistoryInput{PlayerID: playerID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&HistoryResponse{Entries: out.Entries})
}

// RemoveHistory forgets one recent selection
func (h *DiceTrayHandler) RemoveHistory(
	ctx context.Context,
	req *structpb.Struct,
) (*structpb.Struct, error) {
	in, err := decodeHistory(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.trayService.RemoveHistory(ctx, &tray.RemoveHistoryInput{
		PlayerID: in.PlayerID,
		Index:    in.Index,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&HistoryResponse{Entries: out.Entries})
}

// RerollHistory rolls a recent selection again
func (h *DiceTrayHandler) RerollHistory(
	ctx context.Context,
	req *structpb.Struct,
) (*structpb.Struct, error) {
	in, err := decodeHistory(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.trayService.RerollHistory(ctx, &tray.RerollHistoryInput{
		PlayerID:        in.PlayerID,
		Index:           in.Index,
		Hidden:          in.Hidden,
		SpeedMultiplier: in.SpeedMultiplier,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(out.State)
}

// PreviewRoll returns throws for a selection that has not been rolled
func (h *DiceTrayHandler) PreviewRoll(
	ctx context.Context,
	req *structpb.Struct,
) (*structpb.Struct, error) {
	var in PreviewRollRequest
	if err := DecodeStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.PlayerID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("player_id is required"))
	}

	out, err := h.trayService.PreviewRoll(ctx, &tray.PreviewRollInput{
		PlayerID:        in.PlayerID,
		SetID:           in.SetID,
		Counts:          in.Counts,
		Advantage:       in.Advantage,
		SpeedMultiplier: in.SpeedMultiplier,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&PreviewRollResponse{Throws: out.Throws})
}

func decodePlayer(req *structpb.Struct) (string, error) {
	var in PlayerRequest
	if err := DecodeStruct(req, &in); err != nil {
		return "", err
	}
	if in.PlayerID == "" {
		return "", errors.InvalidArgument("player_id is required")
	}
	return in.PlayerID, nil
}

func decodeHistory(req *structpb.Struct) (*HistoryRequest, error) {
	var in HistoryRequest
	if err := DecodeStruct(req, &in); err != nil {
		return nil, err
	}
	if in.PlayerID == "" {
		return nil, errors.InvalidArgument("player_id is required")
	}
	if in.Index < 0 {
		return nil, errors.InvalidArgumentf("index must not be negative: %d", in.Index)
	}
	return &in, nil
}

func respond(v any) (*structpb.Struct, error) {
	out, err := EncodeStruct(v)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return out, nil
}
