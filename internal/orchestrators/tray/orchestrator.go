// Package tray coordinates each player's dice tray: it composes selections
// into rolls, tracks settlement and mirrors the tray to other clients
package tray

//go:generate mockgen -destination=mock/mock_service.go -package=traymock github.com/KirkDiggler/rpg-dice-tray/internal/orchestrators/tray Service

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/rpg-dice-tray/internal/engine"
	"github.com/KirkDiggler/rpg-dice-tray/internal/engine/settler"
	"github.com/KirkDiggler/rpg-dice-tray/internal/engine/throws"
	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
	"github.com/KirkDiggler/rpg-dice-tray/internal/errors"
	"github.com/KirkDiggler/rpg-dice-tray/internal/pkg/idgen"
	rollhistory "github.com/KirkDiggler/rpg-dice-tray/internal/repositories/roll_history"
	rollsync "github.com/KirkDiggler/rpg-dice-tray/internal/repositories/roll_sync"
	"github.com/KirkDiggler/rpg-dice-tray/internal/rollstate"
)

const (
	// DefaultSnapshotTTL is how long a published snapshot stays readable
	DefaultSnapshotTTL = 15 * time.Minute
	// DefaultMaxDicePerDefinition caps the count of a single die definition
	DefaultMaxDicePerDefinition = 50
	// DefaultMaxDice caps the dice a selection composes into
	DefaultMaxDice = 100

	// syncTransformDigits is the precision of poses mirrored to other clients
	syncTransformDigits = 2
)

var tracer = otel.Tracer("github.com/KirkDiggler/rpg-dice-tray/internal/orchestrators/tray")

// Service defines the dice tray operations
type Service interface {
	// Roll lifecycle
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)
	FinishDie(ctx context.Context, input *FinishDieInput) (*FinishDieOutput, error)
	Reroll(ctx context.Context, input *RerollInput) (*RerollOutput, error)
	ClearRoll(ctx context.Context, input *ClearRollInput) (*ClearRollOutput, error)
	GetRoll(ctx context.Context, input *GetRollInput) (*GetRollOutput, error)
	CloseTray(ctx context.Context, input *CloseTrayInput) (*CloseTrayOutput, error)

	// Recent selections
	ListHistory(ctx context.Context, input *ListHistoryInput) (*ListHistoryOutput, error)
	RemoveHistory(ctx context.Context, input *RemoveHistoryInput) (*RemoveHistoryOutput, error)
	RerollHistory(ctx context.Context, input *RerollHistoryInput) (*RerollHistoryOutput, error)

	// PreviewRoll returns staggered throws for a selection before it is rolled
	PreviewRoll(ctx context.Context, input *PreviewRollInput) (*PreviewRollOutput, error)
}

// DieSettler resolves pending dice without a physics client
type DieSettler interface {
	Settle(ctx context.Context, pending []dice.Die, throws map[string]dice.Throw, finish settler.FinishFunc) error
}

// Config holds the dependencies for the tray orchestrator
type Config struct {
	Composer    engine.Composer
	IDGenerator idgen.Generator
	Throws      throws.Generator
	SyncRepo    rollsync.Repository
	HistoryRepo rollhistory.Repository

	// EventBus receives roll lifecycle events; optional
	EventBus events.EventBus
	// Settler resolves dice server side when set
	Settler     DieSettler
	SnapshotTTL time.Duration

	// MaxDicePerDefinition and MaxDice bound a selection; zero picks the default
	MaxDicePerDefinition int
	MaxDice              int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Composer == nil {
		vb.RequiredField("Composer")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Throws == nil {
		vb.RequiredField("Throws")
	}
	if c.SyncRepo == nil {
		vb.RequiredField("SyncRepo")
	}
	if c.HistoryRepo == nil {
		vb.RequiredField("HistoryRepo")
	}
	if c.SnapshotTTL < 0 {
		vb.Field("SnapshotTTL", "must not be negative")
	}
	if c.MaxDicePerDefinition < 0 {
		vb.Field("MaxDicePerDefinition", "must not be negative")
	}
	if c.MaxDice < 0 {
		vb.Field("MaxDice", "must not be negative")
	}

	return vb.Build()
}

// playerTray is the in-process state of one player's tray. mu serializes
// commands so snapshots are published in the order they were produced.
type playerTray struct {
	mu      sync.Mutex
	store   *rollstate.Store
	thrower *throws.Thrower

	// syncedIDs are the die ids of the last published snapshot
	syncedIDs []string
}

type orchestrator struct {
	composer    engine.Composer
	idGen       idgen.Generator
	throws      throws.Generator
	syncRepo    rollsync.Repository
	historyRepo rollhistory.Repository
	bus         events.EventBus
	settler     DieSettler
	snapshotTTL time.Duration
	maxPerDef   int
	maxDice     int

	mu    sync.Mutex
	trays map[string]*playerTray
}

// NewOrchestrator creates a new tray orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.SnapshotTTL
	if ttl == 0 {
		ttl = DefaultSnapshotTTL
	}
	maxPerDef := cfg.MaxDicePerDefinition
	if maxPerDef == 0 {
		maxPerDef = DefaultMaxDicePerDefinition
	}
	maxDice := cfg.MaxDice
	if maxDice == 0 {
		maxDice = DefaultMaxDice
	}

	return &orchestrator{
		composer:    cfg.Composer,
		idGen:       cfg.IDGenerator,
		throws:      cfg.Throws,
		syncRepo:    cfg.SyncRepo,
		historyRepo: cfg.HistoryRepo,
		bus:         cfg.EventBus,
		settler:     cfg.Settler,
		snapshotTTL: ttl,
		maxPerDef:   maxPerDef,
		maxDice:     maxDice,
		trays:       make(map[string]*playerTray),
	}, nil
}

// RollDice composes a selection into a new roll and records it in the
// player's history
func (o *orchestrator) RollDice(ctx context.Context, input *RollDiceInput) (_ *RollDiceOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "RollDice", input.PlayerID)
	defer func() { endSpan(span, err) }()

	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	selection, err := o.selection(input.SetID, input.Counts, input.Advantage)
	if err != nil {
		return nil, err
	}
	selection.Bonus = input.Bonus
	selection.Hidden = input.Hidden

	state, err := o.start(ctx, input.PlayerID, selection, input.SpeedMultiplier)
	if err != nil {
		return nil, err
	}

	_, err = o.historyRepo.Push(ctx, rollhistory.PushInput{
		PlayerID: input.PlayerID,
		Entry: &rollhistory.Entry{
			SetID:     selection.Set.ID,
			Counts:    maps.Clone(input.Counts),
			Bonus:     input.Bonus,
			Advantage: input.Advantage,
		},
	})
	if err != nil {
		slog.Warn("Failed to record roll history",
			"player_id", input.PlayerID,
			"error", err,
		)
	}

	slog.Info("Dice rolled",
		"player_id", input.PlayerID,
		"set_id", selection.Set.ID,
		"dice", len(state.Values),
		"advantage", input.Advantage,
		"hidden", input.Hidden,
	)

	return &RollDiceOutput{State: state}, nil
}

// FinishDie records where a die came to rest
func (o *orchestrator) FinishDie(ctx context.Context, input *FinishDieInput) (_ *FinishDieOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "FinishDie", input.PlayerID)
	defer func() { endSpan(span, err) }()

	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}
	if input.DieID == "" {
		return nil, errors.InvalidArgument("die ID is required")
	}

	t, ok := o.existingTray(input.PlayerID)
	if !ok {
		return nil, errors.NotFound("tray not found").WithMeta("player_id", input.PlayerID)
	}

	accepted, snap := o.finish(ctx, input.PlayerID, t, input.DieID, input.Value, input.Transform)
	if !accepted {
		slog.Debug("Ignored settlement of a die outside the current roll",
			"player_id", input.PlayerID,
			"die_id", input.DieID,
		)
	}

	return &FinishDieOutput{
		Accepted: accepted,
		State:    newState(input.PlayerID, snap),
	}, nil
}

// Reroll throws the selected dice of the current roll again
func (o *orchestrator) Reroll(ctx context.Context, input *RerollInput) (_ *RerollOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "Reroll", input.PlayerID)
	defer func() { endSpan(span, err) }()

	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	t, ok := o.existingTray(input.PlayerID)
	if !ok {
		return nil, errors.NotFound("tray not found").WithMeta("player_id", input.PlayerID)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.store.Phase() == rollstate.PhaseIdle {
		return nil, errors.FailedPrecondition("no active roll").WithMeta("player_id", input.PlayerID)
	}

	renamed := t.store.Reroll(input.DieIDs, input.ManualThrows)
	snap := t.store.Snapshot()
	o.sync(ctx, input.PlayerID, t, snap)

	rerolled := make(map[string]struct{}, len(renamed))
	for _, newID := range renamed {
		rerolled[newID] = struct{}{}
	}
	var pending []dice.Die
	for _, d := range snap.Dice() {
		if _, ok := rerolled[d.ID]; ok {
			pending = append(pending, d)
		}
	}
	o.settle(ctx, input.PlayerID, t, pending, snap.Throws)

	slog.Info("Dice rerolled",
		"player_id", input.PlayerID,
		"dice", len(renamed),
	)

	return &RerollOutput{
		Renamed: renamed,
		State:   newState(input.PlayerID, snap),
	}, nil
}

// ClearRoll returns the player's tray to idle
func (o *orchestrator) ClearRoll(ctx context.Context, input *ClearRollInput) (_ *ClearRollOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "ClearRoll", input.PlayerID)
	defer func() { endSpan(span, err) }()

	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	t, ok := o.existingTray(input.PlayerID)
	if !ok {
		return &ClearRollOutput{State: newState(input.PlayerID, &rollstate.Snapshot{})}, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.store.Clear()
	snap := t.store.Snapshot()
	o.sync(ctx, input.PlayerID, t, snap)

	slog.Info("Dice tray cleared", "player_id", input.PlayerID)

	return &ClearRollOutput{State: newState(input.PlayerID, snap)}, nil
}

// GetRoll returns the player's tray, falling back to the published snapshot
// when this process does not hold it
func (o *orchestrator) GetRoll(ctx context.Context, input *GetRollInput) (_ *GetRollOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "GetRoll", input.PlayerID)
	defer func() { endSpan(span, err) }()

	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	if t, ok := o.existingTray(input.PlayerID); ok {
		t.mu.Lock()
		snap := t.store.Snapshot()
		t.mu.Unlock()
		return &GetRollOutput{State: newState(input.PlayerID, snap)}, nil
	}

	out, err := o.syncRepo.Get(ctx, rollsync.GetInput{PlayerID: input.PlayerID})
	if err != nil {
		if errors.IsNotFound(err) {
			return &GetRollOutput{State: newState(input.PlayerID, &rollstate.Snapshot{})}, nil
		}
		return nil, errors.Wrap(err, "failed to get published roll")
	}

	return &GetRollOutput{State: remoteState(out.Snapshot)}, nil
}

// CloseTray drops the player's tray and its published snapshot
func (o *orchestrator) CloseTray(ctx context.Context, input *CloseTrayInput) (_ *CloseTrayOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "CloseTray", input.PlayerID)
	defer func() { endSpan(span, err) }()

	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	o.mu.Lock()
	t, ok := o.trays[input.PlayerID]
	delete(o.trays, input.PlayerID)
	o.mu.Unlock()

	if ok {
		t.mu.Lock()
		t.store.Clear()
		t.thrower.ClearHistory()
		t.mu.Unlock()
	}

	if _, err := o.syncRepo.Delete(ctx, rollsync.DeleteInput{PlayerID: input.PlayerID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete published roll")
	}

	slog.Info("Dice tray closed",
		"player_id", input.PlayerID,
		"held", ok,
	)

	return &CloseTrayOutput{Closed: ok}, nil
}

// ListHistory returns the player's recent selections
func (o *orchestrator) ListHistory(ctx context.Context, input *ListHistoryInput) (_ *ListHistoryOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "ListHistory", input.PlayerID)
	defer func() { endSpan(span, err) }()

	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	out, err := o.historyRepo.List(ctx, rollhistory.ListInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list roll history")
	}

	return &ListHistoryOutput{Entries: out.Entries}, nil
}

// RemoveHistory forgets one recent selection
func (o *orchestrator) RemoveHistory(ctx context.Context, input *RemoveHistoryInput) (_ *RemoveHistoryOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "RemoveHistory", input.PlayerID)
	defer func() { endSpan(span, err) }()

	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	out, err := o.historyRepo.Remove(ctx, rollhistory.RemoveInput{PlayerID: input.PlayerID, Index: input.Index})
	if err != nil {
		return nil, errors.Wrap(err, "failed to remove roll history entry")
	}

	return &RemoveHistoryOutput{Entries: out.Entries}, nil
}

// RerollHistory rolls a recent selection again with fresh dice. The entry
// keeps its place in the history.
func (o *orchestrator) RerollHistory(ctx context.Context, input *RerollHistoryInput) (_ *RerollHistoryOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "RerollHistory", input.PlayerID)
	defer func() { endSpan(span, err) }()

	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	out, err := o.historyRepo.Get(ctx, rollhistory.GetInput{PlayerID: input.PlayerID, Index: input.Index})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get roll history entry")
	}
	entry := out.Entry

	selection, err := o.selection(entry.SetID, entry.Counts, entry.Advantage)
	if err != nil {
		return nil, err
	}
	selection.Bonus = entry.Bonus
	selection.Hidden = input.Hidden

	state, err := o.start(ctx, input.PlayerID, selection, input.SpeedMultiplier)
	if err != nil {
		return nil, err
	}

	slog.Info("Dice rolled from history",
		"player_id", input.PlayerID,
		"index", input.Index,
		"set_id", entry.SetID,
		"dice", len(state.Values),
	)

	return &RerollHistoryOutput{State: state}, nil
}

// PreviewRoll returns one throw per die of a selection that has not been
// rolled yet. Throws already previewed for the player keep their place; an
// empty selection starts the preview over.
func (o *orchestrator) PreviewRoll(ctx context.Context, input *PreviewRollInput) (_ *PreviewRollOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	_, span := startSpan(ctx, "PreviewRoll", input.PlayerID)
	defer func() { endSpan(span, err) }()

	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	selection, err := o.selection(input.SetID, input.Counts, input.Advantage)
	if err != nil {
		return nil, err
	}

	t, err := o.trayFor(input.PlayerID)
	if err != nil {
		return nil, err
	}

	leaves := selection.Leaves()
	if leaves == 0 {
		t.thrower.ClearHistory()
		return &PreviewRollOutput{Throws: []dice.Throw{}}, nil
	}

	speed := throws.ClampSpeed(input.SpeedMultiplier)
	previews := make([]dice.Throw, leaves)
	for i := range previews {
		previews[i] = t.thrower.Throw(i, speed)
	}

	return &PreviewRollOutput{Throws: previews}, nil
}

// start replaces the player's roll with a freshly composed one
func (o *orchestrator) start(ctx context.Context, playerID string, selection *engine.Selection, speedMultiplier float64) (*State, error) {
	if selection.Leaves() == 0 {
		return nil, errors.InvalidArgument("selection contains no dice")
	}

	t, err := o.trayFor(playerID)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	roll := o.composer.ComposeRoll(selection)
	if err := t.store.Start(roll, speedMultiplier); err != nil {
		return nil, errors.Wrap(err, "failed to start roll")
	}
	t.thrower.ClearHistory()

	snap := t.store.Snapshot()
	o.sync(ctx, playerID, t, snap)
	o.settle(ctx, playerID, t, snap.Dice(), snap.Throws)

	return newState(playerID, snap), nil
}

func (o *orchestrator) finish(ctx context.Context, playerID string, t *playerTray, id string, value int, transform dice.Transform) (bool, *rollstate.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	accepted := t.store.FinishDieRoll(id, value, transform)
	snap := t.store.Snapshot()
	if accepted {
		o.sync(ctx, playerID, t, snap)
	}
	return accepted, snap
}

// settle resolves pending dice in the background when a settler is
// configured. Results for dice rerolled in the meantime are ignored by the
// store.
func (o *orchestrator) settle(ctx context.Context, playerID string, t *playerTray, pending []dice.Die, throwMap map[string]dice.Throw) {
	if o.settler == nil || len(pending) == 0 {
		return
	}

	settleCtx := context.WithoutCancel(ctx)
	go func() {
		err := o.settler.Settle(settleCtx, pending, throwMap, func(id string, value int, transform dice.Transform) bool {
			accepted, _ := o.finish(settleCtx, playerID, t, id, value, transform)
			return accepted
		})
		if err != nil {
			slog.Error("Failed to settle dice",
				"player_id", playerID,
				"error", err,
			)
		}
	}()
}

// sync publishes the tray when its dice changed, the roll finished or the
// tray was cleared. Publishing failures only cost other clients freshness,
// so they are logged. t.mu must be held.
func (o *orchestrator) sync(ctx context.Context, playerID string, t *playerTray, snap *rollstate.Snapshot) {
	ids := dice.IDs(snap.Dice())
	if snap.Roll != nil && slices.Equal(ids, t.syncedIDs) && !snap.Finished() {
		return
	}

	_, err := o.syncRepo.Publish(ctx, rollsync.PublishInput{
		Snapshot: syncSnapshot(playerID, snap),
		TTL:      o.snapshotTTL,
	})
	if err != nil {
		slog.Warn("Failed to publish roll snapshot",
			"player_id", playerID,
			"error", err,
		)
		return
	}
	t.syncedIDs = ids
}

func (o *orchestrator) selection(setID string, counts map[string]int, advantage dice.Advantage) (*engine.Selection, error) {
	if setID == "" {
		return nil, errors.InvalidArgument("set ID is required")
	}
	if !advantage.Valid() {
		return nil, errors.InvalidArgumentf("unknown advantage: %s", advantage)
	}

	set, ok := dice.FindSet(setID)
	if !ok {
		return nil, errors.NotFoundf("dice set not found: %s", setID).WithMeta("set_id", setID)
	}

	// Counts are bounded before Leaves multiplies them
	for id, count := range counts {
		if count > o.maxPerDef {
			return nil, errors.InvalidArgumentf("at most %d of one die may be rolled, got %d", o.maxPerDef, count).
				WithMeta("die_id", id)
		}
	}

	selection := &engine.Selection{
		Counts:    counts,
		Advantage: advantage,
		Set:       set,
	}
	if leaves := selection.Leaves(); leaves > o.maxDice {
		return nil, errors.InvalidArgumentf("selection composes into %d dice, at most %d allowed", leaves, o.maxDice)
	}
	return selection, nil
}

func (o *orchestrator) trayFor(playerID string) (*playerTray, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if t, ok := o.trays[playerID]; ok {
		return t, nil
	}

	store, err := rollstate.NewStore(&rollstate.Config{
		Owner:       playerID,
		IDGenerator: o.idGen,
		Throws:      o.throws,
		EventBus:    o.bus,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create roll store")
	}

	t := &playerTray{
		store:   store,
		thrower: throws.NewThrower(&throws.Config{}),
	}
	o.trays[playerID] = t
	return t, nil
}

func (o *orchestrator) existingTray(playerID string) (*playerTray, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	t, ok := o.trays[playerID]
	return t, ok
}

func newState(playerID string, snap *rollstate.Snapshot) *State {
	state := &State{
		PlayerID:   playerID,
		Roll:       snap.Roll,
		Values:     snap.Values,
		Transforms: snap.Transforms,
		Throws:     snap.Throws,
		Finished:   snap.Finished(),
		Phase:      snap.Phase(),
	}
	if total, ok := snap.Total(); ok {
		state.Total = &total
	}
	return state
}

func remoteState(snapshot *rollsync.RollSnapshot) *State {
	return &State{
		PlayerID:   snapshot.PlayerID,
		Roll:       snapshot.Roll,
		Values:     snapshot.Values,
		Transforms: snapshot.Transforms,
		Throws:     snapshot.Throws,
		Total:      snapshot.Total,
		Finished:   snapshot.Finished,
		Phase:      rollstate.Phase(snapshot.Phase),
		Remote:     true,
	}
}

// syncSnapshot strips what other clients may not see. Hidden rolls only
// reveal their dice.
func syncSnapshot(playerID string, snap *rollstate.Snapshot) *rollsync.RollSnapshot {
	out := &rollsync.RollSnapshot{
		PlayerID: playerID,
		Roll:     snap.Roll,
		Finished: snap.Finished(),
		Phase:    string(snap.Phase()),
	}
	if snap.Roll == nil || snap.Roll.Hidden {
		return out
	}

	out.Values = snap.Values
	out.Throws = snap.Throws
	out.Transforms = make(map[string]*dice.Transform, len(snap.Transforms))
	for id, t := range snap.Transforms {
		if t != nil {
			reduced := dice.ReduceTransformPrecision(*t, syncTransformDigits)
			t = &reduced
		}
		out.Transforms[id] = t
	}
	if out.Finished {
		if total, ok := snap.Total(); ok {
			out.Total = &total
		}
	}
	return out
}

func startSpan(ctx context.Context, operation, playerID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "tray."+operation,
		trace.WithAttributes(attribute.String("player_id", playerID)),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
	}
	span.End()
}
