package tray_test

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-dice-tray/internal/engine"
	enginemock "github.com/KirkDiggler/rpg-dice-tray/internal/engine/mock"
	"github.com/KirkDiggler/rpg-dice-tray/internal/engine/settler"
	throwsmock "github.com/KirkDiggler/rpg-dice-tray/internal/engine/throws/mock"
	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
	"github.com/KirkDiggler/rpg-dice-tray/internal/errors"
	"github.com/KirkDiggler/rpg-dice-tray/internal/orchestrators/tray"
	"github.com/KirkDiggler/rpg-dice-tray/internal/pkg/idgen"
	rollhistory "github.com/KirkDiggler/rpg-dice-tray/internal/repositories/roll_history"
	rollhistorymock "github.com/KirkDiggler/rpg-dice-tray/internal/repositories/roll_history/mock"
	rollsync "github.com/KirkDiggler/rpg-dice-tray/internal/repositories/roll_sync"
	rollsyncmock "github.com/KirkDiggler/rpg-dice-tray/internal/repositories/roll_sync/mock"
	"github.com/KirkDiggler/rpg-dice-tray/internal/rollstate"
	"github.com/KirkDiggler/rpg-dice-tray/internal/testutils"
	"github.com/KirkDiggler/rpg-dice-tray/internal/testutils/builders"
	"github.com/KirkDiggler/rpg-dice-tray/internal/testutils/mocks"
)

const (
	d6   = "GALAXY_STANDARD_D6"
	d20  = "GALAXY_STANDARD_D20"
	d100 = "GALAXY_STANDARD_D100"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockSync    *rollsyncmock.MockRepository
	mockHistory *rollhistorymock.MockRepository
	mockThrows  *throwsmock.MockGenerator
	bus         events.EventBus
	published   *mocks.PublishedSnapshots

	orchestrator tray.Service
	ctx          context.Context
	throw        dice.Throw
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockSync = rollsyncmock.NewMockRepository(s.ctrl)
	s.mockHistory = rollhistorymock.NewMockRepository(s.ctrl)
	s.mockThrows = throwsmock.NewMockGenerator(s.ctrl)
	s.bus = events.NewBus()
	s.ctx = context.Background()
	s.throw = testutils.CreateTestThrow()

	mocks.ExpectThrows(s.mockThrows, s.throw)
	s.published = mocks.CapturePublishes(s.mockSync)

	s.orchestrator = s.newOrchestrator(nil)
}

func (s *OrchestratorTestSuite) newComposer() engine.Composer {
	composer, err := engine.NewComposer(&engine.Config{IDGenerator: idgen.NewSequential("die")})
	s.Require().NoError(err)
	return composer
}

func (s *OrchestratorTestSuite) newOrchestrator(st tray.DieSettler) tray.Service {
	idGen := idgen.NewSequential("die")
	composer, err := engine.NewComposer(&engine.Config{IDGenerator: idGen})
	s.Require().NoError(err)

	cfg := &tray.Config{
		Composer:    composer,
		IDGenerator: idGen,
		Throws:      s.mockThrows,
		SyncRepo:    s.mockSync,
		HistoryRepo: s.mockHistory,
		EventBus:    s.bus,
		SnapshotTTL: time.Minute,
	}
	if st != nil {
		cfg.Settler = st
	}

	orchestrator, err := tray.NewOrchestrator(cfg)
	s.Require().NoError(err)
	return orchestrator
}

// rollDice rolls a selection for the test player, expecting the history push
func (s *OrchestratorTestSuite) rollDice(counts map[string]int) *tray.State {
	mocks.ExpectHistoryPush(s.mockHistory, testutils.TestPlayerID)

	out, err := s.orchestrator.RollDice(s.ctx, &tray.RollDiceInput{
		PlayerID: testutils.TestPlayerID,
		SetID:    testutils.TestSetID,
		Counts:   counts,
	})
	s.Require().NoError(err)
	return out.State
}

func (s *OrchestratorTestSuite) finishDie(id string, value int) *tray.FinishDieOutput {
	out, err := s.orchestrator.FinishDie(s.ctx, &tray.FinishDieInput{
		PlayerID:  testutils.TestPlayerID,
		DieID:     id,
		Value:     value,
		Transform: testutils.CreateTestTransform(),
	})
	s.Require().NoError(err)
	return out
}

func (s *OrchestratorTestSuite) TestNewOrchestrator() {
	_, err := tray.NewOrchestrator(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = tray.NewOrchestrator(&tray.Config{SnapshotTTL: -time.Second})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	for _, field := range []string{"Composer", "IDGenerator", "Throws", "SyncRepo", "HistoryRepo", "SnapshotTTL"} {
		s.Contains(err.Error(), field)
	}
}

func (s *OrchestratorTestSuite) TestRollDice() {
	var recorded *rollhistory.Entry
	s.mockHistory.EXPECT().
		Push(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input rollhistory.PushInput) (*rollhistory.PushOutput, error) {
			recorded = input.Entry
			return &rollhistory.PushOutput{Entries: []*rollhistory.Entry{input.Entry}}, nil
		})

	out, err := s.orchestrator.RollDice(s.ctx, &tray.RollDiceInput{
		PlayerID:        testutils.TestPlayerID,
		SetID:           testutils.TestSetID,
		Counts:          map[string]int{d20: 1, d6: 2},
		Bonus:           dice.Int(1),
		SpeedMultiplier: 4,
	})
	s.Require().NoError(err)

	state := out.State
	s.Equal(testutils.TestPlayerID, state.PlayerID)
	s.Equal(rollstate.PhasePending, state.Phase)
	s.False(state.Finished)
	s.Len(state.Values, 3)
	for id, v := range state.Values {
		s.Nil(v, id)
		s.Equal(s.throw, state.Throws[id])
	}
	s.Require().NotNil(state.Total, "a bare bonus already has a value")
	s.Equal(1, *state.Total)

	s.Require().NotNil(recorded)
	s.Equal(testutils.TestSetID, recorded.SetID)
	s.Equal(map[string]int{d20: 1, d6: 2}, recorded.Counts)
	s.Equal(1, *recorded.Bonus)

	s.Require().Equal(1, s.published.Len())
	snapshot := s.published.Last()
	s.Equal(testutils.TestPlayerID, snapshot.PlayerID)
	s.Equal(string(rollstate.PhasePending), snapshot.Phase)
	s.Len(snapshot.Values, 3)
	s.Len(snapshot.Throws, 3)
	s.Nil(snapshot.Total)
}

func (s *OrchestratorTestSuite) TestRollDiceComposesSelection() {
	mockComposer := enginemock.NewMockComposer(s.ctrl)
	orchestrator, err := tray.NewOrchestrator(&tray.Config{
		Composer:    mockComposer,
		IDGenerator: idgen.NewSequential("die"),
		Throws:      s.mockThrows,
		SyncRepo:    s.mockSync,
		HistoryRepo: s.mockHistory,
	})
	s.Require().NoError(err)

	composed := builders.NewRollBuilder().
		WithCombination(dice.CombinationHighest).
		WithDie("adv_1", dice.TypeD20).
		WithDie("adv_2", dice.TypeD20).
		Hidden().
		Build()

	var selection *engine.Selection
	mockComposer.EXPECT().
		ComposeRoll(gomock.Any()).
		DoAndReturn(func(sel *engine.Selection) *dice.Roll {
			selection = sel
			return composed
		})
	mocks.ExpectHistoryPush(s.mockHistory, testutils.TestPlayerID)

	out, err := orchestrator.RollDice(s.ctx, &tray.RollDiceInput{
		PlayerID:  testutils.TestPlayerID,
		SetID:     testutils.TestSetID,
		Counts:    map[string]int{d20: 1},
		Advantage: dice.AdvantageAdvantage,
		Hidden:    true,
	})
	s.Require().NoError(err)

	s.Require().NotNil(selection)
	s.Equal(testutils.TestSetID, selection.Set.ID)
	s.Equal(map[string]int{d20: 1}, selection.Counts)
	s.Equal(dice.AdvantageAdvantage, selection.Advantage)
	s.True(selection.Hidden)

	s.Equal(composed, out.State.Roll)
	s.ElementsMatch([]string{"adv_1", "adv_2"}, keys(out.State.Values))
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func (s *OrchestratorTestSuite) TestRollDiceKeepsRollWhenHistoryFails() {
	s.mockHistory.EXPECT().
		Push(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("redis down"))

	out, err := s.orchestrator.RollDice(s.ctx, &tray.RollDiceInput{
		PlayerID: testutils.TestPlayerID,
		SetID:    testutils.TestSetID,
		Counts:   map[string]int{d20: 1},
	})
	s.Require().NoError(err)
	s.Len(out.State.Values, 1)
}

func (s *OrchestratorTestSuite) TestRollDiceValidation() {
	testCases := []struct {
		name  string
		input *tray.RollDiceInput
		check func(error) bool
	}{
		{name: "nil input", input: nil, check: errors.IsInvalidArgument},
		{
			name:  "missing player",
			input: &tray.RollDiceInput{SetID: testutils.TestSetID, Counts: map[string]int{d6: 1}},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "missing set",
			input: &tray.RollDiceInput{PlayerID: "p", Counts: map[string]int{d6: 1}},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "unknown set",
			input: &tray.RollDiceInput{PlayerID: "p", SetID: "PLAID_STANDARD", Counts: map[string]int{d6: 1}},
			check: errors.IsNotFound,
		},
		{
			name: "unknown advantage",
			input: &tray.RollDiceInput{
				PlayerID: "p", SetID: testutils.TestSetID, Counts: map[string]int{d6: 1}, Advantage: "TWICE",
			},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "no dice",
			input: &tray.RollDiceInput{PlayerID: "p", SetID: testutils.TestSetID, Counts: map[string]int{d6: 0}},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "dice from another set",
			input: &tray.RollDiceInput{PlayerID: "p", SetID: testutils.TestSetID, Counts: map[string]int{"IRON_STANDARD_D6": 2}},
			check: errors.IsInvalidArgument,
		},
		{
			name: "too many of one die",
			input: &tray.RollDiceInput{
				PlayerID: "p", SetID: testutils.TestSetID, Counts: map[string]int{d6: tray.DefaultMaxDicePerDefinition + 1},
			},
			check: errors.IsInvalidArgument,
		},
		{
			name: "count that would overflow",
			input: &tray.RollDiceInput{
				PlayerID: "p", SetID: testutils.TestSetID, Counts: map[string]int{d6: math.MaxInt}, Advantage: dice.AdvantageAdvantage,
			},
			check: errors.IsInvalidArgument,
		},
		{
			name: "too many dice in total",
			input: &tray.RollDiceInput{
				PlayerID:  "p",
				SetID:     testutils.TestSetID,
				Counts:    map[string]int{d6: 31, d100: 10},
				Advantage: dice.AdvantageDisadvantage,
			},
			check: errors.IsInvalidArgument,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.RollDice(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(tc.check(err), err.Error())
		})
	}
	s.Zero(s.published.Len())
}

func (s *OrchestratorTestSuite) TestFinishDieLifecycle() {
	var finished []events.Event
	var mu sync.Mutex
	s.bus.SubscribeFunc(rollstate.EventRollFinished, 0, events.HandlerFunc(func(_ context.Context, e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		finished = append(finished, e)
		return nil
	}))

	state := s.rollDice(map[string]int{d20: 1})
	s.Require().Contains(state.Values, "die_1")

	transform := dice.Transform{
		Position: dice.Vector3{X: 0.123456, Y: 0.049, Z: -0.3333},
		Rotation: dice.Quaternion{X: 0.70710678, W: 0.70710678},
	}
	out, err := s.orchestrator.FinishDie(s.ctx, &tray.FinishDieInput{
		PlayerID:  testutils.TestPlayerID,
		DieID:     "die_1",
		Value:     17,
		Transform: transform,
	})
	s.Require().NoError(err)

	s.True(out.Accepted)
	s.True(out.State.Finished)
	s.Equal(rollstate.PhaseFullyResolved, out.State.Phase)
	s.Equal(17, *out.State.Total)
	s.Equal(transform, *out.State.Transforms["die_1"])

	s.Require().Equal(2, s.published.Len())
	snapshot := s.published.Last()
	s.True(snapshot.Finished)
	s.Equal(17, *snapshot.Total)
	s.Equal(0.12, snapshot.Transforms["die_1"].Position.X)
	s.Equal(0.71, snapshot.Transforms["die_1"].Rotation.W)

	mu.Lock()
	s.Len(finished, 1)
	mu.Unlock()
}

func (s *OrchestratorTestSuite) TestFinishDiePublishesOnlyWhenFinished() {
	s.rollDice(map[string]int{d6: 2})
	s.Require().Equal(1, s.published.Len())

	out := s.finishDie("die_1", 4)
	s.True(out.Accepted)
	s.Equal(rollstate.PhasePartiallyResolved, out.State.Phase)
	s.Equal(4, *out.State.Total)
	s.Equal(1, s.published.Len(), "a partly settled roll is not mirrored")

	out = s.finishDie("die_2", 3)
	s.Equal(rollstate.PhaseFullyResolved, out.State.Phase)
	s.Equal(7, *out.State.Total)
	s.Equal(2, s.published.Len())
}

func (s *OrchestratorTestSuite) TestFinishDieOutsideRoll() {
	s.rollDice(map[string]int{d6: 1})

	out := s.finishDie("die_99", 4)
	s.False(out.Accepted)
	s.Equal(rollstate.PhasePending, out.State.Phase)
	s.Equal(1, s.published.Len())
}

func (s *OrchestratorTestSuite) TestFinishDieErrors() {
	_, err := s.orchestrator.FinishDie(s.ctx, &tray.FinishDieInput{PlayerID: "nobody", DieID: "die_1"})
	s.True(errors.IsNotFound(err))
	s.Equal("nobody", errors.GetMeta(err)["player_id"])

	_, err = s.orchestrator.FinishDie(s.ctx, &tray.FinishDieInput{PlayerID: "nobody"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestHiddenRollOnlyRevealsDice() {
	mocks.ExpectHistoryPush(s.mockHistory, testutils.TestPlayerID)

	_, err := s.orchestrator.RollDice(s.ctx, &tray.RollDiceInput{
		PlayerID: testutils.TestPlayerID,
		SetID:    testutils.TestSetID,
		Counts:   map[string]int{d20: 1},
		Hidden:   true,
	})
	s.Require().NoError(err)

	out := s.finishDie("die_1", 20)
	s.Equal(20, *out.State.Total, "the roller still sees the result")

	snapshot := s.published.Last()
	s.True(snapshot.Roll.Hidden)
	s.True(snapshot.Finished)
	s.Len(snapshot.Roll.Flatten(), 1)
	s.Nil(snapshot.Values)
	s.Nil(snapshot.Transforms)
	s.Nil(snapshot.Throws)
	s.Nil(snapshot.Total)
}

func (s *OrchestratorTestSuite) TestReroll() {
	s.rollDice(map[string]int{d6: 2})
	s.finishDie("die_1", 1)
	s.finishDie("die_2", 6)
	before := s.published.Len()

	manual := dice.Throw{Position: dice.Vector3{Y: 1.1}, Rotation: dice.Quaternion{W: 1}}
	out, err := s.orchestrator.Reroll(s.ctx, &tray.RerollInput{
		PlayerID:     testutils.TestPlayerID,
		DieIDs:       []string{"die_1"},
		ManualThrows: map[string]dice.Throw{"die_1": manual},
	})
	s.Require().NoError(err)

	s.Equal(map[string]string{"die_1": "die_3"}, out.Renamed)
	s.NotContains(out.State.Values, "die_1")
	s.Nil(out.State.Values["die_3"])
	s.Equal(6, *out.State.Values["die_2"])
	s.Equal(manual, out.State.Throws["die_3"])
	s.Equal(rollstate.PhasePartiallyResolved, out.State.Phase)
	s.Equal(6, *out.State.Total)

	s.Equal(before+1, s.published.Len(), "new dice are mirrored")
	s.Equal([]string{"die_3", "die_2"}, dice.IDs(s.published.Last().Roll.Flatten()))
}

func (s *OrchestratorTestSuite) TestRerollEveryDie() {
	s.rollDice(map[string]int{d6: 2})

	out, err := s.orchestrator.Reroll(s.ctx, &tray.RerollInput{PlayerID: testutils.TestPlayerID})
	s.Require().NoError(err)
	s.Len(out.Renamed, 2)
	s.Equal(rollstate.PhasePending, out.State.Phase)
}

func (s *OrchestratorTestSuite) TestRerollErrors() {
	_, err := s.orchestrator.Reroll(s.ctx, &tray.RerollInput{PlayerID: testutils.TestPlayerID})
	s.True(errors.IsNotFound(err))

	s.rollDice(map[string]int{d6: 1})
	_, err = s.orchestrator.ClearRoll(s.ctx, &tray.ClearRollInput{PlayerID: testutils.TestPlayerID})
	s.Require().NoError(err)

	_, err = s.orchestrator.Reroll(s.ctx, &tray.RerollInput{PlayerID: testutils.TestPlayerID})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestClearRoll() {
	s.Run("without a tray", func() {
		out, err := s.orchestrator.ClearRoll(s.ctx, &tray.ClearRollInput{PlayerID: "nobody"})
		s.Require().NoError(err)
		s.Equal(rollstate.PhaseIdle, out.State.Phase)
		s.Zero(s.published.Len())
	})

	s.Run("with a roll", func() {
		s.rollDice(map[string]int{d6: 1})

		out, err := s.orchestrator.ClearRoll(s.ctx, &tray.ClearRollInput{PlayerID: testutils.TestPlayerID})
		s.Require().NoError(err)
		s.Equal(rollstate.PhaseIdle, out.State.Phase)
		s.Nil(out.State.Roll)
		s.Nil(out.State.Total)

		snapshot := s.published.Last()
		s.Nil(snapshot.Roll)
		s.Equal(string(rollstate.PhaseIdle), snapshot.Phase)
	})
}

func (s *OrchestratorTestSuite) TestGetRoll() {
	s.Run("local tray", func() {
		s.rollDice(map[string]int{d6: 1})

		out, err := s.orchestrator.GetRoll(s.ctx, &tray.GetRollInput{PlayerID: testutils.TestPlayerID})
		s.Require().NoError(err)
		s.False(out.State.Remote)
		s.Contains(out.State.Values, "die_1")
	})

	s.Run("published by another process", func() {
		mocks.ExpectSnapshotGet(s.mockSync, "remote", testutils.CreateTestSnapshot("remote"), nil)

		out, err := s.orchestrator.GetRoll(s.ctx, &tray.GetRollInput{PlayerID: "remote"})
		s.Require().NoError(err)
		s.True(out.State.Remote)
		s.True(out.State.Finished)
		s.Equal(rollstate.PhaseFullyResolved, out.State.Phase)
		s.Equal(17, *out.State.Total)
	})

	s.Run("nothing published", func() {
		mocks.ExpectSnapshotGet(s.mockSync, "nobody", nil, errors.NotFound("roll snapshot not found"))

		out, err := s.orchestrator.GetRoll(s.ctx, &tray.GetRollInput{PlayerID: "nobody"})
		s.Require().NoError(err)
		s.Equal(rollstate.PhaseIdle, out.State.Phase)
	})

	s.Run("repository failure", func() {
		mocks.ExpectSnapshotGet(s.mockSync, "broken", nil, errors.Unavailable("redis down"))

		_, err := s.orchestrator.GetRoll(s.ctx, &tray.GetRollInput{PlayerID: "broken"})
		s.Require().Error(err)
		s.Equal(errors.CodeUnavailable, errors.GetCode(err))
	})
}

func (s *OrchestratorTestSuite) TestCloseTray() {
	s.rollDice(map[string]int{d6: 1})

	s.mockSync.EXPECT().
		Delete(gomock.Any(), rollsync.DeleteInput{PlayerID: testutils.TestPlayerID}).
		Return(&rollsync.DeleteOutput{Deleted: true}, nil)

	out, err := s.orchestrator.CloseTray(s.ctx, &tray.CloseTrayInput{PlayerID: testutils.TestPlayerID})
	s.Require().NoError(err)
	s.True(out.Closed)

	_, err = s.orchestrator.FinishDie(s.ctx, &tray.FinishDieInput{PlayerID: testutils.TestPlayerID, DieID: "die_1"})
	s.True(errors.IsNotFound(err))

	s.mockSync.EXPECT().
		Delete(gomock.Any(), rollsync.DeleteInput{PlayerID: testutils.TestPlayerID}).
		Return(&rollsync.DeleteOutput{}, nil)

	out, err = s.orchestrator.CloseTray(s.ctx, &tray.CloseTrayInput{PlayerID: testutils.TestPlayerID})
	s.Require().NoError(err)
	s.False(out.Closed)
}

func (s *OrchestratorTestSuite) TestListAndRemoveHistory() {
	entries := []*rollhistory.Entry{
		{SetID: testutils.TestSetID, Counts: map[string]int{d6: 1}},
		{SetID: testutils.TestSetID, Counts: map[string]int{d20: 1}},
	}

	s.mockHistory.EXPECT().
		List(gomock.Any(), rollhistory.ListInput{PlayerID: testutils.TestPlayerID}).
		Return(&rollhistory.ListOutput{Entries: entries}, nil)

	listed, err := s.orchestrator.ListHistory(s.ctx, &tray.ListHistoryInput{PlayerID: testutils.TestPlayerID})
	s.Require().NoError(err)
	s.Equal(entries, listed.Entries)

	s.mockHistory.EXPECT().
		Remove(gomock.Any(), rollhistory.RemoveInput{PlayerID: testutils.TestPlayerID, Index: 0}).
		Return(&rollhistory.RemoveOutput{Entries: entries[1:]}, nil)

	removed, err := s.orchestrator.RemoveHistory(s.ctx, &tray.RemoveHistoryInput{PlayerID: testutils.TestPlayerID})
	s.Require().NoError(err)
	s.Equal(entries[1:], removed.Entries)

	s.mockHistory.EXPECT().
		Remove(gomock.Any(), rollhistory.RemoveInput{PlayerID: testutils.TestPlayerID, Index: 5}).
		Return(nil, errors.NotFound("history entry 5 not found"))

	_, err = s.orchestrator.RemoveHistory(s.ctx, &tray.RemoveHistoryInput{PlayerID: testutils.TestPlayerID, Index: 5})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestRerollHistory() {
	mocks.ExpectHistoryGet(s.mockHistory, testutils.TestPlayerID, 2, &rollhistory.Entry{
		SetID:     testutils.TestSetID,
		Counts:    map[string]int{d100: 1},
		Bonus:     dice.Int(5),
		Advantage: dice.AdvantageDisadvantage,
	}, nil)

	out, err := s.orchestrator.RerollHistory(s.ctx, &tray.RerollHistoryInput{
		PlayerID: testutils.TestPlayerID,
		Index:    2,
		Hidden:   true,
	})
	s.Require().NoError(err)

	s.Len(out.State.Values, 4, "two percentile pairs")
	s.True(out.State.Roll.Hidden)
	s.Equal(5, *out.State.Roll.Bonus)
	s.Require().Len(out.State.Roll.Dice, 1)
	outer, ok := out.State.Roll.Dice[0].(*dice.Group)
	s.Require().True(ok)
	s.Equal(dice.CombinationLowest, outer.Combination)
}

func (s *OrchestratorTestSuite) TestRerollHistoryMissingEntry() {
	mocks.ExpectHistoryGet(s.mockHistory, testutils.TestPlayerID, 9, nil, errors.NotFound("history entry 9 not found"))

	_, err := s.orchestrator.RerollHistory(s.ctx, &tray.RerollHistoryInput{PlayerID: testutils.TestPlayerID, Index: 9})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestPreviewRoll() {
	preview := func(counts map[string]int) []dice.Throw {
		out, err := s.orchestrator.PreviewRoll(s.ctx, &tray.PreviewRollInput{
			PlayerID: testutils.TestPlayerID,
			SetID:    testutils.TestSetID,
			Counts:   counts,
		})
		s.Require().NoError(err)
		return out.Throws
	}

	three := preview(map[string]int{d6: 3})
	s.Len(three, 3)

	again := preview(map[string]int{d6: 3})
	s.Equal(three, again, "earlier dice keep their throws")

	four := preview(map[string]int{d6: 3, d20: 1})
	s.Require().Len(four, 4)
	s.Equal(three, four[:3])

	s.Empty(preview(map[string]int{}))

	advantage, err := s.orchestrator.PreviewRoll(s.ctx, &tray.PreviewRollInput{
		PlayerID:  testutils.TestPlayerID,
		SetID:     testutils.TestSetID,
		Counts:    map[string]int{d100: 1},
		Advantage: dice.AdvantageAdvantage,
	})
	s.Require().NoError(err)
	s.Len(advantage.Throws, 4)

	s.Zero(s.published.Len(), "previews are not mirrored")
}

func (s *OrchestratorTestSuite) TestPreviewRollRejectsOversizedSelections() {
	testCases := []struct {
		name      string
		counts    map[string]int
		advantage dice.Advantage
	}{
		{name: "count that would overflow", counts: map[string]int{d6: math.MaxInt}, advantage: dice.AdvantageAdvantage},
		{name: "too many of one die", counts: map[string]int{d20: tray.DefaultMaxDicePerDefinition + 1}},
		{name: "too many dice in total", counts: map[string]int{d6: 50, d20: 50, d100: 1}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.PreviewRoll(s.ctx, &tray.PreviewRollInput{
				PlayerID:  testutils.TestPlayerID,
				SetID:     testutils.TestSetID,
				Counts:    tc.counts,
				Advantage: tc.advantage,
			})
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err), err.Error())
		})
	}
}

func (s *OrchestratorTestSuite) TestSelectionLimitsAreConfigurable() {
	orchestrator, err := tray.NewOrchestrator(&tray.Config{
		Composer:             s.newComposer(),
		IDGenerator:          idgen.NewSequential("die"),
		Throws:               s.mockThrows,
		SyncRepo:             s.mockSync,
		HistoryRepo:          s.mockHistory,
		MaxDicePerDefinition: 2,
		MaxDice:              3,
	})
	s.Require().NoError(err)

	preview := func(counts map[string]int) error {
		_, err := orchestrator.PreviewRoll(s.ctx, &tray.PreviewRollInput{
			PlayerID: testutils.TestPlayerID,
			SetID:    testutils.TestSetID,
			Counts:   counts,
		})
		return err
	}

	s.NoError(preview(map[string]int{d6: 2, d20: 1}))
	s.True(errors.IsInvalidArgument(preview(map[string]int{d6: 3})))
	s.True(errors.IsInvalidArgument(preview(map[string]int{d6: 2, d20: 2})))
	s.True(errors.IsInvalidArgument(preview(map[string]int{d100: 2})), "each D100 is two dice")

	_, err = tray.NewOrchestrator(&tray.Config{MaxDice: -1})
	s.Require().Error(err)
	s.Contains(err.Error(), "MaxDice")
}

// fixedRoller always picks the first face
type fixedRoller struct{}

func (fixedRoller) Roll(_ int) (int, error) {
	return 1, nil
}

func (fixedRoller) RollN(count, _ int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = 1
	}
	return out, nil
}

func (s *OrchestratorTestSuite) TestAutoSettle() {
	st, err := settler.New(&settler.Config{
		Roller:      fixedRoller{},
		Source:      rand.NewSource(3),
		MaxRollTime: 200 * time.Millisecond,
		Tick:        time.Millisecond,
	})
	s.Require().NoError(err)
	s.orchestrator = s.newOrchestrator(st)

	s.rollDice(map[string]int{d20: 1, d6: 1})

	s.Eventually(func() bool {
		out, err := s.orchestrator.GetRoll(s.ctx, &tray.GetRollInput{PlayerID: testutils.TestPlayerID})
		return err == nil && out.State.Finished
	}, 2*time.Second, 5*time.Millisecond)

	out, err := s.orchestrator.GetRoll(s.ctx, &tray.GetRollInput{PlayerID: testutils.TestPlayerID})
	s.Require().NoError(err)
	s.Equal(2, *out.State.Total)
	s.True(s.published.Last().Finished)
}
