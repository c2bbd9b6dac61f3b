package rollhistory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
	"github.com/KirkDiggler/rpg-dice-tray/internal/errors"
	"github.com/KirkDiggler/rpg-dice-tray/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-dice-tray/internal/redis"
	rollhistory "github.com/KirkDiggler/rpg-dice-tray/internal/repositories/roll_history"
	"github.com/KirkDiggler/rpg-dice-tray/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    redisclient.Client
	clock     *clock.Fixed
	repo      rollhistory.Repository
	cleanup   func()
	ctx       context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, client, cleanup := testutils.CreateTestRedis(s.T())
	s.miniRedis = mr
	s.client = client
	s.cleanup = cleanup
	s.clock = clock.NewFixed(testutils.TestTime)

	repo, err := rollhistory.NewRedisRepository(&rollhistory.Config{
		Client: client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

// entry builds a selection whose d6 count identifies it
func entry(n int) *rollhistory.Entry {
	return &rollhistory.Entry{
		SetID:  testutils.TestSetID,
		Counts: map[string]int{"GALAXY_STANDARD_D6": n},
	}
}

func (s *RedisRepositoryTestSuite) push(n int) *rollhistory.PushOutput {
	out, err := s.repo.Push(s.ctx, rollhistory.PushInput{PlayerID: testutils.TestPlayerID, Entry: entry(n)})
	s.Require().NoError(err)
	return out
}

func counts(entries []*rollhistory.Entry) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Counts["GALAXY_STANDARD_D6"])
	}
	return out
}

func (s *RedisRepositoryTestSuite) TestNewRedisRepository() {
	_, err := rollhistory.NewRedisRepository(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = rollhistory.NewRedisRepository(&rollhistory.Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "Client: is required")
	s.Contains(err.Error(), "Clock: is required")

	client, cleanup := testutils.CreateTestRedisClient(s.T())
	defer cleanup()

	_, err = rollhistory.NewRedisRepository(&rollhistory.Config{
		Client:     client,
		Clock:      s.clock,
		MaxEntries: -1,
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "MaxEntries: must not be negative")
}

func (s *RedisRepositoryTestSuite) TestPushAndList() {
	bonus := 2
	out, err := s.repo.Push(s.ctx, rollhistory.PushInput{
		PlayerID: testutils.TestPlayerID,
		Entry: &rollhistory.Entry{
			SetID:     testutils.TestSetID,
			Counts:    map[string]int{"GALAXY_STANDARD_D20": 1},
			Bonus:     &bonus,
			Advantage: dice.AdvantageAdvantage,
		},
	})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 1)
	s.True(testutils.TestTime.Equal(out.Entries[0].CreatedAt))

	listed, err := s.repo.List(s.ctx, rollhistory.ListInput{PlayerID: testutils.TestPlayerID})
	s.Require().NoError(err)
	s.Require().Len(listed.Entries, 1)
	got := listed.Entries[0]
	s.Equal(testutils.TestSetID, got.SetID)
	s.Equal(map[string]int{"GALAXY_STANDARD_D20": 1}, got.Counts)
	s.Equal(2, *got.Bonus)
	s.Equal(dice.AdvantageAdvantage, got.Advantage)

	ttl := s.miniRedis.TTL("roll_history:" + testutils.TestPlayerID)
	s.Equal(7*24*time.Hour, ttl)
}

func (s *RedisRepositoryTestSuite) TestPushKeepsNewestSix() {
	var out *rollhistory.PushOutput
	for i := 1; i <= 8; i++ {
		out = s.push(i)
	}

	s.Equal([]int{3, 4, 5, 6, 7, 8}, counts(out.Entries))

	listed, err := s.repo.List(s.ctx, rollhistory.ListInput{PlayerID: testutils.TestPlayerID})
	s.Require().NoError(err)
	s.Equal([]int{3, 4, 5, 6, 7, 8}, counts(listed.Entries))
}

func (s *RedisRepositoryTestSuite) TestCustomLimit() {
	_, client, cleanup := testutils.CreateTestRedis(s.T())
	defer cleanup()

	repo, err := rollhistory.NewRedisRepository(&rollhistory.Config{Client: client, Clock: s.clock, MaxEntries: 2})
	s.Require().NoError(err)

	for i := 1; i <= 3; i++ {
		_, err := repo.Push(s.ctx, rollhistory.PushInput{PlayerID: "p", Entry: entry(i)})
		s.Require().NoError(err)
	}

	listed, err := repo.List(s.ctx, rollhistory.ListInput{PlayerID: "p"})
	s.Require().NoError(err)
	s.Equal([]int{2, 3}, counts(listed.Entries))
}

func (s *RedisRepositoryTestSuite) TestPushValidation() {
	testCases := []struct {
		name  string
		input rollhistory.PushInput
	}{
		{name: "missing player", input: rollhistory.PushInput{Entry: entry(1)}},
		{name: "missing entry", input: rollhistory.PushInput{PlayerID: "p"}},
		{name: "missing set", input: rollhistory.PushInput{PlayerID: "p", Entry: &rollhistory.Entry{}}},
		{
			name: "unknown advantage",
			input: rollhistory.PushInput{PlayerID: "p", Entry: &rollhistory.Entry{
				SetID:     testutils.TestSetID,
				Advantage: dice.Advantage("SIDEWAYS"),
			}},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Push(s.ctx, tc.input)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RedisRepositoryTestSuite) TestListEmpty() {
	out, err := s.repo.List(s.ctx, rollhistory.ListInput{PlayerID: "nobody"})
	s.Require().NoError(err)
	s.Empty(out.Entries)
}

func (s *RedisRepositoryTestSuite) TestGet() {
	for i := 1; i <= 3; i++ {
		s.push(i)
	}

	out, err := s.repo.Get(s.ctx, rollhistory.GetInput{PlayerID: testutils.TestPlayerID, Index: 1})
	s.Require().NoError(err)
	s.Equal(2, out.Entry.Counts["GALAXY_STANDARD_D6"])

	_, err = s.repo.Get(s.ctx, rollhistory.GetInput{PlayerID: testutils.TestPlayerID, Index: 3})
	s.True(errors.IsNotFound(err))
	s.Equal(3, errors.GetMeta(err)["index"])

	_, err = s.repo.Get(s.ctx, rollhistory.GetInput{PlayerID: testutils.TestPlayerID, Index: -1})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestRemove() {
	for i := 1; i <= 4; i++ {
		s.push(i)
	}

	testCases := []struct {
		index    int
		expected []int
	}{
		{index: 1, expected: []int{1, 3, 4}},
		{index: 2, expected: []int{1, 3}},
		{index: 0, expected: []int{3}},
		{index: 0, expected: []int{}},
	}

	for _, tc := range testCases {
		s.Run(fmt.Sprintf("remove %d", tc.index), func() {
			out, err := s.repo.Remove(s.ctx, rollhistory.RemoveInput{PlayerID: testutils.TestPlayerID, Index: tc.index})
			s.Require().NoError(err)
			s.Equal(tc.expected, counts(out.Entries))
		})
	}
}

func (s *RedisRepositoryTestSuite) TestRemoveDuplicatesOnlyOne() {
	s.push(5)
	s.push(5)

	out, err := s.repo.Remove(s.ctx, rollhistory.RemoveInput{PlayerID: testutils.TestPlayerID, Index: 0})
	s.Require().NoError(err)
	s.Equal([]int{5}, counts(out.Entries))
}

func (s *RedisRepositoryTestSuite) TestRemoveOutOfRange() {
	s.push(1)

	_, err := s.repo.Remove(s.ctx, rollhistory.RemoveInput{PlayerID: testutils.TestPlayerID, Index: 1})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Remove(s.ctx, rollhistory.RemoveInput{PlayerID: testutils.TestPlayerID, Index: -1})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Remove(s.ctx, rollhistory.RemoveInput{PlayerID: "nobody", Index: 0})
	s.True(errors.IsNotFound(err))
}

// writeOnFirstLen runs write from another connection the first time LLEN is
// sent, between the index check and the removal
type writeOnFirstLen struct {
	write func()
	fired bool
}

func (h *writeOnFirstLen) DialHook(next goredis.DialHook) goredis.DialHook {
	return next
}

func (h *writeOnFirstLen) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		err := next(ctx, cmd)
		if cmd.Name() == "llen" && !h.fired {
			h.fired = true
			h.write()
		}
		return err
	}
}

func (h *writeOnFirstLen) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return next
}

func (s *RedisRepositoryTestSuite) TestRemoveRechecksIndexAfterConcurrentWrite() {
	for i := 1; i <= 3; i++ {
		s.push(i)
	}

	other := goredis.NewClient(&goredis.Options{Addr: s.miniRedis.Addr()})
	defer func() { _ = other.Close() }()

	key := "roll_history:" + testutils.TestPlayerID
	hook := &writeOnFirstLen{write: func() {
		s.Require().NoError(other.LTrim(s.ctx, key, 0, 0).Err())
	}}
	s.client.AddHook(hook)

	_, err := s.repo.Remove(s.ctx, rollhistory.RemoveInput{PlayerID: testutils.TestPlayerID, Index: 2})
	s.Require().Error(err)
	s.True(hook.fired)
	s.True(errors.IsNotFound(err), err.Error())

	out, err := s.repo.List(s.ctx, rollhistory.ListInput{PlayerID: testutils.TestPlayerID})
	s.Require().NoError(err)
	s.Equal([]int{1}, counts(out.Entries))
}

func (s *RedisRepositoryTestSuite) TestRemoveRetriesAfterConcurrentWrite() {
	for i := 1; i <= 2; i++ {
		s.push(i)
	}

	other := goredis.NewClient(&goredis.Options{Addr: s.miniRedis.Addr()})
	defer func() { _ = other.Close() }()

	key := "roll_history:" + testutils.TestPlayerID
	hook := &writeOnFirstLen{write: func() {
		s.Require().NoError(other.LPop(s.ctx, key).Err())
	}}
	s.client.AddHook(hook)

	out, err := s.repo.Remove(s.ctx, rollhistory.RemoveInput{PlayerID: testutils.TestPlayerID, Index: 0})
	s.Require().NoError(err)
	s.Empty(out.Entries, "the retry removes what is at the index now")
}
