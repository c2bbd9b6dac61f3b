// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"
	"sync"

	"go.uber.org/mock/gomock"

	throwsmock "github.com/KirkDiggler/rpg-dice-tray/internal/engine/throws/mock"
	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
	rollhistory "github.com/KirkDiggler/rpg-dice-tray/internal/repositories/roll_history"
	rollhistorymock "github.com/KirkDiggler/rpg-dice-tray/internal/repositories/roll_history/mock"
	rollsync "github.com/KirkDiggler/rpg-dice-tray/internal/repositories/roll_sync"
	rollsyncmock "github.com/KirkDiggler/rpg-dice-tray/internal/repositories/roll_sync/mock"
)

// PublishedSnapshots records every snapshot handed to a mocked sync repository
type PublishedSnapshots struct {
	mu        sync.Mutex
	snapshots []*rollsync.RollSnapshot
}

// All returns the snapshots in publish order
func (p *PublishedSnapshots) All() []*rollsync.RollSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*rollsync.RollSnapshot(nil), p.snapshots...)
}

// Last returns the most recent snapshot or nil
func (p *PublishedSnapshots) Last() *rollsync.RollSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.snapshots) == 0 {
		return nil
	}
	return p.snapshots[len(p.snapshots)-1]
}

// Len returns how many snapshots were published
func (p *PublishedSnapshots) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.snapshots)
}

// CapturePublishes accepts any number of publishes and records them
func CapturePublishes(mockRepo *rollsyncmock.MockRepository) *PublishedSnapshots {
	published := &PublishedSnapshots{}
	mockRepo.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input rollsync.PublishInput) (*rollsync.PublishOutput, error) {
			published.mu.Lock()
			published.snapshots = append(published.snapshots, input.Snapshot)
			published.mu.Unlock()
			return &rollsync.PublishOutput{Snapshot: input.Snapshot}, nil
		}).
		AnyTimes()
	return published
}

// ExpectSnapshotGet sets up a mock expectation for reading a published snapshot
func ExpectSnapshotGet(
	mockRepo *rollsyncmock.MockRepository,
	playerID string, snapshot *rollsync.RollSnapshot, err error,
) *gomock.Call {
	var out *rollsync.GetOutput
	if err == nil {
		out = &rollsync.GetOutput{Snapshot: snapshot}
	}
	return mockRepo.EXPECT().
		Get(gomock.Any(), rollsync.GetInput{PlayerID: playerID}).
		Return(out, err)
}

// ExpectHistoryPush sets up a mock expectation for recording a selection
func ExpectHistoryPush(mockRepo *rollhistorymock.MockRepository, playerID string) *gomock.Call {
	return mockRepo.EXPECT().
		Push(gomock.Any(), pushFor(playerID)).
		DoAndReturn(func(_ context.Context, input rollhistory.PushInput) (*rollhistory.PushOutput, error) {
			return &rollhistory.PushOutput{Entries: []*rollhistory.Entry{input.Entry}}, nil
		})
}

// ExpectHistoryGet sets up a mock expectation for reading one history entry
func ExpectHistoryGet(
	mockRepo *rollhistorymock.MockRepository,
	playerID string, index int, entry *rollhistory.Entry, err error,
) *gomock.Call {
	var out *rollhistory.GetOutput
	if err == nil {
		out = &rollhistory.GetOutput{Entry: entry}
	}
	return mockRepo.EXPECT().
		Get(gomock.Any(), rollhistory.GetInput{PlayerID: playerID, Index: index}).
		Return(out, err)
}

// ExpectThrows makes the mocked generator return throw for every die
func ExpectThrows(mockGen *throwsmock.MockGenerator, throw dice.Throw) *gomock.Call {
	return mockGen.EXPECT().
		RandomThrow(gomock.Any()).
		Return(throw).
		AnyTimes()
}

// pushFor matches a history push for one player
type pushFor string

func (p pushFor) Matches(x any) bool {
	input, ok := x.(rollhistory.PushInput)
	return ok && input.PlayerID == string(p) && input.Entry != nil
}

func (p pushFor) String() string {
	return "is a history push for player " + string(p)
}
