// Package rollsync stores the latest published state of each player's dice
// tray for other connected clients
package rollsync

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rollsyncmock github.com/KirkDiggler/rpg-dice-tray/internal/repositories/roll_sync Repository

// RollSnapshot is the plain data mirrored to other participants.
// Roll is nil once the tray has been cleared.
type RollSnapshot struct {
	PlayerID string `json:"player_id"`

	Roll       *dice.Roll                 `json:"roll"`
	Values     map[string]*int            `json:"values,omitempty"`
	Transforms map[string]*dice.Transform `json:"transforms,omitempty"`
	Throws     map[string]dice.Throw      `json:"throws,omitempty"`

	// Total is the combined value once every die has settled
	Total    *int   `json:"total,omitempty"`
	Finished bool   `json:"finished"`
	Phase    string `json:"phase"`

	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PublishInput contains parameters for publishing a snapshot
type PublishInput struct {
	Snapshot *RollSnapshot
	TTL      time.Duration // How long other clients may read it
}

// PublishOutput contains the stored snapshot
type PublishOutput struct {
	Snapshot *RollSnapshot
}

// GetInput contains parameters for reading a snapshot
type GetInput struct {
	PlayerID string
}

// GetOutput contains the published snapshot
type GetOutput struct {
	Snapshot *RollSnapshot
}

// DeleteInput contains parameters for removing a snapshot
type DeleteInput struct {
	PlayerID string
}

// DeleteOutput reports whether a snapshot existed
type DeleteOutput struct {
	Deleted bool
}

// Repository defines storage for published roll snapshots
type Repository interface {
	// Publish replaces the player's snapshot
	Publish(ctx context.Context, input PublishInput) (*PublishOutput, error)

	// Get returns the player's snapshot or NotFound
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes the player's snapshot
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
