// Package rollhistory stores each player's most recent dice selections so
// they can be rolled again
package rollhistory

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rollhistorymock github.com/KirkDiggler/rpg-dice-tray/internal/repositories/roll_history Repository

// Entry is a selection that was rolled, not the roll itself
type Entry struct {
	SetID     string         `json:"set_id"`
	Counts    map[string]int `json:"counts"`
	Bonus     *int           `json:"bonus,omitempty"`
	Advantage dice.Advantage `json:"advantage,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// PushInput contains parameters for recording a selection
type PushInput struct {
	PlayerID string
	Entry    *Entry
}

// PushOutput contains the player's history after the push, oldest first
type PushOutput struct {
	Entries []*Entry
}

// ListInput contains parameters for listing a player's history
type ListInput struct {
	PlayerID string
}

// ListOutput contains the player's history, oldest first
type ListOutput struct {
	Entries []*Entry
}

// GetInput contains parameters for reading one entry
type GetInput struct {
	PlayerID string
	Index    int
}

// GetOutput contains the requested entry
type GetOutput struct {
	Entry *Entry
}

// RemoveInput contains parameters for removing one entry
type RemoveInput struct {
	PlayerID string
	Index    int
}

// RemoveOutput contains the player's history after the removal
type RemoveOutput struct {
	Entries []*Entry
}

// Repository defines storage for recent roll selections
type Repository interface {
	// Push appends an entry and drops the oldest beyond the limit
	Push(ctx context.Context, input PushInput) (*PushOutput, error)

	// List returns every entry, oldest first
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Get returns the entry at index or NotFound
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Remove deletes the entry at index or returns NotFound
	Remove(ctx context.Context, input RemoveInput) (*RemoveOutput, error)
}
