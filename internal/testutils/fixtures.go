package testutils

import (
	"time"

	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
	rollsync "github.com/KirkDiggler/rpg-dice-tray/internal/repositories/roll_sync"
)

const (
	// TestPlayerID is the default player for test fixtures
	TestPlayerID = "player-test-001"

	// TestSetID is the dice set used by test selections
	TestSetID = "GALAXY_STANDARD"
)

// TestTime is a fixed point in time for clocks in tests
var TestTime = time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC)

// CreateTestTransform creates a settled pose
func CreateTestTransform() dice.Transform {
	return dice.Transform{
		Position: dice.Vector3{X: 0.12, Y: 0.05, Z: -0.34},
		Rotation: dice.Quaternion{X: 0, Y: 0.71, Z: 0, W: 0.71},
	}
}

// CreateTestThrow creates a throw aimed at the tray centre
func CreateTestThrow() dice.Throw {
	return dice.Throw{
		Position:        dice.Vector3{X: 0.2, Y: 1.1, Z: 0.4},
		Rotation:        dice.Quaternion{W: 1},
		LinearVelocity:  dice.Vector3{X: -0.8, Z: -1.6},
		AngularVelocity: dice.Vector3{X: 3, Y: 4, Z: 5},
	}
}

// CreateTestSnapshot creates a settled d20 roll of 17
func CreateTestSnapshot(playerID string) *rollsync.RollSnapshot {
	transform := CreateTestTransform()
	total := 17
	return &rollsync.RollSnapshot{
		PlayerID: playerID,
		Roll: &dice.Roll{
			Dice: []dice.Node{dice.Die{ID: "die_1", Style: dice.StyleGalaxy, Type: dice.TypeD20}},
		},
		Values:     map[string]*int{"die_1": dice.Int(17)},
		Transforms: map[string]*dice.Transform{"die_1": &transform},
		Throws:     map[string]dice.Throw{"die_1": CreateTestThrow()},
		Total:      &total,
		Finished:   true,
		Phase:      "FULLY_RESOLVED",
	}
}
