// Package engine expands dice selections into roll expressions and
// reduces resolved face values back into a single result
package engine

//go:generate mockgen -destination=mock/mock_composer.go -package=enginemock github.com/KirkDiggler/rpg-dice-tray/internal/engine Composer

import (
	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
)

// Composer turns a dice selection into a dice expression
type Composer interface {
	// Compose expands per-definition counts into the top level nodes of a roll.
	// Definitions are visited in set order; unknown ids and counts <= 0 are skipped.
	Compose(counts map[string]int, advantage dice.Advantage, set dice.Set) []dice.Node

	// ComposeRoll composes a full roll, attaching bonus and hidden flag
	ComposeRoll(selection *Selection) *dice.Roll
}

// Selection is what a user picked in the tray sidebar
type Selection struct {
	Counts    map[string]int
	Advantage dice.Advantage
	Bonus     *int
	Hidden    bool
	Set       dice.Set
}

// Leaves returns the number of dice a selection composes into
func (s *Selection) Leaves() int {
	total := 0
	for _, def := range s.Set.Dice {
		count := s.Counts[def.ID]
		if count <= 0 {
			continue
		}
		perInstance := 1
		if def.Type == dice.TypeD100 {
			perInstance = 2
		}
		if s.Advantage != dice.AdvantageNone {
			perInstance *= 2
		}
		total += count * perInstance
	}
	return total
}
