package engine

import (
	"slices"

	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
)

// Combine reduces the resolved raw face values of node's dice into one result.
// Unresolved dice contribute nothing. The bool is false when the expression
// has no value (yet).
func Combine(node dice.Node, values map[string]int) (int, bool) {
	switch n := node.(type) {
	case dice.Die:
		raw, ok := values[n.ID]
		if !ok {
			return 0, false
		}
		return dice.FaceValue(n.Type, raw), true
	case *dice.Group:
		return combineGroup(n, values)
	}
	return 0, false
}

// Total combines a whole roll
func Total(roll *dice.Roll, values map[string]int) (int, bool) {
	if roll == nil {
		return 0, false
	}
	return Combine(roll.Group(), values)
}

func combineGroup(g *dice.Group, values map[string]int) (int, bool) {
	if g == nil {
		return 0, false
	}

	if total, ok := percentile(g, values); ok {
		return total, true
	}

	contributions := make([]int, 0, len(g.Dice))
	for _, child := range g.Dice {
		if v, ok := Combine(child, values); ok {
			contributions = append(contributions, v)
		}
	}

	if len(contributions) == 0 {
		// NONE never falls back to a bonus-only value, unlike the other modes.
		// Synced peers compute totals the same way, so keep the asymmetry.
		if g.Combination == dice.CombinationNone || g.Bonus == nil {
			return 0, false
		}
		return *g.Bonus, true
	}

	bonus := g.BonusValue()
	switch g.Combination {
	case dice.CombinationHighest:
		return slices.Max(contributions) + bonus, true
	case dice.CombinationLowest:
		return slices.Min(contributions) + bonus, true
	default:
		return sumOf(contributions) + bonus, true
	}
}

// percentile applies the D100 pair convention: a summed group of exactly one
// D100 and one D10, in either order, reads tens plus units with 00 and 0
// meaning 100. A D100 paired with anything else is aggregated generically.
func percentile(g *dice.Group, values map[string]int) (int, bool) {
	if len(g.Dice) != 2 {
		return 0, false
	}
	if g.Combination != "" && g.Combination != dice.CombinationSum {
		return 0, false
	}

	first, ok := g.Dice[0].(dice.Die)
	if !ok {
		return 0, false
	}
	second, ok := g.Dice[1].(dice.Die)
	if !ok {
		return 0, false
	}

	tens, units := first, second
	if tens.Type != dice.TypeD100 {
		tens, units = second, first
	}
	if tens.Type != dice.TypeD100 || units.Type != dice.TypeD10 {
		return 0, false
	}

	tensValue, ok := values[tens.ID]
	if !ok {
		return 0, false
	}
	unitsValue, ok := values[units.ID]
	if !ok {
		return 0, false
	}

	if tensValue == 0 && unitsValue == 0 {
		return 100 + g.BonusValue(), true
	}
	return tensValue + unitsValue + g.BonusValue(), true
}

// ResolvedValues keeps only the dice that have settled
func ResolvedValues(values map[string]*int) map[string]int {
	resolved := make(map[string]int, len(values))
	for id, v := range values {
		if v != nil {
			resolved[id] = *v
		}
	}
	return resolved
}

// Finished reports whether there is at least one die and every die has settled
func Finished(values map[string]*int) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if v == nil {
			return false
		}
	}
	return true
}

func sumOf(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
