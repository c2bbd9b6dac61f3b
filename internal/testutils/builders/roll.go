// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
)

// RollBuilder provides a fluent interface for building test rolls with
// fixed die ids
type RollBuilder struct {
	style dice.Style
	roll  *dice.Roll
}

// NewRollBuilder creates an empty roll of NEBULA dice
func NewRollBuilder() *RollBuilder {
	return &RollBuilder{
		style: dice.StyleNebula,
		roll:  &dice.Roll{Dice: []dice.Node{}},
	}
}

// WithStyle sets the style of dice added afterwards
func (b *RollBuilder) WithStyle(style dice.Style) *RollBuilder {
	b.style = style
	return b
}

// WithDie appends a single die
func (b *RollBuilder) WithDie(id string, t dice.Type) *RollBuilder {
	b.roll.Dice = append(b.roll.Dice, b.Die(id, t))
	return b
}

// WithPercentile appends a D100 and D10 pair
func (b *RollBuilder) WithPercentile(tensID, unitsID string) *RollBuilder {
	b.roll.Dice = append(b.roll.Dice, b.Percentile(tensID, unitsID))
	return b
}

// WithGroup appends a nested group
func (b *RollBuilder) WithGroup(combination dice.Combination, nodes ...dice.Node) *RollBuilder {
	b.roll.Dice = append(b.roll.Dice, &dice.Group{Dice: nodes, Combination: combination})
	return b
}

// WithCombination sets the root combination
func (b *RollBuilder) WithCombination(combination dice.Combination) *RollBuilder {
	b.roll.Combination = combination
	return b
}

// WithBonus sets the root bonus
func (b *RollBuilder) WithBonus(bonus int) *RollBuilder {
	b.roll.Bonus = dice.Int(bonus)
	return b
}

// Hidden marks the roll as hidden
func (b *RollBuilder) Hidden() *RollBuilder {
	b.roll.Hidden = true
	return b
}

// Die returns a die in the builder's style without adding it
func (b *RollBuilder) Die(id string, t dice.Type) dice.Die {
	return dice.Die{ID: id, Style: b.style, Type: t}
}

// Percentile returns a D100 and D10 pair without adding it
func (b *RollBuilder) Percentile(tensID, unitsID string) *dice.Group {
	return &dice.Group{Dice: []dice.Node{b.Die(tensID, dice.TypeD100), b.Die(unitsID, dice.TypeD10)}}
}

// Build returns the built roll
func (b *RollBuilder) Build() *dice.Roll {
	return b.roll
}
