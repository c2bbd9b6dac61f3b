package dice

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Node is either a Die or a *Group.
// Switch on the dynamic type to tell them apart.
type Node interface {
	isNode()
}

// Die is a single physical die instance.
// Two dice with the same style and type but different IDs are distinct.
type Die struct {
	ID    string `json:"id"`
	Style Style  `json:"style"`
	Type  Type   `json:"type"`
}

func (Die) isNode() {}

// GetID returns the die instance ID
func (d Die) GetID() string {
	return d.ID
}

// GetType returns the entity type for rpg-toolkit events
func (d Die) GetType() string {
	return "die"
}

// Group is a composite roll node combining dice and nested groups
type Group struct {
	Dice        []Node      `json:"dice"`
	Combination Combination `json:"combination,omitempty"`
	Bonus       *int        `json:"bonus,omitempty"`
}

func (*Group) isNode() {}

// BonusValue returns the bonus or zero when unset
func (g *Group) BonusValue() int {
	if g.Bonus == nil {
		return 0
	}
	return *g.Bonus
}

// Flatten returns every die reachable from node, depth first and left to right
func Flatten(node Node) []Die {
	return appendDice(nil, node)
}

func appendDice(out []Die, node Node) []Die {
	switch n := node.(type) {
	case Die:
		out = append(out, n)
	case *Group:
		if n == nil {
			return out
		}
		for _, child := range n.Dice {
			out = appendDice(out, child)
		}
	}
	return out
}

// IDs returns the IDs of dice in order
func IDs(dice []Die) []string {
	ids := make([]string, len(dice))
	for i, d := range dice {
		ids[i] = d.ID
	}
	return ids
}

// Int returns a pointer to v, for optional bonuses
func Int(v int) *int {
	return &v
}

var _ core.Entity = Die{}
