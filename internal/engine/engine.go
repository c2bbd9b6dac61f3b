package engine

import (
	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
	"github.com/KirkDiggler/rpg-dice-tray/internal/errors"
	"github.com/KirkDiggler/rpg-dice-tray/internal/pkg/idgen"
)

// Config holds the dependencies for the composer
type Config struct {
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type composer struct {
	idGen idgen.Generator
}

// NewComposer creates a composer that names every die with cfg.IDGenerator
func NewComposer(cfg *Config) (Composer, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &composer{idGen: cfg.IDGenerator}, nil
}

func (c *composer) Compose(counts map[string]int, advantage dice.Advantage, set dice.Set) []dice.Node {
	nodes := []dice.Node{}
	for _, def := range set.Dice {
		count := counts[def.ID]
		for i := 0; i < count; i++ {
			if advantage == dice.AdvantageNone {
				nodes = append(nodes, c.instance(def))
				continue
			}
			nodes = append(nodes, &dice.Group{
				Dice:        []dice.Node{c.instance(def), c.instance(def)},
				Combination: advantage.Combination(),
			})
		}
	}
	return nodes
}

func (c *composer) ComposeRoll(selection *Selection) *dice.Roll {
	return &dice.Roll{
		Dice:   c.Compose(selection.Counts, selection.Advantage, selection.Set),
		Bonus:  selection.Bonus,
		Hidden: selection.Hidden,
	}
}

// instance creates one rolled instance of a definition.
// A percentile die becomes a tens die paired with a units die.
func (c *composer) instance(def dice.Die) dice.Node {
	if def.Type == dice.TypeD100 {
		return &dice.Group{
			Dice: []dice.Node{
				c.die(def.Style, dice.TypeD100),
				c.die(def.Style, dice.TypeD10),
			},
		}
	}
	return c.die(def.Style, def.Type)
}

func (c *composer) die(style dice.Style, t dice.Type) dice.Die {
	return dice.Die{ID: c.idGen.Generate(), Style: style, Type: t}
}
