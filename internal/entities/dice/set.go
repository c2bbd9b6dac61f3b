package dice

import (
	"fmt"
	"strings"
)

// AllSetID is the ID of the set containing every standard die
const AllSetID = "all"

// Set is an ordered collection of die definitions selectable in the UI.
// A definition's ID identifies the definition, not a rolled instance.
type Set struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Dice []Die  `json:"dice"`
}

// Definition looks up a die definition by ID
func (s Set) Definition(id string) (Die, bool) {
	for _, d := range s.Dice {
		if d.ID == id {
			return d, true
		}
	}
	return Die{}, false
}

// StandardSet returns the seven standard dice of a style
func StandardSet(style Style) Set {
	id := fmt.Sprintf("%s_STANDARD", style)
	set := Set{
		ID:   id,
		Name: fmt.Sprintf("%s dice", strings.ToLower(string(style))),
		Dice: make([]Die, 0, len(Types)),
	}
	for _, t := range Types {
		set.Dice = append(set.Dice, Die{
			ID:    fmt.Sprintf("%s_%s", id, t),
			Style: style,
			Type:  t,
		})
	}
	return set
}

// StandardSets returns one standard set per style followed by the "all" set
func StandardSets() []Set {
	sets := make([]Set, 0, len(Styles)+1)
	all := Set{ID: AllSetID, Name: AllSetID}
	for _, style := range Styles {
		set := StandardSet(style)
		sets = append(sets, set)
		all.Dice = append(all.Dice, set.Dice...)
	}
	return append(sets, all)
}

// FindSet returns the standard set with the given ID
func FindSet(id string) (Set, bool) {
	for _, set := range StandardSets() {
		if set.ID == id {
			return set, true
		}
	}
	return Set{}, false
}
