// Package dice defines the dice expression model: single dice, recursive
// groups with combination rules, rolls, and the kinematic data exchanged
// with the physics collaborator.
package dice

import "fmt"

// Style is the cosmetic material of a die
type Style string

// Dice styles
const (
	StyleGalaxy   Style = "GALAXY"
	StyleGemstone Style = "GEMSTONE"
	StyleGlass    Style = "GLASS"
	StyleIron     Style = "IRON"
	StyleNebula   Style = "NEBULA"
	StyleSunrise  Style = "SUNRISE"
	StyleSunset   Style = "SUNSET"
	StyleWalnut   Style = "WALNUT"
)

// Styles lists every style in display order
var Styles = []Style{
	StyleGalaxy,
	StyleGemstone,
	StyleGlass,
	StyleIron,
	StyleNebula,
	StyleSunrise,
	StyleSunset,
	StyleWalnut,
}

// Valid reports whether s is a known style
func (s Style) Valid() bool {
	for _, known := range Styles {
		if s == known {
			return true
		}
	}
	return false
}

// Type is the face count of a die
type Type string

// Dice types
const (
	TypeD4   Type = "D4"
	TypeD6   Type = "D6"
	TypeD8   Type = "D8"
	TypeD10  Type = "D10"
	TypeD12  Type = "D12"
	TypeD20  Type = "D20"
	TypeD100 Type = "D100"
)

// Types lists every die type in display order
var Types = []Type{TypeD4, TypeD6, TypeD8, TypeD10, TypeD12, TypeD20, TypeD100}

// Valid reports whether t is a known die type
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Faces returns the values printed on the physical die.
// A D10 reads 0-9 and a D100 reads 00-90 in steps of ten.
// Unknown types are a programming error and panic.
func (t Type) Faces() []int {
	var faces []int
	switch t {
	case TypeD4, TypeD6, TypeD8, TypeD12, TypeD20:
		sides := t.sides()
		faces = make([]int, sides)
		for i := range faces {
			faces[i] = i + 1
		}
	case TypeD10:
		faces = make([]int, 10)
		for i := range faces {
			faces[i] = i
		}
	case TypeD100:
		faces = make([]int, 10)
		for i := range faces {
			faces[i] = i * 10
		}
	default:
		panic(fmt.Sprintf("dice: unknown die type %q", string(t)))
	}
	return faces
}

func (t Type) sides() int {
	switch t {
	case TypeD4:
		return 4
	case TypeD6:
		return 6
	case TypeD8:
		return 8
	case TypeD12:
		return 12
	case TypeD20:
		return 20
	}
	return 10
}

// FaceValue converts a raw face reading into its numeric value.
// The face labelled 0 on a D10 counts as ten; every other reading is used as is.
func FaceValue(t Type, raw int) int {
	if t == TypeD10 && raw == 0 {
		return 10
	}
	return raw
}

// Combination is how a group aggregates the values of its children
type Combination string

// Combination modes. An empty combination behaves as CombinationSum.
const (
	CombinationSum     Combination = "SUM"
	CombinationHighest Combination = "HIGHEST"
	CombinationLowest  Combination = "LOWEST"
	CombinationNone    Combination = "NONE"
)

// Valid reports whether c is empty or a known combination
func (c Combination) Valid() bool {
	switch c {
	case "", CombinationSum, CombinationHighest, CombinationLowest, CombinationNone:
		return true
	}
	return false
}

// Advantage is the advantage mode of a dice selection
type Advantage string

// Advantage modes. The zero value rolls every die once.
const (
	AdvantageNone         Advantage = ""
	AdvantageAdvantage    Advantage = "ADVANTAGE"
	AdvantageDisadvantage Advantage = "DISADVANTAGE"
)

// Valid reports whether a is a known advantage mode
func (a Advantage) Valid() bool {
	switch a {
	case AdvantageNone, AdvantageAdvantage, AdvantageDisadvantage:
		return true
	}
	return false
}

// Combination returns the group combination used for this advantage mode
func (a Advantage) Combination() Combination {
	if a == AdvantageDisadvantage {
		return CombinationLowest
	}
	return CombinationHighest
}
