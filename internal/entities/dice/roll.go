package dice

// Roll is the root expression of one user-initiated roll
type Roll struct {
	Dice        []Node      `json:"dice"`
	Combination Combination `json:"combination,omitempty"`
	Bonus       *int        `json:"bonus,omitempty"`
	Hidden      bool        `json:"hidden,omitempty"`
}

// Group returns the roll as a group expression sharing the same children
func (r *Roll) Group() *Group {
	return &Group{
		Dice:        r.Dice,
		Combination: r.Combination,
		Bonus:       r.Bonus,
	}
}

// Flatten returns every die in the roll in display order
func (r *Roll) Flatten() []Die {
	if r == nil {
		return nil
	}
	return Flatten(r.Group())
}
