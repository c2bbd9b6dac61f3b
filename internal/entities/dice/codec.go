package dice

import (
	"bytes"
	"encoding/json"

	"github.com/KirkDiggler/rpg-dice-tray/internal/errors"
)

// UnmarshalJSON decodes a die and rejects unknown styles and types
func (d *Die) UnmarshalJSON(data []byte) error {
	type plain Die
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode die")
	}
	if decoded.ID == "" {
		return errors.InvalidArgument("die id is required")
	}
	if !decoded.Style.Valid() {
		return errors.InvalidArgumentf("unknown die style: %s", decoded.Style).WithMeta("die_id", decoded.ID)
	}
	if !decoded.Type.Valid() {
		return errors.InvalidArgumentf("unknown die type: %s", decoded.Type).WithMeta("die_id", decoded.ID)
	}

	*d = Die(decoded)
	return nil
}

type wireGroup struct {
	Dice        []json.RawMessage `json:"dice"`
	Combination Combination       `json:"combination,omitempty"`
	Bonus       *int              `json:"bonus,omitempty"`
	Hidden      bool              `json:"hidden,omitempty"`
}

func (w *wireGroup) decode(data []byte) ([]Node, error) {
	if err := json.Unmarshal(data, w); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode dice group")
	}
	if !w.Combination.Valid() {
		return nil, errors.InvalidArgumentf("unknown combination: %s", w.Combination)
	}
	return decodeNodes(w.Dice)
}

// UnmarshalJSON decodes a group, telling dice and nested groups apart by shape
func (g *Group) UnmarshalJSON(data []byte) error {
	var w wireGroup
	nodes, err := w.decode(data)
	if err != nil {
		return err
	}

	*g = Group{Dice: nodes, Combination: w.Combination, Bonus: w.Bonus}
	return nil
}

// UnmarshalJSON decodes a roll from its flat wire shape
func (r *Roll) UnmarshalJSON(data []byte) error {
	var w wireGroup
	nodes, err := w.decode(data)
	if err != nil {
		return err
	}

	*r = Roll{Dice: nodes, Combination: w.Combination, Bonus: w.Bonus, Hidden: w.Hidden}
	return nil
}

func decodeNodes(raws []json.RawMessage) ([]Node, error) {
	nodes := make([]Node, 0, len(raws))
	for i, raw := range raws {
		node, err := decodeNode(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid dice entry %d", i)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// decodeNode treats any object with a "dice" array as a group and any object
// with a string "id" as a die
func decodeNode(raw json.RawMessage) (Node, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, errors.InvalidArgument("dice entry must be an object")
	}

	if inner, ok := probe["dice"]; ok && bytes.HasPrefix(bytes.TrimSpace(inner), []byte("[")) {
		group := &Group{}
		if err := json.Unmarshal(raw, group); err != nil {
			return nil, err
		}
		return group, nil
	}

	if id, ok := probe["id"]; ok && bytes.HasPrefix(bytes.TrimSpace(id), []byte(`"`)) {
		var die Die
		if err := json.Unmarshal(raw, &die); err != nil {
			return nil, err
		}
		return die, nil
	}

	return nil, errors.InvalidArgument("dice entry is neither a die nor a group")
}
