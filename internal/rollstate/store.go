// Package rollstate holds the active roll of one dice tray and the
// per-die resolution state reported by the physics collaborator.
//
// Every command runs under a single lock, so readers never observe the
// value, transform and throw maps out of step with each other or with the
// roll tree. Settlement callbacks may arrive on any goroutine and in any
// order; callbacks for dice that are no longer part of the roll are ignored.
package rollstate

import (
	"maps"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-dice-tray/internal/engine"
	"github.com/KirkDiggler/rpg-dice-tray/internal/engine/throws"
	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
	"github.com/KirkDiggler/rpg-dice-tray/internal/errors"
	"github.com/KirkDiggler/rpg-dice-tray/internal/pkg/idgen"
)

// Config holds the dependencies for a store
type Config struct {
	// Owner identifies the tray in published events
	Owner       string
	IDGenerator idgen.Generator
	Throws      throws.Generator
	// EventBus is optional
	EventBus events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Throws == nil {
		vb.RequiredField("Throws")
	}

	return vb.Build()
}

// Store is the roll lifecycle state of one tray
type Store struct {
	mu sync.RWMutex

	owner  tray
	idGen  idgen.Generator
	throws throws.Generator
	bus    events.EventBus

	// roll is never mutated once stored; Reroll swaps in a rebuilt tree
	roll       *dice.Roll
	values     map[string]*int
	transforms map[string]*dice.Transform
	throwMap   map[string]dice.Throw
}

// NewStore creates an idle store
func NewStore(cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	s := &Store{
		owner:  tray{id: cfg.Owner},
		idGen:  cfg.IDGenerator,
		throws: cfg.Throws,
		bus:    cfg.EventBus,
	}
	s.reset()
	return s, nil
}

// reset must be called with mu held
func (s *Store) reset() {
	s.roll = nil
	s.values = make(map[string]*int)
	s.transforms = make(map[string]*dice.Transform)
	s.throwMap = make(map[string]dice.Throw)
}

// Start replaces the tray state with roll. Every die starts unresolved with
// a fresh throw scaled by speedMultiplier, clamped to [1,10].
func (s *Store) Start(roll *dice.Roll, speedMultiplier float64) error {
	if roll == nil {
		return errors.InvalidArgument("roll is required")
	}

	owned := cloneRoll(roll)
	leaves := owned.Flatten()
	seen := make(map[string]struct{}, len(leaves))
	for _, d := range leaves {
		if d.ID == "" {
			return errors.InvalidArgument("die id is required")
		}
		if _, dup := seen[d.ID]; dup {
			return errors.InvalidArgumentf("duplicate die id: %s", d.ID).WithMeta("die_id", d.ID)
		}
		seen[d.ID] = struct{}{}
	}

	multiplier := throws.ClampSpeed(speedMultiplier)

	s.mu.Lock()
	s.reset()
	s.roll = owned
	for _, d := range leaves {
		s.values[d.ID] = nil
		s.transforms[d.ID] = nil
		s.throwMap[d.ID] = s.throws.RandomThrow(multiplier)
	}
	s.mu.Unlock()

	s.publish(pendingEvent{
		eventType: EventRollStarted,
		source:    s.owner,
		data:      map[string]any{KeyDieIDs: dice.IDs(leaves)},
	})
	return nil
}

// FinishDieRoll records the settled face and pose of a die. It overwrites an
// earlier result for the same id and returns false, changing nothing, when
// the id is not part of the current roll.
func (s *Store) FinishDieRoll(id string, value int, transform dice.Transform) bool {
	s.mu.Lock()
	if _, ok := s.values[id]; !ok {
		s.mu.Unlock()
		return false
	}

	wasFinished := engine.Finished(s.values)
	v := value
	t := transform
	s.values[id] = &v
	s.transforms[id] = &t

	pending := []pendingEvent{{
		eventType: EventDieSettled,
		source:    s.dieLocked(id),
		data:      map[string]any{KeyDieID: id, KeyValue: value},
	}}
	if !wasFinished && engine.Finished(s.values) {
		finished := pendingEvent{eventType: EventRollFinished, source: s.owner, data: map[string]any{}}
		if total, ok := engine.Total(s.roll, engine.ResolvedValues(s.values)); ok {
			finished.data[KeyTotal] = total
		}
		pending = append(pending, finished)
	}
	s.mu.Unlock()

	s.publish(pending...)
	return true
}

// Reroll gives every die in ids a new id, an unresolved state and a fresh
// throw. A nil ids rerolls every die. manualThrows, keyed by the old id,
// overrides the random throw. Unknown ids are ignored. It returns the new id
// of each rerolled die keyed by its old id.
func (s *Store) Reroll(ids []string, manualThrows map[string]dice.Throw) map[string]string {
	s.mu.Lock()
	if s.roll == nil {
		s.mu.Unlock()
		return map[string]string{}
	}

	var targets map[string]struct{}
	if ids != nil {
		targets = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			if _, ok := s.values[id]; ok {
				targets[id] = struct{}{}
			}
		}
	}

	renamed := make(map[string]string)
	rebuilt, changed := s.rebuild(s.roll.Dice, targets, renamed)
	if changed {
		next := *s.roll
		next.Dice = rebuilt
		s.roll = &next
	}

	for oldID, newID := range renamed {
		delete(s.values, oldID)
		delete(s.transforms, oldID)
		delete(s.throwMap, oldID)

		s.values[newID] = nil
		s.transforms[newID] = nil
		if throw, ok := manualThrows[oldID]; ok {
			s.throwMap[newID] = throw
		} else {
			// A reroll never inherits the speed the roll was charged with
			s.throwMap[newID] = s.throws.RandomThrow(throws.MinSpeedMultiplier)
		}
	}
	s.mu.Unlock()

	if len(renamed) > 0 {
		s.publish(pendingEvent{
			eventType: EventRollRerolled,
			source:    s.owner,
			data:      map[string]any{KeyRenamed: maps.Clone(renamed)},
		})
	}
	return renamed
}

// rebuild copies the path from the root to every rerolled die and shares
// untouched subtrees. A nil targets selects every die.
func (s *Store) rebuild(nodes []dice.Node, targets map[string]struct{}, renamed map[string]string) ([]dice.Node, bool) {
	var out []dice.Node
	for i, node := range nodes {
		replacement, changed := s.rebuildNode(node, targets, renamed)
		if !changed {
			if out != nil {
				out[i] = node
			}
			continue
		}
		if out == nil {
			out = make([]dice.Node, len(nodes))
			copy(out, nodes[:i])
		}
		out[i] = replacement
	}
	if out == nil {
		return nodes, false
	}
	return out, true
}

func (s *Store) rebuildNode(node dice.Node, targets map[string]struct{}, renamed map[string]string) (dice.Node, bool) {
	switch n := node.(type) {
	case dice.Die:
		if targets != nil {
			if _, ok := targets[n.ID]; !ok {
				return n, false
			}
		}
		next := n
		next.ID = s.idGen.Generate()
		renamed[n.ID] = next.ID
		return next, true
	case *dice.Group:
		if n == nil {
			return n, false
		}
		children, changed := s.rebuild(n.Dice, targets, renamed)
		if !changed {
			return n, false
		}
		next := *n
		next.Dice = children
		return &next, true
	}
	return node, false
}

// Clear returns the tray to idle
func (s *Store) Clear() {
	s.mu.Lock()
	hadRoll := s.roll != nil
	s.reset()
	s.mu.Unlock()

	if hadRoll {
		s.publish(pendingEvent{eventType: EventRollCleared, source: s.owner, data: map[string]any{}})
	}
}

// Snapshot returns a consistent copy of the tray state
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{
		Roll:       s.roll,
		Values:     make(map[string]*int, len(s.values)),
		Transforms: make(map[string]*dice.Transform, len(s.transforms)),
		Throws:     make(map[string]dice.Throw, len(s.throwMap)),
	}
	for id, v := range s.values {
		if v != nil {
			value := *v
			v = &value
		}
		snap.Values[id] = v
	}
	for id, t := range s.transforms {
		if t != nil {
			transform := *t
			t = &transform
		}
		snap.Transforms[id] = t
	}
	maps.Copy(snap.Throws, s.throwMap)
	return snap
}

// Phase returns the current lifecycle phase
func (s *Store) Phase() Phase {
	return s.Snapshot().Phase()
}

// Tracks reports whether id belongs to the current roll
func (s *Store) Tracks(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.values[id]
	return ok
}

// dieLocked finds the die with id in the current tree; mu must be held
func (s *Store) dieLocked(id string) dice.Die {
	for _, d := range s.roll.Flatten() {
		if d.ID == id {
			return d
		}
	}
	return dice.Die{ID: id}
}

func cloneRoll(roll *dice.Roll) *dice.Roll {
	out := *roll
	out.Dice = cloneNodes(roll.Dice)
	if roll.Bonus != nil {
		out.Bonus = dice.Int(*roll.Bonus)
	}
	return &out
}

func cloneNodes(nodes []dice.Node) []dice.Node {
	out := make([]dice.Node, 0, len(nodes))
	for _, node := range nodes {
		switch n := node.(type) {
		case dice.Die:
			out = append(out, n)
		case *dice.Group:
			if n == nil {
				continue
			}
			group := *n
			group.Dice = cloneNodes(n.Dice)
			if n.Bonus != nil {
				group.Bonus = dice.Int(*n.Bonus)
			}
			out = append(out, &group)
		}
	}
	return out
}
