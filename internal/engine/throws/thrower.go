package throws

import (
	"sync"

	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
)

const (
	minThrowSpacing = 0.25
	maxPlacementTry = 50
)

// Thrower issues throws for a staggered multi-die preview, keeping each new
// die away from the ones already placed
type Thrower struct {
	mu      sync.Mutex
	gen     *generator
	history []dice.Throw
}

// NewThrower creates a thrower with an empty history
func NewThrower(cfg *Config) *Thrower {
	return &Thrower{gen: newGenerator(cfg)}
}

// Throw returns the throw for the die at index. Indexes already issued
// return the cached throw.
func (t *Thrower) Throw(index int, speedMultiplier float64) dice.Throw {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index >= 0 && index < len(t.history) {
		return t.history[index]
	}

	t.gen.mu.Lock()
	position := t.gen.position(throwBox)
	for attempt := 1; attempt < maxPlacementTry && t.crowded(position); attempt++ {
		position = t.gen.position(throwBox)
	}
	throw := t.gen.throwFrom(position, speedMultiplier)
	t.gen.mu.Unlock()

	t.history = append(t.history, throw)
	return throw
}

// ClearHistory forgets every issued throw
func (t *Thrower) ClearHistory() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.history = nil
}

func (t *Thrower) crowded(position dice.Vector3) bool {
	for _, prior := range t.history {
		if position.Sub(prior.Position).Length() < minThrowSpacing {
			return true
		}
	}
	return false
}
