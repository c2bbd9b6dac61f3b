// Package throws generates the randomized initial kinematic state handed to
// the physics collaborator for each die
package throws

//go:generate mockgen -destination=mock/mock_generator.go -package=throwsmock github.com/KirkDiggler/rpg-dice-tray/internal/engine/throws Generator

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
)

const (
	// MinSpeedMultiplier and MaxSpeedMultiplier bound a charged throw
	MinSpeedMultiplier = 1.0
	MaxSpeedMultiplier = 10.0
)

// bounds is an axis aligned sampling box
type bounds struct {
	min dice.Vector3
	max dice.Vector3
}

var throwBox = bounds{
	min: dice.Vector3{X: -0.3, Y: 1, Z: -0.8},
	max: dice.Vector3{X: 0.3, Y: 1.2, Z: 0.8},
}

const (
	minLaunchSpeed  = 1.0
	maxLaunchSpeed  = 2.0
	minAngularSpeed = 2.0
	maxAngularSpeed = 6.0
)

// Generator produces random throws
type Generator interface {
	// RandomThrow returns a throw whose launch speed is scaled by the
	// clamped speedMultiplier
	RandomThrow(speedMultiplier float64) dice.Throw
}

// Config configures a generator
type Config struct {
	// Source seeds the generator; a time seeded source is used when nil
	Source rand.Source
}

type generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a throw generator
func New(cfg *Config) Generator {
	return newGenerator(cfg)
}

func newGenerator(cfg *Config) *generator {
	var src rand.Source
	if cfg != nil {
		src = cfg.Source
	}
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &generator{rng: rand.New(src)}
}

func (g *generator) RandomThrow(speedMultiplier float64) dice.Throw {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.throwFrom(g.position(throwBox), speedMultiplier)
}

// throwFrom must be called with mu held
func (g *generator) throwFrom(position dice.Vector3, speedMultiplier float64) dice.Throw {
	speed := g.between(minLaunchSpeed, maxLaunchSpeed) * ClampSpeed(speedMultiplier)

	return dice.Throw{
		Position:        position,
		Rotation:        g.rotation(),
		LinearVelocity:  inward(position, speed),
		AngularVelocity: g.angular(),
	}
}

func (g *generator) between(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *generator) position(b bounds) dice.Vector3 {
	return dice.Vector3{
		X: g.between(b.min.X, b.max.X),
		Y: g.between(b.min.Y, b.max.Y),
		Z: g.between(b.min.Z, b.max.Z),
	}
}

// rotation samples a uniform unit quaternion with Marsaglia's method
func (g *generator) rotation() dice.Quaternion {
	var x, y, z float64
	for {
		x = g.between(-1, 1)
		y = g.between(-1, 1)
		z = x*x + y*y
		if z <= 1 {
			break
		}
	}

	var u, v, w float64
	for {
		u = g.between(-1, 1)
		v = g.between(-1, 1)
		w = u*u + v*v
		if w <= 1 && w > 0 {
			break
		}
	}

	s := math.Sqrt((1 - z) / w)
	return dice.Quaternion{X: x, Y: y, Z: s * u, W: s * v}
}

func (g *generator) angular() dice.Vector3 {
	return dice.Vector3{
		X: g.between(minAngularSpeed, maxAngularSpeed),
		Y: g.between(minAngularSpeed, maxAngularSpeed),
		Z: g.between(minAngularSpeed, maxAngularSpeed),
	}
}

// inward points from position toward the tray centre on the horizontal plane
func inward(position dice.Vector3, speed float64) dice.Vector3 {
	horizontal := dice.Vector3{X: position.X, Z: position.Z}
	length := horizontal.Length()
	if length == 0 {
		return dice.Vector3{}
	}
	scale := -speed / length
	return dice.Vector3{X: horizontal.X * scale, Z: horizontal.Z * scale}
}

// ClampSpeed bounds a speed multiplier to [MinSpeedMultiplier, MaxSpeedMultiplier]
func ClampSpeed(multiplier float64) float64 {
	if math.IsNaN(multiplier) || multiplier < MinSpeedMultiplier {
		return MinSpeedMultiplier
	}
	if multiplier > MaxSpeedMultiplier {
		return MaxSpeedMultiplier
	}
	return multiplier
}
