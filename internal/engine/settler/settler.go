// Package settler stands in for the physics collaborator. It damps each
// die's throw until the die comes to rest, reads a face with an rpg-toolkit
// roller and reports the result through the finish callback.
package settler

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
	"github.com/KirkDiggler/rpg-dice-tray/internal/errors"
)

const (
	// MinRollFinishedSpeed is the combined linear and angular speed below
	// which a die counts as resting
	MinRollFinishedSpeed = 0.005
	// MaxSettledHeight bounds the resting height inside the tray
	MaxSettledHeight = 1.5
	// DefaultMaxRollTime forces settlement of a die that never comes to rest
	DefaultMaxRollTime = 5 * time.Second
	// DefaultTick is the simulation step
	DefaultTick = 50 * time.Millisecond

	restHeight  = 0.05
	fallPerTick = 0.1
)

// FinishFunc receives a settled die. It reports whether the die was still
// part of the roll.
type FinishFunc func(id string, value int, transform dice.Transform) bool

// Settled reports whether a die moving with the given velocities at height y
// has come to rest
func Settled(linear, angular dice.Vector3, y float64) bool {
	return linear.Length()+angular.Length() < MinRollFinishedSpeed && y < MaxSettledHeight
}

// Config holds the dependencies for a settler
type Config struct {
	Roller rpgdice.Roller
	// Source drives damping; a time seeded source is used when nil
	Source      rand.Source
	MaxRollTime time.Duration
	Tick        time.Duration
	// Damping fixes the per tick velocity retention in (0,1]; zero picks a
	// random value in [0.5,0.8] per die
	Damping float64
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.MaxRollTime < 0 {
		vb.Field("MaxRollTime", "must not be negative")
	}
	if c.Tick < 0 {
		vb.Field("Tick", "must not be negative")
	}
	if c.Damping < 0 || c.Damping > 1 {
		vb.Field("Damping", "must be within [0,1]")
	}

	return vb.Build()
}

// Settler resolves pending dice
type Settler struct {
	roller      rpgdice.Roller
	maxRollTime time.Duration
	tick        time.Duration
	damping     float64

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a settler
func New(cfg *Config) (*Settler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	src := cfg.Source
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	s := &Settler{
		roller:      cfg.Roller,
		maxRollTime: cfg.MaxRollTime,
		tick:        cfg.Tick,
		damping:     cfg.Damping,
		rng:         rand.New(src),
	}
	if s.maxRollTime == 0 {
		s.maxRollTime = DefaultMaxRollTime
	}
	if s.tick == 0 {
		s.tick = DefaultTick
	}
	return s, nil
}

// Settle simulates every die concurrently and calls finish once per die as
// it comes to rest. Dice without a throw are skipped. It blocks until every
// die has settled or ctx is done.
func (s *Settler) Settle(ctx context.Context, pending []dice.Die, throws map[string]dice.Throw, finish FinishFunc) error {
	if finish == nil {
		return errors.InvalidArgument("finish callback is required")
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(pending))
	for _, d := range pending {
		throw, ok := throws[d.ID]
		if !ok {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.settle(ctx, d, throw, finish); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	return <-errs
}

func (s *Settler) settle(ctx context.Context, d dice.Die, throw dice.Throw, finish FinishFunc) error {
	damping := s.dieDamping()
	linear, angular, y := throw.LinearVelocity, throw.AngularVelocity, throw.Position.Y

	watchdog := time.NewTimer(s.maxRollTime)
	defer watchdog.Stop()
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	forced := false
	for !Settled(linear, angular, y) && !forced {
		select {
		case <-ctx.Done():
			return errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "settlement interrupted")
		case <-watchdog.C:
			forced = true
		case <-ticker.C:
			linear = scale(linear, damping)
			angular = scale(angular, damping)
			y = max(restHeight, y-fallPerTick)
		}
	}

	value, err := s.face(d.Type)
	if err != nil {
		return errors.Wrapf(err, "failed to read face of die %s", d.ID)
	}

	transform := dice.Transform{
		Position: dice.Vector3{X: throw.Position.X, Y: restHeight, Z: throw.Position.Z},
		Rotation: throw.Rotation,
	}
	if !finish(d.ID, value, transform) {
		slog.Debug("Settled die no longer in roll", "die_id", d.ID)
		return nil
	}

	slog.Debug("Die settled",
		"die_id", d.ID,
		"type", d.Type,
		"value", value,
		"forced", forced,
	)
	return nil
}

// face reads a raw face from the die's printed face table
func (s *Settler) face(t dice.Type) (int, error) {
	faces := t.Faces()
	roll, err := s.roller.Roll(len(faces))
	if err != nil {
		return 0, err
	}
	if roll < 1 || roll > len(faces) {
		return 0, errors.Internalf("roller returned %d for a %d sided die", roll, len(faces))
	}
	return faces[roll-1], nil
}

func (s *Settler) dieDamping() float64 {
	if s.damping > 0 {
		return s.damping
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return 0.5 + s.rng.Float64()*0.3
}

func scale(v dice.Vector3, factor float64) dice.Vector3 {
	return dice.Vector3{X: v.X * factor, Y: v.Y * factor, Z: v.Z * factor}
}
