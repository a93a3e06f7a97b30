// Package sim runs a single-threaded fixed-timestep arena: characters driven
// by brains fire weapons, bullets move under their controllers, hit hostile
// characters and expire, and pickups hand buffs to whoever walks over them.
package sim

import (
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/twinstick/internal/game/combat"
	"github.com/cory-johannsen/twinstick/internal/game/controller"
	"github.com/cory-johannsen/twinstick/internal/game/dice"
	"github.com/cory-johannsen/twinstick/internal/game/geom"
	"github.com/cory-johannsen/twinstick/internal/game/loot"
)

// DefaultBulletCap is the live bullet limit when none is configured.
const DefaultBulletCap = 512

// summaryInterval is the simulated time between Info summaries, in seconds.
const summaryInterval = 1.0

// Stats is a snapshot of arena counters.
type Stats struct {
	Ticks   int
	Elapsed float64

	// TriggerPulls counts fire intents the weapon accepted, jammed or not.
	TriggerPulls int
	ShotsFired   int
	// ShotsDropped counts bullets discarded because the cap was reached.
	ShotsDropped int
	LiveBullets  int
	Jams         int
	Hits         int
	Kills        int
	Pickups      int
}

type combatant struct {
	character *combat.Character
	brain     Brain
}

type liveShot struct {
	combat.Shot
	hit map[uuid.UUID]struct{}
}

// Option configures an Arena.
type Option func(*Arena)

// WithLogger sets the arena logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Arena) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithBulletCap limits the number of live bullets. n <= 0 keeps the default.
func WithBulletCap(n int) Option {
	return func(a *Arena) {
		if n > 0 {
			a.bulletCap = n
		}
	}
}

// Arena owns every character, live shot and pickup of one skirmish.
//
// Arena is not safe for concurrent use.
type Arena struct {
	rng       dice.Source
	logger    *zap.Logger
	bulletCap int

	combatants []*combatant
	shots      []*liveShot
	pickups    []*loot.Pickup

	stats        Stats
	sinceSummary float64
}

// NewArena returns an empty arena rolling jams with rng.
//
// Precondition: rng must be non-nil.
func NewArena(rng dice.Source, opts ...Option) *Arena {
	if rng == nil {
		panic("sim.NewArena: rng must not be nil")
	}
	a := &Arena{
		rng:       rng,
		logger:    zap.NewNop(),
		bulletCap: DefaultBulletCap,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Spawn adds c to the arena under brain. A nil brain idles.
//
// Precondition: c must be non-nil.
func (a *Arena) Spawn(c *combat.Character, brain Brain) {
	if brain == nil {
		brain = Idle{}
	}
	a.combatants = append(a.combatants, &combatant{character: c, brain: brain})
	a.logger.Debug("character spawned",
		zap.String("name", c.Name()),
		zap.Stringer("id", c.ID()),
		zap.Bool("friendly", c.Friendly()),
	)
}

// AddPickup drops p into the arena.
func (a *Arena) AddPickup(p *loot.Pickup) {
	a.pickups = append(a.pickups, p)
}

// Characters returns every spawned character, dead or alive, in spawn order.
func (a *Arena) Characters() []*combat.Character {
	out := make([]*combat.Character, len(a.combatants))
	for i, cb := range a.combatants {
		out[i] = cb.character
	}
	return out
}

// Shots returns the live shots.
func (a *Arena) Shots() []combat.Shot {
	out := make([]combat.Shot, len(a.shots))
	for i, s := range a.shots {
		out[i] = s.Shot
	}
	return out
}

// Pickups returns the pickups not yet collected.
func (a *Arena) Pickups() []*loot.Pickup {
	var out []*loot.Pickup
	for _, p := range a.pickups {
		if !p.Collected() {
			out = append(out, p)
		}
	}
	return out
}

// Stats returns a snapshot of the arena counters.
func (a *Arena) Stats() Stats {
	s := a.stats
	s.LiveBullets = len(a.shots)
	return s
}

// Tick advances the arena by dt seconds: brains think and act, weapons
// advance, pickups are collected, bullets move and collide, and spent
// bullets are removed.
//
// Precondition: dt >= 0.
func (a *Arena) Tick(dt float64) {
	for _, cb := range a.combatants {
		if cb.character.Alive() {
			a.act(cb, dt)
		}
	}
	for _, cb := range a.combatants {
		cb.character.Update(dt)
	}
	a.collectPickups(dt)
	a.moveShots(dt)
	a.reap()

	a.stats.Ticks++
	a.stats.Elapsed += dt
	a.sinceSummary += dt
	if a.sinceSummary >= summaryInterval {
		a.sinceSummary = 0
		s := a.Stats()
		a.logger.Info("arena summary",
			zap.Int("ticks", s.Ticks),
			zap.Int("shots_fired", s.ShotsFired),
			zap.Int("live_bullets", s.LiveBullets),
			zap.Int("jams", s.Jams),
			zap.Int("hits", s.Hits),
			zap.Int("kills", s.Kills),
		)
	}
}

func (a *Arena) act(cb *combatant, dt float64) {
	c := cb.character
	in := cb.brain.Think(View{Self: c, Target: a.nearestHostile(c.Position(), c.Friendly()), DT: dt})

	if in.Turn != 0 {
		c.SetRotation(geom.WrapAngle(c.Rotation() + in.Turn))
	}
	if in.Move != (geom.Vec2{}) {
		c.AddForce(in.Move.Normalise().Scale(c.MaxSpeed()))
	}
	c.ApplyPhysics(dt)

	if in.Reload {
		c.Reload()
	}
	if in.Fire {
		w := c.Weapon()
		if w.CanFire() {
			a.stats.TriggerPulls++
		}
		wasJammed := w.Jammed()
		shots := c.Fire(a.rng, dt)
		if !wasJammed && w.Jammed() {
			a.stats.Jams++
			a.logger.Debug("weapon jammed", zap.String("name", c.Name()))
		}
		a.addShots(shots)
	}
}

func (a *Arena) addShots(shots []combat.Shot) {
	for _, s := range shots {
		if len(a.shots) >= a.bulletCap {
			a.stats.ShotsDropped++
			continue
		}
		a.shots = append(a.shots, &liveShot{Shot: s, hit: make(map[uuid.UUID]struct{})})
		a.stats.ShotsFired++
	}
}

func (a *Arena) collectPickups(dt float64) {
	for _, p := range a.pickups {
		if p.Collected() {
			continue
		}
		for _, cb := range a.combatants {
			c := cb.character
			if !c.Alive() || !p.Touches(c.Position(), c.Size()) {
				continue
			}
			if p.Collect(c, dt, a.logger) {
				a.stats.Pickups++
			}
			break
		}
	}
}

func (a *Arena) moveShots(dt float64) {
	for _, s := range a.shots {
		b := s.Bullet
		if seeker, ok := s.Controller.(controller.Seeker); ok {
			if target := a.nearestHostile(b.Position(), b.Friendly()); target != nil {
				seeker.SetTarget(target.Position())
			} else {
				seeker.ClearTarget()
			}
		}
		s.Controller.Update(b, dt)
		if b.Alive() {
			a.collide(s)
		}
	}
}

func (a *Arena) collide(s *liveShot) {
	b := s.Bullet
	for _, cb := range a.combatants {
		c := cb.character
		if !c.Alive() || c.Friendly() == b.Friendly() {
			continue
		}
		if _, done := s.hit[c.ID()]; done {
			continue
		}
		if !geom.Overlaps(b.Position(), b.Size(), c.Position(), c.Size()) {
			continue
		}
		s.hit[c.ID()] = struct{}{}
		dmg := b.Hit(c)
		a.stats.Hits++
		a.logger.Debug("bullet hit",
			zap.String("target", c.Name()),
			zap.Stringer("species", b.Species()),
			zap.Int("damage", dmg),
		)
		if !c.Alive() {
			a.stats.Kills++
			a.logger.Info("character killed", zap.String("name", c.Name()))
		}
		if !b.Alive() {
			return
		}
	}
}

func (a *Arena) reap() {
	live := a.shots[:0]
	expired := 0
	for _, s := range a.shots {
		if s.Bullet.Alive() {
			live = append(live, s)
		} else {
			expired++
		}
	}
	for i := len(live); i < len(a.shots); i++ {
		a.shots[i] = nil
	}
	a.shots = live
	if expired > 0 {
		a.logger.Debug("bullets expired", zap.Int("count", expired), zap.Int("live", len(live)))
	}
}

func (a *Arena) nearestHostile(from geom.Vec2, friendly bool) *combat.Character {
	var best *combat.Character
	bestDist := math.Inf(1)
	for _, cb := range a.combatants {
		c := cb.character
		if !c.Alive() || c.Friendly() == friendly {
			continue
		}
		if d := c.Position().Sub(from).Magnitude(); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
