// Package combat implements the weapon firing pipeline: buffs, the chain bank
// they are slotted into, the weapon state machine that gates firing, and the
// characters and bullets those weapons act on.
package combat

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/twinstick/internal/game/controller"
	"github.com/cory-johannsen/twinstick/internal/game/geom"
	"github.com/cory-johannsen/twinstick/internal/game/stats"
)

// Alignment is the side an entity fights for.
type Alignment int

const (
	AlignmentFriendly Alignment = iota
	AlignmentHostile
)

// IsFriendly reports whether a is AlignmentFriendly.
func (a Alignment) IsFriendly() bool { return a == AlignmentFriendly }

// Style classifies an entity for collision and targeting.
type Style int

const (
	StyleNone Style = iota
	StylePlayer
	StyleFriendlyCharacter
	StyleEnemyCharacter
	StyleFriendlyBullet
	StyleEnemyBullet
)

// Alignment returns the side s fights for. StyleNone has no alignment.
func (s Style) Alignment() (Alignment, bool) {
	switch s {
	case StylePlayer, StyleFriendlyCharacter, StyleFriendlyBullet:
		return AlignmentFriendly, true
	case StyleEnemyCharacter, StyleEnemyBullet:
		return AlignmentHostile, true
	}
	return 0, false
}

// IsBullet reports whether s is a bullet style.
func (s Style) IsBullet() bool { return s == StyleFriendlyBullet || s == StyleEnemyBullet }

// IsCharacter reports whether s is a character style, including the player.
func (s Style) IsCharacter() bool {
	return s == StylePlayer || s == StyleFriendlyCharacter || s == StyleEnemyCharacter
}

// Entity is anything a Buff can be applied to.
type Entity interface {
	controller.Body
	ID() uuid.UUID
	SetPosition(p geom.Vec2)
	Size() geom.Vec2
	SetSize(s geom.Vec2)
	Style() Style
	TakeDamage(amount int) int
	Stats() *stats.Model
	// Weapon returns the entity's weapon, or nil when it has none.
	Weapon() *Weapon
	// AddStatBuff attaches b to the entity's stat buffs and recalculates.
	AddStatBuff(b Buff)
}

// CoinHolder is implemented by entities that keep a coin purse.
type CoinHolder interface {
	AddCoins(n int)
}

// Actor is the shared Entity implementation embedded by characters and bullets.
type Actor struct {
	id       uuid.UUID
	position geom.Vec2
	rotation float64
	velocity geom.Vec2
	forces   geom.Vec2
	style    Style
	model    *stats.Model
	buffs    []Buff
	weapon   *Weapon
}

// NewActor returns an Actor with a fresh ID and a stat model built from base.
//
// Precondition: base.HitPoints >= 1.
func NewActor(pos geom.Vec2, base stats.Stats, style Style, weapon *Weapon) *Actor {
	return &Actor{
		id:       uuid.New(),
		position: pos,
		style:    style,
		model:    stats.NewModel(base),
		weapon:   weapon,
	}
}

// ID returns the actor's unique identifier.
func (a *Actor) ID() uuid.UUID { return a.id }

// Kinematic state. Rotation is in degrees; 0 faces +Y.
func (a *Actor) Position() geom.Vec2     { return a.position }
func (a *Actor) SetPosition(p geom.Vec2) { a.position = p }
func (a *Actor) Rotation() float64       { return a.rotation }
func (a *Actor) SetRotation(deg float64) { a.rotation = deg }
func (a *Actor) Velocity() geom.Vec2     { return a.velocity }
func (a *Actor) SetVelocity(v geom.Vec2) { a.velocity = v }

// Style returns the actor's visual style.
func (a *Actor) Style() Style { return a.style }

// Stats returns the actor's stat model.
func (a *Actor) Stats() *stats.Model { return a.model }

// Weapon returns the held weapon, or nil for actors that carry none.
func (a *Actor) Weapon() *Weapon { return a.weapon }

// AddForce accumulates f until the next ApplyPhysics.
func (a *Actor) AddForce(f geom.Vec2) { a.forces = a.forces.Add(f) }

// MaxSpeed returns the current speed stat.
func (a *Actor) MaxSpeed() float64 { return a.model.Current().Speed }

// LifeTime returns the remaining life time in seconds.
func (a *Actor) LifeTime() float64 { return a.model.Current().LifeTime }

// SetLifeTime sets the remaining life time, floored at zero.
func (a *Actor) SetLifeTime(seconds float64) { a.model.SetLifeTime(seconds) }

// Alive reports whether current hit points are above zero.
func (a *Actor) Alive() bool { return a.model.Alive() }

// Size returns the hitbox size, which always equals the current size stat.
func (a *Actor) Size() geom.Vec2 { return a.model.Current().Size }

// SetSize permanently changes the base size.
func (a *Actor) SetSize(s geom.Vec2) { a.model.SetBaseSize(s) }

// Kill removes all remaining hit points.
func (a *Actor) Kill() { a.model.SetHitPoints(0) }

// TakeDamage removes up to amount hit points and returns how many were removed.
func (a *Actor) TakeDamage(amount int) int { return a.model.TakeDamage(amount) }

// Friendly reports whether the actor fights for the friendly side.
func (a *Actor) Friendly() bool {
	al, ok := a.style.Alignment()
	return ok && al.IsFriendly()
}

// StatBuffs returns a copy of the attached stat buffs.
func (a *Actor) StatBuffs() []Buff {
	out := make([]Buff, len(a.buffs))
	copy(out, a.buffs)
	return out
}

// AddStatBuff attaches b and rebuilds the stat modifier from every attached buff.
//
// Postcondition: Stats().Modifier() == stats.Fold(StatBuffs()).
func (a *Actor) AddStatBuff(b Buff) {
	a.buffs = append(a.buffs, b)
	a.model.Recalculate(stats.Fold(a.buffs))
}

// ClearStatBuffs drops every attached stat buff and recalculates.
func (a *Actor) ClearStatBuffs() {
	a.buffs = nil
	a.model.Recalculate(stats.Modifier{})
}

// ApplyPhysics integrates the accumulated forces over dt and clears them.
// The velocity relaxes toward the applied force.
func (a *Actor) ApplyPhysics(dt float64) {
	accel := a.forces.Sub(a.velocity)
	a.velocity = a.velocity.Add(accel.Scale(dt))
	a.position = a.position.Add(a.velocity.Scale(dt))
	a.forces = geom.Vec2{}
}
