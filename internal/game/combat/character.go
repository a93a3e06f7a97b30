package combat

import (
	"github.com/cory-johannsen/twinstick/internal/game/dice"
	"github.com/cory-johannsen/twinstick/internal/game/geom"
	"github.com/cory-johannsen/twinstick/internal/game/stats"
)

// CharacterSize is the footprint of a freshly created character.
var CharacterSize = geom.V(48, 48)

// Character is a player or enemy that carries a weapon and a coin purse.
type Character struct {
	*Actor
	name  string
	coins int
}

// NewCharacter returns a character at pos armed with weapon.
//
// Precondition: weapon must be non-nil; base.HitPoints >= 1.
func NewCharacter(name string, pos geom.Vec2, base stats.Stats, style Style, weapon *Weapon) *Character {
	if weapon == nil {
		panic("combat: NewCharacter: weapon must not be nil")
	}
	return &Character{Actor: NewActor(pos, base, style, weapon), name: name}
}

// Name returns the character's display name.
func (c *Character) Name() string { return c.name }

// Coins returns the number of coins collected.
func (c *Character) Coins() int { return c.coins }

// AddCoins adds n coins to the purse. Negative n is ignored.
func (c *Character) AddCoins(n int) {
	if n > 0 {
		c.coins += n
	}
}

// BulletSpawn returns the point on the character's front edge where bullets
// appear.
func (c *Character) BulletSpawn() geom.Vec2 {
	return c.Position().Add(geom.Heading(c.Rotation()).Mul(c.Size().Scale(0.5)))
}

// Fire pulls the trigger once. It returns nothing when the weapon refuses.
func (c *Character) Fire(rng dice.Source, dt float64) []Shot {
	return c.Weapon().Fire(rng, c.BulletSpawn(), c.Rotation(), c.Friendly(), dt)
}

// Reload asks the weapon to reload, or to unjam when it is jammed.
func (c *Character) Reload() { c.Weapon().Reload() }

// Update advances the weapon's timers by dt.
func (c *Character) Update(dt float64) { c.Weapon().Update(dt) }

// Respawn restores full health at pos, drops every stat buff and resets the
// weapon's loadouts.
func (c *Character) Respawn(pos geom.Vec2) {
	c.SetPosition(pos)
	c.SetVelocity(geom.Vec2{})
	c.ClearStatBuffs()
	c.Stats().Reset()
	c.Weapon().ResetLoadout()
}
