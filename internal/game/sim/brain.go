package sim

import (
	"github.com/cory-johannsen/twinstick/internal/game/combat"
	"github.com/cory-johannsen/twinstick/internal/game/geom"
)

// View is what a Brain sees of the arena on one tick.
type View struct {
	Self *combat.Character
	// Target is the nearest living hostile character, or nil.
	Target *combat.Character
	DT     float64
}

// Intent is what a Brain wants its character to do this tick.
type Intent struct {
	Fire   bool
	Reload bool
	// Turn is added to the character's rotation, in degrees.
	Turn float64
	// Move is the desired direction of travel; the zero vector stands still.
	Move geom.Vec2
}

// Brain decides a character's Intent each tick.
type Brain interface {
	Think(v View) Intent
}

// BrainFunc adapts a function to the Brain interface.
type BrainFunc func(v View) Intent

// Think calls f.
func (f BrainFunc) Think(v View) Intent { return f(v) }

// Idle never does anything.
type Idle struct{}

// Think returns the zero Intent.
func (Idle) Think(View) Intent { return Intent{} }

// AlwaysFire holds the trigger down. It reloads on an empty clip and clears
// jams as soon as they happen. With Aim set it turns to face its target
// every tick.
type AlwaysFire struct {
	Aim bool
}

// Think implements Brain.
func (b AlwaysFire) Think(v View) Intent {
	var in Intent
	if b.Aim && v.Target != nil {
		in.Turn = aimTurn(v.Self, v.Target.Position())
	}
	w := v.Self.Weapon()
	switch {
	case w.State() == combat.StateJammed:
		in.Reload = true
	case w.CurrentAmmo() == 0:
		in.Reload = true
	default:
		in.Fire = true
	}
	return in
}

func aimTurn(self *combat.Character, at geom.Vec2) float64 {
	return geom.WrapAngle(geom.RotationTowards(self.Position(), at) - self.Rotation())
}
