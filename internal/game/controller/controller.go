// Package controller holds the movement strategies a spawned bullet can be
// driven by. A controller carries per-bullet state (spiral phase, homing
// target) so every bullet gets its own Clone.
package controller

import "github.com/cory-johannsen/twinstick/internal/game/geom"

// Body is the part of an entity a controller moves.
type Body interface {
	Position() geom.Vec2
	Rotation() float64
	SetRotation(deg float64)
	Velocity() geom.Vec2
	SetVelocity(v geom.Vec2)
	AddForce(f geom.Vec2)
	ApplyPhysics(dt float64)
	MaxSpeed() float64
	LifeTime() float64
	SetLifeTime(seconds float64)
	// Kill removes all remaining hit points.
	Kill()
}

// Controller advances one bullet by one tick.
type Controller interface {
	Update(b Body, dt float64)
	// Clone returns an independent copy including per-bullet state.
	Clone() Controller
	Name() string
}

// Seeker is implemented by controllers that steer toward a target.
type Seeker interface {
	SetTarget(pos geom.Vec2)
	ClearTarget()
}

// UpdateLifetime decays b's life time by dt and kills b once it runs out.
//
// Postcondition: b.LifeTime() <= 0 implies b has been killed.
func UpdateLifetime(b Body, dt float64) {
	b.SetLifeTime(b.LifeTime() - dt)
	if b.LifeTime() <= 0 {
		b.Kill()
	}
}

// fly pushes b along its heading at its max speed.
func fly(b Body, dt float64) {
	v := geom.Heading(b.Rotation()).Scale(b.MaxSpeed())
	b.SetVelocity(v)
	b.AddForce(v)
	b.ApplyPhysics(dt)
}
