package controller

import (
	"math"

	"github.com/cory-johannsen/twinstick/internal/game/geom"
)

// DefaultHomingTurnRate is the maximum homing turn rate in degrees per second.
const DefaultHomingTurnRate = 180.0

// Homing steers toward the last target it was given, turning at most
// TurnRate degrees per second. Without a target it flies straight.
type Homing struct {
	TurnRate  float64
	target    geom.Vec2
	hasTarget bool
}

// NewHoming returns a Homing controller with DefaultHomingTurnRate.
func NewHoming() *Homing { return &Homing{TurnRate: DefaultHomingTurnRate} }

// SetTarget sets the position to steer toward.
func (h *Homing) SetTarget(pos geom.Vec2) {
	h.target = pos
	h.hasTarget = true
}

// ClearTarget stops steering.
func (h *Homing) ClearTarget() { h.hasTarget = false }

// Target returns the current target and whether one is set.
func (h *Homing) Target() (geom.Vec2, bool) { return h.target, h.hasTarget }

// Update decays life time, turns b toward the target and moves it forward.
func (h *Homing) Update(b Body, dt float64) {
	UpdateLifetime(b, dt)
	if h.hasTarget {
		want := geom.RotationTowards(b.Position(), h.target)
		diff := geom.WrapAngle(want - b.Rotation())
		limit := h.TurnRate * dt
		b.SetRotation(b.Rotation() + math.Max(-limit, math.Min(diff, limit)))
	}
	fly(b, dt)
}

// Clone copies the turn rate and target.
func (h *Homing) Clone() Controller {
	c := *h
	return &c
}

// Name returns "homing".
func (h *Homing) Name() string { return "homing" }
