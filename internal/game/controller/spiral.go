package controller

// DefaultSpiralRate is the spiral turn rate in degrees per second.
const DefaultSpiralRate = 90.0

// Spiral turns the bullet at a constant rate while it flies, tracing a curve.
type Spiral struct {
	// Rate is the turn rate in degrees per second.
	Rate  float64
	phase float64
}

// NewSpiral returns a Spiral turning at DefaultSpiralRate.
func NewSpiral() *Spiral { return &Spiral{Rate: DefaultSpiralRate} }

// Phase returns the total angle turned so far, in degrees.
func (s *Spiral) Phase() float64 { return s.phase }

// Update decays life time, turns b by Rate*dt and moves it forward.
func (s *Spiral) Update(b Body, dt float64) {
	UpdateLifetime(b, dt)
	turn := s.Rate * dt
	s.phase += turn
	b.SetRotation(b.Rotation() + turn)
	fly(b, dt)
}

// Clone copies the rate and the current phase.
func (s *Spiral) Clone() Controller {
	c := *s
	return &c
}

// Name returns "spiral".
func (s *Spiral) Name() string { return "spiral" }
