package controller

// StraightLine flies the bullet along its spawn heading.
type StraightLine struct{}

// NewStraightLine returns the default bullet controller.
func NewStraightLine() *StraightLine { return &StraightLine{} }

// Update decays life time and moves b forward.
func (s *StraightLine) Update(b Body, dt float64) {
	UpdateLifetime(b, dt)
	fly(b, dt)
}

// Clone returns a new StraightLine.
func (s *StraightLine) Clone() Controller { return &StraightLine{} }

// Name returns "straight_line".
func (s *StraightLine) Name() string { return "straight_line" }
