package combat

import "fmt"

// Magazine tracks the rounds loaded in a weapon and the reserve behind them.
//
// Invariant: 0 <= Loaded <= ClipSize; 0 <= Reserve <= MaxReserve.
type Magazine struct {
	loaded     int
	clipSize   int
	reserve    int
	maxReserve int
}

// NewMagazine returns a full clip backed by a full reserve.
//
// Precondition:  clipSize > 0 and maxReserve >= 0 (panics otherwise).
// Postcondition: Loaded() == ClipSize() and Reserve() == MaxReserve().
func NewMagazine(clipSize, maxReserve int) *Magazine {
	if clipSize <= 0 {
		panic(fmt.Sprintf("combat: NewMagazine: clipSize must be > 0, got %d", clipSize))
	}
	if maxReserve < 0 {
		panic(fmt.Sprintf("combat: NewMagazine: maxReserve must be >= 0, got %d", maxReserve))
	}
	return &Magazine{
		loaded:     clipSize,
		clipSize:   clipSize,
		reserve:    maxReserve,
		maxReserve: maxReserve,
	}
}

// Loaded returns the rounds currently in the clip.
//
// Postcondition: 0 <= Loaded() <= ClipSize().
func (m *Magazine) Loaded() int { return m.loaded }

// ClipSize returns the clip capacity.
func (m *Magazine) ClipSize() int { return m.clipSize }

// Reserve returns the rounds held outside the clip.
//
// Postcondition: 0 <= Reserve() <= MaxReserve().
func (m *Magazine) Reserve() int { return m.reserve }

// MaxReserve returns the reserve capacity.
func (m *Magazine) MaxReserve() int { return m.maxReserve }

// IsEmpty returns true when no round is loaded.
func (m *Magazine) IsEmpty() bool { return m.loaded <= 0 }

// Full returns true when the clip holds ClipSize rounds.
func (m *Magazine) Full() bool { return m.loaded >= m.clipSize }

// Consume removes one loaded round and reports whether one was available.
func (m *Magazine) Consume() bool {
	if m.loaded <= 0 {
		return false
	}
	m.loaded--
	return true
}

// TopUp moves rounds from the reserve into the clip until the clip is full or
// the reserve is empty. It returns the number of rounds moved.
//
// Postcondition: Loaded() + Reserve() is unchanged.
func (m *Magazine) TopUp() int {
	n := min(m.reserve, m.clipSize-m.loaded)
	if n <= 0 {
		return 0
	}
	m.loaded += n
	m.reserve -= n
	return n
}

// SetClipSize changes the clip capacity. Rounds that no longer fit return to
// the reserve as far as it has room.
//
// Postcondition: ClipSize() >= 1; the Magazine invariant holds.
func (m *Magazine) SetClipSize(n int) {
	m.clipSize = max(n, 1)
	if m.loaded > m.clipSize {
		excess := m.loaded - m.clipSize
		m.loaded = m.clipSize
		m.reserve = min(m.reserve+excess, m.maxReserve)
	}
}

// SetMaxReserve changes the reserve capacity, discarding rounds that no
// longer fit.
func (m *Magazine) SetMaxReserve(n int) {
	m.maxReserve = max(n, 0)
	m.reserve = min(m.reserve, m.maxReserve)
}

// SetReserve sets the reserve, clamped to [0, MaxReserve()].
func (m *Magazine) SetReserve(n int) {
	m.reserve = max(0, min(n, m.maxReserve))
}

// Refill fills the reserve to MaxReserve.
func (m *Magazine) Refill() { m.reserve = m.maxReserve }
