package stats

import "github.com/cory-johannsen/twinstick/internal/game/geom"

// Model tracks base, buffed and current stats for one entity.
//
// Invariant: current.HitPoints <= buffed.HitPoints; buffed.HitPoints >= 1;
// buffed.Damage >= 1; current.HitPoints >= 0.
//
// Model is not safe for concurrent use; the owning entity serialises access.
type Model struct {
	base     Stats
	buffed   Stats
	current  Stats
	modifier Modifier
}

// NewModel returns a Model whose buffed and current stats are base recombined
// with an empty Modifier.
//
// Postcondition: Current() == Buffed().
func NewModel(base Stats) *Model {
	m := &Model{base: base}
	m.buffed = Buffed(base, Modifier{})
	m.current = m.buffed
	return m
}

// Base returns the designer-authored stats.
func (m *Model) Base() Stats { return m.base }

// Buffed returns base combined with the current Modifier.
func (m *Model) Buffed() Stats { return m.buffed }

// Current returns the live stats.
func (m *Model) Current() Stats { return m.current }

// Modifier returns the Modifier the buffed stats were last computed from.
func (m *Model) Modifier() Modifier { return m.modifier }

// Recalculate replaces the Modifier and recomputes buffed stats.
// Hit points, shield points and life time keep their mid-fight state: current
// shifts by the delta between old and new buffed value instead of resetting.
// Every other current field is overwritten with its buffed value.
//
// Postcondition: the Model invariant holds. A buff change never takes a
// living entity to zero hit points.
func (m *Model) Recalculate(mod Modifier) {
	old := m.buffed
	m.modifier = mod
	m.buffed = Buffed(m.base, mod)

	cur := m.current
	alive := cur.HitPoints > 0
	hp := cur.HitPoints + (m.buffed.HitPoints - old.HitPoints)
	if alive && hp < 1 {
		hp = 1
	}
	cur.HitPoints = clampInt(hp, 0, m.buffed.HitPoints)
	cur.ShieldPoints = clampInt(cur.ShieldPoints+(m.buffed.ShieldPoints-old.ShieldPoints), 0, m.buffed.ShieldPoints)
	cur.LifeTime = clampFloat(cur.LifeTime+(m.buffed.LifeTime-old.LifeTime), 0, m.buffed.LifeTime)

	cur.Armour = m.buffed.Armour
	cur.Size = m.buffed.Size
	cur.Speed = m.buffed.Speed
	cur.Damage = m.buffed.Damage
	cur.FireResistance = m.buffed.FireResistance
	cur.IceResistance = m.buffed.IceResistance
	cur.ElectricResistance = m.buffed.ElectricResistance
	m.current = cur
}

// Reset discards any damage and decay: current becomes buffed.
func (m *Model) Reset() {
	m.current = m.buffed
}

// SetBaseHitPoints permanently changes base hit points and recalculates.
func (m *Model) SetBaseHitPoints(v int) {
	m.base.HitPoints = v
	m.Recalculate(m.modifier)
}

// SetBaseSpeed permanently changes base speed and recalculates.
func (m *Model) SetBaseSpeed(v float64) {
	m.base.Speed = v
	m.Recalculate(m.modifier)
}

// SetBaseDamage permanently changes base damage and recalculates.
func (m *Model) SetBaseDamage(v int) {
	m.base.Damage = v
	m.Recalculate(m.modifier)
}

// SetBaseLifeTime permanently changes base life time and recalculates.
func (m *Model) SetBaseLifeTime(v float64) {
	m.base.LifeTime = v
	m.Recalculate(m.modifier)
}

// SetBaseSize permanently changes base size and recalculates.
func (m *Model) SetBaseSize(v geom.Vec2) {
	m.base.Size = v
	m.Recalculate(m.modifier)
}

// SetBaseResistance permanently changes one base resistance and recalculates.
func (m *Model) SetBaseResistance(e Element, v float64) {
	switch e {
	case ElementFire:
		m.base.FireResistance = v
	case ElementIce:
		m.base.IceResistance = v
	case ElementElectric:
		m.base.ElectricResistance = v
	}
	m.Recalculate(m.modifier)
}

// TakeDamage removes min(amount, current hit points) and returns the amount
// actually removed. Negative amounts are ignored.
//
// Postcondition: Current().HitPoints >= 0.
func (m *Model) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	applied := min(amount, m.current.HitPoints)
	m.current.HitPoints -= applied
	return applied
}

// SetHitPoints sets current hit points, clamped to [0, buffed].
func (m *Model) SetHitPoints(v int) {
	m.current.HitPoints = clampInt(v, 0, m.buffed.HitPoints)
}

// SetLifeTime sets the remaining life time, floored at zero.
func (m *Model) SetLifeTime(v float64) {
	m.current.LifeTime = max(v, 0)
}

// Alive reports whether current hit points are above zero.
func (m *Model) Alive() bool { return m.current.HitPoints > 0 }

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func clampFloat(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
