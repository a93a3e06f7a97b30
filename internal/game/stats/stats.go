// Package stats holds the base/buffed/current stat triad every combat entity
// carries and the additive/multiplicative recombination formula that turns a
// Modifier into buffed stats.
package stats

import (
	"math"

	"github.com/cory-johannsen/twinstick/internal/game/geom"
)

// Modifier accumulates every attached buff's contribution.
// Percentages are whole-number percent: 10 means +10%, -50 means -50%.
//
// A Modifier is always rebuilt from scratch by folding the current buff set;
// it is never adjusted incrementally.
type Modifier struct {
	FlatHitPoints    int
	FlatShieldPoints int
	FlatArmour       int
	FlatSpeed        float64
	FlatDamage       int
	FlatLifeTime     float64

	PercentageHitPoints    float64
	PercentageShieldPoints float64
	PercentageArmour       float64
	PercentageSize         float64
	PercentageSpeed        float64
	PercentageDamage       float64
	PercentageLifeTime     float64

	PercentageFireResistance     float64
	PercentageIceResistance      float64
	PercentageElectricResistance float64
}

// Contributor is anything that can add itself to a Modifier.
type Contributor interface {
	ApplyStatModifiers(m *Modifier)
}

// Fold builds a fresh Modifier from every contributor in order.
func Fold[T Contributor](contributors []T) Modifier {
	var m Modifier
	for _, c := range contributors {
		c.ApplyStatModifiers(&m)
	}
	return m
}

// Stats is one snapshot of an entity's numeric stats.
type Stats struct {
	HitPoints    int
	ShieldPoints int
	Armour       int

	Size geom.Vec2

	Speed  float64
	Damage int

	// LifeTime is in seconds; only bullets use it.
	LifeTime float64

	FireResistance     float64
	IceResistance      float64
	ElectricResistance float64
}

// Element names a damage element an entity can resist.
type Element int

const (
	ElementFire Element = iota
	ElementIce
	ElementElectric
)

// String returns the lower-case element name.
func (e Element) String() string {
	switch e {
	case ElementFire:
		return "fire"
	case ElementIce:
		return "ice"
	case ElementElectric:
		return "electric"
	}
	return "unknown"
}

// Resistance returns the resistance to e.
func (s Stats) Resistance(e Element) float64 {
	switch e {
	case ElementFire:
		return s.FireResistance
	case ElementIce:
		return s.IceResistance
	case ElementElectric:
		return s.ElectricResistance
	}
	return 0
}

// New returns Stats with the common fields set and everything else zero.
func New(hitPoints int, size geom.Vec2, speed float64, damage int, lifeTime float64) Stats {
	return Stats{
		HitPoints: hitPoints,
		Size:      size,
		Speed:     speed,
		Damage:    damage,
		LifeTime:  lifeTime,
	}
}

func apply(base, flat, pct float64) float64 {
	return (base + flat) * (1 + pct*0.01)
}

// Buffed combines base with m using (base+flat)*(1+pct/100) per field.
//
// Postcondition: HitPoints >= 1, Damage >= 1, Speed >= 0, LifeTime >= 0,
// ShieldPoints >= 0, Armour >= 0, Size components >= 0. Resistances are
// unclamped and may go negative.
func Buffed(base Stats, m Modifier) Stats {
	return Stats{
		HitPoints:    max(int(math.Floor(apply(float64(base.HitPoints), float64(m.FlatHitPoints), m.PercentageHitPoints))), 1),
		ShieldPoints: max(int(math.Floor(apply(float64(base.ShieldPoints), float64(m.FlatShieldPoints), m.PercentageShieldPoints))), 0),
		Armour:       max(int(math.Floor(apply(float64(base.Armour), float64(m.FlatArmour), m.PercentageArmour))), 0),
		Size: geom.Vec2{
			X: math.Max(math.Floor(apply(base.Size.X, 0, m.PercentageSize)), 0),
			Y: math.Max(math.Floor(apply(base.Size.Y, 0, m.PercentageSize)), 0),
		},
		Speed:              math.Max(apply(base.Speed, m.FlatSpeed, m.PercentageSpeed), 0),
		Damage:             max(int(math.Floor(apply(float64(base.Damage), float64(m.FlatDamage), m.PercentageDamage))), 1),
		LifeTime:           math.Max(apply(base.LifeTime, m.FlatLifeTime, m.PercentageLifeTime), 0),
		FireResistance:     apply(base.FireResistance, 0, m.PercentageFireResistance),
		IceResistance:      apply(base.IceResistance, 0, m.PercentageIceResistance),
		ElectricResistance: apply(base.ElectricResistance, 0, m.PercentageElectricResistance),
	}
}
