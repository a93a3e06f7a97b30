package combat

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/twinstick/internal/game/controller"
	"github.com/cory-johannsen/twinstick/internal/game/geom"
	"github.com/cory-johannsen/twinstick/internal/game/stats"
)

// Kind identifies one entry of the closed buff catalogue.
type Kind int

const (
	KindBasicProjectile Kind = iota
	KindFireProjectile
	KindIceProjectile
	KindElectricProjectile
	KindAdditionalProjectile
	KindDualProjectile
	KindCurve
	KindHoming
	KindProjectileDamage
	KindProjectileLifetime
	KindProjectileSpeed
	KindAmmoRefill
	KindClipSize
	KindFirerate
	KindMaintenance
	KindMaxAmmo
	KindReloadSpeed
	KindEntityHitPoints
	KindEntitySpeed
	KindEntitySize
	KindEntityFireResistance
	KindEntityIceResistance
	KindEntityElectricResistance
	KindEntityHeal
	KindCoin
)

// Sign selects how a buff's magnitude combines with the value it modifies.
type Sign int

const (
	// SignAbsolute replaces the value.
	SignAbsolute Sign = iota
	// SignAdditive adds the magnitude.
	SignAdditive
	// SignMultiplicative multiplies by the magnitude; 1.1 means +10%.
	SignMultiplicative
)

// Rarity is a drop-probability class. Its value is the drop weight.
type Rarity int

const (
	RarityLegendary Rarity = 1
	RarityVeryRare  Rarity = 5
	RarityRare      Rarity = 9
	RarityUncommon  Rarity = 13
	RarityCommon    Rarity = 50
)

// Weight returns the drop weight of r.
func (r Rarity) Weight() int { return int(r) }

// Sprite locates a buff's icon on a sprite sheet.
type Sprite struct {
	Texture string
	Index   int
	Rows    int
}

// BuffTexture is the sprite sheet holding every buff icon.
const BuffTexture = "buffs"

const buffSheetRows = 5

type kindInfo struct {
	name   string
	index  int
	rarity Rarity
}

var kindTable = map[Kind]kindInfo{
	KindBasicProjectile:          {"basic_projectile", 0, RarityVeryRare},
	KindFireProjectile:           {"fire_projectile", 22, RarityCommon},
	KindIceProjectile:            {"ice_projectile", 21, RarityRare},
	KindElectricProjectile:       {"electric_projectile", 20, RarityRare},
	KindAdditionalProjectile:     {"additional_projectile", 16, RarityCommon},
	KindDualProjectile:           {"dual_projectile", 24, RarityRare},
	KindCurve:                    {"curve", 23, RarityRare},
	KindHoming:                   {"homing", 19, RarityVeryRare},
	KindProjectileDamage:         {"projectile_damage", 3, RarityUncommon},
	KindProjectileLifetime:       {"projectile_lifetime", 10, RarityCommon},
	KindProjectileSpeed:          {"projectile_speed", 12, RarityCommon},
	KindAmmoRefill:               {"ammo_refill", 1, RarityCommon},
	KindClipSize:                 {"clip_size", 4, RarityUncommon},
	KindFirerate:                 {"firerate", 2, RarityUncommon},
	KindMaintenance:              {"maintenance", 6, RarityCommon},
	KindMaxAmmo:                  {"max_ammo", 7, RarityCommon},
	KindReloadSpeed:              {"reload_speed", 5, RarityUncommon},
	KindEntityHitPoints:          {"entity_hit_points", 8, RarityCommon},
	KindEntitySpeed:              {"entity_speed", 9, RarityRare},
	KindEntitySize:               {"entity_size", 0, RarityRare},
	KindEntityFireResistance:     {"entity_fire_resistance", 11, RarityRare},
	KindEntityIceResistance:      {"entity_ice_resistance", 14, RarityRare},
	KindEntityElectricResistance: {"entity_electric_resistance", 15, RarityRare},
	KindEntityHeal:               {"entity_heal", 13, RarityUncommon},
	KindCoin:                     {"coin", 18, RarityUncommon},
}

// String returns the snake_case name of k.
func (k Kind) String() string {
	if info, ok := kindTable[k]; ok {
		return info.name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// AdditionalProjectileOffset is how far from the original an additional
// projectile spawns.
var AdditionalProjectileOffset = geom.V(10, 10)

// Buff is an immutable effect. The zero Sign is SignAbsolute.
type Buff struct {
	kind   Kind
	sign   Sign
	amount float64
}

// NewBuff returns an absolute buff of kind with the given magnitude.
// Use Additive or Multiplicative to change the sign.
func NewBuff(kind Kind, amount float64) Buff {
	if _, ok := kindTable[kind]; !ok {
		panic(fmt.Sprintf("combat: NewBuff: unknown kind %d", int(kind)))
	}
	return Buff{kind: kind, amount: amount}
}

// Additive returns a copy of b that adds its magnitude.
func (b Buff) Additive() Buff {
	b.sign = SignAdditive
	return b
}

// Multiplicative returns a copy of b that multiplies by its magnitude.
func (b Buff) Multiplicative() Buff {
	b.sign = SignMultiplicative
	return b
}

// Kind returns the catalogue entry b was built from.
func (b Buff) Kind() Kind { return b.kind }

// Sign returns how b's magnitude is applied.
func (b Buff) Sign() Sign { return b.sign }

// Amount returns b's magnitude.
func (b Buff) Amount() float64 { return b.amount }

// Rarity returns the drop rarity of b's kind.
func (b Buff) Rarity() Rarity { return kindTable[b.kind].rarity }

// String returns the kind name.
func (b Buff) String() string { return b.kind.String() }

// SpriteDetails returns the texture, sprite index and row count of b's icon.
func (b Buff) SpriteDetails() Sprite {
	return Sprite{Texture: BuffTexture, Index: kindTable[b.kind].index, Rows: buffSheetRows}
}

// Species reports the bullet species b defines, if it is a species buff.
func (b Buff) Species() (Species, bool) {
	switch b.kind {
	case KindBasicProjectile:
		return SpeciesBasic, true
	case KindFireProjectile:
		return SpeciesFire, true
	case KindIceProjectile:
		return SpeciesIce, true
	case KindElectricProjectile:
		return SpeciesElectric, true
	}
	return 0, false
}

// SpeciesBuff returns the buff that defines species s.
func SpeciesBuff(s Species) Buff {
	switch s {
	case SpeciesFire:
		return NewBuff(KindFireProjectile, 0)
	case SpeciesIce:
		return NewBuff(KindIceProjectile, 0)
	case SpeciesElectric:
		return NewBuff(KindElectricProjectile, 0)
	}
	return NewBuff(KindBasicProjectile, 0)
}

func (b Buff) combine(current float64) float64 {
	switch b.sign {
	case SignAdditive:
		return current + b.amount
	case SignMultiplicative:
		return current * b.amount
	}
	return b.amount
}

func (b Buff) percentage() float64 { return (b.amount - 1) * 100 }

// ApplyStatModifiers adds b's contribution to m. Absolute buffs contribute
// nothing; they change base stats when applied instead.
func (b Buff) ApplyStatModifiers(m *stats.Modifier) {
	switch b.sign {
	case SignAdditive:
		switch b.kind {
		case KindProjectileDamage:
			m.FlatDamage += int(math.Floor(b.amount))
		case KindProjectileLifetime:
			m.FlatLifeTime += b.amount
		case KindProjectileSpeed, KindEntitySpeed:
			m.FlatSpeed += b.amount
		case KindEntityHitPoints:
			m.FlatHitPoints += int(math.Floor(b.amount))
		}
	case SignMultiplicative:
		switch b.kind {
		case KindProjectileDamage:
			m.PercentageDamage += b.percentage()
		case KindProjectileLifetime:
			m.PercentageLifeTime += b.percentage()
		case KindProjectileSpeed, KindEntitySpeed:
			m.PercentageSpeed += b.percentage()
		case KindEntityHitPoints:
			m.PercentageHitPoints += b.percentage()
		case KindEntitySize:
			m.PercentageSize += b.percentage()
		case KindEntityFireResistance:
			m.PercentageFireResistance += b.percentage()
		case KindEntityIceResistance:
			m.PercentageIceResistance += b.percentage()
		case KindEntityElectricResistance:
			m.PercentageElectricResistance += b.percentage()
		}
	}
}

// BulletController returns the movement strategy b imposes on bullets, or nil.
func (b Buff) BulletController() controller.Controller {
	switch b.kind {
	case KindCurve:
		return controller.NewSpiral()
	case KindHoming:
		return controller.NewHoming()
	}
	return nil
}

// ApplyToEntity registers b on its new owner.
func (b Buff) ApplyToEntity(e Entity, dt float64) {
	w := e.Weapon()
	switch b.kind {
	case KindBasicProjectile, KindFireProjectile, KindIceProjectile, KindElectricProjectile:
		if w != nil {
			w.AddPrimaryBuff(b)
		}
	case KindAdditionalProjectile, KindDualProjectile:
		if w != nil {
			w.AddToActiveChain(b)
		}
	case KindCurve, KindHoming:
		if w != nil {
			w.AddToActiveChainAsSecondary(b)
		}
	case KindProjectileDamage, KindProjectileLifetime, KindProjectileSpeed:
		if w != nil {
			w.AddBuff(b)
		}
	case KindAmmoRefill, KindClipSize, KindFirerate, KindMaintenance, KindMaxAmmo, KindReloadSpeed:
		if w != nil {
			b.applyToWeapon(w)
		}
	case KindEntityHitPoints, KindEntitySpeed, KindEntitySize,
		KindEntityFireResistance, KindEntityIceResistance, KindEntityElectricResistance:
		b.applyEntityStat(e)
	case KindEntityHeal:
		cur := float64(e.Stats().Current().HitPoints)
		e.Stats().SetHitPoints(int(math.Floor(b.combine(cur))))
	case KindCoin:
		if ch, ok := e.(CoinHolder); ok {
			ch.AddCoins(int(b.amount))
		}
	}
}

func (b Buff) applyToWeapon(w *Weapon) {
	switch b.kind {
	case KindAmmoRefill:
		w.RefillAmmo()
	case KindClipSize:
		w.SetClipSize(int(math.Floor(b.combine(float64(w.ClipSize())))))
	case KindMaxAmmo:
		w.SetMaxAmmo(int(math.Floor(b.combine(float64(w.MaxAmmo())))))
	case KindFirerate:
		w.SetFiringSpeed(b.combine(w.FiringSpeed()))
	case KindMaintenance:
		w.SetJamSpeed(b.combine(w.JamSpeed()))
	case KindReloadSpeed:
		w.SetReloadSpeed(b.combine(w.ReloadSpeed()))
	}
}

// applyEntityStat changes base stats for absolute buffs and for additive
// buffs on fields without a flat component; everything else is attached as a
// stat buff.
func (b Buff) applyEntityStat(e Entity) {
	model := e.Stats()
	base := model.Base()
	if b.sign == SignAbsolute {
		switch b.kind {
		case KindEntityHitPoints:
			model.SetBaseHitPoints(int(math.Floor(b.amount)))
		case KindEntitySpeed:
			model.SetBaseSpeed(b.amount)
		case KindEntitySize:
			model.SetBaseSize(geom.V(b.amount, b.amount))
		default:
			model.SetBaseResistance(b.element(), b.amount)
		}
		return
	}
	if b.sign == SignAdditive {
		switch b.kind {
		case KindEntitySize:
			model.SetBaseSize(base.Size.Add(geom.V(b.amount, b.amount)))
			return
		case KindEntityFireResistance, KindEntityIceResistance, KindEntityElectricResistance:
			el := b.element()
			model.SetBaseResistance(el, base.Resistance(el)+b.amount)
			return
		}
	}
	e.AddStatBuff(b)
}

func (b Buff) element() stats.Element {
	switch b.kind {
	case KindEntityIceResistance:
		return stats.ElementIce
	case KindEntityElectricResistance:
		return stats.ElementElectric
	}
	return stats.ElementFire
}

// ApplyToBullet transforms bullet. Species-defining buffs return a
// replacement bullet; every other buff mutates bullet in place and returns nil.
func (b Buff) ApplyToBullet(bullet *Bullet, dt float64) *Bullet {
	if species, ok := b.Species(); ok {
		return NewBullet(species, bullet.Position(), bullet.LifeTime(), bullet.Friendly()).
			WithAngle(bullet.Rotation())
	}
	switch b.kind {
	case KindAdditionalProjectile:
		bullet.Weapon().AddBuff(b)
		return NewBasicBullet(bullet.Position().Add(AdditionalProjectileOffset), bullet.LifeTime(), bullet.Friendly()).
			WithAngle(bullet.Rotation())
	case KindDualProjectile:
		bullet.Weapon().AddBuff(b)
	case KindProjectileDamage, KindProjectileLifetime, KindProjectileSpeed:
		if b.sign != SignAbsolute {
			bullet.AddStatBuff(b)
			return nil
		}
		model := bullet.Stats()
		switch b.kind {
		case KindProjectileDamage:
			model.SetBaseDamage(int(math.Floor(b.amount)))
		case KindProjectileLifetime:
			model.SetBaseLifeTime(b.amount)
		case KindProjectileSpeed:
			model.SetBaseSpeed(b.amount)
		}
	}
	return nil
}
