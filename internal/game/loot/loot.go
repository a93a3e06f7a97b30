// Package loot maps loot keys to the buffs they grant and lays out pickups.
// Deciding which loot actually drops is left to the caller.
package loot

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/twinstick/internal/game/combat"
)

// PossibleLoot is the content key of one kind of loot.
type PossibleLoot string

const (
	AmmoRefill           PossibleLoot = "ammo_refill"
	ClipSize             PossibleLoot = "clip_size"
	Firerate             PossibleLoot = "firerate"
	Maintenance          PossibleLoot = "maintenance"
	MaxAmmo              PossibleLoot = "max_ammo"
	ReloadSpeed          PossibleLoot = "reload_speed"
	ProjectileDamage     PossibleLoot = "projectile_damage"
	ProjectileLifetime   PossibleLoot = "projectile_lifetime"
	ProjectileSpeed      PossibleLoot = "projectile_speed"
	BasicProjectile      PossibleLoot = "basic_projectile"
	ElectricProjectile   PossibleLoot = "electric_projectile"
	FireProjectile       PossibleLoot = "fire_projectile"
	IceProjectile        PossibleLoot = "ice_projectile"
	EntityHitPoints      PossibleLoot = "entity_hit_points"
	EntityHeal           PossibleLoot = "entity_heal"
	EntitySize           PossibleLoot = "entity_size"
	EntitySpeed          PossibleLoot = "entity_speed"
	EntityFireResistance PossibleLoot = "entity_fire_resistance"
	EntityIceResistance  PossibleLoot = "entity_ice_resistance"
	EntityElecResistance PossibleLoot = "entity_electric_resistance"
	CurveProjectile      PossibleLoot = "curve_projectile"
	HomingProjectile     PossibleLoot = "homing_projectile"
	DualProjectile       PossibleLoot = "dual_projectile"
	AdditionalProjectile PossibleLoot = "additional_projectile"
	Coins                PossibleLoot = "coins"
)

// CoinValue is the number of coins one coin pickup is worth.
const CoinValue = 5

var related = map[PossibleLoot]func() combat.Buff{
	AmmoRefill:           func() combat.Buff { return combat.NewBuff(combat.KindAmmoRefill, 0) },
	ClipSize:             func() combat.Buff { return combat.NewBuff(combat.KindClipSize, 1).Additive() },
	Firerate:             func() combat.Buff { return combat.NewBuff(combat.KindFirerate, 0.9).Multiplicative() },
	Maintenance:          func() combat.Buff { return combat.NewBuff(combat.KindMaintenance, 0.9).Multiplicative() },
	MaxAmmo:              func() combat.Buff { return combat.NewBuff(combat.KindMaxAmmo, 1).Additive() },
	ReloadSpeed:          func() combat.Buff { return combat.NewBuff(combat.KindReloadSpeed, 0.9).Multiplicative() },
	ProjectileDamage:     func() combat.Buff { return combat.NewBuff(combat.KindProjectileDamage, 1).Additive() },
	ProjectileLifetime:   func() combat.Buff { return combat.NewBuff(combat.KindProjectileLifetime, 1).Additive() },
	ProjectileSpeed:      func() combat.Buff { return combat.NewBuff(combat.KindProjectileSpeed, 400).Additive() },
	BasicProjectile:      func() combat.Buff { return combat.NewBuff(combat.KindBasicProjectile, 0) },
	ElectricProjectile:   func() combat.Buff { return combat.NewBuff(combat.KindElectricProjectile, 0) },
	FireProjectile:       func() combat.Buff { return combat.NewBuff(combat.KindFireProjectile, 0) },
	IceProjectile:        func() combat.Buff { return combat.NewBuff(combat.KindIceProjectile, 0) },
	EntityHitPoints:      func() combat.Buff { return combat.NewBuff(combat.KindEntityHitPoints, 1).Additive() },
	EntityHeal:           func() combat.Buff { return combat.NewBuff(combat.KindEntityHeal, 1).Additive() },
	EntitySize:           func() combat.Buff { return combat.NewBuff(combat.KindEntitySize, 0.9).Multiplicative() },
	EntitySpeed:          func() combat.Buff { return combat.NewBuff(combat.KindEntitySpeed, 1.1).Multiplicative() },
	EntityFireResistance: func() combat.Buff { return combat.NewBuff(combat.KindEntityFireResistance, 10).Additive() },
	EntityIceResistance:  func() combat.Buff { return combat.NewBuff(combat.KindEntityIceResistance, 10).Additive() },
	EntityElecResistance: func() combat.Buff { return combat.NewBuff(combat.KindEntityElectricResistance, 10).Additive() },
	CurveProjectile:      func() combat.Buff { return combat.NewBuff(combat.KindCurve, 0) },
	HomingProjectile:     func() combat.Buff { return combat.NewBuff(combat.KindHoming, 0) },
	DualProjectile:       func() combat.Buff { return combat.NewBuff(combat.KindDualProjectile, 0) },
	AdditionalProjectile: func() combat.Buff { return combat.NewBuff(combat.KindAdditionalProjectile, 0) },
	Coins:                func() combat.Buff { return combat.NewBuff(combat.KindCoin, CoinValue) },
}

// All returns every known loot key in ascending order.
func All() []PossibleLoot {
	out := make([]PossibleLoot, 0, len(related))
	for k := range related {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Parse validates name as a loot key.
func Parse(name string) (PossibleLoot, error) {
	p := PossibleLoot(name)
	if _, ok := related[p]; !ok {
		return "", fmt.Errorf("unknown loot %q", name)
	}
	return p, nil
}

// RelatedBuff builds the buff p grants.
//
// Precondition: p is a known key (panics otherwise).
func (p PossibleLoot) RelatedBuff() combat.Buff {
	build, ok := related[p]
	if !ok {
		panic(fmt.Sprintf("loot: RelatedBuff: unknown loot %q", string(p)))
	}
	return build()
}

// Weight returns the drop weight of p's buff.
func (p PossibleLoot) Weight() int { return p.RelatedBuff().Rarity().Weight() }
