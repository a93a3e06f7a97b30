package combat

import (
	"fmt"

	"github.com/cory-johannsen/twinstick/internal/game/geom"
	"github.com/cory-johannsen/twinstick/internal/game/stats"
)

// Species is the kind of projectile a bullet is.
type Species int

const (
	SpeciesBasic Species = iota
	SpeciesFire
	SpeciesIce
	SpeciesElectric
)

// String returns the species name used in logs and content files.
func (s Species) String() string {
	switch s {
	case SpeciesBasic:
		return "basic"
	case SpeciesFire:
		return "fire"
	case SpeciesIce:
		return "ice"
	case SpeciesElectric:
		return "electric"
	}
	return fmt.Sprintf("species(%d)", int(s))
}

// ParseSpecies maps a species name back to its Species.
func ParseSpecies(name string) (Species, error) {
	switch name {
	case "basic", "":
		return SpeciesBasic, nil
	case "fire":
		return SpeciesFire, nil
	case "ice":
		return SpeciesIce, nil
	case "electric":
		return SpeciesElectric, nil
	}
	return 0, fmt.Errorf("unknown bullet species %q", name)
}

// BulletSize is the footprint of every freshly spawned bullet.
var BulletSize = geom.V(24, 24)

type speciesStats struct {
	speed     float64
	hitPoints int
	damage    int
}

var speciesTable = map[Species]speciesStats{
	SpeciesBasic:    {speed: 2400, hitPoints: 20, damage: 1},
	SpeciesFire:     {speed: 2100, hitPoints: 20, damage: 2},
	SpeciesIce:      {speed: 2400, hitPoints: 20, damage: 1},
	SpeciesElectric: {speed: 1800, hitPoints: 50, damage: 1},
}

// Bullet is a projectile entity. Its hit points are the number of hits it
// can deliver before it is spent.
type Bullet struct {
	*Actor
	species Species
}

// NewBullet spawns a bullet of the given species at pos.
//
// Postcondition: the bullet's base life time is lifeTime and its weapon has no
// flat buffs.
func NewBullet(species Species, pos geom.Vec2, lifeTime float64, friendly bool) *Bullet {
	st, ok := speciesTable[species]
	if !ok {
		panic(fmt.Sprintf("combat: NewBullet: unknown species %d", int(species)))
	}
	style := StyleEnemyBullet
	if friendly {
		style = StyleFriendlyBullet
	}
	base := stats.New(st.hitPoints, BulletSize, st.speed, st.damage, lifeTime)
	return &Bullet{
		Actor:   NewActor(pos, base, style, newBulletWeapon(species)),
		species: species,
	}
}

// NewBasicBullet spawns a basic bullet.
func NewBasicBullet(pos geom.Vec2, lifeTime float64, friendly bool) *Bullet {
	return NewBullet(SpeciesBasic, pos, lifeTime, friendly)
}

// NewFireBullet spawns a fire bullet.
func NewFireBullet(pos geom.Vec2, lifeTime float64, friendly bool) *Bullet {
	return NewBullet(SpeciesFire, pos, lifeTime, friendly)
}

// NewIceBullet spawns an ice bullet.
func NewIceBullet(pos geom.Vec2, lifeTime float64, friendly bool) *Bullet {
	return NewBullet(SpeciesIce, pos, lifeTime, friendly)
}

// NewElectricBullet spawns an electric bullet.
func NewElectricBullet(pos geom.Vec2, lifeTime float64, friendly bool) *Bullet {
	return NewBullet(SpeciesElectric, pos, lifeTime, friendly)
}

// WithAngle sets the bullet's rotation and returns it.
func (b *Bullet) WithAngle(deg float64) *Bullet {
	b.SetRotation(deg)
	return b
}

// Species returns the bullet's species.
func (b *Bullet) Species() Species { return b.species }

// Damage returns the damage one hit deals.
func (b *Bullet) Damage() int { return b.Stats().Current().Damage }

// Hit deals the bullet's damage to target and spends one of the bullet's hit
// points. It returns the damage actually applied.
func (b *Bullet) Hit(target Entity) int {
	if !b.Alive() {
		return 0
	}
	applied := target.TakeDamage(b.Damage())
	b.TakeDamage(1)
	return applied
}
