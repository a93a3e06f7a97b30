package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/twinstick/internal/game/combat"
	"github.com/cory-johannsen/twinstick/internal/game/geom"
	"github.com/cory-johannsen/twinstick/internal/game/stats"
)

func newTestCharacter() *combat.Character {
	base := stats.New(100, combat.CharacterSize, 400, 1, 0)
	return combat.NewCharacter("tester", geom.V(0, 0), base, combat.StylePlayer, newTestWeapon(0))
}

func TestBuff_BuildersReturnCopies(t *testing.T) {
	b := combat.NewBuff(combat.KindClipSize, 1)
	add := b.Additive()
	assert.Equal(t, combat.SignAbsolute, b.Sign())
	assert.Equal(t, combat.SignAdditive, add.Sign())
	assert.Equal(t, combat.SignMultiplicative, b.Multiplicative().Sign())
}

func TestBuff_SpriteDetailsAndRarity(t *testing.T) {
	b := combat.NewBuff(combat.KindFireProjectile, 0)
	assert.Equal(t, combat.Sprite{Texture: "buffs", Index: 22, Rows: 5}, b.SpriteDetails())
	assert.Equal(t, combat.RarityCommon, b.Rarity())
	assert.Equal(t, 50, b.Rarity().Weight())
	assert.Equal(t, "fire_projectile", b.String())
}

func TestBuff_NewBuffPanicsOnUnknownKind(t *testing.T) {
	assert.Panics(t, func() { combat.NewBuff(combat.Kind(999), 0) })
}

func TestBuff_ApplyStatModifiers(t *testing.T) {
	var m stats.Modifier
	combat.NewBuff(combat.KindEntityHitPoints, 3).Additive().ApplyStatModifiers(&m)
	combat.NewBuff(combat.KindEntitySpeed, 1.1).Multiplicative().ApplyStatModifiers(&m)
	combat.NewBuff(combat.KindProjectileSpeed, 400).Additive().ApplyStatModifiers(&m)
	combat.NewBuff(combat.KindEntitySize, 0.9).Multiplicative().ApplyStatModifiers(&m)
	combat.NewBuff(combat.KindFireProjectile, 0).ApplyStatModifiers(&m)
	combat.NewBuff(combat.KindProjectileDamage, 9).ApplyStatModifiers(&m)

	assert.Equal(t, 3, m.FlatHitPoints)
	assert.InDelta(t, 10, m.PercentageSpeed, 1e-9)
	assert.InDelta(t, 400, m.FlatSpeed, 1e-9)
	assert.InDelta(t, -10, m.PercentageSize, 1e-9)
	assert.Equal(t, 0, m.FlatDamage)
}

func TestBuff_ControllerBuffs(t *testing.T) {
	assert.Equal(t, "spiral", combat.NewBuff(combat.KindCurve, 0).BulletController().Name())
	assert.Equal(t, "homing", combat.NewBuff(combat.KindHoming, 0).BulletController().Name())
	assert.Nil(t, combat.NewBuff(combat.KindFireProjectile, 0).BulletController())
}

func TestBuff_WeaponBuffsApplyImmediately(t *testing.T) {
	c := newTestCharacter()
	w := c.Weapon()

	combat.NewBuff(combat.KindClipSize, 1).Additive().ApplyToEntity(c, tick)
	assert.Equal(t, 7, w.ClipSize())
	combat.NewBuff(combat.KindMaxAmmo, 1).Additive().ApplyToEntity(c, tick)
	assert.Equal(t, 25, w.MaxAmmo())
	combat.NewBuff(combat.KindFirerate, 0.9).Multiplicative().ApplyToEntity(c, tick)
	assert.InDelta(t, 0.45, w.FiringSpeed(), 1e-9)
	combat.NewBuff(combat.KindReloadSpeed, 1.5).ApplyToEntity(c, tick)
	assert.Equal(t, 1.5, w.ReloadSpeed())
	combat.NewBuff(combat.KindMaintenance, 0.5).Multiplicative().ApplyToEntity(c, tick)
	assert.InDelta(t, 0.165, w.JamSpeed(), 1e-9)

	w.SetTotalAmmo(0)
	combat.NewBuff(combat.KindAmmoRefill, 0).ApplyToEntity(c, tick)
	assert.Equal(t, w.MaxAmmo(), w.TotalAmmo())
}

func TestBuff_ProjectileStatBuffsJoinFlatList(t *testing.T) {
	c := newTestCharacter()
	combat.NewBuff(combat.KindProjectileSpeed, 400).Additive().ApplyToEntity(c, tick)
	require.Len(t, c.Weapon().Buffs(), 1)
	assert.Equal(t, combat.KindProjectileSpeed, c.Weapon().Buffs()[0].Kind())
}

func TestBuff_SpeciesBuffAddsLoadout(t *testing.T) {
	c := newTestCharacter()
	combat.NewBuff(combat.KindElectricProjectile, 0).ApplyToEntity(c, tick)
	w := c.Weapon()
	assert.Equal(t, 2, w.ChainCount())
	assert.Equal(t, 1, w.CurrentChain())
	assert.Equal(t, combat.KindElectricProjectile, w.ActiveChain()[0].Buff.Kind())
}

func TestBuff_ChainAndControllerBuffsJoinActiveChain(t *testing.T) {
	c := newTestCharacter()
	combat.NewBuff(combat.KindDualProjectile, 0).ApplyToEntity(c, tick)
	combat.NewBuff(combat.KindCurve, 0).ApplyToEntity(c, tick)
	chain := c.Weapon().ActiveChain()
	require.Len(t, chain, 3)
	assert.Equal(t, combat.PriorityPrimary, chain[1].Priority)
	assert.Equal(t, combat.PrioritySecondary, chain[2].Priority)
}

func TestBuff_EntityHitPointsShiftCurrent(t *testing.T) {
	c := newTestCharacter()
	c.TakeDamage(40)
	combat.NewBuff(combat.KindEntityHitPoints, 1).Additive().ApplyToEntity(c, tick)
	assert.Equal(t, 101, c.Stats().Buffed().HitPoints)
	assert.Equal(t, 61, c.Stats().Current().HitPoints)
	assert.Len(t, c.StatBuffs(), 1)
}

func TestBuff_EntitySizePropagatesToHitbox(t *testing.T) {
	c := newTestCharacter()
	combat.NewBuff(combat.KindEntitySize, 0.9).Multiplicative().ApplyToEntity(c, tick)
	assert.Equal(t, geom.V(43, 43), c.Size())
	combat.NewBuff(combat.KindEntitySize, 64).ApplyToEntity(c, tick)
	assert.Equal(t, geom.V(57, 57), c.Size())
}

func TestBuff_EntitySpeedAbsoluteSetsBase(t *testing.T) {
	c := newTestCharacter()
	combat.NewBuff(combat.KindEntitySpeed, 250).ApplyToEntity(c, tick)
	assert.Equal(t, 250.0, c.MaxSpeed())
	assert.Empty(t, c.StatBuffs())
}

func TestBuff_ResistanceBuffs(t *testing.T) {
	c := newTestCharacter()
	combat.NewBuff(combat.KindEntityFireResistance, 20).Additive().ApplyToEntity(c, tick)
	combat.NewBuff(combat.KindEntityFireResistance, 1.5).Multiplicative().ApplyToEntity(c, tick)
	assert.InDelta(t, 30, c.Stats().Current().Resistance(stats.ElementFire), 1e-9)
	combat.NewBuff(combat.KindEntityIceResistance, -10).ApplyToEntity(c, tick)
	assert.InDelta(t, -10, c.Stats().Current().Resistance(stats.ElementIce), 1e-9)
}

func TestBuff_HealClampsToBuffed(t *testing.T) {
	c := newTestCharacter()
	c.TakeDamage(50)
	combat.NewBuff(combat.KindEntityHeal, 10).Additive().ApplyToEntity(c, tick)
	assert.Equal(t, 60, c.Stats().Current().HitPoints)
	combat.NewBuff(combat.KindEntityHeal, 1.5).Multiplicative().ApplyToEntity(c, tick)
	assert.Equal(t, 90, c.Stats().Current().HitPoints)
	combat.NewBuff(combat.KindEntityHeal, 500).ApplyToEntity(c, tick)
	assert.Equal(t, 100, c.Stats().Current().HitPoints)
}

func TestBuff_CoinFillsPurse(t *testing.T) {
	c := newTestCharacter()
	combat.NewBuff(combat.KindCoin, 5).ApplyToEntity(c, tick)
	assert.Equal(t, 5, c.Coins())
}

func TestBuff_CoinIgnoredByBullets(t *testing.T) {
	b := combat.NewBasicBullet(geom.V(0, 0), 1, true)
	assert.NotPanics(t, func() { combat.NewBuff(combat.KindCoin, 5).ApplyToEntity(b, tick) })
}

func TestBuff_ApplyToBulletSpeciesReplacement(t *testing.T) {
	b := combat.NewBasicBullet(geom.V(3, 4), 0.7, false).WithAngle(45)
	r := combat.NewBuff(combat.KindElectricProjectile, 0).ApplyToBullet(b, tick)
	require.NotNil(t, r)
	assert.Equal(t, combat.SpeciesElectric, r.Species())
	assert.Equal(t, geom.V(3, 4), r.Position())
	assert.Equal(t, 45.0, r.Rotation())
	assert.InDelta(t, 0.7, r.LifeTime(), 1e-9)
	assert.False(t, r.Friendly())
	assert.NotEqual(t, b.ID(), r.ID())
}

func TestBuff_DualProjectileRegistersOnBulletWeapon(t *testing.T) {
	b := combat.NewBasicBullet(geom.V(0, 0), 1, true)
	assert.Nil(t, combat.NewBuff(combat.KindDualProjectile, 0).ApplyToBullet(b, tick))
	require.Len(t, b.Weapon().Buffs(), 1)
	assert.Equal(t, combat.KindDualProjectile, b.Weapon().Buffs()[0].Kind())
}

func TestBuff_ProjectileMultiplicativeOnBullet(t *testing.T) {
	b := combat.NewBasicBullet(geom.V(0, 0), 1, true)
	base := b.MaxSpeed()
	combat.NewBuff(combat.KindProjectileSpeed, 1.5).Multiplicative().ApplyToBullet(b, tick)
	assert.InDelta(t, base*1.5, b.MaxSpeed(), 1e-6)
}
