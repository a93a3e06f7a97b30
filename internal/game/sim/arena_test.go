package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/twinstick/internal/game/combat"
	"github.com/cory-johannsen/twinstick/internal/game/dice"
	"github.com/cory-johannsen/twinstick/internal/game/geom"
	"github.com/cory-johannsen/twinstick/internal/game/loot"
	"github.com/cory-johannsen/twinstick/internal/game/sim"
	"github.com/cory-johannsen/twinstick/internal/game/stats"
)

const tick = 1.0 / 60

var neverJam = dice.FixedSource{Float: 0.99}

func newCharacter(name string, pos geom.Vec2, style combat.Style, hp int, cfg combat.WeaponConfig) *combat.Character {
	base := stats.New(hp, combat.CharacterSize, 400, 1, 0)
	return combat.NewCharacter(name, pos, base, style, combat.NewWeapon(cfg))
}

func player(cfg combat.WeaponConfig) *combat.Character {
	return newCharacter("player", geom.V(0, 0), combat.StylePlayer, 100, cfg)
}

func enemy(pos geom.Vec2, hp int) *combat.Character {
	return newCharacter("grunt", pos, combat.StyleEnemyCharacter, hp, combat.DefaultWeaponConfig())
}

func rapidFire() combat.WeaponConfig {
	cfg := combat.DefaultWeaponConfig()
	cfg.FiringSpeed = 0
	return cfg
}

func fireOnce() sim.Brain {
	fired := false
	return sim.BrainFunc(func(sim.View) sim.Intent {
		if fired {
			return sim.Intent{}
		}
		fired = true
		return sim.Intent{Fire: true}
	})
}

func TestNewArena_PanicsOnNilRng(t *testing.T) {
	assert.Panics(t, func() { sim.NewArena(nil) })
}

func TestArena_PlayerShootsEnemyDead(t *testing.T) {
	a := sim.NewArena(neverJam)
	p := player(combat.DefaultWeaponConfig())
	e := enemy(geom.V(0, 200), 3)
	a.Spawn(p, sim.AlwaysFire{Aim: true})
	a.Spawn(e, nil)

	for i := 0; i < 120; i++ {
		a.Tick(tick)
	}

	s := a.Stats()
	assert.False(t, e.Alive())
	assert.Equal(t, 1, s.Kills)
	assert.Equal(t, 3, s.Hits)
	assert.GreaterOrEqual(t, s.ShotsFired, 3)
	assert.Equal(t, 120, s.Ticks)
	assert.True(t, p.Alive())
}

func TestArena_BulletHitsEachTargetOnce(t *testing.T) {
	a := sim.NewArena(neverJam)
	p := player(combat.DefaultWeaponConfig())
	e := enemy(geom.V(0, 200), 100)
	a.Spawn(p, fireOnce())
	a.Spawn(e, nil)

	for i := 0; i < 20; i++ {
		a.Tick(tick)
	}
	assert.Equal(t, 1, a.Stats().Hits)
	assert.Equal(t, 99, e.Stats().Current().HitPoints)
}

func TestArena_FriendlyBulletsIgnoreFriends(t *testing.T) {
	a := sim.NewArena(neverJam)
	p := player(combat.DefaultWeaponConfig())
	ally := newCharacter("ally", geom.V(0, 200), combat.StyleFriendlyCharacter, 10, combat.DefaultWeaponConfig())
	a.Spawn(p, fireOnce())
	a.Spawn(ally, nil)

	for i := 0; i < 20; i++ {
		a.Tick(tick)
	}
	assert.Equal(t, 0, a.Stats().Hits)
	assert.Equal(t, 10, ally.Stats().Current().HitPoints)
}

func TestArena_BulletsExpire(t *testing.T) {
	a := sim.NewArena(neverJam)
	a.Spawn(player(combat.DefaultWeaponConfig()), fireOnce())

	a.Tick(tick)
	require.Equal(t, 1, a.Stats().LiveBullets)
	require.Len(t, a.Shots(), 1)

	for i := 0; i < 40; i++ {
		a.Tick(tick)
	}
	assert.Equal(t, 0, a.Stats().LiveBullets)
	assert.Empty(t, a.Shots())
}

func TestArena_BulletCap(t *testing.T) {
	a := sim.NewArena(neverJam, sim.WithBulletCap(1))
	p := player(rapidFire())
	a.Spawn(p, sim.AlwaysFire{})

	a.Tick(tick)
	a.Tick(tick)

	s := a.Stats()
	assert.Equal(t, 1, s.LiveBullets)
	assert.Equal(t, 1, s.ShotsFired)
	assert.Equal(t, 1, s.ShotsDropped)
}

func TestArena_JamsAreCounted(t *testing.T) {
	alwaysJam := dice.FixedSource{Float: 0}
	a := sim.NewArena(alwaysJam)
	a.Spawn(player(combat.DefaultWeaponConfig()), sim.AlwaysFire{})

	for i := 0; i < 60; i++ {
		a.Tick(tick)
	}
	s := a.Stats()
	assert.GreaterOrEqual(t, s.Jams, 2)
	assert.Equal(t, s.Jams, s.TriggerPulls)
	assert.Equal(t, 0, s.ShotsFired)
}

func TestArena_HomingBulletsSteerTowardHostile(t *testing.T) {
	a := sim.NewArena(neverJam)
	p := player(combat.DefaultWeaponConfig())
	loot.HomingProjectile.RelatedBuff().ApplyToEntity(p, tick)
	a.Spawn(p, fireOnce())
	a.Spawn(enemy(geom.V(300, 300), 10), nil)

	a.Tick(tick)
	shots := a.Shots()
	require.Len(t, shots, 1)
	assert.Equal(t, "homing", shots[0].Controller.Name())
	assert.Less(t, shots[0].Bullet.Rotation(), 0.0)
}

func TestArena_PickupsAreCollected(t *testing.T) {
	a := sim.NewArena(neverJam)
	p := player(combat.DefaultWeaponConfig())
	a.Spawn(p, nil)
	a.AddPickup(loot.Coins.Drop(geom.V(10, 0)))
	a.AddPickup(loot.Coins.Drop(geom.V(500, 0)))

	a.Tick(tick)
	assert.Equal(t, loot.CoinValue, p.Coins())
	assert.Equal(t, 1, a.Stats().Pickups)
	assert.Len(t, a.Pickups(), 1)
}

func TestArena_DeadCharactersDoNotAct(t *testing.T) {
	a := sim.NewArena(neverJam)
	p := player(combat.DefaultWeaponConfig())
	p.Kill()
	a.Spawn(p, sim.AlwaysFire{})

	a.Tick(tick)
	assert.Equal(t, 0, a.Stats().ShotsFired)
	assert.Len(t, a.Characters(), 1)
}

func TestArena_MoveIntentMovesCharacter(t *testing.T) {
	a := sim.NewArena(neverJam)
	p := player(combat.DefaultWeaponConfig())
	a.Spawn(p, sim.BrainFunc(func(sim.View) sim.Intent {
		return sim.Intent{Move: geom.V(1, 0)}
	}))
	for i := 0; i < 30; i++ {
		a.Tick(tick)
	}
	assert.Greater(t, p.Position().X, 0.0)
	assert.InDelta(t, 0, p.Position().Y, 1e-9)
}

func TestArena_ViewCarriesNearestHostile(t *testing.T) {
	a := sim.NewArena(neverJam)
	p := player(combat.DefaultWeaponConfig())
	near := enemy(geom.V(0, 100), 5)
	far := enemy(geom.V(0, 900), 5)
	var seen *combat.Character
	a.Spawn(p, sim.BrainFunc(func(v sim.View) sim.Intent {
		seen = v.Target
		return sim.Intent{}
	}))
	a.Spawn(far, nil)
	a.Spawn(near, nil)

	a.Tick(tick)
	assert.Same(t, near, seen)
}

func TestArena_LogsSummaryEverySecond(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	a := sim.NewArena(neverJam, sim.WithLogger(zap.New(core)))
	a.Spawn(player(combat.DefaultWeaponConfig()), nil)

	for i := 0; i < 4; i++ {
		a.Tick(0.25)
	}
	entries := logs.FilterMessage("arena summary").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(4), entries[0].ContextMap()["ticks"])
}

func TestProperty_Arena_CountersConsistent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		capN := rapid.IntRange(1, 20).Draw(rt, "cap")
		ticks := rapid.IntRange(1, 200).Draw(rt, "ticks")

		a := sim.NewArena(dice.NewSeededSource(seed), sim.WithBulletCap(capN))
		a.Spawn(player(rapidFire()), sim.AlwaysFire{Aim: true})
		a.Spawn(enemy(geom.V(0, 150), 50), sim.AlwaysFire{Aim: true})

		for i := 0; i < ticks; i++ {
			a.Tick(tick)
			s := a.Stats()
			require.LessOrEqual(rt, s.LiveBullets, capN)
			require.LessOrEqual(rt, s.LiveBullets, s.ShotsFired)
			require.LessOrEqual(rt, s.Jams, s.TriggerPulls)
		}
	})
}
