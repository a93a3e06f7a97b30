package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/twinstick/internal/game/combat"
)

func basicSeed() combat.Buff { return combat.NewBuff(combat.KindBasicProjectile, 0) }

func TestNewChainBank_SeedsOnePrimary(t *testing.T) {
	cb := combat.NewChainBank(basicSeed())
	require.Equal(t, 1, cb.Len())
	active := cb.Active()
	require.Len(t, active, 1)
	assert.Equal(t, combat.PriorityPrimary, active[0].Priority)
	assert.Equal(t, combat.KindBasicProjectile, active[0].Buff.Kind())
}

func TestChainBank_InsertAfterActiveBecomesActive(t *testing.T) {
	cb := combat.NewChainBank(basicSeed())
	seedID := cb.ActiveID()
	fireID := cb.InsertAfterActive(combat.NewBuff(combat.KindFireProjectile, 0))
	assert.Equal(t, 1, cb.Cursor())
	assert.Equal(t, fireID, cb.ActiveID())

	cb.Cycle()
	require.Equal(t, seedID, cb.ActiveID())
	iceID := cb.InsertAfterActive(combat.NewBuff(combat.KindIceProjectile, 0))
	// inserted between the seed and fire loadouts
	assert.Equal(t, []combat.ChainID{seedID, iceID, fireID}, cb.IDs())
	assert.Equal(t, 1, cb.Cursor())
}

func TestChainBank_IDsAreStable(t *testing.T) {
	cb := combat.NewChainBank(basicSeed())
	fireID := cb.InsertAfterActive(combat.NewBuff(combat.KindFireProjectile, 0))
	cb.Cycle()
	cb.InsertAfterActive(combat.NewBuff(combat.KindIceProjectile, 0))

	chain, ok := cb.Chain(fireID)
	require.True(t, ok)
	assert.Equal(t, combat.KindFireProjectile, chain[0].Buff.Kind())
	require.NoError(t, cb.Select(fireID))
	assert.Equal(t, 2, cb.Cursor())
	assert.Error(t, cb.Select(combat.ChainID(99)))
}

func TestChainBank_AppendToActive(t *testing.T) {
	cb := combat.NewChainBank(basicSeed())
	cb.AppendToActive(combat.NewBuff(combat.KindCurve, 0), combat.PrioritySecondary)
	cb.AppendToActive(combat.NewBuff(combat.KindDualProjectile, 0), combat.PriorityPrimary)
	assert.Len(t, cb.Active(), 3)
	assert.Equal(t, 2, cb.PrimaryCount())
}

func TestChainBank_ActiveReturnsCopy(t *testing.T) {
	cb := combat.NewChainBank(basicSeed())
	a := cb.Active()
	a[0].Priority = combat.PrioritySecondary
	assert.Equal(t, combat.PriorityPrimary, cb.Active()[0].Priority)
}

func TestChainBank_Reset(t *testing.T) {
	cb := combat.NewChainBank(basicSeed())
	cb.InsertAfterActive(combat.NewBuff(combat.KindFireProjectile, 0))
	cb.Reset(basicSeed())
	assert.Equal(t, 1, cb.Len())
	assert.Equal(t, 0, cb.Cursor())
}

func TestProperty_ChainBank_CyclingLenTimesIsIdentity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cb := combat.NewChainBank(basicSeed())
		extra := rapid.IntRange(0, 10).Draw(rt, "extra")
		for i := 0; i < extra; i++ {
			cb.InsertAfterActive(combat.NewBuff(combat.KindIceProjectile, 0))
			for j := rapid.IntRange(0, 3).Draw(rt, "cycles"); j > 0; j-- {
				cb.Cycle()
			}
		}
		start := cb.Cursor()
		for i := 0; i < cb.Len(); i++ {
			cb.Cycle()
			require.GreaterOrEqual(rt, cb.Cursor(), 0)
			require.Less(rt, cb.Cursor(), cb.Len())
		}
		assert.Equal(rt, start, cb.Cursor())
	})
}

func TestProperty_ChainBank_EveryChainLedByPrimary(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cb := combat.NewChainBank(basicSeed())
		ops := rapid.IntRange(1, 30).Draw(rt, "ops")
		for i := 0; i < ops; i++ {
			switch rapid.IntRange(0, 3).Draw(rt, "op") {
			case 0:
				cb.InsertAfterActive(combat.NewBuff(combat.KindFireProjectile, 0))
			case 1:
				cb.AppendToActive(combat.NewBuff(combat.KindCurve, 0), combat.PrioritySecondary)
			case 2:
				cb.AppendToActive(combat.NewBuff(combat.KindDualProjectile, 0), combat.PriorityPrimary)
			case 3:
				cb.Cycle()
			}
		}
		for _, id := range cb.IDs() {
			chain, ok := cb.Chain(id)
			require.True(rt, ok)
			require.NotEmpty(rt, chain)
			assert.Equal(rt, combat.PriorityPrimary, chain[0].Priority)
		}
	})
}
