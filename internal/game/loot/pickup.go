package loot

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/twinstick/internal/game/combat"
	"github.com/cory-johannsen/twinstick/internal/game/geom"
)

// PickupSize is the footprint of a pickup lying in the world.
var PickupSize = geom.V(48, 48)

// Pickup is a buff lying in the world waiting to be collected.
type Pickup struct {
	ID       uuid.UUID
	Position geom.Vec2
	Buff     combat.Buff
	Sprite   combat.Sprite

	collected bool
}

// NewPickup places b at pos.
func NewPickup(pos geom.Vec2, b combat.Buff) *Pickup {
	return &Pickup{
		ID:       uuid.New(),
		Position: pos,
		Buff:     b,
		Sprite:   b.SpriteDetails(),
	}
}

// Drop places the buff for p at pos.
func (p PossibleLoot) Drop(pos geom.Vec2) *Pickup { return NewPickup(pos, p.RelatedBuff()) }

// Collected reports whether the pickup has been taken.
func (pk *Pickup) Collected() bool { return pk.collected }

// Touches reports whether an entity centred at pos with the given size
// overlaps the pickup.
func (pk *Pickup) Touches(pos, size geom.Vec2) bool {
	return geom.Overlaps(pos, size, pk.Position, PickupSize)
}

// Collect hands the buff to e. A pickup can be collected once; later calls
// return false.
//
// Postcondition: Collected() is true.
func (pk *Pickup) Collect(e combat.Entity, dt float64, logger *zap.Logger) bool {
	if pk.collected {
		return false
	}
	pk.collected = true
	pk.Buff.ApplyToEntity(e, dt)
	if logger != nil {
		logger.Debug("pickup collected",
			zap.Stringer("buff", pk.Buff),
			zap.Stringer("entity", e.ID()),
		)
	}
	return true
}
