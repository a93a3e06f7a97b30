package combat

import (
	"github.com/cory-johannsen/twinstick/internal/game/controller"
	"github.com/cory-johannsen/twinstick/internal/game/geom"
)

// Shot is one bullet emitted by a trigger pull together with the controller
// that will move it. Every Shot owns its own Controller.
type Shot struct {
	Controller controller.Controller
	Bullet     *Bullet
}

// runPipeline turns the active loadout into the bullets of one trigger pull.
//
// Entry 0 of the loadout defines the species of the first bullet. Every later
// Primary entry leads a new firing group and adds one bullet, derived from a
// fresh seed of the weapon's species. Secondary entries are attached as stat
// buffs to the bullet of their group. The first controller found, scanning
// entries after the seed before entry 0, moves every bullet; the flat buffs
// are applied last.
//
// Postcondition: len(result) == the number of Primary entries in the loadout.
func (w *Weapon) runPipeline(spawn geom.Vec2, angle float64, friendly bool, dt float64) []Shot {
	chain := w.chains.Active()
	seed := func() *Bullet {
		return NewBullet(w.species, spawn, w.bulletLifeTime, friendly).WithAngle(angle)
	}

	lead := chain[0].Buff
	first := seed()
	if replacement := lead.ApplyToBullet(first, dt); replacement != nil {
		replacement.Weapon().ClearBuffs()
		lead.ApplyToEntity(replacement, dt)
		first = replacement
	}

	bullets := []*Bullet{first}
	group := first
	for _, entry := range chain[1:] {
		if entry.Priority == PriorityPrimary {
			b := seed()
			if replacement := entry.Buff.ApplyToBullet(b, dt); replacement != nil {
				b = replacement
			}
			bullets = append(bullets, b)
			group = b
			continue
		}
		group.AddStatBuff(entry.Buff)
	}

	ctrl := pickController(chain)

	for i, b := range bullets {
		for _, flat := range w.buffs {
			if replacement := flat.ApplyToBullet(b, dt); replacement != nil {
				b = replacement
			}
		}
		bullets[i] = b
	}

	shots := make([]Shot, len(bullets))
	for i, b := range bullets {
		shots[i] = Shot{Controller: ctrl.Clone(), Bullet: b}
	}
	return shots
}

func pickController(chain []ChainEntry) controller.Controller {
	for _, entry := range chain[1:] {
		if c := entry.Buff.BulletController(); c != nil {
			return c
		}
	}
	if c := chain[0].Buff.BulletController(); c != nil {
		return c
	}
	return controller.NewStraightLine()
}
