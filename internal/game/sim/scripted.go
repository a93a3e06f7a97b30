package sim

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/twinstick/internal/scripting"
)

// DecideHook is the Lua global a brain script defines.
//
//	function decide(state)
//	  return { fire = true, reload = false, turn = 0, move_x = 0, move_y = 0 }
//	end
const DecideHook = "decide"

// ScriptedBrain asks a Lua script for its Intent. A script that is missing,
// fails or returns anything but a table yields the zero Intent.
type ScriptedBrain struct {
	mgr    *scripting.Manager
	script string
}

// NewScriptedBrain returns a brain backed by the named script in mgr.
//
// Precondition: mgr must be non-nil.
func NewScriptedBrain(mgr *scripting.Manager, script string) *ScriptedBrain {
	if mgr == nil {
		panic("sim.NewScriptedBrain: manager must not be nil")
	}
	return &ScriptedBrain{mgr: mgr, script: script}
}

// Script returns the script name.
func (b *ScriptedBrain) Script() string { return b.script }

// Think implements Brain.
func (b *ScriptedBrain) Think(v View) Intent {
	ret, err := b.mgr.CallHookTable(b.script, DecideHook, stateFields(v))
	if err != nil {
		return Intent{}
	}
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return Intent{}
	}
	in := Intent{
		Fire:   lua.LVAsBool(tbl.RawGetString("fire")),
		Reload: lua.LVAsBool(tbl.RawGetString("reload")),
		Turn:   float64(lua.LVAsNumber(tbl.RawGetString("turn"))),
	}
	in.Move.X = float64(lua.LVAsNumber(tbl.RawGetString("move_x")))
	in.Move.Y = float64(lua.LVAsNumber(tbl.RawGetString("move_y")))
	return in
}

func stateFields(v View) map[string]lua.LValue {
	self := v.Self
	w := self.Weapon()
	cur := self.Stats().Current()
	fields := map[string]lua.LValue{
		"dt":         lua.LNumber(v.DT),
		"x":          lua.LNumber(self.Position().X),
		"y":          lua.LNumber(self.Position().Y),
		"rotation":   lua.LNumber(self.Rotation()),
		"hp":         lua.LNumber(cur.HitPoints),
		"max_hp":     lua.LNumber(self.Stats().Buffed().HitPoints),
		"coins":      lua.LNumber(self.Coins()),
		"ammo":       lua.LNumber(w.CurrentAmmo()),
		"clip_size":  lua.LNumber(w.ClipSize()),
		"reserve":    lua.LNumber(w.TotalAmmo()),
		"state":      lua.LString(w.State()),
		"can_fire":   lua.LBool(w.CanFire()),
		"jammed":     lua.LBool(w.Jammed()),
		"chain":      lua.LNumber(w.CurrentChain()),
		"chains":     lua.LNumber(w.ChainCount()),
		"has_target": lua.LFalse,
	}
	if v.Target != nil {
		tp := v.Target.Position()
		fields["has_target"] = lua.LTrue
		fields["target_x"] = lua.LNumber(tp.X)
		fields["target_y"] = lua.LNumber(tp.Y)
		fields["target_distance"] = lua.LNumber(tp.Sub(self.Position()).Magnitude())
		fields["target_turn"] = lua.LNumber(aimTurn(self, tp))
	}
	return fields
}
