package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the engine table into L:
//
//	engine.log(msg)      logs msg at debug level, tagged with the script name
//	engine.random()      returns a float in [0, 1) from the Manager's roller
//	engine.chance(p)     returns true with probability p
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState, script string) {
	engine := L.NewTable()
	L.SetField(engine, "log", L.NewFunction(func(L *lua.LState) int {
		m.logger.Debug("script log", zap.String("script", script), zap.String("msg", L.CheckString(1)))
		return 0
	}))
	L.SetField(engine, "random", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(m.roller.Float64()))
		return 1
	}))
	L.SetField(engine, "chance", L.NewFunction(func(L *lua.LState) int {
		p := float64(L.CheckNumber(1))
		L.Push(lua.LBool(m.roller.Chance("script "+script, p)))
		return 1
	}))
	L.SetGlobal("engine", engine)
}
