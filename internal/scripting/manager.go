package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/twinstick/internal/game/dice"
)

type vm struct {
	mu    sync.Mutex
	L     *lua.LState
	limit int
}

// Manager owns one sandboxed LState per loaded script and dispatches hooks.
//
// Manager is safe for concurrent use. Each script's LState is single-threaded;
// calls into the same script are serialised.
type Manager struct {
	mu     sync.RWMutex
	vms    map[string]*vm
	roller *dice.Roller
	logger *zap.Logger
}

// NewManager creates a Manager.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no scripts loaded.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if roller == nil {
		panic("scripting.NewManager: roller must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{
		vms:    make(map[string]*vm),
		roller: roller,
		logger: logger,
	}
}

// LoadScript creates a sandboxed VM named name, registers the engine module and
// executes the file at path. A VM already registered under name is replaced.
//
// Precondition: name must be non-empty.
// Postcondition: the VM is registered; returns an error on Lua load failure.
func (m *Manager) LoadScript(name, path string, instLimit int) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("scripting: reading %q: %w", path, err)
	}
	return m.LoadSource(name, string(src), instLimit)
}

// LoadSource is LoadScript for in-memory source.
func (m *Manager) LoadSource(name, src string, instLimit int) error {
	if name == "" {
		return fmt.Errorf("scripting: script name must not be empty")
	}
	L := NewSandboxedState(instLimit)
	m.RegisterModules(L, name)
	if err := L.DoString(src); err != nil {
		L.Close()
		return fmt.Errorf("scripting: loading %q: %w", name, err)
	}

	m.mu.Lock()
	if old, ok := m.vms[name]; ok {
		old.mu.Lock()
		old.L.Close()
		old.mu.Unlock()
	}
	m.vms[name] = &vm{L: L, limit: instLimit}
	m.mu.Unlock()
	return nil
}

// LoadDir loads every *.lua file in dir, naming each VM after its file name
// without the extension, and returns the names in lexicographic order.
//
// Precondition: dir must be a readable directory.
func (m *Manager) LoadDir(dir string, instLimit int) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".lua" {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".lua")
		if err := m.LoadScript(name, filepath.Join(dir, e.Name()), instLimit); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Has reports whether a script is loaded under name.
func (m *Manager) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.vms[name]
	return ok
}

// CallHook calls the Lua global function hook in the named script with a
// fresh instruction budget. Returns (LNil, nil) if the script or hook does not
// exist. Lua runtime errors, including an exhausted budget, are logged at Warn
// level and swallowed: the hook yields LNil.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(name, hook string, args ...lua.LValue) (lua.LValue, error) {
	return m.call(name, hook, func(*lua.LState) []lua.LValue { return args })
}

// CallHookTable calls hook with a single table argument built from fields.
func (m *Manager) CallHookTable(name, hook string, fields map[string]lua.LValue) (lua.LValue, error) {
	return m.call(name, hook, func(L *lua.LState) []lua.LValue {
		t := L.NewTable()
		for k, v := range fields {
			t.RawSetString(k, v)
		}
		return []lua.LValue{t}
	})
}

func (m *Manager) call(name, hook string, args func(*lua.LState) []lua.LValue) (lua.LValue, error) {
	m.mu.RLock()
	v, ok := m.vms[name]
	m.mu.RUnlock()
	if !ok {
		m.logger.Info("scripting: no VM for script",
			zap.String("script", name),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	fn := v.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	cancel := Budget(v.L, v.limit)
	defer cancel()
	if err := v.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args(v.L)...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("script", name),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := v.L.Get(-1)
	v.L.Pop(1)
	return ret, nil
}

// Close closes every VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, v := range m.vms {
		v.mu.Lock()
		v.L.Close()
		v.mu.Unlock()
		delete(m.vms, name)
	}
}
