package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/hexspell/roll/internal/dice"
	"github.com/hexspell/roll/internal/expr"
)

// Manager owns a single sandboxed LState holding every loaded macro and
// dispatches calls into it by global function name.
//
// Manager is safe for concurrent Call after LoadDir completes; the mutex
// serializes access to the single-threaded LState.
type Manager struct {
	mu        sync.Mutex
	state     *lua.LState
	roller    *dice.Roller
	evaluator *expr.Evaluator
	logger    *zap.Logger
}

// NewManager creates a Manager whose roll.* modules draw randomness from src.
//
// Precondition: src and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no macros loaded.
func NewManager(src dice.Source, logger *zap.Logger) *Manager {
	if src == nil {
		panic("scripting: NewManager requires a non-nil source")
	}
	if logger == nil {
		panic("scripting: NewManager requires a non-nil logger")
	}
	return &Manager{
		roller:    dice.NewRoller(src, logger),
		evaluator: expr.NewEvaluator(src, logger),
		logger:    logger,
	}
}

// LoadDir creates a sandboxed VM, registers the roll.* modules, then executes
// every *.lua file in dir in lexicographic order. A successful load replaces
// any previously loaded macros; on error the previous VM stays in place.
//
// Precondition: dir must be a readable directory.
func (m *Manager) LoadDir(dir string, instLimit int) error {
	L := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	entries, err := os.ReadDir(dir)
	if err != nil {
		L.Close()
		return fmt.Errorf("scripting: reading macro dir %q: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	if m.state != nil {
		m.state.Close()
	}
	m.state = L
	m.mu.Unlock()
	return nil
}

// Call invokes the named global macro function and returns its first return
// value. A macro that is not defined, or that raises a Lua runtime error,
// returns a non-nil error; runtime errors are also logged at Warn level.
//
// Precondition: args must be valid lua.LValue instances.
func (m *Manager) Call(name string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == nil {
		return lua.LNil, fmt.Errorf("scripting: no macros loaded")
	}

	fn := m.state.GetGlobal(name)
	if fn == lua.LNil {
		return lua.LNil, fmt.Errorf("scripting: macro %q is not defined", name)
	}

	if err := m.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: macro runtime error",
			zap.String("macro", name),
			zap.Error(err),
		)
		return lua.LNil, fmt.Errorf("scripting: macro %q: %w", name, err)
	}

	ret := m.state.Get(-1)
	m.state.Pop(1)
	return ret, nil
}

// Close releases the macro VM. Calling Close more than once is harmless.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		m.state.Close()
		m.state = nil
	}
}
