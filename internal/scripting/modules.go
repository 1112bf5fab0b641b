package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap/zapcore"

	"github.com/hexspell/roll/internal/dice"
	"github.com/hexspell/roll/internal/expr"
)

// RegisterModules registers the roll.* Lua API into L.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: the roll global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	roll := L.NewTable()
	L.SetField(roll, "eval", L.NewFunction(m.luaEval))
	L.SetField(roll, "dice", L.NewFunction(m.luaDice))

	log := L.NewTable()
	L.SetField(log, "debug", L.NewFunction(m.luaLog(zapcore.DebugLevel)))
	L.SetField(log, "info", L.NewFunction(m.luaLog(zapcore.InfoLevel)))
	L.SetField(log, "warn", L.NewFunction(m.luaLog(zapcore.WarnLevel)))
	L.SetField(log, "error", L.NewFunction(m.luaLog(zapcore.ErrorLevel)))
	L.SetField(roll, "log", log)

	L.SetGlobal("roll", roll)
}

// luaEval implements roll.eval(notation). On success it returns the total as
// a number; on failure it returns nil plus the error message.
func (m *Manager) luaEval(L *lua.LState) int {
	notation := L.CheckString(1)

	k, err := m.evaluator.EvalString(notation)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	total, ok := expr.Total(k)
	if !ok {
		L.Push(lua.LNil)
		L.Push(lua.LString("roll did not reduce to a number"))
		return 2
	}
	L.Push(lua.LNumber(total))
	return 1
}

// luaDice implements roll.dice(quantity, sides). On success it returns the
// rolled faces as an ascending array table; on failure it returns nil plus
// the error message.
func (m *Manager) luaDice(L *lua.LState) int {
	quantity := L.CheckInt(1)
	sides := L.CheckInt(2)

	d, err := dice.New(quantity, sides)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}

	faces := m.roller.Roll(d)
	tbl := L.NewTable()
	for _, f := range faces {
		tbl.Append(lua.LNumber(f))
	}
	L.Push(tbl)
	return 1
}

// luaLog builds a roll.log.* function that logs its argument at level.
func (m *Manager) luaLog(level zapcore.Level) lua.LGFunction {
	return func(L *lua.LState) int {
		msg := L.CheckString(1)
		m.logger.Log(level, msg)
		return 0
	}
}
