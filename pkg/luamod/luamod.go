// Package luamod exposes the wallpaper, directory listing, sleep, random and screen lock
// operations to Lua scripts run by [gopher-lua].
//
// Scripts load the module with require:
//
//	local gw = require("lua_gnome_wallpaper")
//	if not gw.has_screenlock(500) then
//		gw.set_wallpaper("/home/me/Pictures/next.png")
//	end
//
// Failures raise a Lua error, they abort the current call only.
//
// [gopher-lua]: https://github.com/yuin/gopher-lua
package luamod

import (
	"context"
	"github.com/MatthiasKunnen/gnome-wallpaper/pkg/dir"
	"github.com/MatthiasKunnen/gnome-wallpaper/pkg/random"
	"github.com/MatthiasKunnen/gnome-wallpaper/pkg/screenlock"
	"github.com/MatthiasKunnen/gnome-wallpaper/pkg/sleep"
	"github.com/MatthiasKunnen/gnome-wallpaper/pkg/wallpaper"
	lua "github.com/yuin/gopher-lua"
)

const ModuleName = "lua_gnome_wallpaper"

// Deps are the implementations backing the module functions. Nil fields fall back to the
// GNOME/getrandom defaults.
type Deps struct {
	Wallpaper  *wallpaper.Setter
	ScreenLock screenlock.Querier
	Random     *random.Generator
}

type module struct {
	wallpaper  *wallpaper.Setter
	screenLock screenlock.Querier
	random     *random.Generator
}

// Preload makes the module available to require in L.
func Preload(L *lua.LState, deps Deps) {
	L.PreloadModule(ModuleName, Loader(deps))
}

// Loader returns the module loader, for use with [lua.LState.PreloadModule].
func Loader(deps Deps) lua.LGFunction {
	m := &module{
		wallpaper:  deps.Wallpaper,
		screenLock: deps.ScreenLock,
		random:     deps.Random,
	}
	if m.wallpaper == nil {
		m.wallpaper = wallpaper.NewSetter(wallpaper.NewGSettings(), wallpaper.Options{})
	}
	if m.screenLock == nil {
		m.screenLock = screenlock.New(screenlock.Options{})
	}
	if m.random == nil {
		m.random = random.New()
	}

	return func(L *lua.LState) int {
		mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
			"set_wallpaper":  m.setWallpaper,
			"ls":             m.ls,
			"sleep":          m.sleep,
			"random":         m.randomValue,
			"has_screenlock": m.hasScreenLock,
		})
		L.Push(mod)
		return 1
	}
}

func contextOf(L *lua.LState) context.Context {
	if ctx := L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// set_wallpaper(path)
func (m *module) setWallpaper(L *lua.LState) int {
	path := L.CheckString(1)
	if err := m.wallpaper.Set(contextOf(L), path); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// ls(path) -> {name = "DIR"|"FILE"|"LINK"|""}
func (m *module) ls(L *lua.LState) int {
	path := L.CheckString(1)
	entries, err := dir.List(path)
	if err != nil {
		L.RaiseError("%s", err.Error())
	}

	tbl := L.NewTable()
	for name, entryType := range entries {
		tbl.RawSetString(name, lua.LString(entryType))
	}
	L.Push(tbl)
	return 1
}

// sleep(ms)
func (m *module) sleep(L *lua.LState) int {
	ms := L.CheckInt64(1)
	if err := sleep.Millis(ms); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// random([length]) -> string of length bytes, or a number when length is absent or 0
func (m *module) randomValue(L *lua.LState) int {
	n := L.OptInt(1, 0)
	result, err := m.random.Random(n)
	if err != nil {
		L.RaiseError("%s", err.Error())
	}

	if result.IsInt {
		L.Push(lua.LNumber(result.Int))
	} else {
		L.Push(lua.LString(result.Bytes))
	}
	return 1
}

// has_screenlock([timeout_ms]) -> boolean
// An absent or negative timeout uses the querier's default, 0 expires immediately.
func (m *module) hasScreenLock(L *lua.LState) int {
	timeout := screenlock.MillisTimeout(L.OptInt64(1, -1))
	active, err := m.screenLock.Active(contextOf(L), timeout)
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(lua.LBool(active))
	return 1
}
