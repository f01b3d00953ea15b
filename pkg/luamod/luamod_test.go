package luamod

import (
	"context"
	"errors"
	"github.com/MatthiasKunnen/gnome-wallpaper/pkg/random"
	"github.com/MatthiasKunnen/gnome-wallpaper/pkg/screenlock"
	"github.com/MatthiasKunnen/gnome-wallpaper/pkg/wallpaper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type querierFunc func(ctx context.Context, timeout time.Duration) (bool, error)

func (f querierFunc) Active(ctx context.Context, timeout time.Duration) (bool, error) {
	return f(ctx, timeout)
}

type memoryStore struct {
	values map[string]string
}

func (s *memoryStore) Open(context.Context, string) (wallpaper.Settings, error) {
	return s, nil
}

func (s *memoryStore) ListKeys(context.Context) ([]string, error) {
	return []string{"picture-options", "picture-uri", "picture-uri-dark"}, nil
}

func (s *memoryStore) SetString(_ context.Context, key string, value string) error {
	s.values[key] = value
	return nil
}

func (s *memoryStore) Sync(context.Context) error {
	return nil
}

func newState(t *testing.T, deps Deps) *lua.LState {
	t.Helper()
	if deps.ScreenLock == nil {
		deps.ScreenLock = querierFunc(func(context.Context, time.Duration) (bool, error) {
			return false, nil
		})
	}
	if deps.Wallpaper == nil {
		deps.Wallpaper = wallpaper.NewSetter(&memoryStore{values: map[string]string{}}, wallpaper.Options{})
	}

	L := lua.NewState()
	t.Cleanup(L.Close)
	Preload(L, deps)
	return L
}

func TestSetWallpaper(t *testing.T) {
	store := &memoryStore{values: map[string]string{}}
	L := newState(t, Deps{Wallpaper: wallpaper.NewSetter(store, wallpaper.Options{})})

	path := filepath.Join(t.TempDir(), "bg.jpg")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	L.SetGlobal("path", lua.LString(path))

	require.NoError(t, L.DoString(`require("lua_gnome_wallpaper").set_wallpaper(path)`))
	assert.Equal(t, map[string]string{
		"picture-uri":      "file://" + path,
		"picture-uri-dark": "file://" + path,
	}, store.values)
}

func TestSetWallpaperMissingFile(t *testing.T) {
	L := newState(t, Deps{})

	err := L.DoString(`
		local gw = require("lua_gnome_wallpaper")
		local ok, err = pcall(gw.set_wallpaper, "/does/not/exist.png")
		assert(not ok)
		assert(string.find(err, "file not exist", 1, true))
	`)
	require.NoError(t, err)
}

func TestLs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "d"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "f"), nil, 0o644))
	require.NoError(t, os.Symlink("f", filepath.Join(root, "l")))

	L := newState(t, Deps{})
	L.SetGlobal("root", lua.LString(root))
	require.NoError(t, L.DoString(`entries = require("lua_gnome_wallpaper").ls(root)`))

	entries := L.GetGlobal("entries").(*lua.LTable)
	assert.Equal(t, lua.LString("DIR"), entries.RawGetString("d"))
	assert.Equal(t, lua.LString("FILE"), entries.RawGetString("f"))
	assert.Equal(t, lua.LString("LINK"), entries.RawGetString("l"))
}

func TestLsMissing(t *testing.T) {
	L := newState(t, Deps{})

	err := L.DoString(`require("lua_gnome_wallpaper").ls("/does/not/exist")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such file or directory: '/does/not/exist'")
}

func TestSleep(t *testing.T) {
	L := newState(t, Deps{})

	start := time.Now()
	require.NoError(t, L.DoString(`require("lua_gnome_wallpaper").sleep(30)`))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestRandom(t *testing.T) {
	L := newState(t, Deps{})

	require.NoError(t, L.DoString(`
		local gw = require("lua_gnome_wallpaper")
		bytes = gw.random(16)
		int = gw.random()
		zero = gw.random(0)
		local ok = pcall(gw.random, 257)
		too_large = ok
	`))

	assert.Len(t, string(L.GetGlobal("bytes").(lua.LString)), 16)
	assert.Equal(t, lua.LTNumber, L.GetGlobal("int").Type())
	assert.Equal(t, lua.LTNumber, L.GetGlobal("zero").Type())
	assert.Equal(t, lua.LFalse, L.GetGlobal("too_large"))
}

func TestRandomFailure(t *testing.T) {
	L := newState(t, Deps{Random: random.NewWithFill(func([]byte) (int, error) {
		return -1, errors.New("no entropy")
	})})

	err := L.DoString(`require("lua_gnome_wallpaper").random(4)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "random: failed")
}

func TestHasScreenLock(t *testing.T) {
	var gotTimeout time.Duration
	L := newState(t, Deps{ScreenLock: querierFunc(func(_ context.Context, timeout time.Duration) (bool, error) {
		gotTimeout = timeout
		return true, nil
	})})

	require.NoError(t, L.DoString(`locked = require("lua_gnome_wallpaper").has_screenlock(250)`))
	assert.Equal(t, lua.LTrue, L.GetGlobal("locked"))
	assert.Equal(t, 250*time.Millisecond, gotTimeout)

	require.NoError(t, L.DoString(`locked = require("lua_gnome_wallpaper").has_screenlock()`))
	assert.Equal(t, screenlock.UseDefaultTimeout, gotTimeout)

	require.NoError(t, L.DoString(`locked = require("lua_gnome_wallpaper").has_screenlock(0)`))
	assert.Equal(t, time.Duration(0), gotTimeout)

	require.NoError(t, L.DoString(`locked = require("lua_gnome_wallpaper").has_screenlock(1e15)`))
	assert.Greater(t, gotTimeout, time.Duration(0))
}

func TestHasScreenLockFailure(t *testing.T) {
	L := newState(t, Deps{ScreenLock: querierFunc(func(context.Context, time.Duration) (bool, error) {
		return false, screenlock.ErrInvalidResult
	})})

	err := L.DoString(`require("lua_gnome_wallpaper").has_screenlock()`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid dbus result")
}
