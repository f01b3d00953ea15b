package cli

import (
	"github.com/MatthiasKunnen/gnome-wallpaper/pkg/luamod"
	"github.com/MatthiasKunnen/gnome-wallpaper/pkg/random"
	"github.com/spf13/cobra"
	lua "github.com/yuin/gopher-lua"
)

func init() {
	rootCmd.AddCommand(luaCmd)
}

var luaCmd = &cobra.Command{
	Use:   "lua SCRIPT [ARG...]",
	Short: "Run a Lua script with the lua_gnome_wallpaper module available to require",
	Long: `Run a Lua script with the lua_gnome_wallpaper module available to require.
Extra arguments are passed to the script in the global "arg" table, arg[0] is the script path.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLua,
}

func runLua(cmd *cobra.Command, args []string) error {
	sl, err := screenLockConfig()
	if err != nil {
		return err
	}

	q, closer, err := newQuerier(sl)
	if err != nil {
		return err
	}
	defer closer.Close()

	L := lua.NewState()
	defer L.Close()
	L.SetContext(cmd.Context())

	luamod.Preload(L, luamod.Deps{
		Wallpaper:  newSetter(),
		ScreenLock: q,
		Random:     random.New(),
	})

	argTable := L.NewTable()
	for i, a := range args {
		argTable.RawSetInt(i, lua.LString(a))
	}
	L.SetGlobal("arg", argTable)

	logger.Debug().Str("script", args[0]).Msg("running lua script")
	return L.DoFile(args[0])
}
