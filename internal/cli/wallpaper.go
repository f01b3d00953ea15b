package cli

import (
	"github.com/MatthiasKunnen/gnome-wallpaper/pkg/wallpaper"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(setWallpaperCmd)
}

var setWallpaperCmd = &cobra.Command{
	Use:   "set-wallpaper PATH",
	Short: "Set the desktop wallpaper (light and dark variants)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetWallpaper,
}

func newSetter() *wallpaper.Setter {
	return wallpaper.NewSetter(wallpaper.NewGSettings(), wallpaper.Options{
		Schema: cfg.Wallpaper.Schema,
		Keys:   cfg.Wallpaper.Keys,
		Logger: &logger,
	})
}

func runSetWallpaper(cmd *cobra.Command, args []string) error {
	return newSetter().Set(cmd.Context(), args[0])
}
