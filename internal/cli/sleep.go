package cli

import (
	"fmt"
	"github.com/MatthiasKunnen/gnome-wallpaper/pkg/sleep"
	"github.com/spf13/cobra"
	"strconv"
)

func init() {
	rootCmd.AddCommand(sleepCmd)
}

var sleepCmd = &cobra.Command{
	Use:   "sleep MS",
	Short: "Sleep for the given amount of milliseconds",
	Args:  cobra.ExactArgs(1),
	RunE:  runSleep,
}

func runSleep(_ *cobra.Command, args []string) error {
	ms, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", args[0], err)
	}

	return sleep.Millis(ms)
}
