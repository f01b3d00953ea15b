package cli

import (
	"encoding/hex"
	"fmt"
	"github.com/MatthiasKunnen/gnome-wallpaper/pkg/random"
	"github.com/spf13/cobra"
	"strconv"
)

func init() {
	rootCmd.AddCommand(randomCmd)
}

var randomCmd = &cobra.Command{
	Use:   "random [LENGTH]",
	Short: "Print LENGTH random bytes as hex, or a random integer when LENGTH is omitted or 0",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRandom,
}

func runRandom(cmd *cobra.Command, args []string) error {
	n := 0
	if len(args) == 1 {
		var err error
		n, err = strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid length %q: %w", args[0], err)
		}
	}

	result, err := random.Random(n)
	if err != nil {
		return err
	}

	if result.IsInt {
		fmt.Fprintln(cmd.OutOrStdout(), result.Int)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(result.Bytes))
	}

	return nil
}
