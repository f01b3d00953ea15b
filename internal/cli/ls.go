package cli

import (
	"fmt"
	"github.com/MatthiasKunnen/gnome-wallpaper/pkg/dir"
	"github.com/spf13/cobra"
	"slices"
)

func init() {
	rootCmd.AddCommand(lsCmd)
}

var lsCmd = &cobra.Command{
	Use:   "ls DIR",
	Short: "List directory entries with their type (DIR, FILE, LINK or -)",
	Args:  cobra.ExactArgs(1),
	RunE:  runLs,
}

func runLs(cmd *cobra.Command, args []string) error {
	entries, err := dir.List(args[0])
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)

	out := cmd.OutOrStdout()
	for _, name := range names {
		entryType := string(entries[name])
		if entryType == "" {
			entryType = "-"
		}
		fmt.Fprintf(out, "%s\t%s\n", entryType, name)
	}

	return nil
}
