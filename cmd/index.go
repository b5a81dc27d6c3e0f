package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jsphweid/chordsheet/file"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "Lists the songs in the song directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := songDir()
		if len(args) == 1 {
			dir = args[0]
		}

		paths, err := file.ListSongs(dir)
		if err != nil {
			return err
		}
		for _, path := range paths {
			s, err := file.Load(path)
			if err != nil {
				slog.Warn("skipping song", "path", path, "err", err)
				continue
			}
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				rel = path
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-4s %-40s %s\n", s.Key, s.Title, rel)
		}
		return nil
	},
}
