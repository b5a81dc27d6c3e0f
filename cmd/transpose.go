package cmd

import (
	"fmt"
	"log/slog"

	"github.com/jsphweid/chordsheet/file"
	"github.com/jsphweid/chordsheet/song"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(transposeCmd)
}

var transposeCmd = &cobra.Command{
	Use:   "transpose <song>",
	Short: "Rewrites a song in its current key",
	Long: `Transposes the chord lines of a song file by the offset and saves it with the
new key. The song list entry for the song, if any, goes back to an offset of 0.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSong(args[0])
		if err != nil {
			return err
		}
		ctx, err := songContext(cmd, s)
		if err != nil {
			return err
		}

		res, err := song.RenderForEdit(s.Lyrics, ctx)
		if err != nil {
			return err
		}
		logIssues(res.Issues)

		s.Lyrics = res.Text
		s.Key = res.KeyLabel
		if err := file.Save(&s); err != nil {
			return err
		}
		slog.Info("saved song", "path", s.Path, "key", s.Key)

		list, e, ok := listEntryFor(s.Path)
		if list != nil {
			defer list.Close()
		}
		if ok {
			if err := list.Replace(e.ID, s, 0); err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), s.Key)
		return nil
	},
}
