package cmd

import (
	"fmt"

	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/song"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <song>",
	Short: "Shows how each line of a song is classified",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSong(args[0])
		if err != nil {
			return err
		}
		for i, line := range song.Lines(s.Lyrics) {
			kind := line.Kind.String()
			if line.Kind == model.LineBreak {
				kind = fmt.Sprintf("%v(%v)", kind, line.Scope)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%4d %-12s %q\n", i+1, kind, line.Text)
		}
		return nil
	},
}
