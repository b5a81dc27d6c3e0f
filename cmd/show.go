package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/chordsheet/song"
	"github.com/jsphweid/chordsheet/textview"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var width int

func init() {
	showCmd.Flags().IntVar(&width, "width", 0, "terminal width, detected when unset")
	rootCmd.AddCommand(showCmd)
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

var showCmd = &cobra.Command{
	Use:   "show <song>",
	Short: "Prints a song to the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSong(args[0])
		if err != nil {
			return err
		}
		ctx, err := songContext(cmd, s)
		if err != nil {
			return err
		}

		layout, issues := song.BuildLayout(s.Lyrics, ctx)
		logIssues(issues)

		w := width
		if w <= 0 {
			w = terminalWidth()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n\n", s.Title, song.CurrentKeyLabel(s.Key, ctx.Offset, ctx.Spelling))
		fmt.Fprint(cmd.OutOrStdout(), textview.Render(layout, w))
		return nil
	},
}
