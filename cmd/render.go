package cmd

import (
	"fmt"

	"github.com/jsphweid/chordsheet/chord"
	"github.com/jsphweid/chordsheet/song"
	"github.com/spf13/cobra"
)

var (
	document bool
	keyName  string
)

func init() {
	renderCmd.Flags().BoolVar(&document, "document", false, "wrap the output into a full html page")
	keyCmd.Flags().StringVar(&keyName, "key", "C", "base key")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(editTextCmd)
	rootCmd.AddCommand(keyCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <song>",
	Short: "Renders a song as html",
	Long:  `Renders a song in its current key as html, one element per line with columns split by page size and break markers.`,
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

		res, err := song.RenderForDisplay(s.Lyrics, ctx)
		if err != nil {
			return err
		}
		logIssues(res.Issues)

		out := res.Text
		if document {
			out = song.Document(out, settings.FontSizeForSong(ctx.Orientation, s))
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

var editTextCmd = &cobra.Command{
	Use:   "edit-text <song>",
	Short: "Prints the text to edit",
	Long: `Prints the song text as it should be edited: transposed to the current key when
the preferences say to edit in the transposed key, the stored text otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSong(args[0])
		if err != nil {
			return err
		}
		if !settings.EditInTransposedKey() {
			fmt.Fprint(cmd.OutOrStdout(), s.Lyrics)
			return nil
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
		fmt.Fprint(cmd.OutOrStdout(), res.Text)
		return nil
	},
}

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Prints the key after transposing",
	RunE: func(cmd *cobra.Command, args []string) error {
		sp, err := spellingPreference()
		if err != nil {
			return err
		}
		if _, err := chord.ResolveBaseKey(keyName); err != nil {
			logIssues([]error{err})
		}
		fmt.Fprintln(cmd.OutOrStdout(), chord.CurrentKeyLabel(keyName, offset, sp))
		return nil
	},
}
