package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/jsphweid/chordsheet/chord"
	"github.com/jsphweid/chordsheet/db"
	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/songlist"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var catalog bool

func init() {
	listCmd.Flags().BoolVar(&catalog, "catalog", false, "look up artist and copyright in the song catalog")

	listCmd.AddCommand(listAddCmd)
	listCmd.AddCommand(listRemoveCmd)
	listCmd.AddCommand(listTransposeCmd)
	rootCmd.AddCommand(listCmd)
}

// withList loads the song list, runs f and writes back any changes.
func withList(f func(list *songlist.List) error) (err error) {
	list, err := loadList()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := list.Close(); err == nil {
			err = cerr
		}
	}()
	return f(list)
}

// nth resolves a 1 based position on the command line to an entry.
func nth(list *songlist.List, arg string) (model.SongListEntry, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return model.SongListEntry{}, errors.Errorf("%q is not a position in the list", arg)
	}
	entries := list.Entries()
	if n < 1 || n > len(entries) {
		return model.SongListEntry{}, errors.Wrapf(songlist.ErrNotFound, "position %d of %d", n, len(entries))
	}
	return entries[n-1], nil
}

func metadata(entries []model.SongListEntry) map[string]model.SongMetadata {
	c, err := db.Connect()
	if err != nil {
		slog.Warn("catalog unavailable", "err", err)
		return nil
	}
	filenames := make([]string, len(entries))
	for i, e := range entries {
		filenames[i] = filepath.Base(e.Path)
	}
	res, err := c.GetSongMetadatas(filenames)
	if err != nil {
		slog.Warn("catalog lookup failed", "err", err)
	}
	return res
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Shows the song list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sp, err := spellingPreference()
		if err != nil {
			return err
		}
		return withList(func(list *songlist.List) error {
			entries := list.Entries()
			var meta map[string]model.SongMetadata
			if catalog {
				meta = metadata(entries)
			}

			out := cmd.OutOrStdout()
			for i, e := range entries {
				fmt.Fprintf(out, "%3d  %-4s %-3s %s\n", i+1, currentKey(e, sp), signed(e.Offset), e.Song.Title)
				if m, ok := meta[filepath.Base(e.Path)]; ok {
					fmt.Fprintf(out, "     %s, %s, CCLI %s\n", m.Artist, m.Copyright, m.CCLI)
				}
			}
			return nil
		})
	},
}

func currentKey(e model.SongListEntry, sp model.SpellingPreference) string {
	return chord.CurrentKeyLabel(e.Song.Key, e.Offset, sp)
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

var listAddCmd = &cobra.Command{
	Use:   "add <song>...",
	Short: "Appends songs to the list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withList(func(list *songlist.List) error {
			for _, name := range args {
				e, err := list.Add(resolveSong(name))
				if err != nil {
					return err
				}
				slog.Info("added song", "title", e.Song.Title, "position", list.Len())
			}
			return nil
		})
	},
}

var listRemoveCmd = &cobra.Command{
	Use:   "remove <position>",
	Short: "Removes a song from the list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withList(func(list *songlist.List) error {
			e, err := nth(list, args[0])
			if err != nil {
				return err
			}
			return list.Remove(e.ID)
		})
	},
}

var listTransposeCmd = &cobra.Command{
	Use:   "transpose <position> <semitones>",
	Short: "Transposes a song in the list",
	Long: `Transposes a song in the list by a number of semitones. Put -- before a
negative number so it is not taken for a flag.`,
	Example: "  chordsheet list transpose -- 3 -2",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.Errorf("%q is not a number of semitones", args[1])
		}
		sp, err := spellingPreference()
		if err != nil {
			return err
		}
		return withList(func(list *songlist.List) error {
			e, err := nth(list, args[0])
			if err != nil {
				return err
			}
			e, err = list.Transpose(e.ID, delta)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), currentKey(e, sp))
			return nil
		})
	},
}
