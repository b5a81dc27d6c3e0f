package cmd

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jsphweid/chordsheet/constants"
	"github.com/jsphweid/chordsheet/file"
	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/prefs"
	"github.com/jsphweid/chordsheet/song"
	"github.com/jsphweid/chordsheet/songlist"
	"github.com/jsphweid/chordsheet/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	prefsPath   string
	debug       bool
	orientation string
	offset      int
	pageSize    int
	spelling    string

	settings prefs.Prefs
	logFile  *os.File
)

var rootCmd = &cobra.Command{
	Use:   "chordsheet",
	Short: "Chord sheet viewer and transposer",
	Long: `Renders chord sheets (chord lines over lyric lines) in any key, as HTML,
PDF, plain text or MIDI, and serves them over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = prefs.Load(prefsPath)
		initLogger(debug, settings.ProduceLogFiles == 1)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&prefsPath, "prefs", constants.GetPrefsPath(), "preferences file")
	flags.BoolVar(&debug, "debug", false, "debug logging")
	flags.StringVar(&orientation, "orientation", "landscape", "landscape or portrait")
	flags.IntVar(&offset, "offset", 0, "semitones to transpose by, defaults to the song list entry")
	flags.IntVar(&pageSize, "page-size", 0, "lines per column, defaults to the preferences")
	flags.StringVar(&spelling, "spelling", "", "sharps or flats, defaults to the preferences")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// initLogger installs the default slog logger. With toFile set everything is
// also appended to a log file next to the preferences.
func initLogger(debug bool, toFile bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if toFile {
		path := filepath.Join(filepath.Dir(prefsPath), "chordsheet.log")
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0666)
		if err == nil {
			logFile = f
			w = io.MultiWriter(os.Stderr, f)
		}
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	slog.SetDefault(slog.New(h))
}

func songDir() string {
	if settings.SongDir != "" {
		return settings.SongDir
	}
	return constants.GetSongDir()
}

// resolveSong finds a song given on the command line, as a path or relative
// to the song directory.
func resolveSong(name string) string {
	if util.FileExists(name) || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(songDir(), name)
}

func loadSong(name string) (model.Song, error) {
	return file.Load(resolveSong(name))
}

func loadList() (*songlist.List, error) {
	return songlist.Load(constants.GetSongListPath(), songDir())
}

// listEntryFor finds the song list entry for a song file, if any.
func listEntryFor(path string) (*songlist.List, model.SongListEntry, bool) {
	list, err := loadList()
	if err != nil {
		slog.Warn("could not load song list", "err", err)
		return nil, model.SongListEntry{}, false
	}
	for _, e := range list.Entries() {
		if filepath.Clean(e.Song.Path) == filepath.Clean(path) {
			return list, e, true
		}
	}
	return list, model.SongListEntry{}, false
}

func spellingPreference() (model.SpellingPreference, error) {
	switch spelling {
	case "":
		return settings.Spelling(), nil
	case "sharp", "sharps":
		return model.AllSharps(), nil
	case "flat", "flats":
		return model.AllFlats(), nil
	}
	return model.SpellingPreference{}, errors.Errorf("unknown spelling %q, want sharps or flats", spelling)
}

// songContext builds the render context for s from the flags, falling back
// to the song list offset and the preferences.
func songContext(cmd *cobra.Command, s model.Song) (song.Context, error) {
	o, err := model.ParseOrientation(orientation)
	if err != nil {
		return song.Context{}, err
	}
	sp, err := spellingPreference()
	if err != nil {
		return song.Context{}, err
	}

	ctx := song.Context{
		Key:         s.Key,
		Offset:      offset,
		Spelling:    sp,
		Orientation: o,
		PageSize:    settings.PageSizeForSong(o, s),
	}
	if pageSize != 0 {
		ctx.PageSize = util.Max(pageSize, 0)
	}
	if !cmd.Flags().Changed("offset") {
		list, e, ok := listEntryFor(s.Path)
		if list != nil {
			defer list.Close()
		}
		if ok {
			ctx.Offset = e.Offset
		}
	}
	return ctx, nil
}

func logIssues(issues []error) {
	for _, issue := range issues {
		slog.Warn("render issue", "issue", issue)
	}
}
