package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/chordsheet/midi"
	"github.com/jsphweid/chordsheet/pdf"
	"github.com/jsphweid/chordsheet/sample"
	"github.com/jsphweid/chordsheet/song"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/smf"
)

var (
	outPath    string
	columns    int
	bpm        float64
	fromBeat   uint64
	notes      int
	midiSource string
)

func init() {
	pdfCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file, defaults to the song name with .pdf")
	pdfCmd.Flags().IntVar(&columns, "columns", 0, "columns per page, defaults to 2 in landscape and 1 in portrait")

	midiCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file, defaults to the song name with .mid")
	midiCmd.Flags().Float64Var(&bpm, "bpm", midi.DefaultOptions().BPM, "tempo")
	midiCmd.Flags().Uint64Var(&fromBeat, "from", 0, "beat to start the sample at")
	midiCmd.Flags().IntVar(&notes, "notes", 0, "cut the sample after this many notes, 0 keeps everything")
	midiCmd.Flags().StringVar(&midiSource, "source", "", "sample this midi file instead of the song's chords")

	rootCmd.AddCommand(pdfCmd)
	rootCmd.AddCommand(midiCmd)
}

func defaultOut(songPath string, ext string) string {
	if outPath != "" {
		return outPath
	}
	base := filepath.Base(songPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

var pdfCmd = &cobra.Command{
	Use:   "pdf <song>",
	Short: "Exports a song as pdf",
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

		buf := new(bytes.Buffer)
		err = pdf.Write(buf, layout, pdf.Options{
			Title:       s.Title,
			Key:         song.CurrentKeyLabel(s.Key, ctx.Offset, ctx.Spelling),
			Orientation: ctx.Orientation,
			Columns:     columns,
		})
		if err != nil {
			return err
		}

		path := defaultOut(s.Path, ".pdf")
		if err := os.WriteFile(path, buf.Bytes(), 0666); err != nil {
			return errors.Wrapf(err, "write failed for %v", path)
		}
		slog.Info("wrote pdf", "path", path)
		return nil
	},
}

// progression renders the chords of the song as midi in memory.
func progression(text string, ctx song.Context, opts midi.Options) (*smf.SMF, error) {
	buf := new(bytes.Buffer)
	if err := midi.WriteProgression(buf, midi.ChordProgression(text, ctx), opts); err != nil {
		return nil, err
	}
	res, err := smf.ReadFrom(buf)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing midi")
	}
	return res, nil
}

var midiCmd = &cobra.Command{
	Use:   "midi <song>",
	Short: "Exports the chords of a song as midi",
	Long: `Writes the chords of a song, in its current key, as block chords to a midi
file. With --from and --notes only a sample of the progression is kept.`,
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

		opts := midi.DefaultOptions()
		opts.BPM = bpm

		var mf *smf.SMF
		if midiSource != "" {
			mf, err = midi.ReadMidiFile(midiSource)
		} else {
			mf, err = progression(s.Lyrics, ctx, opts)
		}
		if err != nil {
			return err
		}

		if fromBeat > 0 || notes > 0 {
			limit := notes
			if limit <= 0 {
				limit = int(^uint(0) >> 1)
			}
			ticks := uint64(midi.TicksPerBeat) * fromBeat
			if clock, ok := mf.TimeFormat.(smf.MetricTicks); ok {
				ticks = uint64(clock.Resolution()) * fromBeat
			}
			mf = sample.Create(mf, ticks, limit)
		}

		path := defaultOut(s.Path, ".mid")
		if err := mf.WriteFile(path); err != nil {
			return errors.Wrapf(err, "write failed for %v", path)
		}
		slog.Info("wrote midi", "path", path)
		return nil
	},
}
