package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jsphweid/chordsheet/chord"
	"github.com/jsphweid/chordsheet/file"
	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/song"
	"github.com/jsphweid/chordsheet/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [dir]",
	Short: "Reports on the songs in the song directory",
	Long: `Counts the songs in the song directory by key and their lines by kind, and
lists the songs with chords that could not be read.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := songDir()
		if len(args) == 1 {
			dir = args[0]
		}
		r, err := analyzeSongs(dir)
		if err != nil {
			return err
		}
		r.write(cmd.OutOrStdout())
		return nil
	},
}

type songsReport struct {
	numSongs    int
	numFailed   int
	songsPerKey map[string]int
	linesByKind map[model.LineKind]int
	issues      map[string]int
}

func analyzeSongs(dir string) (songsReport, error) {
	report := songsReport{
		songsPerKey: make(map[string]int),
		linesByKind: make(map[model.LineKind]int),
		issues:      make(map[string]int),
	}

	paths, err := file.ListSongs(dir)
	if err != nil {
		return report, err
	}
	for _, path := range paths {
		s, err := file.Load(path)
		if err != nil {
			slog.Debug("could not load song", "path", path, "err", err)
			report.numFailed += 1
			continue
		}
		report.numSongs += 1

		key := "?"
		if pc, err := chord.ResolveBaseKey(s.Key); err == nil {
			key = chord.Spell(pc, model.AllSharps())
		}
		report.songsPerKey[key] += 1

		for _, line := range song.Lines(s.Lyrics) {
			report.linesByKind[line.Kind] += 1
			if line.Kind != model.LineMusic {
				continue
			}
			if _, errs := chord.TransposeLine(line.Text, 0, model.AllSharps()); len(errs) > 0 {
				report.issues[path] += len(errs)
			}
		}
	}
	return report, nil
}

func (r songsReport) write(w io.Writer) {
	fmt.Fprintf(w, "songs: %v\n", r.numSongs)
	fmt.Fprintf(w, "unreadable: %v\n", r.numFailed)

	fmt.Fprintln(w, "songs per key:")
	for _, key := range util.GetKeys(r.songsPerKey) {
		fmt.Fprintf(w, "  %-3s %v\n", key, r.songsPerKey[key])
	}

	fmt.Fprintln(w, "lines by kind:")
	counts := make([]int, 0, len(r.linesByKind))
	for _, kind := range util.GetKeys(r.linesByKind) {
		counts = append(counts, r.linesByKind[kind])
		fmt.Fprintf(w, "  %-8v %v\n", kind, r.linesByKind[kind])
	}
	fmt.Fprintf(w, "  total    %v\n", util.Sum(counts))

	if len(r.issues) > 0 {
		fmt.Fprintln(w, "malformed chords:")
		for _, path := range util.GetKeys(r.issues) {
			fmt.Fprintf(w, "  %v %v\n", r.issues[path], path)
		}
	}
}
