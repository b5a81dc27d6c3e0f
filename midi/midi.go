package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/chordsheet/chord"
	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/song"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const TicksPerBeat = 96

type Options struct {
	BPM           float64
	BeatsPerChord int
	Octave        int // octave of the chord root, 4 puts C on middle C
	Channel       uint8
	Velocity      uint8
}

func DefaultOptions() Options {
	return Options{BPM: 90, BeatsPerChord: 4, Octave: 4, Velocity: 90}
}

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, errors.Wrap(err, "error reading midi file")
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, errors.Wrap(err, "error parsing midi file")
	}

	return res, nil
}

// ChordProgression lists every chord of the song's chord lines in order,
// transposed by ctx.Offset. Malformed chords are left out.
func ChordProgression(text string, ctx song.Context) []model.ChordSymbol {
	var res []model.ChordSymbol
	for _, line := range song.Lines(text) {
		if line.Kind != model.LineMusic {
			continue
		}
		res = append(res, chord.Symbols(line.Text, ctx.Offset)...)
	}
	return res
}

// Triad returns the keys of the root position triad for c.
func Triad(c model.ChordSymbol, octave int) ([3]uint8, error) {
	root := (octave+1)*model.NumPitchClasses + int(c.Root)
	third := 4
	if c.Minor {
		third = 3
	}
	if root < 0 || root+7 > 127 {
		return [3]uint8{}, fmt.Errorf("octave %d is out of the midi range", octave)
	}
	return [3]uint8{uint8(root), uint8(root + third), uint8(root + 7)}, nil
}

// WriteProgression writes chords as a single track SMF, one block chord per
// symbol.
func WriteProgression(w io.Writer, chords []model.ChordSymbol, opts Options) error {
	if opts.BPM <= 0 || opts.BeatsPerChord <= 0 {
		return errors.New("tempo and beats per chord must be positive")
	}
	clock := smf.MetricTicks(TicksPerBeat)
	length := clock.Ticks4th() * uint32(opts.BeatsPerChord)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(opts.BPM))
	for _, c := range chords {
		keys, err := Triad(c, opts.Octave)
		if err != nil {
			return err
		}
		for _, k := range keys {
			tr.Add(0, midi.NoteOn(opts.Channel, k, opts.Velocity))
		}
		for i, k := range keys {
			var delta uint32
			if i == 0 {
				delta = length
			}
			tr.Add(delta, midi.NoteOff(opts.Channel, k))
		}
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = clock
	if err := s.Add(tr); err != nil {
		return errors.Wrap(err, "could not add track")
	}
	if _, err := s.WriteTo(w); err != nil {
		return errors.Wrap(err, "could not write midi")
	}
	return nil
}

// WriteProgressionFile is WriteProgression to a new file at path.
func WriteProgressionFile(path string, chords []model.ChordSymbol, opts Options) error {
	buf := new(bytes.Buffer)
	if err := WriteProgression(buf, chords, opts); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0666); err != nil {
		return errors.Wrapf(err, "write failed for %v", path)
	}
	return nil
}
