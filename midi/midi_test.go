package midi

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/song"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"
)

type noteOn struct {
	Tick uint64
	Key  uint8
}

func noteOns(s *smf.SMF) []noteOn {
	var res []noteOn
	for _, tr := range s.Tracks {
		var abs uint64
		for _, ev := range tr {
			abs += uint64(ev.Delta)
			var ch, key, vel uint8
			if ev.Message.GetNoteStart(&ch, &key, &vel) {
				res = append(res, noteOn{abs, key})
			}
		}
	}
	return res
}

func TestChordProgression(t *testing.T) {
	text := "[V]\n.C   AM  G#\n words\nC is not a chord here\n.Fb Bb"
	got := ChordProgression(text, song.Context{Offset: 2})

	assert := assert.New(t)
	assert.Equal([]model.ChordSymbol{
		{Root: 2},
		{Root: 11, Minor: true},
		{Root: 10},
		{Root: 0},
	}, got)
}

func TestTriad(t *testing.T) {
	assert := assert.New(t)
	keys, err := Triad(model.ChordSymbol{Root: 0}, 4)
	assert.NoError(err)
	assert.Equal([3]uint8{60, 64, 67}, keys)

	keys, err = Triad(model.ChordSymbol{Root: 9, Minor: true}, 3)
	assert.NoError(err)
	assert.Equal([3]uint8{57, 60, 64}, keys)

	_, err = Triad(model.ChordSymbol{Root: 11}, 10)
	assert.Error(err)
}

func TestWriteProgression(t *testing.T) {
	chords := []model.ChordSymbol{{Root: 0}, {Root: 9, Minor: true}}
	buf := new(bytes.Buffer)
	err := WriteProgression(buf, chords, DefaultOptions())

	assert := assert.New(t)
	assert.NoError(err)

	s, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	assert.NoError(err)
	assert.Equal(smf.MetricTicks(TicksPerBeat), s.TimeFormat)
	assert.Equal([]noteOn{
		{0, 60}, {0, 64}, {0, 67},
		{384, 69}, {384, 72}, {384, 76},
	}, noteOns(s))
}

func TestWriteProgressionRejectsBadOptions(t *testing.T) {
	err := WriteProgression(new(bytes.Buffer), nil, Options{})
	assert.Error(t, err)
}

func TestReadMidiFile(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "out.mid")
	assert.NoError(WriteProgressionFile(path, []model.ChordSymbol{{Root: 7}}, DefaultOptions()))

	s, err := ReadMidiFile(path)
	assert.NoError(err)
	assert.Len(noteOns(s), 3)

	_, err = ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(err)
}
