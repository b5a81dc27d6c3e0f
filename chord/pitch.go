package chord

import (
	"strings"

	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/util"
	"github.com/pkg/errors"
)

var sharpNames = [model.NumPitchClasses]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

var flatNames = [model.NumPitchClasses]string{
	"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B",
}

// ResolveIndex looks a note name up in both spelling tables. Names are case
// sensitive and must not carry a quality suffix.
func ResolveIndex(name string) (model.PitchClass, bool) {
	for i := 0; i < model.NumPitchClasses; i++ {
		if sharpNames[i] == name || flatNames[i] == name {
			return model.PitchClass(i), true
		}
	}
	return 0, false
}

// ApplyOffset works for offsets of any sign and size.
func ApplyOffset(base model.PitchClass, offset int) model.PitchClass {
	reduced := util.Mod(offset, model.NumPitchClasses)
	return model.PitchClass(util.Mod(int(base)+reduced, model.NumPitchClasses))
}

func Spell(pc model.PitchClass, prefs model.SpellingPreference) string {
	pc = pc % model.NumPitchClasses
	if prefs.For(pc) == model.Flat {
		return flatNames[pc]
	}
	return sharpNames[pc]
}

// ResolveBaseKey resolves the key a song is stored in. A song with no key or
// an unrecognised one is treated as C; the error still reports the problem so
// the caller can surface it.
func ResolveBaseKey(name string) (model.PitchClass, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, errors.Wrap(ErrUnknownKeyName, "song has no key")
	}
	pc, ok := ResolveIndex(trimmed)
	if !ok {
		return 0, errors.Wrapf(ErrUnknownKeyName, "%q", trimmed)
	}
	return pc, nil
}

// CurrentKey is the key the song sounds in after applying offset.
func CurrentKey(key string, offset int) (model.PitchClass, error) {
	base, err := ResolveBaseKey(key)
	return ApplyOffset(base, offset), err
}

func CurrentKeyLabel(key string, offset int, prefs model.SpellingPreference) string {
	pc, _ := CurrentKey(key, offset)
	return Spell(pc, prefs)
}
