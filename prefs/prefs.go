package prefs

import (
	"log/slog"
	"strconv"

	"github.com/jsphweid/chordsheet/constants"
	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/util"
	"github.com/pkg/errors"
)

const (
	CurrentVersion = "0.9"
	OriginalKey    = "ORIGINALKEY"
	TransposedKey  = "TRANSPOSEDKEY"
)

// Prefs mirrors the preferences file. Sizes are stored as strings, that is
// how the file has always carried them.
type Prefs struct {
	Version            string `json:"PREFSVER"`
	SongDir            string `json:"SONGDIR"`
	FontSize           string `json:"DEFAULTFONTSIZE"`
	FontSizePortrait   string `json:"DEFAULTFONTSIZE_PORTRAIT"`
	PageSize           string `json:"DEFAULTPAGESIZE"`
	PageSizePortrait   string `json:"DEFAULTPAGESIZE_PORTRAIT"`
	SharpFlatC         string `json:"SHARPFLAT_C"`
	SharpFlatD         string `json:"SHARPFLAT_D"`
	SharpFlatF         string `json:"SHARPFLAT_F"`
	SharpFlatG         string `json:"SHARPFLAT_G"`
	SharpFlatA         string `json:"SHARPFLAT_A"`
	EditUseOriginalKey string `json:"EDIT_USE_ORIGINALKEY"`
	ProduceLogFiles    int    `json:"PRODUCE_LOG_FILES"`
}

func Default() Prefs {
	return Prefs{
		Version:            CurrentVersion,
		SongDir:            constants.GetSongDir(),
		FontSize:           strconv.Itoa(constants.DefaultFontSize),
		FontSizePortrait:   strconv.Itoa(constants.DefaultFontSizePortrait),
		PageSize:           strconv.Itoa(constants.DefaultPageSize),
		PageSizePortrait:   strconv.Itoa(constants.DefaultPageSizePortrait),
		SharpFlatC:         "C#",
		SharpFlatD:         "D#",
		SharpFlatF:         "F#",
		SharpFlatG:         "G#",
		SharpFlatA:         "A#",
		EditUseOriginalKey: OriginalKey,
	}
}

// Load reads the preferences file at path. A missing file yields the
// defaults and writes them out; keys missing from an older file are filled
// in and the file is upgraded in place.
func Load(path string) (Prefs, error) {
	if !util.FileExists(path) {
		p := Default()
		slog.Info("creating preferences", "path", path)
		if err := util.CreateJSON(path, p); err != nil {
			return p, errors.Wrap(err, "could not create preferences")
		}
		return p, nil
	}

	p, err := util.ReadJSON[Prefs](path)
	if err != nil {
		return Default(), errors.Wrap(err, "could not load preferences")
	}
	if p.upgrade() {
		slog.Info("upgraded preferences", "path", path, "version", p.Version)
		if err := util.CreateJSON(path, p); err != nil {
			return p, errors.Wrap(err, "could not save upgraded preferences")
		}
	}
	return p, nil
}

func Save(path string, p Prefs) error {
	return util.CreateJSON(path, p)
}

// upgrade fills keys that did not exist in older versions. It reports
// whether anything changed.
func (p *Prefs) upgrade() bool {
	d := Default()
	changed := false
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
			changed = true
		}
	}
	fill(&p.SongDir, d.SongDir)
	fill(&p.FontSize, d.FontSize)
	fill(&p.FontSizePortrait, d.FontSizePortrait)
	fill(&p.PageSize, d.PageSize)
	fill(&p.PageSizePortrait, d.PageSizePortrait)
	fill(&p.SharpFlatC, d.SharpFlatC)
	fill(&p.SharpFlatD, d.SharpFlatD)
	fill(&p.SharpFlatF, d.SharpFlatF)
	fill(&p.SharpFlatG, d.SharpFlatG)
	fill(&p.SharpFlatA, d.SharpFlatA)
	fill(&p.EditUseOriginalKey, d.EditUseOriginalKey)
	if p.Version != CurrentVersion {
		p.Version = CurrentVersion
		changed = true
	}
	return changed
}

func accidental(name string) model.Accidental {
	if len(name) == 2 && name[1] == 'b' {
		return model.Flat
	}
	return model.Sharp
}

func (p Prefs) Spelling() model.SpellingPreference {
	return model.SpellingPreference{
		C: accidental(p.SharpFlatC),
		D: accidental(p.SharpFlatD),
		F: accidental(p.SharpFlatF),
		G: accidental(p.SharpFlatG),
		A: accidental(p.SharpFlatA),
	}
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// PageSizeFor is the column height for o. A positive songOverride wins.
func (p Prefs) PageSizeFor(o model.Orientation, songOverride int) int {
	if o == model.Portrait {
		return util.FirstPositive(songOverride, atoiOr(p.PageSizePortrait, constants.DefaultPageSizePortrait))
	}
	return util.FirstPositive(songOverride, atoiOr(p.PageSize, constants.DefaultPageSize))
}

func (p Prefs) FontSizeFor(o model.Orientation, songOverride int) int {
	if o == model.Portrait {
		return util.FirstPositive(songOverride, atoiOr(p.FontSizePortrait, constants.DefaultFontSizePortrait))
	}
	return util.FirstPositive(songOverride, atoiOr(p.FontSize, constants.DefaultFontSize))
}

// EditInTransposedKey reports whether editing should start from the song as
// currently transposed rather than its stored text.
func (p Prefs) EditInTransposedKey() bool {
	return p.EditUseOriginalKey != OriginalKey
}

// PageSizeForSong and FontSizeForSong pick the song's own override for o.
func (p Prefs) PageSizeForSong(o model.Orientation, s model.Song) int {
	if o == model.Portrait {
		return p.PageSizeFor(o, s.PageSizePortrait)
	}
	return p.PageSizeFor(o, s.PageSize)
}

func (p Prefs) FontSizeForSong(o model.Orientation, s model.Song) int {
	if o == model.Portrait {
		return p.FontSizeFor(o, s.FontSizePortrait)
	}
	return p.FontSizeFor(o, s.FontSize)
}
