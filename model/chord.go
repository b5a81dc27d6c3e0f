package model

// PitchClass is a semitone index 0-11, C = 0.
type PitchClass uint8

const NumPitchClasses = 12

type Accidental uint8

const (
	Sharp Accidental = iota
	Flat
)

func (a Accidental) String() string {
	if a == Flat {
		return "flat"
	}
	return "sharp"
}

// SpellingPreference picks the spelling of the five black keys. Each field is
// named after the natural below it, so C covers C#/Db.
// The zero value prefers sharps everywhere.
type SpellingPreference struct {
	C Accidental
	D Accidental
	F Accidental
	G Accidental
	A Accidental
}

// For returns the preferred accidental for pc. Naturals always report Sharp,
// the caller never needs an accidental for them.
func (s SpellingPreference) For(pc PitchClass) Accidental {
	switch pc % NumPitchClasses {
	case 1:
		return s.C
	case 3:
		return s.D
	case 6:
		return s.F
	case 8:
		return s.G
	case 10:
		return s.A
	}
	return Sharp
}

func AllSharps() SpellingPreference {
	return SpellingPreference{}
}

func AllFlats() SpellingPreference {
	return SpellingPreference{C: Flat, D: Flat, F: Flat, G: Flat, A: Flat}
}

// ChordSymbol only lives for one render pass, stored text is never rewritten
// with transposed chords.
type ChordSymbol struct {
	Root  PitchClass
	Minor bool
}
