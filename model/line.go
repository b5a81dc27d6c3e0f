package model

import (
	"fmt"
	"strings"
)

type LineKind uint8

const (
	LineBlank LineKind = iota
	LineMusic
	LineHeading
	LineBreak
	LineLyric
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineMusic:
		return "music"
	case LineHeading:
		return "heading"
	case LineBreak:
		return "break"
	case LineLyric:
		return "lyric"
	}
	return fmt.Sprintf("LineKind(%d)", uint8(k))
}

// BreakScope says in which orientation an explicit break marker applies.
type BreakScope uint8

const (
	BreakAny BreakScope = iota
	BreakLandscapeOnly
	BreakPortraitOnly
)

func (s BreakScope) String() string {
	switch s {
	case BreakLandscapeOnly:
		return "landscape"
	case BreakPortraitOnly:
		return "portrait"
	}
	return "any"
}

type Orientation uint8

const (
	Landscape Orientation = iota
	Portrait
)

func (o Orientation) String() string {
	if o == Portrait {
		return "P"
	}
	return "L"
}

// Honors reports whether a break marker with the given scope applies in o.
func (o Orientation) Honors(scope BreakScope) bool {
	switch scope {
	case BreakAny:
		return true
	case BreakLandscapeOnly:
		return o == Landscape
	case BreakPortraitOnly:
		return o == Portrait
	}
	return false
}

func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "l", "landscape":
		return Landscape, nil
	case "p", "portrait":
		return Portrait, nil
	}
	return Landscape, fmt.Errorf("unknown orientation %q, want landscape or portrait", s)
}

// Line is one classified line of raw song text.
type Line struct {
	Kind  LineKind
	Scope BreakScope // only meaningful for LineBreak
	Text  string
}
