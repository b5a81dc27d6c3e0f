package textview

import (
	"testing"

	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/song"
	"github.com/stretchr/testify/assert"
)

func layout(t *testing.T, text string, offset int) song.Layout {
	t.Helper()
	l, _ := song.BuildLayout(text, song.Context{Key: "C", Offset: offset, Spelling: model.AllSharps()})
	return l
}

func TestRenderMerged(t *testing.T) {
	got := Render(layout(t, ".C   G\n Hello there", 2), 80)
	assert.Equal(t, "D   A\nHello there\n", got)
}

func TestRenderMinorChord(t *testing.T) {
	got := Render(layout(t, ".CM G\n ab cd", 1), 0)
	assert.Equal(t, "C#m G#\nab cd\n", got)
}

func TestRenderWideCharacters(t *testing.T) {
	got := Render(layout(t, ".C  G\n 日本語です", 0), 0)
	// two cells per character
	assert.Equal(t, "C     G\n日本語です\n", got)
}

func TestRenderColumnsSideBySide(t *testing.T) {
	text := "[Verse]\nline one\n[===]\nsecond"
	got := Render(layout(t, text, 0), 80)
	assert.Equal(t, "[Verse]    second\nline one\n", got)
}

func TestRenderColumnsWrapWhenNarrow(t *testing.T) {
	text := "[Verse]\nline one\n[===]\nsecond"
	got := Render(layout(t, text, 0), 12)
	assert.Equal(t, "[Verse]\nline one\n------\nsecond\n", got)
}
