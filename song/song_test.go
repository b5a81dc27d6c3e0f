package song

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jsphweid/chordsheet/chord"
	"github.com/jsphweid/chordsheet/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		line  string
		kind  model.LineKind
		scope model.BreakScope
	}{
		{"", model.LineBlank, model.BreakAny},
		{"   \t", model.LineBlank, model.BreakAny},
		{".C  G", model.LineMusic, model.BreakAny},
		{"[Chorus]", model.LineHeading, model.BreakAny},
		{"[===]", model.LineBreak, model.BreakAny},
		{"[=L=]", model.LineBreak, model.BreakLandscapeOnly},
		{"[=P=]  ", model.LineBreak, model.BreakPortraitOnly},
		{" Hello there", model.LineLyric, model.BreakAny},
		{"No leading space", model.LineLyric, model.BreakAny},
		{" .not music", model.LineLyric, model.BreakAny},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%q", c.line), func(t *testing.T) {
			assert := assert.New(t)
			got := Classify(c.line)
			assert.Equal(c.kind, got.Kind)
			assert.Equal(c.scope, got.Scope)
		})
	}
}

func TestPaginatorThreshold(t *testing.T) {
	assert := assert.New(t)
	p := NewPaginator(3, model.Landscape)
	var breaks []int
	for i := 1; i <= 7; i++ {
		var brk bool
		p, brk = p.Advance(LineEvent())
		if brk {
			breaks = append(breaks, i)
		}
	}
	assert.Equal([]int{4, 7}, breaks)
	assert.Equal(1, p.Count)
}

func TestPaginatorMarkers(t *testing.T) {
	assert := assert.New(t)
	p := NewPaginator(0, model.Landscape)
	p, _ = p.Advance(LineEvent())
	p, _ = p.Advance(LineEvent())

	p, brk := p.Advance(MarkerEvent(model.BreakPortraitOnly))
	assert.False(brk)
	assert.Equal(2, p.Count)

	p, brk = p.Advance(MarkerEvent(model.BreakLandscapeOnly))
	assert.True(brk)
	assert.Equal(0, p.Count)

	p, brk = p.Advance(MarkerEvent(model.BreakAny))
	assert.True(brk)

	for i := 0; i < 500; i++ {
		p, brk = p.Advance(LineEvent())
		assert.False(brk)
	}
}

func TestMergeScenario(t *testing.T) {
	assert := assert.New(t)
	lyric := " Hello there"
	out, issues := Merge(".C   G", &lyric, 2, model.AllSharps(), true)
	assert.Empty(issues)
	assert.Equal("<p><em data-chord='D'></em>Hell<em data-chord='A'></em>o&nbsp;there</p>", out)
}

func TestMergeChordsPastLyric(t *testing.T) {
	assert := assert.New(t)
	m := MergeLine(".C      G", " Hi")
	assert.Equal(MergedLine{{Chord: "C", Text: "Hi     "}, {Chord: "G", Text: ""}}, m)
	assert.Equal("Hi     ", m.Lyric())
}

func TestMergeWithoutLyric(t *testing.T) {
	assert := assert.New(t)
	out, _ := Merge(".Asus  E", nil, 0, model.AllSharps(), true)
	assert.Equal("<p class='onlychords'>Asus&nbsp;&nbsp;E</p>", out)

	out, _ = Merge(".C G", nil, 1, model.AllFlats(), false)
	assert.Equal(".Db Ab", out)
}

func TestMergePlainText(t *testing.T) {
	assert := assert.New(t)
	lyric := " la la"
	out, _ := Merge(".C  F", &lyric, 7, model.AllSharps(), false)
	assert.Equal(".G  C\n la la", out)
}

func TestMergeReportsMalformed(t *testing.T) {
	assert := assert.New(t)
	lyric := " words here"
	out, issues := Merge(".C## G", &lyric, 0, model.AllSharps(), true)
	assert.Len(issues, 1)
	assert.True(errors.Is(issues[0], chord.ErrMalformedChordToken))
	assert.Contains(out, "<em data-chord='C##'></em>")
}

func TestRenderForDisplayBreaks(t *testing.T) {
	text := "line one\n[===]\nline two\n[=P=]\nline three"
	cases := []struct {
		orientation model.Orientation
		breaks      int
	}{
		{model.Landscape, 1},
		{model.Portrait, 2},
	}
	for _, c := range cases {
		t.Run(c.orientation.String(), func(t *testing.T) {
			assert := assert.New(t)
			r, err := RenderForDisplay(text, Context{Key: "C", Spelling: model.AllSharps(), Orientation: c.orientation})
			assert.NoError(err)
			assert.Equal(c.breaks, strings.Count(r.Text, columnBreak))
			assert.NotContains(r.Text, "[=")
		})
	}
}

func TestRenderForDisplayPageSize(t *testing.T) {
	assert := assert.New(t)
	var lines []string
	for i := 1; i <= 40; i++ {
		lines = append(lines, fmt.Sprintf("lyric %d", i))
	}
	r, err := RenderForDisplay(strings.Join(lines, "\n"), Context{Key: "G", PageSize: 38, Spelling: model.AllSharps()})
	assert.NoError(err)
	assert.Equal(1, strings.Count(r.Text, columnBreak))

	out := strings.Split(r.Text, "\n")
	assert.Equal(columnBreak, out[38])
	assert.Equal("<p class='nochords'>lyric&nbsp;38</p>", out[37])
	assert.Equal("<p class='nochords'>lyric&nbsp;39</p>", out[39])
}

func TestRenderForDisplayBlocks(t *testing.T) {
	assert := assert.New(t)
	text := "[Verse 1]\n.G    D\n Amazing grace\n\nplain <words>\n.Em"
	r, err := RenderForDisplay(text, Context{Key: "G", Offset: -2, Spelling: model.AllFlats()})
	assert.NoError(err)
	assert.Empty(r.Issues)
	assert.Equal("F", r.KeyLabel)
	assert.Equal(model.PitchClass(5), r.Key)
	assert.Equal(strings.Join([]string{
		"<p class='heading'>[Verse&nbsp;1]</p>",
		"<p><em data-chord='F'></em>Amazi<em data-chord='C'></em>ng&nbsp;grace</p>",
		"<br>",
		"<p class='nochords'>plain&nbsp;&lt;words&gt;</p>",
		"<p class='onlychords'>Dm</p>",
	}, "\n"), r.Text)
}

func TestRenderUnknownKey(t *testing.T) {
	assert := assert.New(t)
	r, err := RenderForDisplay(".C\n x", Context{Key: "H", Offset: 1, Spelling: model.AllSharps()})
	assert.NoError(err)
	assert.Equal("C#", r.KeyLabel)
	assert.Len(r.Issues, 1)
	assert.True(errors.Is(r.Issues[0], chord.ErrUnknownKeyName))
}

func TestRenderForEditRoundTrip(t *testing.T) {
	text := "[Chorus]\n.C##  Dm7   Gsus\n Some words\n\n.Bb/F\nend"
	for _, offset := range []int{0, 12, -24} {
		t.Run(fmt.Sprintf("offset %d", offset), func(t *testing.T) {
			assert := assert.New(t)
			r, err := RenderForEdit(text, Context{Key: "C", Offset: offset, Spelling: model.AllFlats()})
			assert.NoError(err)
			assert.Equal(text, r.Text)
			assert.Len(r.Issues, 1)
		})
	}
}

func TestRenderForEditTransposes(t *testing.T) {
	assert := assert.New(t)
	r, err := RenderForEdit("[Intro]\n.C  Am\n lyrics C stay", Context{Key: "C", Offset: 3, Spelling: model.AllFlats()})
	assert.NoError(err)
	assert.Equal("[Intro]\n.Eb  Cm\n lyrics C stay", r.Text)
	assert.Equal("Eb", r.KeyLabel)
}

func TestDocument(t *testing.T) {
	assert := assert.New(t)
	doc := Document("<br>", 0)
	assert.Contains(doc, "font-size: 25px")
	assert.Contains(doc, "content: attr(data-chord)")
	assert.Contains(doc, "<table><tr><td style='padding:10px'>\n<br>\n</td></tr></table></body></html>")
}
