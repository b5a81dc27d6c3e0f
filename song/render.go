package song

import (
	"strings"

	"github.com/jsphweid/chordsheet/chord"
	"github.com/jsphweid/chordsheet/model"
)

// Rendered is the result of a render. Issues are problems that were worked
// around (unknown key, malformed chords); the text is still complete.
type Rendered struct {
	Text     string
	Key      model.PitchClass
	KeyLabel string
	Issues   []error
}

// RenderForDisplay produces the markup fragment for text in ctx.
func RenderForDisplay(text string, ctx Context) (Rendered, error) {
	layout, issues := BuildLayout(text, ctx)
	r := newRendered(ctx)
	r.Text = LayoutHTML(layout)
	r.Issues = issues
	return r, nil
}

// RenderForEdit returns text with its chord lines transposed by ctx.Offset.
// This is what gets edited when editing in the transposed key; saving it makes
// it the new base text. At a whole-octave offset chord lines are left exactly
// as stored, so the round trip is the identity.
func RenderForEdit(text string, ctx Context) (Rendered, error) {
	r := newRendered(ctx)
	if _, err := chord.ResolveBaseKey(ctx.Key); err != nil {
		r.Issues = append(r.Issues, err)
	}

	identity := ctx.Offset%model.NumPitchClasses == 0
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if Classify(l).Kind != model.LineMusic {
			continue
		}
		out, malformed := chord.TransposeLine(l, ctx.Offset, ctx.Spelling)
		for _, m := range malformed {
			m.Line = i + 1
			r.Issues = append(r.Issues, m)
		}
		if !identity {
			lines[i] = out
		}
	}
	r.Text = strings.Join(lines, "\n")
	return r, nil
}

func CurrentKeyLabel(key string, offset int, prefs model.SpellingPreference) string {
	return chord.CurrentKeyLabel(key, offset, prefs)
}

func newRendered(ctx Context) Rendered {
	pc, _ := chord.CurrentKey(ctx.Key, ctx.Offset)
	return Rendered{Key: pc, KeyLabel: chord.Spell(pc, ctx.Spelling)}
}
