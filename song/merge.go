package song

import (
	"strings"

	"github.com/jsphweid/chordsheet/chord"
	"github.com/jsphweid/chordsheet/model"
)

// Segment is a run of lyric text. Chord, when set, is shown above the first
// character of Text (or on its own when Text is empty).
type Segment struct {
	Chord string
	Text  string
}

type MergedLine []Segment

// Lyric returns the lyric text without annotations.
func (m MergedLine) Lyric() string {
	var sb strings.Builder
	for _, s := range m {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// MergeLine overlays an already transposed chord line onto the lyric line
// below it. Columns are counted in characters. The chord line is scanned from
// the right so every insertion happens to the right of the columns still to
// be visited. Column 0 holds the '.' marker and never starts a chord.
func MergeLine(chords string, lyric string) MergedLine {
	cr := []rune(chords)
	lr := []rune(lyric)

	// pad both to a common width so chords past the end of the lyric still land
	width := len(cr)
	if len(lr) > width {
		width = len(lr)
	}
	cr = padRunes(cr, width)
	lr = padRunes(lr, width)

	var merged MergedLine
	rest := lr
	end := width - 1
	for end > 0 {
		if cr[end] != ' ' {
			start := end
			for cr[start] != ' ' && start > 0 {
				start--
			}
			col := start + 1
			seg := Segment{Chord: string(cr[col : end+1]), Text: string(rest[col:])}
			merged = append(MergedLine{seg}, merged...)
			rest = rest[:col]
			end = start
		}
		end--
	}
	merged = append(MergedLine{{Text: string(rest)}}, merged...)

	// same as trimming the finished line: the chord markers stop the trim
	merged[0].Text = strings.TrimLeft(merged[0].Text, " ")
	last := len(merged) - 1
	merged[last].Text = strings.TrimRight(merged[last].Text, " ")
	if merged[0].Text == "" && merged[0].Chord == "" && len(merged) > 1 {
		merged = merged[1:]
	}
	return merged
}

func padRunes(r []rune, width int) []rune {
	if len(r) >= width {
		return r
	}
	out := make([]rune, width)
	copy(out, r)
	for i := len(r); i < width; i++ {
		out[i] = ' '
	}
	return out
}

// Merge transposes a music line and combines it with the lyric line that
// follows it, if any. In HTML mode the result is one paragraph with chord
// annotations; otherwise it is the transposed chord line followed by the
// untouched lyric line.
func Merge(music string, lyric *string, offset int, prefs model.SpellingPreference, htmlMode bool) (string, []error) {
	transposed, malformed := chord.TransposeLine(music, offset, prefs)
	issues := make([]error, 0, len(malformed))
	for _, m := range malformed {
		issues = append(issues, m)
	}

	if !htmlMode {
		if lyric == nil {
			return transposed, issues
		}
		return transposed + "\n" + *lyric, issues
	}

	transposed = displayChords(transposed)
	if lyric == nil {
		return blockHTML(chordsOnlyBlock(transposed)), issues
	}
	return blockHTML(Block{Kind: BlockMerged, Segments: MergeLine(transposed, *lyric)}), issues
}

// displayChords applies display-only tweaks to a transposed chord line.
func displayChords(line string) string {
	return strings.ReplaceAll(line, "SUS", "sus")
}

func chordsOnlyBlock(transposed string) Block {
	text := strings.TrimPrefix(transposed, string(musicPrefix))
	return Block{Kind: BlockChords, Text: strings.TrimRight(text, " \t")}
}
