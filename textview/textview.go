// Package textview lays a song out as plain text for a terminal, columns
// side by side and chords on their own row above the lyric.
package textview

import (
	"strings"

	"github.com/jsphweid/chordsheet/song"
	"github.com/jsphweid/chordsheet/util"
	"github.com/mattn/go-runewidth"
)

const (
	gutter    = "   "
	separator = "-"
)

// rows turns one layout column into text rows.
func rows(col song.Column) []string {
	var res []string
	for _, b := range col {
		switch b.Kind {
		case song.BlockBlank:
			res = append(res, "")
		case song.BlockMerged:
			res = append(res, chordRow(b.Segments), strings.TrimRight(b.Segments.Lyric(), " "))
		default:
			res = append(res, b.Text)
		}
	}
	return res
}

// chordRow places every chord above the first cell of its segment. Widths are
// display cells, so wide characters in the lyric keep chords aligned.
func chordRow(segs song.MergedLine) string {
	var sb strings.Builder
	cell, used := 0, 0
	for _, seg := range segs {
		if seg.Chord != "" {
			at := util.Max(cell, used)
			if used > 0 {
				at = util.Max(at, used+1)
			}
			sb.WriteString(strings.Repeat(" ", at-used))
			sb.WriteString(seg.Chord)
			used = at + runewidth.StringWidth(seg.Chord)
		}
		cell += runewidth.StringWidth(seg.Text)
	}
	return sb.String()
}

func columnWidth(rows []string) int {
	w := 0
	for _, r := range rows {
		w = util.Max(w, runewidth.StringWidth(r))
	}
	return w
}

// Render lays the layout out in at most width cells per line. Columns that do
// not fit next to each other continue below a separator. Width zero or less
// means no limit.
func Render(l song.Layout, width int) string {
	var cols [][]string
	var widths []int
	for _, c := range l.Columns {
		r := rows(c)
		cols = append(cols, r)
		widths = append(widths, columnWidth(r))
	}

	var out []string
	for start := 0; start < len(cols); {
		end := start + 1
		total := widths[start]
		for end < len(cols) {
			next := total + len(gutter) + widths[end]
			if width > 0 && next > width {
				break
			}
			total = next
			end++
		}

		if start > 0 {
			sepWidth := total
			if width > 0 {
				sepWidth = util.Min(total, width)
			}
			out = append(out, strings.Repeat(separator, util.Max(1, sepWidth)))
		}
		out = append(out, band(cols[start:end], widths[start:end])...)
		start = end
	}
	return strings.Join(out, "\n") + "\n"
}

// band joins columns side by side.
func band(cols [][]string, widths []int) []string {
	height := 0
	for _, c := range cols {
		height = util.Max(height, len(c))
	}

	res := make([]string, height)
	for i := 0; i < height; i++ {
		var sb strings.Builder
		for j, c := range cols {
			cell := ""
			if i < len(c) {
				cell = c[i]
			}
			if j > 0 {
				sb.WriteString(gutter)
			}
			if j < len(cols)-1 {
				cell = runewidth.FillRight(cell, widths[j])
			}
			sb.WriteString(cell)
		}
		res[i] = strings.TrimRight(sb.String(), " ")
	}
	return res
}
