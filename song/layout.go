package song

import (
	"log/slog"
	"strings"

	"github.com/jsphweid/chordsheet/chord"
	"github.com/jsphweid/chordsheet/model"
)

type BlockKind uint8

const (
	BlockBlank BlockKind = iota
	BlockHeading
	BlockLyric
	BlockChords
	BlockMerged
)

// Block is one output line.
type Block struct {
	Kind     BlockKind
	Text     string     // everything but BlockMerged
	Segments MergedLine // BlockMerged only
	Line     int        // 1-based source line
}

type Column []Block

// Layout is a song split into columns, ready for any of the writers.
type Layout struct {
	Columns []Column
}

func (l *Layout) push(b Block) {
	last := len(l.Columns) - 1
	l.Columns[last] = append(l.Columns[last], b)
}

func (l *Layout) newColumn() {
	l.Columns = append(l.Columns, Column{})
}

// NumBlocks counts blocks over all columns.
func (l Layout) NumBlocks() int {
	n := 0
	for _, c := range l.Columns {
		n += len(c)
	}
	return n
}

// Context carries everything a render depends on besides the text itself.
type Context struct {
	Key         string
	Offset      int
	Spelling    model.SpellingPreference
	Orientation model.Orientation
	PageSize    int
}

// BuildLayout classifies, transposes, merges and paginates text. The returned
// issues never stop the render.
func BuildLayout(text string, ctx Context) (Layout, []error) {
	var issues []error
	if _, err := chord.ResolveBaseKey(ctx.Key); err != nil {
		issues = append(issues, err)
	}

	lines := splitLines(text)
	layout := Layout{Columns: []Column{{}}}
	pager := NewPaginator(ctx.PageSize, ctx.Orientation)

	transpose := func(i int) string {
		out, malformed := chord.TransposeLine(lines[i], ctx.Offset, ctx.Spelling)
		for _, m := range malformed {
			m.Line = i + 1
			slog.Debug("malformed chord", "line", m.Line, "column", m.Column, "token", m.Token)
			issues = append(issues, m)
		}
		return displayChords(out)
	}

	for i := 0; i < len(lines); i++ {
		line := Classify(lines[i])
		var brk bool

		if line.Kind == model.LineBreak {
			pager, brk = pager.Advance(MarkerEvent(line.Scope))
			if brk {
				layout.newColumn()
			}
			continue
		}

		block := Block{Line: i + 1}
		switch line.Kind {
		case model.LineMusic:
			transposed := transpose(i)
			if i+1 < len(lines) && mergeable(lines[i+1]) {
				block.Kind = BlockMerged
				block.Segments = MergeLine(transposed, lines[i+1])
				i++
			} else {
				cb := chordsOnlyBlock(transposed)
				block.Kind, block.Text = cb.Kind, cb.Text
			}
		case model.LineHeading:
			block.Kind = BlockHeading
			block.Text = strings.TrimSpace(line.Text)
		case model.LineBlank:
			block.Kind = BlockBlank
		default:
			block.Kind = BlockLyric
			block.Text = strings.TrimRight(strings.TrimPrefix(line.Text, " "), " \t")
		}

		pager, brk = pager.Advance(LineEvent())
		if brk {
			layout.newColumn()
		}
		layout.push(block)
	}
	return layout, issues
}
