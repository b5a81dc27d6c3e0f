package pdf

import (
	"io"
	"unicode/utf8"

	"github.com/jsphweid/chordsheet/model"
	"github.com/jsphweid/chordsheet/song"
	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
)

const (
	// inches
	margin    = 0.5
	columnGap = 0.3

	ptPerInch = 72.0
	lineGrow  = 1.25 // line height over font height

	// courier advance width over font size
	courierWidth = 0.6

	fontFamily = "courier"
)

type rgb struct{ r, g, b int }

var (
	black = rgb{0, 0, 0}
	red   = rgb{200, 0, 0}
	blue  = rgb{0, 0, 255}
)

type Options struct {
	Title       string
	Key         string
	Orientation model.Orientation
	Columns     int     // page columns, zero picks one per orientation
	FontPt      float64 // zero means 12
}

func (o Options) withDefaults() Options {
	if o.FontPt <= 0 {
		o.FontPt = 12
	}
	if o.Columns <= 0 {
		o.Columns = 1
		if o.Orientation == model.Landscape {
			o.Columns = 2
		}
	}
	return o
}

// canvas is the part of gofpdf the writer draws with.
type canvas interface {
	AddPage()
	SetFont(familyStr, styleStr string, size float64)
	SetTextColor(r, g, b int)
	Text(x, y float64, txtStr string)
}

type bounds struct {
	top    float64
	left   float64
	bottom float64
	right  float64
}

func (b bounds) Width() float64 {
	return b.right - b.left
}

func splitBoundsIntoColumns(bnd bounds, n int, gap float64) []bounds {
	width := (bnd.Width() - gap*float64(n-1)) / float64(n)
	res := make([]bounds, n)
	for i := range res {
		left := bnd.left + float64(i)*(width+gap)
		res[i] = bounds{top: bnd.top, left: left, bottom: bnd.bottom, right: left + width}
	}
	return res
}

type writer struct {
	c    canvas
	tr   func(string) string
	opts Options
	page bounds
	cols []bounds
	col  int
	y    float64
}

func newWriter(c canvas, tr func(string) string, opts Options, pageW, pageH float64) *writer {
	return &writer{
		c:    c,
		tr:   tr,
		opts: opts,
		page: bounds{top: margin, left: margin, bottom: pageH - margin, right: pageW - margin},
	}
}

func (w *writer) fontH() float64 {
	return w.opts.FontPt / ptPerInch
}

func (w *writer) lineH() float64 {
	return w.fontH() * lineGrow
}

func (w *writer) charW() float64 {
	return w.fontH() * courierWidth
}

func (w *writer) text(x, y float64, style string, color rgb, s string) {
	w.c.SetFont(fontFamily, style, w.opts.FontPt)
	w.c.SetTextColor(color.r, color.g, color.b)
	w.c.Text(x, y, w.tr(s))
}

func (w *writer) newPage() {
	w.c.AddPage()
	headerPt := w.opts.FontPt * 1.5
	baseline := w.page.top + headerPt/ptPerInch

	w.c.SetFont(fontFamily, "B", headerPt)
	w.c.SetTextColor(black.r, black.g, black.b)
	w.c.Text(w.page.left, baseline, w.tr(w.opts.Title))
	if w.opts.Key != "" {
		label := "Key: " + w.opts.Key
		x := w.page.right - float64(utf8.RuneCountInString(label))*w.charW()
		w.text(x, baseline, "", black, label)
	}

	body := w.page
	body.top = baseline + w.lineH()
	w.cols = splitBoundsIntoColumns(body, w.opts.Columns, columnGap)
	w.col = 0
	w.y = body.top
}

func (w *writer) nextColumn() {
	w.col++
	if w.col >= len(w.cols) {
		w.newPage()
		return
	}
	w.y = w.cols[w.col].top
}

func (w *writer) height(b song.Block) float64 {
	if b.Kind == song.BlockMerged {
		return 2 * w.lineH()
	}
	return w.lineH()
}

func (w *writer) block(b song.Block) {
	h := w.height(b)
	if w.y+h > w.cols[w.col].bottom && w.y > w.cols[w.col].top {
		w.nextColumn()
	}
	left := w.cols[w.col].left
	baseline := w.y + w.fontH()

	switch b.Kind {
	case song.BlockHeading:
		w.text(left, baseline, "B", red, b.Text)
	case song.BlockLyric:
		w.text(left, baseline, "", black, b.Text)
	case song.BlockChords:
		w.text(left, baseline, "BI", blue, b.Text)
	case song.BlockMerged:
		w.merged(left, baseline, b.Segments)
	}
	w.y += h
}

// merged draws chords on one row and the lyric on the row below, each chord
// above the first character of its segment. A chord wider than its segment
// pushes the next one right.
func (w *writer) merged(left, baseline float64, segs song.MergedLine) {
	lyricBaseline := baseline + w.lineH()
	col, nextFree := 0, 0
	for _, seg := range segs {
		if seg.Chord != "" {
			at := col
			if at < nextFree {
				at = nextFree
			}
			w.text(left+float64(at)*w.charW(), baseline, "BI", blue, seg.Chord)
			nextFree = at + utf8.RuneCountInString(seg.Chord) + 1
		}
		col += utf8.RuneCountInString(seg.Text)
	}
	w.text(left, lyricBaseline, "", black, segs.Lyric())
}

func (w *writer) layout(l song.Layout) {
	w.newPage()
	for i, col := range l.Columns {
		if i > 0 {
			w.nextColumn()
		}
		for _, b := range col {
			w.block(b)
		}
	}
}

// Write renders the layout as a PDF on Letter paper. Every layout column
// starts a new page column.
func Write(out io.Writer, l song.Layout, opts Options) error {
	opts = opts.withDefaults()
	orientation := "L"
	if opts.Orientation == model.Portrait {
		orientation = "P"
	}

	pdf := gofpdf.New(orientation, "in", "Letter", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pageW, pageH := pdf.GetPageSize()

	w := newWriter(pdf, pdf.UnicodeTranslatorFromDescriptor(""), opts, pageW, pageH)
	w.layout(l)

	if err := pdf.Output(out); err != nil {
		return errors.Wrap(err, "could not write pdf")
	}
	return nil
}
