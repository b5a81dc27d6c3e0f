package song

import (
	"fmt"
	"html"
	"strings"
)

const (
	columnBreak = "</td><td>"
	chordMarker = "<em data-chord='%s'></em>"
)

func blockHTML(b Block) string {
	var line string
	switch b.Kind {
	case BlockBlank:
		return "<br>"
	case BlockHeading:
		line = "<p class='heading'>" + html.EscapeString(b.Text) + "</p>"
	case BlockLyric:
		line = "<p class='nochords'>" + html.EscapeString(b.Text) + "</p>"
	case BlockChords:
		line = "<p class='onlychords'>" + html.EscapeString(b.Text) + "</p>"
	case BlockMerged:
		var sb strings.Builder
		sb.WriteString("<p>")
		for _, seg := range b.Segments {
			if seg.Chord != "" {
				fmt.Fprintf(&sb, chordMarker, html.EscapeString(seg.Chord))
			}
			sb.WriteString(html.EscapeString(seg.Text))
		}
		sb.WriteString("</p>")
		line = sb.String()
	}
	return protectSpaces(line)
}

// protectSpaces swaps every space outside a tag for &nbsp; so runs of spaces
// survive HTML whitespace collapsing.
func protectSpaces(line string) string {
	var sb strings.Builder
	sb.Grow(len(line))
	insideTag := false
	for _, r := range line {
		switch r {
		case '<':
			insideTag = true
		case '>':
			insideTag = false
		}
		if r == ' ' && !insideTag {
			sb.WriteString("&nbsp;")
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// LayoutHTML writes the markup fragment for a layout: one element per line,
// columns separated by a table cell boundary.
func LayoutHTML(l Layout) string {
	var out []string
	for i, col := range l.Columns {
		if i > 0 {
			out = append(out, columnBreak)
		}
		for _, b := range col {
			out = append(out, blockHTML(b))
		}
	}
	return strings.Join(out, "\n")
}

const documentTemplate = `<html>
<head>
<style>
body {
    background-color: #FFFFFF;
    padding-top: 1em;
    font-family: Arial, Helvetica, sans-serif;
    font-size: %[1]dpx;
    margin: 0px;
}
p {
    padding-top: 1em;
    font-family: Arial, Helvetica, sans-serif;
    font-size: %[1]dpx;
    margin: 0px;
}
p.heading {
    padding-top: 0;
    color: red;
    margin: 0px;
    font-size: %[1]dpx;
}
p.nochords {
    padding-top: 0;
    margin: 0px;
    font-size: %[1]dpx;
}
p.onlychords {
    padding-top: 0;
    margin: 0px;
    font-weight: bold;
    font-style: italic;
    color: blue;
    font-size: %[1]dpx;
}
em {
    font-style: normal;
}
em[data-chord]:before {
    position: relative;
    top: -1em;
    display: inline-block;
    content: attr(data-chord);
    width: 0;
    font-weight: bold;
    font-style: italic;
    color: blue;
    font-family: Arial, Helvetica, sans-serif;
    margin-top: 10px;
}
table {
    padding: 0;
    border: 1px solid black;
}
tr {
    padding: 0;
}
td {
    vertical-align: top;
    border: 1px solid black;
}
</style>
</head>
<body><table><tr><td style='padding:10px'>
%[2]s
</td></tr></table></body></html>
`

// Document wraps a display fragment into a standalone page.
func Document(fragment string, fontSize int) string {
	if fontSize <= 0 {
		fontSize = 25
	}
	return fmt.Sprintf(documentTemplate, fontSize, fragment)
}
