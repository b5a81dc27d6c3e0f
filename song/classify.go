package song

import (
	"strings"

	"github.com/jsphweid/chordsheet/model"
)

const (
	musicPrefix   = '.'
	commandPrefix = '['

	breakAny       = "[===]"
	breakLandscape = "[=L=]"
	breakPortrait  = "[=P=]"
)

func Classify(line string) model.Line {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return model.Line{Kind: model.LineBlank, Text: line}
	case line[0] == musicPrefix:
		return model.Line{Kind: model.LineMusic, Text: line}
	case line[0] == commandPrefix:
		switch trimmed {
		case breakAny:
			return model.Line{Kind: model.LineBreak, Scope: model.BreakAny, Text: line}
		case breakLandscape:
			return model.Line{Kind: model.LineBreak, Scope: model.BreakLandscapeOnly, Text: line}
		case breakPortrait:
			return model.Line{Kind: model.LineBreak, Scope: model.BreakPortraitOnly, Text: line}
		}
		return model.Line{Kind: model.LineHeading, Text: line}
	}
	return model.Line{Kind: model.LineLyric, Text: line}
}

// mergeable reports whether line can carry the chords of the music line above
// it: a lyric line that starts with a space.
func mergeable(line string) bool {
	return Classify(line).Kind == model.LineLyric && strings.HasPrefix(line, " ")
}

// splitLines splits song text on newlines. A trailing carriage return is
// dropped so files edited on Windows classify the same way.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Lines classifies every line of text.
func Lines(text string) []model.Line {
	lines := splitLines(text)
	res := make([]model.Line, len(lines))
	for i, l := range lines {
		res[i] = Classify(l)
	}
	return res
}
