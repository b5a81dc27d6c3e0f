package chord

import "strings"

type TokenKind uint8

const (
	TokenLiteral TokenKind = iota
	TokenChord
)

// maxModifiers is how many of '#', 'b', 'M' may follow a root letter.
const maxModifiers = 2

// Token is a byte range [Start, End) of a chord line.
type Token struct {
	Start int
	End   int
	Kind  TokenKind
	Text  string
}

// Minor reports whether the chord carries the 'M' minor marker.
func (t Token) Minor() bool {
	return t.Kind == TokenChord && strings.IndexByte(t.Text[1:], 'M') >= 0
}

// Spelling is the root and accidentals with the minor marker removed.
func (t Token) Spelling() string {
	return strings.ReplaceAll(t.Text, "M", "")
}

func isRoot(c byte) bool {
	return c >= 'A' && c <= 'G'
}

func isModifier(c byte) bool {
	return c == '#' || c == 'b' || c == 'M'
}

// Tokenizer walks one chord line. It is restartable with Reset and never looks
// further ahead than the modifier window.
type Tokenizer struct {
	line string
	pos  int
}

func NewTokenizer(line string) *Tokenizer {
	return &Tokenizer{line: line}
}

func (t *Tokenizer) Reset() {
	t.pos = 0
}

func (t *Tokenizer) Next() (Token, bool) {
	if t.pos >= len(t.line) {
		return Token{}, false
	}
	start := t.pos
	end := start + 1
	kind := TokenLiteral

	if isRoot(t.line[start]) {
		kind = TokenChord
		for n := 0; n < maxModifiers && end < len(t.line) && isModifier(t.line[end]); n++ {
			end++
		}
	} else {
		// roots and UTF-8 continuation bytes never overlap, runs stay on rune boundaries
		for end < len(t.line) && !isRoot(t.line[end]) {
			end++
		}
	}

	t.pos = end
	return Token{Start: start, End: end, Kind: kind, Text: t.line[start:end]}, true
}

func Tokenize(line string) []Token {
	var res []Token
	tz := NewTokenizer(line)
	for {
		tok, ok := tz.Next()
		if !ok {
			return res
		}
		res = append(res, tok)
	}
}
