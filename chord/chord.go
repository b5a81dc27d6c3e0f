package chord

import (
	"strings"

	"github.com/jsphweid/chordsheet/model"
)

// Parse resolves a chord token to its symbol.
func Parse(tok Token) (model.ChordSymbol, error) {
	var c model.ChordSymbol
	if tok.Kind != TokenChord {
		return c, &MalformedChordError{Token: tok.Text, Column: tok.Start}
	}
	root, ok := ResolveIndex(tok.Spelling())
	if !ok {
		return c, &MalformedChordError{Token: tok.Text, Column: tok.Start}
	}
	c.Root = root
	c.Minor = tok.Minor()
	return c, nil
}

func Name(c model.ChordSymbol, prefs model.SpellingPreference) string {
	name := Spell(c.Root, prefs)
	if c.Minor {
		name += "m"
	}
	return name
}

// Transpose returns the respelled chord. A malformed token comes back
// unchanged together with the error.
func Transpose(tok Token, offset int, prefs model.SpellingPreference) (string, error) {
	c, err := Parse(tok)
	if err != nil {
		return tok.Text, err
	}
	c.Root = ApplyOffset(c.Root, offset)
	return Name(c, prefs), nil
}

// TransposeLine rewrites every chord of a chord line. The result can be longer
// or shorter than the input ("CM" -> "C#m").
func TransposeLine(line string, offset int, prefs model.SpellingPreference) (string, []*MalformedChordError) {
	var sb strings.Builder
	var issues []*MalformedChordError
	sb.Grow(len(line) + 8)

	tz := NewTokenizer(line)
	for tok, ok := tz.Next(); ok; tok, ok = tz.Next() {
		if tok.Kind == TokenLiteral {
			sb.WriteString(tok.Text)
			continue
		}
		out, err := Transpose(tok, offset, prefs)
		if err != nil {
			issues = append(issues, err.(*MalformedChordError))
		}
		sb.WriteString(out)
	}
	return sb.String(), issues
}

// Symbols returns every well formed chord of a chord line in order, transposed.
func Symbols(line string, offset int) []model.ChordSymbol {
	var res []model.ChordSymbol
	for _, tok := range Tokenize(line) {
		if tok.Kind != TokenChord {
			continue
		}
		c, err := Parse(tok)
		if err != nil {
			continue
		}
		c.Root = ApplyOffset(c.Root, offset)
		res = append(res, c)
	}
	return res
}
