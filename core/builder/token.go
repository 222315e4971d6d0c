// Package builder turns the token stream produced by a chord sheet
// recognizer into a song.Song, tracking section nesting, fonts and keys
// while it goes.
package builder

import "fmt"

// TokenKind identifies the payload of a Token.
type TokenKind int

// Token kinds.
const (
	// TokenDirective carries Name and Value of a {name: value} directive.
	TokenDirective TokenKind = iota
	// TokenComment carries the comment text in Value.
	TokenComment
	// TokenChordLyricsPair carries Chords and the Lyrics that follow.
	TokenChordLyricsPair
	// TokenText carries lyrics without a chord in Lyrics.
	TokenText
	// TokenMetaExpression carries %{...} source text in Value.
	TokenMetaExpression
	// TokenNewLine ends the current line.
	TokenNewLine
)

var tokenKindNames = map[TokenKind]string{
	TokenDirective:       "directive",
	TokenComment:         "comment",
	TokenChordLyricsPair: "chordLyricsPair",
	TokenText:            "text",
	TokenMetaExpression:  "metaExpression",
	TokenNewLine:         "newLine",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one recognized element of a chord sheet. Line and Column are
// 1-based; zero means unknown.
type Token struct {
	Kind   TokenKind
	Name   string
	Value  string
	Chords string
	Lyrics string

	Line   int
	Column int
	Offset int
}

// Directive creates a directive token.
func Directive(name, value string) Token {
	return Token{Kind: TokenDirective, Name: name, Value: value}
}

// Comment creates a comment token.
func Comment(text string) Token {
	return Token{Kind: TokenComment, Value: text}
}

// Pair creates a chord/lyrics token.
func Pair(chords, lyrics string) Token {
	return Token{Kind: TokenChordLyricsPair, Chords: chords, Lyrics: lyrics}
}

// Text creates a lyrics-only token.
func Text(lyrics string) Token {
	return Token{Kind: TokenText, Lyrics: lyrics}
}

// MetaExpression creates a meta-expression token.
func MetaExpression(source string) Token {
	return Token{Kind: TokenMetaExpression, Value: source}
}

// NewLine creates a line terminator token.
func NewLine() Token {
	return Token{Kind: TokenNewLine}
}

// At returns a copy of the token with its source position set.
func (t Token) At(line, column, offset int) Token {
	t.Line, t.Column, t.Offset = line, column, offset
	return t
}
