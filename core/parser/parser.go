// Package parser recognizes chord sheet text and feeds it to the builder.
//
// Three dialects are supported:
//   - ChordPro: {directives}, # comments and [chords] inline with lyrics
//   - chords over words: a line of chords above the lyrics they belong to,
//     with optional "key: value" frontmatter and "Verse 1:" section headers
//   - Ultimate Guitar: chords over words with [Verse] and [Chorus] headers
//
// Recognizers never fail on badly structured input. Unmatched sections and
// invalid meta-expressions end up as warnings on the song.
package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/FocuswithJustin/ChordSheet/core/builder"
	"github.com/FocuswithJustin/ChordSheet/core/errors"
	"github.com/FocuswithJustin/ChordSheet/core/song"
)

// Format names a chord sheet dialect.
type Format string

// Supported formats.
const (
	ChordPro        Format = "chordpro"
	ChordsOverWords Format = "chords-over-words"
	UltimateGuitar  Format = "ultimate-guitar"
)

// Formats lists the supported formats.
var Formats = []Format{ChordPro, ChordsOverWords, UltimateGuitar}

// Parser turns chord sheet text into a song.
type Parser interface {
	// Tokenize recognizes input without building a song.
	Tokenize(input string) ([]builder.Token, error)
	// Parse recognizes input and builds a song from it.
	Parse(input string) (*song.Song, error)
}

// New returns the parser for format.
func New(format Format) (Parser, error) {
	switch format {
	case ChordPro:
		return &ChordProParser{}, nil
	case ChordsOverWords:
		return &ChordsOverWordsParser{}, nil
	case UltimateGuitar:
		return &UltimateGuitarParser{}, nil
	}
	return nil, errors.NewUnsupported("format "+string(format), "supported formats are chordpro, chords-over-words and ultimate-guitar")
}

var (
	directiveLinePattern = regexp.MustCompile(`^\s*\{.*\}\s*$`)
	inlineChordPattern   = regexp.MustCompile(`\[[^\]\n]+\]`)
)

// Detect guesses the format of input. Ultimate Guitar section headers win
// over inline chords, which win over plain chords over words.
func Detect(input string) Format {
	lines := strings.Split(input, "\n")
	for _, l := range lines {
		if ugHeaderPattern.MatchString(strings.TrimSpace(l)) {
			return UltimateGuitar
		}
	}
	for _, l := range lines {
		if directiveLinePattern.MatchString(l) || inlineChordPattern.MatchString(l) {
			return ChordPro
		}
	}
	return ChordsOverWords
}

// Parse detects the format of input and parses it.
func Parse(input string) (*song.Song, error) {
	p, err := New(Detect(input))
	if err != nil {
		return nil, err
	}
	return p.Parse(input)
}

// splitLines validates and normalizes input, then splits it into lines.
// Line endings become "\n", text is NFC normalized and one trailing line
// break is dropped.
func splitLines(input string) ([]string, error) {
	if !utf8.ValidString(input) {
		return nil, errors.NewValidation("input", "chord sheet is not valid UTF-8")
	}
	input = strings.TrimPrefix(input, "\ufeff")
	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")
	input = norm.NFC.String(input)
	input = strings.TrimSuffix(input, "\n")
	if input == "" {
		return nil, nil
	}
	return strings.Split(input, "\n"), nil
}

// build runs tokens through a builder.
func build(p Parser, input string) (*song.Song, error) {
	tokens, err := p.Tokenize(input)
	if err != nil {
		return nil, err
	}
	return builder.Build(tokens), nil
}

// tokenStream collects tokens and tracks byte offsets of lines.
type tokenStream struct {
	tokens []builder.Token
	offset int
}

func (s *tokenStream) add(t builder.Token) {
	s.tokens = append(s.tokens, t)
}

// endLine terminates a source line of length n at line number.
func (s *tokenStream) endLine(number, n int) {
	s.add(builder.NewLine().At(number, n+1, s.offset+n))
	s.offset += n + 1
}

// directive emits a directive token for a "{...}" line. It reports false
// when the text is not a directive.
func (s *tokenStream) directive(text string, number int) bool {
	tag := song.ParseTag(strings.TrimSpace(text))
	if tag == nil {
		return false
	}
	column := strings.Index(text, "{") + 1
	s.add(builder.Directive(tag.OriginalName(), tag.Value).At(number, column, s.offset+column-1))
	return true
}
