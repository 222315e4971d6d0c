package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/ChordSheet/core/builder"
	"github.com/FocuswithJustin/ChordSheet/core/song"
)

// contentGrammar is the participle grammar for a ChordPro lyrics line.
// Examples: "Let it [Am]be", "[C]", "Written by %{composer|%{}|nobody}".
//
//nolint:govet // participle grammar tags are not standard struct tags
type contentGrammar struct {
	Segments []*segment `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type segment struct {
	Pos   lexer.Position
	Chord *string    `  @Chord`
	Meta  *metaBlock `| @@`
	Text  string     `| @(Text | Percent | Bracket)+`
}

//nolint:govet // participle grammar tags are not standard struct tags
type metaBlock struct {
	Parts []*metaPart `MetaOpen @@* MetaClose`
}

//nolint:govet // participle grammar tags are not standard struct tags
type metaPart struct {
	Nested *metaBlock `  @@`
	Text   string     `| @(MetaText | Escaped)+`
}

// String returns the source text of the meta-expression.
func (m *metaBlock) String() string {
	var sb strings.Builder
	sb.WriteString("%{")
	for _, p := range m.Parts {
		if p.Nested != nil {
			sb.WriteString(p.Nested.String())
			continue
		}
		sb.WriteString(p.Text)
	}
	sb.WriteString("}")
	return sb.String()
}

// contentLexer keeps meta-expressions whole, including nested ones, so
// that brackets inside them are not taken for chords.
var contentLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Chord", Pattern: `\[[^\]]*\]`},
		{Name: "MetaOpen", Pattern: `%\{`, Action: lexer.Push("Meta")},
		{Name: "Percent", Pattern: `%`},
		{Name: "Bracket", Pattern: `\[`},
		{Name: "Text", Pattern: `[^\[%]+`},
	},
	"Meta": {
		{Name: "MetaOpen", Pattern: `%\{`, Action: lexer.Push("Meta")},
		{Name: "MetaClose", Pattern: `\}`, Action: lexer.Pop()},
		{Name: "Escaped", Pattern: `\\.`},
		{Name: "MetaText", Pattern: `[^%}\\]+|%|\\`},
	},
})

var contentParser = participle.MustBuild[contentGrammar](
	participle.Lexer(contentLexer),
)

// ChordProParser recognizes ChordPro sheets.
type ChordProParser struct{}

// Parse parses a ChordPro sheet.
func (p *ChordProParser) Parse(input string) (*song.Song, error) {
	return build(p, input)
}

// Tokenize recognizes a ChordPro sheet. Directive and comment lines are
// recognized as a whole; other lines go through the content grammar.
// Lines inside tab and grid sections are kept verbatim.
func (p *ChordProParser) Tokenize(input string) ([]builder.Token, error) {
	lines, err := splitLines(input)
	if err != nil {
		return nil, err
	}
	var s tokenStream
	literal := false
	for i, line := range lines {
		number := i + 1
		switch {
		case directiveLinePattern.MatchString(line) && s.directive(line, number):
			tag := song.ParseTag(strings.TrimSpace(line))
			if t := tag.SectionType(); t == song.Tab || t == song.Grid {
				literal = tag.IsSectionStart()
			}
		case line == "":
		case literal:
			s.add(builder.Text(line).At(number, 1, s.offset))
		case strings.HasPrefix(line, "#"):
			s.add(builder.Comment(line[1:]).At(number, 1, s.offset))
		default:
			s.content(line, number)
		}
		s.endLine(number, len(line))
	}
	return s.tokens, nil
}

// content tokenizes a lyrics line. A chord and the text after it become
// one pair. A line the grammar rejects, such as one with an unterminated
// meta-expression, is handed to the builder as a single meta-expression
// so that it is reported and kept as text.
func (s *tokenStream) content(line string, number int) {
	ast, err := contentParser.ParseString("", line)
	if err != nil {
		s.add(builder.MetaExpression(line).At(number, 1, s.offset))
		return
	}
	var pending *builder.Token
	flush := func() {
		if pending != nil {
			s.add(*pending)
			pending = nil
		}
	}
	for _, seg := range ast.Segments {
		column, offset := seg.Pos.Column, s.offset+seg.Pos.Offset
		switch {
		case seg.Chord != nil:
			flush()
			chord := strings.TrimSuffix(strings.TrimPrefix(*seg.Chord, "["), "]")
			t := builder.Pair(chord, "").At(number, column, offset)
			pending = &t
		case seg.Meta != nil:
			flush()
			s.add(builder.MetaExpression(seg.Meta.String()).At(number, column, offset))
		case pending != nil:
			pending.Lyrics += seg.Text
		default:
			s.add(builder.Text(seg.Text).At(number, column, offset))
		}
	}
	flush()
}
