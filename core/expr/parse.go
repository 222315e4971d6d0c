package expr

import (
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/ChordSheet/core/errors"
)

// exprGrammar is the participle grammar for text with embedded
// meta-expressions. Examples: "plain", "By %{artist}", "%{a=x|%{}|none}".
//
//nolint:govet // participle grammar tags are not standard struct tags
type exprGrammar struct {
	Parts []*topPart `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type topPart struct {
	Meta *metaGrammar `  @@`
	Text string       `| @(Text | Percent)+`
}

//nolint:govet // participle grammar tags are not standard struct tags
type metaGrammar struct {
	Pos      lexer.Position
	Variable string        `MetaOpen @Chars?`
	HasTest  bool          `( @"="`
	Test     string        `  @(Chars | Escaped | Backslash | Percent)* )?`
	True     []*branchPart `( "|" @@*`
	False    []*branchPart `  ( "|" @@* )? )? "}"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type branchPart struct {
	Meta *metaGrammar `  @@`
	Text string       `| @(Chars | Eq | Escaped | Backslash | Percent)+`
}

// exprLexer switches into the Meta state on "%{" and back out on the
// matching "}". Escapes are only recognised inside meta-expressions.
var exprLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "MetaOpen", Pattern: `%\{`, Action: lexer.Push("Meta")},
		{Name: "Percent", Pattern: `%`},
		{Name: "Text", Pattern: `[^%]+`},
	},
	"Meta": {
		{Name: "MetaOpen", Pattern: `%\{`, Action: lexer.Push("Meta")},
		{Name: "Close", Pattern: `\}`, Action: lexer.Pop()},
		{Name: "Pipe", Pattern: `\|`},
		{Name: "Eq", Pattern: `=`},
		{Name: "Escaped", Pattern: `\\[\\|{}%=]`},
		{Name: "Backslash", Pattern: `\\`},
		{Name: "Percent", Pattern: `%`},
		{Name: "Chars", Pattern: `[^%\\|}=]+`},
	},
})

var exprParser = participle.MustBuild[exprGrammar](
	participle.Lexer(exprLexer),
)

var escapePattern = regexp.MustCompile(`\\([\\|{}%=])`)

func unescape(s string) string {
	return escapePattern.ReplaceAllString(s, "$1")
}

// HasMetaExpression reports whether text contains a meta-expression opener.
func HasMetaExpression(text string) bool {
	return strings.Contains(text, "%{")
}

// Parse parses text with embedded meta-expressions into a Composite.
// Positions recorded on ternaries are relative to text, starting at
// line 1, column 1.
func Parse(text string) (*Composite, error) {
	return ParseAt(text, 1, 1, 0)
}

// ParseAt is like Parse but reports positions as if text started at the
// given line, column and byte offset of a larger document.
func ParseAt(text string, line, column, offset int) (*Composite, error) {
	if text == "" {
		return NewComposite(), nil
	}
	ast, err := exprParser.ParseString("", text)
	if err != nil {
		return nil, &errors.ParseError{Kind: "meta expression", Input: text, Err: err}
	}
	origin := position{line: line, column: column, offset: offset}
	exprs := make([]Evaluatable, 0, len(ast.Parts))
	for _, p := range ast.Parts {
		if p.Meta != nil {
			exprs = append(exprs, p.Meta.toTernary(origin))
			continue
		}
		exprs = append(exprs, NewLiteral(p.Text))
	}
	return NewComposite(exprs...), nil
}

type position struct {
	line, column, offset int
}

func (p position) shift(pos lexer.Position) (int, int, int) {
	col := pos.Column
	if pos.Line == 1 {
		col += p.column - 1
	}
	return p.line + pos.Line - 1, col, p.offset + pos.Offset
}

func (m *metaGrammar) toTernary(origin position) *Ternary {
	t := &Ternary{
		Variable:     strings.TrimSpace(m.Variable),
		HasValueTest: m.HasTest,
		ValueTest:    strings.TrimSpace(unescape(m.Test)),
		True:         branchExprs(m.True, origin),
		False:        branchExprs(m.False, origin),
	}
	t.Line, t.Column, t.Offset = origin.shift(m.Pos)
	return t
}

func branchExprs(parts []*branchPart, origin position) []Evaluatable {
	if len(parts) == 0 {
		return nil
	}
	exprs := make([]Evaluatable, 0, len(parts))
	for _, p := range parts {
		if p.Meta != nil {
			exprs = append(exprs, p.Meta.toTernary(origin))
			continue
		}
		exprs = append(exprs, NewLiteral(unescape(p.Text)))
	}
	return exprs
}
