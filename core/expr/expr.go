// Package expr implements meta-expressions: directive and lyric text that
// embeds conditional references to song metadata, such as
// "%{composer|Written by %{}|Unknown composer}".
package expr

import (
	"strings"

	"github.com/FocuswithJustin/ChordSheet/core/metadata"
)

// Evaluatable is a node of a meta-expression. The set of implementations is
// closed: *Literal, *Ternary and *Composite.
type Evaluatable interface {
	// Evaluate renders the node against the given metadata. Multi-valued
	// entries are joined with separator.
	Evaluate(meta *metadata.Metadata, separator string) string

	// Clone returns a deep copy of the node.
	Clone() Evaluatable

	// evaluate renders the node with context as the value that %{}
	// placeholders resolve to.
	evaluate(meta *metadata.Metadata, separator, context string) string
}

// Literal is verbatim text.
type Literal struct {
	Text string
}

// NewLiteral creates a literal.
func NewLiteral(text string) *Literal {
	return &Literal{Text: text}
}

// Evaluate returns the literal text.
func (l *Literal) Evaluate(_ *metadata.Metadata, _ string) string { return l.Text }

func (l *Literal) evaluate(_ *metadata.Metadata, _, _ string) string { return l.Text }

// Clone returns a copy of the literal.
func (l *Literal) Clone() Evaluatable { return &Literal{Text: l.Text} }

// IsRenderable reports whether the literal renders visible text.
func (l *Literal) IsRenderable() bool { return true }

// Ternary is a conditional reference to a metadata entry:
//
//	%{name}                 the value of name
//	%{name|yes|no}          "yes" when name is set, else "no"
//	%{name=value|yes|no}    "yes" when name equals value, else "no"
//	%{}                     the value of the enclosing ternary's entry
//
// Inside both branches %{} resolves to the value of Variable.
type Ternary struct {
	Variable     string
	ValueTest    string
	HasValueTest bool
	True         []Evaluatable
	False        []Evaluatable

	Line   int
	Column int
	Offset int
}

// Evaluate renders the ternary against meta.
func (t *Ternary) Evaluate(meta *metadata.Metadata, separator string) string {
	return t.evaluate(meta, separator, "")
}

func (t *Ternary) evaluate(meta *metadata.Metadata, separator, context string) string {
	if t.Variable == "" {
		return t.renderTrue(meta, separator, context)
	}

	var value string
	set := false
	if meta != nil {
		if v, ok := meta.Get(t.Variable); ok {
			value = v.Join(separator)
			set = value != ""
		}
	}

	if set && (!t.HasValueTest || value == t.ValueTest) {
		return t.renderTrue(meta, separator, value)
	}
	return evaluateAll(t.False, meta, separator, value)
}

// renderTrue renders the true branch, or the value itself when the branch
// is empty.
func (t *Ternary) renderTrue(meta *metadata.Metadata, separator, value string) string {
	if len(t.True) == 0 {
		return value
	}
	return evaluateAll(t.True, meta, separator, value)
}

// Clone returns a deep copy of the ternary.
func (t *Ternary) Clone() Evaluatable {
	c := *t
	c.True = cloneAll(t.True)
	c.False = cloneAll(t.False)
	return &c
}

// IsRenderable reports whether the ternary renders visible text.
func (t *Ternary) IsRenderable() bool { return true }

// Composite is a concatenation of expressions. When Variable is set, %{}
// placeholders in its children resolve to that text.
type Composite struct {
	Expressions []Evaluatable
	Variable    string
}

// NewComposite creates a composite from expressions.
func NewComposite(expressions ...Evaluatable) *Composite {
	return &Composite{Expressions: expressions}
}

// Evaluate concatenates the evaluated children.
func (c *Composite) Evaluate(meta *metadata.Metadata, separator string) string {
	return evaluateAll(c.Expressions, meta, separator, c.Variable)
}

func (c *Composite) evaluate(meta *metadata.Metadata, separator, context string) string {
	if c.Variable != "" {
		context = c.Variable
	}
	return evaluateAll(c.Expressions, meta, separator, context)
}

// Clone returns a deep copy of the composite.
func (c *Composite) Clone() Evaluatable {
	return &Composite{Expressions: cloneAll(c.Expressions), Variable: c.Variable}
}

// IsRenderable reports whether the composite renders visible text.
func (c *Composite) IsRenderable() bool { return true }

// IsLiteral reports whether the composite holds only literal text, which
// means evaluating it is a no-op.
func (c *Composite) IsLiteral() bool {
	for _, e := range c.Expressions {
		if _, ok := e.(*Literal); !ok {
			return false
		}
	}
	return true
}

func evaluateAll(exprs []Evaluatable, meta *metadata.Metadata, separator, context string) string {
	var sb strings.Builder
	for _, e := range exprs {
		sb.WriteString(e.evaluate(meta, separator, context))
	}
	return sb.String()
}

func cloneAll(exprs []Evaluatable) []Evaluatable {
	if exprs == nil {
		return nil
	}
	out := make([]Evaluatable, len(exprs))
	for i, e := range exprs {
		out[i] = e.Clone()
	}
	return out
}
