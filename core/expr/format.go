package expr

import "strings"

var (
	branchEscaper = strings.NewReplacer(`\`, `\\`, `|`, `\|`, `}`, `\}`, `%{`, `\%{`)
	testEscaper   = strings.NewReplacer(`\`, `\\`, `|`, `\|`, `}`, `\}`, `%{`, `\%{`, `=`, `\=`)
)

// String returns the literal text.
func (l *Literal) String() string { return l.Text }

// String renders the ternary back to its %{...} source form.
func (t *Ternary) String() string {
	var sb strings.Builder
	sb.WriteString("%{")
	sb.WriteString(t.Variable)
	if t.HasValueTest {
		sb.WriteString("=")
		sb.WriteString(testEscaper.Replace(t.ValueTest))
	}
	if len(t.True) > 0 || len(t.False) > 0 {
		sb.WriteString("|")
		writeBranch(&sb, t.True)
	}
	if len(t.False) > 0 {
		sb.WriteString("|")
		writeBranch(&sb, t.False)
	}
	sb.WriteString("}")
	return sb.String()
}

// String renders the composite back to source form.
func (c *Composite) String() string {
	var sb strings.Builder
	for _, e := range c.Expressions {
		sb.WriteString(Format(e))
	}
	return sb.String()
}

// Format renders any expression back to source form.
func Format(e Evaluatable) string {
	switch v := e.(type) {
	case *Literal:
		return v.String()
	case *Ternary:
		return v.String()
	case *Composite:
		return v.String()
	default:
		return ""
	}
}

func writeBranch(sb *strings.Builder, exprs []Evaluatable) {
	for _, e := range exprs {
		if l, ok := e.(*Literal); ok {
			sb.WriteString(branchEscaper.Replace(l.Text))
			continue
		}
		sb.WriteString(Format(e))
	}
}
