// Package serializer converts songs to and from a plain nested form built
// from maps, slices, strings and numbers, suitable for JSON, YAML or
// msgpack.
//
// Every node is a map with a "type" discriminator:
//
//	{type: chordSheet, lines: [...]}
//	{type: line, items: [...]}
//	{type: tag, name, value, location?}
//	{type: comment, comment}
//	{type: chordLyricsPair, chords, lyrics}
//	{type: ternary, variable, valueTest, trueExpression, falseExpression, location?}
//
// Literal expression text is a bare string.
package serializer

import (
	"fmt"

	"github.com/FocuswithJustin/ChordSheet/core/builder"
	"github.com/FocuswithJustin/ChordSheet/core/errors"
	"github.com/FocuswithJustin/ChordSheet/core/expr"
	"github.com/FocuswithJustin/ChordSheet/core/song"
)

// Node type discriminators.
const (
	TypeChordSheet      = "chordSheet"
	TypeLine            = "line"
	TypeTag             = "tag"
	TypeComment         = "comment"
	TypeChordLyricsPair = "chordLyricsPair"
	TypeTernary         = "ternary"
)

// Serialize converts a song to its plain form. Warnings and build state
// are not part of it.
func Serialize(s *song.Song) map[string]any {
	lines := make([]any, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, serializeLine(l))
	}
	return map[string]any{"type": TypeChordSheet, "lines": lines}
}

func serializeLine(l *song.Line) map[string]any {
	items := make([]any, 0, len(l.Items))
	for _, item := range l.Items {
		items = append(items, serializeItem(item)...)
	}
	return map[string]any{"type": TypeLine, "items": items}
}

// serializeItem returns one node per item, except for expressions, which
// contribute one node per part.
func serializeItem(item song.Item) []any {
	switch it := item.(type) {
	case *song.ChordLyricsPair:
		return []any{map[string]any{"type": TypeChordLyricsPair, "chords": it.Chords, "lyrics": it.Lyrics}}
	case *song.Tag:
		node := map[string]any{"type": TypeTag, "name": it.OriginalName(), "value": it.Value}
		if it.Line > 0 {
			node["location"] = location(it.Line, it.Column, it.Offset)
		}
		return []any{node}
	case *song.Comment:
		return []any{map[string]any{"type": TypeComment, "comment": it.Content}}
	case *song.Expression:
		return serializeExpression(it.Expr)
	}
	return nil
}

func serializeExpression(e expr.Evaluatable) []any {
	switch v := e.(type) {
	case *expr.Literal:
		return []any{v.Text}
	case *expr.Ternary:
		return []any{serializeTernary(v)}
	case *expr.Composite:
		return serializeAll(v.Expressions)
	}
	return nil
}

func serializeAll(exprs []expr.Evaluatable) []any {
	out := make([]any, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, serializeExpression(e)...)
	}
	return out
}

func serializeTernary(t *expr.Ternary) map[string]any {
	var valueTest any
	if t.HasValueTest {
		valueTest = t.ValueTest
	}
	var variable any
	if t.Variable != "" {
		variable = t.Variable
	}
	node := map[string]any{
		"type":            TypeTernary,
		"variable":        variable,
		"valueTest":       valueTest,
		"trueExpression":  serializeAll(t.True),
		"falseExpression": serializeAll(t.False),
	}
	if t.Line > 0 {
		node["location"] = location(t.Line, t.Column, t.Offset)
	}
	return node
}

func location(line, column, offset int) map[string]any {
	return map[string]any{"line": line, "column": column, "offset": offset}
}

// Deserialize rebuilds a song from its plain form. Line types, keys and
// fonts are derived again from the directives, so the result matches the
// song that was serialized. Nodes with an unknown type fail with
// errors.ErrUnknownNodeType.
func Deserialize(node map[string]any) (*song.Song, error) {
	if err := expectType(node, TypeChordSheet); err != nil {
		return nil, err
	}
	lines, err := list(node, "lines")
	if err != nil {
		return nil, err
	}

	b := builder.New()
	for i, raw := range lines {
		lineNode, ok := raw.(map[string]any)
		if !ok {
			return nil, errors.NewValidation(fmt.Sprintf("lines[%d]", i), "expected a line node")
		}
		if err := deserializeLine(b, lineNode); err != nil {
			return nil, errors.Wrapf(err, "line %d", i+1)
		}
	}
	return b.Finish(), nil
}

func deserializeLine(b *builder.Builder, node map[string]any) error {
	if err := expectType(node, TypeLine); err != nil {
		return err
	}
	items, err := list(node, "items")
	if err != nil {
		return err
	}
	b.AddLine()
	for _, raw := range items {
		item, err := deserializeItem(raw)
		if err != nil {
			return err
		}
		b.AddItem(item)
	}
	b.EndLine()
	return nil
}

func deserializeItem(raw any) (song.Item, error) {
	if text, ok := raw.(string); ok {
		return song.NewExpression(expr.NewComposite(expr.NewLiteral(text))), nil
	}
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.NewValidation("item", fmt.Sprintf("unexpected %T", raw))
	}
	kind, _ := node["type"].(string)
	switch kind {
	case TypeChordLyricsPair:
		return song.NewChordLyricsPair(str(node, "chords"), str(node, "lyrics")), nil
	case TypeTag:
		line, column, offset := readLocation(node)
		trace := song.Trace{Line: line, Column: column, Offset: offset}
		return song.NewTagAt(str(node, "name"), str(node, "value"), trace), nil
	case TypeComment:
		return song.NewComment(str(node, "comment")), nil
	case TypeTernary:
		t, err := deserializeTernary(node)
		if err != nil {
			return nil, err
		}
		return song.NewExpression(expr.NewComposite(t)), nil
	}
	return nil, errors.NewUnknownNodeType(kind)
}

func deserializeTernary(node map[string]any) (*expr.Ternary, error) {
	t := &expr.Ternary{Variable: str(node, "variable")}
	if v, ok := node["valueTest"].(string); ok {
		t.ValueTest, t.HasValueTest = v, true
	}
	var err error
	if t.True, err = deserializeExpressions(node, "trueExpression"); err != nil {
		return nil, err
	}
	if t.False, err = deserializeExpressions(node, "falseExpression"); err != nil {
		return nil, err
	}
	t.Line, t.Column, t.Offset = readLocation(node)
	return t, nil
}

func deserializeExpressions(node map[string]any, field string) ([]expr.Evaluatable, error) {
	raw, ok := node[field]
	if !ok || raw == nil {
		return nil, nil
	}
	parts, ok := raw.([]any)
	if !ok {
		return nil, errors.NewValidation(field, "expected a list")
	}
	if len(parts) == 0 {
		return nil, nil
	}
	exprs := make([]expr.Evaluatable, 0, len(parts))
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			exprs = append(exprs, expr.NewLiteral(v))
		case map[string]any:
			if kind, _ := v["type"].(string); kind != TypeTernary {
				return nil, errors.NewUnknownNodeType(kind)
			}
			t, err := deserializeTernary(v)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, t)
		default:
			return nil, errors.NewValidation(field, fmt.Sprintf("unexpected %T", p))
		}
	}
	return exprs, nil
}

func expectType(node map[string]any, want string) error {
	kind, _ := node["type"].(string)
	if kind != want {
		return errors.NewUnknownNodeType(kind)
	}
	return nil
}

func list(node map[string]any, field string) ([]any, error) {
	raw, ok := node[field]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, errors.NewValidation(field, "expected a list")
	}
	return items, nil
}

func str(node map[string]any, field string) string {
	s, _ := node[field].(string)
	return s
}

func readLocation(node map[string]any) (line, column, offset int) {
	loc, ok := node["location"].(map[string]any)
	if !ok {
		return 0, 0, 0
	}
	return toInt(loc["line"]), toInt(loc["column"]), toInt(loc["offset"])
}

// toInt accepts the number types the supported decoders produce.
func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint:
		return int(n)
	case uint8:
		return int(n)
	case uint16:
		return int(n)
	case uint32:
		return int(n)
	case uint64:
		return int(n)
	case float32:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
