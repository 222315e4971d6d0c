package song

import (
	"strings"

	"github.com/FocuswithJustin/ChordSheet/core/cache"
	"github.com/FocuswithJustin/ChordSheet/core/expr"
	"github.com/FocuswithJustin/ChordSheet/core/metadata"
	"github.com/FocuswithJustin/ChordSheet/core/music"
)

// Item is an element of a Line. The set of implementations is closed:
// *ChordLyricsPair, *Tag, *Comment and *Expression.
type Item interface {
	// IsRenderable reports whether the item shows up in formatted output
	// other than ChordPro.
	IsRenderable() bool

	// Clone returns a deep copy of the item.
	Clone() Item

	isItem()
}

// chordCache is shared by all pairs. Chords are immutable values, so pairs
// with equal chord text share one parsed chord.
var chordCache = cache.NewChordCache(cache.DefaultConfig())

// ChordLyricsPair is a chord and the lyrics that follow it, up to the next
// chord. Either side may be empty.
type ChordLyricsPair struct {
	Chords string
	Lyrics string
}

// NewChordLyricsPair creates a pair.
func NewChordLyricsPair(chords, lyrics string) *ChordLyricsPair {
	return &ChordLyricsPair{Chords: chords, Lyrics: lyrics}
}

// Chord parses the chord text. It returns nil when the text is not a
// chord, such as "N.C." or an annotation.
func (p *ChordLyricsPair) Chord() *music.Chord {
	text := strings.TrimSpace(p.Chords)
	if text == "" {
		return nil
	}
	return chordCache.Parse(text)
}

// IsRenderable always reports true.
func (p *ChordLyricsPair) IsRenderable() bool { return true }

// Clone returns a copy of the pair.
func (p *ChordLyricsPair) Clone() Item {
	c := *p
	return &c
}

// WithChords returns a copy of the pair with different chords.
func (p *ChordLyricsPair) WithChords(chords string) *ChordLyricsPair {
	return &ChordLyricsPair{Chords: chords, Lyrics: p.Lyrics}
}

// WithLyrics returns a copy of the pair with different lyrics.
func (p *ChordLyricsPair) WithLyrics(lyrics string) *ChordLyricsPair {
	return &ChordLyricsPair{Chords: p.Chords, Lyrics: lyrics}
}

// Transpose returns a copy of the pair with its chord moved by delta
// semitones. When key is set the chord is also normalized to that key.
// Text that is not a chord is kept as is.
func (p *ChordLyricsPair) Transpose(delta int, key *music.Key, normalizeSuffix bool) *ChordLyricsPair {
	chord := p.Chord()
	if chord == nil {
		return p.Clone().(*ChordLyricsPair)
	}
	transposed := chord.Transpose(delta)
	if key != nil {
		transposed = transposed.Normalize(key, normalizeSuffix)
	}
	return p.WithChords(transposed.String())
}

// String renders the pair in ChordPro form.
func (p *ChordLyricsPair) String() string {
	if p.Chords == "" {
		return p.Lyrics
	}
	return "[" + p.Chords + "]" + p.Lyrics
}

func (p *ChordLyricsPair) isItem() {}

// Comment is a source comment (# text). Comments are kept in the document
// but never rendered by output formats other than ChordPro.
type Comment struct {
	Content string
}

// NewComment creates a comment.
func NewComment(content string) *Comment {
	return &Comment{Content: content}
}

// IsRenderable always reports false.
func (c *Comment) IsRenderable() bool { return false }

// Clone returns a copy of the comment.
func (c *Comment) Clone() Item {
	cc := *c
	return &cc
}

// String renders the comment in ChordPro form.
func (c *Comment) String() string { return "#" + c.Content }

func (c *Comment) isItem() {}

// Expression is a meta-expression appearing directly in a line, such as
// "%{title|%{}|Untitled}".
type Expression struct {
	Expr expr.Evaluatable
}

// NewExpression wraps a meta-expression as a line item.
func NewExpression(e expr.Evaluatable) *Expression {
	return &Expression{Expr: e}
}

// IsRenderable always reports true.
func (e *Expression) IsRenderable() bool { return true }

// Clone returns a deep copy of the expression.
func (e *Expression) Clone() Item {
	if e.Expr == nil {
		return &Expression{}
	}
	return &Expression{Expr: e.Expr.Clone()}
}

// Evaluate renders the expression against meta.
func (e *Expression) Evaluate(meta *metadata.Metadata, separator string) string {
	if e.Expr == nil {
		return ""
	}
	return e.Expr.Evaluate(meta, separator)
}

// String renders the expression in source form.
func (e *Expression) String() string {
	return expr.Format(e.Expr)
}

func (e *Expression) isItem() {}
