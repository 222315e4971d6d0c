package builder

import (
	"fmt"

	"github.com/FocuswithJustin/ChordSheet/core/expr"
	"github.com/FocuswithJustin/ChordSheet/core/song"
)

// Context is the state that only matters while a song is being built. It
// is dropped when the song is finished.
type Context struct {
	sections     []openSection
	Fonts        song.FontStack
	CurrentKey   string
	TransposeKey string
}

type openSection struct {
	section song.LineType
	tag     *song.Tag
}

// Section returns the innermost open section, or None.
func (c *Context) Section() song.LineType {
	if len(c.sections) == 0 {
		return song.None
	}
	return c.sections[len(c.sections)-1].section
}

// Depth returns the number of open sections.
func (c *Context) Depth() int { return len(c.sections) }

// Builder assembles a song from tokens or items. The zero value is not
// usable; call New.
type Builder struct {
	song *song.Song
	ctx  Context
	line *song.Line
}

// New creates a builder for an empty song.
func New() *Builder {
	return &Builder{song: &song.Song{}}
}

// Build runs tokens through a new builder and returns the finished song.
func Build(tokens []Token) *song.Song {
	b := New()
	for _, t := range tokens {
		b.Add(t)
	}
	return b.Finish()
}

// Context returns the current build state.
func (b *Builder) Context() *Context { return &b.ctx }

// Add consumes a token. Structural problems are recorded as warnings.
func (b *Builder) Add(t Token) {
	trace := song.Trace{Line: t.Line, Column: t.Column, Offset: t.Offset}
	switch t.Kind {
	case TokenDirective:
		b.AddItemAt(song.NewTagAt(t.Name, t.Value, trace), t.Line)
	case TokenComment:
		b.AddItemAt(song.NewComment(t.Value), t.Line)
	case TokenChordLyricsPair:
		b.AddItemAt(song.NewChordLyricsPair(t.Chords, t.Lyrics), t.Line)
	case TokenText:
		b.AddItemAt(song.NewChordLyricsPair("", t.Lyrics), t.Line)
	case TokenMetaExpression:
		e, err := expr.ParseAt(t.Value, max(t.Line, 1), max(t.Column, 1), t.Offset)
		if err != nil {
			b.song.AddWarning(fmt.Sprintf("Invalid meta expression %s", t.Value), t.Line, t.Column)
			b.AddItemAt(song.NewChordLyricsPair("", t.Value), t.Line)
			return
		}
		b.AddItemAt(song.NewExpression(e), t.Line)
	case TokenNewLine:
		if b.line == nil {
			b.AddLine().Number = t.Line
		}
		b.line = nil
	default:
		b.song.AddWarning(fmt.Sprintf("Unknown token %s", t.Kind), t.Line, t.Column)
	}
}

// AddLine starts a new line carrying the current section, key and fonts.
func (b *Builder) AddLine() *song.Line {
	l := song.NewLine(b.ctx.Section())
	l.Key = b.ctx.CurrentKey
	l.TransposeKey = b.ctx.TransposeKey
	l.TextFont = b.ctx.Fonts.TextFont.Clone()
	l.ChordFont = b.ctx.Fonts.ChordFont.Clone()
	b.line = b.song.AddLine(l)
	return l
}

// AddItem adds an item to the current line, starting one if needed.
func (b *Builder) AddItem(item song.Item) {
	b.AddItemAt(item, 0)
}

// AddItemAt is like AddItem and records the source line number when the
// item starts a new line.
func (b *Builder) AddItemAt(item song.Item, lineNumber int) {
	if b.line == nil {
		b.AddLine().Number = lineNumber
	}
	if tag, ok := item.(*song.Tag); ok {
		b.applyTag(tag)
	}
	b.line.AddItem(item)
}

// EndLine ends the current line. The next item starts a new one.
func (b *Builder) EndLine() {
	b.line = nil
}

func (b *Builder) applyTag(tag *song.Tag) {
	switch {
	case tag.IsSectionStart():
		b.startSection(tag)
	case tag.IsSectionEnd():
		b.endSection(tag)
	case tag.IsInlineFontTag():
		b.ctx.Fonts.ApplyTag(tag)
	case tag.Name() == song.KeyTag, tag.Name() == song.NewKey:
		b.ctx.CurrentKey = tag.Value
		b.line.Key = tag.Value
	case tag.Name() == song.Transpose:
		b.ctx.TransposeKey = tag.Value
	}
}

// startSection opens a section. Opening a section inside another one is
// reported but still nests.
func (b *Builder) startSection(tag *song.Tag) {
	if current := b.ctx.Section(); current != song.None {
		b.warn(tag, fmt.Sprintf("Unexpected tag {%s}, current section is: %s", tag.OriginalName(), current))
	}
	b.ctx.sections = append(b.ctx.sections, openSection{section: tag.SectionType(), tag: tag})
	b.line.Type = tag.SectionType()
}

// endSection closes the innermost section when the tag matches it. A
// mismatched end is reported and leaves the open sections unchanged.
func (b *Builder) endSection(tag *song.Tag) {
	current := b.ctx.Section()
	if current != tag.SectionType() {
		b.warn(tag, fmt.Sprintf("Unexpected tag {%s}, current section is: %s", tag.OriginalName(), current))
		return
	}
	b.ctx.sections = b.ctx.sections[:len(b.ctx.sections)-1]
}

func (b *Builder) warn(tag *song.Tag, message string) {
	b.song.AddWarning(message, tag.Line, tag.Column)
}

// Finish reports sections left open, collects metadata and returns the
// song. The builder must not be used afterwards.
func (b *Builder) Finish() *song.Song {
	for i := len(b.ctx.sections) - 1; i >= 0; i-- {
		open := b.ctx.sections[i]
		b.warn(open.tag, fmt.Sprintf("Unclosed section {%s}, expected {end_of_%s}", open.tag.OriginalName(), open.section))
	}
	b.song.SyncMetadata()
	s := b.song
	b.song, b.line, b.ctx = nil, nil, Context{}
	return s
}
