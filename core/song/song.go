// Package song holds the chord sheet document model: a Song is an ordered
// list of Lines, each holding Items (chord/lyrics pairs, directives,
// comments and meta-expressions).
//
// Songs built by the builder package are treated as immutable. Every
// transformation (Transpose, ChangeKey, ChangeMetadata, MapItems, ...)
// returns a new Song and leaves the receiver untouched.
package song

import (
	"strconv"

	"github.com/FocuswithJustin/ChordSheet/core/metadata"
	"github.com/FocuswithJustin/ChordSheet/core/music"
)

// Song is a parsed chord sheet.
type Song struct {
	Lines    []*Line
	Warnings []Warning

	metadata *metadata.Metadata
}

// New creates a song from lines. Metadata is collected from the meta
// directives in the lines.
func New(lines ...*Line) *Song {
	s := &Song{Lines: lines}
	s.SyncMetadata()
	return s
}

// AddLine appends a line and returns it.
func (s *Song) AddLine(l *Line) *Line {
	s.Lines = append(s.Lines, l)
	return l
}

// AddWarning records a non-fatal problem.
func (s *Song) AddWarning(message string, line, column int) {
	s.Warnings = append(s.Warnings, Warning{Message: message, Line: line, Column: column})
}

// SyncMetadata rebuilds the metadata from the meta directives in document
// order. Repeated directives accumulate values.
func (s *Song) SyncMetadata() {
	m := metadata.New()
	for _, l := range s.Lines {
		for _, t := range l.Tags() {
			if t.IsMetaTag() {
				m.Add(t.Name(), t.Value)
			}
		}
	}
	s.metadata = m
}

// Metadata returns a copy of the song metadata.
func (s *Song) Metadata() *metadata.Metadata {
	return s.meta().Clone()
}

// GetMetadata looks up a metadata value. See metadata.Metadata.Get for the
// supported name forms.
func (s *Song) GetMetadata(name string) (metadata.Value, bool) {
	return s.meta().Get(name)
}

// GetSingleMetadata returns the first value of name, or "".
func (s *Song) GetSingleMetadata(name string) string {
	return s.meta().GetSingle(name)
}

func (s *Song) meta() *metadata.Metadata {
	if s.metadata == nil {
		return metadata.New()
	}
	return s.metadata
}

// Title returns the {title} value.
func (s *Song) Title() string { return s.GetSingleMetadata(Title) }

// Subtitle returns the {subtitle} value.
func (s *Song) Subtitle() string { return s.GetSingleMetadata(Subtitle) }

// Artist returns the first {artist} value.
func (s *Song) Artist() string { return s.GetSingleMetadata(Artist) }

// Composer returns the first {composer} value.
func (s *Song) Composer() string { return s.GetSingleMetadata(Composer) }

// Lyricist returns the first {lyricist} value.
func (s *Song) Lyricist() string { return s.GetSingleMetadata(Lyricist) }

// Album returns the first {album} value.
func (s *Song) Album() string { return s.GetSingleMetadata(Album) }

// Year returns the {year} value.
func (s *Song) Year() string { return s.GetSingleMetadata(Year) }

// Key returns the {key} value.
func (s *Song) Key() string { return s.GetSingleMetadata(KeyTag) }

// Tempo returns the {tempo} value.
func (s *Song) Tempo() string { return s.GetSingleMetadata(Tempo) }

// Time returns the {time} value.
func (s *Song) Time() string { return s.GetSingleMetadata(Time) }

// Duration returns the {duration} value.
func (s *Song) Duration() string { return s.GetSingleMetadata(Duration) }

// Copyright returns the {copyright} value.
func (s *Song) Copyright() string { return s.GetSingleMetadata(Copyright) }

// Capo returns the {capo} value as a number of frets, or 0.
func (s *Song) Capo() int {
	n, err := strconv.Atoi(s.GetSingleMetadata(Capo))
	if err != nil {
		return 0
	}
	return n
}

func (s *Song) key() *music.Key {
	return music.ParseKey(s.Key())
}

// Clone returns a deep copy of the song.
func (s *Song) Clone() *Song {
	c := &Song{
		Lines:    make([]*Line, len(s.Lines)),
		Warnings: append([]Warning(nil), s.Warnings...),
		metadata: s.Metadata(),
	}
	for i, l := range s.Lines {
		c.Lines[i] = l.Clone()
	}
	return c
}

// Paragraphs groups the lines into paragraphs. Empty lines separate
// paragraphs. Lines that render nothing, such as lines holding only meta
// directives, are left out, and paragraphs left empty are dropped.
func (s *Song) Paragraphs() []*Paragraph {
	return linesToParagraphs(s.Lines)
}

// BodyLines returns the lines after the leading run of lines that render
// nothing, usually the header of meta directives.
func (s *Song) BodyLines() []*Line {
	for i, l := range s.Lines {
		if l.HasRenderableItems() {
			return s.Lines[i:]
		}
	}
	return nil
}

// BodyParagraphs returns the paragraphs of BodyLines.
func (s *Song) BodyParagraphs() []*Paragraph {
	return linesToParagraphs(s.BodyLines())
}

// ExpandedBodyParagraphs is like BodyParagraphs, with a copy of the most
// recent chorus inserted after every {chorus} directive.
func (s *Song) ExpandedBodyParagraphs() []*Paragraph {
	var lines []*Line
	for i, l := range s.Lines {
		lines = append(lines, l)
		if l.HasTag(ChorusTag) {
			lines = append(lines, s.lastChorusBefore(i)...)
		}
	}
	for i, l := range lines {
		if l.HasRenderableItems() {
			return linesToParagraphs(lines[i:])
		}
	}
	return nil
}

// lastChorusBefore returns copies of the closest run of chorus lines above
// index.
func (s *Song) lastChorusBefore(index int) []*Line {
	var chorus []*Line
	for i := index - 1; i >= 0; i-- {
		l := s.Lines[i]
		if l.Type == Chorus {
			chorus = append([]*Line{l.Clone()}, chorus...)
		} else if len(chorus) > 0 {
			break
		}
	}
	return chorus
}

func linesToParagraphs(lines []*Line) []*Paragraph {
	var paragraphs []*Paragraph
	current := &Paragraph{}
	for _, l := range lines {
		switch {
		case l.IsEmpty():
			if len(current.Lines) > 0 {
				paragraphs = append(paragraphs, current)
			}
			current = &Paragraph{}
		case l.HasRenderableItems():
			current.AddLine(l)
		}
	}
	if len(current.Lines) > 0 {
		paragraphs = append(paragraphs, current)
	}
	return paragraphs
}
