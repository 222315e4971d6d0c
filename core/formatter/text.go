package formatter

import (
	"strings"
	"unicode/utf8"

	"github.com/FocuswithJustin/ChordSheet/core/song"
)

// TextFormatter renders a song as plain text with chords above the lyrics:
//
//	LET IT BE
//
//	       Am         C/G
//	Let it be, let it be
//
// Meta directives and comments (#) are left out. Comment directives and
// section labels are printed as text.
type TextFormatter struct {
	Config song.Configuration
}

// Format renders s as plain text.
func (f *TextFormatter) Format(s *song.Song) string {
	paragraphs := bodyParagraphs(s, f.Config)
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		out = append(out, f.formatParagraph(p, s))
	}
	return f.formatHeader(s) + strings.Join(out, "\n\n")
}

func (f *TextFormatter) formatHeader(s *song.Song) string {
	var header string
	if title := s.Title(); title != "" {
		header += strings.ToUpper(title) + "\n"
	}
	if subtitle := s.Subtitle(); subtitle != "" {
		header += subtitle + "\n"
	}
	if header != "" {
		header += "\n"
	}
	return header
}

func (f *TextFormatter) formatParagraph(p *song.Paragraph, s *song.Song) string {
	var lines []string
	for _, l := range p.Lines {
		if l.HasRenderableItems() {
			lines = append(lines, f.formatLine(l, s))
		}
	}
	return strings.Join(lines, "\n")
}

// formatLine renders the chord row, when the line has chords, above the
// text row, when it has text.
func (f *TextFormatter) formatLine(l *song.Line, s *song.Song) string {
	var parts []string
	if hasChords(l) {
		parts = append(parts, f.formatRow(l, s, true))
	}
	if hasText(l) {
		parts = append(parts, f.formatRow(l, s, false))
	}
	return strings.Join(parts, "\n")
}

func (f *TextFormatter) formatRow(l *song.Line, s *song.Song, top bool) string {
	var sb strings.Builder
	for _, item := range l.Items {
		chords, text := f.cells(item, l, s)
		width := max(utf8.RuneCountInString(text), utf8.RuneCountInString(chords))
		if _, ok := item.(*song.ChordLyricsPair); ok && chords != "" && utf8.RuneCountInString(chords) >= utf8.RuneCountInString(text) {
			width = utf8.RuneCountInString(chords) + 1
		}
		cell := text
		if top {
			cell = chords
		}
		sb.WriteString(padRight(cell, width))
	}
	return strings.TrimRight(sb.String(), " ")
}

// cells returns what an item shows in the chord row and the text row.
func (f *TextFormatter) cells(item song.Item, l *song.Line, s *song.Song) (chords, text string) {
	switch it := item.(type) {
	case *song.ChordLyricsPair:
		if it.Chords != "" {
			chords = renderChord(it.Chords, l, s, f.Config)
		}
		return chords, it.Lyrics
	case *song.Tag:
		if it.IsRenderable() {
			return "", it.Value
		}
	case *song.Expression:
		return "", evaluate(it, s, f.Config)
	}
	return "", ""
}

func hasChords(l *song.Line) bool {
	for _, item := range l.Items {
		if p, ok := item.(*song.ChordLyricsPair); ok && strings.TrimSpace(p.Chords) != "" {
			return true
		}
	}
	return false
}

func hasText(l *song.Line) bool {
	for _, item := range l.Items {
		switch it := item.(type) {
		case *song.ChordLyricsPair:
			if strings.TrimSpace(it.Lyrics) != "" {
				return true
			}
		case *song.Tag:
			if it.IsRenderable() {
				return true
			}
		case *song.Expression:
			return true
		}
	}
	return false
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
