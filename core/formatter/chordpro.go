package formatter

import (
	"strings"

	"github.com/FocuswithJustin/ChordSheet/core/song"
)

// ChordProFormatter renders a song back to ChordPro. Every line is kept,
// so a parsed sheet formats to the text it came from, up to whitespace
// inside directives. Chords are written as they are stored.
type ChordProFormatter struct {
	Config song.Configuration
}

// Format renders s as ChordPro.
func (f *ChordProFormatter) Format(s *song.Song) string {
	lines := make([]string, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = f.formatLine(l, s)
	}
	return strings.Join(lines, "\n")
}

func (f *ChordProFormatter) formatLine(l *song.Line, s *song.Song) string {
	var sb strings.Builder
	for _, item := range l.Items {
		sb.WriteString(f.formatItem(item, s))
	}
	return sb.String()
}

func (f *ChordProFormatter) formatItem(item song.Item, s *song.Song) string {
	switch it := item.(type) {
	case *song.Tag:
		return it.String()
	case *song.Comment:
		return it.String()
	case *song.ChordLyricsPair:
		if it.Chords == "" {
			return it.Lyrics
		}
		return "[" + it.Chords + "]" + it.Lyrics
	case *song.Expression:
		if f.Config.Evaluate {
			return evaluate(it, s, f.Config)
		}
		return it.String()
	}
	return ""
}
